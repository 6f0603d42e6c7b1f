package render

import (
	"image"
	"image/color"
	"image/draw"
)

// drawCardShadow paints a blurred rectangular drop shadow onto dst, offset
// from the card it sits under. The card itself is drawn afterwards on top.
func drawCardShadow(dst *image.RGBA, card image.Rectangle, radius int, offset image.Point, opacity float64) {
	if card.Empty() || opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	if radius < 0 {
		radius = 0
	}

	padded := card
	if radius > 0 {
		padded = padded.Inset(-radius)
	}
	mask := image.NewGray(padded.Sub(padded.Min))
	inner := card.Sub(padded.Min)
	for y := inner.Min.Y; y < inner.Max.Y; y++ {
		for x := inner.Min.X; x < inner.Max.X; x++ {
			mask.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	blurred := boxBlur(mask, radius)

	alpha := uint8(opacity*255 + 0.5)
	target := padded.Add(offset)
	draw.DrawMask(dst, target, image.NewUniform(color.RGBA{0, 0, 0, alpha}), image.Point{}, blurred, blurred.Bounds().Min, draw.Over)
}

// boxBlur applies a separable box blur with the given radius using row and
// column prefix sums.
func boxBlur(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	for y := 0; y < h; y++ {
		rowStart := y * src.Stride
		tmpStart := y * tmp.Stride
		prefix := make([]int, w+1)
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[rowStart+x])
		}
		for x := 0; x < w; x++ {
			x0 := x - radius
			if x0 < 0 {
				x0 = 0
			}
			x1 := x + radius
			if x1 >= w {
				x1 = w - 1
			}
			sum := prefix[x1+1] - prefix[x0]
			count := x1 - x0 + 1
			tmp.Pix[tmpStart+x] = uint8(sum / count)
		}
	}

	for x := 0; x < w; x++ {
		prefix := make([]int, h+1)
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0 := y - radius
			if y0 < 0 {
				y0 = 0
			}
			y1 := y + radius
			if y1 >= h {
				y1 = h - 1
			}
			sum := prefix[y1+1] - prefix[y0]
			count := y1 - y0 + 1
			dst.Pix[y*dst.Stride+x] = uint8(sum / count)
		}
	}

	return dst
}
