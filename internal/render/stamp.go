package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/pagemark/internal/shape"
	"github.com/example/pagemark/internal/wrap"
)

const (
	stampCornerRadius = 6
	stampShadowBlur   = 6
	stampShadowAlpha  = 0.35
)

func (rd *Renderer) drawStamp(dst *image.RGBA, s shape.Stamp, v View) {
	card := v.Rect(s.Bounds())
	if card.Empty() {
		return
	}
	area := card.Inset(-stampShadowBlur * 2)
	withOpacity(dst, area, s.Opacity, func(layer *image.RGBA) {
		drawCardShadow(layer, card, stampShadowBlur, image.Pt(3, 3), stampShadowAlpha)

		corner := v.Px(stampCornerRadius)
		fillRoundedRect(layer, card, corner, color.White)
		strokeRoundedRect(layer, card, corner, s.Color, v.Px(s.StrokeWidth))

		rd.drawStampContent(layer, s, card, v)
	})
}

func (rd *Renderer) drawStampContent(dst *image.RGBA, s shape.Stamp, card image.Rectangle, v View) {
	titleSize := s.FontSize * v.Scale
	face := rd.fonts.Face(titleSize)
	if face == nil {
		return
	}
	metrics := face.Metrics()
	lineH := (metrics.Ascent + metrics.Descent).Ceil()

	textMin := card.Min.X + v.Px(wrap.StampPadding/2)
	textMax := card.Max.X - v.Px(wrap.StampPadding/2)
	if logo := rd.logo(s.Logo); logo != nil {
		side := card.Dy() - 2*v.Px(6)
		lr := image.Rect(card.Min.X+v.Px(6), card.Min.Y+v.Px(6), card.Min.X+v.Px(6)+side, card.Max.Y-v.Px(6))
		xdraw.ApproxBiLinear.Scale(dst, lr, logo, logo.Bounds(), draw.Over, nil)
		textMin = lr.Max.X + v.Px(4)
	}

	avail := s.W - wrap.StampPadding
	if avail < 1 {
		avail = 1
	}
	lines := wrap.Lines(s.Title, avail, s.FontSize, rd.fonts)
	statusSize := titleSize * 0.7
	statusFace := rd.fonts.Face(statusSize)
	statusH := 0
	if s.Status != "" && statusFace != nil {
		statusH = (statusFace.Metrics().Ascent + statusFace.Metrics().Descent).Ceil()
	}

	total := lineH*len(lines) + statusH
	y := card.Min.Y + (card.Dy()-total)/2
	for _, line := range lines {
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(s.Color), Face: face}
		w := d.MeasureString(line).Ceil()
		x := textMin + (textMax-textMin-w)/2
		baseline := y + metrics.Ascent.Ceil()
		d.Dot = fixed.P(x, baseline)
		d.DrawString(line)
		d.Dot = fixed.P(x+1, baseline)
		d.DrawString(line)
		y += lineH
	}
	if statusH > 0 {
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(s.Color), Face: statusFace}
		text := string(s.Status)
		w := d.MeasureString(text).Ceil()
		x := textMin + (textMax-textMin-w)/2
		d.Dot = fixed.P(x, y+statusFace.Metrics().Ascent.Ceil())
		d.DrawString(text)
	}
}

func (rd *Renderer) logo(name string) image.Image {
	if name == "" || rd.logos == nil {
		return nil
	}
	return rd.logos[name]
}

func fillRoundedRect(dst *image.RGBA, r image.Rectangle, corner int, col color.Color) {
	if corner*2 > r.Dx() {
		corner = r.Dx() / 2
	}
	if corner*2 > r.Dy() {
		corner = r.Dy() / 2
	}
	src := image.NewUniform(col)
	draw.Draw(dst, image.Rect(r.Min.X+corner, r.Min.Y, r.Max.X-corner, r.Max.Y), src, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y+corner, r.Min.X+corner, r.Max.Y-corner), src, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Max.X-corner, r.Min.Y+corner, r.Max.X, r.Max.Y-corner), src, image.Point{}, draw.Over)
	drawFilledCircle(dst, r.Min.X+corner, r.Min.Y+corner, corner, col)
	drawFilledCircle(dst, r.Max.X-corner-1, r.Min.Y+corner, corner, col)
	drawFilledCircle(dst, r.Min.X+corner, r.Max.Y-corner-1, corner, col)
	drawFilledCircle(dst, r.Max.X-corner-1, r.Max.Y-corner-1, corner, col)
}

func strokeRoundedRect(dst *image.RGBA, r image.Rectangle, corner int, col color.Color, thick int) {
	if corner*2 > r.Dx() {
		corner = r.Dx() / 2
	}
	if corner*2 > r.Dy() {
		corner = r.Dy() / 2
	}
	drawLine(dst, r.Min.X+corner, r.Min.Y, r.Max.X-corner-1, r.Min.Y, col, thick)
	drawLine(dst, r.Min.X+corner, r.Max.Y-1, r.Max.X-corner-1, r.Max.Y-1, col, thick)
	drawLine(dst, r.Min.X, r.Min.Y+corner, r.Min.X, r.Max.Y-corner-1, col, thick)
	drawLine(dst, r.Max.X-1, r.Min.Y+corner, r.Max.X-1, r.Max.Y-corner-1, col, thick)
	cr := float64(corner)
	drawArc(dst, r.Min.X+corner, r.Min.Y+corner, cr, math.Pi, 1.5*math.Pi, col, thick)
	drawArc(dst, r.Max.X-corner-1, r.Min.Y+corner, cr, 1.5*math.Pi, 2*math.Pi, col, thick)
	drawArc(dst, r.Max.X-corner-1, r.Max.Y-corner-1, cr, 0, 0.5*math.Pi, col, thick)
	drawArc(dst, r.Min.X+corner, r.Max.Y-corner-1, cr, 0.5*math.Pi, math.Pi, col, thick)
}
