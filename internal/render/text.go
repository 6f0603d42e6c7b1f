package render

import (
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/pagemark/internal/editor"
	"github.com/example/pagemark/internal/geom"
	"github.com/example/pagemark/internal/shape"
	"github.com/example/pagemark/internal/wrap"
)

func (rd *Renderer) drawTextShape(dst *image.RGBA, t shape.Text, v View) {
	r := v.Rect(t.Bounds())
	area := r.Inset(-v.Px(t.BorderWidth) - 2)
	withOpacity(dst, area, t.Opacity, func(layer *image.RGBA) {
		if t.BorderEnabled && t.BorderWidth > 0 {
			drawRectOutline(layer, r, t.Color, v.Px(t.BorderWidth))
		}
		rd.drawWrappedText(layer, t, v)
	})
}

func (rd *Renderer) drawCallout(dst *image.RGBA, c shape.Callout, v View) {
	box := v.Rect(c.Bounds())
	anchor := v.Pt(geom.Pt(c.AnchorX, c.AnchorY))
	area := box.Union(image.Rectangle{Min: anchor, Max: anchor.Add(image.Pt(1, 1))}).Inset(-v.Px(c.StrokeWidth) - 12)
	withOpacity(dst, area, c.Opacity, func(layer *image.RGBA) {
		from := leaderStart(box, anchor)
		drawArrowLine(layer, from.X, from.Y, anchor.X, anchor.Y, c.Color, v.Px(c.StrokeWidth))
		drawRectOutline(layer, box, c.Color, v.Px(c.BorderWidth))
		rd.drawWrappedText(layer, c.Text, v)
	})
}

// leaderStart clips the segment from the box center toward the anchor at
// the box border, so the leader line starts on the edge.
func leaderStart(box image.Rectangle, anchor image.Point) image.Point {
	cx := float64(box.Min.X+box.Max.X) / 2
	cy := float64(box.Min.Y+box.Max.Y) / 2
	dx := float64(anchor.X) - cx
	dy := float64(anchor.Y) - cy
	if dx == 0 && dy == 0 {
		return image.Pt(int(cx), int(cy))
	}
	t := math.Inf(1)
	if dx != 0 {
		edge := float64(box.Min.X)
		if dx > 0 {
			edge = float64(box.Max.X)
		}
		if tx := (edge - cx) / dx; tx > 0 && tx < t {
			t = tx
		}
	}
	if dy != 0 {
		edge := float64(box.Min.Y)
		if dy > 0 {
			edge = float64(box.Max.Y)
		}
		if ty := (edge - cy) / dy; ty > 0 && ty < t {
			t = ty
		}
	}
	if math.IsInf(t, 1) || t > 1 {
		t = 1
	}
	return image.Pt(int(cx+dx*t), int(cy+dy*t))
}

// drawWrappedText renders the shape's text wrapped to its width, honoring
// alignment, weight and decoration. Wrapping happens in document units so
// line breaks match the hit geometry at any zoom.
func (rd *Renderer) drawWrappedText(dst *image.RGBA, t shape.Text, v View) {
	if t.Text == "" {
		return
	}
	avail := t.W - 2*editor.Padding
	if avail < 1 {
		avail = 1
	}
	lines := wrap.Lines(t.Text, avail, t.FontSize, rd.fonts)
	screenSize := t.FontSize * v.Scale
	face := rd.fonts.Face(screenSize)
	if face == nil {
		return
	}
	metrics := face.Metrics()
	lineH := (metrics.Ascent + metrics.Descent).Ceil()
	box := v.Rect(t.Bounds())
	pad := v.Px(editor.Padding)
	bold := t.FontWeight == shape.WeightBold

	y := box.Min.Y + pad
	for _, line := range lines {
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(t.Color), Face: face}
		w := d.MeasureString(line).Ceil()
		x := box.Min.X + pad
		switch t.Align {
		case shape.AlignCenter:
			x = box.Min.X + (box.Dx()-w)/2
		case shape.AlignRight:
			x = box.Max.X - pad - w
		}
		baseline := y + metrics.Ascent.Ceil()
		d.Dot = fixed.P(x, baseline)
		d.DrawString(line)
		if bold {
			d.Dot = fixed.P(x+1, baseline)
			d.DrawString(line)
		}
		switch t.Decoration {
		case shape.DecorationUnderline:
			drawLine(dst, x, baseline+1, x+w, baseline+1, t.Color, 1)
		case shape.DecorationLineThrough:
			mid := y + lineH/2
			drawLine(dst, x, mid, x+w, mid, t.Color, 1)
		}
		y += lineH
	}
}
