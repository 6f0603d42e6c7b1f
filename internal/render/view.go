package render

import (
	"image"
	"math"

	"github.com/example/pagemark/internal/geom"
)

// View maps document space to destination pixels: Origin is the screen
// position of the document's top-left corner and Scale the zoom factor.
type View struct {
	Scale  float64
	Origin geom.Point
}

// Pt converts a document point to a pixel position.
func (v View) Pt(p geom.Point) image.Point {
	s := geom.ToScreen(p, v.Scale, v.Origin)
	return image.Pt(int(math.Round(s.X)), int(math.Round(s.Y)))
}

// Rect converts a document rectangle to a pixel rectangle.
func (v View) Rect(r geom.Rect) image.Rectangle {
	r = r.Canon()
	min := v.Pt(geom.Pt(r.X, r.Y))
	max := v.Pt(geom.Pt(r.X+r.W, r.Y+r.H))
	return image.Rectangle{Min: min, Max: max}
}

// Px converts a document-space length to pixels, never below 1.
func (v View) Px(l float64) int {
	n := int(math.Round(l * v.Scale))
	if n < 1 {
		n = 1
	}
	return n
}
