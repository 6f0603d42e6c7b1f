package render

import (
	"image"
	"image/color"
	"math"

	"github.com/example/pagemark/internal/geom"
	"github.com/example/pagemark/internal/shape"
)

func (rd *Renderer) drawCloud(dst *image.RGBA, c shape.Cloud, v View) {
	b := c.Bounds()
	scallop := c.ScallopSize
	if scallop < 2 {
		scallop = 2
	}
	area := v.Rect(b).Inset(-v.Px(scallop) - v.Px(c.StrokeWidth))
	withOpacity(dst, area, c.Opacity, func(layer *image.RGBA) {
		thick := v.Px(c.StrokeWidth)
		drawCloudEdge(layer, v, geom.Pt(b.X, b.Y), geom.Pt(b.X+b.W, b.Y), scallop, c.Color, thick)
		drawCloudEdge(layer, v, geom.Pt(b.X+b.W, b.Y), geom.Pt(b.X+b.W, b.Y+b.H), scallop, c.Color, thick)
		drawCloudEdge(layer, v, geom.Pt(b.X+b.W, b.Y+b.H), geom.Pt(b.X, b.Y+b.H), scallop, c.Color, thick)
		drawCloudEdge(layer, v, geom.Pt(b.X, b.Y+b.H), geom.Pt(b.X, b.Y), scallop, c.Color, thick)
	})
}

// drawCloudEdge strokes one edge of a revision cloud as a row of
// semicircular scallops bulging away from the interior. The edge runs
// clockwise, so "outward" is the left of the travel direction when y grows
// downward. The scallop count comes from dividing the edge length by the
// nominal scallop diameter, rounded up so arcs shrink to fit rather than
// overflowing the corner.
func drawCloudEdge(dst *image.RGBA, v View, from, to geom.Point, scallop float64, col color.Color, thick int) {
	length := from.Dist(to)
	if length < 1 {
		return
	}
	n := int(math.Ceil(length / (2 * scallop)))
	if n < 1 {
		n = 1
	}
	step := length / float64(n)
	dirX := (to.X - from.X) / length
	dirY := (to.Y - from.Y) / length
	theta := math.Atan2(dirY, dirX)
	r := v.Px(step / 2)
	for i := 0; i < n; i++ {
		c := geom.Pt(
			from.X+dirX*(float64(i)+0.5)*step,
			from.Y+dirY*(float64(i)+0.5)*step,
		)
		p := v.Pt(c)
		drawArc(dst, p.X, p.Y, float64(r), theta+math.Pi, theta+2*math.Pi, col, thick)
	}
}
