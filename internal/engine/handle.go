package engine

import "github.com/example/pagemark/internal/geom"

// Handle identifies one of the eight resize zones on a shape's bounding
// box: four corners and four edge midpoints.
type Handle int

const (
	HandleNone Handle = iota
	HandleTL
	HandleT
	HandleTR
	HandleR
	HandleBR
	HandleB
	HandleBL
	HandleL
)

// HandleHitRadius is the handle hit radius in document units at scale 1; it
// is divided by the current scale so handles stay a constant screen size.
const HandleHitRadius = 8

// HandlePoints returns the eight handle anchor points of r, indexed by
// Handle-1.
func HandlePoints(r geom.Rect) [8]geom.Point {
	r = r.Canon()
	cx := r.X + r.W/2
	cy := r.Y + r.H/2
	return [8]geom.Point{
		{X: r.X, Y: r.Y},               // tl
		{X: cx, Y: r.Y},                // t
		{X: r.X + r.W, Y: r.Y},         // tr
		{X: r.X + r.W, Y: cy},          // r
		{X: r.X + r.W, Y: r.Y + r.H},   // br
		{X: cx, Y: r.Y + r.H},          // b
		{X: r.X, Y: r.Y + r.H},         // bl
		{X: r.X, Y: cy},                // l
	}
}

// hitHandle returns the handle under p, testing each anchor with the given
// radius, or HandleNone.
func hitHandle(r geom.Rect, p geom.Point, radius float64) Handle {
	for i, hp := range HandlePoints(r) {
		if p.Dist(hp) <= radius {
			return Handle(i + 1)
		}
	}
	return HandleNone
}

// resizeBounds recomputes a bounding rect from the dragged handle's new
// pointer position and the fixed opposite sides of the rect at drag start.
// The result may have negative extent mid-drag; callers normalize on
// commit.
func resizeBounds(start geom.Rect, h Handle, p geom.Point) geom.Rect {
	x0, y0 := start.X, start.Y
	x1, y1 := start.X+start.W, start.Y+start.H
	switch h {
	case HandleTL:
		x0, y0 = p.X, p.Y
	case HandleT:
		y0 = p.Y
	case HandleTR:
		x1, y0 = p.X, p.Y
	case HandleR:
		x1 = p.X
	case HandleBR:
		x1, y1 = p.X, p.Y
	case HandleB:
		y1 = p.Y
	case HandleBL:
		x0, y1 = p.X, p.Y
	case HandleL:
		x0 = p.X
	}
	return geom.R(x0, y0, x1-x0, y1-y0)
}
