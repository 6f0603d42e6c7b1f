// Package geom provides the coordinate mapping between the screen and
// document space. Document coordinates are fixed to the page content and do
// not change under zoom or pan; only rendering multiplies by the current
// scale.
package geom

import "math"

// Point is a position in either screen or document space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Size is a width/height pair.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Rect is an axis-aligned rectangle with origin at the top-left corner.
// W and H may be transiently negative while a drag is in progress; see
// Canon.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// Canon returns r with non-negative width and height and the origin moved to
// the top-left corner.
func (r Rect) Canon() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Contains reports whether p lies within r (inclusive of the border).
func (r Rect) Contains(p Point) bool {
	r = r.Canon()
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Inset shrinks r by d on every side. A negative d grows the rectangle.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// Zoom limits for the user zoom multiplier applied on top of the fit scale.
const (
	MinZoom = 0.25
	MaxZoom = 3

	zoomInStep  = 1.25
	zoomOutStep = 0.8
)

// ToDocument maps a screen point into document space given the container
// origin on screen and the effective scale (fit scale times user zoom).
func ToDocument(screen Point, scale float64, origin Point) Point {
	return Point{
		X: (screen.X - origin.X) / scale,
		Y: (screen.Y - origin.Y) / scale,
	}
}

// ToScreen maps a document point back onto the screen.
func ToScreen(doc Point, scale float64, origin Point) Point {
	return Point{
		X: doc.X*scale + origin.X,
		Y: doc.Y*scale + origin.Y,
	}
}

// FitScale computes the scale that fits a page inside a container. Pages are
// never upscaled past 100% by the automatic fit.
func FitScale(page, container Size) float64 {
	if page.W <= 0 || page.H <= 0 {
		return 1
	}
	s := math.Min(container.W/page.W, container.H/page.H)
	if s > 1 {
		return 1
	}
	return s
}

// ClampZoom constrains a user zoom multiplier to the supported range.
func ClampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// ZoomIn returns the next larger zoom step.
func ZoomIn(z float64) float64 { return ClampZoom(z * zoomInStep) }

// ZoomOut returns the next smaller zoom step.
func ZoomOut(z float64) float64 { return ClampZoom(z * zoomOutStep) }
