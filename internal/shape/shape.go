// Package shape holds the annotation entities and the in-memory model the
// editor mutates. All geometry is stored in document space.
package shape

import (
	"image/color"

	"github.com/example/pagemark/internal/geom"
)

// Kind identifies one annotation entity type.
type Kind int

const (
	KindFreehand Kind = iota
	KindRect
	KindCircle
	KindArrow
	KindText
	KindCallout
	KindCloud
	KindStamp
)

func (k Kind) String() string {
	switch k {
	case KindFreehand:
		return "freehand"
	case KindRect:
		return "rectangle"
	case KindCircle:
		return "circle"
	case KindArrow:
		return "arrow"
	case KindText:
		return "text"
	case KindCallout:
		return "callout"
	case KindCloud:
		return "cloud"
	case KindStamp:
		return "stamp"
	default:
		return "unknown"
	}
}

// FontWeight, FontStyle, Decoration and Align use CSS-like string values so
// the serialized form stays readable.
type (
	FontWeight string
	FontStyle  string
	Decoration string
	Align      string
)

const (
	WeightNormal FontWeight = "normal"
	WeightBold   FontWeight = "bold"

	StyleNormal FontStyle = "normal"
	StyleItalic FontStyle = "italic"

	DecorationNone        Decoration = "none"
	DecorationUnderline   Decoration = "underline"
	DecorationLineThrough Decoration = "line-through"

	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// StampStatus is the approval tag shown on a stamp card.
type StampStatus string

const (
	StatusApproved StampStatus = "APPROVED"
	StatusAsBuilt  StampStatus = "AS-BUILT"
	StatusRejected StampStatus = "REJECTED"
	StatusCustom   StampStatus = "CUSTOM"
)

// Freehand is a finalized polyline stroke. Points are immutable once the
// stroke has been committed.
type Freehand struct {
	Points      []geom.Point `json:"points"`
	Color       color.RGBA   `json:"color"`
	StrokeWidth float64      `json:"strokeWidth"`
	Opacity     float64      `json:"opacity"`
}

// Bounds returns the stroke's bounding box, or a zero rect for an empty
// stroke.
func (f Freehand) Bounds() geom.Rect {
	if len(f.Points) == 0 {
		return geom.Rect{}
	}
	minX, minY := f.Points[0].X, f.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range f.Points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return geom.R(minX, minY, maxX-minX, maxY-minY)
}

// Rect is a rectangle annotation. W and H are non-negative after any commit.
type Rect struct {
	X           float64    `json:"x"`
	Y           float64    `json:"y"`
	W           float64    `json:"w"`
	H           float64    `json:"h"`
	Color       color.RGBA `json:"color"`
	StrokeWidth float64    `json:"strokeWidth"`
	Opacity     float64    `json:"opacity"`
}

// Bounds returns the canonical bounding rectangle.
func (r Rect) Bounds() geom.Rect { return geom.R(r.X, r.Y, r.W, r.H).Canon() }

// Circle is a circle annotation with center and radius.
type Circle struct {
	X           float64    `json:"x"`
	Y           float64    `json:"y"`
	R           float64    `json:"r"`
	Color       color.RGBA `json:"color"`
	StrokeWidth float64    `json:"strokeWidth"`
	Opacity     float64    `json:"opacity"`
}

// Bounds returns the circle's bounding box.
func (c Circle) Bounds() geom.Rect { return geom.R(c.X-c.R, c.Y-c.R, 2*c.R, 2*c.R) }

// Arrow is a directed segment. The arrowhead is derived from the segment's
// angle at render time and is not stored.
type Arrow struct {
	X1          float64    `json:"x1"`
	Y1          float64    `json:"y1"`
	X2          float64    `json:"x2"`
	Y2          float64    `json:"y2"`
	Color       color.RGBA `json:"color"`
	StrokeWidth float64    `json:"strokeWidth"`
	Opacity     float64    `json:"opacity"`
}

// Bounds returns the segment's bounding box.
func (a Arrow) Bounds() geom.Rect {
	return geom.R(a.X1, a.Y1, a.X2-a.X1, a.Y2-a.Y1).Canon()
}

// Text is a text box annotation. BaseW/BaseH remember the smallest size the
// user ever dragged the box to; content auto-grow may exceed but never
// shrink below them.
type Text struct {
	X             float64    `json:"x"`
	Y             float64    `json:"y"`
	W             float64    `json:"w"`
	H             float64    `json:"h"`
	BaseW         float64    `json:"baseW"`
	BaseH         float64    `json:"baseH"`
	Text          string     `json:"text"`
	Color         color.RGBA `json:"color"`
	FontSize      float64    `json:"fontSize"`
	FontWeight    FontWeight `json:"fontWeight"`
	FontStyle     FontStyle  `json:"fontStyle"`
	Decoration    Decoration `json:"textDecoration"`
	Align         Align      `json:"textAlign"`
	Opacity       float64    `json:"opacity"`
	StrokeWidth   float64    `json:"strokeWidth"`
	BorderEnabled bool       `json:"borderEnabled"`
	BorderWidth   float64    `json:"borderWidth"`
}

// Bounds returns the canonical bounding rectangle.
func (t Text) Bounds() geom.Rect { return geom.R(t.X, t.Y, t.W, t.H).Canon() }

// Callout is a text box with a leader line pointing from the box's center to
// an anchor outside of it.
type Callout struct {
	Text
	AnchorX float64 `json:"anchorX"`
	AnchorY float64 `json:"anchorY"`
}

// Cloud is a rectangle rendered with a scalloped revision-cloud border.
type Cloud struct {
	X           float64    `json:"x"`
	Y           float64    `json:"y"`
	W           float64    `json:"w"`
	H           float64    `json:"h"`
	Color       color.RGBA `json:"color"`
	StrokeWidth float64    `json:"strokeWidth"`
	Opacity     float64    `json:"opacity"`
	ScallopSize float64    `json:"scallopSize"`
}

// Bounds returns the canonical bounding rectangle.
func (c Cloud) Bounds() geom.Rect { return geom.R(c.X, c.Y, c.W, c.H).Canon() }

// Stamp is a rounded-rectangle card with a centered word-wrapped title.
type Stamp struct {
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	W           float64     `json:"w"`
	H           float64     `json:"h"`
	Title       string      `json:"title"`
	Status      StampStatus `json:"status"`
	Color       color.RGBA  `json:"color"`
	Opacity     float64     `json:"opacity"`
	StrokeWidth float64     `json:"strokeWidth"`
	FontSize    float64     `json:"fontSize"`
	Logo        string      `json:"logo,omitempty"`
}

// Bounds returns the card's bounding rectangle.
func (s Stamp) Bounds() geom.Rect { return geom.R(s.X, s.Y, s.W, s.H).Canon() }

// StampTemplate seeds the next placed stamp, typically supplied by the host
// or the configuration file.
type StampTemplate struct {
	Title       string      `json:"title"`
	Status      StampStatus `json:"status"`
	Color       color.RGBA  `json:"color"`
	Opacity     float64     `json:"opacity"`
	StrokeWidth float64     `json:"strokeWidth"`
	FontSize    float64     `json:"fontSize"`
	Logo        string      `json:"logo,omitempty"`
}

// DefaultStampTemplate returns the stamp seed used when the host supplies
// none.
func DefaultStampTemplate() StampTemplate {
	return StampTemplate{
		Title:       string(StatusApproved),
		Status:      StatusApproved,
		Color:       color.RGBA{0, 128, 0, 255},
		Opacity:     1,
		StrokeWidth: 2,
		FontSize:    14,
	}
}

// Properties is the shared style record that seeds every newly created shape
// and is pushed live onto the currently selected shape of the matching kind.
type Properties struct {
	Color           color.RGBA `json:"color"`
	StrokeWidth     float64    `json:"strokeWidth"`
	Opacity         float64    `json:"opacity"`
	FontSize        float64    `json:"fontSize"`
	ScallopSize     float64    `json:"scallopSize"`
	CloudLineWidth  float64    `json:"cloudLineWidth"`
	FontWeight      FontWeight `json:"fontWeight"`
	FontStyle       FontStyle  `json:"fontStyle"`
	Decoration      Decoration `json:"textDecoration"`
	Align           Align      `json:"textAlign"`
	TextBorder      bool       `json:"textBorder"`
	TextBorderWidth float64    `json:"textBorderWidth"`
}

// DefaultProperties returns the tool properties used before the host pushes
// its own.
func DefaultProperties() Properties {
	return Properties{
		Color:           color.RGBA{255, 0, 0, 255},
		StrokeWidth:     2,
		Opacity:         1,
		FontSize:        14,
		ScallopSize:     12,
		CloudLineWidth:  2,
		FontWeight:      WeightNormal,
		FontStyle:       StyleNormal,
		Decoration:      DecorationNone,
		Align:           AlignLeft,
		TextBorder:      true,
		TextBorderWidth: 1,
	}
}
