package shape

import (
	"reflect"

	"github.com/example/pagemark/internal/geom"
)

// Model is the complete set of annotations on one page, one ordered
// collection per kind. Render order within a collection is creation order.
type Model struct {
	Freehands []Freehand `json:"freehands"`
	Rects     []Rect     `json:"rectangles"`
	Circles   []Circle   `json:"circles"`
	Arrows    []Arrow    `json:"arrows"`
	Texts     []Text     `json:"texts"`
	Callouts  []Callout  `json:"callouts"`
	Clouds    []Cloud    `json:"clouds"`
	Stamps    []Stamp    `json:"stamps"`
}

// NewModel returns an empty model.
func NewModel() *Model { return &Model{} }

// Clone returns a deep copy with value semantics: the copy shares no slices
// with the receiver, so a history snapshot cannot alias live data.
func (m *Model) Clone() *Model {
	c := &Model{
		Freehands: make([]Freehand, len(m.Freehands)),
		Rects:     append([]Rect(nil), m.Rects...),
		Circles:   append([]Circle(nil), m.Circles...),
		Arrows:    append([]Arrow(nil), m.Arrows...),
		Texts:     append([]Text(nil), m.Texts...),
		Callouts:  append([]Callout(nil), m.Callouts...),
		Clouds:    append([]Cloud(nil), m.Clouds...),
		Stamps:    append([]Stamp(nil), m.Stamps...),
	}
	for i, f := range m.Freehands {
		c.Freehands[i] = f
		c.Freehands[i].Points = append([]geom.Point(nil), f.Points...)
	}
	return c
}

// Equal reports whether two models hold identical annotations.
func (m *Model) Equal(o *Model) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.equalFreehands(o) &&
		reflect.DeepEqual(m.Rects, o.Rects) &&
		reflect.DeepEqual(m.Circles, o.Circles) &&
		reflect.DeepEqual(m.Arrows, o.Arrows) &&
		reflect.DeepEqual(m.Texts, o.Texts) &&
		reflect.DeepEqual(m.Callouts, o.Callouts) &&
		reflect.DeepEqual(m.Clouds, o.Clouds) &&
		reflect.DeepEqual(m.Stamps, o.Stamps)
}

func (m *Model) equalFreehands(o *Model) bool {
	if len(m.Freehands) != len(o.Freehands) {
		return false
	}
	for i := range m.Freehands {
		if !reflect.DeepEqual(m.Freehands[i], o.Freehands[i]) {
			return false
		}
	}
	return true
}

// Count returns the number of shapes of one kind.
func (m *Model) Count(k Kind) int {
	switch k {
	case KindFreehand:
		return len(m.Freehands)
	case KindRect:
		return len(m.Rects)
	case KindCircle:
		return len(m.Circles)
	case KindArrow:
		return len(m.Arrows)
	case KindText:
		return len(m.Texts)
	case KindCallout:
		return len(m.Callouts)
	case KindCloud:
		return len(m.Clouds)
	case KindStamp:
		return len(m.Stamps)
	default:
		return 0
	}
}

// Delete removes the shape at index from its collection. Indices of later
// shapes in the same collection shift down; callers must not cache indices
// across a delete. Out-of-range indices are ignored.
func (m *Model) Delete(k Kind, index int) {
	if index < 0 || index >= m.Count(k) {
		return
	}
	switch k {
	case KindFreehand:
		m.Freehands = append(m.Freehands[:index], m.Freehands[index+1:]...)
	case KindRect:
		m.Rects = append(m.Rects[:index], m.Rects[index+1:]...)
	case KindCircle:
		m.Circles = append(m.Circles[:index], m.Circles[index+1:]...)
	case KindArrow:
		m.Arrows = append(m.Arrows[:index], m.Arrows[index+1:]...)
	case KindText:
		m.Texts = append(m.Texts[:index], m.Texts[index+1:]...)
	case KindCallout:
		m.Callouts = append(m.Callouts[:index], m.Callouts[index+1:]...)
	case KindCloud:
		m.Clouds = append(m.Clouds[:index], m.Clouds[index+1:]...)
	case KindStamp:
		m.Stamps = append(m.Stamps[:index], m.Stamps[index+1:]...)
	}
}

// Bounds returns the bounding rectangle of the shape at index, or false for
// kinds without one in range.
func (m *Model) Bounds(k Kind, index int) (geom.Rect, bool) {
	if index < 0 || index >= m.Count(k) {
		return geom.Rect{}, false
	}
	switch k {
	case KindRect:
		return m.Rects[index].Bounds(), true
	case KindCircle:
		return m.Circles[index].Bounds(), true
	case KindArrow:
		return m.Arrows[index].Bounds(), true
	case KindText:
		return m.Texts[index].Bounds(), true
	case KindCallout:
		return m.Callouts[index].Bounds(), true
	case KindCloud:
		return m.Clouds[index].Bounds(), true
	case KindStamp:
		return m.Stamps[index].Bounds(), true
	case KindFreehand:
		if len(m.Freehands[index].Points) == 0 {
			return geom.Rect{}, false
		}
		return m.Freehands[index].Bounds(), true
	default:
		return geom.Rect{}, false
	}
}

// Translate moves the shape at index by (dx, dy) in document space.
func (m *Model) Translate(k Kind, index int, dx, dy float64) {
	if index < 0 || index >= m.Count(k) {
		return
	}
	switch k {
	case KindFreehand:
		pts := m.Freehands[index].Points
		for i := range pts {
			pts[i].X += dx
			pts[i].Y += dy
		}
	case KindRect:
		m.Rects[index].X += dx
		m.Rects[index].Y += dy
	case KindCircle:
		m.Circles[index].X += dx
		m.Circles[index].Y += dy
	case KindArrow:
		a := &m.Arrows[index]
		a.X1 += dx
		a.Y1 += dy
		a.X2 += dx
		a.Y2 += dy
	case KindText:
		m.Texts[index].X += dx
		m.Texts[index].Y += dy
	case KindCallout:
		c := &m.Callouts[index]
		c.X += dx
		c.Y += dy
		c.AnchorX += dx
		c.AnchorY += dy
	case KindCloud:
		m.Clouds[index].X += dx
		m.Clouds[index].Y += dy
	case KindStamp:
		m.Stamps[index].X += dx
		m.Stamps[index].Y += dy
	}
}

// SetBounds replaces the bounding geometry of the shape at index with r,
// normalized to positive extent. Text and Callout keep their base-size
// floor: the stored width/height never drop below BaseW/BaseH.
func (m *Model) SetBounds(k Kind, index int, r geom.Rect) {
	if index < 0 || index >= m.Count(k) {
		return
	}
	r = r.Canon()
	switch k {
	case KindRect:
		s := &m.Rects[index]
		s.X, s.Y, s.W, s.H = r.X, r.Y, r.W, r.H
	case KindCloud:
		s := &m.Clouds[index]
		s.X, s.Y, s.W, s.H = r.X, r.Y, r.W, r.H
	case KindCircle:
		s := &m.Circles[index]
		s.X, s.Y = r.X+r.W/2, r.Y+r.H/2
		s.R = r.W / 2
		if r.H/2 > s.R {
			s.R = r.H / 2
		}
	case KindText:
		applyTextBounds(&m.Texts[index], r)
	case KindCallout:
		applyTextBounds(&m.Callouts[index].Text, r)
	case KindStamp:
		s := &m.Stamps[index]
		s.X, s.Y, s.W, s.H = r.X, r.Y, r.W, r.H
	}
}

func applyTextBounds(t *Text, r geom.Rect) {
	if r.W < t.BaseW {
		r.W = t.BaseW
	}
	if r.H < t.BaseH {
		r.H = t.BaseH
	}
	t.X, t.Y, t.W, t.H = r.X, r.Y, r.W, r.H
}

// ApplyProperties pushes the shared style record onto the shape at index.
// Only the fields relevant to the kind are written.
func (m *Model) ApplyProperties(k Kind, index int, p Properties) {
	if index < 0 || index >= m.Count(k) {
		return
	}
	switch k {
	case KindFreehand:
		s := &m.Freehands[index]
		s.Color, s.StrokeWidth, s.Opacity = p.Color, p.StrokeWidth, p.Opacity
	case KindRect:
		s := &m.Rects[index]
		s.Color, s.StrokeWidth, s.Opacity = p.Color, p.StrokeWidth, p.Opacity
	case KindCircle:
		s := &m.Circles[index]
		s.Color, s.StrokeWidth, s.Opacity = p.Color, p.StrokeWidth, p.Opacity
	case KindArrow:
		s := &m.Arrows[index]
		s.Color, s.StrokeWidth, s.Opacity = p.Color, p.StrokeWidth, p.Opacity
	case KindText:
		applyTextProperties(&m.Texts[index], p)
	case KindCallout:
		applyTextProperties(&m.Callouts[index].Text, p)
	case KindCloud:
		s := &m.Clouds[index]
		s.Color, s.Opacity = p.Color, p.Opacity
		s.StrokeWidth = p.CloudLineWidth
		s.ScallopSize = p.ScallopSize
	case KindStamp:
		s := &m.Stamps[index]
		s.Color, s.Opacity = p.Color, p.Opacity
		s.StrokeWidth, s.FontSize = p.StrokeWidth, p.FontSize
	}
}

func applyTextProperties(t *Text, p Properties) {
	t.Color = p.Color
	t.Opacity = p.Opacity
	t.StrokeWidth = p.StrokeWidth
	t.FontSize = p.FontSize
	t.FontWeight = p.FontWeight
	t.FontStyle = p.FontStyle
	t.Decoration = p.Decoration
	t.Align = p.Align
	t.BorderEnabled = p.TextBorder
	t.BorderWidth = p.TextBorderWidth
}

// PropertiesOf reads the stored style of the shape at index back into a
// shared style record, used to sync the host's style panel on selection.
func (m *Model) PropertiesOf(k Kind, index int, base Properties) Properties {
	if index < 0 || index >= m.Count(k) {
		return base
	}
	p := base
	switch k {
	case KindFreehand:
		s := m.Freehands[index]
		p.Color, p.StrokeWidth, p.Opacity = s.Color, s.StrokeWidth, s.Opacity
	case KindRect:
		s := m.Rects[index]
		p.Color, p.StrokeWidth, p.Opacity = s.Color, s.StrokeWidth, s.Opacity
	case KindCircle:
		s := m.Circles[index]
		p.Color, p.StrokeWidth, p.Opacity = s.Color, s.StrokeWidth, s.Opacity
	case KindArrow:
		s := m.Arrows[index]
		p.Color, p.StrokeWidth, p.Opacity = s.Color, s.StrokeWidth, s.Opacity
	case KindText:
		readTextProperties(m.Texts[index], &p)
	case KindCallout:
		readTextProperties(m.Callouts[index].Text, &p)
	case KindCloud:
		s := m.Clouds[index]
		p.Color, p.Opacity = s.Color, s.Opacity
		p.CloudLineWidth = s.StrokeWidth
		p.ScallopSize = s.ScallopSize
	case KindStamp:
		s := m.Stamps[index]
		p.Color, p.Opacity = s.Color, s.Opacity
		p.StrokeWidth, p.FontSize = s.StrokeWidth, s.FontSize
	}
	return p
}

func readTextProperties(t Text, p *Properties) {
	p.Color = t.Color
	p.Opacity = t.Opacity
	p.StrokeWidth = t.StrokeWidth
	p.FontSize = t.FontSize
	p.FontWeight = t.FontWeight
	p.FontStyle = t.FontStyle
	p.Decoration = t.Decoration
	p.Align = t.Align
	p.TextBorder = t.BorderEnabled
	p.TextBorderWidth = t.BorderWidth
}

// Selection tracks at most one selected shape per kind so the style panel
// can keep showing the controls of whichever kind was last interacted with.
// -1 means no selection for that kind.
type Selection struct {
	Freehand int
	Rect     int
	Circle   int
	Arrow    int
	Text     int
	Callout  int
	Cloud    int
	Stamp    int
}

// NewSelection returns a selection with nothing selected.
func NewSelection() Selection {
	return Selection{Freehand: -1, Rect: -1, Circle: -1, Arrow: -1, Text: -1, Callout: -1, Cloud: -1, Stamp: -1}
}

// Get returns the selected index for a kind, -1 when none.
func (s *Selection) Get(k Kind) int {
	switch k {
	case KindFreehand:
		return s.Freehand
	case KindRect:
		return s.Rect
	case KindCircle:
		return s.Circle
	case KindArrow:
		return s.Arrow
	case KindText:
		return s.Text
	case KindCallout:
		return s.Callout
	case KindCloud:
		return s.Cloud
	case KindStamp:
		return s.Stamp
	default:
		return -1
	}
}

// Set records the selected index for a kind.
func (s *Selection) Set(k Kind, index int) {
	switch k {
	case KindFreehand:
		s.Freehand = index
	case KindRect:
		s.Rect = index
	case KindCircle:
		s.Circle = index
	case KindArrow:
		s.Arrow = index
	case KindText:
		s.Text = index
	case KindCallout:
		s.Callout = index
	case KindCloud:
		s.Cloud = index
	case KindStamp:
		s.Stamp = index
	}
}

// Clear deselects every kind.
func (s *Selection) Clear() { *s = NewSelection() }
