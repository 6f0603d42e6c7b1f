package shape

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/pagemark/internal/geom"
)

func sampleModel() *Model {
	m := NewModel()
	m.Freehands = append(m.Freehands, Freehand{
		Points:      []geom.Point{{X: 1, Y: 1}, {X: 5, Y: 7}},
		Color:       color.RGBA{255, 0, 0, 255},
		StrokeWidth: 2,
		Opacity:     1,
	})
	m.Rects = append(m.Rects, Rect{X: 10, Y: 10, W: 40, H: 30, Color: color.RGBA{0, 0, 255, 255}, StrokeWidth: 2, Opacity: 1})
	m.Circles = append(m.Circles, Circle{X: 50, Y: 50, R: 10, Color: color.RGBA{0, 255, 0, 255}, StrokeWidth: 1, Opacity: 0.5})
	m.Texts = append(m.Texts, Text{X: 5, Y: 5, W: 80, H: 30, BaseW: 80, BaseH: 30, Text: "hello", FontSize: 14, Opacity: 1})
	return m
}

func TestCloneIsDeep(t *testing.T) {
	m := sampleModel()
	c := m.Clone()
	if !m.Equal(c) {
		t.Fatalf("clone differs from original:\n%s", cmp.Diff(m, c))
	}
	c.Freehands[0].Points[0].X = 99
	c.Rects[0].W = 1
	if m.Freehands[0].Points[0].X == 99 {
		t.Error("clone aliases freehand points of the original")
	}
	if m.Rects[0].W == 1 {
		t.Error("clone aliases rect slice of the original")
	}
}

func TestEqual(t *testing.T) {
	m := sampleModel()
	o := m.Clone()
	if !m.Equal(o) {
		t.Fatal("expected equal models")
	}
	o.Circles[0].Color = color.RGBA{1, 2, 3, 255}
	if m.Equal(o) {
		t.Fatal("expected models to differ after color change")
	}
}

func TestDeleteShiftsIndices(t *testing.T) {
	m := NewModel()
	m.Rects = []Rect{{X: 1}, {X: 2}, {X: 3}}
	m.Delete(KindRect, 1)
	if len(m.Rects) != 2 || m.Rects[0].X != 1 || m.Rects[1].X != 3 {
		t.Fatalf("unexpected rects after delete: %+v", m.Rects)
	}
	m.Delete(KindRect, 5) // out of range is ignored
	if len(m.Rects) != 2 {
		t.Fatalf("out-of-range delete mutated model: %+v", m.Rects)
	}
}

func TestSetBoundsNormalizes(t *testing.T) {
	m := NewModel()
	m.Rects = []Rect{{}}
	m.SetBounds(KindRect, 0, geom.R(50, 40, -40, -30))
	got := m.Rects[0]
	if got.X != 10 || got.Y != 10 || got.W != 40 || got.H != 30 {
		t.Fatalf("unexpected rect after SetBounds: %+v", got)
	}
}

func TestSetBoundsKeepsTextBaseSize(t *testing.T) {
	m := NewModel()
	m.Texts = []Text{{BaseW: 100, BaseH: 40}}
	m.SetBounds(KindText, 0, geom.R(0, 0, 50, 20))
	got := m.Texts[0]
	if got.W != 100 || got.H != 40 {
		t.Fatalf("text shrank below base size: w=%v h=%v", got.W, got.H)
	}
	m.SetBounds(KindText, 0, geom.R(0, 0, 150, 60))
	got = m.Texts[0]
	if got.W != 150 || got.H != 60 {
		t.Fatalf("text did not grow: w=%v h=%v", got.W, got.H)
	}
}

func TestApplyPropertiesOnlyTouchesTarget(t *testing.T) {
	m := sampleModel()
	before := m.Clone()
	p := DefaultProperties()
	p.Color = color.RGBA{9, 9, 9, 255}
	m.ApplyProperties(KindCircle, 0, p)
	if m.Circles[0].Color != p.Color {
		t.Errorf("circle color = %v, want %v", m.Circles[0].Color, p.Color)
	}
	if diff := cmp.Diff(before.Rects, m.Rects); diff != "" {
		t.Errorf("rects changed: %s", diff)
	}
	if diff := cmp.Diff(before.Freehands, m.Freehands); diff != "" {
		t.Errorf("freehands changed: %s", diff)
	}
}

func TestPropertiesRoundTrip(t *testing.T) {
	m := sampleModel()
	p := DefaultProperties()
	p.Color = color.RGBA{1, 2, 3, 255}
	p.FontSize = 22
	p.Align = AlignCenter
	m.ApplyProperties(KindText, 0, p)
	got := m.PropertiesOf(KindText, 0, DefaultProperties())
	if got.Color != p.Color || got.FontSize != p.FontSize || got.Align != p.Align {
		t.Fatalf("PropertiesOf = %+v, want color/font/align from %+v", got, p)
	}
}

func TestTranslateCalloutMovesAnchor(t *testing.T) {
	m := NewModel()
	m.Callouts = []Callout{{Text: Text{X: 10, Y: 10, W: 50, H: 20}, AnchorX: 0, AnchorY: 0}}
	m.Translate(KindCallout, 0, 5, -3)
	c := m.Callouts[0]
	if c.X != 15 || c.Y != 7 || c.AnchorX != 5 || c.AnchorY != -3 {
		t.Fatalf("unexpected callout after translate: %+v", c)
	}
}

func TestSelection(t *testing.T) {
	s := NewSelection()
	for _, k := range []Kind{KindFreehand, KindRect, KindCircle, KindArrow, KindText, KindCallout, KindCloud, KindStamp} {
		if s.Get(k) != -1 {
			t.Fatalf("new selection has %v selected", k)
		}
	}
	s.Set(KindCircle, 3)
	if s.Get(KindCircle) != 3 {
		t.Fatalf("Get(circle) = %d, want 3", s.Get(KindCircle))
	}
	s.Clear()
	if s.Get(KindCircle) != -1 {
		t.Fatal("Clear did not deselect")
	}
}
