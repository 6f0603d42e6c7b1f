package engine

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/pagemark/internal/geom"
	"github.com/example/pagemark/internal/shape"
)

// charMeasurer gives every rune a fixed advance so wrap geometry is
// predictable without a real font.
type charMeasurer struct {
	cw float64
	lh float64
}

func (m charMeasurer) Width(s string, _ float64) float64 { return float64(len([]rune(s))) * m.cw }

func (m charMeasurer) LineHeight(_ float64) float64 { return m.lh }

func newTestEngine(opts ...Option) *Engine {
	opts = append([]Option{WithMeasurer(charMeasurer{cw: 7, lh: 12})}, opts...)
	e := New(opts...)
	e.SetPageLoaded(true)
	return e
}

func drag(e *Engine, from, to geom.Point) {
	e.PointerDown(from, 0)
	e.PointerMove(to)
	e.PointerUp(to)
}

func TestDrawRectNormalizesAndSelects(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolRect)
	drag(e, geom.Pt(50, 40), geom.Pt(10, 10))

	if got := len(e.Model().Rects); got != 1 {
		t.Fatalf("rects = %d, want 1", got)
	}
	r := e.Model().Rects[0]
	want := geom.Rect{X: 10, Y: 10, W: 40, H: 30}
	if got := (geom.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}); got != want {
		t.Errorf("bounds = %+v, want %+v", got, want)
	}
	kind, idx, ok := e.SelectedShape()
	if !ok || kind != shape.KindRect || idx != 0 {
		t.Errorf("selection = %v/%d/%v, want rect/0/true", kind, idx, ok)
	}
}

func TestClickWithoutDragDiscardsDraft(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolRect)
	e.PointerDown(geom.Pt(20, 20), 0)
	e.PointerUp(geom.Pt(20, 20))

	if got := len(e.Model().Rects); got != 0 {
		t.Errorf("rects = %d, want 0", got)
	}
	if e.CanUndo() {
		t.Error("degenerate gesture recorded a history step")
	}
}

func TestDrawBeforePageLoadIsIgnored(t *testing.T) {
	e := newTestEngine()
	e.SetPageLoaded(false)
	e.SetActiveTool(ToolRect)
	drag(e, geom.Pt(0, 0), geom.Pt(30, 30))

	if got := len(e.Model().Rects); got != 0 {
		t.Errorf("rects = %d, want 0", got)
	}
}

func TestCircleDraftGrowsFromCenter(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolCircle)
	drag(e, geom.Pt(100, 100), geom.Pt(103, 104))

	if got := len(e.Model().Circles); got != 1 {
		t.Fatalf("circles = %d, want 1", got)
	}
	c := e.Model().Circles[0]
	if c.X != 100 || c.Y != 100 || c.R != 5 {
		t.Errorf("circle = (%v,%v) r=%v, want (100,100) r=5", c.X, c.Y, c.R)
	}
}

func TestMoveSelectedShape(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolRect)
	drag(e, geom.Pt(10, 10), geom.Pt(50, 40))

	e.SetActiveTool(ToolSelect)
	drag(e, geom.Pt(30, 25), geom.Pt(130, 85))

	r := e.Model().Rects[0]
	if r.X != 110 || r.Y != 70 {
		t.Errorf("moved to (%v,%v), want (110,70)", r.X, r.Y)
	}
	if r.W != 40 || r.H != 30 {
		t.Errorf("size changed to %vx%v during move", r.W, r.H)
	}
}

func TestResizeCornerHandle(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolRect)
	drag(e, geom.Pt(10, 10), geom.Pt(50, 40))

	e.SetActiveTool(ToolSelect)
	// grab the bottom-right handle and drag past the opposite corner
	drag(e, geom.Pt(50, 40), geom.Pt(0, 0))

	r := e.Model().Rects[0]
	want := geom.Rect{X: 0, Y: 0, W: 10, H: 10}
	if got := (geom.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}); got != want {
		t.Errorf("resized bounds = %+v, want %+v", got, want)
	}
}

func TestArrowEndpointDrag(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolArrow)
	drag(e, geom.Pt(10, 10), geom.Pt(100, 10))

	e.SetActiveTool(ToolSelect)
	drag(e, geom.Pt(100, 10), geom.Pt(100, 80))

	a := e.Model().Arrows[0]
	if a.X1 != 10 || a.Y1 != 10 {
		t.Errorf("tail moved to (%v,%v)", a.X1, a.Y1)
	}
	if a.X2 != 100 || a.Y2 != 80 {
		t.Errorf("head = (%v,%v), want (100,80)", a.X2, a.Y2)
	}
}

func TestTopmostShapeWinsHit(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolRect)
	drag(e, geom.Pt(10, 10), geom.Pt(100, 100))
	drag(e, geom.Pt(40, 40), geom.Pt(80, 80))

	e.SetActiveTool(ToolSelect)
	e.PointerDown(geom.Pt(60, 60), 0)
	e.PointerUp(geom.Pt(60, 60))

	_, idx, ok := e.SelectedShape()
	if !ok || idx != 1 {
		t.Errorf("selected index = %d/%v, want 1/true", idx, ok)
	}
}

func TestUndoRedoThroughKeys(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolRect)
	drag(e, geom.Pt(10, 10), geom.Pt(50, 40))

	if !e.Key(KeyEvent{Code: KeyRune, Rune: 'z', Mods: ModCtrl}) {
		t.Fatal("undo key not consumed")
	}
	if got := len(e.Model().Rects); got != 0 {
		t.Fatalf("after undo rects = %d, want 0", got)
	}
	if !e.Key(KeyEvent{Code: KeyRune, Rune: 'z', Mods: ModCtrl | ModShift}) {
		t.Fatal("redo key not consumed")
	}
	if got := len(e.Model().Rects); got != 1 {
		t.Errorf("after redo rects = %d, want 1", got)
	}
}

func TestRedoWithShiftedRune(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolRect)
	drag(e, geom.Pt(10, 10), geom.Pt(50, 40))

	e.Key(KeyEvent{Code: KeyRune, Rune: 'z', Mods: ModCtrl})
	if got := len(e.Model().Rects); got != 0 {
		t.Fatalf("after undo rects = %d, want 0", got)
	}
	// Hosts deliver the shifted rune while Shift is held.
	if !e.Key(KeyEvent{Code: KeyRune, Rune: 'Z', Mods: ModCtrl | ModShift}) {
		t.Fatal("redo key not consumed")
	}
	if got := len(e.Model().Rects); got != 1 {
		t.Errorf("after redo rects = %d, want 1", got)
	}
}

func TestHeldUndoFiresOnce(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolRect)
	drag(e, geom.Pt(10, 10), geom.Pt(50, 40))
	drag(e, geom.Pt(60, 60), geom.Pt(90, 90))

	e.Key(KeyEvent{Code: KeyRune, Rune: 'z', Mods: ModCtrl})
	e.Key(KeyEvent{Code: KeyRune, Rune: 'z', Mods: ModCtrl, Repeat: true})
	e.Key(KeyEvent{Code: KeyRune, Rune: 'z', Mods: ModCtrl, Repeat: true})

	if got := len(e.Model().Rects); got != 1 {
		t.Errorf("rects = %d, want 1 (auto-repeat should not stack undos)", got)
	}
}

func TestDeleteSelected(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolCircle)
	drag(e, geom.Pt(50, 50), geom.Pt(60, 50))

	if !e.Key(KeyEvent{Code: KeyDelete}) {
		t.Fatal("delete key not consumed with a selection")
	}
	if got := len(e.Model().Circles); got != 0 {
		t.Fatalf("circles = %d, want 0", got)
	}
	e.Undo()
	if got := len(e.Model().Circles); got != 1 {
		t.Errorf("after undo circles = %d, want 1", got)
	}
}

func TestCopyPasteOffsetsCopy(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolRect)
	drag(e, geom.Pt(10, 10), geom.Pt(50, 40))

	e.Key(KeyEvent{Code: KeyRune, Rune: 'c', Mods: ModCtrl})
	e.Key(KeyEvent{Code: KeyRune, Rune: 'v', Mods: ModCtrl})

	if got := len(e.Model().Rects); got != 2 {
		t.Fatalf("rects = %d, want 2", got)
	}
	orig, dup := e.Model().Rects[0], e.Model().Rects[1]
	if dup.X != orig.X+pasteOffset || dup.Y != orig.Y+pasteOffset {
		t.Errorf("pasted at (%v,%v), want (%v,%v)", dup.X, dup.Y, orig.X+pasteOffset, orig.Y+pasteOffset)
	}
	kind, idx, _ := e.SelectedShape()
	if kind != shape.KindRect || idx != 1 {
		t.Errorf("selection = %v/%d, want rect/1", kind, idx)
	}
}

func TestSetPropertiesUpdatesSelectedOnly(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolRect)
	drag(e, geom.Pt(10, 10), geom.Pt(50, 40))
	drag(e, geom.Pt(60, 60), geom.Pt(90, 90))

	e.SetActiveTool(ToolSelect)
	e.PointerDown(geom.Pt(20, 20), 0)
	e.PointerUp(geom.Pt(20, 20))

	blue := color.RGBA{B: 255, A: 255}
	p := e.Properties()
	p.Color = blue
	p.StrokeWidth = 7
	e.SetProperties(p)

	if got := e.Model().Rects[0].Color; got != blue {
		t.Errorf("selected rect color = %v, want %v", got, blue)
	}
	if got := e.Model().Rects[1].StrokeWidth; got == 7 {
		t.Error("unselected rect picked up the style edit")
	}
	e.Undo()
	if got := e.Model().Rects[0].StrokeWidth; got == 7 {
		t.Error("style edit was not a single undo step")
	}
}

func TestSelectingShapeReportsItsStoredStyle(t *testing.T) {
	var reported shape.Properties
	e := newTestEngine(WithPropertiesListener(func(p shape.Properties) { reported = p }))
	e.SetActiveTool(ToolRect)
	drag(e, geom.Pt(10, 10), geom.Pt(50, 40))

	green := color.RGBA{G: 255, A: 255}
	p := e.Properties()
	p.Color = green
	e.SetProperties(p)

	e.SetActiveTool(ToolSelect)
	e.PointerDown(geom.Pt(20, 20), 0)
	e.PointerUp(geom.Pt(20, 20))

	if reported.Color != green {
		t.Errorf("reported color = %v, want %v", reported.Color, green)
	}
}

func TestTextDraftOpensEditorAndCommits(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolText)
	drag(e, geom.Pt(10, 10), geom.Pt(110, 50))

	if e.Editor() == nil {
		t.Fatal("no edit session after placing a text box")
	}
	for _, r := range "hi" {
		e.Key(KeyEvent{Code: KeyRune, Rune: r})
	}
	e.Key(KeyEvent{Code: KeyEnter, Mods: ModCtrl})

	if e.Editor() != nil {
		t.Fatal("session still open after commit")
	}
	if got := e.Model().Texts[0].Text; got != "hi" {
		t.Errorf("text = %q, want %q", got, "hi")
	}
}

func TestEditorEscapeRestoresOriginal(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolText)
	drag(e, geom.Pt(10, 10), geom.Pt(110, 50))
	for _, r := range "keep" {
		e.Key(KeyEvent{Code: KeyRune, Rune: r})
	}
	e.Key(KeyEvent{Code: KeyEnter, Mods: ModCtrl})

	// reopen with a tool-click and type over it, then bail out
	e.PointerDown(geom.Pt(20, 20), 0)
	e.PointerUp(geom.Pt(20, 20))
	if e.Editor() == nil {
		t.Fatal("tool-click on existing box did not open the editor")
	}
	e.Key(KeyEvent{Code: KeyRune, Rune: 'x'})
	e.Key(KeyEvent{Code: KeyEscape})

	if got := e.Model().Texts[0].Text; got != "keep" {
		t.Errorf("text after escape = %q, want %q", got, "keep")
	}
}

func TestTypingGrowsBoxNeverBelowBase(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolText)
	drag(e, geom.Pt(0, 0), geom.Pt(58, 20))

	base := e.Model().Texts[0]
	for _, r := range "aa bb cc" {
		e.Key(KeyEvent{Code: KeyRune, Rune: r})
	}
	grown := e.Model().Texts[0]
	if grown.H <= base.H {
		t.Errorf("height %v did not grow past %v for wrapped text", grown.H, base.H)
	}
	e.Key(KeyEvent{Code: KeyBackspace})
	e.Key(KeyEvent{Code: KeyBackspace})
	e.Key(KeyEvent{Code: KeyBackspace})
	if got := e.Model().Texts[0].W; got < base.BaseW {
		t.Errorf("width %v shrank below base %v", got, base.BaseW)
	}
}

func TestResizeBelowContentKeepsDraggedBase(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolText)
	drag(e, geom.Pt(0, 0), geom.Pt(100, 60))
	for _, r := range "one" {
		e.Key(KeyEvent{Code: KeyRune, Rune: r})
	}
	e.Key(KeyEvent{Code: KeyEnter})
	for _, r := range "two" {
		e.Key(KeyEvent{Code: KeyRune, Rune: r})
	}
	e.Key(KeyEvent{Code: KeyEnter})
	for _, r := range "three" {
		e.Key(KeyEvent{Code: KeyRune, Rune: r})
	}
	e.Key(KeyEvent{Code: KeyEnter, Mods: ModCtrl})

	// drag the bottom edge up past what three lines need
	e.SetActiveTool(ToolSelect)
	drag(e, geom.Pt(100, 60), geom.Pt(100, 20))

	box := e.Model().Texts[0]
	// three lines at line height 12 plus padding
	if want := 3*12 + 2*4.0; box.H != want {
		t.Errorf("h = %v, want guard height %v", box.H, want)
	}
	if box.BaseH != 20 {
		t.Errorf("base h = %v, want the dragged 20", box.BaseH)
	}
}

func TestCalloutTwoPhasePlacement(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolCallout)
	drag(e, geom.Pt(10, 10), geom.Pt(200, 150))

	if got := len(e.Model().Callouts); got != 1 {
		t.Fatalf("callouts = %d, want 1", got)
	}
	c := e.Model().Callouts[0]
	if c.AnchorX != 10 || c.AnchorY != 10 {
		t.Errorf("anchor = (%v,%v), want (10,10)", c.AnchorX, c.AnchorY)
	}
	center := c.Text.Bounds().Center()
	if center.X != 200 || center.Y != 150 {
		t.Errorf("box center = (%v,%v), want (200,150)", center.X, center.Y)
	}
	if e.Editor() == nil {
		t.Error("editor did not open on the new callout")
	}
}

func TestCalloutMoveKeepsAnchor(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolCallout)
	drag(e, geom.Pt(10, 10), geom.Pt(200, 150))
	e.Key(KeyEvent{Code: KeyEnter, Mods: ModCtrl})

	before := e.Model().Callouts[0]
	e.SetActiveTool(ToolSelect)
	drag(e, geom.Pt(200, 150), geom.Pt(230, 170))

	after := e.Model().Callouts[0]
	if after.X != before.X+30 || after.Y != before.Y+20 {
		t.Errorf("box at (%v,%v), want (%v,%v)", after.X, after.Y, before.X+30, before.Y+20)
	}
	if after.AnchorX != before.AnchorX+30 || after.AnchorY != before.AnchorY+20 {
		t.Errorf("anchor at (%v,%v), want it translated with the box", after.AnchorX, after.AnchorY)
	}
}

func TestStampPlacementIsCenteredAndSized(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolStamp)
	e.PointerDown(geom.Pt(300, 200), 0)
	e.PointerUp(geom.Pt(300, 200))

	if got := len(e.Model().Stamps); got != 1 {
		t.Fatalf("stamps = %d, want 1", got)
	}
	s := e.Model().Stamps[0]
	c := s.Bounds().Center()
	if c.X != 300 || c.Y != 200 {
		t.Errorf("center = (%v,%v), want (300,200)", c.X, c.Y)
	}
	if s.W < 140 || s.W > 240 || s.H < 44 || s.H > 80 {
		t.Errorf("size %vx%v outside clamp range", s.W, s.H)
	}
}

func TestStampClickOnExistingMovesUnlessShift(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolStamp)
	e.PointerDown(geom.Pt(300, 200), 0)
	e.PointerUp(geom.Pt(300, 200))

	// same tool, press on the existing stamp: drag moves it
	drag(e, geom.Pt(300, 200), geom.Pt(340, 220))
	if got := len(e.Model().Stamps); got != 1 {
		t.Fatalf("stamps = %d, want 1 after move", got)
	}
	c := e.Model().Stamps[0].Bounds().Center()
	if c.X != 340 || c.Y != 220 {
		t.Errorf("center = (%v,%v), want (340,220)", c.X, c.Y)
	}

	// Shift forces a second stamp on top
	e.PointerDown(geom.Pt(340, 220), ModShift)
	e.PointerUp(geom.Pt(340, 220))
	if got := len(e.Model().Stamps); got != 2 {
		t.Errorf("stamps = %d, want 2 after shift-click", got)
	}
}

func TestFreehandStrokeRecordsPath(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolFreehand)
	e.PointerDown(geom.Pt(10, 10), 0)
	e.PointerMove(geom.Pt(14, 12))
	e.PointerMove(geom.Pt(20, 18))
	e.PointerUp(geom.Pt(25, 20))

	if got := len(e.Model().Freehands); got != 1 {
		t.Fatalf("freehands = %d, want 1", got)
	}
	want := []geom.Point{{X: 10, Y: 10}, {X: 14, Y: 12}, {X: 20, Y: 18}, {X: 25, Y: 20}}
	if diff := cmp.Diff(want, e.Model().Freehands[0].Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestSwitchingToolKeepsSelection(t *testing.T) {
	e := newTestEngine()
	e.SetActiveTool(ToolRect)
	drag(e, geom.Pt(10, 10), geom.Pt(50, 40))

	e.SetActiveTool(ToolCircle)
	if _, _, ok := e.SelectedShape(); !ok {
		t.Error("tool switch cleared the selection")
	}
	if e.LastShapeTool() != ToolCircle {
		t.Errorf("last shape tool = %v, want circle", e.LastShapeTool())
	}
}
