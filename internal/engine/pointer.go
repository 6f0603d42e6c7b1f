package engine

import (
	"math"

	"github.com/example/pagemark/internal/editor"
	"github.com/example/pagemark/internal/geom"
	"github.com/example/pagemark/internal/shape"
	"github.com/example/pagemark/internal/wrap"
)

// minDragExtent is the document-space extent below which a draw gesture is
// considered an accidental click and discarded.
const minDragExtent = 2

// hitKinds is the order the select tool probes collections: the reverse of
// render order, so the topmost-drawn kind wins.
var hitKinds = []shape.Kind{
	shape.KindStamp,
	shape.KindCloud,
	shape.KindCallout,
	shape.KindText,
	shape.KindArrow,
	shape.KindCircle,
	shape.KindRect,
	shape.KindFreehand,
}

// hit describes what a pointer-down landed on.
type hit struct {
	kind   shape.Kind
	index  int
	handle Handle
}

func (e *Engine) handleRadius() float64 { return HandleHitRadius / e.scale }

// hitShape probes one collection topmost-first: for each candidate, handle
// zones are tested before the body, and last-inserted shapes win ties.
func (e *Engine) hitShape(kind shape.Kind, p geom.Point) (hit, bool) {
	radius := e.handleRadius()
	for i := e.model.Count(kind) - 1; i >= 0; i-- {
		if kind == shape.KindArrow {
			a := e.model.Arrows[i]
			if h := hitArrowHandle(a, p, radius); h != HandleNone {
				return hit{kind: kind, index: i, handle: h}, true
			}
			if segDist(p, geom.Pt(a.X1, a.Y1), geom.Pt(a.X2, a.Y2)) <= a.StrokeWidth/2+radius/2 {
				return hit{kind: kind, index: i}, true
			}
			continue
		}
		if kind == shape.KindFreehand {
			if e.hitFreehand(i, p) {
				return hit{kind: kind, index: i}, true
			}
			continue
		}
		b, ok := e.model.Bounds(kind, i)
		if !ok {
			continue
		}
		if h := hitHandle(b, p, radius); h != HandleNone {
			return hit{kind: kind, index: i, handle: h}, true
		}
		if kind == shape.KindCircle {
			c := e.model.Circles[i]
			if p.Dist(geom.Pt(c.X, c.Y)) <= c.R+c.StrokeWidth/2 {
				return hit{kind: kind, index: i}, true
			}
			continue
		}
		if b.Inset(-radius / 2).Contains(p) {
			return hit{kind: kind, index: i}, true
		}
	}
	return hit{}, false
}

// hitAny probes every collection in topmost-first kind order.
func (e *Engine) hitAny(p geom.Point) (hit, bool) {
	for _, k := range hitKinds {
		if h, ok := e.hitShape(k, p); ok {
			return h, true
		}
	}
	return hit{}, false
}

func (e *Engine) hitFreehand(i int, p geom.Point) bool {
	f := e.model.Freehands[i]
	tol := f.StrokeWidth/2 + e.handleRadius()/2
	for j := 1; j < len(f.Points); j++ {
		if segDist(p, f.Points[j-1], f.Points[j]) <= tol {
			return true
		}
	}
	return false
}

// Arrow handles are its two endpoints; dragging one moves that endpoint.
func hitArrowHandle(a shape.Arrow, p geom.Point, radius float64) Handle {
	if p.Dist(geom.Pt(a.X1, a.Y1)) <= radius {
		return HandleTL
	}
	if p.Dist(geom.Pt(a.X2, a.Y2)) <= radius {
		return HandleBR
	}
	return HandleNone
}

// segDist returns the distance from p to the segment ab.
func segDist(p, a, b geom.Point) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	l2 := abx*abx + aby*aby
	if l2 == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(geom.Pt(a.X+t*abx, a.Y+t*aby))
}

// PointerDown starts an interaction at a document-space point. It decides
// between grabbing a resize handle, dragging a shape body, and seeding a
// new draft shape.
func (e *Engine) PointerDown(p geom.Point, mods Modifiers) {
	if !e.loaded {
		return
	}
	if e.edit != nil {
		// clicking outside the edited box commits the session (blur)
		if b, ok := e.model.Bounds(e.edit.Kind, e.edit.Index); ok && b.Contains(p) {
			return
		}
		e.commitEditor()
	}
	e.timeline.Begin()
	e.ia = interaction{start: p}

	if e.tool == ToolSelect {
		if h, ok := e.hitAny(p); ok {
			e.beginManipulation(h, p)
		} else {
			e.sel.Clear()
			e.selLive = false
			e.notifyChange()
		}
		return
	}

	kind, ok := e.tool.ShapeKind()
	if !ok {
		return
	}

	// drawing tools first probe their own collection so existing shapes
	// can still be grabbed without switching to select
	if h, ok := e.hitShape(kind, p); ok {
		if kind == shape.KindStamp && h.handle == HandleNone && mods&ModShift != 0 {
			// Shift forces placing a new stamp on top of an existing one
		} else {
			e.beginManipulation(h, p)
			return
		}
	}

	e.beginDraft(kind, p)
}

func (e *Engine) beginManipulation(h hit, p geom.Point) {
	e.selectShape(h.kind, h.index)
	b, _ := e.model.Bounds(h.kind, h.index)
	if h.handle != HandleNone {
		e.ia = interaction{kind: iaResize, shapeKind: h.kind, index: h.index, handle: h.handle, start: p, startBounds: b}
		return
	}
	e.ia = interaction{kind: iaMove, shapeKind: h.kind, index: h.index, start: p, startBounds: b}
}

func (e *Engine) beginDraft(kind shape.Kind, p geom.Point) {
	pr := e.props
	d := &Draft{Kind: kind}
	switch kind {
	case shape.KindFreehand:
		d.Freehand = shape.Freehand{
			Points:      []geom.Point{p},
			Color:       pr.Color,
			StrokeWidth: pr.StrokeWidth,
			Opacity:     pr.Opacity,
		}
	case shape.KindRect:
		d.Rect = shape.Rect{X: p.X, Y: p.Y, Color: pr.Color, StrokeWidth: pr.StrokeWidth, Opacity: pr.Opacity}
	case shape.KindCircle:
		d.Circle = shape.Circle{X: p.X, Y: p.Y, Color: pr.Color, StrokeWidth: pr.StrokeWidth, Opacity: pr.Opacity}
	case shape.KindArrow:
		d.Arrow = shape.Arrow{X1: p.X, Y1: p.Y, X2: p.X, Y2: p.Y, Color: pr.Color, StrokeWidth: pr.StrokeWidth, Opacity: pr.Opacity}
	case shape.KindText:
		d.Text = e.newText(p)
	case shape.KindCallout:
		c := shape.Callout{Text: e.newText(p)}
		c.AnchorX, c.AnchorY = p.X, p.Y
		c.Align = shape.AlignLeft
		d.Callout = c
	case shape.KindCloud:
		d.Cloud = shape.Cloud{
			X: p.X, Y: p.Y,
			Color:       pr.Color,
			StrokeWidth: pr.CloudLineWidth,
			Opacity:     pr.Opacity,
			ScallopSize: pr.ScallopSize,
		}
	case shape.KindStamp:
		d.Stamp = e.newStamp(p)
	}
	e.ia = interaction{kind: iaDraw, shapeKind: kind, start: p}
	e.draft = d
	e.notifyChange()
}

func (e *Engine) newText(p geom.Point) shape.Text {
	pr := e.props
	return shape.Text{
		X: p.X, Y: p.Y,
		Color:         pr.Color,
		FontSize:      pr.FontSize,
		FontWeight:    pr.FontWeight,
		FontStyle:     pr.FontStyle,
		Decoration:    pr.Decoration,
		Align:         pr.Align,
		Opacity:       pr.Opacity,
		StrokeWidth:   pr.StrokeWidth,
		BorderEnabled: pr.TextBorder,
		BorderWidth:   pr.TextBorderWidth,
	}
}

func (e *Engine) newStamp(p geom.Point) shape.Stamp {
	t := e.stampTpl
	w, h := wrap.StampSize(t.Title, t.FontSize, e.measurer)
	return shape.Stamp{
		X: p.X - w/2, Y: p.Y - h/2, W: w, H: h,
		Title:       t.Title,
		Status:      t.Status,
		Color:       t.Color,
		Opacity:     t.Opacity,
		StrokeWidth: t.StrokeWidth,
		FontSize:    t.FontSize,
		Logo:        t.Logo,
	}
}

// PointerMove streams the current pointer position into the active
// interaction. Geometry is recomputed from the document-space position on
// every event so it stays correct under zoom.
func (e *Engine) PointerMove(p geom.Point) {
	if e.ia.kind == iaNone {
		return
	}
	if p.Dist(e.ia.start) > minDragExtent {
		e.ia.moved = true
	}
	switch e.ia.kind {
	case iaDraw:
		e.updateDraft(p)
	case iaMove:
		e.moveTo(p)
	case iaResize:
		e.resizeTo(p)
	}
	e.notifyChange()
}

func (e *Engine) updateDraft(p geom.Point) {
	d := e.draft
	if d == nil {
		return
	}
	s := e.ia.start
	switch d.Kind {
	case shape.KindFreehand:
		d.Freehand.Points = append(d.Freehand.Points, p)
	case shape.KindRect:
		d.Rect.W, d.Rect.H = p.X-s.X, p.Y-s.Y
	case shape.KindCircle:
		d.Circle.R = p.Dist(s)
	case shape.KindArrow:
		d.Arrow.X2, d.Arrow.Y2 = p.X, p.Y
	case shape.KindText:
		d.Text.W, d.Text.H = p.X-s.X, p.Y-s.Y
	case shape.KindCallout:
		// first phase: the leader tail follows the pointer
		d.Callout.X, d.Callout.Y = p.X, p.Y
	case shape.KindCloud:
		d.Cloud.W, d.Cloud.H = p.X-s.X, p.Y-s.Y
	case shape.KindStamp:
		c := d.Stamp.Bounds().Center()
		d.Stamp.X += p.X - c.X
		d.Stamp.Y += p.Y - c.Y
	}
}

func (e *Engine) moveTo(p geom.Point) {
	dx := p.X - e.ia.start.X
	dy := p.Y - e.ia.start.Y
	cur, ok := e.model.Bounds(e.ia.shapeKind, e.ia.index)
	if !ok {
		return
	}
	want := e.ia.startBounds
	e.model.Translate(e.ia.shapeKind, e.ia.index, want.X+dx-cur.X, want.Y+dy-cur.Y)
	e.timeline.MarkDirty()
}

func (e *Engine) resizeTo(p geom.Point) {
	k := e.ia.shapeKind
	if k == shape.KindArrow {
		a := &e.model.Arrows[e.ia.index]
		if e.ia.handle == HandleTL {
			a.X1, a.Y1 = p.X, p.Y
		} else {
			a.X2, a.Y2 = p.X, p.Y
		}
		e.timeline.MarkDirty()
		return
	}
	r := resizeBounds(e.ia.startBounds, e.ia.handle, p).Canon()
	if k == shape.KindText || k == shape.KindCallout {
		// the base records the raw dragged extent, before the guard
		e.setTextBase(k, e.ia.index, r)
		// auto-grow guard: the box may not end up shorter than its
		// wrapped content requires at the new width
		text, fontSize := e.textContent(k, e.ia.index)
		if minH := editor.MinHeight(text, r.W, fontSize, e.measurer); r.H < minH {
			r.H = minH
		}
	}
	e.model.SetBounds(k, e.ia.index, r)
	e.timeline.MarkDirty()
}

func (e *Engine) textContent(k shape.Kind, idx int) (string, float64) {
	if k == shape.KindCallout {
		t := e.model.Callouts[idx].Text
		return t.Text, t.FontSize
	}
	t := e.model.Texts[idx]
	return t.Text, t.FontSize
}

// setTextBase records an explicit user resize as the shape's new base
// size, the floor below which content auto-grow never shrinks it.
func (e *Engine) setTextBase(k shape.Kind, idx int, r geom.Rect) {
	if k == shape.KindCallout {
		t := &e.model.Callouts[idx].Text
		t.BaseW, t.BaseH = r.W, r.H
		return
	}
	t := &e.model.Texts[idx]
	t.BaseW, t.BaseH = r.W, r.H
}

// PointerUp finalizes the interaction: drafts are normalized and appended
// (degenerate gestures are discarded), and one history snapshot is
// committed.
func (e *Engine) PointerUp(p geom.Point) {
	if !e.loaded {
		return
	}
	ia := e.ia
	switch ia.kind {
	case iaDraw:
		e.updateDraft(p)
		e.finalizeDraft()
	case iaMove:
		e.moveTo(p)
		if !ia.moved && (ia.shapeKind == shape.KindText || ia.shapeKind == shape.KindCallout) {
			if t, ok := e.tool.ShapeKind(); ok && t == ia.shapeKind {
				// tool-click on an existing box opens the editor
				e.openEditor(ia.shapeKind, ia.index)
			}
		}
	case iaResize:
		e.resizeTo(p)
	}
	e.ia = interaction{}
	e.draft = nil
	e.timeline.Commit(e.model)
	e.notifyChange()
}

// finalizeDraft normalizes the draft and appends it to its collection,
// discarding degenerate geometry from an accidental click.
func (e *Engine) finalizeDraft() {
	d := e.draft
	if d == nil {
		return
	}
	e.draft = nil
	switch d.Kind {
	case shape.KindFreehand:
		if len(d.Freehand.Points) < 2 {
			return
		}
		e.model.Freehands = append(e.model.Freehands, d.Freehand)
		e.selectShape(shape.KindFreehand, len(e.model.Freehands)-1)
	case shape.KindRect:
		r := d.Rect.Bounds()
		if r.W < minDragExtent && r.H < minDragExtent {
			return
		}
		d.Rect.X, d.Rect.Y, d.Rect.W, d.Rect.H = r.X, r.Y, r.W, r.H
		e.model.Rects = append(e.model.Rects, d.Rect)
		e.selectShape(shape.KindRect, len(e.model.Rects)-1)
	case shape.KindCircle:
		if d.Circle.R < 1 {
			return
		}
		e.model.Circles = append(e.model.Circles, d.Circle)
		e.selectShape(shape.KindCircle, len(e.model.Circles)-1)
	case shape.KindArrow:
		a := d.Arrow
		if geom.Pt(a.X1, a.Y1).Dist(geom.Pt(a.X2, a.Y2)) < minDragExtent {
			return
		}
		e.model.Arrows = append(e.model.Arrows, a)
		e.selectShape(shape.KindArrow, len(e.model.Arrows)-1)
	case shape.KindText:
		r := d.Text.Bounds()
		if r.W < minDragExtent && r.H < minDragExtent {
			return
		}
		t := d.Text
		t.X, t.Y, t.W, t.H = r.X, r.Y, r.W, r.H
		t.BaseW, t.BaseH = r.W, r.H
		e.model.Texts = append(e.model.Texts, t)
		idx := len(e.model.Texts) - 1
		e.selectShape(shape.KindText, idx)
		e.openEditor(shape.KindText, idx)
	case shape.KindCallout:
		e.finalizeCallout(d.Callout)
	case shape.KindCloud:
		r := d.Cloud.Bounds()
		if r.W < minDragExtent && r.H < minDragExtent {
			return
		}
		d.Cloud.X, d.Cloud.Y, d.Cloud.W, d.Cloud.H = r.X, r.Y, r.W, r.H
		e.model.Clouds = append(e.model.Clouds, d.Cloud)
		e.selectShape(shape.KindCloud, len(e.model.Clouds)-1)
	case shape.KindStamp:
		e.model.Stamps = append(e.model.Stamps, d.Stamp)
		e.selectShape(shape.KindStamp, len(e.model.Stamps)-1)
	}
	e.timeline.MarkDirty()
}

// calloutBox is the default text box size placed at a callout's tail.
const (
	calloutBoxW = 140
	calloutBoxH = 44
)

// finalizeCallout completes the two-phase gesture: the drag placed the
// anchor and tail; the box opens centered at the tail with its editor.
func (e *Engine) finalizeCallout(c shape.Callout) {
	tail := geom.Pt(c.X, c.Y)
	if tail.Dist(geom.Pt(c.AnchorX, c.AnchorY)) < minDragExtent {
		// a bare click offsets the box so the leader stays visible
		tail = tail.Add(geom.Pt(calloutBoxW, calloutBoxH))
	}
	c.X = tail.X - calloutBoxW/2
	c.Y = tail.Y - calloutBoxH/2
	c.W, c.H = calloutBoxW, calloutBoxH
	c.BaseW, c.BaseH = calloutBoxW, calloutBoxH
	e.model.Callouts = append(e.model.Callouts, c)
	idx := len(e.model.Callouts) - 1
	e.selectShape(shape.KindCallout, idx)
	e.openEditor(shape.KindCallout, idx)
}
