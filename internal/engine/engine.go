// Package engine implements the annotation editing core: the tool state
// machine, hit-testing and pointer interaction, the shared style record,
// and undo/redo wiring. The engine is UI-free; a host feeds it
// document-space pointer events and key events and renders from its
// read-only snapshot.
package engine

import (
	"log"

	"github.com/example/pagemark/internal/editor"
	"github.com/example/pagemark/internal/geom"
	"github.com/example/pagemark/internal/history"
	"github.com/example/pagemark/internal/shape"
	"github.com/example/pagemark/internal/wrap"
)

// Modifiers is the keyboard modifier state accompanying pointer and key
// events.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
)

// Draft is the in-progress shape while a draw gesture is active. Kind
// selects which field is live.
type Draft struct {
	Kind     shape.Kind
	Freehand shape.Freehand
	Rect     shape.Rect
	Circle   shape.Circle
	Arrow    shape.Arrow
	Text     shape.Text
	Callout  shape.Callout
	Cloud    shape.Cloud
	Stamp    shape.Stamp
}

type interactionKind int

const (
	iaNone interactionKind = iota
	iaDraw
	iaMove
	iaResize
)

// interaction is the explicit drag context: what is being manipulated and
// the geometry captured at pointer-down.
type interaction struct {
	kind        interactionKind
	shapeKind   shape.Kind
	index       int
	handle      Handle
	start       geom.Point
	startBounds geom.Rect
	moved       bool
}

type clipEntry struct {
	kind shape.Kind
	from *shape.Model // single-shape model holding the copied value
}

// Engine owns the live annotation model for one page.
type Engine struct {
	model    *shape.Model
	sel      shape.Selection
	selKind  shape.Kind
	selLive  bool
	props    shape.Properties
	stampTpl shape.StampTemplate
	tool     Tool
	lastTool Tool
	timeline *history.Timeline
	measurer wrap.Measurer
	scale    float64
	loaded   bool

	ia    interaction
	draft *Draft
	edit  *editor.Session
	clip  *clipEntry

	onTool    func(Tool)
	onProps   func(shape.Properties)
	onChange  func()
}

// Option modifies an Engine during creation.
type Option func(*Engine)

// WithMeasurer sets the text measurement backend.
func WithMeasurer(m wrap.Measurer) Option { return func(e *Engine) { e.measurer = m } }

// WithProperties seeds the shared tool-properties record.
func WithProperties(p shape.Properties) Option { return func(e *Engine) { e.props = p } }

// WithStampTemplate sets the template seeding the next placed stamp.
func WithStampTemplate(t shape.StampTemplate) Option { return func(e *Engine) { e.stampTpl = t } }

// WithToolListener registers a callback for tool changes triggered from
// within the engine.
func WithToolListener(fn func(Tool)) Option { return func(e *Engine) { e.onTool = fn } }

// WithPropertiesListener registers a callback fired when selecting an
// existing shape, so the host's style panel reflects the stored style.
func WithPropertiesListener(fn func(shape.Properties)) Option {
	return func(e *Engine) { e.onProps = fn }
}

// WithChangeListener registers a callback fired after any model change.
func WithChangeListener(fn func()) Option { return func(e *Engine) { e.onChange = fn } }

// New creates an engine with an empty model.
func New(opts ...Option) *Engine {
	e := &Engine{
		model:    shape.NewModel(),
		sel:      shape.NewSelection(),
		props:    shape.DefaultProperties(),
		stampTpl: shape.DefaultStampTemplate(),
		tool:     ToolSelect,
		lastTool: ToolFreehand,
		scale:    1,
	}
	for _, o := range opts {
		o(e)
	}
	if e.measurer == nil {
		e.measurer = wrap.Default()
	}
	e.timeline = history.New(e.model)
	return e
}

// Model returns the live model for rendering. Callers must treat it as
// read-only.
func (e *Engine) Model() *shape.Model { return e.model }

// ReplaceModel swaps in externally loaded annotations (e.g. a sidecar file)
// and resets the history timeline to it.
func (e *Engine) ReplaceModel(m *shape.Model) {
	if m == nil {
		m = shape.NewModel()
	}
	e.model = m.Clone()
	e.sel.Clear()
	e.selLive = false
	e.edit = nil
	e.draft = nil
	e.ia = interaction{}
	e.timeline = history.New(e.model)
	e.notifyChange()
}

// Selection returns the per-kind selection record.
func (e *Engine) Selection() shape.Selection { return e.sel }

// SelectedShape returns the kind and index of the shape the user most
// recently selected, or false when nothing is selected.
func (e *Engine) SelectedShape() (shape.Kind, int, bool) {
	if !e.selLive {
		return 0, 0, false
	}
	idx := e.sel.Get(e.selKind)
	if idx < 0 {
		return 0, 0, false
	}
	return e.selKind, idx, true
}

// Draft returns the in-progress shape, or nil when no draw gesture is
// active.
func (e *Engine) Draft() *Draft { return e.draft }

// Editor returns the open inline edit session, or nil.
func (e *Engine) Editor() *editor.Session { return e.edit }

// ActiveTool returns the current tool.
func (e *Engine) ActiveTool() Tool { return e.tool }

// LastShapeTool returns the most recent non-select tool, which decides
// which style controls stay relevant while in select mode.
func (e *Engine) LastShapeTool() Tool { return e.lastTool }

// Properties returns the shared style record.
func (e *Engine) Properties() shape.Properties { return e.props }

// SetActiveTool switches tools. Choosing a non-select tool also records it
// as the last active tool. Switching never clears shapes or selection.
func (e *Engine) SetActiveTool(t Tool) {
	if t == e.tool {
		return
	}
	e.commitEditor()
	e.tool = t
	if t != ToolSelect {
		e.lastTool = t
	}
	if e.onTool != nil {
		e.onTool(t)
	}
	e.notifyChange()
}

// SetViewScale tells the engine the current effective render scale so that
// handle hit zones keep a constant screen size.
func (e *Engine) SetViewScale(s float64) {
	if s > 0 {
		e.scale = s
	}
}

// SetPageLoaded gates drawing: a draw gesture before the first page has
// loaded has no effect.
func (e *Engine) SetPageLoaded(loaded bool) { e.loaded = loaded }

// SetStampTemplate replaces the seed for the next placed stamp.
func (e *Engine) SetStampTemplate(t shape.StampTemplate) { e.stampTpl = t }

// SetProperties replaces the shared style record and pushes it onto the
// currently selected shape of the matching kind, if any. With no matching
// selection the edit only seeds future shapes.
func (e *Engine) SetProperties(p shape.Properties) {
	e.props = p
	kind, ok := e.styleKind()
	if !ok {
		return
	}
	idx := e.sel.Get(kind)
	if idx < 0 {
		return
	}
	e.timeline.Begin()
	e.model.ApplyProperties(kind, idx, p)
	e.timeline.MarkDirty()
	e.timeline.Commit(e.model)
	e.notifyChange()
}

// styleKind is the entity kind whose style panel is currently relevant: the
// active tool's kind, or in select mode the last non-select tool's kind.
func (e *Engine) styleKind() (shape.Kind, bool) {
	if k, ok := e.tool.ShapeKind(); ok {
		return k, true
	}
	return e.lastTool.ShapeKind()
}

// Undo steps the timeline back and replaces the live model. Selection is
// cleared and any open inline editor is closed without writing back.
func (e *Engine) Undo() {
	if m := e.timeline.Undo(); m != nil {
		e.restore(m)
	}
}

// Redo steps the timeline forward.
func (e *Engine) Redo() {
	if m := e.timeline.Redo(); m != nil {
		e.restore(m)
	}
}

func (e *Engine) restore(m *shape.Model) {
	e.model = m
	e.sel.Clear()
	e.selLive = false
	e.edit = nil
	e.draft = nil
	e.ia = interaction{}
	e.notifyChange()
}

// CanUndo reports whether undo would change anything.
func (e *Engine) CanUndo() bool { return e.timeline.CanUndo() }

// CanRedo reports whether redo would change anything.
func (e *Engine) CanRedo() bool { return e.timeline.CanRedo() }

// DeleteSelected removes the selected shape, if any, as one undo step.
func (e *Engine) DeleteSelected() {
	kind, idx, ok := e.SelectedShape()
	if !ok {
		return
	}
	e.timeline.Begin()
	e.model.Delete(kind, idx)
	e.sel.Set(kind, -1)
	e.selLive = false
	e.timeline.MarkDirty()
	e.timeline.Commit(e.model)
	e.notifyChange()
}

// CopySelected stores a deep copy of the selected shape in the engine's
// paste buffer. With no selection it is a no-op.
func (e *Engine) CopySelected() {
	kind, idx, ok := e.SelectedShape()
	if !ok {
		return
	}
	buf := shape.NewModel()
	switch kind {
	case shape.KindFreehand:
		buf.Freehands = append(buf.Freehands, e.model.Freehands[idx])
	case shape.KindRect:
		buf.Rects = append(buf.Rects, e.model.Rects[idx])
	case shape.KindCircle:
		buf.Circles = append(buf.Circles, e.model.Circles[idx])
	case shape.KindArrow:
		buf.Arrows = append(buf.Arrows, e.model.Arrows[idx])
	case shape.KindText:
		buf.Texts = append(buf.Texts, e.model.Texts[idx])
	case shape.KindCallout:
		buf.Callouts = append(buf.Callouts, e.model.Callouts[idx])
	case shape.KindCloud:
		buf.Clouds = append(buf.Clouds, e.model.Clouds[idx])
	case shape.KindStamp:
		buf.Stamps = append(buf.Stamps, e.model.Stamps[idx])
	}
	e.clip = &clipEntry{kind: kind, from: buf.Clone()}
}

// pasteOffset keeps a pasted shape from landing exactly on its source.
const pasteOffset = 16

// Paste appends a copy of the paste buffer with a small positional offset
// and selects it, as one undo step. With an empty buffer it is a no-op.
func (e *Engine) Paste() {
	if e.clip == nil {
		return
	}
	src := e.clip.from.Clone()
	src.Translate(e.clip.kind, 0, pasteOffset, pasteOffset)
	e.timeline.Begin()
	var idx int
	switch e.clip.kind {
	case shape.KindFreehand:
		e.model.Freehands = append(e.model.Freehands, src.Freehands[0])
		idx = len(e.model.Freehands) - 1
	case shape.KindRect:
		e.model.Rects = append(e.model.Rects, src.Rects[0])
		idx = len(e.model.Rects) - 1
	case shape.KindCircle:
		e.model.Circles = append(e.model.Circles, src.Circles[0])
		idx = len(e.model.Circles) - 1
	case shape.KindArrow:
		e.model.Arrows = append(e.model.Arrows, src.Arrows[0])
		idx = len(e.model.Arrows) - 1
	case shape.KindText:
		e.model.Texts = append(e.model.Texts, src.Texts[0])
		idx = len(e.model.Texts) - 1
	case shape.KindCallout:
		e.model.Callouts = append(e.model.Callouts, src.Callouts[0])
		idx = len(e.model.Callouts) - 1
	case shape.KindCloud:
		e.model.Clouds = append(e.model.Clouds, src.Clouds[0])
		idx = len(e.model.Clouds) - 1
	case shape.KindStamp:
		e.model.Stamps = append(e.model.Stamps, src.Stamps[0])
		idx = len(e.model.Stamps) - 1
	}
	e.selectShape(e.clip.kind, idx)
	e.timeline.MarkDirty()
	e.timeline.Commit(e.model)
	e.notifyChange()
}

func (e *Engine) selectShape(kind shape.Kind, idx int) {
	e.sel.Set(kind, idx)
	e.selKind = kind
	e.selLive = true
	if e.onProps != nil {
		e.onProps(e.model.PropertiesOf(kind, idx, e.props))
	}
}

func (e *Engine) notifyChange() {
	if e.onChange != nil {
		e.onChange()
	}
}

// commitEditor writes the open edit session's text into its shape and
// closes the session as one undo step. A nil session is a no-op.
func (e *Engine) commitEditor() {
	s := e.edit
	if s == nil {
		return
	}
	e.edit = nil
	text := s.Text()
	e.timeline.Begin()
	switch s.Kind {
	case shape.KindText:
		if s.Index < len(e.model.Texts) {
			t := &e.model.Texts[s.Index]
			t.Text = text
			s.Grow(t)
		}
	case shape.KindCallout:
		if s.Index < len(e.model.Callouts) {
			t := &e.model.Callouts[s.Index].Text
			t.Text = text
			s.Grow(t)
		}
	default:
		log.Printf("editor session on unexpected kind %v", s.Kind)
	}
	e.timeline.MarkDirty()
	e.timeline.Commit(e.model)
	e.notifyChange()
}

// discardEditor closes the session and restores the prior committed text.
func (e *Engine) discardEditor() {
	s := e.edit
	if s == nil {
		return
	}
	e.edit = nil
	switch s.Kind {
	case shape.KindText:
		if s.Index < len(e.model.Texts) {
			t := &e.model.Texts[s.Index]
			t.Text = s.Original()
			s.Grow(t)
		}
	case shape.KindCallout:
		if s.Index < len(e.model.Callouts) {
			t := &e.model.Callouts[s.Index].Text
			t.Text = s.Original()
			s.Grow(t)
		}
	}
	e.notifyChange()
}

// openEditor starts inline editing of an existing text or callout shape.
func (e *Engine) openEditor(kind shape.Kind, idx int) {
	var current string
	switch kind {
	case shape.KindText:
		if idx >= len(e.model.Texts) {
			return
		}
		current = e.model.Texts[idx].Text
	case shape.KindCallout:
		if idx >= len(e.model.Callouts) {
			return
		}
		current = e.model.Callouts[idx].Text.Text
	default:
		return
	}
	e.edit = editor.NewSession(kind, idx, current, e.measurer)
	e.selectShape(kind, idx)
	e.notifyChange()
}
