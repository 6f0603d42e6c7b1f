package engine

import (
	"unicode"

	"github.com/example/pagemark/internal/shape"
)

// KeyCode identifies the non-rune keys the engine reacts to. Printable
// input arrives as KeyRune with the Rune field set.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
)

// KeyEvent is a key press delivered by the host. Repeat marks held-key
// auto-repeat events.
type KeyEvent struct {
	Code   KeyCode
	Rune   rune
	Mods   Modifiers
	Repeat bool
}

// Key routes a key press. It reports whether the engine consumed it, so
// the host can fall back to its own bindings (page navigation, zoom).
func (e *Engine) Key(ev KeyEvent) bool {
	if e.edit != nil {
		return e.editorKey(ev)
	}
	if ev.Mods&ModCtrl != 0 {
		// Shift delivers the shifted rune, so match case-insensitively.
		r := unicode.ToLower(ev.Rune)
		switch {
		case r == 'z' && ev.Mods&ModShift != 0, r == 'y':
			if !ev.Repeat {
				e.Redo()
			}
			return true
		case r == 'z':
			if !ev.Repeat {
				e.Undo()
			}
			return true
		case r == 'c':
			e.CopySelected()
			return true
		case r == 'v':
			if !ev.Repeat {
				e.Paste()
			}
			return true
		}
		return false
	}
	switch ev.Code {
	case KeyDelete, KeyBackspace:
		if _, _, ok := e.SelectedShape(); ok {
			if !ev.Repeat {
				e.DeleteSelected()
			}
			return true
		}
	case KeyEscape:
		if e.selLive {
			e.sel.Clear()
			e.selLive = false
			e.notifyChange()
			return true
		}
	}
	return false
}

// editorKey routes input while an inline text session is open. Enter
// inserts a line break; Ctrl+Enter commits, Escape discards.
func (e *Engine) editorKey(ev KeyEvent) bool {
	s := e.edit
	switch ev.Code {
	case KeyEnter:
		if ev.Mods&ModCtrl != 0 {
			e.commitEditor()
			return true
		}
		s.Newline()
	case KeyEscape:
		e.discardEditor()
		return true
	case KeyBackspace:
		s.Backspace()
	case KeyRune:
		if ev.Mods&ModCtrl != 0 {
			return false
		}
		if ev.Rune == 0 {
			return true
		}
		s.Insert(ev.Rune)
	default:
		return false
	}
	e.liveGrow()
	e.notifyChange()
	return true
}

// liveGrow resizes the edited box while typing so the session's text
// never overflows it.
func (e *Engine) liveGrow() {
	s := e.edit
	if s == nil {
		return
	}
	switch s.Kind {
	case shape.KindText:
		if s.Index < len(e.model.Texts) {
			t := &e.model.Texts[s.Index]
			t.Text = s.Text()
			s.Grow(t)
		}
	case shape.KindCallout:
		if s.Index < len(e.model.Callouts) {
			t := &e.model.Callouts[s.Index].Text
			t.Text = s.Text()
			s.Grow(t)
		}
	}
}
