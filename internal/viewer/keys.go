package viewer

import (
	"golang.org/x/mobile/event/key"

	"github.com/example/pagemark/internal/engine"
)

func translateMods(m key.Modifiers) engine.Modifiers {
	var out engine.Modifiers
	if m&key.ModShift != 0 {
		out |= engine.ModShift
	}
	if m&key.ModControl != 0 {
		out |= engine.ModCtrl
	}
	return out
}

// translateKey maps a host key press to an engine key event. It reports
// false for keys the engine has no encoding for.
func translateKey(e key.Event, repeat bool) (engine.KeyEvent, bool) {
	ev := engine.KeyEvent{Mods: translateMods(e.Modifiers), Repeat: repeat}
	switch e.Code {
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		ev.Code = engine.KeyEnter
		return ev, true
	case key.CodeEscape:
		ev.Code = engine.KeyEscape
		return ev, true
	case key.CodeDeleteBackspace:
		ev.Code = engine.KeyBackspace
		return ev, true
	case key.CodeDeleteForward:
		ev.Code = engine.KeyDelete
		return ev, true
	}
	if e.Rune > 0 {
		ev.Code = engine.KeyRune
		ev.Rune = e.Rune
		return ev, true
	}
	return engine.KeyEvent{}, false
}

// toolKeys maps plain-rune shortcuts to tools.
var toolKeys = map[rune]engine.Tool{
	'v': engine.ToolSelect,
	'p': engine.ToolFreehand,
	'x': engine.ToolRect,
	'o': engine.ToolCircle,
	'a': engine.ToolArrow,
	't': engine.ToolText,
	'l': engine.ToolCallout,
	'c': engine.ToolCloud,
	's': engine.ToolStamp,
}
