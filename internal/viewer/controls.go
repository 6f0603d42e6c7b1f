package viewer

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/pagemark/internal/engine"
	"github.com/example/pagemark/internal/theme"
)

const (
	topHeight    = 24
	statusHeight = 24
)

var toolbarWidth = 72

// chrome holds the theme the control widgets draw with. It is set once
// before the window opens.
var chrome = theme.Default()

// ButtonState describes the visual state of a control.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button is an interactive chrome element.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

func (cb *CacheButton) Activate() { cb.Button.Activate() }

// ToolButton selects an editing tool from the toolbar.
type ToolButton struct {
	label    string
	tool     engine.Tool
	rect     image.Rectangle
	onSelect func()
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	c := chrome.ButtonBackground
	switch state {
	case StateHover:
		c = chrome.ButtonBackgroundHover
	case StatePressed:
		c = chrome.ButtonBackgroundPress
	}
	draw.Draw(dst, tb.rect, &image.Uniform{c}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: &image.Uniform{chrome.ButtonText}, Face: basicfont.Face7x13,
		Dot: fixed.P(tb.rect.Min.X+4, tb.rect.Min.Y+16)}
	d.DrawString(tb.label)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) {
	if r != tb.rect {
		tb.rect = r
	}
}

func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect()
	}
}

// Shortcut is a clickable hint in the status bar.
type Shortcut struct {
	label  string
	action func()
	rect   image.Rectangle
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	c := chrome.ButtonBackground
	switch state {
	case StateHover:
		c = chrome.ButtonBackgroundHover
	case StatePressed:
		c = chrome.ButtonBackgroundPress
	}
	draw.Draw(dst, s.rect, &image.Uniform{c}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: &image.Uniform{chrome.StatusText}, Face: basicfont.Face7x13,
		Dot: fixed.P(s.rect.Min.X+2, s.rect.Min.Y+14)}
	d.DrawString(s.label)
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) SetRect(r image.Rectangle) {
	if r != s.rect {
		s.rect = r
	}
}

func (s *Shortcut) Activate() {
	if s.action != nil {
		s.action()
	}
}

var (
	toolButtons   []*CacheButton
	shortcutRects []Shortcut
	hoverTool     = -1
	hoverShortcut = -1
)

// sizeToolbar widens the toolbar to fit the program title and every tool
// label so nothing is clipped on start up.
func sizeToolbar(labels []string) {
	d := &font.Drawer{Face: basicfont.Face7x13}
	max := d.MeasureString("Pagemark").Ceil() + 8
	for _, lbl := range labels {
		if w := d.MeasureString(lbl).Ceil() + 8; w > max {
			max = w
		}
	}
	if max > toolbarWidth {
		toolbarWidth = max
	}
}
