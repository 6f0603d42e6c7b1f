// Package editor implements the inline text edit session that floats over a
// text box or callout while the user types.
package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/example/pagemark/internal/shape"
	"github.com/example/pagemark/internal/wrap"
)

// Padding is the inset between the shape border and the text content, in
// document units.
const Padding = 4

// Session is one inline editing session. The underlying shape's geometry is
// grown live while typing; the text itself is written back only on commit.
type Session struct {
	Kind  shape.Kind // KindText or KindCallout
	Index int

	buf      strings.Builder
	original string
	measurer wrap.Measurer
}

// NewSession starts editing the shape's current text.
func NewSession(kind shape.Kind, index int, current string, m wrap.Measurer) *Session {
	s := &Session{Kind: kind, Index: index, original: current, measurer: m}
	s.buf.WriteString(current)
	return s
}

// Text returns the buffer as typed so far.
func (s *Session) Text() string { return s.buf.String() }

// Original returns the committed text from before the session opened.
func (s *Session) Original() string { return s.original }

// Insert appends a typed rune.
func (s *Session) Insert(r rune) {
	if r == 0 {
		return
	}
	s.buf.WriteRune(r)
}

// Newline inserts an explicit line break. Plain Enter maps here; commit is
// Ctrl+Enter or blur.
func (s *Session) Newline() { s.buf.WriteByte('\n') }

// Backspace removes the last rune, if any.
func (s *Session) Backspace() {
	cur := s.buf.String()
	if cur == "" {
		return
	}
	_, n := utf8.DecodeLastRuneInString(cur)
	s.buf.Reset()
	s.buf.WriteString(cur[:len(cur)-n])
}

// Grow expands t so its wrapped text fits: width grows to the widest
// wrapped line and height to the wrapped line count, but neither ever
// drops below the shape's remembered base size.
func (s *Session) Grow(t *shape.Text) {
	avail := t.W - 2*Padding
	if avail < 1 {
		avail = 1
	}
	minW, minH := wrap.MinSize(t.Text, avail, t.FontSize, s.measurer)
	if w := minW + 2*Padding; w > t.W {
		t.W = w
	}
	if t.W < t.BaseW {
		t.W = t.BaseW
	}
	if h := minH + 2*Padding; h > t.H {
		t.H = h
	} else if h < t.H {
		// shrink back toward content, but never below the base height
		if h < t.BaseH {
			h = t.BaseH
		}
		t.H = h
	}
	if t.H < t.BaseH {
		t.H = t.BaseH
	}
}

// MinHeight returns the smallest height that fits text wrapped at width w,
// used as the auto-grow guard while resizing a text shape.
func MinHeight(text string, w, fontSize float64, m wrap.Measurer) float64 {
	avail := w - 2*Padding
	if avail < 1 {
		avail = 1
	}
	_, h := wrap.MinSize(text, avail, fontSize, m)
	return h + 2*Padding
}
