package editor

import (
	"testing"

	"github.com/example/pagemark/internal/shape"
)

type charMeasurer struct{ cw float64 }

func (c charMeasurer) Width(text string, size float64) float64 {
	return float64(len([]rune(text))) * c.cw
}

func (c charMeasurer) LineHeight(size float64) float64 { return size }

func TestSessionBuffer(t *testing.T) {
	s := NewSession(shape.KindText, 0, "ab", charMeasurer{1})
	s.Insert('c')
	s.Newline()
	s.Insert('d')
	if got := s.Text(); got != "abc\nd" {
		t.Fatalf("Text = %q", got)
	}
	s.Backspace()
	s.Backspace()
	if got := s.Text(); got != "abc" {
		t.Fatalf("Text after backspace = %q", got)
	}
	if s.Original() != "ab" {
		t.Fatalf("Original = %q", s.Original())
	}
}

func TestBackspaceOnEmpty(t *testing.T) {
	s := NewSession(shape.KindText, 0, "", charMeasurer{1})
	s.Backspace()
	if s.Text() != "" {
		t.Fatal("backspace on empty buffer mutated text")
	}
}

func TestGrowTwoLines(t *testing.T) {
	m := charMeasurer{cw: 10}
	// box fits 5 chars per line (58 - 8 padding = 50)
	tx := &shape.Text{W: 58, H: 20, BaseW: 58, BaseH: 20, FontSize: 12}
	s := NewSession(shape.KindText, 0, "", m)
	for _, r := range "aa bb cc" {
		s.Insert(r)
	}
	tx.Text = s.Text()
	s.Grow(tx)
	// wraps into "aa bb" / "cc": exactly two lines at line height 12
	wantH := 2*12.0 + 2*Padding
	if tx.H != wantH {
		t.Fatalf("H = %v, want %v", tx.H, wantH)
	}
	if tx.W < tx.BaseW {
		t.Fatalf("W shrank below base: %v", tx.W)
	}
}

func TestGrowNeverShrinksBelowBase(t *testing.T) {
	m := charMeasurer{cw: 10}
	tx := &shape.Text{W: 100, H: 90, BaseW: 100, BaseH: 60, FontSize: 12, Text: "hi"}
	s := NewSession(shape.KindText, 0, "hi", m)
	s.Grow(tx)
	if tx.H < tx.BaseH {
		t.Fatalf("H = %v shrank below base %v", tx.H, tx.BaseH)
	}
	if tx.W < tx.BaseW {
		t.Fatalf("W = %v shrank below base %v", tx.W, tx.BaseW)
	}
}

func TestMinHeightGuard(t *testing.T) {
	m := charMeasurer{cw: 10}
	h := MinHeight("aa bb cc", 58, 12, m)
	if h != 2*12+2*Padding {
		t.Fatalf("MinHeight = %v", h)
	}
}
