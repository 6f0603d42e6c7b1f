package wrap

import (
	"strings"
	"testing"
)

// charMeasurer gives every rune a fixed width so wrap behaviour is easy to
// reason about in tests.
type charMeasurer struct{ cw float64 }

func (c charMeasurer) Width(text string, size float64) float64 {
	return float64(len([]rune(text))) * c.cw
}

func (c charMeasurer) LineHeight(size float64) float64 { return size }

func TestLinesHonorsExplicitBreaks(t *testing.T) {
	m := charMeasurer{cw: 1}
	lines := Lines("one\ntwo\nthree", 100, 12, m)
	want := []string{"one", "two", "three"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %q, want %d", len(lines), lines, len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestLinesGreedyWrap(t *testing.T) {
	m := charMeasurer{cw: 1}
	lines := Lines("aa bb cc dd", 5, 12, m)
	want := []string{"aa bb", "cc dd"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q, want %q", lines, want)
	}
}

func TestLinesWidthProperty(t *testing.T) {
	m := charMeasurer{cw: 2}
	texts := []string{
		"the quick brown fox jumps over the lazy dog",
		"a b c d e f g h i j k",
		"single",
		"two  spaced   words here",
	}
	for _, text := range texts {
		for _, avail := range []float64{10, 16, 24, 40} {
			for _, line := range Lines(text, avail, 12, m) {
				if w := m.Width(line, 12); w > avail {
					t.Errorf("wrap(%q, %v): line %q is %v wide", text, avail, line, w)
				}
			}
		}
	}
}

func TestLinesRoundTrip(t *testing.T) {
	m := charMeasurer{cw: 1}
	text := "the quick brown fox jumps over the lazy dog"
	lines := Lines(text, 10, 12, m)
	if got := strings.Join(lines, " "); got != text {
		t.Fatalf("rejoined = %q, want %q", got, text)
	}
}

func TestLinesKeepsLeadingWhitespace(t *testing.T) {
	m := charMeasurer{cw: 1}
	text := "  indented line that wraps"
	lines := Lines(text, 12, 12, m)
	if lines[0] != "  indented" {
		t.Errorf("first line = %q, want %q", lines[0], "  indented")
	}
	if got := strings.Join(lines, " "); got != text {
		t.Fatalf("rejoined = %q, want %q", got, text)
	}
}

func TestLinesOverlongToken(t *testing.T) {
	m := charMeasurer{cw: 1}
	lines := Lines("hi extraordinarily no", 6, 12, m)
	// the overflowing token gets its own line
	found := false
	for _, l := range lines {
		if l == "extraordinarily" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected overlong token on its own line, got %q", lines)
	}
}

func TestLinesEmptyText(t *testing.T) {
	m := charMeasurer{cw: 1}
	lines := Lines("", 10, 12, m)
	if len(lines) != 1 || lines[0] != "" {
		t.Fatalf("got %q, want one empty line", lines)
	}
}

func TestMinSize(t *testing.T) {
	m := charMeasurer{cw: 1}
	w, h := MinSize("aa bb cc dd", 5, 10, m)
	if w != 5 {
		t.Errorf("w = %v, want 5", w)
	}
	if h != 20 { // two lines at line height 10
		t.Errorf("h = %v, want 20", h)
	}
}

func TestStampSize(t *testing.T) {
	m := charMeasurer{cw: 8}
	// "APPROVED" is 8 runes => 64 wide; 64+24=88 clamps up to 140.
	w, h := StampSize("APPROVED", 14, m)
	if w != StampMinWidth {
		t.Errorf("w = %v, want %v", w, StampMinWidth)
	}
	// 2*14 = 28 clamps up to 44.
	if h != StampMinHeight {
		t.Errorf("h = %v, want %v", h, StampMinHeight)
	}
	// A long title clamps to the max width.
	w, _ = StampSize("AN EXTREMELY LONG CUSTOM STAMP TITLE", 14, m)
	if w != StampMaxWidth {
		t.Errorf("w = %v, want %v", w, StampMaxWidth)
	}
}

func TestFaceMeasurer(t *testing.T) {
	fm := Default()
	w1 := fm.Width("APPROVED", 14)
	w2 := fm.Width("APPROVED APPROVED", 14)
	if w1 <= 0 || w2 <= w1 {
		t.Fatalf("unexpected widths %v, %v", w1, w2)
	}
	if lh := fm.LineHeight(14); lh <= 0 {
		t.Fatalf("line height = %v", lh)
	}
}
