// Package wrap implements text measurement and the greedy word-wrap shared
// by text boxes, callouts and stamp cards. The measurement backend is
// injected so the algorithm is independent of any particular text shaper.
package wrap

import (
	"strings"
	"unicode"
)

// Measurer reports rendered text metrics for a font size.
type Measurer interface {
	// Width returns the rendered width of text at the given font size.
	Width(text string, size float64) float64
	// LineHeight returns the vertical advance of one text line.
	LineHeight(size float64) float64
}

// Lines wraps text to fit the available width. Explicit line breaks are
// honored first; within each segment, tokens are accumulated greedily onto
// the current line while the rendered width stays within avail. A single
// token wider than avail is emitted on a line of its own.
func Lines(text string, avail, size float64, m Measurer) []string {
	var out []string
	for _, seg := range strings.Split(text, "\n") {
		out = append(out, wrapSegment(seg, avail, size, m)...)
	}
	if out == nil {
		out = []string{""}
	}
	return out
}

func wrapSegment(seg string, avail, size float64, m Measurer) []string {
	if m.Width(seg, size) <= avail {
		return []string{seg}
	}
	var lines []string
	line := ""
	broke := false
	for _, tok := range tokenize(seg) {
		if line == "" {
			if isSpace(tok) && broke {
				// wrapped lines never start with the whitespace the
				// break happened on; segment-leading whitespace stays
				continue
			}
			line = tok
			continue
		}
		if m.Width(line+tok, size) <= avail {
			line += tok
			continue
		}
		lines = append(lines, strings.TrimRight(line, " \t"))
		broke = true
		if isSpace(tok) {
			line = ""
		} else {
			line = tok
		}
	}
	if line != "" {
		lines = append(lines, strings.TrimRight(line, " \t"))
	}
	if lines == nil {
		lines = []string{""}
	}
	return lines
}

// tokenize splits a segment into alternating runs of whitespace and
// non-whitespace, preserving the original characters.
func tokenize(s string) []string {
	var toks []string
	start := 0
	var inSpace bool
	for i, r := range s {
		sp := unicode.IsSpace(r)
		if i == 0 {
			inSpace = sp
			continue
		}
		if sp != inSpace {
			toks = append(toks, s[start:i])
			start = i
			inSpace = sp
		}
	}
	if start < len(s) {
		toks = append(toks, s[start:])
	}
	return toks
}

func isSpace(tok string) bool {
	return strings.TrimSpace(tok) == ""
}

// MinSize returns the smallest box that contains text wrapped to avail
// without clipping: the widest wrapped line by the wrapped line count.
func MinSize(text string, avail, size float64, m Measurer) (w, h float64) {
	lines := Lines(text, avail, size, m)
	for _, l := range lines {
		if lw := m.Width(l, size); lw > w {
			w = lw
		}
	}
	return w, float64(len(lines)) * m.LineHeight(size)
}

// Stamp card sizing. A placed stamp is autosized from its title.
const (
	StampPadding   = 24
	StampMinWidth  = 140
	StampMaxWidth  = 240
	StampMinHeight = 44
	StampMaxHeight = 80
)

// StampSize computes the card size for a stamp title at the given font
// size: width clamps measured title width plus padding, height clamps two
// line heights.
func StampSize(title string, size float64, m Measurer) (w, h float64) {
	w = clamp(m.Width(title, size)+StampPadding, StampMinWidth, StampMaxWidth)
	h = clamp(2*m.LineHeight(size), StampMinHeight, StampMaxHeight)
	return w, h
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
