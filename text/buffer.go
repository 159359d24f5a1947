// Package text implements a line-indexed text buffer with per-range style
// highlights, an editing layer with cursor motion and undo/redo, and a
// viewport painter that renders styled runs into a cell buffer.
package text

import (
	"sort"
	"strings"

	"github.com/kungfusheep/opentuigo/cellbuf"
)

// Highlight is a styled span over a half-open char range on one line.
// Invariant: CharStart <= CharEnd <= the line's char length.
type Highlight struct {
	Line      int
	CharStart int
	CharEnd   int
	Style     cellbuf.Style
	Priority  int
	Hyperlink string
	seq       int // insertion order, used to break priority ties
}

// Buffer is a line-indexed text store plus a list of per-line highlights.
// Grounded on cmd/minivim's Buffer.Lines ([]string line storage); no example
// repo ships a rope/piece-table, so addressing stays line-indexed rather
// than byte-indexed underneath (see DESIGN.md).
type Buffer struct {
	lines      []string
	highlights map[int][]Highlight
	nextSeq    int
}

// New returns an empty single-line buffer.
func New() *Buffer {
	return &Buffer{lines: []string{""}, highlights: make(map[int][]Highlight)}
}

// SetText replaces the buffer's content, splitting on "\n". All highlights
// are discarded since they key by line index, which this invalidates.
func (b *Buffer) SetText(s string) {
	b.lines = strings.Split(s, "\n")
	if len(b.lines) == 0 {
		b.lines = []string{""}
	}
	b.highlights = make(map[int][]Highlight)
}

// String reassembles the buffer's lines into a single "\n"-joined string.
func (b *Buffer) String() string {
	return strings.Join(b.lines, "\n")
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the text of line n, or "" if out of range.
func (b *Buffer) Line(n int) string {
	if n < 0 || n >= len(b.lines) {
		return ""
	}
	return b.lines[n]
}

// LineCharLen returns the number of chars (runes) on line n.
func (b *Buffer) LineCharLen(n int) int {
	return len([]rune(b.Line(n)))
}

// AddHighlightLine adds a styled span over [charStart,charEnd) on line.
// Out-of-range spans are clamped to the line's char length.
func (b *Buffer) AddHighlightLine(line, charStart, charEnd int, style cellbuf.Style, priority int, hyperlink string) {
	if line < 0 || line >= len(b.lines) {
		return
	}
	n := b.LineCharLen(line)
	if charStart < 0 {
		charStart = 0
	}
	if charEnd > n {
		charEnd = n
	}
	if charStart >= charEnd {
		return
	}
	h := Highlight{
		Line: line, CharStart: charStart, CharEnd: charEnd,
		Style: style, Priority: priority, Hyperlink: hyperlink, seq: b.nextSeq,
	}
	b.nextSeq++
	b.highlights[line] = append(b.highlights[line], h)
}

// ClearHighlights removes every highlight on line.
func (b *Buffer) ClearHighlights(line int) {
	delete(b.highlights, line)
}

// HighlightsOnLine returns the highlights recorded for line, in insertion
// order (StyleAt breaks priority ties by this order, later insertions
// winning per the "higher priority overrides lower" invariant).
func (b *Buffer) HighlightsOnLine(line int) []Highlight {
	return b.highlights[line]
}

// StyleAt resolves the effective style at (line, charIdx): def merged with
// every highlight covering the position, folded in ascending (Priority,
// seq) order so a higher-priority highlight's fields win per cellbuf.Style
// merge semantics while lower-priority fields it leaves untouched (e.g. an
// attribute bit a narrower, higher-priority highlight never sets) survive.
func (b *Buffer) StyleAt(line, charIdx int, def cellbuf.Style) (cellbuf.Style, string) {
	var covering []*Highlight
	for i := range b.highlights[line] {
		h := &b.highlights[line][i]
		if charIdx < h.CharStart || charIdx >= h.CharEnd {
			continue
		}
		covering = append(covering, h)
	}
	sort.Slice(covering, func(i, j int) bool {
		if covering[i].Priority != covering[j].Priority {
			return covering[i].Priority < covering[j].Priority
		}
		return covering[i].seq < covering[j].seq
	})

	style := def
	link := ""
	for _, h := range covering {
		style = style.Merge(h.Style)
		if h.Hyperlink != "" {
			link = h.Hyperlink
		}
	}
	return style, link
}

// insertLineAt inserts a line with text n before index at, shifting
// highlights on lines >= at down by one.
func (b *Buffer) insertLineAt(n string, at int) {
	b.lines = append(b.lines, "")
	copy(b.lines[at+1:], b.lines[at:])
	b.lines[at] = n
	shifted := make(map[int][]Highlight, len(b.highlights))
	for line, hs := range b.highlights {
		if line >= at {
			shifted[line+1] = hs
		} else {
			shifted[line] = hs
		}
	}
	b.highlights = shifted
}

// removeLineAt deletes line at, shifting highlights on lines > at up by one.
func (b *Buffer) removeLineAt(at int) {
	b.lines = append(b.lines[:at], b.lines[at+1:]...)
	shifted := make(map[int][]Highlight, len(b.highlights))
	for line, hs := range b.highlights {
		switch {
		case line == at:
			// dropped
		case line > at:
			shifted[line-1] = hs
		default:
			shifted[line] = hs
		}
	}
	b.highlights = shifted
}
