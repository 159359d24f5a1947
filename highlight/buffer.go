package highlight

import (
	"github.com/kungfusheep/opentuigo/cellbuf"
	"github.com/kungfusheep/opentuigo/text"
)

// HighlightedBuffer pairs a text.Buffer with a tokenizer, a theme, and the
// per-line token/state bookkeeping needed to re-tokenize only dirty lines.
// Grounded on spec §4.3's "cyclic ownership" resolution: the highlighter
// owns parallel tokens[]/stateIn[] vectors keyed by line index, and the
// text buffer owns the text; the dirty-line set is the only link.
type HighlightedBuffer struct {
	Buf       *text.Buffer
	Theme     *Theme
	Tokenizer Tokenizer

	tokens  [][]Token
	stateIn []State
	dirty   map[int]bool
}

// NewHighlightedBuffer wraps buf with tok and theme, marking every existing
// line dirty so the first UpdateHighlighting call tokenizes the whole
// buffer.
func NewHighlightedBuffer(buf *text.Buffer, tok Tokenizer, theme *Theme) *HighlightedBuffer {
	h := &HighlightedBuffer{Buf: buf, Theme: theme, Tokenizer: tok, dirty: make(map[int]bool)}
	h.resize()
	for i := range h.tokens {
		h.dirty[i] = true
	}
	return h
}

func (h *HighlightedBuffer) resize() {
	n := h.Buf.LineCount()
	for len(h.tokens) < n {
		h.tokens = append(h.tokens, nil)
		h.stateIn = append(h.stateIn, State{})
	}
	if len(h.tokens) > n {
		h.tokens = h.tokens[:n]
		h.stateIn = h.stateIn[:n]
	}
}

// MarkDirty forces line to be reprocessed on the next UpdateHighlighting
// call.
func (h *HighlightedBuffer) MarkDirty(line int) {
	h.dirty[line] = true
}

// MarkDirtyFrom marks every line from `line` onward dirty — used after a
// line insertion or deletion shifts everything below it, since the spec
// requires "newly inserted or removed lines propagate dirty marks
// automatically."
func (h *HighlightedBuffer) MarkDirtyFrom(line int) {
	h.resize()
	for i := line; i < len(h.tokens); i++ {
		h.dirty[i] = true
	}
}

// Tokens returns the current token list for line (valid only if the line
// is not dirty after the most recent UpdateHighlighting call).
func (h *HighlightedBuffer) Tokens(line int) []Token {
	if line < 0 || line >= len(h.tokens) {
		return nil
	}
	return h.tokens[line]
}

// StyledRun is a byte-range span of one line resolved to a cell style.
type StyledRun struct {
	Start, End int
	Style      cellbuf.Style
}

// StyledLine maps Tokens(i) through Theme, returning the run list for
// rendering (spec §4.3: "styled_line(i) returns the run list for
// rendering"). Returns nil if no theme is set.
func (h *HighlightedBuffer) StyledLine(i int) []StyledRun {
	tokens := h.Tokens(i)
	if len(tokens) == 0 || h.Theme == nil {
		return nil
	}
	runs := make([]StyledRun, len(tokens))
	for j, t := range tokens {
		runs[j] = StyledRun{Start: t.Start, End: t.End, Style: h.Theme.Style(t.Kind)}
	}
	return runs
}

// UpdateHighlighting repeatedly picks the minimum still-dirty line and
// walks forward from it, tokenizing each dirty line with its recorded
// state_in; if the resulting state_out differs from the next line's
// recorded state_in, the next line is marked dirty and the walk continues,
// otherwise that run stops. Dirty marks left by an earlier run (e.g. a
// disjoint MarkDirty call elsewhere in the buffer) are picked up by a
// subsequent run within the same call, so every dirty line is cleared
// before UpdateHighlighting returns (invariant 9).
func (h *HighlightedBuffer) UpdateHighlighting() {
	h.resize()
	for len(h.dirty) > 0 {
		start := -1
		for line := range h.dirty {
			if start == -1 || line < start {
				start = line
			}
		}

		for line := start; line < h.Buf.LineCount(); line++ {
			if !h.dirty[line] {
				break
			}
			stateIn := h.stateIn[line]
			tokens, stateOut := h.Tokenizer.TokenizeLine(h.Buf.Line(line), stateIn)
			h.tokens[line] = tokens
			delete(h.dirty, line)

			next := line + 1
			if next >= h.Buf.LineCount() {
				continue
			}
			if h.stateIn[next] != stateOut {
				h.stateIn[next] = stateOut
				h.dirty[next] = true
			}
		}
	}
}
