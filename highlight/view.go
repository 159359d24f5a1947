package highlight

import (
	"unicode/utf8"

	"github.com/kungfusheep/opentuigo/cellbuf"
	textunicode "github.com/kungfusheep/opentuigo/unicode"
)

// View paints a HighlightedBuffer's StyledLine runs into a cell buffer
// within a rectangular viewport, mirroring text.View's origin/viewport
// painter but resolving style from tokens+Theme instead of text.Highlight
// spans.
type View struct {
	hb       *HighlightedBuffer
	vx, vy   int
	vw, vh   int
	defStyle cellbuf.Style
	method   textunicode.WidthMethod
}

// NewView wraps hb for rendering with the zero-value default style.
func NewView(hb *HighlightedBuffer) *View {
	return &View{hb: hb}
}

// Viewport sets the clip rectangle (in cell-buffer coordinates) the view
// renders into; returns the receiver for chaining.
func (v *View) Viewport(x, y, w, h int) *View {
	v.vx, v.vy, v.vw, v.vh = x, y, w, h
	return v
}

// WithDefaultStyle sets the style applied where no token run covers a
// byte position.
func (v *View) WithDefaultStyle(s cellbuf.Style) *View {
	v.defStyle = s
	return v
}

// WithWidthMethod selects the display-width algorithm used to advance the
// cursor column past wide/zero-width runes; the zero value is WcWidth.
func (v *View) WithWidthMethod(m textunicode.WidthMethod) *View {
	v.method = m
	return v
}

// RenderTo draws the buffer's lines, styled per-byte-range via StyledLine,
// into dst starting at (dx,dy), clipped to the view's viewport. Each rune
// advances the destination column by its own display width so a width-2
// rune's Continuation cell is never overwritten by the following rune.
func (v *View) RenderTo(dst *cellbuf.Buffer, dx, dy int) {
	w, h := v.vw, v.vh
	if w == 0 && h == 0 {
		w, h = dst.Width(), dst.Height()
	}
	dst.PushScissor(cellbuf.Rect{X: v.vx, Y: v.vy, W: w, H: h})
	defer dst.PopScissor()

	for row := 0; row < h && row < v.hb.Buf.LineCount(); row++ {
		line := v.hb.Buf.Line(row)
		runs := v.hb.StyledLine(row)
		col := dx
		runIdx := 0
		for pos := 0; pos < len(line); {
			r, size := utf8.DecodeRuneInString(line[pos:])

			for runIdx < len(runs) && runs[runIdx].End <= pos {
				runIdx++
			}
			style := v.defStyle
			if runIdx < len(runs) && runs[runIdx].Start <= pos && pos < runs[runIdx].End {
				style = v.defStyle.Merge(runs[runIdx].Style)
			}

			width := textunicode.RuneWidth(r, v.method)
			if width > 0 {
				dst.DrawText(col, dy+row, line[pos:pos+size], style)
			}
			col += width
			pos += size
		}
	}
}
