// Package ansiwriter serializes diff.Result spans into a minimal stream of
// ANSI escape sequences, tracking cursor position, last-emitted style, and
// last-emitted hyperlink so repeated runs of identical state cost nothing
// to re-emit.
package ansiwriter

import (
	"bytes"
	"fmt"

	"github.com/kungfusheep/opentuigo/cellbuf"
	"github.com/kungfusheep/opentuigo/color"
	"github.com/kungfusheep/opentuigo/diff"
	textunicode "github.com/kungfusheep/opentuigo/unicode"
)

// ColorMode selects how Rgba values are downgraded for the target
// terminal.
type ColorMode uint8

const (
	TrueColor ColorMode = iota
	Xterm256
	Ansi16
	Mono
)

// Writer accumulates ANSI bytes for one Present call. Grounded on
// screen.go's writeCell/writeStyle/writeColor (allocation-light integer
// formatting, single leading "\x1b[0" + ";"-joined SGR params), extended
// with OSC 8 hyperlink framing and explicit row-0 cursor positioning.
type Writer struct {
	Mode ColorMode

	buf           bytes.Buffer
	cursorX       int
	cursorY       int
	cursorKnown   bool // false until the first cursor move of this writer's life
	lastStyle     cellbuf.Style
	lastHyperlink string
	haveStyle     bool
}

// New returns a Writer with no assumed cursor position. The first span
// written always emits an explicit cursor move — fixing the "row-0
// duplication glitch" where a writer that assumes (0,0) silently skips
// positioning when the real terminal cursor is elsewhere (e.g. left in a
// pending-wrap state at the end of the previous frame).
func New(mode ColorMode) *Writer {
	return &Writer{Mode: mode}
}

// Reset clears the accumulated buffer for reuse but preserves cursor/style
// cache state (a Present call may be followed by more writes in the same
// frame before the terminal is queried again).
func (w *Writer) Reset() {
	w.buf.Reset()
}

// Bytes returns the accumulated escape sequence bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Invalidate forces the next WriteSpans call to re-emit an explicit cursor
// move and style, even if the cache believes it already matches — used
// after an external cursor move (e.g. alt-screen enter) the writer didn't
// perform itself.
func (w *Writer) Invalidate() {
	w.cursorKnown = false
	w.haveStyle = false
	w.lastHyperlink = ""
}

// WriteSpans serializes every span in result against back, appending bytes
// to the writer's buffer.
func (w *Writer) WriteSpans(back *cellbuf.Buffer, result diff.Result) {
	for _, span := range result.Spans {
		w.writeSpan(back, span)
	}
	if w.haveStyle {
		w.buf.WriteString("\x1b[0m")
		w.haveStyle = false
		w.lastStyle = cellbuf.Style{}
		w.lastHyperlink = ""
	}
}

// WriteFullRedraw emits the whole of back as if every cell were dirty,
// prefixed by an absolute cursor-home move and a screen clear (§4.4's "Full
// redraw policy"): when diff.ShouldFullRedraw is true this is usually
// shorter than emitting the real (large) dirty-span list.
func (w *Writer) WriteFullRedraw(back *cellbuf.Buffer) {
	w.buf.WriteString("\x1b[H\x1b[2J")
	w.cursorX, w.cursorY, w.cursorKnown = 0, 0, true

	width, height := back.Size()
	spans := make([]diff.Span, height)
	for y := 0; y < height; y++ {
		spans[y] = diff.Span{Y: y, StartX: 0, EndX: width}
	}
	w.WriteSpans(back, diff.Result{Spans: spans, ChangedCells: width * height})
}

func (w *Writer) writeSpan(back *cellbuf.Buffer, span diff.Span) {
	x := span.StartX
	if !w.cursorKnown || w.cursorX != x || w.cursorY != span.Y {
		w.moveCursor(x, span.Y)
	}
	pool := back.Pool()
	for x < span.EndX {
		cell, _ := back.Get(x, span.Y)
		if cell.Kind == cellbuf.Continuation {
			x++
			w.cursorX = x
			continue
		}
		w.writeCell(cell, pool)
		adv := cell.Width()
		if adv == 0 {
			adv = 1
		}
		x += adv
		w.cursorX = x
	}
	w.cursorY = span.Y
}

func (w *Writer) moveCursor(x, y int) {
	w.buf.WriteString("\x1b[")
	writeInt(&w.buf, y+1)
	w.buf.WriteByte(';')
	writeInt(&w.buf, x+1)
	w.buf.WriteByte('H')
	w.cursorX, w.cursorY = x, y
	w.cursorKnown = true
}

func (w *Writer) writeCell(cell cellbuf.Cell, pool *textunicode.Pool) {
	if !w.haveStyle || !cell.Style.Equal(w.lastStyle) {
		w.writeStyle(cell.Style)
		w.lastStyle = cell.Style
		w.haveStyle = true
	}
	if cell.Style.Hyperlink != w.lastHyperlink {
		w.writeHyperlink(cell.Style.Hyperlink)
		w.lastHyperlink = cell.Style.Hyperlink
	}
	switch cell.Kind {
	case cellbuf.Char:
		w.buf.WriteRune(cell.Char)
	case cellbuf.Grapheme:
		// Resolve the interned cluster's UTF-8 bytes through the buffer's
		// pool. An id with no pool attached (or already freed) has nothing
		// to look up; a single space keeps column accounting intact rather
		// than silently shrinking the line.
		if pool != nil {
			if bytes, _, ok := pool.Lookup(cell.GraphemeID); ok {
				w.buf.WriteString(bytes)
				break
			}
		}
		w.buf.WriteByte(' ')
	case cellbuf.Empty:
		w.buf.WriteByte(' ')
	}
}

func (w *Writer) writeStyle(style cellbuf.Style) {
	w.buf.WriteString("\x1b[0")
	if style.Attr.Has(cellbuf.AttrBold) {
		w.buf.WriteString(";1")
	}
	if style.Attr.Has(cellbuf.AttrDim) {
		w.buf.WriteString(";2")
	}
	if style.Attr.Has(cellbuf.AttrItalic) {
		w.buf.WriteString(";3")
	}
	if style.Attr.Has(cellbuf.AttrUnderline) {
		w.buf.WriteString(";4")
	}
	if style.Attr.Has(cellbuf.AttrBlink) {
		w.buf.WriteString(";5")
	}
	if style.Attr.Has(cellbuf.AttrInverse) {
		w.buf.WriteString(";7")
	}
	if style.Attr.Has(cellbuf.AttrHidden) {
		w.buf.WriteString(";8")
	}
	if style.Attr.Has(cellbuf.AttrStrikethrough) {
		w.buf.WriteString(";9")
	}
	w.writeColor(style.FG, true)
	w.writeColor(style.BG, false)
	w.buf.WriteByte('m')
}

func (w *Writer) writeColor(c color.Rgba, fg bool) {
	if c.A == 0 {
		if fg {
			w.buf.WriteString(";39")
		} else {
			w.buf.WriteString(";49")
		}
		return
	}
	switch w.Mode {
	case Mono:
		return
	case Ansi16:
		idx := c.To16()
		base := 30
		if !fg {
			base = 40
		}
		if idx >= 8 {
			base += 60
			idx -= 8
		}
		w.buf.WriteByte(';')
		writeInt(&w.buf, base+int(idx))
	case Xterm256:
		if fg {
			w.buf.WriteString(";38;5;")
		} else {
			w.buf.WriteString(";48;5;")
		}
		writeInt(&w.buf, int(c.To256()))
	default: // TrueColor
		r, g, b := c.RGBBytes()
		if fg {
			w.buf.WriteString(";38;2;")
		} else {
			w.buf.WriteString(";48;2;")
		}
		writeInt(&w.buf, int(r))
		w.buf.WriteByte(';')
		writeInt(&w.buf, int(g))
		w.buf.WriteByte(';')
		writeInt(&w.buf, int(b))
	}
}

// writeHyperlink emits an OSC 8 hyperlink-start (or hyperlink-end when url
// is empty) sequence. The URL is escaped to neutralize ST/BEL/ESC bytes
// that would otherwise let an attacker-controlled URL inject further
// escape sequences into the stream (the OSC 8 URL-escaping hardening
// named in the corpus's security regression coverage).
func (w *Writer) writeHyperlink(url string) {
	w.buf.WriteString("\x1b]8;;")
	w.buf.WriteString(EscapeURLForOSC8(url))
	w.buf.WriteString("\x1b\\")
}

// EscapeURLForOSC8 strips bytes that would let a hyperlink URL break out of
// its OSC 8 payload or its "params;URI" field split: all C0 control bytes
// (0x00-0x1f, including ESC and BEL, which terminate the OSC payload early)
// are dropped, and ';' is dropped since it is the field separator between
// the params and URI segments of the OSC 8 payload.
func EscapeURLForOSC8(url string) string {
	out := make([]byte, 0, len(url))
	for i := 0; i < len(url); i++ {
		b := url[i]
		if b < 0x20 || b == ';' {
			continue
		}
		out = append(out, b)
	}
	return string(out)
}

func writeInt(buf *bytes.Buffer, n int) {
	if n == 0 {
		buf.WriteByte('0')
		return
	}
	if n < 0 {
		buf.WriteByte('-')
		n = -n
	}
	var scratch [10]byte
	i := len(scratch)
	for n > 0 {
		i--
		scratch[i] = byte('0' + n%10)
		n /= 10
	}
	buf.Write(scratch[i:])
}

// DebugString renders the accumulated buffer with control bytes visible,
// for tests that assert on emitted sequences without fighting terminal
// rendering.
func (w *Writer) DebugString() string {
	return fmt.Sprintf("%q", w.buf.Bytes())
}
