package ansiwriter

import (
	"strings"
	"testing"

	"github.com/kungfusheep/opentuigo/cellbuf"
	"github.com/kungfusheep/opentuigo/color"
	"github.com/kungfusheep/opentuigo/diff"
	textunicode "github.com/kungfusheep/opentuigo/unicode"
)

func spanResult(y, start, end int) diff.Result {
	return diff.Result{Spans: []diff.Span{{Y: y, StartX: start, EndX: end}}, ChangedCells: end - start}
}

func TestWriteSpansEmitsCursorMoveAndGlyph(t *testing.T) {
	back := cellbuf.New(10, 5)
	back.Set(3, 2, cellbuf.NewCharCell('Q', cellbuf.Style{}))

	w := New(TrueColor)
	w.WriteSpans(back, spanResult(2, 3, 4))
	out := w.DebugString()
	if !strings.Contains(out, `\x1b[3;4H`) {
		t.Fatalf("expected a cursor move to row 3 col 4, got %s", out)
	}
	if !strings.Contains(out, "Q") {
		t.Fatalf("expected the glyph Q, got %s", out)
	}
}

func TestWriteSpansSuppressesRedundantCursorMove(t *testing.T) {
	back := cellbuf.New(10, 5)
	back.Set(0, 0, cellbuf.NewCharCell('a', cellbuf.Style{}))
	back.Set(1, 0, cellbuf.NewCharCell('b', cellbuf.Style{}))

	w := New(TrueColor)
	w.WriteSpans(back, diff.Result{Spans: []diff.Span{{Y: 0, StartX: 0, EndX: 2}}, ChangedCells: 2})
	out := string(w.Bytes())
	if strings.Count(out, "H") != 1 {
		t.Fatalf("expected exactly one cursor-move terminator for a contiguous span, got %q", out)
	}
}

func TestWriteSpansSuppressesRedundantStyle(t *testing.T) {
	back := cellbuf.New(10, 1)
	style := cellbuf.Style{FG: color.Red}
	back.Set(0, 0, cellbuf.NewCharCell('a', style))
	back.Set(1, 0, cellbuf.NewCharCell('b', style))

	w := New(TrueColor)
	w.WriteSpans(back, diff.Result{Spans: []diff.Span{{Y: 0, StartX: 0, EndX: 2}}, ChangedCells: 2})
	out := string(w.Bytes())
	if strings.Count(out, "38;2;") != 1 {
		t.Fatalf("expected the SGR sequence emitted only once for a repeated style, got %q", out)
	}
}

func TestWriteSpansReEmitsStyleOnChange(t *testing.T) {
	back := cellbuf.New(10, 1)
	back.Set(0, 0, cellbuf.NewCharCell('a', cellbuf.Style{FG: color.Red}))
	back.Set(1, 0, cellbuf.NewCharCell('b', cellbuf.Style{FG: color.Blue}))

	w := New(TrueColor)
	w.WriteSpans(back, diff.Result{Spans: []diff.Span{{Y: 0, StartX: 0, EndX: 2}}, ChangedCells: 2})
	out := string(w.Bytes())
	if strings.Count(out, "38;2;") != 2 {
		t.Fatalf("expected two distinct SGR sequences for two distinct styles, got %q", out)
	}
}

func TestWriteSpansSkipsContinuationCells(t *testing.T) {
	back := cellbuf.New(10, 1)
	back.Set(0, 0, cellbuf.NewGraphemeCell(0, 2, cellbuf.Style{}))
	back.Set(2, 0, cellbuf.NewCharCell('z', cellbuf.Style{}))
	// Set already wrote the continuation half at x=1 automatically via the
	// width-2 path; a span starting mid-cell must walk past it without
	// emitting a second glyph for it.

	w := New(TrueColor)
	w.WriteSpans(back, diff.Result{Spans: []diff.Span{{Y: 0, StartX: 1, EndX: 3}}, ChangedCells: 2})
	out := string(w.Bytes())
	if strings.Count(out, "z") != 1 {
		t.Fatalf("expected the glyph past the continuation cell, got %q", out)
	}
}

// TestWriteSpansResolvesPoolBackedGrapheme reproduces invariant 8: applying
// the emitted bytes for a wide grapheme cell to a virtual terminal must
// yield the actual interned UTF-8 bytes, not a placeholder space.
func TestWriteSpansResolvesPoolBackedGrapheme(t *testing.T) {
	back := cellbuf.New(10, 1)
	pool := textunicode.NewPool(textunicode.Unicode)
	back.SetPool(pool, textunicode.Unicode)
	back.DrawTextWithPool(pool, 0, 0, "漢", cellbuf.Style{})

	w := New(TrueColor)
	w.WriteSpans(back, diff.Result{Spans: []diff.Span{{Y: 0, StartX: 0, EndX: 2}}, ChangedCells: 2})
	out := string(w.Bytes())
	if !strings.Contains(out, "漢") {
		t.Fatalf("expected the interned grapheme's UTF-8 bytes in the output, got %q", out)
	}
}

func TestColorModeXterm256(t *testing.T) {
	back := cellbuf.New(1, 1)
	back.Set(0, 0, cellbuf.NewCharCell('a', cellbuf.Style{FG: color.FromBytes(255, 0, 0)}))
	w := New(Xterm256)
	w.WriteSpans(back, spanResult(0, 0, 1))
	if !strings.Contains(string(w.Bytes()), "38;5;") {
		t.Fatalf("expected a 256-color SGR sequence, got %q", w.DebugString())
	}
}

func TestColorModeAnsi16(t *testing.T) {
	back := cellbuf.New(1, 1)
	back.Set(0, 0, cellbuf.NewCharCell('a', cellbuf.Style{FG: color.FromBytes(255, 0, 0)}))
	w := New(Ansi16)
	w.WriteSpans(back, spanResult(0, 0, 1))
	out := string(w.Bytes())
	if !strings.Contains(out, ";91") {
		t.Fatalf("expected the bright-red basic-16 SGR code, got %q", out)
	}
}

func TestColorModeMonoEmitsNoColor(t *testing.T) {
	back := cellbuf.New(1, 1)
	back.Set(0, 0, cellbuf.NewCharCell('a', cellbuf.Style{FG: color.FromBytes(255, 0, 0)}))
	w := New(Mono)
	w.WriteSpans(back, spanResult(0, 0, 1))
	out := string(w.Bytes())
	if strings.Contains(out, "38;") {
		t.Fatalf("expected no foreground color code in mono mode, got %q", out)
	}
}

func TestHyperlinkEmittedAndClosed(t *testing.T) {
	back := cellbuf.New(5, 1)
	back.Set(0, 0, cellbuf.NewCharCell('a', cellbuf.Style{Hyperlink: "https://example.com"}))
	back.Set(1, 0, cellbuf.NewCharCell('b', cellbuf.Style{}))

	w := New(TrueColor)
	w.WriteSpans(back, diff.Result{Spans: []diff.Span{{Y: 0, StartX: 0, EndX: 2}}, ChangedCells: 2})
	out := string(w.Bytes())
	if !strings.Contains(out, "\x1b]8;;https://example.com\x1b\\") {
		t.Fatalf("expected an OSC 8 hyperlink-start sequence, got %q", out)
	}
	if !strings.Contains(out, "\x1b]8;;\x1b\\") {
		t.Fatalf("expected an OSC 8 hyperlink-end sequence once the link ends, got %q", out)
	}
}

func TestEscapeURLForOSC8StripsInjectionBytes(t *testing.T) {
	malicious := "https://example.com/\x1b]8;;evil\x07"
	escaped := EscapeURLForOSC8(malicious)
	if strings.ContainsAny(escaped, "\x1b\x07\n\r") {
		t.Fatalf("expected all injection-capable bytes stripped, got %q", escaped)
	}
}

func TestInvalidateForcesCursorAndStyleReemission(t *testing.T) {
	back := cellbuf.New(5, 1)
	back.Set(0, 0, cellbuf.NewCharCell('a', cellbuf.Style{FG: color.Red}))

	w := New(TrueColor)
	w.WriteSpans(back, spanResult(0, 0, 1))
	w.Reset()
	w.Invalidate()
	w.WriteSpans(back, spanResult(0, 0, 1))
	out := string(w.Bytes())
	if !strings.Contains(out, "\x1b[1;1H") {
		t.Fatalf("expected Invalidate to force a fresh cursor move, got %q", out)
	}
}

func TestWriteFullRedrawCoversEveryCell(t *testing.T) {
	back := cellbuf.New(3, 2)
	w := New(TrueColor)
	w.WriteFullRedraw(back)
	out := string(w.Bytes())
	if !strings.HasPrefix(out, "\x1b[H\x1b[2J") {
		t.Fatalf("expected the full-redraw prefix, got %q", out)
	}
}
