package text

import (
	"testing"

	"github.com/kungfusheep/opentuigo/cellbuf"
)

// TestRenderToAdvancesPastWideCharContinuation reproduces the bug where a
// width-2 rune's Continuation cell (written by cellbuf.Buffer.DrawText) was
// immediately overwritten by the next rune in the line because RenderTo
// advanced its column by a flat 1 regardless of the rune's actual display
// width.
func TestRenderToAdvancesPastWideCharContinuation(t *testing.T) {
	b := New()
	b.SetText("汉a") // CJK "han" ideograph, width 2, then 'a'

	dst := cellbuf.New(10, 1)
	NewView(b).RenderTo(dst, 0, 0)

	wide, _ := dst.Get(0, 0)
	if wide.Kind != cellbuf.Grapheme || wide.Width() != 2 {
		t.Fatalf("expected a width-2 Grapheme cell at (0,0), got %+v", wide)
	}

	cont, _ := dst.Get(1, 0)
	if cont.Kind != cellbuf.Continuation {
		t.Fatalf("expected the wide character's Continuation cell to survive at (1,0), got %+v", cont)
	}

	next, _ := dst.Get(2, 0)
	if next.Kind != cellbuf.Char || next.Char != 'a' {
		t.Fatalf("expected 'a' drawn at (2,0) after the wide character, got %+v", next)
	}
}

// TestRenderToSkipsZeroWidthRunes ensures a zero-width combining rune
// doesn't consume a column (and so doesn't shift the following rune).
func TestRenderToSkipsZeroWidthRunes(t *testing.T) {
	b := New()
	b.SetText("éb") // 'e' + combining acute accent (U+0301) + 'b'

	dst := cellbuf.New(10, 1)
	NewView(b).RenderTo(dst, 0, 0)

	first, _ := dst.Get(0, 0)
	if first.Kind != cellbuf.Char || first.Char != 'e' {
		t.Fatalf("expected 'e' at (0,0), got %+v", first)
	}
	second, _ := dst.Get(1, 0)
	if second.Kind != cellbuf.Char || second.Char != 'b' {
		t.Fatalf("expected 'b' immediately after 'e' with no column consumed by the combining mark, got %+v", second)
	}
}
