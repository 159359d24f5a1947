package unicode

import "testing"

func TestRuneWidthASCII(t *testing.T) {
	if w := RuneWidth('a', WcWidth); w != 1 {
		t.Fatalf("expected width 1, got %d", w)
	}
	if w := RuneWidth('a', Unicode); w != 1 {
		t.Fatalf("expected width 1, got %d", w)
	}
}

// TestRuneWidthWide reproduces S3's width expectation for a wide CJK
// character.
func TestRuneWidthWide(t *testing.T) {
	if w := RuneWidth('漢', WcWidth); w != 2 {
		t.Fatalf("expected width 2 for 漢, got %d", w)
	}
	if w := RuneWidth('漢', Unicode); w != 2 {
		t.Fatalf("expected width 2 for 漢, got %d", w)
	}
}

func TestRuneWidthZeroWidth(t *testing.T) {
	// U+0301 COMBINING ACUTE ACCENT
	if w := RuneWidth('́', Unicode); w != 0 {
		t.Fatalf("expected width 0 for a combining mark, got %d", w)
	}
}

// TestStringWidthIsSumOfGraphemeWidths covers invariant 5.
func TestStringWidthIsSumOfGraphemeWidths(t *testing.T) {
	s := "a漢b"
	total := StringWidth(s, Unicode)
	sum := 0
	for _, g := range Graphemes(s) {
		sum += GraphemeWidth(g.Text, Unicode)
	}
	if total != sum {
		t.Fatalf("StringWidth %d != sum of grapheme widths %d", total, sum)
	}
	if total != 4 {
		t.Fatalf("expected display width 4 (1+2+1), got %d", total)
	}
}

// TestGraphemesReconstructSource covers invariant 5's concatenation half:
// joining every returned cluster reproduces the source exactly.
func TestGraphemesReconstructSource(t *testing.T) {
	cases := []string{"", "hello", "a漢b", "é", "family: \U0001F468‍\U0001F469‍\U0001F467"}
	for _, s := range cases {
		var rebuilt string
		for _, g := range Graphemes(s) {
			rebuilt += g.Text
		}
		if rebuilt != s {
			t.Fatalf("Graphemes(%q) did not reconstruct the source: got %q", s, rebuilt)
		}
	}
}

func TestGraphemesOffsetsAreContiguous(t *testing.T) {
	s := "a漢b"
	gs := Graphemes(s)
	pos := 0
	for _, g := range gs {
		if g.Start != pos {
			t.Fatalf("expected Start %d, got %d", pos, g.Start)
		}
		if g.End != pos+len(g.Text) {
			t.Fatalf("expected End %d, got %d", pos+len(g.Text), g.End)
		}
		pos = g.End
	}
	if pos != len(s) {
		t.Fatalf("expected final offset %d, got %d", len(s), pos)
	}
}

func TestFirstGraphemeEmpty(t *testing.T) {
	if text, n := FirstGrapheme(""); text != "" || n != 0 {
		t.Fatalf("expected empty result, got %q, %d", text, n)
	}
}

func TestFirstGraphemeMatchesGraphemes(t *testing.T) {
	s := "漢字"
	text, n := FirstGrapheme(s)
	all := Graphemes(s)
	if text != all[0].Text || n != len(all[0].Text) {
		t.Fatalf("FirstGrapheme mismatch: got %q/%d, want %q/%d", text, n, all[0].Text, len(all[0].Text))
	}
}

func TestNFCNFDRoundTrip(t *testing.T) {
	composed := "é" // could NFC-compose to é
	nfc := NFC(composed)
	nfd := NFD(nfc)
	if NFC(nfd) != nfc {
		t.Fatalf("expected NFC(NFD(x)) == NFC(x)")
	}
}

func TestCompareNormalized(t *testing.T) {
	a := "é"
	b := NFC(a)
	if CompareNormalized(a, b) != 0 {
		t.Fatalf("expected composed/decomposed forms to compare equal")
	}
	if CompareNormalized("a", "b") >= 0 {
		t.Fatalf("expected a < b")
	}
}

func TestFindLineBreaks(t *testing.T) {
	s := "a\nb\r\nc\rd"
	breaks := FindLineBreaks(s)
	want := []LineBreak{{Offset: 1, Length: 1}, {Offset: 3, Length: 2}, {Offset: 6, Length: 1}}
	if len(breaks) != len(want) {
		t.Fatalf("expected %d breaks, got %d: %+v", len(want), len(breaks), breaks)
	}
	for i := range want {
		if breaks[i] != want[i] {
			t.Fatalf("break %d: expected %+v, got %+v", i, want[i], breaks[i])
		}
	}
}

func TestFindTabStops(t *testing.T) {
	s := "a\tb\tc"
	stops := FindTabStops(s)
	if len(stops) != 2 || stops[0] != 1 || stops[1] != 3 {
		t.Fatalf("expected [1 3], got %v", stops)
	}
}

func TestFindWrapPositionPrefersWordBoundary(t *testing.T) {
	text := "hello world foobar"
	pos := FindWrapPosition(text, 8, 4)
	if text[:pos] != "hello " {
		t.Fatalf("expected wrap after %q, got %q", "hello ", text[:pos])
	}
}

func TestFindWrapPositionNeverSplitsAGrapheme(t *testing.T) {
	text := "ab漢cd"
	for maxCols := 1; maxCols <= 6; maxCols++ {
		pos := FindWrapPosition(text, maxCols, 4)
		for _, g := range Graphemes(text) {
			if pos > g.Start && pos < g.End {
				t.Fatalf("maxCols=%d: wrap position %d splits grapheme %q (%d..%d)", maxCols, pos, g.Text, g.Start, g.End)
			}
		}
	}
}

func TestFindWrapPositionEmptyOrZero(t *testing.T) {
	if pos := FindWrapPosition("", 10, 4); pos != 0 {
		t.Fatalf("expected 0 for empty text, got %d", pos)
	}
	if pos := FindWrapPosition("abc", 0, 4); pos != 0 {
		t.Fatalf("expected 0 for non-positive maxCols, got %d", pos)
	}
}

func TestIsWordRune(t *testing.T) {
	for _, r := range []rune{'a', 'Z', '0', '_'} {
		if !IsWordRune(r) {
			t.Fatalf("expected %q to be a word rune", r)
		}
	}
	for _, r := range []rune{' ', '.', ',', '('} {
		if IsWordRune(r) {
			t.Fatalf("expected %q not to be a word rune", r)
		}
	}
}

func TestWordForwardBackwardEndRoundTrip(t *testing.T) {
	s := "foo bar baz"
	// from the start, WordForward should land on "bar"'s start.
	next := WordForward(s, 0)
	if s[next:next+3] != "bar" {
		t.Fatalf("expected WordForward to land on 'bar', got %q", s[next:])
	}
	back := WordBackward(s, next)
	if back != 0 {
		t.Fatalf("expected WordBackward to return to the start, got %d", back)
	}
	end := WordEnd(s, 0)
	if s[:end] != "foo" {
		t.Fatalf("expected WordEnd to land at the end of 'foo', got %q", s[:end])
	}
}

func TestWordForwardAtEndOfString(t *testing.T) {
	s := "foo"
	if got := WordForward(s, len(s)); got != len(s) {
		t.Fatalf("expected WordForward at end to stay at end, got %d", got)
	}
}

func TestPoolAllocDecrefRefcount(t *testing.T) {
	p := NewPool(Unicode)
	id := p.Alloc("漢")
	if id == 0 {
		t.Fatalf("expected a non-zero id")
	}
	if rc := p.Refcount(id); rc != 1 {
		t.Fatalf("expected refcount 1, got %d", rc)
	}

	id2 := p.Alloc("漢")
	if id2 != id {
		t.Fatalf("expected the same id for an equal byte sequence, got %d vs %d", id2, id)
	}
	if rc := p.Refcount(id); rc != 2 {
		t.Fatalf("expected refcount 2 after a second Alloc, got %d", rc)
	}

	p.Decref(id)
	if rc := p.Refcount(id); rc != 1 {
		t.Fatalf("expected refcount 1 after one Decref, got %d", rc)
	}

	p.Decref(id)
	if rc := p.Refcount(id); rc != 0 {
		t.Fatalf("expected refcount 0 after the entry drains, got %d", rc)
	}
	if _, _, ok := p.Lookup(id); ok {
		t.Fatalf("expected Lookup to report the freed entry as not live")
	}
}

func TestPoolLookupWidth(t *testing.T) {
	p := NewPool(Unicode)
	id := p.Alloc("漢")
	bytes, width, ok := p.Lookup(id)
	if !ok || bytes != "漢" || width != 2 {
		t.Fatalf("expected (\"漢\", 2, true), got (%q, %d, %v)", bytes, width, ok)
	}
}

func TestPoolDecrefUnknownIDIsNoop(t *testing.T) {
	p := NewPool(Unicode)
	p.Decref(0)
	p.Decref(9999)
	if _, _, ok := p.Lookup(9999); ok {
		t.Fatalf("expected an out-of-range id to never be live")
	}
}

func TestPoolReallocAfterFreeGetsFreshID(t *testing.T) {
	p := NewPool(Unicode)
	id := p.Alloc("x")
	p.Decref(id)
	id2 := p.Alloc("x")
	if id2 == id {
		t.Fatalf("expected a freed entry to not be silently resurrected under the same id")
	}
	if rc := p.Refcount(id2); rc != 1 {
		t.Fatalf("expected the fresh allocation to start at refcount 1, got %d", rc)
	}
}

// TestRuneWidthFullwidthFormsAreWide cross-checks the Unicode width method
// against x/text/width's classification of the fullwidth Latin block,
// independent of whatever uniseg's own table already reports.
func TestRuneWidthFullwidthFormsAreWide(t *testing.T) {
	if w := RuneWidth('Ａ', Unicode); w != 2 {
		t.Fatalf("expected width 2 for fullwidth Ａ (U+FF21), got %d", w)
	}
}
