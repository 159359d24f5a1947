// Package unicode provides the display-width, grapheme-segmentation,
// normalization, and line/word scanning services the rest of the engine
// builds on, plus the reference-counted grapheme pool used by cellbuf.
package unicode

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/text/width"
)

// WidthMethod selects which display-width algorithm is used.
type WidthMethod uint8

const (
	// WcWidth uses the legacy wcwidth-style table (mattn/go-runewidth),
	// matching older terminal emulators.
	WcWidth WidthMethod = iota
	// Unicode uses the current UAX #11 East-Asian-width-aware algorithm
	// (rivo/uniseg), matching modern terminal emulators.
	Unicode
)

// RuneWidth returns the display width (0, 1, or 2) of a single rune under
// the given method.
func RuneWidth(r rune, method WidthMethod) int {
	switch method {
	case WcWidth:
		return runewidth.RuneWidth(r)
	default:
		w := uniseg.StringWidth(string(r))
		if w < 0 {
			w = 0
		}
		if w > 2 {
			w = 2
		}
		return crossCheckEastAsianWidth(r, w)
	}
}

// crossCheckEastAsianWidth widens a uniseg-derived width to 2 when
// x/text/width classifies r as East-Asian Wide or Fullwidth but uniseg
// reported 1 or 0 — uniseg's own width table occasionally lags the
// Unicode East Asian Width data x/text/width ships from, so this keeps the
// Unicode method's wide-character classification current against both
// tables rather than trusting uniseg alone.
func crossCheckEastAsianWidth(r rune, w int) int {
	if w >= 2 {
		return w
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return w
	}
}

// StringWidth returns the sum of the display widths of the grapheme
// clusters in s (invariant 5: display_width(T) = sum of grapheme widths).
func StringWidth(s string, method WidthMethod) int {
	total := 0
	for _, g := range Graphemes(s) {
		total += GraphemeWidth(g.Text, method)
	}
	return total
}

// GraphemeWidth returns the display width of a single (possibly
// multi-codepoint) grapheme cluster.
func GraphemeWidth(cluster string, method WidthMethod) int {
	if cluster == "" {
		return 0
	}
	switch method {
	case WcWidth:
		return runewidth.StringWidth(cluster)
	default:
		w := uniseg.StringWidth(cluster)
		if w < 0 {
			w = 0
		}
		if w > 2 {
			w = 2
		}
		if r, size := utf8.DecodeRuneInString(cluster); size == len(cluster) {
			return crossCheckEastAsianWidth(r, w)
		}
		return w
	}
}
