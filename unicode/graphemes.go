package unicode

import "github.com/rivo/uniseg"

// Grapheme is one user-perceived character: its substring and the byte
// offset range [Start, End) it occupies in the source string.
type Grapheme struct {
	Text  string
	Start int
	End   int
}

// Graphemes splits s into extended grapheme clusters per UAX #29.
// Concatenating every returned cluster's Text reproduces s exactly
// (invariant 5).
func Graphemes(s string) []Grapheme {
	if s == "" {
		return nil
	}
	var out []Grapheme
	g := uniseg.NewGraphemes(s)
	pos := 0
	for g.Next() {
		cluster := g.Str()
		out = append(out, Grapheme{Text: cluster, Start: pos, End: pos + len(cluster)})
		pos += len(cluster)
	}
	return out
}

// FirstGrapheme returns the first grapheme cluster of s and its byte length,
// or ("", 0) if s is empty. Useful for incremental consumption without
// allocating the full slice.
func FirstGrapheme(s string) (string, int) {
	if s == "" {
		return "", 0
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return cluster, len(cluster)
}
