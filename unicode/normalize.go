package unicode

import "golang.org/x/text/unicode/norm"

// NFC returns the canonical composition of s.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// NFD returns the canonical decomposition of s.
func NFD(s string) string {
	return norm.NFD.String(s)
}

// CompareNormalized compares a and b after NFC normalization, so strings
// that differ only in Unicode composition compare equal. Returns -1, 0, or
// 1 like strings.Compare.
func CompareNormalized(a, b string) int {
	na, nb := NFC(a), NFC(b)
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	default:
		return 0
	}
}
