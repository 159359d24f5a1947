package unicode

// IsWordRune reports whether r is a "word" character: ASCII letters, digits
// and underscore, generalized from cmd/minivim's isWordChar (ASCII-only byte
// check) by also counting every non-ASCII rune as a word rune.
func IsWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	case r > 0x7f:
		// Every non-ASCII rune is a word rune, including non-ASCII
		// punctuation and spaces (e.g. CJK punctuation); the word motions
		// do not tell them apart from letters.
		return true
	}
	return false
}

// WordForward returns the byte offset of the start of the next word after
// byteOffset in s, or len(s) if there is none.
func WordForward(s string, byteOffset int) int {
	runes := []rune(s)
	idx := runeIndexForByte(s, byteOffset)
	n := len(runes)
	if idx >= n {
		return len(s)
	}
	// Skip the remainder of the current run (word or punctuation run).
	word := IsWordRune(runes[idx])
	for idx < n && runes[idx] != ' ' && runes[idx] != '\t' && IsWordRune(runes[idx]) == word {
		idx++
	}
	for idx < n && (runes[idx] == ' ' || runes[idx] == '\t') {
		idx++
	}
	return byteOffsetForRuneIndex(s, idx)
}

// WordBackward returns the byte offset of the start of the word at or
// before byteOffset in s.
func WordBackward(s string, byteOffset int) int {
	runes := []rune(s)
	idx := runeIndexForByte(s, byteOffset)
	if idx > len(runes) {
		idx = len(runes)
	}
	if idx > 0 {
		idx--
	}
	for idx > 0 && (runes[idx] == ' ' || runes[idx] == '\t') {
		idx--
	}
	for idx > 0 && IsWordRune(runes[idx-1]) == IsWordRune(runes[idx]) && runes[idx] != ' ' && runes[idx] != '\t' {
		idx--
	}
	return byteOffsetForRuneIndex(s, idx)
}

// WordEnd returns the byte offset one past the end of the word containing
// or following byteOffset in s.
func WordEnd(s string, byteOffset int) int {
	runes := []rune(s)
	idx := runeIndexForByte(s, byteOffset)
	n := len(runes)
	if idx < n {
		idx++
	}
	for idx < n && (runes[idx] == ' ' || runes[idx] == '\t') {
		idx++
	}
	if idx < n {
		word := IsWordRune(runes[idx])
		for idx < n && IsWordRune(runes[idx]) == word {
			idx++
		}
	}
	return byteOffsetForRuneIndex(s, idx)
}

func runeIndexForByte(s string, byteOffset int) int {
	count := 0
	for i := range s {
		if i >= byteOffset {
			return count
		}
		count++
	}
	return count
}

func byteOffsetForRuneIndex(s string, idx int) int {
	count := 0
	for i := range s {
		if count == idx {
			return i
		}
		count++
	}
	return len(s)
}
