package highlight

// JSONTokenizer tokenizes a JSON document one line at a time. JSON has no
// construct that legally spans a line break, so State is always returned
// unchanged (ground state in, ground state out).
type JSONTokenizer struct{}

func (JSONTokenizer) TokenizeLine(text string, in State) ([]Token, State) {
	var tokens []Token
	n := len(text)
	i := 0

	flush := func(start, end int, kind TokenKind) {
		if end > start {
			tokens = append(tokens, Token{Start: start, End: end, Kind: kind})
		}
	}

	for i < n {
		c := text[i]
		switch {
		case c == '"':
			start := i
			i++
			isKey := false
			for i < n {
				if text[i] == '\\' && i+1 < n {
					i += 2
					continue
				}
				if text[i] == '"' {
					i++
					break
				}
				i++
			}
			j := i
			for j < n && (text[j] == ' ' || text[j] == '\t') {
				j++
			}
			if j < n && text[j] == ':' {
				isKey = true
			}
			if isKey {
				flush(start, i, Attribute)
			} else {
				flush(start, i, String)
			}
		case isDigit(c) || (c == '-' && i+1 < n && isDigit(text[i+1])):
			start := i
			i++
			for i < n && (isDigit(text[i]) || text[i] == '.' || text[i] == 'e' || text[i] == 'E' || text[i] == '+' || text[i] == '-') {
				i++
			}
			flush(start, i, Number)
		case matchWord(text, i, "true") || matchWord(text, i, "false") || matchWord(text, i, "null"):
			start := i
			for i < n && isIdentCont(text[i]) {
				i++
			}
			flush(start, i, Keyword)
		case c == '{' || c == '}' || c == '[' || c == ']' || c == ',' || c == ':':
			flush(i, i+1, Punctuation)
			i++
		default:
			i++
		}
	}
	return tokens, in
}

func matchWord(text string, i int, word string) bool {
	if i+len(word) > len(text) {
		return false
	}
	return text[i:i+len(word)] == word
}
