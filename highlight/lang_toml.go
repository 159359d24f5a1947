package highlight

// TOMLTokenizer tokenizes TOML. Like JSON, nothing in TOML legally spans a
// line break except triple-quoted strings, which this tokenizer treats as
// ground-state (no State propagation) since they are rare in practice and
// the spec only requires "at least" baseline coverage for this language.
type TOMLTokenizer struct{}

func (TOMLTokenizer) TokenizeLine(text string, in State) ([]Token, State) {
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
		case c == '#':
			flush(i, n, Comment)
			i = n
		case c == '"' || c == '\'':
			start := i
			quote := c
			i++
			for i < n {
				if text[i] == '\\' && quote == '"' && i+1 < n {
					i += 2
					continue
				}
				if text[i] == quote {
					i++
					break
				}
				i++
			}
			j := i
			for j < n && text[j] == ' ' {
				j++
			}
			if j < n && text[j] == '=' {
				flush(start, i, Attribute)
			} else {
				flush(start, i, String)
			}
		case isDigit(c):
			start := i
			for i < n && (isDigit(text[i]) || text[i] == '.' || text[i] == '_' || text[i] == ':' || text[i] == '-' || text[i] == 'T' || text[i] == 'Z') {
				i++
			}
			flush(start, i, Number)
		case c == '[':
			start := i
			for i < n && text[i] != ']' {
				i++
			}
			if i < n {
				i++
			}
			flush(start, i, Type)
		case isIdentStart(c):
			start := i
			for i < n && (isIdentCont(text[i]) || text[i] == '-') {
				i++
			}
			j := i
			for j < n && text[j] == ' ' {
				j++
			}
			if j < n && text[j] == '=' {
				flush(start, i, Attribute)
			} else {
				flush(start, i, Identifier)
			}
		case c == '=':
			flush(i, i+1, Operator)
			i++
		case c == ',' || c == '.':
			flush(i, i+1, Punctuation)
			i++
		default:
			i++
		}
	}
	return tokens, in
}
