package input

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// DefaultPasteCap bounds bracketed-paste accumulation when a Parser is
// constructed with no explicit cap: large enough for any realistic clipboard
// paste, small enough to bound memory against a malicious or runaway peer
// holding bracketed-paste mode open forever.
const DefaultPasteCap = 1 << 20 // 1 MiB

// maxCSILen bounds CSI/SS3 parameter+intermediate scanning so a peer that
// never sends a final byte cannot force unbounded lookahead; once exceeded
// the whole span is reported UnrecognizedSequence so the caller can skip it
// and resynchronize.
const maxCSILen = 64

const pasteStart = "\x1b[200~"
const pasteEnd = "\x1b[201~"

// Parser is a streaming ANSI input decoder. It keeps only the small
// residual state named in §4.5/§9: whether it is mid-bracketed-paste and
// the bounded accumulation buffer for that paste's content. Nothing else
// persists between Parse calls.
type Parser struct {
	// PasteCap bounds bytes retained during bracketed-paste accumulation.
	// Zero means DefaultPasteCap.
	PasteCap int

	pasteActive  bool
	pasteBuf     []byte
	pasteDropped bool
}

// NewParser returns a ready-to-use Parser with default settings.
func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) pasteCap() int {
	if p.PasteCap > 0 {
		return p.PasteCap
	}
	return DefaultPasteCap
}

// Parse consumes a prefix of data and returns the event it decoded (if
// any), how many bytes were consumed, and an error. Per §4.5's grammar:
// Empty for a zero-length slice, Incomplete when more bytes are needed
// (the caller must retain data[consumed:] and append more),
// UnrecognizedSequence or InvalidUtf8 when the caller should typically skip
// ahead and retry. The parser always makes progress: consumed >= 1, or an
// Incomplete/Empty error is returned (invariant 10).
func (p *Parser) Parse(data []byte) (Event, int, error) {
	if len(data) == 0 {
		return Event{}, 0, ErrEmpty
	}
	if p.pasteActive {
		return p.continuePaste(data)
	}

	b := data[0]
	switch {
	case b == 0x1b:
		return p.parseEscape(data, false)
	case b == '\r':
		if len(data) >= 2 && data[1] == '\n' {
			return Event{Kind: KeyKind, Key: Key{Code: KeyEnter}}, 2, nil
		}
		return Event{Kind: KeyKind, Key: Key{Code: KeyEnter}}, 1, nil
	case b == '\n':
		return Event{Kind: KeyKind, Key: Key{Code: KeyEnter}}, 1, nil
	case b == '\t':
		return Event{Kind: KeyKind, Key: Key{Code: KeyTab}}, 1, nil
	case b == 0x7f:
		return Event{Kind: KeyKind, Key: Key{Code: KeyBackspace}}, 1, nil
	case b >= 1 && b <= 26:
		// Ctrl+letter (Ctrl-A=0x01 .. Ctrl-Z=0x1a); Ctrl-I/M/J alias to
		// Tab/Enter/Enter and are handled above before reaching here.
		return Event{Kind: KeyKind, Key: Key{Code: KeyChar, Char: rune('a' + b - 1), Modifiers: ModCtrl}}, 1, nil
	case b < 0x20:
		return Event{}, 1, &UnrecognizedSequenceError{Bytes: data[:1]}
	case b < 0x80:
		mods := Modifiers(0)
		if b >= 'A' && b <= 'Z' {
			mods = ModShift
		}
		return Event{Kind: KeyKind, Key: Key{Code: KeyChar, Char: rune(b), Modifiers: mods}}, 1, nil
	default:
		return p.parseUTF8(data)
	}
}

// ParseFlush behaves like Parse, except that a lone trailing ESC (no
// follow-up byte available) resolves to a bare Escape key instead of
// Incomplete. Callers that know no more bytes are coming within the
// timing window (§4.5, §9 open question (b)) should set flush true.
func (p *Parser) ParseFlush(data []byte, flush bool) (Event, int, error) {
	if flush && len(data) == 1 && data[0] == 0x1b && !p.pasteActive {
		return Event{Kind: KeyKind, Key: Key{Code: KeyEscape}}, 1, nil
	}
	return p.Parse(data)
}

func (p *Parser) parseUTF8(data []byte) (Event, int, error) {
	b := data[0]
	var n int
	switch {
	case b&0xE0 == 0xC0:
		n = 2
	case b&0xF0 == 0xE0:
		n = 3
	case b&0xF8 == 0xF0:
		n = 4
	default:
		return Event{}, 1, &InvalidUTF8Error{Bytes: data[:1]}
	}
	if len(data) < n {
		return Event{}, 0, ErrIncomplete
	}
	r, size := utf8.DecodeRune(data[:n])
	if r == utf8.RuneError && size <= 1 {
		return Event{}, 1, &InvalidUTF8Error{Bytes: data[:n]}
	}
	return Event{Kind: KeyKind, Key: Key{Code: KeyChar, Char: r}}, n, nil
}

func (p *Parser) parseEscape(data []byte, viaAlt bool) (Event, int, error) {
	if len(data) < 2 {
		return Event{}, 0, ErrIncomplete
	}
	switch data[1] {
	case '[':
		return p.parseCSI(data)
	case 'O':
		return p.parseSS3(data)
	default:
		// ESC + one other byte: Alt-modified key, decoded by recursing on
		// the byte after ESC and tagging the result with ModAlt.
		inner, n, err := p.Parse(data[1:])
		if err == ErrIncomplete && n == 0 {
			return Event{}, 0, ErrIncomplete
		}
		if err != nil {
			return inner, 1 + n, err
		}
		if inner.Kind == KeyKind {
			inner.Key.Modifiers |= ModAlt
		}
		return inner, 1 + n, nil
	}
}

func (p *Parser) parseSS3(data []byte) (Event, int, error) {
	if len(data) < 3 {
		return Event{}, 0, ErrIncomplete
	}
	var code KeyCode
	switch data[2] {
	case 'P':
		code = KeyF1
	case 'Q':
		code = KeyF2
	case 'R':
		code = KeyF3
	case 'S':
		code = KeyF4
	default:
		return Event{}, 3, &UnrecognizedSequenceError{Bytes: data[:3]}
	}
	return Event{Kind: KeyKind, Key: Key{Code: code}}, 3, nil
}

// parseCSI scans "\x1b[" + parameter/intermediate bytes + one final byte.
func (p *Parser) parseCSI(data []byte) (Event, int, error) {
	i := 2
	for i < len(data) && i < maxCSILen {
		b := data[i]
		if b >= 0x40 && b <= 0x7e {
			return p.decodeCSI(data[:i+1])
		}
		i++
	}
	if i >= maxCSILen {
		return Event{}, maxCSILen, &UnrecognizedSequenceError{Bytes: data[:maxCSILen]}
	}
	return Event{}, 0, ErrIncomplete
}

func (p *Parser) decodeCSI(seq []byte) (Event, int, error) {
	n := len(seq)
	final := seq[n-1]
	body := seq[2 : n-1]

	private := byte(0)
	if len(body) > 0 && (body[0] == '?' || body[0] == '<' || body[0] == '=' || body[0] == '>') {
		private = body[0]
		body = body[1:]
	}
	params := parseParams(string(body))

	switch {
	case private == '<' && (final == 'M' || final == 'm'):
		return p.decodeSGRMouse(params, final, seq)
	case final == 'A':
		return arrowEvent(KeyUp, params), n, nil
	case final == 'B':
		return arrowEvent(KeyDown, params), n, nil
	case final == 'C':
		return arrowEvent(KeyRight, params), n, nil
	case final == 'D':
		return arrowEvent(KeyLeft, params), n, nil
	case final == 'H':
		return arrowEvent(KeyHome, params), n, nil
	case final == 'F':
		return arrowEvent(KeyEnd, params), n, nil
	case final == 'P' && private == 0:
		return arrowEvent(KeyF1, params), n, nil
	case final == 'Q' && private == 0:
		return arrowEvent(KeyF2, params), n, nil
	case final == 'R' && private == 0:
		return arrowEvent(KeyF3, params), n, nil
	case final == 'S' && private == 0:
		return arrowEvent(KeyF4, params), n, nil
	case final == 'I' && private == 0 && len(params) == 0:
		return Event{Kind: FocusGainedKind}, n, nil
	case final == 'O' && private == 0 && len(params) == 0:
		return Event{Kind: FocusLostKind}, n, nil
	case final == '~':
		if len(params) == 0 {
			return Event{}, n, &UnrecognizedSequenceError{Bytes: seq}
		}
		code, ok := tildeCode(params[0])
		if !ok {
			if params[0] == 200 {
				p.pasteActive = true
				p.pasteBuf = p.pasteBuf[:0]
				p.pasteDropped = false
				return Event{Kind: None}, n, nil
			}
			return Event{}, n, &UnrecognizedSequenceError{Bytes: seq}
		}
		mods := Modifiers(0)
		if len(params) >= 2 {
			mods = modifierParam(params[1])
		}
		return Event{Kind: KeyKind, Key: Key{Code: code, Modifiers: mods}}, n, nil
	default:
		return Event{}, n, &UnrecognizedSequenceError{Bytes: seq}
	}
}

func arrowEvent(code KeyCode, params []int) Event {
	mods := Modifiers(0)
	if len(params) >= 2 {
		mods = modifierParam(params[1])
	}
	return Event{Kind: KeyKind, Key: Key{Code: code, Modifiers: mods}}
}

// tildeCode maps the xterm "CSI n ~" numeric codes used for navigation and
// function keys.
func tildeCode(n int) (KeyCode, bool) {
	switch n {
	case 1, 7:
		return KeyHome, true
	case 2:
		return KeyInsert, true
	case 3:
		return KeyDelete, true
	case 4, 8:
		return KeyEnd, true
	case 5:
		return KeyPageUp, true
	case 6:
		return KeyPageDown, true
	case 11:
		return KeyF1, true
	case 12:
		return KeyF2, true
	case 13:
		return KeyF3, true
	case 14:
		return KeyF4, true
	case 15:
		return KeyF5, true
	case 17:
		return KeyF6, true
	case 18:
		return KeyF7, true
	case 19:
		return KeyF8, true
	case 20:
		return KeyF9, true
	case 21:
		return KeyF10, true
	case 23:
		return KeyF11, true
	case 24:
		return KeyF12, true
	default:
		return 0, false
	}
}

// modifierParam decodes the "1;M" xterm modifier encoding: M-1 is a
// bitfield of Shift(1)/Alt(2)/Ctrl(4).
func modifierParam(m int) Modifiers {
	bits := m - 1
	mods := Modifiers(0)
	if bits&1 != 0 {
		mods |= ModShift
	}
	if bits&2 != 0 {
		mods |= ModAlt
	}
	if bits&4 != 0 {
		mods |= ModCtrl
	}
	return mods
}

func (p *Parser) decodeSGRMouse(params []int, final byte, seq []byte) (Event, int, error) {
	if len(params) < 3 {
		return Event{}, len(seq), &UnrecognizedSequenceError{Bytes: seq}
	}
	cb, px, py := params[0], params[1], params[2]

	mods := Modifiers(0)
	if cb&4 != 0 {
		mods |= ModShift
	}
	if cb&8 != 0 {
		mods |= ModAlt
	}
	if cb&16 != 0 {
		mods |= ModCtrl
	}
	motion := cb&32 != 0

	m := Mouse{X: px - 1, Y: py - 1, Modifiers: mods}
	switch {
	case cb&64 != 0:
		m.Button = ButtonNone
		if cb&1 != 0 {
			m.Kind = MouseScrollDown
		} else {
			m.Kind = MouseScrollUp
		}
	default:
		switch cb & 0x3 {
		case 0:
			m.Button = ButtonLeft
		case 1:
			m.Button = ButtonMiddle
		case 2:
			m.Button = ButtonRight
		default:
			m.Button = ButtonNone
		}
		switch {
		case motion:
			m.Kind = MouseMotion
		case final == 'M':
			m.Kind = MousePress
		default:
			m.Kind = MouseRelease
		}
	}
	return Event{Kind: MouseKind, Mouse: m}, len(seq), nil
}

// parseParams splits a CSI parameter body on ';' into integers, treating
// an empty field as 0 (matching xterm's "omitted parameter defaults to its
// documented default, usually equivalent to 0 or 1 depending on context").
// Colon-separated subparameters are collapsed to their base value; this
// repository has no CSI consumer that needs the subparameter split other
// ANSI-terminal-emulator parsers in the pack track for SGR truecolor.
func parseParams(body string) []int {
	if body == "" {
		return nil
	}
	var params []int
	start := 0
	for i := 0; i <= len(body); i++ {
		if i == len(body) || body[i] == ';' {
			field := body[start:i]
			if colon := indexByte(field, ':'); colon >= 0 {
				field = field[:colon]
			}
			params = append(params, atoiOr0(field))
			start = i + 1
		}
	}
	return params
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func atoiOr0(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// continuePaste accumulates bytes while inside bracketed-paste mode,
// watching for the "\x1b[201~" terminator without ever splitting it across
// two calls: any trailing bytes that are a prefix of the terminator are
// held back (not consumed) so the caller re-offers them, concatenated with
// the next chunk, on the following call.
func (p *Parser) continuePaste(data []byte) (Event, int, error) {
	if idx := indexString(data, pasteEnd); idx >= 0 {
		p.appendPaste(data[:idx])
		content := string(p.pasteBuf)
		p.pasteActive = false
		p.pasteBuf = nil
		p.pasteDropped = false
		return Event{Kind: PasteKind, Paste: content}, idx + len(pasteEnd), nil
	}

	hold := longestPrefixOverlap(data, pasteEnd)
	consumed := len(data) - hold
	if consumed > 0 {
		p.appendPaste(data[:consumed])
	}
	return Event{}, consumed, ErrIncomplete
}

func (p *Parser) appendPaste(chunk []byte) {
	limit := p.pasteCap()
	if len(p.pasteBuf) >= limit {
		if !p.pasteDropped {
			fmt.Fprintf(os.Stderr, "input: bracketed paste exceeded %d bytes, dropping excess\n", limit)
			p.pasteDropped = true
		}
		return
	}
	room := limit - len(p.pasteBuf)
	if len(chunk) > room {
		chunk = chunk[:room]
		if !p.pasteDropped {
			fmt.Fprintf(os.Stderr, "input: bracketed paste exceeded %d bytes, dropping excess\n", limit)
			p.pasteDropped = true
		}
	}
	p.pasteBuf = append(p.pasteBuf, chunk...)
}

func indexString(data []byte, s string) int {
	n, m := len(data), len(s)
	for i := 0; i+m <= n; i++ {
		if string(data[i:i+m]) == s {
			return i
		}
	}
	return -1
}

// longestPrefixOverlap returns the length of the longest suffix of data
// that is also a prefix of term, so the caller can avoid splitting term
// across a chunk boundary.
func longestPrefixOverlap(data []byte, term string) int {
	limit := len(term) - 1
	if limit > len(data) {
		limit = len(data)
	}
	for l := limit; l > 0; l-- {
		if string(data[len(data)-l:]) == term[:l] {
			return l
		}
	}
	return 0
}
