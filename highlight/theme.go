package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/kungfusheep/opentuigo/cellbuf"
	"github.com/kungfusheep/opentuigo/color"
)

// Theme projects TokenKind onto a cellbuf.Style, backed by one of chroma's
// built-in style tables. Only the style data (colors plus bold, italic and
// underline) is used — chroma's lexer engine is not wired (see DESIGN.md for why it cannot satisfy the
// per-line state_in/state_out resumability invariant).
type Theme struct {
	name  string
	style *chroma.Style
}

// NewTheme loads a built-in chroma style by name (e.g. "monokai",
// "github", "dracula"). Falls back to chroma's default style if name is
// unknown.
func NewTheme(name string) *Theme {
	s := styles.Get(name)
	if s == nil {
		s = styles.Fallback
	}
	return &Theme{name: name, style: s}
}

var kindToChroma = map[TokenKind]chroma.TokenType{
	Plain:       chroma.Text,
	Keyword:     chroma.Keyword,
	Identifier:  chroma.Name,
	Type:        chroma.NameClass,
	String:      chroma.LiteralString,
	Number:      chroma.LiteralNumber,
	Comment:     chroma.Comment,
	DocComment:  chroma.CommentSpecial,
	Operator:    chroma.Operator,
	Punctuation: chroma.Punctuation,
	Attribute:   chroma.NameAttribute,
}

// Style returns the cellbuf.Style for kind under this theme.
func (t *Theme) Style(kind TokenKind) cellbuf.Style {
	entry := t.style.Get(kindToChroma[kind])
	style := cellbuf.DefaultStyle()
	if entry.Colour.IsSet() {
		if c, ok := color.FromHex(entry.Colour.String()); ok {
			style.FG = c
		}
	}
	if entry.Background.IsSet() {
		if c, ok := color.FromHex(entry.Background.String()); ok {
			style.BG = c
		}
	}
	if entry.Bold == chroma.Yes {
		style.Attr = style.Attr.With(cellbuf.AttrBold)
	}
	if entry.Italic == chroma.Yes {
		style.Attr = style.Attr.With(cellbuf.AttrItalic)
	}
	if entry.Underline == chroma.Yes {
		style.Attr = style.Attr.With(cellbuf.AttrUnderline)
	}
	return style
}
