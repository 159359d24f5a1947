// Package cellbuf implements the fixed-size styled cell grid: Style, Cell,
// and Buffer with clip (scissor) and opacity stacks, alpha blending, and
// the primitive drawing operations (text, rectangles, boxes, buffer copies).
package cellbuf

import "github.com/kungfusheep/opentuigo/color"

// Attribute is a bitset of text styling attributes, generalized from the
// teacher's tui.go Attribute to add Blink, Hidden, and Strikethrough per
// spec §3.
type Attribute uint16

const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << iota
	AttrItalic
	AttrUnderline
	AttrDim
	AttrInverse
	AttrBlink
	AttrStrikethrough
	AttrHidden
)

// Has reports whether the set contains attr.
func (a Attribute) Has(attr Attribute) bool { return a&attr != 0 }

// With returns a with attr added.
func (a Attribute) With(attr Attribute) Attribute { return a | attr }

// Without returns a with attr removed.
func (a Attribute) Without(attr Attribute) Attribute { return a &^ attr }

// Style is a foreground/background color pair, an attribute bitset, and an
// optional hyperlink target.
type Style struct {
	FG        color.Rgba
	BG        color.Rgba
	Attr      Attribute
	Hyperlink string
}

// DefaultStyle returns a style with transparent fg/bg and no attributes.
func DefaultStyle() Style {
	return Style{}
}

// Merge composes s with override: override's FG, BG, and Hyperlink replace
// s's, and attribute bits OR together.
func (s Style) Merge(override Style) Style {
	return Style{
		FG:        override.FG,
		BG:        override.BG,
		Attr:      s.Attr | override.Attr,
		Hyperlink: override.Hyperlink,
	}
}

// Equal reports whether two styles are identical.
func (s Style) Equal(other Style) bool {
	return s == other
}

// Bold returns a copy of s with bold set.
func (s Style) Bold() Style { s.Attr = s.Attr.With(AttrBold); return s }

// Italic returns a copy of s with italic set.
func (s Style) Italic() Style { s.Attr = s.Attr.With(AttrItalic); return s }

// Underline returns a copy of s with underline set.
func (s Style) Underline() Style { s.Attr = s.Attr.With(AttrUnderline); return s }

// Dim returns a copy of s with dim set.
func (s Style) Dim() Style { s.Attr = s.Attr.With(AttrDim); return s }

// Inverse returns a copy of s with inverse video set.
func (s Style) Inverse() Style { s.Attr = s.Attr.With(AttrInverse); return s }

// Blink returns a copy of s with blink set.
func (s Style) Blink() Style { s.Attr = s.Attr.With(AttrBlink); return s }

// Strikethrough returns a copy of s with strikethrough set.
func (s Style) Strikethrough() Style { s.Attr = s.Attr.With(AttrStrikethrough); return s }

// Hidden returns a copy of s with hidden set.
func (s Style) Hidden() Style { s.Attr = s.Attr.With(AttrHidden); return s }

// WithFG returns a copy of s with the given foreground color.
func (s Style) WithFG(c color.Rgba) Style { s.FG = c; return s }

// WithBG returns a copy of s with the given background color.
func (s Style) WithBG(c color.Rgba) Style { s.BG = c; return s }

// WithHyperlink returns a copy of s with the given hyperlink target.
func (s Style) WithHyperlink(url string) Style { s.Hyperlink = url; return s }
