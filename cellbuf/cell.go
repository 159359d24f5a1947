package cellbuf

import "github.com/kungfusheep/opentuigo/color"

// ContentKind discriminates a Cell's content variant.
type ContentKind uint8

const (
	// Empty is a blank cell (no glyph).
	Empty ContentKind = iota
	// Char is a single codepoint of display width 1 (the ASCII fast path).
	Char
	// Grapheme is a multi-codepoint cluster or wide character, stored in a
	// unicode.Pool behind an id.
	Grapheme
	// Continuation marks the right half of a width-2 cell; it carries no
	// content of its own.
	Continuation
)

// Cell is one screen cell: its foreground/background colors, attributes,
// and content. Grapheme content packs a 24-bit pool index in GraphemeID and
// an 8-bit display width in GraphemeWidth; GraphemeID zero is the no-pool
// placeholder.
type Cell struct {
	Style         Style
	Kind          ContentKind
	Char          rune
	GraphemeID    uint32
	GraphemeWidth uint8
}

// EmptyCell returns a blank cell with the given background and no
// foreground/attributes, as produced by Buffer.Clear.
func EmptyCell(bg color.Rgba) Cell {
	return Cell{Style: Style{BG: bg}, Kind: Empty}
}

// NewCharCell returns a width-1 Char cell.
func NewCharCell(r rune, style Style) Cell {
	return Cell{Style: style, Kind: Char, Char: r}
}

// NewGraphemeCell returns a cell referencing a pool-interned cluster.
func NewGraphemeCell(id uint32, width uint8, style Style) Cell {
	return Cell{Style: style, Kind: Grapheme, GraphemeID: id, GraphemeWidth: width}
}

// ContinuationCell returns a Continuation cell with the given style (used so
// diffing sees style changes on the right half of a wide cell too).
func ContinuationCell(style Style) Cell {
	return Cell{Style: style, Kind: Continuation}
}

// Equal reports whether two cells are bitwise identical, including style.
func (c Cell) Equal(other Cell) bool {
	return c == other
}

// Width returns the cell's display width in columns: 0 for Empty and
// Continuation, 1 for Char, and the stored width for Grapheme.
func (c Cell) Width() int {
	switch c.Kind {
	case Char:
		return 1
	case Grapheme:
		return int(c.GraphemeWidth)
	default:
		return 0
	}
}
