package cellbuf

import (
	"github.com/kungfusheep/opentuigo/color"
	textunicode "github.com/kungfusheep/opentuigo/unicode"
)

// LineStyle names one of the box-drawing glyph sets.
type LineStyle uint8

const (
	LineSingle LineStyle = iota
	LineDouble
	LineRounded
	LineHeavy
	LineASCII
)

// BoxGlyphs holds the corner/edge runes for one line style, generalized
// from the teacher's BorderStyle (buffer.go) to add the Double/Heavy/ASCII
// sets the spec requires.
type BoxGlyphs struct {
	Horizontal, Vertical                           rune
	TopLeft, TopRight, BottomLeft, BottomRight rune
}

var boxGlyphSets = map[LineStyle]BoxGlyphs{
	LineSingle: {
		Horizontal: '─', Vertical: '│',
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
	},
	LineDouble: {
		Horizontal: '═', Vertical: '║',
		TopLeft: '╔', TopRight: '╗', BottomLeft: '╚', BottomRight: '╝',
	},
	LineRounded: {
		Horizontal: '─', Vertical: '│',
		TopLeft: '╭', TopRight: '╮', BottomLeft: '╰', BottomRight: '╯',
	},
	LineHeavy: {
		Horizontal: '━', Vertical: '┃',
		TopLeft: '┏', TopRight: '┓', BottomLeft: '┗', BottomRight: '┛',
	},
	LineASCII: {
		Horizontal: '-', Vertical: '|',
		TopLeft: '+', TopRight: '+', BottomLeft: '+', BottomRight: '+',
	},
}

// Glyphs returns the corner/edge rune set for a LineStyle.
func Glyphs(style LineStyle) BoxGlyphs {
	return boxGlyphSets[style]
}

// TitleAlign selects where a box title is placed along the top border.
type TitleAlign uint8

const (
	TitleLeft TitleAlign = iota
	TitleCenter
	TitleRight
)

// BoxOptions configures DrawBoxWithOptions.
type BoxOptions struct {
	Line      LineStyle
	Style     Style
	Fill      *color.Rgba // nil = don't fill interior
	Title     string
	TitleAlign TitleAlign
	Hyperlink string
}

// DrawBox draws a box outline (corners, horizontal and vertical edges only,
// no title or fill) of the given line style.
func (b *Buffer) DrawBox(x, y, w, h int, line LineStyle, style Style) {
	b.DrawBoxWithOptions(x, y, w, h, BoxOptions{Line: line, Style: style})
}

// DrawBoxWithOptions draws a box with an optional interior fill color and
// an optional title string aligned left/center/right within the top
// border. The title is drawn through the no-pool DrawText path; use
// DrawBoxWithOptionsWithPool if the title may contain multi-codepoint
// graphemes that should be interned.
func (b *Buffer) DrawBoxWithOptions(x, y, w, h int, opts BoxOptions) {
	b.drawBoxWithOptionsImpl(x, y, w, h, opts, nil)
}

// DrawBoxWithOptionsWithPool is the pool-aware variant of
// DrawBoxWithOptions: the title string's graphemes are interned through
// pool exactly as DrawTextWithPool does.
func (b *Buffer) DrawBoxWithOptionsWithPool(pool *textunicode.Pool, x, y, w, h int, opts BoxOptions) {
	b.drawBoxWithOptionsImpl(x, y, w, h, opts, pool)
}

func (b *Buffer) drawBoxWithOptionsImpl(x, y, w, h int, opts BoxOptions, pool *textunicode.Pool) {
	if w < 2 || h < 2 {
		return
	}
	g := Glyphs(opts.Line)
	style := opts.Style
	style.Hyperlink = opts.Hyperlink

	if opts.Fill != nil {
		if pool != nil {
			b.FillRectWithPool(x+1, y+1, w-2, h-2, *opts.Fill)
		} else {
			b.FillRect(x+1, y+1, w-2, h-2, *opts.Fill)
		}
	}

	poolAware := pool != nil
	b.setImpl(x, y, NewCharCell(g.TopLeft, style), poolAware)
	b.setImpl(x+w-1, y, NewCharCell(g.TopRight, style), poolAware)
	b.setImpl(x, y+h-1, NewCharCell(g.BottomLeft, style), poolAware)
	b.setImpl(x+w-1, y+h-1, NewCharCell(g.BottomRight, style), poolAware)

	for i := 1; i < w-1; i++ {
		b.setImpl(x+i, y, NewCharCell(g.Horizontal, style), poolAware)
		b.setImpl(x+i, y+h-1, NewCharCell(g.Horizontal, style), poolAware)
	}
	for i := 1; i < h-1; i++ {
		b.setImpl(x, y+i, NewCharCell(g.Vertical, style), poolAware)
		b.setImpl(x+w-1, y+i, NewCharCell(g.Vertical, style), poolAware)
	}

	if opts.Title != "" && w > 4 {
		b.drawBoxTitle(x, y, w, opts, pool)
	}
}

func (b *Buffer) drawBoxTitle(x, y, w int, opts BoxOptions, pool *textunicode.Pool) {
	avail := w - 2
	title := opts.Title
	runes := []rune(title)
	if len(runes) > avail {
		runes = runes[:avail]
		title = string(runes)
	}
	titleWidth := len([]rune(title))
	var startX int
	switch opts.TitleAlign {
	case TitleCenter:
		startX = x + 1 + (avail-titleWidth)/2
	case TitleRight:
		startX = x + 1 + (avail - titleWidth)
	default:
		startX = x + 1
	}
	if pool != nil {
		b.DrawTextWithPool(pool, startX, y, title, opts.Style)
	} else {
		b.DrawText(startX, y, title, opts.Style)
	}
}
