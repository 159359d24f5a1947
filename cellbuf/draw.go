package cellbuf

import (
	textunicode "github.com/kungfusheep/opentuigo/unicode"
)

// DrawText writes s at (x,y) in the given style. Pure-ASCII strings take
// the Char fast path (teacher's buffer.go WriteString inner loop); any
// non-ASCII byte routes the whole call through grapheme segmentation,
// writing Grapheme/Continuation pairs for width-2 clusters and skipping
// zero-width ones. Grapheme cells get the no-pool placeholder id (0).
func (b *Buffer) DrawText(x, y int, s string, style Style) {
	b.drawTextImpl(x, y, s, style, nil)
}

// DrawTextWithPool is the pool-aware variant: each multi-codepoint cluster
// is interned through pool, transferring its refcount to the buffer.
func (b *Buffer) DrawTextWithPool(pool *textunicode.Pool, x, y int, s string, style Style) {
	b.drawTextImpl(x, y, s, style, pool)
}

func (b *Buffer) drawTextImpl(x, y int, s string, style Style, pool *textunicode.Pool) {
	if isASCII(s) {
		col := x
		for i := 0; i < len(s); i++ {
			b.setImpl(col, y, NewCharCell(rune(s[i]), style), pool != nil)
			col++
		}
		return
	}

	method := b.method
	col := x
	for _, g := range textunicode.Graphemes(s) {
		w := textunicode.GraphemeWidth(g.Text, method)
		if w == 0 {
			continue
		}
		if w == 1 && len(g.Text) == 1 {
			b.setImpl(col, y, NewCharCell(rune(g.Text[0]), style), pool != nil)
			col++
			continue
		}
		var id uint32
		if pool != nil {
			id = pool.Alloc(g.Text)
		}
		b.setImpl(col, y, NewGraphemeCell(id, uint8(w), style), pool != nil)
		col += w
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// DrawBuffer copies every non-empty cell from src into b at offset (dx,dy),
// respecting b's clip stack. Pool ownership is not transferred: if either
// buffer has an attached pool, callers should draw pool-aware content
// directly rather than composing via DrawBuffer.
func (b *Buffer) DrawBuffer(dx, dy int, src *Buffer) {
	for sy := 0; sy < src.height; sy++ {
		for sx := 0; sx < src.width; sx++ {
			c := src.cells[src.index(sx, sy)]
			if c.Kind == Empty {
				continue
			}
			b.Set(dx+sx, dy+sy, c)
		}
	}
}
