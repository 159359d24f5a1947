package cellbuf

import (
	"github.com/kungfusheep/opentuigo/color"
	textunicode "github.com/kungfusheep/opentuigo/unicode"
)

// Buffer is a fixed width x height grid of styled cells, with a stack of
// clip (scissor) rectangles and a stack of opacities applied to every
// subsequent write. Grounded on the teacher's buffer.go Buffer, generalized
// from a flat []Cell + bounds check into a clip/opacity-aware surface per
// spec §4.2.
type Buffer struct {
	width, height int
	cells         []Cell
	background    color.Rgba

	clipStack    []Rect
	opacityStack []float64

	pool   *textunicode.Pool // optional; nil means pool-aware ops are unused
	method textunicode.WidthMethod
}

// New creates a buffer of width x height empty cells with a default
// (transparent) background.
func New(width, height int) *Buffer {
	return NewWithBackground(width, height, color.Rgba{})
}

// NewWithBackground creates a buffer with the given initial background.
func NewWithBackground(width, height int, bg color.Rgba) *Buffer {
	b := &Buffer{
		width:      width,
		height:     height,
		cells:      make([]Cell, width*height),
		background: bg,
	}
	empty := EmptyCell(bg)
	for i := range b.cells {
		b.cells[i] = empty
	}
	return b
}

// SetPool attaches a grapheme pool for the pool-aware drawing variants and
// selects the width method used to size new pool-aware writes.
func (b *Buffer) SetPool(p *textunicode.Pool, method textunicode.WidthMethod) {
	b.pool = p
	b.method = method
}

// Pool returns the grapheme pool attached via SetPool, or nil if none is
// attached. Consumers that need to resolve a Grapheme cell's id back to
// its interned bytes (e.g. ansiwriter serializing a frame) use this.
func (b *Buffer) Pool() *textunicode.Pool { return b.pool }

// Width returns the buffer width in columns.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in rows.
func (b *Buffer) Height() int { return b.height }

// Size returns (width, height).
func (b *Buffer) Size() (int, int) { return b.width, b.height }

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Buffer) index(x, y int) int { return y*b.width + x }

// effectiveClip returns the intersection of every rectangle on the clip
// stack (the full buffer if the stack is empty).
func (b *Buffer) effectiveClip() Rect {
	clip := Rect{X: 0, Y: 0, W: b.width, H: b.height}
	for _, r := range b.clipStack {
		clip = clip.Intersect(r)
	}
	return clip
}

// effectiveOpacity returns the product of every opacity pushed so far (1 if
// the stack is empty). PushOpacity already stores each entry as the
// cumulative product, so this is the top of the stack.
func (b *Buffer) effectiveOpacity() float64 {
	if len(b.opacityStack) == 0 {
		return 1.0
	}
	return b.opacityStack[len(b.opacityStack)-1]
}

func (b *Buffer) writable(x, y int) bool {
	if !b.inBounds(x, y) {
		return false
	}
	return b.effectiveClip().Contains(x, y)
}

// PushScissor pushes rect intersected with the current top of the clip
// stack (or the full buffer if the stack is empty); PopScissor restores the
// previous state.
func (b *Buffer) PushScissor(rect Rect) {
	top := Rect{X: 0, Y: 0, W: b.width, H: b.height}
	if len(b.clipStack) > 0 {
		top = b.clipStack[len(b.clipStack)-1]
	}
	b.clipStack = append(b.clipStack, rect.Intersect(top))
}

// PopScissor pops the most recent scissor rectangle. Popping an empty stack
// is a programmer error; the implementation asserts by panicking, matching
// §5's "caller-scoped, unmatched push/pop is a programmer error" contract.
func (b *Buffer) PopScissor() {
	if len(b.clipStack) == 0 {
		panic("cellbuf: PopScissor with empty clip stack")
	}
	b.clipStack = b.clipStack[:len(b.clipStack)-1]
}

// PushOpacity pushes a*previousTop (1 if the stack is empty).
func (b *Buffer) PushOpacity(a float64) {
	top := 1.0
	if len(b.opacityStack) > 0 {
		top = b.opacityStack[len(b.opacityStack)-1]
	}
	b.opacityStack = append(b.opacityStack, a*top)
}

// PopOpacity pops the most recent opacity. Popping an empty stack is a
// programmer error and panics, matching PopScissor.
func (b *Buffer) PopOpacity() {
	if len(b.opacityStack) == 0 {
		panic("cellbuf: PopOpacity with empty opacity stack")
	}
	b.opacityStack = b.opacityStack[:len(b.opacityStack)-1]
}

func (b *Buffer) applyOpacity(c color.Rgba) color.Rgba {
	op := b.effectiveOpacity()
	if op == 1 {
		return c
	}
	return c.MultiplyAlpha(op)
}

// Clear sets every cell to Empty with the given background color. If a pool
// is attached, every displaced grapheme id is decremented.
func (b *Buffer) Clear(bg color.Rgba) {
	b.background = bg
	empty := EmptyCell(bg)
	for i := range b.cells {
		b.releaseIfGrapheme(b.cells[i])
		b.cells[i] = empty
	}
}

func (b *Buffer) releaseIfGrapheme(c Cell) {
	if b.pool != nil && c.Kind == Grapheme && c.GraphemeID != 0 {
		b.pool.Decref(c.GraphemeID)
	}
}

// Get returns the cell at (x,y), or the zero Cell if out of bounds.
func (b *Buffer) Get(x, y int) (Cell, bool) {
	if !b.inBounds(x, y) {
		return Cell{}, false
	}
	return b.cells[b.index(x, y)], true
}

// Set writes cell at (x,y). Out-of-bounds and clipped writes are no-ops. If
// cell is a width-2 grapheme, the Continuation half is also written; if
// that half would fall outside the buffer or outside the clip, neither
// cell is written.
func (b *Buffer) Set(x, y int, cell Cell) {
	b.setImpl(x, y, cell, false)
}

// SetWithPool is the pool-aware variant of Set: the caller has already
// allocated cell's GraphemeID through the buffer's pool (refcount
// transferred to the buffer), and any overwritten grapheme cell is
// decremented.
func (b *Buffer) SetWithPool(x, y int, cell Cell) {
	b.setImpl(x, y, cell, true)
}

func (b *Buffer) setImpl(x, y int, cell Cell, poolAware bool) {
	if !b.writable(x, y) {
		if poolAware {
			b.releaseIfGrapheme(cell)
		}
		return
	}
	width := cell.Width()
	if width == 2 {
		if !b.writable(x+1, y) {
			// Right half clipped or out of bounds: drop the whole write.
			if poolAware {
				b.releaseIfGrapheme(cell)
			}
			return
		}
	}
	cell.Style.FG = b.applyOpacity(cell.Style.FG)
	cell.Style.BG = b.applyOpacity(cell.Style.BG)

	idx := b.index(x, y)
	if poolAware {
		b.releaseIfGrapheme(b.cells[idx])
	}
	b.cells[idx] = cell

	if width == 2 {
		ridx := b.index(x+1, y)
		if poolAware {
			b.releaseIfGrapheme(b.cells[ridx])
		}
		b.cells[ridx] = ContinuationCell(cell.Style)
	}
}

// SetBlended composites cell's colors over the existing cell's colors using
// Porter-Duff "over", then writes the result.
func (b *Buffer) SetBlended(x, y int, cell Cell) {
	existing, ok := b.Get(x, y)
	if !ok {
		return
	}
	cell.Style.FG = cell.Style.FG.Over(existing.Style.FG)
	cell.Style.BG = cell.Style.BG.Over(existing.Style.BG)
	b.Set(x, y, cell)
}

// FillRect sets every cell in the w x h rectangle at (x,y) to Empty with
// the given background, respecting the clip stack and effective opacity.
func (b *Buffer) FillRect(x, y, w, h int, bg color.Rgba) {
	b.fillRectImpl(x, y, w, h, bg, false)
}

// FillRectWithPool is the pool-aware variant of FillRect.
func (b *Buffer) FillRectWithPool(x, y, w, h int, bg color.Rgba) {
	b.fillRectImpl(x, y, w, h, bg, true)
}

func (b *Buffer) fillRectImpl(x, y, w, h int, bg color.Rgba, poolAware bool) {
	// A fully transparent fill paints nothing: leave existing cells (and
	// their diff/dirty state) untouched rather than writing an invisible
	// no-op cell over them.
	if b.applyOpacity(bg).A == 0 {
		return
	}
	cell := EmptyCell(bg)
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			b.setImpl(col, row, cell, poolAware)
		}
	}
}
