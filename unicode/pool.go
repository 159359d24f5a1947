package unicode

// MaxPoolID is the largest representable pool index: a Cell's Grapheme
// content packs a 24-bit pool index alongside an 8-bit display width, so at
// most 2^24-1 clusters may be live at once (id 0 is reserved as the
// no-pool placeholder).
const MaxPoolID = 1<<24 - 1

type entry struct {
	bytes    string
	width    uint8
	refcount uint32
}

// Pool interns multi-codepoint grapheme clusters (and wide single runes)
// behind small integer ids, so a Cell can carry a 4-byte id instead of a
// variable-length string. Mirrors the teacher's sync.Pool Get/Put symmetry
// (pool.go) but as a refcounted interning table instead of a free list.
type Pool struct {
	entries []entry         // index 0 unused (reserved placeholder)
	byBytes map[string]uint32
	method  WidthMethod
}

// NewPool creates an empty pool. method selects which display-width
// algorithm is used to compute a cluster's stored width at Alloc time.
func NewPool(method WidthMethod) *Pool {
	return &Pool{
		entries: make([]entry, 1), // id 0 is the placeholder
		byBytes: make(map[string]uint32),
		method:  method,
	}
}

// Alloc interns cluster, returning its id. Equal byte sequences map to the
// same id and increment its refcount rather than allocating a duplicate.
func (p *Pool) Alloc(cluster string) uint32 {
	if id, ok := p.byBytes[cluster]; ok {
		p.entries[id].refcount++
		return id
	}
	width := GraphemeWidth(cluster, p.method)
	id := uint32(len(p.entries))
	p.entries = append(p.entries, entry{bytes: cluster, width: uint8(width), refcount: 1})
	p.byBytes[cluster] = id
	return id
}

// Decref decrements id's refcount, freeing the entry when it reaches zero.
// Decref on an already-freed or out-of-range id is a no-op.
func (p *Pool) Decref(id uint32) {
	if id == 0 || int(id) >= len(p.entries) {
		return
	}
	e := &p.entries[id]
	if e.refcount == 0 {
		return
	}
	e.refcount--
	if e.refcount == 0 {
		delete(p.byBytes, e.bytes)
		e.bytes = ""
		e.width = 0
	}
}

// Refcount returns id's current reference count (0 if freed or unknown).
func (p *Pool) Refcount(id uint32) uint32 {
	if id == 0 || int(id) >= len(p.entries) {
		return 0
	}
	return p.entries[id].refcount
}

// Lookup returns id's interned bytes and display width, and whether id is
// currently live.
func (p *Pool) Lookup(id uint32) (bytes string, width uint8, ok bool) {
	if id == 0 || int(id) >= len(p.entries) {
		return "", 0, false
	}
	e := p.entries[id]
	if e.refcount == 0 {
		return "", 0, false
	}
	return e.bytes, e.width, true
}
