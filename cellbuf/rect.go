package cellbuf

// Rect is an axis-aligned rectangle in buffer coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x,y) falls within r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the intersection of r and other. The result may have
// zero or negative width/height, meaning "contains nothing"; callers must
// test via Contains, which is always false for an empty intersection.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.W, other.X+other.W)
	y1 := min(r.Y+r.H, other.Y+other.H)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
