package physics

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	W float64 `json:"w" msgpack:"w"`
	H float64 `json:"h" msgpack:"h"`
}

// Inflated reports whether (x, y) lies strictly inside the rectangle grown by
// r on every side.
func (t Rect) Inflated(x, y, r float64) bool {
	return x+r > t.X &&
		x-r < t.X+t.W &&
		y+r > t.Y &&
		y-r < t.Y+t.H
}

// Terrain is the static set of blocking rectangles for a session.
type Terrain []Rect

// Blocked reports whether a box of half-size r centered at (x, y) overlaps any
// terrain rectangle. The result does not depend on rectangle order.
func (t Terrain) Blocked(x, y, r float64) bool {
	for _, rect := range t {
		if rect.Inflated(x, y, r) {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no memory with t.
func (t Terrain) Clone() Terrain {
	if t == nil {
		return nil
	}
	out := make(Terrain, len(t))
	copy(out, t)
	return out
}
