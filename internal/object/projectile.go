package object

// InField reports whether a circle of radius r at (x, y) still touches the
// w by h field.
func InField(x, y, r, w, h float64) bool {
	return x >= -r && x <= w+r && y >= -r && y <= h+r
}
