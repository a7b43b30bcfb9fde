package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase overlap queries.
// Items are inserted by position and index, then nearby items can be queried
// through a 3x3 neighborhood lookup.
//
// Cell size must be >= the maximum interaction distance between any two
// items so that every candidate pair is found within the neighborhood.
// Positions outside the grid are clamped to the edge cells, which keeps
// the neighborhood guarantee for entities that drift off the field.
type SpatialGrid struct {
	invCellSize float64
	cols        int
	rows        int
	wrap        bool
	cells       [][]int
}

// NewSpatialGrid creates a grid covering a w by h area. When wrap is true the
// neighborhood lookup continues across opposite edges (toroidal worlds);
// a bounded field should pass false.
func NewSpatialGrid(w, h, cellSize float64, wrap bool) *SpatialGrid {
	cols := max(int(math.Ceil(w/cellSize)), 1)
	rows := max(int(math.Ceil(h/cellSize)), 1)

	return &SpatialGrid{
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		wrap:        wrap,
		cells:       make([][]int, cols*rows),
	}
}

// Clear removes all items without releasing cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an item (identified by index) at the given position.
func (g *SpatialGrid) Insert(x, y float64, index int) {
	col, row := g.posToCell(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around the given position. If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryAround(x, y float64, fn func(index int) bool) {
	col, row := g.posToCell(x, y)

	for dr := -1; dr <= 1; dr++ {
		r, ok := g.neighbor(row+dr, g.rows)
		if !ok {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			c, ok := g.neighbor(col+dc, g.cols)
			if !ok {
				continue
			}
			for _, item := range g.cells[r*g.cols+c] {
				if fn(item) {
					return
				}
			}
		}
	}
}

// neighbor resolves a possibly out-of-range cell coordinate.
func (g *SpatialGrid) neighbor(v, n int) (int, bool) {
	if v >= 0 && v < n {
		return v, true
	}
	if !g.wrap || n < 3 {
		// Tiny grids would visit the same cell twice when wrapping.
		return 0, false
	}
	if v < 0 {
		return v + n, true
	}
	return v - n, true
}

// posToCell converts coordinates to cell coordinates, clamped to the grid.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = clampCell(x*g.invCellSize, g.cols)
	row = clampCell(y*g.invCellSize, g.rows)
	return col, row
}

func clampCell(v float64, n int) int {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v >= float64(n) {
		return n - 1
	}
	return int(v)
}
