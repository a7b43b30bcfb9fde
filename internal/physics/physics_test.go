package physics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockedInflatedBox(t *testing.T) {
	terrain := Terrain{{X: 90, Y: 90, W: 20, H: 20}}

	tests := []struct {
		name    string
		x, y, r float64
		want    bool
	}{
		{"center", 100, 100, 0, true},
		{"right of box within radius", 110, 100, 10, true},
		{"touching edge is clear", 120, 100, 10, false},
		{"far away", 300, 300, 10, false},
		{"above within radius", 100, 85, 10, true},
		{"corner diagonal inside inflated box", 115, 115, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, terrain.Blocked(tt.x, tt.y, tt.r))
		})
	}
}

func TestBlockedEmptyTerrain(t *testing.T) {
	var terrain Terrain
	assert.False(t, terrain.Blocked(0, 0, 100))
}

func TestBlockedOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	terrain := make(Terrain, 12)
	for i := range terrain {
		terrain[i] = Rect{X: rng.Float64() * 700, Y: rng.Float64() * 500, W: 10 + rng.Float64()*100, H: 10 + rng.Float64()*40}
	}
	shuffled := terrain.Clone()
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	for range 2000 {
		x, y, r := rng.Float64()*800, rng.Float64()*600, rng.Float64()*20
		first := terrain.Blocked(x, y, r)
		require.Equal(t, first, terrain.Blocked(x, y, r), "not deterministic at (%f,%f,%f)", x, y, r)
		require.Equal(t, first, shuffled.Blocked(x, y, r), "order dependent at (%f,%f,%f)", x, y, r)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	terrain := Terrain{{X: 1, Y: 2, W: 3, H: 4}}
	c := terrain.Clone()
	c[0].X = 99
	assert.Equal(t, 1.0, terrain[0].X)
	assert.Nil(t, Terrain(nil).Clone())
}

func TestCirclesOverlapIsStrict(t *testing.T) {
	assert.True(t, CirclesOverlap(0, 0, 15, 0, 0, 5))
	assert.True(t, CirclesOverlap(0, 0, 15, 19.9, 0, 5))
	assert.False(t, CirclesOverlap(0, 0, 15, 20, 0, 5))
}

func TestPointInCircleIncludesBoundary(t *testing.T) {
	assert.True(t, PointInCircle(3, 4, 0, 0, 5))
	assert.False(t, PointInCircle(3, 4.1, 0, 0, 5))
}

func TestFinite(t *testing.T) {
	assert.True(t, Finite(1, 2))
	assert.False(t, Finite(math.NaN(), 0))
	assert.False(t, Finite(0, math.Inf(-1)))
}

func TestSpatialGridFindsNeighbors(t *testing.T) {
	g := NewSpatialGrid(800, 600, 20, false)
	g.Insert(10, 10, 0)
	g.Insert(25, 10, 1)
	g.Insert(400, 300, 2)
	g.Insert(-30, 700, 3) // clamped into the bottom-left cell

	var found []int
	g.QueryAround(15, 12, func(i int) bool {
		found = append(found, i)
		return false
	})
	assert.ElementsMatch(t, []int{0, 1}, found)

	found = found[:0]
	g.QueryAround(0, 599, func(i int) bool {
		found = append(found, i)
		return false
	})
	assert.Equal(t, []int{3}, found)
}

func TestSpatialGridBoundedDoesNotWrap(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10, false)
	g.Insert(95, 50, 0)

	hit := false
	g.QueryAround(2, 50, func(int) bool { hit = true; return true })
	assert.False(t, hit)

	wrapped := NewSpatialGrid(100, 100, 10, true)
	wrapped.Insert(95, 50, 0)
	wrapped.QueryAround(2, 50, func(int) bool { hit = true; return true })
	assert.True(t, hit)
}

func TestSpatialGridClearKeepsShape(t *testing.T) {
	g := NewSpatialGrid(50, 50, 10, false)
	g.Insert(5, 5, 0)
	g.Clear()
	g.QueryAround(5, 5, func(int) bool {
		t.Fatal("grid not cleared")
		return true
	})
}
