package draw

import (
	"github.com/tomz197/alienfield/internal/object"
	"github.com/tomz197/alienfield/internal/sim"
)

// Glyph sizes in field units. The snapshot carries no body radii, so
// these are presentation-only.
const (
	playerGlyph = 14
	enemyGlyph  = 9
)

// Scene clears c and draws a snapshot: terrain first, then enemies,
// projectiles and the player on top.
func Scene(c *Canvas, s *sim.Snapshot) {
	c.Clear()
	for _, r := range s.Terrain {
		c.FillRect(r)
	}
	for _, e := range s.Enemies {
		c.FillCircle(e.X, e.Y, enemyGlyph)
	}
	for _, p := range s.Projectiles {
		c.FillCircle(p.X, p.Y, p.R)
	}
	facing, ok := object.ParseDirection(s.Player.Facing)
	if !ok {
		facing = object.Up
	}
	c.FillPolygon(PlayerShape(s.Player.X, s.Player.Y, facing))
}

// PlayerShape returns a triangle centered on (x, y) pointing along dir.
func PlayerShape(x, y float64, dir object.Direction) []Point {
	dx, dy := dir.Unit()
	// Perpendicular for the base corners.
	nx, ny := -dy, dx
	h := playerGlyph / 2.0
	return []Point{
		{x + dx*h, y + dy*h},
		{x - dx*h + nx*h, y - dy*h + ny*h},
		{x - dx*h - nx*h, y - dy*h - ny*h},
	}
}
