package sim

import (
	"github.com/tomz197/alienfield/internal/object"
	"github.com/tomz197/alienfield/internal/physics"
)

// StepEnemies moves every enemy toward the player's committed position by its
// own speed, never past the player. An enemy whose move would overlap
// terrain stays put for this tick and tries again on the next one.
func StepEnemies(s State, cfg *Config) State {
	if len(s.Enemies) == 0 {
		return s
	}

	px, py := s.Player.X, s.Player.Y
	moved := make([]object.Enemy, len(s.Enemies))
	for i, e := range s.Enemies {
		moved[i] = e
		if x, y, ok := pursue(e, px, py); ok && !cfg.Terrain.Blocked(x, y, cfg.EnemyRadius) {
			moved[i].X, moved[i].Y = x, y
		}
	}
	s.Enemies = moved
	return s
}

// pursue returns the candidate position of e after one step toward (px, py).
// ok is false when there is nothing to do: the enemy already sits on the
// target, cannot move, or the arithmetic produced a non-finite result.
func pursue(e object.Enemy, px, py float64) (x, y float64, ok bool) {
	dist := physics.Distance(e.X, e.Y, px, py)
	if dist == 0 || e.Speed <= 0 {
		return 0, 0, false
	}
	if e.Speed >= dist {
		return px, py, true
	}
	x = e.X + (px-e.X)/dist*e.Speed
	y = e.Y + (py-e.Y)/dist*e.Speed
	if !physics.Finite(x, y) {
		return 0, 0, false
	}
	return x, y, true
}
