package sim

import (
	"github.com/tomz197/alienfield/internal/object"
)

// MovePlayer applies one directional press. The facing is always updated;
// the position moves by cfg.MoveStep (clamped to the field) only when the
// candidate is clear of terrain. A blocked move leaves the position exactly
// as it was.
func MovePlayer(s State, cfg *Config, dir object.Direction) State {
	if !dir.Valid() {
		return s
	}
	s.Player.Facing = dir

	dx, dy := dir.Unit()
	x := clamp(s.Player.X+dx*cfg.MoveStep, 0, cfg.FieldWidth)
	y := clamp(s.Player.Y+dy*cfg.MoveStep, 0, cfg.FieldHeight)

	if cfg.Terrain.Blocked(x, y, cfg.PlayerRadius) {
		return s
	}
	s.Player.X, s.Player.Y = x, y
	return s
}

// Fire adds a projectile at the player position travelling along the facing
// direction.
func Fire(s State, cfg *Config) State {
	p := object.NewProjectile(s.newID(), s.Player.X, s.Player.Y, cfg.ProjectileRadius, cfg.ProjectileSpeed, s.Player.Facing)

	projectiles := make([]object.Projectile, len(s.Projectiles), len(s.Projectiles)+1)
	copy(projectiles, s.Projectiles)
	s.Projectiles = append(projectiles, p)
	s.Shots++
	return s
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
