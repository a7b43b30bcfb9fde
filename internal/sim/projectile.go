package sim

import (
	"github.com/tomz197/alienfield/internal/object"
	"github.com/tomz197/alienfield/internal/physics"
)

// StepProjectiles advances every projectile by its velocity. A projectile
// whose next position is blocked by terrain at cfg.TerrainRadius, or (with
// CullOffField) lies outside the field, is removed. A non-finite result
// keeps the projectile where it was for this tick.
func StepProjectiles(s State, cfg *Config) State {
	if len(s.Projectiles) == 0 {
		return s
	}

	kept := make([]object.Projectile, 0, len(s.Projectiles))
	for _, p := range s.Projectiles {
		x, y := p.Next()
		if !physics.Finite(x, y) {
			kept = append(kept, p)
			continue
		}
		if cfg.Terrain.Blocked(x, y, cfg.TerrainRadius) {
			continue
		}
		if cfg.CullOffField && !object.InField(x, y, p.Radius, cfg.FieldWidth, cfg.FieldHeight) {
			continue
		}
		p.X, p.Y = x, y
		kept = append(kept, p)
	}
	s.Projectiles = kept
	return s
}
