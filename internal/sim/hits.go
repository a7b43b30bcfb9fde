package sim

import (
	"github.com/tomz197/alienfield/internal/object"
	"github.com/tomz197/alienfield/internal/physics"
)

// gridPairThreshold is the enemy*projectile pair count above which hit
// resolution indexes projectiles in a spatial grid instead of testing every
// pair.
const gridPairThreshold = 512

// ResolveHits removes every enemy that lies strictly within
// KillRadius + projectile radius of some projectile. An enemy struck by
// several projectiles is removed once. Projectiles survive unless
// ConsumeProjectileOnHit is set, in which case the lowest-ordered live
// projectile that struck an enemy is spent on it.
func ResolveHits(s State, cfg *Config) State {
	if len(s.Enemies) == 0 || len(s.Projectiles) == 0 {
		return s
	}

	idx := newHitIndex(s.Projectiles, len(s.Enemies), cfg)
	spent := make([]bool, len(s.Projectiles))

	survivors := make([]object.Enemy, 0, len(s.Enemies))
	kills := 0
	for _, e := range s.Enemies {
		hit := idx.firstHit(e, spent)
		if hit < 0 {
			survivors = append(survivors, e)
			continue
		}
		kills++
		if cfg.ConsumeProjectileOnHit {
			spent[hit] = true
		}
	}
	if kills == 0 {
		return s
	}
	s.Enemies = survivors
	s.Kills += kills

	if cfg.ConsumeProjectileOnHit {
		live := make([]object.Projectile, 0, len(s.Projectiles))
		for i, p := range s.Projectiles {
			if !spent[i] {
				live = append(live, p)
			}
		}
		s.Projectiles = live
	}
	return s
}

// hitIndex answers "which projectile strikes this enemy" either by scanning
// or through a grid, with identical results.
type hitIndex struct {
	projectiles []object.Projectile
	killRadius  float64
	grid        *physics.SpatialGrid
}

func newHitIndex(projectiles []object.Projectile, enemies int, cfg *Config) *hitIndex {
	idx := &hitIndex{projectiles: projectiles, killRadius: cfg.KillRadius}
	if len(projectiles)*enemies < gridPairThreshold {
		return idx
	}

	maxRadius := 0.0
	for _, p := range projectiles {
		maxRadius = max(maxRadius, p.Radius)
	}
	idx.grid = physics.NewSpatialGrid(cfg.FieldWidth, cfg.FieldHeight, cfg.KillRadius+maxRadius, false)
	for i, p := range projectiles {
		idx.grid.Insert(p.X, p.Y, i)
	}
	return idx
}

// firstHit returns the lowest index of a projectile not yet spent that
// strikes e, or -1.
func (h *hitIndex) firstHit(e object.Enemy, spent []bool) int {
	if h.grid == nil {
		for i, p := range h.projectiles {
			if !spent[i] && h.strikes(e, p) {
				return i
			}
		}
		return -1
	}

	best := -1
	h.grid.QueryAround(e.X, e.Y, func(i int) bool {
		if (best < 0 || i < best) && !spent[i] && h.strikes(e, h.projectiles[i]) {
			best = i
		}
		return false
	})
	return best
}

func (h *hitIndex) strikes(e object.Enemy, p object.Projectile) bool {
	return physics.CirclesOverlap(e.X, e.Y, h.killRadius, p.X, p.Y, p.Radius)
}
