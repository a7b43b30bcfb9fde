package sim

import (
	"github.com/tomz197/alienfield/internal/input"
	"github.com/tomz197/alienfield/internal/object"
	"github.com/tomz197/alienfield/internal/physics"
)

// Apply applies a single discrete input to s. Hold-fire events and host-level
// kinds are not discrete inputs and leave s unchanged.
func Apply(s State, cfg *Config, ev input.Event) State {
	switch ev.Kind {
	case input.Up:
		return MovePlayer(s, cfg, object.Up)
	case input.Down:
		return MovePlayer(s, cfg, object.Down)
	case input.Left:
		return MovePlayer(s, cfg, object.Left)
	case input.Right:
		return MovePlayer(s, cfg, object.Right)
	case input.Fire:
		return Fire(s, cfg)
	}
	return s
}

// Step runs one full tick: queued inputs (player motion and fire), then
// projectiles, then enemies against the committed player position, then
// hit resolution, then the end-of-session check. A terminal State is
// returned unchanged.
func Step(s State, cfg *Config, inputs []input.Event) State {
	if s.Status.Terminal() {
		return s
	}
	for _, ev := range inputs {
		s = Apply(s, cfg, ev)
	}
	s = StepProjectiles(s, cfg)
	s = StepEnemies(s, cfg)
	s = ResolveHits(s, cfg)
	s = UpdateStatus(s, cfg)
	s.Tick++
	return s
}

// UpdateStatus ends the session once the enemy set is empty, or once an
// enemy is within ContactRadius of the player (when enabled).
func UpdateStatus(s State, cfg *Config) State {
	if s.Status.Terminal() {
		return s
	}
	if len(s.Enemies) == 0 {
		s.Status = Cleared
		return s
	}
	if cfg.ContactRadius <= 0 {
		return s
	}
	for _, e := range s.Enemies {
		if physics.PointInCircle(e.X, e.Y, s.Player.X, s.Player.Y, cfg.ContactRadius) {
			s.Status = Overrun
			return s
		}
	}
	return s
}
