// Package sim is the simulation core: a state struct, the phase functions
// that advance it, and the Scheduler that sequences phases in time.
//
// Phase functions take a State by value and return the next State. They
// never write into the slices of their argument, so a caller may keep the old
// State around (for snapshots or tests) without aliasing.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/tomz197/alienfield/internal/object"
)

// Status is the session outcome.
type Status int

const (
	Running Status = iota
	Cleared        // Every enemy destroyed
	Overrun        // An enemy reached the player
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Cleared:
		return "cleared"
	case Overrun:
		return "overrun"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	if s < Running || s > Overrun {
		return nil, fmt.Errorf("sim: unknown status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(b []byte) error {
	for _, v := range []Status{Running, Cleared, Overrun} {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("sim: unknown status %q", b)
}

// Terminal reports whether the session has ended.
func (s Status) Terminal() bool {
	return s != Running
}

// State is everything that changes during a session.
type State struct {
	Tick        uint64
	Status      Status
	Player      object.Player
	Enemies     []object.Enemy
	Projectiles []object.Projectile
	Kills       int
	Shots       int
	nextID      int
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.Enemies = append([]object.Enemy(nil), s.Enemies...)
	s.Projectiles = append([]object.Projectile(nil), s.Projectiles...)
	return s
}

// spawnAttempts bounds re-sampling of an enemy position that lands on terrain.
const spawnAttempts = 32

// playerSpawnOffset is the player spawn distance above the bottom edge.
const playerSpawnOffset = 70

// NewState spawns the player and the initial enemy wave for cfg.
// Enemies whose position could not avoid terrain within a bounded number of
// attempts are not spawned; skipped reports how many.
func NewState(cfg Config, rng *rand.Rand) (s State, skipped int, err error) {
	if err := cfg.Validate(); err != nil {
		return State{}, 0, err
	}

	px := cfg.FieldWidth / 2
	py := max(cfg.FieldHeight-playerSpawnOffset, 0)
	if cfg.Terrain.Blocked(px, py, cfg.PlayerRadius) {
		return State{}, 0, &ConfigError{"Terrain", fmt.Sprintf("blocks the player spawn at (%.0f,%.0f)", px, py)}
	}
	s.Player = object.Player{X: px, Y: py, Facing: object.Up}

	s.Enemies = make([]object.Enemy, 0, cfg.EnemyCount)
	for range cfg.EnemyCount {
		e, ok := spawnEnemy(cfg, rng)
		if !ok {
			skipped++
			continue
		}
		e.ID = s.newID()
		s.Enemies = append(s.Enemies, e)
	}
	return s, skipped, nil
}

func spawnEnemy(cfg Config, rng *rand.Rand) (object.Enemy, bool) {
	for range spawnAttempts {
		x := rng.Float64() * cfg.FieldWidth
		y := rng.Float64() * (cfg.FieldHeight / 2)
		if cfg.Terrain.Blocked(x, y, cfg.EnemyRadius) {
			continue
		}
		speed := cfg.MinEnemySpeed + rng.Float64()*(cfg.MaxEnemySpeed-cfg.MinEnemySpeed)
		return object.Enemy{X: x, Y: y, Speed: speed}, true
	}
	return object.Enemy{}, false
}

func (s *State) newID() int {
	s.nextID++
	return s.nextID
}
