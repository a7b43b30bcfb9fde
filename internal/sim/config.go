package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomz197/alienfield/internal/physics"
)

// ErrInvalidConfig is wrapped by every ConfigError.
var ErrInvalidConfig = errors.New("invalid session config")

// ConfigError describes the first offending field of a Config.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Config holds the session parameters. Distances are field units and speeds
// are units per tick.
type Config struct {
	FieldWidth  float64
	FieldHeight float64

	EnemyCount    int
	MinEnemySpeed float64
	MaxEnemySpeed float64

	MoveStep         float64
	ProjectileSpeed  float64
	ProjectileRadius float64 // Used for hits and the off-field cull
	TerrainRadius    float64 // Projectile body size against terrain

	TickInterval     time.Duration
	AutoFireInterval time.Duration // Must be longer than TickInterval

	KillRadius    float64 // Enemy hit radius, added to the projectile radius
	PlayerRadius  float64
	EnemyRadius   float64
	ContactRadius float64 // Enemy within this distance of the player ends the session; 0 disables

	CullOffField           bool // Remove projectiles that leave the field
	ConsumeProjectileOnHit bool // Remove the projectile that kills an enemy

	Seed    int64 // 0 picks a time-based seed
	Terrain physics.Terrain
}

// DefaultTerrain is the obstacle layout used when none is configured.
func DefaultTerrain() physics.Terrain {
	return physics.Terrain{
		{X: 200, Y: 300, W: 100, H: 20},
		{X: 400, Y: 150, W: 200, H: 20},
		{X: 600, Y: 400, W: 150, H: 20},
	}
}

// DefaultConfig returns the stock 800x600 session.
func DefaultConfig() Config {
	return Config{
		FieldWidth:       800,
		FieldHeight:      600,
		EnemyCount:       20,
		MinEnemySpeed:    1,
		MaxEnemySpeed:    3,
		MoveStep:         10,
		ProjectileSpeed:  10,
		ProjectileRadius: 5,
		TerrainRadius:    10,
		TickInterval:     50 * time.Millisecond,
		AutoFireInterval: 200 * time.Millisecond,
		KillRadius:       15,
		PlayerRadius:     10,
		EnemyRadius:      10,
		CullOffField:     true,
		Terrain:          DefaultTerrain(),
	}
}

// Validate reports the first malformed parameter.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"FieldWidth", c.FieldWidth},
		{"FieldHeight", c.FieldHeight},
		{"MinEnemySpeed", c.MinEnemySpeed},
		{"MaxEnemySpeed", c.MaxEnemySpeed},
		{"MoveStep", c.MoveStep},
		{"ProjectileSpeed", c.ProjectileSpeed},
		{"ProjectileRadius", c.ProjectileRadius},
		{"TerrainRadius", c.TerrainRadius},
		{"KillRadius", c.KillRadius},
		{"PlayerRadius", c.PlayerRadius},
		{"EnemyRadius", c.EnemyRadius},
		{"ContactRadius", c.ContactRadius},
	} {
		if !physics.Finite(f.v, 0) {
			return &ConfigError{f.name, "must be finite"}
		}
	}
	switch {
	case c.FieldWidth <= 0:
		return &ConfigError{"FieldWidth", "must be positive"}
	case c.FieldHeight <= 0:
		return &ConfigError{"FieldHeight", "must be positive"}
	case c.EnemyCount < 0:
		return &ConfigError{"EnemyCount", "must not be negative"}
	case c.MinEnemySpeed < 0:
		return &ConfigError{"MinEnemySpeed", "must not be negative"}
	case c.MaxEnemySpeed < c.MinEnemySpeed:
		return &ConfigError{"MaxEnemySpeed", "must not be below MinEnemySpeed"}
	case c.MoveStep <= 0:
		return &ConfigError{"MoveStep", "must be positive"}
	case c.ProjectileSpeed <= 0:
		return &ConfigError{"ProjectileSpeed", "must be positive"}
	case c.ProjectileRadius < 0:
		return &ConfigError{"ProjectileRadius", "must not be negative"}
	case c.TickInterval <= 0:
		return &ConfigError{"TickInterval", "must be positive"}
	case c.AutoFireInterval <= c.TickInterval:
		return &ConfigError{"AutoFireInterval", "must be longer than TickInterval"}
	case c.TerrainRadius < 0:
		return &ConfigError{"TerrainRadius", "must not be negative"}
	case c.KillRadius <= 0:
		return &ConfigError{"KillRadius", "must be positive"}
	case c.PlayerRadius < 0:
		return &ConfigError{"PlayerRadius", "must not be negative"}
	case c.EnemyRadius < 0:
		return &ConfigError{"EnemyRadius", "must not be negative"}
	case c.ContactRadius < 0:
		return &ConfigError{"ContactRadius", "must not be negative"}
	}
	for i, t := range c.Terrain {
		if !physics.Finite(t.X, t.Y) || !physics.Finite(t.W, t.H) {
			return &ConfigError{fmt.Sprintf("Terrain[%d]", i), "must be finite"}
		}
		if t.W <= 0 || t.H <= 0 {
			return &ConfigError{fmt.Sprintf("Terrain[%d]", i), "must have positive width and height"}
		}
	}
	return nil
}
