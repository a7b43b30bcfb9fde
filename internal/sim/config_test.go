package sim

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/alienfield/internal/physics"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidateRejectsMalformedConfig(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*Config)
	}{
		{"FieldWidth", func(c *Config) { c.FieldWidth = math.Inf(1) }},
		{"MoveStep", func(c *Config) { c.MoveStep = math.NaN() }},
		{"MaxEnemySpeed", func(c *Config) { c.MaxEnemySpeed = math.Inf(1) }},
		{"KillRadius", func(c *Config) { c.KillRadius = math.NaN() }},
		{"TerrainRadius", func(c *Config) { c.TerrainRadius = -1 }},
		{"TerrainRadius", func(c *Config) { c.TerrainRadius = math.NaN() }},
		{"Terrain[0]", func(c *Config) { c.Terrain[0].X = math.NaN() }},
		{"Terrain[2]", func(c *Config) { c.Terrain[2].H = math.Inf(1) }},
		{"FieldWidth", func(c *Config) { c.FieldWidth = 0 }},
		{"FieldHeight", func(c *Config) { c.FieldHeight = -1 }},
		{"EnemyCount", func(c *Config) { c.EnemyCount = -3 }},
		{"MinEnemySpeed", func(c *Config) { c.MinEnemySpeed = -1 }},
		{"MaxEnemySpeed", func(c *Config) { c.MaxEnemySpeed = 0.5 }},
		{"MoveStep", func(c *Config) { c.MoveStep = 0 }},
		{"ProjectileSpeed", func(c *Config) { c.ProjectileSpeed = -10 }},
		{"ProjectileRadius", func(c *Config) { c.ProjectileRadius = -1 }},
		{"TickInterval", func(c *Config) { c.TickInterval = 0 }},
		{"AutoFireInterval", func(c *Config) { c.AutoFireInterval = c.TickInterval }},
		{"KillRadius", func(c *Config) { c.KillRadius = 0 }},
		{"PlayerRadius", func(c *Config) { c.PlayerRadius = -1 }},
		{"EnemyRadius", func(c *Config) { c.EnemyRadius = -1 }},
		{"ContactRadius", func(c *Config) { c.ContactRadius = -2 }},
		{"Terrain[1]", func(c *Config) { c.Terrain[1].W = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))

			var cerr *ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.field, cerr.Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidateAcceptsEqualSpeedRangeAndNoTerrain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinEnemySpeed, cfg.MaxEnemySpeed = 2, 2
	cfg.Terrain = nil
	cfg.AutoFireInterval = cfg.TickInterval + time.Millisecond
	assert.NoError(t, cfg.Validate())
}

func TestNewSchedulerFailsFast(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickInterval = 0
	s, err := NewScheduler(cfg, nil)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewSchedulerRejectsBlockedPlayerSpawn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Terrain = physics.Terrain{{X: 390, Y: 520, W: 20, H: 20}}
	_, err := NewScheduler(cfg, nil)

	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "Terrain", cerr.Field)
}
