package sim

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/alienfield/internal/object"
	"github.com/tomz197/alienfield/internal/physics"
)

// testRNG returns a seeded RNG for deterministic tests
func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func TestNewStateSpawnsWave(t *testing.T) {
	cfg := DefaultConfig()
	s, skipped, err := NewState(cfg, testRNG())
	require.NoError(t, err)
	assert.Zero(t, skipped)

	assert.Equal(t, object.Player{X: 400, Y: 530, Facing: object.Up}, s.Player)
	require.Len(t, s.Enemies, cfg.EnemyCount)
	assert.Equal(t, Running, s.Status)
	assert.Empty(t, s.Projectiles)

	ids := map[int]bool{}
	for _, e := range s.Enemies {
		assert.GreaterOrEqual(t, e.X, 0.0)
		assert.Less(t, e.X, cfg.FieldWidth)
		assert.GreaterOrEqual(t, e.Y, 0.0)
		assert.Less(t, e.Y, cfg.FieldHeight/2)
		assert.GreaterOrEqual(t, e.Speed, cfg.MinEnemySpeed)
		assert.Less(t, e.Speed, cfg.MaxEnemySpeed)
		assert.False(t, cfg.Terrain.Blocked(e.X, e.Y, cfg.EnemyRadius), "enemy spawned on terrain")
		assert.False(t, ids[e.ID], "duplicate id %d", e.ID)
		ids[e.ID] = true
	}
}

func TestNewStateIsDeterministicForSeed(t *testing.T) {
	cfg := DefaultConfig()
	a, _, err := NewState(cfg, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	b, _, err := NewState(cfg, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNewStateSkipsUnplaceableEnemies(t *testing.T) {
	cfg := DefaultConfig()
	// Cover the whole upper half so no enemy can be placed.
	cfg.Terrain = physics.Terrain{{X: -20, Y: -20, W: 840, H: 330}}
	cfg.EnemyCount = 5

	s, skipped, err := NewState(cfg, testRNG())
	require.NoError(t, err)
	assert.Equal(t, 5, skipped)
	assert.Empty(t, s.Enemies)
}

func TestCloneDoesNotAlias(t *testing.T) {
	s := State{
		Enemies:     []object.Enemy{{ID: 1, X: 1}},
		Projectiles: []object.Projectile{{ID: 2, X: 2}},
	}
	c := s.Clone()
	c.Enemies[0].X = 50
	c.Projectiles[0].X = 60
	assert.Equal(t, 1.0, s.Enemies[0].X)
	assert.Equal(t, 2.0, s.Projectiles[0].X)
}

func TestStatusNames(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "cleared", Cleared.String())
	assert.Equal(t, "overrun", Overrun.String())
	assert.Equal(t, "Status(9)", Status(9).String())
	assert.False(t, Running.Terminal())
	assert.True(t, Overrun.Terminal())
}

func TestStatusText(t *testing.T) {
	b, err := json.Marshal(struct{ S Status }{Cleared})
	require.NoError(t, err)
	assert.JSONEq(t, `{"S":"cleared"}`, string(b))

	var v struct{ S Status }
	require.NoError(t, json.Unmarshal([]byte(`{"S":"overrun"}`), &v))
	assert.Equal(t, Overrun, v.S)
	assert.Error(t, json.Unmarshal([]byte(`{"S":"won"}`), &v))

	_, err = Status(7).MarshalText()
	assert.Error(t, err)
}
