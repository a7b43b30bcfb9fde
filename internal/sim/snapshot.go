package sim

import (
	"github.com/tomz197/alienfield/internal/physics"
)

// Snapshot is a read-only copy of the session for renderers. It shares no
// memory with the live State.
type Snapshot struct {
	Tick        uint64           `json:"tick" msgpack:"tick"`
	Status      Status           `json:"status" msgpack:"status"`
	Field       Field            `json:"field" msgpack:"field"`
	Player      PlayerView       `json:"player" msgpack:"player"`
	Enemies     []EnemyView      `json:"enemies" msgpack:"enemies"`
	Projectiles []ProjectileView `json:"projectiles" msgpack:"projectiles"`
	Terrain     []physics.Rect   `json:"terrain" msgpack:"terrain"`
	Kills       int              `json:"kills" msgpack:"kills"`
	Shots       int              `json:"shots" msgpack:"shots"`
}

// Field is the playable area.
type Field struct {
	W float64 `json:"w" msgpack:"w"`
	H float64 `json:"h" msgpack:"h"`
}

type PlayerView struct {
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Facing string  `json:"facing" msgpack:"facing"`
}

type EnemyView struct {
	ID int     `json:"id" msgpack:"id"`
	X  float64 `json:"x" msgpack:"x"`
	Y  float64 `json:"y" msgpack:"y"`
}

type ProjectileView struct {
	ID int     `json:"id" msgpack:"id"`
	X  float64 `json:"x" msgpack:"x"`
	Y  float64 `json:"y" msgpack:"y"`
	R  float64 `json:"r" msgpack:"r"`
}

// NewSnapshot copies s and the static parts of cfg into a Snapshot.
func NewSnapshot(s State, cfg *Config) *Snapshot {
	snap := &Snapshot{
		Tick:   s.Tick,
		Status: s.Status,
		Field:  Field{W: cfg.FieldWidth, H: cfg.FieldHeight},
		Player: PlayerView{
			X:      s.Player.X,
			Y:      s.Player.Y,
			Facing: s.Player.Facing.String(),
		},
		Enemies:     make([]EnemyView, len(s.Enemies)),
		Projectiles: make([]ProjectileView, len(s.Projectiles)),
		Terrain:     cfg.Terrain.Clone(),
		Kills:       s.Kills,
		Shots:       s.Shots,
	}
	for i, e := range s.Enemies {
		snap.Enemies[i] = EnemyView{ID: e.ID, X: e.X, Y: e.Y}
	}
	for i, p := range s.Projectiles {
		snap.Projectiles[i] = ProjectileView{ID: p.ID, X: p.X, Y: p.Y, R: p.Radius}
	}
	return snap
}
