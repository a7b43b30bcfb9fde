// Package object defines the entities that live on the field.
//
// Entities are plain values. The simulation owns the slices that hold them
// and replaces, rather than mutates, those slices between phases.
package object

import "fmt"

// Direction is one of the four cardinal facings.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = [...]string{"up", "down", "left", "right"}

// String returns the lowercase name used on the wire.
func (d Direction) String() string {
	if d < Up || d > Right {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Valid reports whether d is one of the four cardinal values.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Unit returns the unit vector for d in screen space (y grows downward).
func (d Direction) Unit() (dx, dy float64) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// ParseDirection maps a wire name back to a Direction.
func ParseDirection(s string) (Direction, bool) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), true
		}
	}
	return 0, false
}

// Player is the avatar controlled by the session's input source.
type Player struct {
	X, Y   float64   // Position (center)
	Facing Direction // Last pressed direction, used to aim fire
}

// Enemy chases the player at its own fixed speed.
type Enemy struct {
	ID    int
	X, Y  float64
	Speed float64 // Units per tick
}

// Projectile travels along a fixed velocity until it is culled.
type Projectile struct {
	ID     int
	X, Y   float64
	Radius float64
	VX, VY float64 // Units per tick
}

// Next returns the position the projectile reaches after one tick.
func (p Projectile) Next() (x, y float64) {
	return p.X + p.VX, p.Y + p.VY
}

// NewProjectile creates a projectile at (x, y) moving at speed along dir.
func NewProjectile(id int, x, y, radius, speed float64, dir Direction) Projectile {
	dx, dy := dir.Unit()
	return Projectile{
		ID:     id,
		X:      x,
		Y:      y,
		Radius: radius,
		VX:     dx * speed,
		VY:     dy * speed,
	}
}
