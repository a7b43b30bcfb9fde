// Package input turns host input into the abstract events consumed by the
// simulation. Any host that can produce the six control events (four
// directions, fire, and the hold-fire press/release pair) satisfies Source.
package input

import "fmt"

// Kind identifies an input event.
type Kind int

const (
	Up Kind = iota
	Down
	Left
	Right
	Fire      // Single shot along the facing direction
	HoldStart // Hold-fire control pressed
	HoldEnd   // Hold-fire control released

	// Host-level kinds. The simulation ignores these.
	Confirm
	Quit
)

var kindNames = [...]string{"up", "down", "left", "right", "fire", "hold", "release", "confirm", "quit"}

func (k Kind) String() string {
	if k < Up || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a wire name (as produced by String) back to a Kind.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Event is a single discrete input.
type Event struct {
	Kind Kind
}

// IsMove reports whether the event is one of the four directional presses.
func (e Event) IsMove() bool {
	return e.Kind >= Up && e.Kind <= Right
}

// Source delivers input events to a poller.
type Source interface {
	// Drain appends every event received since the previous call to dst and
	// returns the extended slice. It never blocks.
	Drain(dst []Event) []Event
}
