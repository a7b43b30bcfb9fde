package server

import "github.com/tomz197/alienfield/internal/sim"

// Event is sent once when a session reaches a terminal status.
type Event struct {
	Status sim.Status
	Tick   uint64
	Kills  int
	Shots  int
}

func newEvent(s *sim.Snapshot) Event {
	return Event{Status: s.Status, Tick: s.Tick, Kills: s.Kills, Shots: s.Shots}
}

// Accuracy is kills per shot as a percentage. One shot can kill several
// enemies, so it may exceed 100.
func (e Event) Accuracy() float64 {
	if e.Shots == 0 {
		return 0
	}
	return float64(e.Kills) / float64(e.Shots) * 100
}
