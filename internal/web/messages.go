package web

import (
	"github.com/tomz197/alienfield/internal/loop/server"
	"github.com/tomz197/alienfield/internal/sim"
)

// Message types.
const (
	MsgInput   = "input"
	MsgWelcome = "welcome"
	MsgState   = "state"
	MsgEnd     = "end"
)

// ClientMessage is sent by the browser, e.g. {"type":"input","event":"hold"}.
// Event uses the input kind names: up, down, left, right, fire, hold, release.
type ClientMessage struct {
	Type  string `json:"type" msgpack:"type"`
	Event string `json:"event" msgpack:"event"`
}

// Welcome is the first server message on a connection.
type Welcome struct {
	Type    string    `json:"type" msgpack:"type"`
	Session string    `json:"session" msgpack:"session"`
	Codec   string    `json:"codec" msgpack:"codec"`
	Field   sim.Field `json:"field" msgpack:"field"`
	TickMs  int64     `json:"tick_ms" msgpack:"tick_ms"`
}

// StateMessage carries one snapshot.
type StateMessage struct {
	Type  string        `json:"type" msgpack:"type"`
	State *sim.Snapshot `json:"state" msgpack:"state"`
}

// EndMessage reports the session outcome. The server closes the
// connection after sending it.
type EndMessage struct {
	Type   string     `json:"type" msgpack:"type"`
	Status sim.Status `json:"status" msgpack:"status"`
	Tick   uint64     `json:"tick" msgpack:"tick"`
	Kills  int        `json:"kills" msgpack:"kills"`
	Shots  int        `json:"shots" msgpack:"shots"`
}

func newEndMessage(ev server.Event) EndMessage {
	return EndMessage{Type: MsgEnd, Status: ev.Status, Tick: ev.Tick, Kills: ev.Kills, Shots: ev.Shots}
}
