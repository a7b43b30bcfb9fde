package client

import (
	"time"

	"github.com/tomz197/alienfield/internal/loop/server"
)

// GameState is the client's screen.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Session running
	GameStateOver                      // Session ended, show result
	GameStateShutdown                  // Host is shutting down
)

// ClientState holds per-connection state.
type ClientState struct {
	GameState     GameState
	prevGameState GameState
	Running       bool

	Result  server.Event // Set when the session ends
	Holding bool         // Hold-fire toggled on
	Games   int          // Sessions started on this connection

	isInactive    bool
	wasInactive   bool
	shutdownUntil time.Time
}

// NewClientState creates the state for a fresh connection.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		prevGameState: GameStateStart,
		Running:       true,
	}
}
