package client

import (
	"time"

	"github.com/tomz197/futbolito/internal/draw"
	"github.com/tomz197/futbolito/internal/input"
)

// GameState represents the current phase as seen by this client.
type GameState int

const (
	GameStatePlaying  GameState = iota // Round in progress
	GameStateEnded                     // Final whistle, waiting for restart
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-connection state (input, phase, timers).
type ClientState struct {
	Input         input.Input
	Tilt          input.Tilt        // Last tilt sent to the server
	GameState     GameState         // This client's view of the match phase
	prevGameState GameState         // For detecting transitions that need a full clear
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	Running       bool              // Client loop running
	delta         time.Duration     // Frame delta time (client-side)
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	isInactive    bool              // Whether the client is in inactive warning state
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStatePlaying,
		Running:   true,
	}
}
