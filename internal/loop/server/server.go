package server

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/futbolito/internal/game"
	"github.com/tomz197/futbolito/internal/input"
	"github.com/tomz197/futbolito/internal/loop/config"
	"github.com/tomz197/futbolito/internal/scene"
)

// GameServer is the interface frontends use to communicate with a match.
// Decouples the terminal and browser clients from the concrete Server.
type GameServer interface {
	SetTilt(t input.Tilt)
	Restart()
	Resize(width, height float64)
	Snapshot() *scene.Snapshot
	Events() <-chan Event
}

// Server runs one match on its own goroutine and publishes snapshots.
//
// Only Run (or Step/StepSecond in tests) touches the game. Everything else is
// safe to call from any goroutine.
type Server struct {
	game      *game.Game
	tilt      input.TiltCell
	snapshot  atomic.Pointer[scene.Snapshot]
	restartCh chan struct{}
	resizeCh  chan Size
	events    chan Event
	logger    *log.Logger
	frames    atomic.Uint64
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// NewServer creates a server for the given match. A nil logger discards output.
func NewServer(g *game.Game, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		game:      g,
		restartCh: make(chan struct{}, config.ServerCommandQueue),
		resizeCh:  make(chan Size, config.ServerCommandQueue),
		events:    make(chan Event, config.ServerEventBuffer),
		logger:    logger,
	}
	s.publish()
	return s
}

// Run drives the frame ticker and the one second round clock. Blocks until the
// context is cancelled.
func (s *Server) Run(ctx context.Context) {
	frame := time.NewTicker(config.ServerTickTime)
	defer frame.Stop()
	second := time.NewTicker(time.Second)
	defer second.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-frame.C:
			s.Step()
		case <-second.C:
			s.StepSecond()
		}
	}
}

// Step runs a single frame: pending commands, physics, snapshot.
func (s *Server) Step() {
	s.processCommands()

	ev, scored := s.game.Tick(s.tilt.Load())
	if scored {
		top, bottom := s.game.Scores()
		s.logger.Info("goal", "side", ev.Side, "top", top, "bottom", bottom)
		s.emit(Event{Type: EventGoal, Side: ev.Side, Top: top, Bottom: bottom})
	}

	s.frames.Add(1)
	s.publish()
}

// StepSecond consumes one second of the round clock.
func (s *Server) StepSecond() {
	if s.game.TickSecond() {
		snap := s.game.Snapshot()
		top, bottom := s.game.Scores()
		s.logger.Info("round ended", "top", top, "bottom", bottom, "outcome", *snap.Outcome)
		s.emit(Event{Type: EventRoundEnded, Top: top, Bottom: bottom, Outcome: *snap.Outcome})
	}
	s.publish()
}

// processCommands drains queued restart and resize requests.
func (s *Server) processCommands() {
	for {
		select {
		case <-s.restartCh:
			if s.game.Restart() {
				s.logger.Info("restart")
				s.emit(Event{Type: EventRestarted})
			} else {
				s.logger.Debug("restart ignored", "phase", s.game.Phase())
			}
		case size := <-s.resizeCh:
			if err := s.game.Resize(size.Width, size.Height); err != nil {
				s.logger.Warn("resize rejected", "err", err)
			} else {
				s.logger.Debug("resized", "width", size.Width, "height", size.Height)
			}
		default:
			return
		}
	}
}

// emit sends an event without blocking; a slow frontend misses events.
func (s *Server) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
		s.logger.Debug("event dropped", "type", ev.Type)
	}
}

func (s *Server) publish() {
	snap := s.game.Snapshot()
	s.snapshot.Store(&snap)
}

// SetTilt stores the latest tilt sample. Older samples are overwritten.
func (s *Server) SetTilt(t input.Tilt) {
	s.tilt.Store(t)
}

// Restart requests a new round. It only takes effect once the round has ended.
func (s *Server) Restart() {
	select {
	case s.restartCh <- struct{}{}:
	default:
		// Command queue full, drop request
	}
}

// Resize requests a new field size, applied at the start of the next frame.
func (s *Server) Resize(width, height float64) {
	select {
	case s.resizeCh <- Size{Width: width, Height: height}:
	default:
	}
}

// Snapshot returns the most recently published frame. Never blocks.
func (s *Server) Snapshot() *scene.Snapshot {
	return s.snapshot.Load()
}

// Events returns the server's event channel.
func (s *Server) Events() <-chan Event {
	return s.events
}

// Frames returns the number of frames simulated so far.
func (s *Server) Frames() uint64 {
	return s.frames.Load()
}

// Shutdown tells the frontend that the server is going away.
func (s *Server) Shutdown() {
	s.emit(Event{Type: EventServerShutdown})
}
