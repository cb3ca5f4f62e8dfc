package server

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/tomz197/futbolito/internal/field"
	"github.com/tomz197/futbolito/internal/game"
	"github.com/tomz197/futbolito/internal/input"
	"github.com/tomz197/futbolito/internal/match"
)

func newServer(t *testing.T, cfg game.Config) *Server {
	t.Helper()
	g, err := game.New(cfg, rand.New(rand.NewPCG(5, 6)))
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	return NewServer(g, nil)
}

func shortRound(seconds int) game.Config {
	cfg := game.DefaultConfig()
	cfg.RoundSeconds = seconds
	return cfg
}

func nextEvent(t *testing.T, s *Server) Event {
	t.Helper()
	select {
	case ev := <-s.Events():
		return ev
	default:
		t.Fatal("expected an event")
		return Event{}
	}
}

func TestSnapshotPublishedBeforeFirstFrame(t *testing.T) {
	s := newServer(t, game.DefaultConfig())
	snap := s.Snapshot()
	if snap == nil || snap.SecondsRemaining != 60 || snap.Phase != match.PhaseRunning {
		t.Fatalf("unexpected initial snapshot %+v", snap)
	}
}

func TestStepAppliesLatestTilt(t *testing.T) {
	s := newServer(t, game.DefaultConfig())
	start := s.Snapshot().Ball.Center

	s.SetTilt(input.Tilt{X: -5})
	s.SetTilt(input.Tilt{X: 5})
	s.Step()

	snap := s.Snapshot()
	if snap.Ball.Center.X <= start.X {
		t.Fatalf("ball should move right with the latest tilt, %v -> %v", start.X, snap.Ball.Center.X)
	}
	if s.Frames() != 1 {
		t.Fatalf("expected 1 frame, got %d", s.Frames())
	}
}

func TestSnapshotsAreImmutable(t *testing.T) {
	s := newServer(t, game.DefaultConfig())
	s.SetTilt(input.Tilt{Y: 3})
	s.Step()
	first := s.Snapshot()
	pos := first.Ball.Center

	s.Step()
	s.Step()

	if first.Ball.Center != pos {
		t.Fatal("published snapshot changed after later frames")
	}
	if s.Snapshot() == first {
		t.Fatal("expected a new snapshot per frame")
	}
}

func TestRoundEndedEventAndRestart(t *testing.T) {
	s := newServer(t, shortRound(2))

	s.Restart()
	s.Step()
	select {
	case ev := <-s.Events():
		t.Fatalf("restart while running must not emit, got %v", ev.Type)
	default:
	}

	s.StepSecond()
	s.StepSecond()
	ev := nextEvent(t, s)
	if ev.Type != EventRoundEnded || ev.Outcome != match.OutcomeDraw {
		t.Fatalf("unexpected event %+v", ev)
	}
	if !s.Snapshot().Ended {
		t.Fatal("snapshot should show the round ended")
	}

	s.StepSecond()
	select {
	case ev := <-s.Events():
		t.Fatalf("round must end only once, got %v", ev.Type)
	default:
	}

	s.Restart()
	s.Step()
	if ev := nextEvent(t, s); ev.Type != EventRestarted {
		t.Fatalf("expected restart event, got %v", ev.Type)
	}
	if snap := s.Snapshot(); snap.Ended || snap.SecondsRemaining != 2 {
		t.Fatalf("unexpected snapshot after restart %+v", snap)
	}
}

func TestGoalEvent(t *testing.T) {
	s := newServer(t, game.DefaultConfig())
	s.SetTilt(input.Tilt{Y: -30})

	for i := 0; i < 600; i++ {
		s.Step()
		select {
		case ev := <-s.Events():
			if ev.Type != EventGoal || ev.Side != field.SideTop || ev.Top != 1 {
				t.Fatalf("unexpected event %+v", ev)
			}
			if got := s.Snapshot().GoalCount; got != 1 {
				t.Fatalf("expected goal count 1, got %d", got)
			}
			return
		default:
		}
	}
	t.Fatal("ball pushed straight up never scored")
}

func TestResizeCommand(t *testing.T) {
	s := newServer(t, game.DefaultConfig())

	s.Resize(720, 1280)
	s.Step()
	if snap := s.Snapshot(); snap.Width != 720 || snap.Height != 1280 {
		t.Fatalf("resize not applied: %vx%v", snap.Width, snap.Height)
	}

	s.Resize(-1, 10)
	s.Step()
	if snap := s.Snapshot(); snap.Width != 720 {
		t.Fatalf("invalid resize must keep the geometry, got width %v", snap.Width)
	}
}

func TestCommandQueueDropsWhenFull(t *testing.T) {
	s := newServer(t, game.DefaultConfig())
	for i := 0; i < 100; i++ {
		s.Restart()
	}
	if len(s.restartCh) != cap(s.restartCh) {
		t.Fatalf("expected full queue, got %d", len(s.restartCh))
	}
	s.Step()
	if len(s.restartCh) != 0 {
		t.Fatal("frame should drain the command queue")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := newServer(t, game.DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for s.Frames() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if s.Frames() == 0 {
		t.Fatal("Run never stepped a frame")
	}
}

func TestHubShutdown(t *testing.T) {
	h := NewHub()
	s := newServer(t, game.DefaultConfig())
	h.Register(s)

	go func() {
		<-s.Events()
		h.Unregister(s)
	}()

	start := time.Now()
	h.Shutdown(5 * time.Second)
	if h.Len() != 0 {
		t.Fatal("session did not unregister")
	}
	if time.Since(start) > 4*time.Second {
		t.Fatal("shutdown waited for the full timeout")
	}
}
