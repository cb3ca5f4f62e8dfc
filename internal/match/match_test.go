package match

import (
	"testing"

	"github.com/tomz197/futbolito/internal/field"
)

func TestNewRoundIsRunning(t *testing.T) {
	s := New(60)
	if !s.Running() || s.SecondsRemaining != 60 || s.TopScore != 0 || s.BottomScore != 0 {
		t.Fatalf("unexpected initial state %+v", s)
	}
}

func TestTickDownEndsExactlyAtZero(t *testing.T) {
	s := New(3)
	ends := 0
	prev := s.SecondsRemaining
	for i := 0; i < 10; i++ {
		if s.TickDown() {
			ends++
			if s.SecondsRemaining != 0 || s.Phase != PhaseEnded {
				t.Fatalf("ended with %d seconds in phase %s", s.SecondsRemaining, s.Phase)
			}
		}
		if s.SecondsRemaining < 0 {
			t.Fatalf("negative seconds: %d", s.SecondsRemaining)
		}
		if s.Running() && s.SecondsRemaining != prev-1 {
			t.Fatalf("expected one-second decrement, got %d -> %d", prev, s.SecondsRemaining)
		}
		prev = s.SecondsRemaining
	}
	if ends != 1 {
		t.Fatalf("expected a single end transition, got %d", ends)
	}
}

func TestScoreRequestsBurstAndTracksPrevious(t *testing.T) {
	s := New(60)
	if !s.Score(field.SideTop) {
		t.Fatal("first top goal should request a burst")
	}
	if !s.Score(field.SideBottom) || !s.Score(field.SideBottom) {
		t.Fatal("each bottom goal should request a burst")
	}
	if s.TopScore != 1 || s.PreviousTopScore != 1 {
		t.Fatalf("top score/previous: %d/%d", s.TopScore, s.PreviousTopScore)
	}
	if s.BottomScore != 2 || s.PreviousBottomScore != 2 {
		t.Fatalf("bottom score/previous: %d/%d", s.BottomScore, s.PreviousBottomScore)
	}
	if s.Goals() != 3 {
		t.Fatalf("expected 3 goals, got %d", s.Goals())
	}
}

func TestScoreAlreadyCelebratedDoesNotBurstAgain(t *testing.T) {
	s := New(60)
	s.PreviousTopScore = 5 // A burst for a higher score already happened
	if s.Score(field.SideTop) {
		t.Fatal("score at or below the last celebrated one must not burst")
	}
	if s.TopScore != 1 {
		t.Fatalf("goal still counts, got %d", s.TopScore)
	}
}

func TestScoreIgnoredAfterFinalWhistle(t *testing.T) {
	s := New(1)
	s.TickDown()
	if s.Score(field.SideTop) || s.TopScore != 0 {
		t.Fatalf("goal after the end must be ignored, got %+v", s)
	}
}

func TestRestartOnlyWhenEnded(t *testing.T) {
	s := New(2)
	s.Score(field.SideTop)
	if s.Restart() {
		t.Fatal("restart while running must be a no-op")
	}
	if s.TopScore != 1 || s.SecondsRemaining != 2 {
		t.Fatalf("running state changed by restart: %+v", s)
	}

	s.TickDown()
	s.TickDown()
	if !s.Restart() {
		t.Fatal("restart after the end must be honored")
	}
	want := State{SecondsRemaining: 2, Phase: PhaseRunning, roundSeconds: 2}
	if *s != want {
		t.Fatalf("restart left %+v, want %+v", *s, want)
	}
}

func TestOutcome(t *testing.T) {
	cases := []struct {
		top, bottom int
		want        Outcome
	}{
		{0, 0, OutcomeDraw},
		{3, 1, OutcomeTop},
		{1, 2, OutcomeBottom},
		{4, 4, OutcomeDraw},
	}
	for _, tc := range cases {
		s := &State{TopScore: tc.top, BottomScore: tc.bottom}
		if got := s.Outcome(); got != tc.want {
			t.Errorf("%d-%d: got %s want %s", tc.top, tc.bottom, got, tc.want)
		}
	}
}
