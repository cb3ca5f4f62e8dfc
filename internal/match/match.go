// Package match implements the round lifecycle: countdown, scores and restart.
package match

import (
	"fmt"

	"github.com/tomz197/futbolito/internal/field"
)

// Phase is the round phase.
type Phase int

const (
	PhaseRunning Phase = iota // Clock is ticking, the ball moves
	PhaseEnded                // Time is up, waiting for a restart
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Outcome is the result of a finished round.
type Outcome int

const (
	OutcomeDraw Outcome = iota
	OutcomeTop          // More goals scored in the top goal
	OutcomeBottom       // More goals scored in the bottom goal
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeTop:
		return "top"
	case OutcomeBottom:
		return "bottom"
	default:
		return "draw"
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// State is the scoreboard and clock of one match.
//
// PreviousTopScore and PreviousBottomScore remember the last score that
// triggered a confetti burst, so a score event delivered twice in one tick
// does not spawn two bursts.
type State struct {
	TopScore            int
	BottomScore         int
	PreviousTopScore    int
	PreviousBottomScore int
	SecondsRemaining    int
	Phase               Phase

	roundSeconds int
}

// New starts a running round of the given length.
func New(roundSeconds int) *State {
	return &State{
		SecondsRemaining: roundSeconds,
		Phase:            PhaseRunning,
		roundSeconds:     roundSeconds,
	}
}

// Running reports whether the round is in progress.
func (s *State) Running() bool {
	return s.Phase == PhaseRunning
}

// RoundSeconds returns the configured round length.
func (s *State) RoundSeconds() int {
	return s.roundSeconds
}

// TickDown consumes one elapsed second. It returns true on the tick that ends
// the round. Once ended, further ticks are ignored.
func (s *State) TickDown() bool {
	if s.Phase != PhaseRunning {
		return false
	}
	if s.SecondsRemaining > 0 {
		s.SecondsRemaining--
	}
	if s.SecondsRemaining == 0 {
		s.Phase = PhaseEnded
		return true
	}
	return false
}

// Score records a goal in the given goal. It returns true when the new score
// should be celebrated with a confetti burst. Goals after the final whistle
// are ignored.
func (s *State) Score(side field.Side) bool {
	if s.Phase != PhaseRunning {
		return false
	}
	switch side {
	case field.SideTop:
		s.TopScore++
		if s.TopScore > s.PreviousTopScore {
			s.PreviousTopScore = s.TopScore
			return true
		}
	case field.SideBottom:
		s.BottomScore++
		if s.BottomScore > s.PreviousBottomScore {
			s.PreviousBottomScore = s.BottomScore
			return true
		}
	}
	return false
}

// Restart begins a new round. It is only honored once the round has ended;
// a restart while running is a harmless race with the UI and returns false.
func (s *State) Restart() bool {
	if s.Phase != PhaseEnded {
		return false
	}
	*s = State{
		SecondsRemaining: s.roundSeconds,
		Phase:            PhaseRunning,
		roundSeconds:     s.roundSeconds,
	}
	return true
}

// Outcome derives the winner from the current scores.
func (s *State) Outcome() Outcome {
	switch {
	case s.TopScore > s.BottomScore:
		return OutcomeTop
	case s.BottomScore > s.TopScore:
		return OutcomeBottom
	default:
		return OutcomeDraw
	}
}

// Goals returns the total number of goals this round.
func (s *State) Goals() int {
	return s.TopScore + s.BottomScore
}
