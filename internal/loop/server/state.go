package server

import (
	"github.com/tomz197/futbolito/internal/field"
	"github.com/tomz197/futbolito/internal/match"
)

// EventType identifies the type of server event.
type EventType int

const (
	EventGoal EventType = iota
	EventRoundEnded
	EventRestarted
	EventServerShutdown
)

func (t EventType) String() string {
	switch t {
	case EventGoal:
		return "goal"
	case EventRoundEnded:
		return "round_ended"
	case EventRestarted:
		return "restarted"
	case EventServerShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Event is sent from the server to its frontend.
type Event struct {
	Type    EventType     `json:"type"`
	Side    field.Side    `json:"side"`    // For goal events
	Top     int           `json:"top"`     // Score after the event
	Bottom  int           `json:"bottom"`  // Score after the event
	Outcome match.Outcome `json:"outcome"` // For round ended events
}

// Size is a requested field size in logical units.
type Size struct {
	Width  float64
	Height float64
}
