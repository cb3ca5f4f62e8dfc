// Package object holds the simulated entities: the ball and the confetti.
package object

import (
	"github.com/tomz197/futbolito/internal/field"
	"github.com/tomz197/futbolito/internal/input"
	"github.com/tomz197/futbolito/internal/physics"
)

// TiltSample is an alias for the input package's Tilt type.
type TiltSample = input.Tilt

// Rand is the randomness source for confetti. *math/rand/v2.Rand satisfies it;
// tests inject a seeded one for reproducible bursts.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// GoalEvent reports a score produced by a single Advance call.
type GoalEvent struct {
	Side field.Side
	At   physics.Vec2 // Ball center before the kick-off reset
}
