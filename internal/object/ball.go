package object

import (
	"github.com/tomz197/futbolito/internal/field"
	"github.com/tomz197/futbolito/internal/physics"
)

// Kinematics are the tuning values of the ball integrator.
type Kinematics struct {
	Coupling float64 // Velocity gained per tick per unit of tilt
	Damping  float64 // Fraction of a velocity component kept after a wall bounce
	MaxSpeed float64 // Speed ceiling in units per tick (<= 0 disables it)
}

// Ball is the single ball of a match.
type Ball struct {
	Position physics.Vec2
	Velocity physics.Vec2
	Radius   float64
}

// NewBall creates a ball resting at the kick-off spot.
func NewBall(geo field.Geometry) *Ball {
	return &Ball{
		Position: geo.Center(),
		Radius:   geo.BallRadius,
	}
}

// Reset puts the ball back on the kick-off spot at rest.
func (b *Ball) Reset(geo field.Geometry) {
	b.Position = geo.Center()
	b.Velocity = physics.Vec2{}
	b.Radius = geo.BallRadius
}

// Advance runs one tick: tilt accelerates the ball, it moves, bounces off the
// walls and is tested against both goals. A goal resets the ball to the
// kick-off spot and is reported to the caller; at most one goal is reported
// per tick and the top goal wins if both would match.
func (b *Ball) Advance(tilt TiltSample, geo field.Geometry, kin Kinematics) (GoalEvent, bool) {
	accel := physics.Vec2{X: tilt.X, Y: tilt.Y}
	if !accel.IsFinite() {
		accel = physics.Vec2{}
	}
	b.Velocity = b.Velocity.Add(accel.Scale(kin.Coupling)).ClampLength(kin.MaxSpeed)

	// Bounce decisions use the unclamped position so a ball resting on a wall
	// is damped once per contact, not every tick.
	next := b.Position.Add(b.Velocity)
	bounds := geo.Playable
	if next.X < bounds.Min.X || next.X > bounds.Max.X {
		b.Velocity.X = -b.Velocity.X * kin.Damping
	}
	if next.Y < bounds.Min.Y || next.Y > bounds.Max.Y {
		b.Velocity.Y = -b.Velocity.Y * kin.Damping
	}
	b.Position = bounds.ClampPoint(next)

	side, scored := b.goalHit(geo)
	if !scored {
		return GoalEvent{}, false
	}
	ev := GoalEvent{Side: side, At: b.Position}
	b.Reset(geo)
	return ev, true
}

func (b *Ball) goalHit(geo field.Geometry) (field.Side, bool) {
	p := b.Position
	if p.Y <= geo.Top.Rect.Max.Y && geo.Top.Rect.SpansX(p.X) {
		return field.SideTop, true
	}
	if p.Y >= geo.Bottom.Rect.Min.Y && geo.Bottom.Rect.SpansX(p.X) {
		return field.SideBottom, true
	}
	return 0, false
}

// Fit moves the ball inside a new geometry without changing its velocity.
func (b *Ball) Fit(geo field.Geometry) {
	b.Radius = geo.BallRadius
	b.Position = geo.Playable.ClampPoint(b.Position)
}
