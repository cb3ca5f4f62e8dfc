// Package field computes the arena: playable bounds, ball size and goal zones.
package field

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomz197/futbolito/internal/loop/config"
	"github.com/tomz197/futbolito/internal/physics"
)

// ErrInvalidConfig is wrapped by every geometry validation error.
var ErrInvalidConfig = errors.New("invalid field configuration")

// Side identifies one of the two goals.
type Side int

const (
	SideTop Side = iota
	SideBottom
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// MarshalText encodes the side by name.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Config holds the ratios the geometry is derived from.
type Config struct {
	TopMargin            float64 // Playable area starts this far from the top edge
	BallRadiusDivisor    float64 // Ball radius = width / divisor
	VisibleRadiusDivisor float64 // Drawn ball radius = width / divisor
	GoalWidthFraction    float64 // Goal width as a fraction of field width
	GoalHeightFraction   float64 // Goal height as a fraction of field height
}

// DefaultConfig returns the standard arena proportions.
func DefaultConfig() Config {
	return Config{
		TopMargin:            config.TopMargin,
		BallRadiusDivisor:    config.BallRadiusDivisor,
		VisibleRadiusDivisor: config.VisibleRadiusDivisor,
		GoalWidthFraction:    config.GoalWidthFraction,
		GoalHeightFraction:   config.GoalHeightFraction,
	}
}

// Goal is a scoring zone.
type Goal struct {
	Side Side
	Rect physics.Rect
}

// Geometry is the fully derived arena for one surface size. It is a value:
// a resize produces a new Geometry rather than mutating the old one.
type Geometry struct {
	Width         float64
	Height        float64
	TopBound      float64
	BallRadius    float64
	VisibleRadius float64
	Playable      physics.Rect // Range of valid ball centers
	Top           Goal
	Bottom        Goal
}

// New derives the geometry for a width x height surface.
func New(width, height float64, cfg Config) (Geometry, error) {
	if !positive(width) || !positive(height) {
		return Geometry{}, fmt.Errorf("%w: field size %gx%g must be positive", ErrInvalidConfig, width, height)
	}
	if !positive(cfg.BallRadiusDivisor) || !positive(cfg.VisibleRadiusDivisor) {
		return Geometry{}, fmt.Errorf("%w: radius divisors must be positive", ErrInvalidConfig)
	}
	if !fraction(cfg.GoalWidthFraction) || !fraction(cfg.GoalHeightFraction) {
		return Geometry{}, fmt.Errorf("%w: goal fractions %g/%g must be in (0, 1]",
			ErrInvalidConfig, cfg.GoalWidthFraction, cfg.GoalHeightFraction)
	}
	if cfg.TopMargin < 0 || math.IsNaN(cfg.TopMargin) {
		return Geometry{}, fmt.Errorf("%w: top margin %g must not be negative", ErrInvalidConfig, cfg.TopMargin)
	}

	radius := width / cfg.BallRadiusDivisor
	g := Geometry{
		Width:         width,
		Height:        height,
		TopBound:      cfg.TopMargin,
		BallRadius:    radius,
		VisibleRadius: width / cfg.VisibleRadiusDivisor,
		Playable:      physics.NewRect(radius, cfg.TopMargin, width-radius, height-radius),
	}
	if g.Playable.Empty() {
		return Geometry{}, fmt.Errorf("%w: no playable area in %gx%g with top margin %g and ball radius %g",
			ErrInvalidConfig, width, height, cfg.TopMargin, radius)
	}

	// Goals straddle the playable edge they guard so a clamped ball can reach them.
	goalW := width * cfg.GoalWidthFraction
	goalH := height * cfg.GoalHeightFraction
	left := (width - goalW) / 2
	right := (width + goalW) / 2
	top := g.Playable.Min.Y
	bottom := g.Playable.Max.Y
	g.Top = Goal{Side: SideTop, Rect: physics.NewRect(left, top-goalH*0.4, right, top+goalH*0.6)}
	g.Bottom = Goal{Side: SideBottom, Rect: physics.NewRect(left, bottom-goalH*0.6, right, bottom+goalH*0.4)}

	kickOff := g.Center()
	if kickOff.Y <= g.Top.Rect.Max.Y || kickOff.Y >= g.Bottom.Rect.Min.Y {
		return Geometry{}, fmt.Errorf("%w: kick-off spot %+v lies inside a goal", ErrInvalidConfig, kickOff)
	}

	bounds := physics.NewRect(0, 0, width, height)
	for _, goal := range []Goal{g.Top, g.Bottom} {
		if !goal.Rect.Inside(bounds) {
			return Geometry{}, fmt.Errorf("%w: %s goal %+v lies outside the %gx%g field",
				ErrInvalidConfig, goal.Side, goal.Rect, width, height)
		}
	}

	return g, nil
}

// Center returns the kick-off spot, the middle of the playable rectangle.
func (g Geometry) Center() physics.Vec2 {
	return g.Playable.Center()
}

// Goals returns both goals, top first.
func (g Geometry) Goals() [2]Goal {
	return [2]Goal{g.Top, g.Bottom}
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}

func fraction(f float64) bool {
	return f > 0 && f <= 1
}
