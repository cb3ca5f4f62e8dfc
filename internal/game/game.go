// Package game ties the field, the ball, the confetti and the match clock into
// a single simulation driven by explicit tick entry points.
package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomz197/futbolito/internal/field"
	"github.com/tomz197/futbolito/internal/input"
	"github.com/tomz197/futbolito/internal/loop/config"
	"github.com/tomz197/futbolito/internal/match"
	"github.com/tomz197/futbolito/internal/object"
	"github.com/tomz197/futbolito/internal/scene"
)

// ErrInvalidConfig is wrapped by every configuration error, field errors included.
var ErrInvalidConfig = errors.New("invalid game configuration")

// Config holds every tunable of a match.
type Config struct {
	Width  float64
	Height float64
	Field  field.Config

	Coupling float64
	Damping  float64
	MaxSpeed float64 // <= 0 disables the speed cap

	RoundSeconds int

	BurstSize    int
	BurstSpeed   object.SpeedRange
	Gravity      float64
	MaxParticles int // <= 0 keeps every particle
	Palette      []object.Color

	Axes input.AxisMap // nil means identity
}

// DefaultConfig returns the standard portrait table.
func DefaultConfig() Config {
	return Config{
		Width:        config.FieldWidth,
		Height:       config.FieldHeight,
		Field:        field.DefaultConfig(),
		Coupling:     config.TiltCoupling,
		Damping:      config.WallDamping,
		MaxSpeed:     config.MaxBallSpeed,
		RoundSeconds: config.RoundSeconds,
		BurstSize:    config.BurstSize,
		BurstSpeed:   object.SpeedRange{Min: config.BurstSpeedMin, Max: config.BurstSpeedMax},
		Gravity:      config.ConfettiGravity,
		MaxParticles: config.MaxParticles,
		Palette:      append([]object.Color(nil), object.DefaultPalette...),
		Axes:         input.AxesIdentity,
	}
}

// Validate checks the configuration, including the field geometry it implies.
func (c Config) Validate() error {
	if _, err := field.New(c.Width, c.Height, c.Field); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch {
	case !finite(c.Coupling) || c.Coupling < 0:
		return fmt.Errorf("%w: tilt coupling %v", ErrInvalidConfig, c.Coupling)
	case !finite(c.Damping) || c.Damping < 0 || c.Damping > 1:
		return fmt.Errorf("%w: damping %v must be in [0,1]", ErrInvalidConfig, c.Damping)
	case math.IsNaN(c.MaxSpeed):
		return fmt.Errorf("%w: max speed is NaN", ErrInvalidConfig)
	case c.RoundSeconds <= 0:
		return fmt.Errorf("%w: round length %d must be positive", ErrInvalidConfig, c.RoundSeconds)
	case c.BurstSize < 0:
		return fmt.Errorf("%w: burst size %d", ErrInvalidConfig, c.BurstSize)
	case !finite(c.BurstSpeed.Min) || !finite(c.BurstSpeed.Max) ||
		c.BurstSpeed.Min < 0 || c.BurstSpeed.Max < c.BurstSpeed.Min:
		return fmt.Errorf("%w: burst speed range [%v,%v]", ErrInvalidConfig, c.BurstSpeed.Min, c.BurstSpeed.Max)
	case !finite(c.Gravity):
		return fmt.Errorf("%w: gravity %v", ErrInvalidConfig, c.Gravity)
	}
	return nil
}

func (c Config) kinematics() object.Kinematics {
	return object.Kinematics{Coupling: c.Coupling, Damping: c.Damping, MaxSpeed: c.MaxSpeed}
}

// Game is one match. It is not safe for concurrent use; the server goroutine
// owns it.
type Game struct {
	cfg       Config
	geo       field.Geometry
	ball      *object.Ball
	particles *object.ParticleSystem
	state     *match.State
}

// New validates cfg and starts a running round with the ball at the center.
func New(cfg Config, rng object.Rand) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	if cfg.Axes == nil {
		cfg.Axes = input.AxesIdentity
	}
	geo, err := field.New(cfg.Width, cfg.Height, cfg.Field)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &Game{
		cfg:       cfg,
		geo:       geo,
		ball:      object.NewBall(geo),
		particles: object.NewParticleSystem(cfg.MaxParticles, cfg.Gravity, rng),
		state:     match.New(cfg.RoundSeconds),
	}, nil
}

// Tick advances one frame. The ball only moves while the round is running;
// confetti keeps falling after the final whistle.
func (g *Game) Tick(tilt input.Tilt) (object.GoalEvent, bool) {
	var (
		ev     object.GoalEvent
		scored bool
	)
	if g.state.Running() {
		ev, scored = g.ball.Advance(g.cfg.Axes(tilt), g.geo, g.cfg.kinematics())
		if scored && g.state.Score(ev.Side) {
			g.particles.SpawnBurst(ev.At, g.cfg.BurstSize, g.cfg.BurstSpeed, g.cfg.Palette)
		}
	}
	g.particles.Tick()
	return ev, scored
}

// TickSecond consumes one second of the round clock and reports whether the
// round ended on this call.
func (g *Game) TickSecond() bool {
	return g.state.TickDown()
}

// Restart starts a new round after the previous one has ended.
func (g *Game) Restart() bool {
	if !g.state.Restart() {
		return false
	}
	g.particles.Clear()
	g.ball.Reset(g.geo)
	return true
}

// Resize recomputes the geometry for a new field size. On error the previous
// geometry stays in place.
func (g *Game) Resize(width, height float64) error {
	geo, err := field.New(width, height, g.cfg.Field)
	if err != nil {
		return fmt.Errorf("resize to %vx%v: %w", width, height, err)
	}
	g.geo = geo
	g.cfg.Width, g.cfg.Height = width, height
	g.ball.Fit(geo)
	return nil
}

// Snapshot composes the current frame.
func (g *Game) Snapshot() scene.Snapshot {
	return scene.Compose(g.geo, g.ball, g.particles, g.state)
}

// Phase reports whether the round is running or has ended.
func (g *Game) Phase() match.Phase {
	return g.state.Phase
}

// Geometry returns the current field geometry.
func (g *Game) Geometry() field.Geometry {
	return g.geo
}

// Scores returns the top and bottom goal counts.
func (g *Game) Scores() (top, bottom int) {
	return g.state.TopScore, g.state.BottomScore
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
