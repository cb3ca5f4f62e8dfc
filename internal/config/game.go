package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/tomz197/futbolito/internal/game"
	"github.com/tomz197/futbolito/internal/input"
	"github.com/tomz197/futbolito/internal/object"
)

// envReader collects parse errors so every bad variable is reported at once.
type envReader struct {
	errs []error
}

func (r *envReader) float(key string, dst *float64) {
	v, err := GetEnvFloat(key, *dst)
	if err != nil {
		r.errs = append(r.errs, err)
	}
	*dst = v
}

func (r *envReader) int(key string, dst *int) {
	v, err := GetEnvInt(key, *dst)
	if err != nil {
		r.errs = append(r.errs, err)
	}
	*dst = v
}

// LoadGame reads match tunables from FUTBOLITO_* variables over the defaults
// and validates the result.
func LoadGame() (game.Config, error) {
	cfg := game.DefaultConfig()
	r := &envReader{}

	r.float("FUTBOLITO_WIDTH", &cfg.Width)
	r.float("FUTBOLITO_HEIGHT", &cfg.Height)
	r.float("FUTBOLITO_TOP_MARGIN", &cfg.Field.TopMargin)
	r.float("FUTBOLITO_GOAL_WIDTH", &cfg.Field.GoalWidthFraction)
	r.float("FUTBOLITO_GOAL_HEIGHT", &cfg.Field.GoalHeightFraction)
	r.float("FUTBOLITO_DAMPING", &cfg.Damping)
	r.float("FUTBOLITO_COUPLING", &cfg.Coupling)
	r.float("FUTBOLITO_MAX_SPEED", &cfg.MaxSpeed)
	r.int("FUTBOLITO_ROUND_SECONDS", &cfg.RoundSeconds)
	r.int("FUTBOLITO_BURST_SIZE", &cfg.BurstSize)
	r.float("FUTBOLITO_BURST_SPEED_MIN", &cfg.BurstSpeed.Min)
	r.float("FUTBOLITO_BURST_SPEED_MAX", &cfg.BurstSpeed.Max)
	r.float("FUTBOLITO_GRAVITY", &cfg.Gravity)
	r.int("FUTBOLITO_MAX_PARTICLES", &cfg.MaxParticles)

	if v := GetEnv("FUTBOLITO_PALETTE", ""); v != "" {
		palette, err := object.ParsePalette(v)
		if err != nil {
			r.errs = append(r.errs, fmt.Errorf("%w: FUTBOLITO_PALETTE: %w", ErrInvalidEnv, err))
		} else {
			cfg.Palette = palette
		}
	}

	axes, err := input.ParseAxes(GetEnv("FUTBOLITO_AXES", ""))
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%w: FUTBOLITO_AXES: %w", ErrInvalidEnv, err))
	} else {
		cfg.Axes = axes
	}

	if err := errors.Join(r.errs...); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Seed parses FUTBOLITO_SEED. ok is false when it is unset.
func Seed() (seed uint64, ok bool, err error) {
	value := strings.TrimSpace(GetEnv("FUTBOLITO_SEED", ""))
	if value == "" {
		return 0, false, nil
	}
	seed, err = strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: FUTBOLITO_SEED=%q is not an unsigned integer", ErrInvalidEnv, value)
	}
	return seed, true, nil
}

// NewRand returns the confetti random source. FUTBOLITO_SEED makes bursts
// reproducible, so every match started with it replays the same confetti;
// without it the clock seeds the generator.
func NewRand() (*rand.Rand, error) {
	seed, ok, err := Seed()
	if err != nil {
		return nil, err
	}
	if !ok {
		return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)), nil
	}
	return rand.New(rand.NewPCG(seed, seed)), nil
}
