// Package scene projects the simulation into an immutable, renderable frame.
package scene

import (
	"fmt"

	"github.com/tomz197/futbolito/internal/field"
	"github.com/tomz197/futbolito/internal/match"
	"github.com/tomz197/futbolito/internal/object"
	"github.com/tomz197/futbolito/internal/physics"
)

// Goal colors and the teams credited for them: a goal in the red top goal
// counts for the green player and vice versa.
const (
	TopGoalColor    = object.ColorRed
	BottomGoalColor = object.ColorGreen
	TopTeamColor    = object.ColorGreen
	BottomTeamColor = object.ColorRed
	BallColor       = object.ColorWhite
)

// Ball is the drawable ball.
type Ball struct {
	Center        physics.Vec2 `json:"center"`
	Radius        float64      `json:"radius"`
	VisibleRadius float64      `json:"visibleRadius"`
	Color         object.Color `json:"color"`
}

// Goal is a drawable goal zone.
type Goal struct {
	Side  field.Side   `json:"side"`
	Rect  physics.Rect `json:"rect"`
	Color object.Color `json:"color"`
}

// Particle is a drawable piece of confetti.
type Particle struct {
	Position physics.Vec2 `json:"position"`
	Color    object.Color `json:"color"`
}

// Score is one side of the scoreboard.
type Score struct {
	Goals int          `json:"goals"`
	Color object.Color `json:"color"`
}

// Snapshot is everything a renderer needs for one frame. Snapshots are never
// mutated after Compose returns.
type Snapshot struct {
	Width            float64        `json:"width"`
	Height           float64        `json:"height"`
	TopBound         float64        `json:"topBound"`
	Ball             Ball           `json:"ball"`
	Goals            [2]Goal        `json:"goals"`
	Particles        []Particle     `json:"particles"`
	Top              Score          `json:"top"`
	Bottom           Score          `json:"bottom"`
	SecondsRemaining int            `json:"secondsRemaining"`
	Phase            match.Phase    `json:"phase"`
	Ended            bool           `json:"ended"`
	Outcome          *match.Outcome `json:"outcome,omitempty"`
	ScoreText        string         `json:"scoreText"`
	TimeText         string         `json:"timeText"`
	OutcomeText      string         `json:"outcomeText,omitempty"`
	GoalCount        int            `json:"goalCount"` // Goals this round, lets renderers spot new ones
}

// Compose builds a snapshot. It only reads its arguments.
func Compose(geo field.Geometry, ball *object.Ball, particles *object.ParticleSystem, state *match.State) Snapshot {
	snap := Snapshot{
		Width:    geo.Width,
		Height:   geo.Height,
		TopBound: geo.TopBound,
		Ball: Ball{
			Center:        ball.Position,
			Radius:        ball.Radius,
			VisibleRadius: geo.VisibleRadius,
			Color:         BallColor,
		},
		Goals: [2]Goal{
			{Side: field.SideTop, Rect: geo.Top.Rect, Color: TopGoalColor},
			{Side: field.SideBottom, Rect: geo.Bottom.Rect, Color: BottomGoalColor},
		},
		Particles:        make([]Particle, 0, particles.Len()),
		Top:              Score{Goals: state.TopScore, Color: TopTeamColor},
		Bottom:           Score{Goals: state.BottomScore, Color: BottomTeamColor},
		SecondsRemaining: state.SecondsRemaining,
		Phase:            state.Phase,
		Ended:            state.Phase == match.PhaseEnded,
		ScoreText:        fmt.Sprintf("%d - %d", state.TopScore, state.BottomScore),
		TimeText:         fmt.Sprintf("Time: %d s", state.SecondsRemaining),
		GoalCount:        state.Goals(),
	}

	particles.Each(func(p object.Particle) {
		snap.Particles = append(snap.Particles, Particle{Position: p.Position, Color: p.Color})
	})

	if snap.Ended {
		outcome := state.Outcome()
		snap.Outcome = &outcome
		snap.OutcomeText = OutcomeText(outcome)
	}

	return snap
}

// OutcomeText is the end-of-round message for an outcome.
func OutcomeText(o match.Outcome) string {
	switch o {
	case match.OutcomeTop:
		return "Green player wins"
	case match.OutcomeBottom:
		return "Red player wins"
	default:
		return "Draw"
	}
}
