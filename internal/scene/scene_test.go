package scene

import (
	"encoding/json"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/tomz197/futbolito/internal/field"
	"github.com/tomz197/futbolito/internal/match"
	"github.com/tomz197/futbolito/internal/object"
	"github.com/tomz197/futbolito/internal/physics"
)

func setup(t *testing.T) (field.Geometry, *object.Ball, *object.ParticleSystem, *match.State) {
	t.Helper()
	geo, err := field.New(360, 640, field.DefaultConfig())
	if err != nil {
		t.Fatalf("field.New: %v", err)
	}
	ps := object.NewParticleSystem(100, 0.2, rand.New(rand.NewPCG(3, 4)))
	return geo, object.NewBall(geo), ps, match.New(60)
}

func TestComposeRunning(t *testing.T) {
	geo, ball, ps, state := setup(t)
	state.Score(field.SideTop)
	ps.SpawnBurst(physics.Vec2{X: 10, Y: 20}, 5, object.SpeedRange{Min: 2, Max: 6}, []object.Color{object.ColorCyan})

	snap := Compose(geo, ball, ps, state)

	if snap.Ball.Center != geo.Center() || snap.Ball.VisibleRadius != geo.VisibleRadius {
		t.Fatalf("unexpected ball %+v", snap.Ball)
	}
	if snap.Goals[0].Color != object.ColorRed || snap.Goals[1].Color != object.ColorGreen {
		t.Fatalf("unexpected goal colors %+v", snap.Goals)
	}
	if len(snap.Particles) != 5 || snap.Particles[0].Color != object.ColorCyan {
		t.Fatalf("unexpected particles %+v", snap.Particles)
	}
	if snap.Top.Goals != 1 || snap.Bottom.Goals != 0 || snap.GoalCount != 1 {
		t.Fatalf("unexpected scores %+v %+v", snap.Top, snap.Bottom)
	}
	if snap.TimeText != "Time: 60 s" || snap.ScoreText != "1 - 0" {
		t.Fatalf("unexpected texts %q %q", snap.TimeText, snap.ScoreText)
	}
	if snap.Ended || snap.Outcome != nil || snap.OutcomeText != "" {
		t.Fatalf("running snapshot must not carry an outcome: %+v", snap)
	}
}

func TestComposeEnded(t *testing.T) {
	geo, ball, ps, state := setup(t)
	state.Score(field.SideBottom)
	for state.Running() {
		state.TickDown()
	}

	snap := Compose(geo, ball, ps, state)
	if !snap.Ended || snap.Outcome == nil || *snap.Outcome != match.OutcomeBottom {
		t.Fatalf("unexpected outcome in %+v", snap)
	}
	if snap.OutcomeText != "Red player wins" {
		t.Fatalf("unexpected outcome text %q", snap.OutcomeText)
	}
}

func TestSnapshotIsDetachedFromParticles(t *testing.T) {
	geo, ball, ps, state := setup(t)
	ps.SpawnBurst(physics.Vec2{}, 1, object.SpeedRange{Min: 2, Max: 2}, nil)
	snap := Compose(geo, ball, ps, state)
	before := snap.Particles[0]

	ps.Tick()
	ball.Position.X += 5

	if snap.Particles[0] != before || snap.Ball.Center != geo.Center() {
		t.Fatal("snapshot changed after the simulation advanced")
	}
}

func TestSnapshotJSON(t *testing.T) {
	geo, ball, ps, state := setup(t)
	for state.Running() {
		state.TickDown()
	}
	data, err := json.Marshal(Compose(geo, ball, ps, state))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"outcome":"draw"`, `"phase":"ended"`, `"side":"top"`, `"color":"white"`, `"outcomeText":"Draw"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected %s in %s", want, data)
		}
	}
}
