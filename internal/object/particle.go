package object

import (
	"math"

	"github.com/tomz197/futbolito/internal/physics"
)

// Particle is a single piece of confetti. Particles are decorative: they never
// collide with the ball, the goals or the walls.
type Particle struct {
	Position physics.Vec2
	Velocity physics.Vec2
	Color    Color
}

// SpeedRange bounds the initial speed of burst particles.
type SpeedRange struct {
	Min float64
	Max float64
}

// ParticleSystem owns all live confetti.
//
// Retention is capped: once max particles are live, new ones overwrite the
// oldest slot in a ring. A non-positive max keeps every particle forever.
type ParticleSystem struct {
	max       int
	gravity   float64
	rng       Rand
	particles []Particle
	next      int // Ring overwrite index once full
	spawned   int
}

// NewParticleSystem creates an empty particle system.
func NewParticleSystem(max int, gravity float64, rng Rand) *ParticleSystem {
	ps := &ParticleSystem{
		max:     max,
		gravity: gravity,
		rng:     rng,
	}
	if max > 0 {
		ps.particles = make([]Particle, 0, max)
	}
	return ps
}

// SpawnBurst creates count particles at origin flying outwards in uniformly
// random directions with uniformly random speeds and palette colors.
func (ps *ParticleSystem) SpawnBurst(origin physics.Vec2, count int, speed SpeedRange, palette []Color) {
	for i := 0; i < count; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		spd := speed.Min + ps.rng.Float64()*(speed.Max-speed.Min)

		color := ColorWhite
		if len(palette) > 0 {
			color = palette[ps.rng.IntN(len(palette))]
		}

		ps.add(Particle{
			Position: origin,
			Velocity: physics.FromPolar(angle, spd),
			Color:    color,
		})
	}
}

func (ps *ParticleSystem) add(p Particle) {
	ps.spawned++
	if ps.max <= 0 || len(ps.particles) < ps.max {
		ps.particles = append(ps.particles, p)
		return
	}
	if ps.next >= ps.max {
		ps.next = 0
	}
	ps.particles[ps.next] = p
	ps.next++
}

// Tick moves every particle and applies gravity.
func (ps *ParticleSystem) Tick() {
	for i := range ps.particles {
		p := &ps.particles[i]
		p.Position = p.Position.Add(p.Velocity)
		p.Velocity.Y += ps.gravity
	}
}

// Clear removes all particles.
func (ps *ParticleSystem) Clear() {
	ps.particles = ps.particles[:0]
	ps.next = 0
}

// Len returns the number of live particles.
func (ps *ParticleSystem) Len() int {
	return len(ps.particles)
}

// Spawned returns how many particles were ever created, including overwritten ones.
func (ps *ParticleSystem) Spawned() int {
	return ps.spawned
}

// Particles returns a copy of the live particles.
func (ps *ParticleSystem) Particles() []Particle {
	out := make([]Particle, len(ps.particles))
	copy(out, ps.particles)
	return out
}

// Each calls fn for every live particle without copying.
func (ps *ParticleSystem) Each(fn func(Particle)) {
	for _, p := range ps.particles {
		fn(p)
	}
}
