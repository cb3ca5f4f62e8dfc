// Package config centralizes all tunable game parameters.
package config

import "time"

// Field - logical units, portrait like a phone held upright.
// Actual rendering scales to fit the terminal or browser canvas.
const (
	FieldWidth  = 360
	FieldHeight = 640
	TopMargin   = 200.0 // Reserved for the HUD; the ball never goes above it
)

// Geometry ratios
const (
	BallRadiusDivisor    = 17.0 // Collision radius = width / 17
	VisibleRadiusDivisor = 30.0 // Drawn radius = width / 30
	GoalWidthFraction    = 0.4
	GoalHeightFraction   = 0.05
)

// Ball
const (
	TiltCoupling = 0.1  // Velocity gained per tick per unit of tilt
	WallDamping  = 0.8  // Fraction of speed kept after a wall bounce
	MaxBallSpeed = 30.0 // Units per tick
)

// Match
const (
	RoundSeconds = 60
)

// Confetti
const (
	BurstSize        = 50
	BurstSpeedMin    = 2.0
	BurstSpeedMax    = 6.0
	ConfettiGravity  = 0.2 // Added to vertical velocity every tick
	MaxParticles     = 1000
	ConfettiDotScale = 0.015 // Drawn confetti radius as a fraction of field width
)

// Keyboard input
const (
	KeyTiltStrength = 3.0 // Virtual tilt while an arrow key is held
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 5.0              // How long clients show the shutdown notice
	ShutdownGracePeriod    = 15 * time.Second // How long the server waits for sessions to leave
)

// Terminal rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 120 // Max render columns; larger terminals get a centered field
	MaxTermHeight         = 60  // Max render rows
)

// Simulation tick rate
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
)

// Browser frontend
const (
	WebSnapshotRate    = 30
	WebSnapshotTime    = time.Second / WebSnapshotRate
	WebPingInterval    = 30 * time.Second
	WebWriteTimeout    = 10 * time.Second
	WebReadLimit       = 4096 // Bytes per client message
	WebMaxFieldSide    = 4096 // Largest field side accepted from a resize message
	ServerEventBuffer  = 32
	ServerCommandQueue = 8
)
