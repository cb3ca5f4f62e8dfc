package input

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Tilt is a 2-axis device-orientation sample, in accelerometer units.
type Tilt struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TiltCell is a single-slot, latest-value handoff between a sensor goroutine
// and the simulation loop. Writers never block; readers see the most recent
// sample and older ones are dropped.
type TiltCell struct {
	v atomic.Pointer[Tilt]
}

// Store publishes a new sample, replacing any unread one.
func (c *TiltCell) Store(t Tilt) {
	c.v.Store(&t)
}

// Load returns the most recent sample, or a zero tilt if none was stored.
func (c *TiltCell) Load() Tilt {
	if t := c.v.Load(); t != nil {
		return *t
	}
	return Tilt{}
}

// KeyTilt converts held arrow keys into a virtual tilt of the given strength.
// Holding two perpendicular keys produces a diagonal tilt.
func KeyTilt(in Input, strength float64) Tilt {
	var t Tilt
	if in.Left {
		t.X -= strength
	}
	if in.Right {
		t.X += strength
	}
	if in.Up {
		t.Y -= strength
	}
	if in.Down {
		t.Y += strength
	}
	return t
}

// AxisMap converts a raw sensor sample into field axes (x to the right,
// y downwards). Which map applies depends on how the host device is held.
type AxisMap func(Tilt) Tilt

// AxesIdentity passes samples through unchanged (keyboard input).
func AxesIdentity(t Tilt) Tilt { return t }

// AxesPortrait maps an Android-style accelerometer held upright: the x axis
// reads positive when the device is tilted to the left.
func AxesPortrait(t Tilt) Tilt { return Tilt{X: -t.X, Y: t.Y} }

// AxesLandscape maps a device rotated a quarter turn counter-clockwise.
func AxesLandscape(t Tilt) Tilt { return Tilt{X: t.Y, Y: t.X} }

// AxesLandscapeReversed maps a device rotated a quarter turn clockwise.
func AxesLandscapeReversed(t Tilt) Tilt { return Tilt{X: -t.Y, Y: -t.X} }

// ParseAxes resolves an axis map by name.
func ParseAxes(name string) (AxisMap, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "identity":
		return AxesIdentity, nil
	case "portrait":
		return AxesPortrait, nil
	case "landscape":
		return AxesLandscape, nil
	case "landscape-reversed":
		return AxesLandscapeReversed, nil
	}
	return nil, fmt.Errorf("unknown axis mapping %q", name)
}
