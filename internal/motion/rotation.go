package motion

import (
	"fmt"
	"math"
)

type Mode string

const (
	ModeInertial Mode = "inertial"
	ModeFixed    Mode = "fixed"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeInertial, "":
		return ModeInertial, nil
	case ModeFixed:
		return ModeFixed, nil
	}
	return "", fmt.Errorf("unknown rotation mode %q (want %q or %q)", s, ModeInertial, ModeFixed)
}

const (
	MaxVelocity   = 0.1
	Acceleration  = 0.001
	Deceleration  = 0.0005
	FixedYawStep  = 0.001
	MaxFrameDelta = 100.0 // ms
)

type Phase int

const (
	Idle Phase = iota
	Dragging
)

func (p Phase) String() string {
	if p == Dragging {
		return "dragging"
	}
	return "idle"
}

// State is the rotation part of the frame state. Velocity is radians per
// frame, yaws are radians.
type State struct {
	AngularVelocity float64
	Phase           Phase
	SurfaceYaw      float64
	EnvelopeYaw     float64 // atmosphere and glow
}

type Controller struct {
	Mode         Mode
	MaxVelocity  float64
	Acceleration float64
	Deceleration float64
	FixedStep    float64
	MaxDelta     float64
}

func NewController(mode Mode) *Controller {
	return &Controller{
		Mode:         mode,
		MaxVelocity:  MaxVelocity,
		Acceleration: Acceleration,
		Deceleration: Deceleration,
		FixedStep:    FixedYawStep,
		MaxDelta:     MaxFrameDelta,
	}
}

// ClampDelta makes a measured frame delta safe to integrate: NaN, Inf and
// negative values become 0, long stalls are capped at max.
func ClampDelta(dtMs, max float64) float64 {
	if math.IsNaN(dtMs) || math.IsInf(dtMs, 0) || dtMs < 0 {
		return 0
	}
	if dtMs > max {
		return max
	}
	return dtMs
}

// Velocity integrates one frame of the spin-up / spin-down model.
func (c *Controller) Velocity(v float64, dragging bool, dtMs float64) float64 {
	dt := ClampDelta(dtMs, c.MaxDelta)
	if dragging {
		return math.Min(v+c.Acceleration*dt, c.MaxVelocity)
	}
	return math.Max(0, v-c.Deceleration*dt)
}

// Advance returns the state after one frame.
func (c *Controller) Advance(s State, dragging bool, dtMs float64) State {
	if dragging {
		s.Phase = Dragging
	} else {
		s.Phase = Idle
	}

	if c.Mode == ModeFixed {
		s.SurfaceYaw = wrap(s.SurfaceYaw + c.FixedStep)
		s.EnvelopeYaw = wrap(s.EnvelopeYaw + c.FixedStep)
		return s
	}

	s.AngularVelocity = c.Velocity(s.AngularVelocity, dragging, dtMs)
	if s.AngularVelocity > 0 {
		s.SurfaceYaw = wrap(s.SurfaceYaw + s.AngularVelocity)
	}
	return s
}

// wrap keeps yaw in [0, 2pi) so float precision holds over long sessions.
func wrap(yaw float64) float64 {
	yaw = math.Mod(yaw, 2*math.Pi)
	if yaw < 0 {
		yaw += 2 * math.Pi
	}
	return yaw
}
