package motion

import (
	"math"
	"math/rand"
	"testing"
)

const epsilon = 1e-12

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"inertial", ModeInertial, false},
		{"fixed", ModeFixed, false},
		{"", ModeInertial, false},
		{"spinny", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMode(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestClampDelta(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"normal", 16, 16},
		{"zero", 0, 0},
		{"negative", -5, 0},
		{"stall", 120000, MaxFrameDelta},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampDelta(tt.in, MaxFrameDelta); got != tt.want {
				t.Errorf("ClampDelta(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVelocityDraggingProperty(t *testing.T) {
	c := NewController(ModeInertial)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 1000; i++ {
		v := rng.Float64() * MaxVelocity
		dt := rng.Float64() * MaxFrameDelta
		got := c.Velocity(v, true, dt)
		want := math.Min(v+0.001*dt, 0.1)

		if math.Abs(got-want) > epsilon {
			t.Fatalf("Velocity(%v, drag, %v) = %v, want %v", v, dt, got, want)
		}
		if got < v {
			t.Fatalf("dragging decreased velocity: %v -> %v", v, got)
		}
	}
}

func TestVelocityIdleProperty(t *testing.T) {
	c := NewController(ModeInertial)
	rng := rand.New(rand.NewSource(4))

	for i := 0; i < 1000; i++ {
		v := rng.Float64() * MaxVelocity
		dt := rng.Float64() * MaxFrameDelta
		got := c.Velocity(v, false, dt)
		want := math.Max(0, v-0.0005*dt)

		if math.Abs(got-want) > epsilon {
			t.Fatalf("Velocity(%v, idle, %v) = %v, want %v", v, dt, got, want)
		}
		if got > v || got < 0 {
			t.Fatalf("idle velocity %v -> %v out of bounds", v, got)
		}
	}
}

func TestIdleAtRestStaysAtRest(t *testing.T) {
	c := NewController(ModeInertial)
	s := State{}
	for i := 0; i < 50; i++ {
		s = c.Advance(s, false, 16)
		if s.AngularVelocity != 0 || s.SurfaceYaw != 0 {
			t.Fatalf("frame %d: state drifted to %+v", i, s)
		}
	}
}

func TestDragSaturatesIn100ms(t *testing.T) {
	c := NewController(ModeInertial)
	s := c.Advance(State{}, true, 100)

	if math.Abs(s.AngularVelocity-0.1) > epsilon {
		t.Errorf("velocity = %v, want 0.1", s.AngularVelocity)
	}
	if s.Phase != Dragging {
		t.Errorf("phase = %v, want dragging", s.Phase)
	}
	if math.Abs(s.SurfaceYaw-0.1) > epsilon {
		t.Errorf("surface yaw = %v, want 0.1", s.SurfaceYaw)
	}
	if s.EnvelopeYaw != 0 {
		t.Errorf("inertial mode rotated the envelope: %v", s.EnvelopeYaw)
	}
}

func TestSpinDownTakes13Frames(t *testing.T) {
	c := NewController(ModeInertial)
	s := State{AngularVelocity: 0.1}

	stoppedAt := -1
	for frame := 1; frame <= 200; frame++ {
		prev := s.AngularVelocity
		s = c.Advance(s, false, 16)

		if s.AngularVelocity > prev {
			t.Fatalf("frame %d: velocity rose %v -> %v", frame, prev, s.AngularVelocity)
		}
		if s.AngularVelocity == 0 && stoppedAt < 0 {
			stoppedAt = frame
		}
		if stoppedAt > 0 && s.AngularVelocity != 0 {
			t.Fatalf("frame %d: velocity %v after reaching zero", frame, s.AngularVelocity)
		}
	}

	if stoppedAt != 13 {
		t.Errorf("velocity reached 0 after %d frames, want 13", stoppedAt)
	}
	if s.Phase != Idle {
		t.Errorf("phase = %v, want idle", s.Phase)
	}
}

func TestStallIsClamped(t *testing.T) {
	c := NewController(ModeInertial)
	s := c.Advance(State{AngularVelocity: 0.1}, false, 5*60*1000)

	want := 0.1 - 0.0005*MaxFrameDelta
	if math.Abs(s.AngularVelocity-want) > epsilon {
		t.Errorf("after stall velocity = %v, want %v", s.AngularVelocity, want)
	}
}

func TestFixedModeRotatesAllShells(t *testing.T) {
	c := NewController(ModeFixed)
	s := State{}
	for i := 0; i < 10; i++ {
		s = c.Advance(s, i%2 == 0, 16)
	}

	if math.Abs(s.SurfaceYaw-0.01) > 1e-9 || math.Abs(s.EnvelopeYaw-0.01) > 1e-9 {
		t.Errorf("yaws = %v / %v, want 0.01 each", s.SurfaceYaw, s.EnvelopeYaw)
	}
	if s.AngularVelocity != 0 {
		t.Errorf("fixed mode touched velocity: %v", s.AngularVelocity)
	}
}

func TestYawWraps(t *testing.T) {
	c := NewController(ModeInertial)
	s := State{AngularVelocity: 0.1, SurfaceYaw: 2*math.Pi - 0.05}
	s = c.Advance(s, true, 16)

	if s.SurfaceYaw < 0 || s.SurfaceYaw >= 2*math.Pi {
		t.Errorf("yaw %v not wrapped", s.SurfaceYaw)
	}
	if math.Abs(s.SurfaceYaw-0.05) > 1e-9 {
		t.Errorf("yaw = %v, want 0.05", s.SurfaceYaw)
	}
}
