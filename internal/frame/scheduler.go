package frame

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"planetview/internal/geometry"
	"planetview/internal/motion"
	"planetview/internal/shading"
	"planetview/internal/utils"
)

// DefaultTimeStep is the animation accumulator increment per iteration. It is
// not scaled by the measured delta.
const DefaultTimeStep = 0.01

// Input is the orbit/drag collaborator. Update runs once per iteration before
// the camera position is read.
type Input interface {
	Update()
	IsDragging() bool
	CameraPosition() mgl32.Vec3
}

// Backend owns the window and the GPU-side scene.
type Backend interface {
	ShouldClose() bool
	BeginFrame()
	ApplyYaw(shell geometry.ShellKind, yaw float32)
	Render(programs *shading.ProgramSet)
	EndFrame()
}

type Observer interface {
	Observe(Snapshot)
}

// State is everything that carries over between iterations.
type State struct {
	AnimTime      float64
	LastTimestamp time.Time
	Started       bool
	Rotation      motion.State
	Frames        uint64
}

// Snapshot is a read-only copy of one finished iteration.
type Snapshot struct {
	Frame           uint64     `json:"frame"`
	AnimTime        float64    `json:"animTime"`
	DeltaMs         float64    `json:"deltaMs"`
	AngularVelocity float64    `json:"angularVelocity"`
	SurfaceYaw      float64    `json:"surfaceYaw"`
	EnvelopeYaw     float64    `json:"envelopeYaw"`
	Phase           string     `json:"phase"`
	Camera          [3]float32 `json:"camera"`
	ViewVector      [3]float32 `json:"viewVector"`
}

type Scheduler struct {
	State    State
	Programs *shading.ProgramSet
	Rotation *motion.Controller
	Input    Input
	Backend  Backend
	Observer Observer

	TimeStep float64
	// GlowOrigin is the glow shell's world position.
	GlowOrigin mgl32.Vec3
}

func NewScheduler(programs *shading.ProgramSet, rotation *motion.Controller, input Input, backend Backend) (*Scheduler, error) {
	if programs == nil || rotation == nil || input == nil || backend == nil {
		return nil, fmt.Errorf("scheduler: programs, rotation, input and backend are required")
	}
	return &Scheduler{
		Programs: programs,
		Rotation: rotation,
		Input:    input,
		Backend:  backend,
		TimeStep: DefaultTimeStep,
	}, nil
}

// Step runs one iteration at wall-clock time now. The order is fixed:
// measure delta, advance time, push time, rotate, push view vector, render.
func (s *Scheduler) Step(now time.Time) Snapshot {
	s.Backend.BeginFrame()

	// 1. delta since the previous iteration; 0 on the first
	var deltaMs float64
	if s.State.Started {
		deltaMs = float64(now.Sub(s.State.LastTimestamp)) / float64(time.Millisecond)
	}
	s.State.LastTimestamp = now
	s.State.Started = true

	// 2. fixed increment
	s.State.AnimTime += s.TimeStep

	// 3. one value for every program
	if err := s.Programs.SetTime(float32(s.State.AnimTime)); err != nil {
		utils.Warn("Frame %d: %v", s.State.Frames, err)
	}

	// 4. input, then rotation
	s.Input.Update()
	s.State.Rotation = s.Rotation.Advance(s.State.Rotation, s.Input.IsDragging(), deltaMs)
	s.Backend.ApplyYaw(geometry.KindSurface, float32(s.State.Rotation.SurfaceYaw))
	s.Backend.ApplyYaw(geometry.KindAtmosphere, float32(s.State.Rotation.EnvelopeYaw))
	s.Backend.ApplyYaw(geometry.KindGlow, float32(s.State.Rotation.EnvelopeYaw))

	// 5. glow view vector
	camera := s.Input.CameraPosition()
	view := camera.Sub(s.GlowOrigin)
	if err := s.Programs.SetViewVector(view); err != nil {
		utils.Warn("Frame %d: %v", s.State.Frames, err)
	}

	// 6. render
	s.Backend.Render(s.Programs)
	s.Backend.EndFrame()

	s.State.Frames++

	snap := Snapshot{
		Frame:           s.State.Frames,
		AnimTime:        s.State.AnimTime,
		DeltaMs:         motion.ClampDelta(deltaMs, s.Rotation.MaxDelta),
		AngularVelocity: s.State.Rotation.AngularVelocity,
		SurfaceYaw:      s.State.Rotation.SurfaceYaw,
		EnvelopeYaw:     s.State.Rotation.EnvelopeYaw,
		Phase:           s.State.Rotation.Phase.String(),
		Camera:          [3]float32(camera),
		ViewVector:      [3]float32(view),
	}
	if s.Observer != nil {
		s.Observer.Observe(snap)
	}
	return snap
}

// Run steps until the backend asks to close or ctx is cancelled. clock
// defaults to time.Now.
func (s *Scheduler) Run(ctx context.Context, clock func() time.Time) error {
	if clock == nil {
		clock = time.Now
	}

	utils.Info("Frame loop started (rotation mode %s)", s.Rotation.Mode)
	for !s.Backend.ShouldClose() {
		if err := ctx.Err(); err != nil {
			utils.Info("Frame loop stopped after %d frames: %v", s.State.Frames, err)
			return err
		}
		s.Step(clock())
	}

	utils.Info("Frame loop finished after %d frames", s.State.Frames)
	return nil
}

// Observers fans one snapshot out to several observers.
type Observers []Observer

func (o Observers) Observe(snap Snapshot) {
	for _, obs := range o {
		if obs != nil {
			obs.Observe(snap)
		}
	}
}
