package engine3D

import (
	"github.com/go-gl/mathgl/mgl32"

	"planetview/internal/orbit"
	"planetview/internal/stars"
	"planetview/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	DefaultFovY = 75
	NearPlane   = 0.1
	FarPlane    = 1000
)

// OrbitCamera feeds mouse input into orbit.Controls. In wallpaper mode the
// window never has focus, so the pointer is read from the X11 root instead.
type OrbitCamera struct {
	Controls  *orbit.Controls
	FovY      float32
	Wallpaper bool

	dragging    bool
	lastPointer utils.PointerState
	havePointer bool
}

func NewOrbitCamera(controls *orbit.Controls, wallpaper bool) *OrbitCamera {
	return &OrbitCamera{
		Controls:  controls,
		FovY:      DefaultFovY,
		Wallpaper: wallpaper,
	}
}

func (c *OrbitCamera) Update() {
	if c.Wallpaper {
		c.updateFromRoot()
	} else {
		c.updateFromWindow()
	}
	c.Controls.Update()
}

func (c *OrbitCamera) updateFromWindow() {
	c.dragging = rl.IsMouseButtonDown(rl.MouseLeftButton)
	if c.dragging {
		delta := rl.GetMouseDelta()
		c.Controls.Rotate(float64(delta.X), float64(delta.Y), float64(rl.GetScreenHeight()))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.Controls.Zoom(float64(wheel))
	}
}

func (c *OrbitCamera) updateFromRoot() {
	pointer, err := utils.GetGlobalPointer()
	if err != nil {
		utils.Warn("Global pointer unavailable, using window input: %v", err)
		c.Wallpaper = false
		c.updateFromWindow()
		return
	}

	c.dragging = pointer.PrimaryDown
	if c.dragging && c.havePointer {
		dx := float64(pointer.X - c.lastPointer.X)
		dy := float64(pointer.Y - c.lastPointer.Y)
		c.Controls.Rotate(dx, dy, float64(rl.GetScreenHeight()))
	}
	c.lastPointer = pointer
	c.havePointer = true
}

// IsDragging reports whether the primary button is held this frame.
func (c *OrbitCamera) IsDragging() bool {
	return c.dragging
}

func (c *OrbitCamera) CameraPosition() mgl32.Vec3 {
	return c.Controls.Position()
}

// Camera3D is the raylib view of the current orbit.
func (c *OrbitCamera) Camera3D() rl.Camera3D {
	pos := c.Controls.Position()
	target := c.Controls.Target
	return rl.Camera3D{
		Position:   rl.NewVector3(pos[0], pos[1], pos[2]),
		Target:     rl.NewVector3(target[0], target[1], target[2]),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       c.FovY,
		Projection: rl.CameraPerspective,
	}
}

func (c *OrbitCamera) Viewer() stars.Viewer {
	return stars.Viewer{
		Eye:    c.Controls.Position(),
		Target: c.Controls.Target,
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   c.FovY,
		Near:   NearPlane,
		Far:    FarPlane,
	}
}
