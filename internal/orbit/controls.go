package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultDamping     = 0.05
	DefaultRotateSpeed = 0.5
	DefaultZoomSpeed   = 1.0
	DefaultMinDistance = 3
	DefaultMaxDistance = 10

	polarEpsilon = 1e-6
)

// Controls is a damped orbit around Target. It is input agnostic: callers
// feed pointer deltas and wheel steps, then call Update once per frame.
// Theta is the azimuth around +Y measured from +Z, Phi the polar angle from +Y.
type Controls struct {
	Target mgl32.Vec3
	Radius float64
	Theta  float64
	Phi    float64

	Damping     float64
	RotateSpeed float64
	ZoomSpeed   float64
	MinDistance float64
	MaxDistance float64
	MinPolar    float64
	MaxPolar    float64

	deltaTheta float64
	deltaPhi   float64
	scale      float64
}

// New places the orbit so the camera starts at position looking at target.
func New(position, target mgl32.Vec3) *Controls {
	c := &Controls{
		Target:      target,
		Damping:     DefaultDamping,
		RotateSpeed: DefaultRotateSpeed,
		ZoomSpeed:   DefaultZoomSpeed,
		MinDistance: DefaultMinDistance,
		MaxDistance: DefaultMaxDistance,
		MinPolar:    -math.Pi,
		MaxPolar:    math.Pi,
		scale:       1,
	}

	offset := position.Sub(target)
	c.Radius = float64(offset.Len())
	if c.Radius > 0 {
		c.Theta = math.Atan2(float64(offset[0]), float64(offset[2]))
		c.Phi = math.Acos(mgl64Clamp(float64(offset[1])/c.Radius, -1, 1))
	}
	return c
}

// Rotate queues a drag of dx, dy pixels in a viewport viewportHeight pixels tall.
func (c *Controls) Rotate(dx, dy, viewportHeight float64) {
	if viewportHeight <= 0 {
		return
	}
	c.deltaTheta -= 2 * math.Pi * dx / viewportHeight * c.RotateSpeed
	c.deltaPhi -= 2 * math.Pi * dy / viewportHeight * c.RotateSpeed
}

// Zoom queues wheel steps; positive moves the camera closer.
func (c *Controls) Zoom(steps float64) {
	if steps == 0 {
		return
	}
	c.scale *= math.Pow(math.Pow(0.95, c.ZoomSpeed), steps)
}

// Update applies a damped share of the queued rotation and the pending zoom.
func (c *Controls) Update() {
	c.Theta += c.deltaTheta * c.Damping
	c.Phi += c.deltaPhi * c.Damping

	c.Phi = mgl64Clamp(c.Phi, c.MinPolar, c.MaxPolar)
	c.Phi = mgl64Clamp(c.Phi, polarEpsilon, math.Pi-polarEpsilon)

	c.Radius = mgl64Clamp(c.Radius*c.scale, c.MinDistance, c.MaxDistance)

	c.deltaTheta *= 1 - c.Damping
	c.deltaPhi *= 1 - c.Damping
	c.scale = 1
}

// Settled reports whether no queued rotation remains worth applying.
func (c *Controls) Settled() bool {
	return math.Abs(c.deltaTheta) < 1e-6 && math.Abs(c.deltaPhi) < 1e-6
}

func (c *Controls) Position() mgl32.Vec3 {
	sinPhi, cosPhi := math.Sincos(c.Phi)
	sinTheta, cosTheta := math.Sincos(c.Theta)
	offset := mgl32.Vec3{
		float32(c.Radius * sinPhi * sinTheta),
		float32(c.Radius * cosPhi),
		float32(c.Radius * sinPhi * cosTheta),
	}
	return c.Target.Add(offset)
}

func mgl64Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
