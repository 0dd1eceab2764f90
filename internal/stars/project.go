package stars

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Viewer is a perspective camera. FovY is in degrees.
type Viewer struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	FovY   float32
	Near   float32
	Far    float32
}

func (v Viewer) ViewProjection(aspect float32) mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(v.FovY), aspect, v.Near, v.Far)
	view := mgl32.LookAtV(v.Eye, v.Target, v.Up)
	return proj.Mul4(view)
}

// Occluded reports whether the segment from eye to p passes through the
// sphere of the given radius at the origin.
func Occluded(eye, p mgl32.Vec3, radius float32) bool {
	d := p.Sub(eye)
	dd := d.Dot(d)
	if dd == 0 {
		return false
	}
	t := -eye.Dot(d) / dd
	if t <= 0 || t >= 1 {
		return false
	}
	closest := eye.Add(d.Mul(t))
	return closest.Dot(closest) < radius*radius
}

// Project appends the screen positions of every point that lies inside the
// view frustum and is not hidden behind the occluder sphere.
func (f Field) Project(v Viewer, width, height int, occluderRadius float32, dst []mgl32.Vec2) []mgl32.Vec2 {
	if width <= 0 || height <= 0 {
		return dst
	}
	vp := v.ViewProjection(float32(width) / float32(height))
	w, h := float32(width), float32(height)

	for _, p := range f.Points {
		clip := vp.Mul4x1(p.Vec4(1))
		cw := clip.W()
		if cw <= 0 {
			continue
		}
		x, y, z := clip.X()/cw, clip.Y()/cw, clip.Z()/cw
		if x < -1 || x > 1 || y < -1 || y > 1 || z < -1 || z > 1 {
			continue
		}
		if occluderRadius > 0 && Occluded(v.Eye, p, occluderRadius) {
			continue
		}
		dst = append(dst, mgl32.Vec2{(x + 1) * 0.5 * w, (1 - y) * 0.5 * h})
	}
	return dst
}
