package debug

import (
	"planetview/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func boundsColor(kind geometry.ShellKind) rl.Color {
	switch kind {
	case geometry.KindSurface:
		return rl.NewColor(255, 255, 0, 150)
	case geometry.KindAtmosphere:
		return rl.NewColor(0, 200, 255, 150)
	default:
		return rl.NewColor(255, 0, 255, 150)
	}
}

// drawShellBounds outlines every shell as a wire sphere at its radius.
func (d *DebugOverlay) drawShellBounds() {
	if d.CameraSource == nil {
		return
	}
	rl.BeginMode3D(d.CameraSource())
	for _, s := range d.Shells {
		rl.DrawSphereWires(rl.NewVector3(0, 0, 0), s.Radius, 16, 16, boundsColor(s.Kind))
	}
	rl.EndMode3D()
}
