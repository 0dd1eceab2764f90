package debug

import (
	"fmt"
	"math"

	"planetview/internal/frame"
)

func (d *DebugOverlay) drawScene(startY int) {
	ui := NewUIContext(10, startY, d.lineHeight, d.fontHeight, d.font, d.mouseX, d.mouseY, d.clicked)

	ui.Header("Frame:")
	for _, line := range frameLines(d.snapshot) {
		ui.IndentLabel(line, 10)
	}
	ui.Separator()

	ui.Header("Rotation:")
	for _, line := range rotationLines(d.snapshot) {
		ui.IndentLabel(line, 10)
	}
	ui.Separator()

	ui.Header("Shells:")
	for _, s := range d.Shells {
		ui.IndentLabel(fmt.Sprintf("%s: r=%.2f res=%d", s.Kind, s.Radius, s.Resolution), 10)
	}
	if ui.Checkbox("Show shell bounds", d.ShowBounds) {
		d.ShowBounds = !d.ShowBounds
	}
}

func frameLines(s frame.Snapshot) []string {
	return []string{
		fmt.Sprintf("Frame: %d", s.Frame),
		fmt.Sprintf("Anim Time: %.2f", s.AnimTime),
		fmt.Sprintf("Delta: %.2f ms", s.DeltaMs),
		fmt.Sprintf("Camera: %.2f %.2f %.2f", s.Camera[0], s.Camera[1], s.Camera[2]),
		fmt.Sprintf("View Vector: %.2f %.2f %.2f", s.ViewVector[0], s.ViewVector[1], s.ViewVector[2]),
	}
}

func rotationLines(s frame.Snapshot) []string {
	return []string{
		fmt.Sprintf("Phase: %s", s.Phase),
		fmt.Sprintf("Velocity: %.4f rad/frame", s.AngularVelocity),
		fmt.Sprintf("Surface Yaw: %.1f deg", s.SurfaceYaw*180/math.Pi),
		fmt.Sprintf("Envelope Yaw: %.1f deg", s.EnvelopeYaw*180/math.Pi),
	}
}
