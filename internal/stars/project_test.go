package stars

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testViewer() Viewer {
	return Viewer{
		Eye:    mgl32.Vec3{0, 0, 5},
		Target: mgl32.Vec3{},
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   75,
		Near:   0.1,
		Far:    1000,
	}
}

func TestOccluded(t *testing.T) {
	eye := mgl32.Vec3{0, 0, 5}
	tests := []struct {
		name string
		p    mgl32.Vec3
		want bool
	}{
		{"directly behind planet", mgl32.Vec3{0, 0, -100}, true},
		{"off to the side", mgl32.Vec3{50, 0, -100}, false},
		{"behind the camera", mgl32.Vec3{0, 0, 100}, false},
		{"in front of planet", mgl32.Vec3{0, 0, 4}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Occluded(eye, tt.p, 2); got != tt.want {
				t.Errorf("Occluded(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestProject(t *testing.T) {
	f := Field{Points: []mgl32.Vec3{
		{0, 0, -500},   // centre of view, hidden by the planet
		{100, 0, -500}, // visible, right of centre
		{0, 0, 500},    // behind camera
		{0, 0, -2000},  // beyond far plane
		{5000, 0, -10}, // outside the frustum
	}}

	got := f.Project(testViewer(), 800, 600, 2, nil)
	if len(got) != 1 {
		t.Fatalf("projected %d points, want 1: %v", len(got), got)
	}
	if got[0].X() <= 400 || got[0].X() >= 800 {
		t.Errorf("x = %v, want right half of the screen", got[0].X())
	}
	if d := got[0].Y() - 300; d > 0.5 || d < -0.5 {
		t.Errorf("y = %v, want vertical centre", got[0].Y())
	}

	unoccluded := f.Project(testViewer(), 800, 600, 0, nil)
	if len(unoccluded) != 2 {
		t.Errorf("without occluder got %d points, want 2", len(unoccluded))
	}

	if n := len(f.Project(testViewer(), 0, 600, 2, nil)); n != 0 {
		t.Errorf("zero-width viewport projected %d points", n)
	}
}
