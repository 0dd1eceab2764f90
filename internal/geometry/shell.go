package geometry

import (
	"fmt"
)

type ShellKind int

const (
	KindSurface ShellKind = iota
	KindAtmosphere
	KindGlow
)

func (k ShellKind) String() string {
	switch k {
	case KindSurface:
		return "surface"
	case KindAtmosphere:
		return "atmosphere"
	case KindGlow:
		return "glow"
	}
	return "unknown"
}

// BlendMode is how a shell's fragments combine with what is already drawn.
type BlendMode int

const (
	BlendOpaque BlendMode = iota
	BlendAdditive
)

// CullMode names the faces that get rasterized.
type CullMode int

const (
	DrawFrontFaces CullMode = iota
	DrawBackFaces
)

type ShellSpec struct {
	Kind       ShellKind
	Radius     float32
	Resolution int
	Blend      BlendMode
	Cull       CullMode
}

// DefaultShells returns the surface, atmosphere and glow descriptors,
// innermost first.
func DefaultShells() []ShellSpec {
	return []ShellSpec{
		{Kind: KindSurface, Radius: 2.0, Resolution: 512, Blend: BlendOpaque, Cull: DrawFrontFaces},
		{Kind: KindAtmosphere, Radius: 2.1, Resolution: 256, Blend: BlendAdditive, Cull: DrawBackFaces},
		{Kind: KindGlow, Radius: 2.2, Resolution: 256, Blend: BlendAdditive, Cull: DrawBackFaces},
	}
}

// ScaleResolution lowers tessellation by factor (0,1]. Radii are untouched.
func ScaleResolution(shells []ShellSpec, factor float64) []ShellSpec {
	if factor <= 0 || factor > 1 {
		factor = 1
	}

	out := make([]ShellSpec, len(shells))
	for i, s := range shells {
		s.Resolution = int(float64(s.Resolution) * factor)
		if s.Resolution < MinResolution {
			s.Resolution = MinResolution
		}
		out[i] = s
	}
	return out
}

// Validate checks that shells are ordered innermost first with strictly
// increasing radii, since the envelope rendering relies on nesting.
func Validate(shells []ShellSpec) error {
	if len(shells) == 0 {
		return fmt.Errorf("no shells configured")
	}

	for i, s := range shells {
		if s.Radius <= 0 {
			return fmt.Errorf("%s shell: radius %.3f must be positive", s.Kind, s.Radius)
		}
		if s.Resolution < MinResolution {
			return fmt.Errorf("%s shell: resolution %d below minimum %d", s.Kind, s.Resolution, MinResolution)
		}
		if i > 0 && s.Radius <= shells[i-1].Radius {
			return fmt.Errorf("%s shell: radius %.3f not greater than %s radius %.3f",
				s.Kind, s.Radius, shells[i-1].Kind, shells[i-1].Radius)
		}
	}
	return nil
}

// Build tessellates every shell.
func Build(shells []ShellSpec) []Mesh {
	meshes := make([]Mesh, len(shells))
	for i, s := range shells {
		meshes[i] = CreateShell(s.Radius, s.Resolution)
	}
	return meshes
}
