package shading

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Palette holds every colour constant the three programs bake in.
type Palette struct {
	Name       string
	LandTint   mgl32.Vec3
	OceanTint  mgl32.Vec3
	Rim        mgl32.Vec3
	Aurora     mgl32.Vec3
	Atmosphere mgl32.Vec3
	GlowBase   mgl32.Vec3
	GlowPeak   mgl32.Vec3
}

var palettes = map[string]Palette{
	"verdant": {
		Name:       "verdant",
		LandTint:   mgl32.Vec3{0.8, 1.4, 0.9},
		OceanTint:  mgl32.Vec3{0.7, 0.8, 1.2},
		Rim:        mgl32.Vec3{0.0, 0.5, 0.3},
		Aurora:     mgl32.Vec3{0.0, 1.0, 0.5},
		Atmosphere: mgl32.Vec3{0.2, 0.8, 0.4},
		GlowBase:   mgl32.Vec3{0.0, 0.8, 0.4},
		GlowPeak:   mgl32.Vec3{0.0, 1.0, 0.5},
	},
	"azure": {
		Name:       "azure",
		LandTint:   mgl32.Vec3{0.9, 1.1, 0.9},
		OceanTint:  mgl32.Vec3{0.6, 0.8, 1.3},
		Rim:        mgl32.Vec3{0.1, 0.3, 0.6},
		Aurora:     mgl32.Vec3{0.2, 0.9, 0.7},
		Atmosphere: mgl32.Vec3{0.3, 0.6, 1.0},
		GlowBase:   mgl32.Vec3{0.1, 0.4, 0.9},
		GlowPeak:   mgl32.Vec3{0.3, 0.7, 1.0},
	},
}

const DefaultPalette = "verdant"

func PaletteByName(name string) (Palette, error) {
	if name == "" {
		name = DefaultPalette
	}
	p, ok := palettes[strings.ToLower(name)]
	if !ok {
		return Palette{}, fmt.Errorf("unknown palette %q (have %s)", name, strings.Join(PaletteNames(), ", "))
	}
	return p, nil
}

func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseColor reads an "r g b" triple of floats.
func ParseColor(colorStr string) (mgl32.Vec3, error) {
	parts := strings.Fields(colorStr)
	if len(parts) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("colour %q: want 3 components, got %d", colorStr, len(parts))
	}

	var c mgl32.Vec3
	for i, part := range parts {
		f, err := strconv.ParseFloat(part, 32)
		if err != nil {
			return mgl32.Vec3{}, fmt.Errorf("colour %q: %w", colorStr, err)
		}
		c[i] = float32(f)
	}
	return c, nil
}

// WithOverrides replaces named colours ("land", "ocean", "rim", "aurora",
// "atmosphere", "glowBase", "glowPeak") with parsed "r g b" values.
func (p Palette) WithOverrides(overrides map[string]string) (Palette, error) {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		c, err := ParseColor(overrides[key])
		if err != nil {
			return p, err
		}

		switch key {
		case "land":
			p.LandTint = c
		case "ocean":
			p.OceanTint = c
		case "rim":
			p.Rim = c
		case "aurora":
			p.Aurora = c
		case "atmosphere":
			p.Atmosphere = c
		case "glowBase":
			p.GlowBase = c
		case "glowPeak":
			p.GlowPeak = c
		default:
			return p, fmt.Errorf("unknown palette colour %q", key)
		}
	}
	return p, nil
}
