package shading

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPaletteByName(t *testing.T) {
	p, err := PaletteByName("")
	if err != nil || p.Name != DefaultPalette {
		t.Fatalf("PaletteByName(\"\") = %v, %v", p.Name, err)
	}
	if p.Atmosphere != (mgl32.Vec3{0.2, 0.8, 0.4}) {
		t.Errorf("verdant atmosphere = %v", p.Atmosphere)
	}

	if _, err := PaletteByName("AZURE"); err != nil {
		t.Errorf("lookup should be case insensitive: %v", err)
	}
	if _, err := PaletteByName("magenta"); err == nil {
		t.Error("expected error for unknown palette")
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("0.1 0.25  1")
	if err != nil {
		t.Fatal(err)
	}
	if c != (mgl32.Vec3{0.1, 0.25, 1}) {
		t.Errorf("ParseColor = %v", c)
	}

	for _, bad := range []string{"", "1 2", "a b c", "1 2 3 4"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) should fail", bad)
		}
	}
}

func TestWithOverrides(t *testing.T) {
	base, _ := PaletteByName("verdant")

	p, err := base.WithOverrides(map[string]string{"glowPeak": "1 0 0", "rim": "0 0 1"})
	if err != nil {
		t.Fatal(err)
	}
	if p.GlowPeak != (mgl32.Vec3{1, 0, 0}) || p.Rim != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("overrides not applied: %+v", p)
	}
	if p.Atmosphere != base.Atmosphere {
		t.Error("untouched colour changed")
	}

	if _, err := base.WithOverrides(map[string]string{"sky": "1 1 1"}); err == nil {
		t.Error("expected error for unknown key")
	}
}
