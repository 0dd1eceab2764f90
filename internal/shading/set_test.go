package shading

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"planetview/internal/geometry"
)

func newDefaultSet(t *testing.T) *ProgramSet {
	t.Helper()
	set, err := NewProgramSet(Options{})
	if err != nil {
		t.Fatalf("NewProgramSet: %v", err)
	}
	return set
}

func TestNewProgramSetSchemas(t *testing.T) {
	set := newDefaultSet(t)

	tests := []struct {
		program *Program
		has     []string
		lacks   []string
	}{
		{set.Surface, []string{UniformTime, UniformTexture}, []string{UniformViewVector}},
		{set.Atmosphere, []string{UniformTime}, []string{UniformTexture, UniformViewVector}},
		{set.Glow, []string{UniformTime, UniformViewVector}, []string{UniformTexture}},
	}

	for _, tt := range tests {
		t.Run(tt.program.Name, func(t *testing.T) {
			for _, name := range tt.has {
				if !tt.program.Has(name) {
					t.Errorf("missing uniform %q", name)
				}
			}
			for _, name := range tt.lacks {
				if tt.program.Has(name) {
					t.Errorf("unexpected uniform %q", name)
				}
			}
		})
	}

	if len(set.Programs()) != 3 {
		t.Fatalf("Programs() len = %d, want 3", len(set.Programs()))
	}
	if set.Programs()[0] != set.Surface || set.Programs()[2] != set.Glow {
		t.Error("Programs() not in shell order")
	}
}

func TestProgramsAreNotShared(t *testing.T) {
	set := newDefaultSet(t)
	if err := set.Surface.SetFloat(UniformTime, 9); err != nil {
		t.Fatal(err)
	}
	if v, _ := set.Atmosphere.Float(UniformTime); v != 0 {
		t.Errorf("atmosphere time changed to %v through surface program", v)
	}
}

func TestSetTimeLockstep(t *testing.T) {
	set := newDefaultSet(t)

	for _, tv := range []float32{0.01, 0.02, 17.5} {
		if err := set.SetTime(tv); err != nil {
			t.Fatalf("SetTime: %v", err)
		}
		for _, p := range set.Programs() {
			got, ok := p.Float(UniformTime)
			if !ok || got != tv {
				t.Errorf("%s time = %v (ok=%v), want %v", p.Name, got, ok, tv)
			}
		}
	}
}

func TestSetViewVector(t *testing.T) {
	set := newDefaultSet(t)
	want := mgl32.Vec3{1, 2, 3}
	if err := set.SetViewVector(want); err != nil {
		t.Fatal(err)
	}
	if got, _ := set.Glow.Vec3(UniformViewVector); got != want {
		t.Errorf("viewVector = %v, want %v", got, want)
	}
}

func TestUniformErrors(t *testing.T) {
	set := newDefaultSet(t)

	if err := set.Atmosphere.SetVec3(UniformViewVector, mgl32.Vec3{}); err == nil {
		t.Error("setting undeclared uniform should fail")
	}
	if err := set.Glow.SetFloat(UniformViewVector, 1); err == nil {
		t.Error("setting vec3 uniform as float should fail")
	}
	if _, ok := set.Surface.Vec3(UniformTime); ok {
		t.Error("reading float uniform as vec3 should fail")
	}
}

func TestSourcesCarryDefines(t *testing.T) {
	set := newDefaultSet(t)

	for _, p := range set.Programs() {
		for _, src := range []string{p.VertexSource, p.FragmentSource} {
			if !strings.HasPrefix(src, "#version 330\n") {
				t.Errorf("%s: source does not start with version line", p.Name)
			}
			if strings.Count(src, "#version") != 1 {
				t.Errorf("%s: expected exactly one version line", p.Name)
			}
		}
		if strings.Contains(p.FragmentSource, "AURORA_CHUNK") {
			t.Errorf("%s: aurora placeholder not expanded", p.Name)
		}
		if !strings.Contains(p.FragmentSource, "auroraTerm(vPosition.y)") {
			t.Errorf("%s: fragment stage does not apply aurora", p.Name)
		}
	}

	if !strings.Contains(set.Surface.FragmentSource, "#define SHELL_RADIUS 2.000000") {
		t.Error("surface radius define missing")
	}
	if !strings.Contains(set.Glow.FragmentSource, "#define SHELL_RADIUS 2.200000") {
		t.Error("glow radius define missing")
	}
	if !strings.Contains(set.Atmosphere.FragmentSource, "#define ATMOSPHERE_COLOR vec3(0.200000, 0.800000, 0.400000)") {
		t.Error("atmosphere colour define missing")
	}
}

func TestPaletteChangesDefinesOnly(t *testing.T) {
	azure, err := PaletteByName("azure")
	if err != nil {
		t.Fatal(err)
	}
	set, err := NewProgramSet(Options{Palette: azure, LightPower: 0.9})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(set.Glow.FragmentSource, "#define GLOW_BASE "+glslVec3(azure.GlowBase)) {
		t.Error("azure glow base not injected")
	}
	if !strings.Contains(set.Surface.FragmentSource, "#define LIGHT_POWER 0.900000") {
		t.Error("light power not injected")
	}
}

func TestNewProgramSetRejectsBadShells(t *testing.T) {
	shells := geometry.DefaultShells()
	shells[1].Radius = 1.5

	if _, err := NewProgramSet(Options{Shells: shells}); err == nil {
		t.Error("expected error for non-increasing radii")
	}

	if _, err := NewProgramSet(Options{Shells: geometry.DefaultShells()[:2]}); err == nil {
		t.Error("expected error when glow shell is missing")
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	custom := "#version 100\nvoid main() { /* custom glow */ }\n"
	if err := os.WriteFile(filepath.Join(dir, "glow.fs"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	set := newDefaultSet(t)
	builtinSurface := set.Surface.FragmentSource

	if err := set.LoadOverrides(dir); err != nil {
		t.Fatalf("LoadOverrides: %v", err)
	}

	if !strings.Contains(set.Glow.FragmentSource, "custom glow") {
		t.Error("glow fragment not replaced")
	}
	if strings.Contains(set.Glow.FragmentSource, "#version 100") {
		t.Error("override version line should be replaced")
	}
	if set.Surface.FragmentSource != builtinSurface {
		t.Error("surface fragment changed without an override file")
	}

	if err := set.LoadOverrides(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing shader dir")
	}
}
