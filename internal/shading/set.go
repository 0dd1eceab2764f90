package shading

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"planetview/internal/geometry"
	"planetview/internal/utils"
)

const (
	UniformTime        = "time"
	UniformTexture     = "earthTexture"
	UniformViewVector  = "viewVector"
	DefaultLightPower  = 1.1
	SurfaceTextureUnit = 0
)

type Options struct {
	Palette    Palette
	LightPower float32
	Shells     []geometry.ShellSpec
}

// ProgramSet owns one Program per shell, in shell order.
type ProgramSet struct {
	Surface    *Program
	Atmosphere *Program
	Glow       *Program

	programs []*Program
}

func NewProgramSet(opts Options) (*ProgramSet, error) {
	if opts.LightPower <= 0 {
		opts.LightPower = DefaultLightPower
	}
	if opts.Palette.Name == "" {
		p, err := PaletteByName(DefaultPalette)
		if err != nil {
			return nil, err
		}
		opts.Palette = p
	}
	if opts.Shells == nil {
		opts.Shells = geometry.DefaultShells()
	}
	if err := geometry.Validate(opts.Shells); err != nil {
		return nil, fmt.Errorf("program set: %w", err)
	}

	set := &ProgramSet{}
	for _, shell := range opts.Shells {
		defines := paletteDefines(opts.Palette, opts.LightPower, shell.Radius)

		var p *Program
		switch shell.Kind {
		case geometry.KindSurface:
			p = newProgram(shell, surfaceVertex, surfaceFragment, defines)
			p.Declare(UniformTime, UniformFloat, 0)
			p.Declare(UniformTexture, UniformSampler2D, SurfaceTextureUnit)
			set.Surface = p
		case geometry.KindAtmosphere:
			p = newProgram(shell, atmosphereVertex, atmosphereFragment, defines)
			p.Declare(UniformTime, UniformFloat, 0)
			set.Atmosphere = p
		case geometry.KindGlow:
			p = newProgram(shell, glowVertex, glowFragment, defines)
			p.Declare(UniformTime, UniformFloat, 0)
			p.Declare(UniformViewVector, UniformVec3, 0, 0, 5)
			set.Glow = p
		default:
			return nil, fmt.Errorf("program set: unsupported shell kind %d", shell.Kind)
		}
		set.programs = append(set.programs, p)
	}

	if set.Surface == nil || set.Atmosphere == nil || set.Glow == nil {
		return nil, errors.New("program set: surface, atmosphere and glow shells are all required")
	}

	return set, nil
}

func paletteDefines(p Palette, lightPower, radius float32) []define {
	return []define{
		{"SHELL_RADIUS", glslFloat(radius)},
		{"LAND_THRESHOLD", glslFloat(LandThreshold)},
		{"LIGHT_POWER", glslFloat(lightPower)},
		{"LAND_TINT", glslVec3(p.LandTint)},
		{"OCEAN_TINT", glslVec3(p.OceanTint)},
		{"RIM_COLOR", glslVec3(p.Rim)},
		{"AURORA_COLOR", glslVec3(p.Aurora)},
		{"ATMOSPHERE_COLOR", glslVec3(p.Atmosphere)},
		{"GLOW_BASE", glslVec3(p.GlowBase)},
		{"GLOW_PEAK", glslVec3(p.GlowPeak)},
	}
}

// Programs returns the programs in shell order, innermost first.
func (s *ProgramSet) Programs() []*Program {
	return s.programs
}

// SetTime writes t into every program's time uniform.
func (s *ProgramSet) SetTime(t float32) error {
	for _, p := range s.programs {
		if err := p.SetFloat(UniformTime, t); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProgramSet) SetViewVector(v mgl32.Vec3) error {
	return s.Glow.SetVec3(UniformViewVector, v)
}

// LoadOverrides replaces built-in sources with <name>.vs / <name>.fs files
// from dir. Files that are missing keep the built-in stage.
func (s *ProgramSet) LoadOverrides(dir string) error {
	if dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("shader dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("shader dir %s is not a directory", dir)
	}

	for _, p := range s.programs {
		vs, err := readStage(filepath.Join(dir, p.Name+".vs"))
		if err != nil {
			return err
		}
		fsrc, err := readStage(filepath.Join(dir, p.Name+".fs"))
		if err != nil {
			return err
		}

		if vs != "" {
			p.vertexBody = vs
			utils.Info("Shader: %s vertex stage overridden from %s", p.Name, dir)
		} else {
			utils.Warn("Shader: %s.vs not found in %s, using built-in", p.Name, dir)
		}
		if fsrc != "" {
			p.fragmentBody = fsrc
			utils.Info("Shader: %s fragment stage overridden from %s", p.Name, dir)
		} else {
			utils.Warn("Shader: %s.fs not found in %s, using built-in", p.Name, dir)
		}
		p.compose()
	}
	return nil
}

func readStage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
