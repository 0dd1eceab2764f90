package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"planetview/internal/geometry"
	"planetview/internal/motion"
	"planetview/internal/shading"
	"planetview/internal/stars"
	"planetview/internal/utils"
)

const DefaultPath = "planetview.json"

type Settings struct {
	Window       WindowSettings    `json:"window"`
	Texture      string            `json:"texture"`
	ShaderDir    string            `json:"shaderDir"`
	AssetsPath   string            `json:"assetsPath"`
	RotationMode string            `json:"rotationMode"`
	Palette      PaletteSettings   `json:"palette"`
	Quality      float64           `json:"quality"`
	LightPower   float64           `json:"lightPower"`
	Stars        StarSettings      `json:"stars"`
	Telemetry    TelemetrySettings `json:"telemetry"`
	LogLevel     string            `json:"logLevel"`
}

type WindowSettings struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Title     string `json:"title"`
	Wallpaper bool   `json:"wallpaper"`
	TargetFPS int    `json:"targetFPS"` // 0 follows vsync
	MSAA      bool   `json:"msaa"`
}

type PaletteSettings struct {
	Name   string            `json:"name"`
	Colors map[string]string `json:"colors"` // "r g b" overrides keyed by colour name
}

type StarSettings struct {
	Count  int     `json:"count"`
	Extent float64 `json:"extent"`
	Seed   int64   `json:"seed"`
}

type TelemetrySettings struct {
	Addr string `json:"addr"` // empty disables the websocket feed
}

func Defaults() Settings {
	return Settings{
		Window: WindowSettings{
			Width:  1280,
			Height: 720,
			Title:  "planetview",
			MSAA:   true,
		},
		Texture:      "earth-texture.jpg",
		RotationMode: string(motion.ModeInertial),
		Palette:      PaletteSettings{Name: shading.DefaultPalette},
		Quality:      1,
		LightPower:   shading.DefaultLightPower,
		Stars: StarSettings{
			Count:  stars.DefaultCount,
			Extent: stars.DefaultExtent,
		},
		LogLevel: "warn",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Settings, error) {
	settings := Defaults()
	if path == "" {
		path = DefaultPath
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			utils.Info("No %s found, using defaults", path)
			return settings, nil
		}
		return settings, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&settings); err != nil {
		return settings, fmt.Errorf("error parsing %s: %w", path, err)
	}

	utils.Info("Loaded settings from %s: palette %s, rotation %s, quality %.2f",
		path, settings.Palette.Name, settings.RotationMode, settings.Quality)

	return settings, settings.Validate()
}

func (s Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", s.Window.Width, s.Window.Height)
	}
	if s.Window.TargetFPS < 0 {
		return fmt.Errorf("targetFPS %d must not be negative", s.Window.TargetFPS)
	}
	if _, err := motion.ParseMode(s.RotationMode); err != nil {
		return err
	}
	if _, err := s.ResolvePalette(); err != nil {
		return err
	}
	if s.Quality <= 0 || s.Quality > 1 {
		return fmt.Errorf("quality %.2f must be in (0, 1]", s.Quality)
	}
	if s.LightPower <= 0 {
		return fmt.Errorf("lightPower %.2f must be positive", s.LightPower)
	}
	if s.Stars.Count < 0 {
		return fmt.Errorf("stars.count %d must not be negative", s.Stars.Count)
	}
	if s.Stars.Extent <= 0 {
		return fmt.Errorf("stars.extent %.1f must be positive", s.Stars.Extent)
	}
	if _, err := utils.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	return geometry.Validate(s.Shells())
}

func (s Settings) ResolvePalette() (shading.Palette, error) {
	p, err := shading.PaletteByName(s.Palette.Name)
	if err != nil {
		return p, err
	}
	return p.WithOverrides(s.Palette.Colors)
}

func (s Settings) Mode() motion.Mode {
	m, _ := motion.ParseMode(s.RotationMode)
	return m
}

// Shells returns the default shells tessellated for the configured quality.
func (s Settings) Shells() []geometry.ShellSpec {
	return geometry.ScaleResolution(geometry.DefaultShells(), s.Quality)
}

func (s Settings) StarOptions() stars.Options {
	return stars.Options{
		Count:  s.Stars.Count,
		Extent: float32(s.Stars.Extent),
		Seed:   s.Stars.Seed,
	}
}
