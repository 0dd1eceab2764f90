package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"planetview/internal/config"
)

func parseFlags(t *testing.T, args ...string) (*pflag.FlagSet, *options) {
	t.Helper()
	o := &options{}
	fs := pflag.NewFlagSet("planetview", pflag.ContinueOnError)
	bindFlags(fs, o)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return fs, o
}

func TestApplyOnlyChangedFlags(t *testing.T) {
	fs, o := parseFlags(t, "--palette", "azure", "-q", "0.5", "--wallpaper")

	s := config.Defaults()
	s.Texture = "from-file.png"
	s.LightPower = 2
	o.apply(fs, &s)

	if s.Palette.Name != "azure" {
		t.Errorf("palette = %q, want azure", s.Palette.Name)
	}
	if s.Quality != 0.5 {
		t.Errorf("quality = %v, want 0.5", s.Quality)
	}
	if !s.Window.Wallpaper {
		t.Error("wallpaper flag not applied")
	}
	if s.Texture != "from-file.png" {
		t.Errorf("texture = %q, unset flag must keep the file value", s.Texture)
	}
	if s.LightPower != 2 {
		t.Errorf("lightPower = %v, unset flag must keep the file value", s.LightPower)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestApplyInvalidOverrideFailsValidation(t *testing.T) {
	fs, o := parseFlags(t, "--rotation", "sideways")

	s := config.Defaults()
	o.apply(fs, &s)
	if err := s.Validate(); err == nil {
		t.Error("expected an error for an unknown rotation mode")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	_, o := parseFlags(t)
	if o.configPath != config.DefaultPath {
		t.Errorf("config path = %q, want %q", o.configPath, config.DefaultPath)
	}
}

func TestRunPackSingleFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "earth.png")
	dst := filepath.Join(dir, "earth.ptex")
	writePNG(t, src, 4, 4)

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	if err := runPack(cmd, []string{src, dst}); err != nil {
		t.Fatalf("runPack: %v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("output not written: %v", err)
	}
	if !strings.Contains(out.String(), "earth.ptex") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunPackMissingSource(t *testing.T) {
	if err := runPack(&cobra.Command{}, []string{filepath.Join(t.TempDir(), "nope"), "out"}); err == nil {
		t.Error("expected an error for a missing source")
	}
}
