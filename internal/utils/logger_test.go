package utils

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	prevLevel, prevDebug := CurrentLevel, DebugMode
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		CurrentLevel, DebugMode = prevLevel, prevDebug
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{" warn ", LevelWarn, false},
		{"", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelWarn, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevelFilter(t *testing.T) {
	buf := captureLog(t)
	SetLevel(LevelWarn)

	Info("hidden %d", 1)
	Warn("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "shown 2") {
		t.Errorf("missing warn message: %q", out)
	}
}

func TestDebugModeForcesDebugLevel(t *testing.T) {
	captureLog(t)
	DebugMode = true
	SetLevel(LevelError)
	if CurrentLevel != LevelDebug {
		t.Errorf("CurrentLevel = %v, want DEBUG", CurrentLevel)
	}
}

func TestRaylibLogCallbackEscapesPercent(t *testing.T) {
	buf := captureLog(t)
	SetLevel(LevelWarn)

	RaylibLogCallback(4, "SHADER: 100% broken")

	if !strings.Contains(buf.String(), "100% broken") {
		t.Errorf("raylib text mangled: %q", buf.String())
	}
}
