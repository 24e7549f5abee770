package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Info("habit toggled", "day", "2025-11-14", "habit", 2)
	Debug("not written at info level")

	data, err := os.ReadFile(LogFile(configDir))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "habit toggled") {
		t.Errorf("log file missing info line:\n%s", out)
	}
	if strings.Contains(out, "not written") {
		t.Errorf("debug line written at info level:\n%s", out)
	}
}

func TestInitDebugMirrorsToStderr(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")
	var stderr bytes.Buffer

	if err := Init(Config{Debug: true, ConfigDir: configDir, Stderr: &stderr}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	Debug("frame scheduled", "progress", 0.5)
	if !strings.Contains(stderr.String(), "frame scheduled") {
		t.Errorf("debug output not mirrored, got %q", stderr.String())
	}
}

func TestWith(t *testing.T) {
	Logger = nil
	With("component", "server").Info("dropped")

	configDir := filepath.Join(t.TempDir(), "config")
	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	With("component", "server").Info("listening")

	data, err := os.ReadFile(LogFile(configDir))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "component=server") {
		t.Errorf("sub-logger fields missing:\n%s", data)
	}
}

func TestLogFile(t *testing.T) {
	got := LogFile("/tmp/skate")
	want := filepath.Join("/tmp/skate", "logs", "skateday.log")
	if got != want {
		t.Errorf("LogFile() = %q, want %q", got, want)
	}
}
