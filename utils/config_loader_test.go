package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadPilotConfigKeepsDefaults(t *testing.T) {
	p := writeFile(t, "pilot.yaml", `
simulator:
  vehicle: Follower
keys:
  max_speed_xy: 6
`)
	cfg, err := LoadPilotConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Simulator.Vehicle != "Follower" {
		t.Errorf("vehicle = %q", cfg.Simulator.Vehicle)
	}
	if cfg.Simulator.Address != "127.0.0.1:41451" {
		t.Errorf("address default lost: %q", cfg.Simulator.Address)
	}
	if cfg.Keys.MaxSpeedXY != 6 || cfg.Keys.AccelXY != 3.0 {
		t.Errorf("keys = %+v", cfg.Keys)
	}
	if cfg.Control.Period() != 50*time.Millisecond {
		t.Errorf("period = %v", cfg.Control.Period())
	}
	if !cfg.Control.TakeoffOnStart || !cfg.Control.LandOnExit {
		t.Errorf("lifecycle defaults lost: %+v", cfg.Control)
	}
}

func TestLoadPilotConfigRejectsBadMode(t *testing.T) {
	p := writeFile(t, "pilot.yaml", "keys:\n  mode: turbo\n")
	_, err := LoadPilotConfig(p)
	if !errors.Is(err, errInvalidConfig) {
		t.Errorf("err = %v, want invalid config", err)
	}
}

func TestLoadPilotConfigMissionWaypoints(t *testing.T) {
	p := writeFile(t, "pilot.yaml", `
mission:
  enabled: true
  shape: waypoints
  waypoints:
    - [0, 0, -3]
    - [5, 0, -3]
`)
	cfg, err := LoadPilotConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Mission.Waypoints) != 2 || cfg.Mission.Waypoints[1][0] != 5 {
		t.Errorf("waypoints = %v", cfg.Mission.Waypoints)
	}
}

func TestLoadRecorderConfig(t *testing.T) {
	p := writeFile(t, "recorder.yaml", `
sampling:
  period_ms: 100
  runtime_limit_s: 12.5
gif:
  enabled: false
`)
	cfg, err := LoadRecorderConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sampling.Period() != 100*time.Millisecond {
		t.Errorf("period = %v", cfg.Sampling.Period())
	}
	if cfg.Sampling.RuntimeLimit() != 12500*time.Millisecond {
		t.Errorf("runtime limit = %v", cfg.Sampling.RuntimeLimit())
	}
	if cfg.GIF.Enabled {
		t.Errorf("gif should be disabled")
	}
	if cfg.GIF.Speed != 3 || cfg.Plot.Margin != 1.5 {
		t.Errorf("defaults lost: gif=%+v plot=%+v", cfg.GIF, cfg.Plot)
	}
}

func TestLoadRecorderConfigMissingFile(t *testing.T) {
	if _, err := LoadRecorderConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{"debug": DEBUG, "WARN": WARN, "error": ERROR, "bogus": INFO} {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	if got := FormatElapsed(83*time.Second + 400*time.Millisecond); got != "01:23.4" {
		t.Errorf("FormatElapsed = %q", got)
	}
}

func TestLoadRecorderConfigRejectsEmptyGIFFrame(t *testing.T) {
	p := writeFile(t, "recorder.yaml", `
gif:
  enabled: true
  width_px: 0
`)
	if _, err := LoadRecorderConfig(p); err == nil {
		t.Error("expected error for zero gif width")
	}
}

func TestLoadRecorderConfigColorMap(t *testing.T) {
	p := writeFile(t, "recorder.yaml", "plot:\n  colormap: Heat\n")
	cfg, err := LoadRecorderConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Plot.ColorMap != "heat" {
		t.Errorf("colormap = %q, want heat", cfg.Plot.ColorMap)
	}

	p = writeFile(t, "bad.yaml", "plot:\n  colormap: plasma\n")
	if _, err := LoadRecorderConfig(p); !errors.Is(err, errInvalidConfig) {
		t.Errorf("err = %v, want invalid config", err)
	}
}
