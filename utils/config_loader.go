package utils

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ─── Shared configs ─────────────────────────────────────────────────────

// SimulatorConfig locates the simulator RPC endpoint and the vehicle.
type SimulatorConfig struct {
	Address   string `yaml:"address"` // host:port of the msgpack-RPC server
	Vehicle   string `yaml:"vehicle"`
	TimeoutMs int    `yaml:"timeout_ms"` // per-call deadline
}

// Timeout returns the per-call deadline.
func (c SimulatorConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ─── Pilot configs ──────────────────────────────────────────────────────

type ControlConfig struct {
	PeriodMs        int     `yaml:"period_ms"`
	TakeoffOnStart  bool    `yaml:"takeoff_on_start"`
	TakeoffTimeoutS float64 `yaml:"takeoff_timeout_s"`
	LandOnExit      bool    `yaml:"land_on_exit"`
	LandTimeoutS    float64 `yaml:"land_timeout_s"`
	SettleMs        int     `yaml:"settle_ms"` // hover pause before the exit landing
}

// Period returns the control tick interval.
func (c ControlConfig) Period() time.Duration {
	return time.Duration(c.PeriodMs) * time.Millisecond
}

// KeyMapConfig tunes how held keys turn into velocity and yaw-rate targets.
type KeyMapConfig struct {
	Mode         string  `yaml:"mode"` // "ramp" or "direct"
	MaxSpeedXY   float64 `yaml:"max_speed_xy"`
	MaxSpeedZ    float64 `yaml:"max_speed_z"`
	MaxYawRate   float64 `yaml:"max_yaw_rate"` // deg/s
	AccelXY      float64 `yaml:"accel_xy"`
	DecelXY      float64 `yaml:"decel_xy"`
	AccelZ       float64 `yaml:"accel_z"`
	DecelZ       float64 `yaml:"decel_z"`
	AccelYaw     float64 `yaml:"accel_yaw"`
	DecelYaw     float64 `yaml:"decel_yaw"`
	SmoothAlpha  float64 `yaml:"smooth_alpha"` // 0..1, lower is smoother
	HoldWindowMs int     `yaml:"hold_window_ms"`
}

// HoldWindow is how long after the last key event a key still counts as held.
func (c KeyMapConfig) HoldWindow() time.Duration {
	return time.Duration(c.HoldWindowMs) * time.Millisecond
}

// MissionConfig describes the scripted flight that replaces keyboard input.
type MissionConfig struct {
	Enabled         bool         `yaml:"enabled"`
	Shape           string       `yaml:"shape"` // "rectangle" or "waypoints"
	Width           float64      `yaml:"width"`
	Height          float64      `yaml:"height"`
	Altitude        float64      `yaml:"altitude"`  // metres above the start point
	Waypoints       [][3]float64 `yaml:"waypoints"` // NED x, y, z
	Speed           float64      `yaml:"speed"`
	Tolerance       float64      `yaml:"tolerance"`
	SegmentTimeoutS float64      `yaml:"segment_timeout_s"`
	LandOnComplete  bool         `yaml:"land_on_complete"`
}

// SegmentTimeout bounds how long a single leg may take.
func (c MissionConfig) SegmentTimeout() time.Duration {
	return time.Duration(c.SegmentTimeoutS * float64(time.Second))
}

// PilotConfig is the top-level structure for pilot.yaml.
type PilotConfig struct {
	Simulator SimulatorConfig `yaml:"simulator"`
	Control   ControlConfig   `yaml:"control"`
	Keys      KeyMapConfig    `yaml:"keys"`
	Mission   MissionConfig   `yaml:"mission"`
	Log       LogConfig       `yaml:"log"`
}

// ─── Recorder configs ───────────────────────────────────────────────────

type SamplingConfig struct {
	PeriodMs      int     `yaml:"period_ms"`
	RuntimeLimitS float64 `yaml:"runtime_limit_s"` // 0 records until interrupted
	OutputRoot    string  `yaml:"output_root"`
}

func (c SamplingConfig) Period() time.Duration {
	return time.Duration(c.PeriodMs) * time.Millisecond
}

func (c SamplingConfig) RuntimeLimit() time.Duration {
	return time.Duration(c.RuntimeLimitS * float64(time.Second))
}

type LiveConfig struct {
	Every       int    `yaml:"every"` // render every N samples
	PreviewPath string `yaml:"preview_path"`
	WidthPx     int    `yaml:"width_px"`
	HeightPx    int    `yaml:"height_px"`
}

type ArrowConfig struct {
	Enabled   bool    `yaml:"enabled"`
	IntervalS float64 `yaml:"interval_s"` // recorded seconds between arrows
	Scale     float64 `yaml:"scale"`      // arrow length in metres
	Offset    float64 `yaml:"offset"`     // sideways offset from the path in metres
}

// ColorMaps lists the plot.colormap names the renderers accept.
var ColorMaps = []string{"blackbody", "bluered", "extended", "heat", "kindlmann"}

type PlotConfig struct {
	DPI       int         `yaml:"dpi"`
	Margin    float64     `yaml:"margin"`
	ColorMap  string      `yaml:"colormap"`
	Azimuth   float64     `yaml:"azimuth"`   // 3D view, degrees
	Elevation float64     `yaml:"elevation"` // 3D view, degrees
	Arrows    ArrowConfig `yaml:"arrows"`
}

type GIFConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Speed     float64 `yaml:"speed"` // playback multiplier over real time
	MaxFrames int     `yaml:"max_frames"`
	WidthPx   int     `yaml:"width_px"`
	HeightPx  int     `yaml:"height_px"`
}

// RecorderConfig is the top-level structure for recorder.yaml.
type RecorderConfig struct {
	Simulator SimulatorConfig `yaml:"simulator"`
	Sampling  SamplingConfig  `yaml:"sampling"`
	Live      LiveConfig      `yaml:"live"`
	Plot      PlotConfig      `yaml:"plot"`
	GIF       GIFConfig       `yaml:"gif"`
	Log       LogConfig       `yaml:"log"`
}

// ─── Defaults ───────────────────────────────────────────────────────────

func defaultSimulator() SimulatorConfig {
	return SimulatorConfig{Address: "127.0.0.1:41451", Vehicle: "Leader", TimeoutMs: 2000}
}

// DefaultPilotConfig mirrors the tuning the manual controller shipped with.
func DefaultPilotConfig() PilotConfig {
	return PilotConfig{
		Simulator: defaultSimulator(),
		Control: ControlConfig{
			PeriodMs:        50,
			TakeoffOnStart:  true,
			TakeoffTimeoutS: 20,
			LandOnExit:      true,
			LandTimeoutS:    60,
			SettleMs:        500,
		},
		Keys: KeyMapConfig{
			Mode:         "ramp",
			MaxSpeedXY:   4.0,
			MaxSpeedZ:    2.0,
			MaxYawRate:   90.0,
			AccelXY:      3.0,
			DecelXY:      3.5,
			AccelZ:       2.0,
			DecelZ:       2.5,
			AccelYaw:     180.0,
			DecelYaw:     220.0,
			SmoothAlpha:  0.2,
			HoldWindowMs: 300,
		},
		Mission: MissionConfig{
			Shape:           "rectangle",
			Width:           10,
			Height:          6,
			Altitude:        3,
			Speed:           2,
			Tolerance:       0.5,
			SegmentTimeoutS: 20,
			LandOnComplete:  true,
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultRecorderConfig mirrors the plotting script's constants.
func DefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{
		Simulator: defaultSimulator(),
		Sampling:  SamplingConfig{PeriodMs: 50, OutputRoot: "output"},
		Live:      LiveConfig{Every: 5, WidthPx: 640, HeightPx: 560},
		Plot: PlotConfig{
			DPI:       150,
			Margin:    1.5,
			ColorMap:  "extended",
			Azimuth:   -60,
			Elevation: 30,
			Arrows:    ArrowConfig{IntervalS: 1.0, Scale: 0.6, Offset: 0.3},
		},
		GIF: GIFConfig{
			Enabled:   true,
			Speed:     3,
			MaxFrames: 300,
			WidthPx:   640,
			HeightPx:  560,
		},
		Log: LogConfig{Level: "info"},
	}
}

// ─── Validation ─────────────────────────────────────────────────────────

var errInvalidConfig = errors.New("invalid config")

func invalid(format string, a ...any) error {
	return fmt.Errorf("%w: %s", errInvalidConfig, fmt.Sprintf(format, a...))
}

func (c SimulatorConfig) validate() error {
	if c.Address == "" {
		return invalid("simulator.address is empty")
	}
	if c.TimeoutMs <= 0 {
		return invalid("simulator.timeout_ms must be positive")
	}
	return nil
}

// Validate checks for values the controllers cannot work with.
func (c *PilotConfig) Validate() error {
	if err := c.Simulator.validate(); err != nil {
		return err
	}
	if c.Control.PeriodMs <= 0 {
		return invalid("control.period_ms must be positive")
	}
	c.Keys.Mode = strings.ToLower(c.Keys.Mode)
	if c.Keys.Mode != "ramp" && c.Keys.Mode != "direct" {
		return invalid("keys.mode %q (want ramp or direct)", c.Keys.Mode)
	}
	if c.Keys.SmoothAlpha <= 0 || c.Keys.SmoothAlpha > 1 {
		return invalid("keys.smooth_alpha must be in (0, 1]")
	}
	if c.Keys.MaxSpeedXY < 0 || c.Keys.MaxSpeedZ < 0 || c.Keys.MaxYawRate < 0 {
		return invalid("keys max speeds must not be negative")
	}
	if c.Mission.Enabled {
		switch c.Mission.Shape {
		case "rectangle":
			if c.Mission.Width <= 0 || c.Mission.Height <= 0 {
				return invalid("mission rectangle needs positive width and height")
			}
		case "waypoints":
			if len(c.Mission.Waypoints) == 0 {
				return invalid("mission.waypoints is empty")
			}
		default:
			return invalid("mission.shape %q (want rectangle or waypoints)", c.Mission.Shape)
		}
		if c.Mission.Speed <= 0 || c.Mission.Tolerance <= 0 {
			return invalid("mission speed and tolerance must be positive")
		}
	}
	return nil
}

// Validate checks for values the recorder cannot work with.
func (c *RecorderConfig) Validate() error {
	if err := c.Simulator.validate(); err != nil {
		return err
	}
	if c.Sampling.PeriodMs <= 0 {
		return invalid("sampling.period_ms must be positive")
	}
	if c.Sampling.RuntimeLimitS < 0 {
		return invalid("sampling.runtime_limit_s must not be negative")
	}
	if c.Sampling.OutputRoot == "" {
		return invalid("sampling.output_root is empty")
	}
	if c.Live.Every <= 0 {
		c.Live.Every = 1
	}
	if c.Plot.DPI <= 0 {
		return invalid("plot.dpi must be positive")
	}
	c.Plot.ColorMap = strings.ToLower(c.Plot.ColorMap)
	if c.Plot.ColorMap == "" {
		c.Plot.ColorMap = "extended"
	}
	if !slices.Contains(ColorMaps, c.Plot.ColorMap) {
		return invalid("plot.colormap %q (want one of %s)", c.Plot.ColorMap, strings.Join(ColorMaps, ", "))
	}
	if c.Live.WidthPx <= 0 || c.Live.HeightPx <= 0 {
		return invalid("live preview size must be positive")
	}
	if c.GIF.Enabled {
		if c.GIF.Speed <= 0 {
			return invalid("gif.speed must be positive")
		}
		if c.GIF.WidthPx <= 0 || c.GIF.HeightPx <= 0 {
			return invalid("gif frame size must be positive")
		}
	}
	if c.Plot.Arrows.Enabled && c.Plot.Arrows.IntervalS <= 0 {
		return invalid("plot.arrows.interval_s must be positive")
	}
	return nil
}

// ─── Loaders ────────────────────────────────────────────────────────────

// LoadPilotConfig reads pilot.yaml on top of DefaultPilotConfig.
func LoadPilotConfig(path string) (*PilotConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pilot config: %w", err)
	}
	cfg := DefaultPilotConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse pilot config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadRecorderConfig reads recorder.yaml on top of DefaultRecorderConfig.
func LoadRecorderConfig(path string) (*RecorderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recorder config: %w", err)
	}
	cfg := DefaultRecorderConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse recorder config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
