// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"math"
	"strings"
)

// MinSliderStep is the smallest accepted payload slider step, in kilograms.
const MinSliderStep = 1.0

// Scatter coloring modes.
const (
	ColorByBoosterVersion  = "booster_version"
	ColorByBoosterCategory = "booster_category"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8052".
	Addr string `koanf:"addr"`

	// DataPath is the launch records CSV read once at startup.
	DataPath string `koanf:"data_path"`

	// SliderStep is the payload range control step in kilograms.
	SliderStep float64 `koanf:"slider_step"`

	// ColorBy selects the scatter series key: booster_version or booster_category.
	ColorBy string `koanf:"color_by"`

	// ChartWidth and ChartHeight size rendered charts in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		LogFormat:   "text",
		Addr:        ":8052",
		DataPath:    "spacex_launch_dash.csv",
		SliderStep:  1000,
		ColorBy:     ColorByBoosterVersion,
		ChartWidth:  900,
		ChartHeight: 480,
	}
}

// Validate reports the first invalid setting, wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DataPath) == "":
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	case !(c.SliderStep >= MinSliderStep) || math.IsInf(c.SliderStep, 0):
		return fmt.Errorf("%w: slider_step must be a finite number >= %g", ErrInvalidConfig, MinSliderStep)
	case c.ColorBy != ColorByBoosterVersion && c.ColorBy != ColorByBoosterCategory:
		return fmt.Errorf("%w: color_by must be %q or %q", ErrInvalidConfig, ColorByBoosterVersion, ColorByBoosterCategory)
	case c.ChartWidth <= 0 || c.ChartHeight <= 0:
		return fmt.Errorf("%w: chart_width and chart_height must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json", ErrInvalidConfig)
	}
	return nil
}
