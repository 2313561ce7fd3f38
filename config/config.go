// Package config handles viewer configuration loading.
package config

import (
	"fmt"
	"time"
)

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window" toml:"window"`
	Renderer RendererConfig `yaml:"renderer" toml:"renderer"`
	Camera   CameraConfig   `yaml:"camera" toml:"camera"`
	Profiler ProfilerConfig `yaml:"profiler" toml:"profiler"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// WindowConfig holds window and input settings.
type WindowConfig struct {
	Title      string  `yaml:"title" toml:"title"`
	Width      int     `yaml:"width" toml:"width"`
	Height     int     `yaml:"height" toml:"height"`
	ScrollStep float32 `yaml:"scroll_step" toml:"scroll_step"`
}

// RendererConfig holds GPU and geometry settings.
type RendererConfig struct {
	PresentMode          string `yaml:"present_mode" toml:"present_mode"` // vsync | uncapped
	Geometry             string `yaml:"geometry" toml:"geometry"`     // cube | quad
	ForceFallbackAdapter bool   `yaml:"force_fallback_adapter" toml:"force_fallback_adapter"`
}

// CameraConfig holds the initial orbit state. Values are clamped by the camera.
type CameraConfig struct {
	Radius float32 `yaml:"radius" toml:"radius"`
	Phi    float32 `yaml:"phi" toml:"phi"`
	Theta  float32 `yaml:"theta" toml:"theta"`
}

// ProfilerConfig holds frame statistics settings.
type ProfilerConfig struct {
	Enabled     bool          `yaml:"enabled" toml:"enabled"`
	Interval    time.Duration `yaml:"interval" toml:"interval"`
	MetricsAddr string        `yaml:"metrics_addr" toml:"metrics_addr"` // empty disables /metrics
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "oxy-viewer",
			Width:      1280,
			Height:     720,
			ScrollStep: 100,
		},
		Renderer: RendererConfig{
			PresentMode: "vsync",
			Geometry:    "cube",
		},
		Camera: CameraConfig{
			Radius: 3,
			Phi:    0.7853982,
			Theta:  0.7853982,
		},
		Profiler: ProfilerConfig{
			Enabled:  false,
			Interval: time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings the viewer cannot start with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Renderer.Geometry {
	case "cube", "quad":
	default:
		return fmt.Errorf("unknown geometry %q (want cube or quad)", c.Renderer.Geometry)
	}
	switch c.Renderer.PresentMode {
	case "", "vsync", "uncapped":
	default:
		return fmt.Errorf("unknown present mode %q (want vsync or uncapped)", c.Renderer.PresentMode)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
