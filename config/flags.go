package config

import (
	"flag"
	"io"
)

// flags holds parsed command-line overrides. Zero values mean "not set".
type flags struct {
	config      string
	debug       bool
	width       int
	height      int
	geometry    string
	presentMode string
	fallback    bool
	profile     bool
	logFile     string
	metricsAddr string
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{}
	fs := flag.NewFlagSet("oxy-viewer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&f.config, "config", "", "Path to config file")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging and the profiler")
	fs.IntVar(&f.width, "width", 0, "Window width")
	fs.IntVar(&f.height, "height", 0, "Window height")
	fs.StringVar(&f.geometry, "geometry", "", "Geometry to draw: cube or quad")
	fs.StringVar(&f.presentMode, "present-mode", "", "Present mode: vsync or uncapped")
	fs.BoolVar(&f.fallback, "fallback-adapter", false, "Force the software fallback adapter")
	fs.BoolVar(&f.profile, "profile", false, "Report frame statistics")
	fs.StringVar(&f.logFile, "log-file", "", "Write logs to this file with rotation")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (enables the profiler)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// apply applies CLI flag overrides to the config.
func (f *flags) apply(cfg *Config) {
	if f.debug {
		cfg.Logging.Level = "debug"
		cfg.Profiler.Enabled = true
	}
	if f.width > 0 {
		cfg.Window.Width = f.width
	}
	if f.height > 0 {
		cfg.Window.Height = f.height
	}
	if f.geometry != "" {
		cfg.Renderer.Geometry = f.geometry
	}
	if f.presentMode != "" {
		cfg.Renderer.PresentMode = f.presentMode
	}
	if f.fallback {
		cfg.Renderer.ForceFallbackAdapter = true
	}
	if f.profile {
		cfg.Profiler.Enabled = true
	}
	if f.logFile != "" {
		cfg.Logging.LogFile = f.logFile
	}
	if f.metricsAddr != "" {
		cfg.Profiler.MetricsAddr = f.metricsAddr
		cfg.Profiler.Enabled = true
	}
}
