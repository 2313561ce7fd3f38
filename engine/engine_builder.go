package engine

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithLogger sets the root logger. Each component receives a named child.
//
// Parameters:
//   - logger: the zap logger to use
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally. The engine does not close a window it did not create.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithWindowOptions passes options to the window the engine creates. Ignored when WithWindow is used.
//
// Parameters:
//   - opts: window builder options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindowOptions(opts ...window.WindowBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.windowOpts = append(e.windowOpts, opts...)
	}
}

// WithBackend lends a device backend to the engine. The engine does not release a backend it did not create.
//
// Parameters:
//   - b: the RendererBackend to draw with
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithBackend(b renderer.RendererBackend) EngineBuilderOption {
	return func(e *engine) {
		e.backend = b
	}
}

// WithPresentMode sets the present mode of the backend the engine creates.
//
// Parameters:
//   - mode: VSync (default) or Uncapped
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPresentMode(mode renderer.PresentMode) EngineBuilderOption {
	return func(e *engine) {
		e.presentMode = mode
	}
}

// WithForceSoftwareRenderer requests the fallback adapter for the backend the engine creates.
//
// Parameters:
//   - force: true to force the software adapter
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithForceSoftwareRenderer(force bool) EngineBuilderOption {
	return func(e *engine) {
		e.forceSoft = force
	}
}

// WithCamera sets the camera to drive. Camera options are ignored when a camera is supplied.
//
// Parameters:
//   - c: the orbit camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithCameraOptions passes options to the camera the engine creates.
//
// Parameters:
//   - opts: camera builder options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCameraOptions(opts ...camera.CameraBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.cameraOpts = append(e.cameraOpts, opts...)
	}
}

// WithGeometry sets the geometry drawn every frame. Defaults to the cube.
//
// Parameters:
//   - g: the geometry
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithGeometry(g model.Geometry) EngineBuilderOption {
	return func(e *engine) {
		e.geometry = g
	}
}

// WithClearColor overrides the renderer's clear color.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClearColor(c wgpu.Color) EngineBuilderOption {
	return func(e *engine) {
		e.clearColor = &c
	}
}

// WithProfiling enables or disables frame statistics reporting.
//
// Parameters:
//   - enabled: if true, reports FPS and camera position
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfilerOptions passes options to the profiler the engine creates.
//
// Parameters:
//   - opts: profiler builder options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfilerOptions(opts ...profiler.ProfilerBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.profilerOpts = append(e.profilerOpts, opts...)
	}
}

// WithMetricsAddr serves Prometheus metrics at addr/metrics while profiling is enabled.
//
// Parameters:
//   - addr: listen address, e.g. ":9090" (empty disables the server)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMetricsAddr(addr string) EngineBuilderOption {
	return func(e *engine) {
		e.metricsAddr = addr
	}
}

// WithConfig applies a loaded configuration. Options listed after it still override it.
// The config is expected to have passed Validate; an unknown geometry keeps the default cube.
//
// Parameters:
//   - cfg: the viewer configuration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg *config.Config) EngineBuilderOption {
	return func(e *engine) {
		WithWindowOptions(
			window.WithTitle(common.Coalesce(cfg.Window.Title, config.Default().Window.Title)),
			window.WithWidth(cfg.Window.Width),
			window.WithHeight(cfg.Window.Height),
			window.WithScrollStep(cfg.Window.ScrollStep),
		)(e)

		if mode, err := renderer.ParsePresentMode(cfg.Renderer.PresentMode); err == nil {
			e.presentMode = mode
		}
		e.forceSoft = cfg.Renderer.ForceFallbackAdapter
		if g, err := model.ByName(cfg.Renderer.Geometry); err == nil {
			e.geometry = g
		}

		WithCameraOptions(
			camera.WithRadius(cfg.Camera.Radius),
			camera.WithPhi(cfg.Camera.Phi),
			camera.WithTheta(cfg.Camera.Theta),
		)(e)

		e.profilingEnabled = cfg.Profiler.Enabled
		e.metricsAddr = cfg.Profiler.MetricsAddr
		if cfg.Profiler.Interval > 0 {
			WithProfilerOptions(profiler.WithInterval(cfg.Profiler.Interval))(e)
		}
	}
}
