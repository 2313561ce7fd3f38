package engine

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// engine implements the Engine interface.
// Owns the window, the device backend, the camera and the renderer for one viewer session.
type engine struct {
	mu *sync.Mutex

	logger    *zap.Logger
	sessionID string

	window     window.Window
	ownsWindow bool

	backend     renderer.RendererBackend
	ownsBackend bool
	presentMode renderer.PresentMode
	forceSoft   bool

	camera     camera.Camera
	cameraOpts []camera.CameraBuilderOption
	controller camera.CameraController

	geometry   model.Geometry
	clearColor *wgpu.Color
	renderer   renderer.FrameRenderer

	profiler         profiler.Profiler
	profilingEnabled bool
	profilerOpts     []profiler.ProfilerBuilderOption

	metrics       *profiler.Metrics
	metricsAddr   string
	metricsServer *http.Server

	windowOpts []window.WindowBuilderOption

	frameErr error
	released bool
}

// Engine is the main entry point for the viewer.
// It wires window input into the orbit camera and drives one rendered frame per message loop iteration.
type Engine interface {
	// SessionID returns the identifier attached to every log entry of this viewer session.
	//
	// Returns:
	//   - string: the session UUID
	SessionID() string

	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Camera returns the orbit camera.
	//
	// Returns:
	//   - camera.Camera: the camera driven by pointer input
	Camera() camera.Camera

	// Controller returns the pointer adapter feeding the camera.
	//
	// Returns:
	//   - camera.CameraController: the controller
	Controller() camera.CameraController

	// Metrics returns the Prometheus metrics, or nil when profiling is disabled.
	//
	// Returns:
	//   - *profiler.Metrics: the metrics set
	Metrics() *profiler.Metrics

	// Renderer returns the frame renderer.
	//
	// Returns:
	//   - renderer.FrameRenderer: the configured renderer
	Renderer() renderer.FrameRenderer

	// Resize reconfigures the surface and the camera projection for a new framebuffer size.
	// Zero sizes (minimized window) are ignored.
	//
	// Parameters:
	//   - width, height: new framebuffer size in pixels
	//
	// Returns:
	//   - error: error if the surface could not be reconfigured
	Resize(width, height int) error

	// RenderFrame renders one frame from the current camera state and ticks the profiler.
	//
	// Returns:
	//   - error: the renderer's error; every error is fatal
	RenderFrame() error

	// Run starts the window message loop and renders a frame each iteration.
	// Blocks until the window closes or a frame fails.
	//
	// Returns:
	//   - error: the first frame error, or nil if the window was closed
	Run() error

	// Quit asks the message loop to stop after the current iteration.
	Quit()

	// Release frees the renderer, then the backend and window the engine created.
	// Safe to call multiple times.
	Release()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine with the provided options.
// Any collaborator not supplied through options is created here: the GLFW window, the wgpu backend,
// the camera (aspect taken from the window) and the renderer, which is configured with the geometry.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine, ready to Run
//   - error: window, device or configuration failure
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		mu:        &sync.Mutex{},
		logger:    zap.NewNop(),
		sessionID: uuid.NewString(),
		geometry:  model.Cube(),
	}
	for _, opt := range options {
		opt(e)
	}
	e.logger = e.logger.With(zap.String("session", e.sessionID))

	if err := e.init(); err != nil {
		e.Release()
		return nil, err
	}
	return e, nil
}

func (e *engine) init() error {
	if e.window == nil {
		opts := append([]window.WindowBuilderOption{window.WithLogger(e.logger.Named("window"))}, e.windowOpts...)
		w, err := window.NewWindow(opts...)
		if err != nil {
			return err
		}
		e.window = w
		e.ownsWindow = true
	}

	if e.backend == nil {
		b, err := renderer.NewWGPURendererBackend(e.window.SurfaceDescriptor(),
			renderer.WithForceSoftwareRenderer(e.forceSoft),
			renderer.WithPresentMode(e.presentMode),
			renderer.WithBackendLogger(e.logger.Named("backend")),
		)
		if err != nil {
			return err
		}
		e.backend = b
		e.ownsBackend = true
	}

	width, height := e.window.Width(), e.window.Height()
	if err := e.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("configure surface: %w", err)
	}

	if e.camera == nil {
		opts := []camera.CameraBuilderOption{camera.WithLogger(e.logger.Named("camera"))}
		if width > 0 && height > 0 {
			opts = append(opts, camera.WithAspect(float32(width)/float32(height)))
		}
		e.camera = camera.NewCamera(append(opts, e.cameraOpts...)...)
	}
	e.controller = camera.NewCameraController(e.camera)

	rendererOpts := []renderer.RendererBuilderOption{renderer.WithLogger(e.logger.Named("renderer"))}
	if e.clearColor != nil {
		rendererOpts = append(rendererOpts, renderer.WithClearColor(*e.clearColor))
	}
	e.renderer = renderer.NewFrameRenderer(e.backend, rendererOpts...)
	if err := e.renderer.Configure(e.backend.SurfaceFormat(), e.geometry); err != nil {
		return err
	}

	if e.profilingEnabled {
		e.metrics = profiler.NewMetrics()
		opts := append([]profiler.ProfilerBuilderOption{
			profiler.WithLogger(e.logger.Named("profiler")),
			profiler.WithMetrics(e.metrics),
		}, e.profilerOpts...)
		e.profiler = profiler.NewProfiler(e.camera, opts...)

		if e.metricsAddr != "" {
			e.startMetricsServer()
		}
	}

	e.window.SetResizeCallback(func(width, height int) {
		if err := e.Resize(width, height); err != nil {
			e.fail(err)
		}
	})
	e.window.SetPointerDownCallback(func(x, y float32) { e.controller.PointerDown(x, y) })
	e.window.SetPointerUpCallback(func(x, y float32) { e.controller.PointerUp() })
	e.window.SetPointerMoveCallback(e.controller.PointerMove)
	e.window.SetScrollCallback(e.controller.Scroll)
	e.window.SetUpdateCallback(func() {
		if err := e.RenderFrame(); err != nil {
			e.fail(err)
		}
	})

	e.logger.Info("engine ready",
		zap.String("geometry", e.geometry.Label),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("profiling", e.profiler != nil),
	)
	return nil
}

func (e *engine) SessionID() string {
	return e.sessionID
}

func (e *engine) Metrics() *profiler.Metrics {
	return e.metrics
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Controller() camera.CameraController {
	return e.controller
}

func (e *engine) Renderer() renderer.FrameRenderer {
	return e.renderer
}

func (e *engine) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		e.logger.Debug("ignoring zero-size resize", zap.Int("width", width), zap.Int("height", height))
		return nil
	}
	if err := e.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("resize surface to %dx%d: %w", width, height, err)
	}
	e.camera.UpdateProjection(float32(width) / float32(height))
	return nil
}

func (e *engine) RenderFrame() error {
	if err := e.renderer.RenderFrame(e.camera); err != nil {
		return err
	}
	if e.profiler != nil {
		e.profiler.Tick()
	}
	if e.metrics != nil {
		stats := e.renderer.Stats()
		e.metrics.ObserveDepthTargets(stats.DepthAllocated, stats.DepthReleased)
	}
	return nil
}

func (e *engine) Run() error {
	e.window.ProcessMessages()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frameErr
}

func (e *engine) Quit() {
	e.window.RequestClose()
}

func (e *engine) Release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return
	}
	e.released = true

	if e.metricsServer != nil {
		if err := e.metricsServer.Close(); err != nil {
			e.logger.Warn("closing metrics server", zap.Error(err))
		}
	}
	if e.profiler != nil {
		e.profiler.Flush()
	}
	if e.renderer != nil {
		e.renderer.Release()
	}
	if e.ownsBackend && e.backend != nil {
		e.backend.Release()
	}
	if e.ownsWindow && e.window != nil {
		if err := e.window.Close(); err != nil {
			e.logger.Warn("closing window", zap.Error(err))
		}
	}
	_ = e.logger.Sync()
}

func (e *engine) startMetricsServer() {
	e.metricsServer = profiler.NewMetricsServer(e.metricsAddr, e.metrics)
	srv, log := e.metricsServer, e.logger.Named("metrics")
	go func() {
		log.Info("serving metrics", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", zap.Error(err))
		}
	}()
}

// fail records the first fatal error and stops the message loop.
func (e *engine) fail(err error) {
	e.mu.Lock()
	first := e.frameErr == nil
	if first {
		e.frameErr = err
	}
	e.mu.Unlock()

	if first {
		e.logger.Error("frame failed, stopping",
			zap.Error(err),
			zap.Bool("surface_lost", errors.Is(err, renderer.ErrSurfaceAcquire)),
		)
	}
	e.window.RequestClose()
}
