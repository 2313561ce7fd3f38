package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// DefaultClearColor is the opaque light gray every frame starts from.
var DefaultClearColor = wgpu.Color{R: 0.8, G: 0.8, B: 0.8, A: 1.0}

// State is the lifecycle state of a FrameRenderer.
type State int

const (
	// StateUnconfigured is the initial state; only Configure is valid.
	StateUnconfigured State = iota

	// StateReady means all long-lived resources exist and a frame may be rendered.
	StateReady

	// StateRendering is held for the duration of one RenderFrame call.
	StateRendering
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateReady:
		return "ready"
	case StateRendering:
		return "rendering"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stats counts rendered frames and per-frame depth target lifetimes.
// DepthAllocated and DepthReleased are equal whenever no frame is in flight.
type Stats struct {
	Frames         uint64
	DepthAllocated uint64
	DepthReleased  uint64
}

// FrameSource supplies the camera state consumed by one frame.
type FrameSource interface {
	Snapshot() camera.Snapshot
}

// frameRenderer is the implementation of the FrameRenderer interface.
type frameRenderer struct {
	mu *sync.Mutex

	backend RendererBackend
	logger  *zap.Logger

	clearColor wgpu.Color
	state      State
	released   bool

	pipelineDesc pipeline.Pipeline
	vertexCount  uint32

	vertexBuffer   Buffer
	uniformBuffer  Buffer
	renderPipeline RenderPipeline
	bindGroup      BindGroup

	stats Stats
}

// FrameRenderer draws one static geometry per frame with the camera's view and projection.
//
// The renderer borrows a RendererBackend and owns the resources it creates through it: an
// immutable vertex buffer, a 128-byte camera uniform buffer rewritten every frame, the render
// pipeline and, on the 3D path, the bind group that exposes the uniform buffer to the vertex stage.
// A depth target is created for every frame and released when the frame ends.
type FrameRenderer interface {
	// Configure uploads the geometry and builds the pipeline and bindings for a surface format.
	// Valid only once, in StateUnconfigured.
	//
	// Parameters:
	//   - surfaceFormat: the format of the surface frames are presented to
	//   - geometry: the vertex data to draw every frame
	//
	// Returns:
	//   - error: ErrAlreadyConfigured, model.ErrMalformedGeometry or ErrDevice (all wrapped)
	Configure(surfaceFormat wgpu.TextureFormat, geometry model.Geometry) error

	// RenderFrame writes the camera uniform, records one cleared render pass that draws the
	// geometry, submits it and presents the surface image. The frame's depth target and surface
	// image are released before returning, on success and on failure.
	//
	// Parameters:
	//   - cam: the camera snapshot source, read exactly once
	//
	// Returns:
	//   - error: ErrNotConfigured, ErrSurfaceAcquire or ErrDevice (all wrapped); every error is fatal
	RenderFrame(cam FrameSource) error

	// State returns the current lifecycle state.
	//
	// Returns:
	//   - State: the renderer state
	State() State

	// Stats returns frame and depth target counters.
	//
	// Returns:
	//   - Stats: a copy of the counters
	Stats() Stats

	// Pipeline returns the pipeline description built by Configure, or nil before it.
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline description
	Pipeline() pipeline.Pipeline

	// Release frees the long-lived resources. The backend itself is not released.
	// RenderFrame returns ErrNotConfigured afterwards.
	Release()
}

var _ FrameRenderer = &frameRenderer{}

// NewFrameRenderer creates an unconfigured FrameRenderer drawing through backend.
//
// Parameters:
//   - backend: the device and surface to draw with
//   - opts: builder options
//
// Returns:
//   - FrameRenderer: the renderer in StateUnconfigured
func NewFrameRenderer(backend RendererBackend, opts ...RendererBuilderOption) FrameRenderer {
	r := &frameRenderer{
		mu:         &sync.Mutex{},
		backend:    backend,
		logger:     zap.NewNop(),
		clearColor: DefaultClearColor,
		state:      StateUnconfigured,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *frameRenderer) Configure(surfaceFormat wgpu.TextureFormat, geometry model.Geometry) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateUnconfigured {
		return fmt.Errorf("configure in state %s: %w", r.state, ErrAlreadyConfigured)
	}
	if err := geometry.Validate(); err != nil {
		return err
	}

	p, err := pipeline.ForLayout(geometry.Layout)
	if err != nil {
		return fmt.Errorf("%w: build pipeline: %v", ErrDevice, err)
	}

	// Release partial resources on failure.
	defer func() {
		if err != nil {
			r.releaseResources()
		}
	}()

	r.vertexBuffer, err = r.backend.CreateVertexBuffer(geometry.Label+" Vertex Buffer", geometry.Bytes())
	if err != nil {
		return fmt.Errorf("%w: create vertex buffer: %v", ErrDevice, err)
	}

	uniform := camera.GPUCameraUniform{}
	r.uniformBuffer, err = r.backend.CreateUniformBuffer("Camera Uniform Buffer", uint64(uniform.Size()))
	if err != nil {
		return fmt.Errorf("%w: create uniform buffer: %v", ErrDevice, err)
	}

	r.renderPipeline, err = r.backend.CreateRenderPipeline(p, surfaceFormat)
	if err != nil {
		return fmt.Errorf("%w: create render pipeline: %v", ErrDevice, err)
	}

	if _, ok := p.Shader().BindGroupLayoutDescriptors()[0]; ok {
		r.bindGroup, err = r.backend.CreateBindGroup("Camera Bind Group", r.renderPipeline, 0, r.uniformBuffer)
		if err != nil {
			return fmt.Errorf("%w: create bind group: %v", ErrDevice, err)
		}
	}

	r.pipelineDesc = p
	r.vertexCount = uint32(geometry.VertexCount())
	r.state = StateReady

	r.logger.Info("renderer configured",
		zap.String("geometry", geometry.Label),
		zap.Stringer("layout", geometry.Layout),
		zap.Uint32("vertices", r.vertexCount),
		zap.Bool("camera_bound", r.bindGroup != nil),
	)
	return nil
}

func (r *frameRenderer) RenderFrame(cam FrameSource) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateReady || r.released {
		return fmt.Errorf("render in state %s (released=%t): %w", r.state, r.released, ErrNotConfigured)
	}
	r.state = StateRendering
	defer func() { r.state = StateReady }()

	uniform := camera.NewGPUCameraUniform(cam.Snapshot())
	if err := r.backend.WriteBuffer(r.uniformBuffer, 0, uniform.Marshal()); err != nil {
		return fmt.Errorf("%w: write camera uniform: %v", ErrDevice, err)
	}

	surface, err := r.backend.AcquireSurfaceTexture()
	if err != nil {
		r.logger.Error("surface acquisition failed", zap.Error(err))
		if !errors.Is(err, ErrSurfaceAcquire) {
			err = fmt.Errorf("%w: %v", ErrSurfaceAcquire, err)
		}
		return err
	}
	defer surface.Release()

	depth, err := r.backend.CreateDepthTexture(surface.Width(), surface.Height())
	if err != nil {
		return fmt.Errorf("%w: create depth target: %v", ErrDevice, err)
	}
	r.stats.DepthAllocated++
	defer func() {
		depth.Release()
		r.stats.DepthReleased++
	}()

	encoder, err := r.backend.CreateCommandEncoder()
	if err != nil {
		return fmt.Errorf("%w: create command encoder: %v", ErrDevice, err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(RenderPassDescriptor{
		Color:           surface,
		ClearColor:      r.clearColor,
		Depth:           depth,
		DepthClearValue: 1.0,
	})
	pass.SetPipeline(r.renderPipeline)
	pass.SetVertexBuffer(0, r.vertexBuffer)
	if r.bindGroup != nil {
		pass.SetBindGroup(0, r.bindGroup)
	}
	pass.Draw(r.vertexCount)
	pass.End()

	cmd, err := encoder.Finish()
	if err != nil {
		return fmt.Errorf("%w: finish command encoder: %v", ErrDevice, err)
	}
	defer cmd.Release()

	r.backend.Submit(cmd)
	r.backend.Present()
	r.stats.Frames++
	return nil
}

func (r *frameRenderer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *frameRenderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *frameRenderer) Pipeline() pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineDesc
}

func (r *frameRenderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.releaseResources()
	r.released = true
}

// releaseResources frees every long-lived resource that exists. Caller must hold mu.
func (r *frameRenderer) releaseResources() {
	if r.bindGroup != nil {
		r.bindGroup.Release()
		r.bindGroup = nil
	}
	if r.renderPipeline != nil {
		r.renderPipeline.Release()
		r.renderPipeline = nil
	}
	if r.uniformBuffer != nil {
		r.uniformBuffer.Release()
		r.uniformBuffer = nil
	}
	if r.vertexBuffer != nil {
		r.vertexBuffer.Release()
		r.vertexBuffer = nil
	}
}
