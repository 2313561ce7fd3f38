package renderer

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	default:
		return fmt.Sprintf("PresentMode(%d)", int(m))
	}
}

// ParsePresentMode parses a present mode name as written in configuration files.
//
// Parameters:
//   - s: "vsync" or "uncapped" (case-insensitive)
//
// Returns:
//   - PresentMode: the parsed mode
//   - error: an error if the name is unknown
func ParsePresentMode(s string) (PresentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vsync", "":
		return PresentModeVSync, nil
	case "uncapped":
		return PresentModeUncapped, nil
	default:
		return PresentModeVSync, fmt.Errorf("unknown present mode %q", s)
	}
}

// Buffer is a GPU buffer owned by the backend.
type Buffer interface {
	// Size returns the buffer size in bytes.
	Size() uint64
	Release()
}

// Texture is a GPU texture together with the view used to attach it to a render pass.
type Texture interface {
	Width() int
	Height() int
	Release()
}

// RenderPipeline is a created GPU render pipeline and the bind group layouts it was built with.
type RenderPipeline interface {
	Release()
}

// BindGroup is a created GPU bind group.
type BindGroup interface {
	Release()
}

// CommandBuffer is a finished, submittable command list.
type CommandBuffer interface {
	Release()
}

// RenderPassDescriptor describes the single render pass recorded per frame.
type RenderPassDescriptor struct {
	// Color is the surface image cleared to ClearColor and stored.
	Color      Texture
	ClearColor wgpu.Color

	// Depth is the frame's depth target cleared to DepthClearValue and discarded after the pass.
	Depth           Texture
	DepthClearValue float32
}

// RenderPassEncoder records draw state and draw calls inside one render pass.
type RenderPassEncoder interface {
	SetPipeline(p RenderPipeline)
	SetVertexBuffer(slot uint32, buf Buffer)
	SetBindGroup(index uint32, bg BindGroup)
	Draw(vertexCount uint32)
	End()
}

// CommandEncoder records render passes into a command buffer.
type CommandEncoder interface {
	// BeginRenderPass starts recording a render pass.
	//
	// Parameters:
	//   - desc: the attachments and clear values of the pass
	//
	// Returns:
	//   - RenderPassEncoder: the pass recorder; End must be called before Finish
	BeginRenderPass(desc RenderPassDescriptor) RenderPassEncoder

	// Finish closes the encoder and returns the recorded commands.
	//
	// Returns:
	//   - CommandBuffer: the recorded commands
	//   - error: an error if the device rejects the recording
	Finish() (CommandBuffer, error)

	Release()
}

// RendererBackend is the device and surface contract the FrameRenderer draws through.
// The engine constructs it, lends it to the renderer, and releases it after the renderer.
// Every handle it returns is released by the caller.
type RendererBackend interface {
	// SurfaceFormat returns the preferred texture format of the surface.
	//
	// Returns:
	//   - wgpu.TextureFormat: the surface format color targets must use
	SurfaceFormat() wgpu.TextureFormat

	// SurfaceSize returns the size the surface was last configured with.
	//
	// Returns:
	//   - width, height: surface size in pixels, zero before the first ConfigureSurface
	SurfaceSize() (width, height int)

	// ConfigureSurface (re)configures the surface for a new size.
	// This is required whenever the surface size changes, such as when the window is resized.
	// A zero or negative size (a minimized window) leaves the previous configuration in place.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface cannot be configured
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the present mode used by the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// CreateVertexBuffer creates a vertex buffer and uploads data into it.
	//
	// Parameters:
	//   - label: debug label
	//   - data: the vertex bytes
	//
	// Returns:
	//   - Buffer: the created buffer
	//   - error: an error if the device rejects the buffer
	CreateVertexBuffer(label string, data []byte) (Buffer, error)

	// CreateUniformBuffer creates a zeroed uniform buffer writable with WriteBuffer.
	//
	// Parameters:
	//   - label: debug label
	//   - size: buffer size in bytes
	//
	// Returns:
	//   - Buffer: the created buffer
	//   - error: an error if the device rejects the buffer
	CreateUniformBuffer(label string, size uint64) (Buffer, error)

	// CreateRenderPipeline creates a render pipeline, its shader module and its bind group layouts.
	//
	// Parameters:
	//   - p: the pipeline description
	//   - format: the color target format
	//
	// Returns:
	//   - RenderPipeline: the created pipeline
	//   - error: an error if shader compilation or pipeline creation fails
	CreateRenderPipeline(p pipeline.Pipeline, format wgpu.TextureFormat) (RenderPipeline, error)

	// CreateBindGroup binds a single buffer at binding 0 of one of the pipeline's bind group layouts.
	//
	// Parameters:
	//   - label: debug label
	//   - p: the pipeline whose layout to use
	//   - group: the bind group index
	//   - buf: the buffer bound at binding 0
	//
	// Returns:
	//   - BindGroup: the created bind group
	//   - error: an error if the pipeline has no such group or the device rejects it
	CreateBindGroup(label string, p RenderPipeline, group uint32, buf Buffer) (BindGroup, error)

	// WriteBuffer enqueues a write into a buffer. Writes are ordered before later submissions.
	//
	// Parameters:
	//   - buf: the destination buffer
	//   - offset: the destination offset in bytes
	//   - data: the bytes to write
	//
	// Returns:
	//   - error: an error if the device rejects the write
	WriteBuffer(buf Buffer, offset uint64, data []byte) error

	// AcquireSurfaceTexture acquires the next surface image to render into.
	//
	// Returns:
	//   - Texture: the surface image, sized to the current surface configuration
	//   - error: ErrSurfaceAcquire (wrapped) if no image is available
	AcquireSurfaceTexture() (Texture, error)

	// CreateDepthTexture creates a depth target.
	//
	// Parameters:
	//   - width, height: size in pixels, which must match the color attachment
	//
	// Returns:
	//   - Texture: the depth target
	//   - error: an error if the device rejects the texture
	CreateDepthTexture(width, height int) (Texture, error)

	// CreateCommandEncoder creates a command encoder for one frame.
	//
	// Returns:
	//   - CommandEncoder: the encoder
	//   - error: an error if the device rejects it
	CreateCommandEncoder() (CommandEncoder, error)

	// Submit submits a finished command buffer to the queue.
	//
	// Parameters:
	//   - cmd: the command buffer to submit
	Submit(cmd CommandBuffer)

	// Present presents the most recently acquired surface image.
	Present()

	// Release frees the surface, device, adapter and instance.
	Release()
}
