package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewFrameRenderer.
type RendererBuilderOption func(*frameRenderer)

// WithLogger sets the logger used for configuration and frame failures.
//
// Parameters:
//   - logger: the zap logger to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(logger *zap.Logger) RendererBuilderOption {
	return func(r *frameRenderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClearColor overrides the color the surface is cleared to at the start of every frame.
// The default is opaque light gray (0.8, 0.8, 0.8, 1).
//
// Parameters:
//   - color: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(color wgpu.Color) RendererBuilderOption {
	return func(r *frameRenderer) {
		r.clearColor = color
	}
}

// WGPUBackendOption is a functional option applied to the wgpu backend during construction via NewWGPURendererBackend.
type WGPUBackendOption func(*wgpuRendererBackendImpl)

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - WGPUBackendOption: a function that applies the force software renderer option to a backend
func WithForceSoftwareRenderer(force bool) WGPUBackendOption {
	return func(b *wgpuRendererBackendImpl) {
		b.forceFallbackAdapter = force
	}
}

// WithPresentMode sets the initial surface present mode.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - WGPUBackendOption: a function that applies the present mode option to a backend
func WithPresentMode(mode PresentMode) WGPUBackendOption {
	return func(b *wgpuRendererBackendImpl) {
		if mode == PresentModeUncapped {
			b.presentMode = wgpu.PresentModeImmediate
		}
	}
}

// WithBackendLogger sets the logger used by the wgpu backend.
//
// Parameters:
//   - logger: the zap logger to use
//
// Returns:
//   - WGPUBackendOption: a function that applies the logger option to a backend
func WithBackendLogger(logger *zap.Logger) WGPUBackendOption {
	return func(b *wgpuRendererBackendImpl) {
		if logger != nil {
			b.logger = logger
		}
	}
}
