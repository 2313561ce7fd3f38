package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	alphaMode     wgpu.CompositeAlphaMode
	width         int
	height        int

	presentMode          wgpu.PresentMode // defaults to PresentModeFifo (VSync)
	forceFallbackAdapter bool

	logger *zap.Logger
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// NewWGPURendererBackend creates the instance, surface, adapter, device and queue for a window surface.
// The calling goroutine is locked to its OS thread, as the surface belongs to the window's thread.
// Failures are returned instead of panicking so the host can report them.
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor of the window
//   - opts: backend builder options
//
// Returns:
//   - RendererBackend: the ready backend; ConfigureSurface must be called before the first frame
//   - error: ErrNoAdapter or ErrUnsupported (wrapped) when the GPU cannot serve the surface
func NewWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, opts ...WGPUBackendOption) (RendererBackend, error) {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		presentMode: wgpu.PresentModeFifo,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.instance = wgpu.CreateInstance(nil)
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: b.forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil || a == nil {
		b.Release()
		return nil, fmt.Errorf("%w: %v", ErrNoAdapter, err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Viewer Device",
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("%w: request device: %v", ErrUnsupported, err)
	}
	b.device = d
	b.queue = d.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 || len(capabilities.AlphaModes) == 0 {
		b.Release()
		return nil, fmt.Errorf("%w: surface reports no formats", ErrUnsupported)
	}
	b.surfaceFormat = capabilities.Formats[0]
	b.alphaMode = capabilities.AlphaModes[0]

	b.logger.Info("gpu device acquired",
		zap.Bool("fallback_adapter", b.forceFallbackAdapter),
		zap.Any("surface_format", b.surfaceFormat),
	)
	return b, nil
}

func (b *wgpuRendererBackendImpl) SurfaceFormat() wgpu.TextureFormat {
	return b.surfaceFormat
}

func (b *wgpuRendererBackendImpl) SurfaceSize() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		b.logger.Debug("skipping surface configure for empty size", zap.Int("width", width), zap.Int("height", height))
		return nil
	}

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   b.alphaMode,
	})
	b.width = width
	b.height = height
	return nil
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) CreateVertexBuffer(label string, data []byte) (Buffer, error) {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             uint64(len(data)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	if err := b.queue.WriteBuffer(buf, 0, data); err != nil {
		buf.Release()
		return nil, err
	}
	return &wgpuBuffer{buffer: buf, size: uint64(len(data))}, nil
}

func (b *wgpuRendererBackendImpl) CreateUniformBuffer(label string, size uint64) (Buffer, error) {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	return &wgpuBuffer{buffer: buf, size: size}, nil
}

func (b *wgpuRendererBackendImpl) CreateRenderPipeline(p pipeline.Pipeline, format wgpu.TextureFormat) (RenderPipeline, error) {
	s := p.Shader()
	module, err := b.device.CreateShaderModule(s.Module())
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader %s: %w", s.Key(), err)
	}
	out := &wgpuRenderPipeline{module: module}

	descriptors := s.BindGroupLayoutDescriptors()
	maxGroup := -1
	for g := range descriptors {
		maxGroup = max(maxGroup, g)
	}
	for g := 0; g <= maxGroup; g++ {
		desc := descriptors[g]
		desc.Label = fmt.Sprintf("%s Group %d", p.PipelineKey(), g)
		layout, layoutErr := b.device.CreateBindGroupLayout(&desc)
		if layoutErr != nil {
			out.Release()
			return nil, fmt.Errorf("failed to create bind group layout for group %d: %w", g, layoutErr)
		}
		out.bindGroupLayouts = append(out.bindGroupLayouts, layout)
	}

	out.layout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: out.bindGroupLayouts,
	})
	if err != nil {
		out.Release()
		return nil, err
	}

	out.pipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: out.layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: s.VertexEntryPoint(),
			Buffers:    []wgpu.VertexBufferLayout{p.VertexBufferLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: s.FragmentEntryPoint(),
			Targets:    []wgpu.ColorTargetState{p.ColorTarget(format)},
		},
		Primitive: p.PrimitiveState(),
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: p.DepthStencilState(),
	})
	if err != nil {
		out.Release()
		return nil, err
	}
	return out, nil
}

func (b *wgpuRendererBackendImpl) CreateBindGroup(label string, p RenderPipeline, group uint32, buf Buffer) (BindGroup, error) {
	rp, ok := p.(*wgpuRenderPipeline)
	if !ok || int(group) >= len(rp.bindGroupLayouts) {
		return nil, fmt.Errorf("pipeline has no bind group layout %d", group)
	}
	wb, ok := buf.(*wgpuBuffer)
	if !ok {
		return nil, fmt.Errorf("buffer was not created by this backend")
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: rp.bindGroupLayouts[group],
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  wb.buffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return nil, err
	}
	return &wgpuBindGroup{bindGroup: bindGroup}, nil
}

func (b *wgpuRendererBackendImpl) WriteBuffer(buf Buffer, offset uint64, data []byte) error {
	wb, ok := buf.(*wgpuBuffer)
	if !ok {
		return fmt.Errorf("buffer was not created by this backend")
	}
	return b.queue.WriteBuffer(wb.buffer, offset, data)
}

func (b *wgpuRendererBackendImpl) AcquireSurfaceTexture() (Texture, error) {
	b.mu.Lock()
	width, height := b.width, b.height
	b.mu.Unlock()

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSurfaceAcquire, err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return nil, fmt.Errorf("%w: create view: %v", ErrSurfaceAcquire, err)
	}
	return &wgpuTexture{texture: surfaceTexture, view: view, width: width, height: height}, nil
}

func (b *wgpuRendererBackendImpl) CreateDepthTexture(width, height int) (Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid depth texture size %dx%d", width, height)
	}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        pipeline.DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}
	return &wgpuTexture{texture: tex, view: view, width: width, height: height}, nil
}

func (b *wgpuRendererBackendImpl) CreateCommandEncoder() (CommandEncoder, error) {
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, err
	}
	return &wgpuCommandEncoder{encoder: encoder}, nil
}

func (b *wgpuRendererBackendImpl) Submit(cmd CommandBuffer) {
	if wc, ok := cmd.(*wgpuCommandBuffer); ok {
		b.queue.Submit(wc.buffer)
	}
}

func (b *wgpuRendererBackendImpl) Present() {
	b.surface.Present()
}

func (b *wgpuRendererBackendImpl) Release() {
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

type wgpuBuffer struct {
	buffer *wgpu.Buffer
	size   uint64
}

func (wb *wgpuBuffer) Size() uint64 {
	return wb.size
}

func (wb *wgpuBuffer) Release() {
	wb.buffer.Release()
}

type wgpuTexture struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	width   int
	height  int
}

func (wt *wgpuTexture) Width() int {
	return wt.width
}

func (wt *wgpuTexture) Height() int {
	return wt.height
}

func (wt *wgpuTexture) Release() {
	wt.view.Release()
	wt.texture.Release()
}

type wgpuRenderPipeline struct {
	module           *wgpu.ShaderModule
	bindGroupLayouts []*wgpu.BindGroupLayout
	layout           *wgpu.PipelineLayout
	pipeline         *wgpu.RenderPipeline
}

func (rp *wgpuRenderPipeline) Release() {
	if rp.pipeline != nil {
		rp.pipeline.Release()
	}
	if rp.layout != nil {
		rp.layout.Release()
	}
	for _, l := range rp.bindGroupLayouts {
		l.Release()
	}
	if rp.module != nil {
		rp.module.Release()
	}
}

type wgpuBindGroup struct {
	bindGroup *wgpu.BindGroup
}

func (bg *wgpuBindGroup) Release() {
	bg.bindGroup.Release()
}

type wgpuCommandBuffer struct {
	buffer *wgpu.CommandBuffer
}

func (cb *wgpuCommandBuffer) Release() {
	cb.buffer.Release()
}

type wgpuCommandEncoder struct {
	encoder *wgpu.CommandEncoder
}

func (ce *wgpuCommandEncoder) BeginRenderPass(desc RenderPassDescriptor) RenderPassEncoder {
	color := desc.Color.(*wgpuTexture)
	depth := desc.Depth.(*wgpuTexture)
	pass := ce.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       color.view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: desc.ClearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            depth.view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: desc.DepthClearValue,
		},
	})
	return &wgpuRenderPass{pass: pass}
}

func (ce *wgpuCommandEncoder) Finish() (CommandBuffer, error) {
	cmd, err := ce.encoder.Finish(nil)
	if err != nil {
		return nil, err
	}
	return &wgpuCommandBuffer{buffer: cmd}, nil
}

func (ce *wgpuCommandEncoder) Release() {
	ce.encoder.Release()
}

type wgpuRenderPass struct {
	pass *wgpu.RenderPassEncoder
}

func (rp *wgpuRenderPass) SetPipeline(p RenderPipeline) {
	if wp, ok := p.(*wgpuRenderPipeline); ok {
		rp.pass.SetPipeline(wp.pipeline)
	}
}

func (rp *wgpuRenderPass) SetVertexBuffer(slot uint32, buf Buffer) {
	if wb, ok := buf.(*wgpuBuffer); ok {
		rp.pass.SetVertexBuffer(slot, wb.buffer, 0, wgpu.WholeSize)
	}
}

func (rp *wgpuRenderPass) SetBindGroup(index uint32, bg BindGroup) {
	if wg, ok := bg.(*wgpuBindGroup); ok {
		rp.pass.SetBindGroup(index, wg.bindGroup, nil)
	}
}

func (rp *wgpuRenderPass) Draw(vertexCount uint32) {
	rp.pass.Draw(vertexCount, 1, 0, 0)
}

func (rp *wgpuRenderPass) End() {
	rp.pass.End()
}
