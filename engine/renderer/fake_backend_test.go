package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeHandle is a releasable handle that records its own lifetime.
type fakeHandle struct {
	kind     string
	released int
	width    int
	height   int
	size     uint64
	log      *[]string
}

func (h *fakeHandle) Release() {
	h.released++
	*h.log = append(*h.log, "release "+h.kind)
}

func (h *fakeHandle) Size() uint64 { return h.size }
func (h *fakeHandle) Width() int   { return h.width }
func (h *fakeHandle) Height() int  { return h.height }

type fakeWrite struct {
	buffer *fakeHandle
	offset uint64
	data   []byte
}

type fakeDraw struct {
	pipeline    RenderPipeline
	vertexSlot  uint32
	vertex      Buffer
	bindGroups  map[uint32]BindGroup
	vertexCount uint32
}

// fakeBackend is a recording RendererBackend. Every call is appended to log in order.
type fakeBackend struct {
	log []string

	format        wgpu.TextureFormat
	width, height int

	writes   []fakeWrite
	passes   []RenderPassDescriptor
	draws    []fakeDraw
	depths   []*fakeHandle
	surfaces []*fakeHandle
	handles  []*fakeHandle

	pipelines []pipeline.Pipeline

	failAcquire  bool
	failPipeline bool
	failEncoder  bool
}

var _ RendererBackend = &fakeBackend{}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{format: wgpu.TextureFormatBGRA8Unorm, width: 800, height: 600}
}

func (f *fakeBackend) handle(kind string) *fakeHandle {
	h := &fakeHandle{kind: kind, log: &f.log}
	f.handles = append(f.handles, h)
	return h
}

func (f *fakeBackend) SurfaceFormat() wgpu.TextureFormat { return f.format }

func (f *fakeBackend) SurfaceSize() (int, int) { return f.width, f.height }

func (f *fakeBackend) ConfigureSurface(width, height int) error {
	f.log = append(f.log, fmt.Sprintf("configure %dx%d", width, height))
	if width > 0 && height > 0 {
		f.width, f.height = width, height
	}
	return nil
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) {
	f.log = append(f.log, "present mode "+mode.String())
}

func (f *fakeBackend) CreateVertexBuffer(label string, data []byte) (Buffer, error) {
	f.log = append(f.log, "create vertex buffer")
	h := f.handle("vertex buffer")
	h.size = uint64(len(data))
	return h, nil
}

func (f *fakeBackend) CreateUniformBuffer(label string, size uint64) (Buffer, error) {
	f.log = append(f.log, "create uniform buffer")
	h := f.handle("uniform buffer")
	h.size = size
	return h, nil
}

func (f *fakeBackend) CreateRenderPipeline(p pipeline.Pipeline, format wgpu.TextureFormat) (RenderPipeline, error) {
	f.log = append(f.log, "create pipeline")
	if f.failPipeline {
		return nil, errors.New("shader rejected")
	}
	f.pipelines = append(f.pipelines, p)
	return f.handle("pipeline"), nil
}

func (f *fakeBackend) CreateBindGroup(label string, p RenderPipeline, group uint32, buf Buffer) (BindGroup, error) {
	f.log = append(f.log, fmt.Sprintf("create bind group %d", group))
	return f.handle("bind group"), nil
}

func (f *fakeBackend) WriteBuffer(buf Buffer, offset uint64, data []byte) error {
	f.log = append(f.log, "write buffer")
	f.writes = append(f.writes, fakeWrite{buffer: buf.(*fakeHandle), offset: offset, data: append([]byte(nil), data...)})
	return nil
}

func (f *fakeBackend) AcquireSurfaceTexture() (Texture, error) {
	f.log = append(f.log, "acquire surface")
	if f.failAcquire {
		return nil, fmt.Errorf("%w: outdated", ErrSurfaceAcquire)
	}
	h := f.handle("surface")
	h.width, h.height = f.width, f.height
	f.surfaces = append(f.surfaces, h)
	return h, nil
}

func (f *fakeBackend) CreateDepthTexture(width, height int) (Texture, error) {
	f.log = append(f.log, fmt.Sprintf("create depth %dx%d", width, height))
	h := f.handle("depth")
	h.width, h.height = width, height
	f.depths = append(f.depths, h)
	return h, nil
}

func (f *fakeBackend) CreateCommandEncoder() (CommandEncoder, error) {
	f.log = append(f.log, "create encoder")
	if f.failEncoder {
		return nil, errors.New("device lost")
	}
	return &fakeEncoder{backend: f, handle: f.handle("encoder")}, nil
}

func (f *fakeBackend) Submit(cmd CommandBuffer) {
	f.log = append(f.log, "submit")
}

func (f *fakeBackend) Present() {
	f.log = append(f.log, "present")
}

func (f *fakeBackend) Release() {
	f.log = append(f.log, "release backend")
}

// outstanding returns the handles that were never released.
func (f *fakeBackend) outstanding() []string {
	var out []string
	for _, h := range f.handles {
		if h.released == 0 {
			out = append(out, h.kind)
		}
	}
	return out
}

type fakeEncoder struct {
	backend *fakeBackend
	handle  *fakeHandle
}

func (e *fakeEncoder) BeginRenderPass(desc RenderPassDescriptor) RenderPassEncoder {
	e.backend.log = append(e.backend.log, "begin pass")
	e.backend.passes = append(e.backend.passes, desc)
	return &fakePass{backend: e.backend, draw: fakeDraw{bindGroups: map[uint32]BindGroup{}}}
}

func (e *fakeEncoder) Finish() (CommandBuffer, error) {
	e.backend.log = append(e.backend.log, "finish")
	return e.backend.handle("command buffer"), nil
}

func (e *fakeEncoder) Release() {
	e.handle.Release()
}

type fakePass struct {
	backend *fakeBackend
	draw    fakeDraw
}

func (p *fakePass) SetPipeline(rp RenderPipeline) {
	p.draw.pipeline = rp
}

func (p *fakePass) SetVertexBuffer(slot uint32, buf Buffer) {
	p.draw.vertexSlot = slot
	p.draw.vertex = buf
}

func (p *fakePass) SetBindGroup(index uint32, bg BindGroup) {
	p.draw.bindGroups[index] = bg
}

func (p *fakePass) Draw(vertexCount uint32) {
	p.backend.log = append(p.backend.log, fmt.Sprintf("draw %d", vertexCount))
	p.draw.vertexCount = vertexCount
	p.backend.draws = append(p.backend.draws, p.draw)
}

func (p *fakePass) End() {
	p.backend.log = append(p.backend.log, "end pass")
}
