package renderer

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configured(t *testing.T, g model.Geometry) (*fakeBackend, FrameRenderer) {
	t.Helper()
	b := newFakeBackend()
	r := NewFrameRenderer(b)
	require.NoError(t, r.Configure(b.SurfaceFormat(), g))
	require.Equal(t, StateReady, r.State())
	b.log = nil
	return b, r
}

func TestConfigureCube(t *testing.T) {
	b := newFakeBackend()
	r := NewFrameRenderer(b)
	assert.Equal(t, StateUnconfigured, r.State())
	assert.Nil(t, r.Pipeline())

	require.NoError(t, r.Configure(b.SurfaceFormat(), model.Cube()))

	assert.Equal(t, []string{
		"create vertex buffer",
		"create uniform buffer",
		"create pipeline",
		"create bind group 0",
	}, b.log)
	assert.Equal(t, uint64(36*28), b.handles[0].size)
	assert.Equal(t, uint64(128), b.handles[1].size)
	require.Len(t, b.pipelines, 1)
	assert.Equal(t, wgpu.CullModeBack, b.pipelines[0].CullMode())
	assert.Equal(t, wgpu.CompareFunctionLessEqual, b.pipelines[0].DepthCompare())
	assert.Equal(t, r.Pipeline(), b.pipelines[0])
}

func TestConfigureTwiceFails(t *testing.T) {
	b, r := configured(t, model.Cube())
	err := r.Configure(b.SurfaceFormat(), model.Cube())
	assert.True(t, errors.Is(err, ErrAlreadyConfigured))
	assert.Empty(t, b.log)
}

func TestConfigureRejectsMalformedGeometry(t *testing.T) {
	b := newFakeBackend()
	r := NewFrameRenderer(b)

	err := r.Configure(b.SurfaceFormat(), model.Geometry{Label: "bad", Layout: model.VertexLayout3D, Vertices: make([]float32, 10)})
	assert.True(t, errors.Is(err, model.ErrMalformedGeometry))
	assert.Equal(t, StateUnconfigured, r.State())
	assert.Empty(t, b.log)
}

func TestConfigureFailureReleasesPartialResources(t *testing.T) {
	b := newFakeBackend()
	b.failPipeline = true
	r := NewFrameRenderer(b)

	err := r.Configure(b.SurfaceFormat(), model.Cube())
	assert.True(t, errors.Is(err, ErrDevice))
	assert.Equal(t, StateUnconfigured, r.State())
	assert.Empty(t, b.outstanding())
}

func TestRenderBeforeConfigure(t *testing.T) {
	r := NewFrameRenderer(newFakeBackend())
	err := r.RenderFrame(camera.NewCamera())
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestRenderFrameProtocol(t *testing.T) {
	b, r := configured(t, model.Cube())
	cam := camera.NewCamera()
	cam.UpdateProjection(800.0 / 600.0)

	require.NoError(t, r.RenderFrame(cam))

	assert.Equal(t, []string{
		"write buffer",
		"acquire surface",
		"create depth 800x600",
		"create encoder",
		"begin pass",
		"draw 36",
		"end pass",
		"finish",
		"submit",
		"present",
		"release command buffer",
		"release encoder",
		"release depth",
		"release surface",
	}, b.log)

	require.Len(t, b.writes, 1)
	w := b.writes[0]
	assert.Equal(t, "uniform buffer", w.buffer.kind)
	assert.Equal(t, uint64(0), w.offset)
	require.Len(t, w.data, 128)

	s := cam.Snapshot()
	for i := 0; i < 16; i++ {
		assert.Equal(t, s.View[i], math.Float32frombits(binary.LittleEndian.Uint32(w.data[i*4:])))
		assert.Equal(t, s.Projection[i], math.Float32frombits(binary.LittleEndian.Uint32(w.data[64+i*4:])))
	}

	require.Len(t, b.passes, 1)
	pass := b.passes[0]
	assert.Equal(t, DefaultClearColor, pass.ClearColor)
	assert.Equal(t, float32(1.0), pass.DepthClearValue)
	assert.Same(t, b.surfaces[0], pass.Color)
	assert.Same(t, b.depths[0], pass.Depth)

	require.Len(t, b.draws, 1)
	d := b.draws[0]
	assert.Equal(t, uint32(36), d.vertexCount)
	assert.Equal(t, uint32(0), d.vertexSlot)
	assert.NotNil(t, d.pipeline)
	assert.Equal(t, "vertex buffer", d.vertex.(*fakeHandle).kind)
	require.Contains(t, d.bindGroups, uint32(0))

	assert.Equal(t, Stats{Frames: 1, DepthAllocated: 1, DepthReleased: 1}, r.Stats())
	assert.Equal(t, StateReady, r.State())
}

func TestDepthTargetPerFrame(t *testing.T) {
	b, r := configured(t, model.Cube())
	cam := camera.NewCamera()

	const frames = 25
	for i := 0; i < frames; i++ {
		if i == 10 {
			require.NoError(t, b.ConfigureSurface(1024, 768))
		}
		require.NoError(t, r.RenderFrame(cam))
	}

	stats := r.Stats()
	assert.Equal(t, uint64(frames), stats.Frames)
	assert.Equal(t, uint64(frames), stats.DepthAllocated)
	assert.Equal(t, uint64(frames), stats.DepthReleased)

	require.Len(t, b.depths, frames)
	for i, d := range b.depths {
		assert.Equal(t, 1, d.released, "depth target %d", i)
		if i < 10 {
			assert.Equal(t, [2]int{800, 600}, [2]int{d.width, d.height})
		} else {
			assert.Equal(t, [2]int{1024, 768}, [2]int{d.width, d.height})
		}
	}
	assert.Len(t, b.writes, frames)
}

func TestUniformReflectsCameraChanges(t *testing.T) {
	b, r := configured(t, model.Cube())
	cam := camera.NewCamera()

	require.NoError(t, r.RenderFrame(cam))
	cam.Orbit(100, 0)
	require.NoError(t, r.RenderFrame(cam))

	require.Len(t, b.writes, 2)
	assert.NotEqual(t, b.writes[0].data[:64], b.writes[1].data[:64])
	assert.Equal(t, b.writes[0].data[64:], b.writes[1].data[64:])
}

func TestSurfaceAcquireFailure(t *testing.T) {
	b, r := configured(t, model.Cube())
	b.failAcquire = true

	err := r.RenderFrame(camera.NewCamera())
	assert.True(t, errors.Is(err, ErrSurfaceAcquire))
	assert.Equal(t, []string{"write buffer", "acquire surface"}, b.log)
	assert.Equal(t, uint64(0), r.Stats().Frames)
	assert.Equal(t, StateReady, r.State())
}

func TestEncoderFailureStillReleasesFrameResources(t *testing.T) {
	b, r := configured(t, model.Cube())
	b.failEncoder = true

	err := r.RenderFrame(camera.NewCamera())
	assert.True(t, errors.Is(err, ErrDevice))

	stats := r.Stats()
	assert.Equal(t, uint64(0), stats.Frames)
	assert.Equal(t, stats.DepthAllocated, stats.DepthReleased)
	assert.Equal(t, 1, b.surfaces[0].released)
	assert.NotContains(t, b.log, "submit")
	assert.NotContains(t, b.log, "present")
}

func TestFlatQuadPath(t *testing.T) {
	b := newFakeBackend()
	r := NewFrameRenderer(b)
	require.NoError(t, r.Configure(b.SurfaceFormat(), model.Quad()))
	assert.NotContains(t, b.log, "create bind group 0")

	require.NoError(t, r.RenderFrame(camera.NewCamera()))
	require.Len(t, b.draws, 1)
	assert.Equal(t, uint32(6), b.draws[0].vertexCount)
	assert.Empty(t, b.draws[0].bindGroups)
	assert.False(t, b.pipelines[0].DepthTestEnabled())
	assert.Equal(t, wgpu.CullModeNone, b.pipelines[0].CullMode())
}

func TestClearColorOption(t *testing.T) {
	b := newFakeBackend()
	c := wgpu.Color{R: 0, G: 0, B: 0, A: 1}
	r := NewFrameRenderer(b, WithClearColor(c))
	require.NoError(t, r.Configure(b.SurfaceFormat(), model.Cube()))
	require.NoError(t, r.RenderFrame(camera.NewCamera()))
	assert.Equal(t, c, b.passes[0].ClearColor)
}

func TestReleaseFreesEverything(t *testing.T) {
	b, r := configured(t, model.Cube())
	for i := 0; i < 3; i++ {
		require.NoError(t, r.RenderFrame(camera.NewCamera()))
	}
	r.Release()
	assert.Empty(t, b.outstanding())

	err := r.RenderFrame(camera.NewCamera())
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestParsePresentMode(t *testing.T) {
	m, err := ParsePresentMode("Uncapped")
	require.NoError(t, err)
	assert.Equal(t, PresentModeUncapped, m)

	m, err = ParsePresentMode("")
	require.NoError(t, err)
	assert.Equal(t, PresentModeVSync, m)

	_, err = ParsePresentMode("mailbox")
	assert.Error(t, err)
}
