package shader

import (
	"errors"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrbitShader(t *testing.T) {
	s, err := ForLayout(model.VertexLayout3D)
	require.NoError(t, err)

	assert.Equal(t, "vs_main", s.VertexEntryPoint())
	assert.Equal(t, "fs_main", s.FragmentEntryPoint())
	assert.Contains(t, s.Source(), "struct CameraUniform")
	assert.NotContains(t, s.Source(), includePrefix)
	assert.Equal(t, s.Source(), s.Module().WGSLDescriptor.Code)

	layout := s.VertexLayout()
	assert.Equal(t, model.VertexLayout3D.StrideBytes(), layout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, layout.StepMode)
	require.Len(t, layout.Attributes, 2)
	assert.Equal(t, wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0}, layout.Attributes[0])
	assert.Equal(t, wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1}, layout.Attributes[1])

	groups := s.BindGroupLayoutDescriptors()
	require.Len(t, groups, 1)
	entries := groups[0].Entries
	require.Len(t, entries, 1)
	assert.Equal(t, uint32(0), entries[0].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex, entries[0].Visibility)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, entries[0].Buffer.Type)
	assert.Equal(t, uint64(128), entries[0].Buffer.MinBindingSize)
	assert.Equal(t, "camera", s.BindGroupVarName(0, 0))
	assert.Equal(t, "", s.BindGroupVarName(1, 0))
}

func TestFlatShader(t *testing.T) {
	s, err := ForLayout(model.VertexLayout2D)
	require.NoError(t, err)

	layout := s.VertexLayout()
	assert.Equal(t, model.VertexLayout2D.StrideBytes(), layout.ArrayStride)
	require.Len(t, layout.Attributes, 2)
	assert.Equal(t, wgpu.VertexFormatFloat32x2, layout.Attributes[0].Format)
	assert.Equal(t, uint64(8), layout.Attributes[1].Offset)
	assert.Empty(t, s.BindGroupLayoutDescriptors())
}

func TestForLayoutUnknown(t *testing.T) {
	_, err := ForLayout(model.VertexLayout(42))
	assert.True(t, errors.Is(err, ErrInvalidShader))
}

func TestNewShaderRequiresEntryPoints(t *testing.T) {
	src := strings.Replace(FlatSource, "@fragment", "", 1)
	_, err := NewShader("broken", src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidShader))
}

func TestNewShaderRequiresVertexInput(t *testing.T) {
	src := `
struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
};

@vertex
fn vs_main(@builtin(vertex_index) i: u32) -> VertexOutput {
    var out: VertexOutput;
    return out;
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0);
}
`
	_, err := NewShader("no-input", src)
	assert.True(t, errors.Is(err, ErrInvalidShader))
}

func TestExpandIncludes(t *testing.T) {
	out, err := expandIncludes("//@viewer:include camera\n//@viewer:include camera\nfn f() {}")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "struct CameraUniform"))
	assert.True(t, strings.HasSuffix(out, "fn f() {}"))

	_, err = expandIncludes("//@viewer:include lights")
	assert.Error(t, err)

	_, err = expandIncludes("//@viewer:include")
	assert.Error(t, err)
}

func TestStructLayoutPadding(t *testing.T) {
	structs := parseStructBlocks(`
struct Inner { a: vec3<f32>, b: f32, };
struct Outer { inner: Inner, m: mat4x4<f32>, c: vec2<f32>, };
`)
	sizes := structLayouts(structs)
	assert.Equal(t, typeLayout{size: 16, align: 16}, sizes["Inner"])
	assert.Equal(t, typeLayout{size: 96, align: 16}, sizes["Outer"])
}
