package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// DepthFormat is the format of the per-frame depth target.
const DepthFormat = wgpu.TextureFormatDepth24Plus

// pipeline is the implementation of the Pipeline interface.
// It holds every fixed-function setting needed to create a render pipeline; it owns no GPU objects.
type pipeline struct {
	pipelineKey string

	shader shader.Shader
	layout model.VertexLayout

	depthTestEnabled  bool
	depthWriteEnabled bool
	depthCompare      wgpu.CompareFunction
	depthFormat       wgpu.TextureFormat
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline defines the interface for a render pipeline description: the shader, the vertex layout
// it consumes, and the primitive, depth and color target state. The backend turns a Pipeline into
// a GPU render pipeline.
type Pipeline interface {
	// PipelineKey returns the unique key of this pipeline, used as the GPU debug label.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader returns the shader module providing both entry points.
	//
	// Returns:
	//   - shader.Shader: the pipeline's shader
	Shader() shader.Shader

	// VertexLayout returns the geometry layout this pipeline draws.
	//
	// Returns:
	//   - model.VertexLayout: the interleaved vertex layout
	VertexLayout() model.VertexLayout

	// VertexBufferLayout returns the layout of vertex buffer slot 0, parsed from the shader's vertex input.
	//
	// Returns:
	//   - wgpu.VertexBufferLayout: the buffer layout
	VertexBufferLayout() wgpu.VertexBufferLayout

	// DepthTestEnabled returns whether fragments are tested against the depth target.
	//
	// Returns:
	//   - bool: true if depth testing is enabled
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether fragments write to the depth target.
	//
	// Returns:
	//   - bool: true if depth writing is enabled
	DepthWriteEnabled() bool

	// DepthCompare returns the effective depth compare function. It is CompareFunctionAlways when depth testing is disabled.
	//
	// Returns:
	//   - wgpu.CompareFunction: the compare function
	DepthCompare() wgpu.CompareFunction

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding order treated as front facing.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order
	FrontFace() wgpu.FrontFace

	// PrimitiveState returns topology, winding and culling as one wgpu state.
	//
	// Returns:
	//   - wgpu.PrimitiveState: the primitive state
	PrimitiveState() wgpu.PrimitiveState

	// DepthStencilState returns the depth state. A depth attachment is always present so the
	// render pass shape is the same for every pipeline; disabled testing compares Always.
	//
	// Returns:
	//   - *wgpu.DepthStencilState: the depth stencil state
	DepthStencilState() *wgpu.DepthStencilState

	// ColorTarget returns the color target state for the given surface format.
	//
	// Parameters:
	//   - format: the surface texture format
	//
	// Returns:
	//   - wgpu.ColorTargetState: the color target, with blending only when enabled
	ColorTarget(format wgpu.TextureFormat) wgpu.ColorTargetState

	// Validate checks that the shader's vertex input matches the pipeline's vertex layout.
	//
	// Returns:
	//   - error: an error if the strides or the position component count disagree
	Validate() error
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a Pipeline with depth test and write enabled (LessEqual against
// Depth24Plus), no culling, triangle list topology, counter-clockwise front faces and no blending.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - s: the shader providing the vertex and fragment entry points
//   - layout: the vertex layout of the geometry drawn with this pipeline
//   - opts: builder options applied after the defaults
//
// Returns:
//   - Pipeline: the configured pipeline description
func NewPipeline(pipelineKey string, s shader.Shader, layout model.VertexLayout, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		shader:            s,
		layout:            layout,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		depthCompare:      wgpu.CompareFunctionLessEqual,
		depthFormat:       DepthFormat,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ForLayout builds the viewer's pipeline for a geometry layout.
// The 3D path culls back faces and depth tests with LessEqual; the 2D path disables culling
// and depth testing.
//
// Parameters:
//   - layout: the vertex layout of the geometry
//
// Returns:
//   - Pipeline: the validated pipeline description
//   - error: an error if no shader exists for the layout or the shader does not match it
func ForLayout(layout model.VertexLayout) (Pipeline, error) {
	s, err := shader.ForLayout(layout)
	if err != nil {
		return nil, err
	}

	var p Pipeline
	switch layout {
	case model.VertexLayout2D:
		p = NewPipeline("Flat Pipeline", s, layout,
			WithDepthTestEnabled(false),
			WithDepthWriteEnabled(false),
		)
	default:
		p = NewPipeline("Orbit Pipeline", s, layout,
			WithCullMode(wgpu.CullModeBack),
		)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) VertexLayout() model.VertexLayout {
	return p.layout
}

func (p *pipeline) VertexBufferLayout() wgpu.VertexBufferLayout {
	return p.shader.VertexLayout()
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthCompare() wgpu.CompareFunction {
	if !p.depthTestEnabled {
		return wgpu.CompareFunctionAlways
	}
	return p.depthCompare
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) PrimitiveState() wgpu.PrimitiveState {
	return wgpu.PrimitiveState{
		Topology:  p.topology,
		FrontFace: p.frontFace,
		CullMode:  p.cullMode,
	}
}

func (p *pipeline) DepthStencilState() *wgpu.DepthStencilState {
	return &wgpu.DepthStencilState{
		Format:            p.depthFormat,
		DepthWriteEnabled: p.depthWriteEnabled,
		DepthCompare:      p.DepthCompare(),
		StencilFront: wgpu.StencilFaceState{
			Compare: wgpu.CompareFunctionAlways,
		},
		StencilBack: wgpu.StencilFaceState{
			Compare: wgpu.CompareFunctionAlways,
		},
	}
}

func (p *pipeline) ColorTarget(format wgpu.TextureFormat) wgpu.ColorTargetState {
	state := wgpu.ColorTargetState{
		Format:    format,
		WriteMask: p.writeMask,
	}
	if p.blendEnabled {
		state.Blend = p.blendState
	}
	return state
}

func (p *pipeline) Validate() error {
	if p.shader == nil {
		return fmt.Errorf("pipeline %s: no shader", p.pipelineKey)
	}
	vbl := p.shader.VertexLayout()
	if vbl.ArrayStride != p.layout.StrideBytes() {
		return fmt.Errorf("pipeline %s: shader stride %d does not match %s layout stride %d",
			p.pipelineKey, vbl.ArrayStride, p.layout, p.layout.StrideBytes())
	}
	if len(vbl.Attributes) == 0 {
		return fmt.Errorf("pipeline %s: shader declares no vertex attributes", p.pipelineKey)
	}
	want := wgpu.VertexFormatFloat32x3
	if p.layout.PositionComponents() == 2 {
		want = wgpu.VertexFormatFloat32x2
	}
	if vbl.Attributes[0].Format != want {
		return fmt.Errorf("pipeline %s: position attribute does not match %s layout", p.pipelineKey, p.layout)
	}
	return nil
}
