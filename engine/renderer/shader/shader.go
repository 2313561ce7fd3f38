package shader

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrInvalidShader is returned when WGSL source is missing an entry point or a vertex input struct.
var ErrInvalidShader = errors.New("invalid shader")

// shader is the implementation of the Shader interface.
// It holds the pre-processed source and the layout metadata parsed from it.
type shader struct {
	key    string
	source string

	vertexEntryPoint   string
	fragmentEntryPoint string

	vertexLayout               wgpu.VertexBufferLayout
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string

	module *wgpu.ShaderModuleDescriptor
}

// Shader defines the interface for a parsed WGSL module that carries both a vertex and a
// fragment entry point. It exposes the layout metadata the pipeline needs: the vertex buffer
// layout of the vertex input struct and the bind group layouts of every @group/@binding declaration.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used as the GPU debug label.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the pre-processed WGSL source code.
	//
	// Returns:
	//   - string: the WGSL source with all includes expanded
	Source() string

	// VertexEntryPoint returns the name of the @vertex function.
	//
	// Returns:
	//   - string: the vertex entry point (e.g. "vs_main")
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function.
	//
	// Returns:
	//   - string: the fragment entry point (e.g. "fs_main")
	FragmentEntryPoint() string

	// VertexLayout returns the vertex buffer layout derived from the vertex input struct.
	// Attribute formats and offsets follow the struct's field order; the array stride is the packed size.
	//
	// Returns:
	//   - wgpu.VertexBufferLayout: the layout for vertex buffer slot 0
	VertexLayout() wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptors retrieves all parsed bind group layout descriptors keyed by group index.
	// Buffer entries carry a MinBindingSize resolved from the bound WGSL type.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name declared at a group and binding.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or an empty string if nothing is declared there
	BindGroupVarName(group, binding int) string

	// Module returns the shader module descriptor built from the pre-processed source.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader pre-processes and parses WGSL source into a Shader.
// Every bind group entry is given vertex visibility, since the viewer's uniforms are
// only read by the vertex stage.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - source: the raw WGSL source, optionally containing //@viewer:include lines
//
// Returns:
//   - Shader: the parsed shader
//   - error: ErrInvalidShader (wrapped) if an entry point or vertex input is missing, or an include error
func NewShader(key, source string) (Shader, error) {
	processed, err := expandIncludes(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}

	s := &shader{
		key:                key,
		source:             processed,
		vertexEntryPoint:   parseEntryPoint(processed, stageVertex),
		fragmentEntryPoint: parseEntryPoint(processed, stageFragment),
	}
	if s.vertexEntryPoint == "" || s.fragmentEntryPoint == "" {
		return nil, fmt.Errorf("shader %s: missing @vertex or @fragment entry point: %w", key, ErrInvalidShader)
	}

	layout, ok := parseVertexLayout(processed)
	if !ok {
		return nil, fmt.Errorf("shader %s: no vertex input struct: %w", key, ErrInvalidShader)
	}
	s.vertexLayout = layout
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(processed, wgpu.ShaderStageVertex)

	s.module = &wgpu.ShaderModuleDescriptor{
		Label: key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: processed,
		},
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntryPoint
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntryPoint
}

func (s *shader) VertexLayout() wgpu.VertexBufferLayout {
	return s.vertexLayout
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.bindingVarNames[group] == nil {
		return ""
	}
	return s.bindingVarNames[group][binding]
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
