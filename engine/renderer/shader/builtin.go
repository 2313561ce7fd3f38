package shader

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
)

// OrbitSource is the 3D path: it transforms vec3 positions by the camera uniform at group 0 binding 0.
//
//go:embed assets/orbit.wgsl
var OrbitSource string

// FlatSource is the 2D path: vec2 positions pass straight through to clip space and no bindings are declared.
//
//go:embed assets/flat.wgsl
var FlatSource string

// ForLayout returns the built-in shader matching a vertex layout.
//
// Parameters:
//   - layout: the vertex layout of the geometry to draw
//
// Returns:
//   - Shader: the parsed built-in shader
//   - error: an error if the layout is unknown or the embedded source fails to parse
func ForLayout(layout model.VertexLayout) (Shader, error) {
	switch layout {
	case model.VertexLayout3D:
		return NewShader("Orbit Shader", OrbitSource)
	case model.VertexLayout2D:
		return NewShader("Flat Shader", FlatSource)
	default:
		return nil, fmt.Errorf("no built-in shader for layout %s: %w", layout, ErrInvalidShader)
	}
}
