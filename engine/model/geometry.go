// Package model holds the static vertex data drawn by the viewer.
package model

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// ErrMalformedGeometry is returned when vertex data does not divide evenly into vertices of the layout's stride.
var ErrMalformedGeometry = errors.New("malformed geometry")

// VertexLayout identifies the interleaved attribute layout of a vertex buffer.
type VertexLayout int

const (
	// VertexLayout3D interleaves a vec3 position and an RGBA color (7 floats per vertex).
	VertexLayout3D VertexLayout = iota

	// VertexLayout2D interleaves a vec2 position and an RGBA color (6 floats per vertex).
	VertexLayout2D
)

// PositionComponents returns the number of position floats per vertex.
//
// Returns:
//   - int: 3 for VertexLayout3D, 2 for VertexLayout2D
func (l VertexLayout) PositionComponents() int {
	if l == VertexLayout2D {
		return 2
	}
	return 3
}

// ColorComponents returns the number of color floats per vertex (always RGBA).
//
// Returns:
//   - int: 4
func (l VertexLayout) ColorComponents() int {
	return 4
}

// Stride returns the number of floats per vertex.
//
// Returns:
//   - int: 7 for VertexLayout3D, 6 for VertexLayout2D
func (l VertexLayout) Stride() int {
	return l.PositionComponents() + l.ColorComponents()
}

// StrideBytes returns the size of one vertex in bytes.
//
// Returns:
//   - uint64: Stride() * 4
func (l VertexLayout) StrideBytes() uint64 {
	return uint64(l.Stride()) * 4
}

func (l VertexLayout) String() string {
	switch l {
	case VertexLayout3D:
		return "3d"
	case VertexLayout2D:
		return "2d"
	default:
		return fmt.Sprintf("VertexLayout(%d)", int(l))
	}
}

// Geometry is an immutable, non-indexed triangle list with interleaved position and color.
type Geometry struct {
	// Label is a debug label used for GPU resource names.
	Label string
	// Layout describes how Vertices is interleaved.
	Layout VertexLayout
	// Vertices holds Layout.Stride() floats per vertex.
	Vertices []float32
}

// VertexCount returns the number of whole vertices in the geometry.
//
// Returns:
//   - int: len(Vertices) / stride
func (g Geometry) VertexCount() int {
	return len(g.Vertices) / g.Layout.Stride()
}

// Validate checks that the vertex data is non-empty and a whole multiple of the layout stride.
//
// Returns:
//   - error: an error wrapping ErrMalformedGeometry, or nil
func (g Geometry) Validate() error {
	if g.Layout != VertexLayout3D && g.Layout != VertexLayout2D {
		return fmt.Errorf("%w: unknown vertex layout %v", ErrMalformedGeometry, g.Layout)
	}
	stride := g.Layout.Stride()
	if len(g.Vertices) == 0 {
		return fmt.Errorf("%w: %q has no vertex data", ErrMalformedGeometry, g.Label)
	}
	if len(g.Vertices)%stride != 0 {
		return fmt.Errorf("%w: %q has %d floats, not a multiple of stride %d",
			ErrMalformedGeometry, g.Label, len(g.Vertices), stride)
	}
	return nil
}

// Bytes serializes the vertex data for GPU upload.
//
// Returns:
//   - []byte: little-endian float32 data
func (g Geometry) Bytes() []byte {
	return common.Float32sToBytes(g.Vertices)
}

// ByName returns a built-in geometry by name.
//
// Parameters:
//   - name: "cube" or "quad"
//
// Returns:
//   - Geometry: the built-in geometry
//   - error: an error if the name is unknown
func ByName(name string) (Geometry, error) {
	switch name {
	case "cube", "":
		return Cube(), nil
	case "quad":
		return Quad(), nil
	default:
		return Geometry{}, fmt.Errorf("unknown geometry %q", name)
	}
}
