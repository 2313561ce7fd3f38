package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutStride(t *testing.T) {
	assert.Equal(t, 7, VertexLayout3D.Stride())
	assert.Equal(t, 6, VertexLayout2D.Stride())
	assert.Equal(t, uint64(28), VertexLayout3D.StrideBytes())
	assert.Equal(t, uint64(24), VertexLayout2D.StrideBytes())
	assert.Equal(t, "3d", VertexLayout3D.String())
	assert.Equal(t, "2d", VertexLayout2D.String())
}

func TestCube(t *testing.T) {
	g := Cube()
	require.NoError(t, g.Validate())
	assert.Equal(t, 36, g.VertexCount())
	assert.Len(t, g.Bytes(), 36*28)

	// Every triangle winds counter-clockwise when seen from outside the cube.
	stride := g.Layout.Stride()
	for tri := 0; tri < 12; tri++ {
		var p [3][3]float32
		for v := 0; v < 3; v++ {
			base := (tri*3 + v) * stride
			copy(p[v][:], g.Vertices[base:base+3])
		}
		e1 := [3]float32{p[1][0] - p[0][0], p[1][1] - p[0][1], p[1][2] - p[0][2]}
		e2 := [3]float32{p[2][0] - p[0][0], p[2][1] - p[0][1], p[2][2] - p[0][2]}
		n := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		c := [3]float32{
			(p[0][0] + p[1][0] + p[2][0]) / 3,
			(p[0][1] + p[1][1] + p[2][1]) / 3,
			(p[0][2] + p[1][2] + p[2][2]) / 3,
		}
		assert.Greater(t, n[0]*c[0]+n[1]*c[1]+n[2]*c[2], float32(0), "triangle %d faces inward", tri)
	}
}

func TestQuad(t *testing.T) {
	g := Quad()
	require.NoError(t, g.Validate())
	assert.Equal(t, VertexLayout2D, g.Layout)
	assert.Equal(t, 6, g.VertexCount())
}

func TestValidateRejectsMalformedData(t *testing.T) {
	cases := []Geometry{
		{Label: "empty", Layout: VertexLayout3D},
		{Label: "short", Layout: VertexLayout3D, Vertices: make([]float32, 13)},
		{Label: "2d-as-3d", Layout: VertexLayout3D, Vertices: Quad().Vertices},
		{Label: "bad-layout", Layout: VertexLayout(9), Vertices: make([]float32, 7)},
	}
	for _, g := range cases {
		t.Run(g.Label, func(t *testing.T) {
			err := g.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedGeometry))
		})
	}
}

func TestByName(t *testing.T) {
	g, err := ByName("quad")
	require.NoError(t, err)
	assert.Equal(t, "quad", g.Label)

	g, err = ByName("cube")
	require.NoError(t, err)
	assert.Equal(t, 36, g.VertexCount())

	_, err = ByName("teapot")
	assert.Error(t, err)
}
