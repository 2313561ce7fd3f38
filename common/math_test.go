package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const standardTol = 1e-5

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(0, 1, 10))
	assert.Equal(t, float32(10), Clamp(11, 1, 10))
	assert.Equal(t, float32(5), Clamp(5, 1, 10))
	assert.Equal(t, float32(1), Clamp(1, 1, 10))
}

func TestSphericalToCartesian(t *testing.T) {
	// theta = 0 points straight up +Y.
	p := SphericalToCartesian(2, 0, 0)
	assert.InDelta(t, 0, p[0], standardTol)
	assert.InDelta(t, 2, p[1], standardTol)
	assert.InDelta(t, 0, p[2], standardTol)

	// theta = π/2, phi = 0 lies on +Z.
	p = SphericalToCartesian(2, 0, math.Pi/2)
	assert.InDelta(t, 0, p[0], standardTol)
	assert.InDelta(t, 0, p[1], standardTol)
	assert.InDelta(t, 2, p[2], standardTol)

	// theta = π/2, phi = π/2 lies on +X.
	p = SphericalToCartesian(2, math.Pi/2, math.Pi/2)
	assert.InDelta(t, 2, p[0], standardTol)
	assert.InDelta(t, 0, p[1], standardTol)
	assert.InDelta(t, 0, p[2], standardTol)
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}
	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)
	Mul4(out[:], m[:], id[:])
	assert.Equal(t, m, out)
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	var view [16]float32
	eye := [3]float32{1, 2, 3}
	LookAt(view[:], eye[0], eye[1], eye[2], 0, 0, 0, 0, 1, 0)

	p := TransformPoint(view[:], eye)
	assert.InDelta(t, 0, p[0], standardTol)
	assert.InDelta(t, 0, p[1], standardTol)
	assert.InDelta(t, 0, p[2], standardTol)
	assert.InDelta(t, 1, p[3], standardTol)
}

func TestPerspectiveDepthRange(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], math.Pi/3, 1.5, 0.1, 100)

	near := TransformPoint(proj[:], [3]float32{0, 0, -0.1})
	far := TransformPoint(proj[:], [3]float32{0, 0, -100})
	assert.InDelta(t, 0, near[2]/near[3], standardTol)
	assert.InDelta(t, 1, far[2]/far[3], standardTol)
	assert.InDelta(t, proj[5]/1.5, proj[0], standardTol)
}

func TestFloat32sToBytes(t *testing.T) {
	assert.Nil(t, Float32sToBytes(nil))

	b := Float32sToBytes([]float32{1, -2})
	assert.Len(t, b, 8)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, b[:4])
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0xc0}, b[4:])
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 3, 4))
	assert.Equal(t, "", Coalesce("", ""))
}
