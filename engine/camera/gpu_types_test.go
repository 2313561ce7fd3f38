package camera

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUCameraUniformLayout(t *testing.T) {
	c := NewCamera()
	c.UpdateProjection(1.25)
	s := c.Snapshot()

	u := NewGPUCameraUniform(s)
	require.Equal(t, 128, u.Size())

	floats := u.Floats()
	require.Len(t, floats, GPUCameraUniformFloats)
	assert.Equal(t, s.View[:], floats[:16])
	assert.Equal(t, s.Projection[:], floats[16:])

	buf := u.Marshal()
	require.Len(t, buf, 128)
	for i, want := range floats {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		assert.Equal(t, want, got, "float %d", i)
	}
}

func TestGPUCameraUniformSource(t *testing.T) {
	assert.True(t, strings.Contains(GPUCameraUniformSource, "struct CameraUniform"))
	assert.True(t, strings.Contains(GPUCameraUniformSource, "view: mat4x4<f32>"))
	assert.True(t, strings.Contains(GPUCameraUniformSource, "projection: mat4x4<f32>"))
}
