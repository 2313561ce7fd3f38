package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (128 bytes).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniformFloats is the number of float32 values in the camera uniform block.
const GPUCameraUniformFloats = 32

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Matches the WGSL CameraUniform struct layout exactly (see GPUCameraUniformSource).
// Size: 128 bytes.
type GPUCameraUniform struct {
	View       [16]float32 // offset  0: view matrix (mat4x4<f32>)
	Projection [16]float32 // offset 64: projection matrix (mat4x4<f32>)
}

// NewGPUCameraUniform builds the uniform block from a camera snapshot.
//
// Parameters:
//   - s: the snapshot to copy matrices from
//
// Returns:
//   - GPUCameraUniform: the uniform block with view first and projection second
func NewGPUCameraUniform(s Snapshot) GPUCameraUniform {
	return GPUCameraUniform{View: s.View, Projection: s.Projection}
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Floats returns the uniform block as one contiguous 32-float slice.
//
// Returns:
//   - []float32: view matrix followed by projection matrix
func (g *GPUCameraUniform) Floats() []float32 {
	out := make([]float32, 0, GPUCameraUniformFloats)
	out = append(out, g.View[:]...)
	return append(out, g.Projection[:]...)
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.View[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Projection[i]))
	}
	return buf
}
