package common

import (
	"encoding/binary"
	"math"
)

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Float32sToBytes serializes float32 values into a little-endian byte slice for GPU buffer uploads.
// Unlike an unsafe view, the result owns its memory and may outlive the input.
//
// Parameters:
//   - data: source values
//
// Returns:
//   - []byte: 4*len(data) bytes, or nil if data is empty
func Float32sToBytes(data []float32) []byte {
	if len(data) == 0 {
		return nil
	}
	buf := make([]byte, len(data)*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
