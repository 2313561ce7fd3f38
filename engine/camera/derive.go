package camera

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// DeriveView computes the camera position from spherical coordinates around target and
// builds the look-at view matrix toward target. It holds no state so the camera's
// mutators and tests derive identical results from identical inputs.
//
// Parameters:
//   - radius: distance from target
//   - phi: azimuthal angle in radians
//   - theta: polar angle in radians, measured from the up axis
//   - target: the look-at point
//   - up: the world up vector
//
// Returns:
//   - [3]float32: the world-space camera position
//   - [16]float32: the column-major view matrix
func DeriveView(radius, phi, theta float32, target, up [3]float32) ([3]float32, [16]float32) {
	position := common.SphericalToCartesian(radius, phi, theta)
	position[0] += target[0]
	position[1] += target[1]
	position[2] += target[2]

	var view [16]float32
	common.LookAt(view[:],
		position[0], position[1], position[2],
		target[0], target[1], target[2],
		up[0], up[1], up[2],
	)
	return position, view
}

// DeriveProjection builds a perspective projection matrix with depth mapped to [0, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: output width divided by height
//   - near: near clipping plane distance
//   - far: far clipping plane distance
//
// Returns:
//   - [16]float32: the column-major projection matrix
func DeriveProjection(fovY, aspect, near, far float32) [16]float32 {
	var proj [16]float32
	common.Perspective(proj[:], fovY, aspect, near, far)
	return proj
}
