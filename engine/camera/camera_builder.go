package camera

import "go.uber.org/zap"

// CameraBuilderOption is a functional option applied to a camera during construction via NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithRadius sets the initial distance from the target.
// Values outside [MinRadius, MaxRadius] are clamped.
//
// Parameters:
//   - radius: initial orbit radius
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's radius
func WithRadius(radius float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.radius = radius
	}
}

// WithPhi sets the initial azimuthal angle.
//
// Parameters:
//   - phi: azimuth in radians (0 = +Z axis)
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's azimuth
func WithPhi(phi float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.phi = phi
	}
}

// WithTheta sets the initial polar angle measured from the up axis.
// Values outside [MinTheta, MaxTheta] are clamped.
//
// Parameters:
//   - theta: polar angle in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's polar angle
func WithTheta(theta float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.theta = theta
	}
}

// WithAspect sets the aspect ratio used for the initial projection matrix.
//
// Parameters:
//   - aspect: output width divided by height
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithLogger sets the logger used to report rejected inputs.
//
// Parameters:
//   - logger: the zap logger to use
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's logger
func WithLogger(logger *zap.Logger) CameraBuilderOption {
	return func(c *cameraImpl) {
		if logger != nil {
			c.logger = logger
		}
	}
}
