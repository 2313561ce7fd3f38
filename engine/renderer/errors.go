package renderer

import "errors"

var (
	// ErrNoAdapter is returned when no GPU adapter is compatible with the surface.
	ErrNoAdapter = errors.New("no compatible gpu adapter")

	// ErrUnsupported is returned when the adapter cannot provide a device or the surface reports no formats.
	ErrUnsupported = errors.New("gpu device unsupported")

	// ErrDevice is returned when the device rejects a resource or command.
	ErrDevice = errors.New("gpu device error")

	// ErrSurfaceAcquire is returned when the next surface image cannot be acquired.
	ErrSurfaceAcquire = errors.New("surface image acquisition failed")

	// ErrNotConfigured is returned by RenderFrame before Configure has succeeded.
	ErrNotConfigured = errors.New("renderer not configured")

	// ErrAlreadyConfigured is returned when Configure is called more than once.
	ErrAlreadyConfigured = errors.New("renderer already configured")
)
