package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"go.uber.org/zap"
)

const (
	// Sensitivity scales raw pointer deltas (device pixels) into radians for orbit and world units for zoom.
	Sensitivity float32 = 0.01

	// MinRadius and MaxRadius bound the distance from the target.
	MinRadius float32 = 1.0
	MaxRadius float32 = 10.0

	// MinTheta and MaxTheta keep the polar angle away from the poles, where the view
	// direction would become parallel to the up vector.
	MinTheta float32 = 0.1
	MaxTheta float32 = math.Pi - 0.1

	// FieldOfView is the fixed vertical field of view (60 degrees) in radians.
	FieldOfView float32 = 60.0 * (math.Pi / 180.0)

	// Near and Far are the clipping plane distances of the projection.
	Near float32 = 0.1
	Far  float32 = 100.0

	DefaultRadius float32 = 3.0
	DefaultPhi    float32 = math.Pi / 4
	DefaultTheta  float32 = math.Pi / 4
)

// Snapshot is a consistent copy of the camera's derived state, taken under a single lock.
// The renderer reads exactly one Snapshot per frame.
type Snapshot struct {
	View       [16]float32
	Projection [16]float32
	Position   [3]float32
}

// ViewProjection returns Projection * View, the transform the vertex stage applies.
//
// Returns:
//   - [16]float32: the combined column-major matrix
func (s Snapshot) ViewProjection() [16]float32 {
	var out [16]float32
	common.Mul4(out[:], s.Projection[:], s.View[:])
	return out
}

type cameraImpl struct {
	mu *sync.RWMutex

	radius float32
	phi    float32
	theta  float32
	aspect float32

	target [3]float32
	up     [3]float32

	position         [3]float32
	viewMatrix       [16]float32
	projectionMatrix [16]float32

	logger *zap.Logger
}

// Camera defines the interface for the orbit camera.
// The camera is parameterized by spherical coordinates (radius, phi, theta) around a fixed
// target at the origin with a fixed +Y up vector. Position and the view matrix are derived
// on every orbit or zoom; the projection matrix is derived only by UpdateProjection.
type Camera interface {
	// Orbit applies one pointer-drag sample. Phi decreases by deltaX*Sensitivity and theta
	// decreases by deltaY*Sensitivity, clamped to [MinTheta, MaxTheta].
	//
	// Parameters:
	//   - deltaX: horizontal drag delta in device pixels
	//   - deltaY: vertical drag delta in device pixels
	Orbit(deltaX, deltaY float32)

	// Zoom applies one scroll sample. Radius increases by delta*Sensitivity, clamped to [MinRadius, MaxRadius].
	//
	// Parameters:
	//   - delta: scroll delta (positive moves away from the target)
	Zoom(delta float32)

	// UpdateProjection rebuilds the projection matrix for a new output aspect ratio.
	// Must be called by the host whenever the surface's width/height ratio changes.
	//
	// Parameters:
	//   - aspect: output width divided by height
	UpdateProjection(aspect float32)

	// ViewMatrix returns a copy of the current 4x4 view matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns a copy of the current 4x4 projection matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the fixed look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// Up returns the fixed up vector.
	//
	// Returns:
	//   - x, y, z: up vector components
	Up() (x, y, z float32)

	// Radius returns the current distance from the target.
	//
	// Returns:
	//   - float32: the orbit radius
	Radius() float32

	// Phi returns the current azimuthal angle in radians.
	//
	// Returns:
	//   - float32: the azimuth
	Phi() float32

	// Theta returns the current polar angle in radians.
	//
	// Returns:
	//   - float32: the polar angle
	Theta() float32

	// Aspect returns the aspect ratio the projection was last built with.
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Snapshot returns view, projection and position read under one lock.
	//
	// Returns:
	//   - Snapshot: the current derived state
	Snapshot() Snapshot
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new orbit Camera at the default spherical position
// (radius 3, phi π/4, theta π/4) with an aspect ratio of 1.
// Initial values supplied through options are clamped to the camera's bounds.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.RWMutex{},
		radius: DefaultRadius,
		phi:    DefaultPhi,
		theta:  DefaultTheta,
		aspect: 1.0,
		target: [3]float32{0, 0, 0},
		up:     [3]float32{0, 1, 0},
		logger: zap.NewNop(),
	}
	for _, option := range options {
		option(c)
	}

	c.radius = common.Clamp(c.radius, MinRadius, MaxRadius)
	c.theta = common.Clamp(c.theta, MinTheta, MaxTheta)
	c.updateView()
	c.projectionMatrix = DeriveProjection(FieldOfView, c.aspect, Near, Far)
	return c
}

func (c *cameraImpl) Orbit(deltaX, deltaY float32) {
	deltaX, deltaY = finite(deltaX), finite(deltaY)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phi -= deltaX * Sensitivity
	c.theta = common.Clamp(c.theta-deltaY*Sensitivity, MinTheta, MaxTheta)
	c.updateView()
}

func (c *cameraImpl) Zoom(delta float32) {
	delta = finite(delta)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.radius = common.Clamp(c.radius+delta*Sensitivity, MinRadius, MaxRadius)
	c.updateView()
}

func (c *cameraImpl) UpdateProjection(aspect float32) {
	if aspect <= 0 || math.IsNaN(float64(aspect)) || math.IsInf(float64(aspect), 0) {
		c.logger.Warn("ignoring invalid aspect ratio", zap.Float32("aspect", aspect))
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.projectionMatrix = DeriveProjection(FieldOfView, aspect, Near, Far)
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.projectionMatrix
}

func (c *cameraImpl) Position() (x, y, z float32) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.position[0], c.position[1], c.position[2]
}

func (c *cameraImpl) Target() (x, y, z float32) {
	return c.target[0], c.target[1], c.target[2]
}

func (c *cameraImpl) Up() (x, y, z float32) {
	return c.up[0], c.up[1], c.up[2]
}

func (c *cameraImpl) Radius() float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.radius
}

func (c *cameraImpl) Phi() float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phi
}

func (c *cameraImpl) Theta() float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.theta
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.aspect
}

func (c *cameraImpl) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		View:       c.viewMatrix,
		Projection: c.projectionMatrix,
		Position:   c.position,
	}
}

// updateView recomputes position and the view matrix from the spherical state.
// Caller must hold the write lock.
func (c *cameraImpl) updateView() {
	c.position, c.viewMatrix = DeriveView(c.radius, c.phi, c.theta, c.target, c.up)
}

// finite maps NaN and infinite pointer deltas to zero so a single bad sample cannot poison the angles.
func finite(v float32) float32 {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return 0
	}
	return v
}
