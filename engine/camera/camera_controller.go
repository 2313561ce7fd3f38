package camera

import (
	"sync"
)

// CameraController adapts raw pointer events into orbit and zoom samples on a Camera.
// A drag starts on PointerDown and ends on PointerUp; every PointerMove in between emits
// one Orbit with the delta since the previous pointer position. Scroll samples are passed
// straight through to Zoom.
type CameraController interface {
	// PointerDown begins a drag at the given position.
	//
	// Parameters:
	//   - x, y: pointer position in device pixels
	PointerDown(x, y float32)

	// PointerUp ends the current drag, if any.
	PointerUp()

	// PointerMove reports a pointer position. Orbits the camera only while dragging.
	//
	// Parameters:
	//   - x, y: pointer position in device pixels
	PointerMove(x, y float32)

	// Scroll applies one scroll sample to the camera's zoom.
	//
	// Parameters:
	//   - deltaY: scroll delta in device pixels (positive moves away from the target)
	Scroll(deltaY float32)

	// Dragging reports whether a drag is in progress.
	//
	// Returns:
	//   - bool: true between PointerDown and PointerUp
	Dragging() bool

	// Camera returns the camera driven by this controller.
	//
	// Returns:
	//   - Camera: the driven camera
	Camera() Camera
}

type cameraControllerImpl struct {
	mu *sync.Mutex

	camera Camera

	dragging bool
	lastX    float32
	lastY    float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller that drives the given camera.
//
// Parameters:
//   - cam: the camera to orbit and zoom
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(cam Camera) CameraController {
	return &cameraControllerImpl{
		mu:     &sync.Mutex{},
		camera: cam,
	}
}

func (cc *cameraControllerImpl) PointerDown(x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.dragging = true
	cc.lastX = x
	cc.lastY = y
}

func (cc *cameraControllerImpl) PointerUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.dragging = false
}

func (cc *cameraControllerImpl) PointerMove(x, y float32) {
	cc.mu.Lock()
	if !cc.dragging {
		cc.mu.Unlock()
		return
	}
	deltaX := x - cc.lastX
	deltaY := y - cc.lastY
	cc.lastX = x
	cc.lastY = y
	cc.mu.Unlock()

	cc.camera.Orbit(deltaX, deltaY)
}

func (cc *cameraControllerImpl) Scroll(deltaY float32) {
	cc.camera.Zoom(deltaY)
}

func (cc *cameraControllerImpl) Dragging() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dragging
}

func (cc *cameraControllerImpl) Camera() Camera {
	return cc.camera
}
