package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingCamera struct {
	Camera
	orbits [][2]float32
	zooms  []float32
}

func (r *recordingCamera) Orbit(deltaX, deltaY float32) {
	r.orbits = append(r.orbits, [2]float32{deltaX, deltaY})
}

func (r *recordingCamera) Zoom(delta float32) {
	r.zooms = append(r.zooms, delta)
}

func TestControllerIgnoresMoveWithoutDrag(t *testing.T) {
	cam := &recordingCamera{}
	cc := NewCameraController(cam)

	cc.PointerMove(10, 10)
	assert.Empty(t, cam.orbits)
	assert.False(t, cc.Dragging())
}

func TestControllerEmitsDragDeltas(t *testing.T) {
	cam := &recordingCamera{}
	cc := NewCameraController(cam)

	cc.PointerDown(100, 100)
	assert.True(t, cc.Dragging())
	cc.PointerMove(110, 95)
	cc.PointerMove(130, 95)
	cc.PointerUp()
	cc.PointerMove(500, 500)

	assert.Equal(t, [][2]float32{{10, -5}, {20, 0}}, cam.orbits)
	assert.False(t, cc.Dragging())
}

func TestControllerScrollZooms(t *testing.T) {
	cam := &recordingCamera{}
	cc := NewCameraController(cam)

	cc.Scroll(-100)
	cc.Scroll(50)
	assert.Equal(t, []float32{-100, 50}, cam.zooms)
	assert.Same(t, cam, cc.Camera().(*recordingCamera))
}

func TestControllerDrivesRealCamera(t *testing.T) {
	cam := NewCamera()
	cc := NewCameraController(cam)

	cc.PointerDown(0, 0)
	cc.PointerMove(100, 0)
	cc.PointerUp()
	cc.Scroll(1000)

	assert.InDelta(t, DefaultPhi-1.0, cam.Phi(), 1e-6)
	assert.Equal(t, MaxRadius, cam.Radius())
}
