package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestScrollDeltaY(t *testing.T) {
	assert.Equal(t, float32(-100), scrollDeltaY(1, DefaultScrollStep))
	assert.Equal(t, float32(200), scrollDeltaY(-2, DefaultScrollStep))
	assert.Equal(t, float32(-25), scrollDeltaY(0.5, 50))
}

func TestClampSize(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"within", 1280, 720, 1280, 720},
		{"too small", 100, 50, 320, 240},
		{"too large", 8000, 5000, 3840, 2160},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := clampSize(tt.w, tt.h, 320, 240, 3840, 2160)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}

	w, h := clampSize(10, 10, 0, 0, 0, 0)
	assert.Equal(t, 10, w)
	assert.Equal(t, 10, h)
}

func TestOptionsApply(t *testing.T) {
	nop := zap.NewNop()
	w := &engineWindow{scrollStep: DefaultScrollStep, logger: nop}
	for _, opt := range []WindowBuilderOption{
		WithTitle("cube"),
		WithWidth(640),
		WithHeight(480),
		WithScrollStep(-1),
		WithLogger(nil),
	} {
		opt(w)
	}
	assert.Equal(t, "cube", w.title)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 480, w.Height())
	assert.Equal(t, DefaultScrollStep, w.scrollStep)
	assert.Same(t, nop, w.logger)
	assert.False(t, w.IsRunning())
	assert.Error(t, w.Close())
}
