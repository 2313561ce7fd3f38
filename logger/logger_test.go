package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriters("warn", FileConfig{}, &buf)

	log.Info("hidden")
	log.Warn("shown", zap.Int("frame", 7))
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, `"frame": 7`)
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.log")
	cfg := DefaultFileConfig(path)
	cfg.Compress = false
	log := NewWithWriters("debug", cfg, nil)

	log.Debug("renderer configured", zap.String("geometry", "cube"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "renderer configured", entry["msg"])
	assert.Equal(t, "cube", entry["geometry"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNoOutputsIsNop(t *testing.T) {
	log := NewWithWriters("info", FileConfig{}, nil)
	assert.False(t, log.Core().Enabled(zapcore.ErrorLevel))
}
