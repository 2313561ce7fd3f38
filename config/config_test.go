package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "cube", cfg.Renderer.Geometry)
	assert.Equal(t, "vsync", cfg.Renderer.PresentMode)
	assert.Equal(t, float32(3), cfg.Camera.Radius)
	assert.Equal(t, time.Second, cfg.Profiler.Interval)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 800
renderer:
  geometry: quad
profiler:
  enabled: true
  interval: 250ms
`)
	cfg, err := Load([]string{"-config", path})
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "unset keys keep defaults")
	assert.Equal(t, "quad", cfg.Renderer.Geometry)
	assert.True(t, cfg.Profiler.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.Profiler.Interval)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "window:\n  width: 800\nrenderer:\n  geometry: quad\n")
	cfg, err := Load([]string{"-config", path, "-width", "1024", "-geometry", "cube", "-debug"})
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, "cube", cfg.Renderer.Geometry)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Profiler.Enabled)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"geometry", []string{"-geometry", "teapot"}},
		{"present mode", []string{"-present-mode", "mailbox"}},
		{"unknown flag", []string{"-fullscreen"}},
	}
	dir := t.TempDir()
	t.Chdir(dir)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args)
			assert.Error(t, err)
		})
	}

	_, err := Load([]string{"-config", filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)

	bad := writeConfig(t, "window: [")
	_, err = Load([]string{"-config", bad})
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Renderer.PresentMode = "uncapped"
	cfg.Camera.Radius = 5
	require.NoError(t, Save(cfg, path))

	loaded, err := Load([]string{"-config", path})
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[window]
title = "toml viewer"
height = 900

[renderer]
present_mode = "uncapped"

[camera]
theta = 1.2
`), 0o644))

	cfg, err := Load([]string{"-config", path, "-metrics-addr", ":9100"})
	require.NoError(t, err)
	assert.Equal(t, "toml viewer", cfg.Window.Title)
	assert.Equal(t, 900, cfg.Window.Height)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, "uncapped", cfg.Renderer.PresentMode)
	assert.Equal(t, float32(1.2), cfg.Camera.Theta)
	assert.Equal(t, ":9100", cfg.Profiler.MetricsAddr)
	assert.True(t, cfg.Profiler.Enabled)
}

func TestSaveTOMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.Renderer.Geometry = "quad"
	cfg.Logging.Level = "warn"
	require.NoError(t, Save(cfg, path))

	loaded, err := Load([]string{"-config", path})
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
