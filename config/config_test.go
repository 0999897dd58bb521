package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/thingbox/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "thingbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := writeConfig(t, `
window:
  title: test window
world:
  capacity: 64
  friction: 5
colors:
  highlight: [1, 2, 3, 255]
startup_script: setup.txt
debug: true
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test window", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 64, cfg.World.Capacity)
	assert.Equal(t, float32(1.5), cfg.World.LabelHeight)
	assert.Equal(t, "setup.txt", cfg.StartupScript)
	assert.True(t, cfg.Debug)
	assert.Len(t, cfg.Models, 4)

	opts := cfg.GameOptions(nil)
	assert.Equal(t, 64, opts.Capacity)
	assert.Equal(t, float32(5), opts.Friction)
	assert.Equal(t, uint8(2), opts.HighlightColor.G)
}

func TestLoadModelsReplacesDefaults(t *testing.T) {
	path := writeConfig(t, `
models:
  - name: crate
    shape: cube
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Models, 1)
	assert.Equal(t, "crate", cfg.Models[0].Name)
}

func TestValidateJoinsErrors(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 0
camera:
  fovy: 200
world:
  capacity: -1
  max_traits: 65
audio:
  volume: 2
models:
  - name: a
  - name: a
  - shape: cube
`)
	_, err := config.Load(path)
	require.Error(t, err)
	for _, want := range []string{
		"window size", "camera.fovy", "world.capacity", "world.max_traits",
		"audio.volume", `duplicate name "a"`, "models[2]: missing name",
	} {
		assert.ErrorContains(t, err, want)
	}
}

func TestValidateMaxTraitsCoversBuiltins(t *testing.T) {
	_, err := config.Load(writeConfig(t, "world:\n  max_traits: 8\n"))
	assert.ErrorContains(t, err, "world.max_traits must be in 9..64, got 8")

	cfg, err := config.Load(writeConfig(t, "world:\n  max_traits: 9\n"))
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.World.MaxTraits)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")

	_, err = config.Load(writeConfig(t, "window: [unclosed"))
	assert.ErrorContains(t, err, "parse config")
}
