package imguidesktop

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PazerOP/imgui-desktop/glcontext"
	"github.com/PazerOP/imgui-desktop/platform"
)

func TestParseEmptyConfigIsDefault(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
sleep_duration = "5ms"
vsync = false

[window]
width = 800
title = "Tools"

[[gl.attempts]]
version = "3.3"
profile = "core"

[[gl.attempts]]
version = "2.1"
profile = "compat"
`))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Millisecond, cfg.SleepDuration.Duration)
	assert.False(t, cfg.VSync)
	assert.True(t, cfg.DebugOutput)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "Tools", cfg.Window.Title)
	assert.Equal(t, []glcontext.Attempt{
		{Version: glcontext.Version{Major: 3, Minor: 3}, Profile: platform.ProfileCore},
		{Version: glcontext.Version{Major: 2, Minor: 1}, Profile: platform.ProfileCompatibility},
	}, cfg.GL.Attempts)
	assert.Equal(t, DefaultConfig().BlockedDrivers, cfg.BlockedDrivers)
}

func TestParseConfigErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown field":  `colour = "red"`,
		"bad duration":   `sleep_duration = "soon"`,
		"zero duration":  `sleep_duration = "0s"`,
		"bad version":    "[[gl.attempts]]\nversion = \"four\"",
		"bad profile":    "[[gl.attempts]]\nversion = \"3.3\"\nprofile = \"es\"",
		"negative width": "[window]\nwidth = -1",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desktop.toml")
	require.NoError(t, os.WriteFile(path, []byte("vsync = false\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.VSync)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestEncodedDefaultsParseBack(t *testing.T) {
	data, err := DefaultConfig().Encode()
	require.NoError(t, err)

	cfg, err := ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
