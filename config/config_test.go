package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/skirmish/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`
[window]
width = 1280
title = "Test"

[game]
level = "levels/test.yaml"

[debug]
show_colliders = true
`))
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height, "unset keys keep their defaults")
	assert.Equal(t, "Test", cfg.Window.Title)
	assert.Equal(t, "levels/test.yaml", cfg.Game.Level)
	assert.Equal(t, "player", cfg.Game.PlayerTag)
	assert.True(t, cfg.Debug.ShowColliders)
	assert.Equal(t, 60, cfg.Loop.TPS)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"zero width":     "[window]\nwidth = 0",
		"negative tps":   "[loop]\ntps = -1",
		"no emit depth":  "[events]\nmax_emit_depth = 0",
		"no type cap":    "[ecs]\nmax_component_types = 0",
		"empty tag":      "[game]\nplayer_tag = \"\"",
		"malformed toml": "[window\nwidth = 1",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestResolveUsesEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[loop]\ntps = 30\n"), 0o644))
	t.Setenv(config.PathEnv, path)

	cfg, resolved, err := config.Resolve()
	require.NoError(t, err)

	assert.Equal(t, path, resolved)
	assert.Equal(t, 30, cfg.Loop.TPS)
}

func TestResolveMissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv(config.PathEnv, filepath.Join(t.TempDir(), "missing.toml"))

	cfg, _, err := config.Resolve()
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
