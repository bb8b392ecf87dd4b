package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/liquid-sort/constants"
	"github.com/lixenwraith/liquid-sort/pour"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "liquid-sort.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// isolate keeps the search path away from the developer's real config
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestDefaultMatchesConstants(t *testing.T) {
	c := Default()

	assert.Equal(t, constants.DefaultCapacity, c.Game.Capacity)
	assert.Equal(t, constants.FrameUpdateInterval, c.Game.TickInterval)
	assert.Equal(t, constants.PourRotateDuration, c.Pour.PourDuration)
	assert.Equal(t, constants.DefaultRotationAngles, c.Pour.RotationAngles)
	assert.True(t, c.Audio.Enabled)
	require.NoError(t, c.Validate())

	pc, err := c.PourConfig()
	require.NoError(t, err)
	assert.Equal(t, pour.DefaultConfig(), pc)
}

func TestLoadWithoutFile(t *testing.T) {
	isolate(t)

	c, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, c.Source)
	assert.Equal(t, Default(), c)
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
[game]
capacity = 5
tick_interval = "20ms"

[pour]
pour_duration = "1500ms"
rotation_angles = [40, 60, 75, 85, 90]
fill_levels = [0, 0.2, 0.4, 0.6, 0.8, 1]
fill_curve = [[0, 1], [90, 0]]

[audio]
enabled = false
volume = -1.5
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.Source)
	assert.Equal(t, 5, c.Game.Capacity)
	assert.Equal(t, 20*time.Millisecond, c.Game.TickInterval)
	assert.Equal(t, 1500*time.Millisecond, c.Pour.PourDuration)
	assert.Equal(t, constants.PourSettleDuration, c.Pour.SettleDuration, "unset keys keep defaults")
	assert.False(t, c.Audio.Enabled)
	assert.Equal(t, -1.5, c.Audio.Volume)

	pc, err := c.PourConfig()
	require.NoError(t, err)
	assert.Equal(t, []float64{40, 60, 75, 85, 90}, pc.RotationAngles)
	assert.Equal(t, pour.Curve{{Angle: 0, Value: 1}, {Angle: 90, Value: 0}}, pc.FillCurve)
	assert.InDelta(t, 0.5, pc.FillCurve.Evaluate(45), 1e-9)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "[game]\ncapacity = 5\n")
	t.Setenv("LIQUIDSORT_GAME_CAPACITY", "6")
	t.Setenv("LIQUIDSORT_POUR_POUR_DURATION", "2s")
	t.Setenv("LIQUIDSORT_AUDIO_ENABLED", "false")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Game.Capacity)
	assert.Equal(t, 2*time.Second, c.Pour.PourDuration)
	assert.False(t, c.Audio.Enabled)
}

func TestLoadErrors(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	tests := []struct {
		name string
		body string
	}{
		{"zero capacity", "[game]\ncapacity = 0\n"},
		{"zero tick", "[game]\ntick_interval = \"0s\"\n"},
		{"loud volume", "[audio]\nvolume = 5.0\n"},
		{"curve key arity", "[pour]\nscale_curve = [[0, 1, 2]]\n"},
		{"rising fill curve", "[pour]\nfill_curve = [[0, 0.2], [90, 1]]\n"},
		{"negative duration", "[pour]\nsettle_duration = \"-1s\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)
	c := Default()
	c.Game.Level = "levels/tutorial.yaml"
	c.Pour.PourDuration = 1750 * time.Millisecond
	c.Pour.SpeedCurve = [][]float64{{0, 1}, {90, 0.5}}
	c.Audio.Volume = -2

	path := filepath.Join(t.TempDir(), "nested", "liquid-sort.toml")
	require.NoError(t, Save(c, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	c.Source = path
	assert.Equal(t, c, loaded)
}
