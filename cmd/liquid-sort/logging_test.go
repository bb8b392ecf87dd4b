package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/liquid-sort/constants"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	dir := t.TempDir()
	logger, cleanup, err := setupLogging(false, filepath.Join(dir, "game.log"), "debug")
	require.NoError(t, err)
	defer cleanup()

	logger.Info("dropped")
	_, err = os.Stat(filepath.Join(dir, "game.log"))
	assert.True(t, os.IsNotExist(err), "no log file without debug")
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "game.log")
	logger, cleanup, err := setupLogging(true, path, "info")
	require.NoError(t, err)

	logger.Debug("below level")
	logger.Info("test log message")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "below level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry), "one JSON line")
	assert.Equal(t, "test log message", entry["msg"])
	assert.Equal(t, "info", entry["level"])
}

func TestSetupLogging_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.log")
	maxBytes := constants.MaxLogSizeMB * 1024 * 1024
	require.NoError(t, os.WriteFile(path, make([]byte, maxBytes), 0o644))

	logger, cleanup, err := setupLogging(true, path, "debug")
	require.NoError(t, err)
	logger.Info("after rotation")
	cleanup()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var backups []string
	for _, e := range entries {
		if e.Name() != "game.log" && filepath.Ext(e.Name()) == ".log" {
			backups = append(backups, e.Name())
		}
	}
	require.Len(t, backups, 1, "full log moved aside")

	info, err := os.Stat(filepath.Join(dir, backups[0]))
	require.NoError(t, err)
	assert.Equal(t, int64(maxBytes), info.Size())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Less(t, len(data), maxBytes)
	assert.Contains(t, string(data), "after rotation")
}

func TestSetupLogging_BadLevel(t *testing.T) {
	_, _, err := setupLogging(true, filepath.Join(t.TempDir(), "game.log"), "loud")
	assert.Error(t, err)
}
