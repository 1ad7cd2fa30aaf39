package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	log, closeLog := Setup(path, slog.LevelInfo)
	log.Info("hello", "key", "value")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "value", entry["key"])
}

func TestSetup_FallsBackWhenFileUnwritable(t *testing.T) {
	// A directory path cannot be opened as a log file.
	log, closeLog := Setup(t.TempDir(), slog.LevelInfo)
	require.NotNil(t, log)
	assert.NoError(t, closeLog())
}

func TestSetupWithWriters_DualOutput(t *testing.T) {
	var stderr, file bytes.Buffer
	log := SetupWithWriters(&stderr, &file, slog.LevelInfo)

	log.Info("fanout check")

	assert.Contains(t, stderr.String(), "fanout check")
	assert.Contains(t, file.String(), `"msg":"fanout check"`)
}

func TestSetupWithWriters_Level(t *testing.T) {
	var stderr, file bytes.Buffer
	log := SetupWithWriters(&stderr, &file, slog.LevelWarn)

	log.Info("dropped")
	log.Warn("kept")

	assert.NotContains(t, file.String(), "dropped")
	assert.Contains(t, file.String(), "kept")
}
