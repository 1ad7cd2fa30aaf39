package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, "prompts", cfg.PromptDir)
	assert.Equal(t, "libris.log", cfg.LogFile)
	assert.Equal(t, 60, cfg.AskTimeoutSeconds)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libris.toml")
	content := `
addr = ":9090"
curator_email = "curator@example.com"
log_level = "debug"
ask_timeout_seconds = 30

[openai]
model = "gpt-4o-mini"
requests_per_second = 5.0
burst_size = 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "curator@example.com", cfg.CuratorEmail)
	assert.Equal(t, 30, cfg.AskTimeoutSeconds)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.InDelta(t, 5.0, cfg.OpenAI.RequestsPerSecond, 0.001)
	assert.Equal(t, 10, cfg.OpenAI.BurstSize)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevelValue())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libris.toml")
	require.NoError(t, os.WriteFile(path, []byte(`addr = ":9090"`), 0o600))

	t.Setenv("LIBRIS_ADDR", ":7070")
	t.Setenv("LIBRIS_CURATOR_EMAIL", "env@example.com")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "env@example.com", cfg.CuratorEmail)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libris.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLogLevelValue(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := Config{LogLevel: tt.in}
		assert.Equal(t, tt.want, cfg.LogLevelValue(), tt.in)
	}
}
