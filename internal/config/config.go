// Package config loads server configuration from an optional TOML
// file with environment overrides. A .env file in the working
// directory is honoured for secrets, matching common deployment
// practice for the OpenAI key.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all configuration values for the server.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `toml:"addr"`

	// DataDir holds the SQLite database.
	DataDir string `toml:"data_dir"`

	// UploadDir is the flat artifact namespace for PDFs and covers.
	UploadDir string `toml:"upload_dir"`

	// PromptDir holds user-editable prompt templates.
	PromptDir string `toml:"prompt_dir"`

	// CuratorEmail is the single identity allowed to add and delete
	// books. Empty disables ingestion entirely.
	CuratorEmail string `toml:"curator_email"`

	// LogFile receives JSON logs in addition to stderr.
	LogFile string `toml:"log_file"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// AskTimeoutSeconds bounds each language-model call.
	AskTimeoutSeconds int `toml:"ask_timeout_seconds"`

	OpenAI OpenAIConfig `toml:"openai"`
}

// OpenAIConfig configures the language-model backend. The API key is
// taken from the environment only, never from the config file.
type OpenAIConfig struct {
	APIKey            string  `toml:"-"`
	BaseURL           string  `toml:"base_url"`
	Model             string  `toml:"model"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	BurstSize         int     `toml:"burst_size"`
}

// Load reads configuration from the given TOML file (skipped when the
// path is empty or missing), then applies environment overrides.
func Load(path string) (Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg := Config{
		Addr:              ":8080",
		DataDir:           "data",
		UploadDir:         "uploads",
		PromptDir:         "prompts",
		LogFile:           "libris.log",
		LogLevel:          "info",
		AskTimeoutSeconds: 60,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults plus environment are enough.
		case err != nil:
			return Config{}, fmt.Errorf("read config file: %w", err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// LogLevelValue parses the configured level, defaulting to info.
func (c *Config) LogLevelValue() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func applyEnv(cfg *Config) {
	setFromEnv(&cfg.Addr, "LIBRIS_ADDR")
	setFromEnv(&cfg.DataDir, "LIBRIS_DATA_DIR")
	setFromEnv(&cfg.UploadDir, "LIBRIS_UPLOAD_DIR")
	setFromEnv(&cfg.PromptDir, "LIBRIS_PROMPT_DIR")
	setFromEnv(&cfg.CuratorEmail, "LIBRIS_CURATOR_EMAIL")
	setFromEnv(&cfg.LogFile, "LIBRIS_LOG_FILE")
	setFromEnv(&cfg.LogLevel, "LIBRIS_LOG_LEVEL")
	setFromEnv(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.BaseURL, "OPENAI_BASE_URL")
	setFromEnv(&cfg.OpenAI.Model, "OPENAI_MODEL")
}

func setFromEnv(dst *string, key string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}
