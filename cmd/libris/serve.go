package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/libris-app/libris/internal/adapters/driven/blob/filesystem"
	fileconfig "github.com/libris-app/libris/internal/adapters/driven/config/file"
	"github.com/libris-app/libris/internal/adapters/driven/llm/openai"
	"github.com/libris-app/libris/internal/adapters/driven/storage/memory"
	"github.com/libris-app/libris/internal/adapters/driven/storage/sqlite"
	"github.com/libris-app/libris/internal/adapters/driven/validate"
	"github.com/libris-app/libris/internal/adapters/driving/httpapi"
	"github.com/libris-app/libris/internal/config"
	"github.com/libris-app/libris/internal/core/ports/driven"
	"github.com/libris-app/libris/internal/core/services"
	"github.com/libris-app/libris/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the library HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, closeLog := logger.Setup(cfg.LogFile, cfg.LogLevelValue())
	defer func() { _ = closeLog() }()

	catalog, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening catalog store: %w", err)
	}
	defer func() { _ = catalog.Close() }()

	artifacts, err := filesystem.NewStore(cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("opening upload store: %w", err)
	}

	prompts := fileconfig.NewPromptStore(cfg.PromptDir, log)
	if err := prompts.Watch(); err != nil {
		log.Warn("prompt watcher unavailable, edits require restart", "error", err)
	}
	defer func() { _ = prompts.Close() }()

	var llm driven.LLMService
	if cfg.OpenAI.APIKey != "" {
		llm, err = openai.NewLLMService(openai.LLMConfig{
			APIKey:            cfg.OpenAI.APIKey,
			BaseURL:           cfg.OpenAI.BaseURL,
			Model:             cfg.OpenAI.Model,
			RequestsPerSecond: cfg.OpenAI.RequestsPerSecond,
			BurstSize:         cfg.OpenAI.BurstSize,
		})
		if err != nil {
			return fmt.Errorf("configuring language model: %w", err)
		}
		defer func() { _ = llm.Close() }()
	} else {
		log.Warn("OPENAI_API_KEY not set, assistant features disabled")
	}

	library := services.NewLibrary(catalog, artifacts, validate.New(), cfg.CuratorEmail, log)
	assistant := services.NewAssistant(catalog, llm, prompts, log)
	sessions := memory.NewSessionStore()

	api := httpapi.NewServer(
		library,
		assistant,
		sessions,
		artifacts,
		time.Duration(cfg.AskTimeoutSeconds)*time.Second,
		log,
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("library server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
