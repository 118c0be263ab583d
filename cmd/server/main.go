// Package main is the entry point for the nutrition tracker server.
//
// The main package is kept minimal — its job is to:
// 1. Set up logging
// 2. Load configuration
// 3. Create and start the server
//
// All actual logic lives in imported packages (internal/server,
// internal/handler, internal/localdb, ...). This separation keeps the app
// testable and its components reusable.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/nutrition-tracker/internal/config"
	"github.com/sakif/nutrition-tracker/internal/server"
)

func main() {
	// slog.NewTextHandler outputs human-readable logs to the terminal.
	// In production you'd raise the level to Info or Warn to reduce noise.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg := config.Load(logger)

	// JWT_SECRET must be a long random string. Generate one with:
	//   JWT_SECRET=$(openssl rand -hex 32)
	// Without it the server cannot issue sessions, so fail fast rather than
	// boot an API where every protected route 401s.
	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is not set — refusing to start without a signing key")
		os.Exit(1)
	}

	// Ensure the data directory exists. os.MkdirAll creates all parent
	// directories if needed (like `mkdir -p`).
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
