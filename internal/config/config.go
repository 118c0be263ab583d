// Package config loads server configuration from environment variables.
//
// CONFIGURATION PRECEDENCE:
// 1. Real environment variables (set by the shell, systemd, Docker, etc.)
// 2. A .env file in the working directory (loaded by godotenv, ignored if absent)
// 3. Hard-coded defaults below
//
// godotenv.Load never overwrites variables that are already set, so the
// .env file is a convenience for local development — production deployments
// keep using real env vars and the file simply doesn't exist there.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything main.go needs to assemble the server.
//
// Using a struct (instead of reading os.Getenv all over the codebase) keeps
// every knob discoverable in one place and makes the server constructible
// in tests without touching the process environment.
type Config struct {
	Port         int    // HTTP listen port
	DBPath       string // path to the SQLite file backing the key-value store
	JWTSecret    string // HMAC secret for session tokens; empty disables auth routes
	SeedDemoData bool   // seed the demo + admin accounts on first run
}

// Load reads the configuration, consulting .env first.
//
// A missing .env file is not an error — it's the normal case outside local
// development, so we only log it at debug level.
func Load(logger *slog.Logger) Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", slog.String("reason", err.Error()))
	}

	return Config{
		Port:         intEnv("PORT", 8080),
		DBPath:       stringEnv("DB_PATH", "data/nutritrack.db"),
		JWTSecret:    stringEnv("JWT_SECRET", ""),
		SeedDemoData: boolEnv("SEED_DEMO_DATA", true),
	}
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func boolEnv(key string, fallback bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
