package config

import (
	"log/slog"
	"os"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "JWT_SECRET", "SEED_DEMO_DATA"} {
		t.Setenv(key, "")
	}

	cfg := Load(testLogger())

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DBPath != "data/nutritrack.db" {
		t.Errorf("DBPath = %q, want data/nutritrack.db", cfg.DBPath)
	}
	if !cfg.SeedDemoData {
		t.Error("SeedDemoData should default to true")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("JWT_SECRET", "super-secret-key-here")
	t.Setenv("SEED_DEMO_DATA", "false")

	cfg := Load(testLogger())

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, want /tmp/test.db", cfg.DBPath)
	}
	if cfg.JWTSecret != "super-secret-key-here" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.SeedDemoData {
		t.Error("SeedDemoData should be false")
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("SEED_DEMO_DATA", "maybe")

	cfg := Load(testLogger())

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want fallback 8080", cfg.Port)
	}
	if !cfg.SeedDemoData {
		t.Error("SeedDemoData should fall back to true")
	}
}
