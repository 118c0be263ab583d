// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer — it connects handlers, middleware, and routes.
// Think of it as the control centre that decides:
// - Which URL patterns map to which handler functions
// - What middleware runs on which routes
// - How the server starts and stops gracefully
//
// DEPENDENCY INJECTION FLOW:
// main.go creates: logger + Config → passed to Server
// Server.New() creates: storage.SQLiteStore → localdb.DB → handlers
//
// This is the "composition root" pattern — all dependencies are wired
// in one place (New/setupRoutes), rather than scattered across the codebase.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/nutrition-tracker/internal/auth"
	"github.com/sakif/nutrition-tracker/internal/config"
	"github.com/sakif/nutrition-tracker/internal/handler"
	"github.com/sakif/nutrition-tracker/internal/localdb"
	"github.com/sakif/nutrition-tracker/internal/middleware"
	"github.com/sakif/nutrition-tracker/internal/storage"
)

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the SQLite-backed store. When the server shuts down, the
// store must be closed to flush the WAL and release the file lock. This is
// handled in Start() during graceful shutdown.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	store  *storage.SQLiteStore
	db     *localdb.DB
}

// New creates a new Server with the given config.
//
// WIRING:
//  1. Open the SQLite key-value store (the only place open errors surface)
//  2. Build the localdb.DB on top of it
//  3. Seed demo data if configured (init-flag guarded, so restarts are safe)
//  4. Build the token service and handlers, wire routes
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	store, err := storage.NewSQLite(cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	db := localdb.New(store, logger)

	if cfg.SeedDemoData {
		db.InitializeDemoData(context.Background())
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		store.Close() // Clean up the store if route setup fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	POST   /api/auth/register          → create account + session
//	POST   /api/auth/login             → authenticate + session
//	POST   /api/auth/logout            → clear session
//	GET    /api/me                     → current user            [auth]
//	PATCH  /api/me                     → partial user update     [auth]
//	GET    /api/meals                  → list meals (?date=)     [auth]
//	POST   /api/meals                  → log a meal              [auth]
//	DELETE /api/meals/{id}             → delete own meal         [auth]
//	GET    /api/profile                → read profile            [auth]
//	PUT    /api/profile                → upsert profile          [auth]
//	GET    /api/stats                  → derived statistics      [auth]
//	GET    /api/health-report          → BMI/targets/intake      [auth]
//	GET    /api/sleep                  → list sleep entries      [auth]
//	PUT    /api/sleep                  → upsert a night's sleep  [auth]
//	GET    /api/export                 → download backup         [auth]
//	POST   /api/import                 → merge a backup          [auth]
//	*      /api/admin/submissions...   → review queue            [auth+admin]
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID — assigns unique ID to each request (for tracing)
// 2. RealIP — extracts real client IP from proxy headers
// 3. Recoverer — catches panics and returns 500 instead of crashing
// 4. Logger — logs each request with timing info
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	authHandler := handler.NewAuthHandler(s.db, tokens, s.logger)
	mealHandler := handler.NewMealHandler(s.db, s.logger)
	profileHandler := handler.NewProfileHandler(s.db, s.logger)
	sleepHandler := handler.NewSleepHandler(s.db, s.logger)
	transferHandler := handler.NewTransferHandler(s.db, s.logger)
	adminHandler := handler.NewAdminHandler(s.db, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		// Public routes — no session required
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)

		// Protected routes — valid session cookie required
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/me", authHandler.HandleMe)
			r.Patch("/me", authHandler.HandleUpdateMe)

			r.Get("/meals", mealHandler.HandleList)
			r.Post("/meals", mealHandler.HandleCreate)
			r.Delete("/meals/{id}", mealHandler.HandleDelete)

			r.Get("/profile", profileHandler.HandleGet)
			r.Put("/profile", profileHandler.HandlePut)
			r.Get("/stats", profileHandler.HandleStats)
			r.Get("/health-report", profileHandler.HandleHealthReport)

			r.Get("/sleep", sleepHandler.HandleList)
			r.Put("/sleep", sleepHandler.HandleUpsert)

			r.Get("/export", transferHandler.HandleExport)
			r.Post("/import", transferHandler.HandleImport)

			// Admin routes — session + admin role
			r.Route("/admin/submissions", func(r chi.Router) {
				r.Use(adminHandler.RequireAdmin)

				r.Post("/", adminHandler.HandleFile)
				r.Get("/", adminHandler.HandleList)
				r.Get("/{id}", adminHandler.HandleGet)
				r.Delete("/{id}", adminHandler.HandleDelete)
			})
		})
	})

	return nil
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the store (flushes WAL, releases file lock)
//
// The `defer s.store.Close()` ensures step 3 happens even if something panics.
func (s *Server) Start() error {
	defer s.store.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		// Give in-flight requests 30 seconds to complete
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
