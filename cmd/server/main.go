// Package main is the entry point for the kebapp API server.
//
// main stays minimal: read configuration, create the logger, ensure the
// data directory exists, hand everything to the server package. All logic
// lives in internal/.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/antoinevw/kebapp/internal/config"
	"github.com/antoinevw/kebapp/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.JWTSecret == "" {
		// Sessions are signed tokens; without a secret nothing works.
		// Generate one with: openssl rand -hex 32
		logger.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	// The sqlite backing needs its directory to exist before the first open.
	if cfg.Backend == config.BackendSQLite {
		dbDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
