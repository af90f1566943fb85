package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/opspulse/dashboard/internal/config"
	"github.com/opspulse/dashboard/internal/service"
	"github.com/opspulse/dashboard/internal/store"
	transport "github.com/opspulse/dashboard/internal/transport/http"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	logger.Info().
		Int("port", cfg.HTTPPort).
		Str("database", cfg.DatabaseURL).
		Msg("starting dashboard")

	// Initialize store. A postgres:// URL selects the Postgres store;
	// anything else is treated as a SQLite DSN.
	ctx := context.Background()
	var db store.Store
	var err error
	if strings.HasPrefix(cfg.DatabaseURL, "postgres://") || strings.HasPrefix(cfg.DatabaseURL, "postgresql://") {
		db, err = store.NewPostgresStore(ctx, cfg.DatabaseURL)
	} else {
		db, err = store.NewSQLiteStore(cfg.DatabaseURL)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize store")
	}
	defer db.Close()

	// Initialize service and server
	svc := service.New(db, cfg, logger)
	e := transport.NewServer(svc, logger)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	logger.Info().Int("port", cfg.HTTPPort).Msg("dashboard API started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down dashboard")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server gracefully")
	}

	logger.Info().Msg("dashboard stopped")
}
