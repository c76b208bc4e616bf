// Package cli provides common initialization for the hisab commands.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hisab/internal/config"
	"hisab/internal/ledger"
	"hisab/internal/storage"
)

// SetupLogger initializes structured logging with default settings and
// installs it as the process default.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are
// ignored; the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it, exiting the
// process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenBook opens the slot store and loads the ledger, exiting on failure.
// The returned cleanup closes the store.
func OpenBook(ctx context.Context, logger *slog.Logger, dbPath string) (*ledger.Book, func()) {
	slots, err := storage.NewSlotStore(dbPath)
	if err != nil {
		logger.Error("Failed to open slot store", "error", err, "path", dbPath)
		os.Exit(1)
	}
	book, err := ledger.Open(ctx, slots)
	if err != nil {
		logger.Error("Failed to load ledger", "error", err, "path", dbPath)
		_ = slots.Close()
		os.Exit(1)
	}
	return book, func() { _ = slots.Close() }
}

// NotifyShutdown returns a context cancelled on SIGINT/SIGTERM plus the
// shutdown grace period to apply.
func NotifyShutdown(parent context.Context) (context.Context, context.CancelFunc, time.Duration) {
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	return ctx, cancel, 30 * time.Second
}
