// Package cli provides common initialization shared by the binaries in
// cmd/.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"mealgacha/internal/catalog"
	"mealgacha/internal/config"
	"mealgacha/internal/storage"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitSQLite initializes the record repository at the given path.
// Returns the repository or exits the process on failure.
func InitSQLite(logger *slog.Logger, dbPath string) *storage.SQLiteRepository {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}

// InitCatalog loads the food catalog, honoring a file override. An
// unloadable catalog is fatal: a mode without candidates must never
// reach the draw engine.
func InitCatalog(logger *slog.Logger, overridePath string) *catalog.Catalog {
	var (
		cat *catalog.Catalog
		err error
	)
	if overridePath != "" {
		cat, err = catalog.LoadFromFile(overridePath)
	} else {
		cat, err = catalog.Load()
	}
	if err != nil {
		logger.Error("Failed to load food catalog", "error", err, "path", overridePath)
		os.Exit(1)
	}
	return cat
}
