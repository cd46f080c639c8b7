// Storeapp Server - store catalogue and inventory backend
//
// This is the main entry point for the storeapp server. It serves a
// versioned JSON API for store catalogue documents with token-based
// authentication and role-gated writes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/dldydtjq159-eng/storeapp-server/migrations"

	"github.com/dldydtjq159-eng/storeapp-server/internal/api"
	"github.com/dldydtjq159-eng/storeapp-server/internal/audit"
	"github.com/dldydtjq159-eng/storeapp-server/internal/auth"
	"github.com/dldydtjq159-eng/storeapp-server/internal/catalog"
	"github.com/dldydtjq159-eng/storeapp-server/internal/infrastructure/config"
	"github.com/dldydtjq159-eng/storeapp-server/internal/infrastructure/database"
	"github.com/dldydtjq159-eng/storeapp-server/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting storeapp server",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Provision the superadmin account on first boot
	userRepo := auth.NewUserRepository(db.DB, cfg.Auth.SuperadminID)
	created, err := userRepo.EnsureSuperadmin(ctx, cfg.Auth.SuperadminPassword)
	if err != nil {
		return fmt.Errorf("ensuring superadmin: %w", err)
	}
	if created {
		log.Info("superadmin account created", "id", cfg.Auth.SuperadminID)
	}
	accounts, err := userRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting accounts: %w", err)
	}
	log.Info("user store ready", "accounts", accounts)

	// Open the catalogue store
	catalogStore, err := catalog.NewFileStore(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("opening catalogue store: %w", err)
	}
	log.Info("catalogue store ready", "path", cfg.Data.Path)

	// Start API server
	server, err := api.New(api.Deps{
		Server:    cfg.Server,
		Auth:      cfg.Auth,
		Release:   cfg.Version,
		Logger:    log,
		UserRepo:  userRepo,
		AuditRepo: audit.NewSQLiteRepository(db.DB),
		Catalog:   catalogStore,
		Version:   version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started", "host", cfg.Server.Host, "port", cfg.Server.Port)

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, server); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	return nil
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - server: API server to check
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, server *api.Server) error {
	// Check database
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	// Check API server
	if err := server.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	return nil
}

// getConfigPath returns the configuration file path.
// Uses STOREAPP_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("STOREAPP_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
