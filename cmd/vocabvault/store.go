package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/phrazzld/vocabvault/internal/config"
	"github.com/phrazzld/vocabvault/internal/platform/jsonfile"
	"github.com/phrazzld/vocabvault/internal/platform/postgres"
	"github.com/phrazzld/vocabvault/internal/store"
)

// openStore builds the item store selected by the database driver config.
// The returned cleanup func closes whatever the store holds open; it is safe
// to call even when it is a no-op.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.ItemStore, func(), error) {
	switch cfg.Database.Driver {
	case "file":
		st := jsonfile.New(cfg.Database.File, cfg.Vocab.Categories, logger)
		return st, func() {}, nil

	case "postgres":
		db, err := setupDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}

		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		st := postgres.NewItemStore(db, cfg.Vocab.Categories, logger)
		cleanup := func() {
			if err := db.Close(); err != nil {
				logger.Error("failed to close database connection", "error", err)
			}
		}
		return st, cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// setupDatabase establishes a connection to the database and configures
// connection pools. Returns the database connection if successful, or an
// error if the connection fails.
func setupDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool with reasonable defaults
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test the connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established")
	return db, nil
}
