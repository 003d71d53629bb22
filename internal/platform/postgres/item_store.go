// Package postgres implements the item store over PostgreSQL. The document
// contract stays the same as the JSON file store: Load materializes the whole
// collection from the items table, Save replaces the table contents in one
// transaction.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"

	"github.com/phrazzld/vocabvault/internal/domain"
	"github.com/phrazzld/vocabvault/internal/platform/logger"
	"github.com/phrazzld/vocabvault/internal/store"
)

// ItemStore is a PostgreSQL implementation of store.ItemStore.
type ItemStore struct {
	db         *sql.DB
	categories []string
	logger     *slog.Logger
}

// NewItemStore creates a PostgreSQL implementation of the ItemStore interface.
// It accepts a database connection that should be initialized and managed by
// the caller. If logger is nil, a default logger will be used.
func NewItemStore(db *sql.DB, categories []string, logger *slog.Logger) *ItemStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ItemStore{
		db:         db,
		categories: categories,
		logger:     logger.With(slog.String("component", "postgres_item_store")),
	}
}

// Ensure ItemStore implements store.ItemStore interface
var _ store.ItemStore = (*ItemStore)(nil)

// Load implements store.ItemStore.Load.
// Items come back in their stored category order (the position column), so
// insertion order survives a round trip the same way it does in the JSON file.
func (s *ItemStore) Load(ctx context.Context) (domain.Collection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, category, term, definition, score, created_at, updated_at
		FROM items
		ORDER BY category, position
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query items", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", store.ErrLoadFailed, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	collection := domain.NewCollection(s.categories)
	for rows.Next() {
		var item domain.Item
		var category string

		err := rows.Scan(
			&item.ID,
			&category,
			&item.Term,
			&item.Definition,
			&item.Score,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan item row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: %v", store.ErrLoadFailed, err)
		}

		collection[category] = append(collection[category], &item)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", store.ErrLoadFailed, err)
	}

	log.Debug("collection loaded", slog.Int("items", collection.TotalItems()))
	return collection, nil
}

// Save implements store.ItemStore.Save.
// The whole document is replaced atomically: delete everything, insert the
// current collection, commit. A failure at any point rolls back and leaves
// the stored document untouched.
func (s *ItemStore) Save(ctx context.Context, collection domain.Collection) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", store.ErrSaveFailed, err)
	}

	if err := s.saveInTx(ctx, tx, collection); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("rollback failed after save error",
				slog.String("error", rbErr.Error()))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", store.ErrSaveFailed, err)
	}

	log.Debug("collection saved", slog.Int("items", collection.TotalItems()))
	return nil
}

func (s *ItemStore) saveInTx(ctx context.Context, tx *sql.Tx, collection domain.Collection) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return mapWriteError("clearing items", err)
	}

	insert := `
		INSERT INTO items (id, category, position, term, definition, score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	// Deterministic category order keeps the write pattern stable; the
	// position column is what actually preserves item order.
	categories := make([]string, 0, len(collection))
	for category := range collection {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		for position, item := range collection[category] {
			_, err := tx.ExecContext(
				ctx,
				insert,
				item.ID,
				category,
				position,
				item.Term,
				item.Definition,
				item.Score,
				item.CreatedAt,
				item.UpdatedAt,
			)
			if err != nil {
				return mapWriteError(fmt.Sprintf("inserting item %s", item.ID), err)
			}
		}
	}

	return nil
}
