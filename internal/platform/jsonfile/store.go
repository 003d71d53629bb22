// Package jsonfile implements the item store over a single JSON document on
// disk, the original on-disk format of the program. The whole collection is
// one file; loads tolerate missing, empty, or corrupt files by returning the
// empty default collection, and saves are atomic (temp file + rename).
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/phrazzld/vocabvault/internal/domain"
	"github.com/phrazzld/vocabvault/internal/store"
)

// Store is a JSON-document implementation of store.ItemStore.
type Store struct {
	path       string
	categories []string
	logger     *slog.Logger
}

// New creates a JSON file store rooted at path. The categories are used to
// normalize loaded collections so every configured category key exists.
// If logger is nil, a default logger will be used.
func New(path string, categories []string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		path:       path,
		categories: categories,
		logger:     logger.With(slog.String("component", "jsonfile_store")),
	}
}

// Ensure Store implements store.ItemStore interface
var _ store.ItemStore = (*Store)(nil)

// Load implements store.ItemStore.Load.
// A missing file, an empty file, or a file that fails to parse all yield the
// empty default collection; parse failures are logged, never propagated.
func (s *Store) Load(ctx context.Context) (domain.Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("collection file does not exist, starting empty",
				slog.String("path", s.path))
			return domain.NewCollection(s.categories), nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", store.ErrLoadFailed, s.path, err)
	}

	if len(data) == 0 {
		return domain.NewCollection(s.categories), nil
	}

	var collection domain.Collection
	if err := json.Unmarshal(data, &collection); err != nil {
		s.logger.Warn("collection file is malformed, starting empty",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return domain.NewCollection(s.categories), nil
	}

	s.upgrade(collection)
	collection.Normalize(s.categories)

	s.logger.Debug("collection loaded",
		slog.String("path", s.path),
		slog.Int("items", collection.TotalItems()))
	return collection, nil
}

// upgrade repairs records written by older versions of the document format:
// items without a stable ID get one, and records whose term or definition is
// empty are dropped rather than poisoning the collection.
func (s *Store) upgrade(collection domain.Collection) {
	for category, items := range collection {
		kept := items[:0]
		for _, item := range items {
			if item == nil {
				continue
			}
			if item.ID == uuid.Nil {
				item.ID = uuid.New()
			}
			if err := item.Validate(); err != nil {
				s.logger.Warn("dropping invalid stored item",
					slog.String("category", category),
					slog.String("error", err.Error()))
				continue
			}
			kept = append(kept, item)
		}
		collection[category] = kept
	}
}

// Save implements store.ItemStore.Save.
// The document is written to a temp file in the target directory and renamed
// into place, so a crash mid-write never leaves a truncated collection.
func (s *Store) Save(ctx context.Context, collection domain.Collection) error {
	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding collection: %v", store.ErrSaveFailed, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", store.ErrSaveFailed, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", store.ErrSaveFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", store.ErrSaveFailed, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", store.ErrSaveFailed, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: replacing %s: %v", store.ErrSaveFailed, s.path, err)
	}

	s.logger.Debug("collection saved",
		slog.String("path", s.path),
		slog.Int("items", collection.TotalItems()))
	return nil
}
