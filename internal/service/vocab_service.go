package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/phrazzld/vocabvault/internal/domain"
	"github.com/phrazzld/vocabvault/internal/platform/logger"
	"github.com/phrazzld/vocabvault/internal/store"
)

// CategorySummary reports the stats line for one category.
type CategorySummary struct {
	Category string `json:"category"`
	Items    int    `json:"items"`
	Score    int    `json:"score"`
	MaxScore int    `json:"max_score"`
}

// VocabService owns the in-memory collection and is the only component that
// talks to the persistence collaborator. Drills receive live references to
// the items it owns, so their score mutations need no merge step — they are
// already in the collection the next Flush writes out.
type VocabService struct {
	mu         sync.Mutex
	store      store.ItemStore
	categories []string
	maxScore   int
	collection domain.Collection
	logger     *slog.Logger
}

// NewVocabService loads the collection from the store and returns a service
// over it. The category list fixes both the API ordering and the keys
// guaranteed to exist in the collection.
func NewVocabService(
	ctx context.Context,
	itemStore store.ItemStore,
	categories []string,
	maxScore int,
	log *slog.Logger,
) (*VocabService, error) {
	if itemStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("itemStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	collection, err := itemStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	collection.Normalize(categories)

	return &VocabService{
		store:      itemStore,
		categories: slices.Clone(categories),
		maxScore:   maxScore,
		collection: collection,
		logger:     log.With(slog.String("component", "vocab_service")),
	}, nil
}

// Categories returns the configured category names in display order.
func (s *VocabService) Categories() []string {
	return slices.Clone(s.categories)
}

// MaxScore returns the configured per-item score cap.
func (s *VocabService) MaxScore() int {
	return s.maxScore
}

// Items returns the live item references of a category in insertion order.
// The slice is a copy; the items are not.
func (s *VocabService) Items(category string) ([]*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.items(category)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (s *VocabService) items(category string) ([]*domain.Item, error) {
	if !slices.Contains(s.categories, category) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}
	return s.collection[category], nil
}

// AddItem validates, appends, and persists a new item in the given category.
// The item is kept in memory even when the save fails, so the caller may
// retry persisting without losing the entry.
func (s *VocabService) AddItem(ctx context.Context, category, term, definition string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.items(category); err != nil {
		return nil, err
	}

	item, err := domain.NewItem(term, definition)
	if err != nil {
		return nil, err
	}

	s.collection[category] = append(s.collection[category], item)

	log.Info("item added",
		slog.String("category", category),
		slog.String("item_id", item.ID.String()))

	if err := s.store.Save(ctx, s.collection); err != nil {
		log.Error("failed to persist collection after add",
			slog.String("error", err.Error()))
		return item, err
	}

	return item, nil
}

// DeleteItem removes the item at the given position in a category and
// persists the collection. Deletion is permanent and immediate.
// Returns domain.ErrIndexOutOfRange for a position that does not exist.
func (s *VocabService) DeleteItem(ctx context.Context, category string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, s.logger)

	items, err := s.items(category)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(items) {
		return fmt.Errorf("%w: %d in category %q of size %d",
			domain.ErrIndexOutOfRange, index, category, len(items))
	}

	removed := items[index]
	s.collection[category] = slices.Delete(items, index, index+1)

	log.Info("item deleted",
		slog.String("category", category),
		slog.String("item_id", removed.ID.String()))

	if err := s.store.Save(ctx, s.collection); err != nil {
		log.Error("failed to persist collection after delete",
			slog.String("error", err.Error()))
		return err
	}

	return nil
}

// TotalScore sums the scores of one category, or of the whole collection
// when category is empty.
func (s *VocabService) TotalScore(category string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category == "" {
		total := 0
		for _, cat := range s.categories {
			total += lo.SumBy(s.collection[cat], scoreOf)
		}
		return total, nil
	}

	items, err := s.items(category)
	if err != nil {
		return 0, err
	}
	return lo.SumBy(items, scoreOf), nil
}

// MaxPossibleScore returns item count times the score cap for one category,
// or for the whole collection when category is empty.
func (s *VocabService) MaxPossibleScore(category string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category == "" {
		total := 0
		for _, cat := range s.categories {
			total += len(s.collection[cat]) * s.maxScore
		}
		return total, nil
	}

	items, err := s.items(category)
	if err != nil {
		return 0, err
	}
	return len(items) * s.maxScore, nil
}

// Summary returns the per-category stats in display order.
func (s *VocabService) Summary() []CategorySummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return lo.Map(s.categories, func(category string, _ int) CategorySummary {
		items := s.collection[category]
		return CategorySummary{
			Category: category,
			Items:    len(items),
			Score:    lo.SumBy(items, scoreOf),
			MaxScore: len(items) * s.maxScore,
		}
	})
}

// Flush persists the current collection. Drills call this once on completion
// so their in-place score mutations become durable.
func (s *VocabService) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Save(ctx, s.collection)
}

// Export returns the collection in document form for backup tooling.
// The returned value shares item references with the live collection.
func (s *VocabService) Export() domain.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(domain.Collection, len(s.collection))
	for category, items := range s.collection {
		out[category] = slices.Clone(items)
	}
	return out
}

// Import replaces the in-memory collection with the given document and
// persists it.
func (s *VocabService) Import(ctx context.Context, collection domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection.Normalize(s.categories)
	s.collection = collection

	return s.store.Save(ctx, s.collection)
}

func scoreOf(item *domain.Item) int {
	return item.Score
}
