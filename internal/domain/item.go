package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item-specific validation errors
var (
	// ErrItemIDEmpty is returned when an item ID is empty or nil.
	ErrItemIDEmpty = errors.New("item ID cannot be empty")

	// ErrTermEmpty is returned when an item's term is empty after trimming.
	ErrTermEmpty = fmt.Errorf("%w: term cannot be empty", ErrValidation)

	// ErrDefinitionEmpty is returned when an item's definition is empty after trimming.
	ErrDefinitionEmpty = fmt.Errorf("%w: definition cannot be empty", ErrValidation)
)

// Item represents one learnable vocabulary unit: a term, its definition,
// and a bounded mastery score mutated by practice drills.
//
// Score has a configurable upper bound (practice.Params.MaxScore) enforced by
// the scoring functions, and no lower bound. Items are identified by a stable
// UUID assigned at creation so that drills can address them unambiguously even
// when two items carry identical term/definition content.
type Item struct {
	ID         uuid.UUID `json:"id"`
	Term       string    `json:"term"`
	Definition string    `json:"definition"`
	Score      int       `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewItem creates a new Item with the given term and definition.
// Both fields are whitespace-trimmed before validation. The item starts with
// a zero score and a freshly generated UUID.
// Returns an error wrapping ErrValidation if either field is empty.
func NewItem(term, definition string) (*Item, error) {
	now := time.Now().UTC()
	item := &Item{
		ID:         uuid.New(),
		Term:       strings.TrimSpace(term),
		Definition: strings.TrimSpace(definition),
		Score:      0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the Item has valid data.
// Returns an error if any field fails validation.
func (i *Item) Validate() error {
	if i.ID == uuid.Nil {
		return ErrItemIDEmpty
	}

	if strings.TrimSpace(i.Term) == "" {
		return ErrTermEmpty
	}

	if strings.TrimSpace(i.Definition) == "" {
		return ErrDefinitionEmpty
	}

	return nil
}

// Touch updates the UpdatedAt timestamp. Called by the scoring functions
// after every score mutation.
func (i *Item) Touch() {
	i.UpdatedAt = time.Now().UTC()
}
