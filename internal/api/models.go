package api

import (
	"time"

	"github.com/phrazzld/vocabvault/internal/domain"
	"github.com/phrazzld/vocabvault/internal/service"
)

// ItemResponse represents the response data for a vocabulary item.
type ItemResponse struct {
	ID         string    `json:"id"`
	Index      int       `json:"index"`
	Term       string    `json:"term"`
	Definition string    `json:"definition"`
	Score      int       `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// itemToResponse transforms a domain item into its API shape. The index is
// the item's position within its category, which is also its delete handle.
func itemToResponse(item *domain.Item, index int) ItemResponse {
	return ItemResponse{
		ID:         item.ID.String(),
		Index:      index,
		Term:       item.Term,
		Definition: item.Definition,
		Score:      item.Score,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

// CategoryListResponse represents the configured category names.
type CategoryListResponse struct {
	Categories []string `json:"categories"`
}

// ItemListResponse represents the items of one category.
type ItemListResponse struct {
	Category string         `json:"category"`
	Items    []ItemResponse `json:"items"`
}

// SummaryResponse represents the per-category stats plus the overall totals.
type SummaryResponse struct {
	Categories []service.CategorySummary `json:"categories"`
	Items      int                       `json:"items"`
	Score      int                       `json:"score"`
	MaxScore   int                       `json:"max_score"`
}

// AddItemRequest represents the request body for adding a vocabulary item.
type AddItemRequest struct {
	Term       string `json:"term"       validate:"required"`
	Definition string `json:"definition" validate:"required"`
}

// StartFlashcardsRequest represents the request body for opening a flashcard
// session.
type StartFlashcardsRequest struct {
	Category string `json:"category" validate:"required"`
	Mode     string `json:"mode"     validate:"required,oneof=random weak"`
	Count    int    `json:"count"    validate:"required,gte=1"`
}

// AnswerRequest represents the request body for judging the active flashcard.
type AnswerRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=correct incorrect"`
}

// StartMatchingRequest represents the request body for opening a matching
// session. Rounds is the number of board rounds wanted; the working set is
// capped by the category size.
type StartMatchingRequest struct {
	Category string `json:"category" validate:"required"`
	Mode     string `json:"mode"     validate:"required,oneof=random weak"`
	Rounds   int    `json:"rounds"   validate:"required,gte=1"`
}

// PickRequest represents the request body for picking a matching board slot.
type PickRequest struct {
	Side string `json:"side" validate:"required,oneof=term definition"`
	Slot *int   `json:"slot" validate:"required,gte=0"`
}
