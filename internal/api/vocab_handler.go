// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/vocabvault/internal/api/shared"
	"github.com/phrazzld/vocabvault/internal/platform/logger"
	"github.com/phrazzld/vocabvault/internal/service"
)

// VocabHandler handles collection-related HTTP requests: categories, items,
// and the summary.
type VocabHandler struct {
	vocabService *service.VocabService
	logger       *slog.Logger
}

// NewVocabHandler creates a new VocabHandler.
func NewVocabHandler(vocabService *service.VocabService, logger *slog.Logger) *VocabHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for VocabHandler")
	}

	return &VocabHandler{
		vocabService: vocabService,
		logger:       logger.With(slog.String("component", "vocab_handler")),
	}
}

// ListCategories handles GET /categories requests.
func (h *VocabHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, CategoryListResponse{
		Categories: h.vocabService.Categories(),
	})
}

// ListItems handles GET /categories/{category}/items requests.
func (h *VocabHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	items, err := h.vocabService.Items(category)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := ItemListResponse{
		Category: category,
		Items:    make([]ItemResponse, 0, len(items)),
	}
	for i, item := range items {
		response.Items = append(response.Items, itemToResponse(item, i))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// AddItem handles POST /categories/{category}/items requests.
func (h *VocabHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	category := chi.URLParam(r, "category")

	var req AddItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	item, err := h.vocabService.AddItem(r.Context(), category, req.Term, req.Definition)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("item created",
		slog.String("category", category),
		slog.String("item_id", item.ID.String()))

	items, _ := h.vocabService.Items(category)
	shared.RespondWithJSON(w, r, http.StatusCreated, itemToResponse(item, len(items)-1))
}

// DeleteItem handles DELETE /categories/{category}/items/{index} requests.
// Items are addressed by their position within the category.
func (h *VocabHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	category := chi.URLParam(r, "category")

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid item index")
		return
	}

	if err := h.vocabService.DeleteItem(r.Context(), category, index); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("item deleted",
		slog.String("category", category),
		slog.Int("index", index))

	w.WriteHeader(http.StatusNoContent)
}

// Summary handles GET /summary requests: per-category item counts and score
// totals against the configured score cap, plus the overall totals.
func (h *VocabHandler) Summary(w http.ResponseWriter, r *http.Request) {
	categories := h.vocabService.Summary()

	response := SummaryResponse{Categories: categories}
	for _, c := range categories {
		response.Items += c.Items
		response.Score += c.Score
		response.MaxScore += c.MaxScore
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
