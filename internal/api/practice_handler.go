package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/vocabvault/internal/api/shared"
	"github.com/phrazzld/vocabvault/internal/domain"
	"github.com/phrazzld/vocabvault/internal/domain/practice"
	"github.com/phrazzld/vocabvault/internal/platform/logger"
	"github.com/phrazzld/vocabvault/internal/service"
)

// PracticeHandler handles drill-session HTTP requests for both practice
// protocols.
type PracticeHandler struct {
	practiceService *service.PracticeService
	logger          *slog.Logger
}

// NewPracticeHandler creates a new PracticeHandler.
func NewPracticeHandler(practiceService *service.PracticeService, logger *slog.Logger) *PracticeHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PracticeHandler")
	}

	return &PracticeHandler{
		practiceService: practiceService,
		logger:          logger.With(slog.String("component", "practice_handler")),
	}
}

// sessionID extracts and parses the {id} URL parameter.
func sessionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", domain.ErrInvalidID, err)
	}
	return id, nil
}

// StartFlashcards handles POST /practice/flashcards requests. It selects a
// working set from the category and opens a flashcard session over it.
func (h *PracticeHandler) StartFlashcards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StartFlashcardsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	state, err := h.practiceService.StartFlashcards(
		r.Context(), req.Category, practice.Mode(req.Mode), req.Count)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("flashcard session opened",
		slog.String("session_id", state.SessionID.String()),
		slog.String("category", req.Category))

	shared.RespondWithJSON(w, r, http.StatusCreated, state)
}

// GetFlashcards handles GET /practice/flashcards/{id} requests.
func (h *PracticeHandler) GetFlashcards(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	state, err := h.practiceService.Flashcards(id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, state)
}

// SubmitAnswer handles POST /practice/flashcards/{id}/answer requests. The
// judgment reveals the card's definition and is final.
func (h *PracticeHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	var req AnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	state, err := h.practiceService.SubmitAnswer(r.Context(), id, practice.Outcome(req.Outcome))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, state)
}

// Advance handles POST /practice/flashcards/{id}/advance requests. Advancing
// past the last card finishes the session and persists the score changes.
func (h *PracticeHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	state, err := h.practiceService.Advance(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, state)
}

// StartMatching handles POST /practice/matches requests. It selects a
// working set sized in whole rounds and opens a matching session over it.
func (h *PracticeHandler) StartMatching(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StartMatchingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	state, err := h.practiceService.StartMatching(
		r.Context(), req.Category, practice.Mode(req.Mode), req.Rounds)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("matching session opened",
		slog.String("session_id", state.SessionID.String()),
		slog.String("category", req.Category))

	shared.RespondWithJSON(w, r, http.StatusCreated, state)
}

// GetMatching handles GET /practice/matches/{id} requests.
func (h *PracticeHandler) GetMatching(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	state, err := h.practiceService.Matching(id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, state)
}

// Pick handles POST /practice/matches/{id}/pick requests: selecting,
// deselecting, and pairing board slots.
func (h *PracticeHandler) Pick(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	var req PickRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	state, err := h.practiceService.Pick(r.Context(), id, practice.Side(req.Side), *req.Slot)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, state)
}

// ResolveMismatch handles POST /practice/matches/{id}/resolve requests,
// unlocking the slots flagged by a mismatch.
func (h *PracticeHandler) ResolveMismatch(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	state, err := h.practiceService.ResolveMismatch(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, state)
}

// AdvanceRound handles POST /practice/matches/{id}/advance requests.
// Advancing past the last round finishes the session and persists the score
// changes.
func (h *PracticeHandler) AdvanceRound(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	state, err := h.practiceService.AdvanceRound(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, state)
}
