package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	apimiddleware "github.com/phrazzld/vocabvault/internal/api/middleware"
	"github.com/phrazzld/vocabvault/internal/api/shared"
	"github.com/phrazzld/vocabvault/internal/service"
)

// HealthResponse represents the response body of the health endpoint.
type HealthResponse struct {
	Status         string `json:"status"`
	TotalItems     int    `json:"total_items"`
	ActiveSessions int    `json:"active_sessions"`
}

// NewRouter creates and configures the application router with all routes
// and middleware.
func NewRouter(
	vocabService *service.VocabService,
	practiceService *service.PracticeService,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	vocabHandler := NewVocabHandler(vocabService, logger)
	practiceHandler := NewPracticeHandler(practiceService, logger)

	r.Route("/api", func(r chi.Router) {
		// Collection endpoints
		r.Get("/categories", vocabHandler.ListCategories)
		r.Get("/categories/{category}/items", vocabHandler.ListItems)
		r.Post("/categories/{category}/items", vocabHandler.AddItem)
		r.Delete("/categories/{category}/items/{index}", vocabHandler.DeleteItem)
		r.Get("/summary", vocabHandler.Summary)

		// Flashcard drill endpoints
		r.Post("/practice/flashcards", practiceHandler.StartFlashcards)
		r.Get("/practice/flashcards/{id}", practiceHandler.GetFlashcards)
		r.Post("/practice/flashcards/{id}/answer", practiceHandler.SubmitAnswer)
		r.Post("/practice/flashcards/{id}/advance", practiceHandler.Advance)

		// Matching drill endpoints
		r.Post("/practice/matches", practiceHandler.StartMatching)
		r.Get("/practice/matches/{id}", practiceHandler.GetMatching)
		r.Post("/practice/matches/{id}/pick", practiceHandler.Pick)
		r.Post("/practice/matches/{id}/resolve", practiceHandler.ResolveMismatch)
		r.Post("/practice/matches/{id}/advance", practiceHandler.AdvanceRound)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		shared.RespondWithJSON(w, req, http.StatusOK, HealthResponse{
			Status:         "ok",
			TotalItems:     totalItems(vocabService),
			ActiveSessions: practiceService.ActiveSessions(),
		})
	})

	return r
}

func totalItems(vocabService *service.VocabService) int {
	total := 0
	for _, category := range vocabService.Categories() {
		items, err := vocabService.Items(category)
		if err != nil {
			continue
		}
		total += len(items)
	}
	return total
}
