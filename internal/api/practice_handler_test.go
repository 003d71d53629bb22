package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/vocabvault/internal/api"
	"github.com/phrazzld/vocabvault/internal/domain/practice"
	"github.com/phrazzld/vocabvault/internal/service"
)

// seedItems adds count items to "all words" through the API.
func seedItems(t *testing.T, handler http.Handler, count int) {
	t.Helper()

	for i := 0; i < count; i++ {
		rec := doJSON(t, handler, http.MethodPost, "/api/categories/all%20words/items",
			api.AddItemRequest{
				Term:       fmt.Sprintf("term-%d", i),
				Definition: fmt.Sprintf("definition-%d", i),
			}, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
}

func TestStartFlashcardsValidation(t *testing.T) {
	t.Parallel()

	handler, _ := newTestServer(t)
	seedItems(t, handler, 3)

	testCases := []struct {
		name     string
		body     api.StartFlashcardsRequest
		wantCode int
	}{
		{
			name:     "unknown mode",
			body:     api.StartFlashcardsRequest{Category: "all words", Mode: "hard", Count: 3},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "zero count",
			body:     api.StartFlashcardsRequest{Category: "all words", Mode: "random", Count: 0},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown category",
			body:     api.StartFlashcardsRequest{Category: "idioms", Mode: "random", Count: 3},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := doJSON(t, handler, http.MethodPost, "/api/practice/flashcards", tc.body, nil)

			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}

func TestStartFlashcardsEmptyCategory(t *testing.T) {
	t.Parallel()

	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/practice/flashcards",
		api.StartFlashcardsRequest{Category: "all words", Mode: "random", Count: 5}, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestFlashcardSessionOverHTTP(t *testing.T) {
	t.Parallel()

	handler, vocab := newTestServer(t)
	seedItems(t, handler, 2)

	var state service.FlashcardState
	rec := doJSON(t, handler, http.MethodPost, "/api/practice/flashcards",
		api.StartFlashcardsRequest{Category: "all words", Mode: "weak", Count: 2}, &state)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 2, state.Total)
	assert.Equal(t, practice.PhaseHidden, state.Phase)
	assert.NotEmpty(t, state.Term)
	assert.Empty(t, state.Definition)

	base := "/api/practice/flashcards/" + state.SessionID.String()

	// Session state can be fetched back.
	rec = doJSON(t, handler, http.MethodGet, base, nil, &state)
	require.Equal(t, http.StatusOK, rec.Code)

	// Advancing an unjudged card is a state conflict.
	rec = doJSON(t, handler, http.MethodPost, base+"/advance", nil, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// First card: correct.
	rec = doJSON(t, handler, http.MethodPost, base+"/answer",
		api.AnswerRequest{Outcome: "correct"}, &state)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, practice.PhaseRevealed, state.Phase)
	assert.NotEmpty(t, state.Definition)

	// A second judgment on the same card is rejected.
	rec = doJSON(t, handler, http.MethodPost, base+"/answer",
		api.AnswerRequest{Outcome: "incorrect"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, base+"/advance", nil, &state)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, state.Index)

	// Second card: incorrect, then finish.
	rec = doJSON(t, handler, http.MethodPost, base+"/answer",
		api.AnswerRequest{Outcome: "incorrect"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, base+"/advance", nil, &state)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, state.Finished)

	// The finished session is gone.
	rec = doJSON(t, handler, http.MethodGet, base, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// One correct and one incorrect judgment net out to zero.
	total, err := vocab.TotalScore("all words")
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestFlashcardSessionBadID(t *testing.T) {
	t.Parallel()

	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/practice/flashcards/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodPost,
		"/api/practice/flashcards/00000000-0000-0000-0000-000000000001/advance", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMatchingSessionOverHTTP(t *testing.T) {
	t.Parallel()

	handler, _ := newTestServer(t)
	seedItems(t, handler, 4)

	var state service.MatchingState
	rec := doJSON(t, handler, http.MethodPost, "/api/practice/matches",
		api.StartMatchingRequest{Category: "all words", Mode: "random", Rounds: 1}, &state)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, state.Rounds)
	assert.Equal(t, 4, state.RemainingPairs)
	require.Len(t, state.Terms, 4)
	require.Len(t, state.Definitions, 4)

	base := "/api/practice/matches/" + state.SessionID.String()

	// Advancing an incomplete round is a state conflict.
	rec = doJSON(t, handler, http.MethodPost, base+"/advance", nil, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Match every pair by item ID.
	for state.RemainingPairs > 0 {
		var term *practice.Slot
		for i := range state.Terms {
			if state.Terms[i].State == practice.SlotNeutral {
				term = &state.Terms[i]
				break
			}
		}
		require.NotNil(t, term)

		slot := term.Index
		rec = doJSON(t, handler, http.MethodPost, base+"/pick",
			api.PickRequest{Side: "term", Slot: &slot}, &state)
		require.Equal(t, http.StatusOK, rec.Code)

		var def *practice.Slot
		for i := range state.Definitions {
			if state.Definitions[i].ItemID == term.ItemID {
				def = &state.Definitions[i]
				break
			}
		}
		require.NotNil(t, def)

		slot = def.Index
		rec = doJSON(t, handler, http.MethodPost, base+"/pick",
			api.PickRequest{Side: "definition", Slot: &slot}, &state)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, state.LastPick)
		require.Equal(t, practice.PickMatched, state.LastPick.Outcome)
	}

	assert.True(t, state.RoundComplete)

	rec = doJSON(t, handler, http.MethodPost, base+"/advance", nil, &state)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, state.Finished)

	rec = doJSON(t, handler, http.MethodGet, base, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMatchingMismatchOverHTTP(t *testing.T) {
	t.Parallel()

	handler, _ := newTestServer(t)
	seedItems(t, handler, 3)

	var state service.MatchingState
	rec := doJSON(t, handler, http.MethodPost, "/api/practice/matches",
		api.StartMatchingRequest{Category: "all words", Mode: "weak", Rounds: 1}, &state)
	require.Equal(t, http.StatusCreated, rec.Code)

	base := "/api/practice/matches/" + state.SessionID.String()

	term := state.Terms[0]
	var wrong *practice.Slot
	for i := range state.Definitions {
		if state.Definitions[i].ItemID != term.ItemID {
			wrong = &state.Definitions[i]
			break
		}
	}
	require.NotNil(t, wrong)

	slot := term.Index
	doJSON(t, handler, http.MethodPost, base+"/pick",
		api.PickRequest{Side: "term", Slot: &slot}, nil)

	slot = wrong.Index
	rec = doJSON(t, handler, http.MethodPost, base+"/pick",
		api.PickRequest{Side: "definition", Slot: &slot}, &state)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, state.LastPick)
	assert.Equal(t, practice.PickMismatched, state.LastPick.Outcome)

	// The flagged slot rejects picks until resolved.
	slot = term.Index
	rec = doJSON(t, handler, http.MethodPost, base+"/pick",
		api.PickRequest{Side: "term", Slot: &slot}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, base+"/resolve", nil, &state)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, s := range state.Terms {
		assert.NotEqual(t, practice.SlotFlagged, s.State)
	}
}

func TestMatchingPickValidation(t *testing.T) {
	t.Parallel()

	handler, _ := newTestServer(t)
	seedItems(t, handler, 3)

	var state service.MatchingState
	rec := doJSON(t, handler, http.MethodPost, "/api/practice/matches",
		api.StartMatchingRequest{Category: "all words", Mode: "random", Rounds: 1}, &state)
	require.Equal(t, http.StatusCreated, rec.Code)

	base := "/api/practice/matches/" + state.SessionID.String()

	// Unknown side fails request validation.
	slot := 0
	rec = doJSON(t, handler, http.MethodPost, base+"/pick",
		api.PickRequest{Side: "middle", Slot: &slot}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Slot index beyond the board.
	slot = 99
	rec = doJSON(t, handler, http.MethodPost, base+"/pick",
		api.PickRequest{Side: "term", Slot: &slot}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing slot field.
	rec = doJSON(t, handler, http.MethodPost, base+"/pick",
		api.PickRequest{Side: "term"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
