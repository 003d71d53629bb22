package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/vocabvault/internal/domain/practice"
	"github.com/phrazzld/vocabvault/internal/platform/logger"
)

// FlashcardState is the caller-facing snapshot of a flashcard session.
// Definition is populated only after the card has been judged, mirroring the
// hidden/revealed card faces.
type FlashcardState struct {
	SessionID  uuid.UUID        `json:"session_id"`
	Category   string           `json:"category"`
	Index      int              `json:"index"`
	Total      int              `json:"total"`
	Phase      practice.Phase   `json:"phase"`
	Term       string           `json:"term,omitempty"`
	Definition string           `json:"definition,omitempty"`
	Outcome    practice.Outcome `json:"outcome,omitempty"`
	Finished   bool             `json:"finished"`
}

// MatchingState is the caller-facing snapshot of a matching session.
type MatchingState struct {
	SessionID      uuid.UUID            `json:"session_id"`
	Category       string               `json:"category"`
	Round          int                  `json:"round"`
	Rounds         int                  `json:"rounds"`
	RemainingPairs int                  `json:"remaining_pairs"`
	RoundComplete  bool                 `json:"round_complete"`
	Finished       bool                 `json:"finished"`
	Terms          []practice.Slot      `json:"terms"`
	Definitions    []practice.Slot      `json:"definitions"`
	LastPick       *practice.PickResult `json:"last_pick,omitempty"`
}

type flashcardSession struct {
	id          uuid.UUID
	category    string
	drill       *practice.FlashcardDrill
	lastOutcome practice.Outcome
}

type matchingSession struct {
	id       uuid.UUID
	category string
	drill    *practice.MatchingDrill
}

// PracticeService runs drill sessions over the live items owned by the
// vocab service. At most one session per drill protocol is active at a time;
// starting a new drill evicts the previous one without persisting it.
type PracticeService struct {
	mu         sync.Mutex
	vocab      *VocabService
	params     *practice.Params
	rng        *rand.Rand
	flashcards map[uuid.UUID]*flashcardSession
	matches    map[uuid.UUID]*matchingSession
	logger     *slog.Logger
}

// NewPracticeService wires the drill engine to the vocab service. A nil rng
// falls back to a time-seeded source; tests inject a fixed seed instead.
func NewPracticeService(vocab *VocabService, params *practice.Params, rng *rand.Rand, log *slog.Logger) *PracticeService {
	if vocab == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("vocab service cannot be nil")
	}
	if params == nil {
		params = practice.NewDefaultParams()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = slog.Default()
	}

	return &PracticeService{
		vocab:      vocab,
		params:     params,
		rng:        rng,
		flashcards: make(map[uuid.UUID]*flashcardSession),
		matches:    make(map[uuid.UUID]*matchingSession),
		logger:     log.With(slog.String("component", "practice_service")),
	}
}

// StartFlashcards selects a working set from the category and opens a
// flashcard session over it. Any previous flashcard session is discarded.
func (s *PracticeService) StartFlashcards(ctx context.Context, category string, mode practice.Mode, count int) (*FlashcardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, s.logger)

	items, err := s.vocab.Items(category)
	if err != nil {
		return nil, err
	}

	working, err := practice.SelectWorkingSet(items, mode, count, s.rng)
	if err != nil {
		return nil, err
	}

	drill, err := practice.NewFlashcardDrill(working, s.params)
	if err != nil {
		return nil, err
	}

	session := &flashcardSession{
		id:       uuid.New(),
		category: category,
		drill:    drill,
	}
	clear(s.flashcards)
	s.flashcards[session.id] = session

	log.Info("flashcard session started",
		slog.String("session_id", session.id.String()),
		slog.String("category", category),
		slog.String("mode", string(mode)),
		slog.Int("cards", drill.Len()))

	return s.flashcardState(session), nil
}

// Flashcards returns the current state of a flashcard session.
func (s *PracticeService) Flashcards(sessionID uuid.UUID) (*FlashcardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.flashcards[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return s.flashcardState(session), nil
}

// SubmitAnswer judges the current card. The judgment is final: the card
// reveals its definition and only Advance moves the session forward.
func (s *PracticeService) SubmitAnswer(ctx context.Context, sessionID uuid.UUID, outcome practice.Outcome) (*FlashcardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.flashcards[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	if err := session.drill.Judge(outcome); err != nil {
		return nil, err
	}
	session.lastOutcome = outcome

	return s.flashcardState(session), nil
}

// Advance moves a flashcard session to the next card. When the last card is
// left behind, the session's score changes are persisted and the session is
// removed.
func (s *PracticeService) Advance(ctx context.Context, sessionID uuid.UUID) (*FlashcardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, s.logger)

	session, ok := s.flashcards[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	if err := session.drill.Advance(); err != nil {
		return nil, err
	}
	session.lastOutcome = ""

	state := s.flashcardState(session)

	if session.drill.Finished() {
		delete(s.flashcards, sessionID)
		log.Info("flashcard session finished",
			slog.String("session_id", sessionID.String()),
			slog.String("category", session.category))
		if err := s.vocab.Flush(ctx); err != nil {
			log.Error("failed to persist scores after flashcard session",
				slog.String("error", err.Error()))
			return nil, err
		}
	}

	return state, nil
}

// StartMatching selects a working set sized in whole rounds and opens a
// matching session over it. Any previous matching session is discarded.
func (s *PracticeService) StartMatching(ctx context.Context, category string, mode practice.Mode, rounds int) (*MatchingState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, s.logger)

	if rounds < 1 {
		return nil, practice.ErrInvalidCount
	}

	items, err := s.vocab.Items(category)
	if err != nil {
		return nil, err
	}

	working, err := practice.SelectWorkingSet(items, mode, rounds*s.params.RoundSize, s.rng)
	if err != nil {
		return nil, err
	}

	drill, err := practice.NewMatchingDrill(working, s.params, s.rng)
	if err != nil {
		return nil, err
	}

	session := &matchingSession{
		id:       uuid.New(),
		category: category,
		drill:    drill,
	}
	clear(s.matches)
	s.matches[session.id] = session

	log.Info("matching session started",
		slog.String("session_id", session.id.String()),
		slog.String("category", category),
		slog.String("mode", string(mode)),
		slog.Int("pairs", len(working)),
		slog.Int("rounds", drill.Rounds()))

	return s.matchingState(session, nil), nil
}

// Matching returns the current state of a matching session.
func (s *PracticeService) Matching(sessionID uuid.UUID) (*MatchingState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.matches[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return s.matchingState(session, nil), nil
}

// Pick selects or deselects a slot in a matching session and reports the
// resulting match or mismatch, if any.
func (s *PracticeService) Pick(ctx context.Context, sessionID uuid.UUID, side practice.Side, slot int) (*MatchingState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.matches[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	result, err := session.drill.Pick(side, slot)
	if err != nil {
		return nil, err
	}

	return s.matchingState(session, result), nil
}

// ResolveMismatch clears the flagged pair so the session can continue.
func (s *PracticeService) ResolveMismatch(ctx context.Context, sessionID uuid.UUID) (*MatchingState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.matches[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	session.drill.ResolveMismatch()

	return s.matchingState(session, nil), nil
}

// AdvanceRound moves a matching session past a completed round. When the
// last round completes, the session's score changes are persisted and the
// session is removed.
func (s *PracticeService) AdvanceRound(ctx context.Context, sessionID uuid.UUID) (*MatchingState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, s.logger)

	session, ok := s.matches[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	if err := session.drill.AdvanceRound(); err != nil {
		return nil, err
	}

	state := s.matchingState(session, nil)

	if session.drill.Finished() {
		delete(s.matches, sessionID)
		log.Info("matching session finished",
			slog.String("session_id", sessionID.String()),
			slog.String("category", session.category))
		if err := s.vocab.Flush(ctx); err != nil {
			log.Error("failed to persist scores after matching session",
				slog.String("error", err.Error()))
			return nil, err
		}
	}

	return state, nil
}

func (s *PracticeService) flashcardState(session *flashcardSession) *FlashcardState {
	state := &FlashcardState{
		SessionID: session.id,
		Category:  session.category,
		Index:     session.drill.Index(),
		Total:     session.drill.Len(),
		Phase:     session.drill.Phase(),
		Finished:  session.drill.Finished(),
	}

	if state.Finished {
		return state
	}

	card, err := session.drill.Current()
	if err != nil {
		return state
	}

	state.Term = card.Term
	if session.drill.Phase() == practice.PhaseRevealed {
		state.Definition = card.Definition
		state.Outcome = session.lastOutcome
	}

	return state
}

func (s *PracticeService) matchingState(session *matchingSession, lastPick *practice.PickResult) *MatchingState {
	drill := session.drill
	return &MatchingState{
		SessionID:      session.id,
		Category:       session.category,
		Round:          drill.Round(),
		Rounds:         drill.Rounds(),
		RemainingPairs: drill.RemainingPairs(),
		RoundComplete:  drill.RoundComplete(),
		Finished:       drill.Finished(),
		Terms:          drill.TermSlots(),
		Definitions:    drill.DefinitionSlots(),
		LastPick:       lastPick,
	}
}

// ActiveSessions reports how many drill sessions are currently open, for the
// health endpoint.
func (s *PracticeService) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.flashcards) + len(s.matches)
}
