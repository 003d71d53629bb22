package practice

import (
	"errors"

	"github.com/phrazzld/vocabvault/internal/domain"
)

// Outcome is the user's correctness judgment on a flashcard.
type Outcome string

const (
	// OutcomeCorrect indicates the user knew the definition.
	OutcomeCorrect Outcome = "correct"

	// OutcomeIncorrect indicates the user did not know the definition.
	OutcomeIncorrect Outcome = "incorrect"
)

// Phase is the per-card state of the flashcard drill.
type Phase string

const (
	// PhaseHidden means the definition is concealed and a judgment is expected.
	PhaseHidden Phase = "hidden"

	// PhaseRevealed means the definition is shown and only advancing is allowed.
	PhaseRevealed Phase = "revealed"
)

// Flashcard drill errors
var (
	// ErrDrillFinished is returned when an operation is attempted on a
	// drill that has already terminated.
	ErrDrillFinished = errors.New("drill already finished")

	// ErrAlreadyJudged is returned when a judgment is submitted for a card
	// whose definition is already revealed. Judgments are final.
	ErrAlreadyJudged = errors.New("card already judged")

	// ErrNotJudged is returned when the caller tries to advance past a card
	// that has not been judged yet.
	ErrNotJudged = errors.New("card not judged yet")

	// ErrInvalidOutcome is returned when a judgment is neither correct nor incorrect.
	ErrInvalidOutcome = errors.New("invalid judgment outcome")
)

// Valid reports whether the outcome is one of the recognized judgments.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeCorrect, OutcomeIncorrect:
		return true
	default:
		return false
	}
}

// FlashcardDrill is a strictly sequential reveal-then-judge state machine
// over a working set. Each card moves Hidden -> Revealed exactly once via a
// correctness judgment that mutates the item's score in place; advancing past
// the final card terminates the drill.
type FlashcardDrill struct {
	items    []*domain.Item
	params   *Params
	index    int
	phase    Phase
	finished bool
}

// NewFlashcardDrill creates a drill over the given working set.
// Returns ErrEmptyCategory if the working set is empty.
func NewFlashcardDrill(items []*domain.Item, params *Params) (*FlashcardDrill, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCategory
	}
	if params == nil {
		params = NewDefaultParams()
	}

	return &FlashcardDrill{
		items:  items,
		params: params,
		index:  0,
		phase:  PhaseHidden,
	}, nil
}

// Current returns the active card. Returns ErrDrillFinished once the drill
// has terminated.
func (d *FlashcardDrill) Current() (*domain.Item, error) {
	if d.finished {
		return nil, ErrDrillFinished
	}
	return d.items[d.index], nil
}

// Index returns the zero-based position of the active card.
func (d *FlashcardDrill) Index() int { return d.index }

// Len returns the size of the working set.
func (d *FlashcardDrill) Len() int { return len(d.items) }

// Phase returns the state of the active card.
func (d *FlashcardDrill) Phase() Phase { return d.phase }

// Finished reports whether the drill has terminated.
func (d *FlashcardDrill) Finished() bool { return d.finished }

// Judge records the user's correctness judgment for the active card, applies
// the score mutation, and reveals the definition. The judgment is final:
// a second judgment on the same card fails with ErrAlreadyJudged.
func (d *FlashcardDrill) Judge(outcome Outcome) error {
	if d.finished {
		return ErrDrillFinished
	}
	if d.phase == PhaseRevealed {
		return ErrAlreadyJudged
	}
	if !outcome.Valid() {
		return ErrInvalidOutcome
	}

	if outcome == OutcomeCorrect {
		ApplyCorrect(d.items[d.index], d.params.MaxScore)
	} else {
		ApplyIncorrect(d.items[d.index])
	}

	d.phase = PhaseRevealed
	return nil
}

// Advance moves to the next card, or terminates the drill if the active card
// was the last one. The active card must have been judged first; there is no
// skip-without-judging path.
func (d *FlashcardDrill) Advance() error {
	if d.finished {
		return ErrDrillFinished
	}
	if d.phase != PhaseRevealed {
		return ErrNotJudged
	}

	if d.index == len(d.items)-1 {
		d.finished = true
		return nil
	}

	d.index++
	d.phase = PhaseHidden
	return nil
}
