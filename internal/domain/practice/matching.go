package practice

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"

	"github.com/phrazzld/vocabvault/internal/domain"
)

// Side identifies which column of the matching board a slot belongs to.
type Side string

const (
	// SideTerm is column A: the terms of the round's items.
	SideTerm Side = "term"

	// SideDefinition is column B: the definitions of the round's items.
	SideDefinition Side = "definition"
)

// SlotState is the visual/interaction state of a board slot.
type SlotState string

const (
	// SlotNeutral means the slot is selectable.
	SlotNeutral SlotState = "neutral"

	// SlotSelected means the slot holds one of the two selection cursors.
	SlotSelected SlotState = "selected"

	// SlotMatched means the slot's pair was found; it is retired for the round.
	SlotMatched SlotState = "matched"

	// SlotFlagged means the slot was part of a mismatch and rejects picks
	// until the caller resolves the mismatch.
	SlotFlagged SlotState = "flagged"
)

// PickOutcome classifies what a pick did to the board.
type PickOutcome string

const (
	// PickSelected means the slot now holds its side's cursor.
	PickSelected PickOutcome = "selected"

	// PickDeselected means the pick toggled an already-selected slot off.
	PickDeselected PickOutcome = "deselected"

	// PickMatched means both cursors were set and the pairing was correct.
	PickMatched PickOutcome = "matched"

	// PickMismatched means both cursors were set and the pairing was wrong.
	PickMismatched PickOutcome = "mismatched"
)

// Matching drill errors
var (
	// ErrInvalidSide is returned when a pick names an unknown board side.
	ErrInvalidSide = errors.New("invalid board side")

	// ErrInvalidSlot is returned when a pick addresses a slot index that is
	// not on the current round's board.
	ErrInvalidSlot = errors.New("invalid slot index")

	// ErrSlotRetired is returned when a pick addresses a slot whose pair was
	// already matched this round.
	ErrSlotRetired = errors.New("slot already matched")

	// ErrSlotLocked is returned when a pick addresses a slot that is flagged
	// from a pending mismatch. Only the two flagged slots are locked; the
	// rest of the board stays responsive.
	ErrSlotLocked = errors.New("slot locked pending mismatch reset")

	// ErrRoundNotComplete is returned when the caller tries to advance a
	// round that still has unmatched pairs.
	ErrRoundNotComplete = errors.New("round still has unmatched pairs")
)

// Slot is one button on the matching board. Slots are keyed by the underlying
// item's ID rather than by term/definition content, so two items with
// identical text can never false-match each other.
type Slot struct {
	Index  int       `json:"index"`
	ItemID uuid.UUID `json:"item_id"`
	Label  string    `json:"label"`
	State  SlotState `json:"state"`
}

// PickResult describes the effect of a single pick on the board.
type PickResult struct {
	Outcome PickOutcome `json:"outcome"`

	// Term and Definition are set for matched/mismatched outcomes and hold
	// the two slots involved in the check.
	Term       *Slot `json:"term,omitempty"`
	Definition *Slot `json:"definition,omitempty"`

	// RoundComplete is true when this pick matched the round's last pair.
	RoundComplete bool `json:"round_complete"`
}

// MatchingDrill is a round-based pairing state machine. The working set is
// processed in rounds of Params.RoundSize items (the last round may be
// partial). Within a round, term and definition slots are shuffled
// independently and the user pairs them with two selection cursors; a correct
// pairing retires the pair and raises the shared item's score once, a wrong
// pairing lowers both involved items' scores and flags the two slots until
// the caller resolves them.
type MatchingDrill struct {
	rounds [][]*domain.Item
	params *Params
	rng    *rand.Rand

	round     int
	terms     []Slot
	defs      []Slot
	selTerm   int // index into terms, -1 when no cursor
	selDef    int // index into defs, -1 when no cursor
	remaining int
	finished  bool

	items map[uuid.UUID]*domain.Item
}

// NewMatchingDrill creates a drill over the given working set, chunked into
// rounds of params.RoundSize. Returns ErrEmptyCategory if the working set is
// empty.
func NewMatchingDrill(items []*domain.Item, params *Params, rng *rand.Rand) (*MatchingDrill, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCategory
	}
	if params == nil {
		params = NewDefaultParams()
	}

	byID := make(map[uuid.UUID]*domain.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	var rounds [][]*domain.Item
	for start := 0; start < len(items); start += params.RoundSize {
		end := min(start+params.RoundSize, len(items))
		rounds = append(rounds, items[start:end])
	}

	d := &MatchingDrill{
		rounds: rounds,
		params: params,
		rng:    rng,
		items:  byID,
	}
	d.setupRound(0)

	return d, nil
}

// setupRound builds the board for the given round: one term slot and one
// definition slot per item, each column shuffled with its own permutation so
// position never reveals the pairing.
func (d *MatchingDrill) setupRound(round int) {
	d.round = round
	items := d.rounds[round]

	d.terms = make([]Slot, len(items))
	for i, idx := range d.rng.Perm(len(items)) {
		d.terms[i] = Slot{Index: i, ItemID: items[idx].ID, Label: items[idx].Term, State: SlotNeutral}
	}

	d.defs = make([]Slot, len(items))
	for i, idx := range d.rng.Perm(len(items)) {
		d.defs[i] = Slot{Index: i, ItemID: items[idx].ID, Label: items[idx].Definition, State: SlotNeutral}
	}

	d.selTerm = -1
	d.selDef = -1
	d.remaining = len(items)
}

// Round returns the zero-based current round number.
func (d *MatchingDrill) Round() int { return d.round }

// Rounds returns the total number of rounds in the drill.
func (d *MatchingDrill) Rounds() int { return len(d.rounds) }

// RemainingPairs returns the number of unmatched pairs left in the round.
func (d *MatchingDrill) RemainingPairs() int { return d.remaining }

// RoundComplete reports whether every pair in the current round was matched.
func (d *MatchingDrill) RoundComplete() bool { return d.remaining == 0 }

// Finished reports whether the drill has terminated.
func (d *MatchingDrill) Finished() bool { return d.finished }

// TermSlots returns a copy of the current round's term column.
func (d *MatchingDrill) TermSlots() []Slot {
	out := make([]Slot, len(d.terms))
	copy(out, d.terms)
	return out
}

// DefinitionSlots returns a copy of the current round's definition column.
func (d *MatchingDrill) DefinitionSlots() []Slot {
	out := make([]Slot, len(d.defs))
	copy(out, d.defs)
	return out
}

// Pick handles a click on the board. Selecting a slot moves its side's cursor
// (displacing any previous selection on that side); clicking a selected slot
// toggles it off without a match check. Once both cursors are set the pairing
// is checked: item IDs equal retires both slots and applies one correct mark
// to the shared item; unequal flags both slots and applies an incorrect mark
// to both items involved.
func (d *MatchingDrill) Pick(side Side, slotIndex int) (*PickResult, error) {
	if d.finished {
		return nil, ErrDrillFinished
	}

	var column []Slot
	switch side {
	case SideTerm:
		column = d.terms
	case SideDefinition:
		column = d.defs
	default:
		return nil, ErrInvalidSide
	}

	if slotIndex < 0 || slotIndex >= len(column) {
		return nil, ErrInvalidSlot
	}

	slot := &column[slotIndex]
	switch slot.State {
	case SlotMatched:
		return nil, ErrSlotRetired
	case SlotFlagged:
		return nil, ErrSlotLocked
	}

	// Toggle-off: clicking the selected slot clears its cursor, no match check.
	if slot.State == SlotSelected {
		slot.State = SlotNeutral
		if side == SideTerm {
			d.selTerm = -1
		} else {
			d.selDef = -1
		}
		return &PickResult{Outcome: PickDeselected}, nil
	}

	// Displace any previous selection on this side.
	if side == SideTerm {
		if d.selTerm >= 0 {
			d.terms[d.selTerm].State = SlotNeutral
		}
		slot.State = SlotSelected
		d.selTerm = slotIndex
	} else {
		if d.selDef >= 0 {
			d.defs[d.selDef].State = SlotNeutral
		}
		slot.State = SlotSelected
		d.selDef = slotIndex
	}

	if d.selTerm < 0 || d.selDef < 0 {
		return &PickResult{Outcome: PickSelected}, nil
	}

	return d.checkMatch(), nil
}

// checkMatch resolves the pairing held by the two cursors.
func (d *MatchingDrill) checkMatch() *PickResult {
	term := &d.terms[d.selTerm]
	def := &d.defs[d.selDef]
	d.selTerm = -1
	d.selDef = -1

	if term.ItemID == def.ItemID {
		term.State = SlotMatched
		def.State = SlotMatched

		// Both slots represent the same item: one correct mark, not two.
		ApplyCorrect(d.items[term.ItemID], d.params.MaxScore)
		d.remaining--

		return &PickResult{
			Outcome:       PickMatched,
			Term:          copySlot(term),
			Definition:    copySlot(def),
			RoundComplete: d.remaining == 0,
		}
	}

	term.State = SlotFlagged
	def.State = SlotFlagged

	// A wrong guess costs both candidates.
	ApplyIncorrect(d.items[term.ItemID])
	ApplyIncorrect(d.items[def.ItemID])

	return &PickResult{
		Outcome:    PickMismatched,
		Term:       copySlot(term),
		Definition: copySlot(def),
	}
}

// ResolveMismatch returns every flagged slot to the neutral state. Callers
// invoke it after the transient mismatch highlight has been shown; picks on
// flagged slots fail with ErrSlotLocked until then.
func (d *MatchingDrill) ResolveMismatch() {
	for i := range d.terms {
		if d.terms[i].State == SlotFlagged {
			d.terms[i].State = SlotNeutral
		}
	}
	for i := range d.defs {
		if d.defs[i].State == SlotFlagged {
			d.defs[i].State = SlotNeutral
		}
	}
}

// AdvanceRound moves to the next round, or terminates the drill if the
// completed round was the last. Rounds advance only by explicit caller
// action, never automatically.
func (d *MatchingDrill) AdvanceRound() error {
	if d.finished {
		return ErrDrillFinished
	}
	if d.remaining > 0 {
		return ErrRoundNotComplete
	}

	if d.round == len(d.rounds)-1 {
		d.finished = true
		return nil
	}

	d.setupRound(d.round + 1)
	return nil
}

func copySlot(s *Slot) *Slot {
	c := *s
	return &c
}
