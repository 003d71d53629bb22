package practice

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/phrazzld/vocabvault/internal/domain"
)

// Mode determines how the selection engine picks a working set from a category.
type Mode string

const (
	// ModeRandom draws items uniformly at random without replacement.
	ModeRandom Mode = "random"

	// ModeWeak picks the lowest-scored items (ties broken by insertion order)
	// and then shuffles their presentation order, so content is biased toward
	// weak items without letting position give the pairing away.
	ModeWeak Mode = "weak"
)

// Selection errors
var (
	// ErrEmptyCategory is returned when a drill is requested over a category
	// that contains no items. The caller must not launch a drill.
	ErrEmptyCategory = errors.New("no items in category to practice")

	// ErrInvalidCount is returned when the requested working-set size is below one.
	ErrInvalidCount = errors.New("requested count must be at least 1")

	// ErrInvalidMode is returned when the selection mode is not recognized.
	ErrInvalidMode = errors.New("invalid selection mode")
)

// Valid reports whether the mode is one of the recognized selection modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeRandom, ModeWeak:
		return true
	default:
		return false
	}
}

// SelectWorkingSet produces an ordered working set of min(count, len(items))
// items for a drill. The returned slice holds live references into the store's
// collection, not copies: score mutations made by a drill are immediately
// visible to the store, which is how drill results become persisted state.
//
// Returns ErrEmptyCategory if items is empty, ErrInvalidCount if count < 1,
// and ErrInvalidMode for an unrecognized mode.
func SelectWorkingSet(
	items []*domain.Item,
	mode Mode,
	count int,
	rng *rand.Rand,
) ([]*domain.Item, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}
	if len(items) == 0 {
		return nil, ErrEmptyCategory
	}
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}

	n := min(count, len(items))
	selected := make([]*domain.Item, 0, n)

	switch mode {
	case ModeRandom:
		// Uniform sample without replacement; the permutation prefix is
		// already in random presentation order.
		for _, idx := range rng.Perm(len(items))[:n] {
			selected = append(selected, items[idx])
		}

	case ModeWeak:
		// Stable sort keeps insertion order among equal scores, so the
		// choice of which items count as "weakest" is deterministic.
		sorted := make([]*domain.Item, len(items))
		copy(sorted, items)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Score < sorted[j].Score
		})

		selected = append(selected, sorted[:n]...)
		rng.Shuffle(len(selected), func(i, j int) {
			selected[i], selected[j] = selected[j], selected[i]
		})
	}

	return selected, nil
}
