package practice

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/vocabvault/internal/domain"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func newScoredItems(t *testing.T, scores ...int) []*domain.Item {
	t.Helper()
	items := make([]*domain.Item, len(scores))
	for i, score := range scores {
		item := newTestItem(t, fmt.Sprintf("term-%d", i), fmt.Sprintf("def-%d", i))
		item.Score = score
		items[i] = item
	}
	return items
}

func TestSelectWorkingSetValidation(t *testing.T) {
	t.Parallel()

	items := newScoredItems(t, 0, 1, 2)

	testCases := []struct {
		name    string
		items   []*domain.Item
		mode    Mode
		count   int
		wantErr error
	}{
		{
			name:    "zero count",
			items:   items,
			mode:    ModeRandom,
			count:   0,
			wantErr: ErrInvalidCount,
		},
		{
			name:    "negative count",
			items:   items,
			mode:    ModeWeak,
			count:   -5,
			wantErr: ErrInvalidCount,
		},
		{
			name:    "empty category",
			items:   nil,
			mode:    ModeRandom,
			count:   10,
			wantErr: ErrEmptyCategory,
		},
		{
			name:    "unknown mode",
			items:   items,
			mode:    Mode("hardest"),
			count:   2,
			wantErr: ErrInvalidMode,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			selected, err := SelectWorkingSet(tc.items, tc.mode, tc.count, newTestRand())

			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, selected)
		})
	}
}

func TestSelectWorkingSetRandomSamplesWithoutReplacement(t *testing.T) {
	t.Parallel()

	items := newScoredItems(t, 0, 0, 0, 0, 0, 0, 0, 0)

	selected, err := SelectWorkingSet(items, ModeRandom, 5, newTestRand())
	require.NoError(t, err)
	require.Len(t, selected, 5)

	seen := make(map[uuid.UUID]bool)
	for _, item := range selected {
		assert.False(t, seen[item.ID], "item %s selected twice", item.ID)
		seen[item.ID] = true
	}
}

func TestSelectWorkingSetCapsAtCategorySize(t *testing.T) {
	t.Parallel()

	items := newScoredItems(t, 3, 1, 2)

	for _, mode := range []Mode{ModeRandom, ModeWeak} {
		selected, err := SelectWorkingSet(items, mode, 100, newTestRand())
		require.NoError(t, err)
		assert.Len(t, selected, len(items), "mode %s", mode)
	}
}

func TestSelectWorkingSetWeakPicksLowestScores(t *testing.T) {
	t.Parallel()

	// Scores: items at positions 1, 3 and 5 are the three weakest.
	items := newScoredItems(t, 7, -2, 9, 0, 8, 1)

	selected, err := SelectWorkingSet(items, ModeWeak, 3, newTestRand())
	require.NoError(t, err)
	require.Len(t, selected, 3)

	want := map[uuid.UUID]bool{
		items[1].ID: true,
		items[3].ID: true,
		items[5].ID: true,
	}
	for _, item := range selected {
		assert.True(t, want[item.ID], "unexpected item with score %d", item.Score)
	}
}

func TestSelectWorkingSetWeakBreaksTiesByInsertionOrder(t *testing.T) {
	t.Parallel()

	// All scores equal: the first k items by insertion order must be chosen,
	// whatever order they are presented in.
	items := newScoredItems(t, 5, 5, 5, 5, 5, 5)

	selected, err := SelectWorkingSet(items, ModeWeak, 3, newTestRand())
	require.NoError(t, err)
	require.Len(t, selected, 3)

	want := map[uuid.UUID]bool{
		items[0].ID: true,
		items[1].ID: true,
		items[2].ID: true,
	}
	for _, item := range selected {
		assert.True(t, want[item.ID])
	}
}

func TestSelectWorkingSetReturnsLiveReferences(t *testing.T) {
	t.Parallel()

	items := newScoredItems(t, 0, 0)

	selected, err := SelectWorkingSet(items, ModeRandom, 2, newTestRand())
	require.NoError(t, err)

	// Mutating a selected item must be visible through the source slice.
	ApplyIncorrect(selected[0])

	total := items[0].Score + items[1].Score
	assert.Equal(t, -1, total)
}
