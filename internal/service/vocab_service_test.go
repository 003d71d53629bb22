package service_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/vocabvault/internal/domain"
	"github.com/phrazzld/vocabvault/internal/platform/jsonfile"
	"github.com/phrazzld/vocabvault/internal/service"
)

var testCategories = []string{"all words", "all phrases", "all sentences"}

// newTestVocabService wires a vocab service over a jsonfile store in a fresh
// temp directory.
func newTestVocabService(t *testing.T) (*service.VocabService, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vocab.json")
	st := jsonfile.New(path, testCategories, slog.Default())

	svc, err := service.NewVocabService(context.Background(), st, testCategories, 10, slog.Default())
	require.NoError(t, err)

	return svc, path
}

func TestVocabServiceCategories(t *testing.T) {
	t.Parallel()

	svc, _ := newTestVocabService(t)

	assert.Equal(t, testCategories, svc.Categories())

	// Mutating the returned slice must not affect the service.
	cats := svc.Categories()
	cats[0] = "mutated"
	assert.Equal(t, testCategories, svc.Categories())
}

func TestVocabServiceAddItem(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, path := newTestVocabService(t)

	item, err := svc.AddItem(ctx, "all words", "собака", "dog")
	require.NoError(t, err)
	assert.Equal(t, "собака", item.Term)
	assert.Equal(t, 0, item.Score)

	items, err := svc.Items("all words")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)

	// The add must have been persisted: a second service over the same file
	// sees the item.
	st := jsonfile.New(path, testCategories, slog.Default())
	svc2, err := service.NewVocabService(ctx, st, testCategories, 10, slog.Default())
	require.NoError(t, err)

	items2, err := svc2.Items("all words")
	require.NoError(t, err)
	require.Len(t, items2, 1)
	assert.Equal(t, item.ID, items2[0].ID)
}

func TestVocabServiceAddItemValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _ := newTestVocabService(t)

	testCases := []struct {
		name       string
		category   string
		term       string
		definition string
		wantErr    error
	}{
		{
			name:       "unknown category",
			category:   "idioms",
			term:       "кот",
			definition: "cat",
			wantErr:    domain.ErrUnknownCategory,
		},
		{
			name:       "empty term",
			category:   "all words",
			term:       "   ",
			definition: "cat",
			wantErr:    domain.ErrValidation,
		},
		{
			name:       "empty definition",
			category:   "all words",
			term:       "кот",
			definition: "",
			wantErr:    domain.ErrValidation,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			item, err := svc.AddItem(ctx, tc.category, tc.term, tc.definition)

			assert.Nil(t, item)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestVocabServiceDeleteItem(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _ := newTestVocabService(t)

	first, err := svc.AddItem(ctx, "all words", "кот", "cat")
	require.NoError(t, err)
	second, err := svc.AddItem(ctx, "all words", "дом", "house")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, "all words", 0))

	items, err := svc.Items("all words")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, second.ID, items[0].ID)
	assert.NotEqual(t, first.ID, items[0].ID)
}

func TestVocabServiceDeleteItemErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _ := newTestVocabService(t)

	_, err := svc.AddItem(ctx, "all words", "кот", "cat")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteItem(ctx, "idioms", 0), domain.ErrUnknownCategory)
	assert.ErrorIs(t, svc.DeleteItem(ctx, "all words", 1), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, svc.DeleteItem(ctx, "all words", -1), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, svc.DeleteItem(ctx, "all phrases", 0), domain.ErrIndexOutOfRange)
}

func TestVocabServiceScores(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _ := newTestVocabService(t)

	a, err := svc.AddItem(ctx, "all words", "кот", "cat")
	require.NoError(t, err)
	b, err := svc.AddItem(ctx, "all words", "дом", "house")
	require.NoError(t, err)
	c, err := svc.AddItem(ctx, "all phrases", "как дела", "how are you")
	require.NoError(t, err)

	a.Score = 4
	b.Score = -2
	c.Score = 7

	total, err := svc.TotalScore("all words")
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	total, err = svc.TotalScore("")
	require.NoError(t, err)
	assert.Equal(t, 9, total)

	maxScore, err := svc.MaxPossibleScore("all words")
	require.NoError(t, err)
	assert.Equal(t, 20, maxScore)

	maxScore, err = svc.MaxPossibleScore("")
	require.NoError(t, err)
	assert.Equal(t, 30, maxScore)

	_, err = svc.TotalScore("idioms")
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestVocabServiceSummary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _ := newTestVocabService(t)

	item, err := svc.AddItem(ctx, "all phrases", "как дела", "how are you")
	require.NoError(t, err)
	item.Score = 3

	summary := svc.Summary()
	require.Len(t, summary, 3)

	assert.Equal(t, service.CategorySummary{
		Category: "all words", Items: 0, Score: 0, MaxScore: 0,
	}, summary[0])
	assert.Equal(t, service.CategorySummary{
		Category: "all phrases", Items: 1, Score: 3, MaxScore: 10,
	}, summary[1])
	assert.Equal(t, "all sentences", summary[2].Category)
}

func TestVocabServiceImportExport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	source, _ := newTestVocabService(t)
	_, err := source.AddItem(ctx, "all words", "кот", "cat")
	require.NoError(t, err)
	_, err = source.AddItem(ctx, "all sentences", "я дома", "I am home")
	require.NoError(t, err)

	target, path := newTestVocabService(t)
	require.NoError(t, target.Import(ctx, source.Export()))

	items, err := target.Items("all words")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// Import persists immediately.
	st := jsonfile.New(path, testCategories, slog.Default())
	reloaded, err := service.NewVocabService(ctx, st, testCategories, 10, slog.Default())
	require.NoError(t, err)

	items, err = reloaded.Items("all sentences")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "я дома", items[0].Term)
}
