package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingua-hub/lingua-backend/internal/domain/activity"
	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/internal/domain/word"
	"github.com/lingua-hub/lingua-backend/pkg/clock"
)

func intPtr(v int) *int { return &v }

func TestAddWordHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("creates word and counts words_added", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		f.seedUser("u1", 5)
		h := NewAddWordHandler(f.users, f.words, f.ids, f.ledger)

		res, err := h.Handle(ctx, AddWordCommand{
			UserID:   "u1",
			Word:     "kitap",
			Meaning:  "book",
			Language: "kk",
		})
		require.NoError(t, err)
		assert.Equal(t, word.MinConfidence, res.Word.Confidence)
		assert.False(t, res.Word.Learned)

		rec, err := f.activities.Get(ctx, "u1", f.clk.Today())
		require.NoError(t, err)
		assert.Equal(t, 1, rec.WordsAdded)
	})

	t.Run("duplicate word for same user and language", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		f.seedUser("u1", 5)
		h := NewAddWordHandler(f.users, f.words, f.ids, f.ledger)

		cmd := AddWordCommand{UserID: "u1", Word: "kitap", Meaning: "book", Language: "kk"}
		_, err := h.Handle(ctx, cmd)
		require.NoError(t, err)
		_, err = h.Handle(ctx, cmd)
		assert.ErrorIs(t, err, shared.ErrWordAlreadyExists)
	})
}

func TestPracticeWordHandler(t *testing.T) {
	ctx := context.Background()

	addWord := func(f *fixture) word.ID {
		h := NewAddWordHandler(f.users, f.words, f.ids, f.ledger)
		res, err := h.Handle(ctx, AddWordCommand{UserID: "u1", Word: "kitap", Meaning: "book", Language: "kk"})
		require.NoError(t, err)
		return res.Word.ID
	}

	t.Run("practice without confidence bumps the counter only", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		f.seedUser("u1", 5)
		id := addWord(f)
		h := NewPracticeWordHandler(f.users, f.words, f.ledger)

		res, err := h.Handle(ctx, PracticeWordCommand{UserID: "u1", WordID: id, TimeSpent: 3})
		require.NoError(t, err)
		assert.False(t, res.BecameLearned)
		assert.Equal(t, 1, res.Word.TimesPracticed)
		assert.Equal(t, word.MinConfidence, res.Word.Confidence)

		rec, err := f.activities.Get(ctx, "u1", f.clk.Today())
		require.NoError(t, err)
		assert.Equal(t, 1, rec.WordsPracticed)
		assert.Equal(t, 3, rec.TimeSpent)
	})

	t.Run("confidence 5 masters the word once", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		f.seedUser("u1", 5)
		id := addWord(f)
		h := NewPracticeWordHandler(f.users, f.words, f.ledger)

		res, err := h.Handle(ctx, PracticeWordCommand{UserID: "u1", WordID: id, Confidence: intPtr(5)})
		require.NoError(t, err)
		assert.True(t, res.BecameLearned)
		assert.True(t, res.Word.Learned)

		// Practicing an already-mastered word is not a new mastery.
		res, err = h.Handle(ctx, PracticeWordCommand{UserID: "u1", WordID: id, Confidence: intPtr(5)})
		require.NoError(t, err)
		assert.False(t, res.BecameLearned)

		rec, err := f.activities.Get(ctx, "u1", f.clk.Today())
		require.NoError(t, err)
		assert.Equal(t, 1, rec.WordsMastered)
		assert.Equal(t, 2, rec.WordsPracticed)
	})

	t.Run("out-of-range confidence is clamped", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		f.seedUser("u1", 5)
		id := addWord(f)
		h := NewPracticeWordHandler(f.users, f.words, f.ledger)

		res, err := h.Handle(ctx, PracticeWordCommand{UserID: "u1", WordID: id, Confidence: intPtr(9)})
		require.NoError(t, err)
		assert.Equal(t, word.MaxConfidence, res.Word.Confidence)

		res, err = h.Handle(ctx, PracticeWordCommand{UserID: "u1", WordID: id, Confidence: intPtr(0)})
		require.NoError(t, err)
		assert.Equal(t, word.MinConfidence, res.Word.Confidence)
	})

	t.Run("fifth practice completes the default goal", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		f.seedUser("u1", 5)
		id := addWord(f)
		h := NewPracticeWordHandler(f.users, f.words, f.ledger)

		for i := 0; i < 4; i++ {
			res, err := h.Handle(ctx, PracticeWordCommand{UserID: "u1", WordID: id})
			require.NoError(t, err)
			assert.False(t, res.GoalCompleted)
		}

		res, err := h.Handle(ctx, PracticeWordCommand{UserID: "u1", WordID: id})
		require.NoError(t, err)
		assert.True(t, res.GoalCompleted)
	})

	t.Run("word of another user is not visible", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		f.seedUser("u1", 5)
		f.seedUser("u2", 5)
		id := addWord(f)
		h := NewPracticeWordHandler(f.users, f.words, f.ledger)

		_, err := h.Handle(ctx, PracticeWordCommand{UserID: "u2", WordID: id})
		assert.ErrorIs(t, err, shared.ErrWordNotFound)
	})
}

func TestMarkWordLearnedHandler(t *testing.T) {
	ctx := context.Background()

	f := newFixture(clock.Date(2025, 3, 10))
	f.seedUser("u1", 5)
	add := NewAddWordHandler(f.users, f.words, f.ids, f.ledger)
	res, err := add.Handle(ctx, AddWordCommand{UserID: "u1", Word: "kitap", Meaning: "book", Language: "kk"})
	require.NoError(t, err)
	id := res.Word.ID

	h := NewMarkWordLearnedHandler(f.users, f.words, f.ledger)

	w, err := h.Handle(ctx, MarkWordLearnedCommand{UserID: "u1", WordID: id, Learned: true})
	require.NoError(t, err)
	assert.True(t, w.Learned)
	assert.Equal(t, word.MaxConfidence, w.Confidence)

	// Unlearning drops back to medium confidence and never decrements counters.
	w, err = h.Handle(ctx, MarkWordLearnedCommand{UserID: "u1", WordID: id, Learned: false})
	require.NoError(t, err)
	assert.False(t, w.Learned)
	assert.Equal(t, word.ResetConfidence, w.Confidence)

	rec, err := f.activities.Get(ctx, "u1", f.clk.Today())
	require.NoError(t, err)
	assert.Equal(t, 1, rec.WordsMastered)
	assert.Equal(t, 2, rec.WordsPracticed)
}

func TestRecordActivityHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("zero date means today", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		f.seedUser("u1", 5)
		h := NewRecordActivityHandler(f.users, f.ledger)

		res, err := h.Handle(ctx, RecordActivityCommand{
			UserID: "u1",
			Delta:  activity.Delta{WordsPracticed: 5, TimeSpent: 20},
		})
		require.NoError(t, err)
		assert.Equal(t, 5, res.Record.WordsPracticed)
		assert.True(t, res.GoalCompleted)
	})

	t.Run("past date is rejected", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		f.seedUser("u1", 5)
		h := NewRecordActivityHandler(f.users, f.ledger)

		_, err := h.Handle(ctx, RecordActivityCommand{
			UserID: "u1",
			Date:   clock.Date(2025, 3, 9),
			Delta:  activity.Delta{WordsPracticed: 1},
		})
		assert.ErrorIs(t, err, shared.ErrRecordNotEditable)
	})
}
