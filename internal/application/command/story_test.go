package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/internal/domain/story"
	"github.com/lingua-hub/lingua-backend/pkg/clock"
)

func TestCreateStoryHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("slugifies the title", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		f.seedUser("u1", 5)
		h := NewCreateStoryHandler(f.users, f.stories, f.ids, f.ledger)

		s, err := h.Handle(ctx, CreateStoryCommand{
			AuthorID: "u1",
			Title:    "The Old Lighthouse",
			Content:  "Once upon a time...",
			Language: "en",
		})
		require.NoError(t, err)
		assert.Equal(t, "the-old-lighthouse", s.Slug)
		assert.Equal(t, story.DifficultyIntermediate, s.Difficulty)
	})

	t.Run("duplicate titles get numeric suffixes", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		f.seedUser("u1", 5)
		h := NewCreateStoryHandler(f.users, f.stories, f.ids, f.ledger)

		cmd := CreateStoryCommand{AuthorID: "u1", Title: "Winter Tale", Content: "...", Language: "en"}

		s1, err := h.Handle(ctx, cmd)
		require.NoError(t, err)
		s2, err := h.Handle(ctx, cmd)
		require.NoError(t, err)
		s3, err := h.Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, "winter-tale", s1.Slug)
		assert.Equal(t, "winter-tale-2", s2.Slug)
		assert.Equal(t, "winter-tale-3", s3.Slug)
	})

	t.Run("unknown author", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		h := NewCreateStoryHandler(f.users, f.stories, f.ids, f.ledger)

		_, err := h.Handle(ctx, CreateStoryCommand{AuthorID: "ghost", Title: "x", Content: "y", Language: "en"})
		assert.ErrorIs(t, err, shared.ErrUserNotFound)
	})
}

func TestSaveAndReadStory(t *testing.T) {
	ctx := context.Background()

	setup := func(f *fixture) story.ID {
		f.seedUser("u1", 5)
		create := NewCreateStoryHandler(f.users, f.stories, f.ids, f.ledger)
		s, err := create.Handle(ctx, CreateStoryCommand{AuthorID: "u1", Title: "Winter Tale", Content: "...", Language: "en"})
		require.NoError(t, err)
		return s.ID
	}

	t.Run("saving twice is a no-op", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		id := setup(f)
		h := NewSaveStoryHandler(f.stories, f.ledger)

		_, err := h.Handle(ctx, SaveStoryCommand{UserID: "u1", StoryID: id})
		require.NoError(t, err)
		_, err = h.Handle(ctx, SaveStoryCommand{UserID: "u1", StoryID: id})
		require.NoError(t, err)

		entries, err := f.stories.ListLibrary(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("reading requires the story in the library", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		id := setup(f)
		h := NewReadStoryHandler(f.users, f.stories, f.ledger)

		_, err := h.Handle(ctx, ReadStoryCommand{UserID: "u1", StoryID: id})
		assert.ErrorIs(t, err, shared.ErrStoryNotInLibrary)
	})

	t.Run("only the first read of the day counts stories_read", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		id := setup(f)
		save := NewSaveStoryHandler(f.stories, f.ledger)
		read := NewReadStoryHandler(f.users, f.stories, f.ledger)

		_, err := save.Handle(ctx, SaveStoryCommand{UserID: "u1", StoryID: id})
		require.NoError(t, err)

		res, err := read.Handle(ctx, ReadStoryCommand{UserID: "u1", StoryID: id, TimeSpent: 7})
		require.NoError(t, err)
		assert.True(t, res.CountedTowardLedger)
		require.NotNil(t, res.Entry.LastRead)

		res, err = read.Handle(ctx, ReadStoryCommand{UserID: "u1", StoryID: id, TimeSpent: 4})
		require.NoError(t, err)
		assert.False(t, res.CountedTowardLedger)

		rec, err := f.activities.Get(ctx, "u1", f.clk.Today())
		require.NoError(t, err)
		assert.Equal(t, 1, rec.StoriesRead)
		assert.Equal(t, 11, rec.TimeSpent)

		// A new day counts again.
		f.clk.AdvanceDays(1)
		res, err = read.Handle(ctx, ReadStoryCommand{UserID: "u1", StoryID: id})
		require.NoError(t, err)
		assert.True(t, res.CountedTowardLedger)
	})
}
