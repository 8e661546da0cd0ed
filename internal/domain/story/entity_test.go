package story

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"El Principito", "el-principito"},
		{"  A Day in Paris!  ", "a-day-in-paris"},
		{"Crime & Punishment, Pt. 2", "crime-punishment-pt-2"},
		{"---", ""},
		{"Café de la Gare", "café-de-la-gare"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Slugify(c.title), "title %q", c.title)
	}
}

func TestNewStory_Defaults(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	s, err := NewStory(NewStoryParams{
		ID:        "s1",
		AuthorID:  "u1",
		Title:     "El Principito",
		Content:   "Había una vez...",
		Language:  "Spanish",
		CreatedAt: now,
	})
	require.NoError(t, err)

	assert.Equal(t, DifficultyIntermediate, s.Difficulty)
	assert.Equal(t, "el-principito", s.Slug)
}

func TestNewStory_RejectsUnknownDifficulty(t *testing.T) {
	_, err := NewStory(NewStoryParams{
		ID:         "s1",
		AuthorID:   "u1",
		Title:      "T",
		Content:    "C",
		Language:   "French",
		Difficulty: "expert",
	})
	assert.ErrorIs(t, err, ErrBadDifficulty)
}

func TestUserStory_MarkRead(t *testing.T) {
	morning := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	us, err := NewUserStory("u1", "s1", morning)
	require.NoError(t, err)
	require.Nil(t, us.LastRead)

	// First read of the day counts toward the ledger.
	assert.True(t, us.MarkRead(morning))

	// Re-reading the same day does not.
	evening := morning.Add(10 * time.Hour)
	assert.False(t, us.MarkRead(evening))
	assert.Equal(t, evening, *us.LastRead)

	// A new day counts again.
	nextDay := morning.AddDate(0, 0, 1)
	assert.True(t, us.MarkRead(nextDay))
}
