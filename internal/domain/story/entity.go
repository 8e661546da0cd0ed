// Package story contains reading material: stories authored in the target
// language, plus each user's personal library with read tracking.
package story

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/lingua-hub/lingua-backend/internal/domain/user"
)

// Difficulty is the reading level of a story.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// IsValid checks if the difficulty is one of the known levels.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	default:
		return false
	}
}

// Domain errors for the story package.
var (
	ErrInvalidStoryID  = errors.New("story: invalid story ID")
	ErrInvalidAuthorID = errors.New("story: invalid author ID")
	ErrEmptyTitle      = errors.New("story: title cannot be empty")
	ErrEmptyContent    = errors.New("story: content cannot be empty")
	ErrEmptyLanguage   = errors.New("story: language cannot be empty")
	ErrBadDifficulty   = errors.New("story: invalid difficulty level")
)

// ID represents a unique identifier for a story.
type ID string

// IsValid checks if the story ID is valid.
func (id ID) IsValid() bool { return id != "" }

// String returns the string representation of the ID.
func (id ID) String() string { return string(id) }

// Story is a piece of reading material. The slug is unique across all
// stories and derived from the title.
type Story struct {
	ID       ID
	AuthorID user.ID

	Title      string
	Content    string
	Language   string
	Difficulty Difficulty
	Tags       []string
	Slug       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewStoryParams holds the parameters for creating a story.
type NewStoryParams struct {
	ID         ID
	AuthorID   user.ID
	Title      string
	Content    string
	Language   string
	Difficulty Difficulty
	Tags       []string
	Slug       string
	CreatedAt  time.Time
}

// NewStory creates a new story. Difficulty defaults to intermediate; the slug
// defaults to a slugified title (uniqueness is resolved by the caller against
// the store).
func NewStory(p NewStoryParams) (*Story, error) {
	if !p.ID.IsValid() {
		return nil, ErrInvalidStoryID
	}
	if !p.AuthorID.IsValid() {
		return nil, ErrInvalidAuthorID
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(p.Content) == "" {
		return nil, ErrEmptyContent
	}
	if strings.TrimSpace(p.Language) == "" {
		return nil, ErrEmptyLanguage
	}
	if p.Difficulty == "" {
		p.Difficulty = DifficultyIntermediate
	}
	if !p.Difficulty.IsValid() {
		return nil, ErrBadDifficulty
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}

	return &Story{
		ID:         p.ID,
		AuthorID:   p.AuthorID,
		Title:      p.Title,
		Content:    p.Content,
		Language:   p.Language,
		Difficulty: p.Difficulty,
		Tags:       p.Tags,
		Slug:       p.Slug,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.CreatedAt,
	}, nil
}

// UserStory links a story into a user's library and tracks when it was last
// read. At most one link exists per (user, story).
type UserStory struct {
	UserID   user.ID
	StoryID  ID
	SavedAt  time.Time
	LastRead *time.Time // nil until the user first reads the story
}

// NewUserStory saves a story into a user's library.
func NewUserStory(userID user.ID, storyID ID, now time.Time) (*UserStory, error) {
	if userID == "" {
		return nil, ErrInvalidAuthorID
	}
	if !storyID.IsValid() {
		return nil, ErrInvalidStoryID
	}
	return &UserStory{UserID: userID, StoryID: storyID, SavedAt: now}, nil
}

// MarkRead records that the user read the story now.
// Returns true when this is the first read of the calendar day, which is the
// signal the ledger counts as a new "story read".
func (us *UserStory) MarkRead(now time.Time) (firstOfDay bool) {
	firstOfDay = us.LastRead == nil || !sameDay(*us.LastRead, now)
	t := now
	us.LastRead = &t
	return firstOfDay
}

// Slugify converts a title into a URL-safe slug: lowercase, alphanumeric
// words joined by hyphens. Collisions are resolved by the caller with a
// numeric suffix ("my-story-2").
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func sameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
