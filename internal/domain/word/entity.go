// Package word contains the vocabulary entry aggregate: words or phrases a
// user is learning, with confidence tracking and practice metadata.
package word

import (
	"errors"
	"strings"
	"time"

	"github.com/lingua-hub/lingua-backend/internal/domain/user"
)

// Confidence scale bounds. Confidence 5 means the word is mastered.
const (
	MinConfidence = 1
	MaxConfidence = 5

	// ResetConfidence is the level a word returns to when unmarked as learned.
	ResetConfidence = 3
)

// Domain errors for the word package.
var (
	ErrInvalidWordID = errors.New("word: invalid word ID")
	ErrInvalidUserID = errors.New("word: invalid user ID")
	ErrEmptyWord     = errors.New("word: word text cannot be empty")
	ErrEmptyMeaning  = errors.New("word: meaning cannot be empty")
	ErrEmptyLanguage = errors.New("word: language cannot be empty")
)

// ID represents a unique identifier for a word entry.
type ID string

// IsValid checks if the word ID is valid.
func (id ID) IsValid() bool { return id != "" }

// String returns the string representation of the ID.
func (id ID) String() string { return string(id) }

// Word is a vocabulary entry owned by a user.
// At most one entry exists per (user, word text, language).
type Word struct {
	ID     ID
	UserID user.ID

	Word     string
	Meaning  string
	Context  string // example sentence or usage context
	Language string // e.g. "Spanish", "French"

	// Learning progress
	Confidence int // 1-5 scale
	Learned    bool

	// Metadata
	TimesPracticed int
	DateAdded      time.Time
	LastPracticed  time.Time
}

// NewWordParams holds the parameters for creating a word entry.
type NewWordParams struct {
	ID       ID
	UserID   user.ID
	Word     string
	Meaning  string
	Context  string
	Language string
	AddedAt  time.Time
}

// NewWord creates a new vocabulary entry at minimum confidence.
func NewWord(p NewWordParams) (*Word, error) {
	if !p.ID.IsValid() {
		return nil, ErrInvalidWordID
	}
	if !p.UserID.IsValid() {
		return nil, ErrInvalidUserID
	}
	if strings.TrimSpace(p.Word) == "" {
		return nil, ErrEmptyWord
	}
	if strings.TrimSpace(p.Meaning) == "" {
		return nil, ErrEmptyMeaning
	}
	if strings.TrimSpace(p.Language) == "" {
		return nil, ErrEmptyLanguage
	}

	return &Word{
		ID:            p.ID,
		UserID:        p.UserID,
		Word:          p.Word,
		Meaning:       p.Meaning,
		Context:       p.Context,
		Language:      p.Language,
		Confidence:    MinConfidence,
		DateAdded:     p.AddedAt,
		LastPracticed: p.AddedAt,
	}, nil
}

// Practice records that this word has been practiced.
func (w *Word) Practice(now time.Time) {
	w.TimesPracticed++
	w.LastPracticed = now
}

// UpdateConfidence sets the confidence level, clamped to [1, 5], and counts
// as a practice. Reaching the maximum automatically marks the word learned.
// Returns true when the word became learned by this update.
func (w *Word) UpdateConfidence(level int, now time.Time) (becameLearned bool) {
	if level < MinConfidence {
		level = MinConfidence
	}
	if level > MaxConfidence {
		level = MaxConfidence
	}
	w.Confidence = level

	if level == MaxConfidence && !w.Learned {
		w.Learned = true
		becameLearned = true
	}

	w.Practice(now)
	return becameLearned
}

// MarkLearned marks the word as learned at full confidence.
// Returns true when the word was not already learned.
func (w *Word) MarkLearned(now time.Time) bool {
	already := w.Learned
	w.Learned = true
	w.Confidence = MaxConfidence
	w.Practice(now)
	return !already
}

// UnmarkLearned returns the word to the practice queue at medium confidence.
func (w *Word) UnmarkLearned(now time.Time) {
	w.Learned = false
	w.Confidence = ResetConfidence
	w.Practice(now)
}
