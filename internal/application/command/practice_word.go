package command

import (
	"context"

	"github.com/lingua-hub/lingua-backend/internal/domain/activity"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
	"github.com/lingua-hub/lingua-backend/internal/domain/word"
)

// ══════════════════════════════════════════════════════════════════════════════
// PRACTICE WORD COMMANDS
// Practicing a word updates the entry's learning progress and feeds
// words_practiced (and words_mastered on a new mastery) into today's ledger,
// which re-evaluates goal completion.
// ══════════════════════════════════════════════════════════════════════════════

// PracticeWordCommand records one practice of a word.
type PracticeWordCommand struct {
	UserID user.ID
	WordID word.ID

	// Confidence optionally sets a new confidence level (clamped to 1-5;
	// level 5 marks the word learned). Nil leaves the level unchanged.
	Confidence *int

	// TimeSpent is optional practice time in minutes.
	TimeSpent int
}

// PracticeWordResult contains the updated word and goal state.
type PracticeWordResult struct {
	Word *word.Word

	// BecameLearned is true when this practice pushed the word to mastery.
	BecameLearned bool

	// GoalCompleted reports whether the daily goal is satisfied after this
	// practice.
	GoalCompleted bool
}

// PracticeWordHandler handles PracticeWordCommand.
type PracticeWordHandler struct {
	users  user.Repository
	words  word.Repository
	ledger *Ledger
}

// NewPracticeWordHandler creates a new PracticeWordHandler.
func NewPracticeWordHandler(users user.Repository, words word.Repository, ledger *Ledger) *PracticeWordHandler {
	return &PracticeWordHandler{users: users, words: words, ledger: ledger}
}

// Handle records the practice and updates the ledger.
func (h *PracticeWordHandler) Handle(ctx context.Context, cmd PracticeWordCommand) (*PracticeWordResult, error) {
	u, err := h.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	w, err := h.words.GetByID(ctx, u.ID, cmd.WordID)
	if err != nil {
		return nil, err
	}

	now := h.ledger.clk.Now()
	becameLearned := false
	if cmd.Confidence != nil {
		becameLearned = w.UpdateConfidence(*cmd.Confidence, now)
	} else {
		w.Practice(now)
	}

	if err := h.words.Update(ctx, w); err != nil {
		return nil, err
	}

	delta := activity.Delta{WordsPracticed: 1, TimeSpent: cmd.TimeSpent}
	if becameLearned {
		delta.WordsMastered = 1
	}

	rec, err := h.ledger.record(ctx, u, delta)
	if err != nil {
		return nil, err
	}

	return &PracticeWordResult{
		Word:          w,
		BecameLearned: becameLearned,
		GoalCompleted: rec.DailyGoalCompleted,
	}, nil
}

// MarkWordLearnedCommand marks or unmarks a word as learned.
type MarkWordLearnedCommand struct {
	UserID  user.ID
	WordID  word.ID
	Learned bool
}

// MarkWordLearnedHandler handles MarkWordLearnedCommand.
type MarkWordLearnedHandler struct {
	users  user.Repository
	words  word.Repository
	ledger *Ledger
}

// NewMarkWordLearnedHandler creates a new MarkWordLearnedHandler.
func NewMarkWordLearnedHandler(users user.Repository, words word.Repository, ledger *Ledger) *MarkWordLearnedHandler {
	return &MarkWordLearnedHandler{users: users, words: words, ledger: ledger}
}

// Handle toggles the learned state. Marking counts as a practice and a
// mastery; unmarking counts as a practice only (counters never decrease).
func (h *MarkWordLearnedHandler) Handle(ctx context.Context, cmd MarkWordLearnedCommand) (*word.Word, error) {
	u, err := h.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	w, err := h.words.GetByID(ctx, u.ID, cmd.WordID)
	if err != nil {
		return nil, err
	}

	now := h.ledger.clk.Now()
	delta := activity.Delta{WordsPracticed: 1}
	if cmd.Learned {
		if w.MarkLearned(now) {
			delta.WordsMastered = 1
		}
	} else {
		w.UnmarkLearned(now)
	}

	if err := h.words.Update(ctx, w); err != nil {
		return nil, err
	}

	if _, err := h.ledger.record(ctx, u, delta); err != nil {
		return nil, err
	}

	return w, nil
}
