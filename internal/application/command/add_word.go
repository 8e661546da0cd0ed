package command

import (
	"context"

	"github.com/lingua-hub/lingua-backend/internal/application/auth"
	"github.com/lingua-hub/lingua-backend/internal/domain/activity"
	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
	"github.com/lingua-hub/lingua-backend/internal/domain/word"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD WORD COMMAND
// Creates a vocabulary entry and feeds words_added into today's ledger.
// ══════════════════════════════════════════════════════════════════════════════

// AddWordCommand contains the new vocabulary entry.
type AddWordCommand struct {
	UserID   user.ID
	Word     string
	Meaning  string
	Context  string
	Language string
}

// AddWordResult contains the created word.
type AddWordResult struct {
	Word *word.Word
}

// AddWordHandler handles AddWordCommand.
type AddWordHandler struct {
	users  user.Repository
	words  word.Repository
	ids    auth.IDGenerator
	ledger *Ledger
}

// NewAddWordHandler creates a new AddWordHandler.
func NewAddWordHandler(users user.Repository, words word.Repository, ids auth.IDGenerator, ledger *Ledger) *AddWordHandler {
	return &AddWordHandler{users: users, words: words, ids: ids, ledger: ledger}
}

// Handle creates the word and records the addition in the daily ledger.
func (h *AddWordHandler) Handle(ctx context.Context, cmd AddWordCommand) (*AddWordResult, error) {
	u, err := h.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	w, err := word.NewWord(word.NewWordParams{
		ID:       word.ID(h.ids.NewID()),
		UserID:   u.ID,
		Word:     cmd.Word,
		Meaning:  cmd.Meaning,
		Context:  cmd.Context,
		Language: cmd.Language,
		AddedAt:  h.ledger.clk.Now(),
	})
	if err != nil {
		return nil, shared.NewDomainError("word", "Add", shared.ErrInvalidInput, err.Error())
	}

	if err := h.words.Create(ctx, w); err != nil {
		return nil, err
	}

	if _, err := h.ledger.record(ctx, u, activity.Delta{WordsAdded: 1}); err != nil {
		return nil, err
	}

	return &AddWordResult{Word: w}, nil
}
