package query

import (
	"context"

	"github.com/lingua-hub/lingua-backend/internal/domain/user"
	"github.com/lingua-hub/lingua-backend/internal/domain/word"
)

// ══════════════════════════════════════════════════════════════════════════════
// WORD QUERIES
// ══════════════════════════════════════════════════════════════════════════════

// ListWordsQuery requests a page of the user's vocabulary.
type ListWordsQuery struct {
	UserID user.ID

	// Language filters by target language (empty = all).
	Language string

	// LearnedOnly restricts the listing to mastered words.
	LearnedOnly bool

	// Limit caps the page size (default 50, max 200). Offset skips rows.
	Limit  int
	Offset int
}

// normalize applies the paging defaults.
func (q *ListWordsQuery) normalize() {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Limit > 200 {
		q.Limit = 200
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}

// ListWordsHandler handles ListWordsQuery.
type ListWordsHandler struct {
	users user.Repository
	words word.Repository
}

// NewListWordsHandler creates a new ListWordsHandler.
func NewListWordsHandler(users user.Repository, words word.Repository) *ListWordsHandler {
	return &ListWordsHandler{users: users, words: words}
}

// Handle lists the user's words, newest first.
func (h *ListWordsHandler) Handle(ctx context.Context, q ListWordsQuery) ([]*word.Word, error) {
	if _, err := h.users.GetByID(ctx, q.UserID); err != nil {
		return nil, err
	}

	q.normalize()
	return h.words.List(ctx, q.UserID, word.ListFilter{
		Language:    q.Language,
		LearnedOnly: q.LearnedOnly,
		Limit:       q.Limit,
		Offset:      q.Offset,
	})
}

// GetWordQuery requests a single vocabulary entry.
type GetWordQuery struct {
	UserID user.ID
	WordID word.ID
}

// GetWordHandler handles GetWordQuery.
type GetWordHandler struct {
	words word.Repository
}

// NewGetWordHandler creates a new GetWordHandler.
func NewGetWordHandler(words word.Repository) *GetWordHandler {
	return &GetWordHandler{words: words}
}

// Handle fetches the word. Words are scoped per user; asking for another
// user's word reads as not found.
func (h *GetWordHandler) Handle(ctx context.Context, q GetWordQuery) (*word.Word, error) {
	return h.words.GetByID(ctx, q.UserID, q.WordID)
}
