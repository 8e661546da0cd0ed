package word

import (
	"context"

	"github.com/lingua-hub/lingua-backend/internal/domain/user"
)

// ListFilter narrows List results.
type ListFilter struct {
	Language    string
	LearnedOnly bool
	Limit       int
	Offset      int
}

// Repository defines the interface for word persistence.
type Repository interface {
	// Create persists a new word entry. Returns shared.ErrWordAlreadyExists
	// when the (user, word, language) unique constraint fires.
	Create(ctx context.Context, w *Word) error

	// GetByID returns a word by ID scoped to its owner.
	GetByID(ctx context.Context, userID user.ID, id ID) (*Word, error)

	// Update persists learning-progress fields of an existing word.
	Update(ctx context.Context, w *Word) error

	// Delete removes a word entry.
	Delete(ctx context.Context, userID user.ID, id ID) error

	// List returns the user's words, most recently practiced first.
	List(ctx context.Context, userID user.ID, filter ListFilter) ([]*Word, error)
}
