package story

import (
	"context"

	"github.com/lingua-hub/lingua-backend/internal/domain/user"
)

// ListFilter narrows List results.
type ListFilter struct {
	Language   string
	Difficulty Difficulty
	Limit      int
	Offset     int
}

// Repository defines the interface for story persistence.
type Repository interface {
	// Create persists a new story. Returns shared.ErrSlugTaken when the slug
	// unique constraint fires.
	Create(ctx context.Context, s *Story) error

	// GetByID returns a story by ID.
	GetByID(ctx context.Context, id ID) (*Story, error)

	// GetBySlug returns a story by its slug.
	GetBySlug(ctx context.Context, slug string) (*Story, error)

	// SlugExists reports whether a slug is already in use.
	SlugExists(ctx context.Context, slug string) (bool, error)

	// List returns stories matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]*Story, error)

	// Library operations

	// SaveToLibrary links a story into a user's library. Saving a story that
	// is already in the library is a no-op.
	SaveToLibrary(ctx context.Context, us *UserStory) error

	// GetLibraryEntry returns the library link for (user, story), or
	// shared.ErrStoryNotInLibrary.
	GetLibraryEntry(ctx context.Context, userID user.ID, storyID ID) (*UserStory, error)

	// UpdateLastRead persists the last-read timestamp of a library entry.
	UpdateLastRead(ctx context.Context, us *UserStory) error

	// ListLibrary returns the user's saved stories, most recently read first.
	ListLibrary(ctx context.Context, userID user.ID) ([]*UserStory, error)
}
