package query

import (
	"context"

	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/internal/domain/story"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// STORY QUERIES
// Stories are public content addressed by slug; the library listing joins in
// the per-user read state.
// ══════════════════════════════════════════════════════════════════════════════

// GetStoryQuery requests one story by slug (preferred) or ID.
type GetStoryQuery struct {
	Slug string
	ID   story.ID
}

// GetStoryHandler handles GetStoryQuery.
type GetStoryHandler struct {
	stories story.Repository
}

// NewGetStoryHandler creates a new GetStoryHandler.
func NewGetStoryHandler(stories story.Repository) *GetStoryHandler {
	return &GetStoryHandler{stories: stories}
}

// Handle fetches the story by slug when given, otherwise by ID.
func (h *GetStoryHandler) Handle(ctx context.Context, q GetStoryQuery) (*story.Story, error) {
	if q.Slug != "" {
		return h.stories.GetBySlug(ctx, q.Slug)
	}
	if q.ID != "" {
		return h.stories.GetByID(ctx, q.ID)
	}
	return nil, shared.NewDomainError("story", "Get", shared.ErrInvalidInput, "slug or id is required")
}

// ListStoriesQuery requests a page of the story catalog.
type ListStoriesQuery struct {
	// Language filters by story language (empty = all).
	Language string

	// Difficulty filters by level (empty = all).
	Difficulty story.Difficulty

	// Limit caps the page size (default 20, max 100). Offset skips rows.
	Limit  int
	Offset int
}

// normalize applies the paging defaults.
func (q *ListStoriesQuery) normalize() {
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}

// ListStoriesHandler handles ListStoriesQuery.
type ListStoriesHandler struct {
	stories story.Repository
}

// NewListStoriesHandler creates a new ListStoriesHandler.
func NewListStoriesHandler(stories story.Repository) *ListStoriesHandler {
	return &ListStoriesHandler{stories: stories}
}

// Handle lists published stories, newest first.
func (h *ListStoriesHandler) Handle(ctx context.Context, q ListStoriesQuery) ([]*story.Story, error) {
	q.normalize()
	return h.stories.List(ctx, story.ListFilter{
		Language:   q.Language,
		Difficulty: q.Difficulty,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
}

// ListLibraryQuery requests the user's saved stories.
type ListLibraryQuery struct {
	UserID user.ID
}

// LibraryEntry pairs a saved story with its per-user read state.
type LibraryEntry struct {
	Story *story.Story
	Saved *story.UserStory
}

// ListLibraryHandler handles ListLibraryQuery.
type ListLibraryHandler struct {
	users   user.Repository
	stories story.Repository
}

// NewListLibraryHandler creates a new ListLibraryHandler.
func NewListLibraryHandler(users user.Repository, stories story.Repository) *ListLibraryHandler {
	return &ListLibraryHandler{users: users, stories: stories}
}

// Handle lists the library entries with their stories. Entries whose story
// has been deleted are skipped rather than failing the whole listing.
func (h *ListLibraryHandler) Handle(ctx context.Context, q ListLibraryQuery) ([]*LibraryEntry, error) {
	if _, err := h.users.GetByID(ctx, q.UserID); err != nil {
		return nil, err
	}

	saved, err := h.stories.ListLibrary(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	entries := make([]*LibraryEntry, 0, len(saved))
	for _, us := range saved {
		s, err := h.stories.GetByID(ctx, us.StoryID)
		if err != nil {
			if shared.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		entries = append(entries, &LibraryEntry{Story: s, Saved: us})
	}

	return entries, nil
}
