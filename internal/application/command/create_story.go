package command

import (
	"context"
	"fmt"

	"github.com/lingua-hub/lingua-backend/internal/application/auth"
	"github.com/lingua-hub/lingua-backend/internal/domain/activity"
	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/internal/domain/story"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// STORY COMMANDS
// Creating a story derives a unique slug from the title. Reading a story
// updates the library entry's last-read timestamp and feeds stories_read into
// the ledger on the first read of the day.
// ══════════════════════════════════════════════════════════════════════════════

// CreateStoryCommand contains the new story.
type CreateStoryCommand struct {
	AuthorID   user.ID
	Title      string
	Content    string
	Language   string
	Difficulty story.Difficulty
	Tags       []string
}

// CreateStoryHandler handles CreateStoryCommand.
type CreateStoryHandler struct {
	users   user.Repository
	stories story.Repository
	ids     auth.IDGenerator
	ledger  *Ledger
}

// NewCreateStoryHandler creates a new CreateStoryHandler.
func NewCreateStoryHandler(users user.Repository, stories story.Repository, ids auth.IDGenerator, ledger *Ledger) *CreateStoryHandler {
	return &CreateStoryHandler{users: users, stories: stories, ids: ids, ledger: ledger}
}

// Handle creates the story with a slug unique across all stories.
func (h *CreateStoryHandler) Handle(ctx context.Context, cmd CreateStoryCommand) (*story.Story, error) {
	if _, err := h.users.GetByID(ctx, cmd.AuthorID); err != nil {
		return nil, err
	}

	slug, err := h.uniqueSlug(ctx, story.Slugify(cmd.Title))
	if err != nil {
		return nil, err
	}

	s, err := story.NewStory(story.NewStoryParams{
		ID:         story.ID(h.ids.NewID()),
		AuthorID:   cmd.AuthorID,
		Title:      cmd.Title,
		Content:    cmd.Content,
		Language:   cmd.Language,
		Difficulty: cmd.Difficulty,
		Tags:       cmd.Tags,
		Slug:       slug,
		CreatedAt:  h.ledger.clk.Now(),
	})
	if err != nil {
		return nil, shared.NewDomainError("story", "Create", shared.ErrInvalidInput, err.Error())
	}

	if err := h.stories.Create(ctx, s); err != nil {
		return nil, err
	}

	return s, nil
}

// uniqueSlug appends a numeric suffix until the slug is free ("tale",
// "tale-2", "tale-3", ...).
func (h *CreateStoryHandler) uniqueSlug(ctx context.Context, base string) (string, error) {
	if base == "" {
		base = "story"
	}

	slug := base
	for i := 2; ; i++ {
		exists, err := h.stories.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// SaveStoryCommand links a story into the user's library.
type SaveStoryCommand struct {
	UserID  user.ID
	StoryID story.ID
}

// SaveStoryHandler handles SaveStoryCommand.
type SaveStoryHandler struct {
	stories story.Repository
	ledger  *Ledger
}

// NewSaveStoryHandler creates a new SaveStoryHandler.
func NewSaveStoryHandler(stories story.Repository, ledger *Ledger) *SaveStoryHandler {
	return &SaveStoryHandler{stories: stories, ledger: ledger}
}

// Handle saves the story into the user's library. Saving twice is a no-op.
func (h *SaveStoryHandler) Handle(ctx context.Context, cmd SaveStoryCommand) (*story.UserStory, error) {
	if _, err := h.stories.GetByID(ctx, cmd.StoryID); err != nil {
		return nil, err
	}

	us, err := story.NewUserStory(cmd.UserID, cmd.StoryID, h.ledger.clk.Now())
	if err != nil {
		return nil, shared.NewDomainError("story", "Save", shared.ErrInvalidInput, err.Error())
	}

	if err := h.stories.SaveToLibrary(ctx, us); err != nil {
		return nil, err
	}

	return us, nil
}

// ReadStoryCommand records that the user read a story from their library.
type ReadStoryCommand struct {
	UserID  user.ID
	StoryID story.ID

	// TimeSpent is optional reading time in minutes.
	TimeSpent int
}

// ReadStoryResult contains the updated library entry.
type ReadStoryResult struct {
	Entry *story.UserStory

	// CountedTowardLedger is true when this was the first read of the day
	// and stories_read was incremented.
	CountedTowardLedger bool
}

// ReadStoryHandler handles ReadStoryCommand.
type ReadStoryHandler struct {
	users   user.Repository
	stories story.Repository
	ledger  *Ledger
}

// NewReadStoryHandler creates a new ReadStoryHandler.
func NewReadStoryHandler(users user.Repository, stories story.Repository, ledger *Ledger) *ReadStoryHandler {
	return &ReadStoryHandler{users: users, stories: stories, ledger: ledger}
}

// Handle updates the last-read timestamp and the daily ledger.
func (h *ReadStoryHandler) Handle(ctx context.Context, cmd ReadStoryCommand) (*ReadStoryResult, error) {
	u, err := h.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	entry, err := h.stories.GetLibraryEntry(ctx, u.ID, cmd.StoryID)
	if err != nil {
		return nil, err
	}

	firstOfDay := entry.MarkRead(h.ledger.clk.Now())
	if err := h.stories.UpdateLastRead(ctx, entry); err != nil {
		return nil, err
	}

	delta := activity.Delta{TimeSpent: cmd.TimeSpent}
	if firstOfDay {
		delta.StoriesRead = 1
	}
	if !delta.IsZero() {
		if _, err := h.ledger.record(ctx, u, delta); err != nil {
			return nil, err
		}
	}

	return &ReadStoryResult{Entry: entry, CountedTowardLedger: firstOfDay}, nil
}
