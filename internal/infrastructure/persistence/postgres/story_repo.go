package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/internal/domain/story"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// STORY REPOSITORY IMPLEMENTATION
// Stories are public content with a unique slug; user_stories holds the
// per-user library entries and read state.
// ══════════════════════════════════════════════════════════════════════════════

// StoryRepository implements story.Repository for PostgreSQL.
type StoryRepository struct {
	conn *Connection
}

// NewStoryRepository creates a new StoryRepository.
func NewStoryRepository(conn *Connection) *StoryRepository {
	return &StoryRepository{conn: conn}
}

const storyColumns = `id, author_id, title, slug, content, language,
	difficulty, tags, created_at, updated_at`

// Create inserts a new story.
func (r *StoryRepository) Create(ctx context.Context, s *story.Story) error {
	query := `
		INSERT INTO stories (` + storyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.conn.Exec(ctx, query,
		s.ID.String(),
		s.AuthorID.String(),
		s.Title,
		s.Slug,
		s.Content,
		s.Language,
		string(s.Difficulty),
		s.Tags,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrSlugTaken
		}
		return fmt.Errorf("failed to create story: %w", err)
	}

	return nil
}

// GetByID returns a story by ID.
func (r *StoryRepository) GetByID(ctx context.Context, id story.ID) (*story.Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE id = $1`
	return r.scanStory(r.conn.QueryRow(ctx, query, id.String()))
}

// GetBySlug returns a story by slug.
func (r *StoryRepository) GetBySlug(ctx context.Context, slug string) (*story.Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE slug = $1`
	return r.scanStory(r.conn.QueryRow(ctx, query, slug))
}

// SlugExists reports whether a story with the slug exists.
func (r *StoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM stories WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

// List returns stories matching the filter, newest first.
func (r *StoryRepository) List(ctx context.Context, f story.ListFilter) ([]*story.Story, error) {
	var (
		sb   strings.Builder
		args []interface{}
	)

	sb.WriteString(`SELECT ` + storyColumns + ` FROM stories WHERE TRUE`)

	if f.Language != "" {
		args = append(args, f.Language)
		sb.WriteString(" AND language = $" + strconv.Itoa(len(args)))
	}
	if f.Difficulty != "" {
		args = append(args, string(f.Difficulty))
		sb.WriteString(" AND difficulty = $" + strconv.Itoa(len(args)))
	}

	sb.WriteString(" ORDER BY created_at DESC")

	if f.Limit > 0 {
		args = append(args, f.Limit)
		sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}

	rows, err := r.conn.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stories: %w", err)
	}
	defer rows.Close()

	var stories []*story.Story
	for rows.Next() {
		s, err := r.scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, s)
	}

	return stories, rows.Err()
}

// SaveToLibrary links the story into the user's library. Saving an
// already-saved story is a no-op.
func (r *StoryRepository) SaveToLibrary(ctx context.Context, us *story.UserStory) error {
	query := `
		INSERT INTO user_stories (user_id, story_id, saved_at, last_read)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, story_id) DO NOTHING
	`

	_, err := r.conn.Exec(ctx, query,
		us.UserID.String(),
		us.StoryID.String(),
		us.SavedAt,
		us.LastRead,
	)
	if err != nil {
		return fmt.Errorf("failed to save story to library: %w", err)
	}

	return nil
}

// GetLibraryEntry returns the user's library entry for the story.
func (r *StoryRepository) GetLibraryEntry(ctx context.Context, userID user.ID, storyID story.ID) (*story.UserStory, error) {
	query := `
		SELECT user_id, story_id, saved_at, last_read
		FROM user_stories
		WHERE user_id = $1 AND story_id = $2
	`

	row := r.conn.QueryRow(ctx, query, userID.String(), storyID.String())
	return r.scanUserStory(row)
}

// UpdateLastRead persists the read timestamp.
func (r *StoryRepository) UpdateLastRead(ctx context.Context, us *story.UserStory) error {
	query := `
		UPDATE user_stories
		SET last_read = $3
		WHERE user_id = $1 AND story_id = $2
	`

	tag, err := r.conn.Exec(ctx, query,
		us.UserID.String(),
		us.StoryID.String(),
		us.LastRead,
	)
	if err != nil {
		return fmt.Errorf("failed to update last read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrStoryNotInLibrary
	}

	return nil
}

// ListLibrary returns the user's library entries, most recently saved first.
func (r *StoryRepository) ListLibrary(ctx context.Context, userID user.ID) ([]*story.UserStory, error) {
	query := `
		SELECT user_id, story_id, saved_at, last_read
		FROM user_stories
		WHERE user_id = $1
		ORDER BY saved_at DESC
	`

	rows, err := r.conn.Query(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query library: %w", err)
	}
	defer rows.Close()

	var entries []*story.UserStory
	for rows.Next() {
		us, err := r.scanUserStory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, us)
	}

	return entries, rows.Err()
}

// scanStory scans a single story from a row.
func (r *StoryRepository) scanStory(row pgx.Row) (*story.Story, error) {
	var (
		s          story.Story
		id         string
		authorID   string
		difficulty string
	)

	err := row.Scan(
		&id,
		&authorID,
		&s.Title,
		&s.Slug,
		&s.Content,
		&s.Language,
		&difficulty,
		&s.Tags,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to scan story: %w", err)
	}

	s.ID = story.ID(id)
	s.AuthorID = user.ID(authorID)
	s.Difficulty = story.Difficulty(difficulty)

	return &s, nil
}

// scanUserStory scans a single library entry from a row.
func (r *StoryRepository) scanUserStory(row pgx.Row) (*story.UserStory, error) {
	var (
		us       story.UserStory
		userID   string
		storyID  string
		lastRead *time.Time
	)

	err := row.Scan(&userID, &storyID, &us.SavedAt, &lastRead)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrStoryNotInLibrary
		}
		return nil, fmt.Errorf("failed to scan library entry: %w", err)
	}

	us.UserID = user.ID(userID)
	us.StoryID = story.ID(storyID)
	us.LastRead = lastRead

	return &us, nil
}
