package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
	"github.com/lingua-hub/lingua-backend/internal/domain/word"
)

// ══════════════════════════════════════════════════════════════════════════════
// WORD REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// WordRepository implements word.Repository for PostgreSQL.
type WordRepository struct {
	conn *Connection
}

// NewWordRepository creates a new WordRepository.
func NewWordRepository(conn *Connection) *WordRepository {
	return &WordRepository{conn: conn}
}

const wordColumns = `id, user_id, word, meaning, context, language,
	confidence, learned, times_practiced, date_added, last_practiced`

// Create inserts a new word.
func (r *WordRepository) Create(ctx context.Context, w *word.Word) error {
	query := `
		INSERT INTO words (` + wordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.conn.Exec(ctx, query,
		w.ID.String(),
		w.UserID.String(),
		w.Word,
		w.Meaning,
		w.Context,
		w.Language,
		w.Confidence,
		w.Learned,
		w.TimesPracticed,
		w.DateAdded,
		w.LastPracticed,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrWordAlreadyExists
		}
		return fmt.Errorf("failed to create word: %w", err)
	}

	return nil
}

// GetByID returns the user's word by ID. Another user's word reads as not
// found.
func (r *WordRepository) GetByID(ctx context.Context, userID user.ID, id word.ID) (*word.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words WHERE id = $1 AND user_id = $2`

	row := r.conn.QueryRow(ctx, query, id.String(), userID.String())
	return r.scanWord(row)
}

// Update persists the word's learning progress.
func (r *WordRepository) Update(ctx context.Context, w *word.Word) error {
	query := `
		UPDATE words
		SET meaning = $3, context = $4, confidence = $5, learned = $6,
			times_practiced = $7, last_practiced = $8
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.conn.Exec(ctx, query,
		w.ID.String(),
		w.UserID.String(),
		w.Meaning,
		w.Context,
		w.Confidence,
		w.Learned,
		w.TimesPracticed,
		w.LastPracticed,
	)
	if err != nil {
		return fmt.Errorf("failed to update word: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrWordNotFound
	}

	return nil
}

// Delete removes the user's word.
func (r *WordRepository) Delete(ctx context.Context, userID user.ID, id word.ID) error {
	tag, err := r.conn.Exec(ctx,
		`DELETE FROM words WHERE id = $1 AND user_id = $2`,
		id.String(), userID.String())
	if err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrWordNotFound
	}

	return nil
}

// List returns the user's words, newest first.
func (r *WordRepository) List(ctx context.Context, userID user.ID, f word.ListFilter) ([]*word.Word, error) {
	var (
		sb   strings.Builder
		args []interface{}
	)

	sb.WriteString(`SELECT ` + wordColumns + ` FROM words WHERE user_id = $1`)
	args = append(args, userID.String())

	if f.Language != "" {
		args = append(args, f.Language)
		sb.WriteString(" AND language = $" + strconv.Itoa(len(args)))
	}
	if f.LearnedOnly {
		sb.WriteString(" AND learned")
	}

	sb.WriteString(" ORDER BY date_added DESC")

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
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var words []*word.Word
	for rows.Next() {
		w, err := r.scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

// scanWord scans a single word from a row.
func (r *WordRepository) scanWord(row pgx.Row) (*word.Word, error) {
	var (
		w      word.Word
		id     string
		userID string
	)

	err := row.Scan(
		&id,
		&userID,
		&w.Word,
		&w.Meaning,
		&w.Context,
		&w.Language,
		&w.Confidence,
		&w.Learned,
		&w.TimesPracticed,
		&w.DateAdded,
		&w.LastPracticed,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrWordNotFound
		}
		return nil, fmt.Errorf("failed to scan word: %w", err)
	}

	w.ID = word.ID(id)
	w.UserID = user.ID(userID)

	return &w, nil
}
