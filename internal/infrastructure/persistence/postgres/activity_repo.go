package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lingua-hub/lingua-backend/internal/domain/activity"
	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
	"github.com/lingua-hub/lingua-backend/pkg/clock"
)

// ══════════════════════════════════════════════════════════════════════════════
// DAILY ACTIVITY REPOSITORY IMPLEMENTATION
// Counter updates are single-statement "SET x = x + $n" writes so concurrent
// requests never lose increments. Creation races surface as unique violations
// and are mapped to shared.ErrConcurrentCreateConflict for the ledger.
// ══════════════════════════════════════════════════════════════════════════════

// ActivityRepository implements activity.Repository for PostgreSQL.
type ActivityRepository struct {
	conn *Connection
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(conn *Connection) *ActivityRepository {
	return &ActivityRepository{conn: conn}
}

// Get returns the record for (user, date).
func (r *ActivityRepository) Get(ctx context.Context, userID user.ID, date time.Time) (*activity.DailyActivity, error) {
	query := `
		SELECT user_id, date, words_added, words_practiced, words_mastered,
			   stories_read, time_spent, daily_goal_completed, created_at, updated_at
		FROM daily_activities
		WHERE user_id = $1 AND date = $2
	`

	row := r.conn.QueryRow(ctx, query, userID.String(), clock.StartOfDay(date))
	return r.scanActivity(row)
}

// Create inserts a new record. A concurrent insert for the same (user, date)
// returns shared.ErrConcurrentCreateConflict.
func (r *ActivityRepository) Create(ctx context.Context, rec *activity.DailyActivity) error {
	query := `
		INSERT INTO daily_activities (
			user_id, date, words_added, words_practiced, words_mastered,
			stories_read, time_spent, daily_goal_completed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.conn.Exec(ctx, query,
		rec.UserID.String(),
		rec.Date,
		rec.WordsAdded,
		rec.WordsPracticed,
		rec.WordsMastered,
		rec.StoriesRead,
		rec.TimeSpent,
		rec.DailyGoalCompleted,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrConcurrentCreateConflict
		}
		return fmt.Errorf("failed to create daily activity: %w", err)
	}

	return nil
}

// AddCounters atomically applies the delta and returns the updated record.
func (r *ActivityRepository) AddCounters(ctx context.Context, userID user.ID, date time.Time, d activity.Delta) (*activity.DailyActivity, error) {
	query := `
		UPDATE daily_activities
		SET words_added     = words_added + $3,
			words_practiced = words_practiced + $4,
			words_mastered  = words_mastered + $5,
			stories_read    = stories_read + $6,
			time_spent      = time_spent + $7,
			updated_at      = NOW()
		WHERE user_id = $1 AND date = $2
		RETURNING user_id, date, words_added, words_practiced, words_mastered,
				  stories_read, time_spent, daily_goal_completed, created_at, updated_at
	`

	row := r.conn.QueryRow(ctx, query,
		userID.String(),
		clock.StartOfDay(date),
		d.WordsAdded,
		d.WordsPracticed,
		d.WordsMastered,
		d.StoriesRead,
		d.TimeSpent,
	)
	return r.scanActivity(row)
}

// MarkGoalCompleted sets the completion flag. Already-completed rows are left
// untouched, so the write is idempotent.
func (r *ActivityRepository) MarkGoalCompleted(ctx context.Context, userID user.ID, date time.Time) error {
	query := `
		UPDATE daily_activities
		SET daily_goal_completed = TRUE, updated_at = NOW()
		WHERE user_id = $1 AND date = $2 AND NOT daily_goal_completed
	`

	if _, err := r.conn.Exec(ctx, query, userID.String(), clock.StartOfDay(date)); err != nil {
		return fmt.Errorf("failed to mark goal completed: %w", err)
	}

	return nil
}

// History returns the records in [from, to], most recent first.
func (r *ActivityRepository) History(ctx context.Context, userID user.ID, from, to time.Time) ([]*activity.DailyActivity, error) {
	query := `
		SELECT user_id, date, words_added, words_practiced, words_mastered,
			   stories_read, time_spent, daily_goal_completed, created_at, updated_at
		FROM daily_activities
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date DESC
	`

	rows, err := r.conn.Query(ctx, query, userID.String(), clock.StartOfDay(from), clock.StartOfDay(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query activity history: %w", err)
	}
	defer rows.Close()

	var records []*activity.DailyActivity
	for rows.Next() {
		rec, err := r.scanActivity(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// scanActivity scans a single record from a row.
func (r *ActivityRepository) scanActivity(row pgx.Row) (*activity.DailyActivity, error) {
	var (
		rec    activity.DailyActivity
		userID string
	)

	err := row.Scan(
		&userID,
		&rec.Date,
		&rec.WordsAdded,
		&rec.WordsPracticed,
		&rec.WordsMastered,
		&rec.StoriesRead,
		&rec.TimeSpent,
		&rec.DailyGoalCompleted,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to scan daily activity: %w", err)
	}

	rec.UserID = user.ID(userID)
	rec.Date = clock.StartOfDay(rec.Date)

	return &rec, nil
}
