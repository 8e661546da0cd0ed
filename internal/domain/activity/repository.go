package activity

import (
	"context"
	"time"

	"github.com/lingua-hub/lingua-backend/internal/domain/user"
)

// Repository defines the interface for daily activity persistence.
// Implemented by the infrastructure layer.
type Repository interface {
	// Get returns the record for (userID, date), or shared.ErrActivityNotFound.
	Get(ctx context.Context, userID user.ID, date time.Time) (*DailyActivity, error)

	// Create inserts a zero-initialized record. When another request created
	// the same (userID, date) row first, the unique constraint fires and
	// Create returns shared.ErrConcurrentCreateConflict; the caller recovers
	// by fetching the existing row instead of surfacing the error.
	Create(ctx context.Context, rec *DailyActivity) error

	// AddCounters applies the delta to the stored row as a single atomic
	// update (counter = counter + $n), so concurrent non-conflicting
	// increments are never lost. Returns the updated record.
	AddCounters(ctx context.Context, userID user.ID, date time.Time, d Delta) (*DailyActivity, error)

	// MarkGoalCompleted sets daily_goal_completed = true for the row.
	// The write is idempotent; it never unsets the flag.
	MarkGoalCompleted(ctx context.Context, userID user.ID, date time.Time) error

	// History returns records for the user between from and to inclusive,
	// most recent first. Used for progress views; never mutates.
	History(ctx context.Context, userID user.ID, from, to time.Time) ([]*DailyActivity, error)
}
