// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"time"

	"github.com/lingua-hub/lingua-backend/internal/domain/activity"
	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
	"github.com/lingua-hub/lingua-backend/pkg/clock"
	"github.com/lingua-hub/lingua-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// DAILY ACTIVITY LEDGER
// One aggregate record per (user, date). Creation races are resolved through
// the store's uniqueness constraint: losing the race means refetching, never
// an error to the caller. Counter writes are atomic single-row updates.
// ══════════════════════════════════════════════════════════════════════════════

// Ledger manages daily activity records. It is shared by every command that
// produces activity (word practice, story reads, explicit recording).
type Ledger struct {
	activities activity.Repository
	clk        clock.Clock
	log        *logger.Logger
}

// NewLedger creates a new Ledger.
func NewLedger(activities activity.Repository, clk clock.Clock, log *logger.Logger) *Ledger {
	if log == nil {
		log = logger.Default()
	}
	return &Ledger{activities: activities, clk: clk, log: log}
}

// GetOrCreateToday returns today's record for the user, creating a
// zero-initialized one if absent. Safe under concurrent calls: when the
// insert loses a creation race, the existing row is fetched instead.
func (l *Ledger) GetOrCreateToday(ctx context.Context, userID user.ID) (*activity.DailyActivity, error) {
	today := l.clk.Today()

	rec, err := l.activities.Get(ctx, userID, today)
	if err == nil {
		return rec, nil
	}
	if !shared.IsNotFound(err) {
		return nil, err
	}

	rec, err = activity.NewDailyActivity(userID, today, l.clk.Now())
	if err != nil {
		return nil, err
	}

	if err := l.activities.Create(ctx, rec); err != nil {
		if shared.IsConflict(err) {
			// Lost the creation race: another request inserted today's row.
			l.log.Debug("daily activity created concurrently, refetching",
				logger.UserID(userID.String()), logger.Date("date", today))
			return l.activities.Get(ctx, userID, today)
		}
		return nil, err
	}

	return rec, nil
}

// Record applies a delta of non-negative increments to the record for the
// given date. Only today's record is editable; the ledger is append-only
// going forward. Returns the updated record.
func (l *Ledger) Record(ctx context.Context, userID user.ID, date time.Time, d activity.Delta) (*activity.DailyActivity, error) {
	if err := d.Validate(); err != nil {
		return nil, shared.ErrNegativeIncrement
	}

	today := l.clk.Today()
	if !clock.SameDay(date, today) {
		return nil, shared.ErrRecordNotEditable
	}

	// Ensure the row exists before the atomic counter update.
	if _, err := l.GetOrCreateToday(ctx, userID); err != nil {
		return nil, err
	}

	return l.activities.AddCounters(ctx, userID, today, d)
}

// EvaluateGoal re-checks goal completion for the record against the user's
// daily goal, persisting only the false→true transition. Returns whether the
// goal is (now or already) satisfied.
func (l *Ledger) EvaluateGoal(ctx context.Context, rec *activity.DailyActivity, u *user.User) (bool, error) {
	satisfied, changed := rec.EvaluateGoal(u.DailyGoal, l.clk.Now())
	if !changed {
		return satisfied, nil
	}

	if err := l.activities.MarkGoalCompleted(ctx, rec.UserID, rec.Date); err != nil {
		return satisfied, err
	}

	l.log.Info("daily goal completed",
		logger.UserID(u.ID.String()),
		logger.Date("date", rec.Date),
		logger.Int("words_practiced", rec.WordsPracticed),
		logger.Int("daily_goal", u.DailyGoal))

	return satisfied, nil
}

// record is the shared glue used by word/story commands: apply the delta to
// today's ledger row and re-evaluate the goal.
func (l *Ledger) record(ctx context.Context, u *user.User, d activity.Delta) (*activity.DailyActivity, error) {
	rec, err := l.Record(ctx, u.ID, l.clk.Today(), d)
	if err != nil {
		return nil, err
	}
	if _, err := l.EvaluateGoal(ctx, rec, u); err != nil {
		return nil, err
	}
	return rec, nil
}
