// Package activity contains the daily activity ledger: one aggregate record
// per (user, calendar date) with that day's practice counters and the goal
// completion flag. This is a pure domain layer with zero external dependencies.
package activity

import (
	"errors"
	"time"

	"github.com/lingua-hub/lingua-backend/internal/domain/user"
)

// Domain errors for the activity package.
var (
	ErrInvalidUserID     = errors.New("activity: invalid user ID")
	ErrNegativeIncrement = errors.New("activity: increments must be non-negative")
	ErrEmptyDelta        = errors.New("activity: delta has no increments")
)

// DailyActivity is the ledger record for a single (user, date) pair.
// At most one record exists per user per calendar day; the uniqueness
// constraint in the store is the sole concurrency-safety mechanism for
// record creation.
type DailyActivity struct {
	UserID user.ID
	Date   time.Time // calendar date, midnight

	// Activity counters
	WordsAdded     int
	WordsPracticed int
	WordsMastered  int
	StoriesRead    int

	// TimeSpent is minutes of practice.
	TimeSpent int

	// DailyGoalCompleted flips false→true once words practiced reaches the
	// user's daily goal, and never flips back within the day.
	DailyGoalCompleted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDailyActivity creates a zero-initialized record for the given day.
func NewDailyActivity(userID user.ID, date time.Time, now time.Time) (*DailyActivity, error) {
	if !userID.IsValid() {
		return nil, ErrInvalidUserID
	}
	return &DailyActivity{
		UserID:    userID,
		Date:      startOfDay(date),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Delta holds non-negative increments to apply to a day's counters.
type Delta struct {
	WordsAdded     int
	WordsPracticed int
	WordsMastered  int
	StoriesRead    int
	TimeSpent      int
}

// Validate rejects negative increments before any write happens.
func (d Delta) Validate() error {
	if d.WordsAdded < 0 || d.WordsPracticed < 0 || d.WordsMastered < 0 ||
		d.StoriesRead < 0 || d.TimeSpent < 0 {
		return ErrNegativeIncrement
	}
	return nil
}

// IsZero reports whether the delta carries no increments at all.
func (d Delta) IsZero() bool {
	return d == Delta{}
}

// Apply adds the delta to the record's counters.
// The caller validates the delta first; Apply assumes non-negative values.
func (a *DailyActivity) Apply(d Delta, now time.Time) {
	a.WordsAdded += d.WordsAdded
	a.WordsPracticed += d.WordsPracticed
	a.WordsMastered += d.WordsMastered
	a.StoriesRead += d.StoriesRead
	a.TimeSpent += d.TimeSpent
	a.UpdatedAt = now
}

// EvaluateGoal re-checks goal completion against the user's daily goal.
// Returns (satisfied, changed): satisfied is true when the goal is now or was
// already met; changed is true only on the false→true transition, which is the
// only case the caller needs to persist. The flag never transitions true→false.
func (a *DailyActivity) EvaluateGoal(dailyGoal int, now time.Time) (satisfied, changed bool) {
	if a.DailyGoalCompleted {
		return true, false
	}
	if dailyGoal > 0 && a.WordsPracticed >= dailyGoal {
		a.DailyGoalCompleted = true
		a.UpdatedAt = now
		return true, true
	}
	return false, false
}

// IsFor reports whether this record belongs to the given calendar day.
func (a *DailyActivity) IsFor(day time.Time) bool {
	return sameDay(a.Date, day)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
