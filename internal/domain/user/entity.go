// Package user contains the user aggregate and the streak engine.
// This is a pure domain layer with zero external dependencies.
package user

import (
	"errors"
	"strings"
	"time"
)

// Domain errors for the user package.
var (
	ErrInvalidUserID    = errors.New("user: invalid user ID")
	ErrEmptyUsername    = errors.New("user: username cannot be empty")
	ErrEmptyEmail       = errors.New("user: email cannot be empty")
	ErrEmptyPassword    = errors.New("user: password hash cannot be empty")
	ErrInvalidDailyGoal = errors.New("user: daily goal must be positive")
)

// DefaultDailyGoal is the default number of words to practice per day.
const DefaultDailyGoal = 5

// ID represents a unique identifier for a user.
type ID string

// IsValid checks if the user ID is valid.
func (id ID) IsValid() bool {
	return id != ""
}

// String returns the string representation of the ID.
func (id ID) String() string {
	return string(id)
}

// User is the aggregate root for a learner account.
// Streak fields live on the user record and are mutated exclusively through
// ApplyStreak with values produced by NextStreak.
type User struct {
	ID           ID
	Username     string
	Email        string
	PasswordHash string

	// Streak bookkeeping
	StreakCount      int
	LastActivityDate *time.Time // nil only before first-ever activity

	// DailyGoal is the target practiced-words count per day.
	DailyGoal int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUserParams holds the parameters for creating a user.
type NewUserParams struct {
	ID           ID
	Username     string
	Email        string
	PasswordHash string
	DailyGoal    int
	CreatedAt    time.Time
}

// NewUser creates a new user. The account starts with a streak of 1 and the
// creation day as the last activity date: signing up counts as activity.
func NewUser(p NewUserParams) (*User, error) {
	if !p.ID.IsValid() {
		return nil, ErrInvalidUserID
	}
	if strings.TrimSpace(p.Username) == "" {
		return nil, ErrEmptyUsername
	}
	if strings.TrimSpace(p.Email) == "" {
		return nil, ErrEmptyEmail
	}
	if p.PasswordHash == "" {
		return nil, ErrEmptyPassword
	}
	if p.DailyGoal == 0 {
		p.DailyGoal = DefaultDailyGoal
	}
	if p.DailyGoal < 0 {
		return nil, ErrInvalidDailyGoal
	}

	created := p.CreatedAt
	firstDay := startOfDay(created)

	return &User{
		ID:               p.ID,
		Username:         p.Username,
		Email:            p.Email,
		PasswordHash:     p.PasswordHash,
		StreakCount:      1,
		LastActivityDate: &firstDay,
		DailyGoal:        p.DailyGoal,
		CreatedAt:        created,
		UpdatedAt:        created,
	}, nil
}

// ActivityState is the subset of the user relevant to streak computation.
type ActivityState struct {
	StreakCount      int
	LastActivityDate *time.Time
	DailyGoal        int
}

// ActivityState returns the user's current streak-relevant state.
func (u *User) ActivityState() ActivityState {
	return ActivityState{
		StreakCount:      u.StreakCount,
		LastActivityDate: u.LastActivityDate,
		DailyGoal:        u.DailyGoal,
	}
}

// ApplyStreak applies a streak update produced by NextStreak.
// It is a no-op when the update reports no change.
func (u *User) ApplyStreak(upd StreakUpdate, now time.Time) {
	if !upd.Changed {
		return
	}
	last := upd.LastActivityDate
	u.StreakCount = upd.StreakCount
	u.LastActivityDate = &last
	u.UpdatedAt = now
}

// SetDailyGoal updates the user's daily practice target.
func (u *User) SetDailyGoal(goal int, now time.Time) error {
	if goal <= 0 {
		return ErrInvalidDailyGoal
	}
	u.DailyGoal = goal
	u.UpdatedAt = now
	return nil
}

// HasActivityOn reports whether the user's last recorded activity is on the
// given day. Used by the explicit update-streak endpoint to short-circuit.
func (u *User) HasActivityOn(day time.Time) bool {
	if u.LastActivityDate == nil {
		return false
	}
	return sameDay(*u.LastActivityDate, day)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
