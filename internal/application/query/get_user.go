// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"

	"github.com/lingua-hub/lingua-backend/internal/domain/activity"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
	"github.com/lingua-hub/lingua-backend/internal/domain/word"
	"github.com/lingua-hub/lingua-backend/pkg/clock"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET USER QUERY
// Returns the user's profile together with derived streak state: whether the
// streak is at risk (no activity yet today) as of the query's clock.
// ══════════════════════════════════════════════════════════════════════════════

// GetUserQuery identifies the user to fetch.
type GetUserQuery struct {
	UserID user.ID
}

// UserProfile is the read model for a user.
type UserProfile struct {
	User *user.User

	// ActiveToday is true when the user already has streak activity today.
	ActiveToday bool

	// StreakAtRisk is true when the user had activity yesterday but none yet
	// today, so the streak resets unless they act before midnight.
	StreakAtRisk bool
}

// GetUserHandler handles GetUserQuery.
type GetUserHandler struct {
	users user.Repository
	clk   clock.Clock
}

// NewGetUserHandler creates a new GetUserHandler.
func NewGetUserHandler(users user.Repository, clk clock.Clock) *GetUserHandler {
	return &GetUserHandler{users: users, clk: clk}
}

// Handle fetches the profile. Derived fields are computed from the clock, not
// stored; the query never writes.
func (h *GetUserHandler) Handle(ctx context.Context, q GetUserQuery) (*UserProfile, error) {
	u, err := h.users.GetByID(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	today := h.clk.Today()
	activeToday := u.HasActivityOn(today)
	atRisk := false
	if !activeToday && u.LastActivityDate != nil {
		atRisk = clock.DaysBetween(*u.LastActivityDate, today) == 1
	}

	return &UserProfile{
		User:         u,
		ActiveToday:  activeToday,
		StreakAtRisk: atRisk,
	}, nil
}

// GetUserStatsQuery requests aggregate learning statistics for a user.
type GetUserStatsQuery struct {
	UserID user.ID

	// HistoryDays bounds the activity history window (default 30).
	HistoryDays int
}

// UserStats is the read model for the profile statistics screen.
type UserStats struct {
	TotalWords    int
	LearnedWords  int
	StreakCount   int
	DailyGoal     int
	GoalDaysMet   int
	TotalPractice int
	History       []*activity.DailyActivity
}

// GetUserStatsHandler handles GetUserStatsQuery.
type GetUserStatsHandler struct {
	users      user.Repository
	words      word.Repository
	activities activity.Repository
	clk        clock.Clock
}

// NewGetUserStatsHandler creates a new GetUserStatsHandler.
func NewGetUserStatsHandler(users user.Repository, words word.Repository, activities activity.Repository, clk clock.Clock) *GetUserStatsHandler {
	return &GetUserStatsHandler{users: users, words: words, activities: activities, clk: clk}
}

// Handle aggregates word counts and the recent activity history.
func (h *GetUserStatsHandler) Handle(ctx context.Context, q GetUserStatsQuery) (*UserStats, error) {
	u, err := h.users.GetByID(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	days := q.HistoryDays
	if days <= 0 {
		days = 30
	}

	all, err := h.words.List(ctx, u.ID, word.ListFilter{})
	if err != nil {
		return nil, err
	}
	learned := 0
	for _, w := range all {
		if w.Learned {
			learned++
		}
	}

	to := h.clk.Today()
	from := to.AddDate(0, 0, -(days - 1))
	history, err := h.activities.History(ctx, u.ID, from, to)
	if err != nil {
		return nil, err
	}

	stats := &UserStats{
		TotalWords:   len(all),
		LearnedWords: learned,
		StreakCount:  u.StreakCount,
		DailyGoal:    u.DailyGoal,
		History:      history,
	}
	for _, rec := range history {
		if rec.DailyGoalCompleted {
			stats.GoalDaysMet++
		}
		stats.TotalPractice += rec.WordsPracticed
	}

	return stats, nil
}
