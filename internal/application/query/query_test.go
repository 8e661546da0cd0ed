package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingua-hub/lingua-backend/internal/domain/activity"
	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
	"github.com/lingua-hub/lingua-backend/pkg/clock"
)

// Minimal read-side fakes. The write-side semantics live with the command
// package; here the stores are plain maps.

type stubUserRepo struct {
	users map[user.ID]*user.User
}

func (r *stubUserRepo) Create(context.Context, *user.User) error { return nil }

func (r *stubUserRepo) GetByID(_ context.Context, id user.ID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) GetByUsername(context.Context, string) (*user.User, error) {
	return nil, shared.ErrUserNotFound
}

func (r *stubUserRepo) GetByEmail(context.Context, string) (*user.User, error) {
	return nil, shared.ErrUserNotFound
}

func (r *stubUserRepo) UpdateStreak(context.Context, *user.User) error    { return nil }
func (r *stubUserRepo) UpdateDailyGoal(context.Context, *user.User) error { return nil }

type stubActivityRepo struct {
	records []*activity.DailyActivity
	gets    int
	creates int
}

func (r *stubActivityRepo) Get(_ context.Context, userID user.ID, date time.Time) (*activity.DailyActivity, error) {
	r.gets++
	for _, rec := range r.records {
		if rec.UserID == userID && clock.SameDay(rec.Date, date) {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, shared.ErrActivityNotFound
}

func (r *stubActivityRepo) Create(_ context.Context, rec *activity.DailyActivity) error {
	r.creates++
	cp := *rec
	r.records = append(r.records, &cp)
	return nil
}

func (r *stubActivityRepo) AddCounters(context.Context, user.ID, time.Time, activity.Delta) (*activity.DailyActivity, error) {
	return nil, shared.ErrActivityNotFound
}

func (r *stubActivityRepo) MarkGoalCompleted(context.Context, user.ID, time.Time) error {
	return nil
}

func (r *stubActivityRepo) History(_ context.Context, userID user.ID, from, to time.Time) ([]*activity.DailyActivity, error) {
	var out []*activity.DailyActivity
	for _, rec := range r.records {
		if rec.UserID == userID && !rec.Date.Before(from) && !rec.Date.After(to) {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func seedUser(id user.ID, streak int, last *time.Time) *user.User {
	return &user.User{
		ID:               id,
		Username:         "u",
		Email:            "u@example.com",
		StreakCount:      streak,
		LastActivityDate: last,
		DailyGoal:        5,
	}
}

func TestGetUserHandler(t *testing.T) {
	ctx := context.Background()
	today := clock.Date(2025, 3, 10)

	t.Run("active today", func(t *testing.T) {
		users := &stubUserRepo{users: map[user.ID]*user.User{
			"u1": seedUser("u1", 3, &today),
		}}
		h := NewGetUserHandler(users, clock.NewFake(today))

		p, err := h.Handle(ctx, GetUserQuery{UserID: "u1"})
		require.NoError(t, err)
		assert.True(t, p.ActiveToday)
		assert.False(t, p.StreakAtRisk)
	})

	t.Run("streak at risk when last activity was yesterday", func(t *testing.T) {
		yesterday := clock.Date(2025, 3, 9)
		users := &stubUserRepo{users: map[user.ID]*user.User{
			"u1": seedUser("u1", 3, &yesterday),
		}}
		h := NewGetUserHandler(users, clock.NewFake(today))

		p, err := h.Handle(ctx, GetUserQuery{UserID: "u1"})
		require.NoError(t, err)
		assert.False(t, p.ActiveToday)
		assert.True(t, p.StreakAtRisk)
	})

	t.Run("streak already broken is not at risk", func(t *testing.T) {
		lastWeek := clock.Date(2025, 3, 3)
		users := &stubUserRepo{users: map[user.ID]*user.User{
			"u1": seedUser("u1", 3, &lastWeek),
		}}
		h := NewGetUserHandler(users, clock.NewFake(today))

		p, err := h.Handle(ctx, GetUserQuery{UserID: "u1"})
		require.NoError(t, err)
		assert.False(t, p.StreakAtRisk)
	})

	t.Run("unknown user", func(t *testing.T) {
		h := NewGetUserHandler(&stubUserRepo{users: map[user.ID]*user.User{}}, clock.NewFake(today))
		_, err := h.Handle(ctx, GetUserQuery{UserID: "ghost"})
		assert.ErrorIs(t, err, shared.ErrUserNotFound)
	})
}

func TestGetDailyActivityHandler(t *testing.T) {
	ctx := context.Background()
	today := clock.Date(2025, 3, 10)

	t.Run("missing day returns a zero view and never creates", func(t *testing.T) {
		users := &stubUserRepo{users: map[user.ID]*user.User{
			"u1": seedUser("u1", 1, &today),
		}}
		acts := &stubActivityRepo{}
		h := NewGetDailyActivityHandler(users, acts, clock.NewFake(today))

		view, err := h.Handle(ctx, GetDailyActivityQuery{UserID: "u1"})
		require.NoError(t, err)
		assert.False(t, view.Exists)
		assert.Zero(t, view.Record.WordsPracticed)
		assert.Equal(t, 5, view.GoalTarget)
		assert.Zero(t, acts.creates, "reads must be side-effect free")
	})

	t.Run("stored day is returned as-is", func(t *testing.T) {
		users := &stubUserRepo{users: map[user.ID]*user.User{
			"u1": seedUser("u1", 1, &today),
		}}
		rec, err := activity.NewDailyActivity("u1", today, today)
		require.NoError(t, err)
		rec.WordsPracticed = 7
		rec.DailyGoalCompleted = true
		acts := &stubActivityRepo{records: []*activity.DailyActivity{rec}}

		h := NewGetDailyActivityHandler(users, acts, clock.NewFake(today))
		view, err := h.Handle(ctx, GetDailyActivityQuery{UserID: "u1"})
		require.NoError(t, err)
		assert.True(t, view.Exists)
		assert.Equal(t, 7, view.Record.WordsPracticed)
		assert.True(t, view.Record.DailyGoalCompleted)
	})
}

func TestGetActivityHistoryHandler(t *testing.T) {
	ctx := context.Background()
	today := clock.Date(2025, 3, 10)

	users := &stubUserRepo{users: map[user.ID]*user.User{
		"u1": seedUser("u1", 1, &today),
	}}

	acts := &stubActivityRepo{}
	for _, day := range []time.Time{
		clock.Date(2025, 3, 8),
		clock.Date(2025, 3, 9),
		clock.Date(2025, 3, 10),
		clock.Date(2025, 1, 1), // outside the default window
	} {
		rec, err := activity.NewDailyActivity("u1", day, day)
		require.NoError(t, err)
		acts.records = append(acts.records, rec)
	}

	h := NewGetActivityHistoryHandler(users, acts, clock.NewFake(today))

	t.Run("defaults to the last 30 days", func(t *testing.T) {
		recs, err := h.Handle(ctx, GetActivityHistoryQuery{UserID: "u1"})
		require.NoError(t, err)
		assert.Len(t, recs, 3)
	})

	t.Run("explicit range", func(t *testing.T) {
		recs, err := h.Handle(ctx, GetActivityHistoryQuery{
			UserID: "u1",
			From:   clock.Date(2025, 3, 9),
			To:     clock.Date(2025, 3, 9),
		})
		require.NoError(t, err)
		assert.Len(t, recs, 1)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		_, err := h.Handle(ctx, GetActivityHistoryQuery{
			UserID: "u1",
			From:   clock.Date(2025, 3, 10),
			To:     clock.Date(2025, 3, 1),
		})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}
