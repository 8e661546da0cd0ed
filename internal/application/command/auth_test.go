package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/pkg/clock"
)

func TestRegisterUserHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with streak 1 and a token", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		h := NewRegisterUserHandler(f.users, f.tokens, f.ids, f.clk, nil)

		res, err := h.Handle(ctx, RegisterUserCommand{
			Username: "aigerim",
			Email:    "aigerim@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, res.Token)
		assert.Equal(t, 1, res.User.StreakCount, "signing up counts as activity")
		require.NotNil(t, res.User.LastActivityDate)
		assert.Equal(t, clock.Date(2025, 3, 10), *res.User.LastActivityDate)
		assert.Equal(t, 5, res.User.DailyGoal, "zero goal falls back to the default")
		assert.NotEqual(t, "secret123", res.User.PasswordHash)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		h := NewRegisterUserHandler(f.users, f.tokens, f.ids, f.clk, nil)

		_, err := h.Handle(ctx, RegisterUserCommand{Username: "", Email: "a@b.c", Password: "x"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, err = h.Handle(ctx, RegisterUserCommand{Username: "a", Email: "a@b.c", Password: ""})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		h := NewRegisterUserHandler(f.users, f.tokens, f.ids, f.clk, nil)

		cmd := RegisterUserCommand{Username: "aigerim", Email: "one@example.com", Password: "x"}
		_, err := h.Handle(ctx, cmd)
		require.NoError(t, err)

		cmd.Email = "two@example.com"
		_, err = h.Handle(ctx, cmd)
		assert.ErrorIs(t, err, shared.ErrUsernameTaken)
	})
}

func TestLoginHandler(t *testing.T) {
	ctx := context.Background()

	register := func(f *fixture) {
		h := NewRegisterUserHandler(f.users, f.tokens, f.ids, f.clk, nil)
		_, err := h.Handle(ctx, RegisterUserCommand{
			Username: "aigerim",
			Email:    "aigerim@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)
	}

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		register(f)
		h := NewLoginHandler(f.users, f.tokens, f.clk, nil)

		_, err := h.Handle(ctx, LoginCommand{Username: "aigerim", Password: "wrong"})
		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

		_, err = h.Handle(ctx, LoginCommand{Username: "nobody", Password: "secret123"})
		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	})

	t.Run("next-day login advances the streak", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		register(f)
		h := NewLoginHandler(f.users, f.tokens, f.clk, nil)

		f.clk.AdvanceDays(1)
		res, err := h.Handle(ctx, LoginCommand{Username: "aigerim", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, 2, res.User.StreakCount)
		require.NotNil(t, res.User.LastActivityDate)
		assert.Equal(t, clock.Date(2025, 3, 11), *res.User.LastActivityDate)
	})

	t.Run("same-day login is idempotent", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		register(f)
		h := NewLoginHandler(f.users, f.tokens, f.clk, nil)

		f.clk.AdvanceDays(1)
		_, err := h.Handle(ctx, LoginCommand{Username: "aigerim", Password: "secret123"})
		require.NoError(t, err)
		res, err := h.Handle(ctx, LoginCommand{Username: "aigerim", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, 2, res.User.StreakCount, "double login must not double-count")
	})

	t.Run("login after a gap resets the streak to 1", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		register(f)
		h := NewLoginHandler(f.users, f.tokens, f.clk, nil)

		f.clk.AdvanceDays(1)
		_, err := h.Handle(ctx, LoginCommand{Username: "aigerim", Password: "secret123"})
		require.NoError(t, err)

		f.clk.AdvanceDays(3)
		res, err := h.Handle(ctx, LoginCommand{Username: "aigerim", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, 1, res.User.StreakCount)
	})

	t.Run("each login issues a distinct token", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		register(f)
		h := NewLoginHandler(f.users, f.tokens, f.clk, nil)

		res1, err := h.Handle(ctx, LoginCommand{Username: "aigerim", Password: "secret123"})
		require.NoError(t, err)
		res2, err := h.Handle(ctx, LoginCommand{Username: "aigerim", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEqual(t, res1.Token, res2.Token)
	})
}

func TestLogoutHandler(t *testing.T) {
	ctx := context.Background()
	f := newFixture(clock.Date(2025, 3, 10))

	token, err := f.tokens.Issue(ctx, "u1", 0)
	require.NoError(t, err)

	h := NewLogoutHandler(f.tokens)
	require.NoError(t, h.Handle(ctx, LogoutCommand{Token: token}))

	_, err = f.tokens.Resolve(ctx, token)
	assert.Error(t, err, "revoked token must not resolve")
}

func TestUpdateStreakHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("first call of the day advances, repeat short-circuits", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		u := f.seedUser("u1", 5)
		last := clock.Date(2025, 3, 9)
		u.StreakCount = 3
		u.LastActivityDate = &last

		h := NewUpdateStreakHandler(f.users, f.clk, nil)

		res, err := h.Handle(ctx, UpdateStreakCommand{UserID: "u1"})
		require.NoError(t, err)
		assert.False(t, res.AlreadyUpdatedToday)
		assert.Equal(t, 4, res.User.StreakCount)

		res, err = h.Handle(ctx, UpdateStreakCommand{UserID: "u1"})
		require.NoError(t, err)
		assert.True(t, res.AlreadyUpdatedToday)
		assert.Equal(t, 4, res.User.StreakCount)
	})

	t.Run("gap resets to 1, not 0", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		u := f.seedUser("u1", 5)
		last := clock.Date(2025, 3, 1)
		u.StreakCount = 14
		u.LastActivityDate = &last

		h := NewUpdateStreakHandler(f.users, f.clk, nil)
		res, err := h.Handle(ctx, UpdateStreakCommand{UserID: "u1"})
		require.NoError(t, err)
		assert.Equal(t, 1, res.User.StreakCount)
	})

	t.Run("clock moved backward leaves streak untouched", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		u := f.seedUser("u1", 5)
		future := clock.Date(2025, 3, 12)
		u.StreakCount = 3
		u.LastActivityDate = &future

		h := NewUpdateStreakHandler(f.users, f.clk, nil)
		res, err := h.Handle(ctx, UpdateStreakCommand{UserID: "u1"})
		require.NoError(t, err)
		assert.False(t, res.AlreadyUpdatedToday)
		assert.Equal(t, 3, res.User.StreakCount)

		// Nothing was persisted.
		stored, err := f.users.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 3, stored.StreakCount)
		assert.Equal(t, future, *stored.LastActivityDate)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(clock.Date(2025, 3, 10))
		h := NewUpdateStreakHandler(f.users, f.clk, nil)
		_, err := h.Handle(ctx, UpdateStreakCommand{UserID: "ghost"})
		assert.ErrorIs(t, err, shared.ErrUserNotFound)
	})
}
