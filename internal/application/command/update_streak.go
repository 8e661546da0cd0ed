package command

import (
	"context"

	"github.com/lingua-hub/lingua-backend/internal/domain/user"
	"github.com/lingua-hub/lingua-backend/pkg/clock"
	"github.com/lingua-hub/lingua-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE STREAK COMMAND
// Explicit "I was active today" call from the client. Safe to repeat: the
// streak engine is idempotent per day, and the handler short-circuits without
// a write when the user already has activity today.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateStreakCommand identifies the user whose streak to update.
type UpdateStreakCommand struct {
	UserID user.ID
}

// UpdateStreakResult contains the resulting streak state.
type UpdateStreakResult struct {
	// User carries the (possibly updated) streak fields.
	User *user.User

	// AlreadyUpdatedToday is true when the call was a same-day repeat and no
	// write happened.
	AlreadyUpdatedToday bool
}

// UpdateStreakHandler handles UpdateStreakCommand.
type UpdateStreakHandler struct {
	users user.Repository
	clk   clock.Clock
	log   *logger.Logger
}

// NewUpdateStreakHandler creates a new UpdateStreakHandler.
func NewUpdateStreakHandler(users user.Repository, clk clock.Clock, log *logger.Logger) *UpdateStreakHandler {
	if log == nil {
		log = logger.Default()
	}
	return &UpdateStreakHandler{users: users, clk: clk, log: log}
}

// Handle advances the user's streak for today unless it already happened.
func (h *UpdateStreakHandler) Handle(ctx context.Context, cmd UpdateStreakCommand) (*UpdateStreakResult, error) {
	u, err := h.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	today := h.clk.Today()

	// Short-circuit: already updated today, skip the engine and the write.
	// Running the engine would be equally safe (same-day calls are no-ops);
	// this just avoids pointless work on the hot path.
	if u.HasActivityOn(today) {
		return &UpdateStreakResult{User: u, AlreadyUpdatedToday: true}, nil
	}

	upd := user.NextStreak(u.ActivityState(), today)
	if !upd.Changed {
		// Same-day repeats were short-circuited above, so no change here
		// means last_activity_date is in the future: the clock moved
		// backward. Leave the stored state untouched.
		h.log.Warn("last activity date is in the future, leaving streak untouched",
			logger.UserID(u.ID.String()),
			logger.Date("last_activity_date", upd.LastActivityDate),
			logger.Date("today", today))
		return &UpdateStreakResult{User: u, AlreadyUpdatedToday: false}, nil
	}

	u.ApplyStreak(upd, h.clk.Now())
	if err := h.users.UpdateStreak(ctx, u); err != nil {
		return nil, err
	}
	h.log.Info("streak updated",
		logger.UserID(u.ID.String()),
		logger.StreakCount(u.StreakCount),
		logger.Date("last_activity_date", upd.LastActivityDate))

	return &UpdateStreakResult{User: u, AlreadyUpdatedToday: false}, nil
}
