package command

import (
	"context"

	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
	"github.com/lingua-hub/lingua-backend/pkg/clock"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE DAILY GOAL COMMAND
// Changing the goal never revokes a completion already earned today; the new
// target applies to the next evaluation.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateDailyGoalCommand sets a new daily words-practiced target.
type UpdateDailyGoalCommand struct {
	UserID    user.ID
	DailyGoal int
}

// UpdateDailyGoalHandler handles UpdateDailyGoalCommand.
type UpdateDailyGoalHandler struct {
	users user.Repository
	clk   clock.Clock
}

// NewUpdateDailyGoalHandler creates a new UpdateDailyGoalHandler.
func NewUpdateDailyGoalHandler(users user.Repository, clk clock.Clock) *UpdateDailyGoalHandler {
	return &UpdateDailyGoalHandler{users: users, clk: clk}
}

// Handle updates the goal. Non-positive goals are rejected.
func (h *UpdateDailyGoalHandler) Handle(ctx context.Context, cmd UpdateDailyGoalCommand) (*user.User, error) {
	u, err := h.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if err := u.SetDailyGoal(cmd.DailyGoal, h.clk.Now()); err != nil {
		return nil, shared.NewDomainError("user", "UpdateDailyGoal", shared.ErrInvalidDailyGoal, err.Error())
	}

	if err := h.users.UpdateDailyGoal(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}
