package command

import (
	"context"
	"time"

	"github.com/lingua-hub/lingua-backend/internal/domain/activity"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD ACTIVITY COMMAND
// Explicit client-initiated activity recording: applies counter increments to
// today's ledger row and re-evaluates goal completion.
// ══════════════════════════════════════════════════════════════════════════════

// RecordActivityCommand contains the increments to record.
type RecordActivityCommand struct {
	// UserID is the internal ID of the user.
	UserID user.ID

	// Date the increments belong to. Zero means today. Any non-today date is
	// rejected with shared.ErrRecordNotEditable.
	Date time.Time

	// Delta holds the non-negative counter increments.
	Delta activity.Delta
}

// RecordActivityResult contains the updated ledger state.
type RecordActivityResult struct {
	// Record is the updated daily activity row.
	Record *activity.DailyActivity

	// GoalCompleted reports whether the daily goal is satisfied after this
	// recording.
	GoalCompleted bool
}

// RecordActivityHandler handles RecordActivityCommand.
type RecordActivityHandler struct {
	users  user.Repository
	ledger *Ledger
}

// NewRecordActivityHandler creates a new RecordActivityHandler.
func NewRecordActivityHandler(users user.Repository, ledger *Ledger) *RecordActivityHandler {
	return &RecordActivityHandler{users: users, ledger: ledger}
}

// Handle records the activity increments on today's ledger row.
func (h *RecordActivityHandler) Handle(ctx context.Context, cmd RecordActivityCommand) (*RecordActivityResult, error) {
	u, err := h.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	date := cmd.Date
	if date.IsZero() {
		date = h.ledger.clk.Today()
	}

	rec, err := h.ledger.Record(ctx, u.ID, date, cmd.Delta)
	if err != nil {
		return nil, err
	}

	satisfied, err := h.ledger.EvaluateGoal(ctx, rec, u)
	if err != nil {
		return nil, err
	}

	return &RecordActivityResult{Record: rec, GoalCompleted: satisfied}, nil
}
