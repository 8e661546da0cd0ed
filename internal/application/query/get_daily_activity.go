package query

import (
	"context"
	"time"

	"github.com/lingua-hub/lingua-backend/internal/domain/activity"
	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
	"github.com/lingua-hub/lingua-backend/pkg/clock"
)

// ══════════════════════════════════════════════════════════════════════════════
// DAILY ACTIVITY QUERIES
// Reads are side-effect free: asking for a day with no record returns a
// zero-valued view instead of creating a row. Rows are only ever created by
// the write path.
// ══════════════════════════════════════════════════════════════════════════════

// GetDailyActivityQuery requests one day's activity record.
type GetDailyActivityQuery struct {
	UserID user.ID

	// Date of the record. Zero means today.
	Date time.Time
}

// DailyActivityView is the read model for one day. GoalTarget carries the
// user's current goal so clients can render progress without a second call.
type DailyActivityView struct {
	Record     *activity.DailyActivity
	GoalTarget int

	// Exists is false when no record was stored for the day; Record then holds
	// a zero-valued placeholder.
	Exists bool
}

// GetDailyActivityHandler handles GetDailyActivityQuery.
type GetDailyActivityHandler struct {
	users      user.Repository
	activities activity.Repository
	clk        clock.Clock
}

// NewGetDailyActivityHandler creates a new GetDailyActivityHandler.
func NewGetDailyActivityHandler(users user.Repository, activities activity.Repository, clk clock.Clock) *GetDailyActivityHandler {
	return &GetDailyActivityHandler{users: users, activities: activities, clk: clk}
}

// Handle returns the day's record, or a zero-valued view when none exists.
func (h *GetDailyActivityHandler) Handle(ctx context.Context, q GetDailyActivityQuery) (*DailyActivityView, error) {
	u, err := h.users.GetByID(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	date := q.Date
	if date.IsZero() {
		date = h.clk.Today()
	}
	date = clock.StartOfDay(date)

	rec, err := h.activities.Get(ctx, u.ID, date)
	if err != nil {
		if !shared.IsNotFound(err) {
			return nil, err
		}
		empty, err := activity.NewDailyActivity(u.ID, date, h.clk.Now())
		if err != nil {
			return nil, err
		}
		return &DailyActivityView{Record: empty, GoalTarget: u.DailyGoal, Exists: false}, nil
	}

	return &DailyActivityView{Record: rec, GoalTarget: u.DailyGoal, Exists: true}, nil
}

// GetActivityHistoryQuery requests a date range of activity records.
type GetActivityHistoryQuery struct {
	UserID user.ID

	// From and To bound the range inclusively. Zero From defaults to 30 days
	// before To; zero To defaults to today.
	From time.Time
	To   time.Time
}

// GetActivityHistoryHandler handles GetActivityHistoryQuery.
type GetActivityHistoryHandler struct {
	users      user.Repository
	activities activity.Repository
	clk        clock.Clock
}

// NewGetActivityHistoryHandler creates a new GetActivityHistoryHandler.
func NewGetActivityHistoryHandler(users user.Repository, activities activity.Repository, clk clock.Clock) *GetActivityHistoryHandler {
	return &GetActivityHistoryHandler{users: users, activities: activities, clk: clk}
}

// Handle returns the stored records in the range. Days without activity have
// no entry; clients fill the gaps.
func (h *GetActivityHistoryHandler) Handle(ctx context.Context, q GetActivityHistoryQuery) ([]*activity.DailyActivity, error) {
	u, err := h.users.GetByID(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	to := q.To
	if to.IsZero() {
		to = h.clk.Today()
	}
	to = clock.StartOfDay(to)

	from := q.From
	if from.IsZero() {
		from = to.AddDate(0, 0, -29)
	}
	from = clock.StartOfDay(from)

	if from.After(to) {
		return nil, shared.NewDomainError("activity", "History", shared.ErrInvalidInput, "from is after to")
	}

	return h.activities.History(ctx, u.ID, from, to)
}
