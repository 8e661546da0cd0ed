package user

import "time"

// StreakUpdate is the result of computing the next streak state.
// Changed reports whether the caller needs to persist anything.
type StreakUpdate struct {
	StreakCount      int
	LastActivityDate time.Time
	Changed          bool
}

// NextStreak computes the next (streak count, last activity date) pair for a
// user given today's date. It is pure: it performs no I/O and depends only on
// its inputs, so repeated same-day calls converge to the same state no matter
// how concurrent requests interleave.
//
// Rules:
//   - no previous activity: the streak starts at 1 today
//   - already active today: no change
//   - active yesterday: streak increments
//   - gap of more than one day: streak resets to 1 (a reset day still counts
//     as an active day, so the count is 1, not 0)
//   - last activity in the future (clock moved backward): treated as a no-op
//     rather than corrupting state from a misordered call
func NextStreak(current ActivityState, today time.Time) StreakUpdate {
	today = startOfDay(today)

	if current.LastActivityDate == nil {
		return StreakUpdate{StreakCount: 1, LastActivityDate: today, Changed: true}
	}

	last := startOfDay(*current.LastActivityDate)
	daysDiff := daysBetween(last, today)

	switch {
	case daysDiff <= 0:
		// Same day, or clock skew. Nothing to update.
		return StreakUpdate{
			StreakCount:      current.StreakCount,
			LastActivityDate: last,
			Changed:          false,
		}
	case daysDiff == 1:
		return StreakUpdate{
			StreakCount:      current.StreakCount + 1,
			LastActivityDate: today,
			Changed:          true,
		}
	default:
		return StreakUpdate{StreakCount: 1, LastActivityDate: today, Changed: true}
	}
}

// daysBetween collapses both dates to UTC midnights before subtracting, so a
// DST transition (a 23- or 25-hour local day) never changes the count.
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}
