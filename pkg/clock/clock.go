// Package clock provides an injectable time source plus calendar-day helpers.
// All streak and daily-activity logic depends on a single notion of "today"
// (server-local date), so every component that needs the current date receives
// a Clock instead of calling time.Now directly. This keeps the domain logic
// deterministic under test via Fake.
// No external dependencies - uses only standard library.
package clock

import (
	"sync"
	"time"
)

// FormatDate is the standard date format (YYYY-MM-DD).
const FormatDate = "2006-01-02"

// Clock supplies the current time. Today is derived from Now and is always
// truncated to midnight in the clock's location.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Today returns the current calendar date (midnight, server-local).
	Today() time.Time
}

// System is a Clock backed by the real system time.
type System struct {
	// Location used for day boundaries. Defaults to time.Local.
	Location *time.Location
}

// NewSystem creates a system clock using the given location for day boundaries.
// A nil location falls back to time.Local.
func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.Local
	}
	return &System{Location: loc}
}

// Now returns the current time in the clock's location.
func (s *System) Now() time.Time {
	return time.Now().In(s.location())
}

// Today returns the start of the current day.
func (s *System) Today() time.Time {
	return StartOfDay(s.Now())
}

func (s *System) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

// Fake is a Clock with a settable current time, for deterministic tests.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake creates a fake clock frozen at the given time.
func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

// Now returns the frozen time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Today returns the start of the frozen day.
func (f *Fake) Today() time.Time {
	return StartOfDay(f.Now())
}

// Set moves the fake clock to the given time.
func (f *Fake) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// AdvanceDays moves the fake clock forward by whole calendar days.
func (f *Fake) AdvanceDays(days int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.AddDate(0, 0, days)
}

// StartOfDay returns the start of the day (00:00:00) in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay checks if two times fall on the same calendar day.
func SameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DaysBetween returns the signed number of calendar days from `from` to `to`.
// Positive when `to` is later, negative when earlier, zero for the same day.
// Both dates collapse to UTC midnights before subtracting, so DST transitions
// (23- and 25-hour local days) cannot skew the count.
func DaysBetween(from, to time.Time) int {
	a := utcMidnight(from)
	b := utcMidnight(to)
	return int(b.Sub(a) / (24 * time.Hour))
}

func utcMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date creates a date (midnight UTC) for the given year, month and day.
// Primarily a test helper for building deterministic calendar dates.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// FormatDateStr formats a time as a date string (YYYY-MM-DD).
func FormatDateStr(t time.Time) string {
	return t.Format(FormatDate)
}

// ParseDate parses a date string (YYYY-MM-DD) as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(FormatDate, value)
}
