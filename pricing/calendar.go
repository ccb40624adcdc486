/*
calendar.go - Injected date arithmetic for the schedule generator

PURPOSE:
  The schedule generator needs a small set of date operations (add months,
  start of month, parse "YYYY-MM", whole-calendar-month difference, ...).
  Rather than reaching for time.Now directly, the generator takes a Calendar
  so "now" is explicit and tests run at a fixed point in time.

IMPLEMENTATIONS:
  SystemCalendar: Backed by the standard library time package. The Clock
  field makes "now" injectable; NewSystemCalendar wires it to time.Now.

ERROR CONTRACT:
  A nil Calendar is the engine's single reportable failure mode
  (ErrCalendarRequired). Every other bad input has a defined fallback.

SEE ALSO:
  - schedule.go: The only consumer
  - errors.go: ErrCalendarRequired
*/
package pricing

import (
	"time"
)

// Calendar is the minimal date capability the schedule generator needs.
// All operations work at day granularity in UTC; every date the generator
// produces or consumes is the first of a calendar month.
type Calendar interface {
	// Now returns the current time. This anchors the default start-of-
	// schedule month and the loop cursor.
	Now() time.Time

	AddMonths(t time.Time, n int) time.Time
	AddYears(t time.Time, n int) time.Time
	StartOfMonth(t time.Time) time.Time

	// ParseYearMonth parses "YYYY-MM" to the first of that month.
	// ok is false for empty or malformed input.
	ParseYearMonth(s string) (t time.Time, ok bool)

	// MonthNumber returns the calendar month 1-12.
	MonthNumber(t time.Time) int

	// FormatMonthYear renders a date as "MMM YYYY" (e.g., "Jan 2025").
	FormatMonthYear(t time.Time) string

	// MonthsBetween returns the whole-calendar-month difference
	// later - earlier (0 for the same month, negative if later is earlier).
	MonthsBetween(later, earlier time.Time) int

	IsBefore(a, b time.Time) bool
	IsAfter(a, b time.Time) bool
	IsSameDay(a, b time.Time) bool
}

// =============================================================================
// SYSTEM CALENDAR - Standard library implementation
// =============================================================================

// SystemCalendar implements Calendar with the time package. Zero value is
// not usable; construct with NewSystemCalendar or set Clock explicitly.
type SystemCalendar struct {
	// Clock supplies "now". Tests pin this to a fixed instant.
	Clock func() time.Time
}

// NewSystemCalendar returns a Calendar running on real time.
func NewSystemCalendar() *SystemCalendar {
	return &SystemCalendar{Clock: time.Now}
}

// NewFixedCalendar returns a Calendar whose "now" never moves.
// Intended for tests and reproducible previews.
func NewFixedCalendar(now time.Time) *SystemCalendar {
	return &SystemCalendar{Clock: func() time.Time { return now }}
}

func (c *SystemCalendar) Now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock()
}

func (c *SystemCalendar) AddMonths(t time.Time, n int) time.Time { return t.AddDate(0, n, 0) }
func (c *SystemCalendar) AddYears(t time.Time, n int) time.Time  { return t.AddDate(n, 0, 0) }

func (c *SystemCalendar) StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (c *SystemCalendar) ParseYearMonth(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01", s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (c *SystemCalendar) MonthNumber(t time.Time) int { return int(t.Month()) }

func (c *SystemCalendar) FormatMonthYear(t time.Time) string { return t.Format("Jan 2006") }

func (c *SystemCalendar) MonthsBetween(later, earlier time.Time) int {
	return (later.Year()-earlier.Year())*12 + int(later.Month()) - int(earlier.Month())
}

func (c *SystemCalendar) IsBefore(a, b time.Time) bool { return a.Before(b) }
func (c *SystemCalendar) IsAfter(a, b time.Time) bool  { return a.After(b) }

func (c *SystemCalendar) IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
