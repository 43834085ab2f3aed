// Package dateutil provides calendar-day arithmetic that is safe across
// daylight-saving transitions, plus the clock abstraction the rest of the
// app uses so tests can pin "now".
package dateutil

import "time"

// Clock supplies the current instant. The returned time's location is the
// timezone all calendar-day math is evaluated in, so a fixed-zone test
// clock controls both the instant and the local timezone.
type Clock interface {
	Now() time.Time
}

// SystemClock reports the wall clock in the local timezone.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant. Test helper.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// CalendarDay maps an instant to the UTC midnight of its calendar date,
// evaluated in the instant's own location. Two instants on the same local
// date always map to the same value regardless of time-of-day, which is
// what makes day subtraction exact across DST transitions (a naive
// 24h-division sees 23- and 25-hour days).
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayDiff returns the number of whole calendar days from b's date to a's
// date (positive when a is later). Both operands are normalized with
// CalendarDay first, so the division is always exact.
func DayDiff(a, b time.Time) int {
	return int(CalendarDay(a).Sub(CalendarDay(b)) / (24 * time.Hour))
}

// StartOfDay returns local midnight of t's calendar date, in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateString formats t's local calendar date as YYYY-MM-DD, the form time
// entries are attributed under.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}
