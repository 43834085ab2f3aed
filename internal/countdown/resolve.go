// Package countdown derives display state for countdown records: the next
// effective occurrence of a repeat rule and the urgency bucket of that
// date. Everything here is recomputed from "now" on demand; nothing is
// cached or written back to the store.
package countdown

import (
	"time"

	"github.com/ecamli/daykeep/internal/dateutil"
	"github.com/ecamli/daykeep/internal/store"
)

// NextOccurrence resolves the effective date for an anchor and repeat rule
// at the given instant. The anchor itself is never mutated.
//
// Weekly matches on weekday, and a match on today's weekday resolves to
// today rather than seven days out. Yearly builds a candidate from now's
// year and the anchor's month/day, comparing at day granularity so an
// anchor earlier in the day still resolves to today. A Feb 29 anchor in a
// non-leap year falls back to March 1 (the time.Date normalization).
//
// With a recurring rule the result is never before today's calendar day.
// With RepeatNone the anchor's instant is returned unchanged but shifted
// into now's location, so calendar-day math sees the local date the user
// picked rather than the UTC date it was stored under. Classifying a past
// anchor is the classifier's job.
func NextOccurrence(anchor time.Time, rule store.Repeat, now time.Time) time.Time {
	loc := now.Location()

	switch rule {
	case store.RepeatWeekly:
		a := anchor.In(loc)
		delta := (int(a.Weekday()) - int(now.Weekday()) + 7) % 7
		return dateutil.StartOfDay(now).AddDate(0, 0, delta)

	case store.RepeatYearly:
		a := anchor.In(loc)
		candidate := time.Date(now.Year(), a.Month(), a.Day(), 0, 0, 0, 0, loc)
		if dateutil.DayDiff(candidate, now) < 0 {
			candidate = time.Date(now.Year()+1, a.Month(), a.Day(), 0, 0, 0, 0, loc)
		}
		return candidate

	default:
		return anchor.In(loc)
	}
}
