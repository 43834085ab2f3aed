package tracking

import (
	"math"
	"time"

	"github.com/ecamli/daykeep/internal/dateutil"
	"github.com/ecamli/daykeep/internal/store"
)

// Period is the aggregation window for activity totals.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// WindowStart returns the local-midnight lower bound of the period at the
// reference instant. Weeks start Monday; Sunday counts as the last day of
// the week, not the first. The second return is false for PeriodAll, which
// has no lower bound.
func WindowStart(p Period, ref time.Time) (time.Time, bool) {
	switch p {
	case PeriodWeek:
		back := (int(ref.Weekday()) + 6) % 7 // Monday 0 .. Sunday 6
		return dateutil.StartOfDay(ref).AddDate(0, 0, -back), true
	case PeriodMonth:
		return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()), true
	default:
		return time.Time{}, false
	}
}

// Totals sums logged minutes per activity for entries whose attribution
// date falls inside the period ending at ref. The window is open-ended at
// the top: anything dated up to and including today counts.
func Totals(entries []store.TimeEntry, p Period, ref time.Time) map[int64]int {
	start, bounded := WindowStart(p, ref)
	startDate := ""
	if bounded {
		startDate = dateutil.DateString(start)
	}

	totals := make(map[int64]int)
	for _, e := range entries {
		if bounded && e.Date < startDate {
			continue
		}
		totals[e.ActivityID] += e.DurationMinutes
	}
	return totals
}

// GoalProgress converts a period total into a capped percentage of the
// activity's goal. The monthly goal is the weekly goal times four, an
// approximation rather than a calendar-exact count. All-time has no
// meaningful goal, so ok is false there (and for non-positive goals).
func GoalProgress(totalMinutes, weeklyGoalMinutes int, p Period) (percent int, ok bool) {
	if p == PeriodAll || weeklyGoalMinutes < 1 {
		return 0, false
	}

	goal := weeklyGoalMinutes
	if p == PeriodMonth {
		goal *= 4
	}

	percent = int(math.Round(100 * float64(totalMinutes) / float64(goal)))
	if percent > 100 {
		percent = 100
	}
	return percent, true
}
