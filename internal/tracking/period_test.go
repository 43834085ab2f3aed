package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecamli/daykeep/internal/store"
)

func entry(activityID int64, date string, minutes int) store.TimeEntry {
	return store.TimeEntry{ActivityID: activityID, Date: date, DurationMinutes: minutes}
}

func TestWindowStartWeek(t *testing.T) {
	// Wednesday 2024-03-06 -> Monday 2024-03-04.
	ref := time.Date(2024, 3, 6, 15, 30, 0, 0, time.UTC)
	start, ok := WindowStart(PeriodWeek, ref)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), start)

	// Monday maps to itself.
	ref = time.Date(2024, 3, 4, 1, 0, 0, 0, time.UTC)
	start, _ = WindowStart(PeriodWeek, ref)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), start)
}

func TestWindowStartWeekOnSunday(t *testing.T) {
	// Sunday is the last day of the week: the window starts six days back,
	// not the upcoming Monday.
	ref := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
	require.Equal(t, time.Sunday, ref.Weekday())

	start, ok := WindowStart(PeriodWeek, ref)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), start)
}

func TestWindowStartMonth(t *testing.T) {
	ref := time.Date(2024, 3, 17, 9, 0, 0, 0, time.UTC)
	start, ok := WindowStart(PeriodMonth, ref)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestWindowStartAll(t *testing.T) {
	_, ok := WindowStart(PeriodAll, time.Now())
	assert.False(t, ok)
}

func TestTotalsWeek(t *testing.T) {
	ref := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC) // Wednesday
	entries := []store.TimeEntry{
		entry(1, "2024-03-04", 30), // Monday, in window
		entry(1, "2024-03-05", 45),
		entry(2, "2024-03-06", 60),
		entry(1, "2024-03-03", 90),  // Sunday of last week, out
		entry(2, "2024-02-28", 120), // way out
	}

	totals := Totals(entries, PeriodWeek, ref)
	assert.Equal(t, map[int64]int{1: 75, 2: 60}, totals)
}

func TestTotalsMonth(t *testing.T) {
	ref := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	entries := []store.TimeEntry{
		entry(1, "2024-03-01", 30),
		entry(1, "2024-03-03", 30),
		entry(1, "2024-02-29", 500),
	}

	totals := Totals(entries, PeriodMonth, ref)
	assert.Equal(t, map[int64]int{1: 60}, totals)
}

func TestTotalsAll(t *testing.T) {
	ref := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	entries := []store.TimeEntry{
		entry(1, "2019-01-01", 10),
		entry(1, "2024-03-06", 20),
	}

	totals := Totals(entries, PeriodAll, ref)
	assert.Equal(t, map[int64]int{1: 30}, totals)
}

func TestGoalProgress(t *testing.T) {
	// Week: straight percentage of the weekly goal.
	p, ok := GoalProgress(90, 180, PeriodWeek)
	require.True(t, ok)
	assert.Equal(t, 50, p)

	// Rounded, not truncated.
	p, _ = GoalProgress(100, 180, PeriodWeek)
	assert.Equal(t, 56, p)

	// Capped at 100.
	p, _ = GoalProgress(999, 180, PeriodWeek)
	assert.Equal(t, 100, p)

	// Month: goal is weekly x4.
	p, ok = GoalProgress(360, 180, PeriodMonth)
	require.True(t, ok)
	assert.Equal(t, 50, p)

	// All-time has no percentage.
	_, ok = GoalProgress(360, 180, PeriodAll)
	assert.False(t, ok)

	// Degenerate goal.
	_, ok = GoalProgress(10, 0, PeriodWeek)
	assert.False(t, ok)
}
