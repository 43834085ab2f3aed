package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarDaySameLocalDate(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	morning := time.Date(2024, 6, 15, 0, 0, 1, 0, loc)
	evening := time.Date(2024, 6, 15, 23, 59, 59, 0, loc)

	assert.Equal(t, CalendarDay(morning), CalendarDay(evening))
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), CalendarDay(morning))
}

func TestCalendarDayAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// 2024-03-31 is the spring-forward day in Berlin (02:00 -> 03:00).
	before := time.Date(2024, 3, 31, 1, 30, 0, 0, loc)
	after := time.Date(2024, 3, 31, 22, 0, 0, 0, loc)
	require.Equal(t, CalendarDay(before), CalendarDay(after))

	// The transition day is 23 hours long; day difference must still be 1.
	prev := time.Date(2024, 3, 30, 12, 0, 0, 0, loc)
	next := time.Date(2024, 3, 31, 12, 0, 0, 0, loc)
	assert.Equal(t, 1, DayDiff(next, prev))
}

func TestDayDiff(t *testing.T) {
	a := time.Date(2024, 3, 8, 9, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 6, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, DayDiff(a, b))
	assert.Equal(t, -2, DayDiff(b, a))
	assert.Equal(t, 0, DayDiff(a, a))
}

func TestDayDiffAntisymmetric(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i += 37 {
		a := base.AddDate(0, 0, i)
		b := base.Add(time.Duration(i) * 13 * time.Hour)
		assert.Equal(t, DayDiff(a, b), -DayDiff(b, a))
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	ts := time.Date(2024, 12, 31, 18, 45, 12, 0, loc)
	got := StartOfDay(ts)

	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestDateString(t *testing.T) {
	ts := time.Date(2024, 2, 5, 8, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-05", DateString(ts))
}

func TestFixedClock(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := FixedClock{T: ts}
	assert.Equal(t, ts, c.Now())
}
