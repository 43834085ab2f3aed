package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecamli/daykeep/internal/dateutil"
	"github.com/ecamli/daykeep/internal/store"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrenceNone(t *testing.T) {
	anchor := date(2020, 5, 1)
	now := date(2024, 3, 6)

	// RepeatNone passes the anchor's instant through even when long past.
	assert.Equal(t, anchor, NextOccurrence(anchor, store.RepeatNone, now))
}

func TestNextOccurrenceNoneStoredAsUTC(t *testing.T) {
	// Anchors read back from the store carry a UTC location. East of UTC
	// the local target date is one day ahead of the UTC date, and the
	// resolver has to hand back the local date the user picked.
	loc := time.FixedZone("UTC+2", 2*60*60)
	anchor, err := time.Parse(time.RFC3339, "2026-02-28T22:00:00Z")
	require.NoError(t, err)
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, loc)

	got := NextOccurrence(anchor, store.RepeatNone, now)
	assert.Equal(t, 0, dateutil.DayDiff(got, now))
	assert.Equal(t, "2026-03-01", dateutil.DateString(got))
}

func TestNextOccurrenceWeekly(t *testing.T) {
	anchor := date(2024, 3, 1) // a Friday
	require.Equal(t, time.Friday, anchor.Weekday())

	now := date(2024, 3, 6) // the following Wednesday
	got := NextOccurrence(anchor, store.RepeatWeekly, now)

	assert.Equal(t, date(2024, 3, 8), got)
	assert.Equal(t, 2, dateutil.DayDiff(got, now))
}

func TestNextOccurrenceWeeklyToday(t *testing.T) {
	anchor := date(2024, 3, 1)              // Friday
	now := time.Date(2024, 3, 8, 18, 30, 0, 0, time.UTC) // also a Friday, evening

	got := NextOccurrence(anchor, store.RepeatWeekly, now)
	// A same-weekday match resolves to today, not a week out.
	assert.Equal(t, 0, dateutil.DayDiff(got, now))
}

func TestNextOccurrenceYearly(t *testing.T) {
	anchor := date(2020, 11, 5)

	// Before this year's date: stays in the current year.
	now := date(2024, 3, 6)
	assert.Equal(t, date(2024, 11, 5), NextOccurrence(anchor, store.RepeatYearly, now))

	// After this year's date: rolls to next year.
	now = date(2024, 12, 1)
	assert.Equal(t, date(2025, 11, 5), NextOccurrence(anchor, store.RepeatYearly, now))
}

func TestNextOccurrenceYearlySameDay(t *testing.T) {
	// Anchor earlier in the day than now, same calendar date: resolves to
	// today because comparison is at day granularity.
	anchor := time.Date(2020, 7, 20, 1, 0, 0, 0, time.UTC)
	now := time.Date(2024, 7, 20, 22, 0, 0, 0, time.UTC)

	got := NextOccurrence(anchor, store.RepeatYearly, now)
	assert.Equal(t, 0, dateutil.DayDiff(got, now))
}

func TestNextOccurrenceYearlyLeapDay(t *testing.T) {
	anchor := date(2024, 2, 29)

	// Non-leap years: Feb 29 falls back to March 1.
	now := date(2025, 1, 15)
	assert.Equal(t, date(2025, 3, 1), NextOccurrence(anchor, store.RepeatYearly, now))

	// On the fallback day itself it resolves to today, not next year.
	now = date(2025, 3, 1)
	got := NextOccurrence(anchor, store.RepeatYearly, now)
	assert.Equal(t, 0, dateutil.DayDiff(got, now))

	// Leap years keep the real date.
	now = date(2028, 1, 15)
	assert.Equal(t, date(2028, 2, 29), NextOccurrence(anchor, store.RepeatYearly, now))
}

func TestNextOccurrenceNeverPast(t *testing.T) {
	anchors := []time.Time{
		date(2019, 1, 1),
		date(2020, 2, 29),
		date(2023, 12, 31),
		time.Date(2021, 6, 15, 23, 0, 0, 0, time.UTC),
	}
	nows := []time.Time{
		date(2024, 1, 1),
		date(2024, 6, 15),
		date(2025, 3, 1),
		time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC),
	}
	for _, anchor := range anchors {
		for _, now := range nows {
			for _, rule := range []store.Repeat{store.RepeatWeekly, store.RepeatYearly} {
				got := NextOccurrence(anchor, rule, now)
				assert.GreaterOrEqual(t, dateutil.DayDiff(got, now), 0,
					"rule %s anchor %s now %s", rule, anchor, now)
			}
		}
	}
}
