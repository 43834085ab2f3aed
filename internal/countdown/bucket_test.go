package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ecamli/daykeep/internal/store"
)

func TestClassifyBoundaries(t *testing.T) {
	now := date(2024, 3, 6)

	cases := []struct {
		days int
		want Bucket
	}{
		{-1, BucketExpired},
		{0, BucketToday},
		{1, BucketUrgent},
		{3, BucketUrgent},
		{4, BucketSoon},
		{7, BucketSoon},
		{8, BucketFuture},
		{365, BucketFuture},
	}
	for _, tc := range cases {
		resolved := now.AddDate(0, 0, tc.days)
		got := Classify(resolved, store.RepeatNone, now)
		assert.Equal(t, tc.want, got, "days=%d", tc.days)
	}
}

func TestClassifyRecurringNeverExpired(t *testing.T) {
	now := date(2024, 3, 6)

	for _, rule := range []store.Repeat{store.RepeatWeekly, store.RepeatYearly} {
		for days := -30; days <= 30; days++ {
			got := Classify(now.AddDate(0, 0, days), rule, now)
			assert.NotEqual(t, BucketExpired, got, "rule=%s days=%d", rule, days)
		}
	}

	// A past date under recurrence should not occur, but is classified
	// Today rather than trusted.
	assert.Equal(t, BucketToday, Classify(now.AddDate(0, 0, -2), store.RepeatWeekly, now))
}

func TestClassifyScenarioWeekly(t *testing.T) {
	// Anchor Friday 2024-03-01, now Wednesday 2024-03-06: next Friday is
	// two days out, so the countdown is Urgent.
	anchor := date(2024, 3, 1)
	now := date(2024, 3, 6)

	resolved := NextOccurrence(anchor, store.RepeatWeekly, now)
	assert.Equal(t, BucketUrgent, Classify(resolved, store.RepeatWeekly, now))
}

func TestClassifyTimeOfDayIrrelevant(t *testing.T) {
	now := time.Date(2024, 3, 6, 23, 50, 0, 0, time.UTC)
	resolved := time.Date(2024, 3, 7, 0, 10, 0, 0, time.UTC)

	// Ten minutes of wall clock, one whole calendar day.
	assert.Equal(t, BucketUrgent, Classify(resolved, store.RepeatNone, now))
}
