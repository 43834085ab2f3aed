package countdown

import (
	"sort"
	"time"

	"github.com/ecamli/daykeep/internal/dateutil"
	"github.com/ecamli/daykeep/internal/store"
)

// Item is one countdown with its derived state for a single evaluation.
type Item struct {
	Countdown store.Countdown
	Resolved  time.Time
	Days      int
	Bucket    Bucket
}

// Group is a bucket section of the display list.
type Group struct {
	Bucket Bucket
	Items  []Item
}

// Resolve derives an Item for one countdown at the given instant.
func Resolve(c store.Countdown, now time.Time) Item {
	resolved := NextOccurrence(c.TargetDate, c.Repeat, now)
	return Item{
		Countdown: c,
		Resolved:  resolved,
		Days:      dateutil.DayDiff(resolved, now),
		Bucket:    Classify(resolved, c.Repeat, now),
	}
}

// BuildList resolves every countdown and sorts ascending by resolved date.
// The sort is stable, so records resolving to the same day keep their input
// order. Safe to call on every refresh tick; there is no cached state.
func BuildList(countdowns []store.Countdown, now time.Time) []Item {
	items := make([]Item, 0, len(countdowns))
	for _, c := range countdowns {
		items = append(items, Resolve(c, now))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return dateutil.CalendarDay(items[i].Resolved).Before(dateutil.CalendarDay(items[j].Resolved))
	})
	return items
}

// GroupBuckets partitions a sorted item list into non-empty bucket groups,
// in display order. Each group inherits the list's sort.
func GroupBuckets(items []Item) []Group {
	byBucket := make(map[Bucket][]Item)
	for _, it := range items {
		byBucket[it.Bucket] = append(byBucket[it.Bucket], it)
	}

	var groups []Group
	for _, b := range DisplayOrder {
		if len(byBucket[b]) > 0 {
			groups = append(groups, Group{Bucket: b, Items: byBucket[b]})
		}
	}
	return groups
}
