package countdown

import (
	"time"

	"github.com/ecamli/daykeep/internal/dateutil"
	"github.com/ecamli/daykeep/internal/store"
)

// Bucket is the urgency category of a resolved occurrence. Derived per
// evaluation, never persisted.
type Bucket int

const (
	BucketExpired Bucket = iota
	BucketToday
	BucketUrgent // 1-3 days out
	BucketSoon   // 4-7 days out
	BucketFuture // 8+ days out
)

// DisplayOrder lists buckets in the order sections are rendered.
var DisplayOrder = []Bucket{BucketToday, BucketUrgent, BucketSoon, BucketFuture, BucketExpired}

func (b Bucket) String() string {
	switch b {
	case BucketExpired:
		return "Expired"
	case BucketToday:
		return "Today"
	case BucketUrgent:
		return "Urgent"
	case BucketSoon:
		return "Soon"
	default:
		return "Future"
	}
}

// Classify buckets a resolved occurrence date relative to now. A recurring
// rule can never produce Expired: the resolver guarantees its results are
// at or after today, and a negative day count under recurrence is treated
// as Today rather than trusted.
func Classify(resolved time.Time, rule store.Repeat, now time.Time) Bucket {
	days := dateutil.DayDiff(resolved, now)

	switch {
	case days < 0 && !rule.Recurring():
		return BucketExpired
	case days <= 0:
		return BucketToday
	case days <= 3:
		return BucketUrgent
	case days <= 7:
		return BucketSoon
	default:
		return BucketFuture
	}
}
