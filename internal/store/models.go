package store

import "time"

// Repeat is a countdown's recurrence rule.
type Repeat string

const (
	RepeatNone   Repeat = "none"
	RepeatWeekly Repeat = "weekly"
	RepeatYearly Repeat = "yearly"
)

// Recurring reports whether the rule produces future occurrences.
func (r Repeat) Recurring() bool {
	return r == RepeatWeekly || r == RepeatYearly
}

type Countdown struct {
	ID         int64
	Title      string
	TargetDate time.Time // anchor date; never mutated by recurrence
	Repeat     Repeat
	Color      string
	CreatedAt  time.Time
}

type Activity struct {
	ID                int64
	Name              string
	Emoji             string
	Color             string
	WeeklyGoalMinutes int
	CreatedAt         time.Time
}

// TimeEntry is an immutable record of a completed tracking interval.
// Date is the local calendar day the session is attributed to (YYYY-MM-DD).
type TimeEntry struct {
	ID              int64
	ActivityID      int64
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Date            string
	CreatedAt       time.Time
}

type Todo struct {
	ID        int64
	Title     string
	Notes     string
	IsDone    bool
	DueAt     *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TimerSession is the persisted snapshot of an in-flight timer. Elapsed is
// stored for display continuity only; reload reconstruction recomputes it
// from StartTime so time spent while the process was down is included.
type TimerSession struct {
	ActivityID     int64     `json:"activity_id"`
	ActivityName   string    `json:"activity_name"`
	StartTime      time.Time `json:"start_time"`
	ElapsedSeconds int64     `json:"elapsed_seconds"`
}

// EntryFilter is used to filter time entries in queries.
type EntryFilter struct {
	ActivityID *int64
	DateFrom   string // inclusive lower bound on the attribution date, YYYY-MM-DD
	Limit      int
}

// DailySummary represents aggregated minutes per activity per day.
type DailySummary struct {
	Date          string
	ActivityID    int64
	ActivityName  string
	ActivityColor string
	TotalMinutes  int
	EntryCount    int
}
