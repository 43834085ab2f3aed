// Package tracking holds the single-timer state machine and the period
// aggregation of logged time against activity goals.
package tracking

import (
	"errors"
	"fmt"
	"time"

	"github.com/ecamli/daykeep/internal/dateutil"
	"github.com/ecamli/daykeep/internal/store"
)

var (
	// ErrTimerActive is returned by Start while a session exists. Only one
	// timer may run at a time.
	ErrTimerActive = errors.New("a timer is already active")

	// ErrNoActiveTimer is returned by Stop and Discard when idle.
	ErrNoActiveTimer = errors.New("no active timer")
)

// Store is the persistence the timer needs: one entry write plus the
// session snapshot round-trip. *store.Store satisfies it.
type Store interface {
	CreateTimeEntry(activityID int64, start, end time.Time, durationMinutes int, date string) (*store.TimeEntry, error)
	SaveTimerSession(sess *store.TimerSession) error
	LoadTimerSession() (*store.TimerSession, error)
	ClearTimerSession() error
}

// Session is the in-memory state of a running timer.
type Session struct {
	ActivityID     int64
	ActivityName   string
	StartTime      time.Time
	ElapsedSeconds int64
}

// Timer owns the at-most-one running session. All transitions go through
// its methods; a transition either completes fully or leaves the previous
// state intact.
type Timer struct {
	store   Store
	clock   dateutil.Clock
	session *Session
}

func NewTimer(s Store, clock dateutil.Clock) *Timer {
	return &Timer{store: s, clock: clock}
}

// Start begins timing an activity. Fails with ErrTimerActive if a session
// already exists; the existing session is untouched.
func (t *Timer) Start(activityID int64, activityName string) error {
	if t.session != nil {
		return ErrTimerActive
	}

	sess := &Session{
		ActivityID:   activityID,
		ActivityName: activityName,
		StartTime:    t.clock.Now(),
	}
	if err := t.persist(sess); err != nil {
		return fmt.Errorf("persist timer session: %w", err)
	}
	t.session = sess
	return nil
}

// Tick advances the elapsed counter by one second and re-persists the
// snapshot, so a crash loses at most about a second of display state.
// A tick that fires after the session was cleared is a no-op. The persist
// error is ignored here: reload reconstruction recomputes elapsed time
// from StartTime, so a missed snapshot costs nothing.
func (t *Timer) Tick() {
	if t.session == nil {
		return
	}
	t.session.ElapsedSeconds++
	_ = t.persist(t.session)
}

// Restore loads a persisted session after a process restart. Elapsed time
// is recomputed as now minus start rather than trusting the stored
// counter, so time spent while the process was down is included.
func (t *Timer) Restore() error {
	sess, err := t.store.LoadTimerSession()
	if err != nil {
		return fmt.Errorf("load timer session: %w", err)
	}
	if sess == nil {
		return nil
	}

	elapsed := int64(t.clock.Now().Sub(sess.StartTime).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	t.session = &Session{
		ActivityID:     sess.ActivityID,
		ActivityName:   sess.ActivityName,
		StartTime:      sess.StartTime,
		ElapsedSeconds: elapsed,
	}
	return nil
}

// Stop ends the session and records exactly one time entry. Sessions
// shorter than a minute still count as one minute. If the entry write
// fails the session is kept so the user can retry without losing it.
// If the entry was written but clearing the persisted snapshot failed,
// the entry is returned alongside the error; callers can tell the two
// failures apart by the entry being non-nil.
func (t *Timer) Stop() (*store.TimeEntry, error) {
	if t.session == nil {
		return nil, ErrNoActiveTimer
	}

	now := t.clock.Now()
	minutes := int(t.session.ElapsedSeconds / 60)
	if minutes < 1 {
		minutes = 1
	}

	entry, err := t.store.CreateTimeEntry(
		t.session.ActivityID,
		t.session.StartTime,
		now,
		minutes,
		dateutil.DateString(now),
	)
	if err != nil {
		return nil, fmt.Errorf("save time entry: %w", err)
	}

	t.session = nil
	if err := t.store.ClearTimerSession(); err != nil {
		return entry, fmt.Errorf("clear timer session: %w", err)
	}
	return entry, nil
}

// Discard abandons the session without recording anything.
func (t *Timer) Discard() error {
	if t.session == nil {
		return ErrNoActiveTimer
	}
	t.session = nil
	if err := t.store.ClearTimerSession(); err != nil {
		return fmt.Errorf("clear timer session: %w", err)
	}
	return nil
}

func (t *Timer) persist(sess *Session) error {
	return t.store.SaveTimerSession(&store.TimerSession{
		ActivityID:     sess.ActivityID,
		ActivityName:   sess.ActivityName,
		StartTime:      sess.StartTime,
		ElapsedSeconds: sess.ElapsedSeconds,
	})
}

func (t *Timer) Running() bool { return t.session != nil }

func (t *Timer) ActivityID() int64 {
	if t.session == nil {
		return 0
	}
	return t.session.ActivityID
}

func (t *Timer) ActivityName() string {
	if t.session == nil {
		return ""
	}
	return t.session.ActivityName
}

func (t *Timer) Elapsed() time.Duration {
	if t.session == nil {
		return 0
	}
	return time.Duration(t.session.ElapsedSeconds) * time.Second
}
