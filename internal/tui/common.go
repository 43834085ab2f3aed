package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/ecamli/daykeep/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewCountdowns viewState = iota
	viewTrack
	viewTodos
	viewReports
)

var viewNames = []string{"Countdowns", "Track", "Todos", "Reports"}

// --- Messages ---

type timerStartedMsg struct {
	activityName string
}

// timerRestoredMsg reports a session that survived a process restart.
type timerRestoredMsg struct {
	activityName string
}

type timerStoppedMsg struct {
	entry *store.TimeEntry
}

type timerDiscardedMsg struct{}

type entryRecordedMsg struct {
	minutes int
}

type statusMsg struct {
	text    string
	isError bool
}

// tickMsg fires every second and drives the running timer.
type tickMsg time.Time

// hourlyTickMsg and midnightTickMsg force countdown re-evaluation so items
// crossing a day boundary move buckets without user input.
type hourlyTickMsg time.Time
type midnightTickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// colorOptions returns the palette as select options, with any extra
// colors prepended so a preselected value stays selectable.
func colorOptions(extras ...string) []huh.Option[string] {
	seen := make(map[string]bool)
	var opts []huh.Option[string]
	add := func(c string) {
		if c == "" || seen[c] {
			return
		}
		seen[c] = true
		opts = append(opts, huh.NewOption(c, c))
	}
	for _, c := range extras {
		add(c)
	}
	for _, c := range countdownColors {
		add(c)
	}
	return opts
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// daysLabel renders the day delta of a countdown item.
func daysLabel(days int) string {
	switch {
	case days == 0:
		return "today!"
	case days == 1:
		return "tomorrow"
	case days > 1:
		return fmt.Sprintf("in %d days", days)
	case days == -1:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", -days)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
