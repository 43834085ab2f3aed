package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/ecamli/daykeep/internal/store"
)

// ToCSV writes all time entries with their activity names resolved.
func ToCSV(entries []store.TimeEntry, activities map[int64]*store.Activity, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Activity", "Date", "Start", "End", "Minutes", "Duration"}); err != nil {
		return err
	}

	for _, e := range entries {
		activityName := "Unknown"
		if a, ok := activities[e.ActivityID]; ok {
			activityName = a.Name
		}

		row := []string{
			fmt.Sprintf("%d", e.ID),
			activityName,
			e.Date,
			e.StartTime.Local().Format(time.RFC3339),
			e.EndTime.Local().Format(time.RFC3339),
			fmt.Sprintf("%d", e.DurationMinutes),
			formatMinutes(e.DurationMinutes),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
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
