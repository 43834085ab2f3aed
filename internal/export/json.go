package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ecamli/daykeep/internal/store"
)

type jsonExport struct {
	ExportedAt string          `json:"exported_at"`
	Countdowns []jsonCountdown `json:"countdowns"`
	Activities []jsonActivity  `json:"activities"`
	Entries    []jsonEntry     `json:"entries"`
	Todos      []jsonTodo      `json:"todos"`
}

type jsonCountdown struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	TargetDate string `json:"target_date"`
	Repeat     string `json:"repeat"`
	Color      string `json:"color,omitempty"`
}

type jsonActivity struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Emoji             string `json:"emoji,omitempty"`
	WeeklyGoalMinutes int    `json:"weekly_goal_minutes"`
}

type jsonEntry struct {
	ID          int64  `json:"id"`
	Activity    string `json:"activity"`
	ActivityID  int64  `json:"activity_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Minutes     int    `json:"duration_minutes"`
	Duration    string `json:"duration"`
}

type jsonTodo struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Notes  string `json:"notes,omitempty"`
	IsDone bool   `json:"is_done"`
	DueAt  string `json:"due_at,omitempty"`
}

// ToJSON dumps everything the app stores into a single document.
func ToJSON(countdowns []store.Countdown, activities []store.Activity, entries []store.TimeEntry, todos []store.Todo, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	byID := make(map[int64]string, len(activities))
	for _, a := range activities {
		byID[a.ID] = a.Name
		export.Activities = append(export.Activities, jsonActivity{
			ID:                a.ID,
			Name:              a.Name,
			Emoji:             a.Emoji,
			WeeklyGoalMinutes: a.WeeklyGoalMinutes,
		})
	}

	for _, c := range countdowns {
		export.Countdowns = append(export.Countdowns, jsonCountdown{
			ID:         c.ID,
			Title:      c.Title,
			TargetDate: c.TargetDate.Format(time.RFC3339),
			Repeat:     string(c.Repeat),
			Color:      c.Color,
		})
	}

	for _, e := range entries {
		name := byID[e.ActivityID]
		if name == "" {
			name = "Unknown"
		}
		export.Entries = append(export.Entries, jsonEntry{
			ID:         e.ID,
			Activity:   name,
			ActivityID: e.ActivityID,
			Date:       e.Date,
			StartTime:  e.StartTime.Local().Format(time.RFC3339),
			EndTime:    e.EndTime.Local().Format(time.RFC3339),
			Minutes:    e.DurationMinutes,
			Duration:   formatMinutes(e.DurationMinutes),
		})
	}

	for _, td := range todos {
		jt := jsonTodo{
			ID:     td.ID,
			Title:  td.Title,
			Notes:  td.Notes,
			IsDone: td.IsDone,
		}
		if td.DueAt != nil {
			jt.DueAt = td.DueAt.Format(time.RFC3339)
		}
		export.Todos = append(export.Todos, jt)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
