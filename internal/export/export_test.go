package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ecamli/daykeep/internal/store"
)

func sampleData() ([]store.TimeEntry, map[int64]*store.Activity) {
	now := time.Now().UTC()

	entries := []store.TimeEntry{
		{
			ID:              1,
			ActivityID:      1,
			StartTime:       now.Add(-1 * time.Hour),
			EndTime:         now,
			DurationMinutes: 60,
			Date:            "2024-03-06",
			CreatedAt:       now,
		},
		{
			ID:              2,
			ActivityID:      2,
			StartTime:       now.Add(-30 * time.Minute),
			EndTime:         now,
			DurationMinutes: 30,
			Date:            "2024-03-06",
			CreatedAt:       now,
		},
	}

	activities := map[int64]*store.Activity{
		1: {ID: 1, Name: "Reading", Color: "#FF0000", WeeklyGoalMinutes: 180},
		2: {ID: 2, Name: "Piano", Color: "#00FF00", WeeklyGoalMinutes: 300},
	}

	return entries, activities
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	entries, activities := sampleData()
	path := filepath.Join(t.TempDir(), "test.csv")

	err := ToCSV(entries, activities, path)
	if err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 2 data rows
	if len(records) != 3 {
		t.Fatalf("expected 3 rows (1 header + 2 data), got %d", len(records))
	}

	header := records[0]
	expectedHeader := []string{"ID", "Activity", "Date", "Start", "End", "Minutes", "Duration"}
	for i, h := range expectedHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	row := records[1]
	if row[0] != "1" {
		t.Fatalf("ID = %q, want 1", row[0])
	}
	if row[1] != "Reading" {
		t.Fatalf("Activity = %q, want Reading", row[1])
	}
	if row[2] != "2024-03-06" {
		t.Fatalf("Date = %q, want 2024-03-06", row[2])
	}
	if row[5] != "60" {
		t.Fatalf("Minutes = %q, want 60", row[5])
	}
	if row[6] != "1h" {
		t.Fatalf("Duration = %q, want 1h", row[6])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	err := ToCSV(nil, nil, path)
	if err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, _ := r.ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVUnknownActivity(t *testing.T) {
	entries := []store.TimeEntry{
		{
			ID:              1,
			ActivityID:      999,
			StartTime:       time.Now(),
			EndTime:         time.Now(),
			DurationMinutes: 5,
			Date:            "2024-03-06",
		},
	}
	path := filepath.Join(t.TempDir(), "unknown.csv")

	err := ToCSV(entries, map[int64]*store.Activity{}, path)
	if err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, _ := r.ReadAll()
	if records[1][1] != "Unknown" {
		t.Fatalf("expected 'Unknown' for missing activity, got %q", records[1][1])
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, nil, "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{1, "1m"},
		{59, "59m"},
		{60, "1h"},
		{90, "1h 30m"},
		{125, "2h 5m"},
	}
	for _, tc := range cases {
		if got := formatMinutes(tc.minutes); got != tc.want {
			t.Fatalf("formatMinutes(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	entries, activityMap := sampleData()
	var activities []store.Activity
	for _, a := range activityMap {
		activities = append(activities, *a)
	}

	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	countdowns := []store.Countdown{
		{ID: 1, Title: "Launch", TargetDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Repeat: store.RepeatNone, Color: "#0EA5E9"},
		{ID: 2, Title: "Standup", TargetDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Repeat: store.RepeatWeekly},
	}
	todos := []store.Todo{
		{ID: 1, Title: "Write report", IsDone: false, DueAt: &due},
		{ID: 2, Title: "Done thing", IsDone: true},
	}

	path := filepath.Join(t.TempDir(), "test.json")
	if err := ToJSON(countdowns, activities, entries, todos, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if parsed["exported_at"] == "" {
		t.Fatal("missing exported_at")
	}
	if got := len(parsed["countdowns"].([]any)); got != 2 {
		t.Fatalf("expected 2 countdowns, got %d", got)
	}
	if got := len(parsed["entries"].([]any)); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}
	if got := len(parsed["todos"].([]any)); got != 2 {
		t.Fatalf("expected 2 todos, got %d", got)
	}

	first := parsed["countdowns"].([]any)[0].(map[string]any)
	if first["repeat"] != "none" {
		t.Fatalf("repeat = %v, want none", first["repeat"])
	}

	if !strings.Contains(string(data), "Standup") {
		t.Fatal("expected weekly countdown in output")
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := ToJSON(nil, nil, nil, nil, path); err != nil {
		t.Fatal(err)
	}

	var parsed jsonExport
	data, _ := os.ReadFile(path)
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(parsed.Entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(parsed.Entries))
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(nil, nil, nil, nil, "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}
