package store

import (
	"fmt"
	"time"
)

// CreateTimeEntry records a completed tracking interval. Entries are
// immutable once written; there is no update path.
func (s *Store) CreateTimeEntry(activityID int64, start, end time.Time, durationMinutes int, date string) (*TimeEntry, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO time_entries (activity_id, start_time, end_time, duration_minutes, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		activityID, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339), durationMinutes, date, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert time entry: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTimeEntry(id)
}

func (s *Store) GetTimeEntry(id int64) (*TimeEntry, error) {
	e := &TimeEntry{}
	var startTime, endTime, createdAt string
	err := s.db.QueryRow(
		`SELECT id, activity_id, start_time, end_time, duration_minutes, date, created_at
		 FROM time_entries WHERE id = ?`, id,
	).Scan(&e.ID, &e.ActivityID, &startTime, &endTime, &e.DurationMinutes, &e.Date, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get time entry %d: %w", id, err)
	}
	e.StartTime, _ = time.Parse(time.RFC3339, startTime)
	e.EndTime, _ = time.Parse(time.RFC3339, endTime)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return e, nil
}

func (s *Store) ListTimeEntries(f EntryFilter) ([]TimeEntry, error) {
	query := `SELECT id, activity_id, start_time, end_time, duration_minutes, date, created_at FROM time_entries WHERE 1=1`
	var args []any

	if f.ActivityID != nil {
		query += ` AND activity_id = ?`
		args = append(args, *f.ActivityID)
	}
	if f.DateFrom != "" {
		query += ` AND date >= ?`
		args = append(args, f.DateFrom)
	}
	query += ` ORDER BY start_time DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	defer rows.Close()

	var entries []TimeEntry
	for rows.Next() {
		var e TimeEntry
		var startTime, endTime, createdAt string
		if err := rows.Scan(&e.ID, &e.ActivityID, &startTime, &endTime, &e.DurationMinutes, &e.Date, &createdAt); err != nil {
			return nil, err
		}
		e.StartTime, _ = time.Parse(time.RFC3339, startTime)
		e.EndTime, _ = time.Parse(time.RFC3339, endTime)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetDailySummary aggregates logged minutes per activity per attribution
// day over [from, to), both YYYY-MM-DD.
func (s *Store) GetDailySummary(from, to string) ([]DailySummary, error) {
	rows, err := s.db.Query(`
		SELECT e.date, e.activity_id, a.name, a.color,
		       COALESCE(SUM(e.duration_minutes), 0), COUNT(*)
		FROM time_entries e
		JOIN activities a ON a.id = e.activity_id
		WHERE e.date >= ? AND e.date < ?
		GROUP BY e.date, e.activity_id
		ORDER BY e.date, a.name`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("daily summary: %w", err)
	}
	defer rows.Close()

	var summaries []DailySummary
	for rows.Next() {
		var ds DailySummary
		if err := rows.Scan(&ds.Date, &ds.ActivityID, &ds.ActivityName, &ds.ActivityColor, &ds.TotalMinutes, &ds.EntryCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, ds)
	}
	return summaries, rows.Err()
}
