package store

import (
	"fmt"
	"time"
)

func (s *Store) CreateActivity(name, emoji, color string, weeklyGoalMinutes int) (*Activity, error) {
	if weeklyGoalMinutes < 1 {
		return nil, ErrInvalidGoal
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO activities (name, emoji, color, weekly_goal_minutes, created_at) VALUES (?, ?, ?, ?, ?)`,
		name, emoji, color, weeklyGoalMinutes, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert activity: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetActivity(id)
}

func (s *Store) GetActivity(id int64) (*Activity, error) {
	a := &Activity{}
	var createdAt string
	err := s.db.QueryRow(
		`SELECT id, name, emoji, color, weekly_goal_minutes, created_at FROM activities WHERE id = ?`, id,
	).Scan(&a.ID, &a.Name, &a.Emoji, &a.Color, &a.WeeklyGoalMinutes, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get activity %d: %w", id, err)
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return a, nil
}

func (s *Store) ListActivities() ([]Activity, error) {
	rows, err := s.db.Query(
		`SELECT id, name, emoji, color, weekly_goal_minutes, created_at FROM activities ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		var a Activity
		var createdAt string
		if err := rows.Scan(&a.ID, &a.Name, &a.Emoji, &a.Color, &a.WeeklyGoalMinutes, &createdAt); err != nil {
			return nil, err
		}
		a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (s *Store) UpdateActivity(id int64, name string, weeklyGoalMinutes int) error {
	if weeklyGoalMinutes < 1 {
		return ErrInvalidGoal
	}
	_, err := s.db.Exec(
		`UPDATE activities SET name = ?, weekly_goal_minutes = ? WHERE id = ?`,
		name, weeklyGoalMinutes, id,
	)
	return err
}

// DeleteActivity removes the activity; its time entries go with it via the
// foreign key cascade.
func (s *Store) DeleteActivity(id int64) error {
	_, err := s.db.Exec(`DELETE FROM activities WHERE id = ?`, id)
	return err
}
