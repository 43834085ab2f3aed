package store

import (
	"fmt"
	"time"
)

func (s *Store) CreateCountdown(title string, targetDate time.Time, repeat Repeat, color string) (*Countdown, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO countdowns (title, target_date, repeat, color, created_at) VALUES (?, ?, ?, ?, ?)`,
		title, targetDate.UTC().Format(time.RFC3339), string(repeat), color, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert countdown: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetCountdown(id)
}

func (s *Store) GetCountdown(id int64) (*Countdown, error) {
	c := &Countdown{}
	var targetDate, repeat, createdAt string
	err := s.db.QueryRow(
		`SELECT id, title, target_date, repeat, color, created_at FROM countdowns WHERE id = ?`, id,
	).Scan(&c.ID, &c.Title, &targetDate, &repeat, &c.Color, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get countdown %d: %w", id, err)
	}
	c.Repeat = Repeat(repeat)
	c.TargetDate, _ = time.Parse(time.RFC3339, targetDate)
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return c, nil
}

func (s *Store) ListCountdowns() ([]Countdown, error) {
	rows, err := s.db.Query(
		`SELECT id, title, target_date, repeat, color, created_at FROM countdowns ORDER BY target_date, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list countdowns: %w", err)
	}
	defer rows.Close()

	var countdowns []Countdown
	for rows.Next() {
		var c Countdown
		var targetDate, repeat, createdAt string
		if err := rows.Scan(&c.ID, &c.Title, &targetDate, &repeat, &c.Color, &createdAt); err != nil {
			return nil, err
		}
		c.Repeat = Repeat(repeat)
		c.TargetDate, _ = time.Parse(time.RFC3339, targetDate)
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		countdowns = append(countdowns, c)
	}
	return countdowns, rows.Err()
}

func (s *Store) UpdateCountdown(id int64, title string, targetDate time.Time, repeat Repeat, color string) error {
	_, err := s.db.Exec(
		`UPDATE countdowns SET title = ?, target_date = ?, repeat = ?, color = ? WHERE id = ?`,
		title, targetDate.UTC().Format(time.RFC3339), string(repeat), color, id,
	)
	return err
}

func (s *Store) DeleteCountdown(id int64) error {
	_, err := s.db.Exec(`DELETE FROM countdowns WHERE id = ?`, id)
	return err
}
