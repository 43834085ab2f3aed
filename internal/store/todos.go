package store

import (
	"database/sql"
	"fmt"
	"time"
)

func (s *Store) CreateTodo(title, notes string, dueAt *time.Time) (*Todo, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	var due any
	if dueAt != nil {
		due = dueAt.UTC().Format(time.RFC3339)
	}
	res, err := s.db.Exec(
		`INSERT INTO todos (title, notes, due_at, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		title, notes, due, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTodo(id)
}

func (s *Store) GetTodo(id int64) (*Todo, error) {
	t := &Todo{}
	var isDone int
	var dueAt sql.NullString
	var createdAt, updatedAt string
	err := s.db.QueryRow(
		`SELECT id, title, notes, is_done, due_at, created_at, updated_at FROM todos WHERE id = ?`, id,
	).Scan(&t.ID, &t.Title, &t.Notes, &isDone, &dueAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get todo %d: %w", id, err)
	}
	t.IsDone = isDone == 1
	if dueAt.Valid {
		due, _ := time.Parse(time.RFC3339, dueAt.String)
		t.DueAt = &due
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return t, nil
}

func (s *Store) ListTodos() ([]Todo, error) {
	rows, err := s.db.Query(
		`SELECT id, title, notes, is_done, due_at, created_at, updated_at FROM todos
		 ORDER BY is_done, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []Todo
	for rows.Next() {
		var t Todo
		var isDone int
		var dueAt sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&t.ID, &t.Title, &t.Notes, &isDone, &dueAt, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		t.IsDone = isDone == 1
		if dueAt.Valid {
			due, _ := time.Parse(time.RFC3339, dueAt.String)
			t.DueAt = &due
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (s *Store) ToggleTodo(id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE todos SET is_done = 1 - is_done, updated_at = ? WHERE id = ?`, now, id,
	)
	return err
}

func (s *Store) UpdateTodo(id int64, title, notes string, dueAt *time.Time) error {
	now := time.Now().UTC().Format(time.RFC3339)
	var due any
	if dueAt != nil {
		due = dueAt.UTC().Format(time.RFC3339)
	}
	_, err := s.db.Exec(
		`UPDATE todos SET title = ?, notes = ?, due_at = ?, updated_at = ? WHERE id = ?`,
		title, notes, due, now, id,
	)
	return err
}

func (s *Store) DeleteTodo(id int64) error {
	_, err := s.db.Exec(`DELETE FROM todos WHERE id = ?`, id)
	return err
}
