package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// The in-flight timer survives restarts as a JSON snapshot in the settings
// table, one row under this key.
const timerSessionKey = "active_timer"

func (s *Store) getSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) setSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// SaveTimerSession persists the running timer's snapshot, replacing any
// previous one.
func (s *Store) SaveTimerSession(sess *TimerSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal timer session: %w", err)
	}
	if err := s.setSetting(timerSessionKey, string(data)); err != nil {
		return fmt.Errorf("save timer session: %w", err)
	}
	return nil
}

// LoadTimerSession returns the persisted timer snapshot, or nil when no
// timer was running.
func (s *Store) LoadTimerSession() (*TimerSession, error) {
	value, err := s.getSetting(timerSessionKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sess := &TimerSession{}
	if err := json.Unmarshal([]byte(value), sess); err != nil {
		return nil, fmt.Errorf("decode timer session: %w", err)
	}
	return sess, nil
}

// ClearTimerSession removes the persisted snapshot. Clearing an already
// absent snapshot is not an error.
func (s *Store) ClearTimerSession() error {
	_, err := s.db.Exec(`DELETE FROM settings WHERE key = ?`, timerSessionKey)
	return err
}
