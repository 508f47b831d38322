// Package store keeps a local history of playback sessions so the CLI can
// offer resume points even when the server is unreachable.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFileName = "history.db"

const (
	StatePlaying = "playing"
	StateStopped = "stopped"
	StateDone    = "done"
)

// doneThreshold marks a session finished once this fraction was watched.
const doneThreshold = 0.9

type Store struct {
	db *sql.DB
}

// Session is one recorded playback of an item.
type Session struct {
	ID            int64
	ItemID        string
	ItemName      string
	PlaySessionID string
	PositionTicks int64
	DurationTicks sql.NullInt64
	State         string
	StartedAt     time.Time
	UpdatedAt     time.Time
}

func DBPath(storeDir string) string {
	return filepath.Join(storeDir, dbFileName)
}

func Open(storeDir string) (*Store, error) {
	if err := os.MkdirAll(storeDir, 0700); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", DBPath(storeDir)))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS playback_sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	item_id TEXT NOT NULL,
	item_name TEXT NOT NULL,
	play_session_id TEXT NOT NULL UNIQUE,
	position_ticks INTEGER NOT NULL DEFAULT 0,
	duration_ticks INTEGER,
	state TEXT NOT NULL,
	started_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_item ON playback_sessions(item_id);
CREATE INDEX IF NOT EXISTS idx_sessions_state ON playback_sessions(state);
`)
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// RecordStart registers a new playback session.
func (s *Store) RecordStart(itemID, itemName, playSessionID string, durationTicks int64) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	var duration interface{}
	if durationTicks > 0 {
		duration = durationTicks
	}
	_, err := s.db.Exec(`
INSERT INTO playback_sessions (item_id, item_name, play_session_id, position_ticks, duration_ticks, state, started_at, updated_at)
VALUES (?, ?, ?, 0, ?, ?, ?, ?)
ON CONFLICT(play_session_id) DO UPDATE SET updated_at=excluded.updated_at
`, itemID, itemName, playSessionID, duration, StatePlaying, now, now)
	if err != nil {
		return fmt.Errorf("record start: %w", err)
	}
	return nil
}

// RecordProgress moves the session's position forward.
func (s *Store) RecordProgress(playSessionID string, positionTicks int64) error {
	_, err := s.db.Exec(`UPDATE playback_sessions SET position_ticks = ?, updated_at = ? WHERE play_session_id = ?`,
		positionTicks, time.Now().UTC().Format(time.RFC3339Nano), playSessionID)
	if err != nil {
		return fmt.Errorf("record progress: %w", err)
	}
	return nil
}

// RecordStop finalizes a session. Watching past the done threshold marks it
// done; otherwise it stays resumable.
func (s *Store) RecordStop(playSessionID string, positionTicks int64) error {
	state := StateStopped

	var duration sql.NullInt64
	row := s.db.QueryRow(`SELECT duration_ticks FROM playback_sessions WHERE play_session_id = ?`, playSessionID)
	if err := row.Scan(&duration); err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("record stop: %w", err)
	}
	if duration.Valid && duration.Int64 > 0 &&
		float64(positionTicks) >= float64(duration.Int64)*doneThreshold {
		state = StateDone
	}

	_, err := s.db.Exec(`UPDATE playback_sessions SET position_ticks = ?, state = ?, updated_at = ? WHERE play_session_id = ?`,
		positionTicks, state, time.Now().UTC().Format(time.RFC3339Nano), playSessionID)
	if err != nil {
		return fmt.Errorf("record stop: %w", err)
	}
	return nil
}

// ListRecent returns the latest sessions, newest first.
func (s *Store) ListRecent(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
SELECT id, item_id, item_name, play_session_id, position_ticks, duration_ticks, state, started_at, updated_at
FROM playback_sessions ORDER BY updated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

// ContinueWatching returns unfinished sessions with a resume point, keeping
// only the most recent session per item.
func (s *Store) ContinueWatching(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
SELECT id, item_id, item_name, play_session_id, position_ticks, duration_ticks, state, started_at, updated_at
FROM playback_sessions
WHERE state != ? AND position_ticks > 0
  AND id IN (SELECT MAX(id) FROM playback_sessions GROUP BY item_id)
ORDER BY updated_at DESC LIMIT ?`, StateDone, limit)
	if err != nil {
		return nil, fmt.Errorf("continue watching: %w", err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

func scanSessions(rows *sql.Rows) ([]Session, error) {
	var out []Session
	for rows.Next() {
		var sess Session
		var started, updated string
		if err := rows.Scan(&sess.ID, &sess.ItemID, &sess.ItemName, &sess.PlaySessionID,
			&sess.PositionTicks, &sess.DurationTicks, &sess.State, &started, &updated); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.StartedAt = parseTime(started)
		sess.UpdatedAt = parseTime(updated)
		out = append(out, sess)
	}
	return out, rows.Err()
}

func parseTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
