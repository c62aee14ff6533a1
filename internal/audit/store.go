// Package audit provides persistent history of config edit runs.
package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Event represents a single recorded edit operation.
type Event struct {
	ID        int64          `json:"id"`
	RunID     string         `json:"run_id"`
	Timestamp time.Time      `json:"timestamp"`
	Action    string         `json:"action"`
	Kind      string         `json:"kind"`
	File      string         `json:"file"`
	Details   map[string]any `json:"details,omitempty"`
}

// Store provides persistent storage for edit events.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// NewStore opens (or creates) an audit store at the given path.
func NewStore(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create audit dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS edit_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
			action TEXT NOT NULL,
			kind TEXT NOT NULL,
			file TEXT NOT NULL,
			details TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_edit_timestamp ON edit_events(timestamp);
		CREATE INDEX IF NOT EXISTS idx_edit_run ON edit_events(run_id);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create audit table: %w", err)
	}

	return &Store{db: db}, nil
}

// Write persists an edit event.
func (s *Store) Write(evt Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var detailsJSON []byte
	if evt.Details != nil {
		var err error
		detailsJSON, err = json.Marshal(evt.Details)
		if err != nil {
			detailsJSON = []byte("{}")
		}
	}

	_, err := s.db.Exec(`
		INSERT INTO edit_events (run_id, timestamp, action, kind, file, details)
		VALUES (?, ?, ?, ?, ?, ?)
	`, evt.RunID, evt.Timestamp, evt.Action, evt.Kind, evt.File, string(detailsJSON))
	if err != nil {
		return fmt.Errorf("insert edit event: %w", err)
	}
	return nil
}

// Query returns the most recent events, newest first.
func (s *Store) Query(limit int) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT id, run_id, timestamp, action, kind, file, details
		FROM edit_events ORDER BY timestamp DESC, id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query edit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var evt Event
		var detailsJSON sql.NullString
		if err := rows.Scan(&evt.ID, &evt.RunID, &evt.Timestamp, &evt.Action,
			&evt.Kind, &evt.File, &detailsJSON); err != nil {
			return nil, fmt.Errorf("scan edit event: %w", err)
		}
		if detailsJSON.Valid && detailsJSON.String != "" {
			json.Unmarshal([]byte(detailsJSON.String), &evt.Details)
		}
		events = append(events, evt)
	}
	return events, rows.Err()
}

// Count returns the total number of events in the store.
func (s *Store) Count() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM edit_events").Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
