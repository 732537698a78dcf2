package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists history across restarts.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed initializes) a history database at
// the given path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id         TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL,
			original   TEXT NOT NULL,
			rewritten  TEXT NOT NULL DEFAULT '',
			audio_path TEXT NOT NULL DEFAULT '',
			settings   TEXT NOT NULL DEFAULT '{}'
		);
		CREATE INDEX IF NOT EXISTS idx_history_created_at ON history(created_at);
	`)
	return err
}

// Append records an entry.
func (s *SQLiteStore) Append(ctx context.Context, e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	settings, err := json.Marshal(e.Settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO history (id, created_at, original, rewritten, audio_path, settings)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Timestamp.UnixNano(), e.Original, e.Rewritten, e.AudioPath, string(settings),
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return nil
}

// List returns entries newest first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, original, rewritten, audio_path, settings
		 FROM history ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			createdAt int64
			settings  string
		)
		if err := rows.Scan(&e.ID, &createdAt, &e.Original, &e.Rewritten, &e.AudioPath, &settings); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		e.Timestamp = time.Unix(0, createdAt)
		if settings != "" && settings != "{}" && settings != "null" {
			if err := json.Unmarshal([]byte(settings), &e.Settings); err != nil {
				return nil, fmt.Errorf("failed to decode settings: %w", err)
			}
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Len returns the total number of stored entries.
func (s *SQLiteStore) Len(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&n)
	return n, err
}

// Clear removes all entries.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM history`)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
