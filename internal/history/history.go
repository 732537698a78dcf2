// Package history records processed entries: what came in, what went out,
// and the settings used. Storage is append-only; listing is capped.
package history

import (
	"context"
	"errors"
	"time"
)

// DefaultListLimit is the number of entries shown when no limit is given,
// matching the UI's "last five" panel.
const DefaultListLimit = 5

// ErrClosed is returned by stores after Close.
var ErrClosed = errors.New("history store is closed")

// Entry is one processed item.
type Entry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Original  string         `json:"original"`
	Rewritten string         `json:"rewritten,omitempty"`
	AudioPath string         `json:"audio_path,omitempty"`
	Settings  map[string]any `json:"settings,omitempty"`
}

// Store persists history entries.
type Store interface {
	// Append records an entry. Entries without an ID or timestamp get them
	// assigned.
	Append(ctx context.Context, e *Entry) error

	// List returns entries newest first. A non-positive limit means
	// DefaultListLimit; a negative store length is never returned.
	List(ctx context.Context, limit int) ([]Entry, error)

	// Len returns the total number of stored entries.
	Len(ctx context.Context) (int, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
