package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactory lets both implementations share the same behavioral tests.
type storeFactory func(t *testing.T) Store

func stores() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(t *testing.T) Store {
			return NewMemoryStore()
		},
		"sqlite": func(t *testing.T) Store {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
			require.NoError(t, err)
			return s
		},
	}
}

func TestStore_AppendAssignsIDAndTimestamp(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer s.Close()

			e := &Entry{Original: "hello"}
			require.NoError(t, s.Append(context.Background(), e))

			assert.NotEmpty(t, e.ID)
			assert.False(t, e.Timestamp.IsZero())
		})
	}
}

func TestStore_ListNewestFirstCappedAtFive(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer s.Close()

			base := time.Now().Add(-time.Hour)
			for i := 0; i < 8; i++ {
				require.NoError(t, s.Append(context.Background(), &Entry{
					Original:  fmt.Sprintf("entry %d", i),
					Timestamp: base.Add(time.Duration(i) * time.Minute),
				}))
			}

			entries, err := s.List(context.Background(), 0)
			require.NoError(t, err)

			require.Len(t, entries, DefaultListLimit)
			assert.Equal(t, "entry 7", entries[0].Original)
			assert.Equal(t, "entry 3", entries[4].Original)

			n, err := s.Len(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 8, n)
		})
	}
}

func TestStore_ListExplicitLimit(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer s.Close()

			for i := 0; i < 3; i++ {
				require.NoError(t, s.Append(context.Background(), &Entry{Original: "x"}))
			}

			entries, err := s.List(context.Background(), 2)
			require.NoError(t, err)
			assert.Len(t, entries, 2)

			entries, err = s.List(context.Background(), 50)
			require.NoError(t, err)
			assert.Len(t, entries, 3)
		})
	}
}

func TestStore_SettingsRoundTrip(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer s.Close()

			require.NoError(t, s.Append(context.Background(), &Entry{
				Original:  "in",
				Rewritten: "out",
				Settings: map[string]any{
					"tone":       "Professional",
					"creativity": 0.7,
				},
			}))

			entries, err := s.List(context.Background(), 1)
			require.NoError(t, err)
			require.Len(t, entries, 1)

			assert.Equal(t, "Professional", entries[0].Settings["tone"])
			assert.InDelta(t, 0.7, entries[0].Settings["creativity"].(float64), 1e-9)
		})
	}
}

func TestStore_Clear(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer s.Close()

			require.NoError(t, s.Append(context.Background(), &Entry{Original: "x"}))
			require.NoError(t, s.Clear(context.Background()))

			n, err := s.Len(context.Background())
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestMemoryStore_Closed(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Append(context.Background(), &Entry{}), ErrClosed)
	_, err := s.List(context.Background(), 1)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Append(context.Background(), &Entry{Original: "survives"}))
	require.NoError(t, s.Close())

	s2, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s2.Close()

	entries, err := s2.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "survives", entries[0].Original)
}
