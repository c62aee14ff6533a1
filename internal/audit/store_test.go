package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestWriteAndQuery(t *testing.T) {
	store := newTestStore(t)

	evt := Event{
		RunID:     "run-1",
		Timestamp: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
		Action:    "set",
		Kind:      "Host",
		File:      "/etc/icinga2/conf.d/hosts.conf",
		Details:   map[string]any{"key": "check_interval"},
	}
	require.NoError(t, store.Write(evt))

	events, err := store.Query(10)
	require.NoError(t, err)
	require.Len(t, events, 1)

	got := events[0]
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, "set", got.Action)
	assert.Equal(t, "Host", got.Kind)
	assert.Equal(t, "check_interval", got.Details["key"])
}

func TestQueryNewestFirst(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	for i, action := range []string{"set", "remove", "remove-type"} {
		require.NoError(t, store.Write(Event{
			RunID:     "run-1",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Action:    action,
			Kind:      "Host",
			File:      "hosts.conf",
		}))
	}

	events, err := store.Query(2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "remove-type", events[0].Action)
	assert.Equal(t, "remove", events[1].Action)
}

func TestCount(t *testing.T) {
	store := newTestStore(t)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, store.Write(Event{RunID: "r", Timestamp: time.Now(), Action: "set", Kind: "Host", File: "f"}))

	n, err = store.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestStoreIsReopenable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Write(Event{RunID: "r", Timestamp: time.Now(), Action: "set", Kind: "Host", File: "f"}))
	require.NoError(t, store.Close())

	store, err = NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
