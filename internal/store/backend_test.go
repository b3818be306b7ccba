package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	backend, err := NewFileBackend(path)
	require.NoError(t, err)

	_, err = backend.Read()
	assert.ErrorIs(t, err, ErrNotExist)

	require.NoError(t, backend.Write([]byte(`{"state":{},"version":5}`)))
	data, err := backend.Read()
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{},"version":5}`, string(data))

	// A second write replaces the envelope.
	require.NoError(t, backend.Write([]byte(`{"state":{"a":1},"version":5}`)))
	data, err = backend.Read()
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"a":1},"version":5}`, string(data))
}

func TestSQLiteBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.db")
	backend, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	defer backend.Close()

	_, err = backend.Read()
	assert.ErrorIs(t, err, ErrNotExist)

	require.NoError(t, backend.Write([]byte(`{"state":{},"version":4}`)))
	require.NoError(t, backend.Write([]byte(`{"state":{},"version":5}`)))

	data, err := backend.Read()
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{},"version":5}`, string(data))
}

func TestStoreOnFileBackendSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	backend, err := NewFileBackend(path)
	require.NoError(t, err)

	st, err := Open(backend, WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	entry := st.SaveEntry(EntryDraft{Title: "persistida", Content: "idea", Emotion: "calma"})
	require.NotNil(t, entry)

	reopened, err := Open(backend, WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	entries := reopened.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
	assert.Equal(t, "idea", entries[0].Content)
}

func TestStoreOnSQLiteBackendSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.db")
	backend, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	defer backend.Close()

	st, err := Open(backend, WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	st.AddChatMessage(ChatDraft{Role: "user", Content: "hola"})

	reopened, err := Open(backend, WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	msgs := reopened.ChatMessages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "hola", msgs[0].Content)
}
