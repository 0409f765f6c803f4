package web

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryStoreUpdateRecordsMaxima(t *testing.T) {
	store := newHistoryStore(filepath.Join(t.TempDir(), "history.json"))

	h := store.Update(1.5, 10)
	assert.Equal(t, History{MaxFileSizeMB: 1.5, MaxPages: 10}, h)

	// Smaller values leave the record untouched
	h = store.Update(0.5, 4)
	assert.Equal(t, History{MaxFileSizeMB: 1.5, MaxPages: 10}, h)

	// Each dimension is tracked independently
	h = store.Update(0.9, 22)
	assert.Equal(t, History{MaxFileSizeMB: 1.5, MaxPages: 22}, h)
}

func TestHistoryStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	newHistoryStore(path).Update(2.0, 8)

	reloaded := newHistoryStore(path).Load()
	assert.Equal(t, History{MaxFileSizeMB: 2.0, MaxPages: 8}, reloaded)
}

func TestHistoryStoreFailsSoft(t *testing.T) {
	missing := newHistoryStore(filepath.Join(t.TempDir(), "nope.json"))
	assert.Equal(t, History{}, missing.Load())

	corrupt := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0o644))
	assert.Equal(t, History{}, newHistoryStore(corrupt).Load())
}
