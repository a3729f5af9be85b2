package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitBatch(t *testing.T, w *Watcher) Batch {
	t.Helper()
	select {
	case b := <-w.Batches():
		return b
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for a batch")
		return Batch{}
	}
}

func TestWatcherDeliversDebouncedBatches(t *testing.T) {
	tmp := t.TempDir()

	w, err := New(50 * time.Millisecond)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(tmp))

	require.NoError(t, os.WriteFile(filepath.Join(tmp, "a.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "b.txt"), []byte("y"), 0644))

	batch := waitBatch(t, w)
	assert.NotEmpty(t, batch.Paths)
	for _, p := range batch.Paths {
		assert.Equal(t, tmp, filepath.Dir(p))
	}
}

func TestWatcherRemove(t *testing.T) {
	tmp := t.TempDir()

	w, err := New(30 * time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Add(tmp))
	require.NoError(t, w.Remove(tmp))

	require.NoError(t, os.WriteFile(filepath.Join(tmp, "a.txt"), []byte("x"), 0644))

	select {
	case b := <-w.Batches():
		t.Fatalf("unexpected batch after Remove: %v", b.Paths)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := New(0)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Add(t.TempDir()), ErrClosed)

	// Close is idempotent.
	assert.NoError(t, w.Close())
}
