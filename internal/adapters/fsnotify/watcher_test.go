package fsnotify

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitForEvent(t *testing.T, w *Watcher) bool {
	t.Helper()
	select {
	case <-w.Events():
		return true
	case <-time.After(2 * time.Second):
		return false
	}
}

func TestWatcherSignalsOnArtifactWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "gazetteer.json"), []byte("{}"), 0o644))
	require.True(t, waitForEvent(t, w), "expected a change signal")
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	select {
	case <-w.Events():
		t.Fatal("unexpected signal for unrelated file")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)
	defer w.Stop()

	// Several quick writes collapse into a single signal.
	path := filepath.Join(dir, "aliases.jsonl")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, waitForEvent(t, w))

	select {
	case <-w.Events():
		t.Fatal("burst produced more than one signal")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherStopIdempotent(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)
	w.Stop()
	w.Stop()
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
