package cmd

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchFile_FiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, func() { calls.Add(1) })
	}()

	// Writes to other files in the directory are ignored.
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o600))

	assert.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600)
		return calls.Load() > 0
	}, 5*time.Second, 300*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watchFile did not stop after cancel")
	}
}

func TestWatchFile_MissingDirectory(t *testing.T) {
	err := watchFile(context.Background(), filepath.Join(t.TempDir(), "nope", "config.yaml"), func() {})
	assert.Error(t, err)
}
