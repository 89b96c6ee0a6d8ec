package watcher

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

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chromagraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0644))

	var calls atomic.Int32
	w := New(path, func() { calls.Add(1) }).WithDebounce(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Watch(ctx) }()

	select {
	case <-w.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not start")
	}

	t.Run("burst of writes fires once", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0644))
		}
		require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
		time.Sleep(150 * time.Millisecond)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("other files are ignored", func(t *testing.T) {
		before := calls.Load()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644))
		time.Sleep(200 * time.Millisecond)
		assert.Equal(t, before, calls.Load())
	})

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
