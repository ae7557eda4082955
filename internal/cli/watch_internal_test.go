package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/patrickward/twospace/internal/settings"
	"github.com/patrickward/twospace/internal/watch"
)

func TestRunWatcher_StopsWhenWatcherCloses(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	app := NewApp(settings.NewMemoryStore(settings.Default()), nil, zap.NewNop(), "")

	w, err := watch.New(zap.NewNop(), func(string) {})
	require.NoError(t, err)
	require.NoError(t, w.Add(dir))
	require.NoError(t, w.Close())

	done := make(chan error, 1)
	go func() {
		done <- app.runWatcher(context.Background(), w, []string{dir})
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, watch.ErrClosed)
	case <-time.After(3 * time.Second):
		t.Fatal("runWatcher kept running after the watcher closed")
	}
}
