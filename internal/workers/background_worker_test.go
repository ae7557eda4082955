package workers_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/patrickward/twospace/internal/workers"
)

func TestBackgroundWorker_OneTimeTask(t *testing.T) {
	t.Parallel()
	bw := workers.NewBackgroundWorker(context.Background(), zap.NewNop())

	var runs atomic.Int32
	bw.AddOneTimeTask("once", func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("logged, not fatal")
	})
	bw.Start()

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	bw.Shutdown()
	assert.Equal(t, int32(1), runs.Load())
}

func TestBackgroundWorker_PeriodicTaskStopsOnShutdown(t *testing.T) {
	t.Parallel()
	bw := workers.NewBackgroundWorker(context.Background(), zap.NewNop())
	bw.Start()

	var runs atomic.Int32
	bw.AddPeriodicTask("tick", 5*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	bw.Shutdown()

	stopped := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())

	select {
	case <-bw.Done():
	default:
		t.Fatal("worker context not cancelled")
	}
}

func TestBackgroundWorker_RecoversFromPanic(t *testing.T) {
	t.Parallel()
	bw := workers.NewBackgroundWorker(context.Background(), zap.NewNop())

	var after atomic.Bool
	bw.AddOneTimeTask("panics", func(ctx context.Context) error {
		panic("boom")
	})
	bw.AddOneTimeTask("blocks", func(ctx context.Context) error {
		<-ctx.Done()
		after.Store(true)
		return nil
	})
	bw.Start()
	bw.Shutdown()

	assert.True(t, after.Load())
}
