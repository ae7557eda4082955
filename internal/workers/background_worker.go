package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BackgroundTask represents a background task that can be cancelled
type BackgroundTask struct {
	Name     string
	Handler  func(ctx context.Context) error
	Interval time.Duration // For periodic tasks, 0 means run once
}

// BackgroundWorker manages and runs background tasks with graceful shutdown
type BackgroundWorker struct {
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *zap.Logger
	wg      sync.WaitGroup
	tasks   []BackgroundTask
	started bool
	mu      sync.Mutex
}

// NewBackgroundWorker creates a new BackgroundWorker
func NewBackgroundWorker(ctx context.Context, logger *zap.Logger) *BackgroundWorker {
	if logger == nil {
		logger = zap.NewNop()
	}

	cctx, cancel := context.WithCancel(ctx)
	return &BackgroundWorker{
		ctx:    cctx,
		cancel: cancel,
		logger: logger,
	}
}

// AddTask queues a task, starting it right away when the worker is already running
func (bw *BackgroundWorker) AddTask(task BackgroundTask) {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	if bw.started {
		bw.startTask(task)
		return
	}
	bw.tasks = append(bw.tasks, task)
}

// AddPeriodicTask adds a task that runs immediately and then every interval
func (bw *BackgroundWorker) AddPeriodicTask(name string, interval time.Duration, handler func(ctx context.Context) error) {
	bw.AddTask(BackgroundTask{
		Name:     name,
		Handler:  handler,
		Interval: interval,
	})
}

// AddOneTimeTask adds a task that runs once
func (bw *BackgroundWorker) AddOneTimeTask(name string, handler func(ctx context.Context) error) {
	bw.AddTask(BackgroundTask{
		Name:    name,
		Handler: handler,
	})
}

// Start begins executing all added background tasks
func (bw *BackgroundWorker) Start() {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	bw.started = true
	for _, task := range bw.tasks {
		bw.startTask(task)
	}
	bw.tasks = nil
}

// Done is closed when the worker is shut down or its parent context ends
func (bw *BackgroundWorker) Done() <-chan struct{} {
	return bw.ctx.Done()
}

// startTask starts a single background task
func (bw *BackgroundWorker) startTask(task BackgroundTask) {
	bw.wg.Add(1)
	go func(t BackgroundTask) {
		defer bw.wg.Done()

		defer func() {
			if r := recover(); r != nil {
				bw.logger.Error("recovered from panic in background task", zap.String("task", t.Name), zap.Any("panic", r))
			}
		}()

		if t.Interval <= 0 {
			bw.run(t)
			return
		}

		ticker := time.NewTicker(t.Interval)
		defer ticker.Stop()

		// Run once immediately
		bw.run(t)

		for {
			select {
			case <-bw.ctx.Done():
				bw.logger.Debug("background task stopping", zap.String("task", t.Name))
				return
			case <-ticker.C:
				bw.run(t)
			}
		}
	}(task)
}

func (bw *BackgroundWorker) run(t BackgroundTask) {
	if err := t.Handler(bw.ctx); err != nil {
		bw.logger.Error("background task error", zap.String("task", t.Name), zap.Error(err))
	}
}

// Shutdown gracefully stops all background tasks
func (bw *BackgroundWorker) Shutdown() {
	bw.logger.Debug("shutting down background tasks")
	bw.cancel()
	bw.wg.Wait()
	bw.logger.Debug("all background tasks stopped")
}
