package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/patrickward/twospace/internal/watch"
	"github.com/patrickward/twospace/internal/workers"
)

// ErrRunOnSaveDisabled is returned by watch when the runOnSave setting is off
var ErrRunOnSaveDisabled = errors.New("runOnSave is disabled (enable it with: twospace settings set runOnSave true)")

const rescanInterval = 30 * time.Second

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dirs...]",
		Short: "Fix markdown files whenever they are saved",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return getApp(cmd).Watch(ctx, args)
		},
	}
}

// Watch fires the save handlers for every markdown file written under dirs until ctx is done.
// It returns watch.ErrClosed if the file watcher stops on its own
func (a *App) Watch(ctx context.Context, dirs []string) error {
	if !a.Registry.HasSaveHandlers() {
		return ErrRunOnSaveDisabled
	}

	w, err := watch.New(a.Logger, func(path string) {
		a.HandleSave(path)
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = w.Close()
	}()

	if err := w.Add(dirs...); err != nil {
		return err
	}

	a.Logger.Info("watching for saves", zap.Strings("dirs", dirs), zap.Int("directories", w.Dirs()))
	return a.runWatcher(ctx, w, dirs)
}

// runWatcher runs the watch loop and the periodic rescan until ctx is done or the watch loop exits
func (a *App) runWatcher(ctx context.Context, w *watch.Watcher, dirs []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var runErr error
	worker := workers.NewBackgroundWorker(ctx, a.Logger)
	worker.AddOneTimeTask("watch", func(ctx context.Context) error {
		// the worker stops with the watch loop
		defer cancel()
		runErr = w.Run(ctx)
		return runErr
	})
	worker.AddPeriodicTask("rescan", rescanInterval, func(ctx context.Context) error {
		// picks up directories created since the last scan
		return w.Add(dirs...)
	})
	worker.Start()

	<-worker.Done()
	worker.Shutdown()

	return runErr
}
