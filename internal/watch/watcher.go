// Package watch reports markdown files as they are saved
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/patrickward/twospace"
)

// ErrClosed is returned by Run when the watcher is closed while ctx is still live
var ErrClosed = errors.New("watcher closed")

// DefaultDebounce groups the bursts of writes editors make when saving
const DefaultDebounce = 100 * time.Millisecond

// Watcher calls a handler for each markdown file written under the watched directories
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	handler  func(path string)
	debounce time.Duration

	mu      sync.Mutex
	dirs    map[string]struct{}
	pending map[string]*time.Timer
}

// New creates a Watcher. handler runs on its own goroutine per saved file
func New(logger *zap.Logger, handler func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Watcher{
		watcher:  fw,
		logger:   logger,
		handler:  handler,
		debounce: DefaultDebounce,
		dirs:     make(map[string]struct{}),
		pending:  make(map[string]*time.Timer),
	}, nil
}

// SetDebounce changes the quiet period before the handler runs
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// Add watches each directory and its subdirectories, skipping hidden ones.
// Directories already watched are ignored, so Add can be called again to pick up new ones
func (w *Watcher) Add(dirs ...string) error {
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return w.addDir(path)
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}
	return nil
}

func (w *Watcher) addDir(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.dirs[path]; ok {
		return nil
	}
	if err := w.watcher.Add(path); err != nil {
		return err
	}
	w.dirs[path] = struct{}{}
	w.logger.Debug("watching directory", zap.String("dir", path))
	return nil
}

// Dirs returns the number of watched directories
func (w *Watcher) Dirs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.dirs)
}

// Run processes events until ctx is done or the watcher is closed
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.stopPending()
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				w.stopPending()
				return ErrClosed
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				w.stopPending()
				return ErrClosed
			}
			w.logger.Error("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !twospace.IsMarkdownFile(event.Name) {
		return
	}

	w.schedule(event.Name)
}

// schedule runs the handler once no further writes arrive for the debounce period
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.debounce)
		return
	}

	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		w.handler(path)
	})
}

func (w *Watcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
