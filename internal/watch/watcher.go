// Package watch re-runs a callback whenever one of a set of input files
// changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Iron-Ham/stepwise/internal/logging"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before reporting changes.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports writes to a fixed set of files. It watches each file's
// parent directory so that editors which save by renaming a temp file over
// the original are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *logging.Logger

	mu    sync.Mutex
	files map[string]string // cleaned absolute path -> path as given
	dirs  map[string]struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the settle window. Zero or negative values keep the
// default.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger for watch events.
func WithLogger(logger *logging.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a Watcher with no files.
func New(opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		debounce: DefaultDebounce,
		logger:   logging.NopLogger(),
		files:    make(map[string]string),
		dirs:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Add starts watching path.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	dir := filepath.Dir(abs)
	if _, ok := w.dirs[dir]; !ok {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
	}
	w.files[abs] = path
	return nil
}

// Files returns the watched paths as they were given to Add, sorted.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, 0, len(w.files))
	for _, p := range w.files {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// Run blocks until ctx is done or the watcher is closed, calling onChange
// with the changed paths (as given to Add, sorted) once each burst of
// events settles. onChange runs on Run's goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func([]string)) error {
	// Many editors produce several events for a single save.
	debounceTimer := time.NewTimer(w.debounce)
	debounceTimer.Stop()
	defer debounceTimer.Stop()

	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			path, watched := w.lookup(event.Name)
			if !watched {
				continue
			}
			w.logger.Debug("input changed", "path", path, "op", event.Op.String())
			pending[path] = struct{}{}
			debounceTimer.Reset(w.debounce)

		case <-debounceTimer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			slices.Sort(changed)
			pending = make(map[string]struct{})
			onChange(changed)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err.Error())
		}
	}
}

func (w *Watcher) lookup(name string) (string, bool) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	path, ok := w.files[abs]
	return path, ok
}

// Close stops watching. A running Run returns nil.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
