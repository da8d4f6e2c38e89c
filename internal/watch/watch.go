// Package watch re-runs a callback whenever a single file is rewritten.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// Config configures a FileWatcher.
type Config struct {
	Path     string
	Debounce time.Duration
	Logger   *slog.Logger
}

// FileWatcher reports writes to one file. It watches the parent directory
// so that editors which save by renaming a temp file over the original are
// still seen.
type FileWatcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
}

// New starts watching cfg.Path. Changes made after New returns are delivered
// by Run.
func New(cfg Config) (*FileWatcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", cfg.Path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close() //nolint:errcheck
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &FileWatcher{
		path:     abs,
		debounce: cfg.Debounce,
		logger:   cfg.Logger,
		watcher:  watcher,
	}, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Run calls onChange once per burst of writes until ctx is canceled. An error
// from onChange is logged and watching continues. Run closes the watcher
// before returning.
func (w *FileWatcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	defer w.watcher.Close() //nolint:errcheck

	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	w.logger.Debug("watching file", "path", w.path, "debounce", w.debounce)

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("file watcher stopping", "path", w.path)
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			// Reset or start debounce timer
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "path", w.path, "error", err)

		case <-timerC:
			timer, timerC = nil, nil
			w.logger.Debug("file changed", "path", w.path)
			if err := onChange(ctx); err != nil {
				w.logger.Warn("re-run failed", "path", w.path, "error", err)
			}
		}
	}
}

// relevant reports whether event may have changed the watched file's content.
func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// Close stops watching without waiting for Run.
func (w *FileWatcher) Close() error {
	return w.watcher.Close()
}
