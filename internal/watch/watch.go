// Package watch regenerates output when an input file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 250 * time.Millisecond

// ErrNoHandler is returned by New when no handler is given.
var ErrNoHandler = errors.New("watch: handler is nil")

// Handler is called after the watched file settles. Errors are logged and
// watching continues.
type Handler func(ctx context.Context, path string) error

// Options configures a Watcher.
type Options struct {
	// Debounce is how long the file must stay quiet before Handler runs.
	Debounce time.Duration
	Logger   *zap.Logger
}

// Watcher calls a Handler whenever a single file is written or recreated.
type Watcher struct {
	path     string
	handler  Handler
	debounce time.Duration
	log      *zap.Logger
}

// New returns a Watcher for path.
func New(path string, handler Handler, opts Options) (*Watcher, error) {
	if handler == nil {
		return nil, ErrNoHandler
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Watcher{path: abs, handler: handler, debounce: opts.Debounce, log: opts.Logger}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run watches until ctx is done. The parent directory is watched rather than
// the file, so editors that replace the file on save are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.log.Info("watching", zap.String("path", w.path), zap.Duration("debounce", w.debounce))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.log.Debug("change detected", zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			if err := w.handler(ctx, w.path); err != nil {
				w.log.Error("regenerate failed", zap.String("path", w.path), zap.Error(err))
			}
		}
	}
}
