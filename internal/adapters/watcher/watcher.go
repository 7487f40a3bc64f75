// Package watcher implements recursive file system watching with fsnotify.
package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// shouldSkipDirectories are directories that should not be watched.
var shouldSkipDirectories = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

const eventChannelBuffer = 100

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	logger    ports.Logger
	fsWatcher *fsnotify.Watcher
	events    chan ports.FileEvent
	stopOnce  sync.Once
	stopErr   error
}

// NewWatcher creates a new file system watcher.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatcherStartFailed.Error())
	}
	return &Watcher{
		logger:    logger,
		fsWatcher: w,
		events:    make(chan ports.FileEvent, eventChannelBuffer),
	}, nil
}

// Start watches every root recursively. Roots that do not exist are skipped.
func (w *Watcher) Start(ctx context.Context, roots []string) error {
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			w.logger.Debug("not watching missing directory " + root)
			continue
		}
		for dir := range watchRecursively(root) {
			if err := w.fsWatcher.Add(dir); err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrWatcherStartFailed.Error()), "dir", dir)
			}
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		w.stopErr = w.fsWatcher.Close()
	})
	return w.stopErr
}

// Events returns an iterator of file system events.
func (w *Watcher) Events() iter.Seq[ports.FileEvent] {
	return func(yield func(ports.FileEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// watchRecursively walks the directory tree and yields all directories.
func watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // skip unreadable directories
			}
			if d.IsDir() {
				if shouldSkipDirectories[d.Name()] {
					return fs.SkipDir
				}
				if !yield(path) {
					return filepath.SkipAll
				}
			}
			return nil
		})
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			fe, ok := convertEvent(event)
			if !ok {
				continue
			}

			// New directories are watched as well so files created inside them are seen.
			if fe.Op == ports.OpCreate {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !shouldSkipDirectories[info.Name()] {
					for dir := range watchRecursively(event.Name) {
						_ = w.fsWatcher.Add(dir)
					}
				}
			}

			select {
			case w.events <- fe:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher: " + err.Error())
		}
	}
}

func convertEvent(event fsnotify.Event) (ports.FileEvent, bool) {
	switch {
	case event.Has(fsnotify.Write):
		return ports.FileEvent{Path: event.Name, Op: ports.OpWrite}, true
	case event.Has(fsnotify.Create):
		return ports.FileEvent{Path: event.Name, Op: ports.OpCreate}, true
	case event.Has(fsnotify.Remove):
		return ports.FileEvent{Path: event.Name, Op: ports.OpRemove}, true
	case event.Has(fsnotify.Rename):
		return ports.FileEvent{Path: event.Name, Op: ports.OpRename}, true
	default:
		return ports.FileEvent{}, false
	}
}
