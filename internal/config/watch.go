package config

import (
	"context"
	"path/filepath"

	fsnotify "github.com/fsnotify/fsnotify"
)

// Watcher reports changes to one settings file. It watches the parent
// directory so editors that replace the file on save are still seen.
type Watcher struct {
	path string
	w    *fsnotify.Watcher
}

// NewWatcher starts watching path. The parent directory must exist.
func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}
	return &Watcher{path: filepath.Clean(path), w: w}, nil
}

// Run calls fn with freshly loaded settings each time the file is written,
// created or replaced, until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, fn func(Settings, error)) {
	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Rename
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&relevant == 0 {
				continue
			}
			fn(Load(w.path))
		case _, ok := <-w.w.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error { return w.w.Close() }

