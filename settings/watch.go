package settings

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	asklet "github.com/Paranoid-AF/asklet"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Store whenever its config file changes on disk.
type Watcher struct {
	store   *Store
	path    string
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching the directory of path. The directory is
// watched rather than the file so editors that replace the file by rename
// are picked up too.
func NewWatcher(store *Store, path string) (*Watcher, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	return &Watcher{store: store, path: filepath.Clean(path), watcher: w}, nil
}

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := asklet.LoadConfigFile(w.path)
	if err != nil {
		// Usually a partially written file; the next write event retries.
		slog.Warn("failed to reload config, keeping current settings", "path", w.path, "error", err)
		return
	}
	w.store.Replace(cfg)
	slog.Info("config reloaded", "path", w.path)
}
