package shell

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/fsnotify/fsnotify"
)

// Changes reports backing files that were touched since the last call.
type Changes interface {
	Drain() []string
}

// Watcher collects fsnotify events for a fixed set of files. It watches the
// parent directories so that files replaced by rename are still seen.
// Events are only consumed by Drain, on the caller's goroutine.
type Watcher struct {
	fs    *fsnotify.Watcher
	files map[string]string // absolute path -> path as given
}

// NewWatcher starts watching paths.
func NewWatcher(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{fs: fw, files: make(map[string]string, len(paths))}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		w.files[abs] = p
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		slog.Debug("watching directory", "dir", dir)
	}
	return w, nil
}

// Drain returns the watched files with pending events, without blocking.
// Paths are returned as they were passed to NewWatcher.
func (w *Watcher) Drain() []string {
	touched := make(map[string]bool)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return sortedKeys(touched)
			}
			if p, watched := w.files[filepath.Clean(ev.Name)]; watched && ev.Op&^fsnotify.Chmod != 0 {
				touched[p] = true
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return sortedKeys(touched)
			}
			slog.Warn("file watcher error", "error", err)
		default:
			return sortedKeys(touched)
		}
	}
}

func (w *Watcher) Close() error {
	return w.fs.Close()
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
