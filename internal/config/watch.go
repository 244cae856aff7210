package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"hoodatlas/internal/debug"
)

// Watcher reloads the tuning file whenever it changes on disk.
// Reloads are published on Updates; a file that fails to parse is skipped
// and the previous tuning stays in effect.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	Updates chan Tuning
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher starts watching the tuning file's directory.
// Watching the directory rather than the file survives editors that
// replace the file on save.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    path,
		watcher: fw,
		Updates: make(chan Tuning, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	var lastEvent time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}

			// Editors fire several events per save; debounce them
			now := time.Now()
			if now.Sub(lastEvent) < 100*time.Millisecond {
				continue
			}
			lastEvent = now

			t, err := Load(w.path)
			if err != nil {
				debug.Log("tuning reload failed: %v", err)
				continue
			}

			debug.Log("tuning reloaded from %s", w.path)
			select {
			case w.Updates <- t:
			default:
				// Drop if the app hasn't consumed the previous update yet
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			debug.Log("tuning watcher error: %v", err)

		case <-w.closeCh:
			return
		}
	}
}
