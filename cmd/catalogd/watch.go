package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/davidpaquet/sekai-chart-browser/internal/logging"
)

// reloadDelay coalesces the burst of events an editor produces for one save
const reloadDelay = 200 * time.Millisecond

// Watcher reloads a Store when its file changes. The parent directory is
// watched so replacing the file by rename is seen too.
type Watcher struct {
	watcher *fsnotify.Watcher
	store   *Store
	name    string
	delay   time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher starts watching the store's file
func NewWatcher(store *Store) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	abs, err := filepath.Abs(store.path)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("resolving %s: %w", store.path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to add path to watcher: %w", err)
	}
	return &Watcher{watcher: fw, store: store, name: abs, delay: reloadDelay}, nil
}

// Run processes events until ctx is done
func (w *Watcher) Run(ctx context.Context) {
	defer func() {
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		w.watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn().Err(err).Msg("File watcher error")
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.name {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	logging.Debug().Str("op", event.Op.String()).Str("path", event.Name).Msg("Catalog file changed")

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, func() {
		// failures are logged and counted by the store
		_ = w.store.Reload()
	})
}
