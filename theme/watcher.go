package theme

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a Store whenever its overrides file changes on disk.
type Watcher struct {
	store    *Store
	debounce time.Duration
	onChange func(*Registry)
	log      *zap.SugaredLogger
}

// NewWatcher returns a watcher for the store's file. onChange runs after
// every successful reload.
func NewWatcher(store *Store, onChange func(*Registry), log *zap.SugaredLogger) *Watcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Watcher{
		store:    store,
		debounce: 200 * time.Millisecond,
		onChange: onChange,
		log:      log,
	}
}

// SetDebounce changes how long the watcher waits for writes to settle.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run blocks until ctx is done. The parent directory is watched so editors
// that replace the file by rename are still picked up.
func (w *Watcher) Run(ctx context.Context) error {
	path := w.store.Path()
	if path == "" {
		<-ctx.Done()
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve theme file: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w.log.Infow("watching theme file", "path", abs)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("theme watcher error", "error", err)
		case <-fire:
			fire = nil
			reg, err := w.store.Reload()
			if err != nil {
				continue
			}
			if w.onChange != nil {
				w.onChange(reg)
			}
		}
	}
}
