// Package watcher notices catalog database changes made by other processes,
// such as an import run while the server is up, and reports them so cached
// corpora can be dropped.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sourcy-labs/sourcy/internal/logger"
)

// DefaultDebounce coalesces the burst of writes one import produces.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls onChange after the watched database file settles.
type Watcher struct {
	dir      string
	base     string
	debounce time.Duration
	onChange func()

	fs        *fsnotify.Watcher
	closeOnce sync.Once
}

// New watches dbPath and its SQLite side files (-wal, -journal).
// The parent directory is watched because SQLite replaces side files.
func New(dbPath string, debounce time.Duration, onChange func()) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("watcher for %s: onChange is required", dbPath)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	dir := filepath.Dir(dbPath)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	return &Watcher{
		dir:      dir,
		base:     filepath.Base(dbPath),
		debounce: debounce,
		onChange: onChange,
		fs:       fsw,
	}, nil
}

// Run delivers change notifications until ctx is cancelled or the watcher
// is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	logger.Debug("Watching %s for catalog changes", filepath.Join(w.dir, w.base))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Catalog watcher error: %v", err)

		case <-fire:
			fire = nil
			logger.Info("Catalog database changed, dropping cached corpus")
			w.onChange()
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.fs.Close()
	})
	return err
}

// relevant reports whether event modifies the database or a side file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Base(event.Name)
	if name == w.base {
		return true
	}
	suffix, ok := strings.CutPrefix(name, w.base)
	return ok && (suffix == "-wal" || suffix == "-journal")
}
