// Package watcher reloads the search index when the crawler rewrites the
// index file on disk.
package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceDelay coalesces the burst of write events a single index rewrite
// produces into one reload.
const debounceDelay = 500 * time.Millisecond

// IndexWatcher watches the directory containing the index file and invokes
// onChange after writes settle. Watching the directory rather than the file
// survives the write-temp-then-rename pattern.
type IndexWatcher struct {
	indexPath string
	onChange  func() error
	logger    *zap.Logger

	fsw *fsnotify.Watcher
}

// New creates an IndexWatcher for indexPath.
func New(indexPath string, onChange func() error, logger *zap.Logger) (*IndexWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(indexPath)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &IndexWatcher{
		indexPath: indexPath,
		onChange:  onChange,
		logger:    logger,
		fsw:       fsw,
	}, nil
}

// Run processes events until ctx is cancelled.
func (w *IndexWatcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.indexPath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounceDelay)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			if err := w.onChange(); err != nil {
				w.logger.Warn("index reload failed", zap.Error(err))
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}
