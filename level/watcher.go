package level

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces the burst of events an editor save produces
const DefaultDebounce = 150 * time.Millisecond

// LoadFunc receives each successfully reloaded level, on the watcher goroutine
type LoadFunc func(Level)

// Watcher reloads a level file when it changes on disk
// The parent directory is watched so editors that replace the file are seen
type Watcher struct {
	path     string
	capacity int
	debounce time.Duration
	onLoad   LoadFunc
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
}

// NewWatcher starts watching path; Run delivers reloads until its context ends
func NewWatcher(path string, defaultCapacity int, onLoad LoadFunc, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("level watcher: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("level watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("level watcher: watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		capacity: defaultCapacity,
		debounce: DefaultDebounce,
		onLoad:   onLoad,
		logger:   logger.With(zap.String("level_file", abs)),
		watcher:  fw,
	}, nil
}

// SetDebounce overrides the quiet period before a reload; call before Run
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run blocks until ctx is done, then releases the watch
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
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

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("level watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	lvl, err := LoadFile(w.path, w.capacity)
	if err != nil {
		w.logger.Warn("level reload rejected", zap.Error(err))
		return
	}
	w.logger.Info("level reloaded", zap.String("name", lvl.Name), zap.Int("containers", len(lvl.Containers)))
	if w.onLoad != nil {
		w.onLoad(lvl)
	}
}
