package site

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/preethi-chalasani/portfolio/internal/content"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// Reloader watches a content override file and hands every document that
// parses to its callback. Documents that fail to parse are logged and skipped,
// so the last good page keeps being served.
type Reloader struct {
	path     string
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	debounce time.Duration
	onReload func(*content.Site)
}

// NewReloader watches path. The directory is watched rather than the file so
// that editors that save by rename keep triggering reloads.
func NewReloader(path string, onReload func(*content.Site), logger *zap.Logger) (*Reloader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve content path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Reloader{
		path:     abs,
		watcher:  w,
		logger:   logger,
		debounce: DefaultDebounce,
		onReload: onReload,
	}, nil
}

// Run delivers reloads until ctx is done, then closes the watcher.
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != r.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(r.debounce)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("content watcher error", zap.Error(err))
		case <-timer.C:
			r.reload()
		}
	}
}

func (r *Reloader) reload() {
	s, err := content.Load(r.path)
	if err != nil {
		r.logger.Warn("content reload failed", zap.String("path", r.path), zap.Error(err))
		return
	}
	r.logger.Info("content reloaded", zap.String("path", r.path))
	r.onReload(s)
}
