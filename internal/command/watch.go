package command

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"draft/internal/config"
)

const debounceInterval = 125 * time.Millisecond

// Watch re-tangles the inputs whenever one of them changes on disk, calling
// onResult with each run's outcome. Events are debounced so a burst of
// writes triggers a single run. Watch blocks until ctx is canceled.
//
// The containing directories are watched rather than the files themselves:
// editors often replace a file on save, which would otherwise drop the
// watch.
func Watch(ctx context.Context, paths []string, section string, cfg config.Config, onResult func([]Result, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("adding %s to watch: %w", dir, err)
		}
		slog.Debug("watching", "dir", dir)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("file watch error", "err", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceInterval)
				fire = timer.C
			} else {
				timer.Reset(debounceInterval)
			}
		case <-fire:
			timer = nil
			fire = nil
			results, err := Tangle(paths, section, cfg)
			onResult(results, err)
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		}
	}
}
