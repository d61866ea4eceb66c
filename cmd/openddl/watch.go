package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// watchFiles calls onChange with every path that was written or replaced,
// until ctx is done. Directories are watched rather than the files so that
// editors saving through a rename are noticed. Bursts of events are
// coalesced over watchDebounce.
func watchFiles(ctx context.Context, paths []string, logger *slog.Logger, onChange func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	files := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", path, err)
		}
		files[abs] = path
		if dir := filepath.Dir(abs); !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			dirs[dir] = true
		}
	}
	logger.Info("watching for changes", "files", len(files), "directories", len(dirs))

	pending := make(map[string]bool)
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			path, watched := files[filepath.Clean(event.Name)]
			if !watched || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("file event", "path", path, "op", event.Op.String())
			pending[path] = true
			fire = time.After(watchDebounce)

		case <-fire:
			fire = nil
			for _, path := range paths {
				if pending[path] {
					onChange(path)
				}
			}
			clear(pending)

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			logger.Error("file watcher error", "error", err)
		}
	}
}
