package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const (
	minTimeBetweenReloads = 500 * time.Millisecond
	delayBeforeReload     = 50 * time.Millisecond
)

// Watch reloads the file at path whenever it is written and passes each
// successfully parsed configuration to onChange. Parse failures are logged
// and the previous configuration stays in effect. Watch blocks until ctx
// is cancelled.
//
// The parent directory is watched rather than the file itself so that
// editors replacing the file through a rename are still noticed.
func Watch(ctx context.Context, path string, logger *log.Logger, onChange func(*Config)) error {
	if logger == nil {
		logger = log.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logger.Warn("failed to close config watcher", "error", err)
		}
	}()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug("watching config for changes", "path", abs)

	var lastReload time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// many editors write a file twice in quick succession
			now := time.Now()
			if now.Sub(lastReload) < minTimeBetweenReloads {
				continue
			}
			lastReload = now

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delayBeforeReload):
			}

			cfg, err := Load(abs)
			if err != nil {
				logger.Warn("failed to reload config", "path", abs, "error", err)
				continue
			}
			logger.Info("reloaded config", "path", abs, "sliders", len(cfg.Widget.Sliders))
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", "error", err)
		}
	}
}
