package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups the bursts of writes a single commit produces.
const DefaultDebounce = 200 * time.Millisecond

type watchConfig struct {
	debounce time.Duration
	logger   *slog.Logger
}

// WatchOption configures Watch.
type WatchOption func(*watchConfig)

// WithDebounce sets how long the file must stay quiet before notify runs.
func WithDebounce(d time.Duration) WatchOption {
	return func(c *watchConfig) {
		c.debounce = d
	}
}

// WithWatchLogger sets the logger for the watcher.
func WithWatchLogger(logger *slog.Logger) WatchOption {
	return func(c *watchConfig) {
		c.logger = logger
	}
}

// Watch calls notify whenever the database file at path, or one of its SQLite
// sidecar files (-wal, -journal), changes. The directory is watched rather than
// the file so replacements are seen too.
//
// The returned channel is closed once the watcher has stopped, after ctx is done.
func Watch(ctx context.Context, path string, notify func(), opts ...WatchOption) (<-chan struct{}, error) {
	cfg := watchConfig{debounce: DefaultDebounce, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	done := make(chan struct{})
	base := filepath.Base(path)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(done)
		defer watcher.Close()
		defer func() {
			if recovered := recover(); recovered != nil {
				if cfg.logger.Enabled(ctx, slog.LevelDebug) {
					cfg.logger.Error("watcher panic", "error", recovered, "stack", string(debug.Stack()))
				} else {
					cfg.logger.Error("watcher panic", "error", recovered)
				}
			}
		}()
		return loop(ctx, watcher, base, cfg, notify)
	}, lifecycle.WithErrorHandler(func(err error) {
		cfg.logger.Error("watcher stopped", "error", err)
	}))

	return done, nil
}

func loop(ctx context.Context, watcher *fsnotify.Watcher, base string, cfg watchConfig, notify func()) error {
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

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if !relevant(event, base) {
				continue
			}
			cfg.logger.Debug("database changed", "name", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(cfg.debounce)
			} else {
				timer.Reset(cfg.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			notify()

		case err, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			cfg.logger.Error("fsnotify error", "error", err)
		}
	}
}

func relevant(event fsnotify.Event, base string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	if name == base {
		return true
	}
	suffix, ok := strings.CutPrefix(name, base)
	return ok && (suffix == "-wal" || suffix == "-journal")
}
