// FILE: lixenwraith/confchain/preferences/watch.go
package preferences

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"
)

// EventKind classifies watch notifications
type EventKind string

const (
	EventChanged     EventKind = "changed"
	EventDeleted     EventKind = "file_deleted"
	EventPermissions EventKind = "permissions_changed"
	EventError       EventKind = "reload_error"
)

// Event reports a preferences file change
type Event struct {
	Kind EventKind
	// ID of the changed preference, set for EventChanged
	ID  string
	Err error
}

// WatchOptions configures file watching behavior
type WatchOptions struct {
	// PollInterval for file stat checks (minimum 100ms)
	PollInterval time.Duration

	// Debounce duration to avoid rapid reloads
	Debounce time.Duration

	// VerifyPermissions refuses to reload after group/other permission changes
	VerifyPermissions bool
}

// DefaultWatchOptions returns sensible defaults for file watching
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		PollInterval:      DefaultPollInterval,
		Debounce:          DefaultDebounce,
		VerifyPermissions: true,
	}
}

// fileWatcher tracks the observed state of a watched file
type fileWatcher struct {
	registry *Registry
	path     string
	opts     WatchOptions
	events   chan Event

	lastModTime time.Time
	lastSize    int64
	lastMode    os.FileMode
	deleted     bool
}

// WatchFile loads path and reloads it whenever it changes until ctx is done.
// Changed preferences notify their listeners and are reported on the returned
// channel, which is closed when watching stops. Events must be consumed; the
// watcher waits for the receiver.
func (r *Registry) WatchFile(ctx context.Context, path string, opts WatchOptions) (<-chan Event, error) {
	if opts.PollInterval < MinPollInterval {
		opts.PollInterval = MinPollInterval
	}
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}

	if _, err := r.Load(path); err != nil {
		return nil, err
	}

	w := &fileWatcher{
		registry: r,
		path:     path,
		opts:     opts,
		events:   make(chan Event, 16),
	}
	if info, err := os.Stat(path); err == nil {
		w.lastModTime = info.ModTime()
		w.lastSize = info.Size()
		w.lastMode = info.Mode()
	}

	go w.watchLoop(ctx)
	return w.events, nil
}

// watchLoop is the main file watching loop
func (w *fileWatcher) watchLoop(ctx context.Context) {
	defer close(w.events)

	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	var debounce *time.Timer
	var reload <-chan time.Time
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if !w.check(ctx) {
				continue
			}
			// Debounce rapid changes
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.NewTimer(w.opts.Debounce)
			reload = debounce.C

		case <-reload:
			reload = nil
			w.reload(ctx)
		}
	}
}

// check stats the file and reports whether a reload is due
func (w *fileWatcher) check(ctx context.Context) bool {
	info, err := os.Stat(w.path)
	if err != nil {
		if os.IsNotExist(err) && !w.deleted {
			w.deleted = true
			w.notify(ctx, Event{Kind: EventDeleted})
		}
		return false
	}

	if w.deleted {
		w.deleted = false
		w.lastModTime, w.lastSize, w.lastMode = info.ModTime(), info.Size(), info.Mode()
		return true
	}

	// SECURITY: do not reload a file whose group/other permissions changed
	if w.opts.VerifyPermissions && w.lastMode != 0 && (info.Mode()&0077) != (w.lastMode&0077) {
		w.lastMode = info.Mode()
		w.registry.logger.Warn("Preferences file permissions changed, reload skipped",
			zap.String("path", w.path),
			zap.Stringer("mode", info.Mode()),
		)
		w.notify(ctx, Event{Kind: EventPermissions})
		return false
	}

	if info.ModTime().Equal(w.lastModTime) && info.Size() == w.lastSize {
		return false
	}

	w.lastModTime, w.lastSize, w.lastMode = info.ModTime(), info.Size(), info.Mode()
	return true
}

// reload applies the file and reports the changed preferences
func (w *fileWatcher) reload(ctx context.Context) {
	changed, err := w.registry.Load(w.path)
	for _, id := range changed {
		w.notify(ctx, Event{Kind: EventChanged, ID: id})
	}
	if err != nil {
		w.registry.logger.Warn("Preferences reload failed", zap.String("path", w.path), zap.Error(err))
		w.notify(ctx, Event{Kind: EventError, Err: err})
		return
	}
	w.registry.logger.Debug("Preferences reloaded", zap.String("path", w.path), zap.Int("changed", len(changed)))
}

func (w *fileWatcher) notify(ctx context.Context, ev Event) {
	select {
	case w.events <- ev:
	case <-ctx.Done():
	}
}
