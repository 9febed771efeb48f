// Package watch detects mutations of the shared store without a push
// channel. Writers bump a marker key on every mutation; a Watcher
// combines storage change events (when the store can deliver them) with
// a timer that polls the marker, because change events are never fired
// for writes made through the watcher's own store handle.
package watch

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shreepawar22/quickserve/internal/storage"
)

// DefaultPollInterval matches the one-second fallback timer the
// dashboard has always used.
const DefaultPollInterval = time.Second

// Watcher observes one marker key. Notification is at-least-once and
// best-effort: rapid successive writes may collapse into a single
// callback, and the callback is expected to re-read full state rather
// than apply deltas, so a missed notification heals on the next tick.
type Watcher struct {
	store    storage.Store
	key      string
	interval time.Duration
	onChange func()

	last string
}

// New creates a watcher for the marker key. onChange runs on the
// watcher's goroutine whenever the marker differs from the last
// observed value. A non-positive interval falls back to
// DefaultPollInterval.
func New(store storage.Store, key string, interval time.Duration, onChange func()) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{
		store:    store,
		key:      key,
		interval: interval,
		onChange: onChange,
	}
}

// Run blocks until ctx is cancelled, invoking the callback on marker
// changes. The poll timer and any event subscription are released on
// return.
func (w *Watcher) Run(ctx context.Context) {
	// The marker as of startup is the baseline; only later mutations
	// trigger the callback.
	w.last = w.readMarker()

	var events <-chan string
	if notifier, ok := w.store.(storage.Notifier); ok {
		ch, cancel := notifier.Subscribe()
		defer cancel()
		events = ch
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case key, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if key == w.key {
				w.check()
			}
		case <-ticker.C:
			w.check()
		}
	}
}

func (w *Watcher) check() {
	marker := w.readMarker()
	if marker == w.last {
		return
	}
	w.last = marker
	w.onChange()
}

func (w *Watcher) readMarker() string {
	var marker string
	err := w.store.Get(w.key, &marker)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return ""
	}
	if err != nil {
		log.Error().Err(err).Str("key", w.key).Msg("failed to read change marker")
		return w.last
	}
	return marker
}
