// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"
	"time"
)

// =============================================================================
// WATCHDOG
// =============================================================================

// Watchdog periodically re-checks session validity in the background.
// When a check finds the session expired, the onExpired callback fires
// exactly once for that session; the store's own logout makes every
// later check pass vacuously, so no second notification is possible.
type Watchdog struct {
	store     *Store
	onExpired func()

	interval time.Duration
	ticks    <-chan time.Time

	mu      sync.Mutex
	stop    chan struct{}
	stopped bool
}

// WatchdogOption configures a Watchdog.
type WatchdogOption func(*Watchdog)

// WithInterval overrides the check interval.
func WithInterval(d time.Duration) WatchdogOption {
	return func(w *Watchdog) { w.interval = d }
}

// WithTicks supplies an external tick channel instead of a timer.
// Used by tests to drive checks deterministically.
func WithTicks(ch <-chan time.Time) WatchdogOption {
	return func(w *Watchdog) { w.ticks = ch }
}

// NewWatchdog creates a watchdog for the given store. onExpired is
// invoked from the watchdog goroutine when a check terminates the
// session.
func NewWatchdog(store *Store, onExpired func(), opts ...WatchdogOption) *Watchdog {
	w := &Watchdog{
		store:     store,
		onExpired: onExpired,
		interval:  WatchdogInterval,
		stop:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start launches the background check loop. The first check happens
// after one full interval, not immediately.
func (w *Watchdog) Start() {
	ticks := w.ticks
	var ticker *time.Ticker
	if ticks == nil {
		ticker = time.NewTicker(w.interval)
		ticks = ticker.C
	}

	go func() {
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-w.stop:
				return
			case <-ticks:
				w.check()
			}
		}
	}()
}

// check runs one validity check and fires the expiry callback when
// the session was just terminated.
func (w *Watchdog) check() {
	if w.store.CheckSession() {
		return
	}
	if w.onExpired != nil {
		w.onExpired()
	}
}

// Stop terminates the check loop. Safe to call more than once.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.stopped = true
	close(w.stop)
}
