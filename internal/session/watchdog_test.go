// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestWatchdogExpiresOnce(t *testing.T) {
	store, advance := newTestStore(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	if err := store.Login("tok-1", User{Username: "ana"}); err != nil {
		t.Fatal(err)
	}

	var fired atomic.Int32
	ticks := make(chan time.Time)

	w := NewWatchdog(store, func() { fired.Add(1) }, WithTicks(ticks))
	w.Start()
	defer w.Stop()

	// A send on the unbuffered channel returns only after the watchdog
	// received it; the short sleep lets the check itself finish.
	notify := func() {
		ticks <- time.Now()
		time.Sleep(10 * time.Millisecond)
	}

	// Session still valid.
	notify()
	if got := fired.Load(); got != 0 {
		t.Fatalf("callback fired %d times before expiry", got)
	}

	// Past the TTL: exactly one notification, then silence.
	advance(TTL)
	notify()
	notify()
	notify()
	if got := fired.Load(); got != 1 {
		t.Fatalf("callback fired %d times, want 1", got)
	}
	if store.IsAuthenticated() {
		t.Error("store still authenticated after watchdog expiry")
	}
}

func TestWatchdogNoCallbackWhenLoggedOut(t *testing.T) {
	store, _ := newTestStore(t, time.Now())

	var fired atomic.Int32
	ticks := make(chan time.Time)
	w := NewWatchdog(store, func() { fired.Add(1) }, WithTicks(ticks))
	w.Start()
	defer w.Stop()

	ticks <- time.Now()
	time.Sleep(10 * time.Millisecond)

	if got := fired.Load(); got != 0 {
		t.Errorf("callback fired %d times with no session", got)
	}
}

func TestWatchdogStopIdempotent(t *testing.T) {
	store, _ := newTestStore(t, time.Now())
	w := NewWatchdog(store, nil, WithTicks(make(chan time.Time)))
	w.Start()
	w.Stop()
	w.Stop()
}
