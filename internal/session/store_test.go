// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// memBackend is an in-memory Backend for tests.
type memBackend struct {
	data []byte
}

func (b *memBackend) Load() ([]byte, error)     { return b.data, nil }
func (b *memBackend) Save(data []byte) error    { b.data = append([]byte(nil), data...); return nil }
func (b *memBackend) Clear() error              { b.data = nil; return nil }

// newTestStore builds a store on an in-memory backend with a
// controllable clock. The clock is safe for concurrent use.
func newTestStore(t *testing.T, start time.Time) (*Store, func(time.Duration)) {
	t.Helper()
	var mu sync.Mutex
	current := start
	now := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(d)
	}
	store := NewStore(&memBackend{},
		WithClock(now),
		WithLogger(func(string, ...any) {}),
	)
	return store, advance
}

func TestLoginSetsState(t *testing.T) {
	store, _ := newTestStore(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	user := User{Email: "ana@example.com", Username: "ana", IsAdmin: true}
	if err := store.Login("tok-123", user); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if !store.IsAuthenticated() {
		t.Error("IsAuthenticated() = false after login")
	}
	if got := store.Token(); got != "tok-123" {
		t.Errorf("Token() = %q, want %q", got, "tok-123")
	}
	if got := store.User(); got != user {
		t.Errorf("User() = %+v, want %+v", got, user)
	}
	if !store.IsAdmin() {
		t.Error("IsAdmin() = false for admin user")
	}
}

func TestLoginEmptyToken(t *testing.T) {
	store, _ := newTestStore(t, time.Now())

	err := store.Login("", User{Username: "ana"})
	if !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("Login(\"\") error = %v, want ErrEmptyToken", err)
	}
	if store.IsAuthenticated() {
		t.Error("rejected login must not authenticate")
	}
	if store.Token() != "" {
		t.Error("rejected login must not store a token")
	}
}

func TestLoginEmptyTokenPreservesExistingSession(t *testing.T) {
	store, _ := newTestStore(t, time.Now())

	if err := store.Login("tok-1", User{Username: "ana"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Login("", User{Username: "bob"}); !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("error = %v, want ErrEmptyToken", err)
	}

	if got := store.Token(); got != "tok-1" {
		t.Errorf("Token() = %q, original session was clobbered", got)
	}
	if got := store.User().Username; got != "ana" {
		t.Errorf("Username = %q, original session was clobbered", got)
	}
}

func TestCheckSessionBoundary(t *testing.T) {
	store, advance := newTestStore(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	if err := store.Login("tok-1", User{Username: "ana"}); err != nil {
		t.Fatal(err)
	}

	advance(TTL - time.Second)
	if !store.CheckSession() {
		t.Fatal("CheckSession() = false just before the TTL")
	}
	if !store.IsAuthenticated() {
		t.Fatal("session terminated before the TTL")
	}

	advance(time.Second)
	if store.CheckSession() {
		t.Fatal("CheckSession() = true at exactly the TTL")
	}
	if store.IsAuthenticated() {
		t.Error("expired session must be logged out")
	}
	if store.Token() != "" {
		t.Error("expired session must drop the token")
	}
}

func TestCheckSessionLoggedOut(t *testing.T) {
	store, _ := newTestStore(t, time.Now())

	if !store.CheckSession() {
		t.Error("CheckSession() = false with no session")
	}
}

func TestLogoutIdempotent(t *testing.T) {
	store, _ := newTestStore(t, time.Now())

	if err := store.Login("tok-1", User{Username: "ana"}); err != nil {
		t.Fatal(err)
	}
	store.Logout()
	store.Logout()

	if store.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after logout")
	}
	if !store.LoginTime().IsZero() {
		t.Error("LoginTime() not zero after logout")
	}
}

func TestUpdateUserPartialMerge(t *testing.T) {
	store, _ := newTestStore(t, time.Now())

	if err := store.Login("tok-1", User{Email: "ana@example.com", Username: "ana"}); err != nil {
		t.Fatal(err)
	}

	admin := true
	store.UpdateUser(UserPatch{IsAdmin: &admin})

	got := store.User()
	if got.Email != "ana@example.com" || got.Username != "ana" {
		t.Errorf("unset fields changed: %+v", got)
	}
	if !got.IsAdmin {
		t.Error("IsAdmin not applied")
	}
}

func TestUpdateUserLoggedOut(t *testing.T) {
	store, _ := newTestStore(t, time.Now())

	name := "ghost"
	store.UpdateUser(UserPatch{Username: &name})

	if got := store.User().Username; got != "" {
		t.Errorf("UpdateUser while logged out wrote %q", got)
	}
}

func TestRemaining(t *testing.T) {
	store, advance := newTestStore(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	if got := store.Remaining(); got != 0 {
		t.Errorf("Remaining() = %v with no session", got)
	}

	if err := store.Login("tok-1", User{Username: "ana"}); err != nil {
		t.Fatal(err)
	}
	advance(2 * time.Hour)

	if got, want := store.Remaining(), 10*time.Hour; got != want {
		t.Errorf("Remaining() = %v, want %v", got, want)
	}

	advance(11 * time.Hour)
	if got := store.Remaining(); got != 0 {
		t.Errorf("Remaining() = %v past the TTL, want 0", got)
	}
}

func TestHydrateRoundTrip(t *testing.T) {
	backend := &memBackend{}
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	first := NewStore(backend,
		WithClock(func() time.Time { return start }),
		WithLogger(func(string, ...any) {}),
	)
	if err := first.Login("tok-1", User{Email: "ana@example.com", Username: "ana", IsAdmin: true}); err != nil {
		t.Fatal(err)
	}

	second := NewStore(backend,
		WithClock(func() time.Time { return start.Add(time.Hour) }),
		WithLogger(func(string, ...any) {}),
	)
	if !second.IsAuthenticated() {
		t.Fatal("restored store not authenticated")
	}
	if got := second.Token(); got != "tok-1" {
		t.Errorf("restored Token() = %q", got)
	}
	if got := second.User().Username; got != "ana" {
		t.Errorf("restored Username = %q", got)
	}
	if got := second.LoginTime(); !got.Equal(start) {
		t.Errorf("restored LoginTime() = %v, want %v", got, start)
	}
}

func TestHydrateCorruptSnapshot(t *testing.T) {
	backend := &memBackend{data: []byte("{not json")}
	store := NewStore(backend, WithLogger(func(string, ...any) {}))

	if store.IsAuthenticated() {
		t.Error("corrupt snapshot produced an authenticated session")
	}
	if backend.data != nil {
		t.Error("corrupt snapshot not cleared from the backend")
	}
}

func TestHydrateAuthenticatedWithoutToken(t *testing.T) {
	backend := &memBackend{data: []byte(`{"token":"","isAuthenticated":true,"loginTimestamp":1}`)}
	store := NewStore(backend, WithLogger(func(string, ...any) {}))

	if store.IsAuthenticated() {
		t.Error("tokenless snapshot produced an authenticated session")
	}
}

func TestHydrateAuthenticatedWithoutTimestamp(t *testing.T) {
	backend := &memBackend{data: []byte(`{"token":"tok-x","isAuthenticated":true,"loginTimestamp":0}`)}
	store := NewStore(backend, WithLogger(func(string, ...any) {}))

	if store.IsAuthenticated() {
		t.Error("timestampless snapshot produced an authenticated session")
	}
	if backend.data != nil {
		t.Error("timestampless snapshot not cleared from the backend")
	}
	// The invalid snapshot must read as vacuously valid, not expired.
	if !store.CheckSession() {
		t.Error("CheckSession() = false for a logged-out session")
	}
}

func TestDefaultPathStableAcrossProcesses(t *testing.T) {
	// login and the commands that follow it run as separate processes;
	// they only share a session if every invocation resolves the same
	// file.
	first := DefaultPath()
	if first != DefaultPath() {
		t.Fatalf("DefaultPath() not deterministic: %q vs %q", first, DefaultPath())
	}
	if pid := strconv.Itoa(os.Getpid()); strings.Contains(first, pid) {
		t.Errorf("DefaultPath() = %q embeds the PID, sessions would not survive the process", first)
	}
	if got := filepath.Base(first); got != "session.json" {
		t.Errorf("DefaultPath() basename = %q, want %q", got, "session.json")
	}
}

func TestLoginVisibleToLaterInvocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	// First invocation logs in.
	first := NewStore(NewFileBackend(path), WithLogger(func(string, ...any) {}))
	if err := first.Login("tok-cli", User{Email: "ana@example.com", Username: "ana"}); err != nil {
		t.Fatal(err)
	}

	// A later invocation builds its own store over the same path and
	// must see the login.
	second := NewStore(NewFileBackend(path), WithLogger(func(string, ...any) {}))
	if !second.IsAuthenticated() {
		t.Fatal("second invocation did not hydrate the persisted session")
	}
	if got := second.Token(); got != "tok-cli" {
		t.Errorf("second invocation Token() = %q, want %q", got, "tok-cli")
	}
	if got := second.User().Username; got != "ana" {
		t.Errorf("second invocation User().Username = %q, want %q", got, "ana")
	}

	// Logout in the later invocation removes the shared file.
	second.Logout()
	if got := ReadStoredToken(path); got != "" {
		t.Errorf("ReadStoredToken() after logout = %q, want empty", got)
	}
}

func TestFileBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	backend := NewFileBackend(path)

	store := NewStore(backend, WithLogger(func(string, ...any) {}))
	if err := store.Login("tok-file", User{Username: "ana"}); err != nil {
		t.Fatal(err)
	}

	if got := ReadStoredToken(path); got != "tok-file" {
		t.Errorf("ReadStoredToken() = %q, want %q", got, "tok-file")
	}

	WipeStored(path)
	if got := ReadStoredToken(path); got != "" {
		t.Errorf("ReadStoredToken() after wipe = %q, want empty", got)
	}

	// The in-memory store still carries the token; the file and memory
	// are intentionally independent sources.
	if got := store.Token(); got != "tok-file" {
		t.Errorf("in-memory Token() = %q after file wipe", got)
	}
}

func TestFileBackendClearMissing(t *testing.T) {
	backend := NewFileBackend(filepath.Join(t.TempDir(), "absent.json"))
	if err := backend.Clear(); err != nil {
		t.Errorf("Clear() on missing file = %v", err)
	}
	data, err := backend.Load()
	if err != nil {
		t.Errorf("Load() on missing file = %v", err)
	}
	if data != nil {
		t.Errorf("Load() on missing file returned %q", data)
	}
}
