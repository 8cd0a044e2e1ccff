// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks the authenticated user and mirrors session
// state to a durable backend, so other components can read it directly
// and a login survives into later invocations.
package session

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jeranaias/bottrainer-tui/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// TTL is the maximum session lifetime. Sessions older than this are
	// terminated on the next check regardless of activity.
	TTL = 12 * time.Hour

	// WatchdogInterval is how often the background watchdog re-checks
	// session validity.
	WatchdogInterval = 60 * time.Second
)

// ErrEmptyToken is returned by Login when the server handed back a
// blank access token. The session is left untouched.
var ErrEmptyToken = errors.New("session: empty access token")

// =============================================================================
// TYPES
// =============================================================================

// User holds the identity fields returned by the login endpoint.
type User struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// UserPatch is a partial update to the stored user. Nil fields are
// left unchanged.
type UserPatch struct {
	Email    *string
	Username *string
	IsAdmin  *bool
}

// state is the persisted session envelope. LoginTimestamp is
// milliseconds since the Unix epoch.
type state struct {
	Token           string `json:"token"`
	User            User   `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	LoginTimestamp  int64  `json:"loginTimestamp"`
}

// Store is the single source of truth for session state in memory.
// Every mutation is mirrored to the backend so other parts of the
// process (notably the API client, which reads the token straight
// from disk) observe the same session.
type Store struct {
	mu      sync.Mutex
	backend Backend
	now     func() time.Time
	st      state

	logf func(format string, args ...any)
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger overrides the event logger. Used by tests.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(s *Store) { s.logf = logf }
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

// NewStore creates a session store backed by the given backend and
// hydrates any previously persisted state. A corrupt or unreadable
// snapshot falls back to a clean logged-out session.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		now:     time.Now,
		logf:    log.Printf,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hydrate()
	return s
}

// hydrate restores session state from the backend.
func (s *Store) hydrate() {
	raw, err := s.backend.Load()
	if err != nil || len(raw) == 0 {
		return
	}

	var st state
	if err := json.Unmarshal(raw, &st); err != nil {
		s.logf("session: discarding corrupt snapshot: %v", err)
		_ = s.backend.Clear()
		return
	}

	// A snapshot claiming authentication needs both a token and a
	// login timestamp; without the timestamp the TTL has no anchor.
	if st.IsAuthenticated && (st.Token == "" || st.LoginTimestamp == 0) {
		_ = s.backend.Clear()
		return
	}

	s.st = st
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Login records a freshly authenticated session. An empty token is
// rejected with ErrEmptyToken and the current state is preserved.
func (s *Store) Login(token string, user User) error {
	if token == "" {
		s.logf("session: login rejected, missing access token for %q", user.Username)
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.st = state{
		Token:           token,
		User:            user,
		IsAuthenticated: true,
		LoginTimestamp:  s.now().UnixMilli(),
	}
	s.persistLocked()
	s.logf("session: login user=%q admin=%v token=%s", user.Username, user.IsAdmin, util.Fingerprint(token))
	return nil
}

// Logout clears all session state. Safe to call when already logged
// out.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoutLocked()
}

func (s *Store) logoutLocked() {
	wasAuthenticated := s.st.IsAuthenticated
	s.st = state{}
	if err := s.backend.Clear(); err != nil {
		s.logf("session: clear failed: %v", err)
	}
	if wasAuthenticated {
		s.logf("session: logged out")
	}
}

// CheckSession reports whether the session is still usable. A session
// past its TTL is logged out as a side effect and false is returned.
// An unauthenticated session, or one with no login timestamp to
// measure from, trivially passes.
func (s *Store) CheckSession() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.st.IsAuthenticated || s.st.LoginTimestamp == 0 {
		return true
	}

	loginAt := time.UnixMilli(s.st.LoginTimestamp)
	if s.now().Sub(loginAt) >= TTL {
		s.logf("session: expired after %s, logging out", TTL)
		s.logoutLocked()
		return false
	}
	return true
}

// UpdateUser applies a partial update to the stored user and persists
// the result. Fields not set in the patch keep their current values.
// No-op when logged out.
func (s *Store) UpdateUser(patch UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.st.IsAuthenticated {
		return
	}
	if patch.Email != nil {
		s.st.User.Email = *patch.Email
	}
	if patch.Username != nil {
		s.st.User.Username = *patch.Username
	}
	if patch.IsAdmin != nil {
		s.st.User.IsAdmin = *patch.IsAdmin
	}
	s.persistLocked()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Token returns the current access token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Token
}

// User returns a copy of the current user.
func (s *Store) User() User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.User
}

// IsAuthenticated reports whether a user is logged in.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.IsAuthenticated
}

// IsAdmin reports whether the logged-in user has admin privileges.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.IsAuthenticated && s.st.User.IsAdmin
}

// LoginTime returns when the session started. Zero when logged out.
func (s *Store) LoginTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.LoginTimestamp == 0 {
		return time.Time{}
	}
	return time.UnixMilli(s.st.LoginTimestamp)
}

// Remaining returns time left before the session hits its TTL. Zero
// when logged out or already past the limit.
func (s *Store) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.st.IsAuthenticated {
		return 0
	}
	remaining := TTL - s.now().Sub(time.UnixMilli(s.st.LoginTimestamp))
	if remaining < 0 {
		return 0
	}
	return remaining
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// persistLocked writes the current state to the backend. Caller holds
// the lock.
func (s *Store) persistLocked() {
	raw, err := json.Marshal(s.st)
	if err != nil {
		s.logf("session: marshal failed: %v", err)
		return
	}
	if err := s.backend.Save(raw); err != nil {
		s.logf("session: save failed: %v", err)
	}
}
