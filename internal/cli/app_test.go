// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app_test.go - Session wiring shared by the CLI command handlers.
package cli

import (
	"path/filepath"
	"testing"

	"github.com/jeranaias/bottrainer-tui/internal/config"
	"github.com/jeranaias/bottrainer-tui/internal/session"
)

// =============================================================================
// SESSION WIRING TESTS
// =============================================================================

// useConfig installs cfg as the global config for the duration of the
// test.
func useConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	config.SetGlobal(cfg)
	t.Cleanup(config.ResetGlobalForTesting)
}

func TestSessionPathStableAcrossInvocations(t *testing.T) {
	useConfig(t, config.Default())

	// Each CLI command is its own process; they only share a login if
	// every invocation resolves the same session file.
	first := SessionPath()
	if first != SessionPath() {
		t.Fatalf("SessionPath() not deterministic: %q vs %q", first, SessionPath())
	}
	if got := session.DefaultPath(); first != got {
		t.Errorf("SessionPath() = %q, want default %q", first, got)
	}
}

func TestSessionPathHonorsConfigOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Session.FilePath = filepath.Join(t.TempDir(), "override.json")
	useConfig(t, cfg)

	if got := SessionPath(); got != cfg.Session.FilePath {
		t.Errorf("SessionPath() = %q, want override %q", got, cfg.Session.FilePath)
	}
}

func TestLoginSessionSeenByNextCommand(t *testing.T) {
	cfg := config.Default()
	cfg.Session.FilePath = filepath.Join(t.TempDir(), "session.json")
	useConfig(t, cfg)

	// First command logs in and persists the session, like HandleLogin.
	first := OpenSessionStore()
	if err := first.Login("tok-cli", session.User{Email: "ana@example.com", Username: "ana"}); err != nil {
		t.Fatal(err)
	}

	// The next command opens its own store, like HandleStatus, and
	// must find the authenticated session.
	second := OpenSessionStore()
	if !second.IsAuthenticated() {
		t.Fatal("second command did not see the persisted login")
	}
	if got := second.Token(); got != "tok-cli" {
		t.Errorf("second command Token() = %q, want %q", got, "tok-cli")
	}

	// The client adapter reads the same file directly.
	if got := session.ReadStoredToken(SessionPath()); got != "tok-cli" {
		t.Errorf("ReadStoredToken(SessionPath()) = %q, want %q", got, "tok-cli")
	}
}
