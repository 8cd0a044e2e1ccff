// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// newTestClient builds a client pointing at a dead address. Tests
// never execute the returned commands, so nothing is dialed.
func newTestClient(t *testing.T) *api.Client {
	t.Helper()
	return api.NewClient("http://127.0.0.1:1",
		api.WithSessionPath(filepath.Join(t.TempDir(), "session.json")),
		api.WithRetries(0),
	)
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

// =============================================================================
// LOGIN VIEW TESTS
// =============================================================================

func TestLoginRejectsEmptyEmail(t *testing.T) {
	v := NewLogin(styles.NewTheme(), newTestClient(t))

	v, _ = v.Update(enterKey())

	if v.errMsg == "" {
		t.Error("submit with empty email must set an error")
	}
	if v.busy {
		t.Error("validation failure must not mark the form busy")
	}
}

func TestLoginRejectsMalformedEmail(t *testing.T) {
	v := NewLogin(styles.NewTheme(), newTestClient(t))
	v.email.SetValue("not-an-email")
	v.password.SetValue("hunter22")

	v, _ = v.Update(enterKey())

	if v.errMsg == "" {
		t.Error("submit with malformed email must set an error")
	}
}

func TestLoginRejectsEmptyPassword(t *testing.T) {
	v := NewLogin(styles.NewTheme(), newTestClient(t))
	v.email.SetValue("ana@example.com")

	v, _ = v.Update(enterKey())

	if v.errMsg == "" {
		t.Error("submit with empty password must set an error")
	}
	if v.focus != loginFieldPassword {
		t.Errorf("focus = %d, want password field", v.focus)
	}
}

func TestLoginSubmitIssuesRequest(t *testing.T) {
	v := NewLogin(styles.NewTheme(), newTestClient(t))
	v.email.SetValue("ana@example.com")
	v.password.SetValue("hunter22")

	v, cmd := v.Update(enterKey())

	if cmd == nil {
		t.Fatal("valid submit must return a command")
	}
	if !v.busy {
		t.Error("valid submit must mark the form busy")
	}
	if v.errMsg != "" {
		t.Errorf("errMsg = %q, want empty", v.errMsg)
	}
}

func TestLoginIgnoresKeysWhileBusy(t *testing.T) {
	v := NewLogin(styles.NewTheme(), newTestClient(t))
	v.email.SetValue("ana@example.com")
	v.password.SetValue("hunter22")
	v, _ = v.Update(enterKey())

	// A second enter while the request is in flight must be a no-op.
	v, cmd := v.Update(enterKey())
	if cmd != nil {
		t.Error("keys while busy must not issue commands")
	}
	if !v.busy {
		t.Error("form must stay busy until the result arrives")
	}
}

func TestLoginFailureShowsError(t *testing.T) {
	v := NewLogin(styles.NewTheme(), newTestClient(t))
	v.email.SetValue("ana@example.com")
	v.password.SetValue("wrong")
	v, _ = v.Update(enterKey())

	v, _ = v.Update(LoginResultMsg{Err: errors.New("invalid credentials")})

	if !strings.Contains(v.errMsg, "invalid credentials") {
		t.Errorf("errMsg = %q, want the API error surfaced", v.errMsg)
	}
	if v.busy {
		t.Error("result must clear the busy state")
	}
}

func TestLoginSuccessKeepsNavigationToApp(t *testing.T) {
	v := NewLogin(styles.NewTheme(), newTestClient(t))
	v.email.SetValue("ana@example.com")
	v.password.SetValue("hunter22")
	v, _ = v.Update(enterKey())

	v, cmd := v.Update(LoginResultMsg{
		Email: "ana@example.com",
		Resp:  &api.LoginResponse{AccessToken: "tok", Username: "ana"},
	})

	if cmd != nil {
		t.Error("login view must not navigate on its own")
	}
	if v.busy {
		t.Error("result must clear the busy state")
	}
	if v.errMsg != "" {
		t.Errorf("errMsg = %q, want empty on success", v.errMsg)
	}
}

func TestLoginResetClearsState(t *testing.T) {
	v := NewLogin(styles.NewTheme(), newTestClient(t))
	v.email.SetValue("ana@example.com")
	v.password.SetValue("hunter22")
	v.errMsg = "stale"
	v.busy = true

	v.Reset()

	if v.email.Value() != "" || v.password.Value() != "" {
		t.Error("Reset() must clear both fields")
	}
	if v.errMsg != "" || v.busy {
		t.Error("Reset() must clear error and busy state")
	}
}
