// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/session"
	"github.com/jeranaias/bottrainer-tui/internal/ui/components"
	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	backend := session.NewFileBackend(filepath.Join(t.TempDir(), "session.json"))
	return session.NewStore(backend)
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	return NewApp(styles.NewTheme(), newTestClient(t), newTestStore(t), nil, "test")
}

// signIn authenticates the app's store directly, as a completed login
// would.
func signIn(t *testing.T, a *App, admin bool) {
	t.Helper()
	user := session.User{Email: "ana@example.com", Username: "ana", IsAdmin: admin}
	if err := a.store.Login("test-token", user); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
}

// step feeds one message through the root model and returns the App.
func step(t *testing.T, a *App, msg tea.Msg) (*App, tea.Cmd) {
	t.Helper()
	model, cmd := a.Update(msg)
	app, ok := model.(*App)
	if !ok {
		t.Fatalf("Update() returned %T, want *App", model)
	}
	return app, cmd
}

// =============================================================================
// ROUTE GUARD TESTS
// =============================================================================

func TestWelcomeRoutesUnauthenticatedToLogin(t *testing.T) {
	a := newTestApp(t)

	a, _ = step(t, a, enterKey())

	if a.screen != ScreenLogin {
		t.Errorf("screen = %d, want ScreenLogin", a.screen)
	}
}

func TestWelcomeRoutesAuthenticatedToDashboard(t *testing.T) {
	a := newTestApp(t)
	signIn(t, a, false)

	a, _ = step(t, a, enterKey())

	if a.screen != ScreenDashboard {
		t.Errorf("screen = %d, want ScreenDashboard", a.screen)
	}
}

func TestAdminGuardBlocksRegularUser(t *testing.T) {
	a := newTestApp(t)
	signIn(t, a, false)
	a.screen = ScreenDashboard

	a, _ = step(t, a, tea.KeyMsg{Type: tea.KeyCtrlA})

	if a.screen != ScreenDashboard {
		t.Errorf("screen = %d, want ScreenDashboard", a.screen)
	}
	if !a.toasts.HasToasts() {
		t.Error("blocked admin access must surface a toast")
	}
}

func TestAdminGuardAdmitsAdmin(t *testing.T) {
	a := newTestApp(t)
	signIn(t, a, true)
	a.screen = ScreenDashboard

	a, _ = step(t, a, tea.KeyMsg{Type: tea.KeyCtrlA})

	if a.screen != ScreenAdmin {
		t.Errorf("screen = %d, want ScreenAdmin", a.screen)
	}
}

func TestAdminGuardRedirectsLoggedOutUser(t *testing.T) {
	a := newTestApp(t)
	a.screen = ScreenDashboard

	a, _ = step(t, a, tea.KeyMsg{Type: tea.KeyCtrlA})

	if a.screen != ScreenLogin {
		t.Errorf("screen = %d, want ScreenLogin", a.screen)
	}
}

func TestEscLeavesAdminForDashboard(t *testing.T) {
	a := newTestApp(t)
	signIn(t, a, true)
	a.screen = ScreenAdmin

	a, _ = step(t, a, tea.KeyMsg{Type: tea.KeyEsc})

	if a.screen != ScreenDashboard {
		t.Errorf("screen = %d, want ScreenDashboard", a.screen)
	}
}

func TestHelpReturnsToPreviousScreen(t *testing.T) {
	a := newTestApp(t)
	signIn(t, a, false)
	a.screen = ScreenDashboard

	a, _ = step(t, a, tea.KeyMsg{Type: tea.KeyF1})
	if a.screen != ScreenHelp {
		t.Fatalf("screen = %d, want ScreenHelp", a.screen)
	}

	a, _ = step(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.screen != ScreenDashboard {
		t.Errorf("screen = %d, want ScreenDashboard after leaving help", a.screen)
	}
}

// =============================================================================
// SESSION LIFECYCLE TESTS
// =============================================================================

func TestLoginResultEntersDashboard(t *testing.T) {
	a := newTestApp(t)
	a.screen = ScreenLogin

	a, cmd := step(t, a, LoginResultMsg{
		Email: "ana@example.com",
		Resp:  &api.LoginResponse{AccessToken: "tok", Username: "ana"},
	})

	if a.screen != ScreenDashboard {
		t.Errorf("screen = %d, want ScreenDashboard", a.screen)
	}
	if !a.store.IsAuthenticated() {
		t.Error("successful login must persist the session")
	}
	if cmd == nil {
		t.Error("entering the dashboard must kick off its loads")
	}
}

func TestLoginResultErrorStaysOnLogin(t *testing.T) {
	a := newTestApp(t)
	a.screen = ScreenLogin

	a, _ = step(t, a, LoginResultMsg{Err: api.ErrSessionExpired})

	if a.screen != ScreenLogin {
		t.Errorf("screen = %d, want ScreenLogin", a.screen)
	}
	if a.store.IsAuthenticated() {
		t.Error("failed login must not authenticate")
	}
}

func TestSessionExpiryShowsOverlayOnce(t *testing.T) {
	a := newTestApp(t)
	signIn(t, a, false)
	a.screen = ScreenDashboard

	a, _ = step(t, a, SessionExpiredMsg{})

	if !a.overlay.IsVisible() {
		t.Fatal("expiry must raise the overlay")
	}
	if a.store.IsAuthenticated() {
		t.Error("expiry must clear the session")
	}

	// A second 401 while already notified must not re-raise.
	a.overlay.Hide()
	a, _ = step(t, a, UnauthorizedMsg{})
	if a.overlay.IsVisible() {
		t.Error("expiry notice must only be shown once per login")
	}
}

func TestExpiredAckReturnsToLogin(t *testing.T) {
	a := newTestApp(t)
	signIn(t, a, false)
	a.screen = ScreenDashboard
	a, _ = step(t, a, SessionExpiredMsg{})

	a, _ = step(t, a, components.SessionExpiredAckMsg{})

	if a.overlay.IsVisible() {
		t.Error("ack must hide the overlay")
	}
	if a.screen != ScreenLogin {
		t.Errorf("screen = %d, want ScreenLogin", a.screen)
	}
}

func TestLogoutReturnsToLogin(t *testing.T) {
	a := newTestApp(t)
	signIn(t, a, false)
	a.screen = ScreenDashboard

	a, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyCtrlO})
	if cmd == nil {
		t.Fatal("logout must emit a message command")
	}
	if a.store.IsAuthenticated() {
		t.Error("logout must clear the session")
	}

	a, _ = step(t, a, LoggedOutMsg{})
	if a.screen != ScreenLogin {
		t.Errorf("screen = %d, want ScreenLogin", a.screen)
	}
}

func TestAdminProbePromotesSession(t *testing.T) {
	a := newTestApp(t)
	signIn(t, a, false)
	a.screen = ScreenDashboard

	a, _ = step(t, a, AdminProbeMsg{IsAdmin: true})

	if !a.store.IsAdmin() {
		t.Error("probe result must mark the session as admin")
	}
}

func TestOverlaySwallowsScreenInput(t *testing.T) {
	a := newTestApp(t)
	signIn(t, a, false)
	a.screen = ScreenDashboard
	a, _ = step(t, a, SessionExpiredMsg{})

	// Tab would normally cycle dashboard tabs; with the overlay up it
	// must not reach the screen.
	before := a.dashboard.activeTab
	a, _ = step(t, a, tea.KeyMsg{Type: tea.KeyTab})
	if a.dashboard.activeTab != before {
		t.Error("overlay must block input to the screen behind it")
	}
}
