// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Root model: screen routing, session guards, and chrome.
package views

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/history"
	"github.com/jeranaias/bottrainer-tui/internal/session"
	"github.com/jeranaias/bottrainer-tui/internal/ui/components"
	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// SCREENS
// =============================================================================

// Screen identifies one top-level view.
type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenLogin
	ScreenRegister
	ScreenForgot
	ScreenDashboard
	ScreenAdmin
	ScreenHelp
)

// expiryWarningThreshold is when the session overlay first warns.
const expiryWarningThreshold = 15 * time.Minute

// =============================================================================
// APP MODEL
// =============================================================================

// App is the root Bubble Tea model. It owns the screen stack, enforces
// the session guards, and renders the shared chrome around whichever
// screen is active.
type App struct {
	client *api.Client
	store  *session.Store
	hist   *history.Store
	theme  *styles.Theme

	screen     Screen
	prevScreen Screen

	welcome   components.Welcome
	login     *Login
	register  *Register
	forgot    *Forgot
	dashboard *Dashboard
	admin     *Admin
	help      *Help

	header    *components.Header
	statusBar *components.StatusBar
	toasts    *components.ToastManager
	overlay   components.SessionExpiryOverlay
	connErr   components.ErrorDisplay

	keys KeyMap

	// One warning and one expiry notice per login.
	warned  bool
	expired bool

	width  int
	height int
}

// NewApp wires the root model. hist may be nil when local history is
// disabled.
func NewApp(theme *styles.Theme, client *api.Client, store *session.Store, hist *history.Store, version string) *App {
	welcome := components.NewWelcome(theme)
	welcome.SetVersion(version)
	welcome.SetServer(client.BaseURL())

	header := components.NewHeader(theme)
	header.SetServer(client.BaseURL())

	app := &App{
		client:    client,
		store:     store,
		hist:      hist,
		theme:     theme,
		screen:    ScreenWelcome,
		welcome:   welcome,
		login:     NewLogin(theme, client),
		register:  NewRegister(theme, client),
		forgot:    NewForgot(theme, client),
		dashboard: NewDashboard(theme, client, store, hist),
		admin:     NewAdmin(theme, client),
		help:      NewHelp(theme),
		header:    header,
		statusBar: components.NewStatusBar(theme),
		toasts:    components.NewToastManager(),
		overlay:   components.NewSessionExpiryOverlay(),
		keys:      DefaultKeyMap(),
	}

	if store.CheckSession() {
		user := store.User()
		app.welcome.SetUsername(user.Username)
		app.statusBar.SetUser(user.Username, user.IsAdmin)
		app.statusBar.SetSessionRemaining(store.Remaining())
		app.header.SetAdmin(user.IsAdmin)
	}
	return app
}

// Init probes the backend and starts the periodic ticks.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		pingCmd(a.client),
		sessionTickCmd(),
		components.ToastTickCmd(),
	)
}

// Update routes messages to the chrome and the active screen.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if a.connErr.IsVisible() {
			var cmd tea.Cmd
			a.connErr, cmd = a.connErr.Update(msg)
			return a, cmd
		}
		if model, cmd, handled := a.handleGlobalKey(msg); handled {
			return model, cmd
		}

	case components.ErrorCopyRequestMsg:
		detail := msg.Title + ": " + msg.Message
		if msg.Context != "" {
			detail += " (" + msg.Context + ")"
		}
		if err := clipboard.WriteAll(detail); err == nil {
			a.toasts.AddStatus("Error details copied")
			return a, components.ToastTickCmd()
		}
		return a, nil

	case components.ToastTickMsg:
		a.toasts.TickToasts()
		if a.toasts.HasToasts() {
			return a, components.ToastTickCmd()
		}
		return a, nil

	case components.ToastDismissMsg:
		a.toasts.RemoveToast(msg.ID)
		return a, nil

	case components.SessionWarningDismissedMsg:
		a.overlay.Hide()
		return a, nil

	case components.SessionExpiredAckMsg:
		a.overlay.Hide()
		return a, a.goLogin("Session expired. Sign in again.")

	case PingMsg:
		connected := msg.Err == nil
		a.welcome.SetConnected(connected)
		a.statusBar.SetConnected(connected)
		if !connected && a.screen == ScreenWelcome {
			a.connErr = components.SmartErrorFromError("Cannot reach server", msg.Err)
			a.connErr.SetContext(a.client.BaseURL())
			a.connErr.SetSize(a.width, a.height)
			a.connErr.Show()
		}
		return a, nil

	case SessionTickMsg:
		return a, a.handleSessionTick(msg)

	case UnauthorizedMsg, SessionExpiredMsg:
		return a, a.handleSessionEnd()

	case LoginResultMsg:
		return a, a.handleLoginResult(msg)

	case AdminProbeMsg:
		if msg.IsAdmin {
			isAdmin := true
			a.store.UpdateUser(session.UserPatch{IsAdmin: &isAdmin})
			a.header.SetAdmin(true)
			a.statusBar.SetUser(a.store.User().Username, true)
		}
		return a, nil

	case RegisterResultMsg:
		a.register, _ = a.register.Update(msg)
		if msg.Err == nil {
			a.login.Reset()
			a.login.SetInfo(msg.Resp.Message)
			a.screen = ScreenLogin
			return a, a.login.Init()
		}
		return a, nil

	case LoggedOutMsg:
		return a, a.goLogin("Signed out.")
	}

	// Session overlay swallows input while visible.
	if a.overlay.IsVisible() {
		var cmd tea.Cmd
		a.overlay, cmd = a.overlay.Update(msg)
		return a, cmd
	}

	return a, a.updateScreen(msg)
}

// resize propagates the new terminal size.
func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	a.header.SetWidth(width)
	a.statusBar.SetWidth(width)
	a.overlay.SetSize(width, height)
	a.connErr.SetSize(width, height)

	contentHeight := height - a.chromeLines()
	if contentHeight < 5 {
		contentHeight = 5
	}
	a.welcome.SetSize(width, contentHeight)
	a.login.SetSize(width, contentHeight)
	a.register.SetSize(width, contentHeight)
	a.forgot.SetSize(width, contentHeight)
	a.dashboard.SetSize(width, contentHeight)
	a.admin.SetSize(width, contentHeight)
	a.help.SetSize(width, contentHeight)
}

// chromeLines is the vertical space taken by header and status bar.
func (a *App) chromeLines() int {
	return 4
}

// handleGlobalKey processes bindings that work on every screen. The
// bool reports whether the key was consumed.
func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit, true

	case key.Matches(msg, a.keys.Help):
		return a, a.goHelp(), true

	case msg.String() == "?":
		// Question marks are typed text on the form screens.
		if a.screen == ScreenWelcome || a.screen == ScreenAdmin || a.screen == ScreenHelp {
			return a, a.goHelp(), true
		}

	case key.Matches(msg, a.keys.Admin):
		if a.screen == ScreenDashboard {
			return a, a.goAdmin(), true
		}

	case key.Matches(msg, a.keys.Logout):
		if a.screen == ScreenDashboard || a.screen == ScreenAdmin {
			a.store.Logout()
			a.resetSessionFlags()
			return a, func() tea.Msg { return LoggedOutMsg{} }, true
		}

	case key.Matches(msg, a.keys.Back):
		switch a.screen {
		case ScreenRegister, ScreenForgot:
			a.screen = ScreenLogin
			return a, a.login.Init(), true
		case ScreenAdmin:
			a.screen = ScreenDashboard
			return a, a.dashboard.refreshActive(), true
		case ScreenHelp:
			a.screen = a.prevScreen
			return a, nil, true
		}

	case key.Matches(msg, a.keys.Submit):
		if a.screen == ScreenWelcome {
			return a, a.leaveWelcome(), true
		}
		if a.screen == ScreenForgot && a.forgot.Done() {
			return a, a.goLogin("Password reset. Sign in with the new password."), true
		}

	case msg.String() == "ctrl+n":
		if a.screen == ScreenLogin {
			a.register.Reset()
			a.screen = ScreenRegister
			return a, a.register.Init(), true
		}

	case msg.String() == "ctrl+f":
		if a.screen == ScreenLogin {
			a.forgot.Reset()
			a.screen = ScreenForgot
			return a, a.forgot.Init(), true
		}
	}

	// Any other key leaves the welcome screen too.
	if a.screen == ScreenWelcome {
		return a, a.leaveWelcome(), true
	}
	return a, nil, false
}

// leaveWelcome routes past the splash according to the session guard.
func (a *App) leaveWelcome() tea.Cmd {
	if a.store.CheckSession() {
		a.screen = ScreenDashboard
		return a.dashboard.Init()
	}
	a.screen = ScreenLogin
	return a.login.Init()
}

// goLogin clears session UI state and shows the sign-in form.
func (a *App) goLogin(info string) tea.Cmd {
	a.statusBar.SetUser("", false)
	a.header.SetAdmin(false)
	a.header.SetWorkspace("")
	a.login.Reset()
	if info != "" {
		a.login.SetInfo(info)
	}
	a.screen = ScreenLogin
	return a.login.Init()
}

// goAdmin enforces the privilege guard before entering the admin view.
func (a *App) goAdmin() tea.Cmd {
	if !a.store.CheckSession() {
		return a.goLogin("Session expired. Sign in again.")
	}
	if !a.store.IsAdmin() {
		a.toasts.AddError("Admin privileges required")
		a.screen = ScreenDashboard
		return components.ToastTickCmd()
	}
	a.screen = ScreenAdmin
	return a.admin.Init()
}

// goHelp remembers where to come back to.
func (a *App) goHelp() tea.Cmd {
	if a.screen != ScreenHelp {
		a.prevScreen = a.screen
	}
	a.screen = ScreenHelp
	return a.help.Init()
}

// handleSessionTick refreshes the countdown and raises the one-time
// expiry warning.
func (a *App) handleSessionTick(msg SessionTickMsg) tea.Cmd {
	var cmds []tea.Cmd
	cmds = append(cmds, sessionTickCmd())

	if a.store.IsAuthenticated() {
		remaining := a.store.Remaining()
		a.statusBar.SetSessionRemaining(remaining)
		if !a.warned && remaining > 0 && remaining < expiryWarningThreshold {
			a.warned = true
			a.overlay.Show(remaining)
		}
	}

	if a.screen == ScreenDashboard {
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// handleSessionEnd reacts to a 401 or the watchdog firing. The stored
// token is already gone; this clears the in-memory side and tells the
// user once.
func (a *App) handleSessionEnd() tea.Cmd {
	a.store.Logout()
	if a.expired {
		return nil
	}
	a.expired = true
	a.overlay.ShowExpired()
	return nil
}

// handleLoginResult persists the session and enters the dashboard.
func (a *App) handleLoginResult(msg LoginResultMsg) tea.Cmd {
	var cmd tea.Cmd
	a.login, cmd = a.login.Update(msg)
	if msg.Err != nil {
		return cmd
	}

	user := session.User{Email: msg.Email, Username: msg.Resp.Username}
	if err := a.store.Login(msg.Resp.AccessToken, user); err != nil {
		a.toasts.AddError("Could not persist session: " + err.Error())
		return tea.Batch(cmd, components.ToastTickCmd())
	}
	a.resetSessionFlags()

	a.statusBar.SetUser(user.Username, false)
	a.statusBar.SetSessionRemaining(a.store.Remaining())
	a.welcome.SetUsername(user.Username)
	a.toasts.AddSuccess("Signed in as " + user.Username)

	a.screen = ScreenDashboard
	return tea.Batch(
		cmd,
		a.dashboard.Init(),
		adminProbeCmd(a.client),
		components.ToastTickCmd(),
	)
}

// resetSessionFlags re-arms the per-login notifications.
func (a *App) resetSessionFlags() {
	a.warned = false
	a.expired = false
	a.overlay.Hide()
}

// updateScreen forwards a message to the active screen.
func (a *App) updateScreen(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.screen {
	case ScreenWelcome:
		a.welcome, cmd = a.welcome.Update(msg)
	case ScreenLogin:
		a.login, cmd = a.login.Update(msg)
	case ScreenRegister:
		a.register, cmd = a.register.Update(msg)
	case ScreenForgot:
		a.forgot, cmd = a.forgot.Update(msg)
	case ScreenDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
		a.header.SetWorkspace(a.dashboard.workspaceName)
	case ScreenAdmin:
		a.admin, cmd = a.admin.Update(msg)
	case ScreenHelp:
		a.help, cmd = a.help.Update(msg)
	}
	return cmd
}

// View renders the chrome and the active screen.
func (a *App) View() string {
	if a.overlay.IsVisible() {
		return a.overlay.View()
	}
	if a.connErr.IsVisible() {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.connErr.View())
	}

	var content string
	switch a.screen {
	case ScreenWelcome:
		content = a.welcome.View()
	case ScreenLogin:
		content = a.login.View()
	case ScreenRegister:
		content = a.register.View()
	case ScreenForgot:
		content = a.forgot.View()
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenAdmin:
		content = a.admin.View()
	case ScreenHelp:
		content = a.help.View()
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		a.header.View(),
		content,
		a.statusBar.View(),
	)

	if a.toasts.HasToasts() {
		stack := components.RenderToastStack(a.toasts.GetToasts(), a.width, a.height)
		if stack != "" {
			return body + "\n" + stack
		}
	}
	return body
}
