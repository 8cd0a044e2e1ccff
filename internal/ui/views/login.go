// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// login.go - Login form view.
package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/ui/components"
	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// LOGIN VIEW
// =============================================================================

const (
	loginFieldEmail = iota
	loginFieldPassword
	loginFieldCount
)

// Login is the email/password login form.
type Login struct {
	client *api.Client
	theme  *styles.Theme

	email    *components.InputArea
	password *components.InputArea
	focus    int

	busy    bool
	spinner components.Spinner

	errMsg  string
	infoMsg string

	width  int
	height int
}

// NewLogin creates the login view.
func NewLogin(theme *styles.Theme, client *api.Client) *Login {
	email := components.NewFormInput(theme, "you@example.com")
	password := components.NewFormInput(theme, "password")
	password.SetPasswordMode(true)

	return &Login{
		client:   client,
		theme:    theme,
		email:    email,
		password: password,
		spinner:  components.NewRequestSpinner("Signing in"),
	}
}

// SetSize updates the view dimensions.
func (v *Login) SetSize(width, height int) {
	v.width = width
	v.height = height
	fieldWidth := width - 20
	if fieldWidth > 48 {
		fieldWidth = 48
	}
	if fieldWidth < 24 {
		fieldWidth = 24
	}
	v.email.SetWidth(fieldWidth)
	v.password.SetWidth(fieldWidth)
}

// SetInfo shows a transient informational line, e.g. after registration.
func (v *Login) SetInfo(msg string) {
	v.infoMsg = msg
	v.errMsg = ""
}

// Reset clears form state. Called when navigating back to login.
func (v *Login) Reset() {
	v.email.Reset()
	v.password.Reset()
	v.focus = loginFieldEmail
	v.busy = false
	v.spinner.Stop()
	v.errMsg = ""
}

// Init focuses the email field.
func (v *Login) Init() tea.Cmd {
	return v.email.Focus()
}

// Update handles messages for the login view.
func (v *Login) Update(msg tea.Msg) (*Login, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "tab", "down":
			return v, v.setFocus((v.focus + 1) % loginFieldCount)
		case "shift+tab", "up":
			return v, v.setFocus((v.focus + loginFieldCount - 1) % loginFieldCount)
		case "enter":
			return v.submit()
		}

	case LoginResultMsg:
		v.busy = false
		v.spinner.Stop()
		if msg.Err != nil {
			v.errMsg = msg.Err.Error()
			return v, nil
		}
		// Navigation happens in the App; nothing further here.
		return v, nil

	default:
		if v.busy {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
	}

	// Route remaining messages to the focused input.
	var cmd tea.Cmd
	switch v.focus {
	case loginFieldEmail:
		v.email, cmd = v.email.Update(msg)
	case loginFieldPassword:
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

// submit validates and issues the login request.
func (v *Login) submit() (*Login, tea.Cmd) {
	email := strings.TrimSpace(v.email.Value())
	password := v.password.Value()

	if email == "" || !strings.Contains(email, "@") {
		v.errMsg = "Enter a valid email address."
		return v, v.setFocus(loginFieldEmail)
	}
	if password == "" {
		v.errMsg = "Enter your password."
		return v, v.setFocus(loginFieldPassword)
	}

	v.errMsg = ""
	v.infoMsg = ""
	v.busy = true
	return v, tea.Batch(
		v.spinner.Start(),
		loginCmd(v.client, email, password),
	)
}

// setFocus moves focus to the given field.
func (v *Login) setFocus(field int) tea.Cmd {
	v.focus = field
	v.email.Blur()
	v.password.Blur()
	switch field {
	case loginFieldEmail:
		return v.email.Focus()
	case loginFieldPassword:
		return v.password.Focus()
	}
	return nil
}

// View renders the login form.
func (v *Login) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Email"))
	b.WriteString("\n")
	b.WriteString(v.email.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Password"))
	b.WriteString("\n")
	b.WriteString(v.password.View())
	b.WriteString("\n")

	if v.busy {
		b.WriteString("\n")
		b.WriteString(v.spinner.View())
		b.WriteString("\n")
	}
	if v.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(components.InlineError(v.errMsg))
		b.WriteString("\n")
	}
	if v.infoMsg != "" {
		b.WriteString("\n")
		b.WriteString(components.InlineSuccess(v.infoMsg))
		b.WriteString("\n")
	}

	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("[Enter] Sign in  [Ctrl+N] Create account  [Ctrl+F] Forgot password"))

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(
		v.width, v.height,
		lipgloss.Center, lipgloss.Center,
		box,
	)
}
