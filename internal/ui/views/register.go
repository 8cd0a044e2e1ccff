// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// register.go - Account creation form view.
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
// REGISTER VIEW
// =============================================================================

const (
	registerFieldUsername = iota
	registerFieldEmail
	registerFieldPassword
	registerFieldConfirm
	registerFieldCount
)

const minPasswordLen = 8

// Register is the account creation form.
type Register struct {
	client *api.Client
	theme  *styles.Theme

	username *components.InputArea
	email    *components.InputArea
	password *components.InputArea
	confirm  *components.InputArea
	focus    int

	busy    bool
	spinner components.Spinner
	errMsg  string

	width  int
	height int
}

// NewRegister creates the register view.
func NewRegister(theme *styles.Theme, client *api.Client) *Register {
	username := components.NewFormInput(theme, "username")
	email := components.NewFormInput(theme, "you@example.com")
	password := components.NewFormInput(theme, "password (min 8 chars)")
	password.SetPasswordMode(true)
	confirm := components.NewFormInput(theme, "repeat password")
	confirm.SetPasswordMode(true)

	return &Register{
		client:   client,
		theme:    theme,
		username: username,
		email:    email,
		password: password,
		confirm:  confirm,
		spinner:  components.NewRequestSpinner("Creating account"),
	}
}

// SetSize updates the view dimensions.
func (v *Register) SetSize(width, height int) {
	v.width = width
	v.height = height
	fieldWidth := width - 20
	if fieldWidth > 48 {
		fieldWidth = 48
	}
	if fieldWidth < 24 {
		fieldWidth = 24
	}
	for _, in := range v.inputs() {
		in.SetWidth(fieldWidth)
	}
}

// Reset clears form state.
func (v *Register) Reset() {
	for _, in := range v.inputs() {
		in.Reset()
	}
	v.focus = registerFieldUsername
	v.busy = false
	v.spinner.Stop()
	v.errMsg = ""
}

func (v *Register) inputs() []*components.InputArea {
	return []*components.InputArea{v.username, v.email, v.password, v.confirm}
}

// Init focuses the username field.
func (v *Register) Init() tea.Cmd {
	return v.username.Focus()
}

// Update handles messages for the register view.
func (v *Register) Update(msg tea.Msg) (*Register, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "tab", "down":
			return v, v.setFocus((v.focus + 1) % registerFieldCount)
		case "shift+tab", "up":
			return v, v.setFocus((v.focus + registerFieldCount - 1) % registerFieldCount)
		case "enter":
			return v.submit()
		}

	case RegisterResultMsg:
		v.busy = false
		v.spinner.Stop()
		if msg.Err != nil {
			v.errMsg = msg.Err.Error()
		}
		return v, nil

	default:
		if v.busy {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
	}

	var cmd tea.Cmd
	in := v.inputs()[v.focus]
	in, cmd = in.Update(msg)
	switch v.focus {
	case registerFieldUsername:
		v.username = in
	case registerFieldEmail:
		v.email = in
	case registerFieldPassword:
		v.password = in
	case registerFieldConfirm:
		v.confirm = in
	}
	return v, cmd
}

// submit validates and issues the registration request.
func (v *Register) submit() (*Register, tea.Cmd) {
	username := strings.TrimSpace(v.username.Value())
	email := strings.TrimSpace(v.email.Value())
	password := v.password.Value()
	confirm := v.confirm.Value()

	switch {
	case username == "":
		v.errMsg = "Enter a username."
		return v, v.setFocus(registerFieldUsername)
	case email == "" || !strings.Contains(email, "@"):
		v.errMsg = "Enter a valid email address."
		return v, v.setFocus(registerFieldEmail)
	case len(password) < minPasswordLen:
		v.errMsg = "Password must be at least 8 characters."
		return v, v.setFocus(registerFieldPassword)
	case password != confirm:
		v.errMsg = "Passwords do not match."
		return v, v.setFocus(registerFieldConfirm)
	}

	v.errMsg = ""
	v.busy = true
	return v, tea.Batch(
		v.spinner.Start(),
		registerCmd(v.client, username, email, password),
	)
}

// setFocus moves focus to the given field.
func (v *Register) setFocus(field int) tea.Cmd {
	v.focus = field
	for _, in := range v.inputs() {
		in.Blur()
	}
	return v.inputs()[field].Focus()
}

// View renders the registration form.
func (v *Register) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary)

	labels := []string{"Username", "Email", "Password", "Confirm password"}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Create account"))
	b.WriteString("\n\n")
	for i, in := range v.inputs() {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}

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

	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("[Enter] Create account  [Esc] Back to sign in"))

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
