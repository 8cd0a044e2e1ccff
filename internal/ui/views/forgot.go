// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// forgot.go - Forgot-password view: email, OTP, new password steps.
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
// FORGOT PASSWORD VIEW
// =============================================================================

// forgotStep is the current stage of the reset flow.
type forgotStep int

const (
	forgotStepEmail forgotStep = iota
	forgotStepOTP
	forgotStepPassword
	forgotStepDone
)

// Forgot is the three-step password reset flow. The server emails a
// one-time code after step one; step two verifies it; step three sets
// the new password.
type Forgot struct {
	client *api.Client
	theme  *styles.Theme

	step  forgotStep
	email *components.InputArea
	otp   *components.InputArea
	pass  *components.InputArea

	// Values carried across steps
	emailValue string
	otpValue   string

	busy    bool
	spinner components.Spinner
	errMsg  string
	infoMsg string

	width  int
	height int
}

// NewForgot creates the forgot-password view.
func NewForgot(theme *styles.Theme, client *api.Client) *Forgot {
	email := components.NewFormInput(theme, "you@example.com")
	otp := components.NewFormInput(theme, "6-digit code")
	otp.SetMaxChars(6)
	pass := components.NewFormInput(theme, "new password (min 8 chars)")
	pass.SetPasswordMode(true)

	return &Forgot{
		client:  client,
		theme:   theme,
		email:   email,
		otp:     otp,
		pass:    pass,
		spinner: components.NewRequestSpinner("Contacting server"),
	}
}

// SetSize updates the view dimensions.
func (v *Forgot) SetSize(width, height int) {
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
	v.otp.SetWidth(fieldWidth)
	v.pass.SetWidth(fieldWidth)
}

// Reset restarts the flow at the email step.
func (v *Forgot) Reset() {
	v.step = forgotStepEmail
	v.email.Reset()
	v.otp.Reset()
	v.pass.Reset()
	v.emailValue = ""
	v.otpValue = ""
	v.busy = false
	v.spinner.Stop()
	v.errMsg = ""
	v.infoMsg = ""
}

// Init focuses the email field.
func (v *Forgot) Init() tea.Cmd {
	return v.email.Focus()
}

// Done reports whether the flow finished and login should resume.
func (v *Forgot) Done() bool {
	return v.step == forgotStepDone
}

// Update handles messages for the forgot-password view.
func (v *Forgot) Update(msg tea.Msg) (*Forgot, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		if msg.String() == "enter" {
			return v.submit()
		}

	case ForgotResultMsg:
		v.busy = false
		v.spinner.Stop()
		if msg.Err != nil {
			v.errMsg = msg.Err.Error()
			return v, nil
		}
		v.step = forgotStepOTP
		v.infoMsg = "Check your email for the verification code."
		v.errMsg = ""
		return v, v.focusStep()

	case OTPResultMsg:
		v.busy = false
		v.spinner.Stop()
		if msg.Err != nil {
			v.errMsg = msg.Err.Error()
			return v, nil
		}
		v.step = forgotStepPassword
		v.infoMsg = "Code verified. Choose a new password."
		v.errMsg = ""
		return v, v.focusStep()

	case ResetResultMsg:
		v.busy = false
		v.spinner.Stop()
		if msg.Err != nil {
			v.errMsg = msg.Err.Error()
			return v, nil
		}
		v.step = forgotStepDone
		v.infoMsg = "Password reset. You can sign in now."
		v.errMsg = ""
		return v, nil

	default:
		if v.busy {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
	}

	var cmd tea.Cmd
	switch v.step {
	case forgotStepEmail:
		v.email, cmd = v.email.Update(msg)
	case forgotStepOTP:
		v.otp, cmd = v.otp.Update(msg)
	case forgotStepPassword:
		v.pass, cmd = v.pass.Update(msg)
	}
	return v, cmd
}

// submit advances the flow one step.
func (v *Forgot) submit() (*Forgot, tea.Cmd) {
	switch v.step {
	case forgotStepEmail:
		email := strings.TrimSpace(v.email.Value())
		if email == "" || !strings.Contains(email, "@") {
			v.errMsg = "Enter a valid email address."
			return v, nil
		}
		v.emailValue = email
		v.busy = true
		v.errMsg = ""
		return v, tea.Batch(v.spinner.Start(), forgotPasswordCmd(v.client, email))

	case forgotStepOTP:
		otp := strings.TrimSpace(v.otp.Value())
		if len(otp) != 6 {
			v.errMsg = "Enter the 6-digit code from your email."
			return v, nil
		}
		v.otpValue = otp
		v.busy = true
		v.errMsg = ""
		return v, tea.Batch(v.spinner.Start(), verifyOTPCmd(v.client, v.emailValue, otp))

	case forgotStepPassword:
		pass := v.pass.Value()
		if len(pass) < minPasswordLen {
			v.errMsg = "Password must be at least 8 characters."
			return v, nil
		}
		v.busy = true
		v.errMsg = ""
		return v, tea.Batch(v.spinner.Start(), resetPasswordCmd(v.client, v.emailValue, v.otpValue, pass))
	}
	return v, nil
}

// focusStep focuses the input for the current step.
func (v *Forgot) focusStep() tea.Cmd {
	v.email.Blur()
	v.otp.Blur()
	v.pass.Blur()
	switch v.step {
	case forgotStepEmail:
		return v.email.Focus()
	case forgotStepOTP:
		return v.otp.Focus()
	case forgotStepPassword:
		return v.pass.Focus()
	}
	return nil
}

// View renders the current step.
func (v *Forgot) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary)

	stepStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Reset password"))
	b.WriteString("\n")

	switch v.step {
	case forgotStepEmail:
		b.WriteString(stepStyle.Render("Step 1 of 3"))
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render("Account email"))
		b.WriteString("\n")
		b.WriteString(v.email.View())
	case forgotStepOTP:
		b.WriteString(stepStyle.Render("Step 2 of 3"))
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render("Verification code"))
		b.WriteString("\n")
		b.WriteString(v.otp.View())
	case forgotStepPassword:
		b.WriteString(stepStyle.Render("Step 3 of 3"))
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render("New password"))
		b.WriteString("\n")
		b.WriteString(v.pass.View())
	case forgotStepDone:
		b.WriteString("\n")
		b.WriteString(components.InlineSuccess("Password reset complete."))
	}
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
	if v.infoMsg != "" && v.errMsg == "" {
		b.WriteString("\n")
		b.WriteString(components.InlineInfo(v.infoMsg))
		b.WriteString("\n")
	}

	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	b.WriteString("\n")
	if v.step == forgotStepDone {
		b.WriteString(hintStyle.Render("[Enter] Back to sign in"))
	} else {
		b.WriteString(hintStyle.Render("[Enter] Continue  [Esc] Back to sign in"))
	}

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
