// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the bottrainer TUI.
package components

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// SESSION EXPIRY OVERLAY
// =============================================================================

// SessionExpiryOverlay warns when the login session is about to expire
// and announces expiry once the watchdog fires. Sessions are bounded by
// the server-aligned 12 hour token lifetime, so the overlay cannot
// extend them; it can only point the user back to the login screen.
type SessionExpiryOverlay struct {
	// State
	visible       bool
	timeRemaining time.Duration
	expired       bool

	// Configuration
	warningThreshold time.Duration // Default: 5 minutes

	// Dimensions
	width  int
	height int
}

// NewSessionExpiryOverlay creates a new session expiry overlay.
func NewSessionExpiryOverlay() SessionExpiryOverlay {
	return SessionExpiryOverlay{
		visible:          false,
		warningThreshold: DefaultWarningThreshold,
	}
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// SetSize sets the overlay dimensions.
func (o *SessionExpiryOverlay) SetSize(width, height int) {
	o.width = width
	o.height = height
}

// SetWarningThreshold sets when to show the warning (default: 5 minutes).
func (o *SessionExpiryOverlay) SetWarningThreshold(threshold time.Duration) {
	o.warningThreshold = threshold
}

// WarningThreshold returns the configured warning threshold.
func (o *SessionExpiryOverlay) WarningThreshold() time.Duration {
	return o.warningThreshold
}

// =============================================================================
// STATE MANAGEMENT
// =============================================================================

// Show displays the overlay with the given time remaining.
func (o *SessionExpiryOverlay) Show(remaining time.Duration) {
	o.visible = true
	o.timeRemaining = remaining
	o.expired = remaining <= 0
}

// ShowExpired displays the expired notice.
func (o *SessionExpiryOverlay) ShowExpired() {
	o.visible = true
	o.timeRemaining = 0
	o.expired = true
}

// Hide hides the overlay.
func (o *SessionExpiryOverlay) Hide() {
	o.visible = false
	o.expired = false
}

// UpdateTime updates the countdown timer.
func (o *SessionExpiryOverlay) UpdateTime(remaining time.Duration) {
	o.timeRemaining = remaining
	if remaining <= 0 {
		o.expired = true
	}
}

// IsVisible returns whether the overlay is currently visible.
func (o *SessionExpiryOverlay) IsVisible() bool {
	return o.visible
}

// IsExpired returns whether the session has expired.
func (o *SessionExpiryOverlay) IsExpired() bool {
	return o.expired
}

// TimeRemaining returns the current time remaining.
func (o *SessionExpiryOverlay) TimeRemaining() time.Duration {
	return o.timeRemaining
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// SessionWarningDismissedMsg signals the user acknowledged the warning.
type SessionWarningDismissedMsg struct{}

// SessionExpiredAckMsg signals the user acknowledged expiry and should
// be routed to the login view.
type SessionExpiredAckMsg struct{}

// Init initializes the overlay (no-op for overlays).
func (o SessionExpiryOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages for the overlay.
func (o SessionExpiryOverlay) Update(msg tea.Msg) (SessionExpiryOverlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		o.width = msg.Width
		o.height = msg.Height

	case tea.KeyMsg:
		if !o.visible {
			break
		}
		wasExpired := o.expired
		o.Hide()
		if wasExpired {
			return o, func() tea.Msg { return SessionExpiredAckMsg{} }
		}
		return o, func() tea.Msg { return SessionWarningDismissedMsg{} }
	}

	return o, nil
}

// View renders the session expiry overlay.
func (o SessionExpiryOverlay) View() string {
	if !o.visible {
		return ""
	}

	if o.expired {
		return o.viewExpired()
	}
	return o.viewWarning()
}

// =============================================================================
// RENDER METHODS
// =============================================================================

// viewWarning renders the warning overlay before expiry.
func (o SessionExpiryOverlay) viewWarning() string {
	width, height, maxWidth := o.dimensions()

	timeStr := formatTimeRemaining(o.timeRemaining)

	var parts []string

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Amber).
		Bold(true)
	parts = append(parts, titleStyle.Render(styles.StatusIndicators.Warning+" Session Expiring Soon"))

	parts = append(parts, "")

	timeStyle := lipgloss.NewStyle().
		Foreground(styles.Amber).
		Bold(true)

	msgStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Width(maxWidth - 4).
		Align(lipgloss.Center)

	parts = append(parts, msgStyle.Render(
		"Your login expires in "+timeStyle.Render(timeStr)))

	parts = append(parts, "")

	hintStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Italic(true).
		Align(lipgloss.Center)
	parts = append(parts, hintStyle.Render("Save your work and log in again to continue after expiry"))

	parts = append(parts, "")

	dismissStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Align(lipgloss.Center)
	parts = append(parts, dismissStyle.Render("Press any key to dismiss"))

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Amber).
		Padding(1, 3).
		Width(maxWidth).
		Align(lipgloss.Center)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		boxStyle.Render(content),
		lipgloss.WithWhitespaceBackground(styles.SurfaceDim),
	)
}

// viewExpired renders the expired session message.
func (o SessionExpiryOverlay) viewExpired() string {
	width, height, maxWidth := o.dimensions()

	var parts []string

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Rose).
		Bold(true)
	parts = append(parts, titleStyle.Render(styles.StatusIndicators.Error+" Session Expired"))

	parts = append(parts, "")

	msgStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Width(maxWidth - 4).
		Align(lipgloss.Center)
	parts = append(parts, msgStyle.Render(
		"Your login session has expired. Please log in again."))

	parts = append(parts, "")

	exitStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Align(lipgloss.Center)
	parts = append(parts, exitStyle.Render("Press any key to return to the login screen"))

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Rose).
		Padding(1, 3).
		Width(maxWidth).
		Align(lipgloss.Center)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		boxStyle.Render(content),
		lipgloss.WithWhitespaceBackground(styles.SurfaceDim),
	)
}

// dimensions returns the effective width, height, and content width.
func (o SessionExpiryOverlay) dimensions() (width, height, maxWidth int) {
	width = o.width
	if width == 0 {
		width = 60
	}
	height = o.height
	if height == 0 {
		height = 24
	}

	maxWidth = width - 8
	if maxWidth < 40 {
		maxWidth = 40
	}
	if maxWidth > 60 {
		maxWidth = 60
	}
	return width, height, maxWidth
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// formatTimeRemaining formats a duration as M:SS for display.
func formatTimeRemaining(d time.Duration) string {
	if d < 0 {
		return "0:00"
	}

	totalSecs := int(d.Seconds())
	mins := totalSecs / 60
	secs := totalSecs % 60

	return fmt.Sprintf("%d:%02d", mins, secs)
}

// DefaultWarningThreshold is when to show the expiry warning overlay.
const DefaultWarningThreshold = 5 * time.Minute
