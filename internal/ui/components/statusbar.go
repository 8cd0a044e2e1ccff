// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// statusbar.go - Bottom status bar with connection, session, and user state
package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusError
	StatusIdle
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading..."
	case StatusError:
		return "Error"
	case StatusIdle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status.
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusLoading:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	case StatusIdle:
		return "-"
	default:
		return "?"
	}
}

// sessionWarning is the remaining-time threshold below which the session
// countdown switches to warning colors.
const sessionWarning = 15 * time.Minute

// StatusBar represents the bottom status bar.
type StatusBar struct {
	Connected     bool          // Whether the backend is reachable
	Username      string        // Signed-in user
	IsAdmin       bool          // Admin role badge
	SessionLeft   time.Duration // Time until the session token expires
	DatasetName   string        // Selected dataset filename
	SentenceCount int           // Sentence count of the selected dataset
	Status        Status        // Current status
	Width         int           // Available width
	ShowShortcuts bool          // Show keyboard shortcuts
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetConnected updates the backend connection state.
func (s *StatusBar) SetConnected(connected bool) {
	s.Connected = connected
}

// SetUser updates the signed-in user display.
func (s *StatusBar) SetUser(username string, admin bool) {
	s.Username = username
	s.IsAdmin = admin
}

// SetSessionRemaining updates the session countdown.
func (s *StatusBar) SetSessionRemaining(remaining time.Duration) {
	if remaining < 0 {
		remaining = 0
	}
	s.SessionLeft = remaining
}

// SetDataset updates the selected dataset display.
func (s *StatusBar) SetDataset(name string, sentences int) {
	s.DatasetName = name
	s.SentenceCount = sentences
}

// SetStatus updates the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// View renders the status bar.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	if s.Width < 100 {
		return s.viewMedium()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals.
// Format: [OK|user] 1:59:02 Status
func (s *StatusBar) viewNarrow() string {
	parts := []string{}

	connStyle := s.getConnStyle()
	parts = append(parts, connStyle.Render(s.connIcon()))

	if s.Username != "" {
		userStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		parts = append(parts, userStyle.Render(s.Username))
	}

	left := "[" + strings.Join(parts, "|") + "]"

	countdown := s.renderCountdown()

	statusStyle := s.getStatusStyle()
	statusText := statusStyle.Render(s.Status.Icon())

	separator := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" ")

	result := left + separator + countdown + separator + statusText

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewMedium renders a medium-width status bar.
// Format: [OK] user | Session: 1:59:02 | dataset.csv | Status
func (s *StatusBar) viewMedium() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	parts := []string{}

	connStyle := s.getConnStyle()
	conn := connStyle.Render(s.connIcon())
	if s.Username != "" {
		userStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		conn += " " + userStyle.Render(s.Username)
		if s.IsAdmin {
			conn += " " + s.adminBadge()
		}
	}
	parts = append(parts, conn)

	sessionLabel := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render("Session:")
	parts = append(parts, sessionLabel+" "+s.renderCountdown())

	if s.DatasetName != "" {
		name := s.DatasetName
		nameRunes := []rune(name)
		if len(nameRunes) > 18 {
			name = string(nameRunes[:15]) + "..."
		}
		dsStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		parts = append(parts, dsStyle.Render(name))
	}

	statusStyle := s.getStatusStyle()
	parts = append(parts, statusStyle.Render(s.Status.String()))

	result := strings.Join(parts, separator)

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// viewWide renders a full-featured status bar for wide terminals.
// Format: [OK] Connected | user [ADMIN] | dataset.csv (1,234 sentences)    Session: 1:59:02    Ready ^Q quit
func (s *StatusBar) viewWide() string {
	// Left section: connection, user, dataset
	leftParts := []string{}

	connStyle := s.getConnStyle()
	connText := "Disconnected"
	if s.Connected {
		connText = "Connected"
	}
	leftParts = append(leftParts, connStyle.Render(s.connIcon()+" "+connText))

	if s.Username != "" {
		userStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		user := userStyle.Render(s.Username)
		if s.IsAdmin {
			user += " " + s.adminBadge()
		}
		leftParts = append(leftParts, user)
	}

	if s.DatasetName != "" {
		dsStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		ds := dsStyle.Render(s.DatasetName)
		if s.SentenceCount > 0 {
			countStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
			ds += " " + countStyle.Render("("+formatNumber(s.SentenceCount)+" sentences)")
		}
		leftParts = append(leftParts, ds)
	}

	leftSep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	leftSection := strings.Join(leftParts, leftSep)

	// Center section: session countdown
	sessionLabel := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render("Session: ")
	centerSection := sessionLabel + s.renderCountdown()

	// Right section: status and shortcuts
	rightParts := []string{}

	statusStyle := s.getStatusStyle()
	rightParts = append(rightParts, statusStyle.Render(s.Status.String()))

	if s.ShowShortcuts {
		rightParts = append(rightParts, s.renderShortcuts())
	}

	rightSection := strings.Join(rightParts, " ")

	leftWidth := lipgloss.Width(leftSection)
	centerWidth := lipgloss.Width(centerSection)
	rightWidth := lipgloss.Width(rightSection)
	totalContent := leftWidth + centerWidth + rightWidth

	spacing := s.Width - totalContent - 4
	if spacing < 4 {
		spacing = 4
	}

	leftSpace := strings.Repeat(" ", spacing/2)
	rightSpace := strings.Repeat(" ", spacing-spacing/2)

	result := leftSection + leftSpace + centerSection + rightSpace + rightSection

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styles.Overlay).
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// ==========================================================================
// HELPER RENDER METHODS
// ==========================================================================

// renderCountdown renders the session time remaining with urgency coloring.
func (s *StatusBar) renderCountdown() string {
	color := styles.TextSecondary
	if s.SessionLeft <= 0 {
		color = styles.Rose
	} else if s.SessionLeft < sessionWarning {
		color = styles.WarningHighContrast
	}

	style := lipgloss.NewStyle().Foreground(color)
	if s.SessionLeft < sessionWarning {
		style = style.Bold(true)
	}

	return style.Render(formatSessionDuration(s.SessionLeft))
}

// renderShortcuts renders keyboard shortcut hints.
func (s *StatusBar) renderShortcuts() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	shortcuts := []string{
		keyStyle.Render("?") + descStyle.Render("help"),
		keyStyle.Render("^C") + descStyle.Render("quit"),
	}

	return strings.Join(shortcuts, " ")
}

// adminBadge renders the admin role badge.
func (s *StatusBar) adminBadge() string {
	return lipgloss.NewStyle().
		Foreground(styles.Amber).
		Bold(true).
		Render("[ADMIN]")
}

// connIcon returns an icon for the connection state.
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (s *StatusBar) connIcon() string {
	if s.Connected {
		return styles.StatusIndicators.Active
	}
	return styles.StatusIndicators.Error
}

// getConnStyle returns the style for the connection state.
func (s *StatusBar) getConnStyle() lipgloss.Style {
	if s.Connected {
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
}

// getStatusStyle returns the style for the current status.
// ACCESSIBILITY: Uses high contrast colors with bold for colorblind users
func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	case StatusLoading:
		return lipgloss.NewStyle().Foreground(styles.WarningHighContrast).Bold(true)
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	case StatusIdle:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}

// ==========================================================================
// HELPER FUNCTIONS (using shared helpers from helpers.go)
// ==========================================================================

// formatNumber formats a number with thousand separators.
func formatNumber(n int) string {
	return fmtNumber(n)
}

// formatSessionDuration formats a remaining duration as H:MM:SS.
func formatSessionDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	mm := toStr(minutes)
	if minutes < 10 {
		mm = "0" + mm
	}
	ss := toStr(seconds)
	if seconds < 10 {
		ss = "0" + ss
	}

	return toStr(hours) + ":" + mm + ":" + ss
}
