// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// welcome.go - Welcome screen shown before login
package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN MODEL
// =============================================================================

// Welcome is the welcome screen component.
type Welcome struct {
	// Display info
	version   string
	server    string
	username  string
	connected bool

	// Dimensions
	width  int
	height int

	// Theme
	theme *styles.Theme
}

// NewWelcome creates a new welcome screen.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{
		version: "dev",
		server:  "http://localhost:8000",
		theme:   theme,
	}
}

// SetVersion sets the version string.
func (w *Welcome) SetVersion(version string) {
	w.version = version
}

// SetServer sets the backend server URL.
func (w *Welcome) SetServer(server string) {
	w.server = server
}

// SetUsername sets the name of a previously signed-in user, if any.
func (w *Welcome) SetUsername(name string) {
	w.username = name
}

// SetConnected sets the backend reachability state.
func (w *Welcome) SetConnected(connected bool) {
	w.connected = connected
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the welcome screen.
func (w Welcome) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (w Welcome) Update(msg tea.Msg) (Welcome, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
	}
	return w, nil
}

// View renders the welcome screen.
// Responsive: adapts to terminal size, minimum 80x24 supported.
func (w Welcome) View() string {
	width := w.width
	if width == 0 {
		width = 80
	}
	height := w.height
	if height == 0 {
		height = 24
	}

	// Calculate box width - responsive to terminal width
	boxWidth := 62
	if width < 70 {
		boxWidth = width - 8
	}
	if boxWidth < 40 {
		boxWidth = 40
	}
	if boxWidth > width-4 {
		boxWidth = width - 4
	}

	// Adjust padding for narrow terminals
	horizontalPadding := 4
	verticalPadding := 1
	if width < 70 {
		horizontalPadding = 2
	}

	// Box overhead: 2 (border top/bottom) + 2*verticalPadding
	boxOverhead := 2 + 2*verticalPadding

	// Available lines for content inside the box
	availableContentLines := height - boxOverhead

	var content string
	var contentLines int

	if availableContentLines >= 18 {
		// Full layout with double newlines
		content = w.renderLogo()
		content += "\n\n" + w.renderVersion()
		content += "\n\n" + w.renderServerInfo()
		content += "\n\n" + w.renderPressKey()
		contentLines = 6 + 2 + 1 + 2 + 3 + 2 + 1
	} else if availableContentLines >= 14 {
		// Compact: single newlines between sections
		content = w.renderLogo()
		content += "\n" + w.renderVersion()
		content += "\n" + w.renderServerInfo()
		content += "\n" + w.renderPressKey()
		contentLines = 6 + 1 + 1 + 1 + 3 + 1 + 1
	} else if availableContentLines >= 10 {
		// Very compact: use compact logo, minimal spacing
		content = w.renderLogoCompact()
		content += "\n" + w.renderVersion()
		content += "\n" + w.renderServerInfo()
		content += "\n" + w.renderPressKey()
		contentLines = 3 + 1 + 1 + 1 + 3 + 1 + 1
	} else {
		// Ultra compact: minimal content
		content = w.renderLogoCompact()
		content += "\n" + w.renderServerInfoCompact()
		content += "\n" + w.renderPressKey()
		contentLines = 3 + 1 + 1 + 1 + 1
	}

	// If still too tight, remove vertical padding
	if contentLines+boxOverhead > height {
		verticalPadding = 0
		boxOverhead = 2
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Purple).
		Padding(verticalPadding, horizontalPadding).
		Width(boxWidth).
		Align(lipgloss.Center).
		Render(content)

	boxHeight := lipgloss.Height(box)

	// Don't center if box is taller than available space.
	// Align to top so the logo stays visible.
	if boxHeight >= height {
		return lipgloss.Place(
			width, height,
			lipgloss.Center, lipgloss.Top,
			box,
		)
	}

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		box,
	)
}

// =============================================================================
// RENDER HELPERS
// =============================================================================

// renderLogo renders the ASCII art logo (6 lines).
// Responsive: uses compact or simple logo for narrow terminals.
func (w Welcome) renderLogo() string {
	logoStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	// Full ASCII art is ~52 chars wide, needs ~56 with box padding
	if w.width >= 60 {
		logo := ` _           _   _             _
| |__   ___ | |_| |_ _ __ __ _(_)_ __   ___ _ __
| '_ \ / _ \| __| __| '__/ _' | | '_ \ / _ \ '__|
| |_) | (_) | |_| |_| | | (_| | | | | |  __/ |
|_.__/ \___/ \__|\__|_|  \__,_|_|_| |_|\___|_|
                                                 `
		return logoStyle.Render(logo)
	}

	// For narrow terminals, use compact logo
	return w.renderLogoCompact()
}

// renderLogoCompact renders a compact text-based logo (3 lines).
func (w Welcome) renderLogoCompact() string {
	logoStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	if w.width >= 40 {
		return logoStyle.Render(`+--------------------+
|     bottrainer     |
+--------------------+`)
	}

	// Simple text logo for very narrow terminals - 1 line
	return logoStyle.Render("bottrainer - Bot Trainer Client")
}

// renderVersion renders the version subtitle.
func (w Welcome) renderVersion() string {
	return lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render("Bot Trainer Terminal Client v" + w.version)
}

// renderServerInfo renders server, user, and connection info (3 lines).
func (w Welcome) renderServerInfo() string {
	labelStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Width(8)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	user := w.username
	if user == "" {
		user = "not signed in"
	}

	lines := []string{
		labelStyle.Render("Server: ") + valueStyle.Render(w.server),
		labelStyle.Render("User:   ") + valueStyle.Render(user),
		labelStyle.Render("Status: ") + w.renderConnectionIndicator(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderServerInfoCompact renders a single-line server info (1 line).
func (w Welcome) renderServerInfoCompact() string {
	valueStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	return valueStyle.Render(w.server) + " | " + w.renderConnectionIndicator()
}

// renderConnectionIndicator renders the backend state with appropriate color.
func (w Welcome) renderConnectionIndicator() string {
	if w.connected {
		return lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Bold(true).
			Render("connected")
	}
	return lipgloss.NewStyle().
		Foreground(styles.Amber).
		Bold(true).
		Render("not connected")
}

// renderPressKey renders the "press any key" prompt.
func (w Welcome) renderPressKey() string {
	return lipgloss.NewStyle().
		Foreground(styles.Purple).
		Render("Press any key to continue...")
}

// =============================================================================
// ALTERNATE LOGO STYLES
// =============================================================================

// CompactLogo returns a smaller logo for narrow terminals (3 lines).
func CompactLogo() string {
	return lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true).
		Render(`+--------------------+
|     bottrainer     |
+--------------------+`)
}

// SimpleLogo returns a minimal text logo.
func SimpleLogo() string {
	return lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true).
		Render("bottrainer - Bot Trainer Client")
}

// =============================================================================
// KEYBOARD SHORTCUT HELP
// =============================================================================

// KeyboardShortcuts returns a formatted list of keyboard shortcuts.
func KeyboardShortcuts() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary)

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Submit / confirm"},
		{"Tab", "Next field / tab"},
		{"Shift+Tab", "Previous field / tab"},
		{"Up/Down", "Move selection"},
		{"PgUp/PgDn", "Page scroll"},
		{"Esc", "Dismiss / back"},
		{"?", "Help"},
		{"Ctrl+C", "Quit"},
	}

	lines := make([]string, len(shortcuts))
	for i, s := range shortcuts {
		lines[i] = keyStyle.Render(s.key) + descStyle.Render(s.desc)
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Bold(true)

	return titleStyle.Render("Keyboard Shortcuts") + "\n" +
		lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// =============================================================================
// WELCOME OVERLAY
// =============================================================================

// WelcomeOverlay creates a centered welcome overlay for use over other content.
func WelcomeOverlay(width, height int, version string) string {
	w := NewWelcome(nil)
	w.SetVersion(version)
	w.SetSize(width, height)

	overlay := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(w.View())

	return overlay
}
