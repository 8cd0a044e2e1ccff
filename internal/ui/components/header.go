// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// header.go - Title bar with bottrainer branding and workspace context
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header represents the title bar component. It shows the brand, the active
// workspace, and the server the client is talking to.
type Header struct {
	Title     string // Main title (default: "bottrainer")
	Workspace string // Active workspace name
	Server    string // Backend server host
	AdminUser bool   // True when the signed-in user has the admin role
	Width     int    // Available width
	theme     *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "bottrainer",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetWorkspace updates the active workspace name.
func (h *Header) SetWorkspace(name string) {
	h.Workspace = name
}

// SetServer updates the backend server host.
func (h *Header) SetServer(server string) {
	h.Server = server
}

// SetAdmin updates the admin badge state.
func (h *Header) SetAdmin(admin bool) {
	h.AdminUser = admin
}

// View renders the header component.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}

	innerWidth := width - 6

	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Cyan)

	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Purple)

	brand := accentStyle.Render("< ") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(" >")

	// Subtitle line with workspace and server context
	subtitleParts := []string{}

	if h.Workspace != "" {
		wsStyle := lipgloss.NewStyle().
			Foreground(styles.TextSecondary)
		subtitleParts = append(subtitleParts, wsStyle.Render(h.Workspace))
	}

	if h.Server != "" {
		serverStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted)
		subtitleParts = append(subtitleParts, serverStyle.Render(h.Server))
	}

	if h.AdminUser {
		adminBadge := lipgloss.NewStyle().
			Foreground(styles.Amber).
			Bold(true).
			Render("[ADMIN]")
		subtitleParts = append(subtitleParts, adminBadge)
	}

	subtitle := strings.Join(subtitleParts, " ")

	brandLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Render(brand)

	subtitleLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Foreground(styles.TextMuted).
		Render(subtitle)

	content := lipgloss.JoinVertical(lipgloss.Center, brandLine, subtitleLine)

	headerBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Background(styles.SurfaceDim).
		Padding(0, 2).
		Width(width)

	return headerBox.Render(content)
}

// ViewCompact renders a compact single-line header for narrow terminals.
func (h *Header) ViewCompact() string {
	// Compact format: <bottrainer> | workspace | server | [ADMIN]
	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Cyan)

	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Purple)

	brand := accentStyle.Render("<") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(">")

	parts := []string{brand}

	if h.Workspace != "" {
		wsStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted)
		parts = append(parts, wsStyle.Render(h.Workspace))
	}

	if h.Server != "" {
		serverStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted)
		parts = append(parts, serverStyle.Render(h.Server))
	}

	if h.AdminUser {
		adminBadge := lipgloss.NewStyle().
			Foreground(styles.Amber).
			Bold(true).
			Render("[ADMIN]")
		parts = append(parts, adminBadge)
	}

	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	return strings.Join(parts, separator)
}

// =============================================================================
// GRADIENT TITLE (for terminals with true color support)
// =============================================================================

// GradientTitle creates a gradient text effect.
// Note: This works best in terminals with true color support.
func GradientTitle(text string, startColor, endColor lipgloss.Color) string {
	if len(text) == 0 {
		return ""
	}

	// For short text, just use the start color
	if len(text) < 3 {
		return lipgloss.NewStyle().Foreground(startColor).Render(text)
	}

	// Build gradient character by character
	var result strings.Builder
	chars := []rune(text)
	n := len(chars)

	for i, char := range chars {
		t := float64(i) / float64(n-1)
		color := interpolateColor(startColor, endColor, t)

		style := lipgloss.NewStyle().Foreground(color)
		result.WriteString(style.Render(string(char)))
	}

	return result.String()
}

// interpolateColor interpolates between two hex colors.
func interpolateColor(start, end lipgloss.Color, t float64) lipgloss.Color {
	startHex := string(start)
	endHex := string(end)

	if len(startHex) > 0 && startHex[0] == '#' {
		startHex = startHex[1:]
	}
	if len(endHex) > 0 && endHex[0] == '#' {
		endHex = endHex[1:]
	}

	sr, sg, sb := parseHexColor(startHex)
	er, eg, eb := parseHexColor(endHex)

	r := uint8(float64(sr) + t*(float64(er)-float64(sr)))
	g := uint8(float64(sg) + t*(float64(eg)-float64(sg)))
	b := uint8(float64(sb) + t*(float64(eb)-float64(sb)))

	return lipgloss.Color(formatHexColor(r, g, b))
}

// parseHexColor parses a hex color string into RGB components.
func parseHexColor(hex string) (r, g, b uint8) {
	if len(hex) < 6 {
		return 255, 255, 255 // Default to white
	}

	r = parseHexByte(hex[0:2])
	g = parseHexByte(hex[2:4])
	b = parseHexByte(hex[4:6])
	return
}

// parseHexByte parses a two-character hex string into a byte.
func parseHexByte(s string) uint8 {
	if len(s) != 2 {
		return 255
	}

	var result uint8
	for _, c := range s {
		result *= 16
		switch {
		case c >= '0' && c <= '9':
			result += uint8(c - '0')
		case c >= 'a' && c <= 'f':
			result += uint8(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			result += uint8(c - 'A' + 10)
		default:
			return 255
		}
	}
	return result
}

// formatHexColor formats RGB values as a hex color string.
func formatHexColor(r, g, b uint8) string {
	const hexChars = "0123456789ABCDEF"
	return "#" +
		string(hexChars[r>>4]) + string(hexChars[r&0xF]) +
		string(hexChars[g>>4]) + string(hexChars[g&0xF]) +
		string(hexChars[b>>4]) + string(hexChars[b&0xF])
}
