// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// viewport.go - Scrollable content viewport with scroll indicators and scroll bar
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// CONTENT VIEWPORT COMPONENT - Scrollable text area with indicators
// =============================================================================

// ContentViewport represents a scrollable text viewport with proper scroll
// tracking. It backs the review table, training history, and help views.
type ContentViewport struct {
	viewport   viewport.Model
	content    string
	width      int
	height     int
	ready      bool
	autoScroll bool // Auto-scroll to bottom on new content
	theme      *styles.Theme

	// Scroll position tracking for proper scroll behavior
	scrollY    int // Current scroll position (line offset)
	maxScrollY int // Maximum scroll position (total lines - visible height)
}

// NewContentViewport creates a new ContentViewport
func NewContentViewport(theme *styles.Theme) *ContentViewport {
	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	return &ContentViewport{
		viewport:   vp,
		content:    "",
		width:      80,
		height:     20,
		ready:      false,
		autoScroll: false,
		theme:      theme,
	}
}

// SetSize updates the viewport dimensions
func (cv *ContentViewport) SetSize(width, height int) {
	cv.width = width
	cv.height = height
	cv.viewport.Width = width - 2 // Account for scroll indicator
	cv.viewport.Height = height
	cv.ready = true

	// Re-render content with new size
	cv.updateContent()
}

// SetContent replaces the viewport content
func (cv *ContentViewport) SetContent(content string) {
	cv.content = content
	cv.updateContent()

	if cv.autoScroll {
		cv.ScrollToBottom()
	}
}

// AppendContent adds lines to the end of the viewport content. Used by the
// training history view to extend the log as new runs come in.
func (cv *ContentViewport) AppendContent(lines string) {
	if cv.content == "" {
		cv.content = lines
	} else {
		cv.content = cv.content + "\n" + lines
	}
	cv.updateContent()

	if cv.autoScroll {
		cv.ScrollToBottom()
	}
}

// updateContent re-renders the wrapped content and updates scroll tracking
func (cv *ContentViewport) updateContent() {
	// Wrap content for proper width calculation
	wrappedContent := wrapContentForViewport(cv.content, cv.width-2)
	cv.viewport.SetContent(wrappedContent)

	// Update scroll position tracking
	lines := strings.Count(wrappedContent, "\n") + 1
	cv.maxScrollY = maxInt0(0, lines-cv.height)

	// Sync scrollY with viewport's actual position
	cv.scrollY = cv.viewport.YOffset

	// Ensure scrollY is within bounds
	if cv.scrollY > cv.maxScrollY {
		cv.scrollY = cv.maxScrollY
	}
	if cv.scrollY < 0 {
		cv.scrollY = 0
	}
}

// ScrollToBottom scrolls to the bottom of the viewport
func (cv *ContentViewport) ScrollToBottom() {
	cv.viewport.GotoBottom()
	cv.scrollY = cv.maxScrollY
	cv.autoScroll = true
}

// ScrollToTop scrolls to the top of the viewport
func (cv *ContentViewport) ScrollToTop() {
	cv.viewport.GotoTop()
	cv.scrollY = 0
	cv.autoScroll = false
}

// ScrollUp scrolls up by the specified number of lines
func (cv *ContentViewport) ScrollUp(lines int) {
	cv.autoScroll = false // User took control - disable auto-scroll
	cv.scrollY = maxInt0(0, cv.scrollY-lines)
	cv.viewport.SetYOffset(cv.scrollY)
}

// ScrollDown scrolls down by the specified number of lines
func (cv *ContentViewport) ScrollDown(lines int) {
	cv.scrollY = minInt(cv.maxScrollY, cv.scrollY+lines)
	cv.viewport.SetYOffset(cv.scrollY)
}

// PageUp scrolls up by one page
func (cv *ContentViewport) PageUp() {
	cv.autoScroll = false // User took control
	cv.scrollY = maxInt0(0, cv.scrollY-cv.height)
	cv.viewport.SetYOffset(cv.scrollY)
}

// PageDown scrolls down by one page
func (cv *ContentViewport) PageDown() {
	cv.scrollY = minInt(cv.maxScrollY, cv.scrollY+cv.height)
	cv.viewport.SetYOffset(cv.scrollY)
}

// AtTop returns true if the viewport is at the top
func (cv *ContentViewport) AtTop() bool {
	return cv.viewport.AtTop()
}

// AtBottom returns true if the viewport is at the bottom
func (cv *ContentViewport) AtBottom() bool {
	return cv.viewport.AtBottom()
}

// ScrollPercent returns the scroll position as a percentage
func (cv *ContentViewport) ScrollPercent() float64 {
	return cv.viewport.ScrollPercent()
}

// EnableAutoScroll enables automatic scrolling to bottom
func (cv *ContentViewport) EnableAutoScroll() {
	cv.autoScroll = true
}

// DisableAutoScroll disables automatic scrolling
func (cv *ContentViewport) DisableAutoScroll() {
	cv.autoScroll = false
}

// Update handles viewport updates with proper scroll tracking
func (cv *ContentViewport) Update(msg tea.Msg) (*ContentViewport, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			cv.ScrollUp(1)
			return cv, nil
		case "down", "j":
			cv.ScrollDown(1)
			return cv, nil
		case "pgup":
			cv.PageUp()
			return cv, nil
		case "pgdn", "pgdown":
			cv.PageDown()
			return cv, nil
		case "home", "g":
			cv.ScrollToTop()
			return cv, nil
		case "end", "G":
			cv.ScrollToBottom()
			return cv, nil
		}

	case tea.MouseMsg:
		// Handle mouse wheel scrolling with smooth behavior
		switch msg.Type {
		case tea.MouseWheelUp:
			cv.ScrollUp(3)
			return cv, nil
		case tea.MouseWheelDown:
			cv.ScrollDown(3)
			return cv, nil
		}
	}

	// Let the underlying viewport handle any other messages
	cv.viewport, cmd = cv.viewport.Update(msg)

	// Sync our scroll tracking with viewport's actual position
	cv.scrollY = cv.viewport.YOffset

	return cv, cmd
}

// View renders the viewport with scroll indicators
func (cv *ContentViewport) View() string {
	if !cv.ready {
		return ""
	}

	// Main viewport content
	viewportContent := cv.viewport.View()

	// Scroll indicators
	topIndicator := cv.renderTopIndicator()
	bottomIndicator := cv.renderBottomIndicator()

	// Build the complete view
	var result strings.Builder

	// Top indicator
	if topIndicator != "" {
		result.WriteString(topIndicator)
		result.WriteString("\n")
	}

	// Viewport content
	result.WriteString(viewportContent)

	// Bottom indicator
	if bottomIndicator != "" {
		result.WriteString("\n")
		result.WriteString(bottomIndicator)
	}

	return result.String()
}

// ViewWithBorder renders the viewport with a decorative border
func (cv *ContentViewport) ViewWithBorder() string {
	content := cv.View()

	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Width(cv.width)

	return borderStyle.Render(content)
}

// ==========================================================================
// SCROLL INDICATORS
// ==========================================================================

// renderTopIndicator renders the "more above" indicator
func (cv *ContentViewport) renderTopIndicator() string {
	if cv.AtTop() {
		return ""
	}

	indicatorStyle := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Width(cv.width).
		Align(lipgloss.Center)

	arrowStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan)

	textStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	indicator := arrowStyle.Render("^") + " " +
		textStyle.Render("scroll up for more") + " " +
		arrowStyle.Render("^")

	return indicatorStyle.Render(indicator)
}

// renderBottomIndicator renders the "more below" indicator with scroll position
func (cv *ContentViewport) renderBottomIndicator() string {
	if cv.AtBottom() {
		return ""
	}

	indicatorStyle := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Width(cv.width).
		Align(lipgloss.Center)

	arrowStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan)

	textStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	// Add scroll position indicator
	posStyle := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Bold(true)

	scrollPos := ""
	if cv.maxScrollY > 0 {
		scrollPos = posStyle.Render(fmt.Sprintf(" [%d/%d] ", cv.scrollY+1, cv.maxScrollY+1))
	}

	indicator := arrowStyle.Render("v") + scrollPos +
		textStyle.Render("scroll down for more") + " " +
		arrowStyle.Render("v")

	return indicatorStyle.Render(indicator)
}

// =============================================================================
// SCROLL BAR COMPONENT - Vertical scroll bar
// =============================================================================

// ScrollBar represents a vertical scroll bar
type ScrollBar struct {
	Height       int
	ScrollPos    float64 // 0.0 to 1.0
	ContentRatio float64 // visible / total
	theme        *styles.Theme
}

// NewScrollBar creates a new ScrollBar
func NewScrollBar(theme *styles.Theme) *ScrollBar {
	return &ScrollBar{
		Height:       20,
		ScrollPos:    0.0,
		ContentRatio: 1.0,
		theme:        theme,
	}
}

// SetHeight sets the scroll bar height
func (sb *ScrollBar) SetHeight(height int) {
	sb.Height = height
}

// SetPosition sets the scroll position (0.0 to 1.0)
func (sb *ScrollBar) SetPosition(pos float64) {
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	sb.ScrollPos = pos
}

// SetContentRatio sets the visible/total content ratio
func (sb *ScrollBar) SetContentRatio(ratio float64) {
	if ratio < 0.1 {
		ratio = 0.1
	}
	if ratio > 1 {
		ratio = 1
	}
	sb.ContentRatio = ratio
}

// View renders the scroll bar
func (sb *ScrollBar) View() string {
	if sb.Height <= 0 || sb.ContentRatio >= 1.0 {
		// No scrolling needed - show faded track
		trackStyle := lipgloss.NewStyle().
			Foreground(styles.Overlay)
		return trackStyle.Render(strings.Repeat("|", sb.Height))
	}

	// Calculate thumb size and position
	thumbSize := int(float64(sb.Height) * sb.ContentRatio)
	if thumbSize < 1 {
		thumbSize = 1
	}
	if thumbSize > sb.Height {
		thumbSize = sb.Height
	}

	// Calculate thumb position
	scrollableTrack := sb.Height - thumbSize
	thumbPos := int(float64(scrollableTrack) * sb.ScrollPos)
	if thumbPos < 0 {
		thumbPos = 0
	}
	if thumbPos > scrollableTrack {
		thumbPos = scrollableTrack
	}

	// Build the scroll bar
	var result strings.Builder

	trackStyle := lipgloss.NewStyle().
		Foreground(styles.Overlay)

	thumbStyle := lipgloss.NewStyle().
		Foreground(styles.Purple)

	for i := 0; i < sb.Height; i++ {
		if i >= thumbPos && i < thumbPos+thumbSize {
			result.WriteString(thumbStyle.Render("#"))
		} else {
			result.WriteString(trackStyle.Render("|"))
		}
		if i < sb.Height-1 {
			result.WriteString("\n")
		}
	}

	return result.String()
}

// =============================================================================
// VIEWPORT WITH SCROLLBAR - Combined viewport and scroll bar
// =============================================================================

// ViewportWithScrollbar pairs the content viewport with a scroll bar
type ViewportWithScrollbar struct {
	viewport  *ContentViewport
	scrollbar *ScrollBar
	width     int
	height    int
	theme     *styles.Theme
}

// NewViewportWithScrollbar creates a combined viewport and scrollbar
func NewViewportWithScrollbar(theme *styles.Theme) *ViewportWithScrollbar {
	return &ViewportWithScrollbar{
		viewport:  NewContentViewport(theme),
		scrollbar: NewScrollBar(theme),
		width:     80,
		height:    20,
		theme:     theme,
	}
}

// SetSize updates dimensions
func (vws *ViewportWithScrollbar) SetSize(width, height int) {
	vws.width = width
	vws.height = height
	vws.viewport.SetSize(width-3, height) // Reserve space for scrollbar
	vws.scrollbar.SetHeight(height)
}

// SetContent replaces the viewport content
func (vws *ViewportWithScrollbar) SetContent(content string) {
	vws.viewport.SetContent(content)
	vws.updateScrollbar()
}

// AppendContent adds lines to the end of the content
func (vws *ViewportWithScrollbar) AppendContent(lines string) {
	vws.viewport.AppendContent(lines)
	vws.updateScrollbar()
}

// updateScrollbar updates the scrollbar position
func (vws *ViewportWithScrollbar) updateScrollbar() {
	vws.scrollbar.SetPosition(vws.viewport.ScrollPercent())

	// Use actual content height from the viewport for accurate scrollbar sizing
	totalContent := vws.viewport.viewport.TotalLineCount()
	if totalContent > 0 {
		ratio := float64(vws.height) / float64(totalContent)
		vws.scrollbar.SetContentRatio(ratio)
	}
}

// Update handles updates
func (vws *ViewportWithScrollbar) Update(msg tea.Msg) (*ViewportWithScrollbar, tea.Cmd) {
	var cmd tea.Cmd
	vws.viewport, cmd = vws.viewport.Update(msg)
	vws.updateScrollbar()
	return vws, cmd
}

// View renders the viewport with scrollbar
func (vws *ViewportWithScrollbar) View() string {
	viewportView := vws.viewport.View()
	scrollbarView := vws.scrollbar.View()

	// Join horizontally
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		viewportView,
		" ",
		scrollbarView,
	)
}

// Accessor methods for the embedded viewport
func (vws *ViewportWithScrollbar) ScrollToBottom() {
	vws.viewport.ScrollToBottom()
	vws.updateScrollbar()
}

func (vws *ViewportWithScrollbar) ScrollToTop() {
	vws.viewport.ScrollToTop()
	vws.updateScrollbar()
}

func (vws *ViewportWithScrollbar) EnableAutoScroll() {
	vws.viewport.EnableAutoScroll()
}

func (vws *ViewportWithScrollbar) DisableAutoScroll() {
	vws.viewport.DisableAutoScroll()
}

// =============================================================================
// CONTENT WRAPPING WITH RUNEWIDTH SUPPORT
// =============================================================================

// wrapContentForViewport wraps content to fit within the specified width,
// using go-runewidth for proper Unicode and wide character handling.
// Annotation labels and review text may contain wide characters and emoji.
func wrapContentForViewport(content string, width int) string {
	if width <= 0 {
		return content
	}

	var wrapped strings.Builder
	for _, line := range strings.Split(content, "\n") {
		// Check if line already fits
		lineWidth := runewidth.StringWidth(line)
		if lineWidth <= width {
			if wrapped.Len() > 0 {
				wrapped.WriteByte('\n')
			}
			wrapped.WriteString(line)
			continue
		}

		// Wrap long lines using word boundaries when possible
		wrappedLine := wordWrapWithRunewidth(line, width)
		if wrapped.Len() > 0 {
			wrapped.WriteByte('\n')
		}
		wrapped.WriteString(wrappedLine)
	}

	return wrapped.String()
}

// wordWrapWithRunewidth wraps a single line to the specified width,
// using runewidth for proper character width calculation.
// It tries to break at word boundaries when possible.
func wordWrapWithRunewidth(line string, width int) string {
	if width <= 0 {
		return line
	}

	runes := []rune(line)
	if len(runes) == 0 {
		return ""
	}

	var result strings.Builder
	var currentLine strings.Builder
	currentWidth := 0
	lastSpaceIdx := -1

	for i, r := range runes {
		charWidth := runewidth.RuneWidth(r)

		// Track last space position for word-boundary breaks
		if r == ' ' {
			lastSpaceIdx = i
		}

		// Check if adding this character would exceed width
		if currentWidth+charWidth > width {
			// Try to break at word boundary
			if lastSpaceIdx > 0 && currentLine.Len() > 0 {
				lineStr := currentLine.String()

				if result.Len() > 0 {
					result.WriteByte('\n')
				}
				result.WriteString(strings.TrimRight(lineStr, " "))

				// Start new line with the overflowing character
				currentLine.Reset()
				currentLine.WriteRune(r)
				currentWidth = charWidth
				lastSpaceIdx = -1
			} else {
				// No good break point, force break at current position
				if currentLine.Len() > 0 {
					if result.Len() > 0 {
						result.WriteByte('\n')
					}
					result.WriteString(currentLine.String())
					currentLine.Reset()
				}
				currentLine.WriteRune(r)
				currentWidth = charWidth
				lastSpaceIdx = -1
			}
		} else {
			currentLine.WriteRune(r)
			currentWidth += charWidth
		}
	}

	// Write remaining content
	if currentLine.Len() > 0 {
		if result.Len() > 0 {
			result.WriteByte('\n')
		}
		result.WriteString(currentLine.String())
	}

	return result.String()
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// maxInt0 returns the maximum of two integers (renamed to avoid conflicts)
// Used for scroll position calculations
func maxInt0(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// minInt returns the minimum of two integers
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// GetScrollPosition returns the current scroll position as a formatted string
// for display in the UI (e.g., "[15/100]")
func (cv *ContentViewport) GetScrollPosition() string {
	if cv.maxScrollY <= 0 {
		return ""
	}
	return fmt.Sprintf("[%d/%d]", cv.scrollY+1, cv.maxScrollY+1)
}

// GetScrollY returns the current Y scroll offset
func (cv *ContentViewport) GetScrollY() int {
	return cv.scrollY
}

// GetMaxScrollY returns the maximum Y scroll offset
func (cv *ContentViewport) GetMaxScrollY() int {
	return cv.maxScrollY
}
