// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// progress.go - Training progress indicator component
package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// TRAINING PROGRESS COMPONENT
// =============================================================================

// ProgressState represents the state of a training run.
type ProgressState string

const (
	ProgressStateIdle      ProgressState = "idle"
	ProgressStateRunning   ProgressState = "running"
	ProgressStateCompleted ProgressState = "completed"
	ProgressStateFailed    ProgressState = "failed"
)

// TrainingProgress displays the state of a training run: a progress bar,
// the backend's status message, and elapsed time since the run started.
type TrainingProgress struct {
	// Backend-reported state
	State    ProgressState
	Percent  int // 0-100
	Message  string
	ErrorMsg string

	// Time tracking
	StartedAt  time.Time
	FinishedAt time.Time

	// Display settings
	Width   int
	Compact bool // Single-line mode
}

// NewTrainingProgress creates a progress indicator in the idle state.
func NewTrainingProgress() *TrainingProgress {
	return &TrainingProgress{
		State: ProgressStateIdle,
		Width: 80,
	}
}

// SetStatus applies a polled status update from the backend.
func (p *TrainingProgress) SetStatus(state string, percent int, message string) {
	p.State = ProgressState(state)
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	p.Percent = percent
	p.Message = message
}

// SetError records the failure reason reported by the backend.
func (p *TrainingProgress) SetError(errMsg string) {
	p.State = ProgressStateFailed
	p.ErrorMsg = errMsg
}

// SetTimes records the run's start and finish timestamps.
func (p *TrainingProgress) SetTimes(started, finished time.Time) {
	p.StartedAt = started
	p.FinishedAt = finished
}

// SetWidth sets the render width.
func (p *TrainingProgress) SetWidth(width int) {
	p.Width = width
}

// IsActive returns true while a run is in progress.
func (p *TrainingProgress) IsActive() bool {
	return p.State == ProgressStateRunning
}

// GetElapsed returns the elapsed duration of the run. For a finished run
// it is the start-to-finish duration; for a running one, time since start.
func (p *TrainingProgress) GetElapsed() time.Duration {
	if p.StartedAt.IsZero() {
		return 0
	}
	if !p.FinishedAt.IsZero() {
		return p.FinishedAt.Sub(p.StartedAt)
	}
	return time.Since(p.StartedAt)
}

// =============================================================================
// RENDERING
// =============================================================================

// Render renders the progress indicator.
func (p *TrainingProgress) Render() string {
	if p.Compact {
		return p.renderCompact()
	}
	return p.renderFull()
}

// renderFull renders the boxed multi-line progress indicator.
func (p *TrainingProgress) renderFull() string {
	width := p.Width
	if width <= 0 {
		width = 80
	}
	contentWidth := width - 4

	if contentWidth < 30 {
		return p.renderCompact()
	}

	var lines []string

	lines = append(lines, p.renderStateLine())
	lines = append(lines, p.renderBar(contentWidth))

	if p.Message != "" {
		msgStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		lines = append(lines, msgStyle.Render(p.Message))
	}

	if p.ErrorMsg != "" {
		errStyle := lipgloss.NewStyle().Foreground(styles.Rose)
		lines = append(lines, errStyle.Render(p.ErrorMsg))
	}

	if !p.StartedAt.IsZero() {
		lines = append(lines, p.renderTimeLine())
	}

	content := strings.Join(lines, "\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.stateColor()).
		Padding(0, 1).
		Width(contentWidth)

	return boxStyle.Render(content)
}

// renderCompact renders a single-line progress indicator.
// Format: running  42% [====      ] Training intent classifier | 1m 12s
func (p *TrainingProgress) renderCompact() string {
	var parts []string

	stateStyle := lipgloss.NewStyle().Bold(true).Foreground(p.stateColor())
	parts = append(parts, stateStyle.Render(string(p.State)))

	percentStr := fmt.Sprintf("%3d%%", p.Percent)
	barStyle := lipgloss.NewStyle().Foreground(p.stateColor())
	parts = append(parts, barStyle.Render(percentStr+" "+renderBarString(10, p.Percent)))

	if p.Message != "" {
		msgStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		parts = append(parts, msgStyle.Render(p.Message))
	}

	if !p.StartedAt.IsZero() {
		timeStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		parts = append(parts, timeStyle.Render(formatProgressDuration(p.GetElapsed())))
	}

	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	return strings.Join(parts, sep)
}

// renderStateLine renders the state header line with its status indicator.
func (p *TrainingProgress) renderStateLine() string {
	stateStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(p.stateColor())

	var label string
	switch p.State {
	case ProgressStateRunning:
		label = styles.StatusIndicators.Pending + " Training in progress"
	case ProgressStateCompleted:
		label = styles.StatusIndicators.Success + " Training completed"
	case ProgressStateFailed:
		label = styles.StatusIndicators.Error + " Training failed"
	default:
		label = styles.StatusIndicators.Info + " No training run"
	}

	return stateStyle.Render(label)
}

// renderBar renders the progress bar line with its percentage.
func (p *TrainingProgress) renderBar(width int) string {
	barWidth := width - 10
	if barWidth < 10 {
		barWidth = 10
	}

	bar := renderBarString(barWidth, p.Percent)

	percentStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(p.stateColor())

	barStyle := lipgloss.NewStyle().
		Foreground(p.stateColor())

	return barStyle.Render(bar) + " " + percentStyle.Render(fmt.Sprintf("%d%%", p.Percent))
}

// renderTimeLine renders the elapsed time line.
func (p *TrainingProgress) renderTimeLine() string {
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	timeStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)

	label := "Elapsed: "
	if !p.FinishedAt.IsZero() {
		label = "Duration: "
	}

	return labelStyle.Render(label) + timeStyle.Render(formatProgressDuration(p.GetElapsed()))
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// stateColor returns the accent color for the current state.
func (p *TrainingProgress) stateColor() lipgloss.AdaptiveColor {
	switch p.State {
	case ProgressStateRunning:
		return styles.Purple
	case ProgressStateCompleted:
		return styles.Emerald
	case ProgressStateFailed:
		return styles.Rose
	default:
		return styles.TextMuted
	}
}

// renderBarString builds an ASCII progress bar of the given width.
func renderBarString(width int, percent int) string {
	if width < 1 {
		width = 1
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := width * percent / 100
	empty := width - filled

	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", empty) + "]"
}

// formatProgressDuration formats a duration for display.
func formatProgressDuration(d time.Duration) string {
	seconds := int(d.Seconds())

	if seconds < 1 {
		ms := int(d.Milliseconds())
		return fmt.Sprintf("%dms", ms)
	}

	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	secs := seconds % 60

	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, secs)
	}

	hours := minutes / 60
	mins := minutes % 60

	return fmt.Sprintf("%dh %dm", hours, mins)
}
