// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// train.go - Dashboard train tab: launch training and poll its status.
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
// TRAIN TAB
// =============================================================================

// TrainTab starts background training over the selected dataset's
// annotations and polls the status endpoint while it runs.
type TrainTab struct {
	client *api.Client
	theme  *styles.Theme

	checksum string
	status   *api.TrainStatus
	progress *components.TrainingProgress
	polling  bool
	errMsg   string

	width  int
	height int
}

// NewTrainTab creates the train tab.
func NewTrainTab(theme *styles.Theme, client *api.Client) *TrainTab {
	return &TrainTab{
		client:   client,
		theme:    theme,
		progress: components.NewTrainingProgress(),
	}
}

// SetSize updates the tab dimensions.
func (t *TrainTab) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.progress.SetWidth(min(width-4, 60))
}

// Refresh records the active dataset and fetches the current status.
func (t *TrainTab) Refresh(checksum string) tea.Cmd {
	t.checksum = checksum
	t.errMsg = ""
	return trainStatusCmd(t.client)
}

// Update handles messages for the train tab.
func (t *TrainTab) Update(msg tea.Msg) (*TrainTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "s", "enter":
			return t.start()
		case "r":
			return t, trainStatusCmd(t.client)
		}

	case TrainStartedMsg:
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.errMsg = ""
		t.applyStatus(&msg.Resp.Status)
		return t, t.pollIfRunning()

	case TrainStatusMsg:
		if msg.Err != nil {
			t.polling = false
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.errMsg = ""
		t.applyStatus(msg.Status)
		return t, t.pollIfRunning()

	case TrainPollMsg:
		if !t.polling {
			return t, nil
		}
		return t, trainStatusCmd(t.client)
	}
	return t, nil
}

// start kicks off training for the selected dataset.
func (t *TrainTab) start() (*TrainTab, tea.Cmd) {
	if t.checksum == "" {
		t.errMsg = "Select a dataset on the Overview tab first."
		return t, nil
	}
	if t.status != nil && t.status.State == "running" {
		t.errMsg = "Training is already in progress."
		return t, nil
	}
	t.errMsg = ""
	return t, startTrainingCmd(t.client, t.checksum)
}

// applyStatus mirrors the server status into the progress widget.
func (t *TrainTab) applyStatus(status *api.TrainStatus) {
	t.status = status
	t.progress.SetStatus(status.State, status.Progress, status.Message)
	if status.Error != "" {
		t.progress.SetError(status.Error)
	}
}

// pollIfRunning schedules the next poll while the server reports a
// running job, and stops the loop otherwise.
func (t *TrainTab) pollIfRunning() tea.Cmd {
	if t.status != nil && t.status.State == "running" {
		t.polling = true
		return trainPollCmd()
	}
	t.polling = false
	return nil
}

// View renders the training controls and status.
func (t *TrainTab) View() string {
	titleStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Train"))
	b.WriteString("\n\n")

	if t.checksum == "" {
		b.WriteString(lipgloss.NewStyle().Foreground(styles.TextMuted).
			Render("Select a dataset on the Overview tab, annotate it, then train."))
		return b.String()
	}

	b.WriteString(labelStyle.Render("Dataset: "))
	b.WriteString(lipgloss.NewStyle().Foreground(styles.TextPrimary).
		Render(truncate(t.checksum, 16)))
	b.WriteString("\n\n")

	b.WriteString(t.progress.Render())
	b.WriteString("\n")

	if t.errMsg != "" {
		b.WriteString(components.InlineError(t.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if t.status != nil && t.status.State == "running" {
		b.WriteString(hintStyle.Render("Polling every 2s. [r] Refresh now"))
	} else {
		b.WriteString(hintStyle.Render("[s] Start training  [r] Refresh status"))
	}
	return b.String()
}
