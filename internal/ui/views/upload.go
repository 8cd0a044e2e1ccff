// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// upload.go - Dashboard upload tab: parse a local dataset file and push it.
package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/dataset"
	"github.com/jeranaias/bottrainer-tui/internal/ui/components"
	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// UPLOAD TAB
// =============================================================================

// UploadTab lets the user pick a local CSV/JSON file, preview the parsed
// summary, and upload the analysis to the server.
type UploadTab struct {
	client *api.Client
	theme  *styles.Theme

	pathInput *components.InputArea
	summary   *dataset.Summary
	sentences []string

	busy    bool
	spinner components.Spinner
	errMsg  string
	okMsg   string

	width  int
	height int
}

// NewUploadTab creates the upload tab.
func NewUploadTab(theme *styles.Theme, client *api.Client) *UploadTab {
	input := components.NewFormInput(theme, "path/to/dataset.csv")
	return &UploadTab{
		client:    client,
		theme:     theme,
		pathInput: input,
		spinner:   components.NewRequestSpinner("Uploading"),
	}
}

// SetSize updates the tab dimensions.
func (t *UploadTab) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.pathInput.SetWidth(min(width-6, 60))
}

// Update handles messages for the upload tab.
func (t *UploadTab) Update(msg tea.Msg) (*UploadTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return t.submit()
		case "ctrl+u":
			if t.summary != nil && !t.busy {
				t.busy = true
				t.errMsg = ""
				t.okMsg = ""
				return t, tea.Batch(t.spinner.Start(), saveDatasetCmd(t.client, *t.summary))
			}
			return t, nil
		}

	case DatasetParsedMsg:
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			t.summary = nil
			return t, nil
		}
		t.errMsg = ""
		t.okMsg = ""
		summary := msg.Summary
		t.summary = &summary
		t.sentences = msg.Sentences
		// Cache the parsed copy so the annotation flow and the
		// overview fallback work without re-parsing.
		return t, cacheDatasetCmd(summary, msg.Sentences)

	case DatasetCachedMsg:
		// Caching is best effort; a full disk must not block the
		// upload itself.
		return t, nil

	case DatasetSavedMsg:
		t.busy = false
		t.spinner.Stop()
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.errMsg = ""
		t.okMsg = msg.Resp.Message
		// The server list now contains the new entry; mirror the
		// selection into the local cache marker.
		cmds := []tea.Cmd{loadDatasetsCmd(t.client)}
		if t.summary != nil {
			cmds = append(cmds, selectCachedDatasetCmd(t.summary.Checksum))
		}
		return t, tea.Batch(cmds...)
	}

	if t.busy {
		var cmd tea.Cmd
		t.spinner, cmd = t.spinner.Update(msg)
		return t, cmd
	}

	var cmd tea.Cmd
	t.pathInput, cmd = t.pathInput.Update(msg)
	return t, cmd
}

// submit parses the file at the entered path.
func (t *UploadTab) submit() (*UploadTab, tea.Cmd) {
	path := strings.TrimSpace(t.pathInput.Value())
	if path == "" {
		t.errMsg = "Enter a file path."
		return t, nil
	}
	t.errMsg = ""
	t.okMsg = ""
	return t, parseDatasetCmd(path)
}

// View renders the path form and the parsed preview.
func (t *UploadTab) View() string {
	titleStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	valueStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Upload dataset"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("File path (.csv or .json):"))
	b.WriteString("\n")
	b.WriteString(t.pathInput.View())
	b.WriteString("\n\n")

	if t.busy {
		b.WriteString(t.spinner.View())
		b.WriteString("\n")
	}

	if t.summary != nil {
		b.WriteString(titleStyle.Render("Preview"))
		b.WriteString("\n")
		row := func(label, value string) {
			b.WriteString(labelStyle.Render(fmt.Sprintf("  %-12s", label)))
			b.WriteString(valueStyle.Render(value))
			b.WriteString("\n")
		}
		row("File", t.summary.Filename)
		row("Rows", fmt.Sprintf("%d", t.summary.Rows))
		row("Sentences", fmt.Sprintf("%d", len(t.sentences)))
		row("Columns", strings.Join(t.summary.Columns, ", "))
		row("Intents", fmt.Sprintf("%d distinct", len(t.summary.Intents)))
		if len(t.summary.Entities) > 0 {
			row("Entities", fmt.Sprintf("%d distinct", len(t.summary.Entities)))
		}
		row("Checksum", truncate(t.summary.Checksum, 16))
		b.WriteString("\n")
	}

	if t.errMsg != "" {
		b.WriteString(components.InlineError(t.errMsg))
		b.WriteString("\n")
	}
	if t.okMsg != "" {
		b.WriteString(components.InlineSuccess(t.okMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if t.summary != nil {
		b.WriteString(hintStyle.Render("[Enter] Re-parse  [Ctrl+U] Upload to server"))
	} else {
		b.WriteString(hintStyle.Render("[Enter] Parse file"))
	}
	return b.String()
}
