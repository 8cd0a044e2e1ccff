// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// overview.go - Dashboard overview tab: workspaces and datasets.
package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/storage"
	"github.com/jeranaias/bottrainer-tui/internal/ui/components"
	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// OVERVIEW TAB
// =============================================================================

// overviewPane identifies which list has focus.
type overviewPane int

const (
	paneWorkspaces overviewPane = iota
	paneDatasets
)

// OverviewTab lists workspaces and datasets and manages the active
// selection of both.
type OverviewTab struct {
	client *api.Client
	theme  *styles.Theme

	workspaces *api.WorkspaceList
	datasets   *api.DatasetRoot

	// cached is the locally stored copy of the selected dataset,
	// rendered when the server list is unavailable.
	cached *storage.StoredDataset

	pane      overviewPane
	wsCursor  int
	dsCursor  int
	loading   bool
	errMsg    string
	statusMsg string

	// Workspace creation mini-form
	creating  bool
	nameInput *components.InputArea

	width  int
	height int
}

// NewOverviewTab creates the overview tab.
func NewOverviewTab(theme *styles.Theme, client *api.Client) *OverviewTab {
	return &OverviewTab{
		client:    client,
		theme:     theme,
		loading:   true,
		nameInput: components.NewFormInput(theme, "workspace name"),
	}
}

// SetSize updates the tab dimensions.
func (t *OverviewTab) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.nameInput.SetWidth(min(width-8, 40))
}

// SelectedChecksum returns the checksum of the active dataset.
func (t *OverviewTab) SelectedChecksum() string {
	if t.datasets == nil || t.datasets.Selected == nil {
		return ""
	}
	return t.datasets.Selected.Checksum
}

// SelectedFilename returns the filename of the active dataset.
func (t *OverviewTab) SelectedFilename() string {
	if t.datasets == nil || t.datasets.Selected == nil {
		return ""
	}
	return t.datasets.Selected.Filename
}

// SelectedWorkspaceID returns the ID of the active workspace.
func (t *OverviewTab) SelectedWorkspaceID() string {
	if t.workspaces == nil {
		return ""
	}
	return t.workspaces.SelectedWorkspaceID
}

// SelectedWorkspaceName returns the name of the active workspace.
func (t *OverviewTab) SelectedWorkspaceName() string {
	if t.workspaces == nil {
		return ""
	}
	for _, ws := range t.workspaces.Workspaces {
		if ws.ID == t.workspaces.SelectedWorkspaceID {
			return ws.Name
		}
	}
	return ""
}

// Update handles messages for the overview tab.
func (t *OverviewTab) Update(msg tea.Msg) (*OverviewTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return t.handleKey(msg)

	case WorkspacesLoadedMsg:
		t.loading = false
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.errMsg = ""
		t.workspaces = msg.List
		if t.wsCursor >= len(msg.List.Workspaces) {
			t.wsCursor = 0
		}
		return t, nil

	case DatasetsLoadedMsg:
		t.loading = false
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.errMsg = ""
		t.datasets = msg.Root
		if t.dsCursor >= len(msg.Root.Entries) {
			t.dsCursor = 0
		}
		return t, nil

	case WorkspaceSelectedMsg:
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.statusMsg = "Workspace selected."
		// Datasets are scoped per workspace; reload both lists.
		return t, tea.Batch(loadWorkspacesCmd(t.client), loadDatasetsCmd(t.client))

	case WorkspaceCreatedMsg:
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.statusMsg = "Workspace created."
		return t, loadWorkspacesCmd(t.client)

	case DatasetSelectedMsg:
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.statusMsg = "Dataset selected."
		return t, loadDatasetsCmd(t.client)

	case CachedDatasetMsg:
		// The cache is a fallback. A failed read keeps whatever copy
		// is already held.
		if msg.Err == nil && msg.DS != nil {
			t.cached = msg.DS
		}
		return t, nil
	}

	if t.creating {
		var cmd tea.Cmd
		t.nameInput, cmd = t.nameInput.Update(msg)
		return t, cmd
	}
	return t, nil
}

// handleKey processes list navigation and selection.
func (t *OverviewTab) handleKey(msg tea.KeyMsg) (*OverviewTab, tea.Cmd) {
	if t.creating {
		switch msg.String() {
		case "esc":
			t.creating = false
			t.nameInput.Reset()
			return t, nil
		case "enter":
			name := strings.TrimSpace(t.nameInput.Value())
			if name == "" {
				return t, nil
			}
			t.creating = false
			t.nameInput.Reset()
			return t, createWorkspaceCmd(t.client, name, "")
		}
		var cmd tea.Cmd
		t.nameInput, cmd = t.nameInput.Update(msg)
		return t, cmd
	}

	switch msg.String() {
	case "left", "h":
		t.pane = paneWorkspaces
	case "right", "l":
		t.pane = paneDatasets
	case "up", "k":
		t.moveCursor(-1)
	case "down", "j":
		t.moveCursor(1)
	case "enter":
		return t.selectCurrent()
	case "n":
		t.creating = true
		t.statusMsg = ""
		return t, t.nameInput.Focus()
	case "r":
		t.loading = true
		return t, tea.Batch(loadWorkspacesCmd(t.client), loadDatasetsCmd(t.client))
	}
	return t, nil
}

// moveCursor moves the cursor in the focused pane.
func (t *OverviewTab) moveCursor(delta int) {
	switch t.pane {
	case paneWorkspaces:
		if t.workspaces == nil {
			return
		}
		t.wsCursor = clamp(t.wsCursor+delta, 0, len(t.workspaces.Workspaces)-1)
	case paneDatasets:
		if t.datasets == nil {
			return
		}
		t.dsCursor = clamp(t.dsCursor+delta, 0, len(t.datasets.Entries)-1)
	}
}

// selectCurrent selects the item under the cursor.
func (t *OverviewTab) selectCurrent() (*OverviewTab, tea.Cmd) {
	switch t.pane {
	case paneWorkspaces:
		if t.workspaces == nil || len(t.workspaces.Workspaces) == 0 {
			return t, nil
		}
		ws := t.workspaces.Workspaces[t.wsCursor]
		return t, selectWorkspaceCmd(t.client, ws.ID)
	case paneDatasets:
		if t.datasets == nil || len(t.datasets.Entries) == 0 {
			return t, nil
		}
		ds := t.datasets.Entries[t.dsCursor]
		return t, tea.Batch(
			selectDatasetCmd(t.client, ds.Checksum),
			selectCachedDatasetCmd(ds.Checksum),
		)
	}
	return t, nil
}

// View renders the two panes side by side.
func (t *OverviewTab) View() string {
	if t.creating {
		return t.viewCreateForm()
	}

	paneWidth := (t.width - 3) / 2
	left := t.renderWorkspacePane(paneWidth)
	right := t.renderDatasetPane(paneWidth)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	var footer string
	if t.errMsg != "" {
		footer = components.InlineError(t.errMsg)
	} else if t.statusMsg != "" {
		footer = components.InlineSuccess(t.statusMsg)
	} else {
		footer = lipgloss.NewStyle().Foreground(styles.TextMuted).
			Render("[h/l] switch pane  [Enter] select  [n] new workspace  [r] reload")
	}

	return body + "\n\n" + footer
}

// viewCreateForm renders the workspace creation mini-form.
func (t *OverviewTab) viewCreateForm() string {
	titleStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("New workspace"))
	b.WriteString("\n\n")
	b.WriteString(t.nameInput.View())
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[Enter] Create  [Esc] Cancel"))
	return b.String()
}

// renderWorkspacePane renders the workspace list.
func (t *OverviewTab) renderWorkspacePane(width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary).Bold(true)
	if t.pane == paneWorkspaces {
		titleStyle = titleStyle.Foreground(styles.Purple)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Workspaces"))
	b.WriteString("\n")

	if t.workspaces == nil || len(t.workspaces.Workspaces) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(styles.TextMuted).
			Render("No workspaces yet. Press n to create one."))
	} else {
		for i, ws := range t.workspaces.Workspaces {
			b.WriteString(t.renderRow(
				ws.Name,
				ws.ID == t.workspaces.SelectedWorkspaceID,
				t.pane == paneWorkspaces && i == t.wsCursor,
				width,
			))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.paneBorder(paneWorkspaces)).
		Padding(0, 1).
		Render(b.String())
}

// renderDatasetPane renders the dataset list.
func (t *OverviewTab) renderDatasetPane(width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary).Bold(true)
	if t.pane == paneDatasets {
		titleStyle = titleStyle.Foreground(styles.Purple)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Datasets"))
	b.WriteString("\n")

	if t.datasets == nil || len(t.datasets.Entries) == 0 {
		if t.cached != nil {
			mutedStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
			b.WriteString(lipgloss.NewStyle().Foreground(styles.TextSecondary).
				Render(truncate(t.cached.Filename, width-8)))
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render(fmt.Sprintf(
				"cached copy, %d rows, %d sentences",
				t.cached.Summary.Rows, len(t.cached.Sentences))))
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render("Upload or reload to see the server list."))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(styles.TextMuted).
				Render("No datasets. Upload one from the Upload tab."))
		}
	} else {
		selected := ""
		if t.datasets.Selected != nil {
			selected = t.datasets.Selected.Checksum
		}
		for i, ds := range t.datasets.Entries {
			b.WriteString(t.renderRow(
				ds.Filename,
				ds.Checksum == selected,
				t.pane == paneDatasets && i == t.dsCursor,
				width,
			))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.paneBorder(paneDatasets)).
		Padding(0, 1).
		Render(b.String())
}

// renderRow renders one list row with selection and cursor markers.
func (t *OverviewTab) renderRow(label string, selected, cursor bool, width int) string {
	marker := "  "
	if selected {
		marker = styles.StatusIndicators.Active + " "
	}

	text := truncate(label, width-8)
	style := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	if cursor {
		style = lipgloss.NewStyle().Foreground(styles.TextPrimary).Bold(true).
			Background(styles.Surface)
	}
	if selected {
		style = style.Foreground(styles.Emerald)
	}
	return style.Render(marker + text)
}

// paneBorder returns the border color for a pane, highlighted on focus.
func (t *OverviewTab) paneBorder(p overviewPane) lipgloss.AdaptiveColor {
	if t.pane == p {
		return styles.FocusRing
	}
	return styles.Overlay
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
