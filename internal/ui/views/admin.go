// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// admin.go - Admin view: system stats and cross-user management.
package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/ui/components"
	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// ADMIN VIEW
// =============================================================================

// adminPanel identifies one admin sub-panel.
type adminPanel int

const (
	adminPanelStats adminPanel = iota
	adminPanelUsers
	adminPanelWorkspaces
	adminPanelDatasets
	adminPanelModels
	adminPanelLogs
	adminPanelAnnotations
	adminPanelCount
)

// String returns the panel label.
func (p adminPanel) String() string {
	switch p {
	case adminPanelStats:
		return "Stats"
	case adminPanelUsers:
		return "Users"
	case adminPanelWorkspaces:
		return "Workspaces"
	case adminPanelDatasets:
		return "Datasets"
	case adminPanelModels:
		return "Models"
	case adminPanelLogs:
		return "Logs"
	case adminPanelAnnotations:
		return "Annotations"
	default:
		return "?"
	}
}

// adminLogKinds are the activity logs the backend keeps, cycled with
// the h/l keys on the Logs panel.
var adminLogKinds = []string{"uploads", "corrections", "active-learning", "training"}

// Admin shows system-wide statistics and lets an admin account remove
// users and workspaces. Every call behind this view requires admin
// privileges; the route guard keeps non-admins out.
type Admin struct {
	client *api.Client
	theme  *styles.Theme

	panel adminPanel

	stats       *api.AdminStats
	users       *api.AdminUserList
	workspaces  *api.AdminWorkspaceList
	datasets    *api.AdminDatasetList
	models      *api.AdminModelList
	logs        *api.AdminLogList
	logKind     int
	annotations *api.AdminAnnotationList

	cursor     int
	confirming bool
	errMsg     string
	okMsg      string

	width  int
	height int
}

// NewAdmin creates the admin view.
func NewAdmin(theme *styles.Theme, client *api.Client) *Admin {
	return &Admin{client: client, theme: theme}
}

// SetSize updates the view dimensions.
func (a *Admin) SetSize(width, height int) {
	a.width = width
	a.height = height
}

// Init loads all admin data.
func (a *Admin) Init() tea.Cmd {
	return tea.Batch(
		loadAdminStatsCmd(a.client),
		loadAdminUsersCmd(a.client),
		loadAdminWorkspacesCmd(a.client),
		loadAdminDatasetsCmd(a.client),
		loadAdminModelsCmd(a.client),
		loadAdminLogsCmd(a.client, adminLogKinds[a.logKind]),
		loadAdminAnnotationsCmd(a.client),
	)
}

// Update handles messages for the admin view.
func (a *Admin) Update(msg tea.Msg) (*Admin, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case AdminStatsMsg:
		if msg.Err != nil {
			a.errMsg = msg.Err.Error()
			return a, nil
		}
		a.stats = msg.Stats
		return a, nil

	case AdminUsersMsg:
		if msg.Err != nil {
			a.errMsg = msg.Err.Error()
			return a, nil
		}
		a.users = msg.List
		return a, nil

	case AdminWorkspacesMsg:
		if msg.Err != nil {
			a.errMsg = msg.Err.Error()
			return a, nil
		}
		a.workspaces = msg.List
		return a, nil

	case AdminDatasetsMsg:
		if msg.Err != nil {
			a.errMsg = msg.Err.Error()
			return a, nil
		}
		a.datasets = msg.List
		return a, nil

	case AdminModelsMsg:
		if msg.Err != nil {
			a.errMsg = msg.Err.Error()
			return a, nil
		}
		a.models = msg.List
		return a, nil

	case AdminLogsMsg:
		if msg.Err != nil {
			a.errMsg = msg.Err.Error()
			return a, nil
		}
		a.logs = msg.List
		return a, nil

	case AdminAnnotationsMsg:
		if msg.Err != nil {
			a.errMsg = msg.Err.Error()
			return a, nil
		}
		a.annotations = msg.List
		return a, nil

	case AdminActionMsg:
		if msg.Err != nil {
			a.errMsg = msg.Err.Error()
			return a, nil
		}
		a.errMsg = ""
		// The reset-password flow already placed the temporary
		// password in okMsg; keep it visible.
		if msg.Action != "reset-password" {
			a.okMsg = msg.Resp.Message
		}
		// Reload everything the action may have touched.
		return a, a.Init()
	}
	return a, nil
}

// handleKey processes admin view key bindings.
func (a *Admin) handleKey(msg tea.KeyMsg) (*Admin, tea.Cmd) {
	if a.confirming {
		switch msg.String() {
		case "y":
			a.confirming = false
			return a.deleteCurrent()
		default:
			a.confirming = false
		}
		return a, nil
	}

	switch msg.String() {
	case "tab":
		a.panel = (a.panel + 1) % adminPanelCount
		a.cursor = 0
		a.okMsg = ""
	case "shift+tab":
		a.panel = (a.panel + adminPanelCount - 1) % adminPanelCount
		a.cursor = 0
		a.okMsg = ""
	case "up", "k":
		a.cursor = clamp(a.cursor-1, 0, a.panelLen()-1)
	case "down", "j":
		a.cursor = clamp(a.cursor+1, 0, a.panelLen()-1)
	case "h", "left":
		if a.panel == adminPanelLogs {
			a.logKind = (a.logKind + len(adminLogKinds) - 1) % len(adminLogKinds)
			a.cursor = 0
			return a, loadAdminLogsCmd(a.client, adminLogKinds[a.logKind])
		}
	case "l", "right":
		if a.panel == adminPanelLogs {
			a.logKind = (a.logKind + 1) % len(adminLogKinds)
			a.cursor = 0
			return a, loadAdminLogsCmd(a.client, adminLogKinds[a.logKind])
		}
	case "d":
		if a.panelLen() > 0 && a.panelDeletable() {
			a.confirming = true
		}
	case "p":
		if a.panel == adminPanelUsers && a.panelLen() > 0 {
			return a.resetPassword()
		}
	case "r":
		return a, a.Init()
	}
	return a, nil
}

// panelDeletable reports whether rows of the active panel can be
// removed.
func (a *Admin) panelDeletable() bool {
	switch a.panel {
	case adminPanelUsers, adminPanelWorkspaces, adminPanelDatasets, adminPanelModels:
		return true
	}
	return false
}

// panelLen returns the row count of the active panel.
func (a *Admin) panelLen() int {
	switch a.panel {
	case adminPanelUsers:
		if a.users != nil {
			return len(a.users.Users)
		}
	case adminPanelWorkspaces:
		if a.workspaces != nil {
			return len(a.workspaces.Workspaces)
		}
	case adminPanelDatasets:
		if a.datasets != nil {
			return len(a.datasets.Datasets)
		}
	case adminPanelModels:
		if a.models != nil {
			return len(a.models.Models)
		}
	case adminPanelLogs:
		if a.logs != nil {
			return len(a.logs.Logs)
		}
	case adminPanelAnnotations:
		if a.annotations != nil {
			return len(a.annotations.Annotations)
		}
	}
	return 0
}

// deleteCurrent removes the highlighted entry of the active panel.
func (a *Admin) deleteCurrent() (*Admin, tea.Cmd) {
	switch a.panel {
	case adminPanelUsers:
		if a.users == nil || a.cursor >= len(a.users.Users) {
			return a, nil
		}
		return a, adminDeleteUserCmd(a.client, a.users.Users[a.cursor].Email)
	case adminPanelWorkspaces:
		if a.workspaces == nil || a.cursor >= len(a.workspaces.Workspaces) {
			return a, nil
		}
		return a, adminDeleteWorkspaceCmd(a.client, a.workspaces.Workspaces[a.cursor].ID)
	case adminPanelDatasets:
		if a.datasets == nil || a.cursor >= len(a.datasets.Datasets) {
			return a, nil
		}
		ds := a.datasets.Datasets[a.cursor]
		if ds.WorkspaceID == "" {
			a.errMsg = "Dataset entry has no workspace id; cannot delete."
			return a, nil
		}
		return a, adminDeleteDatasetCmd(a.client, ds.WorkspaceID, ds.Checksum)
	case adminPanelModels:
		if a.models == nil || a.cursor >= len(a.models.Models) {
			return a, nil
		}
		m := a.models.Models[a.cursor]
		id := mapString(m, "comparison_id")
		if id == "" {
			id = mapString(m, "_id")
		}
		if id == "" {
			a.errMsg = "Model row has no comparison id; cannot delete."
			return a, nil
		}
		return a, adminDeleteModelCmd(a.client, id, mapInt(m, "model_index"))
	}
	return a, nil
}

// resetPassword force-sets the highlighted user's password to a fresh
// temporary value and surfaces it once for the admin to pass along.
func (a *Admin) resetPassword() (*Admin, tea.Cmd) {
	if a.users == nil || a.cursor >= len(a.users.Users) {
		return a, nil
	}
	email := a.users.Users[a.cursor].Email
	temp := "bt-" + uuid.NewString()[:13]
	a.okMsg = "Temporary password for " + email + ": " + temp
	return a, adminResetPasswordCmd(a.client, email, temp)
}

// mapString reads a string field from an opaque server document.
func mapString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// mapInt reads a numeric field from an opaque server document. JSON
// numbers decode as float64.
func mapInt(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// View renders the panel strip and the active panel.
func (a *Admin) View() string {
	var b strings.Builder
	b.WriteString(a.renderPanelBar())
	b.WriteString("\n\n")

	switch a.panel {
	case adminPanelStats:
		b.WriteString(a.renderStats())
	case adminPanelUsers:
		b.WriteString(a.renderUsers())
	case adminPanelWorkspaces:
		b.WriteString(a.renderWorkspaces())
	case adminPanelDatasets:
		b.WriteString(a.renderDatasets())
	case adminPanelModels:
		b.WriteString(a.renderModels())
	case adminPanelLogs:
		b.WriteString(a.renderLogs())
	case adminPanelAnnotations:
		b.WriteString(a.renderAnnotations())
	}
	b.WriteString("\n")

	if a.confirming {
		b.WriteString(components.InlineWarning("Delete the highlighted entry? Press y to confirm."))
		b.WriteString("\n")
	}
	if a.errMsg != "" {
		b.WriteString(components.InlineError(a.errMsg))
		b.WriteString("\n")
	}
	if a.okMsg != "" {
		b.WriteString(components.InlineSuccess(a.okMsg))
		b.WriteString("\n")
	}

	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	b.WriteString("\n")
	hint := "[Tab] Panel  [Up/Down] Row  [d] Delete  [r] Reload  [Esc] Back"
	switch a.panel {
	case adminPanelUsers:
		hint = "[Tab] Panel  [Up/Down] Row  [d] Delete  [p] Reset password  [r] Reload  [Esc] Back"
	case adminPanelLogs:
		hint = "[Tab] Panel  [Left/Right] Log  [Up/Down] Row  [r] Reload  [Esc] Back"
	}
	b.WriteString(hintStyle.Render(hint))
	return b.String()
}

// renderPanelBar renders the horizontal panel strip.
func (a *Admin) renderPanelBar() string {
	activeStyle := lipgloss.NewStyle().Foreground(styles.Amber).Bold(true).Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().Foreground(styles.TextMuted).Padding(0, 1)

	title := lipgloss.NewStyle().Foreground(styles.Amber).Bold(true).Render("ADMIN")
	var panels []string
	for p := adminPanel(0); p < adminPanelCount; p++ {
		if p == a.panel {
			panels = append(panels, activeStyle.Render("["+p.String()+"]"))
		} else {
			panels = append(panels, inactiveStyle.Render(p.String()))
		}
	}
	return title + "  " + strings.Join(panels, "")
}

// renderStats renders the system summary.
func (a *Admin) renderStats() string {
	if a.stats == nil {
		return lipgloss.NewStyle().Foreground(styles.TextMuted).Render("Loading stats...")
	}
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	valueStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary).Bold(true)

	var b strings.Builder
	row := func(label string, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  %-28s", label)))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("Users", fmt.Sprintf("%d", a.stats.TotalUsers))
	row("Workspaces", fmt.Sprintf("%d", a.stats.TotalWorkspaces))
	row("Datasets", fmt.Sprintf("%d", a.stats.TotalDatasets))
	row("Annotations", fmt.Sprintf("%d", a.stats.TotalAnnotations))
	row("Corrections", fmt.Sprintf("%d", a.stats.TotalCorrections))
	row("Avg datasets per workspace", fmt.Sprintf("%.1f", a.stats.AvgDatasetsPerWorkspace))
	return b.String()
}

// renderUsers renders the account listing.
func (a *Admin) renderUsers() string {
	if a.users == nil {
		return lipgloss.NewStyle().Foreground(styles.TextMuted).Render("Loading users...")
	}
	var b strings.Builder
	for i, u := range a.users.Users {
		line := fmt.Sprintf("%-20s %-32s %s",
			truncate(u.Username, 20), truncate(u.Email, 32), u.CreatedAt)
		b.WriteString(a.renderRow(line, i))
		b.WriteString("\n")
	}
	return b.String()
}

// renderWorkspaces renders the cross-user workspace listing.
func (a *Admin) renderWorkspaces() string {
	if a.workspaces == nil {
		return lipgloss.NewStyle().Foreground(styles.TextMuted).Render("Loading workspaces...")
	}
	var b strings.Builder
	for i, ws := range a.workspaces.Workspaces {
		line := fmt.Sprintf("%-24s %-32s %s",
			truncate(ws.Name, 24), truncate(ws.OwnerEmail, 32), ws.CreatedAt)
		b.WriteString(a.renderRow(line, i))
		b.WriteString("\n")
	}
	return b.String()
}

// renderDatasets renders the cross-user dataset listing.
func (a *Admin) renderDatasets() string {
	if a.datasets == nil {
		return lipgloss.NewStyle().Foreground(styles.TextMuted).Render("Loading datasets...")
	}
	var b strings.Builder
	for i, ds := range a.datasets.Datasets {
		line := fmt.Sprintf("%-28s %-32s %s",
			truncate(ds.Filename, 28), truncate(ds.OwnerEmail, 32), truncate(ds.Checksum, 12))
		b.WriteString(a.renderRow(line, i))
		b.WriteString("\n")
	}
	return b.String()
}

// renderModels renders the saved model comparison rows.
func (a *Admin) renderModels() string {
	if a.models == nil {
		return lipgloss.NewStyle().Foreground(styles.TextMuted).Render("Loading models...")
	}
	var b strings.Builder
	for i, m := range a.models.Models {
		name := mapString(m, "model")
		if name == "" {
			name = mapString(m, "model_name")
		}
		line := fmt.Sprintf("%-24s f1=%.2f  acc=%.2f  %s",
			truncate(name, 24), mapFloat(m, "f1"), mapFloat(m, "accuracy"),
			truncate(mapString(m, "workspace_name"), 24))
		b.WriteString(a.renderRow(line, i))
		b.WriteString("\n")
	}
	return b.String()
}

// renderLogs renders the active activity log.
func (a *Admin) renderLogs() string {
	kindStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	header := kindStyle.Render(adminLogKinds[a.logKind]) + "\n"
	if a.logs == nil {
		return header + lipgloss.NewStyle().Foreground(styles.TextMuted).Render("Loading log...")
	}
	var b strings.Builder
	b.WriteString(header)
	for i, entry := range a.logs.Logs {
		line := fmt.Sprintf("%-20s %-32s %s",
			truncate(mapString(entry, "timestamp"), 20),
			truncate(mapString(entry, "user_email"), 32),
			truncate(mapString(entry, "action"), 40))
		b.WriteString(a.renderRow(line, i))
		b.WriteString("\n")
	}
	return b.String()
}

// renderAnnotations renders the cross-user annotation sets.
func (a *Admin) renderAnnotations() string {
	if a.annotations == nil {
		return lipgloss.NewStyle().Foreground(styles.TextMuted).Render("Loading annotations...")
	}
	var b strings.Builder
	for i, set := range a.annotations.Annotations {
		line := fmt.Sprintf("%-28s %-32s %d sentences",
			truncate(mapString(set, "dataset_filename"), 28),
			truncate(mapString(set, "owner_email"), 32),
			mapInt(set, "annotation_count"))
		b.WriteString(a.renderRow(line, i))
		b.WriteString("\n")
	}
	return b.String()
}

// mapFloat reads a float field from an opaque server document.
func mapFloat(m map[string]any, key string) float64 {
	if v, ok := m[key].(float64); ok {
		return v
	}
	return 0
}

// renderRow highlights the cursor row of a listing.
func (a *Admin) renderRow(line string, i int) string {
	if i == a.cursor {
		return lipgloss.NewStyle().Foreground(styles.TextPrimary).Bold(true).
			Render("> " + line)
	}
	return lipgloss.NewStyle().Foreground(styles.TextSecondary).
		Render("  " + line)
}
