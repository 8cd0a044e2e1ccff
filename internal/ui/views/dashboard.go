// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// dashboard.go - Tabbed dashboard with the session sidebar.
package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/history"
	"github.com/jeranaias/bottrainer-tui/internal/session"
	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// DASHBOARD TABS
// =============================================================================

// Tab identifies one dashboard tab.
type Tab int

const (
	TabUpload Tab = iota
	TabOverview
	TabAnnotate
	TabTrain
	TabEvaluate
	TabReview
	TabFeedback
	tabCount
)

// String returns the tab label.
func (t Tab) String() string {
	switch t {
	case TabUpload:
		return "Upload"
	case TabOverview:
		return "Overview"
	case TabAnnotate:
		return "Annotate"
	case TabTrain:
		return "Train"
	case TabEvaluate:
		return "Evaluate"
	case TabReview:
		return "Review"
	case TabFeedback:
		return "Feedback"
	default:
		return "?"
	}
}

const sidebarWidth = 26

// =============================================================================
// DASHBOARD VIEW
// =============================================================================

// Dashboard hosts the workspace tabs and the session sidebar.
type Dashboard struct {
	client *api.Client
	store  *session.Store
	theme  *styles.Theme

	activeTab Tab
	keys      KeyMap

	upload   *UploadTab
	overview *OverviewTab
	annotate *AnnotateTab
	train    *TrainTab
	evaluate *EvaluateTab
	review   *ReviewTab
	feedback *FeedbackTab

	// Sidebar state, refreshed by messages and the 60s tick
	workspaceName string
	datasetName   string
	remaining     time.Duration

	width  int
	height int
}

// NewDashboard creates the dashboard and its tabs.
func NewDashboard(theme *styles.Theme, client *api.Client, store *session.Store, hist *history.Store) *Dashboard {
	return &Dashboard{
		client:    client,
		store:     store,
		theme:     theme,
		activeTab: TabOverview,
		keys:      DefaultKeyMap(),
		upload:    NewUploadTab(theme, client),
		overview:  NewOverviewTab(theme, client),
		annotate:  NewAnnotateTab(theme, client),
		train:     NewTrainTab(theme, client),
		evaluate:  NewEvaluateTab(theme, client),
		review:    NewReviewTab(theme, client, hist),
		feedback:  NewFeedbackTab(theme, client),
		remaining: store.Remaining(),
	}
}

// SetSize updates the dashboard dimensions.
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height

	contentWidth := width - sidebarWidth - 3
	contentHeight := height - 4 // tab bar + borders
	if contentWidth < 20 {
		contentWidth = 20
	}
	if contentHeight < 5 {
		contentHeight = 5
	}

	d.upload.SetSize(contentWidth, contentHeight)
	d.overview.SetSize(contentWidth, contentHeight)
	d.annotate.SetSize(contentWidth, contentHeight)
	d.train.SetSize(contentWidth, contentHeight)
	d.evaluate.SetSize(contentWidth, contentHeight)
	d.review.SetSize(contentWidth, contentHeight)
	d.feedback.SetSize(contentWidth, contentHeight)
}

// ActiveTab returns the selected tab.
func (d *Dashboard) ActiveTab() Tab {
	return d.activeTab
}

// SelectTab switches to the given tab and returns its refresh command.
func (d *Dashboard) SelectTab(t Tab) tea.Cmd {
	if t < 0 || t >= tabCount {
		return nil
	}
	d.activeTab = t
	return d.refreshActive()
}

// DatasetChecksum returns the checksum of the selected dataset, if any.
// The annotate, train, and evaluate tabs all key off it.
func (d *Dashboard) DatasetChecksum() string {
	return d.overview.SelectedChecksum()
}

// Init loads the overview data.
func (d *Dashboard) Init() tea.Cmd {
	return tea.Batch(
		loadWorkspacesCmd(d.client),
		loadDatasetsCmd(d.client),
		loadCachedDatasetCmd(),
	)
}

// refreshActive reloads data for the active tab on entry.
func (d *Dashboard) refreshActive() tea.Cmd {
	switch d.activeTab {
	case TabOverview:
		return tea.Batch(loadWorkspacesCmd(d.client), loadDatasetsCmd(d.client),
			loadCachedDatasetCmd())
	case TabAnnotate:
		return d.annotate.Refresh(d.DatasetChecksum())
	case TabTrain:
		return d.train.Refresh(d.DatasetChecksum())
	case TabEvaluate:
		return d.evaluate.Refresh(d.DatasetChecksum(),
			d.overview.SelectedWorkspaceID(), d.overview.SelectedWorkspaceName())
	case TabReview:
		return d.review.Refresh()
	case TabFeedback:
		return loadFeedbackCmd(d.client)
	}
	return nil
}

// Update handles messages for the dashboard.
func (d *Dashboard) Update(msg tea.Msg) (*Dashboard, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, d.keys.NextTab):
			return d, d.SelectTab((d.activeTab + 1) % tabCount)
		case key.Matches(msg, d.keys.PrevTab):
			return d, d.SelectTab((d.activeTab + tabCount - 1) % tabCount)
		}
		switch msg.String() {
		case "1", "2", "3", "4", "5", "6", "7":
			return d, d.SelectTab(Tab(int(msg.String()[0] - '1')))
		}

	case SessionTickMsg:
		d.remaining = d.store.Remaining()
		return d, nil
	}

	cmd := d.updateActive(msg)

	// The overview tab owns the selection state; mirror it into the
	// sidebar after every message.
	d.workspaceName = d.overview.SelectedWorkspaceName()
	d.datasetName = d.overview.SelectedFilename()

	return d, cmd
}

// updateActive forwards a message to the tab that owns it. Data
// messages go to their home tab regardless of which tab is active so
// background loads are never dropped.
func (d *Dashboard) updateActive(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg.(type) {
	case DatasetParsedMsg, DatasetSavedMsg, DatasetCachedMsg:
		d.upload, cmd = d.upload.Update(msg)
		return cmd
	case WorkspacesLoadedMsg, WorkspaceSelectedMsg, WorkspaceCreatedMsg,
		DatasetsLoadedMsg, DatasetSelectedMsg, CachedDatasetMsg:
		d.overview, cmd = d.overview.Update(msg)
		return cmd
	case AnnotationsLoadedMsg, AnnotationsSavedMsg:
		d.annotate, cmd = d.annotate.Update(msg)
		return cmd
	case TrainStartedMsg, TrainStatusMsg, TrainPollMsg:
		d.train, cmd = d.train.Update(msg)
		return cmd
	case EvalResultMsg, EvalDataLoadedMsg, ComparisonSavedMsg:
		d.evaluate, cmd = d.evaluate.Update(msg)
		return cmd
	case SuggestionsMsg, CorrectionsSavedMsg, CorrectionListMsg, HistoryLoadedMsg, PredictionMsg:
		d.review, cmd = d.review.Update(msg)
		return cmd
	case FeedbackSavedMsg, FeedbackLoadedMsg:
		d.feedback, cmd = d.feedback.Update(msg)
		return cmd
	}

	switch d.activeTab {
	case TabUpload:
		d.upload, cmd = d.upload.Update(msg)
	case TabOverview:
		d.overview, cmd = d.overview.Update(msg)
	case TabAnnotate:
		d.annotate, cmd = d.annotate.Update(msg)
	case TabTrain:
		d.train, cmd = d.train.Update(msg)
	case TabEvaluate:
		d.evaluate, cmd = d.evaluate.Update(msg)
	case TabReview:
		d.review, cmd = d.review.Update(msg)
	case TabFeedback:
		d.feedback, cmd = d.feedback.Update(msg)
	}
	cmds = append(cmds, cmd)

	return tea.Batch(cmds...)
}

// View renders the tab bar, sidebar, and active tab content.
func (d *Dashboard) View() string {
	tabBar := d.renderTabBar()
	sidebar := d.renderSidebar()

	var content string
	switch d.activeTab {
	case TabUpload:
		content = d.upload.View()
	case TabOverview:
		content = d.overview.View()
	case TabAnnotate:
		content = d.annotate.View()
	case TabTrain:
		content = d.train.View()
	case TabEvaluate:
		content = d.evaluate.View()
	case TabReview:
		content = d.review.View()
	case TabFeedback:
		content = d.feedback.View()
	}

	contentBox := lipgloss.NewStyle().
		Width(d.width - sidebarWidth - 3).
		Render(content)

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", contentBox)
	return tabBar + "\n" + body
}

// renderTabBar renders the horizontal tab strip.
func (d *Dashboard) renderTabBar() string {
	activeStyle := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Bold(true).
		Padding(0, 1)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Padding(0, 1)

	var tabs []string
	for t := Tab(0); t < tabCount; t++ {
		label := t.String()
		if t == d.activeTab {
			tabs = append(tabs, activeStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, inactiveStyle.Render(label))
		}
	}

	bar := strings.Join(tabs, "")
	return lipgloss.NewStyle().
		Width(d.width).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(styles.Overlay).
		Render(bar)
}

// renderSidebar renders identity, session countdown, and selection state.
func (d *Dashboard) renderSidebar() string {
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)
	adminStyle := lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)

	user := d.store.User()

	var b strings.Builder
	b.WriteString(labelStyle.Render("Signed in as"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(user.Username))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(user.Email))
	b.WriteString("\n")
	if user.IsAdmin {
		b.WriteString(adminStyle.Render("[ADMIN]"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Session expires in"))
	b.WriteString("\n")
	b.WriteString(renderRemaining(d.remaining))
	b.WriteString("\n\n")

	if d.workspaceName != "" {
		b.WriteString(labelStyle.Render("Workspace"))
		b.WriteString("\n")
		b.WriteString(valueStyle.Render(d.workspaceName))
		b.WriteString("\n\n")
	}
	if d.datasetName != "" {
		b.WriteString(labelStyle.Render("Dataset"))
		b.WriteString("\n")
		b.WriteString(valueStyle.Render(truncate(d.datasetName, sidebarWidth-4)))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(d.height - 4).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(styles.Overlay).
		Padding(1, 1).
		Render(b.String())
}

// renderRemaining formats the session countdown with a warning color
// under fifteen minutes.
func renderRemaining(remaining time.Duration) string {
	if remaining <= 0 {
		return lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true).
			Render("expired")
	}

	h := int(remaining.Hours())
	m := int(remaining.Minutes()) % 60
	var text string
	if h > 0 {
		text = itoa(h) + "h " + itoa(m) + "m"
	} else {
		text = itoa(m) + "m"
	}

	style := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	if remaining < 15*time.Minute {
		style = lipgloss.NewStyle().Foreground(styles.WarningHighContrast).Bold(true)
	}
	return style.Render(text)
}

// itoa is a tiny positive-int formatter for the sidebar countdown.
func itoa(n int) string {
	if n < 0 {
		n = 0
	}
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max <= 3 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
