// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/dataset"
	"github.com/jeranaias/bottrainer-tui/internal/storage"
	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// DASHBOARD TESTS
// =============================================================================

func newTestDashboard(t *testing.T) *Dashboard {
	t.Helper()
	return NewDashboard(styles.NewTheme(), newTestClient(t), newTestStore(t), nil)
}

func TestDashboardStartsOnOverview(t *testing.T) {
	d := newTestDashboard(t)
	if d.ActiveTab() != TabOverview {
		t.Errorf("ActiveTab() = %v, want TabOverview", d.ActiveTab())
	}
}

func TestDashboardTabCycling(t *testing.T) {
	d := newTestDashboard(t)

	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyTab})
	if d.ActiveTab() != TabAnnotate {
		t.Errorf("after tab: ActiveTab() = %v, want TabAnnotate", d.ActiveTab())
	}

	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if d.ActiveTab() != TabOverview {
		t.Errorf("after shift+tab: ActiveTab() = %v, want TabOverview", d.ActiveTab())
	}

	// Cycling backwards from the first tab wraps to the last.
	d.activeTab = TabUpload
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if d.ActiveTab() != TabFeedback {
		t.Errorf("wrap: ActiveTab() = %v, want TabFeedback", d.ActiveTab())
	}
}

func TestDashboardDigitKeysJumpToTab(t *testing.T) {
	d := newTestDashboard(t)

	tests := []struct {
		key  rune
		want Tab
	}{
		{'1', TabUpload},
		{'4', TabTrain},
		{'7', TabFeedback},
	}
	for _, tt := range tests {
		d, _ = d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{tt.key}})
		if d.ActiveTab() != tt.want {
			t.Errorf("key %q: ActiveTab() = %v, want %v", tt.key, d.ActiveTab(), tt.want)
		}
	}
}

func TestDashboardSelectTabRejectsOutOfRange(t *testing.T) {
	d := newTestDashboard(t)
	before := d.ActiveTab()

	if cmd := d.SelectTab(Tab(99)); cmd != nil {
		t.Error("out-of-range tab must not return a command")
	}
	if d.ActiveTab() != before {
		t.Error("out-of-range tab must not change the selection")
	}
}

func TestDashboardSelectTabRefreshesOverview(t *testing.T) {
	d := newTestDashboard(t)
	d.activeTab = TabUpload

	if cmd := d.SelectTab(TabOverview); cmd == nil {
		t.Error("entering overview must reload workspaces and datasets")
	}
}

func TestDashboardSidebarMirrorsSelection(t *testing.T) {
	d := newTestDashboard(t)

	list := &api.WorkspaceList{
		Workspaces: []api.Workspace{
			{ID: "ws-1", Name: "support-bot"},
			{ID: "ws-2", Name: "sales-bot"},
		},
		SelectedWorkspaceID: "ws-2",
	}
	d, _ = d.Update(WorkspacesLoadedMsg{List: list})

	if d.workspaceName != "sales-bot" {
		t.Errorf("workspaceName = %q, want %q", d.workspaceName, "sales-bot")
	}
}

func TestDashboardDataMessagesReachHomeTab(t *testing.T) {
	d := newTestDashboard(t)
	// Training status arrives while the overview tab is active.
	d.activeTab = TabOverview

	status := api.TrainStatus{State: "done", Progress: 100}
	d, _ = d.Update(TrainStatusMsg{Status: &status})

	if d.train.status == nil || d.train.status.State != "done" {
		t.Error("training status must reach the train tab while another tab is active")
	}
}

func TestDashboardCachedDatasetShownWithoutServerList(t *testing.T) {
	d := newTestDashboard(t)
	d.SetSize(100, 40)

	// The server dataset list never loaded, but a cached copy of the
	// last upload exists locally.
	ds := &storage.StoredDataset{
		Filename:  "support.csv",
		Checksum:  "abc123",
		Summary:   dataset.Summary{Filename: "support.csv", Rows: 42},
		Sentences: []string{"hi", "bye"},
	}
	d, _ = d.Update(CachedDatasetMsg{DS: ds})

	if d.overview.cached == nil || d.overview.cached.Checksum != "abc123" {
		t.Fatal("cached dataset must reach the overview tab")
	}

	view := d.overview.View()
	if !strings.Contains(view, "support.csv") {
		t.Error("dataset pane must show the cached filename")
	}
	if !strings.Contains(view, "cached copy") {
		t.Error("dataset pane must mark the entry as a cached copy")
	}
}

func TestDashboardCachedReadErrorKeepsPreviousCopy(t *testing.T) {
	d := newTestDashboard(t)
	d.SetSize(100, 40)

	ds := &storage.StoredDataset{Filename: "a.csv", Checksum: "c1"}
	d, _ = d.Update(CachedDatasetMsg{DS: ds})
	d, _ = d.Update(CachedDatasetMsg{Err: storage.ErrDatasetNotFound})

	if d.overview.cached == nil || d.overview.cached.Checksum != "c1" {
		t.Error("a failed cache read must not drop the held copy")
	}
}

func TestDashboardSessionTickUpdatesCountdown(t *testing.T) {
	d := newTestDashboard(t)
	d.remaining = 42 * time.Minute

	d, _ = d.Update(SessionTickMsg{At: time.Now()})

	// The store was never logged in, so remaining collapses to zero.
	if d.remaining != 0 {
		t.Errorf("remaining = %v, want 0 for an unauthenticated store", d.remaining)
	}
}

// =============================================================================
// SIDEBAR FORMATTING TESTS
// =============================================================================

func TestRenderRemainingShowsExpired(t *testing.T) {
	got := renderRemaining(0)
	if !strings.Contains(got, "expired") {
		t.Errorf("renderRemaining(0) = %q, want it to say expired", got)
	}
}

func TestRenderRemainingFormats(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		want      string
	}{
		{11*time.Hour + 30*time.Minute, "11h 30m"},
		{59 * time.Minute, "59m"},
		{5 * time.Minute, "5m"},
	}
	for _, tt := range tests {
		got := renderRemaining(tt.remaining)
		if !strings.Contains(got, tt.want) {
			t.Errorf("renderRemaining(%v) = %q, want it to contain %q", tt.remaining, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short.yaml", 20, "short.yaml"},
		{"a-very-long-dataset-filename.yaml", 12, "a-very-lo..."},
		{"ab", 3, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
