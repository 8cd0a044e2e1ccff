// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// evaluate.go - Dashboard evaluate tab: train/test split evaluation report.
package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/ui/components"
	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// EVALUATE TAB
// =============================================================================

// EvaluateTab runs a held-out evaluation over the selected dataset's
// annotations and renders the metrics report.
type EvaluateTab struct {
	client *api.Client
	theme  *styles.Theme

	checksum      string
	workspaceID   string
	workspaceName string
	texts         []string
	trueIntents   []string

	model  *components.InputArea
	report *components.ContentViewport
	result *api.EvalResult

	busy    bool
	spinner components.Spinner
	errMsg  string
	okMsg   string

	width  int
	height int
}

// NewEvaluateTab creates the evaluate tab.
func NewEvaluateTab(theme *styles.Theme, client *api.Client) *EvaluateTab {
	return &EvaluateTab{
		client:  client,
		theme:   theme,
		model:   components.NewFormInput(theme, "model id (empty for default)"),
		report:  components.NewContentViewport(theme),
		spinner: components.NewRequestSpinner("Evaluating"),
	}
}

// SetSize updates the tab dimensions.
func (t *EvaluateTab) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.model.SetWidth(min(width-6, 40))
	reportHeight := height - 7
	if reportHeight < 4 {
		reportHeight = 4
	}
	t.report.SetSize(width-2, reportHeight)
}

// Refresh loads the labeled samples for the given dataset checksum and
// records the workspace the comparison save will be attributed to.
func (t *EvaluateTab) Refresh(checksum, workspaceID, workspaceName string) tea.Cmd {
	if checksum != t.checksum {
		t.texts = nil
		t.trueIntents = nil
		t.result = nil
		t.report.SetContent("")
	}
	t.checksum = checksum
	t.workspaceID = workspaceID
	t.workspaceName = workspaceName
	t.errMsg = ""
	if checksum == "" {
		return nil
	}
	return loadEvalDataCmd(t.client, checksum)
}

// Update handles messages for the evaluate tab.
func (t *EvaluateTab) Update(msg tea.Msg) (*EvaluateTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return t.run()
		case "ctrl+s":
			return t.saveComparison()
		}

	case EvalDataLoadedMsg:
		if msg.Err != nil {
			if api.IsNotFound(msg.Err) {
				t.texts = nil
				t.trueIntents = nil
				return t, nil
			}
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.errMsg = ""
		t.texts = t.texts[:0]
		t.trueIntents = t.trueIntents[:0]
		for _, a := range msg.Set.Annotations {
			t.texts = append(t.texts, a.Sentence)
			t.trueIntents = append(t.trueIntents, a.Intent)
		}
		return t, nil

	case EvalResultMsg:
		t.busy = false
		t.spinner.Stop()
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.errMsg = ""
		t.okMsg = ""
		t.result = msg.Result
		t.report.SetContent(renderEvalReport(msg.Result))
		t.report.ScrollToTop()
		return t, nil

	case ComparisonSavedMsg:
		t.busy = false
		t.spinner.Stop()
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.errMsg = ""
		t.okMsg = msg.Resp.Message
		return t, nil
	}

	if t.busy {
		var cmd tea.Cmd
		t.spinner, cmd = t.spinner.Update(msg)
		return t, cmd
	}

	// Scrolling takes priority once a report exists.
	if t.result != nil {
		var cmd tea.Cmd
		t.report, cmd = t.report.Update(msg)
		if cmd != nil {
			return t, cmd
		}
	}

	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return t, cmd
}

// run launches the evaluation request.
func (t *EvaluateTab) run() (*EvaluateTab, tea.Cmd) {
	if t.checksum == "" {
		t.errMsg = "Select a dataset on the Overview tab first."
		return t, nil
	}
	if len(t.texts) < 2 {
		t.errMsg = "Not enough labeled samples. Annotate the dataset first."
		return t, nil
	}
	t.busy = true
	t.errMsg = ""
	req := api.EvalRequest{
		Texts:       t.texts,
		TrueIntents: t.trueIntents,
		ModelID:     strings.TrimSpace(t.model.Value()),
	}
	return t, tea.Batch(t.spinner.Start(), runEvaluationCmd(t.client, req))
}

// saveComparison persists the last result into the workspace's model
// comparison table.
func (t *EvaluateTab) saveComparison() (*EvaluateTab, tea.Cmd) {
	if t.result == nil {
		t.errMsg = "Run an evaluation before saving a comparison."
		return t, nil
	}
	if t.workspaceID == "" {
		t.errMsg = "Select a workspace on the Overview tab first."
		return t, nil
	}
	t.busy = true
	t.errMsg = ""
	t.okMsg = ""
	req := api.ModelComparisonSaveRequest{
		WorkspaceID:   t.workspaceID,
		WorkspaceName: t.workspaceName,
		Models: []map[string]any{{
			"model":         t.result.Model,
			"accuracy":      t.result.Metrics.Accuracy,
			"precision":     t.result.Metrics.Precision,
			"recall":        t.result.Metrics.Recall,
			"f1":            t.result.Metrics.F1,
			"train_samples": t.result.TrainSamples,
			"test_samples":  t.result.TestSamples,
		}},
	}
	return t, tea.Batch(t.spinner.Start(), saveComparisonCmd(t.client, req))
}

// View renders the controls and the current report.
func (t *EvaluateTab) View() string {
	titleStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Evaluate"))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%d labeled samples", len(t.texts))))
	b.WriteString("\n")
	b.WriteString(t.model.View())
	b.WriteString("\n")

	if t.busy {
		b.WriteString(t.spinner.View())
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

	if t.result != nil {
		b.WriteString(t.report.View())
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render("[Enter] Run evaluation  [Ctrl+S] Save comparison  [Up/Down] Scroll report"))
	return b.String()
}

// renderEvalReport formats the evaluation result as plain text for the
// scrollable report viewport.
func renderEvalReport(r *api.EvalResult) string {
	var b strings.Builder

	pct := func(v float64) string {
		return fmt.Sprintf("%.1f%%", v*100)
	}

	fmt.Fprintf(&b, "Model: %s\n", r.Model)
	fmt.Fprintf(&b, "Split: %d train / %d test\n\n", r.TrainSamples, r.TestSamples)

	fmt.Fprintf(&b, "Accuracy   %s\n", pct(r.Metrics.Accuracy))
	fmt.Fprintf(&b, "Precision  %s\n", pct(r.Metrics.Precision))
	fmt.Fprintf(&b, "Recall     %s\n", pct(r.Metrics.Recall))
	fmt.Fprintf(&b, "F1         %s\n", pct(r.Metrics.F1))

	if len(r.PerIntent) > 0 {
		b.WriteString("\nPer intent\n")
		fmt.Fprintf(&b, "  %-24s %8s %8s %8s %8s\n", "intent", "prec", "recall", "f1", "support")
		for _, m := range r.PerIntent {
			fmt.Fprintf(&b, "  %-24s %8s %8s %8s %8d\n",
				truncate(m.Intent, 24), pct(m.Precision), pct(m.Recall), pct(m.F1), m.Support)
		}
	}

	if len(r.Confusion.Labels) > 0 {
		b.WriteString("\nConfusion matrix (rows: true, cols: predicted)\n")
		b.WriteString("  " + strings.Join(r.Confusion.Labels, "  ") + "\n")
		for i, row := range r.Confusion.Matrix {
			label := ""
			if i < len(r.Confusion.Labels) {
				label = r.Confusion.Labels[i]
			}
			cells := make([]string, len(row))
			for j, v := range row {
				cells[j] = fmt.Sprintf("%d", v)
			}
			fmt.Fprintf(&b, "  %-16s %s\n", truncate(label, 16), strings.Join(cells, "  "))
		}
	}

	if len(r.IntentDetails) > 0 {
		b.WriteString("\nMisclassified samples\n")
		for _, d := range r.IntentDetails {
			if d.Match {
				continue
			}
			fmt.Fprintf(&b, "  %s -> %s (%.2f)  %s\n",
				d.TrueIntent, d.PredictedIntent, d.Confidence, truncate(d.Text, 48))
		}
	}

	return b.String()
}
