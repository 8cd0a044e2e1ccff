// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// review.go - Dashboard review tab: predictions, history, and corrections.
package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/history"
	"github.com/jeranaias/bottrainer-tui/internal/ui/components"
	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// REVIEW TAB
// =============================================================================

// suggestThreshold keeps predictions below this confidence in the
// review queue.
const suggestThreshold = 0.8

// ReviewTab runs ad hoc predictions, keeps a local history, and feeds
// low-confidence results back as corrections.
type ReviewTab struct {
	client *api.Client
	hist   *history.Store
	theme  *styles.Theme

	input    *components.InputArea
	lastText string
	lastPred *api.Prediction

	entries []history.Entry

	suggestions *api.SuggestResponse
	sugCursor   int

	correcting bool
	correction *components.InputArea
	pending    []api.Correction
	saved      *api.CorrectionList

	busy    bool
	spinner components.Spinner
	errMsg  string
	okMsg   string

	width  int
	height int
}

// NewReviewTab creates the review tab. hist may be nil when local
// history is disabled in the config.
func NewReviewTab(theme *styles.Theme, client *api.Client, hist *history.Store) *ReviewTab {
	return &ReviewTab{
		client:     client,
		hist:       hist,
		theme:      theme,
		input:      components.NewFormInput(theme, "utterance to classify"),
		correction: components.NewFormInput(theme, "corrected intent"),
		spinner:    components.NewRequestSpinner("Working"),
	}
}

// SetSize updates the tab dimensions.
func (t *ReviewTab) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.input.SetWidth(min(width-6, 60))
	t.correction.SetWidth(min(width-6, 32))
}

// Refresh reloads the local prediction history and the stored
// corrections for the active workspace.
func (t *ReviewTab) Refresh() tea.Cmd {
	t.errMsg = ""
	t.okMsg = ""
	return tea.Batch(loadHistoryCmd(t.hist, 20), loadCorrectionsCmd(t.client))
}

// Update handles messages for the review tab.
func (t *ReviewTab) Update(msg tea.Msg) (*ReviewTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return t.handleKey(msg)

	case PredictionMsg:
		t.busy = false
		t.spinner.Stop()
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.errMsg = ""
		t.lastText = msg.Text
		t.lastPred = msg.Pred
		// Record locally, then refresh the list so the entry shows up.
		return t, tea.Sequence(
			recordPredictionCmd(t.hist, msg.Text, "", msg.Pred),
			loadHistoryCmd(t.hist, 20),
		)

	case HistoryLoadedMsg:
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.entries = msg.Entries
		return t, nil

	case SuggestionsMsg:
		t.busy = false
		t.spinner.Stop()
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.errMsg = ""
		t.suggestions = msg.Resp
		t.sugCursor = 0
		return t, nil

	case CorrectionsSavedMsg:
		t.busy = false
		t.spinner.Stop()
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.errMsg = ""
		t.okMsg = fmt.Sprintf("%s (%d saved)", msg.Resp.Message, msg.Resp.Count)
		t.pending = nil
		return t, loadCorrectionsCmd(t.client)

	case CorrectionListMsg:
		// The saved count is supplementary. A failed load keeps the
		// previous value instead of surfacing an error.
		if msg.Err == nil {
			t.saved = msg.List
		}
		return t, nil
	}

	if t.busy {
		var cmd tea.Cmd
		t.spinner, cmd = t.spinner.Update(msg)
		return t, cmd
	}
	return t.updateFocused(msg)
}

// handleKey processes review tab key bindings.
func (t *ReviewTab) handleKey(msg tea.KeyMsg) (*ReviewTab, tea.Cmd) {
	if t.busy {
		return t, nil
	}

	if t.correcting {
		switch msg.String() {
		case "esc":
			t.correcting = false
			t.correction.Reset()
			return t, nil
		case "enter":
			return t.queueCorrection()
		}
		var cmd tea.Cmd
		t.correction, cmd = t.correction.Update(msg)
		return t, cmd
	}

	switch msg.String() {
	case "enter":
		return t.predict()
	case "ctrl+g":
		return t.suggest()
	case "ctrl+s":
		return t.saveCorrections()
	case "up", "down":
		if t.suggestions != nil && len(t.suggestions.Items) > 0 {
			delta := 1
			if msg.String() == "up" {
				delta = -1
			}
			t.sugCursor = clamp(t.sugCursor+delta, 0, len(t.suggestions.Items)-1)
			return t, nil
		}
	case "c":
		if t.suggestions != nil && len(t.suggestions.Items) > 0 {
			t.correcting = true
			t.errMsg = ""
			return t, t.correction.Focus()
		}
	}
	return t.updateFocused(msg)
}

// updateFocused forwards a message to the utterance input.
func (t *ReviewTab) updateFocused(msg tea.Msg) (*ReviewTab, tea.Cmd) {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

// predict classifies the entered utterance.
func (t *ReviewTab) predict() (*ReviewTab, tea.Cmd) {
	text := strings.TrimSpace(t.input.Value())
	if text == "" {
		return t, nil
	}
	t.busy = true
	t.errMsg = ""
	t.okMsg = ""
	t.input.Reset()
	return t, tea.Batch(t.spinner.Start(), predictCmd(t.client, text, ""))
}

// suggest asks the server which recent predictions deserve review.
func (t *ReviewTab) suggest() (*ReviewTab, tea.Cmd) {
	texts := t.historyTexts()
	if len(texts) == 0 {
		t.errMsg = "No prediction history to review yet."
		return t, nil
	}
	t.busy = true
	t.errMsg = ""
	req := api.SuggestRequest{
		Texts:     texts,
		Threshold: suggestThreshold,
	}
	return t, tea.Batch(t.spinner.Start(), suggestUncertainCmd(t.client, req))
}

// historyTexts returns the distinct texts from the local history.
func (t *ReviewTab) historyTexts() []string {
	seen := make(map[string]struct{}, len(t.entries))
	var texts []string
	for _, e := range t.entries {
		if _, ok := seen[e.Text]; ok {
			continue
		}
		seen[e.Text] = struct{}{}
		texts = append(texts, e.Text)
	}
	return texts
}

// queueCorrection attaches the entered intent to the highlighted
// suggestion.
func (t *ReviewTab) queueCorrection() (*ReviewTab, tea.Cmd) {
	intent := strings.TrimSpace(t.correction.Value())
	if intent == "" {
		return t, nil
	}
	item := t.suggestions.Items[t.sugCursor]
	conf := item.Confidence
	t.pending = append(t.pending, api.Correction{
		Text:                item.Text,
		PredictedIntent:     item.Intent,
		PredictedConfidence: &conf,
		CorrectedIntent:     intent,
	})
	t.correcting = false
	t.correction.Reset()
	t.okMsg = ""
	return t, nil
}

// saveCorrections pushes the queued corrections to the server.
func (t *ReviewTab) saveCorrections() (*ReviewTab, tea.Cmd) {
	if len(t.pending) == 0 {
		t.errMsg = "No corrections queued. Highlight a suggestion and press c."
		return t, nil
	}
	t.busy = true
	t.errMsg = ""
	return t, tea.Batch(t.spinner.Start(), saveCorrectionsCmd(t.client, t.pending))
}

// View renders the prediction box, history, and review queue.
func (t *ReviewTab) View() string {
	titleStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Review"))
	b.WriteString("\n")
	b.WriteString(t.input.View())
	b.WriteString("\n")

	if t.busy {
		b.WriteString(t.spinner.View())
		b.WriteString("\n")
	}

	if t.lastPred != nil {
		b.WriteString(labelStyle.Render("Last prediction: "))
		b.WriteString(renderPrediction(t.lastText, t.lastPred))
		b.WriteString("\n")
	}

	if t.correcting {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Corrected intent:"))
		b.WriteString("\n")
		b.WriteString(t.correction.View())
		b.WriteString("\n")
	} else if t.suggestions != nil {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render(fmt.Sprintf("Review queue (%d)", t.suggestions.Count)))
		b.WriteString("\n")
		if len(t.suggestions.Items) == 0 {
			b.WriteString(hintStyle.Render("Nothing uncertain. All predictions cleared the threshold."))
			b.WriteString("\n")
		}
		for i, item := range t.suggestions.Items {
			b.WriteString(t.renderSuggestion(i, item))
			b.WriteString("\n")
		}
	} else if len(t.entries) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Recent predictions"))
		b.WriteString("\n")
		shown := t.entries
		if len(shown) > 8 {
			shown = shown[:8]
		}
		for _, e := range shown {
			line := fmt.Sprintf("  %s %s (%.2f)",
				truncate(e.Text, t.width-30),
				lipgloss.NewStyle().Foreground(styles.Emerald).Render(e.Intent),
				e.Confidence)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if len(t.pending) > 0 {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%d corrections queued", len(t.pending))))
		b.WriteString("\n")
	}
	if t.saved != nil && t.saved.Count > 0 {
		b.WriteString(hintStyle.Render(fmt.Sprintf("Saved corrections: %d", t.saved.Count)))
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
	b.WriteString(hintStyle.Render("[Enter] Predict  [Ctrl+G] Find uncertain  [c] Correct  [Ctrl+S] Save corrections"))
	return b.String()
}

// renderSuggestion renders one review queue row.
func (t *ReviewTab) renderSuggestion(i int, item api.UncertainSample) string {
	cursor := "  "
	style := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	if i == t.sugCursor {
		cursor = "> "
		style = lipgloss.NewStyle().Foreground(styles.TextPrimary).Bold(true)
	}
	confStyle := lipgloss.NewStyle().Foreground(styles.ConfidenceColor(item.Confidence))
	line := fmt.Sprintf("%s%s  %s %s",
		cursor,
		truncate(item.Text, t.width-34),
		item.Intent,
		confStyle.Render(fmt.Sprintf("%.2f", item.Confidence)))
	if item.IsWrong {
		line += " " + lipgloss.NewStyle().Foreground(styles.Rose).Render("wrong")
	}
	return style.Render(line)
}

// renderPrediction formats an intent with its confidence and entities.
func renderPrediction(text string, pred *api.Prediction) string {
	confStyle := lipgloss.NewStyle().Foreground(styles.ConfidenceColor(pred.Confidence))
	out := fmt.Sprintf("%s %s",
		lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true).Render(pred.Intent),
		confStyle.Render(fmt.Sprintf("(%.2f)", pred.Confidence)))
	if len(pred.Entities) > 0 {
		var ents []string
		for _, e := range pred.Entities {
			ents = append(ents, fmt.Sprintf("%s=%s", e.Entity, e.Word))
		}
		out += "  " + lipgloss.NewStyle().Foreground(styles.TextMuted).
			Render(strings.Join(ents, " "))
	}
	return out
}
