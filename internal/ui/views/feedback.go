// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// feedback.go - Dashboard feedback tab: report and browse prediction feedback.
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
// FEEDBACK TAB
// =============================================================================

const (
	feedbackFieldText = iota
	feedbackFieldIntent
	feedbackFieldRemarks
	feedbackFieldCount
)

// FeedbackTab files prediction feedback against the active workspace
// and lists what has been reported so far.
type FeedbackTab struct {
	client *api.Client
	theme  *styles.Theme

	text    *components.InputArea
	intent  *components.InputArea
	remarks *components.InputArea
	focus   int

	list *api.FeedbackList

	busy    bool
	spinner components.Spinner
	errMsg  string
	okMsg   string

	width  int
	height int
}

// NewFeedbackTab creates the feedback tab.
func NewFeedbackTab(theme *styles.Theme, client *api.Client) *FeedbackTab {
	return &FeedbackTab{
		client:  client,
		theme:   theme,
		text:    components.NewFormInput(theme, "utterance that went wrong"),
		intent:  components.NewFormInput(theme, "intent it should have been"),
		remarks: components.NewFormInput(theme, "remarks (optional)"),
		spinner: components.NewRequestSpinner("Sending feedback"),
	}
}

// SetSize updates the tab dimensions.
func (t *FeedbackTab) SetSize(width, height int) {
	t.width = width
	t.height = height
	fieldWidth := min(width-6, 60)
	t.text.SetWidth(fieldWidth)
	t.intent.SetWidth(min(fieldWidth, 32))
	t.remarks.SetWidth(fieldWidth)
}

// Update handles messages for the feedback tab.
func (t *FeedbackTab) Update(msg tea.Msg) (*FeedbackTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return t.handleKey(msg)

	case FeedbackSavedMsg:
		t.busy = false
		t.spinner.Stop()
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.errMsg = ""
		t.okMsg = msg.Resp.Message
		t.text.Reset()
		t.intent.Reset()
		t.remarks.Reset()
		return t, loadFeedbackCmd(t.client)

	case FeedbackLoadedMsg:
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.errMsg = ""
		t.list = msg.List
		return t, nil
	}

	if t.busy {
		var cmd tea.Cmd
		t.spinner, cmd = t.spinner.Update(msg)
		return t, cmd
	}
	return t.updateFocused(msg)
}

// handleKey processes feedback tab key bindings.
func (t *FeedbackTab) handleKey(msg tea.KeyMsg) (*FeedbackTab, tea.Cmd) {
	if t.busy {
		return t, nil
	}
	switch msg.String() {
	case "down":
		return t.setFocus((t.focus + 1) % feedbackFieldCount)
	case "up":
		return t.setFocus((t.focus + feedbackFieldCount - 1) % feedbackFieldCount)
	case "enter":
		return t.submit()
	}
	return t.updateFocused(msg)
}

// updateFocused forwards a message to the focused input.
func (t *FeedbackTab) updateFocused(msg tea.Msg) (*FeedbackTab, tea.Cmd) {
	var cmd tea.Cmd
	switch t.focus {
	case feedbackFieldText:
		t.text, cmd = t.text.Update(msg)
	case feedbackFieldIntent:
		t.intent, cmd = t.intent.Update(msg)
	case feedbackFieldRemarks:
		t.remarks, cmd = t.remarks.Update(msg)
	}
	return t, cmd
}

// setFocus moves focus between the form fields.
func (t *FeedbackTab) setFocus(focus int) (*FeedbackTab, tea.Cmd) {
	t.focus = focus
	t.text.Blur()
	t.intent.Blur()
	t.remarks.Blur()
	switch focus {
	case feedbackFieldText:
		return t, t.text.Focus()
	case feedbackFieldIntent:
		return t, t.intent.Focus()
	case feedbackFieldRemarks:
		return t, t.remarks.Focus()
	}
	return t, nil
}

// submit files one feedback item.
func (t *FeedbackTab) submit() (*FeedbackTab, tea.Cmd) {
	text := strings.TrimSpace(t.text.Value())
	if text == "" {
		t.errMsg = "Describe the utterance first."
		return t.setFocus(feedbackFieldText)
	}
	t.busy = true
	t.errMsg = ""
	t.okMsg = ""
	item := api.Feedback{
		Text:          text,
		CorrectIntent: strings.TrimSpace(t.intent.Value()),
		Remarks:       strings.TrimSpace(t.remarks.Value()),
	}
	return t, tea.Batch(t.spinner.Start(), saveFeedbackCmd(t.client, []api.Feedback{item}))
}

// View renders the feedback form and the stored list.
func (t *FeedbackTab) View() string {
	titleStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Feedback"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Utterance:"))
	b.WriteString("\n")
	b.WriteString(t.text.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Correct intent:"))
	b.WriteString("\n")
	b.WriteString(t.intent.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Remarks:"))
	b.WriteString("\n")
	b.WriteString(t.remarks.View())
	b.WriteString("\n\n")

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

	if t.list != nil && len(t.list.Items) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render(fmt.Sprintf("Reported (%d)", t.list.Count)))
		b.WriteString("\n")
		shown := t.list.Items
		if len(shown) > 5 {
			shown = shown[:5]
		}
		for _, item := range shown {
			line := fmt.Sprintf("  %s", truncate(item.Text, t.width-24))
			if item.CorrectIntent != "" {
				line += "  " + lipgloss.NewStyle().Foreground(styles.Emerald).
					Render(item.CorrectIntent)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("[Enter] Send feedback  [Up/Down] Field"))
	return b.String()
}
