// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// annotate.go - Dashboard annotate tab: label sentences with intents.
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
// ANNOTATE TAB
// =============================================================================

const (
	annotateFieldSentence = iota
	annotateFieldIntent
	annotateFieldCount
)

// AnnotateTab accumulates sentence/intent labels and appends them to the
// stored annotation set of the active dataset.
type AnnotateTab struct {
	client *api.Client
	theme  *styles.Theme

	checksum string
	set      *api.AnnotationSet

	sentence *components.InputArea
	intent   *components.InputArea
	focus    int
	pending  []api.Annotation

	busy    bool
	spinner components.Spinner
	errMsg  string
	okMsg   string

	width  int
	height int
}

// NewAnnotateTab creates the annotate tab.
func NewAnnotateTab(theme *styles.Theme, client *api.Client) *AnnotateTab {
	return &AnnotateTab{
		client:   client,
		theme:    theme,
		sentence: components.NewFormInput(theme, "sentence to label"),
		intent:   components.NewFormInput(theme, "intent"),
		spinner:  components.NewRequestSpinner("Saving annotations"),
	}
}

// SetSize updates the tab dimensions.
func (t *AnnotateTab) SetSize(width, height int) {
	t.width = width
	t.height = height
	fieldWidth := min(width-6, 60)
	t.sentence.SetWidth(fieldWidth)
	t.intent.SetWidth(min(fieldWidth, 32))
}

// Refresh reloads the annotation set for the given dataset checksum.
// A change of dataset discards unsaved pending labels.
func (t *AnnotateTab) Refresh(checksum string) tea.Cmd {
	if checksum != t.checksum {
		t.pending = nil
		t.set = nil
	}
	t.checksum = checksum
	t.errMsg = ""
	t.okMsg = ""
	if checksum == "" {
		return nil
	}
	return loadAnnotationsCmd(t.client, checksum)
}

// Update handles messages for the annotate tab.
func (t *AnnotateTab) Update(msg tea.Msg) (*AnnotateTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return t.handleKey(msg)

	case AnnotationsLoadedMsg:
		if msg.Err != nil {
			// A dataset without annotations yet is not an error state.
			if api.IsNotFound(msg.Err) {
				t.set = nil
				return t, nil
			}
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.errMsg = ""
		t.set = msg.Set
		return t, nil

	case AnnotationsSavedMsg:
		t.busy = false
		t.spinner.Stop()
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.errMsg = ""
		t.okMsg = fmt.Sprintf("%s (%d total)", msg.Resp.Message, msg.Resp.Count)
		t.pending = nil
		return t, loadAnnotationsCmd(t.client, t.checksum)
	}

	if t.busy {
		var cmd tea.Cmd
		t.spinner, cmd = t.spinner.Update(msg)
		return t, cmd
	}
	return t.updateFocused(msg)
}

// handleKey processes annotate tab key bindings.
func (t *AnnotateTab) handleKey(msg tea.KeyMsg) (*AnnotateTab, tea.Cmd) {
	if t.busy {
		return t, nil
	}
	switch msg.String() {
	case "down":
		return t.setFocus((t.focus + 1) % annotateFieldCount)
	case "up":
		return t.setFocus((t.focus + annotateFieldCount - 1) % annotateFieldCount)
	case "enter":
		return t.addPending()
	case "ctrl+s":
		return t.save()
	case "ctrl+x":
		if len(t.pending) > 0 {
			t.pending = t.pending[:len(t.pending)-1]
		}
		return t, nil
	}
	return t.updateFocused(msg)
}

// updateFocused forwards a message to the focused input.
func (t *AnnotateTab) updateFocused(msg tea.Msg) (*AnnotateTab, tea.Cmd) {
	var cmd tea.Cmd
	switch t.focus {
	case annotateFieldSentence:
		t.sentence, cmd = t.sentence.Update(msg)
	case annotateFieldIntent:
		t.intent, cmd = t.intent.Update(msg)
	}
	return t, cmd
}

// setFocus moves focus between the sentence and intent fields.
func (t *AnnotateTab) setFocus(focus int) (*AnnotateTab, tea.Cmd) {
	t.focus = focus
	t.sentence.Blur()
	t.intent.Blur()
	switch focus {
	case annotateFieldSentence:
		return t, t.sentence.Focus()
	case annotateFieldIntent:
		return t, t.intent.Focus()
	}
	return t, nil
}

// addPending validates the current pair and queues it for saving.
func (t *AnnotateTab) addPending() (*AnnotateTab, tea.Cmd) {
	sentence := strings.TrimSpace(t.sentence.Value())
	intent := strings.TrimSpace(t.intent.Value())
	if sentence == "" {
		t.errMsg = "Sentence is required."
		return t, nil
	}
	if intent == "" {
		t.errMsg = "Intent is required."
		return t.setFocus(annotateFieldIntent)
	}
	t.errMsg = ""
	t.okMsg = ""
	t.pending = append(t.pending, api.Annotation{Sentence: sentence, Intent: intent})
	t.sentence.Reset()
	t.intent.Reset()
	return t.setFocus(annotateFieldSentence)
}

// save pushes the pending annotations to the server.
func (t *AnnotateTab) save() (*AnnotateTab, tea.Cmd) {
	if t.checksum == "" {
		t.errMsg = "Select a dataset on the Overview tab first."
		return t, nil
	}
	if len(t.pending) == 0 {
		t.errMsg = "Nothing to save. Add labels with Enter first."
		return t, nil
	}
	t.busy = true
	t.errMsg = ""
	req := api.SaveAnnotationsRequest{
		DatasetChecksum: t.checksum,
		Annotations:     t.pending,
	}
	return t, tea.Batch(t.spinner.Start(), saveAnnotationsCmd(t.client, req))
}

// View renders the annotation form and pending queue.
func (t *AnnotateTab) View() string {
	titleStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Annotate"))
	b.WriteString("\n")

	if t.checksum == "" {
		b.WriteString(lipgloss.NewStyle().Foreground(styles.TextMuted).
			Render("Select a dataset on the Overview tab to start labeling."))
		return b.String()
	}

	if t.set != nil {
		b.WriteString(labelStyle.Render(fmt.Sprintf(
			"%s has %d stored annotations", t.set.DatasetFilename, t.set.AnnotationCount)))
	} else {
		b.WriteString(labelStyle.Render("No stored annotations yet"))
	}
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Sentence:"))
	b.WriteString("\n")
	b.WriteString(t.sentence.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Intent:"))
	b.WriteString("\n")
	b.WriteString(t.intent.View())
	b.WriteString("\n\n")

	if len(t.pending) > 0 {
		b.WriteString(titleStyle.Render(fmt.Sprintf("Pending (%d)", len(t.pending))))
		b.WriteString("\n")
		shown := t.pending
		if len(shown) > 5 {
			shown = shown[len(shown)-5:]
		}
		for _, a := range shown {
			line := fmt.Sprintf("  %s  %s",
				lipgloss.NewStyle().Foreground(styles.Emerald).Render(a.Intent),
				truncate(a.Sentence, t.width-20))
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

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

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("[Enter] Queue label  [Ctrl+S] Save queued  [Ctrl+X] Drop last  [Up/Down] Field"))
	return b.String()
}
