// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// help.go - Markdown help screen rendered with glamour.
package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bottrainer-tui/internal/ui/components"
	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// HELP CONTENT
// =============================================================================

const helpMarkdown = `# bottrainer

Terminal client for the Bot Trainer NLU platform.

## Navigation

| Key | Action |
|-----|--------|
| Tab / Shift+Tab | Next / previous dashboard tab |
| 1-7 | Jump to a dashboard tab |
| Enter | Submit the focused form |
| Esc | Back |
| F1 | This help |
| Ctrl+A | Admin view (admin accounts only) |
| Ctrl+O | Sign out |
| Ctrl+C | Quit |

## Workflow

1. **Upload** a CSV or JSON dataset. The file is parsed locally and its
   analysis is pushed to the server.
2. **Overview** shows your workspaces and datasets. Select one of each;
   every other tab works against that selection.
3. **Annotate** sentences with intents. Labels accumulate server side.
4. **Train** launches background training over the annotations and
   polls until it finishes.
5. **Evaluate** runs a train/test split over the labeled samples and
   reports accuracy, per-intent metrics, and the confusion matrix.
   Ctrl+S saves the result as a model comparison.
6. **Review** classifies ad hoc utterances, keeps a local history, and
   surfaces low-confidence predictions for correction.
7. **Feedback** files misclassifications against the active workspace.

## Admin

Admin accounts get a management view (Ctrl+A) with panels for users,
workspaces, datasets, models, logs, and annotations. Within a panel,
d deletes the highlighted item and p resets a user's password.
Left/Right switch the log stream on the Logs panel.

## Sessions

Sessions last 12 hours. The sidebar shows the remaining time and the
client signs you out automatically when it runs out.

## CLI

Most operations are also available non-interactively:

    bottrainer login --email you@example.com
    bottrainer predict "book a table for two"
    bottrainer train start
    bottrainer history --json

Run ` + "`bottrainer help`" + ` for the full command list.
`

// =============================================================================
// HELP VIEW
// =============================================================================

// Help shows the rendered help document in a scrollable viewport.
type Help struct {
	theme    *styles.Theme
	viewport *components.ContentViewport
	rendered bool
	errMsg   string
	width    int
	height   int
}

// NewHelp creates the help view.
func NewHelp(theme *styles.Theme) *Help {
	return &Help{
		theme:    theme,
		viewport: components.NewContentViewport(theme),
	}
}

// SetSize updates the view dimensions.
func (h *Help) SetSize(width, height int) {
	h.width = width
	h.height = height
	h.viewport.SetSize(width, height-2)
}

// Init renders the markdown off the Update loop.
func (h *Help) Init() tea.Cmd {
	if h.rendered {
		return nil
	}
	return renderHelpCmd(h.width)
}

// Update handles messages for the help view.
func (h *Help) Update(msg tea.Msg) (*Help, tea.Cmd) {
	switch msg := msg.(type) {
	case HelpRenderedMsg:
		if msg.Err != nil {
			// Fall back to the raw markdown rather than an empty screen.
			h.viewport.SetContent(helpMarkdown)
			h.errMsg = msg.Err.Error()
		} else {
			h.viewport.SetContent(msg.Content)
		}
		h.rendered = true
		h.viewport.ScrollToTop()
		return h, nil
	}

	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

// View renders the help document.
func (h *Help) View() string {
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	var b strings.Builder
	b.WriteString(h.viewport.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("[Up/Down] Scroll  [Esc] Back"))
	return b.String()
}

// renderHelpCmd renders the help markdown with glamour.
func renderHelpCmd(width int) tea.Cmd {
	return func() tea.Msg {
		wrap := width - 4
		if wrap < 40 {
			wrap = 40
		}
		if wrap > 100 {
			wrap = 100
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return HelpRenderedMsg{Err: err}
		}
		out, err := renderer.Render(helpMarkdown)
		return HelpRenderedMsg{Content: out, Err: err}
	}
}
