// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - Prediction history command handler for bottrainer CLI.
//
// Command: history
// Short:   Show or clear the local prediction history
// Aliases: hist
//
// History is recorded locally in a SQLite database every time a
// prediction succeeds, in both the CLI and the TUI.
//
// Examples:
//   bottrainer history                        Show recent predictions
//   bottrainer history --lines 50             Show more entries
//   bottrainer history --intent book_flight   Filter by intent
//   bottrainer history clear                  Delete all entries
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/bottrainer-tui/internal/util"
)

// HandleHistory handles the "history" command and its subcommands.
func HandleHistory(args Args) error {
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "", "show", "list":
		return historyShow(args, parser)
	case "clear":
		return historyClear(args)
	default:
		return NewValidationError("subcommand", parser.Subcommand(),
			"expected show or clear")
	}
}

// historyShow prints recent predictions, optionally filtered by
// intent.
func historyShow(args Args, parser *ArgParser) error {
	hist := OpenHistory()
	if hist == nil {
		fmt.Println(DimStyle.Render("History is disabled (see config key history.enabled)"))
		return nil
	}
	defer hist.Close()

	limit := parser.FlagIntOrDefault("lines", 20)
	intent := parser.Flag("intent")

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	entries, err := hist.Recent(ctx, limit)
	if intent != "" {
		entries, err = hist.ByIntent(ctx, intent, limit)
	}
	if err != nil {
		return WrapError(err, "read history")
	}

	if args.JSON {
		return NewJSONResponse("history", entries).Print()
	}

	if len(entries) == 0 {
		fmt.Println(DimStyle.Render("No predictions recorded yet."))
		return nil
	}

	fmt.Println(TitleStyle.Render("Prediction History"))
	fmt.Println()
	fmt.Printf("  %s %s %s %s\n",
		util.PadRight("WHEN", 16),
		util.PadRight("INTENT", 22),
		util.PadRight("CONF", 6),
		"TEXT")
	fmt.Println("  " + SeparatorStyle.Render(strings.Repeat("-", 70)))

	for _, e := range entries {
		fmt.Printf("  %s %s %s %s\n",
			DimStyle.Render(e.CreatedAt.Format("2006-01-02 15:04")),
			util.PadRight(util.TruncateRunes(e.Intent, 22), 22),
			util.PadRight(fmt.Sprintf("%.0f%%", e.Confidence*100), 6),
			util.TruncateRunes(e.Text, 50))
	}
	return nil
}

// historyClear deletes every recorded prediction.
func historyClear(args Args) error {
	hist := OpenHistory()
	if hist == nil {
		fmt.Println(DimStyle.Render("History is disabled (see config key history.enabled)"))
		return nil
	}
	defer hist.Close()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	if err := hist.Clear(ctx); err != nil {
		return WrapError(err, "clear history")
	}

	if args.JSON {
		return NewJSONResponse("history", map[string]bool{"cleared": true}).Print()
	}

	fmt.Printf("%s History cleared\n", SuccessStyle.Render("[OK]"))
	return nil
}
