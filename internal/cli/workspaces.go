// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// workspaces.go - Workspace management command handler for bottrainer CLI.
//
// Command: workspaces
// Short:   List, create, and select workspaces
// Aliases: ws
//
// Examples:
//   bottrainer workspaces                        List workspaces
//   bottrainer workspaces create "travel bot"    Create a workspace
//   bottrainer workspaces select ws_abc123      Select a workspace
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/bottrainer-tui/internal/util"
)

// HandleWorkspaces handles the "workspaces" command and its
// subcommands.
func HandleWorkspaces(args Args) error {
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "", "list", "ls":
		return workspacesList(args)
	case "create", "new":
		return workspacesCreate(args, parser)
	case "select", "use":
		return workspacesSelect(args, parser)
	default:
		return NewValidationError("subcommand", parser.Subcommand(),
			"expected list, create, or select")
	}
}

// workspacesList prints the user's workspaces with the active one
// marked.
func workspacesList(args Args) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	client := NewAPIClient(args)
	list, err := client.ListWorkspaces(ctx)
	if err != nil {
		return WrapError(err, "list workspaces")
	}

	if args.JSON {
		return NewJSONResponse("workspaces", list).Print()
	}

	if len(list.Workspaces) == 0 {
		fmt.Println(DimStyle.Render("No workspaces yet. Create one with: bottrainer workspaces create <name>"))
		return nil
	}

	fmt.Println(TitleStyle.Render("Workspaces"))
	fmt.Println()
	fmt.Printf("  %s %s %s\n",
		util.PadRight("ID", 14),
		util.PadRight("NAME", 24),
		"DESCRIPTION")
	fmt.Println("  " + SeparatorStyle.Render(strings.Repeat("-", 60)))

	for _, ws := range list.Workspaces {
		marker := " "
		if ws.ID == list.SelectedWorkspaceID {
			marker = HighlightStyle.Render("*")
		}
		fmt.Printf("%s %s %s %s\n",
			marker,
			util.PadRight(util.TruncateRunes(ws.ID, 14), 14),
			util.PadRight(util.TruncateRunes(ws.Name, 24), 24),
			DimStyle.Render(util.TruncateRunes(ws.Description, 40)))
	}
	return nil
}

// workspacesCreate creates a workspace from positional args. Any
// remaining positionals after the name become the description.
func workspacesCreate(args Args, parser *ArgParser) error {
	name := parser.Positional(0)
	if name == "" {
		return ErrMissingArgument("name",
			"bottrainer workspaces create \"travel bot\"")
	}
	description := strings.Join(parser.PositionalFrom(1), " ")

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	client := NewAPIClient(args)
	resp, err := client.CreateWorkspace(ctx, name, description)
	if err != nil {
		return WrapError(err, "create workspace")
	}

	if args.JSON {
		return NewJSONResponse("workspaces", resp).Print()
	}

	fmt.Printf("%s Created workspace %s (%s)\n",
		SuccessStyle.Render("[OK]"),
		HighlightStyle.Render(resp.Workspace.Name),
		DimStyle.Render(resp.Workspace.ID))
	return nil
}

// workspacesSelect makes the given workspace the active one.
func workspacesSelect(args Args, parser *ArgParser) error {
	id := parser.Positional(0)
	if id == "" {
		return ErrMissingArgument("workspace id",
			"bottrainer workspaces select ws_abc123")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	client := NewAPIClient(args)
	resp, err := client.SelectWorkspace(ctx, id)
	if err != nil {
		return WrapError(err, "select workspace")
	}

	if args.JSON {
		return NewJSONResponse("workspaces", resp).Print()
	}

	fmt.Printf("%s Selected workspace %s\n",
		SuccessStyle.Render("[OK]"),
		HighlightStyle.Render(resp.WorkspaceID))
	return nil
}
