// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command handler for bottrainer CLI.
//
// Command: status
// Short:   Show backend connectivity and session state
// Aliases: s
//
// Examples:
//   bottrainer status          Human-readable status
//   bottrainer status --json   Machine-readable status
package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/bottrainer-tui/internal/config"
	"github.com/jeranaias/bottrainer-tui/internal/util"
)

// HandleStatus handles the "status" command.
func HandleStatus(args Args) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	client := NewAPIClient(args)
	store := OpenSessionStore()

	data := StatusData{
		Backend: StatusBackendInfo{BaseURL: client.BaseURL()},
	}

	if err := client.Ping(ctx); err == nil {
		data.Backend.Reachable = true
	}

	// CheckSession logs out an expired session before we report it.
	if store.CheckSession() && store.IsAuthenticated() {
		data.Session = StatusSessionInfo{
			Authenticated: true,
			Username:      store.User().Username,
			IsAdmin:       store.IsAdmin(),
			ExpiresIn:     util.FormatDuration(store.Remaining()),
		}

		if data.Backend.Reachable {
			if status, err := client.TrainingStatus(ctx); err == nil {
				data.Backend.Training = status.State
			}
		}
	}

	if args.JSON {
		return NewJSONResponse("status", data).Print()
	}

	printStatus(data)
	return nil
}

// printStatus renders the human-readable status report.
func printStatus(data StatusData) {
	fmt.Println(TitleStyle.Render("Bot Trainer Status"))

	fmt.Println(SectionStyle.Render("Backend"))
	fmt.Printf("%s %s\n", RenderLabel("Address:"), ValueStyle.Render(data.Backend.BaseURL))
	if data.Backend.Reachable {
		fmt.Printf("%s %s\n", RenderLabel("Connection:"), RenderStatus("ok"))
	} else {
		fmt.Printf("%s %s %s\n", RenderLabel("Connection:"), RenderStatus("fail"),
			DimStyle.Render("(is the backend running?)"))
	}
	if data.Backend.Training != "" {
		fmt.Printf("%s %s\n", RenderLabel("Training:"), ValueStyle.Render(data.Backend.Training))
	}

	fmt.Println(SectionStyle.Render("Session"))
	if data.Session.Authenticated {
		fmt.Printf("%s %s\n", RenderLabel("User:"), HighlightStyle.Render(data.Session.Username))
		if data.Session.IsAdmin {
			fmt.Printf("%s %s\n", RenderLabel("Role:"), WarningStyle.Render("admin"))
		}
		fmt.Printf("%s %s\n", RenderLabel("Expires in:"), ValueStyle.Render(data.Session.ExpiresIn))
	} else {
		fmt.Printf("%s %s\n", RenderLabel("User:"), DimStyle.Render("not logged in"))
	}

	if path, err := config.ConfigPathTOML(); err == nil {
		fmt.Println(SectionStyle.Render("Config"))
		fmt.Printf("%s %s\n", RenderLabel("File:"), DimStyle.Render(path))
	}
}
