// bottrainer - Terminal client for the Bot Trainer NLU platform.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/cli"
	"github.com/jeranaias/bottrainer-tui/internal/config"
	"github.com/jeranaias/bottrainer-tui/internal/session"
	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
	"github.com/jeranaias/bottrainer-tui/internal/ui/views"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Program reference for messages sent from outside the Update loop
// (the unauthorized hook and the session watchdog).
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	closeLog := cli.SetupLogging()
	defer closeLog()

	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdLogin:
		if err := cli.HandleLogin(args); err != nil {
			cli.HandleErrorAndExit(err, args.JSON)
		}
	case cli.CmdLogout:
		if err := cli.HandleLogout(args); err != nil {
			cli.HandleErrorAndExit(err, args.JSON)
		}
	case cli.CmdRegister:
		if err := cli.HandleRegister(args); err != nil {
			cli.HandleErrorAndExit(err, args.JSON)
		}
	case cli.CmdStatus:
		if err := cli.HandleStatus(args); err != nil {
			cli.HandleErrorAndExit(err, args.JSON)
		}
	case cli.CmdPredict:
		if err := cli.HandlePredict(args); err != nil {
			cli.HandleErrorAndExit(err, args.JSON)
		}
	case cli.CmdWorkspaces:
		if err := cli.HandleWorkspaces(args); err != nil {
			cli.HandleErrorAndExit(err, args.JSON)
		}
	case cli.CmdDatasets:
		if err := cli.HandleDatasets(args); err != nil {
			cli.HandleErrorAndExit(err, args.JSON)
		}
	case cli.CmdTrain:
		if err := cli.HandleTrain(args); err != nil {
			cli.HandleErrorAndExit(err, args.JSON)
		}
	case cli.CmdHistory:
		if err := cli.HandleHistory(args); err != nil {
			cli.HandleErrorAndExit(err, args.JSON)
		}
	case cli.CmdConfig:
		if err := cli.HandleConfig(args); err != nil {
			cli.HandleErrorAndExit(err, args.JSON)
		}
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI(args)
	}
}

// sendToProgram delivers a message to the running program, if any.
func sendToProgram(msg tea.Msg) {
	programMu.Lock()
	p := programRef
	programMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// runTUI starts the interactive terminal interface.
func runTUI(args cli.Args) {
	cfg := config.Global()

	// Pick up config edits while the TUI runs.
	if watcher, err := config.NewWatcher(nil); err == nil {
		if err := watcher.Watch(); err == nil {
			defer watcher.Close()
		}
	}

	baseURL := cfg.API.BaseURL
	if args.Server != "" {
		baseURL = args.Server
	}
	client := api.NewClient(baseURL,
		api.WithSessionPath(cli.SessionPath()),
		api.WithRetries(cfg.API.MaxRetries),
		api.WithRateLimit(cfg.API.RateLimitRPS, cfg.API.RateLimitBurst),
		api.WithUnauthorizedHook(func() {
			sendToProgram(views.UnauthorizedMsg{})
		}),
	)

	store := cli.OpenSessionStore()
	hist := cli.OpenHistory()
	if hist != nil {
		defer hist.Close()
	}

	// The watchdog fires once when the 12 hour session runs out,
	// even while the user is idle.
	watchdog := session.NewWatchdog(store, func() {
		sendToProgram(views.SessionExpiredMsg{})
	})
	watchdog.Start()
	defer watchdog.Stop()

	theme := styles.NewTheme()
	app := views.NewApp(theme, client, store, hist, Version)

	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
