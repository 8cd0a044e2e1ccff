// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface parsing and execution
// for bottrainer.
//
// This package implements every non-TUI command of the bottrainer
// binary. Commands talk to a Bot Trainer backend over the api package
// and share the persisted session with the TUI, so logging in from
// the CLI also logs the TUI in and vice versa.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed command-line arguments with global and command-specific flags
//   - ArgParser: Subcommand and flag parsing for commands with their own verbs
//   - JSONResponse: Machine-readable output envelope for the --json flag
//
// # Usage
//
// Parse and execute commands:
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdLogin:
//	    return cli.HandleLogin(args)
//	case cli.CmdPredict:
//	    return cli.HandlePredict(args)
//	// ... other commands
//	}
//
// # Commands Overview
//
// Session commands:
//   - login: Authenticate against the backend and persist the session
//   - logout: Clear the persisted session
//   - register: Create a new account
//
// Working commands:
//   - predict: One-shot, batch, or interactive intent prediction
//   - workspaces: List, create, and select workspaces
//   - datasets: Upload, list, and select datasets
//   - train: Start and monitor training runs
//   - history: Inspect the local prediction history
//   - status: Backend reachability and session state
//   - config: Read and write the TOML configuration
//
// All commands support the --json flag for scripting.
package cli
