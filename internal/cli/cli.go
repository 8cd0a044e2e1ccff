// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for bottrainer.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdRegister
	CmdStatus
	CmdPredict
	CmdWorkspaces
	CmdDatasets
	CmdTrain
	CmdHistory
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool
	Server  string // Override API base URL

	// Command-specific
	Query      string
	Email      string
	Username   string
	Model      string
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	File       string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `bottrainer - terminal client for the Bot Trainer NLU platform

Bottrainer talks to a Bot Trainer backend from the command line.

It provides:
  - Intent prediction against trained models
  - Dataset upload and workspace management
  - Training job control and evaluation
  - An interactive TUI (default)

Usage:
  bottrainer                      Start TUI (default)
  bottrainer login                Log in to the backend (--email)
  bottrainer logout               Log out and clear the stored session
  bottrainer register             Create a new account
  bottrainer status, s            Show backend and session status
  bottrainer predict "text"       Predict intent for a single utterance
  bottrainer predict              Interactive prediction REPL
  bottrainer workspaces [sub]     Workspace management (list|create|select)
  bottrainer datasets [sub]       Dataset management (list|upload|select)
  bottrainer train [sub]          Training control (start|status)
  bottrainer history [sub]        Prediction history (show|clear)
  bottrainer config [show|set]    Configuration
  bottrainer version              Show version
  bottrainer help                 Show this help

Predict Commands:
  bottrainer predict "book a flight"    One-shot prediction
    --model ID                          Model to use (default: selected)
  bottrainer predict                    REPL with input history
  bottrainer predict --file texts.txt   Batch prediction from file

Workspace Commands:
  bottrainer workspaces list            List workspaces
  bottrainer workspaces create <name>   Create a workspace
  bottrainer workspaces select <id>     Select the active workspace

Dataset Commands:
  bottrainer datasets list              List uploaded datasets
  bottrainer datasets upload <file>     Parse and upload a CSV/JSON dataset
  bottrainer datasets select <checksum> Select the active dataset

Training Commands:
  bottrainer train start                Start training the selected dataset
  bottrainer train status               Show training job status

History Commands:
  bottrainer history show               Show recent predictions (default: 20)
    --lines N                           Show last N predictions
    --intent NAME                       Filter by predicted intent
  bottrainer history clear              Clear prediction history

Config Commands:
  bottrainer config show                Show current configuration
  bottrainer config get <key>           Get a single value
  bottrainer config set <key> <value>   Set a value
  bottrainer config path                Show config file location

Global Flags:
  --server URL    Override backend address for this invocation
  -q, --quiet     Minimal output
  -v, --verbose   Debug output
  --json          Output in JSON format

Examples:
  bottrainer login --email admin@example.com
  bottrainer predict "turn off the lights"
  bottrainer predict --model rasa-lite "book a table"
  bottrainer datasets upload ./intents.csv
  bottrainer train start
  bottrainer history show --lines 50
  bottrainer config set api.base_url http://10.0.0.5:8000

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("bottrainer version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	args := os.Args[1:]

	remaining, parsedArgs := parseGlobalFlags(args)

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "login":
		parseLoginArgs(&parsedArgs, remaining)
		return CmdLogin, parsedArgs

	case "logout":
		return CmdLogout, parsedArgs

	case "register", "signup":
		parseLoginArgs(&parsedArgs, remaining)
		return CmdRegister, parsedArgs

	case "status", "s":
		return CmdStatus, parsedArgs

	case "predict", "p":
		parsePredictArgs(&parsedArgs, remaining)
		return CmdPredict, parsedArgs

	case "workspaces", "workspace", "ws":
		parseSubcommand(&parsedArgs, remaining)
		return CmdWorkspaces, parsedArgs

	case "datasets", "dataset", "ds":
		parseSubcommand(&parsedArgs, remaining)
		return CmdDatasets, parsedArgs

	case "train", "training":
		parseSubcommand(&parsedArgs, remaining)
		return CmdTrain, parsedArgs

	case "history", "hist":
		parseSubcommand(&parsedArgs, remaining)
		return CmdHistory, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command: treat the whole line as a one-shot prediction.
		parsePredictArgs(&parsedArgs, append([]string{cmd}, remaining...))
		return CmdPredict, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--server":
			if i+1 < len(args) {
				i++
				parsedArgs.Server = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--server=") {
				parsedArgs.Server = strings.TrimPrefix(arg, "--server=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseLoginArgs parses login/register specific arguments.
func parseLoginArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]

		switch arg {
		case "-u", "--username":
			if i+1 < len(remaining) {
				i++
				args.Username = remaining[i]
			}
		case "-e", "--email":
			if i+1 < len(remaining) {
				i++
				args.Email = remaining[i]
			}
		default:
			if strings.HasPrefix(arg, "--username=") {
				args.Username = strings.TrimPrefix(arg, "--username=")
			} else if strings.HasPrefix(arg, "--email=") {
				args.Email = strings.TrimPrefix(arg, "--email=")
			}
		}
	}
}

// parsePredictArgs parses predict command specific arguments.
func parsePredictArgs(args *Args, remaining []string) {
	var query []string

	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]

		switch arg {
		case "-m", "--model":
			if i+1 < len(remaining) {
				i++
				args.Model = remaining[i]
			}
		case "-f", "--file":
			if i+1 < len(remaining) {
				i++
				args.File = remaining[i]
			}
		default:
			if strings.HasPrefix(arg, "--model=") {
				args.Model = strings.TrimPrefix(arg, "--model=")
			} else if strings.HasPrefix(arg, "--file=") {
				args.File = strings.TrimPrefix(arg, "--file=")
			} else if !strings.HasPrefix(arg, "-") {
				query = append(query, arg)
			}
		}
	}

	args.Query = strings.Join(query, " ")
}

// parseSubcommand captures the first positional arg as a subcommand.
// Detailed flag parsing happens in the command handlers via ArgParser.
func parseSubcommand(args *Args, remaining []string) {
	if len(remaining) > 0 && !strings.HasPrefix(remaining[0], "-") {
		args.Subcommand = remaining[0]
	}
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
	}
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		resp := NewJSONResponse("version", data)
		resp.Print()
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
