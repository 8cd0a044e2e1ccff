// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface parsing and execution.
//
// This test file covers argument parsing, exit code mapping, and the
// JSON output envelope.
package cli

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/jeranaias/bottrainer-tui/internal/api"
)

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"show"},
			wantSub: "show",
		},
		{
			name:    "subcommand with flag",
			args:    []string{"show", "--lines", "50"},
			wantSub: "show",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("lines") != "50" {
					t.Errorf("Flag(lines) = %q, want %q", p.Flag("lines"), "50")
				}
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"show", "--intent=book_flight"},
			wantSub: "show",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("intent") != "book_flight" {
					t.Errorf("Flag(intent) = %q, want %q", p.Flag("intent"), "book_flight")
				}
			},
		},
		{
			name:    "boolean flag",
			args:    []string{"status", "--watch"},
			wantSub: "status",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("watch") {
					t.Error("BoolFlag(watch) should be true")
				}
			},
		},
		{
			name:    "multiple positional args",
			args:    []string{"create", "travel", "bot", "workspace"},
			wantSub: "create",
			validate: func(t *testing.T, p *ArgParser) {
				if p.PositionalCount() != 4 {
					t.Errorf("PositionalCount() = %d, want 4", p.PositionalCount())
				}
				joined := strings.Join(p.PositionalFrom(1), " ")
				if joined != "travel bot workspace" {
					t.Errorf("PositionalFrom(1) joined = %q, want %q", joined, "travel bot workspace")
				}
			},
		},
		{
			name:    "mixed flags and positional",
			args:    []string{"upload", "--format", "csv", "intents.csv"},
			wantSub: "upload",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("format") != "csv" {
					t.Errorf("Flag(format) = %q, want %q", p.Flag("format"), "csv")
				}
				if p.Positional(1) != "intents.csv" {
					t.Errorf("Positional(1) = %q, want %q", p.Positional(1), "intents.csv")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewArgParser(tt.args)
			if parser.Subcommand() != tt.wantSub {
				t.Errorf("Subcommand() = %q, want %q", parser.Subcommand(), tt.wantSub)
			}
			if tt.validate != nil {
				tt.validate(t, parser)
			}
		})
	}
}

func TestArgParser_FlagIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		flagName   string
		defaultVal int
		want       int
	}{
		{
			name:       "flag present",
			args:       []string{"show", "--lines", "50"},
			flagName:   "lines",
			defaultVal: 20,
			want:       50,
		},
		{
			name:       "flag missing uses default",
			args:       []string{"show"},
			flagName:   "lines",
			defaultVal: 20,
			want:       20,
		},
		{
			name:       "invalid int uses default",
			args:       []string{"show", "--lines", "abc"},
			flagName:   "lines",
			defaultVal: 20,
			want:       20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewArgParser(tt.args)
			got := parser.FlagIntOrDefault(tt.flagName, tt.defaultVal)
			if got != tt.want {
				t.Errorf("FlagIntOrDefault(%q, %d) = %d, want %d", tt.flagName, tt.defaultVal, got, tt.want)
			}
		})
	}
}

func TestArgParser_HasFlag(t *testing.T) {
	parser := NewArgParser([]string{"show", "--watch", "--lines", "50"})

	if !parser.HasFlag("watch") {
		t.Error("HasFlag(watch) should be true")
	}
	if !parser.HasFlag("lines") {
		t.Error("HasFlag(lines) should be true")
	}
	if parser.HasFlag("nonexistent") {
		t.Error("HasFlag(nonexistent) should be false")
	}
}

// =============================================================================
// PARSE BOOL STRING TESTS
// =============================================================================

func TestParseBoolString(t *testing.T) {
	trueValues := []string{"true", "TRUE", "True", "yes", "YES", "y", "Y", "1", "on", "ON"}
	falseValues := []string{"false", "FALSE", "False", "no", "NO", "n", "N", "0", "off", "OFF"}

	for _, v := range trueValues {
		t.Run("true_"+v, func(t *testing.T) {
			got, err := ParseBoolString(v)
			if err != nil {
				t.Errorf("ParseBoolString(%q) error = %v", v, err)
			}
			if !got {
				t.Errorf("ParseBoolString(%q) = false, want true", v)
			}
		})
	}

	for _, v := range falseValues {
		t.Run("false_"+v, func(t *testing.T) {
			got, err := ParseBoolString(v)
			if err != nil {
				t.Errorf("ParseBoolString(%q) error = %v", v, err)
			}
			if got {
				t.Errorf("ParseBoolString(%q) = true, want false", v)
			}
		})
	}

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseBoolString("maybe")
		if err == nil {
			t.Error("ParseBoolString(maybe) should error")
		}
	})
}

// =============================================================================
// INTEGRATION-STYLE TESTS (testing Parse() with os.Args simulation)
// =============================================================================

// TestParse_Integration tests the actual Parse() function by temporarily
// modifying os.Args. This is an integration test of the full CLI parsing.
func TestParse_Integration(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	tests := []struct {
		name        string
		args        []string
		wantCommand Command
		validate    func(*testing.T, Args)
	}{
		{
			name:        "no args starts TUI",
			args:        []string{"bottrainer"},
			wantCommand: CmdTUI,
		},
		{
			name:        "login with email",
			args:        []string{"bottrainer", "login", "--email", "admin@example.com"},
			wantCommand: CmdLogin,
			validate: func(t *testing.T, a Args) {
				if a.Email != "admin@example.com" {
					t.Errorf("Email = %q, want %q", a.Email, "admin@example.com")
				}
			},
		},
		{
			name:        "login with email equals form",
			args:        []string{"bottrainer", "login", "--email=user@example.com"},
			wantCommand: CmdLogin,
			validate: func(t *testing.T, a Args) {
				if a.Email != "user@example.com" {
					t.Errorf("Email = %q, want %q", a.Email, "user@example.com")
				}
			},
		},
		{
			name:        "predict with query",
			args:        []string{"bottrainer", "predict", "turn off the lights"},
			wantCommand: CmdPredict,
			validate: func(t *testing.T, a Args) {
				if a.Query != "turn off the lights" {
					t.Errorf("Query = %q, want %q", a.Query, "turn off the lights")
				}
			},
		},
		{
			name:        "predict with model flag",
			args:        []string{"bottrainer", "predict", "--model", "rasa-lite", "book a table"},
			wantCommand: CmdPredict,
			validate: func(t *testing.T, a Args) {
				if a.Model != "rasa-lite" {
					t.Errorf("Model = %q, want %q", a.Model, "rasa-lite")
				}
				if a.Query != "book a table" {
					t.Errorf("Query = %q, want %q", a.Query, "book a table")
				}
			},
		},
		{
			name:        "predict with file",
			args:        []string{"bottrainer", "predict", "--file", "texts.txt"},
			wantCommand: CmdPredict,
			validate: func(t *testing.T, a Args) {
				if a.File != "texts.txt" {
					t.Errorf("File = %q, want %q", a.File, "texts.txt")
				}
			},
		},
		{
			name:        "unknown command treated as prediction",
			args:        []string{"bottrainer", "what", "is", "the", "weather"},
			wantCommand: CmdPredict,
			validate: func(t *testing.T, a Args) {
				if a.Query != "what is the weather" {
					t.Errorf("Query = %q, want %q", a.Query, "what is the weather")
				}
			},
		},
		{
			name:        "status alias",
			args:        []string{"bottrainer", "s"},
			wantCommand: CmdStatus,
		},
		{
			name:        "workspaces subcommand",
			args:        []string{"bottrainer", "ws", "select", "ws_abc"},
			wantCommand: CmdWorkspaces,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "select" {
					t.Errorf("Subcommand = %q, want %q", a.Subcommand, "select")
				}
			},
		},
		{
			name:        "datasets upload",
			args:        []string{"bottrainer", "datasets", "upload", "intents.csv"},
			wantCommand: CmdDatasets,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "upload" {
					t.Errorf("Subcommand = %q, want %q", a.Subcommand, "upload")
				}
				if len(a.Raw) != 2 || a.Raw[1] != "intents.csv" {
					t.Errorf("Raw = %v, want [upload intents.csv]", a.Raw)
				}
			},
		},
		{
			name:        "train status",
			args:        []string{"bottrainer", "train", "status"},
			wantCommand: CmdTrain,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "status" {
					t.Errorf("Subcommand = %q, want %q", a.Subcommand, "status")
				}
			},
		},
		{
			name:        "history alias",
			args:        []string{"bottrainer", "hist", "clear"},
			wantCommand: CmdHistory,
		},
		{
			name:        "config set",
			args:        []string{"bottrainer", "config", "set", "api.base_url", "http://10.0.0.5:8000"},
			wantCommand: CmdConfig,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "set" {
					t.Errorf("Subcommand = %q, want %q", a.Subcommand, "set")
				}
				if a.ConfigKey != "api.base_url" {
					t.Errorf("ConfigKey = %q, want %q", a.ConfigKey, "api.base_url")
				}
				if a.ConfigVal != "http://10.0.0.5:8000" {
					t.Errorf("ConfigVal = %q, want %q", a.ConfigVal, "http://10.0.0.5:8000")
				}
			},
		},
		{
			name:        "global server flag",
			args:        []string{"bottrainer", "--server", "http://localhost:9000", "status"},
			wantCommand: CmdStatus,
			validate: func(t *testing.T, a Args) {
				if a.Server != "http://localhost:9000" {
					t.Errorf("Server = %q, want %q", a.Server, "http://localhost:9000")
				}
			},
		},
		{
			name:        "global json flag",
			args:        []string{"bottrainer", "--json", "status"},
			wantCommand: CmdStatus,
			validate: func(t *testing.T, a Args) {
				if !a.JSON {
					t.Error("JSON should be true")
				}
			},
		},
		{
			name:        "version command",
			args:        []string{"bottrainer", "version"},
			wantCommand: CmdVersion,
		},
		{
			name:        "help command",
			args:        []string{"bottrainer", "help"},
			wantCommand: CmdHelp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			cmd, args := Parse()
			if cmd != tt.wantCommand {
				t.Errorf("Parse() command = %v, want %v", cmd, tt.wantCommand)
			}
			if tt.validate != nil {
				tt.validate(t, args)
			}
		})
	}
}

// =============================================================================
// EXIT CODE TESTS (errors.go)
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"validation error", NewValidationError("email", "", "required"), ExitUsageError},
		{"not found error", ErrNotFound("dataset", "abc"), ExitNotFoundError},
		{"session expired", api.ErrSessionExpired, ExitAuthError},
		{"unauthorized response", &api.APIError{Status: 401, Message: "invalid token"}, ExitAuthError},
		{"missing resource response", &api.APIError{Status: 404, Message: "no such workspace"}, ExitNotFoundError},
		{"server unavailable", api.ErrServerUnavailable, ExitNetworkError},
		{"rate limited", api.ErrRateLimited, ExitNetworkError},
		{"generic error", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCommandError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewCommandError("train", "start", "request failed", inner)

	if !errors.Is(err, inner) {
		t.Error("CommandError should unwrap to the inner error")
	}
	if !strings.Contains(err.Error(), "train") {
		t.Errorf("Error() = %q, should mention the command", err.Error())
	}
}

// =============================================================================
// JSON OUTPUT TESTS (json_output.go)
// =============================================================================

func TestJSONResponse_Shape(t *testing.T) {
	resp := NewJSONResponse("status", map[string]string{"state": "idle"})
	out := resp.String()

	var decoded struct {
		Success   bool              `json:"success"`
		Data      map[string]string `json:"data"`
		Error     *string           `json:"error"`
		Timestamp string            `json:"timestamp"`
		Command   string            `json:"command"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if !decoded.Success {
		t.Error("Success should be true")
	}
	if decoded.Command != "status" {
		t.Errorf("Command = %q, want %q", decoded.Command, "status")
	}
	if decoded.Data["state"] != "idle" {
		t.Errorf("Data[state] = %q, want %q", decoded.Data["state"], "idle")
	}
	if decoded.Error != nil {
		t.Errorf("Error = %v, want nil", *decoded.Error)
	}
	if decoded.Timestamp == "" {
		t.Error("Timestamp should be set")
	}
}

func TestJSONErrorResponse_Shape(t *testing.T) {
	resp := NewJSONErrorResponse("login", errors.New("invalid credentials"))
	out := resp.String()

	var decoded struct {
		Success bool    `json:"success"`
		Error   *string `json:"error"`
		Command string  `json:"command"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.Success {
		t.Error("Success should be false")
	}
	if decoded.Error == nil || *decoded.Error != "invalid credentials" {
		t.Errorf("Error = %v, want invalid credentials", decoded.Error)
	}
}
