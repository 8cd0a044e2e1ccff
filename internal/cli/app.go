// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Shared wiring for CLI command handlers.
package cli

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/config"
	"github.com/jeranaias/bottrainer-tui/internal/history"
	"github.com/jeranaias/bottrainer-tui/internal/session"
)

// SetupLogging routes the stdlib logger to the configured log file.
// The TUI owns the terminal, so when no file is usable the logger is
// silenced instead of writing over the interface. The returned closer
// flushes and closes the file.
func SetupLogging() func() {
	cfg := config.Global()
	if !cfg.Logging.Enabled {
		log.SetOutput(io.Discard)
		return func() {}
	}

	path := cfg.Logging.Path
	if path == "" {
		dir, err := config.ConfigDir()
		if err != nil {
			log.SetOutput(io.Discard)
			return func() {}
		}
		path = filepath.Join(dir, "client.log")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { _ = f.Close() }
}

// SessionPath returns the session file location, honoring the config
// override.
func SessionPath() string {
	cfg := config.Global()
	if cfg.Session.FilePath != "" {
		return cfg.Session.FilePath
	}
	return session.DefaultPath()
}

// NewAPIClient builds an API client from the active configuration.
// The --server flag overrides the configured base URL.
func NewAPIClient(args Args) *api.Client {
	cfg := config.Global()

	baseURL := cfg.API.BaseURL
	if args.Server != "" {
		baseURL = args.Server
	}

	return api.NewClient(baseURL,
		api.WithSessionPath(SessionPath()),
		api.WithRetries(cfg.API.MaxRetries),
		api.WithRateLimit(cfg.API.RateLimitRPS, cfg.API.RateLimitBurst),
	)
}

// OpenSessionStore loads the persisted session state.
func OpenSessionStore() *session.Store {
	return session.NewStore(session.NewFileBackend(SessionPath()))
}

// OpenHistory opens the prediction history database, or returns nil
// when history is disabled. Callers must handle nil.
func OpenHistory() *history.Store {
	cfg := config.Global()
	if !cfg.History.Enabled {
		return nil
	}

	path := cfg.History.DBPath
	if path == "" {
		dir, err := config.ConfigDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(dir, "history.db")
	}

	store, err := history.Open(path, cfg.History.MaxEntries)
	if err != nil {
		return nil
	}
	return store
}

// requestTimeout bounds one CLI API call.
func requestTimeout() time.Duration {
	cfg := config.Global()
	if cfg.API.TimeoutSecs > 0 {
		return time.Duration(cfg.API.TimeoutSecs) * time.Second
	}
	return 60 * time.Second
}
