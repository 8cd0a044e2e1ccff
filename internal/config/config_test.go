// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() is invalid: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("default base URL = %q", cfg.API.BaseURL)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }},
		{"non-http base url", func(c *Config) { c.API.BaseURL = "ftp://host" }},
		{"zero timeout", func(c *Config) { c.API.TimeoutSecs = 0 }},
		{"negative retries", func(c *Config) { c.API.MaxRetries = -1 }},
		{"unknown theme", func(c *Config) { c.UI.Theme = "solarized" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() accepted an invalid config")
			}
		})
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.API.BaseURL = "https://trainer.example.com"
	cfg.UI.Theme = "light"
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML() error = %v", err)
	}

	loaded := Default()
	if err := LoadTOML(loaded, path); err != nil {
		t.Fatalf("LoadTOML() error = %v", err)
	}
	if loaded.API.BaseURL != "https://trainer.example.com" {
		t.Errorf("BaseURL = %q", loaded.API.BaseURL)
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("Theme = %q", loaded.UI.Theme)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file mode = %o, want 0600", perm)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BOTTRAINER_API_BASE", "http://backend:9000")
	t.Setenv("BOTTRAINER_THEME", "light")
	t.Setenv("BOTTRAINER_TIMEOUT_SECS", "30")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.API.BaseURL != "http://backend:9000" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q", cfg.UI.Theme)
	}
	if cfg.API.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d", cfg.API.TimeoutSecs)
	}
}

func TestGetSetByKey(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("api.base_url", "http://other:8000"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := cfg.Get("api.base_url")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "http://other:8000" {
		t.Errorf("Get() = %v", got)
	}

	if err := cfg.Set("history.enabled", "false"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.History.Enabled {
		t.Error("history.enabled not applied")
	}

	if err := cfg.Set("api.timeout_secs", "not a number"); err == nil {
		t.Error("Set() accepted a non-integer for an int key")
	}
	if _, err := cfg.Get("no.such.key"); err == nil {
		t.Error("Get() accepted an unknown key")
	}
}

func TestKeysCoverLeafFields(t *testing.T) {
	keys := Keys()
	want := map[string]bool{
		"api.base_url":    false,
		"ui.theme":        false,
		"history.db_path": false,
	}
	for _, k := range keys {
		if _, ok := want[k]; ok {
			want[k] = true
		}
	}
	for k, seen := range want {
		if !seen {
			t.Errorf("Keys() missing %q", k)
		}
	}
}

// TestConfig_ConcurrentAccess exercises Global/SetGlobal/ReloadGlobal
// under contention. Run with -race.
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}
