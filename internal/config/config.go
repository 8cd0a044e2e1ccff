// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management
// for the Bot Trainer client.
//
// Supports both TOML and JSON configuration formats, with sensible
// defaults, environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.bottrainer/config.toml
//   - ~/.bottrainer/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete client configuration.
type Config struct {
	// Version of the config schema
	Version string `toml:"version" json:"version"`

	// API backend configuration
	API APIConfig `toml:"api" json:"api"`

	// Session configuration
	Session SessionConfig `toml:"session" json:"session"`

	// Prediction history configuration
	History HistoryConfig `toml:"history" json:"history"`

	// Logging configuration
	Logging LoggingConfig `toml:"logging" json:"logging"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// APIConfig contains backend connection settings.
type APIConfig struct {
	// BaseURL is the backend address, e.g. http://localhost:8000
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// MaxRetries is how many times transient failures are retried
	MaxRetries int `toml:"max_retries" json:"max_retries"`
	// RateLimitRPS caps outgoing requests per second
	RateLimitRPS float64 `toml:"rate_limit_rps" json:"rate_limit_rps"`
	// RateLimitBurst is the rate limiter burst size
	RateLimitBurst int `toml:"rate_limit_burst" json:"rate_limit_burst"`
}

// SessionConfig contains session persistence settings.
type SessionConfig struct {
	// FilePath overrides where session state is persisted.
	// Empty means ~/.bottrainer/session.json.
	FilePath string `toml:"file_path" json:"file_path"`
}

// HistoryConfig contains prediction history settings.
type HistoryConfig struct {
	// Enabled toggles local prediction history
	Enabled bool `toml:"enabled" json:"enabled"`
	// DBPath is the SQLite database location (empty = ~/.bottrainer/history.db)
	DBPath string `toml:"db_path" json:"db_path"`
	// MaxEntries bounds how many records are kept
	MaxEntries int `toml:"max_entries" json:"max_entries"`
}

// LoggingConfig contains client log settings.
type LoggingConfig struct {
	// Enabled toggles file logging
	Enabled bool `toml:"enabled" json:"enabled"`
	// Path is the log file location (empty = ~/.bottrainer/client.log)
	Path string `toml:"path" json:"path"`
}

// UIConfig contains interface settings.
type UIConfig struct {
	// Theme selects the color theme: "dark", "light"
	Theme string `toml:"theme" json:"theme"`
	// CompactMode reduces vertical spacing
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Version: "1.0",
		API: APIConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSecs:    60,
			MaxRetries:     3,
			RateLimitRPS:   10,
			RateLimitBurst: 20,
		},
		Session: SessionConfig{},
		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: 1000,
		},
		Logging: LoggingConfig{
			Enabled: true,
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the configuration directory (~/.bottrainer).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".bottrainer"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions tightens config file permissions to 0600.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Mode().Perm() != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix permissions (was %o): %w", info.Mode().Perm(), err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				return nil, fmt.Errorf("failed to load TOML config: %w", err)
			}
			return finalize(cfg)
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				return nil, fmt.Errorf("failed to load JSON config: %w", err)
			}
			return finalize(cfg)
		}
	}

	return finalize(cfg)
}

// finalize applies env overrides, fills defaults, and validates.
func finalize(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from an explicit path, deciding
// the format by extension.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	case ".json":
		if err := LoadJSON(cfg, path); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
	return finalize(cfg)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default TOML location.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration as TOML with owner-only
// permissions.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors aggregates validation failures.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.API.BaseURL == "" {
		errs = append(errs, ValidationError{"api.base_url", "must not be empty"})
	} else if u, err := url.Parse(c.API.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, ValidationError{"api.base_url", "must be an http(s) URL"})
	}
	if c.API.TimeoutSecs <= 0 {
		errs = append(errs, ValidationError{"api.timeout_secs", "must be positive"})
	}
	if c.API.MaxRetries < 0 {
		errs = append(errs, ValidationError{"api.max_retries", "must not be negative"})
	}
	if c.API.RateLimitRPS <= 0 {
		errs = append(errs, ValidationError{"api.rate_limit_rps", "must be positive"})
	}
	if c.History.MaxEntries < 0 {
		errs = append(errs, ValidationError{"history.max_entries", "must not be negative"})
	}
	switch c.UI.Theme {
	case "dark", "light":
	default:
		errs = append(errs, ValidationError{"ui.theme", "must be dark or light"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills any zero-valued fields from the defaults.
func (c *Config) SetDefaults() {
	def := Default()
	if c.Version == "" {
		c.Version = def.Version
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.TimeoutSecs == 0 {
		c.API.TimeoutSecs = def.API.TimeoutSecs
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = def.API.MaxRetries
	}
	if c.API.RateLimitRPS == 0 {
		c.API.RateLimitRPS = def.API.RateLimitRPS
	}
	if c.API.RateLimitBurst == 0 {
		c.API.RateLimitBurst = def.API.RateLimitBurst
	}
	if c.History.MaxEntries == 0 {
		c.History.MaxEntries = def.History.MaxEntries
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies BOTTRAINER_* environment variables on top
// of file values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("BOTTRAINER_API_BASE"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("BOTTRAINER_SESSION_FILE"); v != "" {
		c.Session.FilePath = v
	}
	if v := os.Getenv("BOTTRAINER_HISTORY_DB"); v != "" {
		c.History.DBPath = v
	}
	if v := os.Getenv("BOTTRAINER_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("BOTTRAINER_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.API.TimeoutSecs = secs
		}
	}
}

// =============================================================================
// KEY ACCESS (config CLI command)
// =============================================================================

// Get returns the value at a dotted key path, e.g. "api.base_url".
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.fieldByKey(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set assigns the value at a dotted key path. Values are parsed
// according to the field's type.
func (c *Config) Set(key string, value string) error {
	field, err := c.fieldByKey(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set key %q", key)
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("key %q expects a boolean: %w", key, err)
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("key %q expects an integer: %w", key, err)
		}
		field.SetInt(n)
	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("key %q expects a number: %w", key, err)
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("key %q has unsupported type %s", key, field.Kind())
	}
	return nil
}

// fieldByKey resolves a dotted key path against the toml tags.
func (c *Config) fieldByKey(key string) (reflect.Value, error) {
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c).Elem()

	for _, part := range parts {
		if v.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("unknown config key: %s", key)
		}
		found := false
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			tag := strings.Split(t.Field(i).Tag.Get("toml"), ",")[0]
			if tag == part {
				v = v.Field(i)
				found = true
				break
			}
		}
		if !found {
			return reflect.Value{}, fmt.Errorf("unknown config key: %s", key)
		}
	}
	return v, nil
}

// Keys returns all settable dotted key paths.
func Keys() []string {
	var keys []string
	collectKeys(reflect.TypeOf(Config{}), "", &keys)
	return keys
}

func collectKeys(t reflect.Type, prefix string, out *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := strings.Split(f.Tag.Get("toml"), ",")[0]
		if tag == "" {
			continue
		}
		full := tag
		if prefix != "" {
			full = prefix + "." + tag
		}
		if f.Type.Kind() == reflect.Struct {
			collectKeys(f.Type, full, out)
			continue
		}
		*out = append(*out, full)
	}
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
// Consumes the lazy-load guard so a later Global() call cannot
// replace the injected config.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
