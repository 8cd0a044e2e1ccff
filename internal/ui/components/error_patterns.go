// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// error_patterns.go - Pattern matching for backend error messages
package components

import (
	"strings"
	"sync"
)

// =============================================================================
// ERROR CATEGORIES
// =============================================================================

// ErrorCategory represents the type of error for better organization and display.
type ErrorCategory string

const (
	// CategoryNetwork represents network and connectivity errors
	CategoryNetwork ErrorCategory = "Network"
	// CategoryAuth represents authentication and credential errors
	CategoryAuth ErrorCategory = "Auth"
	// CategorySession represents expired or invalid session errors
	CategorySession ErrorCategory = "Session"
	// CategoryDataset represents dataset upload and format errors
	CategoryDataset ErrorCategory = "Dataset"
	// CategoryTraining represents training run errors
	CategoryTraining ErrorCategory = "Training"
	// CategoryWorkspace represents workspace errors
	CategoryWorkspace ErrorCategory = "Workspace"
	// CategoryValidation represents request validation errors
	CategoryValidation ErrorCategory = "Validation"
	// CategoryRateLimit represents throttling errors
	CategoryRateLimit ErrorCategory = "RateLimit"
	// CategoryServer represents backend server failures
	CategoryServer ErrorCategory = "Server"
	// CategoryUnknown represents unclassified errors
	CategoryUnknown ErrorCategory = "Error"
)

// =============================================================================
// ERROR PATTERN MATCHER
// =============================================================================

// ErrorPattern defines a pattern to match against error strings and provide suggestions.
type ErrorPattern struct {
	// Keywords to match in the error message (case-insensitive, any match triggers)
	Keywords []string

	// Category classifies the error type
	Category ErrorCategory

	// Title for the error display
	Title string

	// Suggestions to help resolve the error
	Suggestions []string

	// LogHint tells users what to look for in logs (optional)
	LogHint string
}

// ErrorPatternMatcher analyzes error strings and provides smart suggestions.
type ErrorPatternMatcher struct {
	mu       sync.RWMutex
	patterns []ErrorPattern
}

// Singleton instance for default pattern matcher
var (
	defaultMatcher     *ErrorPatternMatcher
	defaultMatcherOnce sync.Once
)

// GetDefaultMatcher returns the singleton pattern matcher instance.
// This is thread-safe and avoids re-creating the matcher on every error.
func GetDefaultMatcher() *ErrorPatternMatcher {
	defaultMatcherOnce.Do(func() {
		defaultMatcher = NewErrorPatternMatcher()
	})
	return defaultMatcher
}

// NewErrorPatternMatcher creates a new error pattern matcher with default patterns.
func NewErrorPatternMatcher() *ErrorPatternMatcher {
	matcher := &ErrorPatternMatcher{
		patterns: make([]ErrorPattern, 0),
	}

	matcher.registerDefaultPatterns()

	return matcher
}

// registerDefaultPatterns registers common error patterns with actionable suggestions.
// IMPORTANT: Patterns are registered from MOST SPECIFIC to LEAST SPECIFIC.
// The first matching pattern wins, so specific patterns must come before general ones.
func (m *ErrorPatternMatcher) registerDefaultPatterns() {
	// =========================================================================
	// MOST SPECIFIC PATTERNS FIRST
	// =========================================================================

	// Session expiry (must be before general auth errors)
	m.AddPattern(ErrorPattern{
		Keywords: []string{
			"session expired", "session has expired",
			"token expired", "token has expired",
			"please log in again",
		},
		Category: CategorySession,
		Title:    "Session Expired",
		Suggestions: []string{
			"Log in again to get a fresh session",
			"Sessions last 12 hours from login",
		},
		LogHint: "Check the login timestamp and token expiry",
	})

	// Invalid credentials (before general auth)
	m.AddPattern(ErrorPattern{
		Keywords: []string{
			"incorrect email or password", "invalid credentials",
			"incorrect password", "authentication failed",
		},
		Category: CategoryAuth,
		Title:    "Login Failed",
		Suggestions: []string{
			"Check your email and password",
			"Reset your password with: bottrainer login --forgot",
		},
		LogHint: "Check the login attempt and response status",
	})

	// OTP / verification errors
	m.AddPattern(ErrorPattern{
		Keywords: []string{
			"invalid otp", "otp expired", "verification code",
			"invalid code",
		},
		Category: CategoryAuth,
		Title:    "Verification Failed",
		Suggestions: []string{
			"Check the code sent to your email",
			"Request a new code if it has expired",
		},
	})

	// General auth errors
	m.AddPattern(ErrorPattern{
		Keywords: []string{
			"unauthorized", "not authenticated", "401",
			"invalid token", "forbidden", "403",
			"admin access required", "insufficient privileges",
		},
		Category: CategoryAuth,
		Title:    "Not Authorized",
		Suggestions: []string{
			"Log in with: bottrainer login",
			"Admin pages require an admin account",
		},
		LogHint: "Check the response status and required role",
	})

	// Dataset format errors
	m.AddPattern(ErrorPattern{
		Keywords: []string{
			"invalid dataset", "missing column", "unsupported file type",
			"could not parse dataset", "empty dataset", "no sentences",
		},
		Category: CategoryDataset,
		Title:    "Dataset Error",
		Suggestions: []string{
			"Datasets need 'text' and 'intent' columns",
			"Supported formats: CSV, JSON, YAML",
			"Inspect the file with: bottrainer datasets show",
		},
		LogHint: "Check the parse errors and rejected rows",
	})

	// Training conflicts
	m.AddPattern(ErrorPattern{
		Keywords: []string{
			"training already running", "training in progress",
			"no dataset selected", "training failed",
		},
		Category: CategoryTraining,
		Title:    "Training Error",
		Suggestions: []string{
			"Check the current run: bottrainer train status",
			"Select a dataset first: bottrainer datasets select",
		},
		LogHint: "Check the training run state and dataset checksum",
	})

	// Workspace errors
	m.AddPattern(ErrorPattern{
		Keywords: []string{
			"workspace not found", "no workspace selected",
			"workspace already exists",
		},
		Category: CategoryWorkspace,
		Title:    "Workspace Error",
		Suggestions: []string{
			"List workspaces: bottrainer workspaces",
			"Select one: bottrainer workspaces select <id>",
		},
	})

	// Rate limiting errors
	m.AddPattern(ErrorPattern{
		Keywords: []string{
			"rate limit", "too many requests",
			"429", "throttled",
		},
		Category: CategoryRateLimit,
		Title:    "Rate Limit Exceeded",
		Suggestions: []string{
			"Wait a moment and retry",
			"Batch predictions instead of one request per line",
		},
		LogHint: "Check request frequency",
	})

	// Request Timeout (must be before general network errors)
	m.AddPattern(ErrorPattern{
		Keywords: []string{
			"request timeout", "operation timed out",
			"context deadline exceeded",
		},
		Category: CategoryNetwork,
		Title:    "Request Timeout",
		Suggestions: []string{
			"Try again - the server may be busy",
			"Check server load, training runs slow the API down",
		},
		LogHint: "Look for timeout duration and server response times",
	})

	// =========================================================================
	// MEDIUM SPECIFICITY PATTERNS
	// =========================================================================

	// Validation errors (FastAPI 422 responses)
	m.AddPattern(ErrorPattern{
		Keywords: []string{
			"validation error", "422", "field required",
			"value is not a valid",
		},
		Category: CategoryValidation,
		Title:    "Validation Error",
		Suggestions: []string{
			"Check the request fields named in the message",
			"Run with --verbose for the full response",
		},
	})

	// Server failures
	m.AddPattern(ErrorPattern{
		Keywords: []string{
			"internal server error", "500", "502", "503",
			"service unavailable", "bad gateway",
		},
		Category: CategoryServer,
		Title:    "Server Error",
		Suggestions: []string{
			"The backend hit an internal error, try again",
			"Check the server logs if you run the backend",
		},
		LogHint: "Check the request ID against the server logs",
	})

	// JSON/Parse errors
	m.AddPattern(ErrorPattern{
		Keywords: []string{
			"unmarshal", "parse error",
			"invalid json", "syntax error",
		},
		Category: CategoryValidation,
		Title:    "Parse Error",
		Suggestions: []string{
			"Check for malformed JSON or data",
			"Verify the server URL points at a Bot Trainer backend",
		},
		LogHint: "Check input format and validation errors",
	})

	// =========================================================================
	// GENERAL/FALLBACK PATTERNS (LEAST SPECIFIC - LAST)
	// =========================================================================

	// General network/connection errors (fallback - must be LAST)
	// NOTE: Does NOT include "timeout" - that's handled by Request Timeout above
	m.AddPattern(ErrorPattern{
		Keywords: []string{
			"connection refused", "connect: connection refused",
			"dial tcp", "no such host", "network unreachable",
			"connection reset", "broken pipe",
			"cannot connect", "failed to connect",
		},
		Category: CategoryNetwork,
		Title:    "Connection Error",
		Suggestions: []string{
			"Check the backend is running",
			"Verify the server URL: bottrainer config get server.url",
			"Check your network connection",
		},
		LogHint: "Check network connectivity and service status",
	})
}

// AddPattern adds a custom error pattern to the matcher.
// This allows extending the pattern matcher with application-specific patterns.
// Thread-safe.
func (m *ErrorPatternMatcher) AddPattern(pattern ErrorPattern) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns = append(m.patterns, pattern)
}

// Match analyzes an error string and returns an ErrorDisplay with smart suggestions.
// Returns nil if no pattern matches. Thread-safe.
func (m *ErrorPatternMatcher) Match(errMsg string) *ErrorDisplay {
	if errMsg == "" {
		return nil
	}

	errLower := strings.ToLower(errMsg)

	m.mu.RLock()
	defer m.mu.RUnlock()

	// Try each pattern in order (most specific first)
	for _, pattern := range m.patterns {
		if m.matchesPattern(errLower, pattern) {
			display := NewEnhancedError(pattern, errMsg)
			return &display
		}
	}

	// No pattern matched
	return nil
}

// MatchOrDefault analyzes an error string and returns an ErrorDisplay with smart suggestions.
// If no pattern matches, returns a generic error display with the given title and message.
func (m *ErrorPatternMatcher) MatchOrDefault(title, errMsg string) ErrorDisplay {
	if matched := m.Match(errMsg); matched != nil {
		return *matched
	}

	return NewError(title, errMsg)
}

// matchesPattern checks if an error message matches a pattern's keywords.
func (m *ErrorPatternMatcher) matchesPattern(errMsg string, pattern ErrorPattern) bool {
	for _, keyword := range pattern.Keywords {
		if strings.Contains(errMsg, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// =============================================================================
// SMART ERROR CREATION
// =============================================================================

// SmartError creates an error display with auto-detected pattern matching.
// This is the recommended way to create errors with intelligent suggestions.
func SmartError(title, message string) ErrorDisplay {
	matcher := GetDefaultMatcher()
	return matcher.MatchOrDefault(title, message)
}

// SmartErrorFromError creates an error display from a Go error with pattern matching.
func SmartErrorFromError(title string, err error) ErrorDisplay {
	if err == nil {
		return NewError(title, "Unknown error")
	}
	return SmartError(title, err.Error())
}
