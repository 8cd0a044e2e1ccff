// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
)

func TestErrorPatternMatcher(t *testing.T) {
	matcher := NewErrorPatternMatcher()

	tests := []struct {
		name           string
		errorMsg       string
		expectedTitle  string
		shouldMatch    bool
		minSuggestions int
	}{
		{
			name:           "Connection refused",
			errorMsg:       "dial tcp 127.0.0.1:8000: connect: connection refused",
			expectedTitle:  "Connection Error",
			shouldMatch:    true,
			minSuggestions: 2,
		},
		{
			name:           "Session expired",
			errorMsg:       "session expired, please log in again",
			expectedTitle:  "Session Expired",
			shouldMatch:    true,
			minSuggestions: 1,
		},
		{
			name:           "Invalid credentials",
			errorMsg:       "Incorrect email or password",
			expectedTitle:  "Login Failed",
			shouldMatch:    true,
			minSuggestions: 2,
		},
		{
			name:           "Unauthorized",
			errorMsg:       "unauthorized: missing bearer token",
			expectedTitle:  "Not Authorized",
			shouldMatch:    true,
			minSuggestions: 2,
		},
		{
			name:           "Admin required",
			errorMsg:       "admin access required for this endpoint",
			expectedTitle:  "Not Authorized",
			shouldMatch:    true,
			minSuggestions: 2,
		},
		{
			name:           "Dataset format",
			errorMsg:       "invalid dataset: missing column 'intent'",
			expectedTitle:  "Dataset Error",
			shouldMatch:    true,
			minSuggestions: 2,
		},
		{
			name:           "Training conflict",
			errorMsg:       "training already running for this workspace",
			expectedTitle:  "Training Error",
			shouldMatch:    true,
			minSuggestions: 2,
		},
		{
			name:           "Workspace not found",
			errorMsg:       "workspace not found: ws_missing",
			expectedTitle:  "Workspace Error",
			shouldMatch:    true,
			minSuggestions: 2,
		},
		{
			name:           "Request timeout",
			errorMsg:       "request timeout: operation timed out after 30s",
			expectedTitle:  "Request Timeout",
			shouldMatch:    true,
			minSuggestions: 2,
		},
		{
			name:           "Rate limit",
			errorMsg:       "rate limit exceeded: too many requests",
			expectedTitle:  "Rate Limit Exceeded",
			shouldMatch:    true,
			minSuggestions: 2,
		},
		{
			name:           "Validation error",
			errorMsg:       "validation error: field required: text",
			expectedTitle:  "Validation Error",
			shouldMatch:    true,
			minSuggestions: 2,
		},
		{
			name:           "Server error",
			errorMsg:       "internal server error",
			expectedTitle:  "Server Error",
			shouldMatch:    true,
			minSuggestions: 2,
		},
		{
			name:           "Unknown error",
			errorMsg:       "some random unknown problem",
			expectedTitle:  "",
			shouldMatch:    false,
			minSuggestions: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matcher.Match(tt.errorMsg)

			if tt.shouldMatch {
				if result == nil {
					t.Errorf("Expected pattern to match, but got nil")
					return
				}

				if result.title != tt.expectedTitle {
					t.Errorf("Expected title %q, got %q", tt.expectedTitle, result.title)
				}

				if len(result.suggestions) < tt.minSuggestions {
					t.Errorf("Expected at least %d suggestions, got %d", tt.minSuggestions, len(result.suggestions))
				}
			} else {
				if result != nil {
					t.Errorf("Expected no match, but got title %q", result.title)
				}
			}
		})
	}
}

func TestErrorPatternMatcherMatchOrDefault(t *testing.T) {
	matcher := NewErrorPatternMatcher()

	tests := []struct {
		name         string
		title        string
		errorMsg     string
		expectCustom bool
		expectTitle  string
	}{
		{
			name:         "Matched pattern",
			title:        "Connection Issue",
			errorMsg:     "connection refused",
			expectCustom: true,
			expectTitle:  "Connection Error", // Pattern's title takes precedence
		},
		{
			name:         "No match - use default",
			title:        "Custom Error",
			errorMsg:     "something went wrong",
			expectCustom: false,
			expectTitle:  "Custom Error", // Uses provided title
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matcher.MatchOrDefault(tt.title, tt.errorMsg)

			if result.title != tt.expectTitle {
				t.Errorf("Expected title %q, got %q", tt.expectTitle, result.title)
			}

			if tt.expectCustom && len(result.suggestions) == 0 {
				t.Error("Expected suggestions for matched pattern, got none")
			}
		})
	}
}

func TestSmartError(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		message     string
		expectSuggs bool
	}{
		{
			name:        "Connection error gets suggestions",
			title:       "Error",
			message:     "dial tcp: connection refused",
			expectSuggs: true,
		},
		{
			name:        "Session error gets suggestions",
			title:       "Error",
			message:     "token has expired",
			expectSuggs: true,
		},
		{
			name:        "Generic error has no suggestions",
			title:       "Error",
			message:     "something unexpected happened",
			expectSuggs: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SmartError(tt.title, tt.message)

			if tt.expectSuggs && len(result.suggestions) == 0 {
				t.Error("Expected suggestions but got none")
			}

			if !tt.expectSuggs && len(result.suggestions) > 0 {
				t.Errorf("Expected no suggestions but got %d", len(result.suggestions))
			}
		})
	}
}

func TestAddCustomPattern(t *testing.T) {
	matcher := NewErrorPatternMatcher()

	customPattern := ErrorPattern{
		Keywords:    []string{"custom error", "my special error"},
		Title:       "Custom Error",
		Suggestions: []string{"Do this", "Do that"},
	}
	matcher.AddPattern(customPattern)

	result := matcher.Match("This is a custom error message")
	if result == nil {
		t.Fatal("Expected custom pattern to match")
	}

	if result.title != "Custom Error" {
		t.Errorf("Expected title %q, got %q", "Custom Error", result.title)
	}

	if len(result.suggestions) != 2 {
		t.Errorf("Expected 2 suggestions, got %d", len(result.suggestions))
	}
}

func TestCaseInsensitiveMatching(t *testing.T) {
	matcher := NewErrorPatternMatcher()

	tests := []struct {
		errorMsg    string
		shouldMatch bool
	}{
		{"CONNECTION REFUSED", true},
		{"Connection Refused", true},
		{"connection refused", true},
		{"CoNnEcTiOn ReFuSeD", true},
	}

	for _, tt := range tests {
		t.Run(tt.errorMsg, func(t *testing.T) {
			result := matcher.Match(tt.errorMsg)
			matched := result != nil

			if matched != tt.shouldMatch {
				t.Errorf("Expected match=%v, got match=%v", tt.shouldMatch, matched)
			}
		})
	}
}
