// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
)

// TestErrorCategories verifies that error categories are properly defined.
func TestErrorCategories(t *testing.T) {
	categories := []ErrorCategory{
		CategoryNetwork,
		CategoryAuth,
		CategorySession,
		CategoryDataset,
		CategoryTraining,
		CategoryWorkspace,
		CategoryValidation,
		CategoryRateLimit,
		CategoryServer,
		CategoryUnknown,
	}

	for _, cat := range categories {
		if string(cat) == "" {
			t.Errorf("Category should not be empty")
		}
	}
}

// TestEnhancedErrorPattern verifies that enhanced error patterns have all fields.
func TestEnhancedErrorPattern(t *testing.T) {
	matcher := NewErrorPatternMatcher()

	testCases := []struct {
		errMsg      string
		expectMatch bool
		expectCat   ErrorCategory
	}{
		{"connection refused", true, CategoryNetwork},
		{"session has expired", true, CategorySession},
		{"incorrect email or password", true, CategoryAuth},
		{"request timeout", true, CategoryNetwork},
		{"invalid dataset format", true, CategoryDataset},
		{"training already running", true, CategoryTraining},
		{"workspace not found", true, CategoryWorkspace},
		{"internal server error", true, CategoryServer},
		{"some random error", false, CategoryUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.errMsg, func(t *testing.T) {
			display := matcher.Match(tc.errMsg)

			if tc.expectMatch {
				if display == nil {
					t.Errorf("Expected match for '%s' but got nil", tc.errMsg)
					return
				}

				if display.category != tc.expectCat {
					t.Errorf("Expected category %s, got %s", tc.expectCat, display.category)
				}

				// Check that enhanced fields are populated
				if display.title == "" {
					t.Error("Title should not be empty")
				}
				if display.message == "" {
					t.Error("Message should not be empty")
				}
				if len(display.suggestions) == 0 {
					t.Error("Suggestions should not be empty")
				}
			} else {
				if display != nil {
					t.Errorf("Expected no match for '%s' but got: %+v", tc.errMsg, display)
				}
			}
		})
	}
}

// TestNewEnhancedError verifies enhanced error creation.
func TestNewEnhancedError(t *testing.T) {
	pattern := ErrorPattern{
		Keywords:    []string{"test"},
		Category:    CategoryNetwork,
		Title:       "Test Error",
		Suggestions: []string{"Suggestion 1", "Suggestion 2"},
		LogHint:     "Check logs for details",
	}

	display := NewEnhancedError(pattern, "test error message")

	if display.category != CategoryNetwork {
		t.Errorf("Expected category %s, got %s", CategoryNetwork, display.category)
	}
	if display.title != "Test Error" {
		t.Errorf("Expected title 'Test Error', got '%s'", display.title)
	}
	if display.message != "test error message" {
		t.Errorf("Expected message 'test error message', got '%s'", display.message)
	}
	if len(display.suggestions) != 2 {
		t.Errorf("Expected 2 suggestions, got %d", len(display.suggestions))
	}
	if display.logHint != "Check logs for details" {
		t.Errorf("Expected logHint 'Check logs for details', got '%s'", display.logHint)
	}
	if !display.visible {
		t.Error("Expected error to be visible")
	}
	if display.logsPath == "" {
		t.Error("Expected logsPath to be set")
	}
}

// TestNewEnhancedErrorWithContext verifies context addition.
func TestNewEnhancedErrorWithContext(t *testing.T) {
	pattern := ErrorPattern{
		Category:    CategoryTraining,
		Title:       "Test Error",
		Suggestions: []string{"Fix it"},
		LogHint:     "Check logs",
	}

	context := "While starting a training run"
	display := NewEnhancedErrorWithContext(pattern, "error message", context)

	if display.context != context {
		t.Errorf("Expected context '%s', got '%s'", context, display.context)
	}
}

// TestGetLogsPath verifies logs path generation.
func TestGetLogsPath(t *testing.T) {
	path := getLogsPath()

	if path == "" {
		t.Error("Logs path should not be empty")
	}

	if !strings.Contains(path, ".bottrainer") {
		t.Error("Logs path should contain '.bottrainer'")
	}
	if !strings.Contains(path, "logs") {
		t.Error("Logs path should contain 'logs'")
	}
	if !strings.Contains(path, "bottrainer.log") {
		t.Error("Logs path should contain 'bottrainer.log'")
	}
}

// TestErrorDisplaySetters verifies setter methods.
func TestErrorDisplaySetters(t *testing.T) {
	display := NewErrorDisplay()

	display.SetCategory(CategoryNetwork)
	display.SetTitle("Test Title")
	display.SetMessage("Test Message")
	display.SetContext("Test Context")
	display.SetSuggestions([]string{"Suggestion 1"})
	display.SetLogHint("Check logs")

	if display.category != CategoryNetwork {
		t.Error("SetCategory failed")
	}
	if display.title != "Test Title" {
		t.Error("SetTitle failed")
	}
	if display.message != "Test Message" {
		t.Error("SetMessage failed")
	}
	if display.context != "Test Context" {
		t.Error("SetContext failed")
	}
	if len(display.suggestions) != 1 {
		t.Error("SetSuggestions failed")
	}
	if display.logHint != "Check logs" {
		t.Error("SetLogHint failed")
	}
}

// TestErrorPatternPriority verifies pattern matching priority (most specific first).
func TestErrorPatternPriority(t *testing.T) {
	matcher := NewErrorPatternMatcher()

	// "token has expired" should match the session pattern, not general auth
	display := matcher.Match("token has expired")
	if display == nil {
		t.Fatal("Expected match for 'token has expired'")
	}
	if display.title != "Session Expired" {
		t.Errorf("Expected 'Session Expired', got '%s'", display.title)
	}

	// General connection error
	display = matcher.Match("connection refused to unknown host")
	if display == nil {
		t.Fatal("Expected match for general connection error")
	}
	if display.title != "Connection Error" {
		t.Errorf("Expected 'Connection Error', got '%s'", display.title)
	}
}

// TestViewBoxRendering verifies that viewBox renders without errors.
func TestViewBoxRendering(t *testing.T) {
	pattern := ErrorPattern{
		Category:    CategoryNetwork,
		Title:       "Test Error",
		Suggestions: []string{"Suggestion 1", "Suggestion 2"},
		LogHint:     "Check logs for connection issues",
	}

	display := NewEnhancedErrorWithContext(pattern, "Connection failed", "While connecting to server")
	display.SetSize(80, 24)

	view := display.viewBox()

	if view == "" {
		t.Error("viewBox should not return empty string")
	}

	// Should contain key elements (using ASCII indicators)
	expectedElements := []string{
		"Test Error",
		"Connection failed",
		"Context:",
		"While connecting to server",
		"Suggestions:",
		"Suggestion 1",
		"[LOG] Logs:",
		"Check logs for connection issues",
		"[Enter] Dismiss",
		"[c] Copy error",
	}

	for _, elem := range expectedElements {
		if !strings.Contains(view, elem) {
			t.Errorf("viewBox should contain '%s'", elem)
		}
	}
}
