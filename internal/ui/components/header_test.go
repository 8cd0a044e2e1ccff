// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bottrainer-tui/internal/ui/styles"
)

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestNewHeader(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)

	if h == nil {
		t.Fatal("NewHeader() returned nil")
	}

	if h.Title != "bottrainer" {
		t.Errorf("NewHeader() Title = %q, want %q", h.Title, "bottrainer")
	}

	if h.Workspace != "" {
		t.Errorf("NewHeader() Workspace = %q, want empty string", h.Workspace)
	}

	if h.Width != 80 {
		t.Errorf("NewHeader() Width = %d, want 80", h.Width)
	}

	if h.AdminUser {
		t.Error("NewHeader() AdminUser should be false")
	}

	if h.theme != theme {
		t.Error("NewHeader() did not set theme")
	}
}

func TestHeaderSetWidth(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)

	widths := []int{40, 80, 120, 200}
	for _, width := range widths {
		h.SetWidth(width)
		if h.Width != width {
			t.Errorf("SetWidth(%d) Width = %d, want %d", width, h.Width, width)
		}
	}
}

func TestHeaderSetWorkspace(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)

	h.SetWorkspace("travel-bot")
	if h.Workspace != "travel-bot" {
		t.Errorf("SetWorkspace() Workspace = %q, want %q", h.Workspace, "travel-bot")
	}
}

func TestHeaderSetServer(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)

	h.SetServer("localhost:8000")
	if h.Server != "localhost:8000" {
		t.Errorf("SetServer() Server = %q, want %q", h.Server, "localhost:8000")
	}
}

func TestHeaderSetAdmin(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)

	h.SetAdmin(true)
	if !h.AdminUser {
		t.Error("SetAdmin(true) did not set admin badge")
	}

	h.SetAdmin(false)
	if h.AdminUser {
		t.Error("SetAdmin(false) did not clear admin badge")
	}
}

func TestHeaderView(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)

	view := h.View()
	if view == "" {
		t.Error("View() should return non-empty string")
	}

	if !strings.Contains(view, "bottrainer") {
		t.Error("View() should contain title 'bottrainer'")
	}
}

func TestHeaderViewWithWorkspace(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.SetWorkspace("support-bot")

	view := h.View()
	if !strings.Contains(view, "support-bot") {
		t.Error("View() should contain workspace name")
	}
}

func TestHeaderViewWithAdmin(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.SetAdmin(true)

	view := h.View()
	if !strings.Contains(view, "ADMIN") {
		t.Error("View() with admin user should contain 'ADMIN'")
	}
}

func TestHeaderViewMinimumWidth(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.SetWidth(10) // Very narrow

	view := h.View()
	if view == "" {
		t.Error("View() should handle minimum width gracefully")
	}

	if !strings.Contains(view, "bottrainer") {
		t.Error("View() should contain title even at minimum width")
	}
}

func TestHeaderViewCompact(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.SetWorkspace("travel-bot")
	h.SetServer("localhost:8000")

	view := h.ViewCompact()
	if view == "" {
		t.Error("ViewCompact() should return non-empty string")
	}

	if !strings.Contains(view, "bottrainer") {
		t.Error("ViewCompact() should contain title")
	}
	if !strings.Contains(view, "travel-bot") {
		t.Error("ViewCompact() should contain workspace")
	}
	if !strings.Contains(view, "localhost:8000") {
		t.Error("ViewCompact() should contain server")
	}
}

func TestHeaderViewCompactWithAdmin(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.SetAdmin(true)

	view := h.ViewCompact()
	if !strings.Contains(view, "ADMIN") {
		t.Error("ViewCompact() with admin user should contain 'ADMIN'")
	}
}

// =============================================================================
// GRADIENT TITLE TESTS
// =============================================================================

func TestGradientTitle(t *testing.T) {
	start := lipgloss.Color("#7C3AED") // Purple
	end := lipgloss.Color("#22D3EE")   // Cyan

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"single char", "a"},
		{"short", "hi"},
		{"normal", "bottrainer"},
		{"long", "This is a longer gradient title"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := GradientTitle(tc.text, start, end)
			if tc.text == "" && result != "" {
				t.Error("GradientTitle() should return empty for empty input")
			}
			if tc.text != "" && result == "" {
				t.Error("GradientTitle() should return non-empty for non-empty input")
			}
		})
	}
}

func TestInterpolateColor(t *testing.T) {
	start := lipgloss.Color("#7C3AED") // Purple
	end := lipgloss.Color("#22D3EE")   // Cyan

	tests := []struct {
		name string
		t    float64
	}{
		{"start", 0.0},
		{"quarter", 0.25},
		{"half", 0.5},
		{"three quarters", 0.75},
		{"end", 1.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			color := interpolateColor(start, end, tc.t)
			if color == "" {
				t.Error("interpolateColor() should return non-empty color")
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex     string
		wantR   uint8
		wantG   uint8
		wantB   uint8
		wantErr bool
	}{
		{"000000", 0, 0, 0, false},
		{"FFFFFF", 255, 255, 255, false},
		{"FF0000", 255, 0, 0, false},
		{"00FF00", 0, 255, 0, false},
		{"0000FF", 0, 0, 255, false},
		{"7C3AED", 124, 58, 237, false},
		{"22D3EE", 34, 211, 238, false},
		{"", 255, 255, 255, true},       // Empty - defaults to white
		{"FFF", 255, 255, 255, true},    // Too short - defaults to white
		{"GGGGGG", 255, 255, 255, true}, // Invalid hex - defaults to white
	}

	for _, tc := range tests {
		r, g, b := parseHexColor(tc.hex)
		if !tc.wantErr {
			if r != tc.wantR || g != tc.wantG || b != tc.wantB {
				t.Errorf("parseHexColor(%q) = (%d, %d, %d), want (%d, %d, %d)",
					tc.hex, r, g, b, tc.wantR, tc.wantG, tc.wantB)
			}
		} else {
			if r != 255 || g != 255 || b != 255 {
				t.Errorf("parseHexColor(%q) should return white (255,255,255) for invalid input, got (%d,%d,%d)",
					tc.hex, r, g, b)
			}
		}
	}
}

func TestParseHexByte(t *testing.T) {
	tests := []struct {
		s    string
		want uint8
	}{
		{"00", 0},
		{"FF", 255},
		{"7C", 124},
		{"3A", 58},
		{"ED", 237},
		{"22", 34},
		{"D3", 211},
		{"EE", 238},
		{"", 255},    // Invalid - too short
		{"F", 255},   // Invalid - too short
		{"FFF", 255}, // Invalid - too long
		{"GG", 255},  // Invalid - not hex
	}

	for _, tc := range tests {
		got := parseHexByte(tc.s)
		if got != tc.want {
			t.Errorf("parseHexByte(%q) = %d, want %d", tc.s, got, tc.want)
		}
	}
}

func TestFormatHexColor(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    string
	}{
		{0, 0, 0, "#000000"},
		{255, 255, 255, "#FFFFFF"},
		{255, 0, 0, "#FF0000"},
		{0, 255, 0, "#00FF00"},
		{0, 0, 255, "#0000FF"},
		{124, 58, 237, "#7C3AED"},
		{34, 211, 238, "#22D3EE"},
	}

	for _, tc := range tests {
		got := formatHexColor(tc.r, tc.g, tc.b)
		if got != tc.want {
			t.Errorf("formatHexColor(%d, %d, %d) = %q, want %q",
				tc.r, tc.g, tc.b, got, tc.want)
		}
	}
}

// =============================================================================
// EDGE CASE TESTS
// =============================================================================

func TestHeaderEmptyTitle(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.Title = ""

	view := h.View()
	if view == "" {
		t.Error("View() should handle empty title gracefully")
	}
}

func TestHeaderVeryWideWidth(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.SetWidth(10000)

	view := h.View()
	if view == "" {
		t.Error("View() should handle very wide width")
	}
}

func TestHeaderAllFieldsSet(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.Title = "Custom Title"
	h.SetWorkspace("travel-bot")
	h.SetServer("api.example.com")
	h.SetAdmin(true)
	h.SetWidth(100)

	view := h.View()
	if !strings.Contains(view, "Custom Title") {
		t.Error("View() should contain custom title")
	}
	if !strings.Contains(view, "travel-bot") {
		t.Error("View() should contain workspace")
	}
	if !strings.Contains(view, "api.example.com") {
		t.Error("View() should contain server")
	}
	if !strings.Contains(view, "ADMIN") {
		t.Error("View() should contain admin badge")
	}
}

func TestGradientTitleEdgeCases(t *testing.T) {
	start := lipgloss.Color("#7C3AED") // Purple
	end := lipgloss.Color("#22D3EE")   // Cyan

	tests := []string{
		"Hello, World!",
		"123-456",
		"Special@#$%",
		"Unicode: 你好",
	}

	for _, text := range tests {
		result := GradientTitle(text, start, end)
		if result == "" {
			t.Errorf("GradientTitle(%q) should return non-empty result", text)
		}
	}
}
