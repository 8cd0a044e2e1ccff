// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the bottrainer TUI.
package styles

import (
	"strings"
	"testing"
)

// =============================================================================
// COLOR DEFINITION TESTS
// =============================================================================

func TestPrimaryColors(t *testing.T) {
	colors := []struct {
		name  string
		color interface{}
	}{
		{"Purple", Purple},
		{"PurpleDeep", PurpleDeep},
		{"Cyan", Cyan},
		{"CyanDeep", CyanDeep},
		{"Emerald", Emerald},
		{"EmeraldDeep", EmeraldDeep},
	}

	for _, c := range colors {
		if c.color == nil {
			t.Errorf("%s color should be defined", c.name)
		}
	}
}

func TestSemanticColors(t *testing.T) {
	colors := []struct {
		name  string
		color interface{}
	}{
		{"Rose", Rose},
		{"RoseDeep", RoseDeep},
		{"Amber", Amber},
		{"AmberDeep", AmberDeep},
	}

	for _, c := range colors {
		if c.color == nil {
			t.Errorf("%s color should be defined", c.name)
		}
	}
}

func TestSurfaceColors(t *testing.T) {
	colors := []struct {
		name  string
		color interface{}
	}{
		{"Surface", Surface},
		{"SurfaceDim", SurfaceDim},
		{"SurfaceBright", SurfaceBright},
		{"Overlay", Overlay},
		{"OverlayDim", OverlayDim},
	}

	for _, c := range colors {
		if c.color == nil {
			t.Errorf("%s color should be defined", c.name)
		}
	}
}

func TestTextColors(t *testing.T) {
	colors := []struct {
		name  string
		color interface{}
	}{
		{"TextPrimary", TextPrimary},
		{"TextSecondary", TextSecondary},
		{"TextMuted", TextMuted},
		{"TextInverse", TextInverse},
	}

	for _, c := range colors {
		if c.color == nil {
			t.Errorf("%s color should be defined", c.name)
		}
	}
}

// =============================================================================
// CONFIDENCE BAND TESTS
// =============================================================================

func TestConfidenceColor(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		want       interface{}
	}{
		{"high confidence", 0.95, ConfidenceHigh},
		{"boundary high", 0.8, ConfidenceHigh},
		{"medium confidence", 0.65, ConfidenceMedium},
		{"boundary medium", 0.5, ConfidenceMedium},
		{"low confidence", 0.3, ConfidenceLow},
		{"zero confidence", 0.0, ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConfidenceColor(tt.confidence)
			if got != tt.want {
				t.Errorf("ConfidenceColor(%v) = %v, want %v", tt.confidence, got, tt.want)
			}
		})
	}
}

// =============================================================================
// STATUS INDICATORS TESTS
// =============================================================================

func TestStatusIndicators(t *testing.T) {
	indicators := []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Info,
		StatusIndicators.Pending,
		StatusIndicators.Active,
	}

	seen := make(map[string]bool)
	for _, ind := range indicators {
		if ind == "" {
			t.Error("status indicator should be defined")
		}
		if seen[ind] {
			t.Errorf("Duplicate status indicator: %q", ind)
		}
		seen[ind] = true
	}
}

// =============================================================================
// RENDER FUNCTION TESTS
// =============================================================================

func TestRenderSuccess(t *testing.T) {
	msg := "Training completed"
	result := RenderSuccess(msg)

	if !strings.Contains(result, msg) {
		t.Errorf("RenderSuccess() = %q, should contain %q", result, msg)
	}
	if !strings.Contains(result, StatusIndicators.Success) {
		t.Error("RenderSuccess() should contain success indicator")
	}
}

func TestRenderError(t *testing.T) {
	msg := "Upload failed"
	result := RenderError(msg)

	if !strings.Contains(result, msg) {
		t.Errorf("RenderError() = %q, should contain %q", result, msg)
	}
	if !strings.Contains(result, StatusIndicators.Error) {
		t.Error("RenderError() should contain error indicator")
	}
}

func TestRenderWarning(t *testing.T) {
	msg := "Session expires soon"
	result := RenderWarning(msg)

	if !strings.Contains(result, msg) {
		t.Errorf("RenderWarning() = %q, should contain %q", result, msg)
	}
	if !strings.Contains(result, StatusIndicators.Warning) {
		t.Error("RenderWarning() should contain warning indicator")
	}
}

func TestRenderInfo(t *testing.T) {
	msg := "Dataset selected"
	result := RenderInfo(msg)

	if !strings.Contains(result, msg) {
		t.Errorf("RenderInfo() = %q, should contain %q", result, msg)
	}
	if !strings.Contains(result, StatusIndicators.Info) {
		t.Error("RenderInfo() should contain info indicator")
	}
}

func TestRenderStatus(t *testing.T) {
	msg := "Status message"

	result := RenderStatus(true, msg)
	if !strings.Contains(result, StatusIndicators.Success) {
		t.Error("RenderStatus(true, msg) should use success indicator")
	}

	result = RenderStatus(false, msg)
	if !strings.Contains(result, StatusIndicators.Error) {
		t.Error("RenderStatus(false, msg) should use error indicator")
	}
}

// =============================================================================
// EDGE CASE TESTS
// =============================================================================

func TestRenderFunctionsEmptyString(t *testing.T) {
	statusFuncs := []struct {
		name   string
		result string
	}{
		{"RenderSuccess", RenderSuccess("")},
		{"RenderError", RenderError("")},
		{"RenderWarning", RenderWarning("")},
		{"RenderInfo", RenderInfo("")},
	}

	for _, f := range statusFuncs {
		// Should still contain the indicator even with empty message
		if f.result == "" {
			t.Errorf("%s(\"\") should return non-empty (at least the indicator)", f.name)
		}
	}

	// RenderLink doesn't add an indicator, so empty input may produce empty
	// output. Just verify it doesn't panic.
	_ = RenderLink("")
}

func TestRenderFunctionsSpecialCharacters(t *testing.T) {
	messages := []string{
		"Intent with unicode: réserver_vol",
		"Entity with symbols: @#$%^&*()",
	}

	for _, msg := range messages {
		if result := RenderSuccess(msg); len(result) == 0 {
			t.Errorf("RenderSuccess() should produce output for %q", msg)
		}
		if result := RenderError(msg); len(result) == 0 {
			t.Errorf("RenderError() should produce output for %q", msg)
		}
	}
}
