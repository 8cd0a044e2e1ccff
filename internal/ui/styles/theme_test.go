// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the bottrainer TUI.
package styles

import (
	"strings"
	"testing"
)

// =============================================================================
// THEME CREATION TESTS
// =============================================================================

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme() should not return nil")
	}
}

func TestThemeStylesRender(t *testing.T) {
	theme := NewTheme()

	// Every style should render its input text. Rendering must not
	// panic and must preserve the message content.
	msg := "sample"
	styles := map[string]func(...string) string{
		"Header":           theme.Header.Render,
		"HeaderTitle":      theme.HeaderTitle.Render,
		"Tab":              theme.Tab.Render,
		"TabActive":        theme.TabActive.Render,
		"FormTitle":        theme.FormTitle.Render,
		"FormLabel":        theme.FormLabel.Render,
		"FormError":        theme.FormError.Render,
		"Button":           theme.Button.Render,
		"ButtonActive":     theme.ButtonActive.Render,
		"StatusBar":        theme.StatusBar.Render,
		"Connected":        theme.Connected.Render,
		"Disconnected":     theme.Disconnected.Render,
		"AdminBadge":       theme.AdminBadge.Render,
		"TableHeader":      theme.TableHeader.Render,
		"TableRow":         theme.TableRow.Render,
		"TableRowSelected": theme.TableRowSelected.Render,
		"ToastInfo":        theme.ToastInfo.Render,
		"ToastSuccess":     theme.ToastSuccess.Render,
		"ToastWarning":     theme.ToastWarning.Render,
		"ToastError":       theme.ToastError.Render,
		"ErrorBox":         theme.ErrorBox.Render,
		"OverlayBox":       theme.OverlayBox.Render,
		"WelcomeBox":       theme.WelcomeBox.Render,
		"SuccessStyle":     theme.SuccessStyle.Render,
		"ErrorStyle":       theme.ErrorStyle.Render,
		"WarningStyle":     theme.WarningStyle.Render,
		"InfoStyle":        theme.InfoStyle.Render,
	}

	for name, render := range styles {
		out := render(msg)
		if !strings.Contains(out, msg) {
			t.Errorf("%s.Render(%q) = %q, should contain the message", name, msg, out)
		}
	}
}

// =============================================================================
// LAYOUT TESTS
// =============================================================================

func TestSetSize(t *testing.T) {
	theme := NewTheme()
	theme.SetSize(120, 40)

	if theme.Width != 120 {
		t.Errorf("Width = %d, want 120", theme.Width)
	}
	if theme.Height != 40 {
		t.Errorf("Height = %d, want 40", theme.Height)
	}
}

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  LayoutMode
	}{
		{"narrow terminal", 40, LayoutNarrow},
		{"boundary narrow", 59, LayoutNarrow},
		{"medium terminal", 80, LayoutMedium},
		{"boundary medium", 99, LayoutMedium},
		{"wide terminal", 100, LayoutWide},
		{"very wide terminal", 200, LayoutWide},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme := NewTheme()
			theme.SetSize(tt.width, 24)
			if got := theme.GetLayoutMode(); got != tt.want {
				t.Errorf("GetLayoutMode() with width %d = %v, want %v", tt.width, got, tt.want)
			}
		})
	}
}
