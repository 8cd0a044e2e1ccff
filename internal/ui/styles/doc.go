// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the bottrainer TUI.

This package defines the complete color palette and themed style set
used throughout the application. All colors use Lip Gloss AdaptiveColor
for automatic light/dark terminal detection.

# Color System (colors.go)

## Primary Accent Colors

  - Purple - Primary accent for selections and the active tab
  - Cyan - Brand color for info and key hints
  - Emerald - Success states and the connected indicator
  - Amber - Warnings and running training jobs
  - Rose - Errors and critical alerts

## Confidence Bands

Prediction scores are colored by band:

	ConfidenceHigh   - >= 0.8, emerald
	ConfidenceMedium - >= 0.5, amber
	ConfidenceLow    - <  0.5, rose

ConfidenceColor(score) picks the band for a raw score.

## Surface Colors

Layered surface system for depth:

	Surface    - Main background
	SurfaceDim - Subtle backgrounds (headers, status bars)
	Overlay    - Borders, separators, popups

## Text Colors

Hierarchical text color system:

	TextPrimary   - Main content text
	TextSecondary - Supporting text
	TextMuted     - De-emphasized text
	TextInverse   - Text on colored backgrounds

# Theme System (theme.go)

The Theme struct provides runtime color adaptation:

	theme := styles.NewTheme()
	if theme.IsDark {
		// Dark terminal detected
	}
	if theme.HasTrueColor {
		// Terminal supports 16M colors
	}

Style groups cover the application surfaces: header, tab bar, forms,
status bar, tables, toasts, progress bars, and overlays.

# Status Indicators

ASCII indicators accompany every colored state so status reads
correctly without color:

	StatusIndicators.Success - [OK]
	StatusIndicators.Error   - [X]
	StatusIndicators.Warning - [!]
	StatusIndicators.Info    - [i]

# Usage Example

	import "github.com/jeranaias/bottrainer-tui/internal/ui/styles"

	// Use adaptive colors
	headerStyle := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextPrimary)

	// Use theme for runtime detection
	theme := styles.NewTheme()
	banner := theme.Header.Render("Bot Trainer")
*/
package styles
