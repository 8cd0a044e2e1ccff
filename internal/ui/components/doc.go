// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the bottrainer TUI.

This package contains a collection of styled, interactive components built on
top of the Bubble Tea and Lip Gloss libraries. Each component is designed to
be visually consistent with the bottrainer design language.

# Core Components

## Input Components

InputArea (input.go) - Styled text input with character counter, password echo,
and a multi-line variant for feedback comments.

## Display Components

Header (header.go) - Application header with workspace, server, and admin badge.
StatusBar (statusbar.go) - Bottom status bar with connection state, session
countdown, active dataset, and shortcuts.
ContentViewport (viewport.go) - Scrollable text viewport with scroll indicators
and an optional scroll bar.

## Progress and Feedback

Spinner (spinner.go) - Animated spinner with customizable styles.
TrainingProgress (progress.go) - Progress display for training runs.
ErrorDisplay (error.go) - Error messages with category styling and suggestions.
Toast (toast.go) - Transient notification toasts.
SessionExpiryOverlay (session_expiry_overlay.go) - One-time session expiry notice.

## Specialized Views

Welcome (welcome.go) - First-run welcome screen shown before login.

# Key Types

## Theme Integration

All components accept a *styles.Theme for consistent styling:

	theme := styles.NewTheme()
	header := components.NewHeader(theme)
	header.SetWidth(80)
	header.SetWorkspace("travel-bot")
	view := header.View()

## Bubble Tea Integration

Most components implement the Bubble Tea Model interface:

	type Component interface {
		Init() tea.Cmd
		Update(tea.Msg) (Component, tea.Cmd)
		View() string
	}

## Error Handling

The error components pair raw backend errors with human guidance:

	display := components.SmartError("connection refused")
	display.SetSize(80, 24)
	view := display.View()

# Helper Functions

The package includes shared helper functions in helpers.go:
  - toStr() - Integer to string conversion without fmt
  - fmtNumber() - Thousand-separated number formatting
  - fmtPercent() - Percentage formatting for confidence scores
*/
package components
