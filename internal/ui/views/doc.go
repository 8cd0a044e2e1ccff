// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package views contains the Bubble Tea views that make up the bottrainer TUI.

The root App model (app.go) owns navigation between views and enforces the
route guards: protected views bounce unauthenticated users to the login
view, and admin views additionally require the is_admin flag, redirecting
privilege failures to the dashboard.

Views:

	Welcome   - pre-login landing screen
	Login     - email/password form
	Register  - account creation form
	Forgot    - three-step OTP password reset
	Dashboard - tabbed workspace (Upload, Overview, Annotate, Train,
	            Evaluate, Review, Feedback) with the session sidebar
	Admin     - platform administration panels
	Help      - rendered markdown help

API calls are issued as tea.Cmd closures in commands.go and deliver their
results as the message types in messages.go. Views never call the backend
directly from Update.
*/
package views
