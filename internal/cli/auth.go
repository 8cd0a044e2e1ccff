// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth.go - Login, logout and register command handlers.
//
// Command: login
// Short:   Authenticate against the backend and persist the session
//
// Examples:
//   bottrainer login                            Prompt for email and password
//   bottrainer login --email admin@example.com  Prompt for password only
//
// Command: logout
// Short:   Clear the persisted session
//
// Command: register
// Short:   Create a new account
package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/session"
	"github.com/jeranaias/bottrainer-tui/internal/util"
)

// HandleLogin handles the "login" command.
func HandleLogin(args Args) error {
	email := args.Email
	if email == "" {
		var err error
		email, err = ReadLine("Email: ")
		if err != nil {
			return NewValidationError("email", "", "email is required")
		}
	}
	if email == "" {
		return NewValidationError("email", "", "email is required")
	}

	password, err := ReadPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return NewValidationError("password", "", "password is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	client := NewAPIClient(args)
	resp, err := client.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return WrapError(err, "login")
	}

	store := OpenSessionStore()
	user := session.User{Email: email, Username: resp.Username}

	if err := store.Login(resp.AccessToken, user); err != nil {
		return WrapError(err, "persist session")
	}

	// Best effort admin probe; a 403 just means a regular account.
	if _, err := client.AdminStats(ctx); err == nil {
		isAdmin := true
		store.UpdateUser(session.UserPatch{IsAdmin: &isAdmin})
	}

	if args.JSON {
		resp := NewJSONResponse("login", map[string]any{
			"username":   store.User().Username,
			"is_admin":   store.IsAdmin(),
			"expires_in": util.FormatDuration(store.Remaining()),
		})
		return resp.Print()
	}

	if !args.Quiet {
		fmt.Printf("%s Logged in as %s (session valid for %s)\n",
			SuccessStyle.Render("[OK]"),
			HighlightStyle.Render(store.User().Username),
			util.FormatDuration(store.Remaining()))
	}
	return nil
}

// HandleLogout handles the "logout" command. Logging out while
// already logged out is not an error.
func HandleLogout(args Args) error {
	store := OpenSessionStore()
	wasAuthenticated := store.IsAuthenticated()
	store.Logout()

	if args.JSON {
		resp := NewJSONResponse("logout", map[string]any{"was_authenticated": wasAuthenticated})
		return resp.Print()
	}

	if !args.Quiet {
		if wasAuthenticated {
			fmt.Printf("%s Logged out\n", SuccessStyle.Render("[OK]"))
		} else {
			fmt.Println(DimStyle.Render("Not logged in"))
		}
	}
	return nil
}

// HandleRegister handles the "register" command.
func HandleRegister(args Args) error {
	username := args.Username
	if username == "" {
		var err error
		username, err = ReadLine("Username: ")
		if err != nil || username == "" {
			return NewValidationError("username", "", "username is required")
		}
	}

	email, err := ReadLine("Email: ")
	if err != nil || email == "" {
		return NewValidationError("email", "", "email is required")
	}

	password, err := ReadPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := ReadPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return NewValidationError("password", "", "passwords do not match")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	client := NewAPIClient(args)
	resp, err := client.Register(ctx, api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return WrapError(err, "register")
	}

	if args.JSON {
		return NewJSONResponse("register", resp).Print()
	}

	if !args.Quiet {
		fmt.Printf("%s %s\n", SuccessStyle.Render("[OK]"), resp.Message)
		fmt.Println(DimStyle.Render("Run 'bottrainer login' to sign in."))
	}
	return nil
}
