// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "context"

// =============================================================================
// AUTH TYPES
// =============================================================================

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest authenticates by email and password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the token grant returned on successful login.
// ExpiresIn is seconds.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Username    string `json:"username"`
	Message     string `json:"message"`
}

// MessageResponse is the generic acknowledgement many endpoints
// return.
type MessageResponse struct {
	Message string `json:"message"`
}

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// Register creates a new account. Anonymous by definition.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.postAnonymous(ctx, "/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a bearer token. A 401 here means
// bad credentials, never session expiry.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.postAnonymous(ctx, "/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// PASSWORD RESET
// =============================================================================

// ForgotPasswordRequest starts the OTP reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest confirms the one-time code sent by email.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest completes the reset with a verified code.
type ResetPasswordRequest struct {
	Email           string `json:"email"`
	OTP             string `json:"otp"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ForgotPassword requests an OTP for the given email. The code itself
// is generated and validated server side; this client only relays it.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.postAnonymous(ctx, "/forgot-password", ForgotPasswordRequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP checks the one-time code before allowing a reset.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.postAnonymous(ctx, "/verify-otp", VerifyOTPRequest{Email: email, OTP: otp}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword sets a new password after OTP verification.
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.postAnonymous(ctx, "/reset-password", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
