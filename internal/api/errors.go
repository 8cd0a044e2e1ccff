// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrSessionExpired indicates the server rejected our stored token.
	// The local session has already been wiped when this is returned.
	ErrSessionExpired = errors.New("session expired, please log in again")

	// ErrRateLimited indicates the server asked us to slow down.
	ErrRateLimited = errors.New("rate limited by server")

	// ErrServerUnavailable indicates a 5xx that persisted through retries.
	ErrServerUnavailable = errors.New("server unavailable")
)

// =============================================================================
// API ERROR
// =============================================================================

// APIError is a non-2xx response from the backend with its detail
// payload flattened into a readable message.
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: request failed with status %d", e.Status)
	}
	return e.Message
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 404
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 401
}

// =============================================================================
// DETAIL HUMANIZATION
// =============================================================================

// errorEnvelope matches the error body shapes the backend produces:
// a plain detail string, a validation list of {loc, msg} objects, or
// a nested detail object.
type errorEnvelope struct {
	Detail json.RawMessage `json:"detail"`
	Error  json.RawMessage `json:"error"`
}

type validationItem struct {
	Loc    []json.RawMessage `json:"loc"`
	Msg    string            `json:"msg"`
	Detail string            `json:"detail"`
}

var titleCaser = cases.Title(language.English)

// humanizeErrorBody turns an error response body into a message a
// person can act on. Unrecognized bodies come back verbatim.
func humanizeErrorBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return trimmed
	}

	detail := env.Detail
	if len(detail) == 0 {
		detail = env.Error
	}
	if len(detail) == 0 {
		return trimmed
	}

	// Plain string detail.
	var s string
	if err := json.Unmarshal(detail, &s); err == nil {
		return s
	}

	// Validation list: one line per field.
	var items []validationItem
	if err := json.Unmarshal(detail, &items); err == nil {
		lines := make([]string, 0, len(items))
		for _, item := range items {
			msg := item.Msg
			if msg == "" {
				msg = item.Detail
			}
			if field := lastLocField(item.Loc); field != "" {
				lines = append(lines, titleCaser.String(field)+": "+msg)
			} else if msg != "" {
				lines = append(lines, msg)
			}
		}
		if len(lines) > 0 {
			return strings.Join(lines, "\n")
		}
	}

	// Nested object with msg or detail keys.
	var obj struct {
		Msg    string `json:"msg"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(detail, &obj); err == nil {
		if obj.Msg != "" {
			return obj.Msg
		}
		if obj.Detail != "" {
			return obj.Detail
		}
	}

	return trimmed
}

// lastLocField extracts the trailing field name from a validation
// location path, skipping non-string segments.
func lastLocField(loc []json.RawMessage) string {
	for i := len(loc) - 1; i >= 0; i-- {
		var field string
		if err := json.Unmarshal(loc[i], &field); err == nil && field != "" && field != "body" {
			return field
		}
	}
	return ""
}
