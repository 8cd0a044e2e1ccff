// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "testing"

func TestHumanizeErrorBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "string detail",
			body: `{"detail":"Email already registered"}`,
			want: "Email already registered",
		},
		{
			name: "error key fallback",
			body: `{"error":"connection refused"}`,
			want: "connection refused",
		},
		{
			name: "validation list with field",
			body: `{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address"}]}`,
			want: "Email: value is not a valid email address",
		},
		{
			name: "validation list multiple fields",
			body: `{"detail":[{"loc":["body","email"],"msg":"field required"},{"loc":["body","password"],"msg":"field required"}]}`,
			want: "Email: field required\nPassword: field required",
		},
		{
			name: "validation list without loc",
			body: `{"detail":[{"msg":"something went wrong"}]}`,
			want: "something went wrong",
		},
		{
			name: "nested object with msg",
			body: `{"detail":{"msg":"OTP has expired"}}`,
			want: "OTP has expired",
		},
		{
			name: "non-json body",
			body: `Bad Gateway`,
			want: "Bad Gateway",
		},
		{
			name: "empty body",
			body: ``,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := humanizeErrorBody([]byte(tt.body)); got != tt.want {
				t.Errorf("humanizeErrorBody(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Status: 503}
	if got := err.Error(); got != "api: request failed with status 503" {
		t.Errorf("Error() = %q", got)
	}

	err = &APIError{Status: 409, Message: "Workspace with that name already exists"}
	if got := err.Error(); got != "Workspace with that name already exists" {
		t.Errorf("Error() = %q", got)
	}
}
