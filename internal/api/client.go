// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the Bot Trainer backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jeranaias/bottrainer-tui/internal/session"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	defaultTimeout = 60 * time.Second
	maxRetries     = 3
	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 10 * time.Second

	// maxResponseSize caps response bodies to protect against a
	// misbehaving server.
	maxResponseSize = 10 * 1024 * 1024
)

// authMode tags a request with its authentication requirement. The
// tag, not the URL, decides how a 401 is handled: credential
// endpoints legitimately return 401 for bad input and must not tear
// down an existing session.
type authMode int

const (
	// authRequired attaches the stored bearer token and treats a 401
	// as session expiry when a token was sent.
	authRequired authMode = iota

	// authAnonymous sends no token and passes any 401 through as a
	// normal API error.
	authAnonymous
)

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the Bot Trainer backend. The bearer token is read
// from the session file on every request rather than held in memory,
// so a logout or wipe elsewhere in the process takes effect on the
// very next call.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	sessionPath string
	limiter     *rate.Limiter
	retries     int

	// onUnauthorized runs after an authenticated request comes back
	// 401 and the session file has been wiped. The UI uses it to
	// bounce to the login view.
	onUnauthorized func()
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithSessionPath sets the session file the bearer token is read from.
func WithSessionPath(path string) ClientOption {
	return func(c *Client) { c.sessionPath = path }
}

// WithRateLimit caps outgoing request rate.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithRetries sets how many times transient failures are retried.
func WithRetries(n int) ClientOption {
	return func(c *Client) { c.retries = n }
}

// WithUnauthorizedHook sets the callback invoked on session expiry.
func WithUnauthorizedHook(fn func()) ClientOption {
	return func(c *Client) { c.onUnauthorized = fn }
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: defaultTimeout},
		sessionPath: session.DefaultPath(),
		limiter:     rate.NewLimiter(rate.Limit(10), 20),
		retries:     maxRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping reports whether the backend answers HTTP at all. Any status
// code counts as reachable; only transport errors do not.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
	return nil
}

// =============================================================================
// REQUEST EXECUTION
// =============================================================================

// do executes one API call. body is marshaled as JSON when non-nil;
// out is unmarshaled from the response body when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any, mode authMode) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	// Read the token fresh from durable storage for every attempt.
	token := ""
	if mode == authRequired {
		token = session.ReadStoredToken(c.sessionPath)
	}

	resp, respBody, err := c.doWithRetry(ctx, method, path, payload, token)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return c.handleUnauthorized(respBody, resp, mode, token)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(resp, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// idempotentMethod reports whether a request can be re-sent without
// risking a duplicate server-side effect. POSTs are excluded: when the
// first attempt succeeded but the response was lost, a retry would
// submit the mutation twice.
func idempotentMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return true
	}
	return false
}

// doWithRetry sends the request, retrying transport errors and 5xx
// responses with exponential backoff. Only idempotent methods are
// retried; a failed mutation surfaces immediately so the user decides
// whether to resubmit.
func (c *Client) doWithRetry(ctx context.Context, method, path string, payload []byte, token string) (*http.Response, []byte, error) {
	var lastErr error

	retries := c.retries
	if !idempotentMethod(method) {
		retries = 0
	}

	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay * time.Duration(1<<(attempt-1))
			if delay > retryMaxDelay {
				delay = retryMaxDelay
			}
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, nil, fmt.Errorf("build request: %w", err)
		}
		c.setHeaders(req, payload != nil, token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		respBody, err := readResponse(resp)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("%w: status %d", ErrServerUnavailable, resp.StatusCode)
			continue
		}

		return resp, respBody, nil
	}

	return nil, nil, lastErr
}

// setHeaders applies the standard headers for an API request.
func (c *Client) setHeaders(req *http.Request, hasBody bool, token string) {
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// readResponse drains the body under the size cap.
func readResponse(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

// =============================================================================
// ERROR HANDLING
// =============================================================================

// handleUnauthorized distinguishes session expiry from an ordinary
// authentication failure. Only a request that actually carried a
// token is treated as expiry: the stored session is wiped and the
// unauthorized hook fires. An anonymous 401 (bad login, bad OTP) is
// just an API error.
func (c *Client) handleUnauthorized(body []byte, resp *http.Response, mode authMode, token string) error {
	if mode == authRequired && token != "" {
		session.WipeStored(c.sessionPath)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return fmt.Errorf("%w: %s", ErrSessionExpired, humanizeErrorBody(body))
	}
	return c.errorFromResponse(resp, body)
}

// errorFromResponse builds the sentinel-wrapped error for a failed
// request.
func (c *Client) errorFromResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{
		Status:    resp.StatusCode,
		Message:   humanizeErrorBody(body),
		RequestID: resp.Header.Get("X-Request-ID"),
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Message)
	}
	return apiErr
}

// get is a convenience wrapper for authenticated GET calls.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, authRequired)
}

// post is a convenience wrapper for authenticated POST calls.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, authRequired)
}

// delete is a convenience wrapper for authenticated DELETE calls.
func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, authRequired)
}

// postAnonymous sends a POST without credentials. A 401 from these
// endpoints reports bad input, not an expired session.
func (c *Client) postAnonymous(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, authAnonymous)
}
