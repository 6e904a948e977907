// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the authentication and
// question-answering service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	// ErrTypeConnection means the request never got a response.
	ErrTypeConnection
	// ErrTypeStatus means the server answered with a non-2xx status.
	ErrTypeStatus
	// ErrTypeInvalidResponse means a 2xx body could not be used.
	ErrTypeInvalidResponse
)

// ClientError represents an error from the backend client.
type ClientError struct {
	Type       ErrorType
	Op         string
	StatusCode int
	// Detail is the server-supplied reason, if any.
	Detail string
	Cause  error
}

func (e *ClientError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	switch e.Type {
	case ErrTypeConnection:
		b.WriteString(": connection failed")
	case ErrTypeStatus:
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	case ErrTypeInvalidResponse:
		b.WriteString(": invalid response")
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// DetailOr returns the server detail carried by err, or fallback.
func DetailOr(err error, fallback string) string {
	var ce *ClientError
	if errors.As(err, &ce) && ce.Detail != "" {
		return ce.Detail
	}
	return fallback
}

// ErrNoToken is returned by Login when a 2xx reply carries no token.
var ErrNoToken = errors.New("login response did not include a token")

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the backend service. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client. A zero timeout leaves requests
// unbounded.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp LoginResponse
	if err := c.post(ctx, "login", "/login", "", Credentials{Username: username, Password: password}, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Op: "login", Cause: ErrNoToken}
	}
	return resp.Token, nil
}

// Signup registers a new account. It does not log in.
func (c *Client) Signup(ctx context.Context, username, password string) error {
	var resp SignupResponse
	return c.post(ctx, "signup", "/signup", "", Credentials{Username: username, Password: password}, &resp)
}

// Ask sends a question. token may be empty; when set it is sent as a
// bearer token.
func (c *Client) Ask(ctx context.Context, token, question string) (*AskResponse, error) {
	var resp AskResponse
	if err := c.post(ctx, "ask", "/ask", token, AskRequest{Question: question}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health checks that the backend is reachable and healthy.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Op: "health", Cause: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Op: "health", Cause: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ClientError{Type: ErrTypeStatus, Op: "health", StatusCode: resp.StatusCode}
	}
	return nil
}

func (c *Client) post(ctx context.Context, op, path, token string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Op: op, Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Op: op, Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Op: op, Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Op: op, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		return &ClientError{
			Type:       ErrTypeStatus,
			Op:         op,
			StatusCode: resp.StatusCode,
			Detail:     eb.detailText(),
		}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Op: op, Cause: err}
	}
	return nil
}
