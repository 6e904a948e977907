// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import "encoding/json"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Credentials is the body of /login and /signup.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AskRequest is the body of /ask.
type AskRequest struct {
	Question string `json:"question"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// LoginResponse is the reply to /login.
type LoginResponse struct {
	Token  string `json:"token"`
	Status string `json:"status,omitempty"`
}

// SignupResponse is the reply to /signup.
type SignupResponse struct {
	Status string `json:"status,omitempty"`
}

// AskResponse is the reply to /ask. Answer is empty when the field was
// missing.
type AskResponse struct {
	Answer string `json:"answer"`
}

// HealthResponse is the reply to /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// errorBody is the error envelope. detail is a string for handled errors
// and a list of objects for request validation failures.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// detailText extracts a human-readable detail, or "" if there is none.
func (b errorBody) detailText() string {
	if len(b.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(b.Detail, &s); err == nil {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(b.Detail, &items); err == nil && len(items) > 0 {
		return items[0].Msg
	}
	return ""
}
