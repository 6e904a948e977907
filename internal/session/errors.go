// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "errors"

var (
	// ErrMissingFields is returned when a username or password is blank.
	ErrMissingFields = errors.New("session: username and password are required")
	// ErrPasswordTooShort is returned by Signup for passwords under
	// MinPasswordLength characters.
	ErrPasswordTooShort = errors.New("session: password too short")
)
