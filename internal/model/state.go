// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "sync"

// NativeLanguage is the language the backend answers in.
const NativeLanguage = "en"

// State is the application state shared by the controllers for the lifetime
// of the process. The token lives only here and is never persisted.
type State struct {
	mu       sync.RWMutex
	token    string
	username string
	language string
}

// NewState returns a signed-out state using the native language.
func NewState() *State {
	return &State{language: NativeLanguage}
}

// SetSession records a successful login.
func (s *State) SetSession(token, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.username = username
}

// ClearSession forgets the token and username.
func (s *State) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.username = ""
}

// Token returns the session token, empty when signed out.
func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Username returns the signed-in username.
func (s *State) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Authenticated reports whether a token is held. The chat view is
// reachable exactly when this is true.
func (s *State) Authenticated() bool {
	return s.Token() != ""
}

// Language returns the active language code.
func (s *State) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// SetLanguage sets the active language code.
func (s *State) SetLanguage(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = code
}

// NeedsTranslation reports whether text must round-trip through the
// translation service for the active language.
func (s *State) NeedsTranslation() bool {
	return s.Language() != NativeLanguage
}
