// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "github.com/srivastavaprakhar/queryfarmer-tui/internal/locale"

// Element IDs rendered by the components. Fixed elements come from the
// locale package; these are the tagged ones.
const (
	ElementLoginTitle     = "login-title"
	ElementSignupTitle    = "signup-title"
	ElementUsernameLabel  = "username-label"
	ElementPasswordLabel  = "password-label"
	ElementLoginButton    = "login-button"
	ElementSignupButton   = "signup-button"
	ElementLogoutButton   = "logout-button"
	ElementShowSignup     = "show-signup"
	ElementShowLogin      = "show-login"
	ElementLastUserNote   = "last-user-note"
	ElementSendHint       = "send-hint"
	ElementLanguageButton = "language-button"
)

// Built-in English text for every element, shown until a bundle loads
// and kept when a bundle lacks the key.
var defaultText = map[string]string{
	locale.ElementWelcomeTitle:          "Welcome to QueryFarmer",
	locale.ElementWelcomeSubtitle:       "Ask anything about crops, weather, markets and schemes.",
	locale.ElementQuestionInput:         "Type your question...",
	locale.ElementLanguageModalTitle:    "Choose your language",
	locale.ElementLanguageModalSubtitle: "You can change it later with ctrl+l.",

	ElementLoginTitle:     "Log in",
	ElementSignupTitle:    "Create an account",
	ElementUsernameLabel:  "Username",
	ElementPasswordLabel:  "Password",
	ElementLoginButton:    "Log in",
	ElementSignupButton:   "Sign up",
	ElementLogoutButton:   "Log out",
	ElementShowSignup:     "No account? Sign up",
	ElementShowLogin:      "Have an account? Log in",
	ElementLastUserNote:   "Last signed in as",
	ElementSendHint:       "send",
	ElementLanguageButton: "language",
}

// TaggedElements lists the elements localized by bundle key.
func TaggedElements() []locale.Element {
	return []locale.Element{
		{ID: ElementLoginTitle, Key: locale.KeyLoginTitle, Kind: locale.KindText},
		{ID: ElementSignupTitle, Key: locale.KeySignupTitle, Kind: locale.KindText},
		{ID: ElementUsernameLabel, Key: locale.KeyUsernameLabel, Kind: locale.KindText},
		{ID: ElementPasswordLabel, Key: locale.KeyPasswordLabel, Kind: locale.KindText},
		{ID: ElementLoginButton, Key: locale.KeyLoginButton, Kind: locale.KindText},
		{ID: ElementSignupButton, Key: locale.KeySignupButton, Kind: locale.KindText},
		{ID: ElementLogoutButton, Key: locale.KeyLogoutButton, Kind: locale.KindText},
		{ID: ElementShowSignup, Key: locale.KeyShowSignup, Kind: locale.KindText},
		{ID: ElementShowLogin, Key: locale.KeyShowLogin, Kind: locale.KindText},
		{ID: ElementLastUserNote, Key: locale.KeyLastUserNote, Kind: locale.KindText},
		{ID: ElementSendHint, Key: locale.KeySendHint, Kind: locale.KindText},
		{ID: ElementLanguageButton, Key: locale.KeyLanguageButton, Kind: locale.KindText},
	}
}

// Labels holds the current text of every element. The zero value shows
// built-in defaults.
type Labels struct {
	text        map[string]string
	placeholder map[string]string
}

// Text returns the text of element id.
func (l *Labels) Text(id string) string {
	if v, ok := l.text[id]; ok {
		return v
	}
	return defaultText[id]
}

// Placeholder returns the placeholder of input id.
func (l *Labels) Placeholder(id string) string {
	if v, ok := l.placeholder[id]; ok {
		return v
	}
	return defaultText[id]
}

// SetText sets the text of element id.
func (l *Labels) SetText(id, text string) {
	if l.text == nil {
		l.text = make(map[string]string)
	}
	l.text[id] = text
}

// SetPlaceholder sets the placeholder of input id.
func (l *Labels) SetPlaceholder(id, text string) {
	if l.placeholder == nil {
		l.placeholder = make(map[string]string)
	}
	l.placeholder[id] = text
}
