// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package locale

// Bundle keys. Bundles are flat key -> string maps; a missing key leaves the
// caller's fallback in place.
const (
	KeyWelcomeTitle          = "welcome_title"
	KeyWelcomeSubtitle       = "welcome_subtitle"
	KeyInputPlaceholder      = "input_placeholder"
	KeyLanguageModalTitle    = "language_modal_title"
	KeyLanguageModalSubtitle = "language_modal_subtitle"

	KeyLoginTitle     = "login_title"
	KeySignupTitle    = "signup_title"
	KeyUsernameLabel  = "username_label"
	KeyPasswordLabel  = "password_label"
	KeyLoginButton    = "login_button"
	KeySignupButton   = "signup_button"
	KeyLogoutButton   = "logout_button"
	KeyShowSignup     = "show_signup"
	KeyShowLogin      = "show_login"
	KeyLastUserNote   = "last_user_note"
	KeySendHint       = "send_hint"
	KeyLanguageButton = "language_button"

	KeyThinking               = "thinking"
	KeyTranslating            = "translating"
	KeyTranslationUnavailable = "translation_unavailable"

	KeyLoginSuccess     = "login_success"
	KeyLoginFailed      = "login_failed"
	KeySignupSuccess    = "signup_success"
	KeySignupFailed     = "signup_failed"
	KeyLogoutSuccess    = "logout_success"
	KeyFillAllFields    = "fill_all_fields"
	KeyPasswordTooShort = "password_too_short"
	KeyOffline          = "offline"
	KeyBackOnline       = "back_online"
	KeyCopied           = "copied"
	KeyUnexpectedError  = "unexpected_error"
)

// Element IDs bound by every view. They are applied after the tagged
// elements on each bundle load.
const (
	ElementWelcomeTitle          = "welcome-title"
	ElementWelcomeSubtitle       = "welcome-subtitle"
	ElementQuestionInput         = "question-input"
	ElementLanguageModalTitle    = "language-modal-title"
	ElementLanguageModalSubtitle = "language-modal-subtitle"
)

var fixedElements = []Element{
	{ID: ElementWelcomeTitle, Key: KeyWelcomeTitle, Kind: KindText},
	{ID: ElementWelcomeSubtitle, Key: KeyWelcomeSubtitle, Kind: KindText},
	{ID: ElementQuestionInput, Key: KeyInputPlaceholder, Kind: KindPlaceholder},
	{ID: ElementLanguageModalTitle, Key: KeyLanguageModalTitle, Kind: KindText},
	{ID: ElementLanguageModalSubtitle, Key: KeyLanguageModalSubtitle, Kind: KindText},
}
