// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/backend"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/locale"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/logging"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/model"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/notify"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/storage"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/util"
)

// MinPasswordLength is the shortest password signup accepts.
const MinPasswordLength = 6

// Default English strings, used when the active bundle lacks a key.
const (
	DefaultLoginSuccess     = "Login successful!"
	DefaultLoginFailed      = "Login failed"
	DefaultSignupSuccess    = "Signup successful! Please log in."
	DefaultSignupFailed     = "Signup failed"
	DefaultLogoutSuccess    = "You have been logged out."
	DefaultFillAllFields    = "Please fill in all fields."
	DefaultPasswordTooShort = "Password must be at least 6 characters."
)

// =============================================================================
// VIEW BINDING
// =============================================================================

// Control names a button the view disables while a request runs.
type Control string

const (
	ControlLogin  Control = "login"
	ControlSignup Control = "signup"
	ControlLogout Control = "logout"
)

// View is the part of the UI the session controller drives.
type View interface {
	SetBusy(control Control, busy bool)
	ShowLogin()
	ShowSignup()
	ShowChat()
}

// Clearer resets the message log to its empty welcome state.
type Clearer interface {
	Reset()
}

// Authenticator is the backend surface used for sign-in.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	Signup(ctx context.Context, username, password string) error
}

// Strings resolves localized text.
type Strings interface {
	T(key, fallback string) string
}

type englishOnly struct{}

func (englishOnly) T(_, fallback string) string { return fallback }

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller runs the login, signup and logout flows.
type Controller struct {
	auth     Authenticator
	state    *model.State
	prefs    storage.PrefStore
	view     View
	log      Clearer
	strings  Strings
	notifier notify.Notifier
	logger   *zap.Logger
}

// Options carries the controller's optional collaborators.
type Options struct {
	Strings  Strings
	Notifier notify.Notifier
	Logger   *zap.Logger
	// Messages is reset on logout.
	Messages Clearer
}

// NewController creates a session controller.
func NewController(auth Authenticator, state *model.State, prefs storage.PrefStore, view View, opts Options) *Controller {
	c := &Controller{
		auth:     auth,
		state:    state,
		prefs:    prefs,
		view:     view,
		log:      opts.Messages,
		strings:  opts.Strings,
		notifier: opts.Notifier,
		logger:   logging.OrNop(opts.Logger).Named("session"),
	}
	if c.strings == nil {
		c.strings = englishOnly{}
	}
	if c.notifier == nil {
		c.notifier = notify.Discard
	}
	return c
}

// Login signs in and switches to the chat screen. Failures are reported as
// notifications and also returned.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	if util.IsBlank(username) || util.IsBlank(password) {
		c.fail(locale.KeyFillAllFields, DefaultFillAllFields)
		return ErrMissingFields
	}

	c.view.SetBusy(ControlLogin, true)
	defer c.view.SetBusy(ControlLogin, false)

	token, err := c.auth.Login(ctx, username, password)
	if err != nil {
		c.logger.Warn("login failed", zap.String("username", username), zap.Error(err))
		c.notifier.Notify(backend.DetailOr(err, c.strings.T(locale.KeyLoginFailed, DefaultLoginFailed)), notify.Error)
		return err
	}

	c.state.SetSession(token, username)
	if err := c.prefs.Set(storage.KeyUsername, username); err != nil {
		c.logger.Warn("failed to persist username", zap.Error(err))
	}
	c.logger.Info("logged in", zap.String("username", username))

	c.view.ShowChat()
	c.notifier.Notify(c.strings.T(locale.KeyLoginSuccess, DefaultLoginSuccess), notify.Success)
	return nil
}

// Signup creates an account and returns to the login form. It does not sign
// the new user in.
func (c *Controller) Signup(ctx context.Context, username, password string) error {
	if util.IsBlank(username) || util.IsBlank(password) {
		c.fail(locale.KeyFillAllFields, DefaultFillAllFields)
		return ErrMissingFields
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		c.fail(locale.KeyPasswordTooShort, DefaultPasswordTooShort)
		return ErrPasswordTooShort
	}

	c.view.SetBusy(ControlSignup, true)
	defer c.view.SetBusy(ControlSignup, false)

	if err := c.auth.Signup(ctx, username, password); err != nil {
		c.logger.Warn("signup failed", zap.String("username", username), zap.Error(err))
		c.notifier.Notify(backend.DetailOr(err, c.strings.T(locale.KeySignupFailed, DefaultSignupFailed)), notify.Error)
		return err
	}

	c.logger.Info("signed up", zap.String("username", username))
	c.notifier.Notify(c.strings.T(locale.KeySignupSuccess, DefaultSignupSuccess), notify.Success)
	c.view.ShowLogin()
	return nil
}

// Logout forgets the session and the remembered username.
func (c *Controller) Logout(ctx context.Context) error {
	c.view.SetBusy(ControlLogout, true)
	defer c.view.SetBusy(ControlLogout, false)

	username := c.state.Username()
	c.state.ClearSession()
	if err := c.prefs.Delete(storage.KeyUsername); err != nil {
		c.logger.Warn("failed to clear username", zap.Error(err))
	}
	if c.log != nil {
		c.log.Reset()
	}
	c.logger.Info("logged out", zap.String("username", username))

	c.view.ShowLogin()
	c.notifier.Notify(c.strings.T(locale.KeyLogoutSuccess, DefaultLogoutSuccess), notify.Info)
	return nil
}

// PreviousUser returns the username of the last successful login.
func (c *Controller) PreviousUser() (string, bool) {
	name, ok, err := c.prefs.Get(storage.KeyUsername)
	if err != nil {
		c.logger.Warn("failed to read username", zap.Error(err))
		return "", false
	}
	return name, ok && name != ""
}

// Authenticated reports whether a token is held.
func (c *Controller) Authenticated() bool {
	return c.state.Authenticated()
}

func (c *Controller) fail(key, fallback string) {
	c.notifier.Notify(c.strings.T(key, fallback), notify.Error)
}
