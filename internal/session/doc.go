// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session runs the sign-in flows against the queryfarmer backend.
//
// The token lives only in memory (model.State). The username is the one
// value persisted, so the login form can show who signed in last.
//
// # Key Types
//
//   - Controller: Login, Signup, Logout and PreviousUser
//   - View: screen switching and busy controls implemented by the UI
//   - Authenticator: the backend calls, satisfied by *backend.Client
//
// # Usage
//
//	ctrl := session.NewController(client, state, prefs, view, session.Options{
//	    Strings:  locales,
//	    Notifier: toasts,
//	    Logger:   logger,
//	})
//	if err := ctrl.Login(ctx, "ravi", "secret1"); err != nil {
//	    // the user has already been notified
//	}
package session
