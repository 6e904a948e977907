// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the root Bubble Tea model for the queryfarmer TUI.

The model owns four views: the language picker, the login and signup forms,
and the chat screen with its message log and question composer. It holds no
business logic. Key presses start controller flows (session, conversation,
locale) in command goroutines; the controllers report back through a Bridge,
which turns every view call into a message handled in Update.

# Wiring

	bridge := chat.NewBridge()
	sessions := session.NewController(backend, state, prefs, bridge, opts)
	m := chat.New(chat.Deps{Session: sessions, Binder: bridge, ...})
	p := tea.NewProgram(m, tea.WithAltScreen())
	bridge.Attach(p)
	_, err := p.Run()

The locale store is bound to the bridge from Init, so no bundle text is
pushed before the program is running.

# Keys

  - Enter: send the question, or submit a form
  - Ctrl+L: open the language picker
  - Ctrl+O: log out
  - Ctrl+Y: copy the last answer
  - Ctrl+N: switch between login and signup
  - PgUp/PgDn: scroll the log
  - Esc: dismiss the notification
  - Ctrl+C: quit
*/
package chat
