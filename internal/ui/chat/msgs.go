// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/model"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/notify"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/session"
)

// =============================================================================
// SCREENS
// =============================================================================

// Screen is the active top-level view.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenSignup
	ScreenChat
)

// String returns the screen name.
func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenSignup:
		return "signup"
	case ScreenChat:
		return "chat"
	default:
		return "unknown"
	}
}

// =============================================================================
// VIEW MUTATION MESSAGES
// =============================================================================

// Messages sent by the Bridge. Each one maps to one view mutation applied
// in Update.

// BusyMsg marks a control busy or idle.
type BusyMsg struct {
	Control session.Control
	Busy    bool
}

// ScreenMsg switches the active screen.
type ScreenMsg struct {
	Screen Screen
}

// AppendMessageMsg adds a message to the log.
type AppendMessageMsg struct {
	Message model.Message
}

// UpdateMessageMsg replaces a message in the log by ID.
type UpdateMessageMsg struct {
	Message model.Message
}

// ClearMessagesMsg empties the log.
type ClearMessagesMsg struct{}

// ComposerEnabledMsg enables or disables the question composer.
type ComposerEnabledMsg struct {
	Enabled bool
}

// ComposerResetMsg empties the composer.
type ComposerResetMsg struct{}

// ComposerFocusMsg focuses the composer.
type ComposerFocusMsg struct{}

// ElementTextMsg sets the text of a labelled element.
type ElementTextMsg struct {
	ID   string
	Text string
}

// ElementPlaceholderMsg sets the placeholder of an input element.
type ElementPlaceholderMsg struct {
	ID   string
	Text string
}

// PickerDismissedMsg closes the language picker.
type PickerDismissedMsg struct{}

// NotifyMsg shows a notification.
type NotifyMsg struct {
	Message  string
	Severity notify.Severity
}

// =============================================================================
// INTERNAL MESSAGES
// =============================================================================

// readyMsg carries the result of startup.
type readyMsg struct {
	needsLanguage bool
	previousUser  string
}

// taskDoneMsg reports the end of a background flow.
type taskDoneMsg struct {
	name string
	err  error
}

// panicMsg reports a recovered panic in a background flow.
type panicMsg struct {
	name  string
	value any
}

// statusTickMsg refreshes the status bar.
type statusTickMsg struct{}

// StatusRefreshInterval is how often the status bar polls connectivity.
const StatusRefreshInterval = time.Second

func statusTickCmd() tea.Cmd {
	return tea.Tick(StatusRefreshInterval, func(time.Time) tea.Msg {
		return statusTickMsg{}
	})
}
