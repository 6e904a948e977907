// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/conversation"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/locale"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/model"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/notify"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/session"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/components"
)

// Sender delivers messages into a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge is the view the controllers drive. Every call becomes a message
// handled in Update, so view state is only touched by the event loop.
//
// Bridge methods block until the program receives the message. Call them
// only from command goroutines, never from Update or before the program runs.
type Bridge struct {
	mu     sync.RWMutex
	sender Sender
}

var (
	_ session.View      = (*Bridge)(nil)
	_ conversation.View = (*Bridge)(nil)
	_ locale.Binder     = (*Bridge)(nil)
	_ notify.Notifier   = (*Bridge)(nil)
)

// NewBridge creates a bridge. Messages are dropped until Attach is called.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach sets the program messages are delivered to.
func (b *Bridge) Attach(s Sender) {
	b.mu.Lock()
	b.sender = s
	b.mu.Unlock()
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.RLock()
	s := b.sender
	b.mu.RUnlock()
	if s != nil {
		s.Send(msg)
	}
}

// SetBusy implements session.View.
func (b *Bridge) SetBusy(control session.Control, busy bool) {
	b.send(BusyMsg{Control: control, Busy: busy})
}

// ShowLogin implements session.View.
func (b *Bridge) ShowLogin() { b.send(ScreenMsg{Screen: ScreenLogin}) }

// ShowSignup implements session.View.
func (b *Bridge) ShowSignup() { b.send(ScreenMsg{Screen: ScreenSignup}) }

// ShowChat implements session.View.
func (b *Bridge) ShowChat() { b.send(ScreenMsg{Screen: ScreenChat}) }

// AppendMessage implements conversation.View.
func (b *Bridge) AppendMessage(msg model.Message) {
	b.send(AppendMessageMsg{Message: msg})
}

// UpdateMessage implements conversation.View.
func (b *Bridge) UpdateMessage(msg model.Message) {
	b.send(UpdateMessageMsg{Message: msg})
}

// ClearMessages implements conversation.View.
func (b *Bridge) ClearMessages() { b.send(ClearMessagesMsg{}) }

// SetComposerEnabled implements conversation.View.
func (b *Bridge) SetComposerEnabled(enabled bool) {
	b.send(ComposerEnabledMsg{Enabled: enabled})
}

// ResetComposer implements conversation.View.
func (b *Bridge) ResetComposer() { b.send(ComposerResetMsg{}) }

// FocusComposer implements conversation.View.
func (b *Bridge) FocusComposer() { b.send(ComposerFocusMsg{}) }

// TaggedElements implements locale.Binder.
func (b *Bridge) TaggedElements() []locale.Element {
	return components.TaggedElements()
}

// SetElementText implements locale.Binder.
func (b *Bridge) SetElementText(id, text string) {
	b.send(ElementTextMsg{ID: id, Text: text})
}

// SetElementPlaceholder implements locale.Binder.
func (b *Bridge) SetElementPlaceholder(id, text string) {
	b.send(ElementPlaceholderMsg{ID: id, Text: text})
}

// DismissLanguagePicker implements locale.Binder.
func (b *Bridge) DismissLanguagePicker() { b.send(PickerDismissedMsg{}) }

// Notify implements notify.Notifier.
func (b *Bridge) Notify(message string, severity notify.Severity) {
	b.send(NotifyMsg{Message: message, Severity: severity})
}
