// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/model"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/styles"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/util"
)

// =============================================================================
// MESSAGE LIST
// =============================================================================

// MessageList renders the conversation log.
type MessageList struct {
	Messages []model.Message
	Width    int
	// SpinnerFrame is shown in front of pending placeholders.
	SpinnerFrame string
	Markdown     *Markdown
	theme        *styles.Theme
}

// NewMessageList creates an empty list.
func NewMessageList(theme *styles.Theme, md *Markdown) *MessageList {
	return &MessageList{Width: 80, Markdown: md, theme: theme}
}

// Append adds msg at the end.
func (l *MessageList) Append(msg model.Message) {
	l.Messages = append(l.Messages, msg)
}

// Update replaces the message with msg.ID. It reports false if no such
// message is shown.
func (l *MessageList) Update(msg model.Message) bool {
	for i := range l.Messages {
		if l.Messages[i].ID == msg.ID {
			l.Messages[i] = msg
			return true
		}
	}
	return false
}

// Clear removes every message.
func (l *MessageList) Clear() {
	l.Messages = nil
}

// Len returns the number of messages.
func (l *MessageList) Len() int {
	return len(l.Messages)
}

// View renders all messages separated by blank lines.
func (l *MessageList) View() string {
	parts := make([]string, 0, len(l.Messages))
	for _, msg := range l.Messages {
		if msg.IsUser() {
			parts = append(parts, l.renderUser(msg))
		} else {
			parts = append(parts, l.renderBot(msg))
		}
	}
	return strings.Join(parts, "\n\n")
}

// ==========================================================================
// USER BUBBLE - right aligned
// ==========================================================================

func (l *MessageList) renderUser(msg model.Message) string {
	maxContent := l.Width - 12
	if maxContent < 20 {
		maxContent = 20
	}
	content := wordwrap.String(msg.Text, maxContent)

	bubble := l.theme.UserBubble.Render(content)
	label := l.theme.SenderLabel.Render(msg.Sender.DisplayName())

	block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
	return lipgloss.PlaceHorizontal(l.Width, lipgloss.Right, block)
}

// ==========================================================================
// BOT BUBBLE - left aligned, markdown when resolved
// ==========================================================================

func (l *MessageList) renderBot(msg model.Message) string {
	label := l.theme.SenderLabel.Render(msg.Sender.DisplayName())
	inner := l.Width - 8
	if inner < 20 {
		inner = 20
	}

	var body string
	if msg.IsPlaceholder {
		text := msg.Text
		if l.SpinnerFrame != "" {
			text = l.SpinnerFrame + " " + text
		}
		body = l.theme.Placeholder.Render(util.TruncateWidth(text, inner))
	} else {
		body = l.Markdown.Render(msg.Text, inner)
		if body == msg.Text {
			body = wordwrap.String(body, inner)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, l.theme.BotBubble.Render(body))
}
