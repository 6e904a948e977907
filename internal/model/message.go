// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for sessions, conversations and messages.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "QueryFARMER"
	default:
		return string(s)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is one entry in the message log.
//
// A bot message starts as a placeholder and is resolved in place exactly
// once. The ID is a local handle and never leaves the process.
type Message struct {
	ID            string
	Sender        Sender
	Text          string
	IsPlaceholder bool
	Timestamp     time.Time
}

// NewMessage creates a new message with a generated ID.
func NewMessage(sender Sender, text string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a permanent user message.
func NewUserMessage(text string) *Message {
	return NewMessage(SenderUser, text)
}

// NewPlaceholder creates a bot message awaiting its final text.
func NewPlaceholder(text string) *Message {
	msg := NewMessage(SenderBot, text)
	msg.IsPlaceholder = true
	return msg
}

// IsUser returns true for user messages.
func (m *Message) IsUser() bool {
	return m.Sender == SenderUser
}

// IsBot returns true for bot messages.
func (m *Message) IsBot() bool {
	return m.Sender == SenderBot
}
