// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sync"
	"time"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the ordered message log of the current session.
//
// Messages are only appended or, for placeholders, updated in place.
// Clear is the only way to remove them. All methods are safe for
// concurrent use and return copies, never internal pointers.
type Conversation struct {
	mu        sync.RWMutex
	messages  []*Message
	index     map[string]*Message
	updatedAt time.Time
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{
		messages:  make([]*Message, 0),
		index:     make(map[string]*Message),
		updatedAt: time.Now(),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddUserMessage appends a permanent user message.
func (c *Conversation) AddUserMessage(text string) Message {
	return c.add(NewUserMessage(text))
}

// AddPlaceholder appends a bot placeholder showing text.
func (c *Conversation) AddPlaceholder(text string) Message {
	return c.add(NewPlaceholder(text))
}

func (c *Conversation) add(msg *Message) Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
	c.index[msg.ID] = msg
	c.updatedAt = time.Now()
	return *msg
}

// SetPlaceholderText changes the interim text of a pending placeholder.
// It returns false if id is unknown or already resolved.
func (c *Conversation) SetPlaceholderText(id, text string) (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg, ok := c.index[id]
	if !ok || !msg.IsPlaceholder {
		return Message{}, false
	}
	msg.Text = text
	c.updatedAt = time.Now()
	return *msg, true
}

// Resolve sets the final text of a placeholder. It returns false if id is
// unknown, which happens when the log was cleared while a request was in
// flight.
func (c *Conversation) Resolve(id, text string) (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg, ok := c.index[id]
	if !ok {
		return Message{}, false
	}
	msg.Text = text
	msg.IsPlaceholder = false
	c.updatedAt = time.Now()
	return *msg, true
}

// Clear removes all messages.
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = make([]*Message, 0)
	c.index = make(map[string]*Message)
	c.updatedAt = time.Now()
}

// Get returns a copy of the message with the given id.
func (c *Conversation) Get(id string) (Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	msg, ok := c.index[id]
	if !ok {
		return Message{}, false
	}
	return *msg, true
}

// Messages returns a snapshot of the log in append order.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Message, len(c.messages))
	for i, msg := range c.messages {
		out[i] = *msg
	}
	return out
}

// LastResolvedBot returns the most recent bot message that is no longer a
// placeholder.
func (c *Conversation) LastResolvedBot() (Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := len(c.messages) - 1; i >= 0; i-- {
		if msg := c.messages[i]; msg.IsBot() && !msg.IsPlaceholder {
			return *msg, true
		}
	}
	return Message{}, false
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return c.MessageCount() == 0
}

// UpdatedAt returns the time of the last change.
func (c *Conversation) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}
