// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notify implements the single-slot notification emitter.
//
// At most one notification is displayed. A new one replaces the current one
// immediately (last write wins, no queue). Each notification is displayed
// for DisplayDuration, then fades for FadeDuration, then is removed. Every
// notification carries an ID so that timers belonging to a replaced
// notification are ignored.
package notify

import (
	"sync"
	"time"
)

// =============================================================================
// SEVERITY
// =============================================================================

// Severity selects the colour and icon of a notification.
type Severity int

const (
	// Info is an informational notification (cyan)
	Info Severity = iota
	// Success is a success notification (emerald)
	Success
	// Warning is a warning notification (amber)
	Warning
	// Error is an error notification (rose)
	Error
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// DisplayDuration is how long a notification stays fully visible.
const DisplayDuration = 4 * time.Second

// FadeDuration is how long the fade-out lasts before removal.
const FadeDuration = 300 * time.Millisecond

// =============================================================================
// NOTIFIER
// =============================================================================

// Notifier is implemented by anything that can surface a notification.
type Notifier interface {
	Notify(message string, severity Severity)
}

// Func adapts a function to the Notifier interface.
type Func func(message string, severity Severity)

// Notify calls f.
func (f Func) Notify(message string, severity Severity) {
	f(message, severity)
}

// Discard drops every notification.
var Discard Notifier = Func(func(string, Severity) {})

// =============================================================================
// CENTER
// =============================================================================

// Notification is one displayed message.
type Notification struct {
	ID        uint64
	Message   string
	Severity  Severity
	CreatedAt time.Time
	Fading    bool
}

// Center holds the single notification slot. It is safe for concurrent use.
type Center struct {
	mu      sync.Mutex
	current *Notification
	nextID  uint64
	now     func() time.Time
}

// NewCenter creates an empty notification center.
func NewCenter() *Center {
	return &Center{now: time.Now}
}

// Show replaces whatever is displayed with a new notification and returns it.
func (c *Center) Show(message string, severity Severity) Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	n := &Notification{
		ID:        c.nextID,
		Message:   message,
		Severity:  severity,
		CreatedAt: c.now(),
	}
	c.current = n
	return *n
}

// Notify implements Notifier.
func (c *Center) Notify(message string, severity Severity) {
	c.Show(message, severity)
}

// Current returns the displayed notification, if any.
func (c *Center) Current() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Notification{}, false
	}
	return *c.current, true
}

// Count returns the number of displayed notifications: 0 or 1.
func (c *Center) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return 0
	}
	return 1
}

// BeginFade starts the fade-out of notification id. It returns false if id
// is no longer the displayed notification.
func (c *Center) BeginFade(id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil || c.current.ID != id {
		return false
	}
	c.current.Fading = true
	return true
}

// Remove removes notification id. It returns false if id is no longer the
// displayed notification.
func (c *Center) Remove(id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil || c.current.ID != id {
		return false
	}
	c.current = nil
	return true
}

// Dismiss removes the displayed notification regardless of its ID.
func (c *Center) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}
