// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for sessions, conversations and messages.
//
// # Key Types
//
//   - State: token, username and active language shared by the controllers
//   - Conversation: concurrency-safe message log with in-place placeholder updates
//   - Message: single message with sender, text and placeholder flag
//   - Sender: user or bot
//
// # Usage
//
//	conv := model.NewConversation()
//	conv.AddUserMessage("What fertilizer suits wheat?")
//	ph := conv.AddPlaceholder("Thinking...")
//	conv.Resolve(ph.ID, answer)
package model
