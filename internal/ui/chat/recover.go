// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// DefaultUnexpectedError is shown when a background flow panics.
const DefaultUnexpectedError = "Something went wrong. Please try again."

// guard runs fn and turns a panic into panicMsg, so one broken flow cannot
// take down the program.
func guard(log *zap.Logger, name string, fn func() tea.Msg) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("recovered panic", zap.String("task", name), zap.Any("panic", r), zap.Stack("stack"))
				msg = panicMsg{name: name, value: r}
			}
		}()
		return fn()
	}
}

// task runs a controller flow in a command goroutine.
func (m Model) task(name string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return guard(m.log, name, func() tea.Msg {
		return taskDoneMsg{name: name, err: fn(ctx)}
	})
}
