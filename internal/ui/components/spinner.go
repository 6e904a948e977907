// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner animates pending placeholders and busy buttons. It only ticks
// while at least one holder has started it.
type Spinner struct {
	spinner spinner.Model
	holders int
}

// NewSpinner creates a spinner with ASCII-compatible frames.
func NewSpinner() Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	s.Style = lipgloss.NewStyle().Foreground(styles.Green)
	return Spinner{spinner: s}
}

// Start registers a holder. The returned command starts ticking when the
// spinner was idle.
func (s *Spinner) Start() tea.Cmd {
	s.holders++
	if s.holders == 1 {
		return s.spinner.Tick
	}
	return nil
}

// Stop releases a holder.
func (s *Spinner) Stop() {
	if s.holders > 0 {
		s.holders--
	}
}

// IsActive reports whether any holder is registered.
func (s *Spinner) IsActive() bool {
	return s.holders > 0
}

// Update handles spinner ticks. Ticks stop once the spinner is idle.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); ok && !s.IsActive() {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// Frame returns the current frame, or "" when idle.
func (s Spinner) Frame() string {
	if !s.IsActive() {
		return ""
	}
	return s.spinner.View()
}
