// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the active screen with the header, status bar and toast.
func (m Model) View() string {
	header := components.RenderHeader(m.theme, m.width)
	bodyHeight := m.height - chromeHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch {
	case !m.ready:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, "...")
	case m.pickerOpen:
		body = m.picker.View(m.labels, m.width, bodyHeight)
	case m.screen == ScreenLogin:
		body = m.login.View(m.labels, m.lastUserNote(), m.spinner.Frame(), m.width, bodyHeight)
	case m.screen == ScreenSignup:
		body = m.signup.View(m.labels, "", m.spinner.Frame(), m.width, bodyHeight)
	default:
		body = m.chatView()
	}

	body = m.overlayToast(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.statusBar.View(m.labels))
}

func (m Model) chatView() string {
	style := m.theme.InputContainer
	if !m.composerEnabled {
		style = m.theme.InputDisabled
	}
	composer := style.Width(m.width - 2).Render(m.composer.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), composer)
}

func (m Model) lastUserNote() string {
	if m.previousUser == "" {
		return ""
	}
	return m.labels.Text(components.ElementLastUserNote) + " " + m.previousUser
}

// overlayToast draws the current notification over the bottom right of body.
func (m Model) overlayToast(body string) string {
	toast := components.PlaceToast(m.theme, m.toasts, 0, 0)
	if toast == "" {
		return body
	}
	lines := strings.Split(body, "\n")
	toastLines := strings.Split(toast, "\n")
	start := len(lines) - len(toastLines)
	if start < 0 {
		start = 0
	}
	for i, tl := range toastLines {
		if start+i >= len(lines) {
			lines = append(lines, "")
		}
		lines[start+i] = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, tl)
	}
	return strings.Join(lines, "\n")
}
