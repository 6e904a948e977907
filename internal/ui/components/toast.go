// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/notify"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/styles"
)

// =============================================================================
// TOAST LIFECYCLE
// =============================================================================

// ToastFadeMsg starts the fade-out of toast ID.
type ToastFadeMsg struct {
	ID uint64
}

// ToastRemoveMsg removes toast ID.
type ToastRemoveMsg struct {
	ID uint64
}

// ToastFadeCmd fires ToastFadeMsg once the toast has been displayed for
// notify.DisplayDuration.
func ToastFadeCmd(id uint64) tea.Cmd {
	return tea.Tick(notify.DisplayDuration, func(_ time.Time) tea.Msg {
		return ToastFadeMsg{ID: id}
	})
}

// ToastRemoveCmd fires ToastRemoveMsg after the fade.
func ToastRemoveCmd(id uint64) tea.Cmd {
	return tea.Tick(notify.FadeDuration, func(_ time.Time) tea.Msg {
		return ToastRemoveMsg{ID: id}
	})
}

// UpdateToast advances the toast state held by center. Ticks for a toast
// that has since been replaced are ignored.
func UpdateToast(center *notify.Center, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ToastFadeMsg:
		if center.BeginFade(msg.ID) {
			return ToastRemoveCmd(msg.ID)
		}
	case ToastRemoveMsg:
		center.Remove(msg.ID)
	}
	return nil
}

// ShowToast displays a notification and schedules its removal.
func ShowToast(center *notify.Center, message string, severity notify.Severity) tea.Cmd {
	n := center.Show(message, severity)
	return ToastFadeCmd(n.ID)
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

// RenderToast renders a single notification.
func RenderToast(theme *styles.Theme, n notify.Notification, width int) string {
	maxWidth := 60
	if width > 0 && width-8 < maxWidth {
		maxWidth = width - 8
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	color := styles.SeverityColor(n.Severity)
	iconStyle := lipgloss.NewStyle().
		Foreground(color).
		Bold(true)
	messageStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)
	if n.Fading {
		iconStyle = iconStyle.Faint(true)
		messageStyle = messageStyle.Foreground(styles.TextMuted).Faint(true)
	}

	icon := styles.SeverityIndicator(n.Severity)
	message := wrapToastText(n.Message, maxWidth-runewidth.StringWidth(icon)-6)
	content := iconStyle.Render(icon+" ") + messageStyle.Render(message)

	return theme.Toast.
		BorderForeground(color).
		MaxWidth(maxWidth).
		Render(content)
}

// PlaceToast positions the notification at the bottom right of a
// width x height area. It returns "" when center is empty.
func PlaceToast(theme *styles.Theme, center *notify.Center, width, height int) string {
	n, ok := center.Current()
	if !ok {
		return ""
	}
	positioned := lipgloss.NewStyle().
		MarginRight(2).
		Render(RenderToast(theme, n, width))

	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Right, lipgloss.Bottom, positioned)
	}
	return positioned
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// wrapToastText word-wraps by display width, so Devanagari and other wide
// scripts wrap correctly.
func wrapToastText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var current strings.Builder
		currentWidth := 0
		for _, word := range words {
			w := runewidth.StringWidth(word)
			switch {
			case currentWidth == 0:
				current.WriteString(word)
				currentWidth = w
			case currentWidth+1+w <= maxWidth:
				current.WriteString(" ")
				current.WriteString(word)
				currentWidth += 1 + w
			default:
				lines = append(lines, current.String())
				current.Reset()
				current.WriteString(word)
				currentWidth = w
			}
		}
		lines = append(lines, current.String())
	}
	return strings.Join(lines, "\n")
}
