// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/connectivity"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/locale"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/styles"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is one key hint shown in the status bar.
type Shortcut struct {
	Key string
	// Element is the label element ID; Label is used when it is empty.
	Element string
	Label   string
}

// StatusBar is the bottom bar showing connectivity, user, language and key hints.
type StatusBar struct {
	Username  string
	Language  string
	Status    connectivity.Status
	Shortcuts []Shortcut
	Width     int
	theme     *styles.Theme
}

// NewStatusBar creates a StatusBar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Language: locale.Fallback,
		Width:    80,
		theme:    theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// ChatShortcuts are the hints for the chat screen.
func ChatShortcuts() []Shortcut {
	return []Shortcut{
		{Key: "enter", Element: ElementSendHint},
		{Key: "ctrl+l", Element: ElementLanguageButton},
		{Key: "ctrl+o", Element: ElementLogoutButton},
		{Key: "ctrl+y", Label: "copy"},
		{Key: "ctrl+c", Label: "quit"},
	}
}

// FormShortcuts are the hints for the login and signup screens.
func FormShortcuts() []Shortcut {
	return []Shortcut{
		{Key: "tab", Label: "next field"},
		{Key: "ctrl+l", Element: ElementLanguageButton},
		{Key: "ctrl+c", Label: "quit"},
	}
}

// View renders the status bar.
func (s *StatusBar) View(labels *Labels) string {
	mode := layoutFor(s.Width)

	var left []string
	left = append(left, s.renderStatus(mode))
	if s.Username != "" && mode != styles.LayoutNarrow {
		left = append(left, s.theme.ShortcutDesc.Render("@"+util.TruncateRunes(s.Username, 16)))
	}
	lang := strings.ToUpper(s.Language)
	if mode == styles.LayoutWide {
		lang = locale.DisplayName(s.Language)
	}
	left = append(left, s.theme.ShortcutDesc.Render(lang))
	leftText := strings.Join(left, s.theme.ShortcutDesc.Render(" | "))

	var right []string
	for i, sc := range s.Shortcuts {
		// Narrow terminals only get the first two hints.
		if mode == styles.LayoutNarrow && i >= 2 {
			break
		}
		label := sc.Label
		if sc.Element != "" {
			label = labels.Text(sc.Element)
		}
		right = append(right, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(label))
	}
	rightText := strings.Join(right, "  ")

	gap := s.Width - lipgloss.Width(leftText) - lipgloss.Width(rightText) - 2
	if gap < 1 {
		rightText = ""
		gap = 1
	}
	return s.theme.StatusBar.Width(s.Width).Render(leftText + strings.Repeat(" ", gap) + rightText)
}

func (s *StatusBar) renderStatus(mode styles.LayoutMode) string {
	switch s.Status {
	case connectivity.StatusOffline:
		text := styles.StatusIndicators.Error
		if mode != styles.LayoutNarrow {
			text += " offline"
		}
		return s.theme.StatusDown.Render(text)
	case connectivity.StatusOnline:
		text := styles.StatusIndicators.Success
		if mode != styles.LayoutNarrow {
			text += " online"
		}
		return s.theme.StatusOnline.Render(text)
	default:
		return s.theme.ShortcutDesc.Render("...")
	}
}

func layoutFor(width int) styles.LayoutMode {
	switch {
	case width < 60:
		return styles.LayoutNarrow
	case width < 100:
		return styles.LayoutMedium
	default:
		return styles.LayoutWide
	}
}

// RenderHeader renders the one-line title header.
func RenderHeader(theme *styles.Theme, width int) string {
	return theme.Header.Width(width).Render(theme.HeaderTitle.Render("QueryFARMER"))
}
