// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	Name         string
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER AND STATUS BAR
	// ==========================================================================

	Header       lipgloss.Style
	HeaderTitle  lipgloss.Style
	StatusBar    lipgloss.Style
	StatusOnline lipgloss.Style
	StatusDown   lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// MESSAGES
	// ==========================================================================

	UserBubble   lipgloss.Style
	BotBubble    lipgloss.Style
	SenderLabel  lipgloss.Style
	Placeholder  lipgloss.Style
	WelcomeTitle lipgloss.Style
	WelcomeText  lipgloss.Style

	// ==========================================================================
	// INPUTS AND FORMS
	// ==========================================================================

	InputContainer lipgloss.Style
	InputDisabled  lipgloss.Style
	FormBox        lipgloss.Style
	FormTitle      lipgloss.Style
	FormLabel      lipgloss.Style
	FormNote       lipgloss.Style
	Button         lipgloss.Style
	ButtonBusy     lipgloss.Style
	Link           lipgloss.Style

	// ==========================================================================
	// LANGUAGE PICKER
	// ==========================================================================

	PickerBox          lipgloss.Style
	PickerTitle        lipgloss.Style
	PickerSubtitle     lipgloss.Style
	PickerItem         lipgloss.Style
	PickerItemSelected lipgloss.Style
	PickerItemHint     lipgloss.Style

	// ==========================================================================
	// NOTIFICATIONS
	// ==========================================================================

	Toast lipgloss.Style
}

// NewTheme creates a theme. name is "dark", "light" or "auto"; auto asks
// the terminal for its background.
func NewTheme(name string) *Theme {
	colorProfile := termenv.ColorProfile()
	name = strings.ToLower(name)

	var isDark bool
	switch name {
	case "light":
		isDark = false
	case "dark":
		isDark = true
	default:
		name = "auto"
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		Name:         name,
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// MarkdownStyle returns the glamour style name matching the theme.
func (t *Theme) MarkdownStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Green).
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Green)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusOnline = lipgloss.NewStyle().Foreground(Emerald)
	t.StatusDown = lipgloss.NewStyle().Foreground(Rose).Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Messages
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 1)

	t.SenderLabel = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.WelcomeTitle = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true)

	t.WelcomeText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Inputs and forms
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Green).
		Padding(1, 3)

	t.FormTitle = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true).
		MarginBottom(1)

	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FormNote = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Button = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Green).
		Bold(true).
		Padding(0, 2)

	t.ButtonBusy = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Overlay).
		Padding(0, 2)

	t.Link = lipgloss.NewStyle().
		Foreground(Cyan).
		Underline(true)

	// Language picker
	t.PickerBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Green).
		Padding(1, 4)

	t.PickerTitle = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true)

	t.PickerSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		MarginBottom(1)

	t.PickerItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.PickerItemSelected = lipgloss.NewStyle().
		Background(Green).
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	t.PickerItemHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Toast = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 2)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
