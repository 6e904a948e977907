// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/notify"
)

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Green - Brand color, headers, focused controls
var Green = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#86EFAC"}

// Cyan - Info notifications, key hints
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Success notifications, online indicator
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - Error notifications, offline indicator
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warning notifications, pending states
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE AND TEXT COLORS
// =============================================================================

// SurfaceDim - Header, status bar and notification background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders and separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints and disabled controls
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

var UserBubbleBg = lipgloss.AdaptiveColor{Light: "#DCFCE7", Dark: "#14532D"}
var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#14532D", Dark: "#DCFCE7"}
var UserBubbleBorder = lipgloss.AdaptiveColor{Light: "#22C55E", Dark: "#22C55E"}

var BotBubbleBg = lipgloss.AdaptiveColor{Light: "#F5F5F4", Dark: "#292524"}
var BotBubbleFg = lipgloss.AdaptiveColor{Light: "#44403C", Dark: "#E7E5E4"}
var BotBubbleBorder = lipgloss.AdaptiveColor{Light: "#A8A29E", Dark: "#78716C"}

// =============================================================================
// NOTIFICATION COLORS
// =============================================================================

// SeverityColor returns the fixed color for a notification severity:
// success emerald, error rose, warning amber, info cyan.
func SeverityColor(s notify.Severity) lipgloss.AdaptiveColor {
	switch s {
	case notify.Success:
		return Emerald
	case notify.Error:
		return Rose
	case notify.Warning:
		return Amber
	default:
		return Cyan
	}
}

// StatusIndicatorSet contains text indicators shown next to colors.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
}

// StatusIndicators are ASCII-only so they render on every terminal.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
}

// SeverityIndicator returns the indicator for s.
func SeverityIndicator(s notify.Severity) string {
	switch s {
	case notify.Success:
		return StatusIndicators.Success
	case notify.Error:
		return StatusIndicators.Error
	case notify.Warning:
		return StatusIndicators.Warning
	default:
		return StatusIndicators.Info
	}
}

// =============================================================================
// PLAIN-TEXT STATUS HELPERS
// =============================================================================

// RenderSeverity renders message with the indicator and color of s. Line
// mode uses it where no notification overlay exists.
func RenderSeverity(s notify.Severity, message string) string {
	style := lipgloss.NewStyle().
		Foreground(SeverityColor(s)).
		Bold(true)
	return style.Render(SeverityIndicator(s) + " " + message)
}

// RenderSuccess renders a success message.
func RenderSuccess(message string) string {
	return RenderSeverity(notify.Success, message)
}

// RenderError renders an error message.
func RenderError(message string) string {
	return RenderSeverity(notify.Error, message)
}
