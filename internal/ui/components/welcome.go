// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/locale"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/styles"
)

// logo is the compact ASCII mark shown above the welcome text.
const logo = `  \|/
 --*--  QueryFARMER
  /|\`

// RenderWelcome renders the empty-log welcome state centered in a
// width x height area.
func RenderWelcome(theme *styles.Theme, labels *Labels, width, height int) string {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 10
	}
	textWidth := width - 8
	if textWidth > 60 {
		textWidth = 60
	}
	if textWidth < 20 {
		textWidth = 20
	}

	title := theme.WelcomeTitle.Render(wordwrap.String(labels.Text(locale.ElementWelcomeTitle), textWidth))
	subtitle := theme.WelcomeText.Render(wordwrap.String(labels.Text(locale.ElementWelcomeSubtitle), textWidth))

	content := title + "\n\n" + subtitle
	// Drop the logo when space is tight.
	if height >= lipgloss.Height(content)+lipgloss.Height(logo)+2 {
		content = theme.HeaderTitle.Render(logo) + "\n\n" + content
	}

	block := lipgloss.NewStyle().Align(lipgloss.Center).Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
