// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the queryfarmer TUI.

All colors use Lip Gloss AdaptiveColor so they follow the terminal
background; the ui.theme setting can pin dark or light.

# Color System (colors.go)

  - Green - Brand color for headers, buttons and selections
  - Emerald, Rose, Amber, Cyan - Notification colors for success, error,
    warning and info; see SeverityColor
  - UserBubble*, BotBubble* - Message bubble tokens

Every notification color is paired with an ASCII indicator ([OK], [X],
[!], [i]) so severity never depends on color alone.

# Theme (theme.go)

	theme := styles.NewTheme(cfg.UI.Theme)
	theme.SetSize(width, height)
	box := theme.FormBox.Render(form)
*/
package styles
