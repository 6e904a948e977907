// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/locale"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/styles"
)

// =============================================================================
// LANGUAGE PICKER
// =============================================================================

// LanguageChosenMsg is emitted when the user confirms a language.
type LanguageChosenMsg struct {
	Code string
}

// PickerCancelledMsg is emitted when the user closes a dismissible picker.
type PickerCancelledMsg struct{}

// PickerKeys are the picker's key bindings.
type PickerKeys struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Cancel key.Binding
}

// DefaultPickerKeys returns the default picker bindings.
func DefaultPickerKeys() PickerKeys {
	return PickerKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// LanguagePicker is the modal list of selectable languages.
type LanguagePicker struct {
	languages []locale.Language
	cursor    int
	// Dismissible is false on first run: a language must be chosen.
	Dismissible bool
	keys        PickerKeys
	theme       *styles.Theme
}

// NewLanguagePicker creates a picker with the cursor on preselect.
func NewLanguagePicker(theme *styles.Theme, languages []locale.Language, preselect string) LanguagePicker {
	p := LanguagePicker{languages: languages, keys: DefaultPickerKeys(), theme: theme}
	p.Select(preselect)
	return p
}

// Select moves the cursor to code if it is listed.
func (p *LanguagePicker) Select(code string) {
	for i, lang := range p.languages {
		if lang.Code == code {
			p.cursor = i
			return
		}
	}
}

// Selected returns the language under the cursor.
func (p LanguagePicker) Selected() (locale.Language, bool) {
	if len(p.languages) == 0 {
		return locale.Language{}, false
	}
	return p.languages[p.cursor], true
}

// Update handles navigation keys.
func (p LanguagePicker) Update(msg tea.Msg) (LanguagePicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch {
	case key.Matches(keyMsg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(keyMsg, p.keys.Down):
		if p.cursor < len(p.languages)-1 {
			p.cursor++
		}
	case key.Matches(keyMsg, p.keys.Choose):
		if lang, ok := p.Selected(); ok {
			return p, func() tea.Msg { return LanguageChosenMsg{Code: lang.Code} }
		}
	case key.Matches(keyMsg, p.keys.Cancel):
		if p.Dismissible {
			return p, func() tea.Msg { return PickerCancelledMsg{} }
		}
	}
	return p, nil
}

// View renders the picker centered in a width x height area.
func (p LanguagePicker) View(labels *Labels, width, height int) string {
	var b strings.Builder
	b.WriteString(p.theme.PickerTitle.Render(labels.Text(locale.ElementLanguageModalTitle)))
	b.WriteString("\n")
	b.WriteString(p.theme.PickerSubtitle.Render(labels.Text(locale.ElementLanguageModalSubtitle)))
	b.WriteString("\n")

	for i, lang := range p.languages {
		line := lang.Native
		if lang.English != lang.Native {
			line += " " + p.theme.PickerItemHint.Render("("+lang.English+")")
		}
		if i == p.cursor {
			b.WriteString(p.theme.PickerItemSelected.Render("> " + line))
		} else {
			b.WriteString(p.theme.PickerItem.Render("  " + line))
		}
		b.WriteString("\n")
	}

	box := p.theme.PickerBox.Render(strings.TrimRight(b.String(), "\n"))
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
