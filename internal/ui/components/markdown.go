// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Markdown renders bot answers with glamour. Renderers are cached per wrap
// width. A nil *Markdown or a disabled one returns text unchanged.
type Markdown struct {
	style   string
	enabled bool

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// NewMarkdown creates a renderer using a glamour standard style name such
// as "dark", "light" or "notty".
func NewMarkdown(style string, enabled bool) *Markdown {
	return &Markdown{
		style:     style,
		enabled:   enabled,
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// Render renders text wrapped to width. It falls back to the plain text
// if glamour fails.
func (m *Markdown) Render(text string, width int) string {
	if m == nil || !m.enabled || strings.TrimSpace(text) == "" {
		return text
	}
	if width < 20 {
		width = 20
	}

	m.mu.Lock()
	r, ok := m.renderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			m.mu.Unlock()
			return text
		}
		m.renderers[width] = r
	}
	m.mu.Unlock()

	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
