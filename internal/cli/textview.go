// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/conversation"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/locale"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/model"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/notify"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/session"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/components"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/styles"
)

// =============================================================================
// PLAIN-TEXT VIEW
// =============================================================================

// textView drives the controllers from line-mode commands. Answers go to
// out; progress text and notifications go to status.
type textView struct {
	mu     sync.Mutex
	out    io.Writer
	status io.Writer
	md     *components.Markdown
	width  int
	screen string
	text   map[string]string

	labelStyle  lipgloss.Style
	statusStyle lipgloss.Style
	render      *lipgloss.Renderer
}

var (
	_ session.View      = (*textView)(nil)
	_ conversation.View = (*textView)(nil)
	_ locale.Binder     = (*textView)(nil)
	_ notify.Notifier   = (*textView)(nil)
)

// newTextView creates a view writing answers to out and status lines to status.
func newTextView(out, status io.Writer, md *components.Markdown, width int) *textView {
	r := newRenderer(status)
	return &textView{
		out:         out,
		status:      status,
		md:          md,
		width:       width,
		screen:      "login",
		text:        make(map[string]string),
		labelStyle:  newRenderer(out).NewStyle().Foreground(styles.Green).Bold(true),
		statusStyle: r.NewStyle().Foreground(styles.TextMuted).Italic(true),
		render:      r,
	}
}

// Screen returns the screen the controllers last asked for.
func (v *textView) Screen() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.screen
}

// Label returns localized text for element id, or fallback.
func (v *textView) Label(id, fallback string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if t, ok := v.text[id]; ok && t != "" {
		return t
	}
	return fallback
}

func (v *textView) setScreen(name string) {
	v.mu.Lock()
	v.screen = name
	v.mu.Unlock()
}

// SetBusy implements session.View. Line mode blocks while busy.
func (v *textView) SetBusy(session.Control, bool) {}

// ShowLogin implements session.View.
func (v *textView) ShowLogin() { v.setScreen("login") }

// ShowSignup implements session.View.
func (v *textView) ShowSignup() { v.setScreen("signup") }

// ShowChat implements session.View.
func (v *textView) ShowChat() { v.setScreen("chat") }

// AppendMessage implements conversation.View. The user already sees their
// own question, so only placeholders are printed.
func (v *textView) AppendMessage(msg model.Message) {
	if msg.IsPlaceholder {
		fmt.Fprintln(v.status, v.statusStyle.Render(msg.Text))
	}
}

// UpdateMessage implements conversation.View.
func (v *textView) UpdateMessage(msg model.Message) {
	if msg.IsPlaceholder {
		fmt.Fprintln(v.status, v.statusStyle.Render(msg.Text))
		return
	}
	fmt.Fprintln(v.out, v.labelStyle.Render(msg.Sender.DisplayName()+":"))
	fmt.Fprintln(v.out, v.md.Render(msg.Text, v.width))
	fmt.Fprintln(v.out)
}

// ClearMessages implements conversation.View.
func (v *textView) ClearMessages() {}

// SetComposerEnabled implements conversation.View.
func (v *textView) SetComposerEnabled(bool) {}

// ResetComposer implements conversation.View.
func (v *textView) ResetComposer() {}

// FocusComposer implements conversation.View.
func (v *textView) FocusComposer() {}

// TaggedElements implements locale.Binder. Line mode only uses the fixed
// elements.
func (v *textView) TaggedElements() []locale.Element { return nil }

// SetElementText implements locale.Binder.
func (v *textView) SetElementText(id, text string) {
	v.mu.Lock()
	v.text[id] = text
	v.mu.Unlock()
}

// SetElementPlaceholder implements locale.Binder.
func (v *textView) SetElementPlaceholder(id, text string) {
	v.SetElementText(id, text)
}

// DismissLanguagePicker implements locale.Binder.
func (v *textView) DismissLanguagePicker() {}

// Notify implements notify.Notifier.
func (v *textView) Notify(message string, severity notify.Severity) {
	style := v.render.NewStyle().Foreground(styles.SeverityColor(severity)).Bold(true)
	fmt.Fprintln(v.status, style.Render(styles.SeverityIndicator(severity))+" "+message)
}

// newRenderer styles output for w, honouring NO_COLOR and FORCE_COLOR.
func newRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(GetColorProfile(w))
	return r
}
