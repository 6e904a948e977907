// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/styles"
)

// =============================================================================
// AUTH FORM
// =============================================================================

// FormKind says which flow a form submits.
type FormKind int

const (
	FormLogin FormKind = iota
	FormSignup
)

// FormSubmitMsg is emitted when the user submits a form.
type FormSubmitMsg struct {
	Kind     FormKind
	Username string
	Password string
}

// FormSwitchMsg asks to show the other form.
type FormSwitchMsg struct {
	From FormKind
}

// FormKeys are the form's key bindings.
type FormKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Switch key.Binding
}

// DefaultFormKeys returns the default form bindings.
func DefaultFormKeys() FormKeys {
	return FormKeys{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Switch: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "switch form")),
	}
}

// AuthForm is the username and password form used for login and signup.
type AuthForm struct {
	Kind     FormKind
	username textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	keys     FormKeys
	theme    *styles.Theme
}

// NewAuthForm creates an empty form with the username field focused.
func NewAuthForm(theme *styles.Theme, kind FormKind) AuthForm {
	user := textinput.New()
	user.CharLimit = 64
	user.Prompt = "> "

	pass := textinput.New()
	pass.CharLimit = 128
	pass.Prompt = "> "
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '*'

	f := AuthForm{Kind: kind, username: user, password: pass, keys: DefaultFormKeys(), theme: theme}
	f.setFocus(0)
	return f
}

// SetUsername prefills the username field and moves focus to the password.
func (f *AuthForm) SetUsername(name string) {
	f.username.SetValue(name)
	if name != "" {
		f.setFocus(1)
	}
}

// Values returns the field values.
func (f AuthForm) Values() (username, password string) {
	return f.username.Value(), f.password.Value()
}

// ClearPassword empties the password field.
func (f *AuthForm) ClearPassword() {
	f.password.SetValue("")
}

// Reset empties both fields and focuses the username.
func (f *AuthForm) Reset() {
	f.username.SetValue("")
	f.password.SetValue("")
	f.setFocus(0)
}

// SetBusy disables submission while a request runs.
func (f *AuthForm) SetBusy(busy bool) {
	f.busy = busy
}

// Busy reports whether a request is running.
func (f AuthForm) Busy() bool {
	return f.busy
}

// Focus focuses the current field.
func (f *AuthForm) Focus() tea.Cmd {
	f.setFocus(f.focus)
	return textinput.Blink
}

func (f *AuthForm) setFocus(i int) {
	f.focus = i
	if i == 0 {
		f.username.Focus()
		f.password.Blur()
	} else {
		f.username.Blur()
		f.password.Focus()
	}
}

// Update handles keys for the form.
func (f AuthForm) Update(msg tea.Msg) (AuthForm, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, f.keys.Next), key.Matches(keyMsg, f.keys.Prev):
			f.setFocus(1 - f.focus)
			return f, nil
		case key.Matches(keyMsg, f.keys.Switch):
			if f.busy {
				return f, nil
			}
			kind := f.Kind
			return f, func() tea.Msg { return FormSwitchMsg{From: kind} }
		case key.Matches(keyMsg, f.keys.Submit):
			if f.busy {
				return f, nil
			}
			// Enter on the username field moves on to the password.
			if f.focus == 0 && f.password.Value() == "" {
				f.setFocus(1)
				return f, nil
			}
			submit := FormSubmitMsg{Kind: f.Kind, Username: f.username.Value(), Password: f.password.Value()}
			return f, func() tea.Msg { return submit }
		}
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.username, cmd = f.username.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return f, cmd
}

// View renders the form. note is shown under the title when set; frame is
// the spinner frame shown on the button while busy.
func (f AuthForm) View(labels *Labels, note, frame string, width, height int) string {
	title, button, other := ElementLoginTitle, ElementLoginButton, ElementShowSignup
	if f.Kind == FormSignup {
		title, button, other = ElementSignupTitle, ElementSignupButton, ElementShowLogin
	}

	var b strings.Builder
	b.WriteString(f.theme.FormTitle.Render(labels.Text(title)))
	b.WriteString("\n")
	if note != "" {
		b.WriteString(f.theme.FormNote.Render(note))
		b.WriteString("\n\n")
	}
	b.WriteString(f.theme.FormLabel.Render(labels.Text(ElementUsernameLabel)))
	b.WriteString("\n")
	b.WriteString(f.username.View())
	b.WriteString("\n\n")
	b.WriteString(f.theme.FormLabel.Render(labels.Text(ElementPasswordLabel)))
	b.WriteString("\n")
	b.WriteString(f.password.View())
	b.WriteString("\n\n")

	if f.busy {
		b.WriteString(f.theme.ButtonBusy.Render(strings.TrimSpace(frame + " " + labels.Text(button))))
	} else {
		b.WriteString(f.theme.Button.Render(labels.Text(button)))
	}
	b.WriteString("\n\n")
	b.WriteString(f.theme.ShortcutKey.Render("ctrl+n ") + f.theme.Link.Render(labels.Text(other)))

	box := f.theme.FormBox.Render(b.String())
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
