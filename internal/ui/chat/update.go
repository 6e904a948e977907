// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/locale"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/notify"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/session"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/components"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/util"
)

// DefaultCopied is shown after the last answer is copied.
const DefaultCopied = "Answer copied to clipboard."

// layout rows outside the body: header and status bar.
const chromeHeight = 2

// composerHeight is the bordered composer below the log.
const composerHeight = 3

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)

	case readyMsg:
		return m.handleReady(msg)
	case statusTickMsg:
		m.refreshStatus()
		return m, statusTickCmd()
	case taskDoneMsg:
		if msg.err != nil {
			m.log.Debug("flow finished with error", zap.String("task", msg.name), zap.Error(msg.err))
		}
		return m, nil
	case panicMsg:
		text := m.t(locale.KeyUnexpectedError, DefaultUnexpectedError)
		return m, components.ShowToast(m.toasts, text, notify.Error)

	// Bridge messages
	case BusyMsg:
		return m.handleBusy(msg)
	case ScreenMsg:
		return m.handleScreen(msg.Screen)
	case AppendMessageMsg:
		return m.handleAppend(msg)
	case UpdateMessageMsg:
		return m.handleUpdateMessage(msg)
	case ClearMessagesMsg:
		for m.pending > 0 {
			m.release()
		}
		m.list.Clear()
		m.refreshViewport()
		return m, nil
	case ComposerEnabledMsg:
		m.composerEnabled = msg.Enabled
		if !msg.Enabled {
			m.composer.Blur()
		}
		return m, nil
	case ComposerResetMsg:
		m.composer.Reset()
		return m, nil
	case ComposerFocusMsg:
		return m, m.focusComposer()
	case ElementTextMsg:
		m.labels.SetText(msg.ID, msg.Text)
		m.refreshViewport()
		return m, nil
	case ElementPlaceholderMsg:
		m.labels.SetPlaceholder(msg.ID, msg.Text)
		if msg.ID == locale.ElementQuestionInput {
			m.composer.Placeholder = msg.Text
		}
		return m, nil
	case PickerDismissedMsg:
		m.pickerOpen = false
		m.refreshStatus()
		return m, m.focusComposer()
	case NotifyMsg:
		return m, components.ShowToast(m.toasts, msg.Message, msg.Severity)

	// Component messages
	case components.ToastFadeMsg, components.ToastRemoveMsg:
		return m, components.UpdateToast(m.toasts, msg)
	case components.LanguageChosenMsg:
		code := msg.Code
		return m, m.task("select-language", func(ctx context.Context) error {
			return m.deps.Locale.Select(ctx, code)
		})
	case components.PickerCancelledMsg:
		m.pickerOpen = false
		return m, m.focusComposer()
	case components.FormSubmitMsg:
		return m.handleSubmit(msg)
	case components.FormSwitchMsg:
		if msg.From == components.FormLogin {
			return m.handleScreen(ScreenSignup)
		}
		return m.handleScreen(ScreenLogin)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.list.SpinnerFrame = m.spinner.Frame()
		m.refreshViewport()
		return m, cmd
	}

	// Cursor blink and other input messages
	var cmd tea.Cmd
	switch m.screen {
	case ScreenLogin:
		m.login, cmd = m.login.Update(msg)
	case ScreenSignup:
		m.signup, cmd = m.signup.Update(msg)
	case ScreenChat:
		m.composer, cmd = m.composer.Update(msg)
	}
	return m, cmd
}

// =============================================================================
// HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.list.Width = msg.Width
	m.statusBar.SetWidth(msg.Width)

	m.viewport.Width = msg.Width
	m.viewport.Height = m.logHeight()
	m.composer.Width = msg.Width - 8
	if m.composer.Width < 10 {
		m.composer.Width = 10
	}
	m.refreshViewport()
	return m, nil
}

func (m Model) handleReady(msg readyMsg) (tea.Model, tea.Cmd) {
	m.ready = true
	m.previousUser = msg.previousUser
	if msg.previousUser != "" {
		m.login.SetUsername(msg.previousUser)
	}
	m.refreshStatus()
	if msg.needsLanguage {
		m.pickerOpen = true
		m.picker.Dismissible = false
		if m.deps.Preselect != "" {
			m.picker.Select(m.deps.Preselect)
		}
	}
	return m, m.login.Focus()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if !m.ready {
		return m, nil
	}

	if m.pickerOpen {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Language):
		m.pickerOpen = true
		m.picker.Dismissible = true
		m.picker.Select(m.currentLanguage())
		m.composer.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Dismiss) && m.toasts.Count() > 0:
		m.toasts.Dismiss()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.screen {
	case ScreenLogin:
		m.login, cmd = m.login.Update(msg)
	case ScreenSignup:
		m.signup, cmd = m.signup.Update(msg)
	case ScreenChat:
		return m.handleChatKey(msg)
	}
	return m, cmd
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		question := m.composer.Value()
		if !m.composerEnabled || util.IsBlank(question) {
			return m, nil
		}
		// Disable locally until the controller's own update arrives.
		m.composerEnabled = false
		return m, m.task("ask", func(ctx context.Context) error {
			return m.deps.Conversation.Ask(ctx, question)
		})

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyLastAnswer()

	case key.Matches(msg, m.keys.Logout):
		if m.logoutBusy {
			return m, nil
		}
		return m, m.task("logout", m.deps.Session.Logout)

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown),
		key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if !m.composerEnabled {
		return m, nil
	}
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m Model) handleSubmit(msg components.FormSubmitMsg) (tea.Model, tea.Cmd) {
	username, password := msg.Username, msg.Password
	if msg.Kind == components.FormSignup {
		return m, m.task("signup", func(ctx context.Context) error {
			return m.deps.Session.Signup(ctx, username, password)
		})
	}
	return m, m.task("login", func(ctx context.Context) error {
		return m.deps.Session.Login(ctx, username, password)
	})
}

func (m Model) handleBusy(msg BusyMsg) (tea.Model, tea.Cmd) {
	switch msg.Control {
	case session.ControlLogin:
		if m.login.Busy() == msg.Busy {
			return m, nil
		}
		m.login.SetBusy(msg.Busy)
	case session.ControlSignup:
		if m.signup.Busy() == msg.Busy {
			return m, nil
		}
		m.signup.SetBusy(msg.Busy)
	case session.ControlLogout:
		if m.logoutBusy == msg.Busy {
			return m, nil
		}
		m.logoutBusy = msg.Busy
	default:
		return m, nil
	}
	if msg.Busy {
		return m, m.spinner.Start()
	}
	m.spinner.Stop()
	return m, nil
}

func (m Model) handleScreen(screen Screen) (tea.Model, tea.Cmd) {
	prev := m.screen
	m.screen = screen
	m.refreshStatus()

	switch screen {
	case ScreenChat:
		m.login.Reset()
		m.signup.Reset()
		m.statusBar.Shortcuts = components.ChatShortcuts()
		m.refreshViewport()
		return m, m.focusComposer()
	case ScreenSignup:
		m.statusBar.Shortcuts = components.FormShortcuts()
		m.login.ClearPassword()
		return m, m.signup.Focus()
	default:
		m.statusBar.Shortcuts = components.FormShortcuts()
		switch prev {
		case ScreenSignup:
			// Carry the new account's name over to the login form.
			name, _ := m.signup.Values()
			m.signup.Reset()
			m.login.ClearPassword()
			if name != "" {
				m.login.SetUsername(name)
			}
		case ScreenChat:
			m.previousUser = ""
			m.login.Reset()
			m.composer.Reset()
		}
		return m, m.login.Focus()
	}
}

func (m Model) handleAppend(msg AppendMessageMsg) (tea.Model, tea.Cmd) {
	m.list.Append(msg.Message)
	var cmd tea.Cmd
	if msg.Message.IsPlaceholder {
		m.pending++
		cmd = m.spinner.Start()
	}
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, cmd
}

func (m Model) handleUpdateMessage(msg UpdateMessageMsg) (tea.Model, tea.Cmd) {
	wasPlaceholder := false
	for _, existing := range m.list.Messages {
		if existing.ID == msg.Message.ID {
			wasPlaceholder = existing.IsPlaceholder
			break
		}
	}
	if !m.list.Update(msg.Message) {
		return m, nil
	}
	if wasPlaceholder && !msg.Message.IsPlaceholder {
		m.release()
	}
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// release drops one placeholder's hold on the spinner.
func (m *Model) release() {
	if m.pending > 0 {
		m.pending--
		m.spinner.Stop()
	}
	m.list.SpinnerFrame = m.spinner.Frame()
}

func (m *Model) focusComposer() tea.Cmd {
	if m.screen != ScreenChat || m.pickerOpen || !m.composerEnabled {
		return nil
	}
	m.composer.Focus()
	return textinput.Blink
}

func (m Model) copyLastAnswer() tea.Cmd {
	answer, ok := m.deps.Conversation.LastAnswer()
	if !ok {
		return nil
	}
	copyText := m.deps.CopyText
	copied := m.t(locale.KeyCopied, DefaultCopied)
	log := m.log
	return guard(m.log, "copy", func() tea.Msg {
		if err := copyText(answer); err != nil {
			log.Warn("clipboard write failed", zap.Error(err))
			return NotifyMsg{Message: err.Error(), Severity: notify.Error}
		}
		return NotifyMsg{Message: copied, Severity: notify.Success}
	})
}

func (m *Model) refreshStatus() {
	if m.deps.Status != nil {
		m.statusBar.Status = m.deps.Status.Status()
	}
	if m.deps.User != nil {
		m.statusBar.Username = m.deps.User.Username()
	}
	m.statusBar.Language = m.currentLanguage()
}

func (m Model) currentLanguage() string {
	if m.deps.Locale == nil {
		return locale.Fallback
	}
	return m.deps.Locale.Language()
}

func (m Model) logHeight() int {
	h := m.height - chromeHeight - composerHeight
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) refreshViewport() {
	if m.list.Len() == 0 {
		m.viewport.SetContent(components.RenderWelcome(m.theme, m.labels, m.width, m.logHeight()))
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.list.View())
	if atBottom {
		m.viewport.GotoBottom()
	}
}
