// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/connectivity"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/locale"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/model"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/notify"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/session"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/components"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/styles"
)

// =============================================================================
// FAKES
// =============================================================================

type fakeSession struct {
	mu    sync.Mutex
	calls []string
	prev  string
}

func (f *fakeSession) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeSession) Login(_ context.Context, username, password string) error {
	f.record("login:" + username + ":" + password)
	return nil
}

func (f *fakeSession) Signup(_ context.Context, username, password string) error {
	f.record("signup:" + username + ":" + password)
	return nil
}

func (f *fakeSession) Logout(context.Context) error {
	f.record("logout")
	return nil
}

func (f *fakeSession) PreviousUser() (string, bool) {
	return f.prev, f.prev != ""
}

type fakeConversation struct {
	asked []string
	last  string
	err   error
}

func (f *fakeConversation) Ask(_ context.Context, question string) error {
	f.asked = append(f.asked, question)
	return f.err
}

func (f *fakeConversation) LastAnswer() (string, bool) {
	return f.last, f.last != ""
}

type fakeLocale struct {
	lang     string
	needs    bool
	binder   locale.Binder
	restored bool
	selected []string
	strings  map[string]string
}

func (f *fakeLocale) SetBinder(b locale.Binder) { f.binder = b }
func (f *fakeLocale) NeedsSelection() bool      { return f.needs }
func (f *fakeLocale) Language() string          { return f.lang }

func (f *fakeLocale) Restore(context.Context) error {
	f.restored = true
	return nil
}

func (f *fakeLocale) Select(_ context.Context, code string) error {
	f.selected = append(f.selected, code)
	f.lang = code
	return nil
}

func (f *fakeLocale) T(key, fallback string) string {
	if v, ok := f.strings[key]; ok {
		return v
	}
	return fallback
}

type fixedStatus connectivity.Status

func (s fixedStatus) Status() connectivity.Status { return connectivity.Status(s) }

type fixedUser string

func (u fixedUser) Username() string { return string(u) }

type recordingSender struct {
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) { r.msgs = append(r.msgs, msg) }

type fixture struct {
	session *fakeSession
	conv    *fakeConversation
	locale  *fakeLocale
	bridge  *Bridge
	copied  []string
}

func newFixture() *fixture {
	return &fixture{
		session: &fakeSession{},
		conv:    &fakeConversation{},
		locale:  &fakeLocale{lang: "en"},
		bridge:  NewBridge(),
	}
}

func (f *fixture) model() Model {
	return New(Deps{
		Session:      f.session,
		Conversation: f.conv,
		Locale:       f.locale,
		Binder:       f.bridge,
		Status:       fixedStatus(connectivity.StatusOnline),
		User:         fixedUser("asha"),
		Languages:    locale.DescribeAll([]string{"en", "hi", "gu"}),
		Theme:        styles.NewTheme("dark"),
		CopyText: func(text string) error {
			f.copied = append(f.copied, text)
			return nil
		},
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// start runs startup and feeds its result back in.
func start(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, m.startup()())
	return m
}

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

// =============================================================================
// STARTUP
// =============================================================================

func TestStartup_FirstRunShowsMandatoryPicker(t *testing.T) {
	f := newFixture()
	f.locale.needs = true
	m := start(t, f.model())

	require.Same(t, f.bridge, f.locale.binder)
	require.False(t, f.locale.restored)
	require.True(t, m.PickerOpen())

	// Esc does not close the first-run picker.
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Nil(t, cmd)
	require.True(t, m.PickerOpen())
	require.Contains(t, m.View(), "Choose your language")
}

func TestStartup_RestoresLanguageAndPreviousUser(t *testing.T) {
	f := newFixture()
	f.session.prev = "meena"
	m := start(t, f.model())

	require.True(t, f.locale.restored)
	require.False(t, m.PickerOpen())
	require.Equal(t, ScreenLogin, m.Screen())
	user, _ := m.login.Values()
	require.Equal(t, "meena", user)
	require.Contains(t, m.View(), "Last signed in as meena")
}

// =============================================================================
// LANGUAGE PICKER
// =============================================================================

func TestPicker_SelectThenDismiss(t *testing.T) {
	f := newFixture()
	f.locale.needs = true
	m := start(t, f.model())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, enter())
	require.NotNil(t, cmd)
	m, cmd = update(t, m, cmd())
	require.NotNil(t, cmd)
	done := cmd()
	require.Equal(t, taskDoneMsg{name: "select-language"}, done)
	require.Equal(t, []string{"hi"}, f.locale.selected)

	// The picker stays up until the store dismisses it.
	require.True(t, m.PickerOpen())
	m, _ = update(t, m, PickerDismissedMsg{})
	require.False(t, m.PickerOpen())
	require.Equal(t, "hi", m.statusBar.Language)
}

func TestPicker_CtrlLOpensDismissible(t *testing.T) {
	f := newFixture()
	m := start(t, f.model())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	require.True(t, m.PickerOpen())
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	require.False(t, m.PickerOpen())
}

// =============================================================================
// AUTH FORMS
// =============================================================================

func TestForms_SubmitRunsFlows(t *testing.T) {
	f := newFixture()
	m := start(t, f.model())

	_, cmd := update(t, m, components.FormSubmitMsg{Kind: components.FormLogin, Username: "asha", Password: "secret"})
	require.NotNil(t, cmd)
	cmd()
	_, cmd = update(t, m, components.FormSubmitMsg{Kind: components.FormSignup, Username: "ravi", Password: "hunter22"})
	cmd()
	require.Equal(t, []string{"login:asha:secret", "signup:ravi:hunter22"}, f.session.calls)
}

func TestForms_BusyDisablesButton(t *testing.T) {
	f := newFixture()
	m := start(t, f.model())

	m, cmd := update(t, m, BusyMsg{Control: session.ControlLogin, Busy: true})
	require.NotNil(t, cmd, "busy starts the spinner")
	require.True(t, m.login.Busy())

	// A repeated busy message does not stack spinner holders.
	m, cmd = update(t, m, BusyMsg{Control: session.ControlLogin, Busy: true})
	require.Nil(t, cmd)

	m, _ = update(t, m, BusyMsg{Control: session.ControlLogin, Busy: false})
	require.False(t, m.login.Busy())
	require.False(t, m.spinner.IsActive())
}

func TestForms_SignupSuccessCarriesUsername(t *testing.T) {
	f := newFixture()
	m := start(t, f.model())

	m, _ = update(t, m, components.FormSwitchMsg{From: components.FormLogin})
	require.Equal(t, ScreenSignup, m.Screen())
	m.signup.SetUsername("ravi")

	m, _ = update(t, m, ScreenMsg{Screen: ScreenLogin})
	require.Equal(t, ScreenLogin, m.Screen())
	user, pass := m.login.Values()
	require.Equal(t, "ravi", user)
	require.Empty(t, pass)
}

// =============================================================================
// CHAT SCREEN
// =============================================================================

func TestChat_EnterAsks(t *testing.T) {
	f := newFixture()
	m := start(t, f.model())
	m, _ = update(t, m, ScreenMsg{Screen: ScreenChat})
	require.Equal(t, ScreenChat, m.Screen())

	// Blank input is a no-op.
	m.composer.SetValue("   ")
	m, cmd := update(t, m, enter())
	require.Nil(t, cmd)

	m.composer.SetValue("Best fertilizer for rice?")
	m, cmd = update(t, m, enter())
	require.NotNil(t, cmd)
	require.False(t, m.composerEnabled)
	cmd()
	require.Equal(t, []string{"Best fertilizer for rice?"}, f.conv.asked)

	// A second enter before the composer is re-enabled does nothing.
	_, cmd = update(t, m, enter())
	require.Nil(t, cmd)
}

func TestChat_PlaceholderHoldsSpinnerUntilResolved(t *testing.T) {
	f := newFixture()
	m := start(t, f.model())
	m, _ = update(t, m, ScreenMsg{Screen: ScreenChat})

	m, _ = update(t, m, AppendMessageMsg{Message: model.Message{ID: "u1", Sender: model.SenderUser, Text: "hello"}})
	m, cmd := update(t, m, AppendMessageMsg{Message: model.Message{ID: "b1", Sender: model.SenderBot, Text: "Thinking...", IsPlaceholder: true}})
	require.NotNil(t, cmd)
	require.Equal(t, 1, m.pending)
	require.True(t, m.spinner.IsActive())

	m, _ = update(t, m, UpdateMessageMsg{Message: model.Message{ID: "b1", Sender: model.SenderBot, Text: "Translating...", IsPlaceholder: true}})
	require.Equal(t, 1, m.pending)

	m, _ = update(t, m, UpdateMessageMsg{Message: model.Message{ID: "b1", Sender: model.SenderBot, Text: "Use urea."}})
	require.Equal(t, 0, m.pending)
	require.False(t, m.spinner.IsActive())
	require.Contains(t, m.View(), "Use urea.")
}

func TestChat_ClearReleasesPending(t *testing.T) {
	f := newFixture()
	m := start(t, f.model())
	m, _ = update(t, m, ScreenMsg{Screen: ScreenChat})
	m, _ = update(t, m, AppendMessageMsg{Message: model.Message{ID: "b1", Sender: model.SenderBot, Text: "Thinking...", IsPlaceholder: true}})

	m, _ = update(t, m, ClearMessagesMsg{})
	require.Equal(t, 0, m.list.Len())
	require.Equal(t, 0, m.pending)

	// A late reply for a cleared placeholder is dropped.
	m, _ = update(t, m, UpdateMessageMsg{Message: model.Message{ID: "b1", Sender: model.SenderBot, Text: "late"}})
	require.Equal(t, 0, m.list.Len())
	require.Contains(t, m.View(), "Welcome to QueryFarmer")
}

func TestChat_ComposerMessages(t *testing.T) {
	f := newFixture()
	m := start(t, f.model())
	m, _ = update(t, m, ScreenMsg{Screen: ScreenChat})
	m.composer.SetValue("draft")

	m, _ = update(t, m, ComposerResetMsg{})
	require.Empty(t, m.composer.Value())
	m, _ = update(t, m, ComposerEnabledMsg{Enabled: false})
	require.False(t, m.composerEnabled)
	m, cmd := update(t, m, ComposerFocusMsg{})
	require.Nil(t, cmd, "disabled composer is not focused")
	m, _ = update(t, m, ComposerEnabledMsg{Enabled: true})
	_, cmd = update(t, m, ComposerFocusMsg{})
	require.NotNil(t, cmd)
}

func TestChat_CopyLastAnswer(t *testing.T) {
	f := newFixture()
	f.conv.last = "Sow in November."
	m := start(t, f.model())
	m, _ = update(t, m, ScreenMsg{Screen: ScreenChat})

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	msg := cmd()
	require.Equal(t, NotifyMsg{Message: DefaultCopied, Severity: notify.Success}, msg)
	require.Equal(t, []string{"Sow in November."}, f.copied)
}

func TestChat_LogoutKey(t *testing.T) {
	f := newFixture()
	m := start(t, f.model())
	m, _ = update(t, m, ScreenMsg{Screen: ScreenChat})

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	require.NotNil(t, cmd)
	cmd()
	require.Equal(t, []string{"logout"}, f.session.calls)

	m, _ = update(t, m, BusyMsg{Control: session.ControlLogout, Busy: true})
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	require.Nil(t, cmd)
}

// =============================================================================
// LOCALIZATION AND NOTIFICATIONS
// =============================================================================

func TestElements_LocalizedTextRendered(t *testing.T) {
	f := newFixture()
	m := start(t, f.model())

	m, _ = update(t, m, ElementTextMsg{ID: components.ElementLoginTitle, Text: "लॉग इन करें"})
	m, _ = update(t, m, ElementPlaceholderMsg{ID: locale.ElementQuestionInput, Text: "अपना प्रश्न लिखें"})
	require.Contains(t, m.View(), "लॉग इन करें")
	require.Equal(t, "अपना प्रश्न लिखें", m.composer.Placeholder)
}

func TestNotify_ShowsAndDismisses(t *testing.T) {
	f := newFixture()
	m := start(t, f.model())

	m, cmd := update(t, m, NotifyMsg{Message: "You are offline", Severity: notify.Warning})
	require.NotNil(t, cmd)
	require.Contains(t, m.View(), "You are offline")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotContains(t, m.View(), "You are offline")
}

func TestPanic_RecoveredAsToast(t *testing.T) {
	f := newFixture()
	f.locale.strings = map[string]string{locale.KeyUnexpectedError: "कुछ गलत हो गया"}
	m := start(t, f.model())

	cmd := guard(m.log, "boom", func() tea.Msg { panic("boom") })
	msg := cmd()
	require.IsType(t, panicMsg{}, msg)

	m, _ = update(t, m, msg)
	cur, ok := m.toasts.Current()
	require.True(t, ok)
	require.Equal(t, "कुछ गलत हो गया", cur.Message)
	require.Equal(t, notify.Error, cur.Severity)
}

func TestTaskError_IsNotFatal(t *testing.T) {
	f := newFixture()
	f.conv.err = errors.New("unreachable")
	m := start(t, f.model())
	m, _ = update(t, m, ScreenMsg{Screen: ScreenChat})
	m.composer.SetValue("q")
	m, cmd := update(t, m, enter())
	done := cmd()
	require.Equal(t, "ask", done.(taskDoneMsg).name)
	_, cmd = update(t, m, done)
	require.Nil(t, cmd)
}

func TestStatusTick_RefreshesBar(t *testing.T) {
	f := newFixture()
	m := start(t, f.model())
	m, cmd := update(t, m, statusTickMsg{})
	require.NotNil(t, cmd)
	require.Equal(t, connectivity.StatusOnline, m.statusBar.Status)
	require.Equal(t, "asha", m.statusBar.Username)
}

// =============================================================================
// BRIDGE
// =============================================================================

func TestBridge_TranslatesCallsToMessages(t *testing.T) {
	b := NewBridge()
	// Nothing is attached yet: calls are dropped.
	b.ShowChat()

	rec := &recordingSender{}
	b.Attach(rec)

	msg := model.Message{ID: "1", Sender: model.SenderUser, Text: "hi"}
	b.SetBusy(session.ControlLogin, true)
	b.ShowLogin()
	b.ShowSignup()
	b.ShowChat()
	b.AppendMessage(msg)
	b.UpdateMessage(msg)
	b.ClearMessages()
	b.SetComposerEnabled(false)
	b.ResetComposer()
	b.FocusComposer()
	b.SetElementText("login-title", "x")
	b.SetElementPlaceholder("question-input", "y")
	b.DismissLanguagePicker()
	b.Notify("saved", notify.Success)

	require.Equal(t, []tea.Msg{
		BusyMsg{Control: session.ControlLogin, Busy: true},
		ScreenMsg{Screen: ScreenLogin},
		ScreenMsg{Screen: ScreenSignup},
		ScreenMsg{Screen: ScreenChat},
		AppendMessageMsg{Message: msg},
		UpdateMessageMsg{Message: msg},
		ClearMessagesMsg{},
		ComposerEnabledMsg{Enabled: false},
		ComposerResetMsg{},
		ComposerFocusMsg{},
		ElementTextMsg{ID: "login-title", Text: "x"},
		ElementPlaceholderMsg{ID: "question-input", Text: "y"},
		PickerDismissedMsg{},
		NotifyMsg{Message: "saved", Severity: notify.Success},
	}, rec.msgs)

	require.Equal(t, components.TaggedElements(), b.TaggedElements())
}

func TestScreen_String(t *testing.T) {
	require.Equal(t, "login", ScreenLogin.String())
	require.Equal(t, "signup", ScreenSignup.String())
	require.Equal(t, "chat", ScreenChat.String())
	require.Equal(t, "unknown", Screen(42).String())
}
