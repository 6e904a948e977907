// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/connectivity"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/locale"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/logging"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/notify"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/components"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/styles"
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// SessionFlows is the session controller surface used by the model.
type SessionFlows interface {
	Login(ctx context.Context, username, password string) error
	Signup(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	PreviousUser() (string, bool)
}

// ConversationFlows is the conversation controller surface used by the model.
type ConversationFlows interface {
	Ask(ctx context.Context, question string) error
	LastAnswer() (string, bool)
}

// Localizer is the locale store surface used by the model.
type Localizer interface {
	SetBinder(b locale.Binder)
	NeedsSelection() bool
	Restore(ctx context.Context) error
	Select(ctx context.Context, code string) error
	Language() string
	T(key, fallback string) string
}

// StatusSource reports backend connectivity.
type StatusSource interface {
	Status() connectivity.Status
}

// UserSource reports the signed-in username.
type UserSource interface {
	Username() string
}

// Deps wires the model to its controllers.
type Deps struct {
	// Context bounds every background flow.
	Context      context.Context
	Session      SessionFlows
	Conversation ConversationFlows
	Locale       Localizer
	// Binder receives localized text; normally the program's Bridge.
	Binder    locale.Binder
	Status    StatusSource
	User      UserSource
	Languages []locale.Language
	// Preselect is highlighted in the first-run picker.
	Preselect string
	Theme     *styles.Theme
	Markdown  *components.Markdown
	Logger    *zap.Logger
	// CopyText writes to the clipboard. Defaults to the system clipboard.
	CopyText func(text string) error
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the root Bubble Tea model: language picker, login and signup
// forms, and the chat screen.
type Model struct {
	ctx  context.Context
	deps Deps
	log  *zap.Logger

	theme  *styles.Theme
	keys   KeyMap
	width  int
	height int

	screen Screen
	ready  bool

	labels *components.Labels

	// Language picker
	picker     components.LanguagePicker
	pickerOpen bool

	// Auth forms
	login        components.AuthForm
	signup       components.AuthForm
	previousUser string

	// Chat screen
	list            *components.MessageList
	viewport        viewport.Model
	composer        textinput.Model
	composerEnabled bool
	logoutBusy      bool

	spinner components.Spinner
	// pending counts placeholders holding the spinner.
	pending int

	toasts    *notify.Center
	statusBar *components.StatusBar
}

// New creates the root model.
func New(deps Deps) Model {
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	if deps.Theme == nil {
		deps.Theme = styles.NewTheme("auto")
	}
	if deps.CopyText == nil {
		deps.CopyText = clipboard.WriteAll
	}
	labels := &components.Labels{}

	composer := textinput.New()
	composer.Prompt = "> "
	composer.CharLimit = 2000
	composer.Placeholder = labels.Placeholder(locale.ElementQuestionInput)

	lang := locale.Fallback
	if deps.Locale != nil {
		lang = deps.Locale.Language()
	}

	statusBar := components.NewStatusBar(deps.Theme)
	statusBar.Language = lang
	statusBar.Shortcuts = components.FormShortcuts()

	return Model{
		ctx:             deps.Context,
		deps:            deps,
		log:             logging.OrNop(deps.Logger).Named("tui"),
		theme:           deps.Theme,
		keys:            DefaultKeyMap(),
		width:           80,
		height:          24,
		screen:          ScreenLogin,
		labels:          labels,
		picker:          components.NewLanguagePicker(deps.Theme, deps.Languages, lang),
		login:           components.NewAuthForm(deps.Theme, components.FormLogin),
		signup:          components.NewAuthForm(deps.Theme, components.FormSignup),
		list:            components.NewMessageList(deps.Theme, deps.Markdown),
		viewport:        viewport.New(80, 18),
		composer:        composer,
		composerEnabled: true,
		spinner:         components.NewSpinner(),
		toasts:          notify.NewCenter(),
		statusBar:       statusBar,
	}
}

// Init binds the locale store, restores the saved language and decides
// whether the language picker is needed.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.startup(), statusTickCmd())
}

func (m Model) startup() tea.Cmd {
	deps := m.deps
	ctx := m.ctx
	log := m.log
	return guard(m.log, "startup", func() tea.Msg {
		var ready readyMsg
		if deps.Locale != nil {
			if deps.Binder != nil {
				deps.Locale.SetBinder(deps.Binder)
			}
			ready.needsLanguage = deps.Locale.NeedsSelection()
			if !ready.needsLanguage {
				if err := deps.Locale.Restore(ctx); err != nil {
					log.Warn("failed to restore language", zap.Error(err))
				}
			}
		}
		if deps.Session != nil {
			if name, ok := deps.Session.PreviousUser(); ok {
				ready.previousUser = name
			}
		}
		return ready
	})
}

// Screen returns the active screen.
func (m Model) Screen() Screen {
	return m.screen
}

// PickerOpen reports whether the language picker is shown.
func (m Model) PickerOpen() bool {
	return m.pickerOpen
}

// t resolves a bundle string.
func (m Model) t(key, fallback string) string {
	if m.deps.Locale == nil {
		return fallback
	}
	return m.deps.Locale.T(key, fallback)
}
