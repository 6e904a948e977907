// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/backend"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/locale"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/logging"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/model"
)

// Fixed texts. Thinking, Translating and TranslationUnavailable are
// overridden by the active bundle; the others never are.
const (
	DefaultThinking               = "Thinking... 🤔"
	DefaultTranslating            = "Translating..."
	DefaultTranslationUnavailable = "Translation unavailable. Showing the English answer:"

	ConnectionErrorText = "Sorry, I couldn't reach the server. Please try again."
	NoAnswerText        = "No answer received."
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// View is the part of the UI the ask flow drives.
type View interface {
	AppendMessage(msg model.Message)
	// UpdateMessage replaces the text of an already appended message.
	UpdateMessage(msg model.Message)
	ClearMessages()
	SetComposerEnabled(enabled bool)
	ResetComposer()
	FocusComposer()
}

// Asker sends a question to the backend.
type Asker interface {
	Ask(ctx context.Context, token, question string) (*backend.AskResponse, error)
}

// Translator translates text between language codes.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Strings resolves localized text.
type Strings interface {
	T(key, fallback string) string
}

type englishOnly struct{}

func (englishOnly) T(_, fallback string) string { return fallback }

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller runs the ask flow and owns the message log.
type Controller struct {
	asker      Asker
	translator Translator
	state      *model.State
	view       View
	strings    Strings
	log        *zap.Logger
	conv       *model.Conversation
}

// NewController creates a conversation controller. strings and log may be
// nil.
func NewController(asker Asker, translator Translator, state *model.State, view View, strings Strings, log *zap.Logger) *Controller {
	if strings == nil {
		strings = englishOnly{}
	}
	return &Controller{
		asker:      asker,
		translator: translator,
		state:      state,
		view:       view,
		strings:    strings,
		log:        logging.OrNop(log).Named("conversation"),
		conv:       model.NewConversation(),
	}
}

// Ask runs one question through translate-in, the backend and
// translate-out, resolving its placeholder in place. A blank question does
// nothing. Every failure is rendered into the conversation; the returned
// error is for callers that want to log or exit on it.
func (c *Controller) Ask(ctx context.Context, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil
	}

	c.view.AppendMessage(c.conv.AddUserMessage(question))
	placeholder := c.conv.AddPlaceholder(c.strings.T(locale.KeyThinking, DefaultThinking))
	c.view.AppendMessage(placeholder)

	c.view.ResetComposer()
	c.view.SetComposerEnabled(false)
	defer func() {
		c.view.SetComposerEnabled(true)
		c.view.FocusComposer()
	}()

	lang := c.state.Language()
	translating := lang != model.NativeLanguage

	outbound := question
	if translating {
		c.setPlaceholder(placeholder.ID, c.strings.T(locale.KeyTranslating, DefaultTranslating))
		translated, err := c.translator.Translate(ctx, question, lang, model.NativeLanguage)
		if err != nil {
			c.log.Warn("question translation failed, sending original",
				zap.String("lang", lang), zap.Error(err))
		} else {
			outbound = translated
		}
	}

	resp, err := c.asker.Ask(ctx, c.state.Token(), outbound)
	if err != nil {
		c.log.Error("ask failed", zap.Error(err))
		c.resolve(placeholder.ID, ConnectionErrorText)
		return err
	}

	answer := resp.Answer
	if answer == "" {
		answer = NoAnswerText
	}

	if translating {
		translated, err := c.translator.Translate(ctx, answer, model.NativeLanguage, lang)
		if err != nil {
			c.log.Warn("answer translation failed, showing English",
				zap.String("lang", lang), zap.Error(err))
			answer = c.strings.T(locale.KeyTranslationUnavailable, DefaultTranslationUnavailable) + "\n\n" + answer
		} else {
			answer = translated
		}
	}

	c.resolve(placeholder.ID, answer)
	return nil
}

// Reset clears the message log back to the welcome state.
func (c *Controller) Reset() {
	c.conv.Clear()
	c.view.ClearMessages()
}

// Messages returns a snapshot of the log.
func (c *Controller) Messages() []model.Message {
	return c.conv.Messages()
}

// LastAnswer returns the text of the most recent resolved bot message.
func (c *Controller) LastAnswer() (string, bool) {
	msg, ok := c.conv.LastResolvedBot()
	if !ok {
		return "", false
	}
	return msg.Text, true
}

func (c *Controller) setPlaceholder(id, text string) {
	if msg, ok := c.conv.SetPlaceholderText(id, text); ok {
		c.view.UpdateMessage(msg)
	}
}

// resolve finalizes a placeholder. Placeholders dropped by Reset stay
// dropped.
func (c *Controller) resolve(id, text string) {
	msg, ok := c.conv.Resolve(id, text)
	if !ok {
		c.log.Debug("placeholder gone before reply", zap.String("id", id))
		return
	}
	c.view.UpdateMessage(msg)
}
