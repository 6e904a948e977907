// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual pieces of the queryfarmer TUI.

Components are plain values owned by the chat model. They never call the
backend or mutate shared state; the chat model feeds them data and routes
key messages to them.

# Components

  - Labels (elements.go): current localized text of every element, with
    built-in English defaults.
  - MessageList (message.go): the conversation log, with user and bot
    bubbles and an animated placeholder.
  - Markdown (markdown.go): glamour rendering of bot answers.
  - Spinner (spinner.go): shared animation for placeholders and busy buttons.
  - AuthForm (form.go): username and password entry for login and signup.
  - LanguagePicker (picker.go): the language modal.
  - StatusBar (statusbar.go): connectivity, user, language and key hints.
  - Toasts (toast.go): rendering and timing for the single notification slot.

# Usage

	theme := styles.NewTheme("auto")
	list := components.NewMessageList(theme, components.NewMarkdown(theme.MarkdownStyle(), true))
	list.Append(model.Message{ID: "1", Sender: model.SenderUser, Text: "hello"})
	view := list.View()
*/
package components
