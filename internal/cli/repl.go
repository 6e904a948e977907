// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/config"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/conversation"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/locale"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/session"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/components"
)

// errQuit ends the REPL normally.
var errQuit = errors.New("quit")

// =============================================================================
// LINE INPUT
// =============================================================================

// lineReader is the prompt surface used by the REPL. *liner.State
// satisfies it.
type lineReader interface {
	Prompt(prompt string) (string, error)
	PasswordPrompt(prompt string) (string, error)
	AppendHistory(item string)
}

// historyLiner wraps liner with a history file in the config directory.
type historyLiner struct {
	*liner.State
	historyFile string
}

func newHistoryLiner() *historyLiner {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	h := &historyLiner{State: line, historyFile: filepath.Join(configDir, "chat_history")}
	if f, err := os.Open(h.historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	return h
}

// Close saves history with owner-only permissions and restores the terminal.
func (h *historyLiner) Close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(h.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			_, _ = h.WriteHistory(f)
			f.Close()
		}
	}
	h.State.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

func newChatCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start a line-mode chat session",
		Long: `Start a line-mode chat session without the full-screen interface.

Commands during chat:
  /lang [code]   show languages or switch language
  /logout        log out and return to the login prompt
  /signup        (at the username prompt) create an account
  /quit          exit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			md := components.NewMarkdown(markdownStyle(out), cfg.UI.RenderMarkdown)
			view := newTextView(out, out, md, GetTerminalWidth()-4)

			a, err := newApp(cfg, view)
			if err != nil {
				return err
			}
			defer a.close()

			line := newHistoryLiner()
			defer line.Close()

			r := newREPL(a, view, line, out)
			return r.run(cmd.Context())
		},
	}
}

// =============================================================================
// REPL
// =============================================================================

type repl struct {
	app     *app
	view    *textView
	line    lineReader
	out     io.Writer
	session *session.Controller
	conv    *conversation.Controller
}

func newREPL(a *app, view *textView, line lineReader, out io.Writer) *repl {
	sess, conv := a.controllers(view)
	return &repl{app: a, view: view, line: line, out: out, session: sess, conv: conv}
}

// run chooses a language, then alternates between signing in and chatting
// until the user quits.
func (r *repl) run(ctx context.Context) error {
	a := r.app
	a.locales.SetBinder(r.view)

	if a.locales.NeedsSelection() {
		if err := r.chooseLanguage(ctx, true); err != nil {
			return quitOK(err)
		}
	} else if err := a.locales.Restore(ctx); err != nil {
		a.log.Warn("failed to restore language", zap.Error(err))
	}

	fmt.Fprintln(r.out, r.view.Label(locale.ElementWelcomeTitle, "Welcome to QueryFarmer"))
	fmt.Fprintln(r.out, r.view.Label(locale.ElementWelcomeSubtitle, ""))
	fmt.Fprintln(r.out)

	for {
		if !r.session.Authenticated() {
			if err := r.authenticate(ctx); err != nil {
				return quitOK(err)
			}
		}
		if err := r.chat(ctx); err != nil {
			return quitOK(err)
		}
	}
}

// quitOK maps the normal ways of leaving to a nil error.
func quitOK(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// chooseLanguage prompts until a listed language is picked.
func (r *repl) chooseLanguage(ctx context.Context, firstRun bool) error {
	langs := r.app.languages()
	r.printLanguages(langs)

	def := r.app.state.Language()
	if firstRun {
		def = r.app.preselect()
	}
	for {
		input, err := r.line.Prompt(fmt.Sprintf("%s [%s]: ", r.view.Label(locale.ElementLanguageModalTitle, "Choose your language"), def))
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			input = def
		}
		code, ok := resolveLanguage(langs, input)
		if !ok {
			fmt.Fprintf(r.out, "Unknown language %q\n", input)
			continue
		}
		if err := r.app.locales.Select(ctx, code); err != nil {
			// The store already warned and fell back to English.
			r.app.log.Warn("language load failed", zap.String("lang", code), zap.Error(err))
		}
		return nil
	}
}

func (r *repl) printLanguages(langs []locale.Language) {
	for i, l := range langs {
		fmt.Fprintf(r.out, "  %d) %-4s %s (%s)\n", i+1, l.Code, l.Native, l.English)
	}
}

// resolveLanguage accepts a code or a 1-based list index.
func resolveLanguage(langs []locale.Language, input string) (string, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(langs) {
			return langs[n-1].Code, true
		}
		return "", false
	}
	for _, l := range langs {
		if strings.EqualFold(l.Code, input) {
			return l.Code, true
		}
	}
	return "", false
}

// authenticate prompts for credentials until login succeeds.
func (r *repl) authenticate(ctx context.Context) error {
	var created string
	for !r.session.Authenticated() {
		prev, _ := r.session.PreviousUser()
		if created != "" {
			prev = created
		}
		prompt := "Username: "
		if prev != "" {
			prompt = fmt.Sprintf("Username [%s]: ", prev)
		}
		username, err := r.line.Prompt(prompt)
		if err != nil {
			return err
		}
		username = strings.TrimSpace(username)

		switch username {
		case "/quit", "/exit":
			return errQuit
		case "/signup":
			name, err := r.signup(ctx)
			if err != nil {
				return err
			}
			if name != "" {
				created = name
			}
			continue
		case "":
			username = prev
		}

		password, err := r.line.PasswordPrompt("Password: ")
		if err != nil {
			return err
		}
		// Failures are reported through notifications.
		_ = r.session.Login(ctx, username, password)
	}
	return nil
}

// signup returns the new username, or "" when the account was not created.
func (r *repl) signup(ctx context.Context) (string, error) {
	username, err := r.line.Prompt("New username: ")
	if err != nil {
		return "", err
	}
	password, err := r.line.PasswordPrompt("New password: ")
	if err != nil {
		return "", err
	}
	username = strings.TrimSpace(username)
	if err := r.session.Signup(ctx, username, password); err != nil {
		return "", nil
	}
	return username, nil
}

// chat reads questions until logout (nil) or quit (errQuit).
func (r *repl) chat(ctx context.Context) error {
	hint := r.view.Label(locale.ElementQuestionInput, "Type your question...")
	fmt.Fprintln(r.out, hint)

	for {
		input, err := r.line.Prompt("> ")
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			fields := strings.Fields(input)
			switch fields[0] {
			case "/quit", "/exit", "/q":
				return errQuit
			case "/logout":
				if err := r.session.Logout(ctx); err != nil {
					r.app.log.Warn("logout failed", zap.Error(err))
				}
				return nil
			case "/lang":
				if len(fields) == 1 {
					if err := r.chooseLanguage(ctx, false); err != nil {
						return err
					}
					continue
				}
				code, ok := resolveLanguage(r.app.languages(), fields[1])
				if !ok {
					fmt.Fprintf(r.out, "Unknown language %q\n", fields[1])
					continue
				}
				_ = r.app.locales.Select(ctx, code)
				continue
			case "/help", "/h":
				fmt.Fprintln(r.out, "/lang [code]  /logout  /quit")
				continue
			}
			fmt.Fprintf(r.out, "Unknown command %s\n", fields[0])
			continue
		}

		// The answer, or the connection error text, is printed by the view.
		if err := r.conv.Ask(ctx, input); err != nil {
			r.app.log.Debug("ask failed", zap.Error(err))
		}
	}
}
