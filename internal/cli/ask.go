// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/locale"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/components"
)

// PasswordEnv supplies the password for non-interactive use of ask.
const PasswordEnv = "QUERYFARMER_PASSWORD"

type askOptions struct {
	lang string
	user string
}

func newAskCmd(opts *globalOptions) *cobra.Command {
	ask := &askOptions{}
	cmd := &cobra.Command{
		Use:   "ask [flags] QUESTION...",
		Short: "Ask one question and print the answer",
		Long: `Log in, ask one question and print the answer.

The password is read from $QUERYFARMER_PASSWORD, or prompted for on the
terminal. Progress and notifications go to stderr, the answer to stdout.`,
		Example: `  queryfarmer ask --user asha "When should I sow wheat?"
  QUERYFARMER_PASSWORD=secret queryfarmer ask --lang hi "गेहूं कब बोएं?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, opts, ask, strings.Join(args, " "))
		},
	}
	cmd.Flags().StringVarP(&ask.lang, "lang", "l", "", "language code for the question and answer (default: saved language)")
	cmd.Flags().StringVarP(&ask.user, "user", "u", "", "username (default: last signed-in user)")
	return cmd
}

func runAsk(cmd *cobra.Command, opts *globalOptions, ask *askOptions, question string) error {
	if strings.TrimSpace(question) == "" {
		return errors.New("question is empty")
	}
	if ask.lang != "" {
		if err := locale.ValidateCode(ask.lang); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	md := components.NewMarkdown(markdownStyle(out), cfg.UI.RenderMarkdown && isTerminalWriter(out))
	view := newTextView(out, errOut, md, GetTerminalWidth()-4)

	a, err := newApp(cfg, view)
	if err != nil {
		return err
	}
	defer a.close()
	ctx := cmd.Context()

	a.locales.SetBinder(view)
	if ask.lang != "" {
		// One-shot language: used for this question only, not persisted.
		a.state.SetLanguage(ask.lang)
		if err := a.locales.Load(ctx, ask.lang); err != nil {
			a.log.Warn("language load failed", zap.String("lang", ask.lang), zap.Error(err))
		}
	} else if err := a.locales.Restore(ctx); err != nil {
		a.log.Warn("failed to restore language", zap.Error(err))
	}

	sess, conv := a.controllers(view)

	username := ask.user
	if username == "" {
		username, _ = sess.PreviousUser()
	}
	if username == "" {
		return errors.New("no username: pass --user")
	}

	password := os.Getenv(PasswordEnv)
	if password == "" {
		password, err = ReadPassword(errOut, "Password: ")
		if err != nil {
			return err
		}
	}

	// Login and ask failures are already reported by the view.
	if err := sess.Login(ctx, username, password); err != nil {
		return &exitError{code: 1}
	}
	if err := conv.Ask(ctx, question); err != nil {
		return &exitError{code: 1}
	}
	return nil
}
