// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/chat"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/components"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/ui/styles"
)

// runTUI starts the full-screen interface.
func runTUI(cmd *cobra.Command, opts *globalOptions) error {
	if !IsTTY() || !IsStdoutTTY() {
		return &TTYRequiredError{Operation: "start the interface (use 'queryfarmer chat' or 'queryfarmer ask')"}
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	bridge := chat.NewBridge()
	a, err := newApp(cfg, bridge)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sess, conv := a.controllers(bridge)
	monitor := a.monitor(bridge)
	theme := styles.NewTheme(cfg.UI.Theme)

	m := chat.New(chat.Deps{
		Context:      ctx,
		Session:      sess,
		Conversation: conv,
		Locale:       a.locales,
		Binder:       bridge,
		Status:       monitor,
		User:         a.state,
		Languages:    a.languages(),
		Preselect:    a.preselect(),
		Theme:        theme,
		Markdown:     components.NewMarkdown(theme.MarkdownStyle(), cfg.UI.RenderMarkdown),
		Logger:       a.log,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	bridge.Attach(p)

	// Background work talks to the program only through the bridge.
	go func() {
		if err := monitor.Run(ctx); err != nil {
			a.log.Warn("connectivity monitor stopped", zap.Error(err))
		}
	}()
	if cfg.Locale.Dir != "" && cfg.Locale.Watch {
		go func() {
			if err := a.locales.Watch(ctx, cfg.Locale.Dir); err != nil {
				a.log.Warn("locale watcher stopped", zap.Error(err))
			}
		}()
	}

	_, err = p.Run()
	cancel()
	return err
}
