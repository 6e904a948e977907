// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/backend"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/config"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/connectivity"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/conversation"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/locale"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/logging"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/model"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/notify"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/session"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/storage"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/translate"
)

// =============================================================================
// APPLICATION WIRING
// =============================================================================

// app holds the services shared by every front end.
type app struct {
	cfg        *config.Config
	log        *zap.Logger
	prefs      storage.PrefStore
	state      *model.State
	backend    *backend.Client
	translator *translate.Client
	locales    *locale.Store
}

// frontEnd is a view the controllers can drive.
type frontEnd interface {
	session.View
	conversation.View
	notify.Notifier
}

// newApp builds the services. notifier receives locale warnings.
func newApp(cfg *config.Config, notifier notify.Notifier) (*app, error) {
	logPath, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	log, err := logging.Init(cfg.Logging.Level, cfg.Logging.Format, logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (logging disabled)\n", err)
		log = logging.Replace(zap.NewNop())
	}

	prefsPath, err := cfg.PrefsPath()
	if err != nil {
		return nil, err
	}
	prefs, err := storage.Open(prefsPath)
	if err != nil {
		// Open already fell back to memory; preferences will not survive a restart.
		log.Warn("preferences not persisted", zap.String("path", prefsPath), zap.Error(err))
	}

	state := model.NewState()
	a := &app{
		cfg:     cfg,
		log:     log,
		prefs:   prefs,
		state:   state,
		backend: backend.NewClient(cfg.Backend.URL, cfg.BackendTimeout()),
		translator: translate.NewClient(cfg.Translation.URL, translate.Options{
			Timeout:              cfg.TranslationTimeout(),
			MaxRequestsPerMinute: cfg.Translation.MaxRequestsPerMinute,
		}),
	}
	a.locales = locale.NewStore(a.localeSource(), prefs, state, notifier, log)

	log.Info("client started",
		zap.String("version", Version),
		zap.String("backend", cfg.Backend.URL),
		zap.String("translation", cfg.Translation.URL))
	return a, nil
}

// localeSource reads bundles from the configured directory, or over HTTP.
func (a *app) localeSource() locale.Source {
	if a.cfg.Locale.Dir != "" {
		return &locale.DirSource{Dir: a.cfg.Locale.Dir}
	}
	return locale.NewHTTPSource(a.cfg.Locale.URL, a.cfg.BackendTimeout())
}

// controllers builds the session and conversation controllers on view.
func (a *app) controllers(view frontEnd) (*session.Controller, *conversation.Controller) {
	conv := conversation.NewController(a.backend, a.translator, a.state, view, a.locales, a.log)
	sess := session.NewController(a.backend, a.state, a.prefs, view, session.Options{
		Strings:  a.locales,
		Notifier: view,
		Logger:   a.log,
		Messages: conv,
	})
	return sess, conv
}

// monitor builds the backend connectivity monitor.
func (a *app) monitor(notifier notify.Notifier) *connectivity.Monitor {
	return connectivity.NewMonitor(a.backend, a.cfg.HealthInterval(), notifier, a.locales, a.log)
}

// languages describes the configured languages.
func (a *app) languages() []locale.Language {
	return locale.DescribeAll(a.cfg.Locale.Languages)
}

// preselect is the language highlighted before the user has chosen one.
func (a *app) preselect() string {
	if a.cfg.Locale.Default != "" {
		return a.cfg.Locale.Default
	}
	return locale.Detect(a.cfg.Locale.Languages)
}

func (a *app) close() {
	a.log.Info("client stopped", zap.Int("cached_translations", a.translator.CacheLen()))
	if err := a.prefs.Close(); err != nil {
		a.log.Warn("failed to close preferences", zap.Error(err))
	}
	logging.Sync()
}
