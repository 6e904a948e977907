// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package locale loads UI string bundles and applies them to bound views.
//
// One bundle is active at a time. A failed load falls back to English,
// persists English as the selection and warns the user; if English fails
// too, bound elements keep their built-in defaults and the failure is only
// logged.
package locale

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/logging"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/model"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/notify"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/storage"
)

// =============================================================================
// VIEW BINDING
// =============================================================================

// ElementKind says how a bundle string is applied to an element.
type ElementKind int

const (
	// KindText replaces the element's visible text.
	KindText ElementKind = iota
	// KindPlaceholder replaces an input's placeholder.
	KindPlaceholder
)

// Element is a view element tagged with a bundle key.
type Element struct {
	ID   string
	Key  string
	Kind ElementKind
}

// Binder is the view surface the store writes localized strings to.
type Binder interface {
	// TaggedElements lists the elements the view wants localized.
	TaggedElements() []Element
	SetElementText(id, text string)
	SetElementPlaceholder(id, text string)
	// DismissLanguagePicker hides the picker and reveals the application.
	DismissLanguagePicker()
}

// =============================================================================
// STORE
// =============================================================================

// Store owns the active bundle. It is safe for concurrent use.
type Store struct {
	source   Source
	prefs    storage.PrefStore
	state    *model.State
	notifier notify.Notifier
	log      *zap.Logger

	mu     sync.RWMutex
	bundle Bundle
	binder Binder
}

// NewStore creates a store with an empty active bundle.
func NewStore(source Source, prefs storage.PrefStore, state *model.State, notifier notify.Notifier, log *zap.Logger) *Store {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Store{
		source:   source,
		prefs:    prefs,
		state:    state,
		notifier: notifier,
		log:      logging.OrNop(log).Named("locale"),
		bundle:   Bundle{},
	}
}

// SetBinder attaches the view. Bundles loaded earlier are applied now.
func (s *Store) SetBinder(b Binder) {
	s.mu.Lock()
	s.binder = b
	bundle := s.bundle
	s.mu.Unlock()
	if b != nil {
		apply(b, bundle)
	}
}

// T looks key up in the active bundle, returning fallback when absent.
func (s *Store) T(key, fallback string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.bundle[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Language returns the active language code.
func (s *Store) Language() string {
	return s.state.Language()
}

// Load fetches the bundle for code and makes it active. On failure it falls
// back to English and returns the original error.
func (s *Store) Load(ctx context.Context, code string) error {
	bundle, err := s.fetch(ctx, code)
	if err == nil {
		s.activate(code, bundle)
		return nil
	}

	if code == Fallback {
		s.log.Error("failed to load fallback locale", zap.Error(err))
		return err
	}

	s.log.Warn("failed to load locale, falling back to English",
		zap.String("lang", code), zap.Error(err))
	s.state.SetLanguage(Fallback)
	if perr := s.prefs.Set(storage.KeySelectedLanguage, Fallback); perr != nil {
		s.log.Warn("failed to persist fallback language", zap.Error(perr))
	}
	s.notifier.Notify(
		fmt.Sprintf("Could not load %s. Showing English instead.", Describe(code).English),
		notify.Warning,
	)

	fallback, ferr := s.fetch(ctx, Fallback)
	if ferr != nil {
		s.log.Error("failed to load fallback locale", zap.Error(ferr))
		s.mu.Lock()
		s.bundle = Bundle{}
		s.mu.Unlock()
		return err
	}
	s.activate(Fallback, fallback)
	return err
}

// Reload fetches the active language again.
func (s *Store) Reload(ctx context.Context) error {
	return s.Load(ctx, s.state.Language())
}

// Select makes code the user's language: it persists the choice, loads the
// bundle and dismisses the language picker.
func (s *Store) Select(ctx context.Context, code string) error {
	s.state.SetLanguage(code)
	if err := s.prefs.Set(storage.KeySelectedLanguage, code); err != nil {
		s.log.Warn("failed to persist language", zap.String("lang", code), zap.Error(err))
	}
	err := s.Load(ctx, code)

	s.mu.RLock()
	b := s.binder
	s.mu.RUnlock()
	if b != nil {
		b.DismissLanguagePicker()
	}
	return err
}

// NeedsSelection reports whether no language was ever chosen. The language
// picker is shown on first run exactly when this is true.
func (s *Store) NeedsSelection() bool {
	code, ok, err := s.prefs.Get(storage.KeySelectedLanguage)
	if err != nil {
		s.log.Warn("failed to read selected language", zap.Error(err))
		return true
	}
	return !ok || code == ""
}

// Restore loads the persisted language. It does nothing when no language
// has been chosen yet.
func (s *Store) Restore(ctx context.Context) error {
	code, ok, err := s.prefs.Get(storage.KeySelectedLanguage)
	if err != nil {
		return fmt.Errorf("failed to read selected language: %w", err)
	}
	if !ok || code == "" {
		return nil
	}
	s.state.SetLanguage(code)
	return s.Load(ctx, code)
}

func (s *Store) fetch(ctx context.Context, code string) (Bundle, error) {
	if err := ValidateCode(code); err != nil {
		return nil, err
	}
	return s.source.Fetch(ctx, code)
}

func (s *Store) activate(code string, bundle Bundle) {
	s.mu.Lock()
	s.bundle = bundle
	b := s.binder
	s.mu.Unlock()

	s.state.SetLanguage(code)
	s.log.Debug("locale loaded", zap.String("lang", code), zap.Int("keys", len(bundle)))
	if b != nil {
		apply(b, bundle)
	}
}

// apply pushes bundle strings to the tagged elements, then to the fixed
// elements every view has.
func apply(b Binder, bundle Bundle) {
	set := func(e Element) {
		v, ok := bundle[e.Key]
		if !ok || v == "" {
			return
		}
		switch e.Kind {
		case KindPlaceholder:
			b.SetElementPlaceholder(e.ID, v)
		default:
			b.SetElementText(e.ID, v)
		}
	}
	for _, e := range b.TaggedElements() {
		set(e)
	}
	for _, e := range fixedElements {
		set(e)
	}
}
