// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package connectivity watches whether the backend is reachable and
// validates service URLs.
package connectivity

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/locale"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/logging"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/notify"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrInvalidURL is returned when a service URL cannot be parsed.
	ErrInvalidURL = errors.New("invalid service URL")

	// ErrInvalidURLScheme is returned when a URL scheme is not http or https.
	ErrInvalidURLScheme = errors.New("only http and https schemes are allowed")

	// ErrMissingHost is returned when a URL has no host.
	ErrMissingHost = errors.New("service URL has no host")
)

// =============================================================================
// URL VALIDATION
// =============================================================================

// ValidateServiceURL checks that raw is an absolute http or https URL.
// file://, data: and other schemes are rejected.
func ValidateServiceURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return ErrInvalidURLScheme
	}
	if parsed.Host == "" {
		return ErrMissingHost
	}
	return nil
}

// =============================================================================
// MONITOR
// =============================================================================

// Default notification texts.
const (
	DefaultOffline    = "You are offline"
	DefaultBackOnline = "Back online"
)

// Status is the last observed reachability.
type Status int

const (
	StatusUnknown Status = iota
	StatusOnline
	StatusOffline
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusOnline:
		return "online"
	case StatusOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// Prober checks one service. *backend.Client satisfies it.
type Prober interface {
	Health(ctx context.Context) error
}

// Strings resolves localized text.
type Strings interface {
	T(key, fallback string) string
}

type englishOnly struct{}

func (englishOnly) T(_, fallback string) string { return fallback }

// Monitor probes a service periodically and notifies on transitions.
// In-flight requests are never retried.
type Monitor struct {
	probe    Prober
	interval time.Duration
	notifier notify.Notifier
	strings  Strings
	log      *zap.Logger

	mu     sync.Mutex
	status Status
}

// NewMonitor creates a monitor. strings, notifier and log may be nil.
func NewMonitor(probe Prober, interval time.Duration, notifier notify.Notifier, strings Strings, log *zap.Logger) *Monitor {
	if notifier == nil {
		notifier = notify.Discard
	}
	if strings == nil {
		strings = englishOnly{}
	}
	return &Monitor{
		probe:    probe,
		interval: interval,
		notifier: notifier,
		strings:  strings,
		log:      logging.OrNop(log).Named("connectivity"),
	}
}

// Status returns the last observed status.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Check probes once and records the result. Going offline shows a warning,
// coming back shows an info notification. A healthy first probe is silent.
func (m *Monitor) Check(ctx context.Context) Status {
	next := StatusOnline
	if err := m.probe.Health(ctx); err != nil {
		if ctx.Err() != nil {
			return m.Status()
		}
		m.log.Debug("health probe failed", zap.Error(err))
		next = StatusOffline
	}

	m.mu.Lock()
	prev := m.status
	m.status = next
	m.mu.Unlock()

	if prev == next {
		return next
	}
	m.log.Info("connectivity changed", zap.Stringer("from", prev), zap.Stringer("to", next))
	switch {
	case next == StatusOffline:
		m.notifier.Notify(m.strings.T(locale.KeyOffline, DefaultOffline), notify.Warning)
	case prev == StatusOffline:
		m.notifier.Notify(m.strings.T(locale.KeyBackOnline, DefaultBackOnline), notify.Info)
	}
	return next
}

// Run checks immediately and then on every interval until ctx is done.
// A non-positive interval disables monitoring.
func (m *Monitor) Run(ctx context.Context) error {
	if m.interval <= 0 {
		return nil
	}
	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
