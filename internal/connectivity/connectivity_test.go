// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package connectivity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/backend"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/fakeservice"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/notify"
)

// =============================================================================
// URL VALIDATION TESTS
// =============================================================================

func TestValidateServiceURL(t *testing.T) {
	tests := []struct {
		raw  string
		want error
	}{
		{"http://127.0.0.1:8000", nil},
		{"https://api.example.com/base", nil},
		{"HTTP://LOCALHOST", nil},
		{"file:///etc/passwd", ErrInvalidURLScheme},
		{"javascript:alert(1)", ErrInvalidURLScheme},
		{"data:text/plain,hi", ErrInvalidURLScheme},
		{"127.0.0.1:8000", ErrInvalidURL},
		{"http://", ErrMissingHost},
		{"", ErrInvalidURLScheme},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			err := ValidateServiceURL(tt.raw)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

// =============================================================================
// MONITOR TESTS
// =============================================================================

type notice struct {
	msg      string
	severity notify.Severity
}

type recorder struct {
	mu   sync.Mutex
	seen []notice
}

func (r *recorder) Notify(msg string, severity notify.Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, notice{msg, severity})
}

func (r *recorder) All() []notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notice(nil), r.seen...)
}

func TestMonitor_Transitions(t *testing.T) {
	rec := &fakeservice.Recorder{}
	srv := fakeservice.NewBackend(rec)
	t.Cleanup(srv.Close)
	notes := &recorder{}
	m := NewMonitor(backend.NewClient(srv.URL, time.Second), time.Minute, notes, nil, nil)
	ctx := context.Background()

	require.Equal(t, StatusUnknown, m.Status())
	require.Equal(t, StatusOnline, m.Check(ctx))
	require.Empty(t, notes.All(), "healthy start is silent")

	srv.SetHealthy(false)
	require.Equal(t, StatusOffline, m.Check(ctx))
	require.Equal(t, StatusOffline, m.Check(ctx))

	srv.SetHealthy(true)
	require.Equal(t, StatusOnline, m.Check(ctx))

	require.Equal(t, []notice{
		{DefaultOffline, notify.Warning},
		{DefaultBackOnline, notify.Info},
	}, notes.All())
	require.Equal(t, 4, rec.Count("backend:/health"))
}

func TestMonitor_StartingOfflineWarns(t *testing.T) {
	rec := &fakeservice.Recorder{}
	srv := fakeservice.NewBackend(rec)
	srv.Close()
	notes := &recorder{}
	m := NewMonitor(backend.NewClient(srv.URL, time.Second), time.Minute, notes, nil, nil)

	require.Equal(t, StatusOffline, m.Check(context.Background()))
	require.Equal(t, []notice{{DefaultOffline, notify.Warning}}, notes.All())
}

type stringsMap map[string]string

func (s stringsMap) T(key, fallback string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return fallback
}

func TestMonitor_LocalizedText(t *testing.T) {
	rec := &fakeservice.Recorder{}
	srv := fakeservice.NewBackend(rec)
	t.Cleanup(srv.Close)
	srv.SetHealthy(false)
	notes := &recorder{}
	m := NewMonitor(backend.NewClient(srv.URL, time.Second), time.Minute, notes, stringsMap{"offline": "आप ऑफ़लाइन हैं"}, nil)

	m.Check(context.Background())
	require.Equal(t, "आप ऑफ़लाइन हैं", notes.All()[0].msg)
}

func TestMonitor_RunStopsOnCancel(t *testing.T) {
	rec := &fakeservice.Recorder{}
	srv := fakeservice.NewBackend(rec)
	t.Cleanup(srv.Close)
	m := NewMonitor(backend.NewClient(srv.URL, time.Second), 10*time.Millisecond, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.Eventually(t, func() bool { return rec.Count("backend:/health") >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestMonitor_ZeroIntervalDisabled(t *testing.T) {
	m := NewMonitor(nil, 0, nil, nil, nil)
	require.NoError(t, m.Run(context.Background()))
	require.Equal(t, StatusUnknown, m.Status())
}
