// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/backend"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/fakeservice"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/model"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/notify"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/storage"
)

// =============================================================================
// TEST DOUBLES
// =============================================================================

type fakeView struct {
	mu     sync.Mutex
	events []string
}

func (v *fakeView) record(e string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, e)
}

func (v *fakeView) SetBusy(control Control, busy bool) {
	if busy {
		v.record("busy:" + string(control))
	} else {
		v.record("idle:" + string(control))
	}
}
func (v *fakeView) ShowLogin()  { v.record("show:login") }
func (v *fakeView) ShowSignup() { v.record("show:signup") }
func (v *fakeView) ShowChat()   { v.record("show:chat") }

func (v *fakeView) Events() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.events...)
}

type fakeLog struct{ resets int }

func (l *fakeLog) Reset() { l.resets++ }

type notice struct {
	msg      string
	severity notify.Severity
}

type notices struct {
	mu   sync.Mutex
	seen []notice
}

func (n *notices) Notify(msg string, severity notify.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seen = append(n.seen, notice{msg, severity})
}

func (n *notices) Last() notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.seen) == 0 {
		return notice{}
	}
	return n.seen[len(n.seen)-1]
}

func (n *notices) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.seen)
}

type bundle map[string]string

func (b bundle) T(key, fallback string) string {
	if v, ok := b[key]; ok {
		return v
	}
	return fallback
}

type fixture struct {
	ctrl    *Controller
	server  *fakeservice.Backend
	rec     *fakeservice.Recorder
	view    *fakeView
	log     *fakeLog
	notes   *notices
	state   *model.State
	prefs   *storage.MemoryStore
	strings bundle
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rec := &fakeservice.Recorder{}
	srv := fakeservice.NewBackend(rec)
	t.Cleanup(srv.Close)

	f := &fixture{
		server:  srv,
		rec:     rec,
		view:    &fakeView{},
		log:     &fakeLog{},
		notes:   &notices{},
		state:   model.NewState(),
		prefs:   storage.NewMemoryStore(),
		strings: bundle{},
	}
	f.ctrl = NewController(backend.NewClient(srv.URL, 0), f.state, f.prefs, f.view, Options{
		Strings:  f.strings,
		Notifier: f.notes,
		Messages: f.log,
	})
	return f
}

// =============================================================================
// LOGIN
// =============================================================================

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)
	f.server.AddUser("ravi", "secret1")

	require.NoError(t, f.ctrl.Login(context.Background(), "ravi", "secret1"))

	require.Equal(t, f.server.Token(), f.state.Token())
	require.Equal(t, "ravi", f.state.Username())
	require.True(t, f.ctrl.Authenticated())

	saved, ok, _ := f.prefs.Get(storage.KeyUsername)
	require.True(t, ok)
	require.Equal(t, "ravi", saved)
	// The token is never persisted.
	require.Equal(t, []string{storage.KeyUsername}, f.prefs.Keys())

	require.Equal(t, []string{"busy:login", "show:chat", "idle:login"}, f.view.Events())
	require.Equal(t, notice{DefaultLoginSuccess, notify.Success}, f.notes.Last())
}

func TestLogin_BlankFieldsMakeNoRequest(t *testing.T) {
	cases := []struct{ user, pass string }{
		{"", "secret1"},
		{"ravi", ""},
		{"   ", "\t"},
	}
	for _, tc := range cases {
		f := newFixture(t)
		err := f.ctrl.Login(context.Background(), tc.user, tc.pass)
		require.ErrorIs(t, err, ErrMissingFields)
		require.Equal(t, 0, f.rec.Count("backend:"))
		require.Equal(t, notice{DefaultFillAllFields, notify.Error}, f.notes.Last())
		require.Empty(t, f.view.Events())
	}
}

func TestLogin_ServerDetailIsShown(t *testing.T) {
	f := newFixture(t)

	err := f.ctrl.Login(context.Background(), "ravi", "wrong")
	require.Error(t, err)

	require.False(t, f.state.Authenticated())
	require.Equal(t, notice{"Invalid credentials.", notify.Error}, f.notes.Last())
	require.Equal(t, []string{"busy:login", "idle:login"}, f.view.Events())
	_, ok, _ := f.prefs.Get(storage.KeyUsername)
	require.False(t, ok)
}

func TestLogin_MissingTokenIsFailure(t *testing.T) {
	f := newFixture(t)
	f.server.AddUser("ravi", "secret1")
	f.server.OmitToken(true)

	err := f.ctrl.Login(context.Background(), "ravi", "secret1")
	require.True(t, errors.Is(err, backend.ErrNoToken))
	require.False(t, f.state.Authenticated())
	require.Equal(t, notice{DefaultLoginFailed, notify.Error}, f.notes.Last())
	require.NotContains(t, f.view.Events(), "show:chat")
}

func TestLogin_UnreachableUsesLocalizedGeneric(t *testing.T) {
	f := newFixture(t)
	f.strings["login_failed"] = "लॉगिन विफल"
	f.server.Close()

	require.Error(t, f.ctrl.Login(context.Background(), "ravi", "secret1"))
	require.Equal(t, notice{"लॉगिन विफल", notify.Error}, f.notes.Last())
	require.Equal(t, []string{"busy:login", "idle:login"}, f.view.Events())
}

// =============================================================================
// SIGNUP
// =============================================================================

func TestSignup_Success(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctrl.Signup(context.Background(), "asha", "secret1"))

	require.True(t, f.server.HasUser("asha"))
	require.False(t, f.state.Authenticated(), "signup must not log in")
	require.Equal(t, 0, f.rec.Count("backend:/login"))
	require.Equal(t, []string{"busy:signup", "show:login", "idle:signup"}, f.view.Events())
	require.Equal(t, notice{DefaultSignupSuccess, notify.Success}, f.notes.Last())
}

func TestSignup_LocalValidation(t *testing.T) {
	cases := []struct {
		name, user, pass string
		want             error
		msg              string
	}{
		{"blank user", "", "secret1", ErrMissingFields, DefaultFillAllFields},
		{"blank password", "asha", " ", ErrMissingFields, DefaultFillAllFields},
		{"short password", "asha", "12345", ErrPasswordTooShort, DefaultPasswordTooShort},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			err := f.ctrl.Signup(context.Background(), tc.user, tc.pass)
			require.ErrorIs(t, err, tc.want)
			require.Equal(t, 0, f.rec.Count("backend:"))
			require.Equal(t, notice{tc.msg, notify.Error}, f.notes.Last())
		})
	}
}

func TestSignup_SixCharactersIsEnough(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.Signup(context.Background(), "asha", "123456"))
	// Rune count, not bytes.
	require.ErrorIs(t, f.ctrl.Signup(context.Background(), "mira", "पासव"), ErrPasswordTooShort)
}

func TestSignup_DuplicateShowsDetail(t *testing.T) {
	f := newFixture(t)
	f.server.AddUser("asha", "secret1")

	require.Error(t, f.ctrl.Signup(context.Background(), "asha", "secret2"))
	require.Equal(t, notice{"Username already exists.", notify.Error}, f.notes.Last())
	require.Equal(t, []string{"busy:signup", "idle:signup"}, f.view.Events())
}

// =============================================================================
// LOGOUT
// =============================================================================

func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.server.AddUser("ravi", "secret1")
	require.NoError(t, f.ctrl.Login(context.Background(), "ravi", "secret1"))
	require.NoError(t, f.prefs.Set(storage.KeySelectedLanguage, "hi"))

	require.NoError(t, f.ctrl.Logout(context.Background()))

	require.False(t, f.state.Authenticated())
	require.Empty(t, f.state.Username())
	_, ok, _ := f.prefs.Get(storage.KeyUsername)
	require.False(t, ok)
	lang, _, _ := f.prefs.Get(storage.KeySelectedLanguage)
	require.Equal(t, "hi", lang, "language survives logout")
	require.Equal(t, 1, f.log.resets)

	events := f.view.Events()
	require.Equal(t, []string{"busy:logout", "show:login", "idle:logout"}, events[len(events)-3:])
	require.Equal(t, notice{DefaultLogoutSuccess, notify.Info}, f.notes.Last())
}

func TestLogout_CancelledContextStillSucceeds(t *testing.T) {
	f := newFixture(t)
	f.server.AddUser("ravi", "secret1")
	require.NoError(t, f.ctrl.Login(context.Background(), "ravi", "secret1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, f.ctrl.Logout(ctx))
	require.False(t, f.state.Authenticated())
	_, ok, _ := f.prefs.Get(storage.KeyUsername)
	require.False(t, ok)
}

func TestPreviousUser(t *testing.T) {
	f := newFixture(t)
	_, ok := f.ctrl.PreviousUser()
	require.False(t, ok)

	require.NoError(t, f.prefs.Set(storage.KeyUsername, "ravi"))
	name, ok := f.ctrl.PreviousUser()
	require.True(t, ok)
	require.Equal(t, "ravi", name)
}
