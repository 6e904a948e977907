// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package locale

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/fakeservice"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/model"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/notify"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/storage"
)

// fakeBinder records every call in order.
type fakeBinder struct {
	mu        sync.Mutex
	tagged    []Element
	calls     []string
	dismissed int
}

func (b *fakeBinder) TaggedElements() []Element { return b.tagged }

func (b *fakeBinder) SetElementText(id, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, "text:"+id+"="+text)
}

func (b *fakeBinder) SetElementPlaceholder(id, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, "placeholder:"+id+"="+text)
}

func (b *fakeBinder) DismissLanguagePicker() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dismissed++
}

func (b *fakeBinder) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

type notice struct {
	msg      string
	severity notify.Severity
}

type recordingNotifier struct {
	mu   sync.Mutex
	seen []notice
}

func (n *recordingNotifier) Notify(msg string, severity notify.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seen = append(n.seen, notice{msg, severity})
}

func (n *recordingNotifier) All() []notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notice(nil), n.seen...)
}

var testBundles = map[string]map[string]string{
	"en": {
		KeyWelcomeTitle:       "Welcome",
		KeyWelcomeSubtitle:    "Ask about your crops",
		KeyInputPlaceholder:   "Type your question",
		KeyLanguageModalTitle: "Choose a language",
		KeyLoginButton:        "Log in",
	},
	"hi": {
		KeyWelcomeTitle:     "स्वागत है",
		KeyInputPlaceholder: "अपना प्रश्न लिखें",
		KeyLoginButton:      "लॉग इन",
	},
}

type fixture struct {
	store    *Store
	state    *model.State
	prefs    *storage.MemoryStore
	notifier *recordingNotifier
	server   *fakeservice.Locales
	rec      *fakeservice.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rec := &fakeservice.Recorder{}
	srv := fakeservice.NewLocales(rec, testBundles)
	t.Cleanup(srv.Close)

	f := &fixture{
		state:    model.NewState(),
		prefs:    storage.NewMemoryStore(),
		notifier: &recordingNotifier{},
		server:   srv,
		rec:      rec,
	}
	f.store = NewStore(NewHTTPSource(srv.URL, 5*time.Second), f.prefs, f.state, f.notifier, nil)
	return f
}

func TestLoad_AppliesTaggedThenFixedElements(t *testing.T) {
	f := newFixture(t)
	binder := &fakeBinder{tagged: []Element{
		{ID: "login-button", Key: KeyLoginButton, Kind: KindText},
		{ID: "missing", Key: "no_such_key", Kind: KindText},
	}}
	f.store.SetBinder(binder)

	require.NoError(t, f.store.Load(context.Background(), "hi"))

	want := []string{
		"text:login-button=लॉग इन",
		"text:welcome-title=स्वागत है",
		"placeholder:question-input=अपना प्रश्न लिखें",
	}
	require.Equal(t, want, binder.Calls())
	require.Equal(t, "hi", f.state.Language())
	require.Empty(t, f.notifier.All())
}

func TestT_FallsBackWhenKeyMissing(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, "Thinking...", f.store.T(KeyThinking, "Thinking..."))

	require.NoError(t, f.store.Load(context.Background(), "en"))
	require.Equal(t, "Log in", f.store.T(KeyLoginButton, "x"))
	require.Equal(t, "fallback", f.store.T("absent", "fallback"))
}

func TestLoad_FailureFallsBackToEnglish(t *testing.T) {
	f := newFixture(t)
	binder := &fakeBinder{}
	f.store.SetBinder(binder)

	err := f.store.Load(context.Background(), "gu")
	require.Error(t, err)

	require.Equal(t, "en", f.state.Language())
	saved, ok, _ := f.prefs.Get(storage.KeySelectedLanguage)
	require.True(t, ok)
	require.Equal(t, "en", saved)
	require.Equal(t, "Welcome", f.store.T(KeyWelcomeTitle, ""))

	notices := f.notifier.All()
	require.Len(t, notices, 1)
	require.Equal(t, notify.Warning, notices[0].severity)
	require.Contains(t, notices[0].msg, "Gujarati")

	require.Equal(t, 1, f.rec.Count("locales:gu.json"))
	require.Equal(t, 1, f.rec.Count("locales:en.json"))
}

func TestLoad_EnglishFailureIsOnlyLogged(t *testing.T) {
	f := newFixture(t)
	f.server.SetBundle("en", nil)
	binder := &fakeBinder{}
	f.store.SetBinder(binder)

	err := f.store.Load(context.Background(), "en")
	require.Error(t, err)
	require.Empty(t, f.notifier.All())
	require.Empty(t, binder.Calls())
	require.Equal(t, "Welcome", f.store.T(KeyWelcomeTitle, "Welcome"))
}

func TestLoad_BothFailKeepsDefaults(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Load(context.Background(), "hi"))
	f.server.SetBundle("en", nil)

	err := f.store.Load(context.Background(), "mr")
	require.Error(t, err)
	require.Len(t, f.notifier.All(), 1)
	// The failed language's strings must not linger.
	require.Equal(t, "default", f.store.T(KeyWelcomeTitle, "default"))
}

func TestLoad_RejectsInvalidCodeWithoutFetching(t *testing.T) {
	f := newFixture(t)

	err := f.store.Load(context.Background(), "../etc/passwd")
	require.Error(t, err)
	require.Equal(t, 0, f.rec.Count("locales:../"))
	require.Equal(t, "en", f.state.Language())
}

func TestSelect_PersistsLoadsAndDismisses(t *testing.T) {
	f := newFixture(t)
	binder := &fakeBinder{}
	f.store.SetBinder(binder)
	require.True(t, f.store.NeedsSelection())

	require.NoError(t, f.store.Select(context.Background(), "hi"))

	require.False(t, f.store.NeedsSelection())
	saved, _, _ := f.prefs.Get(storage.KeySelectedLanguage)
	require.Equal(t, "hi", saved)
	require.Equal(t, "hi", f.store.Language())
	require.Equal(t, 1, binder.dismissed)
}

func TestRestore(t *testing.T) {
	f := newFixture(t)

	// Nothing persisted: no fetch.
	require.NoError(t, f.store.Restore(context.Background()))
	require.Equal(t, 0, f.rec.Count("locales:"))

	require.NoError(t, f.prefs.Set(storage.KeySelectedLanguage, "hi"))
	require.NoError(t, f.store.Restore(context.Background()))
	require.Equal(t, "hi", f.store.Language())
	require.Equal(t, "स्वागत है", f.store.T(KeyWelcomeTitle, ""))
}

func TestSetBinder_AppliesLoadedBundle(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Load(context.Background(), "en"))

	binder := &fakeBinder{}
	f.store.SetBinder(binder)
	require.Contains(t, binder.Calls(), "text:welcome-title=Welcome")
	require.Contains(t, binder.Calls(), "text:language-modal-title=Choose a language")
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bn.json"), []byte(`{"welcome_title":"স্বাগতম"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mr.json"), []byte(`not json`), 0o644))
	src := &DirSource{Dir: dir}

	b, err := src.Fetch(context.Background(), "bn")
	require.NoError(t, err)
	require.Equal(t, "স্বাগতম", b[KeyWelcomeTitle])

	_, err = src.Fetch(context.Background(), "mr")
	require.Error(t, err)
	_, err = src.Fetch(context.Background(), "gu")
	require.Error(t, err)
}

func TestWatch_ReloadsActiveBundle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"welcome_title":"v1"}`), 0o644))

	store := NewStore(&DirSource{Dir: dir}, storage.NewMemoryStore(), model.NewState(), nil, nil)
	require.NoError(t, store.Load(context.Background(), "en"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx, dir) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`{"welcome_title":"v2"}`), 0o644))

	require.Eventually(t, func() bool {
		return store.T(KeyWelcomeTitle, "") == "v2"
	}, 3*time.Second, 20*time.Millisecond)
}

func TestValidateCode(t *testing.T) {
	for _, code := range []string{"en", "hi", "gu", "mr", "bn"} {
		require.NoError(t, ValidateCode(code), code)
	}
	for _, code := range []string{"", "en-US", "../x", "hi.json"} {
		require.Error(t, ValidateCode(code), code)
	}
}

func TestDescribe(t *testing.T) {
	hi := Describe("hi")
	require.Equal(t, "Hindi", hi.English)
	require.Equal(t, "हिन्दी", hi.Native)

	bad := Describe("!!")
	require.Equal(t, "!!", bad.Native)
	require.Len(t, DescribeAll([]string{"en", "gu"}), 2)
}

func TestDetect(t *testing.T) {
	supported := []string{"en", "hi", "gu", "mr", "bn"}
	cases := []struct {
		env  map[string]string
		want string
	}{
		{map[string]string{"LANG": "hi_IN.UTF-8"}, "hi"},
		{map[string]string{"LANGUAGE": "mr:en", "LANG": "hi_IN.UTF-8"}, "mr"},
		{map[string]string{"LC_ALL": "C", "LANG": "gu_IN"}, "gu"},
		{map[string]string{"LANG": "fr_FR.UTF-8"}, "en"},
		{map[string]string{}, "en"},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			for _, k := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
				t.Setenv(k, tc.env[k])
			}
			require.Equal(t, tc.want, Detect(supported))
		})
	}
}

func TestShippedBundlesAreComplete(t *testing.T) {
	keys := []string{
		KeyWelcomeTitle, KeyWelcomeSubtitle, KeyInputPlaceholder, KeyLanguageModalTitle, KeyLanguageModalSubtitle,
		KeyLoginTitle, KeySignupTitle, KeyUsernameLabel, KeyPasswordLabel, KeyLoginButton, KeySignupButton,
		KeyLogoutButton, KeyShowSignup, KeyShowLogin, KeyLastUserNote, KeySendHint, KeyLanguageButton,
		KeyThinking, KeyTranslating, KeyTranslationUnavailable,
		KeyLoginSuccess, KeyLoginFailed, KeySignupSuccess, KeySignupFailed, KeyLogoutSuccess,
		KeyFillAllFields, KeyPasswordTooShort, KeyOffline, KeyBackOnline, KeyCopied, KeyUnexpectedError,
	}
	src := &DirSource{Dir: filepath.Join("..", "..", "locales")}

	for _, code := range []string{"en", "hi", "gu", "mr", "bn"} {
		t.Run(code, func(t *testing.T) {
			bundle, err := src.Fetch(context.Background(), code)
			require.NoError(t, err)
			for _, key := range keys {
				require.NotEmpty(t, bundle[key], "missing %s", key)
			}
		})
	}
}
