// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package fakeservice provides in-process stand-ins for the backend,
// translation and locale services, for use in tests.
//
// All three share a Recorder so tests can assert on the order of calls
// across services.
package fakeservice

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// =============================================================================
// RECORDER
// =============================================================================

// Recorder is a concurrency-safe, ordered call log.
type Recorder struct {
	mu    sync.Mutex
	calls []string
}

// Record appends a call.
func (r *Recorder) Record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

// Calls returns a copy of the call log.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Count returns the number of calls starting with prefix.
func (r *Recorder) Count(prefix string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// Reset clears the call log.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func detail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

// =============================================================================
// BACKEND
// =============================================================================

// Backend fakes /login, /signup, /ask and /health.
type Backend struct {
	*httptest.Server
	rec *Recorder

	mu           sync.Mutex
	users        map[string]string
	token        string
	askStatus    int
	omitAnswer   bool
	omitToken    bool
	unhealthy    bool
	answer       func(question string) string
	lastAuth     string
	lastQuestion string
}

// NewBackend starts a fake backend recording into rec.
func NewBackend(rec *Recorder) *Backend {
	b := &Backend{
		rec:   rec,
		users: make(map[string]string),
		token: "tok-123",
		answer: func(q string) string {
			return "answer: " + q
		},
	}

	r := chi.NewRouter()
	r.Post("/login", b.handleLogin)
	r.Post("/signup", b.handleSignup)
	r.Post("/ask", b.handleAsk)
	r.Get("/health", b.handleHealth)
	b.Server = httptest.NewServer(r)
	return b
}

// AddUser registers a user directly.
func (b *Backend) AddUser(username, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[username] = password
}

// HasUser reports whether username is registered.
func (b *Backend) HasUser(username string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.users[username]
	return ok
}

// SetAnswer replaces the answer function.
func (b *Backend) SetAnswer(fn func(question string) string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.answer = fn
}

// FailAsk makes /ask reply with status (0 restores normal replies).
func (b *Backend) FailAsk(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.askStatus = status
}

// OmitAnswer makes /ask reply with an object lacking the answer field.
func (b *Backend) OmitAnswer(omit bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.omitAnswer = omit
}

// OmitToken makes /login succeed without returning a token.
func (b *Backend) OmitToken(omit bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.omitToken = omit
}

// SetHealthy toggles the /health status.
func (b *Backend) SetHealthy(healthy bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.unhealthy = !healthy
}

// Token returns the token issued on login.
func (b *Backend) Token() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.token
}

// LastAsk returns the last question and Authorization header seen on /ask.
func (b *Backend) LastAsk() (question, authorization string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastQuestion, b.lastAuth
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	b.rec.Record("backend:/login")
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	b.mu.Lock()
	pw, ok := b.users[c.Username]
	token, omit := b.token, b.omitToken
	b.mu.Unlock()

	if !ok || pw != c.Password {
		detail(w, http.StatusUnauthorized, "Invalid credentials.")
		return
	}
	if omit {
		writeJSON(w, http.StatusOK, map[string]string{"status": "Login successful"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "Login successful", "token": token})
}

func (b *Backend) handleSignup(w http.ResponseWriter, r *http.Request) {
	b.rec.Record("backend:/signup")
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.users[c.Username]; exists {
		detail(w, http.StatusBadRequest, "Username already exists.")
		return
	}
	b.users[c.Username] = c.Password
	writeJSON(w, http.StatusOK, map[string]string{"status": "User created"})
}

func (b *Backend) handleAsk(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		b.rec.Record("backend:/ask")
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	b.rec.Record("backend:/ask " + body.Question)

	b.mu.Lock()
	b.lastQuestion = body.Question
	b.lastAuth = r.Header.Get("Authorization")
	status, omit, answer := b.askStatus, b.omitAnswer, b.answer
	b.mu.Unlock()

	if status != 0 {
		detail(w, status, "backend unavailable")
		return
	}
	if omit {
		writeJSON(w, http.StatusOK, map[string]string{})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer(body.Question)})
}

func (b *Backend) handleHealth(w http.ResponseWriter, r *http.Request) {
	b.rec.Record("backend:/health")
	b.mu.Lock()
	unhealthy := b.unhealthy
	b.mu.Unlock()
	if unhealthy {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// =============================================================================
// TRANSLATION
// =============================================================================

// Languages is the language table served by the fake translator.
var Languages = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"gu": "Gujarati",
	"mr": "Marathi",
	"bn": "Bengali",
}

// Translator fakes /translate, /languages and /health.
//
// By default it "translates" by tagging text as "[src>tgt] text". Directions
// can be failed individually with FailDirection.
type Translator struct {
	*httptest.Server
	rec *Recorder

	mu           sync.Mutex
	failStatus   map[string]int
	failSoft     map[string]bool
	lastPreserve *bool
}

// NewTranslator starts a fake translator recording into rec.
func NewTranslator(rec *Recorder) *Translator {
	t := &Translator{
		rec:        rec,
		failStatus: make(map[string]int),
		failSoft:   make(map[string]bool),
	}

	r := chi.NewRouter()
	r.Post("/translate", t.handleTranslate)
	r.Get("/languages", func(w http.ResponseWriter, r *http.Request) {
		t.rec.Record("translate:/languages")
		writeJSON(w, http.StatusOK, map[string]interface{}{"languages": Languages})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		t.rec.Record("translate:/health")
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "healthy", "supported_languages": Languages})
	})
	t.Server = httptest.NewServer(r)
	return t
}

// Tag is the fake translation of text from src to tgt.
func Tag(src, tgt, text string) string {
	return fmt.Sprintf("[%s>%s] %s", src, tgt, text)
}

// FailDirection makes src->tgt fail with an HTTP status.
func (t *Translator) FailDirection(src, tgt string, status int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failStatus[src+">"+tgt] = status
}

// SoftFailDirection makes src->tgt reply 200 with success:false.
func (t *Translator) SoftFailDirection(src, tgt string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failSoft[src+">"+tgt] = true
}

// LastPreserveTokens returns the preserve_tokens flag of the last request,
// or nil if it was absent.
func (t *Translator) LastPreserveTokens() *bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastPreserve
}

func (t *Translator) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text           string `json:"text"`
		SourceLang     string `json:"source_lang"`
		TargetLang     string `json:"target_lang"`
		PreserveTokens *bool  `json:"preserve_tokens"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.rec.Record("translate:/translate")
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	dir := req.SourceLang + ">" + req.TargetLang
	t.rec.Record("translate:" + dir)

	t.mu.Lock()
	t.lastPreserve = req.PreserveTokens
	status, soft := t.failStatus[dir], t.failSoft[dir]
	t.mu.Unlock()

	if _, ok := Languages[req.SourceLang]; !ok {
		detail(w, http.StatusBadRequest, "Unsupported source language: "+req.SourceLang)
		return
	}
	if _, ok := Languages[req.TargetLang]; !ok {
		detail(w, http.StatusBadRequest, "Unsupported target language: "+req.TargetLang)
		return
	}
	if status != 0 {
		detail(w, status, "Translation failed")
		return
	}
	if soft {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"translated_text": req.Text,
			"success":         false,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"translated_text":  Tag(req.SourceLang, req.TargetLang, req.Text),
		"confidence":       0.9,
		"preserved_tokens": []string{},
		"source_lang":      req.SourceLang,
		"target_lang":      req.TargetLang,
		"success":          true,
	})
}

// =============================================================================
// LOCALES
// =============================================================================

// Locales fakes GET /locales/{code}.json.
type Locales struct {
	*httptest.Server
	rec *Recorder

	mu      sync.Mutex
	bundles map[string]map[string]string
}

// NewLocales starts a fake locale server with the given bundles.
func NewLocales(rec *Recorder, bundles map[string]map[string]string) *Locales {
	l := &Locales{rec: rec, bundles: make(map[string]map[string]string)}
	for code, b := range bundles {
		l.bundles[code] = b
	}

	r := chi.NewRouter()
	r.Get("/locales/{file}", func(w http.ResponseWriter, r *http.Request) {
		file := chi.URLParam(r, "file")
		l.rec.Record("locales:" + file)
		code := strings.TrimSuffix(file, ".json")

		l.mu.Lock()
		bundle, ok := l.bundles[code]
		l.mu.Unlock()
		if !ok || !strings.HasSuffix(file, ".json") {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, bundle)
	})
	l.Server = httptest.NewServer(r)
	return l
}

// SetBundle adds or replaces a bundle; a nil bundle removes it.
func (l *Locales) SetBundle(code string, bundle map[string]string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if bundle == nil {
		delete(l.bundles, code)
		return
	}
	l.bundles[code] = bundle
}
