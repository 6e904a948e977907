// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/fakeservice"
)

func newTestClient(t *testing.T) (*Client, *fakeservice.Backend, *fakeservice.Recorder) {
	t.Helper()
	rec := &fakeservice.Recorder{}
	srv := fakeservice.NewBackend(rec)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 0), srv, rec
}

func TestLogin(t *testing.T) {
	client, srv, _ := newTestClient(t)
	srv.AddUser("asha", "secret1")

	token, err := client.Login(context.Background(), "asha", "secret1")
	require.NoError(t, err)
	if token != srv.Token() {
		t.Errorf("token = %q, want %q", token, srv.Token())
	}
}

func TestLogin_InvalidCredentialsCarriesDetail(t *testing.T) {
	client, srv, _ := newTestClient(t)
	srv.AddUser("asha", "secret1")

	_, err := client.Login(context.Background(), "asha", "wrong")
	require.Error(t, err)

	var ce *ClientError
	require.True(t, errors.As(err, &ce))
	if ce.Type != ErrTypeStatus || ce.StatusCode != http.StatusUnauthorized {
		t.Errorf("unexpected error: %+v", ce)
	}
	if got := DetailOr(err, "Login failed"); got != "Invalid credentials." {
		t.Errorf("DetailOr = %q", got)
	}
}

func TestLogin_MissingToken(t *testing.T) {
	client, srv, _ := newTestClient(t)
	srv.AddUser("asha", "secret1")
	srv.OmitToken(true)

	_, err := client.Login(context.Background(), "asha", "secret1")
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("err = %v, want ErrNoToken", err)
	}
	if got := DetailOr(err, "Login failed"); got != "Login failed" {
		t.Errorf("missing token should use the generic message, got %q", got)
	}
}

func TestSignup(t *testing.T) {
	client, srv, _ := newTestClient(t)

	require.NoError(t, client.Signup(context.Background(), "ravi", "longpass"))
	if !srv.HasUser("ravi") {
		t.Error("signup did not register the user")
	}

	err := client.Signup(context.Background(), "ravi", "longpass")
	require.Error(t, err)
	if got := DetailOr(err, "Signup failed"); got != "Username already exists." {
		t.Errorf("DetailOr = %q", got)
	}
}

func TestAsk(t *testing.T) {
	client, srv, _ := newTestClient(t)

	resp, err := client.Ask(context.Background(), "tok-123", "When to sow wheat?")
	require.NoError(t, err)
	if resp.Answer != "answer: When to sow wheat?" {
		t.Errorf("Answer = %q", resp.Answer)
	}
	q, auth := srv.LastAsk()
	if q != "When to sow wheat?" || auth != "Bearer tok-123" {
		t.Errorf("server saw question %q auth %q", q, auth)
	}

	_, err = client.Ask(context.Background(), "", "no token")
	require.NoError(t, err)
	if _, auth := srv.LastAsk(); auth != "" {
		t.Errorf("empty token must not send Authorization, got %q", auth)
	}
}

func TestAsk_MissingAnswerIsEmpty(t *testing.T) {
	client, srv, _ := newTestClient(t)
	srv.OmitAnswer(true)

	resp, err := client.Ask(context.Background(), "", "q")
	require.NoError(t, err)
	if resp.Answer != "" {
		t.Errorf("Answer = %q, want empty", resp.Answer)
	}
}

func TestAsk_ServerError(t *testing.T) {
	client, srv, _ := newTestClient(t)
	srv.FailAsk(http.StatusInternalServerError)

	_, err := client.Ask(context.Background(), "", "q")
	var ce *ClientError
	require.True(t, errors.As(err, &ce))
	if ce.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d", ce.StatusCode)
	}
}

func TestConnectionError(t *testing.T) {
	client, srv, _ := newTestClient(t)
	srv.Close()

	_, err := client.Ask(context.Background(), "", "q")
	var ce *ClientError
	require.True(t, errors.As(err, &ce))
	if ce.Type != ErrTypeConnection {
		t.Errorf("Type = %v, want ErrTypeConnection", ce.Type)
	}
	if ce.Unwrap() == nil {
		t.Error("connection errors should wrap the transport error")
	}
}

func TestHealth(t *testing.T) {
	client, srv, rec := newTestClient(t)
	require.NoError(t, client.Health(context.Background()))

	srv.SetHealthy(false)
	require.Error(t, client.Health(context.Background()))
	if rec.Count("backend:/health") != 2 {
		t.Errorf("health calls = %d", rec.Count("backend:/health"))
	}
}

func TestErrorBody_ValidationList(t *testing.T) {
	eb := errorBody{Detail: []byte(`[{"loc":["body","username"],"msg":"field required"}]`)}
	if got := eb.detailText(); got != "field required" {
		t.Errorf("detailText = %q", got)
	}
	if got := (errorBody{}).detailText(); got != "" {
		t.Errorf("empty detail = %q", got)
	}
}
