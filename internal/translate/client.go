// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package translate provides a memoising client for the translation service.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// =============================================================================
// ERRORS
// =============================================================================

// Error is returned when a translation could not be obtained. The client
// never substitutes text on failure; callers choose the fallback.
type Error struct {
	Source     string
	Target     string
	StatusCode int
	Detail     string
	Cause      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("translate %s->%s failed", e.Source, e.Target)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// =============================================================================
// WIRE TYPES
// =============================================================================

type translateRequest struct {
	Text           string `json:"text"`
	SourceLang     string `json:"source_lang"`
	TargetLang     string `json:"target_lang"`
	PreserveTokens bool   `json:"preserve_tokens"`
}

type translateResponse struct {
	TranslatedText string  `json:"translated_text"`
	Confidence     float64 `json:"confidence"`
	Success        bool    `json:"success"`
}

type languagesResponse struct {
	Languages map[string]string `json:"languages"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Options configures a Client.
type Options struct {
	// Timeout bounds each request (0 = none).
	Timeout time.Duration
	// MaxRequestsPerMinute throttles translate calls (0 = unlimited).
	MaxRequestsPerMinute int
}

// Client translates text through the translation service.
//
// Successful results are cached by (text, source, target) for the life of
// the client. Concurrent misses for the same key share one request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *Cache
	flight     singleflight.Group
	limiter    *rate.Limiter
}

// NewClient creates a translation client for baseURL.
func NewClient(baseURL string, opts Options) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: opts.Timeout},
		cache:      NewCache(),
	}
	if opts.MaxRequestsPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.MaxRequestsPerMinute)), 1)
	}
	return c
}

// Translate returns text translated from source to target.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	key := Key{Text: text, Source: source, Target: target}
	if v, ok := c.cache.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.flight.Do(key.String(), func() (interface{}, error) {
		if v, ok := c.cache.Get(key); ok {
			return v, nil
		}
		translated, err := c.fetch(ctx, key)
		if err != nil {
			return "", err
		}
		c.cache.Put(key, translated)
		return translated, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) fetch(ctx context.Context, key Key) (string, error) {
	fail := func(status int, detail string, cause error) error {
		return &Error{Source: key.Source, Target: key.Target, StatusCode: status, Detail: detail, Cause: cause}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fail(0, "", err)
		}
	}

	body, err := json.Marshal(translateRequest{
		Text:           key.Text,
		SourceLang:     key.Source,
		TargetLang:     key.Target,
		PreserveTokens: true,
	})
	if err != nil {
		return "", fail(0, "", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", fail(0, "", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fail(0, "", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fail(resp.StatusCode, "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb struct {
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(data, &eb)
		return "", fail(resp.StatusCode, eb.Detail, nil)
	}

	var tr translateResponse
	if err := json.Unmarshal(data, &tr); err != nil {
		return "", fail(resp.StatusCode, "", err)
	}
	if !tr.Success {
		return "", fail(0, "service reported failure", nil)
	}
	return tr.TranslatedText, nil
}

// Languages returns the service's supported language table (code -> name).
func (c *Client) Languages(ctx context.Context) (map[string]string, error) {
	var out languagesResponse
	if err := c.get(ctx, "/languages", &out); err != nil {
		return nil, err
	}
	return out.Languages, nil
}

// Health checks that the translation service is reachable.
func (c *Client) Health(ctx context.Context) error {
	var out map[string]interface{}
	return c.get(ctx, "/health", &out)
}

// CacheLen returns the number of cached translations.
func (c *Client) CacheLen() int {
	return c.cache.Len()
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}
