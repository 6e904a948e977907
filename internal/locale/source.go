// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package locale

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Bundle is a flat key -> string map for one language.
type Bundle map[string]string

// Source fetches the bundle for a language code.
type Source interface {
	Fetch(ctx context.Context, code string) (Bundle, error)
}

// HTTPSource fetches GET {BaseURL}/locales/{code}.json.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource creates an HTTPSource. A zero timeout leaves requests
// unbounded.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context, code string) (Bundle, error) {
	url := s.BaseURL + "/locales/" + code + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("locale %s: %w", code, err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("locale %s: %w", code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("locale %s: status %d", code, resp.StatusCode)
	}
	return decode(code, resp.Body)
}

// DirSource reads {Dir}/{code}.json.
type DirSource struct {
	Dir string
}

// Fetch implements Source.
func (s *DirSource) Fetch(ctx context.Context, code string) (Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path(code))
	if err != nil {
		return nil, fmt.Errorf("locale %s: %w", code, err)
	}
	defer f.Close()
	return decode(code, f)
}

// Path returns the file holding code's bundle.
func (s *DirSource) Path(code string) string {
	return filepath.Join(s.Dir, code+".json")
}

func decode(code string, r io.Reader) (Bundle, error) {
	var b Bundle
	if err := json.NewDecoder(io.LimitReader(r, 1<<20)).Decode(&b); err != nil {
		return nil, fmt.Errorf("locale %s: invalid bundle: %w", code, err)
	}
	if b == nil {
		return nil, fmt.Errorf("locale %s: empty bundle", code)
	}
	return b, nil
}
