// Package backend implements the HTTP client for the reseller backend API.
// It attaches the session's bearer credential to every call and maps an
// upstream 401 to domain.ErrUnauthenticated, which the web layer treats as
// fatal for the whole session.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ppob-dashboard/internal/domain"
	"ppob-dashboard/internal/domain/ports/gateway"
	"ppob-dashboard/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// TokenSource yields the bearer credential for the current session, or an
// empty string when the call should go out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) string
}

// StaticToken is a TokenSource for a fixed credential (tests, logout).
type StaticToken string

func (s StaticToken) Token(context.Context) string { return string(s) }

// ContextTokens resolves the credential stamped onto the request context by
// the web layer (see gateway.WithToken).
type ContextTokens struct{}

func (ContextTokens) Token(ctx context.Context) string { return gateway.TokenFromContext(ctx) }

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     logger,
	}
}

// WithTokens returns a shallow copy bound to a different credential source.
// Gateways share the underlying http.Client and its connection pool.
func (c *Client) WithTokens(tokens TokenSource) *Client {
	cp := *c
	cp.tokens = tokens
	return &cp
}

// apiError is the backend's error envelope.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	endpoint := metricEndpoint(path)
	start := time.Now()
	err := c.doOnce(ctx, method, path, query, in, out)
	metrics.ObserveBackendLatency(endpoint, float64(time.Since(start).Milliseconds()), err == nil)
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.tokens.Token(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		metrics.IncBackendUnauthorized()
		return domain.ErrUnauthenticated
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil {
			if apiErr.Error != "" {
				return fmt.Errorf("%w: %s", domain.ErrUpstream, apiErr.Error)
			}
			if apiErr.Message != "" {
				return fmt.Errorf("%w: %s", domain.ErrUpstream, apiErr.Message)
			}
		}
		return fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("unmarshal response: %w, body: %s", err, truncate(data, 256))
		}
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// metricEndpoint collapses path parameters so the latency histogram keeps a
// bounded label set.
func metricEndpoint(path string) string {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if isParam(p) {
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}

func isParam(seg string) bool {
	if len(seg) > 20 {
		return true
	}
	for _, r := range seg {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
