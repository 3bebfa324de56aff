// Package remote is the JSON-over-HTTP plumbing shared by the BRAIN chat
// client and the auth API client, with the error types both report.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout applies when a client is built without one.
const DefaultTimeout = 30 * time.Second

// ServerError is a non-2xx reply. Detail holds the server's "detail" field
// when the body carried one.
type ServerError struct {
	StatusCode int
	Detail     string
	Body       []byte
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, strings.TrimSpace(string(e.Body)))
}

// Message is the text shown to the user for the rejection.
func (e *ServerError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if len(e.Body) > 0 {
		return string(e.Body)
	}
	return http.StatusText(e.StatusCode)
}

// NetworkError is a transport failure: the request never got a reply.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError is a 2xx reply whose body could not be decoded.
type DecodeError struct {
	Raw []byte
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v (body %q)", e.Err, e.Raw)
}
func (e *DecodeError) Unwrap() error { return e.Err }

// Client sends JSON requests relative to a base URL.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// PostJSON sends in as the JSON body of a POST to path and decodes the
// reply into out.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), out)
}

// GetJSON fetches path and decodes the reply into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("method", method), zap.String("url", url), zap.Error(err))
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}
	c.log.Debug("request done",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &ServerError{StatusCode: resp.StatusCode, Body: raw}
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(raw, &detail) == nil {
			se.Detail = detail.Detail
		}
		return se
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Raw: raw, Err: err}
	}
	return nil
}
