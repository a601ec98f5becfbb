// Package api is the HTTP client for the trackspring REST API.
//
// It attaches the bearer token of the current session, encodes and decodes
// JSON, and normalizes every failed response into an *Error.
package api

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

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TokenSource provides the bearer token for authenticated requests.
// An empty token means the request is sent without authorization.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func() string

// Token returns f().
func (f TokenFunc) Token() string {
	return f()
}

// Client sends requests to the API.
type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTokenSource sets where bearer tokens are read from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithTimeout sets a timeout for every request. Zero keeps the
// transport default, which is no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

// New returns a client for the API at baseURL, e.g. http://localhost:8080/api.
func New(baseURL string, options ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", baseURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		base: strings.TrimRight(u.String(), "/"),
		http: &http.Client{},
	}

	for _, o := range options {
		o(c)
	}

	return c, nil
}

// BaseURL returns the URL all request paths are relative to.
func (c *Client) BaseURL() string {
	return c.base
}

// Path joins segments into a request path, escaping each segment.
func Path(segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	return "/" + strings.Join(escaped, "/")
}

// Get sends a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post sends a POST request with body encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

// Put sends a PUT request with body encoded as JSON.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete sends a DELETE request. out may be nil.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target, err := url.Parse(c.base + path)
	if err != nil {
		return fmt.Errorf("invalid request path %q: %w", path, err)
	}
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger := log.With().
		Str("request-id", requestID).
		Str("method", method).
		Str("path", path).
		Logger()

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observe(method, path, 0, started)
		logger.Debug().Err(err).Msg("api request failed")
		return newTransportError(err)
	}
	defer resp.Body.Close()

	observe(method, path, resp.StatusCode, started)
	logger.Debug().Int("status", resp.StatusCode).Dur("latency", time.Since(started)).Msg("api request")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return newTransportError(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return newResponseError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		logger.Error().Err(err).Msg("could not decode api response")
		return &Error{
			Status:  resp.StatusCode,
			Message: "the response of the server could not be parsed",
			kind:    ErrServer,
		}
	}

	return nil
}
