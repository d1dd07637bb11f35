// Package api is the transport client for the remote dataset service.
// It exposes the operations the sync core needs and maps HTTP failures
// to structured error kinds.
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
)

const (
	defaultMaxRetries = 2
	defaultRetryDelay = 500 * time.Millisecond
)

// Client talks to the remote dataset service. It is safe for concurrent
// use by multiple goroutines.
type Client struct {
	http       *http.Client
	baseURL    string
	authHeader string
	maxRetries int
	retryDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRetries sets the retry budget for retryable failures.
func WithRetries(n int, delay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = n
		c.retryDelay = delay
	}
}

// New creates a client for the service at baseURL, authenticating every
// request with apiKey.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		authHeader: "ApiKey " + apiKey,
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service endpoint the client was configured with.
func (c *Client) BaseURL() string { return c.baseURL }

type request struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	result interface{}
}

// do executes a request, retrying retryable failures with exponential
// backoff. Auth, validation and not-found failures return immediately.
func (c *Client) do(ctx context.Context, req *request) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := c.doOnce(ctx, req)
		if err == nil {
			return nil
		}
		lastErr = err

		if apiErr, ok := err.(*Error); ok && !apiErr.Retryable() {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, req *request) error {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var bodyReader io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", c.authHeader)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{
			StatusCode: resp.StatusCode,
			Kind:       kindForStatus(resp.StatusCode),
		}
		if len(respBody) > 0 {
			// Best effort: a non-JSON error body still yields a usable
			// status-based error.
			_ = json.Unmarshal(respBody, apiErr)
		}
		return apiErr
	}

	if req.result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, req.result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	return c.do(ctx, &request{method: http.MethodGet, path: path, query: query, result: result})
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, &request{method: http.MethodPost, path: path, body: body, result: result})
}

func (c *Client) put(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, &request{method: http.MethodPut, path: path, body: body, result: result})
}

// resourceErr stamps the identifying context onto structured errors so
// the caller never surfaces a bare status code.
func resourceErr(err error, resource string) error {
	if apiErr, ok := err.(*Error); ok && apiErr.Resource == "" {
		apiErr.Resource = resource
	}
	return err
}
