// Package api is the typed HTTP client for the 67foodstreet REST backend.
// Every call is a single round-trip with JSON bodies; idempotent reads are
// retried a fixed number of times, mutations never are.
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
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/0xletuss/67foodstreet/core"
)

// Client talks to the backend. It carries the bearer token for the current
// session and reports authorization failures through a one-shot hook so the
// session gate can tear down exactly once.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     core.Logger
	telemetry  core.Telemetry

	retryAttempts int
	retryDelay    time.Duration

	mu    sync.Mutex
	token string

	unauthorizedFired bool
	onUnauthorized    func()
}

// NewClient creates a client from configuration. A nil logger is replaced
// with a no-op.
func NewClient(cfg *core.Config, logger core.Logger) *Client {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.API.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.API.Timeout,
		},
		logger:        logger,
		telemetry:     &core.NoOpTelemetry{},
		retryAttempts: cfg.API.RetryAttempts,
		retryDelay:    cfg.API.RetryDelay,
	}
}

// SetTelemetry attaches an optional tracing provider.
func (c *Client) SetTelemetry(t core.Telemetry) {
	if t != nil {
		c.telemetry = t
	}
}

// SetToken installs the bearer token used by authenticated calls.
// Installing a token re-arms the unauthorized hook for the new session.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.unauthorizedFired = false
}

// ClearToken drops the bearer token after logout.
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// Token returns the current bearer token, empty when logged out.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// SetUnauthorizedHook registers the callback fired on the first 401/422
// response of the session. Subsequent authorization failures are still
// returned as errors but do not fire the hook again.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) fireUnauthorized() {
	c.mu.Lock()
	fn := c.onUnauthorized
	fired := c.unauthorizedFired
	c.unauthorizedFired = true
	c.mu.Unlock()
	if !fired && fn != nil {
		fn()
	}
}

// errorBody matches the error envelopes the backend uses interchangeably.
type errorBody struct {
	Error   string `json:"error"`
	Detail  string `json:"detail"`
	Msg     string `json:"msg"`
	Message string `json:"message"`
}

func (e *errorBody) text() string {
	for _, s := range []string{e.Error, e.Detail, e.Msg, e.Message} {
		if s != "" {
			return s
		}
	}
	return ""
}

// do performs one JSON round-trip. GET requests are retried on transient
// failures; mutations are attempted exactly once. out may be nil when the
// response body is irrelevant.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	ctx, span := c.telemetry.StartSpan(ctx, op)
	defer span.End()
	span.SetAttribute("http.method", method)
	span.SetAttribute("http.path", path)

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			span.RecordError(err)
			return core.NewClientError(op, "encode", err)
		}
	}

	attempts := 1
	if method == http.MethodGet {
		attempts = c.retryAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			c.logger.Warn("Retrying request", map[string]interface{}{
				"operation": op,
				"attempt":   attempt,
				"max":       attempts,
				"error":     lastErr.Error(),
			})
			timer := time.NewTimer(c.retryDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return core.NewClientError(op, "network", ctx.Err())
			case <-timer.C:
			}
		}

		err := c.roundTrip(ctx, op, method, path, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err

		// Auth and client errors are never retried.
		if !core.IsRetryable(err) {
			span.RecordError(err)
			return err
		}
	}

	span.RecordError(lastErr)
	if attempts > 1 {
		return core.NewClientError(op, "network", fmt.Errorf("%w: %v", core.ErrMaxRetriesExceeded, lastErr))
	}
	return lastErr
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, payload []byte, out interface{}) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return core.NewClientError(op, "request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Request failed", map[string]interface{}{
			"operation": op,
			"method":    method,
			"path":      path,
			"error":     err.Error(),
		})
		return core.NewClientError(op, "network", fmt.Errorf("%w: %v", core.ErrConnectionFailed, err))
	}
	defer resp.Body.Close()

	c.logger.Debug("Request completed", map[string]interface{}{
		"operation":   op,
		"method":      method,
		"path":        path,
		"status_code": resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return core.NewClientError(op, "decode", err)
		}
		return nil
	}

	return c.statusError(op, path, resp)
}

func (c *Client) statusError(op, path string, resp *http.Response) error {
	var eb errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(data, &eb)
	msg := eb.text()
	if msg == "" {
		msg = resp.Status
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusUnprocessableEntity:
		c.logger.Warn("Authorization failure, tearing down session", map[string]interface{}{
			"operation":   op,
			"path":        path,
			"status_code": resp.StatusCode,
		})
		c.fireUnauthorized()
		return &core.ClientError{Op: op, Kind: "auth", Message: msg, Err: core.ErrUnauthorized}
	case resp.StatusCode == http.StatusForbidden:
		return &core.ClientError{Op: op, Kind: "auth", Message: msg, Err: core.ErrForbidden}
	case resp.StatusCode == http.StatusNotFound:
		return &core.ClientError{Op: op, Kind: "request", Message: msg, Err: core.ErrNotFound}
	case resp.StatusCode >= 500:
		return &core.ClientError{Op: op, Kind: "server", Message: msg, Err: core.ErrServerError}
	default:
		return &core.ClientError{Op: op, Kind: "request", Message: msg,
			Err: fmt.Errorf("%w: %s", core.ErrRequestFailed, msg)}
	}
}

// get issues an authenticated GET with query parameters.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return c.do(ctx, op, http.MethodGet, path, nil, out)
}
