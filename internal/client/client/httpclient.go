package client

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

	"github.com/dmitrijs2005/shoppal/internal/common"
	"github.com/google/uuid"
)

const (
	maxResponseBytes = 1 << 20
	defaultUserAgent = "shoppal-client"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HTTPClient implements Client over HTTP(S) + JSON.
type HTTPClient struct {
	loginURL  string
	pingURL   string
	http      *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client. A copy is kept with
// redirects disabled.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			cp := *hc
			cp.CheckRedirect = noRedirect
			c.http = &cp
		}
	}
}

// noRedirect hands 3xx responses back to the caller. Following them would
// turn the login POST into a GET against another resource.
func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

// WithTimeout bounds every request. Zero disables the bound and leaves
// only the caller's context in charge.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewHTTPClient returns a client posting to loginURL. The liveness probe is
// sent to /ping on the same host.
func NewHTTPClient(loginURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(loginURL)
	if err != nil {
		return nil, fmt.Errorf("parse login url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("login url %q: scheme must be http or https", loginURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("login url %q: missing host", loginURL)
	}

	ping := *u
	ping.Path = "/ping"
	ping.RawQuery = ""

	c := &HTTPClient{
		loginURL:  u.String(),
		pingURL:   ping.String(),
		http:      &http.Client{CheckRedirect: noRedirect},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Authenticate sends one login request and classifies the response.
func (c *HTTPClient) Authenticate(ctx context.Context, email, password string) AuthResult {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return NetworkFailure{Cause: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.loginURL, bytes.NewReader(body))
	if err != nil {
		return NetworkFailure{Cause: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return NetworkFailure{Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return NetworkFailure{Cause: fmt.Errorf("read response: %w", err)}
	}

	return mapResponse(resp.StatusCode, data)
}

func mapResponse(status int, body []byte) AuthResult {
	switch status {
	case http.StatusOK:
		var profile map[string]any
		if err := json.Unmarshal(body, &profile); err != nil {
			return NetworkFailure{Cause: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
		}
		if profile == nil {
			return NetworkFailure{Cause: fmt.Errorf("%w: empty body", ErrMalformedResponse)}
		}
		profile["status"] = status
		return Authenticated{Profile: profile}

	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return Rejected{Reason: strings.TrimRight(string(body), "\r\n")}

	default:
		return NetworkFailure{Cause: fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, status, http.StatusText(status))}
	}
}

// Ping reports whether the service answers its liveness probe.
func (c *HTTPClient) Ping(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pingURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
	}
	return nil
}

func (c *HTTPClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}
