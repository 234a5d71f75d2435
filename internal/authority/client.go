// Package authority is the HTTP client for the remote authority that
// issues and validates session tokens and serves protected data.
package authority

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nfrund/panel/internal/session"
)

const (
	loginPath     = "/admins/login"
	validatePath  = "/auth/validate"
	dashboardPath = "/admins/dashboard"
)

// Client talks to the remote authority.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds every request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a Client for the authority at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges credentials for a session token. A rejection from the
// authority is returned as *LoginError.
func (c *Client) Login(ctx context.Context, creds Credentials) (session.Token, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return "", fmt.Errorf("encode credentials: %w", err)
	}

	var env envelope[loginData]
	status, err := c.do(ctx, http.MethodPost, loginPath, "", bytes.NewReader(body), &env)
	if err != nil && status == 0 {
		return "", err
	}
	if !env.Success {
		if env.Message != "" {
			return "", &LoginError{Message: env.Message}
		}
		if err != nil {
			return "", err
		}
		return "", ErrUnsuccessful
	}
	if env.Data == nil || env.Data.Token == "" {
		return "", ErrMissingToken
	}
	return session.Token(env.Data.Token), nil
}

// Validate asks the authority whether t is currently valid. Any non-success
// answer is Invalid; any failure to get an answer is Unreachable.
func (c *Client) Validate(ctx context.Context, t session.Token) Outcome {
	var env envelope[UserContext]
	status, err := c.do(ctx, http.MethodGet, validatePath, t, nil, &env)
	switch {
	case err != nil && status == 0:
		return Outcome{Kind: Unreachable, Err: err}
	case err != nil:
		return Outcome{Kind: Invalid, Err: err}
	case !env.Success:
		return Outcome{Kind: Invalid, Err: ErrUnsuccessful}
	}
	return Outcome{Kind: Valid, User: env.Data}
}

// DashboardSummary fetches the aggregate counts shown on the dashboard root.
func (c *Client) DashboardSummary(ctx context.Context, t session.Token) (*Summary, error) {
	var env envelope[Summary]
	if _, err := c.do(ctx, http.MethodGet, dashboardPath, t, nil, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		if env.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrUnsuccessful, env.Message)
		}
		return nil, ErrUnsuccessful
	}
	if env.Data == nil {
		return nil, ErrMissingData
	}
	return env.Data, nil
}

// do performs one request and decodes the envelope into out. It returns
// the HTTP status (0 when no response was received) and an error for
// transport failures, non-2xx statuses and undecodable bodies. On a non-2xx
// status the body is still decoded when possible so callers can read the
// authority's message.
func (c *Client) do(ctx context.Context, method, path string, t session.Token, body io.Reader, out any) (int, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.Present() {
		req.Header.Set("Authorization", "Bearer "+string(t))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	decodeErr := json.NewDecoder(resp.Body).Decode(out)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, fmt.Errorf("%w: %s %s returned %d", ErrUnexpectedStatus, method, path, resp.StatusCode)
	}
	if decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		slog.Debug("authority response undecodable", "path", path, "error", decodeErr)
		return 0, fmt.Errorf("decode %s response: %w", path, decodeErr)
	}
	return resp.StatusCode, nil
}
