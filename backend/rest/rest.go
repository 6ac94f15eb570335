// Package rest provides an implementation of core.Backend speaking the
// collaboration backend's HTTP JSON session API. It adapts SessionHub's
// normalized Credentials/Hint structures into request bodies and decodes the
// returned user records back into core.Session values.
package rest

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

	"github.com/sessionhub/sessionhub/core"
)

const (
	loginPath  = "/session/login"
	resumePath = "/session/resume"
	logoutPath = "/session/logout"
	loginsPath = "/session/logins"
)

// APIError carries the HTTP status and backend-supplied message of a rejected
// call.
type APIError struct {
	StatusCode int    `json:"status"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("backend rejected request: %d %s", e.StatusCode, e.Message)
}

// Options configure the REST backend client.
type Options struct {
	// HTTPClient used for all calls. Defaults to a client with a 30s timeout.
	HTTPClient *http.Client
	// Header is merged into every request (auth tokens, tracing ids).
	Header http.Header
}

// Client implements core.Backend against a base URL.
type Client struct {
	baseURL string
	opts    Options
}

var _ core.Backend = (*Client)(nil)

// New creates a REST backend client for the given base URL.
func New(baseURL string, optFns ...func(o *Options)) *Client {
	opts := Options{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), opts: opts}
}

// Login authenticates the given credentials.
func (c *Client) Login(ctx context.Context, creds core.Credentials) (*core.Session, error) {
	var sess core.Session
	if err := c.post(ctx, loginPath, creds, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Resume re-establishes a previously authenticated session.
func (c *Client) Resume(ctx context.Context, hint core.Hint) (*core.Session, error) {
	var sess core.Session
	if err := c.post(ctx, resumePath, hint, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Logout invalidates the remote session.
func (c *Client) Logout(ctx context.Context, hint core.Hint) error {
	return c.post(ctx, logoutPath, hint, nil)
}

// ListLogins enumerates the logins known to the backend.
func (c *Client) ListLogins(ctx context.Context) ([]core.Session, error) {
	req, err := c.newRequest(ctx, http.MethodGet, loginsPath, nil)
	if err != nil {
		return nil, err
	}
	var logins []core.Session
	if err := c.do(req, &logins); err != nil {
		return nil, err
	}
	return logins, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("build request url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range c.opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("call backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(data, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
