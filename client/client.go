// Package client implements the REST client for the pharmacy management API.
// Every listing and mutating call sends the current bearer token from the
// session; the client itself never stores credentials.
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

	goerrors "github.com/goliatone/go-errors"

	farmacia "github.com/goliatone/go-farmacia"
)

// Option customizes Client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying transport. Useful for tests and for
// callers that need custom timeouts or instrumentation.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger farmacia.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout sets the transport timeout when no custom http.Client is given.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Client talks to the remote API. It is safe for use from a single page at a
// time; the design does not queue or serialize concurrent writes.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  farmacia.TokenSource
	logger  farmacia.Logger
	timeout time.Duration
}

// New returns a Client rooted at baseURL. The TokenSource is normally the
// SessionManager; anonymous endpoints (login, register) work with a nil or
// empty source.
func New(baseURL string, tokens farmacia.TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		timeout: 30 * time.Second,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}

	return c
}

// NewFromConfig builds a client from the shared Config.
func NewFromConfig(cfg farmacia.Config, tokens farmacia.TokenSource, opts ...Option) *Client {
	opts = append([]Option{WithTimeout(cfg.GetHTTPTimeout())}, opts...)
	return New(cfg.GetBaseURL(), tokens, opts...)
}

func (c *Client) endpoint(path string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid API base URL")
	}
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String(), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any, authed bool) (*http.Request, error) {
	target, err := c.endpoint(path)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode request body")
		}
		reader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build request")
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		token, ok := "", false
		if c.tokens != nil {
			token, ok = c.tokens.Token()
		}
		if !ok {
			return nil, farmacia.ErrNotAuthenticated
		}
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	return req, nil
}

// do executes the request and decodes a JSON response into out when non-nil.
// Transport failures and non-2xx responses come back as categorized errors
// whose Message is safe to show in a page's error banner.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "the service is unreachable")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to read response")
	}

	if c.logger != nil {
		c.logger.Debug("%s %s -> %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode response")
		}
	}

	return nil
}

// errorBody is the error envelope the API uses on failure responses.
type errorBody struct {
	Message string `json:"message"`
}

func apiError(status int, data []byte) error {
	message := ""
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		message = body.Message
	}
	if message == "" {
		message = fmt.Sprintf("the service responded with status %d", status)
	}

	switch {
	case status == http.StatusUnauthorized:
		return goerrors.New(message, goerrors.CategoryAuth).WithCode(goerrors.CodeUnauthorized)
	case status == http.StatusForbidden:
		return goerrors.New(message, goerrors.CategoryAuthz).WithCode(goerrors.CodeForbidden)
	case status == http.StatusNotFound:
		return goerrors.New(message, goerrors.CategoryNotFound).WithCode(goerrors.CodeNotFound)
	case status == http.StatusConflict:
		return goerrors.New(message, goerrors.CategoryConflict).WithCode(goerrors.CodeConflict)
	case status >= 400 && status < 500:
		return goerrors.New(message, goerrors.CategoryBadInput).WithCode(goerrors.CodeBadRequest)
	default:
		return goerrors.New(message, goerrors.CategoryOperation)
	}
}
