package client

import (
	"context"
	"net/http"

	farmacia "github.com/goliatone/go-farmacia"
)

// tokenResponse is the body of a successful POST /login.
type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. The caller hands the token
// to SessionManager.Login; this method performs no session mutation itself.
func (c *Client) Login(ctx context.Context, creds farmacia.LoginRequest) (string, error) {
	if err := creds.Validate(); err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/login", creds, false)
	if err != nil {
		return "", err
	}

	var body tokenResponse
	if err := c.do(req, &body); err != nil {
		return "", err
	}

	return body.Token, nil
}

// Register creates a new staff account. New accounts receive the usuario role;
// promotion happens through the user directory.
func (c *Client) Register(ctx context.Context, payload farmacia.RegisterRequest) error {
	if err := payload.Validate(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/register", payload, false)
	if err != nil {
		return err
	}

	return c.do(req, nil)
}

var _ farmacia.LogoutNotifier = (*Client)(nil)

// NotifyLogout tells the authority the session ended. Callers treat the error
// as advisory only; local logout proceeds regardless.
func (c *Client) NotifyLogout(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/logout", nil, true)
	if err != nil {
		return err
	}

	return c.do(req, nil)
}
