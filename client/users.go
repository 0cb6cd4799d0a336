package client

import (
	"context"
	"fmt"
	"net/http"

	farmacia "github.com/goliatone/go-farmacia"
)

// ListUsers fetches the staff directory. Admin-only on the server side.
func (c *Client) ListUsers(ctx context.Context) ([]farmacia.UserAccount, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/usuarios", nil, true)
	if err != nil {
		return nil, err
	}

	var items []farmacia.UserAccount
	if err := c.do(req, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateUser replaces name, email, and role of the account identified by id.
// There is no create counterpart; accounts enter through registration.
func (c *Client) UpdateUser(ctx context.Context, id int64, payload farmacia.UserPayload) error {
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/usuarios/%d", id), payload, true)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// DeleteUser removes the account identified by id.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/usuarios/%d", id), nil, true)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
