package client

import (
	"context"
	"fmt"
	"net/http"

	farmacia "github.com/goliatone/go-farmacia"
)

// ListPurchaseOrders fetches all supplier orders.
func (c *Client) ListPurchaseOrders(ctx context.Context) ([]farmacia.PurchaseOrder, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/ordencompras", nil, true)
	if err != nil {
		return nil, err
	}

	var items []farmacia.PurchaseOrder
	if err := c.do(req, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreatePurchaseOrder registers a new supplier order.
func (c *Client) CreatePurchaseOrder(ctx context.Context, payload farmacia.PurchaseOrderPayload) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/ordencompras", payload, true)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// UpdatePurchaseOrder replaces the order identified by id.
func (c *Client) UpdatePurchaseOrder(ctx context.Context, id int64, payload farmacia.PurchaseOrderPayload) error {
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/ordencompras/%d", id), payload, true)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// DeletePurchaseOrder removes the order identified by id.
func (c *Client) DeletePurchaseOrder(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/ordencompras/%d", id), nil, true)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
