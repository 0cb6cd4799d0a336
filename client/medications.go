package client

import (
	"context"
	"fmt"
	"net/http"

	farmacia "github.com/goliatone/go-farmacia"
)

// ListMedications fetches the full inventory.
func (c *Client) ListMedications(ctx context.Context) ([]farmacia.Medication, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/medicamentos", nil, true)
	if err != nil {
		return nil, err
	}

	var items []farmacia.Medication
	if err := c.do(req, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateMedication adds an inventory item. The server assigns the id; callers
// re-fetch the list rather than guessing it.
func (c *Client) CreateMedication(ctx context.Context, payload farmacia.MedicationPayload) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/medicamentos", payload, true)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// UpdateMedication replaces the item identified by id.
func (c *Client) UpdateMedication(ctx context.Context, id int64, payload farmacia.MedicationPayload) error {
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/medicamentos/%d", id), payload, true)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// DeleteMedication removes the item identified by id.
func (c *Client) DeleteMedication(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/medicamentos/%d", id), nil, true)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
