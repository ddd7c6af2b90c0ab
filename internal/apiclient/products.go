package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/suteetoe/productdesk/internal/model"
)

// List fetches every product
func (c *Client) List(ctx context.Context) ([]model.Product, error) {
	var records []model.Record
	if err := c.do(ctx, "list", http.MethodGet, "/products", nil, &records); err != nil {
		return nil, err
	}
	return model.FromRecords(records, c.Placeholder), nil
}

// Create adds a product and returns the record the server stored
func (c *Client) Create(ctx context.Context, p model.Product) (model.Product, error) {
	var record model.Record
	if err := c.do(ctx, "create", http.MethodPost, "/products", model.ToPayload(p), &record); err != nil {
		return model.Product{}, err
	}
	return model.FromRecord(record, c.Placeholder), nil
}

// Update replaces the product addressed by p.ID
func (c *Client) Update(ctx context.Context, p model.Product) (model.Product, error) {
	if p.ID == "" {
		return model.Product{}, ErrMissingID
	}

	var record model.Record
	if err := c.do(ctx, "update", http.MethodPut, "/products/"+url.PathEscape(p.ID), model.ToPayload(p), &record); err != nil {
		return model.Product{}, err
	}
	return model.FromRecord(record, c.Placeholder), nil
}

// Delete removes the product with the given id
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	return c.do(ctx, "delete", http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}
