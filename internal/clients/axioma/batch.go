package axioma

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bobmccarthy/riskfolio/internal/models"
)

// ListBatchDefinitions lists batch definitions matching the given options.
func (c *Client) ListBatchDefinitions(ctx context.Context, opts ListOptions) (*models.Page, error) {
	var page models.Page
	if _, err := c.do(ctx, http.MethodGet, "/batch-definitions", opts.params(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetBatchDefinition retrieves one batch definition by identity.
func (c *Client) GetBatchDefinition(ctx context.Context, id int64) (*models.Record, error) {
	var record models.Record
	path := fmt.Sprintf("/batch-definitions/%d", id)
	if _, err := c.do(ctx, http.MethodGet, path, nil, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateBatchDefinition creates a batch definition and returns the identity
// from the creation response's location reference.
func (c *Client) CreateBatchDefinition(ctx context.Context, batch models.BatchPayload) (int64, error) {
	resp, err := c.do(ctx, http.MethodPost, "/batch-definitions", nil, batch, nil)
	if err != nil {
		return 0, err
	}
	return parseLocationID(resp)
}

// UpdateBatchDefinition replaces a batch definition.
func (c *Client) UpdateBatchDefinition(ctx context.Context, id int64, batch models.BatchPayload) error {
	path := fmt.Sprintf("/batch-definitions/%d", id)
	_, err := c.do(ctx, http.MethodPut, path, nil, batch, nil)
	return err
}

// DeleteBatchDefinition removes a batch definition.
func (c *Client) DeleteBatchDefinition(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/batch-definitions/%d", id)
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}

// ListAnalysisDefinitions lists analysis definitions matching the given
// options.
func (c *Client) ListAnalysisDefinitions(ctx context.Context, opts ListOptions) (*models.Page, error) {
	var page models.Page
	if _, err := c.do(ctx, http.MethodGet, "/analysis-definitions", opts.params(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
