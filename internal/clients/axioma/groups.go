package axioma

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bobmccarthy/riskfolio/internal/models"
)

// ListPortfolioGroups lists portfolio groups matching the given options.
func (c *Client) ListPortfolioGroups(ctx context.Context, opts ListOptions) (*models.Page, error) {
	var page models.Page
	if _, err := c.do(ctx, http.MethodGet, "/portfolio-groups", opts.params(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPortfolioGroup retrieves one portfolio group by identity.
func (c *Client) GetPortfolioGroup(ctx context.Context, id int64) (*models.Record, error) {
	var record models.Record
	path := fmt.Sprintf("/portfolio-groups/%d", id)
	if _, err := c.do(ctx, http.MethodGet, path, nil, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// CreatePortfolioGroup creates a portfolio group and returns the identity
// from the creation response's location reference.
func (c *Client) CreatePortfolioGroup(ctx context.Context, group models.GroupPayload) (int64, error) {
	resp, err := c.do(ctx, http.MethodPost, "/portfolio-groups", nil, group, nil)
	if err != nil {
		return 0, err
	}
	return parseLocationID(resp)
}

// UpdatePortfolioGroup replaces a portfolio group.
func (c *Client) UpdatePortfolioGroup(ctx context.Context, id int64, group models.GroupPayload) error {
	path := fmt.Sprintf("/portfolio-groups/%d", id)
	_, err := c.do(ctx, http.MethodPut, path, nil, group, nil)
	return err
}

// DeletePortfolioGroup removes a portfolio group.
func (c *Client) DeletePortfolioGroup(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/portfolio-groups/%d", id)
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}
