package axioma

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bobmccarthy/riskfolio/internal/models"
)

// ListPortfolios lists portfolios matching the given options.
func (c *Client) ListPortfolios(ctx context.Context, opts ListOptions) (*models.Page, error) {
	var page models.Page
	if _, err := c.do(ctx, http.MethodGet, "/portfolios", opts.params(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPortfolio retrieves one portfolio record by identity.
func (c *Client) GetPortfolio(ctx context.Context, id int64) (*models.Record, error) {
	var record models.Record
	path := fmt.Sprintf("/portfolios/%d", id)
	if _, err := c.do(ctx, http.MethodGet, path, nil, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// CreatePortfolio creates a portfolio and returns the identity from the
// creation response's location reference.
func (c *Client) CreatePortfolio(ctx context.Context, portfolio models.PortfolioPayload) (int64, error) {
	resp, err := c.do(ctx, http.MethodPost, "/portfolios", nil, portfolio, nil)
	if err != nil {
		return 0, err
	}
	return parseLocationID(resp)
}

// UpdatePortfolio replaces a portfolio's metadata.
func (c *Client) UpdatePortfolio(ctx context.Context, id int64, portfolio models.PortfolioPayload) error {
	path := fmt.Sprintf("/portfolios/%d", id)
	_, err := c.do(ctx, http.MethodPut, path, nil, portfolio, nil)
	return err
}

// DeletePortfolio removes a portfolio.
func (c *Client) DeletePortfolio(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/portfolios/%d", id)
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}

// GetPositions retrieves the position snapshot of a portfolio at a date.
func (c *Client) GetPositions(ctx context.Context, id int64, asOf models.Date) (*models.PositionsPage, error) {
	var page models.PositionsPage
	path := fmt.Sprintf("/portfolios/%d/positions/%s", id, asOf)
	if _, err := c.do(ctx, http.MethodGet, path, nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// positionsPatch is the wire shape of a position patch call.
type positionsPatch struct {
	Upsert []models.PositionPayload `json:"upsert"`
	Remove []string                 `json:"remove"`
}

// PatchPositions upserts and removes positions in a dated snapshot.
func (c *Client) PatchPositions(ctx context.Context, id int64, asOf models.Date, upsert []models.PositionPayload, remove []string) error {
	if upsert == nil {
		upsert = []models.PositionPayload{}
	}
	if remove == nil {
		remove = []string{}
	}
	path := fmt.Sprintf("/portfolios/%d/positions/%s", id, asOf)
	_, err := c.do(ctx, http.MethodPatch, path, nil, positionsPatch{Upsert: upsert, Remove: remove}, nil)
	return err
}

// DeletePositions removes every position in a dated snapshot.
func (c *Client) DeletePositions(ctx context.Context, id int64, asOf models.Date) error {
	path := fmt.Sprintf("/portfolios/%d/positions/%s", id, asOf)
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}

// ListPositionDates lists the as-of dates a portfolio has snapshots for.
func (c *Client) ListPositionDates(ctx context.Context, id int64) (*models.PositionDatesPage, error) {
	var page models.PositionDatesPage
	path := fmt.Sprintf("/portfolios/%d/positions", id)
	if _, err := c.do(ctx, http.MethodGet, path, nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PutValuation stores the valuation of a portfolio at a date.
func (c *Client) PutValuation(ctx context.Context, id int64, asOf models.Date, valuation models.Valuation) error {
	path := fmt.Sprintf("/portfolios/%d/valuations/%s", id, asOf)
	_, err := c.do(ctx, http.MethodPut, path, nil, valuation, nil)
	return err
}
