// Package interfaces defines contracts between riskfolio components
package interfaces

import (
	"context"

	"github.com/bobmccarthy/riskfolio/internal/clients/axioma"
	"github.com/bobmccarthy/riskfolio/internal/models"
)

// RiskClient is the transport contract the entity services consume. It is
// satisfied by *axioma.Client.
type RiskClient interface {
	// Portfolios
	ListPortfolios(ctx context.Context, opts axioma.ListOptions) (*models.Page, error)
	GetPortfolio(ctx context.Context, id int64) (*models.Record, error)
	CreatePortfolio(ctx context.Context, portfolio models.PortfolioPayload) (int64, error)
	UpdatePortfolio(ctx context.Context, id int64, portfolio models.PortfolioPayload) error
	DeletePortfolio(ctx context.Context, id int64) error

	// Positions and valuations
	GetPositions(ctx context.Context, id int64, asOf models.Date) (*models.PositionsPage, error)
	PatchPositions(ctx context.Context, id int64, asOf models.Date, upsert []models.PositionPayload, remove []string) error
	DeletePositions(ctx context.Context, id int64, asOf models.Date) error
	ListPositionDates(ctx context.Context, id int64) (*models.PositionDatesPage, error)
	PutValuation(ctx context.Context, id int64, asOf models.Date, valuation models.Valuation) error

	// Portfolio groups
	ListPortfolioGroups(ctx context.Context, opts axioma.ListOptions) (*models.Page, error)
	GetPortfolioGroup(ctx context.Context, id int64) (*models.Record, error)
	CreatePortfolioGroup(ctx context.Context, group models.GroupPayload) (int64, error)
	UpdatePortfolioGroup(ctx context.Context, id int64, group models.GroupPayload) error
	DeletePortfolioGroup(ctx context.Context, id int64) error

	// Batch and analysis definitions
	ListBatchDefinitions(ctx context.Context, opts axioma.ListOptions) (*models.Page, error)
	GetBatchDefinition(ctx context.Context, id int64) (*models.Record, error)
	CreateBatchDefinition(ctx context.Context, batch models.BatchPayload) (int64, error)
	UpdateBatchDefinition(ctx context.Context, id int64, batch models.BatchPayload) error
	DeleteBatchDefinition(ctx context.Context, id int64) error
	ListAnalysisDefinitions(ctx context.Context, opts axioma.ListOptions) (*models.Page, error)
}
