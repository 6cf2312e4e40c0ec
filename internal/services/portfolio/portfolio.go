// Package portfolio provides the portfolio facade over the Axioma Risk API
package portfolio

import (
	"context"
	"fmt"

	"github.com/bobmccarthy/riskfolio/internal/clients/axioma"
	"github.com/bobmccarthy/riskfolio/internal/common"
	"github.com/bobmccarthy/riskfolio/internal/interfaces"
	"github.com/bobmccarthy/riskfolio/internal/models"
	"github.com/bobmccarthy/riskfolio/internal/reconcile"
)

// DefaultChunkSize is the maximum number of positions carried by one
// patch call during a position replace.
const DefaultChunkSize = 10000

// Portfolio is the in-memory representation of a remote portfolio. The
// name is the natural key; the remote identity is resolved lazily and
// memoized. Positions are scoped to one as-of date and kept sorted by
// client ID. Instances are not safe for concurrent use.
type Portfolio struct {
	client interfaces.RiskClient
	logger *common.Logger

	name        string
	date        models.Date
	description string
	currency    string
	benchmark   *models.Benchmark

	id       int64
	resolved bool

	positions []models.Position
	chunkSize int

	valuation     *models.Valuation
	valuationDate models.Date
}

// New creates a portfolio facade for the given natural key and as-of date.
func New(client interfaces.RiskClient, logger *common.Logger, name string, asOf models.Date) *Portfolio {
	return &Portfolio{
		client:    client,
		logger:    logger,
		name:      name,
		date:      asOf,
		chunkSize: DefaultChunkSize,
	}
}

// Name returns the portfolio's natural key.
func (p *Portfolio) Name() string { return p.name }

// NaturalKey returns the portfolio's natural key.
func (p *Portfolio) NaturalKey() string { return p.name }

// SetName replaces the natural key. The memoized identity is untouched;
// identity is assigned exactly once per instance.
func (p *Portfolio) SetName(name string) { p.name = name }

// Date returns the as-of date the positions are scoped to.
func (p *Portfolio) Date() models.Date { return p.date }

// SetDate changes the as-of date. Any cached valuation is scoped to the
// previous date and is invalidated.
func (p *Portfolio) SetDate(asOf models.Date) {
	if asOf != p.valuationDate {
		p.valuation = nil
		p.valuationDate = models.Date{}
	}
	p.date = asOf
}

// Description returns the portfolio description.
func (p *Portfolio) Description() string { return p.description }

// SetDescription replaces the portfolio description.
func (p *Portfolio) SetDescription(description string) { p.description = description }

// Currency returns the portfolio's default currency.
func (p *Portfolio) Currency() string { return p.currency }

// SetCurrency replaces the default currency after ISO validation.
func (p *Portfolio) SetCurrency(currency string) error {
	if err := models.ValidateCurrency(currency); err != nil {
		return err
	}
	p.currency = currency
	return nil
}

// Benchmark returns the portfolio's benchmark, nil when unset.
func (p *Portfolio) Benchmark() *models.Benchmark { return p.benchmark }

// SetBenchmark replaces the portfolio's benchmark.
func (p *Portfolio) SetBenchmark(b models.Benchmark) { p.benchmark = &b }

// RemoteID returns the memoized remote identity, if resolved.
func (p *Portfolio) RemoteID() (int64, bool) { return p.id, p.resolved }

// SetChunkSize overrides the patch chunk size. Non-positive sizes are
// ignored.
func (p *Portfolio) SetChunkSize(size int) {
	if size > 0 {
		p.chunkSize = size
	}
}

func (p *Portfolio) payload() models.PortfolioPayload {
	return models.PortfolioPayload{
		Name:            p.name,
		LongName:        p.description,
		DefaultCurrency: p.currency,
	}
}

// Save upserts the portfolio's metadata. The position set is synchronized
// separately by ReplacePositions. The resolved identity is memoized.
func (p *Portfolio) Save(ctx context.Context) (int64, error) {
	id, err := reconcile.Upsert(ctx, p.logger, portfolioUpsert{p})
	if err != nil {
		return 0, err
	}
	p.id = id
	p.resolved = true
	return id, nil
}

// ensureID resolves the remote identity, saving the portfolio first when
// it has never been synchronized.
func (p *Portfolio) ensureID(ctx context.Context) error {
	if p.resolved {
		return nil
	}
	if _, err := p.Save(ctx); err != nil {
		return fmt.Errorf("portfolio %q has no identity and could not be saved: %w", p.name, err)
	}
	return nil
}

// portfolioUpsert adapts the facade to the reconcile state machine.
type portfolioUpsert struct {
	p *Portfolio
}

func (u portfolioUpsert) Kind() string       { return "portfolio" }
func (u portfolioUpsert) NaturalKey() string { return u.p.name }

func (u portfolioUpsert) Create(ctx context.Context) (int64, error) {
	return u.p.client.CreatePortfolio(ctx, u.p.payload())
}

func (u portfolioUpsert) ResolveID(ctx context.Context) (int64, error) {
	return reconcile.ResolveByName(ctx, u.p.client.ListPortfolios, "portfolio", u.p.name)
}

func (u portfolioUpsert) Update(ctx context.Context, id int64) error {
	return u.p.client.UpdatePortfolio(ctx, id, u.p.payload())
}

// ListAll fetches every portfolio visible to the session as lightweight
// facades with resolved identities and no positions.
func ListAll(ctx context.Context, client interfaces.RiskClient, logger *common.Logger) ([]*Portfolio, error) {
	page, err := client.ListPortfolios(ctx, axioma.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}

	portfolios := make([]*Portfolio, len(page.Items))
	for i, item := range page.Items {
		portfolios[i] = &Portfolio{
			client:      client,
			logger:      logger,
			name:        item.Name,
			description: item.LongName,
			currency:    item.DefaultCurrency,
			id:          item.ID,
			resolved:    true,
			chunkSize:   DefaultChunkSize,
		}
	}
	return portfolios, nil
}

var (
	_ reconcile.Member      = (*Portfolio)(nil)
	_ reconcile.Upsertable  = portfolioUpsert{}
	_ interfaces.RiskClient = (*axioma.Client)(nil)
)
