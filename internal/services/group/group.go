// Package group provides the portfolio-group facade over the Axioma Risk API
package group

import (
	"context"

	"github.com/bobmccarthy/riskfolio/internal/common"
	"github.com/bobmccarthy/riskfolio/internal/interfaces"
	"github.com/bobmccarthy/riskfolio/internal/models"
	"github.com/bobmccarthy/riskfolio/internal/reconcile"
	"github.com/bobmccarthy/riskfolio/internal/services/portfolio"
)

// Group is the in-memory representation of a remote portfolio group. The
// name is the natural key; members are portfolio identities, always
// deduplicated and sorted ascending. Instances are not safe for
// concurrent use.
type Group struct {
	client interfaces.RiskClient
	logger *common.Logger

	name        string
	description string

	id       int64
	resolved bool

	portfolioIDs []int64
}

// New creates a portfolio-group facade for the given natural key.
func New(client interfaces.RiskClient, logger *common.Logger, name string) *Group {
	return &Group{
		client: client,
		logger: logger,
		name:   name,
	}
}

// Name returns the group's natural key.
func (g *Group) Name() string { return g.name }

// NaturalKey returns the group's natural key.
func (g *Group) NaturalKey() string { return g.name }

// SetName replaces the natural key.
func (g *Group) SetName(name string) { g.name = name }

// Description returns the group description.
func (g *Group) Description() string { return g.description }

// SetDescription replaces the group description.
func (g *Group) SetDescription(description string) { g.description = description }

// RemoteID returns the memoized remote identity, if resolved.
func (g *Group) RemoteID() (int64, bool) { return g.id, g.resolved }

// PortfolioIDs returns the member portfolio identities, deduplicated and
// sorted ascending.
func (g *Group) PortfolioIDs() []int64 { return g.portfolioIDs }

// SetPortfolioIDs replaces the membership set, normalized.
func (g *Group) SetPortfolioIDs(ids []int64) {
	g.portfolioIDs = reconcile.NormalizeIDs(ids)
}

// AddPortfolios adds portfolios to the group's membership. Portfolios
// without a remote identity are saved first; the resulting set is
// deduplicated and sorted.
func (g *Group) AddPortfolios(ctx context.Context, portfolios ...*portfolio.Portfolio) error {
	ids, err := reconcile.AddMembers(ctx, g.logger, g.portfolioIDs, portfolios)
	if err != nil {
		return err
	}
	g.portfolioIDs = ids
	return nil
}

// RemovePortfolio removes a member by its live facade, a no-op when the
// portfolio has no identity or is not a member.
func (g *Group) RemovePortfolio(p *portfolio.Portfolio) {
	if id, ok := p.RemoteID(); ok {
		g.RemovePortfolioID(id)
	}
}

// RemovePortfolioID removes the first matching member identity, a no-op
// when absent.
func (g *Group) RemovePortfolioID(id int64) {
	g.portfolioIDs = reconcile.RemoveID(g.portfolioIDs, id)
}

func (g *Group) payload() models.GroupPayload {
	ids := g.portfolioIDs
	if ids == nil {
		ids = []int64{}
	}
	return models.GroupPayload{
		Name:         g.name,
		Description:  g.description,
		PortfolioIDs: ids,
	}
}

// Save upserts the group, memoizing the resolved identity.
func (g *Group) Save(ctx context.Context) (int64, error) {
	id, err := reconcile.Upsert(ctx, g.logger, groupUpsert{g})
	if err != nil {
		return 0, err
	}
	g.id = id
	g.resolved = true
	return id, nil
}

// groupUpsert adapts the facade to the reconcile state machine.
type groupUpsert struct {
	g *Group
}

func (u groupUpsert) Kind() string       { return "portfolio group" }
func (u groupUpsert) NaturalKey() string { return u.g.name }

func (u groupUpsert) Create(ctx context.Context) (int64, error) {
	return u.g.client.CreatePortfolioGroup(ctx, u.g.payload())
}

func (u groupUpsert) ResolveID(ctx context.Context) (int64, error) {
	return reconcile.ResolveByName(ctx, u.g.client.ListPortfolioGroups, "portfolio group", u.g.name)
}

func (u groupUpsert) Update(ctx context.Context, id int64) error {
	return u.g.client.UpdatePortfolioGroup(ctx, id, u.g.payload())
}

var (
	_ reconcile.Member     = (*Group)(nil)
	_ reconcile.Upsertable = groupUpsert{}
)
