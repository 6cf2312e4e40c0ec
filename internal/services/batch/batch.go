package batch

import (
	"context"

	"github.com/bobmccarthy/riskfolio/internal/common"
	"github.com/bobmccarthy/riskfolio/internal/interfaces"
	"github.com/bobmccarthy/riskfolio/internal/models"
	"github.com/bobmccarthy/riskfolio/internal/reconcile"
	"github.com/bobmccarthy/riskfolio/internal/services/group"
)

// Definition is the in-memory representation of a remote batch
// definition: a named pairing of portfolio groups with analysis
// definitions. Both membership sets are always deduplicated and sorted
// ascending. Instances are not safe for concurrent use.
type Definition struct {
	client interfaces.RiskClient
	logger *common.Logger

	name        string
	description string

	id       int64
	resolved bool

	portfolioGroupIDs     []int64
	analysisDefinitionIDs []int64
}

// New creates a batch-definition facade for the given natural key.
func New(client interfaces.RiskClient, logger *common.Logger, name string) *Definition {
	return &Definition{
		client: client,
		logger: logger,
		name:   name,
	}
}

// Name returns the definition's natural key.
func (d *Definition) Name() string { return d.name }

// NaturalKey returns the definition's natural key.
func (d *Definition) NaturalKey() string { return d.name }

// SetName replaces the natural key.
func (d *Definition) SetName(name string) { d.name = name }

// Description returns the definition description.
func (d *Definition) Description() string { return d.description }

// SetDescription replaces the definition description.
func (d *Definition) SetDescription(description string) { d.description = description }

// RemoteID returns the memoized remote identity, if resolved.
func (d *Definition) RemoteID() (int64, bool) { return d.id, d.resolved }

// PortfolioGroupIDs returns the member group identities, deduplicated
// and sorted ascending.
func (d *Definition) PortfolioGroupIDs() []int64 { return d.portfolioGroupIDs }

// AnalysisDefinitionIDs returns the member analysis-definition
// identities, deduplicated and sorted ascending.
func (d *Definition) AnalysisDefinitionIDs() []int64 { return d.analysisDefinitionIDs }

// AddGroups adds portfolio groups to the definition's membership. Groups
// without a remote identity are saved first; the resulting set is
// deduplicated and sorted.
func (d *Definition) AddGroups(ctx context.Context, groups ...*group.Group) error {
	ids, err := reconcile.AddMembers(ctx, d.logger, d.portfolioGroupIDs, groups)
	if err != nil {
		return err
	}
	d.portfolioGroupIDs = ids
	return nil
}

// RemoveGroup removes a member by its live facade, a no-op when the group
// has no identity or is not a member.
func (d *Definition) RemoveGroup(g *group.Group) {
	if id, ok := g.RemoteID(); ok {
		d.RemoveGroupID(id)
	}
}

// RemoveGroupID removes the first matching group identity, a no-op when
// absent.
func (d *Definition) RemoveGroupID(id int64) {
	d.portfolioGroupIDs = reconcile.RemoveID(d.portfolioGroupIDs, id)
}

// AddAnalysisDefinitions adds analysis definitions to the definition's
// membership, resolving unresolved identities first; the resulting set is
// deduplicated and sorted.
func (d *Definition) AddAnalysisDefinitions(ctx context.Context, definitions ...*AnalysisDefinition) error {
	ids, err := reconcile.AddMembers(ctx, d.logger, d.analysisDefinitionIDs, definitions)
	if err != nil {
		return err
	}
	d.analysisDefinitionIDs = ids
	return nil
}

// RemoveAnalysisDefinition removes a member by its live handle, a no-op
// when the definition has no identity or is not a member.
func (d *Definition) RemoveAnalysisDefinition(a *AnalysisDefinition) {
	if id, ok := a.RemoteID(); ok {
		d.RemoveAnalysisDefinitionID(id)
	}
}

// RemoveAnalysisDefinitionID removes the first matching
// analysis-definition identity, a no-op when absent.
func (d *Definition) RemoveAnalysisDefinitionID(id int64) {
	d.analysisDefinitionIDs = reconcile.RemoveID(d.analysisDefinitionIDs, id)
}

func (d *Definition) payload() models.BatchPayload {
	groupIDs := d.portfolioGroupIDs
	if groupIDs == nil {
		groupIDs = []int64{}
	}
	analysisIDs := d.analysisDefinitionIDs
	if analysisIDs == nil {
		analysisIDs = []int64{}
	}
	return models.BatchPayload{
		Name:                  d.name,
		Description:           d.description,
		PortfolioGroupIDs:     groupIDs,
		AnalysisDefinitionIDs: analysisIDs,
	}
}

// Save upserts the batch definition, memoizing the resolved identity.
func (d *Definition) Save(ctx context.Context) (int64, error) {
	id, err := reconcile.Upsert(ctx, d.logger, definitionUpsert{d})
	if err != nil {
		return 0, err
	}
	d.id = id
	d.resolved = true
	return id, nil
}

// ResolveID looks up the definition's identity by exact name and
// memoizes it.
func (d *Definition) ResolveID(ctx context.Context) (int64, error) {
	if d.resolved {
		return d.id, nil
	}

	id, err := reconcile.ResolveByName(ctx, d.client.ListBatchDefinitions, "batch definition", d.name)
	if err != nil {
		return 0, err
	}

	d.id = id
	d.resolved = true
	return id, nil
}

// definitionUpsert adapts the facade to the reconcile state machine.
type definitionUpsert struct {
	d *Definition
}

func (u definitionUpsert) Kind() string       { return "batch definition" }
func (u definitionUpsert) NaturalKey() string { return u.d.name }

func (u definitionUpsert) Create(ctx context.Context) (int64, error) {
	return u.d.client.CreateBatchDefinition(ctx, u.d.payload())
}

func (u definitionUpsert) ResolveID(ctx context.Context) (int64, error) {
	return reconcile.ResolveByName(ctx, u.d.client.ListBatchDefinitions, "batch definition", u.d.name)
}

func (u definitionUpsert) Update(ctx context.Context, id int64) error {
	return u.d.client.UpdateBatchDefinition(ctx, id, u.d.payload())
}

var _ reconcile.Upsertable = definitionUpsert{}
