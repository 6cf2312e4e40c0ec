// Package batch provides the batch- and analysis-definition facades over
// the Axioma Risk API
package batch

import (
	"context"

	"github.com/bobmccarthy/riskfolio/internal/clients/axioma"
	"github.com/bobmccarthy/riskfolio/internal/common"
	"github.com/bobmccarthy/riskfolio/internal/interfaces"
	"github.com/bobmccarthy/riskfolio/internal/reconcile"
)

// StandardViewsTeam is the team every analysis-definition lookup is
// scoped to. Definitions with the same name outside this team are
// invisible to the resolver.
const StandardViewsTeam = "Axioma Standard Views (Readonly)"

// AnalysisDefinition is the in-memory handle of a remote analysis
// definition. Analysis definitions are never created from this layer;
// identity comes from an exact name lookup scoped to StandardViewsTeam.
type AnalysisDefinition struct {
	client interfaces.RiskClient
	logger *common.Logger

	name     string
	id       int64
	resolved bool
}

// NewAnalysisDefinition creates an analysis-definition handle for the
// given natural key.
func NewAnalysisDefinition(client interfaces.RiskClient, logger *common.Logger, name string) *AnalysisDefinition {
	return &AnalysisDefinition{
		client: client,
		logger: logger,
		name:   name,
	}
}

// Name returns the definition's natural key.
func (a *AnalysisDefinition) Name() string { return a.name }

// NaturalKey returns the definition's natural key.
func (a *AnalysisDefinition) NaturalKey() string { return a.name }

// RemoteID returns the memoized remote identity, if resolved.
func (a *AnalysisDefinition) RemoteID() (int64, bool) { return a.id, a.resolved }

// ResolveID looks up the definition's identity by exact name within
// StandardViewsTeam and memoizes it.
func (a *AnalysisDefinition) ResolveID(ctx context.Context) (int64, error) {
	if a.resolved {
		return a.id, nil
	}

	id, err := reconcile.ResolveByName(ctx, a.client.ListAnalysisDefinitions,
		"analysis definition", a.name, axioma.Equals("team", StandardViewsTeam))
	if err != nil {
		return 0, err
	}

	a.id = id
	a.resolved = true
	return id, nil
}

// Save resolves the definition's identity. Analysis definitions are
// read-only from this layer, so saving never writes; it exists to give
// the definition the same membership capability as writable entities.
func (a *AnalysisDefinition) Save(ctx context.Context) (int64, error) {
	return a.ResolveID(ctx)
}

var _ reconcile.Member = (*AnalysisDefinition)(nil)
