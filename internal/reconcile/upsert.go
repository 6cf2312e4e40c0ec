// Package reconcile converges local entity state with the remote service.
// It owns the create-or-update state machine, exact-name identity
// resolution, and the membership-set invariants shared by the group-like
// entities.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobmccarthy/riskfolio/internal/clients/axioma"
	"github.com/bobmccarthy/riskfolio/internal/common"
)

// ErrMissingName indicates an entity whose natural key was never set.
var ErrMissingName = errors.New("natural key is required before any remote operation")

// Upsertable is the contract an entity hands to Upsert. Create returns the
// identity from the creation response; ResolveID looks up the identity of
// an existing entity with the same natural key; Update replaces that
// entity's remote representation.
type Upsertable interface {
	Kind() string
	NaturalKey() string
	Create(ctx context.Context) (int64, error)
	ResolveID(ctx context.Context) (int64, error)
	Update(ctx context.Context, id int64) error
}

// Upsert creates the entity remotely, falling back to update when the
// server reports a duplicate resource. Idempotent on the natural key: one
// write on success, one write + one read + one write on conflict. A second
// conflict during the fallback update is fatal, as is every failure other
// than the initial duplicate.
func Upsert(ctx context.Context, logger *common.Logger, entity Upsertable) (int64, error) {
	kind, name := entity.Kind(), entity.NaturalKey()
	if name == "" {
		return 0, fmt.Errorf("%w: %s has no name", ErrMissingName, kind)
	}

	id, err := entity.Create(ctx)
	if err == nil {
		logger.Info().Str("kind", kind).Str("name", name).Int64("id", id).Msg("Created")
		return id, nil
	}
	if !axioma.IsDuplicate(err) {
		return 0, fmt.Errorf("failed to create %s %q: %w", kind, name, err)
	}

	logger.Info().Str("kind", kind).Str("name", name).Msg("Already exists, fetching existing identity")
	id, err = entity.ResolveID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve existing %s %q after conflict: %w", kind, name, err)
	}

	if err := entity.Update(ctx, id); err != nil {
		return 0, fmt.Errorf("failed to update %s %q (id %d): %w", kind, name, id, err)
	}

	logger.Info().Str("kind", kind).Str("name", name).Int64("id", id).Msg("Updated existing")
	return id, nil
}
