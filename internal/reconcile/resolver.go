package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobmccarthy/riskfolio/internal/clients/axioma"
	"github.com/bobmccarthy/riskfolio/internal/models"
)

// ErrNotFound indicates an exact-name lookup with zero matches.
var ErrNotFound = errors.New("no entity found with that name")

// ErrAmbiguousName indicates an exact-name lookup with more than one
// match. Ambiguity is a hard error rather than first-match-wins.
var ErrAmbiguousName = errors.New("name matched more than one entity")

// ListFunc is a filtered collection listing against one resource type.
type ListFunc func(ctx context.Context, opts axioma.ListOptions) (*models.Page, error)

// ResolveByName looks up the remote identity of the entity whose name
// exactly equals name. Extra predicates narrow the lookup scope (the
// analysis-definition team filter).
func ResolveByName(ctx context.Context, list ListFunc, kind, name string, extra ...string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: %s has no name", ErrMissingName, kind)
	}

	filter := axioma.Equals("name", name)
	if len(extra) > 0 {
		filter = axioma.And(append([]string{filter}, extra...)...)
	}

	page, err := list(ctx, axioma.ListOptions{Filter: filter})
	if err != nil {
		return 0, fmt.Errorf("failed to look up %s %q: %w", kind, name, err)
	}

	switch len(page.Items) {
	case 0:
		return 0, fmt.Errorf("%w: %s %q", ErrNotFound, kind, name)
	case 1:
		return page.Items[0].ID, nil
	default:
		return 0, fmt.Errorf("%w: %s %q matched %d records", ErrAmbiguousName, kind, name, len(page.Items))
	}
}
