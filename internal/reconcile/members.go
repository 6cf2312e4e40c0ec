package reconcile

import (
	"context"
	"fmt"
	"slices"

	"github.com/bobmccarthy/riskfolio/internal/common"
)

// Member is an entity that can join a membership collection: it either
// already holds a remote identity or can be saved to obtain one.
type Member interface {
	RemoteID() (int64, bool)
	Save(ctx context.Context) (int64, error)
	NaturalKey() string
}

// AddMembers resolves each candidate to its remote identity, saving any
// candidate that has none yet, and returns the collection extended with
// those identities, deduplicated and sorted ascending.
func AddMembers[M Member](ctx context.Context, logger *common.Logger, ids []int64, members []M) ([]int64, error) {
	for _, m := range members {
		id, ok := m.RemoteID()
		if !ok {
			logger.Debug().Str("name", m.NaturalKey()).Msg("Member has no identity, saving first")
			saved, err := m.Save(ctx)
			if err != nil {
				return ids, fmt.Errorf("failed to save member %q: %w", m.NaturalKey(), err)
			}
			id = saved
		}
		ids = append(ids, id)
	}
	return NormalizeIDs(ids), nil
}

// NormalizeIDs returns ids deduplicated and sorted ascending. Every
// membership mutation passes through here. The input slice is left
// untouched.
func NormalizeIDs(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

// RemoveID removes the first occurrence of id, a no-op when absent.
func RemoveID(ids []int64, id int64) []int64 {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
