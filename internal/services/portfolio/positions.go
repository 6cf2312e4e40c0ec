package portfolio

import (
	"context"
	"fmt"
	"iter"

	"github.com/bobmccarthy/riskfolio/internal/models"
)

// Positions returns the local position set, sorted by client ID.
func (p *Portfolio) Positions() []models.Position { return p.positions }

// SetPositions replaces the local position set, re-sorted by client ID.
func (p *Portfolio) SetPositions(positions []models.Position) {
	p.positions = positions
	models.SortPositions(p.positions)
}

// AddPosition appends a position and re-sorts the set.
func (p *Portfolio) AddPosition(position models.Position) {
	p.positions = append(p.positions, position)
	models.SortPositions(p.positions)
}

// RemovePosition removes the first position with the given client ID, a
// no-op when absent.
func (p *Portfolio) RemovePosition(clientID string) {
	for i, existing := range p.positions {
		if existing.ClientID == clientID {
			p.positions = append(p.positions[:i], p.positions[i+1:]...)
			return
		}
	}
}

// FetchPositions replaces the local position set with the remote snapshot
// at the given date and returns the number of positions fetched. Local
// state is untouched when the fetch fails.
func (p *Portfolio) FetchPositions(ctx context.Context, asOf models.Date) (int, error) {
	if asOf.IsZero() {
		return 0, fmt.Errorf("%w: as-of date is not set", models.ErrBadDate)
	}
	if err := p.ensureID(ctx); err != nil {
		return 0, err
	}

	page, err := p.client.GetPositions(ctx, p.id, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch positions for portfolio %q (id %d) on %s: %w", p.name, p.id, asOf, err)
	}

	positions := make([]models.Position, len(page.Items))
	for i, item := range page.Items {
		positions[i] = item.Position()
	}
	models.SortPositions(positions)

	p.positions = positions
	p.SetDate(asOf)
	if page.Currency != "" {
		p.currency = page.Currency
	}
	return len(positions), nil
}

// PositionDates returns a lazy sequence of the as-of dates the portfolio
// has snapshots for. The sequence is restartable and re-queries the
// service on every iteration; nothing is cached. A portfolio without a
// remote identity is saved first.
func (p *Portfolio) PositionDates(ctx context.Context) iter.Seq2[models.PositionDateRecord, error] {
	return func(yield func(models.PositionDateRecord, error) bool) {
		if err := p.ensureID(ctx); err != nil {
			yield(models.PositionDateRecord{}, err)
			return
		}

		page, err := p.client.ListPositionDates(ctx, p.id)
		if err != nil {
			yield(models.PositionDateRecord{}, fmt.Errorf("failed to list position dates for portfolio %q (id %d): %w", p.name, p.id, err))
			return
		}

		for _, record := range page.Items {
			if !yield(record, nil) {
				return
			}
		}
	}
}

// SetValuation caches the valuation locally and pushes it remotely,
// scoped to the portfolio's identity and the given date. The cache is
// invalidated when the portfolio date changes.
func (p *Portfolio) SetValuation(ctx context.Context, valuation models.Valuation, asOf models.Date) error {
	if err := valuation.Validate(); err != nil {
		return err
	}
	if asOf.IsZero() {
		return fmt.Errorf("%w: as-of date is not set", models.ErrBadDate)
	}
	if err := p.ensureID(ctx); err != nil {
		return err
	}

	if err := p.client.PutValuation(ctx, p.id, asOf, valuation); err != nil {
		return fmt.Errorf("failed to store valuation for portfolio %q (id %d) on %s: %w", p.name, p.id, asOf, err)
	}

	p.valuation = &valuation
	p.valuationDate = asOf
	return nil
}

// Valuation returns the cached valuation, nil when none is cached or the
// portfolio date moved away from the valuation's date.
func (p *Portfolio) Valuation() *models.Valuation {
	if p.valuation == nil || p.valuationDate != p.date {
		return nil
	}
	return p.valuation
}
