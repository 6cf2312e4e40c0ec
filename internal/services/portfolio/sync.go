package portfolio

import (
	"context"

	"github.com/bobmccarthy/riskfolio/internal/models"
)

// ReplacePositions performs a full replace of the portfolio's remote
// position snapshot at the current as-of date: delete everything, then
// upsert the local set in sequential chunks. The first failing step
// aborts the pipeline; chunks already applied stay applied, and re-running
// the pipeline is idempotent because it always starts with a fresh
// delete-all. Remote failures are logged and reported as false, never
// raised; true means every step succeeded.
func (p *Portfolio) ReplacePositions(ctx context.Context) bool {
	if p.date.IsZero() {
		p.logger.Error().Str("portfolio", p.name).Msg("Cannot replace positions without an as-of date")
		return false
	}
	if !p.resolved {
		if _, err := p.Save(ctx); err != nil {
			p.logger.Error().Err(err).Str("portfolio", p.name).Msg("Failed to save portfolio before replacing positions")
			return false
		}
	}

	p.logger.Info().
		Int64("id", p.id).
		Str("date", p.date.String()).
		Msg("Deleting positions")

	if err := p.client.DeletePositions(ctx, p.id, p.date); err != nil {
		p.logger.Error().Err(err).
			Int64("id", p.id).
			Str("date", p.date.String()).
			Msg("Failed to delete positions")
		return false
	}

	chunks := chunkPositions(p.positions, p.chunkSize)

	p.logger.Info().
		Int("positions", len(p.positions)).
		Int64("id", p.id).
		Str("date", p.date.String()).
		Int("chunk_size", p.chunkSize).
		Msg("Adding positions in chunks")

	for i, chunk := range chunks {
		upsert := make([]models.PositionPayload, len(chunk))
		for j, position := range chunk {
			upsert[j] = position.Payload()
		}

		if err := p.client.PatchPositions(ctx, p.id, p.date, upsert, nil); err != nil {
			p.logger.Error().Err(err).
				Int("chunk", i+1).
				Int("chunks", len(chunks)).
				Int64("id", p.id).
				Str("date", p.date.String()).
				Msg("Failed to patch positions chunk")
			return false
		}

		p.logger.Info().
			Int("chunk", i+1).
			Int("chunks", len(chunks)).
			Int("positions", len(chunk)).
			Int64("id", p.id).
			Str("date", p.date.String()).
			Msg("Patched positions chunk")
	}

	return true
}

// chunkPositions partitions positions into ordered sub-lists of at most
// size elements.
func chunkPositions(positions []models.Position, size int) [][]models.Position {
	if size <= 0 {
		size = DefaultChunkSize
	}
	var chunks [][]models.Position
	for start := 0; start < len(positions); start += size {
		end := start + size
		if end > len(positions) {
			end = len(positions)
		}
		chunks = append(chunks, positions[start:end])
	}
	return chunks
}
