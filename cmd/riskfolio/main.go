package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/bobmccarthy/riskfolio/internal/clients/axioma"
	"github.com/bobmccarthy/riskfolio/internal/common"
	"github.com/bobmccarthy/riskfolio/internal/models"
	"github.com/bobmccarthy/riskfolio/internal/services/portfolio"
)

// portfolioFile is the on-disk shape of a portfolio definition handed to
// the sync command.
type portfolioFile struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Currency    string                   `json:"currency,omitempty"`
	Positions   []models.PositionPayload `json:"positions"`
}

func main() {
	var (
		configPath    = flag.String("config", os.Getenv("RISKFOLIO_CONFIG"), "path to riskfolio.toml")
		portfolioPath = flag.String("portfolio", "", "path to a portfolio definition JSON file")
		asOfDate      = flag.String("date", "", "as-of date (YYYY-MM-DD)")
		showVersion   = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(common.GetFullVersion())
		return
	}

	config, err := common.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := common.NewLogger(config.Logging.Level)

	if *portfolioPath == "" || *asOfDate == "" {
		fmt.Fprintln(os.Stderr, "Usage: riskfolio -portfolio <file.json> -date <YYYY-MM-DD> [-config <riskfolio.toml>]")
		os.Exit(2)
	}

	asOf, err := models.ParseDate(*asOfDate)
	if err != nil {
		logger.Error().Err(err).Str("date", *asOfDate).Msg("Invalid as-of date")
		os.Exit(2)
	}

	definition, err := loadPortfolioFile(*portfolioPath)
	if err != nil {
		logger.Error().Err(err).Str("path", *portfolioPath).Msg("Failed to load portfolio file")
		os.Exit(1)
	}

	client := axioma.NewClient(config.API.APIKey,
		axioma.WithBaseURL(config.API.BaseURL),
		axioma.WithTimeout(config.API.GetTimeout()),
		axioma.WithRateLimit(config.API.RateLimit),
		axioma.WithLogger(logger),
	)

	p := portfolio.New(client, logger, definition.Name, asOf)
	p.SetDescription(definition.Description)
	if err := p.SetCurrency(definition.Currency); err != nil {
		logger.Error().Err(err).Msg("Invalid portfolio currency")
		os.Exit(2)
	}
	p.SetChunkSize(config.Sync.ChunkSize)

	positions := make([]models.Position, len(definition.Positions))
	for i, payload := range definition.Positions {
		positions[i] = payload.Position()
		if err := positions[i].Validate(); err != nil {
			logger.Error().Err(err).Msg("Invalid position")
			os.Exit(2)
		}
	}
	p.SetPositions(positions)

	ctx := context.Background()

	id, err := p.Save(ctx)
	if err != nil {
		logger.Error().Err(err).Str("portfolio", definition.Name).Msg("Failed to save portfolio")
		os.Exit(1)
	}
	logger.Info().Int64("id", id).Str("portfolio", definition.Name).Msg("Portfolio saved")

	if !p.ReplacePositions(ctx) {
		logger.Error().
			Str("portfolio", definition.Name).
			Str("date", asOf.String()).
			Msg("Position replace failed; re-run to retry from a fresh delete")
		os.Exit(1)
	}

	logger.Info().
		Int("positions", len(positions)).
		Str("portfolio", definition.Name).
		Str("date", asOf.String()).
		Msg("Positions synchronized")
}

func loadPortfolioFile(path string) (*portfolioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var definition portfolioFile
	if err := json.Unmarshal(data, &definition); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if definition.Name == "" {
		return nil, fmt.Errorf("portfolio file %s has no name", path)
	}
	return &definition, nil
}
