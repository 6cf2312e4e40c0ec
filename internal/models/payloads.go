package models

// Wire shapes shared between the API client and the entity services.
// Field names match the Axioma Risk REST contract.

// PortfolioPayload is the write representation of portfolio metadata.
type PortfolioPayload struct {
	Name            string `json:"name"`
	LongName        string `json:"longName,omitempty"`
	DefaultCurrency string `json:"defaultCurrency,omitempty"`
}

// GroupPayload is the write representation of a portfolio group.
type GroupPayload struct {
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	PortfolioIDs []int64 `json:"portfolioIds"`
}

// BatchPayload is the write representation of a batch definition.
type BatchPayload struct {
	Name                  string  `json:"name"`
	Description           string  `json:"description,omitempty"`
	PortfolioGroupIDs     []int64 `json:"portfolioGroupIds"`
	AnalysisDefinitionIDs []int64 `json:"analysisDefinitionIds"`
}

// Record is one entry of a paged collection listing.
type Record struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	LongName        string `json:"longName,omitempty"`
	Description     string `json:"description,omitempty"`
	DefaultCurrency string `json:"defaultCurrency,omitempty"`
	Team            string `json:"team,omitempty"`
}

// Page is a paged collection response.
type Page struct {
	Items []Record `json:"items"`
	Total int      `json:"total,omitempty"`
}

// PositionsPage is the read representation of a portfolio's positions at
// one as-of date.
type PositionsPage struct {
	Items    []PositionPayload `json:"items"`
	Currency string            `json:"currency,omitempty"`
}

// PositionDateRecord describes one dated position snapshot.
type PositionDateRecord struct {
	Date          Date `json:"date"`
	PositionCount int  `json:"positionCount,omitempty"`
}

// PositionDatesPage lists the as-of dates a portfolio has snapshots for.
type PositionDatesPage struct {
	Items []PositionDateRecord `json:"items"`
}
