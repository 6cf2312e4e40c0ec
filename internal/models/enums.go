package models

// IdentifierType enumerates the instrument identifier vocabularies the
// Axioma Risk API accepts.
type IdentifierType string

const (
	IdentifierISIN         IdentifierType = "ISIN"
	IdentifierTicker       IdentifierType = "Ticker"
	IdentifierSEDOL        IdentifierType = "SEDOL"
	IdentifierCUSIP        IdentifierType = "CUSIP"
	IdentifierCurrency     IdentifierType = "Currency"
	IdentifierClientGiven  IdentifierType = "ClientGiven"
	IdentifierAxiomaDataID IdentifierType = "AxiomaDataId"
	IdentifierPortfolio    IdentifierType = "Portfolio"
	IdentifierPortfolioID  IdentifierType = "PortfolioId"
)

// QuantityScale enumerates how a position quantity is expressed.
type QuantityScale string

const (
	ScaleNumberOfInstruments QuantityScale = "NumberOfInstruments"
	ScaleMarketValue         QuantityScale = "MarketValue"
	ScaleWeight              QuantityScale = "Weight"
	ScaleParValue            QuantityScale = "ParValue"
	ScalePercentOfAUM        QuantityScale = "PercentOfAUM"
)
