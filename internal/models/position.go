package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	// The Axioma Risk API carries quantity values as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrIncompletePosition indicates a position missing a mandatory field.
var ErrIncompletePosition = errors.New("position is missing a mandatory field")

// ErrUnknownCurrency indicates a currency code outside the ISO 4217 table.
var ErrUnknownCurrency = errors.New("unknown currency code")

// ValidateCurrency checks a currency code against the ISO 4217 table.
// Empty codes are allowed; currency is optional everywhere it appears.
func ValidateCurrency(code string) error {
	if code == "" {
		return nil
	}
	if money.GetCurrency(strings.ToUpper(code)) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return nil
}

// Identifier names an instrument in one identifier vocabulary. Immutable.
type Identifier struct {
	Type  IdentifierType `json:"type"`
	Value string         `json:"value"`
}

// Identifiers is an ordered, append-only collection of identifiers.
type Identifiers []Identifier

// Add appends an identifier and returns the extended collection.
func (ids Identifiers) Add(t IdentifierType, value string) Identifiers {
	return append(ids, Identifier{Type: t, Value: value})
}

// Quantity expresses how much of an instrument a position holds.
type Quantity struct {
	Value    decimal.Decimal `json:"value"`
	Scale    QuantityScale   `json:"scale"`
	Currency string          `json:"currency,omitempty"`
}

// NewQuantity builds a quantity with no currency.
func NewQuantity(value decimal.Decimal, scale QuantityScale) Quantity {
	return Quantity{Value: value, Scale: scale}
}

// Position is a client holding in a portfolio snapshot. ClientID is the
// natural key; ordering and equality are defined by ClientID alone.
type Position struct {
	ClientID    string
	Identifiers Identifiers
	Quantity    Quantity
	Description string
	Attributes  map[string]string
}

// Equal reports whether two positions refer to the same client holding.
func (p Position) Equal(other Position) bool {
	return p.ClientID == other.ClientID
}

// Compare orders positions by ClientID.
func (p Position) Compare(other Position) int {
	return strings.Compare(p.ClientID, other.ClientID)
}

// Validate checks that all mandatory fields are present before the
// position crosses the wire.
func (p Position) Validate() error {
	if p.ClientID == "" {
		return fmt.Errorf("%w: clientId", ErrIncompletePosition)
	}
	if len(p.Identifiers) == 0 {
		return fmt.Errorf("%w: identifiers (clientId %s)", ErrIncompletePosition, p.ClientID)
	}
	if p.Quantity.Scale == "" {
		return fmt.Errorf("%w: quantity scale (clientId %s)", ErrIncompletePosition, p.ClientID)
	}
	if err := ValidateCurrency(p.Quantity.Currency); err != nil {
		return fmt.Errorf("position %s: %w", p.ClientID, err)
	}
	return nil
}

// Payload converts the position to its write representation.
func (p Position) Payload() PositionPayload {
	return PositionPayload{
		ClientID:    p.ClientID,
		Identifiers: p.Identifiers,
		Quantity:    p.Quantity,
		Description: p.Description,
		Attributes:  p.Attributes,
	}
}

// PositionPayload is the wire shape of a single position.
type PositionPayload struct {
	ClientID    string            `json:"clientId"`
	Identifiers Identifiers       `json:"identifiers"`
	Quantity    Quantity          `json:"quantity"`
	Description string            `json:"description,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// Position converts a wire payload back into a domain position.
func (pp PositionPayload) Position() Position {
	return Position{
		ClientID:    pp.ClientID,
		Identifiers: pp.Identifiers,
		Quantity:    pp.Quantity,
		Description: pp.Description,
		Attributes:  pp.Attributes,
	}
}

// SortPositions sorts a position list ascending by ClientID, in place.
func SortPositions(positions []Position) {
	slices.SortFunc(positions, Position.Compare)
}
