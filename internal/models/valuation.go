package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrIncompleteValuation indicates a valuation missing a mandatory field.
var ErrIncompleteValuation = errors.New("valuation is missing a mandatory field")

// Benchmark names the index a portfolio is measured against.
type Benchmark struct {
	Name        string      `json:"name"`
	Identifiers Identifiers `json:"identifiers,omitempty"`
}

// Valuation carries the market-value summary of a portfolio snapshot.
// AUM and NetValue are mandatory; the long/short/gross breakdown and the
// unit count are optional.
type Valuation struct {
	AUM      *decimal.Decimal `json:"aum"`
	Scale    QuantityScale    `json:"scale"`
	NetValue *decimal.Decimal `json:"netValue"`
	LongAUM  *decimal.Decimal `json:"longAum,omitempty"`
	ShortAUM *decimal.Decimal `json:"shortAum,omitempty"`
	GrossAUM *decimal.Decimal `json:"grossAum,omitempty"`
	Units    *decimal.Decimal `json:"units,omitempty"`
}

// Validate checks the mandatory valuation fields. AUM and NetValue are
// pointers so an absent value is distinguishable from a legitimate zero.
func (v Valuation) Validate() error {
	if v.AUM == nil {
		return fmt.Errorf("%w: aum", ErrIncompleteValuation)
	}
	if v.Scale == "" {
		return fmt.Errorf("%w: scale", ErrIncompleteValuation)
	}
	if v.NetValue == nil {
		return fmt.Errorf("%w: netValue", ErrIncompleteValuation)
	}
	return nil
}
