package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract carries the pricing-relevant terms agreed with a supplier for one
// resource. Shoulder rate slices are indexed from the contract boundary:
// index 0 is the night immediately before Start (pre) or after End (post).
type Contract struct {
	ID                      string
	SupplierID              string
	ResourceID              string
	Name                    string
	Currency                string
	BaseRate                decimal.Decimal
	Start                   time.Time
	End                     time.Time
	PreShoulderRates        []decimal.Decimal
	PostShoulderRates       []decimal.Decimal
	TaxRate                 decimal.Decimal
	CityTaxPerPersonNight   decimal.Decimal
	ResortFeePerNight       decimal.Decimal
	SupplierCommissionRate  decimal.Decimal
	BoardOptions            map[string]decimal.Decimal
	CreatedAt               time.Time
}
