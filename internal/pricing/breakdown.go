package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/calatours/backoffice/internal/domain"
)

// VATBase selects which amounts the contract tax rate applies to.
type VATBase string

const (
	// VATBaseOnly taxes the room rate alone.
	VATBaseOnly VATBase = "base_only"
	// VATBasePlusFees taxes the room rate plus resort fee, city tax and board.
	VATBasePlusFees VATBase = "base_plus_fees"
)

type Occupancy string

const (
	OccupancySingle Occupancy = "single"
	OccupancyDouble Occupancy = "double"
	OccupancyTriple Occupancy = "triple"
	OccupancyQuad   Occupancy = "quad"
)

var ErrUnknownOccupancy = errors.New("unknown occupancy type")
var ErrUnknownBoard = errors.New("unknown board option")

// PeoplePerRoom maps an occupancy type to its headcount.
func PeoplePerRoom(o Occupancy) (int, error) {
	switch o {
	case OccupancySingle:
		return 1, nil
	case OccupancyDouble:
		return 2, nil
	case OccupancyTriple:
		return 3, nil
	case OccupancyQuad:
		return 4, nil
	}
	return 0, ErrUnknownOccupancy
}

// MarginBreakdown accumulates cost and selling totals split by night type.
type MarginBreakdown struct {
	BaseCost        decimal.Decimal
	BaseSelling     decimal.Decimal
	ShoulderCost    decimal.Decimal
	ShoulderSelling decimal.Decimal
	TotalCost       decimal.Decimal
	TotalSelling    decimal.Decimal
	Profit          decimal.Decimal
}

// PriceWithShoulderMargin applies per-night margins: contract nights get
// baseMargin, shoulder nights get shoulderMargin. Selling price per night is
// cost * (1 + margin).
func PriceWithShoulderMargin(nights []Night, baseMargin, shoulderMargin decimal.Decimal) MarginBreakdown {
	one := decimal.NewFromInt(1)
	b := MarginBreakdown{
		BaseCost:        decimal.Zero,
		BaseSelling:     decimal.Zero,
		ShoulderCost:    decimal.Zero,
		ShoulderSelling: decimal.Zero,
	}

	for _, n := range nights {
		margin := baseMargin
		if n.Type != NightContract {
			margin = shoulderMargin
		}
		selling := n.Rate.Mul(one.Add(margin))

		if n.Type == NightContract {
			b.BaseCost = b.BaseCost.Add(n.Rate)
			b.BaseSelling = b.BaseSelling.Add(selling)
		} else {
			b.ShoulderCost = b.ShoulderCost.Add(n.Rate)
			b.ShoulderSelling = b.ShoulderSelling.Add(selling)
		}
	}

	b.TotalCost = b.BaseCost.Add(b.ShoulderCost)
	b.TotalSelling = b.BaseSelling.Add(b.ShoulderSelling)
	b.Profit = b.TotalSelling.Sub(b.TotalCost)
	return b
}

// BreakdownInput parameterizes a hotel cost breakdown.
type BreakdownInput struct {
	BaseRate  decimal.Decimal
	Occupancy Occupancy
	Nights    int
	// Board is an optional board option code from the contract's board table.
	Board   string
	VATBase VATBase
}

// Breakdown itemizes the total cost of a stay under a contract.
type Breakdown struct {
	BaseRate           decimal.Decimal
	ResortFee          decimal.Decimal
	CityTax            decimal.Decimal
	Board              decimal.Decimal
	VAT                decimal.Decimal
	SupplierCommission decimal.Decimal
	TotalCost          decimal.Decimal
}

// PriceBreakdown computes the hotel cost breakdown: resort fee per night, city
// tax per person per night, optional board supplement, VAT on the configured
// base, minus supplier commission on the room rate.
func PriceBreakdown(c domain.Contract, in BreakdownInput) (Breakdown, error) {
	people, err := PeoplePerRoom(in.Occupancy)
	if err != nil {
		return Breakdown{}, err
	}

	nights := decimal.NewFromInt(int64(in.Nights))
	persons := decimal.NewFromInt(int64(people))

	b := Breakdown{
		BaseRate:  in.BaseRate,
		ResortFee: c.ResortFeePerNight.Mul(nights),
		CityTax:   c.CityTaxPerPersonNight.Mul(persons).Mul(nights),
		Board:     decimal.Zero,
	}

	if in.Board != "" {
		perPerson, ok := c.BoardOptions[in.Board]
		if !ok {
			return Breakdown{}, ErrUnknownBoard
		}
		b.Board = perPerson.Mul(persons).Mul(nights)
	}

	vatBase := in.BaseRate
	if in.VATBase != VATBaseOnly {
		vatBase = vatBase.Add(b.ResortFee).Add(b.CityTax).Add(b.Board)
	}
	b.VAT = vatBase.Mul(c.TaxRate)

	b.SupplierCommission = in.BaseRate.Mul(c.SupplierCommissionRate)

	b.TotalCost = in.BaseRate.
		Add(b.ResortFee).
		Add(b.CityTax).
		Add(b.Board).
		Add(b.VAT).
		Sub(b.SupplierCommission)

	return b, nil
}
