package plugin

import (
	"context"

	"github.com/calatours/backoffice/internal/domain"
	"github.com/calatours/backoffice/internal/pricing"
)

// HotelStrategy prices hotel stays: shoulder-aware nightly rates plus the
// fee/tax/commission breakdown. It defines no availability strategy, so hotel
// pools use the ledger fold.
type HotelStrategy struct{}

func NewHotelStrategy() HotelStrategy {
	return HotelStrategy{}
}

func (HotelStrategy) Type() domain.ResourceType {
	return domain.ResourceTypeHotel
}

func (HotelStrategy) Quote(_ context.Context, req QuoteRequest) (Quote, error) {
	if v := pricing.ValidateBookingDates(req.CheckIn, req.CheckOut, req.Contract); !v.Valid {
		return Quote{Validation: v}, nil
	}

	res := pricing.ResolveNightlyRates(req.CheckIn, req.CheckOut, req.Contract.BaseRate, req.Contract)

	breakdown, err := pricing.PriceBreakdown(req.Contract, pricing.BreakdownInput{
		BaseRate:  res.Total,
		Occupancy: req.Occupancy,
		Nights:    len(res.Nights),
		Board:     req.Board,
		VATBase:   req.VATBase,
	})
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Validation: pricing.ValidationResult{Valid: true},
		Nights:     res.Nights,
		Total:      res.Total,
		Breakdown:  breakdown,
	}, nil
}
