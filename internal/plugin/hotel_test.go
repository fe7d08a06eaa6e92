package plugin

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/calatours/backoffice/internal/domain"
	"github.com/calatours/backoffice/internal/pricing"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func hotelContract(t *testing.T) domain.Contract {
	return domain.Contract{
		ID:               "contract-1",
		BaseRate:         dec(t, "100"),
		Start:            date(2025, 6, 1),
		End:              date(2025, 6, 10),
		PreShoulderRates: []decimal.Decimal{dec(t, "80"), dec(t, "70")},
		TaxRate:          dec(t, "0.10"),
	}
}

func TestHotelStrategy_Quote(t *testing.T) {
	t.Parallel()

	s := NewHotelStrategy()
	require.Equal(t, domain.ResourceTypeHotel, s.Type())

	q, err := s.Quote(context.Background(), QuoteRequest{
		Contract:  hotelContract(t),
		CheckIn:   date(2025, 5, 30),
		CheckOut:  date(2025, 6, 2),
		Occupancy: pricing.OccupancyDouble,
		VATBase:   pricing.VATBasePlusFees,
	})
	require.NoError(t, err)
	require.True(t, q.Validation.Valid)
	require.Len(t, q.Nights, 3)
	require.True(t, q.Total.Equal(dec(t, "250")), q.Total)
	require.True(t, q.Breakdown.BaseRate.Equal(dec(t, "250")))
	require.True(t, q.Breakdown.VAT.Equal(dec(t, "25")), q.Breakdown.VAT)
	require.True(t, q.Breakdown.TotalCost.Equal(dec(t, "275")), q.Breakdown.TotalCost)
}

func TestHotelStrategy_Quote_InvalidDates(t *testing.T) {
	t.Parallel()

	s := NewHotelStrategy()

	// Three pre-shoulder nights against a two-entry rate table.
	q, err := s.Quote(context.Background(), QuoteRequest{
		Contract:  hotelContract(t),
		CheckIn:   date(2025, 5, 29),
		CheckOut:  date(2025, 6, 2),
		Occupancy: pricing.OccupancyDouble,
	})
	require.NoError(t, err)
	require.False(t, q.Validation.Valid)
	require.NotEmpty(t, q.Validation.Reason)
	require.Empty(t, q.Nights)
	require.True(t, q.Total.IsZero())
}

func TestHotelStrategy_Quote_UnknownOccupancy(t *testing.T) {
	t.Parallel()

	s := NewHotelStrategy()
	_, err := s.Quote(context.Background(), QuoteRequest{
		Contract:  hotelContract(t),
		CheckIn:   date(2025, 6, 2),
		CheckOut:  date(2025, 6, 4),
		Occupancy: pricing.Occupancy("bunk"),
	})
	require.ErrorIs(t, err, pricing.ErrUnknownOccupancy)
}

type fixedStrategy struct {
	typ   domain.ResourceType
	stock int
}

func (s fixedStrategy) Type() domain.ResourceType { return s.typ }

func (s fixedStrategy) Quote(context.Context, QuoteRequest) (Quote, error) {
	return Quote{Validation: pricing.ValidationResult{Valid: true}}, nil
}

func (s fixedStrategy) AvailableStock(context.Context, AvailabilityRequest) (int, error) {
	return s.stock, nil
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	hotel := NewHotelStrategy()
	custom := fixedStrategy{typ: domain.ResourceType("tour"), stock: 12}
	r := NewRegistry(hotel, custom)

	got, err := r.Strategy(domain.ResourceTypeHotel)
	require.NoError(t, err)
	require.Equal(t, domain.ResourceTypeHotel, got.Type())

	_, err = r.Strategy(domain.ResourceType("flight"))
	require.ErrorIs(t, err, domain.ErrStrategyNotFound)

	// Hotel declares no availability strategy.
	_, ok := r.Availability(domain.ResourceTypeHotel)
	require.False(t, ok)

	avail, ok := r.Availability(custom.typ)
	require.True(t, ok)
	n, err := avail.AvailableStock(context.Background(), AvailabilityRequest{})
	require.NoError(t, err)
	require.Equal(t, 12, n)
}
