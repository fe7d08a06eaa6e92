package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/calatours/backoffice/internal/domain"
)

type NightType string

const (
	NightPreShoulder  NightType = "pre-shoulder"
	NightContract     NightType = "contract"
	NightPostShoulder NightType = "post-shoulder"
)

// Night is one priced night of a stay.
type Night struct {
	Date time.Time
	Rate decimal.Decimal
	Type NightType
}

// RateResolution is the per-night price decomposition of a stay.
type RateResolution struct {
	Nights         []Night
	Total          decimal.Decimal
	BaseNights     int
	ShoulderNights int
}

const day = 24 * time.Hour

// daysBetween returns ceil(to-from) in whole days.
func daysBetween(from, to time.Time) int {
	d := to.Sub(from)
	n := int(d / day)
	if d%day != 0 {
		n++
	}
	return n
}

// ResolveNightlyRates prices each night of [checkIn, checkOut). Nights inside
// the contract window are priced at baseRate; nights outside it use the
// contract's shoulder rate tables, where index 0 is the night immediately
// adjacent to the contract boundary. A night beyond the table falls back to
// baseRate.
func ResolveNightlyRates(checkIn, checkOut time.Time, baseRate decimal.Decimal, c domain.Contract) RateResolution {
	nights := daysBetween(checkIn, checkOut)
	if nights < 0 {
		nights = 0
	}

	res := RateResolution{
		Nights: make([]Night, 0, nights),
		Total:  decimal.Zero,
	}

	for i := 0; i < nights; i++ {
		date := checkIn.AddDate(0, 0, i)
		night := Night{Date: date, Rate: baseRate, Type: NightContract}

		switch {
		case date.Before(c.Start):
			night.Type = NightPreShoulder
			idx := daysBetween(date, c.Start) - 1
			if idx >= 0 && idx < len(c.PreShoulderRates) {
				night.Rate = c.PreShoulderRates[idx]
			}
		case date.After(c.End):
			night.Type = NightPostShoulder
			idx := daysBetween(c.End, date) - 1
			if idx >= 0 && idx < len(c.PostShoulderRates) {
				night.Rate = c.PostShoulderRates[idx]
			}
		}

		if night.Type == NightContract {
			res.BaseNights++
		} else {
			res.ShoulderNights++
		}
		res.Total = res.Total.Add(night.Rate)
		res.Nights = append(res.Nights, night)
	}

	return res
}

// ClassifyNights labels a precomputed per-night rate slice with its night
// types, for display and for margin calculation.
func ClassifyNights(checkIn time.Time, rates []decimal.Decimal, contractStart, contractEnd time.Time) []Night {
	out := make([]Night, 0, len(rates))
	for i, rate := range rates {
		date := checkIn.AddDate(0, 0, i)
		t := NightContract
		if date.Before(contractStart) {
			t = NightPreShoulder
		} else if date.After(contractEnd) {
			t = NightPostShoulder
		}
		out = append(out, Night{Date: date, Rate: rate, Type: t})
	}
	return out
}
