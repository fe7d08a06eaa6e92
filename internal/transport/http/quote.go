package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/calatours/backoffice/internal/app"
	"github.com/calatours/backoffice/internal/plugin"
	"github.com/calatours/backoffice/internal/pricing"
)

// Quoter is the minimal interface needed to price a stay.
type Quoter interface {
	CalculatePrice(ctx context.Context, in app.QuoteInput) (plugin.Quote, error)
}

// HandleQuote returns an HTTP handler pricing a stay against an offer. Date
// validation failures come back as 422 with the human-readable reason.
func HandleQuote(svc Quoter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req quoteRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.OfferID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, "offer_id is required")
			return
		}

		in := app.QuoteInput{
			OfferID:   req.OfferID,
			Occupancy: pricing.Occupancy(req.Occupancy),
			Board:     req.Board,
			VATBase:   pricing.VATBase(req.VATBase),
		}
		var err error
		if in.CheckIn, err = time.Parse(dateLayout, req.CheckIn); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDate, "check_in must be YYYY-MM-DD")
			return
		}
		if in.CheckOut, err = time.Parse(dateLayout, req.CheckOut); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDate, "check_out must be YYYY-MM-DD")
			return
		}

		quote, err := svc.CalculatePrice(r.Context(), in)
		if err != nil {
			if errors.Is(err, pricing.ErrUnknownOccupancy) || errors.Is(err, pricing.ErrUnknownBoard) {
				writeError(w, http.StatusBadRequest, codeInvalidOccupancy, err.Error())
				return
			}
			writeDomainError(w, err)
			return
		}
		if !quote.Validation.Valid {
			writeError(w, http.StatusUnprocessableEntity, codeDatesNotBookable, quote.Validation.Reason)
			return
		}

		nights := make([]quoteNight, 0, len(quote.Nights))
		for _, n := range quote.Nights {
			nights = append(nights, quoteNight{
				Date: n.Date.Format(dateLayout),
				Rate: n.Rate,
				Type: string(n.Type),
			})
		}

		writeJSON(w, http.StatusOK, quoteResponse{
			Nights: nights,
			Total:  quote.Total,
			Breakdown: quoteBreakdown{
				BaseRate:           quote.Breakdown.BaseRate,
				ResortFee:          quote.Breakdown.ResortFee,
				CityTax:            quote.Breakdown.CityTax,
				Board:              quote.Breakdown.Board,
				VAT:                quote.Breakdown.VAT,
				SupplierCommission: quote.Breakdown.SupplierCommission,
				TotalCost:          quote.Breakdown.TotalCost,
			},
		})
	}
}

type quoteRequest struct {
	OfferID   string `json:"offer_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Occupancy string `json:"occupancy"`
	Board     string `json:"board,omitempty"`
	VATBase   string `json:"vat_base,omitempty"`
}

type quoteNight struct {
	Date string          `json:"date"`
	Rate decimal.Decimal `json:"rate"`
	Type string          `json:"type"`
}

type quoteBreakdown struct {
	BaseRate           decimal.Decimal `json:"base_rate"`
	ResortFee          decimal.Decimal `json:"resort_fee"`
	CityTax            decimal.Decimal `json:"city_tax"`
	Board              decimal.Decimal `json:"board"`
	VAT                decimal.Decimal `json:"vat"`
	SupplierCommission decimal.Decimal `json:"supplier_commission"`
	TotalCost          decimal.Decimal `json:"total_cost"`
}

type quoteResponse struct {
	Nights    []quoteNight    `json:"nights"`
	Total     decimal.Decimal `json:"total"`
	Breakdown quoteBreakdown  `json:"breakdown"`
}
