package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/calatours/backoffice/internal/app"
	"github.com/calatours/backoffice/internal/domain"
	"github.com/calatours/backoffice/internal/plugin"
	"github.com/calatours/backoffice/internal/pricing"
)

type fakeQuoter struct {
	in    app.QuoteInput
	quote plugin.Quote
	err   error
}

func (f *fakeQuoter) CalculatePrice(_ context.Context, in app.QuoteInput) (plugin.Quote, error) {
	f.in = in
	return f.quote, f.err
}

func TestHandleQuote(t *testing.T) {
	t.Parallel()

	svc := &fakeQuoter{quote: plugin.Quote{
		Validation: pricing.ValidationResult{Valid: true},
		Nights: []pricing.Night{
			{Date: time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), Rate: decimal.NewFromInt(80), Type: pricing.NightPreShoulder},
			{Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Rate: decimal.NewFromInt(100), Type: pricing.NightContract},
		},
		Total: decimal.NewFromInt(180),
		Breakdown: pricing.Breakdown{
			BaseRate:  decimal.NewFromInt(180),
			VAT:       decimal.NewFromInt(18),
			TotalCost: decimal.NewFromInt(198),
		},
	}}

	body := `{"offer_id":"offer-1","check_in":"2025-05-31","check_out":"2025-06-02","occupancy":"double"}`
	req := httptest.NewRequest("POST", "/quotes", strings.NewReader(body))
	rec := httptest.NewRecorder()

	HandleQuote(svc)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "offer-1", svc.in.OfferID)
	require.Equal(t, pricing.OccupancyDouble, svc.in.Occupancy)

	var resp struct {
		Nights []struct {
			Date string `json:"date"`
			Rate string `json:"rate"`
			Type string `json:"type"`
		} `json:"nights"`
		Total     string `json:"total"`
		Breakdown struct {
			TotalCost string `json:"total_cost"`
		} `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Nights, 2)
	require.Equal(t, "2025-05-31", resp.Nights[0].Date)
	require.Equal(t, "pre-shoulder", resp.Nights[0].Type)
	require.Equal(t, "180", resp.Total)
	require.Equal(t, "198", resp.Breakdown.TotalCost)
}

func TestHandleQuote_DatesNotBookable(t *testing.T) {
	t.Parallel()

	svc := &fakeQuoter{quote: plugin.Quote{
		Validation: pricing.ValidationResult{Valid: false, Reason: "check-in is before contract start"},
	}}

	body := `{"offer_id":"offer-1","check_in":"2025-05-01","check_out":"2025-06-02","occupancy":"double"}`
	req := httptest.NewRequest("POST", "/quotes", strings.NewReader(body))
	rec := httptest.NewRecorder()

	HandleQuote(svc)(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, codeDatesNotBookable, resp.Code)
	require.Contains(t, resp.Error, "contract start")
}

func TestHandleQuote_BadRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"missing offer id", `{"check_in":"2025-06-01","check_out":"2025-06-02"}`},
		{"missing dates", `{"offer_id":"offer-1"}`},
		{"bad check_in", `{"offer_id":"offer-1","check_in":"soon","check_out":"2025-06-02"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/quotes", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			HandleQuote(&fakeQuoter{})(rec, req)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleQuote_Errors(t *testing.T) {
	t.Parallel()

	body := `{"offer_id":"offer-1","check_in":"2025-06-01","check_out":"2025-06-02","occupancy":"dorm"}`

	svc := &fakeQuoter{err: pricing.ErrUnknownOccupancy}
	req := httptest.NewRequest("POST", "/quotes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	HandleQuote(svc)(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	svc = &fakeQuoter{err: domain.ErrOfferNotFound}
	req = httptest.NewRequest("POST", "/quotes", strings.NewReader(body))
	rec = httptest.NewRecorder()
	HandleQuote(svc)(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
