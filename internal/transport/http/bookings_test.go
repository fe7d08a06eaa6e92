package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calatours/backoffice/internal/app"
	"github.com/calatours/backoffice/internal/domain"
)

type fakeBookingService struct {
	created   app.CreateBookingInput
	cancelled string
	booking   domain.Booking
	err       error
}

func (f *fakeBookingService) CreateBooking(_ context.Context, in app.CreateBookingInput) (domain.Booking, error) {
	f.created = in
	return f.booking, f.err
}

func (f *fakeBookingService) CancelBooking(_ context.Context, id string) (domain.Booking, error) {
	f.cancelled = id
	return f.booking, f.err
}

func TestHandleCreateBooking_Direct(t *testing.T) {
	t.Parallel()

	svc := &fakeBookingService{booking: domain.Booking{
		ID:       "booking-1",
		PoolID:   "pool-1",
		Quantity: 2,
		Status:   domain.BookingStatusConfirmed,
	}}

	body := `{"pool_id":"pool-1","quantity":2,"lead_name":"Garcia","check_in":"2025-06-01","check_out":"2025-06-04","idempotency_key":"key-1"}`
	req := httptest.NewRequest("POST", "/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()

	HandleCreateBooking(svc)(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "pool-1", svc.created.PoolID)
	require.Equal(t, "Garcia", svc.created.LeadName)
	require.Equal(t, 2025, svc.created.CheckIn.Year())

	var resp struct {
		ID     string `json:"id"`
		HoldID string `json:"hold_id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "booking-1", resp.ID)
	require.Empty(t, resp.HoldID)
	require.Equal(t, "confirmed", resp.Status)
}

func TestHandleCreateBooking_FromHold(t *testing.T) {
	t.Parallel()

	svc := &fakeBookingService{booking: domain.Booking{
		ID:       "booking-1",
		PoolID:   "pool-1",
		HoldID:   "hold-1",
		Quantity: 3,
		Status:   domain.BookingStatusConfirmed,
	}}

	body := `{"hold_id":"hold-1","idempotency_key":"key-1"}`
	req := httptest.NewRequest("POST", "/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()

	HandleCreateBooking(svc)(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "hold-1", svc.created.HoldID)
	require.Empty(t, svc.created.PoolID)
}

func TestHandleCreateBooking_BadRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"pool_id"`},
		{"missing pool and hold", `{"quantity":2}`},
		{"bad check_in", `{"pool_id":"p","check_in":"June 1st"}`},
		{"bad check_out", `{"pool_id":"p","check_out":"2025/06/04"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/bookings", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			HandleCreateBooking(&fakeBookingService{})(rec, req)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleCreateBooking_HoldErrors(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		err    error
		status int
	}{
		{domain.ErrHoldExpired, http.StatusConflict},
		{domain.ErrHoldNotActive, http.StatusConflict},
		{domain.ErrHoldNotFound, http.StatusNotFound},
	} {
		svc := &fakeBookingService{err: tc.err}
		req := httptest.NewRequest("POST", "/bookings", strings.NewReader(`{"hold_id":"hold-1","idempotency_key":"k"}`))
		rec := httptest.NewRecorder()

		HandleCreateBooking(svc)(rec, req)
		require.Equal(t, tc.status, rec.Code, tc.err)
	}
}

func TestHandleCancelBooking(t *testing.T) {
	t.Parallel()

	svc := &fakeBookingService{booking: domain.Booking{
		ID:       "booking-1",
		PoolID:   "pool-1",
		Quantity: 2,
		Status:   domain.BookingStatusCancelled,
	}}

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /bookings/{id}", HandleCancelBooking(svc))

	req := httptest.NewRequest("DELETE", "/bookings/booking-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "booking-1", svc.cancelled)

	var resp struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "cancelled", resp.Status)
}

func TestHandleCancelBooking_AlreadyCancelled(t *testing.T) {
	t.Parallel()

	svc := &fakeBookingService{err: domain.ErrBookingCancelled}

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /bookings/{id}", HandleCancelBooking(svc))

	req := httptest.NewRequest("DELETE", "/bookings/booking-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
}
