package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/calatours/backoffice/internal/app"
	"github.com/calatours/backoffice/internal/domain"
)

// BookingCreator is the minimal interface needed to create a booking.
type BookingCreator interface {
	CreateBooking(ctx context.Context, in app.CreateBookingInput) (domain.Booking, error)
}

// BookingCanceller is the minimal interface needed to cancel a booking.
type BookingCanceller interface {
	CancelBooking(ctx context.Context, id string) (domain.Booking, error)
}

const dateLayout = "2006-01-02"

// HandleCreateBooking returns an HTTP handler for creating bookings, directly
// or by converting a hold.
func HandleCreateBooking(svc BookingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBookingRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.PoolID == "" && req.HoldID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, "pool_id or hold_id is required")
			return
		}

		in := app.CreateBookingInput{
			PoolID:         req.PoolID,
			HoldID:         req.HoldID,
			Quantity:       req.Quantity,
			LeadName:       req.LeadName,
			IdempotencyKey: req.IdempotencyKey,
		}
		var err error
		if req.CheckIn != "" {
			if in.CheckIn, err = time.Parse(dateLayout, req.CheckIn); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidDate, "check_in must be YYYY-MM-DD")
				return
			}
		}
		if req.CheckOut != "" {
			if in.CheckOut, err = time.Parse(dateLayout, req.CheckOut); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidDate, "check_out must be YYYY-MM-DD")
				return
			}
		}

		booking, err := svc.CreateBooking(r.Context(), in)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, bookingResponse{
			ID:       booking.ID,
			PoolID:   booking.PoolID,
			HoldID:   booking.HoldID,
			Quantity: booking.Quantity,
			Status:   string(booking.Status),
		})
	}
}

// HandleCancelBooking returns an HTTP handler for cancelling bookings.
func HandleCancelBooking(svc BookingCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		booking, err := svc.CancelBooking(r.Context(), r.PathValue("id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, bookingResponse{
			ID:       booking.ID,
			PoolID:   booking.PoolID,
			HoldID:   booking.HoldID,
			Quantity: booking.Quantity,
			Status:   string(booking.Status),
		})
	}
}

type createBookingRequest struct {
	PoolID         string `json:"pool_id"`
	HoldID         string `json:"hold_id"`
	Quantity       int    `json:"quantity"`
	LeadName       string `json:"lead_name"`
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out"`
	IdempotencyKey string `json:"idempotency_key"`
}

type bookingResponse struct {
	ID       string `json:"id"`
	PoolID   string `json:"pool_id"`
	HoldID   string `json:"hold_id,omitempty"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}
