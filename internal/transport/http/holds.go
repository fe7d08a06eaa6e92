package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/calatours/backoffice/internal/app"
	"github.com/calatours/backoffice/internal/domain"
)

// HoldCreator is the minimal interface needed to create a hold.
type HoldCreator interface {
	CreateHold(ctx context.Context, in app.CreateHoldInput) (domain.Hold, error)
}

// HoldReleaser is the minimal interface needed to release a hold.
type HoldReleaser interface {
	ReleaseHold(ctx context.Context, id string) (domain.Hold, error)
}

// HandleCreateHold returns an HTTP handler for creating holds.
func HandleCreateHold(svc HoldCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createHoldRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.PoolID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, "pool_id is required")
			return
		}

		hold, err := svc.CreateHold(r.Context(), app.CreateHoldInput{
			PoolID:         req.PoolID,
			Quantity:       req.Quantity,
			IdempotencyKey: req.IdempotencyKey,
			Note:           req.Note,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, holdResponse{
			ID:        hold.ID,
			PoolID:    hold.PoolID,
			Quantity:  hold.Quantity,
			Status:    string(hold.Status),
			ExpiresAt: hold.ExpiresAt,
		})
	}
}

// HandleReleaseHold returns an HTTP handler for releasing holds.
func HandleReleaseHold(svc HoldReleaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hold, err := svc.ReleaseHold(r.Context(), r.PathValue("id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, holdResponse{
			ID:        hold.ID,
			PoolID:    hold.PoolID,
			Quantity:  hold.Quantity,
			Status:    string(hold.Status),
			ExpiresAt: hold.ExpiresAt,
		})
	}
}

type createHoldRequest struct {
	PoolID         string `json:"pool_id"`
	Quantity       int    `json:"quantity"`
	IdempotencyKey string `json:"idempotency_key"`
	Note           string `json:"note"`
}

type holdResponse struct {
	ID        string    `json:"id"`
	PoolID    string    `json:"pool_id"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
}
