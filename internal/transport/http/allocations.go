package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/calatours/backoffice/internal/app"
	"github.com/calatours/backoffice/internal/domain"
)

// AllocationManager is the minimal interface needed to manage allocations.
type AllocationManager interface {
	CreateAllocation(ctx context.Context, in app.CreateAllocationInput) (domain.Allocation, error)
	UpdateAllocation(ctx context.Context, id string, quantity int) (domain.Allocation, error)
	DeleteAllocation(ctx context.Context, id string) error
}

// HandleCreateAllocation returns an HTTP handler for committing inventory to
// a pool.
func HandleCreateAllocation(svc AllocationManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAllocationRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		in := app.CreateAllocationInput{
			PoolID:   req.PoolID,
			OfferID:  req.OfferID,
			Quantity: req.Quantity,
		}
		var err error
		if in.ValidFrom, err = time.Parse(dateLayout, req.ValidFrom); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDate, "valid_from must be YYYY-MM-DD")
			return
		}
		if in.ValidTo, err = time.Parse(dateLayout, req.ValidTo); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDate, "valid_to must be YYYY-MM-DD")
			return
		}

		alloc, err := svc.CreateAllocation(r.Context(), in)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, allocationResponse{
			ID:       alloc.ID,
			PoolID:   alloc.PoolID,
			OfferID:  alloc.OfferID,
			Quantity: alloc.Quantity,
		})
	}
}

// HandleUpdateAllocation returns an HTTP handler for changing an allocation's
// quantity.
func HandleUpdateAllocation(svc AllocationManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateAllocationRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		alloc, err := svc.UpdateAllocation(r.Context(), r.PathValue("id"), req.Quantity)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, allocationResponse{
			ID:       alloc.ID,
			PoolID:   alloc.PoolID,
			OfferID:  alloc.OfferID,
			Quantity: alloc.Quantity,
		})
	}
}

// HandleDeleteAllocation returns an HTTP handler for removing an allocation.
func HandleDeleteAllocation(svc AllocationManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteAllocation(r.Context(), r.PathValue("id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type createAllocationRequest struct {
	PoolID    string `json:"pool_id"`
	OfferID   string `json:"offer_id"`
	Quantity  int    `json:"quantity"`
	ValidFrom string `json:"valid_from"`
	ValidTo   string `json:"valid_to"`
}

type updateAllocationRequest struct {
	Quantity int `json:"quantity"`
}

type allocationResponse struct {
	ID       string `json:"id"`
	PoolID   string `json:"pool_id"`
	OfferID  string `json:"offer_id"`
	Quantity int    `json:"quantity"`
}
