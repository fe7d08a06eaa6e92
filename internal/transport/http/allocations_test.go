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

type fakeAllocationService struct {
	created app.CreateAllocationInput
	updated struct {
		id       string
		quantity int
	}
	deleted string
	alloc   domain.Allocation
	err     error
}

func (f *fakeAllocationService) CreateAllocation(_ context.Context, in app.CreateAllocationInput) (domain.Allocation, error) {
	f.created = in
	return f.alloc, f.err
}

func (f *fakeAllocationService) UpdateAllocation(_ context.Context, id string, quantity int) (domain.Allocation, error) {
	f.updated.id = id
	f.updated.quantity = quantity
	return f.alloc, f.err
}

func (f *fakeAllocationService) DeleteAllocation(_ context.Context, id string) error {
	f.deleted = id
	return f.err
}

func TestHandleCreateAllocation(t *testing.T) {
	t.Parallel()

	svc := &fakeAllocationService{alloc: domain.Allocation{
		ID:       "alloc-1",
		PoolID:   "pool-1",
		OfferID:  "offer-1",
		Quantity: 10,
	}}

	body := `{"pool_id":"pool-1","offer_id":"offer-1","quantity":10,"valid_from":"2025-06-01","valid_to":"2025-06-10"}`
	req := httptest.NewRequest("POST", "/allocations", strings.NewReader(body))
	rec := httptest.NewRecorder()

	HandleCreateAllocation(svc)(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "pool-1", svc.created.PoolID)
	require.Equal(t, 10, svc.created.Quantity)

	var resp allocationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "alloc-1", resp.ID)
}

func TestHandleCreateAllocation_BadDates(t *testing.T) {
	t.Parallel()

	body := `{"pool_id":"pool-1","offer_id":"offer-1","quantity":10,"valid_from":"June","valid_to":"2025-06-10"}`
	req := httptest.NewRequest("POST", "/allocations", strings.NewReader(body))
	rec := httptest.NewRecorder()

	HandleCreateAllocation(&fakeAllocationService{})(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUpdateAllocation(t *testing.T) {
	t.Parallel()

	svc := &fakeAllocationService{alloc: domain.Allocation{ID: "alloc-1", PoolID: "pool-1", Quantity: 6}}

	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /allocations/{id}", HandleUpdateAllocation(svc))

	req := httptest.NewRequest("PATCH", "/allocations/alloc-1", strings.NewReader(`{"quantity":6}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "alloc-1", svc.updated.id)
	require.Equal(t, 6, svc.updated.quantity)
}

func TestHandleDeleteAllocation(t *testing.T) {
	t.Parallel()

	svc := &fakeAllocationService{}

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /allocations/{id}", HandleDeleteAllocation(svc))

	req := httptest.NewRequest("DELETE", "/allocations/alloc-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "alloc-1", svc.deleted)
}

func TestHandleDeleteAllocation_NotFound(t *testing.T) {
	t.Parallel()

	svc := &fakeAllocationService{err: domain.ErrAllocationNotFound}

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /allocations/{id}", HandleDeleteAllocation(svc))

	req := httptest.NewRequest("DELETE", "/allocations/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
