package http

import (
	"context"
	"net/http"
	"time"

	"github.com/calatours/backoffice/internal/domain"
)

// LedgerReader is the minimal interface needed to inspect a pool's stock.
type LedgerReader interface {
	GetStockLedger(ctx context.Context, poolID string) ([]domain.StockLedgerEntry, error)
}

// AvailabilityChecker answers how much stock a pool has left.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, poolID string) (int, error)
}

// HandleGetLedger returns an HTTP handler listing a pool's ledger entries in
// insertion order.
func HandleGetLedger(svc LedgerReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.GetStockLedger(r.Context(), r.PathValue("id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]ledgerEntryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, ledgerEntryResponse{
				ID:        e.ID,
				TxType:    string(e.TxType),
				Quantity:  e.Quantity,
				RefType:   e.RefType,
				RefID:     e.RefID,
				Note:      e.Note,
				CreatedAt: e.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, ledgerResponse{Entries: out})
	}
}

// HandleGetAvailability returns an HTTP handler reporting a pool's available
// stock.
func HandleGetAvailability(svc AvailabilityChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		poolID := r.PathValue("id")
		available, err := svc.CheckAvailability(r.Context(), poolID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, availabilityResponse{PoolID: poolID, Available: available})
	}
}

type ledgerEntryResponse struct {
	ID        string    `json:"id"`
	TxType    string    `json:"tx_type"`
	Quantity  int       `json:"quantity"`
	RefType   string    `json:"ref_type,omitempty"`
	RefID     string    `json:"ref_id,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ledgerResponse struct {
	Entries []ledgerEntryResponse `json:"entries"`
}

type availabilityResponse struct {
	PoolID    string `json:"pool_id"`
	Available int    `json:"available"`
}
