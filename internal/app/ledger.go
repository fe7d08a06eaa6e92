package app

import (
	"context"

	"github.com/calatours/backoffice/internal/clock"
	"github.com/calatours/backoffice/internal/domain"
)

// Reference types recorded on ledger entries.
const (
	RefTypeAllocation = "allocation"
	RefTypeHold       = "hold"
	RefTypeBooking    = "booking"
)

// LedgerStore persists ledger entries and the materialized pool capacity.
// Implementations must apply both writes in the caller's transaction.
type LedgerStore interface {
	AppendEntry(ctx context.Context, entry domain.StockLedgerEntry) error
	AdjustPoolCapacity(ctx context.Context, poolID string, delta int) error
	EntriesForPool(ctx context.Context, poolID string) ([]domain.StockLedgerEntry, error)
}

// Ledger appends inventory movements to a pool's stock ledger. Quantities are
// signed here, once, so callers pass magnitudes. Allocation and adjustment
// entries also move the pool's materialized capacity; the ledger itself stays
// the audit trail.
type Ledger struct {
	store LedgerStore
	clock clock.Clock
}

func NewLedger(store LedgerStore, clk clock.Clock) *Ledger {
	return &Ledger{store: store, clock: clk}
}

// RecordAllocation appends a positive allocation entry and grows the pool's
// capacity. No check against existing capacity happens here; that is the
// caller's concern.
func (l *Ledger) RecordAllocation(ctx context.Context, poolID string, quantity int, refID, note string) error {
	if err := l.append(ctx, poolID, domain.LedgerTxAllocation, quantity, RefTypeAllocation, refID, note); err != nil {
		return err
	}
	return l.store.AdjustPoolCapacity(ctx, poolID, quantity)
}

// RecordAdjustment appends a signed capacity correction (newQuantity - oldQuantity)
// and moves the pool's capacity by the same delta.
func (l *Ledger) RecordAdjustment(ctx context.Context, poolID string, delta int, refID, note string) error {
	if err := l.append(ctx, poolID, domain.LedgerTxAdjustment, delta, RefTypeAllocation, refID, note); err != nil {
		return err
	}
	return l.store.AdjustPoolCapacity(ctx, poolID, delta)
}

// RecordHold appends a negated hold entry; holds consume availability.
func (l *Ledger) RecordHold(ctx context.Context, poolID string, quantity int, refID, note string) error {
	return l.append(ctx, poolID, domain.LedgerTxHold, -quantity, RefTypeHold, refID, note)
}

// RecordRelease appends a positive entry freeing the given magnitude.
func (l *Ledger) RecordRelease(ctx context.Context, poolID string, quantity int, refType, refID, note string) error {
	return l.append(ctx, poolID, domain.LedgerTxRelease, quantity, refType, refID, note)
}

// RecordBooking appends a negated booking entry, unless the booking was
// converted from a hold: the hold's entry already accounts for the consumed
// stock, so a converted booking appends nothing.
func (l *Ledger) RecordBooking(ctx context.Context, poolID string, quantity int, refID, fromHoldID string) error {
	if fromHoldID != "" {
		return nil
	}
	return l.append(ctx, poolID, domain.LedgerTxBooking, -quantity, RefTypeBooking, refID, "")
}

// EntriesFor returns a pool's ledger in insertion order.
func (l *Ledger) EntriesFor(ctx context.Context, poolID string) ([]domain.StockLedgerEntry, error) {
	return l.store.EntriesForPool(ctx, poolID)
}

func (l *Ledger) append(ctx context.Context, poolID string, txType domain.LedgerTxType, quantity int, refType, refID, note string) error {
	return l.store.AppendEntry(ctx, domain.StockLedgerEntry{
		ID:        newID(),
		PoolID:    poolID,
		TxType:    txType,
		Quantity:  quantity,
		RefType:   refType,
		RefID:     refID,
		Note:      note,
		CreatedAt: l.clock.Now(),
	})
}

// FoldAvailable reduces a pool's ledger to its available stock. Entries carry
// signed quantities, so availability is the plain sum: capacity entries count
// up, holds and bookings count down, releases count back up. The result is not
// clamped; an oversold pool folds negative.
func FoldAvailable(entries []domain.StockLedgerEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Quantity
	}
	return total
}
