package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/calatours/backoffice/internal/domain"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestFoldAvailable(t *testing.T) {
	t.Parallel()

	entries := []domain.StockLedgerEntry{
		{TxType: domain.LedgerTxAllocation, Quantity: 10},
		{TxType: domain.LedgerTxHold, Quantity: -3},
		{TxType: domain.LedgerTxBooking, Quantity: -2},
		{TxType: domain.LedgerTxRelease, Quantity: 3},
		{TxType: domain.LedgerTxAdjustment, Quantity: -1},
	}
	require.Equal(t, 7, FoldAvailable(entries))
	require.Equal(t, 0, FoldAvailable(nil))
}

func TestFoldAvailable_Oversold(t *testing.T) {
	t.Parallel()

	entries := []domain.StockLedgerEntry{
		{TxType: domain.LedgerTxAllocation, Quantity: 2},
		{TxType: domain.LedgerTxBooking, Quantity: -5},
	}
	require.Equal(t, -3, FoldAvailable(entries))
}

func TestLedger_SignsQuantities(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemStore()
	store.addPool("pool-1", true)
	ledger := NewLedger(store, newStepClock(testNow))

	require.NoError(t, ledger.RecordAllocation(ctx, "pool-1", 10, "alloc-1", ""))
	require.NoError(t, ledger.RecordHold(ctx, "pool-1", 3, "hold-1", ""))
	require.NoError(t, ledger.RecordBooking(ctx, "pool-1", 2, "booking-1", ""))
	require.NoError(t, ledger.RecordRelease(ctx, "pool-1", 3, RefTypeHold, "hold-1", "hold released"))
	require.NoError(t, ledger.RecordAdjustment(ctx, "pool-1", -4, "alloc-1", ""))

	entries, err := ledger.EntriesFor(ctx, "pool-1")
	require.NoError(t, err)
	require.Len(t, entries, 5)

	quantities := make([]int, len(entries))
	for i, e := range entries {
		quantities[i] = e.Quantity
	}
	require.Equal(t, []int{10, -3, -2, 3, -4}, quantities)

	// Allocation and adjustment entries also move the materialized capacity.
	pool, err := store.GetPool(ctx, "pool-1")
	require.NoError(t, err)
	require.Equal(t, 6, pool.Capacity)
}

func TestLedger_ConvertedBookingAppendsNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemStore()
	store.addPool("pool-1", true)
	ledger := NewLedger(store, newStepClock(testNow))

	require.NoError(t, ledger.RecordBooking(ctx, "pool-1", 2, "booking-1", "hold-1"))

	entries, err := ledger.EntriesFor(ctx, "pool-1")
	require.NoError(t, err)
	require.Empty(t, entries)
}
