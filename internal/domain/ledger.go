package domain

import "time"

type LedgerTxType string

const (
	LedgerTxAllocation LedgerTxType = "allocation"
	LedgerTxAdjustment LedgerTxType = "adjustment"
	LedgerTxHold       LedgerTxType = "hold"
	LedgerTxBooking    LedgerTxType = "booking"
	LedgerTxRelease    LedgerTxType = "release"
)

// StockLedgerEntry is one immutable inventory movement. Quantity is signed:
// allocations, adjustments upward and releases are positive; holds, bookings
// and adjustments downward are negative. Entries are never edited or deleted;
// corrections are made by appending an offsetting entry.
type StockLedgerEntry struct {
	ID        string
	PoolID    string
	TxType    LedgerTxType
	Quantity  int
	RefType   string
	RefID     string
	Note      string
	CreatedAt time.Time
}
