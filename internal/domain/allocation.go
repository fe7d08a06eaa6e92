package domain

import "time"

// Allocation is a committed quantity of inventory reserved against a pool for
// an offer, with a validity window. Every quantity change is mirrored by a
// ledger entry so the pool's ledger always reflects net allocation.
type Allocation struct {
	ID        string
	PoolID    string
	OfferID   string
	Quantity  int
	ValidFrom time.Time
	ValidTo   time.Time
	CreatedAt time.Time
}
