package domain

import "time"

type PoolType string

const (
	PoolTypeShared    PoolType = "shared"
	PoolTypeDedicated PoolType = "dedicated"
)

// AllocationPool is a bucket of sellable capacity for one resource. Capacity is
// materialized from the pool's ledger: it changes only when an allocation or
// adjustment entry is appended, never by direct mutation.
type AllocationPool struct {
	ID         string
	ResourceID string
	Name       string
	PoolType   PoolType
	Capacity   int
	Active     bool
	CreatedAt  time.Time
}
