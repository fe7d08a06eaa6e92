package domain

import "time"

type HoldStatus string

const (
	HoldStatusActive    HoldStatus = "active"
	HoldStatusConverted HoldStatus = "converted"
	HoldStatusReleased  HoldStatus = "released"
	HoldStatusExpired   HoldStatus = "expired"
)

// Hold is a temporary reservation that reduces available stock until it is
// converted into a booking, released, or expires.
type Hold struct {
	ID             string
	PoolID         string
	Quantity       int
	Status         HoldStatus
	ExpiresAt      time.Time
	IdempotencyKey string
	Note           string
	CreatedAt      time.Time
}
