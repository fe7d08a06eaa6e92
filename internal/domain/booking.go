package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a confirmed consumption of stock, either converted from a hold
// (HoldID set, the hold's ledger entry remains the consumption record) or
// created directly (its own booking entry).
type Booking struct {
	ID             string
	PoolID         string
	HoldID         string
	Quantity       int
	Status         BookingStatus
	LeadName       string
	CheckIn        time.Time
	CheckOut       time.Time
	IdempotencyKey string
	CreatedAt      time.Time
}
