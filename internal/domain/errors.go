package domain

import "errors"

var (
	ErrSupplierNotFound   = errors.New("supplier not found")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrOfferNotFound      = errors.New("offer not found")
	ErrContractNotFound   = errors.New("contract not found")
	ErrPoolNotFound       = errors.New("allocation pool not found")
	ErrAllocationNotFound = errors.New("allocation not found")
	ErrHoldNotFound       = errors.New("hold not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrStrategyNotFound   = errors.New("no pricing strategy registered for resource type")
	ErrUserNotFound       = errors.New("user not found")

	ErrInvalidID              = errors.New("invalid id")
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrNameRequired           = errors.New("name required")
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyConflict    = errors.New("idempotency conflict")

	ErrHoldExpired        = errors.New("hold expired")
	ErrHoldNotActive      = errors.New("hold is not active")
	ErrBookingCancelled   = errors.New("booking already cancelled")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPoolInactive       = errors.New("allocation pool is inactive")
)
