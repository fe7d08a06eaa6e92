// Package plugin holds the resource-type pricing and availability strategies.
// The registry is populated once at startup and looked up by resource type;
// there is no runtime mutation besides explicit Register calls.
package plugin

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/calatours/backoffice/internal/domain"
	"github.com/calatours/backoffice/internal/pricing"
)

// QuoteRequest carries everything a strategy needs to price a stay.
type QuoteRequest struct {
	Contract  domain.Contract
	CheckIn   time.Time
	CheckOut  time.Time
	Occupancy pricing.Occupancy
	Board     string
	VATBase   pricing.VATBase
}

// Quote is a strategy's pricing answer. When Validation.Valid is false the
// price fields are zero and the caller should surface Validation.Reason.
type Quote struct {
	Validation pricing.ValidationResult
	Nights     []pricing.Night
	Total      decimal.Decimal
	Breakdown  pricing.Breakdown
}

// Strategy prices stays for one resource type.
type Strategy interface {
	Type() domain.ResourceType
	Quote(ctx context.Context, req QuoteRequest) (Quote, error)
}

// AvailabilityRequest hands a strategy the pool and its ledger snapshot.
type AvailabilityRequest struct {
	Pool    domain.AllocationPool
	Entries []domain.StockLedgerEntry
}

// AvailabilityStrategy is optionally implemented by strategies whose resource
// type needs custom availability rules. Types without one fall back to the
// ledger fold.
type AvailabilityStrategy interface {
	AvailableStock(ctx context.Context, req AvailabilityRequest) (int, error)
}

// Registry maps resource types to their strategies.
type Registry struct {
	strategies map[domain.ResourceType]Strategy
}

func NewRegistry(strategies ...Strategy) *Registry {
	r := &Registry{strategies: make(map[domain.ResourceType]Strategy, len(strategies))}
	for _, s := range strategies {
		r.Register(s)
	}
	return r
}

func (r *Registry) Register(s Strategy) {
	r.strategies[s.Type()] = s
}

// Strategy returns the strategy for a resource type.
func (r *Registry) Strategy(t domain.ResourceType) (Strategy, error) {
	s, ok := r.strategies[t]
	if !ok {
		return nil, domain.ErrStrategyNotFound
	}
	return s, nil
}

// Availability returns the type's availability strategy, if it has one.
func (r *Registry) Availability(t domain.ResourceType) (AvailabilityStrategy, bool) {
	s, ok := r.strategies[t]
	if !ok {
		return nil, false
	}
	a, ok := s.(AvailabilityStrategy)
	return a, ok
}
