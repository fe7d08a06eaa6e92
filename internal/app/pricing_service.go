package app

import (
	"context"
	"time"

	"github.com/calatours/backoffice/internal/domain"
	"github.com/calatours/backoffice/internal/plugin"
	"github.com/calatours/backoffice/internal/pricing"
)

type CatalogReader interface {
	GetOffer(ctx context.Context, id string) (domain.Offer, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	GetResource(ctx context.Context, id string) (domain.Resource, error)
	GetContract(ctx context.Context, id string) (domain.Contract, error)
	GetPool(ctx context.Context, id string) (domain.AllocationPool, error)
}

// StockReader is the ledger-fold fallback used when a resource type registers
// no availability strategy.
type StockReader interface {
	AvailableStock(ctx context.Context, poolID string) (int, error)
	GetStockLedger(ctx context.Context, poolID string) ([]domain.StockLedgerEntry, error)
}

// PricingService dispatches pricing and availability questions to the
// strategy registered for the resource's type.
type PricingService struct {
	catalog  CatalogReader
	registry *plugin.Registry
	stock    StockReader
}

func NewPricingService(catalog CatalogReader, registry *plugin.Registry, stock StockReader) *PricingService {
	return &PricingService{catalog: catalog, registry: registry, stock: stock}
}

type QuoteInput struct {
	OfferID   string
	CheckIn   time.Time
	CheckOut  time.Time
	Occupancy pricing.Occupancy
	Board     string
	VATBase   pricing.VATBase
}

// CalculatePrice resolves the offer's product, resource and contract, then
// delegates to the resource type's strategy. Any missing link in the chain
// surfaces as its NotFound error.
func (s *PricingService) CalculatePrice(ctx context.Context, in QuoteInput) (plugin.Quote, error) {
	offer, err := s.catalog.GetOffer(ctx, in.OfferID)
	if err != nil {
		return plugin.Quote{}, err
	}
	product, err := s.catalog.GetProduct(ctx, offer.ProductID)
	if err != nil {
		return plugin.Quote{}, err
	}
	resource, err := s.catalog.GetResource(ctx, product.ResourceID)
	if err != nil {
		return plugin.Quote{}, err
	}
	strategy, err := s.registry.Strategy(resource.Type)
	if err != nil {
		return plugin.Quote{}, err
	}
	contract, err := s.catalog.GetContract(ctx, offer.ContractID)
	if err != nil {
		return plugin.Quote{}, err
	}

	return strategy.Quote(ctx, plugin.QuoteRequest{
		Contract:  contract,
		CheckIn:   in.CheckIn,
		CheckOut:  in.CheckOut,
		Occupancy: in.Occupancy,
		Board:     in.Board,
		VATBase:   in.VATBase,
	})
}

// CheckAvailability resolves the pool's resource and uses its type's
// availability strategy when one is registered, falling back to the ledger
// fold otherwise.
func (s *PricingService) CheckAvailability(ctx context.Context, poolID string) (int, error) {
	pool, err := s.catalog.GetPool(ctx, poolID)
	if err != nil {
		return 0, err
	}
	resource, err := s.catalog.GetResource(ctx, pool.ResourceID)
	if err != nil {
		return 0, err
	}

	if strategy, ok := s.registry.Availability(resource.Type); ok {
		entries, err := s.stock.GetStockLedger(ctx, poolID)
		if err != nil {
			return 0, err
		}
		return strategy.AvailableStock(ctx, plugin.AvailabilityRequest{Pool: pool, Entries: entries})
	}

	return s.stock.AvailableStock(ctx, poolID)
}
