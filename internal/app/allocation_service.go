package app

import (
	"context"
	"time"

	"github.com/calatours/backoffice/internal/clock"
	"github.com/calatours/backoffice/internal/domain"
)

type AllocationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetPoolForUpdate(ctx context.Context, poolID string) (domain.AllocationPool, error)
	CreateAllocation(ctx context.Context, alloc domain.Allocation) error
	GetAllocationForUpdate(ctx context.Context, id string) (domain.Allocation, error)
	UpdateAllocationQuantity(ctx context.Context, id string, quantity int) error
	DeleteAllocation(ctx context.Context, id string) error
}

// AllocationService manages committed inventory against pools. Every mutation
// appends a matching ledger entry in the same transaction so the ledger always
// reflects net allocation.
type AllocationService struct {
	repo   AllocationRepository
	ledger *Ledger
	clock  clock.Clock
}

func NewAllocationService(repo AllocationRepository, ledger *Ledger, clk clock.Clock) *AllocationService {
	return &AllocationService{repo: repo, ledger: ledger, clock: clk}
}

type CreateAllocationInput struct {
	PoolID    string
	OfferID   string
	Quantity  int
	ValidFrom time.Time
	ValidTo   time.Time
}

func (s *AllocationService) CreateAllocation(ctx context.Context, in CreateAllocationInput) (domain.Allocation, error) {
	if in.Quantity <= 0 {
		return domain.Allocation{}, domain.ErrInvalidQuantity
	}
	if in.PoolID == "" || in.OfferID == "" {
		return domain.Allocation{}, domain.ErrInvalidID
	}

	var result domain.Allocation
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		pool, err := s.repo.GetPoolForUpdate(txCtx, in.PoolID)
		if err != nil {
			return err
		}
		if !pool.Active {
			return domain.ErrPoolInactive
		}

		alloc := domain.Allocation{
			ID:        newID(),
			PoolID:    in.PoolID,
			OfferID:   in.OfferID,
			Quantity:  in.Quantity,
			ValidFrom: in.ValidFrom,
			ValidTo:   in.ValidTo,
			CreatedAt: s.clock.Now(),
		}
		if err := s.repo.CreateAllocation(txCtx, alloc); err != nil {
			return err
		}
		if err := s.ledger.RecordAllocation(txCtx, in.PoolID, in.Quantity, alloc.ID, ""); err != nil {
			return err
		}

		result = alloc
		return nil
	})
	if err != nil {
		return domain.Allocation{}, err
	}
	return result, nil
}

// UpdateAllocation changes an allocation's quantity, recording the signed
// delta as an adjustment entry.
func (s *AllocationService) UpdateAllocation(ctx context.Context, id string, quantity int) (domain.Allocation, error) {
	if quantity <= 0 {
		return domain.Allocation{}, domain.ErrInvalidQuantity
	}

	var result domain.Allocation
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		alloc, err := s.repo.GetAllocationForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if _, err := s.repo.GetPoolForUpdate(txCtx, alloc.PoolID); err != nil {
			return err
		}

		delta := quantity - alloc.Quantity
		if delta != 0 {
			if err := s.repo.UpdateAllocationQuantity(txCtx, id, quantity); err != nil {
				return err
			}
			if err := s.ledger.RecordAdjustment(txCtx, alloc.PoolID, delta, alloc.ID, "quantity update"); err != nil {
				return err
			}
		}

		alloc.Quantity = quantity
		result = alloc
		return nil
	})
	if err != nil {
		return domain.Allocation{}, err
	}
	return result, nil
}

// DeleteAllocation removes an allocation and takes its quantity back out of
// the pool's capacity with a negative adjustment.
func (s *AllocationService) DeleteAllocation(ctx context.Context, id string) error {
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		alloc, err := s.repo.GetAllocationForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if _, err := s.repo.GetPoolForUpdate(txCtx, alloc.PoolID); err != nil {
			return err
		}
		if err := s.repo.DeleteAllocation(txCtx, id); err != nil {
			return err
		}
		return s.ledger.RecordAdjustment(txCtx, alloc.PoolID, -alloc.Quantity, alloc.ID, "allocation deleted")
	})
}
