package app

import (
	"context"
	"time"

	"github.com/calatours/backoffice/internal/clock"
	"github.com/calatours/backoffice/internal/domain"
)

type HoldRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetPoolForUpdate(ctx context.Context, poolID string) (domain.AllocationPool, error)
	FindHoldByIdempotencyKey(ctx context.Context, poolID, key string) (*domain.Hold, error)
	CreateHold(ctx context.Context, hold domain.Hold) error
	GetHoldForUpdate(ctx context.Context, id string) (domain.Hold, error)
	UpdateHoldStatus(ctx context.Context, id string, status domain.HoldStatus) error
}

// HoldService creates and releases temporary reservations. A hold's negative
// ledger entry is appended at creation; releasing appends the offsetting
// positive entry of the same magnitude.
type HoldService struct {
	repo    HoldRepository
	ledger  *Ledger
	clock   clock.Clock
	holdTTL time.Duration
}

const defaultHoldTTL = 30 * time.Minute

type HoldServiceOption func(*HoldService)

// WithHoldTTL overrides the default expiry window for new holds.
func WithHoldTTL(d time.Duration) HoldServiceOption {
	return func(s *HoldService) {
		if d > 0 {
			s.holdTTL = d
		}
	}
}

func NewHoldService(repo HoldRepository, ledger *Ledger, clk clock.Clock, opts ...HoldServiceOption) *HoldService {
	svc := &HoldService{
		repo:    repo,
		ledger:  ledger,
		clock:   clk,
		holdTTL: defaultHoldTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type CreateHoldInput struct {
	PoolID         string
	Quantity       int
	IdempotencyKey string
	Note           string
}

func (s *HoldService) CreateHold(ctx context.Context, in CreateHoldInput) (domain.Hold, error) {
	if in.Quantity <= 0 {
		return domain.Hold{}, domain.ErrInvalidQuantity
	}
	if in.IdempotencyKey == "" {
		return domain.Hold{}, domain.ErrIdempotencyKeyRequired
	}

	now := s.clock.Now()
	var result domain.Hold

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if existing, err := s.repo.FindHoldByIdempotencyKey(txCtx, in.PoolID, in.IdempotencyKey); err != nil {
			return err
		} else if existing != nil {
			if existing.Quantity != in.Quantity {
				return domain.ErrIdempotencyConflict
			}
			result = *existing
			return nil
		}

		pool, err := s.repo.GetPoolForUpdate(txCtx, in.PoolID)
		if err != nil {
			return err
		}
		if !pool.Active {
			return domain.ErrPoolInactive
		}

		hold := domain.Hold{
			ID:             newID(),
			PoolID:         in.PoolID,
			Quantity:       in.Quantity,
			Status:         domain.HoldStatusActive,
			ExpiresAt:      now.Add(s.holdTTL),
			IdempotencyKey: in.IdempotencyKey,
			Note:           in.Note,
			CreatedAt:      now,
		}

		if err := s.repo.CreateHold(txCtx, hold); err != nil {
			// Re-read on conflict to keep idempotent retries consistent under concurrency.
			if err == domain.ErrIdempotencyConflict {
				existing, err := s.repo.FindHoldByIdempotencyKey(txCtx, in.PoolID, in.IdempotencyKey)
				if err != nil {
					return err
				}
				if existing != nil {
					if existing.Quantity != in.Quantity {
						return domain.ErrIdempotencyConflict
					}
					result = *existing
					return nil
				}
			}
			return err
		}
		if err := s.ledger.RecordHold(txCtx, in.PoolID, in.Quantity, hold.ID, in.Note); err != nil {
			return err
		}

		result = hold
		return nil
	})
	if err != nil {
		return domain.Hold{}, err
	}
	return result, nil
}

// ReleaseHold frees an active hold, restoring its quantity to the pool.
func (s *HoldService) ReleaseHold(ctx context.Context, id string) (domain.Hold, error) {
	var result domain.Hold
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		hold, err := s.repo.GetHoldForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if hold.Status != domain.HoldStatusActive {
			return domain.ErrHoldNotActive
		}

		if err := s.repo.UpdateHoldStatus(txCtx, id, domain.HoldStatusReleased); err != nil {
			return err
		}
		if err := s.ledger.RecordRelease(txCtx, hold.PoolID, hold.Quantity, RefTypeHold, hold.ID, "hold released"); err != nil {
			return err
		}

		hold.Status = domain.HoldStatusReleased
		result = hold
		return nil
	})
	if err != nil {
		return domain.Hold{}, err
	}
	return result, nil
}
