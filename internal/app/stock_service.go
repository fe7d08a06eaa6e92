package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/calatours/backoffice/internal/clock"
	"github.com/calatours/backoffice/internal/domain"
)

type StockRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetPool(ctx context.Context, poolID string) (domain.AllocationPool, error)
	GetPoolForUpdate(ctx context.Context, poolID string) (domain.AllocationPool, error)
	ExpiredActiveHoldsForPool(ctx context.Context, poolID string, now time.Time) ([]domain.Hold, error)
	PoolIDsWithExpiredHolds(ctx context.Context, now time.Time) ([]string, error)
	UpdateHoldStatus(ctx context.Context, id string, status domain.HoldStatus) error
}

// StockService answers availability questions from the ledger and reaps
// expired holds, both lazily on read and in bulk from the sweeper.
type StockService struct {
	repo   StockRepository
	ledger *Ledger
	clock  clock.Clock
	logger *zap.Logger
}

func NewStockService(repo StockRepository, ledger *Ledger, clk clock.Clock, logger *zap.Logger) *StockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockService{repo: repo, ledger: ledger, clock: clk, logger: logger}
}

// AvailableStock folds the pool's ledger into remaining capacity. Expired
// holds are released first, in the same transaction, so a stale hold can never
// depress the answer. The result is not clamped at zero.
func (s *StockService) AvailableStock(ctx context.Context, poolID string) (int, error) {
	var available int
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetPoolForUpdate(txCtx, poolID); err != nil {
			return err
		}
		if _, err := s.reapExpired(txCtx, poolID); err != nil {
			return err
		}
		entries, err := s.ledger.EntriesFor(txCtx, poolID)
		if err != nil {
			return err
		}
		available = FoldAvailable(entries)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return available, nil
}

// GetStockLedger returns a pool's full ledger in insertion order.
func (s *StockService) GetStockLedger(ctx context.Context, poolID string) ([]domain.StockLedgerEntry, error) {
	if _, err := s.repo.GetPool(ctx, poolID); err != nil {
		return nil, err
	}
	return s.ledger.EntriesFor(ctx, poolID)
}

// SweepExpired releases every expired active hold across all pools. Each pool
// is swept in its own transaction; the count of released holds is returned.
func (s *StockService) SweepExpired(ctx context.Context) (int, error) {
	poolIDs, err := s.repo.PoolIDsWithExpiredHolds(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}

	released := 0
	for _, poolID := range poolIDs {
		err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
			if _, err := s.repo.GetPoolForUpdate(txCtx, poolID); err != nil {
				return err
			}
			n, err := s.reapExpired(txCtx, poolID)
			released += n
			return err
		})
		if err != nil {
			return released, err
		}
	}
	return released, nil
}

// Run sweeps expired holds on a fixed interval until ctx is cancelled.
func (s *StockService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.SweepExpired(ctx)
			if err != nil {
				s.logger.Warn("hold sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				s.logger.Info("released expired holds", zap.Int("count", n))
			}
		}
	}
}

func (s *StockService) reapExpired(ctx context.Context, poolID string) (int, error) {
	holds, err := s.repo.ExpiredActiveHoldsForPool(ctx, poolID, s.clock.Now())
	if err != nil {
		return 0, err
	}
	for _, hold := range holds {
		if err := s.repo.UpdateHoldStatus(ctx, hold.ID, domain.HoldStatusExpired); err != nil {
			return 0, err
		}
		if err := s.ledger.RecordRelease(ctx, poolID, hold.Quantity, RefTypeHold, hold.ID, "hold expired"); err != nil {
			return 0, err
		}
	}
	return len(holds), nil
}
