package app

import (
	"context"
	"time"

	"github.com/calatours/backoffice/internal/clock"
	"github.com/calatours/backoffice/internal/domain"
)

type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetPoolForUpdate(ctx context.Context, poolID string) (domain.AllocationPool, error)
	GetHoldForUpdate(ctx context.Context, id string) (domain.Hold, error)
	UpdateHoldStatus(ctx context.Context, id string, status domain.HoldStatus) error
	FindBookingByIdempotencyKey(ctx context.Context, poolID, key string) (*domain.Booking, error)
	CreateBooking(ctx context.Context, booking domain.Booking) error
	GetBookingForUpdate(ctx context.Context, id string) (domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error
}

// BookingService confirms stock consumption. A direct booking appends its own
// negative ledger entry; a booking converted from a hold appends nothing, the
// hold's entry already counts the consumed stock.
type BookingService struct {
	repo   BookingRepository
	ledger *Ledger
	clock  clock.Clock
}

func NewBookingService(repo BookingRepository, ledger *Ledger, clk clock.Clock) *BookingService {
	return &BookingService{repo: repo, ledger: ledger, clock: clk}
}

type CreateBookingInput struct {
	PoolID string
	// HoldID, when set, converts an active hold instead of consuming new stock.
	HoldID         string
	Quantity       int
	LeadName       string
	CheckIn        time.Time
	CheckOut       time.Time
	IdempotencyKey string
}

func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (domain.Booking, error) {
	if in.IdempotencyKey == "" {
		return domain.Booking{}, domain.ErrIdempotencyKeyRequired
	}
	if in.HoldID == "" && in.Quantity <= 0 {
		return domain.Booking{}, domain.ErrInvalidQuantity
	}
	if in.HoldID == "" && in.PoolID == "" {
		return domain.Booking{}, domain.ErrInvalidID
	}

	now := s.clock.Now()
	var result domain.Booking

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		poolID := in.PoolID
		quantity := in.Quantity

		var hold domain.Hold
		if in.HoldID != "" {
			var err error
			hold, err = s.repo.GetHoldForUpdate(txCtx, in.HoldID)
			if err != nil {
				return err
			}
			poolID = hold.PoolID
			quantity = hold.Quantity
			if in.Quantity != 0 && in.Quantity != hold.Quantity {
				return domain.ErrInvalidQuantity
			}
		}

		if existing, err := s.repo.FindBookingByIdempotencyKey(txCtx, poolID, in.IdempotencyKey); err != nil {
			return err
		} else if existing != nil {
			if existing.Quantity != quantity {
				return domain.ErrIdempotencyConflict
			}
			result = *existing
			return nil
		}

		if in.HoldID != "" {
			if hold.Status != domain.HoldStatusActive {
				return domain.ErrHoldNotActive
			}
			if !hold.ExpiresAt.After(now) {
				return domain.ErrHoldExpired
			}
		}

		pool, err := s.repo.GetPoolForUpdate(txCtx, poolID)
		if err != nil {
			return err
		}
		if !pool.Active {
			return domain.ErrPoolInactive
		}

		booking := domain.Booking{
			ID:             newID(),
			PoolID:         poolID,
			HoldID:         in.HoldID,
			Quantity:       quantity,
			Status:         domain.BookingStatusConfirmed,
			LeadName:       in.LeadName,
			CheckIn:        in.CheckIn,
			CheckOut:       in.CheckOut,
			IdempotencyKey: in.IdempotencyKey,
			CreatedAt:      now,
		}

		if err := s.repo.CreateBooking(txCtx, booking); err != nil {
			if err == domain.ErrIdempotencyConflict {
				existing, err := s.repo.FindBookingByIdempotencyKey(txCtx, poolID, in.IdempotencyKey)
				if err != nil {
					return err
				}
				if existing != nil {
					if existing.Quantity != quantity {
						return domain.ErrIdempotencyConflict
					}
					result = *existing
					return nil
				}
			}
			return err
		}

		if in.HoldID != "" {
			// The hold's ledger entry stays as the consumption record; the
			// conversion itself moves no stock.
			if err := s.repo.UpdateHoldStatus(txCtx, in.HoldID, domain.HoldStatusConverted); err != nil {
				return err
			}
		}
		if err := s.ledger.RecordBooking(txCtx, poolID, quantity, booking.ID, in.HoldID); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return result, nil
}

// CancelBooking releases a confirmed booking's quantity back to the pool.
// The release offsets whichever negative entry recorded the consumption, the
// booking's own or the originating hold's.
func (s *BookingService) CancelBooking(ctx context.Context, id string) (domain.Booking, error) {
	var result domain.Booking
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		booking, err := s.repo.GetBookingForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if booking.Status == domain.BookingStatusCancelled {
			return domain.ErrBookingCancelled
		}

		if err := s.repo.UpdateBookingStatus(txCtx, id, domain.BookingStatusCancelled); err != nil {
			return err
		}
		if err := s.ledger.RecordRelease(txCtx, booking.PoolID, booking.Quantity, RefTypeBooking, booking.ID, "booking cancelled"); err != nil {
			return err
		}

		booking.Status = domain.BookingStatusCancelled
		result = booking
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return result, nil
}
