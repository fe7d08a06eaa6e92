package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calatours/backoffice/internal/domain"
)

type BookingRepository struct {
	base
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{base{pool: pool}}
}

const bookingColumns = `id, pool_id, COALESCE(hold_id::text, ''), quantity, status, lead_name, check_in, check_out, idempotency_key, created_at`

func scanBooking(row pgx.Row) (domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(&b.ID, &b.PoolID, &b.HoldID, &b.Quantity, &b.Status, &b.LeadName, &b.CheckIn, &b.CheckOut, &b.IdempotencyKey, &b.CreatedAt)
	return b, err
}

func (r *BookingRepository) FindBookingByIdempotencyKey(ctx context.Context, poolID, key string) (*domain.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE pool_id = $1 AND idempotency_key = $2`

	b, err := scanBooking(r.queryRow(ctx, query, poolID, key))
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find booking by idempotency key: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking domain.Booking) error {
	const stmt = `
INSERT INTO bookings (id, pool_id, hold_id, quantity, status, lead_name, check_in, check_out, idempotency_key, created_at)
VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.exec(ctx, stmt,
		booking.ID,
		booking.PoolID,
		booking.HoldID,
		booking.Quantity,
		booking.Status,
		booking.LeadName,
		booking.CheckIn,
		booking.CheckOut,
		booking.IdempotencyKey,
		booking.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrIdempotencyConflict
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetBookingForUpdate(ctx context.Context, id string) (domain.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

	b, err := scanBooking(r.queryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Booking{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		return domain.Booking{}, fmt.Errorf("get booking for update: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	tag, err := r.exec(ctx, `UPDATE bookings SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}
