package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calatours/backoffice/internal/domain"
)

type HoldRepository struct {
	base
}

func NewHoldRepository(pool *pgxpool.Pool) *HoldRepository {
	return &HoldRepository{base{pool: pool}}
}

func (r *HoldRepository) FindHoldByIdempotencyKey(ctx context.Context, poolID, key string) (*domain.Hold, error) {
	const query = `SELECT ` + holdColumns + ` FROM holds WHERE pool_id = $1 AND idempotency_key = $2`

	h, err := scanHold(r.queryRow(ctx, query, poolID, key))
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find hold by idempotency key: %w", err)
	}
	return &h, nil
}

func (r *HoldRepository) CreateHold(ctx context.Context, hold domain.Hold) error {
	const stmt = `
INSERT INTO holds (id, pool_id, quantity, status, expires_at, idempotency_key, note, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.exec(ctx, stmt,
		hold.ID,
		hold.PoolID,
		hold.Quantity,
		hold.Status,
		hold.ExpiresAt,
		hold.IdempotencyKey,
		hold.Note,
		hold.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrIdempotencyConflict
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create hold: %w", err)
	}
	return nil
}
