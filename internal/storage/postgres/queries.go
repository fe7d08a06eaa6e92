package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/calatours/backoffice/internal/domain"
)

// Shared queries promoted onto every repository through base.

const poolColumns = `id, resource_id, name, pool_type, capacity, active, created_at`

func scanPool(row pgx.Row) (domain.AllocationPool, error) {
	var p domain.AllocationPool
	err := row.Scan(&p.ID, &p.ResourceID, &p.Name, &p.PoolType, &p.Capacity, &p.Active, &p.CreatedAt)
	return p, err
}

func (b base) GetPool(ctx context.Context, poolID string) (domain.AllocationPool, error) {
	p, err := scanPool(b.queryRow(ctx, `SELECT `+poolColumns+` FROM allocation_pools WHERE id = $1`, poolID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.AllocationPool{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.AllocationPool{}, domain.ErrPoolNotFound
		}
		return domain.AllocationPool{}, fmt.Errorf("get pool: %w", err)
	}
	return p, nil
}

func (b base) GetPoolForUpdate(ctx context.Context, poolID string) (domain.AllocationPool, error) {
	p, err := scanPool(b.queryRow(ctx, `SELECT `+poolColumns+` FROM allocation_pools WHERE id = $1 FOR UPDATE`, poolID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.AllocationPool{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.AllocationPool{}, domain.ErrPoolNotFound
		}
		return domain.AllocationPool{}, fmt.Errorf("get pool for update: %w", err)
	}
	return p, nil
}

const holdColumns = `id, pool_id, quantity, status, expires_at, idempotency_key, note, created_at`

func scanHold(row pgx.Row) (domain.Hold, error) {
	var h domain.Hold
	err := row.Scan(&h.ID, &h.PoolID, &h.Quantity, &h.Status, &h.ExpiresAt, &h.IdempotencyKey, &h.Note, &h.CreatedAt)
	return h, err
}

func (b base) GetHoldForUpdate(ctx context.Context, id string) (domain.Hold, error) {
	h, err := scanHold(b.queryRow(ctx, `SELECT `+holdColumns+` FROM holds WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Hold{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Hold{}, domain.ErrHoldNotFound
		}
		return domain.Hold{}, fmt.Errorf("get hold for update: %w", err)
	}
	return h, nil
}

func (b base) UpdateHoldStatus(ctx context.Context, id string, status domain.HoldStatus) error {
	tag, err := b.exec(ctx, `UPDATE holds SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update hold status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHoldNotFound
	}
	return nil
}
