package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calatours/backoffice/internal/domain"
)

type AllocationRepository struct {
	base
}

func NewAllocationRepository(pool *pgxpool.Pool) *AllocationRepository {
	return &AllocationRepository{base{pool: pool}}
}

func (r *AllocationRepository) CreateAllocation(ctx context.Context, alloc domain.Allocation) error {
	const stmt = `
INSERT INTO allocations (id, pool_id, offer_id, quantity, valid_from, valid_to, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		alloc.ID,
		alloc.PoolID,
		alloc.OfferID,
		alloc.Quantity,
		alloc.ValidFrom,
		alloc.ValidTo,
		alloc.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create allocation: %w", err)
	}
	return nil
}

func (r *AllocationRepository) GetAllocationForUpdate(ctx context.Context, id string) (domain.Allocation, error) {
	const query = `
SELECT id, pool_id, offer_id, quantity, valid_from, valid_to, created_at
FROM allocations
WHERE id = $1
FOR UPDATE`

	var a domain.Allocation
	err := r.queryRow(ctx, query, id).
		Scan(&a.ID, &a.PoolID, &a.OfferID, &a.Quantity, &a.ValidFrom, &a.ValidTo, &a.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Allocation{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Allocation{}, domain.ErrAllocationNotFound
		}
		return domain.Allocation{}, fmt.Errorf("get allocation for update: %w", err)
	}
	return a, nil
}

func (r *AllocationRepository) UpdateAllocationQuantity(ctx context.Context, id string, quantity int) error {
	tag, err := r.exec(ctx, `UPDATE allocations SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update allocation quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAllocationNotFound
	}
	return nil
}

func (r *AllocationRepository) DeleteAllocation(ctx context.Context, id string) error {
	tag, err := r.exec(ctx, `DELETE FROM allocations WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete allocation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAllocationNotFound
	}
	return nil
}
