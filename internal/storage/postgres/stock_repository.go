package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calatours/backoffice/internal/domain"
)

type StockRepository struct {
	base
}

func NewStockRepository(pool *pgxpool.Pool) *StockRepository {
	return &StockRepository{base{pool: pool}}
}

func (r *StockRepository) ExpiredActiveHoldsForPool(ctx context.Context, poolID string, now time.Time) ([]domain.Hold, error) {
	const query = `
SELECT ` + holdColumns + `
FROM holds
WHERE pool_id = $1 AND status = 'active' AND expires_at <= $2
FOR UPDATE`

	rows, err := r.query(ctx, query, poolID, now)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("expired holds: %w", err)
	}
	defer rows.Close()

	var holds []domain.Hold
	for rows.Next() {
		h, err := scanHold(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expired hold: %w", err)
		}
		holds = append(holds, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("expired holds: %w", err)
	}
	return holds, nil
}

func (r *StockRepository) PoolIDsWithExpiredHolds(ctx context.Context, now time.Time) ([]string, error) {
	const query = `
SELECT DISTINCT pool_id
FROM holds
WHERE status = 'active' AND expires_at <= $1`

	rows, err := r.query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("pools with expired holds: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan pool id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pools with expired holds: %w", err)
	}
	return ids, nil
}
