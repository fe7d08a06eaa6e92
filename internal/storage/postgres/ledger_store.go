package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calatours/backoffice/internal/domain"
)

// LedgerStore persists stock ledger entries and the materialized pool
// capacity. Appends are insert-only; nothing updates or deletes ledger rows.
type LedgerStore struct {
	base
}

func NewLedgerStore(pool *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{base{pool: pool}}
}

func (s *LedgerStore) AppendEntry(ctx context.Context, entry domain.StockLedgerEntry) error {
	const stmt = `
INSERT INTO stock_ledger (id, pool_id, tx_type, quantity, ref_type, ref_id, note, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.exec(ctx, stmt,
		entry.ID,
		entry.PoolID,
		entry.TxType,
		entry.Quantity,
		entry.RefType,
		entry.RefID,
		entry.Note,
		entry.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

func (s *LedgerStore) AdjustPoolCapacity(ctx context.Context, poolID string, delta int) error {
	tag, err := s.exec(ctx, `UPDATE allocation_pools SET capacity = capacity + $2 WHERE id = $1`, poolID, delta)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("adjust pool capacity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPoolNotFound
	}
	return nil
}

func (s *LedgerStore) EntriesForPool(ctx context.Context, poolID string) ([]domain.StockLedgerEntry, error) {
	const query = `
SELECT id, pool_id, tx_type, quantity, ref_type, ref_id, note, created_at
FROM stock_ledger
WHERE pool_id = $1
ORDER BY seq`

	rows, err := s.query(ctx, query, poolID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.StockLedgerEntry
	for rows.Next() {
		var e domain.StockLedgerEntry
		if err := rows.Scan(&e.ID, &e.PoolID, &e.TxType, &e.Quantity, &e.RefType, &e.RefID, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger entries: %w", err)
	}
	return entries, nil
}
