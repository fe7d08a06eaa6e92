package app

import (
	"context"
	"sync"
	"time"

	"github.com/calatours/backoffice/internal/domain"
)

// memStore is an in-memory stand-in for the postgres repositories. It backs
// every service interface in this package so service tests exercise the real
// transaction flow without a database. WithTx runs the callback directly; the
// fake has no isolation to provide.
type memStore struct {
	mu       sync.Mutex
	pools    map[string]*domain.AllocationPool
	holds    map[string]*domain.Hold
	bookings map[string]*domain.Booking
	allocs   map[string]*domain.Allocation
	entries  []domain.StockLedgerEntry
}

func newMemStore() *memStore {
	return &memStore{
		pools:    make(map[string]*domain.AllocationPool),
		holds:    make(map[string]*domain.Hold),
		bookings: make(map[string]*domain.Booking),
		allocs:   make(map[string]*domain.Allocation),
	}
}

func (m *memStore) addPool(id string, active bool) {
	m.pools[id] = &domain.AllocationPool{
		ID:         id,
		ResourceID: "resource-1",
		Name:       id,
		PoolType:   domain.PoolTypeShared,
		Active:     active,
	}
}

func (m *memStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *memStore) GetPool(_ context.Context, poolID string) (domain.AllocationPool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pools[poolID]
	if !ok {
		return domain.AllocationPool{}, domain.ErrPoolNotFound
	}
	return *p, nil
}

func (m *memStore) GetPoolForUpdate(ctx context.Context, poolID string) (domain.AllocationPool, error) {
	return m.GetPool(ctx, poolID)
}

func (m *memStore) FindHoldByIdempotencyKey(_ context.Context, poolID, key string) (*domain.Hold, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.holds {
		if h.PoolID == poolID && h.IdempotencyKey == key {
			out := *h
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateHold(_ context.Context, hold domain.Hold) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.holds {
		if h.PoolID == hold.PoolID && h.IdempotencyKey == hold.IdempotencyKey {
			return domain.ErrIdempotencyConflict
		}
	}
	m.holds[hold.ID] = &hold
	return nil
}

func (m *memStore) GetHoldForUpdate(_ context.Context, id string) (domain.Hold, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.holds[id]
	if !ok {
		return domain.Hold{}, domain.ErrHoldNotFound
	}
	return *h, nil
}

func (m *memStore) UpdateHoldStatus(_ context.Context, id string, status domain.HoldStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.holds[id]
	if !ok {
		return domain.ErrHoldNotFound
	}
	h.Status = status
	return nil
}

func (m *memStore) ExpiredActiveHoldsForPool(_ context.Context, poolID string, now time.Time) ([]domain.Hold, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Hold
	for _, h := range m.holds {
		if h.PoolID == poolID && h.Status == domain.HoldStatusActive && !h.ExpiresAt.After(now) {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (m *memStore) PoolIDsWithExpiredHolds(_ context.Context, now time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool)
	var out []string
	for _, h := range m.holds {
		if h.Status == domain.HoldStatusActive && !h.ExpiresAt.After(now) && !seen[h.PoolID] {
			seen[h.PoolID] = true
			out = append(out, h.PoolID)
		}
	}
	return out, nil
}

func (m *memStore) FindBookingByIdempotencyKey(_ context.Context, poolID, key string) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.PoolID == poolID && b.IdempotencyKey == key {
			out := *b
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateBooking(_ context.Context, booking domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.PoolID == booking.PoolID && b.IdempotencyKey == booking.IdempotencyKey {
			return domain.ErrIdempotencyConflict
		}
	}
	m.bookings[booking.ID] = &booking
	return nil
}

func (m *memStore) GetBookingForUpdate(_ context.Context, id string) (domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return *b, nil
}

func (m *memStore) UpdateBookingStatus(_ context.Context, id string, status domain.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (m *memStore) CreateAllocation(_ context.Context, alloc domain.Allocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allocs[alloc.ID] = &alloc
	return nil
}

func (m *memStore) GetAllocationForUpdate(_ context.Context, id string) (domain.Allocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.allocs[id]
	if !ok {
		return domain.Allocation{}, domain.ErrAllocationNotFound
	}
	return *a, nil
}

func (m *memStore) UpdateAllocationQuantity(_ context.Context, id string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.allocs[id]
	if !ok {
		return domain.ErrAllocationNotFound
	}
	a.Quantity = quantity
	return nil
}

func (m *memStore) DeleteAllocation(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.allocs[id]; !ok {
		return domain.ErrAllocationNotFound
	}
	delete(m.allocs, id)
	return nil
}

func (m *memStore) AppendEntry(_ context.Context, entry domain.StockLedgerEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memStore) AdjustPoolCapacity(_ context.Context, poolID string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pools[poolID]
	if !ok {
		return domain.ErrPoolNotFound
	}
	p.Capacity += delta
	return nil
}

func (m *memStore) EntriesForPool(_ context.Context, poolID string) ([]domain.StockLedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.StockLedgerEntry
	for _, e := range m.entries {
		if e.PoolID == poolID {
			out = append(out, e)
		}
	}
	return out, nil
}

// stepClock is a mutable test clock.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock(t time.Time) *stepClock {
	return &stepClock{now: t.UTC()}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
