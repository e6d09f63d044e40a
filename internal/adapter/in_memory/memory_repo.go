package in_memory

import (
	"context"
	"errors"
	"sync"

	"github.com/mkravchenko/dex-settlement/internal/domain"
	"github.com/mkravchenko/dex-settlement/internal/port"
)

var _ port.Repository = (*MemoryRepo)(nil)

// MemoryRepo keeps the full engine state in process memory. Used in tests
// and when no Postgres DSN is configured.
type MemoryRepo struct {
	mu       sync.Mutex
	orders   map[uint64]*domain.Order
	trades   map[uint64]*domain.Trade
	escrow   map[domain.EscrowKey]uint64
	counters domain.DexStats
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		orders: make(map[uint64]*domain.Order),
		trades: make(map[uint64]*domain.Trade),
		escrow: make(map[domain.EscrowKey]uint64),
	}
}

func (r *MemoryRepo) SaveOrder(ctx context.Context, o *domain.Order) error {
	if o == nil {
		return errors.New("nil order")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *MemoryRepo) SaveTrade(ctx context.Context, t *domain.Trade) error {
	if t == nil {
		return errors.New("nil trade")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.trades[t.Key] = &cp
	return nil
}

func (r *MemoryRepo) SaveEscrow(ctx context.Context, e *domain.EscrowEntry) error {
	if e == nil {
		return errors.New("nil escrow entry")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.escrow[domain.EscrowKey{User: e.User, Token: e.Token}] = e.Balance
	return nil
}

func (r *MemoryRepo) SaveCounters(ctx context.Context, s domain.DexStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters = s
	return nil
}

func (r *MemoryRepo) LoadOrders(ctx context.Context) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		cp := *o
		res = append(res, &cp)
	}
	return res, nil
}

func (r *MemoryRepo) LoadEscrow(ctx context.Context) ([]*domain.EscrowEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]*domain.EscrowEntry, 0, len(r.escrow))
	for k, bal := range r.escrow {
		res = append(res, &domain.EscrowEntry{User: k.User, Token: k.Token, Balance: bal})
	}
	return res, nil
}

func (r *MemoryRepo) LoadCounters(ctx context.Context) (domain.DexStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counters, nil
}
