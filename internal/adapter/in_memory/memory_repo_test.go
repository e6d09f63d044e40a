package in_memory

import (
	"context"
	"testing"

	"github.com/mkravchenko/dex-settlement/internal/domain"
)

func TestMemoryRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	order := &domain.Order{
		ID:     1,
		Owner:  "alice",
		Pair:   "STX-USDT",
		Side:   domain.Buy,
		Type:   domain.Limit,
		Amount: 1_000_000,
		Price:  2_000_000,
		Status: domain.Open,
	}
	if err := repo.SaveOrder(ctx, order); err != nil {
		t.Fatalf("save order: %v", err)
	}

	// saved records are copies: mutating the original must not leak in
	order.FilledAmount = 999
	orders, err := repo.LoadOrders(ctx)
	if err != nil {
		t.Fatalf("load orders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("loaded %d orders, want 1", len(orders))
	}
	if orders[0].FilledAmount != 0 {
		t.Errorf("stored order shares memory with caller")
	}

	if err := repo.SaveEscrow(ctx, &domain.EscrowEntry{User: "alice", Token: "USDT", Balance: 2_000_000}); err != nil {
		t.Fatalf("save escrow: %v", err)
	}
	entries, err := repo.LoadEscrow(ctx)
	if err != nil {
		t.Fatalf("load escrow: %v", err)
	}
	if len(entries) != 1 || entries[0].Balance != 2_000_000 {
		t.Errorf("escrow entries = %+v", entries)
	}

	want := domain.DexStats{TotalVolume: 5, TotalFees: 1, NextOrderID: 2}
	if err := repo.SaveCounters(ctx, want); err != nil {
		t.Fatalf("save counters: %v", err)
	}
	got, err := repo.LoadCounters(ctx)
	if err != nil {
		t.Fatalf("load counters: %v", err)
	}
	if got != want {
		t.Errorf("counters = %+v, want %+v", got, want)
	}
}

func TestMemoryRepoNilRecords(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	if err := repo.SaveOrder(ctx, nil); err == nil {
		t.Error("expected error for nil order")
	}
	if err := repo.SaveTrade(ctx, nil); err == nil {
		t.Error("expected error for nil trade")
	}
	if err := repo.SaveEscrow(ctx, nil); err == nil {
		t.Error("expected error for nil escrow entry")
	}
}

func TestLogicalClockMonotonic(t *testing.T) {
	c := NewLogicalClock()
	prev := c.CurrentHeight()
	for i := 0; i < 10; i++ {
		h := c.CurrentHeight()
		if h <= prev {
			t.Fatalf("height went backwards: %d after %d", h, prev)
		}
		prev = h
	}
}
