package port

import (
	"context"

	"github.com/mkravchenko/dex-settlement/internal/domain"
)

type Repository interface {
	SaveOrder(ctx context.Context, o *domain.Order) error
	SaveTrade(ctx context.Context, t *domain.Trade) error
	SaveEscrow(ctx context.Context, e *domain.EscrowEntry) error
	SaveCounters(ctx context.Context, s domain.DexStats) error

	LoadOrders(ctx context.Context) ([]*domain.Order, error)
	LoadEscrow(ctx context.Context) ([]*domain.EscrowEntry, error)
	LoadCounters(ctx context.Context) (domain.DexStats, error)
}
