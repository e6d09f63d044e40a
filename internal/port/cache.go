package port

import (
	"context"

	"github.com/mkravchenko/dex-settlement/internal/domain"
)

type Cache interface {
	SetStats(ctx context.Context, s domain.DexStats) error
	GetStats(ctx context.Context) (*domain.DexStats, error)
	InvalidateStats(ctx context.Context) error

	SetBalance(ctx context.Context, user, token string, balance uint64) error
	GetBalance(ctx context.Context, user, token string) (uint64, bool, error)
}
