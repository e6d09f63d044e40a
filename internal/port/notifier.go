package port

import (
	"context"

	"github.com/mkravchenko/dex-settlement/internal/domain"
)

// Notifier delivers the event side-channel that accompanies every mutating
// operation. Events carry the full record so a downstream indexer can
// reconstruct state without reading the stores.
type Notifier interface {
	OrderPlaced(ctx context.Context, o *domain.Order) error
	TradeExecuted(ctx context.Context, t *domain.Trade) error
}
