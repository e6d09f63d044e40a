package core

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mkravchenko/dex-settlement/internal/domain"
	"github.com/mkravchenko/dex-settlement/internal/port"
)

// Engine implements the settlement core: order placement, trade execution
// and the query surface. All state lives behind one mutex so every operation
// runs serialized and all-or-nothing, the way a chain serializes
// transactions. Matching selection is not the engine's job — callers propose
// a (buy, sell) pair and the engine only validates and settles it.
type Engine struct {
	repo   port.Repository
	cache  port.Cache
	events port.Notifier
	clock  port.BlockClock
	log    *zap.Logger

	mu          sync.Mutex
	orders      map[uint64]*domain.Order
	escrow      map[domain.EscrowKey]uint64
	trades      map[uint64]*domain.Trade
	nextOrderID uint64
	totalVolume uint64
	totalFees   uint64
}

func NewEngine(repo port.Repository, cache port.Cache, events port.Notifier, clock port.BlockClock, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		repo:        repo,
		cache:       cache,
		events:      events,
		clock:       clock,
		log:         log,
		orders:      make(map[uint64]*domain.Order),
		escrow:      make(map[domain.EscrowKey]uint64),
		trades:      make(map[uint64]*domain.Trade),
		nextOrderID: 1,
	}
}

// LoadState rehydrates orders, escrow balances and counters from the
// repository (used on startup).
func (e *Engine) LoadState(ctx context.Context) error {
	if e.repo == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	orders, err := e.repo.LoadOrders(ctx)
	if err != nil {
		return err
	}
	for _, o := range orders {
		e.orders[o.ID] = o
	}
	entries, err := e.repo.LoadEscrow(ctx)
	if err != nil {
		return err
	}
	for _, en := range entries {
		e.escrow[domain.EscrowKey{User: en.User, Token: en.Token}] = en.Balance
	}
	stats, err := e.repo.LoadCounters(ctx)
	if err != nil {
		return err
	}
	if stats.NextOrderID > 0 {
		e.nextOrderID = stats.NextOrderID
	}
	e.totalVolume = stats.TotalVolume
	e.totalFees = stats.TotalFees
	return nil
}

// PlaceLimitOrder validates and creates a resting order, reserving escrow
// for the caller: quote token worth floor(amount*price/Precision) on the
// buy side, the base amount itself on the sell side. The reservation is
// bookkeeping only; real custody checks belong to the wallet collaborator.
func (e *Engine) PlaceLimitOrder(ctx context.Context, caller string, side domain.Side, pair string, amount, price uint64) (uint64, error) {
	if caller == "" {
		return 0, domain.ErrUnauthorized
	}
	if side != domain.Buy && side != domain.Sell {
		return 0, domain.ErrInvalidSide
	}
	if amount == 0 {
		return 0, domain.ErrInvalidAmount
	}
	if price == 0 {
		return 0, domain.ErrInvalidPrice
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var token string
	var required uint64
	if side == domain.Buy {
		token = domain.QuoteToken(pair)
		required = domain.TradeValue(amount, price)
	} else {
		token = domain.BaseToken(pair)
		required = amount
	}

	id := e.nextOrderID
	e.nextOrderID++

	o := &domain.Order{
		ID:        id,
		Owner:     caller,
		Pair:      pair,
		Side:      side,
		Type:      domain.Limit,
		Amount:    amount,
		Price:     price,
		Status:    domain.Open,
		CreatedAt: e.height(),
	}
	e.orders[id] = o

	key := domain.EscrowKey{User: caller, Token: token}
	e.escrow[key] += required

	if e.repo != nil {
		_ = e.repo.SaveOrder(ctx, o)
		_ = e.repo.SaveEscrow(ctx, &domain.EscrowEntry{User: caller, Token: token, Balance: e.escrow[key]})
		_ = e.repo.SaveCounters(ctx, e.statsLocked())
	}
	if e.cache != nil {
		_ = e.cache.SetBalance(ctx, caller, token, e.escrow[key])
		_ = e.cache.InvalidateStats(ctx)
	}
	if e.events != nil {
		_ = e.events.OrderPlaced(ctx, o)
	}

	e.log.Info("order placed",
		zap.Uint64("order_id", id),
		zap.String("owner", caller),
		zap.String("pair", pair),
		zap.String("side", string(side)),
		zap.Uint64("amount", amount),
		zap.Uint64("price", price),
		zap.Uint64("escrowed", required),
	)
	return id, nil
}

// ExecuteTrade settles a proposed match between a resting buy and a resting
// sell order. Preconditions short-circuit in a fixed sequence and nothing is
// mutated until all of them pass. The trade executes at the seller's limit
// price, so the buyer never pays more than their own limit.
func (e *Engine) ExecuteTrade(ctx context.Context, caller string, buyOrderID, sellOrderID, tradeAmount uint64) (*domain.TradeReceipt, error) {
	if caller == "" {
		return nil, domain.ErrUnauthorized
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	buy, ok := e.orders[buyOrderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	sell, ok := e.orders[sellOrderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if buy.Side != domain.Buy || sell.Side != domain.Sell {
		return nil, domain.ErrInvalidSide
	}
	// Pair mismatch reuses the side error, matching the deployed contract.
	if buy.Pair != sell.Pair {
		return nil, domain.ErrInvalidSide
	}
	if buy.Owner == sell.Owner {
		return nil, domain.ErrSameUser
	}
	// Strictly Open: a partially filled order cannot be matched again.
	if buy.Status != domain.Open || sell.Status != domain.Open {
		return nil, domain.ErrOrderNotFound
	}
	if tradeAmount == 0 {
		return nil, domain.ErrInvalidAmount
	}
	if buy.Price < sell.Price {
		return nil, domain.ErrInvalidPrice
	}
	if tradeAmount > buy.Remaining() || tradeAmount > sell.Remaining() {
		return nil, domain.ErrInsufficientBalance
	}

	tradePrice := sell.Price
	tradeValue := domain.TradeValue(tradeAmount, tradePrice)
	fee := domain.CalculateFee(tradeValue)

	buy.FilledAmount += tradeAmount
	buy.Status = buy.FillStatus()
	sell.FilledAmount += tradeAmount
	sell.Status = sell.FillStatus()

	e.totalVolume += tradeValue
	e.totalFees += fee

	// Keyed by the post-update running volume, as the deployed contract does.
	t := &domain.Trade{
		Key:        e.totalVolume,
		BuyOrderID: buyOrderID,
		Buyer:      buy.Owner,
		Seller:     sell.Owner,
		Pair:       buy.Pair,
		Amount:     tradeAmount,
		Price:      tradePrice,
		Value:      tradeValue,
		Fee:        fee,
		ExecutedAt: e.height(),
	}
	e.trades[t.Key] = t

	if e.repo != nil {
		_ = e.repo.SaveOrder(ctx, buy)
		_ = e.repo.SaveOrder(ctx, sell)
		_ = e.repo.SaveTrade(ctx, t)
		_ = e.repo.SaveCounters(ctx, e.statsLocked())
	}
	if e.cache != nil {
		_ = e.cache.InvalidateStats(ctx)
	}
	if e.events != nil {
		_ = e.events.TradeExecuted(ctx, t)
	}

	e.log.Info("trade executed",
		zap.Uint64("buy_order", buyOrderID),
		zap.Uint64("sell_order", sellOrderID),
		zap.String("pair", buy.Pair),
		zap.Uint64("amount", tradeAmount),
		zap.Uint64("price", tradePrice),
		zap.Uint64("value", tradeValue),
		zap.Uint64("fee", fee),
	)
	return &domain.TradeReceipt{
		Amount: tradeAmount,
		Price:  tradePrice,
		Value:  tradeValue,
		Fee:    fee,
	}, nil
}

// GetOrder looks up an order by id.
func (e *Engine) GetOrder(ctx context.Context, orderID uint64) (*domain.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	o, ok := e.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

// GetUserBalance returns the escrowed balance for (user, token), 0 if absent.
func (e *Engine) GetUserBalance(ctx context.Context, user, token string) uint64 {
	if e.cache != nil {
		if bal, ok, err := e.cache.GetBalance(ctx, user, token); err == nil && ok {
			return bal
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.escrow[domain.EscrowKey{User: user, Token: token}]
}

// GetDexStats returns the running counters.
func (e *Engine) GetDexStats(ctx context.Context) domain.DexStats {
	if e.cache != nil {
		if s, err := e.cache.GetStats(ctx); err == nil && s != nil {
			return *s
		}
	}
	e.mu.Lock()
	stats := e.statsLocked()
	e.mu.Unlock()
	if e.cache != nil {
		_ = e.cache.SetStats(ctx, stats)
	}
	return stats
}

// GetTrade looks up a settlement record by its trade key.
func (e *Engine) GetTrade(ctx context.Context, key uint64) (*domain.Trade, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.trades[key]
	if !ok {
		return nil, false
	}
	cp := *t
	return &cp, true
}

// CalculateFee is the pure fee function, exposed for callers that want to
// quote a fee without settling.
func (e *Engine) CalculateFee(amount uint64) uint64 {
	return domain.CalculateFee(amount)
}

// GetUserOrders returns the ids of a user's orders. Placeholder surface:
// full order aggregation is an external collaborator's job.
func (e *Engine) GetUserOrders(ctx context.Context, user string) []uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	var ids []uint64
	for id, o := range e.orders {
		if o.Owner == user {
			ids = append(ids, id)
		}
	}
	return ids
}

// GetOrderBook returns an empty two-sided snapshot for the pair.
// Placeholder surface: level aggregation is an external collaborator's job.
func (e *Engine) GetOrderBook(ctx context.Context, pair string) *domain.OrderBookSnapshot {
	return &domain.OrderBookSnapshot{
		Pair: pair,
		Bids: []domain.Order{},
		Asks: []domain.Order{},
	}
}

func (e *Engine) statsLocked() domain.DexStats {
	return domain.DexStats{
		TotalVolume: e.totalVolume,
		TotalFees:   e.totalFees,
		NextOrderID: e.nextOrderID,
	}
}

func (e *Engine) height() uint64 {
	if e.clock == nil {
		return 0
	}
	return e.clock.CurrentHeight()
}
