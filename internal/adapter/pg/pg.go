package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkravchenko/dex-settlement/internal/domain"
	"github.com/mkravchenko/dex-settlement/internal/port"
)

var _ port.Repository = (*PgRepo)(nil)

type PgRepo struct {
	pool *pgxpool.Pool
}

// call Close when finished working with the database.
func NewPgRepo(ctx context.Context, dsn string) (*PgRepo, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: create pool: %w", err)
	}
	return &PgRepo{pool: pool}, nil
}

func NewRepository(pool *pgxpool.Pool) *PgRepo {
	return &PgRepo{pool: pool}
}

func (p *PgRepo) Close(ctx context.Context) {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *PgRepo) SaveOrder(ctx context.Context, o *domain.Order) error {
	if o == nil {
		return errors.New("nil order")
	}
	_, err := p.pool.Exec(ctx, `
INSERT INTO orders(id, owner, pair, side, type, amount, price, filled_amount, status, created_at)
VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (id) DO UPDATE SET
  filled_amount = EXCLUDED.filled_amount,
  status = EXCLUDED.status
`, o.ID, o.Owner, o.Pair, string(o.Side), string(o.Type),
		o.Amount, o.Price, o.FilledAmount, string(o.Status), o.CreatedAt)
	return err
}

func (p *PgRepo) SaveTrade(ctx context.Context, t *domain.Trade) error {
	if t == nil {
		return errors.New("nil trade")
	}
	_, err := p.pool.Exec(ctx, `
INSERT INTO trades(key, buy_order, buyer, seller, pair, amount, price, value, fee, executed_at)
VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (key) DO UPDATE SET
  buy_order = EXCLUDED.buy_order,
  buyer = EXCLUDED.buyer,
  seller = EXCLUDED.seller,
  pair = EXCLUDED.pair,
  amount = EXCLUDED.amount,
  price = EXCLUDED.price,
  value = EXCLUDED.value,
  fee = EXCLUDED.fee,
  executed_at = EXCLUDED.executed_at
`, t.Key, t.BuyOrderID, t.Buyer, t.Seller, t.Pair, t.Amount, t.Price, t.Value, t.Fee, t.ExecutedAt)
	return err
}

func (p *PgRepo) SaveEscrow(ctx context.Context, e *domain.EscrowEntry) error {
	if e == nil {
		return errors.New("nil escrow entry")
	}
	_, err := p.pool.Exec(ctx, `
INSERT INTO escrow_balances(owner, token, balance)
VALUES($1,$2,$3)
ON CONFLICT (owner, token) DO UPDATE SET balance = EXCLUDED.balance
`, e.User, e.Token, e.Balance)
	return err
}

func (p *PgRepo) SaveCounters(ctx context.Context, s domain.DexStats) error {
	_, err := p.pool.Exec(ctx, `
INSERT INTO dex_counters(id, next_order_id, total_volume, total_fees)
VALUES(1,$1,$2,$3)
ON CONFLICT (id) DO UPDATE SET
  next_order_id = EXCLUDED.next_order_id,
  total_volume = EXCLUDED.total_volume,
  total_fees = EXCLUDED.total_fees
`, s.NextOrderID, s.TotalVolume, s.TotalFees)
	return err
}

func (p *PgRepo) LoadOrders(ctx context.Context) ([]*domain.Order, error) {
	rows, err := p.pool.Query(ctx, `
SELECT id, owner, pair, side, type, amount, price, filled_amount, status, created_at
FROM orders
ORDER BY id ASC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Order
	for rows.Next() {
		var o domain.Order
		var side, typ, status string
		if err := rows.Scan(&o.ID, &o.Owner, &o.Pair, &side, &typ, &o.Amount, &o.Price, &o.FilledAmount, &status, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Side = domain.Side(side)
		o.Type = domain.OrderType(typ)
		o.Status = domain.OrderStatus(status)
		res = append(res, &o)
	}
	return res, rows.Err()
}

func (p *PgRepo) LoadEscrow(ctx context.Context) ([]*domain.EscrowEntry, error) {
	rows, err := p.pool.Query(ctx, `SELECT owner, token, balance FROM escrow_balances`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.EscrowEntry
	for rows.Next() {
		var e domain.EscrowEntry
		if err := rows.Scan(&e.User, &e.Token, &e.Balance); err != nil {
			return nil, err
		}
		res = append(res, &e)
	}
	return res, rows.Err()
}

func (p *PgRepo) LoadCounters(ctx context.Context) (domain.DexStats, error) {
	var s domain.DexStats
	err := p.pool.QueryRow(ctx, `
SELECT next_order_id, total_volume, total_fees FROM dex_counters WHERE id = 1
`).Scan(&s.NextOrderID, &s.TotalVolume, &s.TotalFees)
	if errors.Is(err, pgx.ErrNoRows) {
		// An empty database is not an error; the engine starts from scratch.
		return domain.DexStats{}, nil
	}
	if err != nil {
		return domain.DexStats{}, err
	}
	return s, nil
}
