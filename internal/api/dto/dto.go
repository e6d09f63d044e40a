package dto

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/mkravchenko/dex-settlement/internal/domain"
)

type PlaceOrderRequest struct {
	Side   string `json:"side" binding:"required"`
	Pair   string `json:"pair" binding:"required"`
	Amount uint64 `json:"amount"`
	Price  uint64 `json:"price"`
}

type PlaceOrderResponse struct {
	OrderID uint64 `json:"order_id"`
}

type ExecuteTradeRequest struct {
	BuyOrderID  uint64 `json:"buy_order_id"`
	SellOrderID uint64 `json:"sell_order_id"`
	Amount      uint64 `json:"amount"`
}

type ExecuteTradeResponse struct {
	Amount      uint64 `json:"amount"`
	Price       uint64 `json:"price"`
	Value       uint64 `json:"value"`
	Fee         uint64 `json:"fee"`
	AmountHuman string `json:"amount_display"`
	PriceHuman  string `json:"price_display"`
	ValueHuman  string `json:"value_display"`
	FeeHuman    string `json:"fee_display"`
}

type Order struct {
	ID           uint64 `json:"id"`
	Owner        string `json:"owner"`
	Pair         string `json:"pair"`
	Side         string `json:"side"`
	Type         string `json:"type"`
	Amount       uint64 `json:"amount"`
	Price        uint64 `json:"price"`
	FilledAmount uint64 `json:"filled_amount"`
	Status       string `json:"status"`
	CreatedAt    uint64 `json:"created_at"`
	AmountHuman  string `json:"amount_display"`
	PriceHuman   string `json:"price_display"`
}

type GetOrderResponse struct {
	Order Order `json:"order"`
}

type BalanceResponse struct {
	User         string `json:"user"`
	Token        string `json:"token"`
	Balance      uint64 `json:"balance"`
	BalanceHuman string `json:"balance_display"`
}

type StatsResponse struct {
	TotalVolume uint64 `json:"total_volume"`
	TotalFees   uint64 `json:"total_fees"`
	NextOrderID uint64 `json:"next_order_id"`
}

type FeeResponse struct {
	Amount uint64 `json:"amount"`
	Fee    uint64 `json:"fee"`
}

type UserOrdersResponse struct {
	User     string   `json:"user"`
	OrderIDs []uint64 `json:"order_ids"`
}

type OrderBookResponse struct {
	Pair string  `json:"pair"`
	Bids []Order `json:"bids"`
	Asks []Order `json:"asks"`
}

// Display renders a scaled fixed-point value as a 6-dp decimal string.
func Display(v uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), -6).String()
}

func ConvertOrder(o *domain.Order) Order {
	return Order{
		ID:           o.ID,
		Owner:        o.Owner,
		Pair:         o.Pair,
		Side:         string(o.Side),
		Type:         string(o.Type),
		Amount:       o.Amount,
		Price:        o.Price,
		FilledAmount: o.FilledAmount,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
		AmountHuman:  Display(o.Amount),
		PriceHuman:   Display(o.Price),
	}
}

func ConvertOrders(orders []domain.Order) []Order {
	res := make([]Order, len(orders))
	for i := range orders {
		res[i] = ConvertOrder(&orders[i])
	}
	return res
}

func ConvertReceipt(r *domain.TradeReceipt) ExecuteTradeResponse {
	return ExecuteTradeResponse{
		Amount:      r.Amount,
		Price:       r.Price,
		Value:       r.Value,
		Fee:         r.Fee,
		AmountHuman: Display(r.Amount),
		PriceHuman:  Display(r.Price),
		ValueHuman:  Display(r.Value),
		FeeHuman:    Display(r.Fee),
	}
}
