package domain

import "strings"

type Side string
type OrderType string
type OrderStatus string

const (
	Buy     Side        = "BUY"
	Sell    Side        = "SELL"
	Limit   OrderType   = "LIMIT"
	Open    OrderStatus = "OPEN"
	Partial OrderStatus = "PARTIAL"
	Filled  OrderStatus = "FILLED"
)

// Order is one resting limit order. Amount, Price and FilledAmount are
// unsigned fixed-point values scaled by Precision. Orders are never deleted;
// only FilledAmount and Status change after creation.
type Order struct {
	ID           uint64
	Owner        string
	Pair         string
	Side         Side
	Type         OrderType
	Amount       uint64
	Price        uint64
	FilledAmount uint64
	Status       OrderStatus
	CreatedAt    uint64
}

// Remaining is the quantity still available to match.
func (o *Order) Remaining() uint64 {
	return o.Amount - o.FilledAmount
}

// FillStatus derives the stored status from the current fill level.
func (o *Order) FillStatus() OrderStatus {
	switch {
	case o.FilledAmount == o.Amount:
		return Filled
	case o.FilledAmount > 0:
		return Partial
	default:
		return Open
	}
}

// BaseToken returns the base leg of a BASE-QUOTE pair symbol.
func BaseToken(pair string) string {
	base, _, _ := strings.Cut(pair, "-")
	return base
}

// QuoteToken returns the quote leg of a BASE-QUOTE pair symbol. A pair
// without a separator yields the whole symbol for both legs.
func QuoteToken(pair string) string {
	_, quote, ok := strings.Cut(pair, "-")
	if !ok {
		return pair
	}
	return quote
}
