package domain

// Trade is an immutable settlement record. Key is the running total-volume
// value at the moment the trade was appended; a repeated running total
// overwrites the earlier record, which is kept for compatibility with the
// deployed contract.
type Trade struct {
	Key        uint64
	BuyOrderID uint64
	Buyer      string
	Seller     string
	Pair       string
	Amount     uint64
	Price      uint64
	Value      uint64
	Fee        uint64
	ExecutedAt uint64
}

// TradeReceipt is what ExecuteTrade hands back to the caller.
type TradeReceipt struct {
	Amount uint64
	Price  uint64
	Value  uint64
	Fee    uint64
}

// DexStats carries the engine-wide counters.
type DexStats struct {
	TotalVolume uint64
	TotalFees   uint64
	NextOrderID uint64
}
