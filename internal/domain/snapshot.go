package domain

// OrderBookSnapshot is the placeholder shape returned by the order book
// query. Aggregating resting orders into levels is an external concern; the
// engine only fills in the pair.
type OrderBookSnapshot struct {
	Pair string
	Bids []Order
	Asks []Order
}
