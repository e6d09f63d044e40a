package domain

import "math/bits"

const (
	// Precision is the global fixed-point scale: 6 decimal places.
	Precision uint64 = 1_000_000

	// FeeBasisPoints is the settlement fee, 30 bps = 0.30% of trade value.
	FeeBasisPoints   uint64 = 30
	BasisPointsDenom uint64 = 10_000
)

// mulDiv computes floor(a*b/div) through a 128-bit intermediate, so the
// product itself cannot wrap. bits.Div64 panics when the quotient does not
// fit in 64 bits; settlement treats that as an aborted operation, and every
// call happens before the first state mutation.
func mulDiv(a, b, div uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	q, _ := bits.Div64(hi, lo, div)
	return q
}

// TradeValue is the quote-token value of a quantity at a price, truncated.
func TradeValue(amount, price uint64) uint64 {
	return mulDiv(amount, price, Precision)
}

// CalculateFee returns floor(value * 30 / 10000).
func CalculateFee(value uint64) uint64 {
	return mulDiv(value, FeeBasisPoints, BasisPointsDenom)
}
