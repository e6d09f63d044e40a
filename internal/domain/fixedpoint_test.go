package domain

import "testing"

func TestTradeValue(t *testing.T) {
	tests := []struct {
		name   string
		amount uint64
		price  uint64
		want   uint64
	}{
		{"half unit at two", 500_000, 2_000_000, 1_000_000},
		{"one at one", 1_000_000, 1_000_000, 1_000_000},
		{"truncates", 1, 1, 0},
		{"just below a unit", 999_999, 1_000_000, 999_999},
		{"zero amount", 0, 5_000_000, 0},
		{"large values use wide intermediate", 4_000_000_000_000, 3_000_000_000_000, 12_000_000_000_000_000_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TradeValue(tt.amount, tt.price); got != tt.want {
				t.Errorf("TradeValue(%d, %d) = %d, want %d", tt.amount, tt.price, got, tt.want)
			}
		})
	}
}

func TestCalculateFee(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
		want  uint64
	}{
		{"thirty bps of a million", 1_000_000, 3_000},
		{"truncates to zero below threshold", 333, 0},
		{"exactly one fee unit", 334, 1},
		{"zero value", 0, 0},
		{"ten thousand", 10_000, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateFee(tt.value); got != tt.want {
				t.Errorf("CalculateFee(%d) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestPairTokens(t *testing.T) {
	if got := BaseToken("STX-USDT"); got != "STX" {
		t.Errorf("BaseToken = %q, want STX", got)
	}
	if got := QuoteToken("STX-USDT"); got != "USDT" {
		t.Errorf("QuoteToken = %q, want USDT", got)
	}
	// degenerate pair without separator: both legs resolve to the symbol
	if got := BaseToken("STX"); got != "STX" {
		t.Errorf("BaseToken = %q, want STX", got)
	}
	if got := QuoteToken("STX"); got != "STX" {
		t.Errorf("QuoteToken = %q, want STX", got)
	}
}

func TestFillStatus(t *testing.T) {
	o := Order{Amount: 1_000_000}
	if got := o.FillStatus(); got != Open {
		t.Errorf("status = %s, want OPEN", got)
	}
	o.FilledAmount = 400_000
	if got := o.FillStatus(); got != Partial {
		t.Errorf("status = %s, want PARTIAL", got)
	}
	if got := o.Remaining(); got != 600_000 {
		t.Errorf("remaining = %d, want 600000", got)
	}
	o.FilledAmount = 1_000_000
	if got := o.FillStatus(); got != Filled {
		t.Errorf("status = %s, want FILLED", got)
	}
}
