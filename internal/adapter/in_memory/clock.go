package in_memory

import (
	"sync/atomic"

	"github.com/mkravchenko/dex-settlement/internal/port"
)

var _ port.BlockClock = (*LogicalClock)(nil)

// LogicalClock is the default BlockClock: a monotonic counter standing in
// for block height, which a real deployment gets from the chain.
type LogicalClock struct {
	height atomic.Uint64
}

func NewLogicalClock() *LogicalClock {
	return &LogicalClock{}
}

func (c *LogicalClock) CurrentHeight() uint64 {
	return c.height.Add(1)
}

// FixedClock always reports the same height. Handy in tests.
type FixedClock uint64

func (c FixedClock) CurrentHeight() uint64 { return uint64(c) }
