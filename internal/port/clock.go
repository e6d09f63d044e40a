package port

// BlockClock supplies the creation/settlement sequence marker. On chain this
// is the block height; off chain any monotonic source will do.
type BlockClock interface {
	CurrentHeight() uint64
}
