package port

//go:generate mockgen -destination=../service/mocks/memory_mock.go -package=mocks -source=memory.go

// MemoryGauge reports process heap pressure. The upload path consults it
// between stream reads as crude admission control against unbounded
// accumulation of very large uploads.
type MemoryGauge interface {
	// HeapUsageRatio returns in-use heap as a fraction of heap obtained
	// from the OS, in [0, 1].
	HeapUsageRatio() float64
}
