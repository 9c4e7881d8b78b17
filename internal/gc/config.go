package gc

// Config is the collector's tunable configuration. Its fields correspond
// one-to-one to the C-ABI configuration record, but the types differ (the C
// record uses size_t thresholds and int flags), so cmd/libjsheap converts
// each field when marshaling it across cgo.
type Config struct {
	YoungGenThresholdKB uint64
	OldGenThresholdKB   uint64
	MaxPauseMS          uint64
	Incremental         bool
	Verbose             bool
}

// DefaultConfig returns the configuration a freshly constructed Collector
// starts with.
func DefaultConfig() Config {
	return Config{
		YoungGenThresholdKB: 1024,  // 1 MiB
		OldGenThresholdKB:   16384, // 16 MiB
		MaxPauseMS:          10,
		Incremental:         false,
		Verbose:             false,
	}
}
