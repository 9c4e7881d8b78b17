package gc

// Stats is an atomic snapshot of the collector's counters. Field names and
// types mirror the C-ABI statistics record exactly.
type Stats struct {
	AllocationCount     uint64 `json:"allocation_count"`
	CollectionCount     uint64 `json:"collection_count"`
	ObjectsFreed        uint64 `json:"objects_freed"`
	YoungGenerationSize uint64 `json:"young_generation_size"`
	OldGenerationSize   uint64 `json:"old_generation_size"`
}
