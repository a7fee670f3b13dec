// Package config holds the static, build-time configuration of a Biscuit
// index: a plain options bag constructed once and threaded through, never
// runtime reflection.
package config

// Options configures one Biscuit index. All fields are read once at index
// construction time; nothing here is safe to mutate after Build/Load.
type Options struct {
	// RoaringBackend selects the compressed Roaring-style bitmap
	// container. When false, bitmaps use the dense word-array fallback.
	RoaringBackend bool

	// TombstoneResetThreshold is the cardinality at which the tombstone
	// bitmap is reset to empty after a bulk delete settles it into the
	// per-bitmap structures. Default 1000.
	TombstoneResetThreshold int

	// RadixSortThreshold is the result-size cutoff at or above which TID
	// sorting switches from comparison sort to block/offset radix sort.
	// Default 5000.
	RadixSortThreshold int

	// ParallelMaterializeMin is the result cardinality at which result
	// materialization fans out across a worker pool. Default 10000.
	ParallelMaterializeMin int
}

// Default returns the recommended defaults for a new index.
func Default() Options {
	return Options{
		RoaringBackend:          true,
		TombstoneResetThreshold: 1000,
		RadixSortThreshold:      5000,
		ParallelMaterializeMin:  10000,
	}
}

// WithDefaults fills any zero-valued tunables in o with their defaults,
// leaving explicitly-set fields untouched. RoaringBackend has no "unset"
// state to detect, so callers that want the dense fallback must request it
// via LoadOptions or by setting the field directly before calling this.
func (o Options) WithDefaults() Options {
	d := Default()
	if o.TombstoneResetThreshold == 0 {
		o.TombstoneResetThreshold = d.TombstoneResetThreshold
	}
	if o.RadixSortThreshold == 0 {
		o.RadixSortThreshold = d.RadixSortThreshold
	}
	if o.ParallelMaterializeMin == 0 {
		o.ParallelMaterializeMin = d.ParallelMaterializeMin
	}
	return o
}
