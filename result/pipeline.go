// Package result implements the result pipeline: tombstone masking,
// parallel-or-serial materialization into tids, optional limit-aware
// truncation, and optional block/offset sorting.
package result

import (
	"context"

	"github.com/CrystallineCore/biscuit/bitmap"
	"github.com/CrystallineCore/biscuit/config"
	"github.com/CrystallineCore/biscuit/query"
)

// TIDLookup resolves an internal row index to its tid. Implemented by
// bicore.Index.TID; kept as a plain function type here so this package has
// no dependency on bicore, since this is a pure post-processing stage.
type TIDLookup func(row uint32) query.TID

// Pipeline finalizes a query's result bitmap.
type Pipeline struct {
	opts config.Options
}

// New returns a Pipeline configured by opts.
func New(opts config.Options) Pipeline {
	return Pipeline{opts: opts.WithDefaults()}
}

// Finalize runs four steps against result (which may be mutated in
// place): mask tombstones, materialize tids (optionally in parallel),
// truncate to limit, then sort if needsSorting. limit < 0 means no cap.
func (p Pipeline) Finalize(ctx context.Context, result bitmap.Bitmap, tombstones bitmap.Bitmap, lookup TIDLookup, needsSorting bool, limit int) []query.TID {
	if tombstones != nil && !tombstones.IsEmpty() {
		result.AndNot(tombstones)
	}

	tids := p.materialize(ctx, result, lookup)

	if limit >= 0 && limit < len(tids) {
		tids = tids[:limit]
	}

	if needsSorting {
		tids = sortTIDs(tids, p.opts.RadixSortThreshold)
	}

	return tids
}
