package bicore

import (
	"github.com/CrystallineCore/biscuit/bitmap"
	"github.com/CrystallineCore/biscuit/query"
)

// Insert either updates an already-present TID's row or allocates a brand
// new one. Both cases end by reindexing the row's current values.
func (ix *Index) Insert(tid query.TID, values [][]byte) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if r, ok := ix.tidIndex[tid]; ok {
		ix.unindexRowLocked(r)
		ix.tombstones.Remove(r)
		ix.tombstoned[r] = false
		ix.counters.Updates++
		ix.reindexLocked(r, tid, values)
		return
	}

	r := ix.allocateRowLocked()
	ix.tidIndex[tid] = r
	ix.counters.Inserts++
	ix.reindexLocked(r, tid, values)
}

// reindexLocked sets tids[r], (re)caches values and indexes them into
// every column, then marks r live. Shared by both Insert cases.
func (ix *Index) reindexLocked(r uint32, tid query.TID, values [][]byte) {
	ix.tids[r] = tid
	ix.cacheOrig[r] = make([][]byte, ix.numColumns)
	ix.cacheLow[r] = make([][]byte, ix.numColumns)
	ix.cacheValuesLocked(r, values)
	ix.indexRowLocked(r, values)
	ix.live.Add(r)
}

// unindexRowLocked removes row r from every column it currently
// participates in, using its cached bytes. Used by Insert's
// TID-already-present update path before the row is re-cached and
// re-indexed under its new values.
func (ix *Index) unindexRowLocked(r uint32) {
	for c := 0; c < ix.numColumns; c++ {
		orig := ix.cacheOrig[r][c]
		low := ix.cacheLow[r][c]
		if orig == nil {
			continue
		}
		ix.columns[c].UnindexValue(r, orig, low)
	}
}

// BulkDelete removes every row the oracle reports as deleted. Only this
// batch's deletions (D) are ever andnot'd out of the per-column bitmap
// structures — never the full cumulative tombstone set, which could still
// contain bits for rows that have since been freed and reused for a
// different, currently-live TID.
func (ix *Index) BulkDelete(oracle query.TombstoneOracle) int {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	d := ix.factory.New()
	ix.live.Iterate(func(r uint32) bool {
		if oracle.IsRemoved(ix.tids[r]) {
			d.Add(r)
		}
		return true
	})

	if d.IsEmpty() {
		return 0
	}

	for c := 0; c < ix.numColumns; c++ {
		ix.columns[c].AndNotAll(d)
	}

	count := 0
	d.Iterate(func(r uint32) bool {
		ix.cacheOrig[r] = make([][]byte, ix.numColumns)
		ix.cacheLow[r] = make([][]byte, ix.numColumns)
		ix.tombstoned[r] = true
		ix.freeList = append(ix.freeList, r)
		ix.live.Remove(r)
		delete(ix.tidIndex, ix.tids[r])
		count++
		return true
	})

	ix.tombstones.Or(d)
	ix.counters.Deletes += uint64(count)

	if ix.tombstones.Count() >= uint64(ix.opts.TombstoneResetThreshold) {
		ix.tombstones = ix.factory.New()
	}

	return count
}

// liveUniverse is the bitmap.Bitmap the "%" fast path and NOT-operator
// inversion use: every currently live row.
func (ix *Index) liveUniverse() bitmap.Bitmap {
	return ix.live
}
