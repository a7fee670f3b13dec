package bicore

import (
	"context"
	"fmt"

	"github.com/CrystallineCore/biscuit/colindex"
	"github.com/CrystallineCore/biscuit/marker"
	"github.com/CrystallineCore/biscuit/query"
)

// Build performs a single-pass scan over rs: assign an internal row index
// to every row, cache its bytes, index both halves of every column, then
// seal the marker. Build is also the loader and always does a full fresh
// pass; nothing in this module calls it lazily on first operation, and the
// registry package only stores, looks up and removes indices that callers
// have already built. A scan that errors or is
// cancelled partway through never leaves a partially-indexed pass queryable:
// the index is reset back to empty before the error is returned, so Sealed
// and Counters never describe rows that a caller could still match against.
func (ix *Index) Build(ctx context.Context, rs query.RowSource) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.resetLocked()

	var rowCount uint32
	for {
		if err := ctx.Err(); err != nil {
			ix.resetLocked()
			return fmt.Errorf("bicore: build: %w", err)
		}

		row, ok, err := rs.Next(ctx)
		if err != nil {
			ix.resetLocked()
			return fmt.Errorf("bicore: build: row source: %w", err)
		}
		if !ok {
			break
		}

		r := ix.allocateRowLocked()
		ix.tids[r] = row.TID
		ix.tidIndex[row.TID] = r
		ix.cacheValuesLocked(r, row.Values)
		ix.indexRowLocked(r, row.Values)
		ix.live.Add(r)
		rowCount++
	}

	ix.sealed = marker.New(rowCount)
	ix.counters.Inserts += uint64(rowCount)
	return nil
}

// resetLocked discards all row state so Build can be re-run from scratch,
// giving drop+rebuild the same result as a fresh build. Column indices are
// recreated rather than mutated in place.
func (ix *Index) resetLocked() {
	columns := make([]*colindex.Column, ix.numColumns)
	for i := range columns {
		columns[i] = colindex.New(ix.factory)
	}
	ix.columns = columns
	ix.tids = nil
	ix.tidIndex = make(map[query.TID]uint32)
	ix.tombstoned = nil
	ix.cacheOrig = nil
	ix.cacheLow = nil
	ix.live = ix.factory.New()
	ix.tombstones = ix.factory.New()
	ix.freeList = nil
	ix.counters = Counters{}
}

// allocateRowLocked pops the free list or extends every per-row table,
// clearing any stale state at that slot. Callers must hold ix.mu.
func (ix *Index) allocateRowLocked() uint32 {
	if n := len(ix.freeList); n > 0 {
		r := ix.freeList[n-1]
		ix.freeList = ix.freeList[:n-1]
		ix.tombstones.Remove(r)
		ix.tombstoned[r] = false
		ix.cacheOrig[r] = make([][]byte, ix.numColumns)
		ix.cacheLow[r] = make([][]byte, ix.numColumns)
		return r
	}

	r := uint32(len(ix.tids))
	ix.tids = append(ix.tids, query.TID{})
	ix.tombstoned = append(ix.tombstoned, false)
	ix.cacheOrig = append(ix.cacheOrig, make([][]byte, ix.numColumns))
	ix.cacheLow = append(ix.cacheLow, make([][]byte, ix.numColumns))
	return r
}

// cacheValuesLocked stores original and lowercased bytes for row r. A nil
// entry in values means that column is NULL — non-indexed, but still
// cached as nil.
func (ix *Index) cacheValuesLocked(r uint32, values [][]byte) {
	for c := 0; c < ix.numColumns && c < len(values); c++ {
		v := values[c]
		if v == nil {
			continue
		}
		orig := append([]byte(nil), v...)
		ix.cacheOrig[r][c] = orig
		ix.cacheLow[r][c] = ix.lower.ToLower(orig)
	}
}

// indexRowLocked feeds row r's cached bytes into every column's two
// halves.
func (ix *Index) indexRowLocked(r uint32, values [][]byte) {
	for c := 0; c < ix.numColumns && c < len(values); c++ {
		if values[c] == nil {
			continue
		}
		ix.columns[c].IndexValue(r, ix.cacheOrig[r][c], ix.cacheLow[r][c])
	}
}
