// Package bicore implements the global index container, the builder/loader
// and the mutation path: everything that owns row identity, cached bytes,
// tombstones and the free list.
package bicore

import (
	"sync"

	"github.com/CrystallineCore/biscuit/bitmap"
	"github.com/CrystallineCore/biscuit/colindex"
	"github.com/CrystallineCore/biscuit/config"
	"github.com/CrystallineCore/biscuit/marker"
	"github.com/CrystallineCore/biscuit/query"
)

// Counters tracks the CRUD counters the global index owns.
type Counters struct {
	Inserts uint64
	Updates uint64
	Deletes uint64
}

// Index is the global index: row-id to tid table, per-row cached
// original and lowercased column bytes, a tombstone bitmap, a free list of
// reusable internal indices, CRUD counters, and one Column index per
// indexed column.
type Index struct {
	mu sync.RWMutex

	opts    config.Options
	factory bitmap.Factory
	lower   query.Lowercaser

	numColumns int
	columns    []*colindex.Column

	tids       []query.TID
	tidIndex   map[query.TID]uint32 // reverse lookup for Insert's "TID already present" case
	tombstoned []bool               // per-row, mirrors membership in tombstones for O(1) Insert clearing
	cacheOrig  [][][]byte
	cacheLow   [][][]byte

	live       bitmap.Bitmap // rows that are currently live (the universe of non-tombstoned rows)
	tombstones bitmap.Bitmap // cumulative, reset at config.Options.TombstoneResetThreshold
	freeList   []uint32

	counters Counters
	sealed   marker.Block
}

// New returns an empty Index for numColumns string columns, configured by
// opts and using lower for case-insensitive indexing.
func New(opts config.Options, lower query.Lowercaser, numColumns int) *Index {
	opts = opts.WithDefaults()
	factory := bitmap.NewFactory(opts.RoaringBackend)

	columns := make([]*colindex.Column, numColumns)
	for i := range columns {
		columns[i] = colindex.New(factory)
	}

	return &Index{
		opts:       opts,
		factory:    factory,
		lower:      lower,
		numColumns: numColumns,
		columns:    columns,
		tidIndex:   make(map[query.TID]uint32),
		live:       factory.New(),
		tombstones: factory.New(),
	}
}

// NumColumns returns the number of indexed columns.
func (ix *Index) NumColumns() int { return ix.numColumns }

// Column returns the column index for c.
func (ix *Index) Column(c int) *colindex.Column { return ix.columns[c] }

// Factory returns the bitmap backend this index's bitmaps use.
func (ix *Index) Factory() bitmap.Factory { return ix.factory }

// LiveRows returns a fresh copy of the "live" universe bitmap: every row
// that has been inserted and not yet tombstoned. Evaluate reads the same
// bitmap directly (via liveUniverse) for the "%" fast path and NOT-operator
// inversion; this copy is for callers outside the package.
func (ix *Index) LiveRows() bitmap.Bitmap {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.live.Clone()
}

// Tombstones returns a fresh copy of the cumulative tombstone bitmap,
// used to mask dead rows out of a result set.
func (ix *Index) Tombstones() bitmap.Bitmap {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.tombstones.Clone()
}

// TID returns the tid stored for internal row index r.
func (ix *Index) TID(r uint32) query.TID {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.tids[r]
}

// Counters returns a snapshot of the CRUD counters.
func (ix *Index) Counters() Counters {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.counters
}

// Sealed returns the marker block recorded at the last successful build.
func (ix *Index) Sealed() marker.Block {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.sealed
}

// Bytes implements match.Source for the case-sensitive half of column c:
// the cached original bytes for row.
func (ix *Index) Bytes(c int, row uint32) []byte {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.cacheOrig[row][c]
}

// LoweredBytes implements match.Source for the case-insensitive half of
// column c: the cached lowercased bytes for row.
func (ix *Index) LoweredBytes(c int, row uint32) []byte {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.cacheLow[row][c]
}

// ColumnSource adapts one column's cached bytes to match.Source.
type ColumnSource struct {
	ix              *Index
	col             int
	caseInsensitive bool
}

// Source returns the match.Source for column c's requested half.
func (ix *Index) Source(col int, caseInsensitive bool) ColumnSource {
	return ColumnSource{ix: ix, col: col, caseInsensitive: caseInsensitive}
}

func (s ColumnSource) Bytes(row uint32) []byte {
	if s.caseInsensitive {
		return s.ix.LoweredBytes(s.col, row)
	}
	return s.ix.Bytes(s.col, row)
}
