package result

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CrystallineCore/biscuit/bitmap"
	"github.com/CrystallineCore/biscuit/config"
	"github.com/CrystallineCore/biscuit/query"
)

func lookupFromMap(m map[uint32]query.TID) TIDLookup {
	return func(row uint32) query.TID { return m[row] }
}

func TestFinalizeMasksTombstones(t *testing.T) {
	f := bitmap.NewFactory(true)
	r := f.Of(1, 2, 3)
	tombstones := f.Of(2)

	p := New(config.Default())
	tids := p.Finalize(context.Background(), r, tombstones, lookupFromMap(map[uint32]query.TID{
		1: {Block: 0, Offset: 1},
		2: {Block: 0, Offset: 2},
		3: {Block: 0, Offset: 3},
	}), false, -1)

	var offsets []uint32
	for _, tid := range tids {
		offsets = append(offsets, tid.Offset)
	}
	assert.ElementsMatch(t, []uint32{1, 3}, offsets)
}

func TestFinalizeAppliesLimit(t *testing.T) {
	f := bitmap.NewFactory(true)
	r := f.Of(1, 2, 3, 4, 5)

	p := New(config.Default())
	tids := p.Finalize(context.Background(), r, f.New(), lookupFromMap(map[uint32]query.TID{
		1: {Offset: 1}, 2: {Offset: 2}, 3: {Offset: 3}, 4: {Offset: 4}, 5: {Offset: 5},
	}), false, 2)

	assert.Len(t, tids, 2)
}

func TestFinalizeSortsByBlockThenOffset(t *testing.T) {
	f := bitmap.NewFactory(true)
	r := f.Of(1, 2, 3)

	p := New(config.Default())
	tids := p.Finalize(context.Background(), r, f.New(), lookupFromMap(map[uint32]query.TID{
		1: {Block: 1, Offset: 0},
		2: {Block: 0, Offset: 5},
		3: {Block: 0, Offset: 1},
	}), true, -1)

	assert.Equal(t, []query.TID{{Block: 0, Offset: 1}, {Block: 0, Offset: 5}, {Block: 1, Offset: 0}}, tids)
}

func TestFinalizeEmptyResult(t *testing.T) {
	f := bitmap.NewFactory(true)
	p := New(config.Default())
	tids := p.Finalize(context.Background(), f.New(), f.New(), lookupFromMap(nil), true, -1)
	assert.Empty(t, tids)
}

func TestMaterializeParallelMatchesSerial(t *testing.T) {
	f := bitmap.NewFactory(true)
	r := f.New()
	lookup := map[uint32]query.TID{}
	for i := uint32(0); i < 20000; i++ {
		r.Add(i)
		lookup[i] = query.TID{Block: i / 1000, Offset: i % 1000}
	}

	opts := config.Default()
	p := New(opts)
	tids := p.materialize(context.Background(), r.Clone(), lookupFromMap(lookup))
	assert.Len(t, tids, 20000)

	seen := map[query.TID]bool{}
	for _, tid := range tids {
		seen[tid] = true
	}
	assert.Len(t, seen, 20000)
}

func TestSortTIDsRadixPathMatchesComparisonPath(t *testing.T) {
	var tids []query.TID
	for i := uint32(0); i < 50; i++ {
		tids = append(tids, query.TID{Block: 50 - i/10, Offset: 49 - i})
	}

	viaComparison := append([]query.TID(nil), tids...)
	viaComparison = sortTIDs(viaComparison, 1000) // threshold above len => comparison sort

	viaRadix := append([]query.TID(nil), tids...)
	viaRadix = sortTIDs(viaRadix, 0) // threshold 0 => always radix/dense path

	assert.Equal(t, viaComparison, viaRadix)
}

func TestSortTIDsDenseBlockPathMatchesComparisonPath(t *testing.T) {
	// maxBlock (5) < 2*len(tids) (20) selects the dense counting path.
	var tids []query.TID
	for i := uint32(0); i < 10; i++ {
		tids = append(tids, query.TID{Block: 5 - i%6, Offset: 9 - i})
	}

	viaComparison := append([]query.TID(nil), tids...)
	viaComparison = sortTIDs(viaComparison, 1000)

	viaDense := append([]query.TID(nil), tids...)
	viaDense = sortTIDs(viaDense, 0)

	assert.Equal(t, viaComparison, viaDense)
}

func TestSortTIDsPreservesLargeOffsetsWithinABlock(t *testing.T) {
	// Offsets here exceed the old fixed-size bucket cap; none should be
	// dropped from the sorted output.
	tids := []query.TID{
		{Block: 0, Offset: 1_000_000},
		{Block: 0, Offset: 42},
		{Block: 0, Offset: 900_000},
		{Block: 0, Offset: 0},
	}

	sorted := sortTIDs(append([]query.TID(nil), tids...), 0)
	assert.Equal(t, []query.TID{
		{Block: 0, Offset: 0},
		{Block: 0, Offset: 42},
		{Block: 0, Offset: 900_000},
		{Block: 0, Offset: 1_000_000},
	}, sorted)
}

func TestSortTIDsWideBlockRangeUsesRadixPath(t *testing.T) {
	// maxBlock is far more than 2*len(tids), forcing the radix branch
	// instead of an oversized dense counting array.
	tids := []query.TID{
		{Block: 1_000_000, Offset: 2},
		{Block: 1, Offset: 5},
		{Block: 1_000_000, Offset: 1},
		{Block: 500, Offset: 0},
	}

	viaComparison := append([]query.TID(nil), tids...)
	viaComparison = sortTIDs(viaComparison, 1000)

	viaRadix := append([]query.TID(nil), tids...)
	viaRadix = sortTIDs(viaRadix, 0)

	assert.Equal(t, viaComparison, viaRadix)
}
