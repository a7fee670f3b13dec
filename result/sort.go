package result

import (
	"sort"

	"github.com/CrystallineCore/biscuit/query"
)

// sortTIDs orders tids by (block, offset) ascending. Below threshold it
// uses a stable comparison sort; at or above threshold it sorts by block
// (dense counting sort when the block range is small relative to len(tids),
// else a four-pass 8-bit radix sort over the full uint32 block range) and
// then radix-sorts each block group by offset.
func sortTIDs(tids []query.TID, threshold int) []query.TID {
	if len(tids) < threshold {
		sort.SliceStable(tids, func(i, j int) bool {
			return tids[i].Less(tids[j])
		})
		return tids
	}
	return radixSort(tids)
}

// radixSort groups tids by block, then bucket-sorts each group by offset.
// Grouping by block picks between two algorithms depending on how dense
// the block range is: dense counting needs an array sized to maxBlock+1,
// which is only cheap when maxBlock is within a small constant factor of
// len(tids); otherwise the range could be arbitrarily large (e.g. a single
// huge block id), so a four-pass 8-bit radix sort bounds the work by
// len(tids) regardless of block magnitude.
func radixSort(tids []query.TID) []query.TID {
	var maxBlock uint32
	for _, t := range tids {
		if t.Block > maxBlock {
			maxBlock = t.Block
		}
	}

	var byBlock []query.TID
	if uint64(maxBlock) < 2*uint64(len(tids)) {
		byBlock = denseBlockSort(tids, maxBlock)
	} else {
		byBlock = tids
		for shift := uint(0); shift < 32; shift += 8 {
			byBlock = radixPass(byBlock, shift)
		}
	}

	out := make([]query.TID, 0, len(byBlock))
	start := 0
	for start < len(byBlock) {
		end := start + 1
		block := byBlock[start].Block
		for end < len(byBlock) && byBlock[end].Block == block {
			end++
		}
		out = append(out, bucketSortOffsets(byBlock[start:end])...)
		start = end
	}
	return out
}

// denseBlockSort counting-sorts tids by Block into an array sized
// maxBlock+1. Only used when maxBlock < 2*len(tids), so the array never
// grows much larger than the input itself.
func denseBlockSort(tids []query.TID, maxBlock uint32) []query.TID {
	counts := make([]int, int(maxBlock)+2)
	for _, t := range tids {
		counts[int(t.Block)+1]++
	}
	for i := 0; i <= int(maxBlock); i++ {
		counts[i+1] += counts[i]
	}

	out := make([]query.TID, len(tids))
	for _, t := range tids {
		b := int(t.Block)
		out[counts[b]] = t
		counts[b]++
	}
	return out
}

// radixPass performs one 8-bit counting-sort pass over Block, keyed by
// the bits at shift.
func radixPass(tids []query.TID, shift uint) []query.TID {
	const radix = 1 << 8
	var counts [radix + 1]int

	key := func(t query.TID) int {
		return int((t.Block >> shift) & 0xFF)
	}

	for _, t := range tids {
		counts[key(t)+1]++
	}
	for i := 0; i < radix; i++ {
		counts[i+1] += counts[i]
	}

	out := make([]query.TID, len(tids))
	for _, t := range tids {
		k := key(t)
		out[counts[k]] = t
		counts[k]++
	}
	return out
}

// bucketSortOffsets orders a single block-group by Offset with a four-pass
// 8-bit radix sort over the full uint32 range, so it never drops a tid
// regardless of how large Offset grows (row sources pack the dense row
// counter into Offset and only roll Block over past 2^32 rows).
func bucketSortOffsets(group []query.TID) []query.TID {
	out := group
	for shift := uint(0); shift < 32; shift += 8 {
		out = offsetRadixPass(out, shift)
	}
	return out
}

// offsetRadixPass performs one 8-bit counting-sort pass over Offset, keyed
// by the bits at shift.
func offsetRadixPass(tids []query.TID, shift uint) []query.TID {
	const radix = 1 << 8
	var counts [radix + 1]int

	key := func(t query.TID) int {
		return int((t.Offset >> shift) & 0xFF)
	}

	for _, t := range tids {
		counts[key(t)+1]++
	}
	for i := 0; i < radix; i++ {
		counts[i+1] += counts[i]
	}

	out := make([]query.TID, len(tids))
	for _, t := range tids {
		k := key(t)
		out[counts[k]] = t
		counts[k]++
	}
	return out
}
