// Package posindex implements the character-position index: for each byte
// value 0..255 and each character position (positive or negative), a
// bitmap of rows whose indexed string has that byte at that character
// position.
package posindex

import (
	"sort"

	"github.com/CrystallineCore/biscuit/bitmap"
)

// entry is one (position, bitmap) pair. A PositionIndex's Get/Insert binary
// search these kept sorted by Position within each byte value's slice.
type entry struct {
	Position int32
	Bitmap   bitmap.Bitmap
}

// PositionIndex holds, for every byte value 0..255, the sorted set of
// populated (position, bitmap) pairs. Each half of a Column index
// (case-sensitive / case-insensitive) keeps one PositionIndex for positive
// positions and one for negative positions.
type PositionIndex struct {
	factory bitmap.Factory
	entries [256][]entry
}

// New returns an empty PositionIndex using f's backend for newly created
// bitmaps.
func New(f bitmap.Factory) *PositionIndex {
	return &PositionIndex{factory: f}
}

// Get returns the bitmap at (b, position), or (nil, false) if no row has
// ever been indexed there. O(log n) in the number of populated positions
// for b.
func (p *PositionIndex) Get(b byte, position int32) (bitmap.Bitmap, bool) {
	es := p.entries[b]
	i := sort.Search(len(es), func(i int) bool { return es[i].Position >= position })
	if i < len(es) && es[i].Position == position {
		return es[i].Bitmap, true
	}
	return nil, false
}

// Insert adds row to the bitmap at (b, position), creating the entry at its
// sorted insertion point if it does not exist yet.
func (p *PositionIndex) Insert(b byte, position int32, row uint32) {
	es := p.entries[b]
	i := sort.Search(len(es), func(i int) bool { return es[i].Position >= position })
	if i < len(es) && es[i].Position == position {
		es[i].Bitmap.Add(row)
		return
	}

	es = append(es, entry{})
	copy(es[i+1:], es[i:])
	bm := p.factory.New()
	bm.Add(row)
	es[i] = entry{Position: position, Bitmap: bm}
	p.entries[b] = es
}

// Remove removes row from the bitmap at (b, position), if present. It
// leaves an emptied entry in place rather than compacting the slice; the
// linear scan used by bulk delete also leaves emptied entries in place, so
// once created an entry is never removed.
func (p *PositionIndex) Remove(b byte, position int32, row uint32) {
	es := p.entries[b]
	i := sort.Search(len(es), func(i int) bool { return es[i].Position >= position })
	if i < len(es) && es[i].Position == position {
		es[i].Bitmap.Remove(row)
	}
}

// ForEachEntry walks every populated (byte, position, bitmap) triple. Used
// by bulk delete to andnot the batch's tombstones out of every per-position
// bitmap in one linear pass.
func (p *PositionIndex) ForEachEntry(fn func(b byte, position int32, bm bitmap.Bitmap)) {
	for b := 0; b < 256; b++ {
		for _, e := range p.entries[byte(b)] {
			fn(byte(b), e.Position, e.Bitmap)
		}
	}
}
