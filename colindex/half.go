// Package colindex implements the column index: a pair of
// character-position indices (case-sensitive, case-insensitive) plus
// per-case exact-length and length-ge bitmaps.
package colindex

import (
	"github.com/CrystallineCore/biscuit/bitmap"
	"github.com/CrystallineCore/biscuit/posindex"
	"github.com/CrystallineCore/biscuit/utf8run"
)

// half is one of the two structurally identical halves of a Column: either
// the case-sensitive or the case-insensitive view of the indexed values.
// The two halves keep independent length arrays because case folding can
// change a value's character count (e.g. "ß" -> "ss").
type half struct {
	factory      bitmap.Factory
	pos          *posindex.PositionIndex
	neg          *posindex.PositionIndex
	charPresence [256]bitmap.Bitmap
	lenEq        []bitmap.Bitmap
	lenGe        []bitmap.Bitmap
	maxLength    int
}

func newHalf(f bitmap.Factory) *half {
	h := &half{
		factory: f,
		pos:     posindex.New(f),
		neg:     posindex.New(f),
	}
	for i := range h.charPresence {
		h.charPresence[i] = f.New()
	}
	return h
}

// ensureLength grows lenEq/lenGe so that index n is valid, doubling
// capacity on demand and initializing new slots with fresh empty bitmaps.
func (h *half) ensureLength(n int) {
	if n < len(h.lenEq) {
		return
	}
	newCap := len(h.lenEq)
	if newCap == 0 {
		newCap = 8
	}
	for newCap <= n {
		newCap *= 2
	}

	grownEq := make([]bitmap.Bitmap, newCap)
	copy(grownEq, h.lenEq)
	for i := len(h.lenEq); i < newCap; i++ {
		grownEq[i] = h.factory.New()
	}
	h.lenEq = grownEq

	grownGe := make([]bitmap.Bitmap, newCap)
	copy(grownGe, h.lenGe)
	for i := len(h.lenGe); i < newCap; i++ {
		grownGe[i] = h.factory.New()
	}
	h.lenGe = grownGe
}

// indexValue indexes bytes (already lowercased by the caller for the
// case-insensitive half) for row under this half, implementing the
// byte-at-character-position invariant: every byte of a multi-byte
// character is added to the bitmaps at the same character position.
func (h *half) indexValue(row uint32, b []byte) {
	n := utf8run.CharCount(b)
	h.ensureLength(n)

	p := 0
	for i := 0; i < len(b); {
		cl := utf8run.CharLen(b[i])
		if i+cl > len(b) {
			cl = len(b) - i
		}
		for k := 0; k < cl; k++ {
			bv := b[i+k]
			h.pos.Insert(bv, int32(p), row)
			h.neg.Insert(bv, int32(p-n), row)
			h.charPresence[bv].Add(row)
		}
		i += cl
		p++
	}

	h.lenEq[n].Add(row)
	for k := 0; k <= n; k++ {
		h.lenGe[k].Add(row)
	}
	if n > h.maxLength {
		h.maxLength = n
	}
}

// lengthGe returns a fresh copy of L_ge[k], empty if k exceeds maxLength.
func (h *half) lengthGe(k int) bitmap.Bitmap {
	if k < 0 {
		k = 0
	}
	if k >= len(h.lenGe) {
		return h.factory.New()
	}
	return h.lenGe[k].Clone()
}

// lengthEq returns a fresh copy of L_eq[k].
func (h *half) lengthEq(k int) bitmap.Bitmap {
	if k < 0 || k >= len(h.lenEq) {
		return h.factory.New()
	}
	return h.lenEq[k].Clone()
}

// unindexValue removes row from every bitmap this half recorded for it.
// Recomputes the touched positions from the same bytes indexValue was given
// for this half (original or lowered), so it does not need a reverse index.
func (h *half) unindexValue(row uint32, b []byte) {
	n := utf8run.CharCount(b)

	p := 0
	for i := 0; i < len(b); {
		cl := utf8run.CharLen(b[i])
		if i+cl > len(b) {
			cl = len(b) - i
		}
		for k := 0; k < cl; k++ {
			bv := b[i+k]
			h.pos.Remove(bv, int32(p), row)
			h.neg.Remove(bv, int32(p-n), row)
			h.charPresence[bv].Remove(row)
		}
		i += cl
		p++
	}

	if n < len(h.lenEq) {
		h.lenEq[n].Remove(row)
	}
	for k := 0; k <= n && k < len(h.lenGe); k++ {
		h.lenGe[k].Remove(row)
	}
}

// andNotAll removes every row in doomed from every bitmap this half owns:
// every per-byte-position entry, every char-presence bitmap, every L_eq,
// every L_ge. Used by bulk delete.
func (h *half) andNotAll(doomed bitmap.Bitmap) {
	h.pos.ForEachEntry(func(_ byte, _ int32, bm bitmap.Bitmap) { bm.AndNot(doomed) })
	h.neg.ForEachEntry(func(_ byte, _ int32, bm bitmap.Bitmap) { bm.AndNot(doomed) })
	for i := range h.charPresence {
		h.charPresence[i].AndNot(doomed)
	}
	for _, bm := range h.lenEq {
		bm.AndNot(doomed)
	}
	for _, bm := range h.lenGe {
		bm.AndNot(doomed)
	}
}
