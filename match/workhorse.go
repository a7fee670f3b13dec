package match

import (
	"github.com/CrystallineCore/biscuit/bitmap"
	"github.com/CrystallineCore/biscuit/colindex"
	"github.com/CrystallineCore/biscuit/pattern"
	"github.com/CrystallineCore/biscuit/utf8run"
)

// partAtPosition walks part byte by byte, maintaining the running
// character position p = start + k. '_' advances p
// without touching any bitmap; a concrete character looks up and
// intersects pos[b][p] for every byte b of that character, short-circuiting
// to empty the moment any lookup is absent. After the walk, the result is
// intersected with L_ge[start+part.CharLen] to enforce a long-enough
// value; a part made entirely of '_' returns that L_ge bitmap directly.
func partAtPosition(ch *colindex.ColumnHalf, part pattern.Part, start int) bitmap.Bitmap {
	if part.CharLen == 0 {
		return ch.LengthGe(start)
	}
	if isOnlyUnderscores(part) {
		return ch.LengthGe(start + part.CharLen)
	}

	var acc bitmap.Bitmap
	p := start
	i := 0
	for i < len(part.Bytes) {
		if part.Bytes[i] == '_' {
			p++
			i++
			continue
		}

		cl := utf8run.CharLen(part.Bytes[i])
		if i+cl > len(part.Bytes) {
			cl = len(part.Bytes) - i
		}

		charBM, ok := intersectCharAt(ch, part.Bytes[i:i+cl], int32(p), false)
		if !ok {
			return ch.Factory().New()
		}
		if acc == nil {
			acc = charBM
		} else {
			acc.And(charBM)
			if acc.IsEmpty() {
				return acc
			}
		}
		i += cl
		p++
	}

	acc.And(ch.LengthGe(start + part.CharLen))
	return acc
}

// partAtEnd is the end-anchored twin of partAtPosition: identical
// structure, but it walks using neg[b][-(N-k)] for the k-th character of
// the part, where N is the part's character count.
func partAtEnd(ch *colindex.ColumnHalf, part pattern.Part) bitmap.Bitmap {
	n := part.CharLen
	if n == 0 {
		return ch.LengthGe(0)
	}
	if isOnlyUnderscores(part) {
		return ch.LengthGe(n)
	}

	var acc bitmap.Bitmap
	k := 0
	i := 0
	for i < len(part.Bytes) {
		if part.Bytes[i] == '_' {
			k++
			i++
			continue
		}

		cl := utf8run.CharLen(part.Bytes[i])
		if i+cl > len(part.Bytes) {
			cl = len(part.Bytes) - i
		}

		charBM, ok := intersectCharAt(ch, part.Bytes[i:i+cl], int32(k-n), true)
		if !ok {
			return ch.Factory().New()
		}
		if acc == nil {
			acc = charBM
		} else {
			acc.And(charBM)
			if acc.IsEmpty() {
				return acc
			}
		}
		i += cl
		k++
	}

	acc.And(ch.LengthGe(n))
	return acc
}

// intersectCharAt intersects the per-byte bitmaps of one character at
// position p (positive index into pos[], or negative index into neg[] when
// end is true), implementing the byte-at-character-position invariant:
// all n byte values of a multi-byte character must agree on the same p.
func intersectCharAt(ch *colindex.ColumnHalf, char []byte, p int32, end bool) (bitmap.Bitmap, bool) {
	var acc bitmap.Bitmap
	for _, b := range char {
		var bm bitmap.Bitmap
		var ok bool
		if end {
			bm, ok = ch.Neg(b, p)
		} else {
			bm, ok = ch.Pos(b, p)
		}
		if !ok {
			return nil, false
		}
		if acc == nil {
			acc = bm.Clone()
		} else {
			acc.And(bm)
		}
	}
	return acc, true
}

func isOnlyUnderscores(part pattern.Part) bool {
	for _, b := range part.Bytes {
		if b != '_' {
			return false
		}
	}
	return true
}
