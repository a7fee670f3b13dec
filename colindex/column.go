package colindex

import "github.com/CrystallineCore/biscuit/bitmap"

// Column is the public column index: a case-sensitive half and a
// case-insensitive half.
type Column struct {
	Sensitive   *half
	Insensitive *half
}

// New returns an empty Column using f's backend for every bitmap it owns.
func New(f bitmap.Factory) *Column {
	return &Column{
		Sensitive:   newHalf(f),
		Insensitive: newHalf(f),
	}
}

// IndexValue indexes row's column value into both halves: original goes
// into the case-sensitive half, lowered (the caller's locale-aware
// lowercasing of original) goes into the case-insensitive half.
func (c *Column) IndexValue(row uint32, original, lowered []byte) {
	c.Sensitive.indexValue(row, original)
	c.Insensitive.indexValue(row, lowered)
}

// UnindexValue removes row from every bitmap in both halves, given the
// same original/lowered bytes that were passed to IndexValue.
func (c *Column) UnindexValue(row uint32, original, lowered []byte) {
	c.Sensitive.unindexValue(row, original)
	c.Insensitive.unindexValue(row, lowered)
}

// AndNotAll removes every row in doomed from every bitmap in both halves.
// Applied once per column during bulk delete.
func (c *Column) AndNotAll(doomed bitmap.Bitmap) {
	c.Sensitive.andNotAll(doomed)
	c.Insensitive.andNotAll(doomed)
}

// Half selects the case-sensitive or case-insensitive half for a query.
func (c *Column) Half(caseInsensitive bool) *ColumnHalf {
	h := c.Sensitive
	if caseInsensitive {
		h = c.Insensitive
	}
	return &ColumnHalf{h: h}
}

// ColumnHalf is the read-only view of one half exposed to the matcher
// (match package), keeping the half type itself unexported.
type ColumnHalf struct {
	h *half
}

// Pos looks up the positive position index entry for byte b at character
// position p.
func (ch *ColumnHalf) Pos(b byte, p int32) (bitmap.Bitmap, bool) {
	return ch.h.pos.Get(b, p)
}

// Neg looks up the negative position index entry for byte b at character
// position p (p is typically negative or zero).
func (ch *ColumnHalf) Neg(b byte, p int32) (bitmap.Bitmap, bool) {
	return ch.h.neg.Get(b, p)
}

// CharPresence returns the character-presence bitmap for byte b: every row
// whose value contains b anywhere in this half.
func (ch *ColumnHalf) CharPresence(b byte) bitmap.Bitmap {
	return ch.h.charPresence[b]
}

// LengthEq returns a fresh copy of L_eq[k].
func (ch *ColumnHalf) LengthEq(k int) bitmap.Bitmap {
	return ch.h.lengthEq(k)
}

// LengthGe returns a fresh copy of L_ge[k].
func (ch *ColumnHalf) LengthGe(k int) bitmap.Bitmap {
	return ch.h.lengthGe(k)
}

// MaxLength returns the largest character count ever observed in this
// half.
func (ch *ColumnHalf) MaxLength() int {
	return ch.h.maxLength
}

// Factory exposes the bitmap backend this half's bitmaps use, so callers
// (the matcher) can build scratch bitmaps of the same backend.
func (ch *ColumnHalf) Factory() bitmap.Factory {
	return ch.h.factory
}
