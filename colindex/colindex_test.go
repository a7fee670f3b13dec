package colindex

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CrystallineCore/biscuit/bitmap"
)

func TestIndexAndLookupPosition(t *testing.T) {
	f := bitmap.NewFactory(true)
	col := New(f)

	col.IndexValue(0, []byte("hello"), []byte("hello"))
	col.IndexValue(1, []byte("help"), []byte("help"))

	half := col.Half(false)
	bm, ok := half.Pos('h', 0)
	assert.True(t, ok)
	assert.ElementsMatch(t, []uint32{0, 1}, bm.ToSlice())

	bm, ok = half.Pos('e', 1)
	assert.True(t, ok)
	assert.ElementsMatch(t, []uint32{0, 1}, bm.ToSlice())

	bm, ok = half.Pos('l', 2)
	assert.True(t, ok)
	assert.ElementsMatch(t, []uint32{0, 1}, bm.ToSlice())

	_, ok = half.Pos('z', 0)
	assert.False(t, ok)
}

func TestLengthEqAndGe(t *testing.T) {
	f := bitmap.NewFactory(true)
	col := New(f)
	col.IndexValue(0, []byte("ab"), []byte("ab"))
	col.IndexValue(1, []byte("abc"), []byte("abc"))
	col.IndexValue(2, []byte("abcd"), []byte("abcd"))

	half := col.Half(false)
	assert.ElementsMatch(t, []uint32{0}, half.LengthEq(2).ToSlice())
	assert.ElementsMatch(t, []uint32{0, 1, 2}, half.LengthGe(2).ToSlice())
	assert.ElementsMatch(t, []uint32{1, 2}, half.LengthGe(3).ToSlice())
	assert.True(t, half.LengthGe(5).IsEmpty())
	assert.Equal(t, 4, half.MaxLength())
}

func TestMultibyteCharacterIndexedAtSinglePosition(t *testing.T) {
	f := bitmap.NewFactory(true)
	col := New(f)
	// "café" = c,a,f,é where é is 2 bytes (0xC3 0xA9).
	col.IndexValue(0, []byte("café"), []byte("café"))

	half := col.Half(false)
	bm1, ok := half.Pos(0xC3, 3)
	assert.True(t, ok)
	assert.True(t, bm1.Contains(0))

	bm2, ok := half.Pos(0xA9, 3)
	assert.True(t, ok)
	assert.True(t, bm2.Contains(0))

	assert.True(t, half.LengthEq(4).Contains(0))
}

func TestUnindexRemovesRow(t *testing.T) {
	f := bitmap.NewFactory(true)
	col := New(f)
	col.IndexValue(0, []byte("abc"), []byte("abc"))
	col.IndexValue(1, []byte("abc"), []byte("abc"))

	col.UnindexValue(0, []byte("abc"), []byte("abc"))

	half := col.Half(false)
	bm, ok := half.Pos('a', 0)
	assert.True(t, ok)
	assert.False(t, bm.Contains(0))
	assert.True(t, bm.Contains(1))
	assert.True(t, half.LengthEq(3).Contains(1))
	assert.False(t, half.LengthEq(3).Contains(0))
}

func TestAndNotAllBulkDelete(t *testing.T) {
	f := bitmap.NewFactory(true)
	col := New(f)
	col.IndexValue(0, []byte("abc"), []byte("abc"))
	col.IndexValue(1, []byte("abc"), []byte("abc"))
	col.IndexValue(2, []byte("xyz"), []byte("xyz"))

	doomed := f.Of(0, 2)
	col.AndNotAll(doomed)

	half := col.Half(false)
	bm, _ := half.Pos('a', 0)
	assert.ElementsMatch(t, []uint32{1}, bm.ToSlice())
	assert.ElementsMatch(t, []uint32{1}, half.LengthEq(3).ToSlice())
}

func TestCaseInsensitiveHalfUsesLoweredBytes(t *testing.T) {
	f := bitmap.NewFactory(true)
	col := New(f)
	col.IndexValue(0, []byte("HELLO"), []byte("hello"))

	sensitive := col.Half(false)
	_, ok := sensitive.Pos('h', 0)
	assert.False(t, ok)
	bm, ok := sensitive.Pos('H', 0)
	assert.True(t, ok)
	assert.True(t, bm.Contains(0))

	insensitive := col.Half(true)
	bm, ok = insensitive.Pos('h', 0)
	assert.True(t, ok)
	assert.True(t, bm.Contains(0))
}
