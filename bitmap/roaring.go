package bitmap

import "github.com/RoaringBitmap/roaring"

// roaringBitmap is the compressed-container backend, built on
// github.com/RoaringBitmap/roaring.
type roaringBitmap struct {
	b *roaring.Bitmap
}

func newRoaringBitmap() Bitmap {
	return &roaringBitmap{b: roaring.New()}
}

func (r *roaringBitmap) Add(row uint32)      { r.b.Add(row) }
func (r *roaringBitmap) Remove(row uint32)   { r.b.Remove(row) }
func (r *roaringBitmap) Contains(row uint32) bool { return r.b.Contains(row) }
func (r *roaringBitmap) Count() uint64       { return r.b.GetCardinality() }
func (r *roaringBitmap) IsEmpty() bool       { return r.b.IsEmpty() }

func (r *roaringBitmap) Clone() Bitmap {
	return &roaringBitmap{b: r.b.Clone()}
}

func (r *roaringBitmap) And(other Bitmap) {
	o, ok := other.(*roaringBitmap)
	if !ok {
		r.And(fromGeneric(other, true))
		return
	}
	r.b.And(o.b)
}

func (r *roaringBitmap) Or(other Bitmap) {
	o, ok := other.(*roaringBitmap)
	if !ok {
		r.Or(fromGeneric(other, true))
		return
	}
	r.b.Or(o.b)
}

func (r *roaringBitmap) AndNot(other Bitmap) {
	o, ok := other.(*roaringBitmap)
	if !ok {
		r.AndNot(fromGeneric(other, true))
		return
	}
	r.b.AndNot(o.b)
}

func (r *roaringBitmap) Iterate(fn func(row uint32) bool) {
	it := r.b.Iterator()
	for it.HasNext() {
		if !fn(it.Next()) {
			return
		}
	}
}

func (r *roaringBitmap) ToSlice() []uint32 {
	return r.b.ToArray()
}

// fromGeneric rebuilds a bitmap of the requested backend from another
// implementation's contents. Only reachable if two indices built with
// different config.Options.RoaringBackend values are ever crossed, which
// normal use of a single Factory per Index prevents.
func fromGeneric(other Bitmap, roaringBackend bool) Bitmap {
	f := NewFactory(roaringBackend)
	b := f.New()
	other.Iterate(func(row uint32) bool {
		b.Add(row)
		return true
	})
	return b
}
