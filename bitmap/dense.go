package bitmap

import "math/bits"

// denseBitmap is the fallback backend: a plain growable slice of 64-bit
// words, one bit per row, used when no compressed-container backend is
// configured.
type denseBitmap struct {
	words []uint64
}

func newDenseBitmap() Bitmap {
	return &denseBitmap{}
}

func (d *denseBitmap) ensure(word int) {
	if word >= len(d.words) {
		grown := make([]uint64, word+1)
		copy(grown, d.words)
		d.words = grown
	}
}

func (d *denseBitmap) Add(row uint32) {
	w, b := int(row/64), row%64
	d.ensure(w)
	d.words[w] |= 1 << b
}

func (d *denseBitmap) Remove(row uint32) {
	w, b := int(row/64), row%64
	if w >= len(d.words) {
		return
	}
	d.words[w] &^= 1 << b
}

func (d *denseBitmap) Contains(row uint32) bool {
	w, b := int(row/64), row%64
	if w >= len(d.words) {
		return false
	}
	return d.words[w]&(1<<b) != 0
}

func (d *denseBitmap) Count() uint64 {
	var n uint64
	for _, w := range d.words {
		n += uint64(bits.OnesCount64(w))
	}
	return n
}

func (d *denseBitmap) IsEmpty() bool {
	for _, w := range d.words {
		if w != 0 {
			return false
		}
	}
	return true
}

func (d *denseBitmap) Clone() Bitmap {
	words := make([]uint64, len(d.words))
	copy(words, d.words)
	return &denseBitmap{words: words}
}

func (d *denseBitmap) other(o Bitmap) *denseBitmap {
	if dd, ok := o.(*denseBitmap); ok {
		return dd
	}
	out := &denseBitmap{}
	o.Iterate(func(row uint32) bool {
		out.Add(row)
		return true
	})
	return out
}

func (d *denseBitmap) And(other Bitmap) {
	o := d.other(other)
	n := len(d.words)
	if len(o.words) < n {
		n = len(o.words)
	}
	for i := 0; i < n; i++ {
		d.words[i] &= o.words[i]
	}
	for i := n; i < len(d.words); i++ {
		d.words[i] = 0
	}
}

func (d *denseBitmap) Or(other Bitmap) {
	o := d.other(other)
	d.ensure(len(o.words) - 1)
	for i, w := range o.words {
		d.words[i] |= w
	}
}

func (d *denseBitmap) AndNot(other Bitmap) {
	o := d.other(other)
	n := len(d.words)
	if len(o.words) < n {
		n = len(o.words)
	}
	for i := 0; i < n; i++ {
		d.words[i] &^= o.words[i]
	}
}

func (d *denseBitmap) Iterate(fn func(row uint32) bool) {
	for wi, w := range d.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			row := uint32(wi)*64 + uint32(b)
			if !fn(row) {
				return
			}
			w &^= 1 << uint(b)
		}
	}
}

func (d *denseBitmap) ToSlice() []uint32 {
	out := make([]uint32, 0, d.Count())
	d.Iterate(func(row uint32) bool {
		out = append(out, row)
		return true
	})
	return out
}
