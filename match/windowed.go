package match

import (
	"context"

	"github.com/CrystallineCore/biscuit/bitmap"
	"github.com/CrystallineCore/biscuit/colindex"
	"github.com/CrystallineCore/biscuit/pattern"
)

// windowedMatch is the recursive windowed match for multi-part patterns
// with no single-shot fast path: it places every part
// at a legal, non-overlapping character position, in order, with P0
// pinned to 0 unless startsPercent, and the last part pinned to the end
// unless endsPercent.
func windowedMatch(ctx context.Context, ch *colindex.ColumnHalf, parts []pattern.Part, startsPercent, endsPercent bool) bitmap.Bitmap {
	acc := ch.Factory().New()
	if len(parts) == 0 {
		return acc
	}

	total := 0
	for _, p := range parts {
		total += p.CharLen
	}

	candidate := ch.LengthGe(total)
	startIdx := 0
	minP := 0
	if !startsPercent {
		candidate.And(partAtPosition(ch, parts[0], 0))
		startIdx = 1
		minP = parts[0].CharLen
	}

	w := &windower{ctx: ctx, ch: ch, parts: parts, endsPercent: endsPercent, maxLength: ch.MaxLength(), acc: acc}
	w.recurse(startIdx, minP, candidate)
	return acc
}

type windower struct {
	ctx         context.Context
	ch          *colindex.ColumnHalf
	parts       []pattern.Part
	endsPercent bool
	maxLength   int
	acc         bitmap.Bitmap
}

func (w *windower) recurse(i, minP int, c bitmap.Bitmap) {
	if w.ctx != nil && w.ctx.Err() != nil {
		return
	}
	if c.IsEmpty() {
		return
	}

	m := len(w.parts)
	if i == m {
		w.acc.Or(c)
		return
	}

	if i == m-1 && !w.endsPercent {
		endMatch := partAtEnd(w.ch, w.parts[i])
		res := bitmap.And(endMatch, c)
		res.And(w.ch.LengthGe(minP + w.parts[i].CharLen))
		w.acc.Or(res)
		return
	}

	rem := 0
	for j := i + 1; j < m; j++ {
		rem += w.parts[j].CharLen
	}
	maxP := w.maxLength - w.parts[i].CharLen - rem

	for p := minP; p <= maxP; p++ {
		if w.ctx != nil && w.ctx.Err() != nil {
			return
		}
		m_p := partAtPosition(w.ch, w.parts[i], p)
		newC := bitmap.And(c, m_p)
		if !newC.IsEmpty() {
			w.recurse(i+1, p+w.parts[i].CharLen, newC)
		}
	}
}
