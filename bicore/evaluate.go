package bicore

import (
	"context"

	"github.com/CrystallineCore/biscuit/biserr"
	"github.com/CrystallineCore/biscuit/bitmap"
	"github.com/CrystallineCore/biscuit/match"
	"github.com/CrystallineCore/biscuit/query"
)

// Evaluate matches a single predicate against this index: ILIKE routes to
// the case-insensitive matcher, and NOT forms invert against the universe
// of non-tombstoned rows. A predicate naming a column index outside the
// indexed range matches nothing rather than panicking.
func (ix *Index) Evaluate(ctx context.Context, pred query.Predicate) bitmap.Bitmap {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if pred.Column < 0 || pred.Column >= ix.numColumns {
		biserr.LogAndSkip(biserr.Unsupported("bicore.Evaluate", "predicate column index out of range"))
		return ix.factory.New()
	}

	col := ix.columns[pred.Column]
	caseInsensitive := pred.Op.CaseInsensitive()
	half := col.Half(caseInsensitive)
	src := ix.Source(pred.Column, caseInsensitive)

	raw := pred.Pattern
	if caseInsensitive {
		raw = ix.lower.ToLower(raw)
	}

	universe := ix.liveUniverse()
	result := match.Match(ctx, half, raw, universe, src)

	if pred.Op.Negated() {
		result = bitmap.AndNot(universe, result)
	}
	return result
}
