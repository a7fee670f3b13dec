package plan

import (
	"context"

	"github.com/CrystallineCore/biscuit/bicore"
	"github.com/CrystallineCore/biscuit/bitmap"
	"github.com/CrystallineCore/biscuit/query"
)

// Execute analyzes and sorts every predicate, evaluates the first
// predicate, applies the tombstone mask, then intersects each subsequent
// predicate's bitmap in planned order, stopping the moment the running
// result is empty.
func Execute(ctx context.Context, ix *bicore.Index, predicates []query.Predicate) bitmap.Bitmap {
	if len(predicates) == 0 {
		return ix.LiveRows()
	}
	if len(predicates) == 1 {
		return ix.Evaluate(ctx, predicates[0])
	}

	analyses := make([]Analysis, len(predicates))
	for i, p := range predicates {
		analyses[i] = Analyze(p)
	}
	Sort(analyses)

	result := ix.Evaluate(ctx, analyses[0].Predicate)
	tombstones := ix.Tombstones()
	if !tombstones.IsEmpty() {
		result.AndNot(tombstones)
	}

	for _, a := range analyses[1:] {
		if result.IsEmpty() {
			break
		}
		if ctx.Err() != nil {
			break
		}
		next := ix.Evaluate(ctx, a.Predicate)
		result.And(next)
	}

	return result
}
