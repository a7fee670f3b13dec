package match

import (
	"context"

	"github.com/CrystallineCore/biscuit/bitmap"
	"github.com/CrystallineCore/biscuit/colindex"
	"github.com/CrystallineCore/biscuit/pattern"
)

// Match evaluates raw (already lowercased by the caller if ch is the
// case-insensitive half, since an ILIKE query lowercases its pattern
// before matching) against ch, selecting among the fast paths, anchored
// match, infix match, substring scan or recursive windowed match by the
// shape of the parsed pattern. live is the universe bitmap used by the "%"
// fast path. src supplies cached bytes for substring scan.
//
// Match never fails: missing bitmaps and malformed UTF-8 both yield
// well-formed (possibly empty) results.
func Match(ctx context.Context, ch *colindex.ColumnHalf, raw []byte, live LiveRows, src Source) bitmap.Bitmap {
	class := pattern.ClassifyRaw(raw)
	switch {
	case class.Empty:
		return ch.LengthEq(0)
	case class.OnlyPercent:
		return live.Clone()
	case class.OnlyWildcards && class.HasPercent:
		return ch.LengthGe(class.UnderscoreCount)
	case class.OnlyWildcards:
		return ch.LengthEq(class.UnderscoreCount)
	}

	p := pattern.Parse(raw)
	parts := p.Parts

	switch {
	case len(parts) == 1 && !p.StartsPercent && !p.EndsPercent:
		// Exact: part matched at 0, intersected with L_eq[N].
		result := partAtPosition(ch, parts[0], 0)
		result.And(ch.LengthEq(parts[0].CharLen))
		return result

	case len(parts) == 1 && p.StartsPercent && !p.EndsPercent:
		// Suffix: part is end-anchored.
		return partAtEnd(ch, parts[0])

	case len(parts) == 1 && !p.StartsPercent && p.EndsPercent:
		// Prefix: part matched at 0.
		return partAtPosition(ch, parts[0], 0)

	case len(parts) == 1 && p.StartsPercent && p.EndsPercent:
		// Substring.
		return substringScan(ch, parts[0], src)

	case len(parts) == 2 && !p.StartsPercent && !p.EndsPercent:
		// Infix A%B: A at 0, B at the end, require room for both.
		a, b := parts[0], parts[1]
		result := partAtPosition(ch, a, 0)
		result.And(partAtEnd(ch, b))
		result.And(ch.LengthGe(a.CharLen + b.CharLen))
		return result

	default:
		return windowedMatch(ctx, ch, parts, p.StartsPercent, p.EndsPercent)
	}
}
