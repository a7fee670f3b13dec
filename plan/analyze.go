// Package plan implements the multi-column planner and executor:
// per-predicate selectivity analysis, priority-tier assignment, sorting,
// and intersecting the predicates' bitmaps in planned order with early
// termination on an empty running result.
package plan

import (
	"math"

	"github.com/CrystallineCore/biscuit/pattern"
	"github.com/CrystallineCore/biscuit/query"
)

// Analysis is the per-predicate shape summary computed during planning.
type Analysis struct {
	Predicate      query.Predicate
	HasPercent     bool
	IsExact        bool
	IsPrefix       bool
	IsSuffix       bool
	IsSubstring    bool
	PartitionCount int
	PercentCount   int
	UnderscoreCount int
	ConcreteChars  int
	AnchorStrength int

	Selectivity float64
	Priority    int
}

// Analyze inspects pred's pattern and computes its selectivity score and
// priority tier, without touching the index.
func Analyze(pred query.Predicate) Analysis {
	p := pattern.Parse(pred.Pattern)
	parts := p.Parts

	a := Analysis{
		Predicate:      pred,
		PartitionCount: len(parts),
		IsSubstring:    p.StartsPercent && p.EndsPercent,
	}
	a.HasPercent = p.StartsPercent || p.EndsPercent || len(parts) > 1
	a.PercentCount = internalPercentRuns(parts) + boolToInt(p.StartsPercent) + boolToInt(p.EndsPercent)

	for _, part := range parts {
		u := part.UnderscoreCount()
		a.UnderscoreCount += u
		a.ConcreteChars += part.CharLen - u
	}

	a.IsExact = len(parts) == 1 && !p.StartsPercent && !p.EndsPercent && a.UnderscoreCount == 0
	a.IsPrefix = len(parts) == 1 && !p.StartsPercent && p.EndsPercent
	a.IsSuffix = len(parts) == 1 && p.StartsPercent && !p.EndsPercent

	a.AnchorStrength = anchorStrength(parts, p.StartsPercent, p.EndsPercent)

	a.Selectivity = selectivity(a)
	a.Priority = priority(a)

	return a
}

func internalPercentRuns(parts []pattern.Part) int {
	if len(parts) == 0 {
		return 0
	}
	return len(parts) - 1
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// anchorStrength scores the concrete characters pinned to the start
// (when !startsPercent) and/or end (when !endsPercent) of the pattern:
// concrete chars worth 10, underscores worth 3, clamped to [0,100].
func anchorStrength(parts []pattern.Part, startsPercent, endsPercent bool) int {
	if len(parts) == 0 {
		return 0
	}

	score := 0
	if !startsPercent {
		score += anchorPartScore(parts[0])
	}
	if !endsPercent {
		last := parts[len(parts)-1]
		if !(len(parts) == 1 && !startsPercent) {
			score += anchorPartScore(last)
		}
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

func anchorPartScore(part pattern.Part) int {
	u := part.UnderscoreCount()
	concrete := part.CharLen - u
	return concrete*10 + u*3
}

// selectivity scores a predicate: lower means more selective, and
// therefore executed earlier.
func selectivity(a Analysis) float64 {
	s := 1.0 / float64(a.ConcreteChars+1)
	if a.IsExact {
		s *= 0.1
	}
	s -= 0.05 * float64(a.UnderscoreCount)
	s += 0.15 * float64(a.PartitionCount)
	s -= float64(a.AnchorStrength) / 200
	if a.IsSubstring {
		s += 0.5
	}
	return clamp(s, 0.01, 1.0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// priority assigns a predicate to a coarse execution tier, lower running
// first.
func priority(a Analysis) int {
	var base int
	switch {
	case a.IsExact || (!a.HasPercent && a.UnderscoreCount >= 3):
		base = 0
	case !a.HasPercent:
		base = 10
	case a.AnchorStrength >= 30:
		base = 20
	case a.AnchorStrength > 0:
		base = 30
	case a.PartitionCount >= 3:
		base = 40 + a.PartitionCount
	case a.IsSubstring:
		base = 50
	default:
		base = 35
	}
	return base + int(math.Round(10*a.Selectivity))
}
