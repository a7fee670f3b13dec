// Package pattern implements the LIKE/ILIKE pattern parser. Parsing is
// total: every byte string, including malformed UTF-8, produces a Pattern.
package pattern

import "github.com/CrystallineCore/biscuit/utf8run"

// Part is a maximal substring of a pattern containing no '%'. It may
// contain '_'. Lengths are recorded in both bytes and characters so later
// stages never have to recompute either.
type Part struct {
	Bytes     []byte
	ByteLen   int
	CharLen   int
}

// Pattern is the parsed form of a LIKE/ILIKE pattern: its concrete parts
// plus the two boundary flags.
type Pattern struct {
	Parts         []Part
	StartsPercent bool
	EndsPercent   bool
}

// Parse splits raw on '%' into parts, collapsing consecutive '%' into one
// split point. '_' is not a split point — it stays inside a part. The
// patterns "" and "%" both parse to an empty part list, with their
// respective flags set.
func Parse(raw []byte) Pattern {
	if len(raw) == 0 {
		return Pattern{}
	}

	startsPercent := raw[0] == '%'
	endsPercent := raw[len(raw)-1] == '%'

	var parts []Part
	start := 0
	i := 0
	for i < len(raw) {
		if raw[i] == '%' {
			if i > start {
				parts = append(parts, makePart(raw[start:i]))
			}
			i++
			for i < len(raw) && raw[i] == '%' {
				i++
			}
			start = i
			continue
		}
		i++
	}
	if start < len(raw) {
		parts = append(parts, makePart(raw[start:]))
	}

	return Pattern{
		Parts:         parts,
		StartsPercent: startsPercent,
		EndsPercent:   endsPercent,
	}
}

func makePart(b []byte) Part {
	return Part{
		Bytes:   b,
		ByteLen: len(b),
		CharLen: utf8run.CharCount(b),
	}
}

// IsAllWildcards reports whether the pattern contains no concrete parts at
// all — i.e. it consists purely of '%' and '_' (including the empty
// pattern and "%" itself, which have zero parts by construction).
func (p Pattern) IsAllWildcards() bool {
	return len(p.Parts) == 0
}

// UnderscoreCount returns the number of '_' wildcards in this part. The
// underscore-only fast path counts underscores on the raw pattern instead;
// see ClassifyRaw.
func (p Part) UnderscoreCount() int {
	n := 0
	for _, b := range p.Bytes {
		if b == '_' {
			n++
		}
	}
	return n
}

// TotalCharLen sums the character length of every part.
func (p Pattern) TotalCharLen() int {
	n := 0
	for _, part := range p.Parts {
		n += part.CharLen
	}
	return n
}
