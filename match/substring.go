package match

import (
	"bytes"

	"github.com/CrystallineCore/biscuit/bitmap"
	"github.com/CrystallineCore/biscuit/colindex"
	"github.com/CrystallineCore/biscuit/pattern"
	"github.com/CrystallineCore/biscuit/utf8run"
)

// substringScan handles the "%P%" substring case: pure bitmap matching is
// unsafe here, because two candidate matches at
// different character positions could share bitmap membership only by
// accident. Candidates are narrowed with char_presence and L_ge, then each
// candidate's cached bytes are compared character-by-character at every
// legal offset, with '_' in the pattern consuming one haystack character.
func substringScan(ch *colindex.ColumnHalf, part pattern.Part, src Source) bitmap.Bitmap {
	firstByte, ok := firstConcreteByte(part)
	if !ok {
		// Every byte in part is '_' — handled by the pure-wildcard fast
		// path before substring scan is ever reached, but stay total.
		return ch.LengthGe(part.CharLen)
	}

	candidates := bitmap.And(ch.CharPresence(firstByte), ch.LengthGe(part.CharLen))
	result := ch.Factory().New()
	partChars := charsOf(part.Bytes)

	candidates.Iterate(func(row uint32) bool {
		hay := src.Bytes(row)
		hayChars := charsOf(hay)
		n, m := len(hayChars), len(partChars)
		for p := 0; p+m <= n; p++ {
			if charsMatch(hayChars[p:p+m], partChars) {
				result.Add(row)
				break
			}
		}
		return true
	})

	return result
}

func firstConcreteByte(part pattern.Part) (byte, bool) {
	for _, b := range part.Bytes {
		if b != '_' {
			return b, true
		}
	}
	return 0, false
}

// charsOf splits b into its individual character byte slices, tolerating
// malformed UTF-8 the way utf8run.CharLen does (an unclassifiable lead
// byte becomes its own one-byte "character").
func charsOf(b []byte) [][]byte {
	var out [][]byte
	for i := 0; i < len(b); {
		cl := utf8run.CharLen(b[i])
		if i+cl > len(b) {
			cl = len(b) - i
		}
		out = append(out, b[i:i+cl])
		i += cl
	}
	return out
}

func charsMatch(hay, part [][]byte) bool {
	for i := range part {
		if len(part[i]) == 1 && part[i][0] == '_' {
			continue
		}
		if !bytes.Equal(hay[i], part[i]) {
			return false
		}
	}
	return true
}
