// Package match implements the single-column pattern matcher: fast paths,
// anchored match, infix match, substring scan and the recursive windowed
// match, selected by the shape of the parsed pattern.
package match

import "github.com/CrystallineCore/biscuit/bitmap"

// Source supplies the cached haystack bytes for a row during substring
// scan, where pure bitmap intersection is unsafe and a character-by-character
// comparison against the real value is required. Callers pass the bytes
// consistent with the half being matched: original bytes for the
// case-sensitive half, lowercased bytes for the case-insensitive half.
type Source interface {
	Bytes(row uint32) []byte
}

// LiveRows is the universe bitmap used by the "%" fast path: all
// non-tombstoned rows.
type LiveRows = bitmap.Bitmap
