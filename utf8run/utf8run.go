// Package utf8run implements the UTF-8 helper primitives: the four total,
// never-failing operations every higher layer in this module uses to walk
// strings character-by-character instead of byte-by-byte.
//
// Malformed UTF-8 is tolerated throughout: an unclassifiable lead byte is
// treated as a one-byte "character" rather than rejected, which keeps
// indexing total.
package utf8run

// InvalidOffset is returned by CharToByteOffset when the requested
// character position is beyond the string's character count.
const InvalidOffset = -1

// CharLen returns the byte length of the UTF-8 character that starts with
// lead, decided purely from the leading byte. Malformed leads are treated
// as length 1.
func CharLen(lead byte) int {
	switch {
	case lead < 0x80:
		return 1
	case lead < 0xC0:
		return 1
	case lead < 0xE0:
		return 2
	case lead < 0xF0:
		return 3
	case lead < 0xF8:
		return 4
	default:
		return 1
	}
}

// IsContinuation reports whether b is a UTF-8 continuation byte
// (10xxxxxx). The substring scan does not call it; it compares whole
// characters split by CharLen.
func IsContinuation(b byte) bool {
	return b&0xC0 == 0x80
}

// CharCount returns the number of characters in b, clamping the last
// character to the buffer if it is truncated.
func CharCount(b []byte) int {
	n := 0
	for i := 0; i < len(b); {
		i += CharLen(b[i])
		n++
	}
	return n
}

// CharToByteOffset returns the byte offset of the start of the k-th
// character (0-based) in b, or InvalidOffset if k is beyond b's character
// count.
func CharToByteOffset(b []byte, k int) int {
	if k < 0 {
		return InvalidOffset
	}
	i, c := 0, 0
	for i < len(b) {
		if c == k {
			return i
		}
		i += CharLen(b[i])
		c++
	}
	if c == k {
		return i
	}
	return InvalidOffset
}
