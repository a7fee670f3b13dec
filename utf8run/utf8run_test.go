package utf8run

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharLen(t *testing.T) {
	assert.Equal(t, 1, CharLen('a'))
	assert.Equal(t, 2, CharLen(0xC3)) // 'é' lead byte
	assert.Equal(t, 3, CharLen(0xE2)) // 3-byte lead, e.g. some CJK/symbols
	assert.Equal(t, 4, CharLen(0xF0)) // 4-byte lead, e.g. emoji
	assert.Equal(t, 1, CharLen(0xFF)) // malformed, treated as length 1
}

func TestIsContinuation(t *testing.T) {
	assert.True(t, IsContinuation(0x80))
	assert.True(t, IsContinuation(0xBF))
	assert.False(t, IsContinuation(0x41))
	assert.False(t, IsContinuation(0xC3))
}

func TestCharCount(t *testing.T) {
	assert.Equal(t, 0, CharCount(nil))
	assert.Equal(t, 5, CharCount([]byte("hello")))
	assert.Equal(t, 4, CharCount([]byte("café")))
}

func TestCharToByteOffset(t *testing.T) {
	b := []byte("café")
	assert.Equal(t, 0, CharToByteOffset(b, 0))
	assert.Equal(t, 3, CharToByteOffset(b, 3)) // 'é' starts at byte 3
	assert.Equal(t, len(b), CharToByteOffset(b, 4))
	assert.Equal(t, InvalidOffset, CharToByteOffset(b, 5))
	assert.Equal(t, InvalidOffset, CharToByteOffset(b, -1))
}
