package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantParts     []string
		startsPercent bool
		endsPercent   bool
	}{
		{"empty", "", nil, false, false},
		{"only percent", "%", nil, true, true},
		{"multiple percent collapse", "%%%", nil, true, true},
		{"exact", "hello", []string{"hello"}, false, false},
		{"prefix", "hello%", []string{"hello"}, false, true},
		{"suffix", "%hello", []string{"hello"}, true, false},
		{"substring", "%hello%", []string{"hello"}, true, true},
		{"infix", "foo%bar", []string{"foo", "bar"}, false, false},
		{"internal collapse", "foo%%%bar", []string{"foo", "bar"}, false, false},
		{"with underscore", "f_o%bar", []string{"f_o", "bar"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse([]byte(tt.raw))
			assert.Equal(t, tt.startsPercent, p.StartsPercent)
			assert.Equal(t, tt.endsPercent, p.EndsPercent)
			var got []string
			for _, part := range p.Parts {
				got = append(got, string(part.Bytes))
			}
			assert.Equal(t, tt.wantParts, got)
		})
	}
}

func TestPartCharLenCountsMultibyte(t *testing.T) {
	p := Parse([]byte("café%")) // "café%"
	assert.Len(t, p.Parts, 1)
	assert.Equal(t, 4, p.Parts[0].CharLen)
	assert.Equal(t, 5, p.Parts[0].ByteLen)
}

func TestUnderscoreCount(t *testing.T) {
	p := Parse([]byte("a_b__c"))
	assert.Equal(t, 3, p.Parts[0].UnderscoreCount())
}

func TestIsAllWildcards(t *testing.T) {
	assert.True(t, Parse([]byte("")).IsAllWildcards())
	assert.True(t, Parse([]byte("%")).IsAllWildcards())
	assert.False(t, Parse([]byte("_")).IsAllWildcards())
	assert.False(t, Parse([]byte("a%b")).IsAllWildcards())
}

func TestClassifyRaw(t *testing.T) {
	assert.True(t, ClassifyRaw([]byte("")).Empty)
	assert.True(t, ClassifyRaw([]byte("%")).OnlyPercent)

	c := ClassifyRaw([]byte("__%"))
	assert.True(t, c.OnlyWildcards)
	assert.True(t, c.HasPercent)
	assert.Equal(t, 2, c.UnderscoreCount)

	c2 := ClassifyRaw([]byte("__"))
	assert.True(t, c2.OnlyWildcards)
	assert.False(t, c2.HasPercent)

	c3 := ClassifyRaw([]byte("a_b"))
	assert.False(t, c3.OnlyWildcards)
}
