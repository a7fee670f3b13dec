package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CrystallineCore/biscuit/query"
)

func pred(col int, pattern string) query.Predicate {
	return query.Predicate{Column: col, Op: query.Like, Pattern: []byte(pattern)}
}

func TestAnalyzeExactIsMostSelective(t *testing.T) {
	exact := Analyze(pred(0, "hello"))
	substring := Analyze(pred(0, "%e%"))

	assert.True(t, exact.IsExact)
	assert.False(t, substring.IsExact)
	assert.True(t, exact.Priority < substring.Priority)
}

func TestAnalyzePrefixSuffix(t *testing.T) {
	prefix := Analyze(pred(0, "abc%"))
	suffix := Analyze(pred(0, "%abc"))
	assert.True(t, prefix.IsPrefix)
	assert.False(t, prefix.IsSuffix)
	assert.True(t, suffix.IsSuffix)
	assert.False(t, suffix.IsPrefix)
}

func TestAnalyzeSubstringFlag(t *testing.T) {
	a := Analyze(pred(0, "%abc%"))
	assert.True(t, a.IsSubstring)
}

func TestSortOrdersBySelectivityThenColumn(t *testing.T) {
	analyses := []Analysis{
		Analyze(pred(1, "%e%")),
		Analyze(pred(0, "exact")),
	}
	Sort(analyses)
	assert.Equal(t, 0, analyses[0].Predicate.Column)
}

func TestSortBreaksTiesByColumn(t *testing.T) {
	a := Analyze(pred(2, "exact"))
	b := Analyze(pred(1, "exact"))
	analyses := []Analysis{a, b}
	Sort(analyses)
	assert.Equal(t, 1, analyses[0].Predicate.Column)
	assert.Equal(t, 2, analyses[1].Predicate.Column)
}
