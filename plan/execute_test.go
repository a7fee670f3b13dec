package plan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CrystallineCore/biscuit/bicore"
	"github.com/CrystallineCore/biscuit/config"
	"github.com/CrystallineCore/biscuit/query"
)

type sliceSource struct {
	rows []query.Row
	i    int
}

func (s *sliceSource) Next(ctx context.Context) (query.Row, bool, error) {
	if s.i >= len(s.rows) {
		return query.Row{}, false, nil
	}
	r := s.rows[s.i]
	s.i++
	return r, true, nil
}

type passthroughLower struct{}

func (passthroughLower) ToLower(b []byte) []byte { return b }

func newFixtureIndex(t *testing.T) *bicore.Index {
	t.Helper()
	rows := []query.Row{
		{TID: query.TID{Offset: 0}, Values: [][]byte{[]byte("alice"), []byte("smith")}},
		{TID: query.TID{Offset: 1}, Values: [][]byte{[]byte("alicia"), []byte("jones")}},
		{TID: query.TID{Offset: 2}, Values: [][]byte{[]byte("bob"), []byte("smith")}},
	}
	ix := bicore.New(config.Default(), passthroughLower{}, 2)
	assert.NoError(t, ix.Build(context.Background(), &sliceSource{rows: rows}))
	return ix
}

func TestExecuteSinglePredicate(t *testing.T) {
	ix := newFixtureIndex(t)
	preds := []query.Predicate{{Column: 0, Op: query.Like, Pattern: []byte("alic%")}}
	result := Execute(context.Background(), ix, preds)
	assert.ElementsMatch(t, []uint32{0, 1}, result.ToSlice())
}

func TestExecuteMultiplePredicatesIntersect(t *testing.T) {
	ix := newFixtureIndex(t)
	preds := []query.Predicate{
		{Column: 0, Op: query.Like, Pattern: []byte("alic%")},
		{Column: 1, Op: query.Like, Pattern: []byte("smith")},
	}
	result := Execute(context.Background(), ix, preds)
	assert.ElementsMatch(t, []uint32{0}, result.ToSlice())
}

func TestExecuteNoPredicatesReturnsLive(t *testing.T) {
	ix := newFixtureIndex(t)
	result := Execute(context.Background(), ix, nil)
	assert.ElementsMatch(t, []uint32{0, 1, 2}, result.ToSlice())
}

func TestExecuteEmptyIntersectionShortCircuits(t *testing.T) {
	ix := newFixtureIndex(t)
	preds := []query.Predicate{
		{Column: 0, Op: query.Like, Pattern: []byte("bob")},
		{Column: 1, Op: query.Like, Pattern: []byte("jones")},
	}
	result := Execute(context.Background(), ix, preds)
	assert.True(t, result.IsEmpty())
}
