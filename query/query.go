// Package query defines the external interfaces of a Biscuit index: the
// row source pull iterator, the predicate stream, the result sink and the
// tombstone oracle. The core (bicore, plan, match, result) only ever talks
// to these narrow interfaces — it never assumes anything about the host's
// storage engine, locale rules, or diagnostic formatting.
package query

import "context"

// TID identifies a row in the row source. The core treats it as an opaque
// fixed-size tuple and never interprets it except for sort order (block,
// then offset within block).
type TID struct {
	Block  uint32
	Offset uint32
}

// Less orders TIDs by (block, offset), the ordering the result pipeline's
// sort step produces.
func (t TID) Less(o TID) bool {
	if t.Block != o.Block {
		return t.Block < o.Block
	}
	return t.Offset < o.Offset
}

// Operator is a LIKE-family predicate operator.
type Operator int

const (
	Like Operator = iota
	NotLike
	ILike
	NotILike
)

// CaseInsensitive reports whether op routes to the case-insensitive half.
func (op Operator) CaseInsensitive() bool {
	return op == ILike || op == NotILike
}

// Negated reports whether op is one of the NOT forms.
func (op Operator) Negated() bool {
	return op == NotLike || op == NotILike
}

// Predicate is one (column, operator, pattern) triple from a query.
// Pattern is raw UTF-8 bytes; '%' and '_' are the only metacharacters, and
// '\' is passed through literally — the core does no escape processing.
type Predicate struct {
	Column  int
	Op      Operator
	Pattern []byte
}

// Row is one row yielded by a RowSource: its TID and its column values.
// A nil entry in Values means that column is NULL for this row (non-indexed,
// but still occupying an internal row id so a later Insert on the same TID
// can re-populate it).
type Row struct {
	TID    TID
	Values [][]byte
}

// RowSource is the pull iterator the builder/loader replays. Next returns
// (Row{}, false, nil) once exhausted.
type RowSource interface {
	Next(ctx context.Context) (Row, bool, error)
}

// TombstoneOracle identifies, for a given TID, whether the row has been
// removed since the index was last settled.
type TombstoneOracle interface {
	IsRemoved(tid TID) bool
}

// ResultSink accepts the final TID list of a query. Sorted reports
// whether the caller required block/offset order; Limit < 0 means no cap.
type ResultSink interface {
	Accept(tids []TID, sorted bool, limit int) error
}

// Lowercaser maps UTF-8 bytes to their lowercase form. This is a
// locale-aware collaborator — the core never hardcodes ASCII-only case
// folding.
type Lowercaser interface {
	ToLower(b []byte) []byte
}
