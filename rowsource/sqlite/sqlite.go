// Package sqlite adapts a SQLite table into query.RowSource using the
// rowid pseudo-column as the tid, split across TID's (Block, Offset) pair.
// Uses modernc.org/sqlite's pure-Go driver rather than a cgo-based one, so
// an index build never needs a C toolchain.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/CrystallineCore/biscuit/query"
	"github.com/CrystallineCore/biscuit/rowsource"
)

// Source streams a SQLite table's rows in rowid order.
type Source struct {
	db      *sql.DB
	rows    *sql.Rows
	numCols int
}

// Open connects to config.DbName (a file path or ":memory:") and begins
// streaming config.Table's configured columns, ordered by rowid.
func Open(ctx context.Context, config rowsource.Config) (*Source, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", config.DbName)
	if err != nil {
		return nil, fmt.Errorf("rowsource/sqlite: open: %w", err)
	}

	q := fmt.Sprintf("select rowid, %s from %s order by rowid", strings.Join(config.Columns, ", "), config.Table)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("rowsource/sqlite: query: %w", err)
	}

	return &Source{db: db, rows: rows, numCols: len(config.Columns)}, nil
}

// Next implements query.RowSource.
func (s *Source) Next(ctx context.Context) (query.Row, bool, error) {
	if err := ctx.Err(); err != nil {
		return query.Row{}, false, err
	}
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return query.Row{}, false, fmt.Errorf("rowsource/sqlite: next: %w", err)
		}
		return query.Row{}, false, nil
	}

	var rowid int64
	raw := make([]sql.RawBytes, s.numCols)
	dest := make([]any, s.numCols+1)
	dest[0] = &rowid
	for i := range raw {
		dest[i+1] = &raw[i]
	}
	if err := s.rows.Scan(dest...); err != nil {
		return query.Row{}, false, fmt.Errorf("rowsource/sqlite: scan: %w", err)
	}

	values := make([][]byte, s.numCols)
	for i, b := range raw {
		if b != nil {
			values[i] = append([]byte(nil), b...)
		}
	}

	tid := query.TID{Block: uint32(uint64(rowid) >> 32), Offset: uint32(uint64(rowid))}
	return query.Row{TID: tid, Values: values}, true, nil
}

// Close releases the underlying rows and database handle.
func (s *Source) Close() error {
	s.rows.Close()
	return s.db.Close()
}
