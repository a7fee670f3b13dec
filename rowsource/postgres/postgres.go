// Package postgres adapts a Postgres table into query.RowSource, using the
// table's physical ctid directly as the tid's (block, offset) pair — the
// one driver in this package whose storage format has a native match for
// the "block, then offset within block" tid shape.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"

	"github.com/CrystallineCore/biscuit/query"
	"github.com/CrystallineCore/biscuit/rowsource"
)

// Source streams a Postgres table's rows along with their ctid.
type Source struct {
	db      *sql.DB
	rows    *sql.Rows
	numCols int
}

// Open connects via config's DSN and begins streaming config.Table's
// configured columns plus ctid.
func Open(ctx context.Context, config rowsource.Config) (*Source, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", buildDSN(config))
	if err != nil {
		return nil, fmt.Errorf("rowsource/postgres: open: %w", err)
	}

	q := fmt.Sprintf(`select ctid, %s from "%s"`, strings.Join(config.Columns, ", "), config.Table)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("rowsource/postgres: query: %w", err)
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
			return query.Row{}, false, fmt.Errorf("rowsource/postgres: next: %w", err)
		}
		return query.Row{}, false, nil
	}

	var ctid string
	raw := make([]sql.RawBytes, s.numCols)
	dest := make([]any, s.numCols+1)
	dest[0] = &ctid
	for i := range raw {
		dest[i+1] = &raw[i]
	}
	if err := s.rows.Scan(dest...); err != nil {
		return query.Row{}, false, fmt.Errorf("rowsource/postgres: scan: %w", err)
	}

	tid, err := parseCTID(ctid)
	if err != nil {
		return query.Row{}, false, fmt.Errorf("rowsource/postgres: %w", err)
	}

	values := make([][]byte, s.numCols)
	for i, b := range raw {
		if b != nil {
			values[i] = append([]byte(nil), b...)
		}
	}

	return query.Row{TID: tid, Values: values}, true, nil
}

// Close releases the underlying rows and database handle.
func (s *Source) Close() error {
	s.rows.Close()
	return s.db.Close()
}

// parseCTID parses Postgres's "(block,offset)" ctid text representation.
func parseCTID(s string) (query.TID, error) {
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return query.TID{}, fmt.Errorf("malformed ctid %q", s)
	}
	block, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return query.TID{}, fmt.Errorf("malformed ctid block %q: %w", s, err)
	}
	offset, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return query.TID{}, fmt.Errorf("malformed ctid offset %q: %w", s, err)
	}
	return query.TID{Block: uint32(block), Offset: uint32(offset)}, nil
}

// buildDSN mirrors adapter/postgres's postgresBuildDSN, key=value pairs
// lib/pq expects.
func buildDSN(config rowsource.Config) string {
	var parts []string
	if config.Host != "" {
		parts = append(parts, "host="+config.Host)
	}
	if config.Port != 0 {
		parts = append(parts, fmt.Sprintf("port=%d", config.Port))
	}
	if config.User != "" {
		parts = append(parts, "user="+config.User)
	}
	if config.Password != "" {
		parts = append(parts, "password="+config.Password)
	}
	if config.DbName != "" {
		parts = append(parts, "dbname="+config.DbName)
	}
	parts = append(parts, "sslmode=disable")
	return strings.Join(parts, " ")
}
