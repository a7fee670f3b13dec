// Package mssql adapts a SQL Server table into query.RowSource. Like
// MySQL, SQL Server has no row identifier this package wants to depend on
// (%%physloc%% is edition-gated and undocumented for general use), so
// Source stamps a synthetic sequential tid, same approach as rowsource/mysql.
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/denisenkom/go-mssqldb"

	"github.com/CrystallineCore/biscuit/query"
	"github.com/CrystallineCore/biscuit/rowsource"
)

// Source streams a SQL Server table's rows, stamping each with a synthetic
// sequential tid.
type Source struct {
	db      *sql.DB
	rows    *sql.Rows
	numCols int
	seq     uint64
}

// Open connects via config's DSN and begins streaming config.Table's
// configured columns.
func Open(ctx context.Context, config rowsource.Config) (*Source, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlserver", buildDSN(config))
	if err != nil {
		return nil, fmt.Errorf("rowsource/mssql: open: %w", err)
	}

	q := fmt.Sprintf("select %s from [%s]", strings.Join(config.Columns, ", "), config.Table)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("rowsource/mssql: query: %w", err)
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
			return query.Row{}, false, fmt.Errorf("rowsource/mssql: next: %w", err)
		}
		return query.Row{}, false, nil
	}

	values, err := rowsource.ScanValues(s.rows, s.numCols)
	if err != nil {
		return query.Row{}, false, fmt.Errorf("rowsource/mssql: scan: %w", err)
	}

	tid := query.TID{Block: uint32(s.seq >> 32), Offset: uint32(s.seq)}
	s.seq++
	return query.Row{TID: tid, Values: values}, true, nil
}

// Close releases the underlying rows and database handle.
func (s *Source) Close() error {
	s.rows.Close()
	return s.db.Close()
}

// buildDSN mirrors adapter/mssql's DSN construction via net/url.
func buildDSN(config rowsource.Config) string {
	u := &url.URL{
		Scheme: "sqlserver",
		Host:   fmt.Sprintf("%s:%d", config.Host, config.Port),
	}
	if config.User != "" {
		u.User = url.UserPassword(config.User, config.Password)
	}
	q := u.Query()
	if config.DbName != "" {
		q.Set("database", config.DbName)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
