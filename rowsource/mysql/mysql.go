// Package mysql adapts a MySQL table into query.RowSource. MySQL exposes
// no stable physical row identifier comparable to Postgres's ctid or
// SQLite's rowid, so Source synthesizes a tid from the row's position in
// the scan order instead — a tid is treated as an opaque sort key, not a
// storage address, so this is a legal choice as long as it's stable for
// the duration of one Build pass.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	driver "github.com/go-sql-driver/mysql"

	"github.com/CrystallineCore/biscuit/query"
	"github.com/CrystallineCore/biscuit/rowsource"
)

// Source streams a MySQL table's rows in the order the server returns them
// (the query has no ORDER BY), stamping each with a synthetic sequential
// tid.
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

	db, err := sql.Open("mysql", buildDSN(config))
	if err != nil {
		return nil, fmt.Errorf("rowsource/mysql: open: %w", err)
	}

	q := fmt.Sprintf("select %s from `%s`", strings.Join(config.Columns, ", "), config.Table)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("rowsource/mysql: query: %w", err)
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
			return query.Row{}, false, fmt.Errorf("rowsource/mysql: next: %w", err)
		}
		return query.Row{}, false, nil
	}

	values, err := rowsource.ScanValues(s.rows, s.numCols)
	if err != nil {
		return query.Row{}, false, fmt.Errorf("rowsource/mysql: scan: %w", err)
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

// buildDSN mirrors adapter/mysql's mysqlBuildDSN, built on the same
// driver.Config helper rather than hand-formatting a DSN string.
func buildDSN(config rowsource.Config) string {
	c := driver.NewConfig()
	c.User = config.User
	c.Passwd = config.Password
	c.DBName = config.DbName
	c.TLSConfig = "preferred"
	if config.Socket == "" {
		c.Net = "tcp"
		host := config.Host
		if host == "" {
			host = "127.0.0.1"
		}
		port := config.Port
		if port == 0 {
			port = 3306
		}
		c.Addr = fmt.Sprintf("%s:%d", host, port)
	} else {
		c.Net = "unix"
		c.Addr = config.Socket
	}
	return c.FormatDSN()
}
