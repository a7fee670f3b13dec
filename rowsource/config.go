// Package rowsource adapts SQL databases into query.RowSource, the pull
// iterator bicore.Build replays. Each driver subpackage follows the same
// small shape: a Config, a sql.Open call with that driver's DSN builder,
// and nothing else — no DDL introspection, since Biscuit indexes row data,
// not schema.
package rowsource

import "fmt"

// Config names the table a Source reads and the columns to index from it.
// This mirrors adapter.Config's shape (DbName/User/Password/Host/Port/
// Socket) trimmed to what a row-streaming source needs rather than a full
// DDL-dumping adapter.
type Config struct {
	DbName   string
	User     string
	Password string
	Host     string
	Port     int
	Socket   string

	Table   string
	Columns []string
}

// Validate reports a descriptive error for a Config too incomplete to open
// a Source from.
func (c Config) Validate() error {
	if c.Table == "" {
		return fmt.Errorf("rowsource: config: table name is required")
	}
	if len(c.Columns) == 0 {
		return fmt.Errorf("rowsource: config: at least one column is required")
	}
	return nil
}
