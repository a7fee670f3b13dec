package rowsource

import "database/sql"

// ScanValues scans n columns of rows into a fresh [][]byte, copying out of
// the driver-owned sql.RawBytes buffers before the next Next() call
// invalidates them. A SQL NULL becomes a nil entry, the NULL convention
// query.Row documents.
func ScanValues(rows *sql.Rows, n int) ([][]byte, error) {
	raw := make([]sql.RawBytes, n)
	dest := make([]any, n)
	for i := range raw {
		dest[i] = &raw[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}

	values := make([][]byte, n)
	for i, b := range raw {
		if b != nil {
			values[i] = append([]byte(nil), b...)
		}
	}
	return values, nil
}
