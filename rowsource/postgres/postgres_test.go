package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CrystallineCore/biscuit/query"
	"github.com/CrystallineCore/biscuit/rowsource"
)

func TestParseCTID(t *testing.T) {
	tid, err := parseCTID("(12,3)")
	assert.NoError(t, err)
	assert.Equal(t, query.TID{Block: 12, Offset: 3}, tid)
}

func TestParseCTIDMalformed(t *testing.T) {
	_, err := parseCTID("not-a-ctid")
	assert.Error(t, err)
}

func TestParseCTIDNonNumeric(t *testing.T) {
	_, err := parseCTID("(a,b)")
	assert.Error(t, err)
}

func TestBuildDSNIncludesSSLModeDisable(t *testing.T) {
	dsn := buildDSN(rowsource.Config{Host: "localhost", Port: 5432, User: "biscuit", DbName: "orders"})
	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "port=5432")
	assert.Contains(t, dsn, "user=biscuit")
	assert.Contains(t, dsn, "dbname=orders")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestBuildDSNOmitsEmptyFields(t *testing.T) {
	dsn := buildDSN(rowsource.Config{DbName: "orders"})
	assert.NotContains(t, dsn, "host=")
	assert.NotContains(t, dsn, "user=")
	assert.Contains(t, dsn, "dbname=orders")
}
