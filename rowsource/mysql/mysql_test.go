package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CrystallineCore/biscuit/rowsource"
)

func TestBuildDSNDefaultsToTCPLoopback(t *testing.T) {
	dsn := buildDSN(rowsource.Config{DbName: "orders", User: "biscuit"})
	assert.Contains(t, dsn, "tcp(127.0.0.1:3306)")
	assert.Contains(t, dsn, "orders")
}

func TestBuildDSNUsesConfiguredHostAndPort(t *testing.T) {
	dsn := buildDSN(rowsource.Config{DbName: "orders", Host: "db.internal", Port: 3307})
	assert.Contains(t, dsn, "tcp(db.internal:3307)")
}

func TestBuildDSNUsesSocketWhenSet(t *testing.T) {
	dsn := buildDSN(rowsource.Config{DbName: "orders", Socket: "/tmp/mysql.sock"})
	assert.Contains(t, dsn, "unix(/tmp/mysql.sock)")
}
