package mssql

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CrystallineCore/biscuit/rowsource"
)

func TestBuildDSNIncludesHostPortAndDatabase(t *testing.T) {
	dsn := buildDSN(rowsource.Config{Host: "db.internal", Port: 1433, DbName: "orders"})

	u, err := url.Parse(dsn)
	assert.NoError(t, err)
	assert.Equal(t, "sqlserver", u.Scheme)
	assert.Equal(t, "db.internal:1433", u.Host)
	assert.Equal(t, "orders", u.Query().Get("database"))
}

func TestBuildDSNIncludesUserinfoWhenUserSet(t *testing.T) {
	dsn := buildDSN(rowsource.Config{Host: "db.internal", Port: 1433, User: "biscuit", Password: "secret"})

	u, err := url.Parse(dsn)
	assert.NoError(t, err)
	password, ok := u.User.Password()
	assert.True(t, ok)
	assert.Equal(t, "biscuit", u.User.Username())
	assert.Equal(t, "secret", password)
}

func TestBuildDSNOmitsUserinfoWhenUserEmpty(t *testing.T) {
	dsn := buildDSN(rowsource.Config{Host: "db.internal", Port: 1433})

	u, err := url.Parse(dsn)
	assert.NoError(t, err)
	assert.Nil(t, u.User)
}
