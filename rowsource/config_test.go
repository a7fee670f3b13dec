package rowsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequiresTable(t *testing.T) {
	c := Config{Columns: []string{"name"}}
	assert.Error(t, c.Validate())
}

func TestValidateRequiresColumns(t *testing.T) {
	c := Config{Table: "orders"}
	assert.Error(t, c.Validate())
}

func TestValidateAcceptsMinimalConfig(t *testing.T) {
	c := Config{Table: "orders", Columns: []string{"name"}}
	assert.NoError(t, c.Validate())
}
