package cnst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "apiserver.yaml", ApiServerYaml)
}

func TestDatabaseTypeConstants(t *testing.T) {
	assert.Equal(t, "postgres", DBTypePostgres)
	assert.Equal(t, "mysql", DBTypeMySQL)
	assert.Equal(t, "sqlite", DBTypeSQLite)
	assert.Equal(t, "sqlite3", DBTypeSQLite3)
}
