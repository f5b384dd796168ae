package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfig_GetDSN_Postgres(t *testing.T) {
	c := &DatabaseConfig{Type: "postgres", Host: "h", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	got := c.GetDSN()
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", got)
}

func TestDatabaseConfig_GetDSN_MySQL(t *testing.T) {
	c := &DatabaseConfig{Type: "mysql", Host: "h", Port: 3306, User: "u", Password: "p", DBName: "d"}
	got := c.GetDSN()
	assert.Equal(t, "u:p@tcp(h:3306)/d?charset=utf8mb4&parseTime=True&loc=Local", got)
}

func TestDatabaseConfig_GetDSN_SQLite(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "data", "app.sqlite")
	c := &DatabaseConfig{Type: "sqlite", DBName: dbPath}
	got := c.GetDSN()
	assert.Equal(t, dbPath, got)
	// Directory for sqlite DB should be created
	_, err := os.Stat(filepath.Dir(dbPath))
	assert.NoError(t, err)
}

func TestDatabaseConfig_GetDSN_Unknown(t *testing.T) {
	c := &DatabaseConfig{Type: "unknown"}
	assert.Equal(t, "", c.GetDSN())
}

func TestDatabaseConfig_GetDSN_SQLiteMemory(t *testing.T) {
	c := &DatabaseConfig{Type: "sqlite", DBName: ":memory:"}
	assert.Equal(t, ":memory:", c.GetDSN())
}

func TestAPIServerConfig_SetDefaults(t *testing.T) {
	var c APIServerConfig
	c.SetDefaults()

	assert.Equal(t, 8000, c.Server.Port)
	assert.Equal(t, "sqlite", c.Database.Type)
	assert.Equal(t, "./data/inventory.db", c.Database.DBName)
	assert.Equal(t, "xlsx", c.Export.Format)
	assert.Equal(t, 50, c.Export.MaxColumnWidth)
	assert.Equal(t, 100, c.Validation.RoomMin)
	assert.Equal(t, 599, c.Validation.RoomMax)
	assert.Equal(t, 1, c.Validation.EmployeeMin)
	assert.Equal(t, 20, c.Validation.EmployeeMax)
	assert.Equal(t, 10, c.Validation.LargeDepartmentThreshold)
	assert.Equal(t, 50, c.Validation.LargeDepartmentRoomMin)
	assert.Equal(t, []string{"company.com", "corp.com"}, c.Validation.AllowedEmailDomains)
	assert.Equal(t, []int64{1, 2}, c.Validation.ManagerPositions)
	assert.Equal(t, 1000, c.Reports.HighSpeedThreshold)
	assert.Equal(t, 5, c.Reports.DepartmentMinComputers)
	assert.Equal(t, "0.0.0.0", c.Provisioning.PlaceholderIP)
	assert.False(t, c.Provisioning.AttachDefaultNetwork)
}

func TestAPIServerConfig_SetDefaults_KeepsExplicitValues(t *testing.T) {
	c := APIServerConfig{
		Server:     ServerConfig{Port: 9000},
		Validation: ValidationConfig{RoomMin: 1, RoomMax: 10, AllowedEmailDomains: []string{"example.org"}},
		Export:     ExportConfig{Format: "csv"},
	}
	c.SetDefaults()

	assert.Equal(t, 9000, c.Server.Port)
	assert.Equal(t, 1, c.Validation.RoomMin)
	assert.Equal(t, 10, c.Validation.RoomMax)
	assert.Equal(t, []string{"example.org"}, c.Validation.AllowedEmailDomains)
	assert.Equal(t, "csv", c.Export.Format)
}
