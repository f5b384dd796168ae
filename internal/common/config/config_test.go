package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnv(t *testing.T) {
	t.Setenv("X_A", "va")
	in := []byte("a: ${X_A:da}\nb: ${X_B:db}")
	out := resolveEnv(in)
	assert.Contains(t, string(out), "a: va")
	assert.Contains(t, string(out), "b: db")
}

func TestLoadConfig_APIServer(t *testing.T) {
	tmp := t.TempDir()
	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	_ = os.Chdir(tmp)

	t.Setenv("INV_DB_NAME", "inventory")
	yaml := `
server:
  port: 8123
  shutdown_timeout: 3s
database:
  type: postgres
  host: localhost
  port: 5432
  dbname: ${INV_DB_NAME:other}
  sslmode: ${INV_SSL:disable}
operator:
  username: ops
  password: secret
validation:
  employee_max: 30
export:
  format: csv
`
	file := filepath.Join(tmp, "apiserver.yaml")
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0o644))

	cfg, path, err := LoadConfig[APIServerConfig]("apiserver.yaml")
	require.NoError(t, err)
	realFile, _ := filepath.EvalSymlinks(file)
	realPath, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, realFile, realPath)

	assert.Equal(t, 8123, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "inventory", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "ops", cfg.Operator.Username)
	assert.Equal(t, 30, cfg.Validation.EmployeeMax)
	// untouched sections get defaults
	assert.Equal(t, 100, cfg.Validation.RoomMin)
	assert.Equal(t, "csv", cfg.Export.Format)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Duration)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	tmp := t.TempDir()
	_, _, err := LoadConfig[APIServerConfig](filepath.Join(tmp, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server: [oops"), 0o644))
	_, _, err := LoadConfig[APIServerConfig](file)
	assert.Error(t, err)
}
