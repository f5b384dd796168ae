package database

import (
	"fmt"

	glebarez "github.com/glebarez/sqlite"
	"go.uber.org/zap"
	cgosqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gold2201/LocalNetworkProject/internal/common/cnst"
	"github.com/gold2201/LocalNetworkProject/internal/common/config"
)

// NewSQLite opens a SQLite-backed store. Type sqlite uses the pure Go
// driver, sqlite3 the cgo one.
func NewSQLite(cfg *config.DatabaseConfig, lg *zap.Logger) (Database, error) {
	var dialector gorm.Dialector
	if cfg.Type == cnst.DBTypeSQLite3 {
		dialector = cgosqlite.Open(cfg.GetDSN())
	} else {
		dialector = glebarez.Open(cfg.GetDSN())
	}

	gormDB, err := gorm.Open(dialector, gormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	// one connection keeps :memory: databases and the pragma below alive
	sqlDB.SetMaxOpenConns(1)

	if err := gormDB.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return newStore(gormDB, lg), nil
}
