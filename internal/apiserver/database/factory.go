package database

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gold2201/LocalNetworkProject/internal/common/cnst"
	"github.com/gold2201/LocalNetworkProject/internal/common/config"
)

// NewDatabase creates a new database based on configuration
func NewDatabase(cfg *config.DatabaseConfig, lg *zap.Logger) (Database, error) {
	switch cfg.Type {
	case cnst.DBTypePostgres:
		return NewPostgres(cfg, lg)
	case cnst.DBTypeSQLite, cnst.DBTypeSQLite3:
		return NewSQLite(cfg, lg)
	case cnst.DBTypeMySQL:
		return NewMySQL(cfg, lg)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}
