package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/gold2201/LocalNetworkProject/internal/common/config"
)

// NewMySQL opens a MySQL-backed store
func NewMySQL(cfg *config.DatabaseConfig, lg *zap.Logger) (Database, error) {
	gormDB, err := gorm.Open(mysql.Open(cfg.GetDSN()), gormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStore(gormDB, lg), nil
}
