package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gold2201/LocalNetworkProject/internal/common/config"
)

// NewPostgres opens a PostgreSQL-backed store
func NewPostgres(cfg *config.DatabaseConfig, lg *zap.Logger) (Database, error) {
	gormDB, err := gorm.Open(postgres.Open(cfg.GetDSN()), gormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStore(gormDB, lg), nil
}
