package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gold2201/LocalNetworkProject/internal/common/config"
)

// store implements Database on top of a single *gorm.DB pool
type store struct {
	db     *gorm.DB
	logger *zap.Logger

	departments       *Repo[Department]
	computers         *Repo[Computer]
	users             *Repo[User]
	userComputers     *Repo[UserComputer]
	software          *Repo[Software]
	softwareComputers *Repo[SoftwareComputer]
	equipment         *Repo[Equipment]
	networks          *Repo[Network]
	networkComputers  *Repo[NetworkComputer]
	servers           *Repo[Server]
	serverNetworks    *Repo[ServerNetwork]
	hostComputers     *Repo[HostComputer]
}

func gormConfig(cfg *config.DatabaseConfig) *gorm.Config {
	level := gormlogger.Warn
	switch cfg.LogLevel {
	case "silent":
		level = gormlogger.Silent
	case "error":
		level = gormlogger.Error
	case "info":
		level = gormlogger.Info
	}
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

func newStore(db *gorm.DB, logger *zap.Logger) *store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &store{db: db, logger: logger}

	s.departments = newRepo[Department](db, "department").withOnDelete(func(tx *gorm.DB, id uint) error {
		for _, m := range []any{&Computer{}, &User{}, &HostComputer{}} {
			if err := tx.Model(m).Where("department_id = ?", id).Update("department_id", nil).Error; err != nil {
				return err
			}
		}
		return nil
	})
	s.computers = newRepo[Computer](db, "computer", "Department").withOnDelete(func(tx *gorm.DB, id uint) error {
		return deleteWhere(tx, "computer_id = ?", id, &UserComputer{}, &SoftwareComputer{}, &NetworkComputer{})
	})
	s.users = newRepo[User](db, "user", "Department").withOnDelete(func(tx *gorm.DB, id uint) error {
		return deleteWhere(tx, "user_id = ?", id, &UserComputer{})
	})
	s.userComputers = newRepo[UserComputer](db, "user computer", "User", "Computer")
	s.software = newRepo[Software](db, "software").withOnDelete(func(tx *gorm.DB, id uint) error {
		return deleteWhere(tx, "software_id = ?", id, &SoftwareComputer{})
	})
	s.softwareComputers = newRepo[SoftwareComputer](db, "software computer", "Software", "Computer")
	s.equipment = newRepo[Equipment](db, "equipment").withOnDelete(func(tx *gorm.DB, id uint) error {
		sub := tx.Session(&gorm.Session{NewDB: true}).Model(&Network{}).Select("id").Where("equipment_id = ?", id)
		if err := deleteWhere(tx, "network_id IN (?)", sub, &NetworkComputer{}, &ServerNetwork{}); err != nil {
			return err
		}
		return deleteWhere(tx, "equipment_id = ?", id, &Network{})
	})
	s.networks = newRepo[Network](db, "network", "Equipment").withOnDelete(func(tx *gorm.DB, id uint) error {
		return deleteWhere(tx, "network_id = ?", id, &NetworkComputer{}, &ServerNetwork{})
	})
	s.networkComputers = newRepo[NetworkComputer](db, "network computer", "Network", "Computer")
	s.servers = newRepo[Server](db, "server").withOnDelete(func(tx *gorm.DB, id uint) error {
		return deleteWhere(tx, "server_id = ?", id, &ServerNetwork{})
	})
	s.serverNetworks = newRepo[ServerNetwork](db, "server network", "Server", "Network")
	s.hostComputers = newRepo[HostComputer](db, "host computer", "Department")
	return s
}

func deleteWhere(tx *gorm.DB, cond string, arg any, models ...any) error {
	for _, m := range models {
		if err := tx.Where(cond, arg).Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection
func (s *store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates or updates every table
func (s *store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (s *store) Dialect() string {
	return s.db.Dialector.Name()
}

func (s *store) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return runInTx(ctx, s.db, fn)
}

func (s *store) Departments() *Repo[Department]             { return s.departments }
func (s *store) Computers() *Repo[Computer]                 { return s.computers }
func (s *store) Users() *Repo[User]                         { return s.users }
func (s *store) UserComputers() *Repo[UserComputer]         { return s.userComputers }
func (s *store) Software() *Repo[Software]                  { return s.software }
func (s *store) SoftwareComputers() *Repo[SoftwareComputer] { return s.softwareComputers }
func (s *store) Equipment() *Repo[Equipment]                { return s.equipment }
func (s *store) Networks() *Repo[Network]                   { return s.networks }
func (s *store) NetworkComputers() *Repo[NetworkComputer]   { return s.networkComputers }
func (s *store) Servers() *Repo[Server]                     { return s.servers }
func (s *store) ServerNetworks() *Repo[ServerNetwork]       { return s.serverNetworks }
func (s *store) HostComputers() *Repo[HostComputer]         { return s.hostComputers }

func (s *store) conn(ctx context.Context) *gorm.DB {
	return getDBFromContext(ctx, s.db)
}

func (s *store) taken(ctx context.Context, model any, excludeID uint, query string, args ...any) (bool, error) {
	q := s.conn(ctx).Model(model).Where(query, args...)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, translateError(err)
	}
	return n > 0, nil
}

func (s *store) SerialNumberTaken(ctx context.Context, serial int64, excludeID uint) (bool, error) {
	return s.taken(ctx, &Computer{}, excludeID, "serial_number = ?", serial)
}

func (s *store) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return s.taken(ctx, &User{}, excludeID, "LOWER(email) = LOWER(?)", email)
}

func (s *store) SoftwareTaken(ctx context.Context, name, version string, excludeID uint) (bool, error) {
	return s.taken(ctx, &Software{}, excludeID, "name = ? AND version = ?", name, version)
}

func (s *store) HostDepartmentTaken(ctx context.Context, departmentID uint, excludeID uint) (bool, error) {
	return s.taken(ctx, &HostComputer{}, excludeID, "department_id = ?", departmentID)
}
