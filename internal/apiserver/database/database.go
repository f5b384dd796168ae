package database

import (
	"context"

	"github.com/gold2201/LocalNetworkProject/internal/common/config"
)

// Database defines the inventory store. Every dialect shares one gorm
// implementation; constructors differ only in the dialector they open.
type Database interface {
	// Close closes the database connection.
	Close() error

	// Migrate creates or updates every table.
	Migrate(ctx context.Context) error

	// Dialect returns the gorm dialector name (postgres, mysql, sqlite).
	Dialect() string

	// Transaction runs fn with a transaction carried in its context.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error

	Departments() *Repo[Department]
	Computers() *Repo[Computer]
	Users() *Repo[User]
	UserComputers() *Repo[UserComputer]
	Software() *Repo[Software]
	SoftwareComputers() *Repo[SoftwareComputer]
	Equipment() *Repo[Equipment]
	Networks() *Repo[Network]
	NetworkComputers() *Repo[NetworkComputer]
	Servers() *Repo[Server]
	ServerNetworks() *Repo[ServerNetwork]
	HostComputers() *Repo[HostComputer]

	Reports
	Derived
	Console
	Labels

	// AttachDefaultNetwork connects a computer to the configured default
	// network with placeholder addresses.
	AttachDefaultNetwork(ctx context.Context, computerID uint, cfg config.ProvisioningConfig) (*NetworkComputer, error)

	// Uniqueness pre-checks. excludeID skips the row being updated.
	SerialNumberTaken(ctx context.Context, serial int64, excludeID uint) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	SoftwareTaken(ctx context.Context, name, version string, excludeID uint) (bool, error)
	HostDepartmentTaken(ctx context.Context, departmentID uint, excludeID uint) (bool, error)
}
