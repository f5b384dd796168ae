package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gold2201/LocalNetworkProject/pkg/trace"
)

type (
	APIServerConfig struct {
		Server       ServerConfig       `yaml:"server"`
		Database     DatabaseConfig     `yaml:"database"`
		Logger       LoggerConfig       `yaml:"logger"`
		JWT          JWTConfig          `yaml:"jwt"`
		Operator     OperatorConfig     `yaml:"operator"`
		I18n         I18nConfig         `yaml:"i18n"`
		Metrics      MetricsConfig      `yaml:"metrics"`
		Tracing      trace.Config       `yaml:"tracing"`
		Export       ExportConfig       `yaml:"export"`
		Validation   ValidationConfig   `yaml:"validation"`
		Reports      ReportsConfig      `yaml:"reports"`
		Provisioning ProvisioningConfig `yaml:"provisioning"`
	}

	ServerConfig struct {
		Port            int           `yaml:"port"`
		Mode            string        `yaml:"mode"` // debug, release, test
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		PID             string        `yaml:"pid"`
		CORS            CORSConfig    `yaml:"cors"`
	}

	CORSConfig struct {
		AllowOrigins     []string `yaml:"allow_origins"`
		AllowCredentials bool     `yaml:"allow_credentials"`
	}

	// I18nConfig represents the internationalization configuration
	I18nConfig struct {
		Path        string `yaml:"path"` // Path to i18n translation files
		DefaultLang string `yaml:"default_lang"`
	}

	DatabaseConfig struct {
		Type     string `yaml:"type"`     // mysql, postgres, sqlite, sqlite3
		Host     string `yaml:"host"`     // localhost
		Port     int    `yaml:"port"`     // 3306 (for mysql), 5432 (for postgres)
		User     string `yaml:"user"`     // root (for mysql), postgres (for postgres)
		Password string `yaml:"password"` // password
		DBName   string `yaml:"dbname"`   // database name, file path for sqlite
		SSLMode  string `yaml:"sslmode"`  // disable (for postgres)
		LogLevel string `yaml:"log_level"`
	}

	JWTConfig struct {
		SecretKey string        `yaml:"secret_key"`
		Duration  time.Duration `yaml:"duration"`
	}

	// OperatorConfig is the single principal allowed to use the database console
	OperatorConfig struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	}

	MetricsConfig struct {
		Enabled   bool      `yaml:"enabled"`
		Path      string    `yaml:"path"`
		Namespace string    `yaml:"namespace"`
		Buckets   []float64 `yaml:"buckets"`
	}

	ExportConfig struct {
		Format           string `yaml:"format"` // xlsx or csv
		FilenameTemplate string `yaml:"filename_template"`
		MaxColumnWidth   int    `yaml:"max_column_width"`
	}

	// ValidationConfig holds the bounds used by write validation
	ValidationConfig struct {
		RoomMin                  int      `yaml:"room_min"`
		RoomMax                  int      `yaml:"room_max"`
		EmployeeMin              int      `yaml:"employee_min"`
		EmployeeMax              int      `yaml:"employee_max"`
		LargeDepartmentThreshold int      `yaml:"large_department_threshold"`
		LargeDepartmentRoomMin   int      `yaml:"large_department_room_min"`
		AllowedEmailDomains      []string `yaml:"allowed_email_domains"`
		ManagerPositions         []int64  `yaml:"manager_positions"`
	}

	ReportsConfig struct {
		HighSpeedThreshold     int `yaml:"high_speed_threshold"`
		DepartmentMinComputers int `yaml:"department_min_computers"`
		VLANDistributionLimit  int `yaml:"vlan_distribution_limit"`
		RecentConnectionsLimit int `yaml:"recent_connections_limit"`
	}

	// ProvisioningConfig controls the optional default network attachment for new computers
	ProvisioningConfig struct {
		AttachDefaultNetwork bool   `yaml:"attach_default_network"`
		DefaultNetworkID     uint   `yaml:"default_network_id"`
		PlaceholderIP        string `yaml:"placeholder_ip"`
		PlaceholderMAC       string `yaml:"placeholder_mac"`
	}
)

// SetDefaults fills zero values with the built-in defaults
func (c *APIServerConfig) SetDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Database.Type == "" {
		c.Database.Type = "sqlite"
	}
	if c.Database.DBName == "" && (c.Database.Type == "sqlite" || c.Database.Type == "sqlite3") {
		c.Database.DBName = "./data/inventory.db"
	}
	if c.JWT.Duration <= 0 {
		c.JWT.Duration = 24 * time.Hour
	}
	if c.I18n.Path == "" {
		c.I18n.Path = "configs/i18n"
	}
	if c.I18n.DefaultLang == "" {
		c.I18n.DefaultLang = "en"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "inventory"
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "inventory-apiserver"
	}
	c.Export.setDefaults()
	c.Validation.setDefaults()
	c.Reports.setDefaults()
	c.Provisioning.setDefaults()
}

func (c *ExportConfig) setDefaults() {
	if c.Format == "" {
		c.Format = "xlsx"
	}
	if c.FilenameTemplate == "" {
		c.FilenameTemplate = `{{.Base}}_{{.Time | date "20060102_150405"}}`
	}
	if c.MaxColumnWidth <= 0 {
		c.MaxColumnWidth = 50
	}
}

func (c *ValidationConfig) setDefaults() {
	if c.RoomMin == 0 && c.RoomMax == 0 {
		c.RoomMin, c.RoomMax = 100, 599
	}
	if c.EmployeeMin == 0 {
		c.EmployeeMin = 1
	}
	if c.EmployeeMax == 0 {
		c.EmployeeMax = 20
	}
	if c.LargeDepartmentThreshold == 0 {
		c.LargeDepartmentThreshold = 10
	}
	if c.LargeDepartmentRoomMin == 0 {
		c.LargeDepartmentRoomMin = 50
	}
	if len(c.AllowedEmailDomains) == 0 {
		c.AllowedEmailDomains = []string{"company.com", "corp.com"}
	}
	if len(c.ManagerPositions) == 0 {
		c.ManagerPositions = []int64{1, 2}
	}
}

func (c *ReportsConfig) setDefaults() {
	if c.HighSpeedThreshold <= 0 {
		c.HighSpeedThreshold = 1000
	}
	if c.DepartmentMinComputers <= 0 {
		c.DepartmentMinComputers = 5
	}
	if c.VLANDistributionLimit <= 0 {
		c.VLANDistributionLimit = 10
	}
	if c.RecentConnectionsLimit <= 0 {
		c.RecentConnectionsLimit = 5
	}
}

func (c *ProvisioningConfig) setDefaults() {
	if c.PlaceholderIP == "" {
		c.PlaceholderIP = "0.0.0.0"
	}
	if c.PlaceholderMAC == "" {
		c.PlaceholderMAC = "00:00:00:00:00:00"
	}
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	switch c.Type {
	case "postgres":
		return c.getPostgresDSN()
	case "mysql":
		return c.getMySQLDSN()
	case "sqlite", "sqlite3":
		if c.DBName == ":memory:" {
			return c.DBName
		}
		// Ensure the directory for the SQLite database exists.
		if err := os.MkdirAll(filepath.Dir(c.DBName), 0755); err != nil {
			panic(fmt.Errorf("failed to create directory for sqlite database: %w", err))
		}
		return c.DBName // For SQLite, DBName is the file path
	default:
		return ""
	}
}

// getPostgresDSN returns PostgreSQL connection string
func (c *DatabaseConfig) getPostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// getMySQLDSN returns MySQL connection string
func (c *DatabaseConfig) getMySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}
