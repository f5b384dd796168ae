package cnst

const (
	ApiServerYaml = "apiserver.yaml"
)

// Database types accepted in the database.type setting
const (
	DBTypePostgres = "postgres"
	DBTypeMySQL    = "mysql"
	DBTypeSQLite   = "sqlite"
	// DBTypeSQLite3 selects the cgo sqlite driver instead of the pure Go one
	DBTypeSQLite3 = "sqlite3"
)

// Export formats
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
	ExportFormatZIP  = "zip"
)
