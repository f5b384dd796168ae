package cnst

// Tracer names used across the service
const (
	TraceStore   = "inventory/store"
	TraceExport  = "inventory/export"
	TraceConsole = "inventory/console"
)

// Span names
const (
	SpanReportPrefix   = "report."
	SpanExportWrite    = "export.write"
	SpanConsoleExecute = "console.execute"
)

// Attribute keys
const (
	AttrReportName   = "report.name"
	AttrExportFormat = "export.format"
	AttrExportRows   = "export.rows"
	AttrExportSheets = "export.sheets"
	AttrSQLStatement = "db.statement.kind"
	AttrSQLRows      = "db.rows"
)
