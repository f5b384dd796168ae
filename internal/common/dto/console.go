package dto

import "github.com/gold2201/LocalNetworkProject/internal/apiserver/database"

// Console response statuses
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
)

// ExecuteSQLRequest is the body of execute_sql and export_sql_results
type ExecuteSQLRequest struct {
	Query     string `json:"query"`
	Confirmed bool   `json:"confirmed"`
}

type QueryResult struct {
	Status   string           `json:"status"`
	Type     string           `json:"type"`
	Columns  []string         `json:"columns"`
	Results  []map[string]any `json:"results"`
	RowCount int              `json:"row_count"`
	Query    string           `json:"query"`
}

type CommandResult struct {
	Status       string `json:"status"`
	Type         string `json:"type"`
	Message      string `json:"message"`
	AffectedRows int64  `json:"affected_rows"`
	Query        string `json:"query"`
}

// ConfirmationRequired is returned instead of running a destructive statement
type ConfirmationRequired struct {
	Status               string `json:"status"`
	Message              string `json:"message"`
	RequiresConfirmation bool   `json:"requires_confirmation"`
	Query                string `json:"query"`
}

type TablesResponse struct {
	Status string              `json:"status"`
	Tables []database.TableRef `json:"tables"`
}

type TableInfoResponse struct {
	Status  string                `json:"status"`
	Table   string                `json:"table"`
	Columns []database.ColumnInfo `json:"columns"`
}
