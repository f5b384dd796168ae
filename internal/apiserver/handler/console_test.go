package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/auth/login", map[string]any{"username": testOperator, "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "E2002", gjson.Get(w.Body.String(), "error.code").String())
	assert.Equal(t, "Invalid username or password", gjson.Get(w.Body.String(), "error.message").String())

	w = ts.do(http.MethodPost, "/api/auth/login", map[string]any{"username": testOperator, "password": testPassword})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := gjson.Get(w.Body.String(), "token").String()
	require.NotEmpty(t, token)
	assert.Equal(t, testOperator, gjson.Get(w.Body.String(), "username").String())

	w = ts.do(http.MethodGet, "/api/database/get_tables", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestConsoleRequiresToken(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/database/execute_sql", map[string]any{"query": "SELECT 1"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "E2001", gjson.Get(w.Body.String(), "error.code").String())

	w = ts.do(http.MethodGet, "/api/database/get_tables", nil, "Authorization", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExecuteSQL(t *testing.T) {
	ts := newTestServer(t)
	ts.seed()
	auth := ts.operatorToken()

	tests := []struct {
		name   string
		body   map[string]any
		status int
		check  func(t *testing.T, res gjson.Result)
	}{
		{
			name:   "select",
			body:   map[string]any{"query": "SELECT model, serial_number FROM computers"},
			status: http.StatusOK,
			check: func(t *testing.T, res gjson.Result) {
				assert.Equal(t, "query", res.Get("type").String())
				assert.Equal(t, `["model","serial_number"]`, res.Get("columns").Raw)
				assert.Equal(t, int64(1), res.Get("row_count").Int())
				assert.Equal(t, "ThinkPad", res.Get("results.0.model").String())
			},
		},
		{
			name:   "destructive without confirmation",
			body:   map[string]any{"query": "DROP TABLE servers"},
			status: http.StatusOK,
			check: func(t *testing.T, res gjson.Result) {
				assert.Equal(t, "warning", res.Get("status").String())
				assert.True(t, res.Get("requires_confirmation").Bool())
				assert.Contains(t, res.Get("message").String(), "DROP")
			},
		},
		{
			name:   "confirmed delete",
			body:   map[string]any{"query": "DELETE FROM user_computers", "confirmed": true},
			status: http.StatusOK,
			check: func(t *testing.T, res gjson.Result) {
				assert.Equal(t, "command", res.Get("type").String())
				assert.Equal(t, int64(1), res.Get("affected_rows").Int())
				assert.Equal(t, "Command executed successfully. Rows affected: 1", res.Get("message").String())
			},
		},
		{
			name:   "update needs no confirmation",
			body:   map[string]any{"query": "UPDATE computers SET model = 'T14'"},
			status: http.StatusOK,
			check: func(t *testing.T, res gjson.Result) {
				assert.Equal(t, int64(1), res.Get("affected_rows").Int())
			},
		},
		{
			name:   "empty query",
			body:   map[string]any{"query": "   "},
			status: http.StatusBadRequest,
			check: func(t *testing.T, res gjson.Result) {
				assert.Equal(t, "Query must not be empty", res.Get("error.details.fields.query").String())
			},
		},
		{
			name:   "bad sql",
			body:   map[string]any{"query": "SELECT * FROM printers"},
			status: http.StatusInternalServerError,
			check: func(t *testing.T, res gjson.Result) {
				assert.Equal(t, "E5002", res.Get("error.code").String())
				assert.Contains(t, res.Get("error.message").String(), "printers")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(http.MethodPost, "/api/database/execute_sql", tt.body, "Authorization", auth)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			tt.check(t, gjson.Parse(w.Body.String()))
		})
	}

	// the unconfirmed DROP must not have run
	w := ts.do(http.MethodGet, "/api/servers", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func (s *testServer) countRows(table string) string {
	s.t.Helper()
	rs, err := s.db.Query(context.Background(), "SELECT COUNT(*) FROM "+table)
	require.NoError(s.t, err)
	return rs.Rows[0][0].(string)
}

func TestConsoleConfirmationGate(t *testing.T) {
	ts := newTestServer(t)
	ts.seed()
	auth := ts.operatorToken()

	for _, query := range []string{
		"-- cleanup\nDROP TABLE server_networks",
		"/* tidy */ DROP TABLE server_networks",
		"WITH x AS (SELECT 1) DELETE FROM software_computers",
		"SELECT 1; DELETE FROM software_computers",
	} {
		w := ts.do(http.MethodPost, "/api/database/execute_sql", map[string]any{"query": query}, "Authorization", auth)
		require.Equal(t, http.StatusOK, w.Code, query)
		assert.Equal(t, "warning", gjson.Get(w.Body.String(), "status").String(), query)
		assert.True(t, gjson.Get(w.Body.String(), "requires_confirmation").Bool(), query)
	}
	assert.Equal(t, "0", ts.countRows("server_networks"))
	assert.Equal(t, "1", ts.countRows("software_computers"))

	w := ts.do(http.MethodPost, "/api/database/execute_sql", map[string]any{
		"query": "WITH x AS (SELECT 1) DELETE FROM software_computers", "confirmed": true,
	}, "Authorization", auth)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "command", gjson.Get(w.Body.String(), "type").String())
	assert.Equal(t, int64(1), gjson.Get(w.Body.String(), "affected_rows").Int())
	assert.Equal(t, "0", ts.countRows("software_computers"))
}

func TestExportSQLResultsRefusesWrites(t *testing.T) {
	ts := newTestServer(t)
	ts.seed()
	auth := ts.operatorToken()

	tests := []struct {
		query string
		field string
	}{
		{"DELETE FROM software_computers", "Query returned no result set"},
		{"-- x\nDELETE FROM software_computers", "Query returned no result set"},
		{"WITH x AS (SELECT 1) DELETE FROM software_computers", "Query returned no result set"},
		{"SELECT 1; DELETE FROM software_computers", "destructive operation (DELETE)"},
	}
	for _, tt := range tests {
		w := ts.do(http.MethodPost, "/api/database/export_sql_results", map[string]any{"query": tt.query}, "Authorization", auth)
		require.Equal(t, http.StatusBadRequest, w.Code, tt.query)
		assert.Contains(t, gjson.Get(w.Body.String(), "error.details.fields.query").String(), tt.field, tt.query)
	}
	assert.Equal(t, "1", ts.countRows("software_computers"))
}

func TestTableIntrospection(t *testing.T) {
	ts := newTestServer(t)
	auth := ts.operatorToken()

	w := ts.do(http.MethodGet, "/api/database/get_tables", nil, "Authorization", auth)
	require.Equal(t, http.StatusOK, w.Code)
	var names []string
	for _, tbl := range gjson.Get(w.Body.String(), "tables").Array() {
		names = append(names, tbl.Get("name").String())
	}
	assert.Contains(t, names, "computers")
	assert.Contains(t, names, "host_computers")

	w = ts.do(http.MethodGet, "/api/database/get_table_info?table=computers", nil, "Authorization", auth)
	require.Equal(t, http.StatusOK, w.Code)
	var cols []string
	for _, c := range gjson.Get(w.Body.String(), "columns").Array() {
		cols = append(cols, c.Get("name").String())
	}
	assert.Contains(t, cols, "serial_number")

	w = ts.do(http.MethodGet, "/api/database/get_table_info", nil, "Authorization", auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodGet, "/api/database/get_table_info?table=printers", nil, "Authorization", auth)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportSQLResults(t *testing.T) {
	ts := newTestServer(t)
	ts.seed()
	auth := ts.operatorToken()

	w := ts.do(http.MethodPost, "/api/database/export_sql_results",
		map[string]any{"query": "SELECT full_name, email FROM users"}, "Authorization", auth)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, `attachment; filename="sql_results.xlsx"`, w.Header().Get("Content-Disposition"))

	wb := openWorkbook(t, w.Body.Bytes())
	assert.Equal(t, []string{"Query Results"}, wb.GetSheetList())
	rows, err := wb.GetRows("Query Results")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"full_name", "email"}, rows[0])
	assert.Equal(t, []string{"Ann Smith", "ann@company.com"}, rows[1])

	w = ts.do(http.MethodPost, "/api/database/export_sql_results",
		map[string]any{"query": "SELECT * FROM printers"}, "Authorization", auth)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
