package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gold2201/LocalNetworkProject/internal/apiserver/database"
	"github.com/gold2201/LocalNetworkProject/internal/apiserver/middleware"
	"github.com/gold2201/LocalNetworkProject/internal/common/cnst"
	"github.com/gold2201/LocalNetworkProject/internal/common/dto"
	"github.com/gold2201/LocalNetworkProject/internal/common/errorx"
	"github.com/gold2201/LocalNetworkProject/internal/i18n"
	"github.com/gold2201/LocalNetworkProject/pkg/export"
)

const (
	sqlResultsSheet = "Query Results"
	sqlResultsFile  = "sql_results.xlsx"
)

func (h *Handler) consoleRequest(c *gin.Context) (*dto.ExecuteSQLRequest, error) {
	var req dto.ExecuteSQLRequest
	if err := bindBody(c, &req); err != nil {
		return nil, err
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return nil, errorx.FieldValidationError("query", i18n.MsgConsoleEmptyQuery, nil)
	}
	return &req, nil
}

func (h *Handler) audit(c *gin.Context, action, query string) {
	operator := ""
	if claims, ok := middleware.GetClaims(c); ok {
		operator = claims.Username
	}
	h.logger.Info("console statement",
		zap.String("action", action),
		zap.String("operator", operator),
		zap.String("query", query))
}

// ExecuteSQL handles POST /api/database/execute_sql
func (h *Handler) ExecuteSQL(c *gin.Context) {
	start := time.Now()
	req, err := h.consoleRequest(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	kind := database.ClassifyStatement(req.Query)
	status := dto.StatusSuccess
	defer func() { h.metrics.ConsoleDone(string(kind), status, start) }()

	if kw := database.DangerousKeyword(req.Query); kw != "" && !req.Confirmed {
		status = dto.StatusWarning
		c.JSON(http.StatusOK, dto.ConfirmationRequired{
			Status:               dto.StatusWarning,
			Message:              h.translate(c, i18n.MsgConsoleConfirmRequired, map[string]any{"Keyword": kw}),
			RequiresConfirmation: true,
			Query:                req.Query,
		})
		return
	}
	h.audit(c, "execute", req.Query)

	ctx := c.Request.Context()
	if kind == database.StatementCommand {
		n, err := h.db.Exec(ctx, req.Query)
		if err != nil {
			status = "error"
			h.fail(c, errorx.QueryExecutionError(err))
			return
		}
		c.JSON(http.StatusOK, h.commandResult(c, req.Query, n))
		return
	}

	rs, err := h.db.Query(ctx, req.Query)
	if err != nil {
		status = "error"
		h.fail(c, errorx.QueryExecutionError(err))
		return
	}
	if len(rs.Columns) == 0 {
		c.JSON(http.StatusOK, h.commandResult(c, req.Query, 0))
		return
	}
	c.JSON(http.StatusOK, dto.QueryResult{
		Status:   dto.StatusSuccess,
		Type:     string(database.StatementQuery),
		Columns:  rs.Columns,
		Results:  rs.Maps(),
		RowCount: len(rs.Rows),
		Query:    req.Query,
	})
}

func (h *Handler) commandResult(c *gin.Context, query string, rows int64) dto.CommandResult {
	return dto.CommandResult{
		Status:       dto.StatusSuccess,
		Type:         string(database.StatementCommand),
		Message:      h.translate(c, i18n.MsgConsoleCommandDone, map[string]any{"Rows": rows}),
		AffectedRows: rows,
		Query:        query,
	}
}

// GetTables handles GET /api/database/get_tables
func (h *Handler) GetTables(c *gin.Context) {
	tables, err := h.db.Tables(c.Request.Context())
	if err != nil {
		h.fail(c, errorx.QueryExecutionError(err))
		return
	}
	c.JSON(http.StatusOK, dto.TablesResponse{Status: dto.StatusSuccess, Tables: nonNil(tables)})
}

// GetTableInfo handles GET /api/database/get_table_info?table=
func (h *Handler) GetTableInfo(c *gin.Context) {
	table := strings.TrimSpace(c.Query("table"))
	if table == "" {
		h.fail(c, errorx.FieldValidationError("table", i18n.MsgConsoleTableRequired, nil))
		return
	}
	cols, err := h.db.TableColumns(c.Request.Context(), table)
	if errors.Is(err, database.ErrNotFound) {
		h.fail(c, errorx.NotFoundError("table", table).
			WithMessage(i18n.MsgConsoleTableNotFound, map[string]any{"Table": table}).
			WithCause(err))
		return
	}
	if err != nil {
		h.fail(c, errorx.QueryExecutionError(err))
		return
	}
	c.JSON(http.StatusOK, dto.TableInfoResponse{Status: dto.StatusSuccess, Table: table, Columns: nonNil(cols)})
}

// ExportSQLResults handles POST /api/database/export_sql_results
func (h *Handler) ExportSQLResults(c *gin.Context) {
	start := time.Now()
	req, err := h.consoleRequest(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	// Only plain queries are exported; anything else is refused before it runs.
	if database.ClassifyStatement(req.Query) != database.StatementQuery {
		h.metrics.ConsoleDone("export", "rejected", start)
		h.fail(c, errorx.FieldValidationError("query", i18n.MsgConsoleNoResultSet, nil))
		return
	}
	if kw := database.DangerousKeyword(req.Query); kw != "" && !req.Confirmed {
		h.metrics.ConsoleDone("export", dto.StatusWarning, start)
		h.fail(c, errorx.FieldValidationError("query", i18n.MsgConsoleConfirmRequired, map[string]any{"Keyword": kw}))
		return
	}

	ctx := c.Request.Context()
	h.audit(c, "export", req.Query)

	rs, err := h.db.Query(ctx, req.Query)
	if err != nil {
		h.metrics.ConsoleDone("export", "error", start)
		h.fail(c, errorx.QueryExecutionError(err))
		return
	}
	if len(rs.Columns) == 0 {
		h.fail(c, errorx.FieldValidationError("query", i18n.MsgConsoleNoResultSet, nil))
		return
	}

	f, err := h.exporter.Write(ctx, export.Request{
		Kind:      "sql_results",
		FixedName: sqlResultsFile,
		Format:    cnst.ExportFormatXLSX,
		Sections:  export.Sections{{Name: sqlResultsSheet, Columns: rs.Columns, Rows: rs.Rows}},
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.ConsoleDone("export", dto.StatusSuccess, start)
	sendFile(c, f)
}
