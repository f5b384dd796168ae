package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gold2201/LocalNetworkProject/internal/apiserver/database"
	"github.com/gold2201/LocalNetworkProject/internal/common/dto"
	"github.com/gold2201/LocalNetworkProject/internal/common/errorx"
	"github.com/gold2201/LocalNetworkProject/internal/i18n"
	"github.com/gold2201/LocalNetworkProject/pkg/export"
)

const (
	AnalyticsDepartmentStats           = "department_stats"
	AnalyticsNetworkUsage              = "network_usage"
	AnalyticsSoftwareDistribution      = "software_distribution"
	AnalyticsUserComputerRelationships = "user_computer_relationships"

	AdvancedHighSpeedNetworks = "high_speed_networks"
	AdvancedSoftwareByVendor  = "software_by_vendor"

	comprehensiveExportBase = "comprehensive_analytics"
)

// analyticsQuery is one exportable analytics result
type analyticsQuery struct {
	rows  func(ctx context.Context) (any, error)
	table func(ctx context.Context) (export.Table, error)
}

func tableOf[T any](sheet string, load func(ctx context.Context) ([]T, error)) func(ctx context.Context) (export.Table, error) {
	return func(ctx context.Context) (export.Table, error) {
		rows, err := load(ctx)
		if err != nil {
			return export.Table{}, err
		}
		return export.FromStructs(sheet, rows), nil
	}
}

func rowsOf[T any](load func(ctx context.Context) ([]T, error)) func(ctx context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		rows, err := load(ctx)
		return nonNil(rows), err
	}
}

func newAnalyticsQuery[T any](sheet string, load func(ctx context.Context) ([]T, error)) analyticsQuery {
	return analyticsQuery{rows: rowsOf(load), table: tableOf(sheet, load)}
}

func (h *Handler) analytics() map[string]analyticsQuery {
	return map[string]analyticsQuery{
		AnalyticsDepartmentStats: newAnalyticsQuery("Department Stats", func(ctx context.Context) ([]database.DepartmentStat, error) {
			return h.db.DepartmentStats(ctx, h.cfg.Reports.DepartmentMinComputers)
		}),
		AnalyticsNetworkUsage:              newAnalyticsQuery("Network Usage", h.db.NetworkUsage),
		AnalyticsSoftwareDistribution:      newAnalyticsQuery("Software Distribution", h.db.SoftwareDistribution),
		AnalyticsUserComputerRelationships: newAnalyticsQuery("User Computer Relationships", h.db.UserComputerRelationships),
	}
}

var comprehensiveOrder = []string{
	AnalyticsDepartmentStats,
	AnalyticsNetworkUsage,
	AnalyticsSoftwareDistribution,
	AnalyticsUserComputerRelationships,
}

// Analytics serves GET /api/analytics/<name>
func (h *Handler) Analytics(name string) gin.HandlerFunc {
	q := h.analytics()[name]
	return func(c *gin.Context) {
		out, err := q.rows(c.Request.Context())
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// ExportAnalytics serves GET /api/analytics/export_<name>. An empty name
// reads the query parameter.
func (h *Handler) ExportAnalytics(name string) gin.HandlerFunc {
	queries := h.analytics()
	return func(c *gin.Context) {
		n := name
		if n == "" {
			n = c.DefaultQuery("query", AnalyticsDepartmentStats)
		}
		q, ok := queries[n]
		if !ok {
			h.fail(c, errorx.FieldValidationError("query", i18n.MsgFieldUnknownChoice, map[string]any{"Value": n}))
			return
		}
		h.exportAnalytics(c, n, n, q)
	}
}

// ComprehensiveExport serves GET /api/analytics/comprehensive_export with
// every analytics query on its own sheet
func (h *Handler) ComprehensiveExport(c *gin.Context) {
	queries := h.analytics()
	ordered := make([]analyticsQuery, len(comprehensiveOrder))
	for i, name := range comprehensiveOrder {
		ordered[i] = queries[name]
	}
	h.exportAnalytics(c, "comprehensive", comprehensiveExportBase, ordered...)
}

func (h *Handler) exportAnalytics(c *gin.Context, kind, base string, queries ...analyticsQuery) {
	ctx := c.Request.Context()
	format, err := exportFormat(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	sections := make(export.Sections, 0, len(queries))
	for _, q := range queries {
		t, err := q.table(ctx)
		if err != nil {
			h.fail(c, err)
			return
		}
		sections = append(sections, t)
	}
	f, err := h.exporter.Write(ctx, export.Request{
		Kind:     kind,
		Base:     base,
		Sections: sections,
		Format:   format,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	sendFile(c, f)
}

// AdvancedQueries serves GET /api/analytics/advanced_queries?type=
func (h *Handler) AdvancedQueries(c *gin.Context) {
	ctx := c.Request.Context()
	typ := c.Query("type")

	var (
		results any
		count   int
	)
	switch typ {
	case AdvancedHighSpeedNetworks:
		rows, err := h.db.HighSpeedConnections(ctx, h.cfg.Reports.HighSpeedThreshold)
		if err != nil {
			h.fail(c, err)
			return
		}
		results, count = nonNil(rows), len(rows)
	case AdvancedSoftwareByVendor:
		rows, err := h.db.SoftwareByVendor(ctx, c.Query("vendor"))
		if err != nil {
			h.fail(c, err)
			return
		}
		results, count = nonNil(rows), len(rows)
	default:
		h.fail(c, errorx.FieldValidationError("type", i18n.MsgFieldUnknownChoice, map[string]any{"Value": typ}))
		return
	}
	c.JSON(http.StatusOK, dto.AdvancedQueryResponse{Type: typ, Count: count, Results: results})
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
