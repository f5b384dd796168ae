package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/gold2201/LocalNetworkProject/internal/apiserver/middleware"
	"github.com/gold2201/LocalNetworkProject/internal/common/cnst"
)

// RegisterRoutes mounts every inventory route on r
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.HandleHealth)
	r.GET("/version", h.HandleVersion)
	if h.metrics != nil && h.cfg.Metrics.Enabled {
		r.GET(h.cfg.Metrics.Path, gin.WrapH(h.metrics.Handler()))
	}

	api := r.Group("/api")
	api.POST("/auth/login", h.Login)

	departments := h.departments().register(api)
	departments.GET("/:id/statistics", reportByID(h, "department", h.db.DepartmentStatistics))

	computers := h.computers().register(api)
	computers.GET("/report", report(h, h.db.ComputerReport))
	computers.GET("/network_stats", report(h, h.db.ComputerNetworkStats))
	computers.GET("/:id/details", reportByID(h, "computer", h.db.ComputerDetails))
	computers.POST("/:id/attach_default_network", h.AttachDefaultNetwork)

	users := h.users().register(api)
	users.GET("/managers", h.Managers)
	users.GET("/non_manager", h.NonManagers)
	users.GET("/statistics", report(h, h.db.UserStatistics))
	users.GET("/:id/computer_history", reportByID(h, "user", h.db.UserComputerHistory))

	software := h.software().register(api)
	software.GET("/popularity_report", h.PopularityReport)
	software.GET("/license_summary", report(h, h.db.LicenseSummary))
	software.GET("/:id/compatible_computers", reportByID(h, "software", h.db.CompatibleComputers))

	networks := h.networks().register(api)
	networks.GET("/statistics", report(h, h.networkStatistics))
	networks.GET("/:id/computers", h.NetworkComputersOf)
	networks.GET("/:id/details", h.NetworkDetails)

	equipment := h.equipment().register(api)
	equipment.GET("/statistics", report(h, h.db.EquipmentStatistics))
	equipment.GET("/:id/networks", h.EquipmentNetworks)

	hosts := h.hostComputers().register(api)
	hosts.GET("/unassigned", h.UnassignedHostComputers)
	hosts.GET("/:id/details", h.HostComputerDetails)

	h.servers().register(api)
	h.softwareComputers().register(api)
	h.userComputers().register(api)
	h.serverNetworks().register(api)
	h.networkComputers().register(api)

	analytics := api.Group("/analytics")
	for _, name := range comprehensiveOrder {
		analytics.GET("/"+name, h.Analytics(name))
		analytics.GET("/export_"+name, h.ExportAnalytics(name))
	}
	analytics.GET("/advanced_queries", h.AdvancedQueries)
	analytics.GET("/export_analytics", h.ExportAnalytics(""))
	analytics.GET("/comprehensive_export", h.ComprehensiveExport)

	console := api.Group("/database",
		middleware.JWTAuthMiddleware(h.jwt, h.errs),
		middleware.RequireRole(cnst.RoleOperator, h.errs))
	console.POST("/execute_sql", h.ExecuteSQL)
	console.GET("/get_tables", h.GetTables)
	console.GET("/get_table_info", h.GetTableInfo)
	console.POST("/export_sql_results", h.ExportSQLResults)
}
