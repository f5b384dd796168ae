package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gold2201/LocalNetworkProject/internal/common/cnst"
	"github.com/gold2201/LocalNetworkProject/pkg/version"
)

// ServiceInfo represents the service identity information
type ServiceInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Dialect string `json:"database,omitempty"`
}

// HandleHealth reports liveness
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleVersion serves the build version as JSON
func (h *Handler) HandleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, ServiceInfo{
		Name:    cnst.AppName,
		Version: version.Get(),
		Dialect: h.db.Dialect(),
	})
}
