package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gold2201/LocalNetworkProject/internal/common/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(config.MetricsConfig{Namespace: "test"})

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/departments/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/departments/7", nil))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.httpReqCnt.WithLabelValues("GET", "/api/departments/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpReqCnt.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInfl.WithLabelValues("/api/departments/:id")))
}

func TestExportAndConsoleCounters(t *testing.T) {
	m := New(config.MetricsConfig{Namespace: "test"})
	m.ExportDone("entity", "xlsx", 12)
	m.ExportDone("entity", "xlsx", 0)
	m.ConsoleDone("query", "success", time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.exportCnt.WithLabelValues("entity", "xlsx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.consoleCnt.WithLabelValues("query", "success")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() {
		nilMetrics.ExportDone("entity", "csv", 1)
		nilMetrics.ConsoleDone("command", "error", time.Now())
	})
}

func TestHandlerExposesSeries(t *testing.T) {
	m := New(config.MetricsConfig{Namespace: "inv"})
	m.ExportDone("analytics", "csv", 3)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "inv_exports_total")
}
