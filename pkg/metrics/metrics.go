package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gold2201/LocalNetworkProject/internal/common/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry   *prometheus.Registry
	namespace  string
	httpReqCnt *prometheus.CounterVec
	httpDur    *prometheus.HistogramVec
	httpInfl   *prometheus.GaugeVec
	exportCnt  *prometheus.CounterVec
	exportRows *prometheus.HistogramVec
	consoleCnt *prometheus.CounterVec
	consoleDur *prometheus.HistogramVec
}

func New(cfg config.MetricsConfig) *Metrics {
	ns := cfg.Namespace
	buckets := cfg.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	httpReqCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "http_requests_total"}, []string{"method", "route", "status"})
	httpDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "http_request_duration_seconds", Buckets: buckets}, []string{"method", "route", "status"})
	httpInfl := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: ns, Name: "http_requests_inflight"}, []string{"route"})
	r.MustRegister(httpReqCnt, httpDur, httpInfl)

	exportCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "exports_total"}, []string{"kind", "format"})
	exportRows := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "export_rows", Buckets: prometheus.ExponentialBuckets(1, 4, 8)}, []string{"kind"})
	r.MustRegister(exportCnt, exportRows)

	consoleCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "console_statements_total"}, []string{"type", "status"})
	consoleDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "console_statement_duration_seconds", Buckets: buckets}, []string{"type"})
	r.MustRegister(consoleCnt, consoleDur)

	return &Metrics{
		registry:   r,
		namespace:  ns,
		httpReqCnt: httpReqCnt,
		httpDur:    httpDur,
		httpInfl:   httpInfl,
		exportCnt:  exportCnt,
		exportRows: exportRows,
		consoleCnt: consoleCnt,
		consoleDur: consoleDur,
	}
}

// ExportDone records a produced export file
func (m *Metrics) ExportDone(kind, format string, rows int) {
	if m == nil {
		return
	}
	m.exportCnt.WithLabelValues(kind, format).Inc()
	m.exportRows.WithLabelValues(kind).Observe(float64(rows))
}

// ConsoleDone records one console statement
func (m *Metrics) ConsoleDone(stmtType, status string, since time.Time) {
	if m == nil {
		return
	}
	m.consoleCnt.WithLabelValues(stmtType, status).Inc()
	m.consoleDur.WithLabelValues(stmtType).Observe(time.Since(since).Seconds())
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpInfl.WithLabelValues(route).Inc()
		start := time.Now()
		c.Next()
		status := strconv.Itoa(c.Writer.Status())
		m.httpReqCnt.WithLabelValues(c.Request.Method, route, status).Inc()
		m.httpDur.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		m.httpInfl.WithLabelValues(route).Dec()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and custom collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
