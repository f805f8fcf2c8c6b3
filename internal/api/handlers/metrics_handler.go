package handlers

import (
	"net/http"
	"runtime"

	"example.com/backstage/services/console/internal/metrics"
	"example.com/backstage/services/console/internal/tracing"

	"github.com/gin-gonic/gin"
)

// MetricsHandler handles metrics-related HTTP requests
type MetricsHandler struct {
	metrics *metrics.Metrics
	tracer  tracing.Tracer
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(m *metrics.Metrics, tracer tracing.Tracer) *MetricsHandler {
	return &MetricsHandler{
		metrics: m,
		tracer:  tracer,
	}
}

// RegisterRoutes registers the metrics routes
func (h *MetricsHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/metrics", h.HandleGetMetrics)
}

// HandleGetMetrics returns all collected action metrics
func (h *MetricsHandler) HandleGetMetrics(c *gin.Context) {
	if h.tracer != nil {
		txn := h.tracer.StartTransaction("get-metrics")
		defer h.tracer.EndTransaction(txn)
	}

	out := h.metrics.GetAllMetrics()
	out["goroutines"] = runtime.NumGoroutine()

	c.JSON(http.StatusOK, out)
}
