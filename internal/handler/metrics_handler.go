package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teaching-scheduler-api/internal/models"
	"github.com/noah-isme/teaching-scheduler-api/internal/service"
)

// ExpositionContentType is the content type of the text exposition format.
const ExpositionContentType = "text/plain; version=0.0.4; charset=utf-8"

type requestMetrics interface {
	Snapshot() service.MetricsSnapshot
	Render(snap service.MetricsSnapshot) string
}

type connectionStatus interface {
	Status() models.ConnectionState
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	recorder   requestMetrics
	prometheus http.Handler
	database   connectionStatus
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(recorder requestMetrics, prometheus http.Handler, database connectionStatus) *MetricsHandler {
	return &MetricsHandler{recorder: recorder, prometheus: prometheus, database: database}
}

// Exposition godoc
// @Summary Request counters and process memory in text exposition format
// @Tags Observability
// @Produce plain
// @Success 200 {string} string
// @Router /metrics [get]
func (h *MetricsHandler) Exposition(c *gin.Context) {
	body := h.recorder.Render(h.recorder.Snapshot())
	c.Data(http.StatusOK, ExpositionContentType, []byte(body))
}

// Prometheus serves the runtime instrumentation registry.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.prometheus == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.prometheus.ServeHTTP(c.Writer, c.Request)
}

// Live responds with a generic OK payload for liveness probes.
func (h *MetricsHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports 200 once the database is connected and 503 otherwise.
func (h *MetricsHandler) Ready(c *gin.Context) {
	state := models.ConnectionDisconnected
	if h.database != nil {
		state = h.database.Status()
	}
	status := http.StatusOK
	if state != models.ConnectionConnected {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": string(state)})
}
