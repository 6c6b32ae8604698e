package api

import (
	"net/http"

	"github.com/okian/taxifare/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Readiness is satisfied by anything that knows whether it can serve.
type Readiness interface {
	Ready() bool
}

// HealthHandler handles health and metrics requests.
type HealthHandler struct {
	ready   Readiness
	metrics http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(ready Readiness) *HealthHandler {
	return &HealthHandler{
		ready:   ready,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz. It reports 503 until the model is loaded.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if h.ready == nil || !h.ready.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleMetrics handles GET /metrics from our custom registry.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}
