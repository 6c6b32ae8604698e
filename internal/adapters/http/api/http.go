// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/taxifare/internal/adapters/http/middleware"
	"github.com/okian/taxifare/internal/domain/estimate"
	"github.com/okian/taxifare/internal/domain/fare"
	"github.com/okian/taxifare/internal/domain/model"
)

// Default request body cap when none is configured.
const defaultMaxBodyBytes = 64 << 10

// Estimator is what the handlers need from the estimation service.
type Estimator interface {
	Estimate(ctx context.Context, req fare.Request) (estimate.Result, error)
	Ready() bool
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	estimateHandler *EstimateHandler
}

// NewServer creates a new API server with all handlers. maxBodyBytes <= 0
// falls back to 64 KiB.
func NewServer(est Estimator, statsProvider StatsProvider, maxBodyBytes int64) *Server {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &Server{
		healthHandler:   NewHealthHandler(est),
		statsHandler:    NewStatsHandler(statsProvider),
		estimateHandler: NewEstimateHandler(est, maxBodyBytes),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/healthz", middleware.Chain(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", middleware.Chain(s.healthHandler.HandleMetrics, "metrics"))
	mux.Handle("/stats", middleware.Chain(s.statsHandler.HandleStats, "stats"))
	mux.Handle("/api/v1/estimate", middleware.Chain(s.estimateHandler.HandlePostEstimate, "estimate"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// StatusFor maps an estimation error to an HTTP status and error code.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, fare.ErrInvalidRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, model.ErrModelUnavailable):
		return http.StatusServiceUnavailable, "model_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
