// Package site serves the single-page fare estimation form.
package site

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/taxifare/internal/adapters/http/middleware"
	"github.com/okian/taxifare/internal/domain/estimate"
	"github.com/okian/taxifare/internal/domain/fare"
	"github.com/okian/taxifare/internal/domain/model"
	"github.com/okian/taxifare/pkg/logger"
)

// Error constants
var (
	ErrBadForm = errors.New("invalid form input")
	ErrRender  = errors.New("page render failed")
)

const defaultMaxBodyBytes = 64 << 10

// Estimator is what the form needs from the estimation service.
type Estimator interface {
	Estimate(ctx context.Context, req fare.Request) (estimate.Result, error)
}

// Handler renders the form and its predictions.
type Handler struct {
	est          Estimator
	maxBodyBytes int64
	logger       logger.Logger
}

// Option applies a configuration option to the Handler.
type Option func(*Handler)

// WithMaxBodyBytes caps the size of a submitted form.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

// WithLogger sets a custom logger for the handler.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler creates a form handler backed by est.
func NewHandler(est Estimator, opts ...Option) *Handler {
	h := &Handler{est: est, maxBodyBytes: defaultMaxBodyBytes}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = logger.Get().Named("site")
	}
	return h
}

// Register attaches the form routes to mux.
//
//	GET  /          -> form at its defaults
//	POST /predict   -> form with the estimate
//	GET  /static/   -> embedded stylesheet
func (h *Handler) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/{$}", middleware.Chain(h.HandleIndex, "index"))
	mux.Handle("/predict", middleware.Chain(h.HandlePredict, "predict"))
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(StaticFS())))
}

// HandleIndex handles GET / and shows the form at its defaults.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.render(r.Context(), w, http.StatusOK, newPage(fare.DefaultRequest()))
}

// HandlePredict handles POST /predict: one estimate for the submitted form.
func (h *Handler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	req, err := parseForm(r)
	if err != nil {
		p := newPage(req)
		p.Error = err.Error()
		h.render(r.Context(), w, http.StatusBadRequest, p)
		return
	}
	req = req.Clamp()

	p := newPage(req)
	res, err := h.est.Estimate(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, fare.ErrInvalidRequest):
			status = http.StatusBadRequest
		case errors.Is(err, model.ErrModelUnavailable):
			status = http.StatusServiceUnavailable
		}
		h.logger.Warn(r.Context(), "form estimate failed",
			logger.Int("status", status),
			logger.String("request_id", middleware.RequestIDFrom(r.Context())),
			logger.Error(err),
		)
		p.Error = err.Error()
		h.render(r.Context(), w, status, p)
		return
	}

	p.Result = &res
	h.render(r.Context(), w, http.StatusOK, p)
}
