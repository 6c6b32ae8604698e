// Package service provides the estimation service behind the form and the
// JSON API: one model prediction followed by the range computation.
package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/okian/taxifare/internal/domain/estimate"
	"github.com/okian/taxifare/internal/domain/fare"
	"github.com/okian/taxifare/internal/domain/model"
	"github.com/okian/taxifare/pkg/logger"
	"github.com/okian/taxifare/pkg/metrics"
)

// ErrNotStarted is returned by Estimate before Start succeeded. It matches
// model.ErrModelUnavailable.
var ErrNotStarted = fmt.Errorf("%w: service not started", model.ErrModelUnavailable)

// Gateway is the model handle the service needs.
type Gateway interface {
	model.Predictor
	Warm(ctx context.Context) error
	Ready() bool
	Info() (model.Info, bool)
}

// Service computes fare estimates.
type Service struct {
	mu sync.Mutex

	gateway   Gateway
	modelPath string

	started atomic.Bool

	predictions atomic.Int64
	failures    atomic.Int64
	degenerate  atomic.Int64
	lastPoint   atomic.Uint64 // math.Float64bits

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithModelPath sets the artifact the default gateway loads.
func WithModelPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.modelPath = path
		}
	}
}

// WithGateway replaces the model gateway, mostly for tests.
func WithGateway(g Gateway) Option {
	return func(s *Service) {
		if g != nil {
			s.gateway = g
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		modelPath: "models/taxi_fare_v2.yaml",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the model. A load failure is returned wrapped in
// model.ErrModelUnavailable and the service stays unusable.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started.Load() {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("estimator")
	}
	if s.gateway == nil {
		s.gateway = model.NewGateway(s.modelPath)
	}

	s.logger.Info(ctx, "starting fare estimator...", logger.String("model_path", s.modelPath))
	if err := s.gateway.Warm(ctx); err != nil {
		return err
	}

	s.started.Store(true)
	info, _ := s.gateway.Info()
	s.logger.Info(ctx, "fare estimator started",
		logger.String("model", info.Name),
		logger.String("version", info.Version),
	)
	return nil
}

// Stop marks the service as stopped. The loaded model is kept; there is
// nothing to release.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started.Load() {
		return
	}
	s.started.Store(false)
	s.logger.Info(context.Background(), "fare estimator stopped")
}

// Ready reports whether estimates can be served.
func (s *Service) Ready() bool {
	return s.started.Load() && s.gateway != nil && s.gateway.Ready()
}

// Estimate predicts the point fare for req and brackets it with
// req.FareRangePct. Numeric fields are used as given; callers clamp.
func (s *Service) Estimate(ctx context.Context, req fare.Request) (estimate.Result, error) {
	if !s.started.Load() {
		return estimate.Result{}, ErrNotStarted
	}

	point, err := s.gateway.Predict(ctx, req)
	if err != nil {
		s.failures.Add(1)
		s.logger.Debug(ctx, "prediction failed", logger.Error(err))
		return estimate.Result{}, err
	}

	res := estimate.New(point, req.FareRangePct)
	s.predictions.Add(1)
	s.lastPoint.Store(math.Float64bits(point))
	metrics.RecordEstimate(point, req.FareRangePct)

	if res.Degenerate() {
		s.degenerate.Add(1)
		metrics.RecordDegeneratePoint()
		s.logger.Warn(ctx, "non-positive fare predicted",
			logger.Float64("point", point),
			logger.Any("request", req),
		)
	}

	s.logger.Debug(ctx, "estimate computed",
		logger.Float64("point", res.Point),
		logger.Float64("lower", res.Lower),
		logger.Float64("upper", res.Upper),
		logger.Int("fare_range_pct", res.RangePct),
	)
	return res, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	stats := map[string]interface{}{
		"started":     s.started.Load(),
		"model_path":  s.modelPath,
		"predictions": s.predictions.Load(),
		"failures":    s.failures.Load(),
		"degenerate":  s.degenerate.Load(),
	}
	if s.predictions.Load() > 0 {
		stats["last_point"] = math.Float64frombits(s.lastPoint.Load())
	}
	if s.started.Load() {
		if info, ok := s.gateway.Info(); ok {
			stats["model_name"] = info.Name
			stats["model_version"] = info.Version
		}
	}
	return stats
}
