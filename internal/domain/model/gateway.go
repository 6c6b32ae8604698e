package model

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/taxifare/internal/domain/fare"
	"github.com/okian/taxifare/pkg/logger"
	"github.com/okian/taxifare/pkg/metrics"
)

const nanosecondsPerMillisecond = 1e6

// Loader produces the model the gateway serves. LoadArtifact bound to a path
// is the production loader.
type Loader func(ctx context.Context) (*LinearModel, error)

// Option applies a configuration option to the Gateway.
type Option func(*Gateway)

// WithLoader replaces the artifact loader.
func WithLoader(l Loader) Option {
	return func(g *Gateway) {
		if l != nil {
			g.load = l
		}
	}
}

// WithLogger sets a custom logger for the gateway.
func WithLogger(l logger.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// Gateway holds the process-wide model handle. The artifact is loaded at most
// once, on the first Warm or Predict; the result, success or failure, is kept
// for the life of the gateway.
type Gateway struct {
	path   string
	load   Loader
	logger logger.Logger

	once   sync.Once
	loaded atomic.Bool
	model  *LinearModel
	err    error
}

// NewGateway creates a gateway for the artifact at path.
func NewGateway(path string, opts ...Option) *Gateway {
	g := &Gateway{path: path}
	g.load = func(ctx context.Context) (*LinearModel, error) {
		return LoadArtifact(ctx, g.path)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Warm loads the artifact if that has not happened yet and reports the
// outcome. Failures wrap ErrModelUnavailable.
func (g *Gateway) Warm(ctx context.Context) error {
	g.once.Do(func() {
		start := time.Now()
		m, err := g.load(ctx)
		if err == nil && m == nil {
			err = errors.New("loader returned no model")
		}
		if err != nil {
			if !errors.Is(err, ErrModelUnavailable) {
				err = errors.Join(ErrModelUnavailable, err)
			}
			g.err = err
			metrics.SetModelUnavailable()
			g.log().Error(ctx, "model load failed", logger.String("path", g.path), logger.Error(err))
			return
		}
		g.model = m
		g.loaded.Store(true)
		metrics.SetModelLoaded(m.Name, m.Version)
		g.log().Info(ctx, "model loaded",
			logger.String("path", g.path),
			logger.String("name", m.Name),
			logger.String("version", m.Version),
			logger.Duration("took", time.Since(start)),
		)
	})
	return g.err
}

// Ready reports whether the model is loaded.
func (g *Gateway) Ready() bool {
	return g.loaded.Load()
}

// Info returns the loaded artifact identity; ok is false before a successful load.
func (g *Gateway) Info() (info Info, ok bool) {
	if !g.Ready() {
		return Info{}, false
	}
	return g.model.Info(), true
}

// Predict returns the model's point fare for req.
func (g *Gateway) Predict(ctx context.Context, req fare.Request) (float64, error) {
	if err := g.Warm(ctx); err != nil {
		metrics.RecordPredictionError("model_unavailable")
		return 0, err
	}
	start := time.Now()
	y, err := g.model.Predict(ctx, req)
	if err != nil {
		if errors.Is(err, fare.ErrInvalidRequest) {
			metrics.RecordPredictionError("invalid_request")
		} else {
			metrics.RecordPredictionError("inference")
		}
		return 0, err
	}
	metrics.RecordPrediction(float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond)
	return y, nil
}

// log is only reached from inside once.Do.
func (g *Gateway) log() logger.Logger {
	if g.logger == nil {
		g.logger = logger.Get().Named("model")
	}
	return g.logger
}
