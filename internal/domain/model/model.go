// Package model wraps the trained fare regression behind a single Predict call.
package model

import (
	"context"
	"errors"

	"github.com/okian/taxifare/internal/domain/fare"
)

// ErrModelUnavailable is returned when the model artifact cannot be loaded.
var ErrModelUnavailable = errors.New("model unavailable")

// Predictor produces a point fare for one request.
type Predictor interface {
	Predict(ctx context.Context, req fare.Request) (float64, error)
}

// Info describes a loaded artifact.
type Info struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Interaction is a product term between two numeric columns.
type Interaction struct {
	A    string  `koanf:"a"`
	B    string  `koanf:"b"`
	Coef float64 `koanf:"coef"`
}

// LinearModel is a linear regression over the one-hot encoded categorical
// columns, the numeric columns and optional pairwise products. Labels absent
// from a categorical table are the reference level and contribute zero.
type LinearModel struct {
	Name         string                        `koanf:"name"`
	Version      string                        `koanf:"version"`
	Intercept    float64                       `koanf:"intercept"`
	Numeric      map[string]float64            `koanf:"numeric"`
	Categorical  map[string]map[string]float64 `koanf:"categorical"`
	Interactions []Interaction                 `koanf:"interactions"`
}

// Info returns the artifact identity.
func (m *LinearModel) Info() Info {
	return Info{Name: m.Name, Version: m.Version}
}

// Predict evaluates the regression. Terms are summed in column order so the
// same request always yields the same float. It reads m only, so a loaded
// model can be shared between goroutines.
func (m *LinearModel) Predict(_ context.Context, req fare.Request) (float64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	f := req.Features()

	y := m.Intercept
	for _, col := range fare.CategoricalOrder {
		y += m.Categorical[col][f.Categorical[col]]
	}
	for _, col := range fare.NumericColumns {
		y += m.Numeric[col] * f.Numeric[col]
	}
	for _, it := range m.Interactions {
		y += it.Coef * f.Numeric[it.A] * f.Numeric[it.B]
	}
	return y, nil
}
