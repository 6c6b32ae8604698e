package model

import (
	"context"
	"fmt"
	"slices"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/taxifare/internal/domain/fare"
)

// LoadArtifact reads a YAML regression artifact from path and checks that it
// only refers to known columns and labels.
func LoadArtifact(_ context.Context, path string) (*LinearModel, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty artifact path", ErrModelUnavailable)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrModelUnavailable, path, err)
	}

	var m LinearModel
	if err := k.UnmarshalWithConf("", &m, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrModelUnavailable, path, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrModelUnavailable, path, err)
	}
	return &m, nil
}

func (m *LinearModel) validate() error {
	if m.Name == "" {
		return fmt.Errorf("missing name")
	}
	for col := range m.Numeric {
		if !slices.Contains(fare.NumericColumns, col) {
			return fmt.Errorf("unknown numeric column %q", col)
		}
	}
	for col, weights := range m.Categorical {
		allowed, ok := fare.CategoricalColumns[col]
		if !ok {
			return fmt.Errorf("unknown categorical column %q", col)
		}
		for label := range weights {
			if !slices.Contains(allowed, label) {
				return fmt.Errorf("unknown label %q for %s", label, col)
			}
		}
	}
	for i, it := range m.Interactions {
		if !slices.Contains(fare.NumericColumns, it.A) || !slices.Contains(fare.NumericColumns, it.B) {
			return fmt.Errorf("interaction %d: unknown column in %q x %q", i, it.A, it.B)
		}
	}
	if len(m.Numeric) == 0 && len(m.Interactions) == 0 {
		return fmt.Errorf("no numeric terms")
	}
	return nil
}
