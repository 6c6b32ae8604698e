// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New(ctx) builds a Config with defaults; Load(ctx) layers file and env on top.
// - All functions accept context.Context as the first parameter.
// - Loading and validation failures wrap ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ModelPath points at the serialized regression artifact loaded at startup.
	ModelPath string `koanf:"model_path"`

	// MaxBodyBytes caps request bodies on the form and JSON endpoints.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// New creates a Config populated with defaults. Context is accepted first to
// satisfy the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		Addr:         ":8501",
		ModelPath:    "models/taxi_fare_v2.yaml",
		MaxBodyBytes: 64 << 10,
	}
}
