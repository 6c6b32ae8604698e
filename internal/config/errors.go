package config

import (
	"errors"
)

// ErrInvalidConfig is wrapped by Validate when a loaded value cannot run the
// estimator (empty addr or model_path, non-positive max_body_bytes, unknown
// log_format). ErrLoadConfig wraps file, env and decode failures from Load.
var (
	ErrInvalidConfig = errors.New("invalid taxifare config")
	ErrLoadConfig    = errors.New("load taxifare config failed")
)
