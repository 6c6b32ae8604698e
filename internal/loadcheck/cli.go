package loadcheck

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/taxifare/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging sends logs to stdout and, when logFile is not "-", to a file.
// An empty logFile gets a timestamped name.
func SetupLogging(logFile string, verbose bool) (io.Closer, error) {
	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}

	if logFile != "-" {
		if logFile == "" {
			logFile = "loadcheck_" + time.Now().Format("20060102_150405") + ".log"
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, f)
		closer = f
	}

	if err := logger.InitWith(out, logger.FormatText); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	logger.Get().Info(context.Background(), "logging configured", logger.String("logFile", logFile))
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ShowHelp prints usage information for the load check tool.
func ShowHelp() {
	os.Stdout.WriteString(`Taxi Fare Load Check
====================

Sends random trips to a running estimator and verifies every answer: the
band must match the point and percentage, and replayed trips must get the
same point.

Usage:
  go run ./cmd/loadcheck [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8501")
  -trips int
        Number of random trips to submit (default 1000)
  -replays int
        Number of trips submitted twice to check determinism (default 100)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Optional JSON file for trips and answers
  -log string
        Log file, "-" for stdout only (default: loadcheck_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  go run ./cmd/loadcheck -trips 20000 -workers 16 -url http://localhost:8080
`)
}
