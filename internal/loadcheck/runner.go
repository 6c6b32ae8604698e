package loadcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/taxifare/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// ErrInconsistent is returned when at least one answer failed verification.
var ErrInconsistent = errors.New("inconsistent estimates")

// Run executes the complete load check and returns its statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if config.Workers <= 0 {
		return nil, fmt.Errorf("workers must be positive, got %d", config.Workers)
	}
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting taxifare load check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("trips", config.NumTrips),
		logger.Int("replays", config.Replays),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
	)

	if err := checkServiceHealth(ctx, config); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	trips, err := generateTrips(ctx, config, stats)
	if err != nil {
		return stats, fmt.Errorf("trip generation failed: %w", err)
	}

	results := submitTrips(ctx, config, trips, stats)

	var replays []Result
	if n := min(config.Replays, len(results)); n > 0 {
		replayStats := &Stats{}
		replays = submitTrips(ctx, config, trips[:n], replayStats)
	}

	violations := verifyResults(ctx, config, results, replays, stats)

	if config.OutputFile != "" {
		if err := saveResults(ctx, config.OutputFile, results); err != nil {
			logger.Get().Warn(ctx, "failed to save results to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if len(violations) > 0 {
		return stats, fmt.Errorf("%w: %d violations", ErrInconsistent, len(violations))
	}
	if stats.TripsOK == 0 {
		return stats, fmt.Errorf("no trip was estimated successfully")
	}
	return stats, nil
}

// checkServiceHealth verifies the service is up and its model loaded.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := newHTTPClient(config.Timeout).Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// saveResults writes trips and answers as a JSON array.
func saveResults(ctx context.Context, filename string, results []Result) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	logger.Get().Info(ctx, "results saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, tripsPerSecond float64
	if stats.TripsSubmitted > 0 {
		successRate = float64(stats.TripsOK) / float64(stats.TripsSubmitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		tripsPerSecond = float64(stats.TripsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("tripsGenerated", stats.TripsGenerated),
		logger.Int("tripsSubmitted", stats.TripsSubmitted),
		logger.Int("tripsOK", stats.TripsOK),
		logger.Int("tripsFailed", stats.TripsFailed),
		logger.Int("degenerate", stats.Degenerate),
		logger.Int("replayed", stats.Replayed),
		logger.Int("violations", stats.Violations),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("tripsPerSecond", tripsPerSecond),
	)
}
