// Package loadcheck drives a running estimator over HTTP with random trips
// and checks that every answer is consistent.
package loadcheck

import (
	"time"

	"github.com/okian/taxifare/internal/domain/fare"
)

// Config holds configuration for a load check run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumTrips   int           // Number of trips to generate
	Replays    int           // Number of trips re-submitted to check determinism
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Optional JSON dump of trips and answers
	Verbose    bool          // Enable verbose logging
}

// Answer is the subset of the estimate response the check reads.
type Answer struct {
	ID        string       `json:"id"`
	Point     float64      `json:"point"`
	Lower     float64      `json:"lower"`
	Upper     float64      `json:"upper"`
	RangePct  int          `json:"fare_range_pct"`
	PointText string       `json:"point_text"`
	RangeText string       `json:"range_text"`
	Request   fare.Request `json:"request"`
}

// Result pairs a submitted trip with the service's answer.
type Result struct {
	Trip   fare.Request `json:"trip"`
	Answer *Answer      `json:"answer,omitempty"`
	Status int          `json:"status"`
	Err    string       `json:"error,omitempty"`
}

// Stats holds run statistics.
type Stats struct {
	TripsGenerated int
	TripsSubmitted int
	TripsOK        int
	TripsFailed    int
	Degenerate     int
	Replayed       int
	Violations     int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
