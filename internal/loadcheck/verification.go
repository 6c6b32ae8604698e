package loadcheck

import (
	"context"
	"fmt"
	"math"

	estimatedomain "github.com/okian/taxifare/internal/domain/estimate"
	"github.com/okian/taxifare/pkg/logger"
)

// Violation describes one inconsistent answer.
type Violation struct {
	Index  int
	Reason string
}

// verifyAnswer checks one answer against the trip that produced it.
func verifyAnswer(r Result) error {
	a := r.Answer
	if a == nil {
		return nil
	}
	if a.Request != r.Trip.Clamp() {
		return fmt.Errorf("echoed request differs from the submitted trip")
	}
	if a.RangePct != a.Request.FareRangePct {
		return fmt.Errorf("fare_range_pct %d, submitted %d", a.RangePct, a.Request.FareRangePct)
	}
	lower, upper := estimatedomain.Range(a.Point, a.RangePct)
	if !near(a.Lower, lower) || !near(a.Upper, upper) {
		return fmt.Errorf("band [%.4f, %.4f] does not match point %.4f at %d%%", a.Lower, a.Upper, a.Point, a.RangePct)
	}
	if a.Point > 0 && (a.Lower > a.Point || a.Point > a.Upper) {
		return fmt.Errorf("point %.4f outside its band [%.4f, %.4f]", a.Point, a.Lower, a.Upper)
	}
	return nil
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= bandTolerance*math.Max(1, math.Abs(b))
}

// verifyResults checks every answer and that replays reproduced the first
// answers exactly.
func verifyResults(ctx context.Context, config *Config, results, replays []Result, stats *Stats) []Violation {
	log := logger.Get()
	log.Info(ctx, "verifying answers", logger.Int("answers", len(results)), logger.Int("replays", len(replays)))

	var violations []Violation
	for i, r := range results {
		if r.Answer == nil {
			continue
		}
		if r.Answer.Point <= 0 {
			stats.Degenerate++
		}
		if err := verifyAnswer(r); err != nil {
			violations = append(violations, Violation{Index: i, Reason: err.Error()})
		}
	}

	for i, rp := range replays {
		if i >= len(results) {
			break
		}
		first := results[i].Answer
		if first == nil || rp.Answer == nil {
			continue
		}
		stats.Replayed++
		if rp.Answer.Point != first.Point {
			violations = append(violations, Violation{
				Index:  i,
				Reason: fmt.Sprintf("replay predicted %.6f, first run %.6f", rp.Answer.Point, first.Point),
			})
		}
	}

	stats.Violations = len(violations)
	for _, v := range violations {
		if !config.Verbose && len(violations) > 1 {
			log.Warn(ctx, "inconsistent answers", logger.Int("count", len(violations)), logger.String("first", v.Reason))
			break
		}
		log.Warn(ctx, "inconsistent answer", logger.Int("index", v.Index), logger.String("reason", v.Reason))
	}
	return violations
}
