package site

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/taxifare/internal/domain/fare"
)

// parseForm reads the submitted widgets on top of the defaults. Empty fields
// keep their default; enum values are passed through for Validate to judge.
// The returned request is usable even on error so the page can be redrawn.
func parseForm(r *http.Request) (fare.Request, error) {
	req := fare.DefaultRequest()
	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("%w: %w", ErrBadForm, err)
	}

	if v := field(r, "time_of_day"); v != "" {
		req.TimeOfDay = fare.TimeOfDay(v)
	}
	if v := field(r, "day_of_week"); v != "" {
		req.DayOfWeek = fare.DayOfWeek(v)
	}
	if v := field(r, "traffic"); v != "" {
		req.Traffic = fare.Traffic(v)
	}
	if v := field(r, "weather"); v != "" {
		req.Weather = fare.Weather(v)
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"trip_distance_km", &req.TripDistanceKm},
		{"base_fare", &req.BaseFare},
		{"per_km_rate", &req.PerKmRate},
		{"per_minute_rate", &req.PerMinuteRate},
	}
	for _, f := range floats {
		v := field(r, f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, fmt.Errorf("%w: %s %q is not a number", ErrBadForm, f.name, v)
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return req, fmt.Errorf("%w: %s %q is not a finite number", ErrBadForm, f.name, v)
		}
		*f.dst = n
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"passenger_count", &req.PassengerCount},
		{"trip_duration_min", &req.TripDurationMin},
		{"fare_range_pct", &req.FareRangePct},
	}
	for _, f := range ints {
		v := field(r, f.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("%w: %s %q is not a whole number", ErrBadForm, f.name, v)
		}
		*f.dst = n
	}
	return req, nil
}

func field(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostForm.Get(name))
}
