// Package fare defines the trip record submitted for a fare estimate.
package fare

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest marks a request carrying a value outside a declared enum.
var ErrInvalidRequest = errors.New("invalid fare request")

// TimeOfDay is the part of the day the trip starts in.
type TimeOfDay string

// Supported times of day.
const (
	Morning   TimeOfDay = "Morning"
	Afternoon TimeOfDay = "Afternoon"
	Evening   TimeOfDay = "Evening"
	Night     TimeOfDay = "Night"
)

// DayOfWeek distinguishes weekday from weekend trips.
type DayOfWeek string

// Supported day kinds.
const (
	Weekday DayOfWeek = "Weekday"
	Weekend DayOfWeek = "Weekend"
)

// Traffic is the observed traffic level.
type Traffic string

// Supported traffic levels.
const (
	TrafficLow    Traffic = "Low"
	TrafficMedium Traffic = "Medium"
	TrafficHigh   Traffic = "High"
)

// Weather is the weather at pickup.
type Weather string

// Supported weather conditions.
const (
	Clear Weather = "Clear"
	Rain  Weather = "Rain"
	Snow  Weather = "Snow"
)

// Label lists, in widget order.
var (
	TimesOfDay     = []TimeOfDay{Morning, Afternoon, Evening, Night}
	DaysOfWeek     = []DayOfWeek{Weekday, Weekend}
	TrafficLevels  = []Traffic{TrafficLow, TrafficMedium, TrafficHigh}
	WeatherOptions = []Weather{Clear, Rain, Snow}
)

// Request is one trip record. FareRangePct only drives the displayed band and
// is not fed to the model.
type Request struct {
	TimeOfDay       TimeOfDay `json:"time_of_day"`
	DayOfWeek       DayOfWeek `json:"day_of_week"`
	Traffic         Traffic   `json:"traffic"`
	Weather         Weather   `json:"weather"`
	TripDistanceKm  float64   `json:"trip_distance_km"`
	PassengerCount  int       `json:"passenger_count"`
	BaseFare        float64   `json:"base_fare"`
	PerKmRate       float64   `json:"per_km_rate"`
	PerMinuteRate   float64   `json:"per_minute_rate"`
	TripDurationMin int       `json:"trip_duration_min"`
	FareRangePct    int       `json:"fare_range_pct"`
}

// DefaultRequest returns the values the form starts with.
func DefaultRequest() Request {
	return Request{
		TimeOfDay:       Morning,
		DayOfWeek:       Weekday,
		Traffic:         TrafficLow,
		Weather:         Clear,
		TripDistanceKm:  5.0,
		PassengerCount:  1,
		BaseFare:        3.0,
		PerKmRate:       2.0,
		PerMinuteRate:   0.5,
		TripDurationMin: 15,
		FareRangePct:    6,
	}
}

// Validate reports whether every enum field holds a declared label.
func (r Request) Validate() error {
	switch {
	case !contains(TimesOfDay, r.TimeOfDay):
		return fmt.Errorf("%w: time_of_day %q", ErrInvalidRequest, r.TimeOfDay)
	case !contains(DaysOfWeek, r.DayOfWeek):
		return fmt.Errorf("%w: day_of_week %q", ErrInvalidRequest, r.DayOfWeek)
	case !contains(TrafficLevels, r.Traffic):
		return fmt.Errorf("%w: traffic %q", ErrInvalidRequest, r.Traffic)
	case !contains(WeatherOptions, r.Weather):
		return fmt.Errorf("%w: weather %q", ErrInvalidRequest, r.Weather)
	}
	return nil
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
