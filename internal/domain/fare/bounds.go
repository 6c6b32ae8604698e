package fare

// Widget bounds for the numeric fields.
const (
	MinTripDistanceKm  = 0.5
	MaxTripDistanceKm  = 100.0
	MinPassengerCount  = 1
	MaxPassengerCount  = 6
	MinBaseFare        = 1.0
	MaxBaseFare        = 20.0
	MinPerKmRate       = 0.5
	MaxPerKmRate       = 10.0
	MinPerMinuteRate   = 0.1
	MaxPerMinuteRate   = 5.0
	MinTripDurationMin = 1
	MaxTripDurationMin = 180
	MinFareRangePct    = 1
	MaxFareRangePct    = 50
)

// Clamp pulls every numeric field into its widget range. Enum fields are left
// untouched; Validate reports those.
func (r Request) Clamp() Request {
	r.TripDistanceKm = clamp(r.TripDistanceKm, MinTripDistanceKm, MaxTripDistanceKm)
	r.PassengerCount = clamp(r.PassengerCount, MinPassengerCount, MaxPassengerCount)
	r.BaseFare = clamp(r.BaseFare, MinBaseFare, MaxBaseFare)
	r.PerKmRate = clamp(r.PerKmRate, MinPerKmRate, MaxPerKmRate)
	r.PerMinuteRate = clamp(r.PerMinuteRate, MinPerMinuteRate, MaxPerMinuteRate)
	r.TripDurationMin = clamp(r.TripDurationMin, MinTripDurationMin, MaxTripDurationMin)
	r.FareRangePct = clamp(r.FareRangePct, MinFareRangePct, MaxFareRangePct)
	return r
}

// clamp maps NaN to lo; v != v only holds for NaN.
func clamp[T int | float64](v, lo, hi T) T {
	if v != v || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
