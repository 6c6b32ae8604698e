package loadcheck

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/okian/taxifare/internal/domain/fare"
	"github.com/okian/taxifare/pkg/logger"
)

const randomFloatDivisor = 1000000

// getRandomFloat returns a random float64 in [0, 1) using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func pick[T any](set []T) T {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	return set[n.Int64()]
}

func between(lo, hi float64) float64 {
	return lo + getRandomFloat()*(hi-lo)
}

func betweenInt(lo, hi int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(hi-lo+1)))
	return lo + int(n.Int64())
}

// randomTrip draws every field uniformly from its form domain.
func randomTrip() fare.Request {
	return fare.Request{
		TimeOfDay:       pick(fare.TimesOfDay),
		DayOfWeek:       pick(fare.DaysOfWeek),
		Traffic:         pick(fare.TrafficLevels),
		Weather:         pick(fare.WeatherOptions),
		TripDistanceKm:  between(fare.MinTripDistanceKm, fare.MaxTripDistanceKm),
		PassengerCount:  betweenInt(fare.MinPassengerCount, fare.MaxPassengerCount),
		BaseFare:        between(fare.MinBaseFare, fare.MaxBaseFare),
		PerKmRate:       between(fare.MinPerKmRate, fare.MaxPerKmRate),
		PerMinuteRate:   between(fare.MinPerMinuteRate, fare.MaxPerMinuteRate),
		TripDurationMin: betweenInt(fare.MinTripDurationMin, fare.MaxTripDurationMin),
		FareRangePct:    betweenInt(fare.MinFareRangePct, fare.MaxFareRangePct),
	}
}

// generateTrips creates config.NumTrips random trips.
func generateTrips(ctx context.Context, config *Config, stats *Stats) ([]fare.Request, error) {
	if config.NumTrips <= 0 {
		return nil, fmt.Errorf("number of trips must be positive, got %d", config.NumTrips)
	}
	logger.Get().Info(ctx, "generating trips", logger.Int("numTrips", config.NumTrips))

	trips := make([]fare.Request, config.NumTrips)
	for i := range trips {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during trip generation: %w", err)
		}
		trips[i] = randomTrip()
	}

	stats.TripsGenerated = len(trips)
	return trips, nil
}
