package fare

// Model column names, in the order the regression was trained on.
const (
	ColTimeOfDay       = "Time_of_Day"
	ColDayOfWeek       = "Day_of_Week"
	ColTraffic         = "Traffic_Conditions"
	ColWeather         = "Weather"
	ColTripDistanceKm  = "Trip_Distance_km"
	ColPassengerCount  = "Passenger_Count"
	ColBaseFare        = "Base_Fare"
	ColPerKmRate       = "Per_Km_Rate"
	ColPerMinuteRate   = "Per_Minute_Rate"
	ColTripDurationMin = "Trip_Duration_Minutes"
)

// CategoricalColumns maps each categorical column to its allowed labels.
var CategoricalColumns = map[string][]string{
	ColTimeOfDay: labels(TimesOfDay),
	ColDayOfWeek: labels(DaysOfWeek),
	ColTraffic:   labels(TrafficLevels),
	ColWeather:   labels(WeatherOptions),
}

// CategoricalOrder lists the categorical columns in column order.
var CategoricalOrder = []string{ColTimeOfDay, ColDayOfWeek, ColTraffic, ColWeather}

// NumericColumns lists the numeric model inputs in column order.
var NumericColumns = []string{
	ColTripDistanceKm,
	ColPassengerCount,
	ColBaseFare,
	ColPerKmRate,
	ColPerMinuteRate,
	ColTripDurationMin,
}

// Features holds the model input keyed by column name: four categorical and
// six numeric columns. The maps carry no order; consumers iterate
// CategoricalOrder and NumericColumns.
type Features struct {
	Categorical map[string]string
	Numeric     map[string]float64
}

// Features projects the request onto the model columns.
func (r Request) Features() Features {
	return Features{
		Categorical: map[string]string{
			ColTimeOfDay: string(r.TimeOfDay),
			ColDayOfWeek: string(r.DayOfWeek),
			ColTraffic:   string(r.Traffic),
			ColWeather:   string(r.Weather),
		},
		Numeric: map[string]float64{
			ColTripDistanceKm:  r.TripDistanceKm,
			ColPassengerCount:  float64(r.PassengerCount),
			ColBaseFare:        r.BaseFare,
			ColPerKmRate:       r.PerKmRate,
			ColPerMinuteRate:   r.PerMinuteRate,
			ColTripDurationMin: float64(r.TripDurationMin),
		},
	}
}

func labels[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}
