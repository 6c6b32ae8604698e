package fare_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/taxifare/internal/domain/fare"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRequest_Validate(t *testing.T) {
	Convey("Given the default request", t, func() {
		req := fare.DefaultRequest()

		Convey("Then it should be valid", func() {
			So(req.Validate(), ShouldBeNil)
		})

		Convey("When time_of_day is unknown", func() {
			req.TimeOfDay = "Dawn"
			err := req.Validate()

			Convey("Then it should be a caller error", func() {
				So(errors.Is(err, fare.ErrInvalidRequest), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "time_of_day")
			})
		})

		Convey("When day_of_week is empty", func() {
			req.DayOfWeek = ""
			So(errors.Is(req.Validate(), fare.ErrInvalidRequest), ShouldBeTrue)
		})

		Convey("When traffic has the wrong case", func() {
			req.Traffic = "high"
			So(errors.Is(req.Validate(), fare.ErrInvalidRequest), ShouldBeTrue)
		})

		Convey("When weather is unknown", func() {
			req.Weather = "Hail"
			err := req.Validate()
			So(errors.Is(err, fare.ErrInvalidRequest), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "weather")
		})

		Convey("When every label combination is used", func() {
			Convey("Then all of them should validate", func() {
				for _, tod := range fare.TimesOfDay {
					for _, dow := range fare.DaysOfWeek {
						for _, tr := range fare.TrafficLevels {
							for _, w := range fare.WeatherOptions {
								r := req
								r.TimeOfDay, r.DayOfWeek, r.Traffic, r.Weather = tod, dow, tr, w
								So(r.Validate(), ShouldBeNil)
							}
						}
					}
				}
			})
		})
	})
}

func TestRequest_Clamp(t *testing.T) {
	Convey("Given a request below every lower bound", t, func() {
		req := fare.DefaultRequest()
		req.TripDistanceKm = 0
		req.PassengerCount = 0
		req.BaseFare = -3
		req.PerKmRate = 0.1
		req.PerMinuteRate = 0
		req.TripDurationMin = 0
		req.FareRangePct = 0

		clamped := req.Clamp()

		Convey("Then each field should be raised to its minimum", func() {
			So(clamped.TripDistanceKm, ShouldEqual, fare.MinTripDistanceKm)
			So(clamped.PassengerCount, ShouldEqual, fare.MinPassengerCount)
			So(clamped.BaseFare, ShouldEqual, fare.MinBaseFare)
			So(clamped.PerKmRate, ShouldEqual, fare.MinPerKmRate)
			So(clamped.PerMinuteRate, ShouldEqual, fare.MinPerMinuteRate)
			So(clamped.TripDurationMin, ShouldEqual, fare.MinTripDurationMin)
			So(clamped.FareRangePct, ShouldEqual, fare.MinFareRangePct)
		})

		Convey("And the original should be unchanged", func() {
			So(req.PassengerCount, ShouldEqual, 0)
		})
	})

	Convey("Given a request above every upper bound", t, func() {
		req := fare.DefaultRequest()
		req.TripDistanceKm = 250
		req.PassengerCount = 9
		req.BaseFare = 21
		req.PerKmRate = 11
		req.PerMinuteRate = 7.5
		req.TripDurationMin = 600
		req.FareRangePct = 80

		clamped := req.Clamp()

		Convey("Then each field should be lowered to its maximum", func() {
			So(clamped.TripDistanceKm, ShouldEqual, fare.MaxTripDistanceKm)
			So(clamped.PassengerCount, ShouldEqual, fare.MaxPassengerCount)
			So(clamped.BaseFare, ShouldEqual, fare.MaxBaseFare)
			So(clamped.PerKmRate, ShouldEqual, fare.MaxPerKmRate)
			So(clamped.PerMinuteRate, ShouldEqual, fare.MaxPerMinuteRate)
			So(clamped.TripDurationMin, ShouldEqual, fare.MaxTripDurationMin)
			So(clamped.FareRangePct, ShouldEqual, fare.MaxFareRangePct)
		})
	})

	Convey("Given a request with non-finite numbers", t, func() {
		req := fare.DefaultRequest()
		req.TripDistanceKm = math.NaN()
		req.BaseFare = math.Inf(1)
		req.PerKmRate = math.Inf(-1)
		clamped := req.Clamp()

		Convey("Then each should land inside its range", func() {
			So(clamped.TripDistanceKm, ShouldEqual, fare.MinTripDistanceKm)
			So(clamped.BaseFare, ShouldEqual, fare.MaxBaseFare)
			So(clamped.PerKmRate, ShouldEqual, fare.MinPerKmRate)
		})
	})

	Convey("Given an in-range request", t, func() {
		req := fare.DefaultRequest()

		Convey("Then clamping should be a no-op", func() {
			So(req.Clamp(), ShouldResemble, req)
		})
	})
}

func TestRequest_Features(t *testing.T) {
	Convey("Given the default request", t, func() {
		f := fare.DefaultRequest().Features()

		Convey("Then it should expose the four categorical columns", func() {
			So(f.Categorical, ShouldHaveLength, 4)
			So(f.Categorical[fare.ColTimeOfDay], ShouldEqual, "Morning")
			So(f.Categorical[fare.ColTraffic], ShouldEqual, "Low")
		})

		Convey("And the six numeric columns", func() {
			So(f.Numeric, ShouldHaveLength, len(fare.NumericColumns))
			So(f.Numeric[fare.ColTripDistanceKm], ShouldEqual, 5.0)
			So(f.Numeric[fare.ColPassengerCount], ShouldEqual, 1.0)
			So(f.Numeric[fare.ColTripDurationMin], ShouldEqual, 15.0)
		})

		Convey("And the range percentage should not be a model input", func() {
			_, ok := f.Numeric["Fare_Range_Pct"]
			So(ok, ShouldBeFalse)
		})
	})
}
