package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/okian/taxifare/internal/domain/estimate"
	"github.com/okian/taxifare/internal/domain/fare"
	"github.com/okian/taxifare/pkg/logger"
)

const (
	pageTitle   = "Taxi Fare Prediction Case Study"
	pendingText = "Pending Prediction..."
)

// page is everything the template sees. Result is nil until a prediction
// succeeded for this request.
type page struct {
	Title   string
	Pending string
	Request fare.Request
	Result  *estimate.Result
	Error   string

	TimesOfDay     []fare.TimeOfDay
	DaysOfWeek     []fare.DayOfWeek
	TrafficLevels  []fare.Traffic
	WeatherOptions []fare.Weather
	Bounds         bounds
}

type bounds struct {
	MinTripDistanceKm, MaxTripDistanceKm   float64
	MinPassengerCount, MaxPassengerCount   int
	MinBaseFare, MaxBaseFare               float64
	MinPerKmRate, MaxPerKmRate             float64
	MinPerMinuteRate, MaxPerMinuteRate     float64
	MinTripDurationMin, MaxTripDurationMin int
	MinFareRangePct, MaxFareRangePct       int
}

func newPage(req fare.Request) page {
	return page{
		Title:          pageTitle,
		Pending:        pendingText,
		Request:        req,
		TimesOfDay:     fare.TimesOfDay,
		DaysOfWeek:     fare.DaysOfWeek,
		TrafficLevels:  fare.TrafficLevels,
		WeatherOptions: fare.WeatherOptions,
		Bounds: bounds{
			MinTripDistanceKm: fare.MinTripDistanceKm, MaxTripDistanceKm: fare.MaxTripDistanceKm,
			MinPassengerCount: fare.MinPassengerCount, MaxPassengerCount: fare.MaxPassengerCount,
			MinBaseFare: fare.MinBaseFare, MaxBaseFare: fare.MaxBaseFare,
			MinPerKmRate: fare.MinPerKmRate, MaxPerKmRate: fare.MaxPerKmRate,
			MinPerMinuteRate: fare.MinPerMinuteRate, MaxPerMinuteRate: fare.MaxPerMinuteRate,
			MinTripDurationMin: fare.MinTripDurationMin, MaxTripDurationMin: fare.MaxTripDurationMin,
			MinFareRangePct: fare.MinFareRangePct, MaxFareRangePct: fare.MaxFareRangePct,
		},
	}
}

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// render executes into a buffer first so a template failure still yields a
// clean 500 instead of a half-written page.
func (h *Handler) render(ctx context.Context, w http.ResponseWriter, status int, p page) {
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, p); err != nil {
		h.logger.Error(ctx, "render index", logger.Error(fmt.Errorf("%w: %w", ErrRender, err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
