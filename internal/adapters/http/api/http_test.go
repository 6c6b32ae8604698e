package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/taxifare/internal/adapters/http/api"
	"github.com/okian/taxifare/internal/domain/estimate"
	"github.com/okian/taxifare/internal/domain/fare"
	"github.com/okian/taxifare/internal/domain/model"
	"github.com/okian/taxifare/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// mockEstimator predicts a fixed point and records the last request.
type mockEstimator struct {
	point float64
	err   error
	ready bool
	last  fare.Request
	calls int
}

func (m *mockEstimator) Estimate(_ context.Context, req fare.Request) (estimate.Result, error) {
	m.calls++
	m.last = req
	if err := req.Validate(); err != nil {
		return estimate.Result{}, err
	}
	if m.err != nil {
		return estimate.Result{}, m.err
	}
	return estimate.New(m.point, req.FareRangePct), nil
}

func (m *mockEstimator) Ready() bool { return m.ready }

type mockStatsProvider struct{}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true, "predictions": 3}
}

type estimateBody struct {
	ID        string       `json:"id"`
	Point     float64      `json:"point"`
	Lower     float64      `json:"lower"`
	Upper     float64      `json:"upper"`
	RangePct  int          `json:"fare_range_pct"`
	PointText string       `json:"point_text"`
	RangeText string       `json:"range_text"`
	Request   fare.Request `json:"request"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newMux(est *mockEstimator, maxBody int64) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(est, &mockStatsProvider{}, maxBody).Register(context.Background(), mux)
	return mux
}

func do(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given an API server", t, func() {
		server := api.NewServer(&mockEstimator{ready: true}, &mockStatsProvider{}, 0)

		Convey("When registering on a nil mux", func() {
			Convey("Then it should panic", func() {
				So(func() { server.Register(context.Background(), nil) }, ShouldPanic)
			})
		})

		Convey("When registering routes", func() {
			mux := http.NewServeMux()
			server.Register(context.Background(), mux)

			Convey("Then health should be accessible", func() {
				So(do(mux, http.MethodGet, "/healthz", "").Code, ShouldEqual, http.StatusOK)
			})

			Convey("And stats should be accessible", func() {
				w := do(mux, http.MethodGet, "/stats", "")
				So(w.Code, ShouldEqual, http.StatusOK)
				var stats map[string]interface{}
				So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
				So(stats["started"], ShouldEqual, true)
			})

			Convey("And metrics should expose the estimator namespace", func() {
				_ = do(mux, http.MethodGet, "/healthz", "")
				w := do(mux, http.MethodGet, "/metrics", "")
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "taxifare_estimator_http_requests_total")
			})

			Convey("And every response should carry a request id", func() {
				So(do(mux, http.MethodGet, "/healthz", "").Header().Get("X-Request-ID"), ShouldNotBeEmpty)
			})
		})
	})
}

func TestHealthHandler(t *testing.T) {
	Convey("Given a health endpoint", t, func() {
		Convey("When the model is loaded", func() {
			w := do(newMux(&mockEstimator{ready: true}, 0), http.MethodGet, "/healthz", "")

			Convey("Then it should report ok", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"ok"`)
			})
		})

		Convey("When the model is not loaded", func() {
			w := do(newMux(&mockEstimator{ready: false}, 0), http.MethodGet, "/healthz", "")

			Convey("Then it should report unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(w.Body.String(), ShouldContainSubstring, `"unavailable"`)
			})
		})

		Convey("When called with POST", func() {
			w := do(newMux(&mockEstimator{ready: true}, 0), http.MethodPost, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestEstimateHandler(t *testing.T) {
	Convey("Given an estimate endpoint predicting 20.00", t, func() {
		est := &mockEstimator{point: 20, ready: true}
		mux := newMux(est, 0)

		Convey("When posting a full request", func() {
			body := `{"time_of_day":"Evening","day_of_week":"Weekend","traffic":"High","weather":"Rain",
				"trip_distance_km":12.5,"passenger_count":2,"base_fare":3.5,"per_km_rate":1.8,
				"per_minute_rate":0.4,"trip_duration_min":30,"fare_range_pct":6}`
			w := do(mux, http.MethodPost, "/api/v1/estimate", body)

			Convey("Then the point and band should be returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
				var got estimateBody
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.ID, ShouldNotBeEmpty)
				So(got.Point, ShouldEqual, 20)
				So(got.Lower, ShouldAlmostEqual, 18.8, 1e-9)
				So(got.Upper, ShouldAlmostEqual, 21.2, 1e-9)
				So(got.RangePct, ShouldEqual, 6)
				So(got.PointText, ShouldEqual, "$20.00")
				So(got.RangeText, ShouldEqual, "$18.80 - $21.20")
				So(got.Request.TimeOfDay, ShouldEqual, fare.Evening)
				So(got.Request.TripDistanceKm, ShouldEqual, 12.5)
			})
		})

		Convey("When posting an empty body", func() {
			w := do(mux, http.MethodPost, "/api/v1/estimate", "")

			Convey("Then the form defaults should be used", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(est.last, ShouldResemble, fare.DefaultRequest())
			})
		})

		Convey("When posting a partial body", func() {
			w := do(mux, http.MethodPost, "/api/v1/estimate", `{"weather":"Snow"}`)

			Convey("Then missing fields should take the defaults", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				want := fare.DefaultRequest()
				want.Weather = fare.Snow
				So(est.last, ShouldResemble, want)
			})
		})

		Convey("When numeric fields are out of range", func() {
			w := do(mux, http.MethodPost, "/api/v1/estimate",
				`{"trip_distance_km":500,"passenger_count":0,"fare_range_pct":90}`)

			Convey("Then they should be clamped before estimating", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(est.last.TripDistanceKm, ShouldEqual, fare.MaxTripDistanceKm)
				So(est.last.PassengerCount, ShouldEqual, fare.MinPassengerCount)
				So(est.last.FareRangePct, ShouldEqual, fare.MaxFareRangePct)
			})
		})

		Convey("When an enum value is unknown", func() {
			w := do(mux, http.MethodPost, "/api/v1/estimate", `{"traffic":"Gridlock"}`)

			Convey("Then it should be a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var got errorBody
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.Code, ShouldEqual, "bad_request")
				So(got.Message, ShouldContainSubstring, "traffic")
			})
		})

		Convey("When the body is not JSON", func() {
			w := do(mux, http.MethodPost, "/api/v1/estimate", `{not json`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(est.calls, ShouldEqual, 0)
		})

		Convey("When the body has unknown fields", func() {
			w := do(mux, http.MethodPost, "/api/v1/estimate", `{"tip":5}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the method is GET", func() {
			w := do(mux, http.MethodGet, "/api/v1/estimate", "")

			Convey("Then it should be refused with an Allow header", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Header().Get("Allow"), ShouldEqual, http.MethodPost)
			})
		})
	})

	Convey("Given an estimate endpoint with a tiny body limit", t, func() {
		mux := newMux(&mockEstimator{point: 20, ready: true}, 16)

		Convey("When the body exceeds it", func() {
			w := do(mux, http.MethodPost, "/api/v1/estimate", `{"time_of_day":"Evening","weather":"Rain"}`)
			So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
		})
	})

	Convey("Given an estimator whose model is unavailable", t, func() {
		est := &mockEstimator{err: fmt.Errorf("%w: missing artifact", model.ErrModelUnavailable)}
		w := do(newMux(est, 0), http.MethodPost, "/api/v1/estimate", "{}")

		Convey("Then the endpoint should answer 503", func() {
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			var got errorBody
			So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
			So(got.Code, ShouldEqual, "model_unavailable")
		})
	})
}

func TestStatusFor(t *testing.T) {
	Convey("Given estimation errors", t, func() {
		cases := []struct {
			err  error
			want int
		}{
			{fmt.Errorf("x: %w", fare.ErrInvalidRequest), http.StatusBadRequest},
			{api.NewKind("op", api.ErrBadRequest), http.StatusBadRequest},
			{model.ErrModelUnavailable, http.StatusServiceUnavailable},
			{fmt.Errorf("boom"), http.StatusInternalServerError},
		}

		Convey("Then each should map to its status", func() {
			for _, c := range cases {
				status, _ := api.StatusFor(c.err)
				So(status, ShouldEqual, c.want)
			}
		})
	})
}
